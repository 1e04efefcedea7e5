package scoring

import (
	"testing"

	"civicreporter-be/models"
)

func TestImpactScoreAt(t *testing.T) {
	tests := []struct {
		name        string
		issue       models.Issue
		nearbyCount int
		expected    int
	}{
		{
			// 10 base + 4*10 severity + 20 category + 0 nearby + 30 decay = 100
			name:     "fresh critical water issue maxes out",
			issue:    testIssue(models.Water, models.SeverityCritical, testNow),
			expected: 100,
		},
		{
			// 10 + 2*10 + 15 + 0 + max(1, 30-10) = 65
			name:     "ten day old medium pothole",
			issue:    testIssue(models.Pothole, models.SeverityMedium, testNow.AddDate(0, 0, -10)),
			expected: 65,
		},
		{
			// decay floors at 1: 10 + 20 + 5 + 0 + 1 = 36
			name:     "very old general issue keeps decay floor",
			issue:    testIssue(models.General, models.SeverityMedium, testNow.AddDate(0, 0, -100)),
			expected: 36,
		},
		{
			// unknown severity and category take the medium/general weights
			name:     "unknown enum values fall back",
			issue:    testIssue("weird", "strange", testNow.AddDate(0, 0, -100)),
			expected: 36,
		},
		{
			// 10 + 20 + 8 + 3*5 + 30 = 83
			name:        "nearby issues boost the score",
			issue:       testIssue(models.Streetlight, models.SeverityMedium, testNow),
			nearbyCount: 3,
			expected:    83,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ImpactScoreAt(tt.issue, tt.nearbyCount, testNow)
			if got != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestImpactScoreAt_AlwaysInRange(t *testing.T) {
	pathological := []struct {
		name        string
		issue       models.Issue
		nearbyCount int
	}{
		{"negative nearby count", testIssue(models.Water, models.SeverityCritical, testNow), -100},
		{"huge nearby count", testIssue(models.Water, models.SeverityCritical, testNow), 1000},
		{"far future createdAt", testIssue(models.General, models.SeverityLow, testNow.AddDate(10, 0, 0)), 0},
		{"far past createdAt", testIssue(models.General, models.SeverityLow, testNow.AddDate(-10, 0, 0)), 0},
		{"zero value issue", models.Issue{}, 0},
	}

	for _, tt := range pathological {
		t.Run(tt.name, func(t *testing.T) {
			got := ImpactScoreAt(tt.issue, tt.nearbyCount, testNow)
			if got < 0 || got > 100 {
				t.Errorf("Score out of [0,100]: %d", got)
			}
		})
	}
}

func TestPriorityAt(t *testing.T) {
	twoDuplicates := []DuplicateMatch{{Similarity: 0.8}, {Similarity: 0.7}}

	tests := []struct {
		name       string
		issue      models.Issue
		duplicates []DuplicateMatch
		expected   int
	}{
		{
			// 40 + 35 + 10 + 80*0.3 + 30 = 139, clamped to 100
			name: "fresh critical water issue with duplicates clamps",
			issue: func() models.Issue {
				i := testIssue(models.Water, models.SeverityCritical, testNow)
				i.ImpactScore = intPtr(80)
				return i
			}(),
			duplicates: twoDuplicates,
			expected:   100,
		},
		{
			// 20 + 10 + 0 + 50*0.3 + 0 = 45; absent impact defaults to 50
			name:     "old medium general issue uses impact default",
			issue:    testIssue(models.General, models.SeverityMedium, testNow.AddDate(0, 0, -100)),
			expected: 45,
		},
		{
			// 10 + 15 + 0 + 0*0.3 + 30 = 55; stored zero impact is honored
			name: "stored zero impact is not treated as absent",
			issue: func() models.Issue {
				i := testIssue(models.Garbage, models.SeverityLow, testNow)
				i.ImpactScore = intPtr(0)
				return i
			}(),
			expected: 55,
		},
		{
			// 30 + 25 + 5 + 50*0.3 + 25 = 100
			name: "five day old high pothole with one duplicate",
			issue: func() models.Issue {
				i := testIssue(models.Pothole, models.SeverityHigh, testNow.AddDate(0, 0, -5))
				return i
			}(),
			duplicates: []DuplicateMatch{{Similarity: 0.9}},
			expected:   100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PriorityAt(tt.issue, tt.duplicates, testNow)
			if got != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestPriorityAt_AlwaysInRange(t *testing.T) {
	issues := []models.Issue{
		{},
		testIssue("weird", "strange", testNow.AddDate(5, 0, 0)),
		testIssue(models.Water, models.SeverityCritical, testNow),
	}

	for _, issue := range issues {
		got := PriorityAt(issue, nil, testNow)
		if got < 0 || got > 100 {
			t.Errorf("Priority out of [0,100]: %d", got)
		}
	}
}
