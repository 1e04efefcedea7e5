package scoring

import (
	"math"
	"time"

	"civicreporter-be/models"
)

// ImpactScore estimates community harm on a 0-100 scale from the issue's
// severity, category, neighborhood density and age.
func ImpactScore(issue models.Issue, nearbyCount int) int {
	return ImpactScoreAt(issue, nearbyCount, time.Now())
}

// ImpactScoreAt is ImpactScore evaluated against a fixed clock.
func ImpactScoreAt(issue models.Issue, nearbyCount int, now time.Time) int {
	const baseScore = 10

	severity, ok := impactSeverityMultiplier[issue.Severity]
	if !ok {
		severity = impactSeverityMultiplier[models.SeverityMedium]
	}
	category, ok := impactCategoryWeight[issue.Category]
	if !ok {
		category = impactCategoryWeight[models.General]
	}

	// Newer issues score higher; decay bottoms out at 1.
	timeDecay := 30 - daysSince(issue.CreatedAt, now)
	if timeDecay < 1 {
		timeDecay = 1
	}

	score := baseScore + severity*10 + category + nearbyCount*5 + timeDecay

	return clampScore(float64(score))
}

// Priority ranks remediation urgency on a 0-100 scale, factoring in how many
// duplicates the submission matched.
func Priority(issue models.Issue, duplicates []DuplicateMatch) int {
	return PriorityAt(issue, duplicates, time.Now())
}

// PriorityAt is Priority evaluated against a fixed clock.
func PriorityAt(issue models.Issue, duplicates []DuplicateMatch, now time.Time) int {
	severity, ok := prioritySeverityWeight[issue.Severity]
	if !ok {
		severity = prioritySeverityWeight[models.SeverityMedium]
	}
	category, ok := priorityCategoryWeight[issue.Category]
	if !ok {
		category = priorityCategoryWeight[models.General]
	}

	timeUrgency := 30 - daysSince(issue.CreatedAt, now)
	if timeUrgency < 0 {
		timeUrgency = 0
	}

	score := float64(severity) +
		float64(category) +
		float64(len(duplicates)*5) +
		impactOrDefault(issue)*0.3 +
		float64(timeUrgency)

	return clampScore(score)
}

func daysSince(t, now time.Time) int {
	return int(math.Floor(now.Sub(t).Hours() / 24))
}

func clampScore(score float64) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return int(math.Round(score))
}
