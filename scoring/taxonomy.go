package scoring

import "civicreporter-be/models"

// Named defaults substituted when the corresponding optional field is absent.
const (
	DefaultPriority      = 50
	DefaultImpactScore   = 50
	DefaultEstimatedCost = 5000.0
)

// CategoryProfile describes one row of the classification taxonomy: the
// keywords that signal the category plus the responsible department, urgency
// tier and base remediation cost.
type CategoryProfile struct {
	Category      models.IssueCategory
	Keywords      []string
	Department    string
	Urgency       string
	EstimatedCost float64
}

// categoryProfiles is deliberately an ordered slice, not a map: when two
// categories reach the same confidence the first declared one wins.
var categoryProfiles = []CategoryProfile{
	{
		Category:      models.Pothole,
		Keywords:      []string{"hole", "road", "street", "damage", "crack", "bump", "rough", "broken road", "pavement", "infrastructure"},
		Department:    "public_works",
		Urgency:       "high",
		EstimatedCost: 5000,
	},
	{
		Category:      models.Streetlight,
		Keywords:      []string{"light", "lamp", "dark", "broken", "not working", "electricity", "bulb", "pole"},
		Department:    "electrical",
		Urgency:       "medium",
		EstimatedCost: 2000,
	},
	{
		Category:      models.Garbage,
		Keywords:      []string{"waste", "trash", "dump", "dirty", "smell", "bin", "litter", "overflow", "collection"},
		Department:    "sanitation",
		Urgency:       "high",
		EstimatedCost: 1000,
	},
	{
		Category:      models.Water,
		Keywords:      []string{"leak", "pipe", "drain", "overflow", "sewage", "water", "burst", "flooding", "tap"},
		Department:    "water_dept",
		Urgency:       "critical",
		EstimatedCost: 8000,
	},
	{
		Category:      models.Traffic,
		Keywords:      []string{"signal", "sign", "traffic", "zebra", "crossing", "junction", "congestion"},
		Department:    "traffic_police",
		Urgency:       "medium",
		EstimatedCost: 3000,
	},
	{
		Category:      models.Safety,
		Keywords:      []string{"unsafe", "danger", "security", "crime", "violence", "theft", "harassment"},
		Department:    "police",
		Urgency:       "critical",
		EstimatedCost: 2000,
	},
	{
		Category:      models.Parks,
		Keywords:      []string{"park", "garden", "playground", "trees", "maintenance", "recreation"},
		Department:    "parks_dept",
		Urgency:       "low",
		EstimatedCost: 3000,
	},
	{
		Category:      models.Construction,
		Keywords:      []string{"building", "construction", "illegal", "permit", "violation", "structure"},
		Department:    "building_dept",
		Urgency:       "medium",
		EstimatedCost: 10000,
	},
	{
		Category:      models.Electricity,
		Keywords:      []string{"power", "electricity", "outage", "wire", "transformer", "voltage"},
		Department:    "electricity_board",
		Urgency:       "high",
		EstimatedCost: 4000,
	},
}

// severityTiers are scanned in order; the first tier with any keyword hit
// decides the severity.
var severityTiers = []struct {
	Level    models.IssueSeverity
	Keywords []string
}{
	{models.SeverityCritical, []string{"urgent", "emergency", "dangerous", "accident", "major", "severe"}},
	{models.SeverityHigh, []string{"bad", "terrible", "awful", "huge", "big", "serious"}},
	{models.SeverityMedium, []string{"moderate", "medium", "average", "normal"}},
	{models.SeverityLow, []string{"small", "minor", "little", "tiny"}},
}

// Impact score weights.
var (
	impactSeverityMultiplier = map[models.IssueSeverity]int{
		models.SeverityCritical: 4,
		models.SeverityHigh:     3,
		models.SeverityMedium:   2,
		models.SeverityLow:      1,
	}
	impactCategoryWeight = map[models.IssueCategory]int{
		models.Pothole:     15,
		models.Water:       20,
		models.Garbage:     10,
		models.Streetlight: 8,
		models.Traffic:     12,
		models.General:     5,
	}
)

// Priority score weights.
var (
	prioritySeverityWeight = map[models.IssueSeverity]int{
		models.SeverityCritical: 40,
		models.SeverityHigh:     30,
		models.SeverityMedium:   20,
		models.SeverityLow:      10,
	}
	priorityCategoryWeight = map[models.IssueCategory]int{
		models.Water:       35,
		models.Pothole:     25,
		models.Traffic:     20,
		models.Streetlight: 15,
		models.Garbage:     15,
		models.General:     10,
	}
)

func lookupProfile(category models.IssueCategory) (CategoryProfile, bool) {
	for _, p := range categoryProfiles {
		if p.Category == category {
			return p, true
		}
	}
	return CategoryProfile{}, false
}

func priorityOrDefault(issue models.Issue) float64 {
	if issue.Priority != nil {
		return float64(*issue.Priority)
	}
	return DefaultPriority
}

func impactOrDefault(issue models.Issue) float64 {
	if issue.ImpactScore != nil {
		return float64(*issue.ImpactScore)
	}
	return DefaultImpactScore
}

func costOrDefault(issue models.Issue) float64 {
	if issue.EstimatedCost != nil {
		return *issue.EstimatedCost
	}
	return DefaultEstimatedCost
}

func departmentOrDefault(issue models.Issue) string {
	if issue.Department != "" {
		return issue.Department
	}
	return "general"
}
