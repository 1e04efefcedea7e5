package scoring

import (
	"sort"

	"civicreporter-be/models"

	"github.com/montanaflynn/stats"
)

const (
	hotspotRadiusKm     = 1.0
	hotspotMinNeighbors = 2
	maxTopCategories    = 3
	maxHotspots         = 5
	highImpactCutoff    = 75
)

// CategoryCount is one row of the category rollup.
type CategoryCount struct {
	Category models.IssueCategory `json:"category"`
	Count    int                  `json:"count"`
}

// DepartmentLoad is one department's open-issue count.
type DepartmentLoad struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
}

// Hotspot is a spatial cluster of issues likely sharing a root cause.
type Hotspot struct {
	Center    models.Location `json:"center"`
	Count     int             `json:"count"`
	AvgImpact float64         `json:"avgImpact"`
}

// Insights are the dashboard-side rollups computed over the live collection.
type Insights struct {
	TotalProcessed     int              `json:"totalProcessed"`
	AvgConfidence      float64          `json:"avgConfidence"`
	TopCategories      []CategoryCount  `json:"topCategories"`
	HighImpactIssues   []models.Issue   `json:"highImpactIssues"`
	DepartmentWorkload []DepartmentLoad `json:"departmentWorkload"`
	PredictedHotspots  []Hotspot        `json:"predictedHotspots"`
}

// BuildInsights aggregates enriched issue records into the dashboard's
// insight views. Purely presentational; no new scores are computed here.
func BuildInsights(issues []models.Issue) Insights {
	return Insights{
		TotalProcessed:     countProcessed(issues),
		AvgConfidence:      averageConfidence(issues),
		TopCategories:      topCategories(issues),
		HighImpactIssues:   highImpactIssues(issues),
		DepartmentWorkload: departmentWorkload(issues),
		PredictedHotspots:  predictedHotspots(issues),
	}
}

func countProcessed(issues []models.Issue) int {
	n := 0
	for _, issue := range issues {
		if issue.AIAnalysis != nil {
			n++
		}
	}
	return n
}

func averageConfidence(issues []models.Issue) float64 {
	var confidences []float64
	for _, issue := range issues {
		if issue.AIAnalysis != nil {
			confidences = append(confidences, issue.AIAnalysis.Confidence)
		}
	}
	avg, err := stats.Mean(confidences)
	if err != nil {
		return 0
	}
	return avg
}

func topCategories(issues []models.Issue) []CategoryCount {
	var order []models.IssueCategory
	counts := map[models.IssueCategory]int{}
	for _, issue := range issues {
		cat := issue.Category
		if cat == "" {
			cat = models.General
		}
		if _, seen := counts[cat]; !seen {
			order = append(order, cat)
		}
		counts[cat]++
	}

	rollup := []CategoryCount{}
	for _, cat := range order {
		rollup = append(rollup, CategoryCount{Category: cat, Count: counts[cat]})
	}
	sort.SliceStable(rollup, func(i, j int) bool {
		return rollup[i].Count > rollup[j].Count
	})

	if len(rollup) > maxTopCategories {
		rollup = rollup[:maxTopCategories]
	}
	return rollup
}

func highImpactIssues(issues []models.Issue) []models.Issue {
	high := []models.Issue{}
	for _, issue := range issues {
		if issue.ImpactScore != nil && *issue.ImpactScore > highImpactCutoff {
			high = append(high, issue)
		}
	}
	sort.SliceStable(high, func(i, j int) bool {
		return *high[i].ImpactScore > *high[j].ImpactScore
	})
	return high
}

func departmentWorkload(issues []models.Issue) []DepartmentLoad {
	var order []string
	counts := map[string]int{}
	for _, issue := range issues {
		if issue.Status == models.StatusResolved {
			continue
		}
		dept := departmentOrDefault(issue)
		if _, seen := counts[dept]; !seen {
			order = append(order, dept)
		}
		counts[dept]++
	}

	workload := []DepartmentLoad{}
	for _, dept := range order {
		workload = append(workload, DepartmentLoad{Department: dept, Count: counts[dept]})
	}
	return workload
}

// predictedHotspots greedily clusters issues within 1 km of a seed; clusters
// of three or more become hotspots ranked by mean impact score.
func predictedHotspots(issues []models.Issue) []Hotspot {
	hotspots := []Hotspot{}
	clustered := make([]bool, len(issues))

	for i, seed := range issues {
		if clustered[i] {
			continue
		}

		impacts := []float64{impactStored(issues[i])}
		memberIdx := []int{i}
		for j := range issues {
			if j == i || clustered[j] {
				continue
			}
			if DistanceKm(seed.Location, issues[j].Location) < hotspotRadiusKm {
				impacts = append(impacts, impactStored(issues[j]))
				memberIdx = append(memberIdx, j)
			}
		}

		if len(memberIdx)-1 < hotspotMinNeighbors || seed.Location == nil {
			continue
		}

		for _, j := range memberIdx {
			clustered[j] = true
		}

		avgImpact, err := stats.Mean(impacts)
		if err != nil {
			avgImpact = 0
		}
		hotspots = append(hotspots, Hotspot{
			Center:    *seed.Location,
			Count:     len(memberIdx),
			AvgImpact: avgImpact,
		})
	}

	sort.SliceStable(hotspots, func(i, j int) bool {
		return hotspots[i].AvgImpact > hotspots[j].AvgImpact
	})

	if len(hotspots) > maxHotspots {
		hotspots = hotspots[:maxHotspots]
	}
	return hotspots
}

// impactStored resolves a missing impact score to 0 for hotspot averaging,
// matching the dashboard's display semantics rather than the scoring default.
func impactStored(issue models.Issue) float64 {
	if issue.ImpactScore != nil {
		return float64(*issue.ImpactScore)
	}
	return 0
}
