package scoring

import (
	"fmt"
	"sort"

	"civicreporter-be/models"

	"github.com/montanaflynn/stats"
)

const (
	routeClusterRadiusKm  = 2.0
	routeHoursPerIssue    = 2.0
	issuesPerCrewDay      = 3
	highPriorityCutoff    = 70
	overloadedDeptCutoff  = 10
	batchSuggestionCutoff = 5
)

// Route is a greedily clustered group of spatially close issues serviced in
// one trip. Recomputed on every optimizer run; never persisted.
type Route struct {
	ID            int            `json:"id"`
	Issues        []models.Issue `json:"issues"`
	EstimatedTime float64        `json:"estimatedTime"`
	Priority      float64        `json:"priority"`
}

// DepartmentPlan summarizes one department's pending workload.
type DepartmentPlan struct {
	Department         string  `json:"department"`
	TotalIssues        int     `json:"totalIssues"`
	HighPriorityIssues int     `json:"highPriorityIssues"`
	TotalCost          float64 `json:"totalCost"`
	EstimatedDays      int     `json:"estimatedDays"`
	Routes             []Route `json:"routes"`
	Efficiency         float64 `json:"efficiency"`
}

// Suggestion is a human-readable resourcing hint for administrators.
type Suggestion struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
}

// OptimizationResult is the optimizer's full output.
type OptimizationResult struct {
	Departments        []DepartmentPlan `json:"departments"`
	Suggestions        []Suggestion     `json:"suggestions"`
	TotalPendingIssues int              `json:"totalPendingIssues"`
	TotalEstimatedCost float64          `json:"totalEstimatedCost"`
	AverageEfficiency  float64          `json:"averageEfficiency"`
}

// OptimizeResources plans remediation work across departments: unresolved
// issues are grouped by department, sorted by priority, clustered into 2 km
// routes and summarized with cost, duration and efficiency figures.
//
// Clustering is a single greedy pass in priority order: each unclustered
// issue seeds a route and absorbs every other unclustered issue within 2 km.
// Membership therefore depends on iteration order and routes are not
// re-balanced afterwards; that is a documented simplification, not a defect.
func OptimizeResources(issues []models.Issue) OptimizationResult {
	pending := []models.Issue{}
	for _, issue := range issues {
		if issue.Status != models.StatusResolved {
			pending = append(pending, issue)
		}
	}

	// Group by department, preserving first-seen order so the output is
	// deterministic.
	var deptOrder []string
	groups := map[string][]models.Issue{}
	for _, issue := range pending {
		dept := departmentOrDefault(issue)
		if _, seen := groups[dept]; !seen {
			deptOrder = append(deptOrder, dept)
		}
		groups[dept] = append(groups[dept], issue)
	}

	departments := []DepartmentPlan{}
	totalCost := 0.0
	var efficiencies []float64

	for _, dept := range deptOrder {
		plan := planDepartment(dept, groups[dept])
		totalCost += plan.TotalCost
		efficiencies = append(efficiencies, plan.Efficiency)
		departments = append(departments, plan)
	}

	avgEfficiency, err := stats.Mean(efficiencies)
	if err != nil {
		avgEfficiency = 0
	}

	return OptimizationResult{
		Departments:        departments,
		Suggestions:        buildSuggestions(departments, pending),
		TotalPendingIssues: len(pending),
		TotalEstimatedCost: totalCost,
		AverageEfficiency:  avgEfficiency,
	}
}

func planDepartment(dept string, issues []models.Issue) DepartmentPlan {
	sorted := make([]models.Issue, len(issues))
	copy(sorted, issues)
	sort.SliceStable(sorted, func(i, j int) bool {
		return priorityOrDefault(sorted[i]) > priorityOrDefault(sorted[j])
	})

	cost := 0.0
	highPriority := 0
	for _, issue := range sorted {
		cost += costOrDefault(issue)
		if priorityOrDefault(issue) > highPriorityCutoff {
			highPriority++
		}
	}

	efficiency := float64(highPriority)/float64(len(sorted))*100 + 20
	if efficiency > 100 {
		efficiency = 100
	}

	return DepartmentPlan{
		Department:         dept,
		TotalIssues:        len(sorted),
		HighPriorityIssues: highPriority,
		TotalCost:          cost,
		EstimatedDays:      (len(sorted) + issuesPerCrewDay - 1) / issuesPerCrewDay,
		Routes:             buildRoutes(sorted),
		Efficiency:         efficiency,
	}
}

func buildRoutes(issues []models.Issue) []Route {
	routes := []Route{}
	clustered := make([]bool, len(issues))

	for i, seed := range issues {
		if clustered[i] {
			continue
		}

		members := []models.Issue{seed}
		clustered[i] = true
		for j := range issues {
			if clustered[j] {
				continue
			}
			if DistanceKm(seed.Location, issues[j].Location) < routeClusterRadiusKm {
				members = append(members, issues[j])
				clustered[j] = true
			}
		}

		priorities := make([]float64, len(members))
		for k, m := range members {
			priorities[k] = priorityOrDefault(m)
		}
		avgPriority, err := stats.Mean(priorities)
		if err != nil {
			avgPriority = 0
		}

		routes = append(routes, Route{
			ID:            len(routes) + 1,
			Issues:        members,
			EstimatedTime: float64(len(members)) * routeHoursPerIssue,
			Priority:      avgPriority,
		})
	}

	sort.SliceStable(routes, func(i, j int) bool {
		return routes[i].Priority > routes[j].Priority
	})

	return routes
}

func buildSuggestions(departments []DepartmentPlan, pending []models.Issue) []Suggestion {
	suggestions := []Suggestion{}

	for _, dept := range departments {
		if dept.TotalIssues > overloadedDeptCutoff {
			suggestions = append(suggestions, Suggestion{
				Type:     "warning",
				Message:  fmt.Sprintf("%s has %d pending issues. Consider allocating more resources.", dept.Department, dept.TotalIssues),
				Priority: "high",
			})
		}
	}

	highPriority := 0
	for _, issue := range pending {
		if priorityOrDefault(issue) > highPriorityCutoff {
			highPriority++
		}
	}
	if highPriority > batchSuggestionCutoff {
		suggestions = append(suggestions, Suggestion{
			Type:     "optimization",
			Message:  fmt.Sprintf("%d high-priority issues detected. Batch processing could save 20%% time.", highPriority),
			Priority: "medium",
		})
	}

	return suggestions
}
