package scoring

import (
	"math"
	"strings"
	"testing"

	"civicreporter-be/models"
)

func pendingIssue(dept string, priority int) models.Issue {
	issue := testIssue(models.General, models.SeverityMedium, testNow)
	issue.Department = dept
	issue.Priority = intPtr(priority)
	return issue
}

func TestOptimizeResources_EmptyInput(t *testing.T) {
	result := OptimizeResources(nil)

	if result.Departments == nil || len(result.Departments) != 0 {
		t.Errorf("Expected empty non-nil departments, got %v", result.Departments)
	}
	if result.Suggestions == nil || len(result.Suggestions) != 0 {
		t.Errorf("Expected empty non-nil suggestions, got %v", result.Suggestions)
	}
	if result.TotalPendingIssues != 0 {
		t.Errorf("Expected 0 pending issues, got %d", result.TotalPendingIssues)
	}
	if result.TotalEstimatedCost != 0 {
		t.Errorf("Expected 0 total cost, got %f", result.TotalEstimatedCost)
	}
	if result.AverageEfficiency != 0 {
		t.Errorf("Expected 0 average efficiency fallback, got %f", result.AverageEfficiency)
	}
}

func TestOptimizeResources_PendingCountInvariant(t *testing.T) {
	issues := []models.Issue{
		pendingIssue("public_works", 60),
		pendingIssue("sanitation", 40),
		pendingIssue("sanitation", 80),
	}
	resolved := pendingIssue("public_works", 90)
	resolved.Status = models.StatusResolved
	issues = append(issues, resolved)

	result := OptimizeResources(issues)

	sum := 0
	for _, dept := range result.Departments {
		sum += dept.TotalIssues
	}
	if sum != 3 {
		t.Errorf("Department totals %d do not match 3 unresolved issues", sum)
	}
	if result.TotalPendingIssues != 3 {
		t.Errorf("Expected 3 pending, got %d", result.TotalPendingIssues)
	}
}

func TestOptimizeResources_OverloadedDepartmentWarning(t *testing.T) {
	issues := []models.Issue{}
	for i := 0; i < 12; i++ {
		issues = append(issues, pendingIssue("public_works", 50))
	}

	result := OptimizeResources(issues)

	warnings := 0
	for _, s := range result.Suggestions {
		if s.Type == "warning" {
			warnings++
			if !strings.Contains(s.Message, "public_works") {
				t.Errorf("Warning does not name the department: %q", s.Message)
			}
			if s.Priority != "high" {
				t.Errorf("Expected high priority warning, got %q", s.Priority)
			}
		}
	}
	if warnings != 1 {
		t.Errorf("Expected exactly one warning, got %d", warnings)
	}
}

func TestOptimizeResources_BatchSuggestion(t *testing.T) {
	issues := []models.Issue{}
	for i := 0; i < 6; i++ {
		issues = append(issues, pendingIssue("public_works", 85))
	}

	result := OptimizeResources(issues)

	found := false
	for _, s := range result.Suggestions {
		if s.Type == "optimization" {
			found = true
			if !strings.Contains(s.Message, "6 high-priority") {
				t.Errorf("Unexpected optimization message: %q", s.Message)
			}
		}
	}
	if !found {
		t.Errorf("Expected an optimization suggestion for 6 high-priority issues")
	}
}

func TestOptimizeResources_DepartmentFigures(t *testing.T) {
	issues := []models.Issue{
		pendingIssue("sanitation", 80),
		pendingIssue("sanitation", 60),
		pendingIssue("sanitation", 50),
		pendingIssue("sanitation", 40),
	}
	issues[0].EstimatedCost = floatPtr(1000)
	// Remaining three have no stored cost and default to 5000 each.

	result := OptimizeResources(issues)

	if len(result.Departments) != 1 {
		t.Fatalf("Expected one department, got %d", len(result.Departments))
	}
	dept := result.Departments[0]

	if dept.TotalCost != 16000 {
		t.Errorf("Expected total cost 16000, got %f", dept.TotalCost)
	}
	if dept.EstimatedDays != 2 {
		t.Errorf("Expected ceil(4/3) = 2 days, got %d", dept.EstimatedDays)
	}
	if dept.HighPriorityIssues != 1 {
		t.Errorf("Expected 1 high-priority issue, got %d", dept.HighPriorityIssues)
	}
	// 1/4*100 + 20 = 45
	if math.Abs(dept.Efficiency-45) > 1e-9 {
		t.Errorf("Expected efficiency 45, got %f", dept.Efficiency)
	}
	if result.TotalEstimatedCost != 16000 {
		t.Errorf("Expected total estimated cost 16000, got %f", result.TotalEstimatedCost)
	}
}

func TestOptimizeResources_EfficiencyCapped(t *testing.T) {
	issues := []models.Issue{
		pendingIssue("police", 90),
		pendingIssue("police", 95),
	}

	result := OptimizeResources(issues)

	if result.Departments[0].Efficiency != 100 {
		t.Errorf("Expected efficiency capped at 100, got %f", result.Departments[0].Efficiency)
	}
}

func TestOptimizeResources_GreedyRouteClustering(t *testing.T) {
	near1 := pendingIssue("public_works", 90)
	near1.Location = loc(28.6139, 77.2090)
	near2 := pendingIssue("public_works", 60)
	near2.Location = loc(28.6200, 77.2090) // ~700m north
	near3 := pendingIssue("public_works", 30)
	near3.Location = loc(28.6100, 77.2090) // ~400m south
	far := pendingIssue("public_works", 50)
	far.Location = loc(28.9000, 77.2090) // ~32km away

	result := OptimizeResources([]models.Issue{near1, near2, near3, far})

	if len(result.Departments) != 1 {
		t.Fatalf("Expected one department, got %d", len(result.Departments))
	}
	routes := result.Departments[0].Routes
	if len(routes) != 2 {
		t.Fatalf("Expected two routes, got %d", len(routes))
	}

	// Highest-priority issue seeds the first-formed cluster of three; routes
	// are then ordered by mean priority: (90+60+30)/3 = 60 vs 50.
	if len(routes[0].Issues) != 3 {
		t.Errorf("Expected the 3-issue cluster first, got %d members", len(routes[0].Issues))
	}
	if routes[0].EstimatedTime != 6 {
		t.Errorf("Expected 6h for a 3-issue route, got %f", routes[0].EstimatedTime)
	}
	if math.Abs(routes[0].Priority-60) > 1e-9 {
		t.Errorf("Expected mean route priority 60, got %f", routes[0].Priority)
	}
	if len(routes[1].Issues) != 1 || routes[1].EstimatedTime != 2 {
		t.Errorf("Expected a single-issue 2h route, got %d members / %fh", len(routes[1].Issues), routes[1].EstimatedTime)
	}
}

func TestOptimizeResources_MissingLocationsNeverCluster(t *testing.T) {
	a := pendingIssue("sanitation", 70)
	b := pendingIssue("sanitation", 60)
	c := pendingIssue("sanitation", 50)

	result := OptimizeResources([]models.Issue{a, b, c})

	routes := result.Departments[0].Routes
	if len(routes) != 3 {
		t.Errorf("Expected 3 singleton routes for unlocated issues, got %d", len(routes))
	}
}

func TestOptimizeResources_MissingDepartmentAndPriorityDefaults(t *testing.T) {
	issue := testIssue(models.General, models.SeverityMedium, testNow)

	result := OptimizeResources([]models.Issue{issue})

	if len(result.Departments) != 1 || result.Departments[0].Department != "general" {
		t.Fatalf("Expected a single general department, got %+v", result.Departments)
	}
	// Default priority 50 is not high priority.
	if result.Departments[0].HighPriorityIssues != 0 {
		t.Errorf("Default priority must not count as high priority")
	}
	if result.Departments[0].TotalCost != DefaultEstimatedCost {
		t.Errorf("Expected default cost %f, got %f", DefaultEstimatedCost, result.Departments[0].TotalCost)
	}
}
