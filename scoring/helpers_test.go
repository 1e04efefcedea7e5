package scoring

import (
	"time"

	"civicreporter-be/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func loc(lat, lon float64) *models.Location {
	return &models.Location{Latitude: lat, Longitude: lon}
}

// testNow is the fixed clock used by deterministic score tests.
var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func testIssue(category models.IssueCategory, severity models.IssueSeverity, createdAt time.Time) models.Issue {
	return models.Issue{
		ID:        primitive.NewObjectID(),
		Category:  category,
		Severity:  severity,
		Status:    models.StatusReported,
		CreatedAt: createdAt,
	}
}
