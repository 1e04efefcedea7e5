package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueCategory enum
type IssueCategory string

const (
	Pothole      IssueCategory = "pothole"
	Streetlight  IssueCategory = "streetlight"
	Garbage      IssueCategory = "garbage"
	Water        IssueCategory = "water"
	Traffic      IssueCategory = "traffic"
	Safety       IssueCategory = "safety"
	Parks        IssueCategory = "parks"
	Construction IssueCategory = "construction"
	Electricity  IssueCategory = "electricity"
	General      IssueCategory = "general"
)

// IssueSeverity enum
type IssueSeverity string

const (
	SeverityLow      IssueSeverity = "low"
	SeverityMedium   IssueSeverity = "medium"
	SeverityHigh     IssueSeverity = "high"
	SeverityCritical IssueSeverity = "critical"
)

// IssueStatus enum
type IssueStatus string

const (
	StatusReported   IssueStatus = "reported"
	StatusAssigned   IssueStatus = "assigned"
	StatusInProgress IssueStatus = "in-progress"
	StatusResolved   IssueStatus = "resolved"
	StatusClosed     IssueStatus = "closed"
)

// ValidStatus reports whether s is one of the known issue statuses.
func ValidStatus(s string) bool {
	switch IssueStatus(s) {
	case StatusReported, StatusAssigned, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// ParseCategory maps a raw string to a known category, falling back to General.
func ParseCategory(s string) IssueCategory {
	c := IssueCategory(strings.ToLower(s))
	switch c {
	case Pothole, Streetlight, Garbage, Water, Traffic, Safety, Parks, Construction, Electricity, General:
		return c
	}
	return General
}

// Location is a WGS84 point in degrees.
type Location struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// AIAnalysis records how the classifier processed a submission.
type AIAnalysis struct {
	Confidence  float64 `bson:"confidence" json:"confidence"`
	AIGenerated bool    `bson:"aiGenerated" json:"aiGenerated"`
	ProcessedAt string  `bson:"processedAt" json:"processedAt"`
}

// Issue represents a civic issue reported by a citizen. Pointer fields are
// optional: scoring resolves an absent value to a named default, so a stored
// zero is never mistaken for "missing".
type Issue struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Description     string             `bson:"description" json:"description"`
	Category        IssueCategory      `bson:"category" json:"category"`
	Severity        IssueSeverity      `bson:"severity" json:"severity"`
	Department      string             `bson:"department" json:"department"`
	EstimatedCost   *float64           `bson:"estimatedCost,omitempty" json:"estimatedCost,omitempty"`
	ImpactScore     *int               `bson:"impactScore,omitempty" json:"impactScore,omitempty"`
	Priority        *int               `bson:"priority,omitempty" json:"priority,omitempty"`
	DuplicatesFound int                `bson:"duplicatesFound" json:"duplicatesFound"`
	Location        *Location          `bson:"location,omitempty" json:"location,omitempty"`
	Status          IssueStatus        `bson:"status" json:"status"`
	ReportedBy      string             `bson:"reportedBy" json:"reportedBy"`
	ImageURL        *string            `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	AIAnalysis      *AIAnalysis        `bson:"aiAnalysis,omitempty" json:"aiAnalysis,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
