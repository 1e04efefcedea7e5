package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"civicreporter-be/config"
	"civicreporter-be/models"
	"civicreporter-be/scoring"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var issueCollection *mongo.Collection = config.GetCollection("issues")

// snapshotLimit bounds the candidate set for duplicate detection to the most
// recent records, keeping the O(n^2) heuristics cheap.
const snapshotLimit = 50

// duplicateSummary is what the client gets back about each detected
// duplicate, enough to warn the reporter without echoing full records.
type duplicateSummary struct {
	IssueID    string               `json:"issueId"`
	Category   models.IssueCategory `json:"category"`
	Similarity float64              `json:"similarity"`
	Reasons    scoring.MatchReasons `json:"reasons"`
}

// CreateIssue runs the submission pipeline: classify the description, detect
// duplicates against a snapshot of recent issues, score impact and priority,
// then persist the enriched record.
func CreateIssue(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	if _, err := primitive.ObjectIDFromHex(userID.(string)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	reportedBy := "anonymous"
	if email, ok := c.Get("email"); ok {
		if emailStr, ok := email.(string); ok && emailStr != "" {
			reportedBy = emailStr
		}
	}

	var input struct {
		Description string   `json:"description" binding:"required,max=1000"`
		Category    string   `json:"category,omitempty"`
		Latitude    *float64 `json:"latitude,omitempty"`
		Longitude   *float64 `json:"longitude,omitempty"`
		ImageURL    *string  `json:"imageUrl,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var location *models.Location
	if input.Latitude != nil && input.Longitude != nil {
		location = &models.Location{Latitude: *input.Latitude, Longitude: *input.Longitude}
	}

	now := time.Now()
	analysis := scoring.Classify(input.Description, input.Category)

	issue := models.Issue{
		ID:            primitive.NewObjectID(),
		Description:   input.Description,
		Category:      analysis.Category,
		Severity:      analysis.Severity,
		Department:    analysis.Department,
		EstimatedCost: &analysis.EstimatedCost,
		Location:      location,
		Status:        models.StatusReported,
		ReportedBy:    reportedBy,
		ImageURL:      input.ImageURL,
		AIAnalysis: &models.AIAnalysis{
			Confidence:  analysis.Confidence,
			AIGenerated: analysis.AIGenerated,
			ProcessedAt: analysis.ProcessedAt,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Duplicate detection only ever sees a point-in-time snapshot; a racing
	// submission may be missed, which is accepted.
	existing := recentSnapshot(ctx)
	duplicates := scoring.DetectDuplicates(issue, existing)
	issue.DuplicatesFound = len(duplicates)

	impact := scoring.ImpactScore(issue, 0)
	issue.ImpactScore = &impact
	priority := scoring.Priority(issue, duplicates)
	issue.Priority = &priority

	if _, err := issueCollection.InsertOne(ctx, issue); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create issue"})
		return
	}

	summaries := make([]duplicateSummary, 0, len(duplicates))
	for _, d := range duplicates {
		summaries = append(summaries, duplicateSummary{
			IssueID:    d.Issue.ID.Hex(),
			Category:   d.Issue.Category,
			Similarity: d.Similarity,
			Reasons:    d.Reasons,
		})
	}

	c.JSON(http.StatusCreated, gin.H{
		"issue":      issue,
		"duplicates": summaries,
	})
}

// recentSnapshot loads the newest issues as the duplicate-detection candidate
// set. A failed read degrades to an empty snapshot rather than an error.
func recentSnapshot(ctx context.Context) []models.Issue {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(snapshotLimit)

	cursor, err := issueCollection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil
	}
	defer cursor.Close(ctx)

	var issues []models.Issue
	if err := cursor.All(ctx, &issues); err != nil {
		return nil
	}
	return issues
}

// GetAllIssues handles retrieving all issues with filtering, search, sorting and pagination
func GetAllIssues(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	category := c.Query("category")
	status := c.Query("status")
	search := c.Query("search")
	sortParam := c.DefaultQuery("sort", "newest")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	filter := bson.M{}

	if category != "" && category != "all" {
		filter["category"] = category
	}

	if status != "" && status != "all" {
		filter["status"] = status
	}

	if search != "" {
		filter["description"] = bson.M{"$regex": search, "$options": "i"}
	}

	skip := (page - 1) * limit

	var sortOptions bson.D
	switch sortParam {
	case "oldest":
		sortOptions = bson.D{{Key: "createdAt", Value: 1}}
	case "priority":
		sortOptions = bson.D{{Key: "priority", Value: -1}}
	case "impact":
		sortOptions = bson.D{{Key: "impactScore", Value: -1}}
	case "newest":
		fallthrough
	default:
		sortOptions = bson.D{{Key: "createdAt", Value: -1}}
	}

	totalCount, err := issueCollection.CountDocuments(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count issues"})
		return
	}

	findOptions := options.Find().
		SetSort(sortOptions).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := issueCollection.Find(ctx, filter, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}
	defer cursor.Close(ctx)

	issues := []models.Issue{}
	if err := cursor.All(ctx, &issues); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode issues"})
		return
	}

	totalPages := int((totalCount + int64(limit) - 1) / int64(limit))

	c.JSON(http.StatusOK, gin.H{
		"issues":      issues,
		"totalIssues": totalCount,
		"totalPages":  totalPages,
		"currentPage": page,
	})
}

// GetIssue retrieves an issue by its ID
func GetIssue(c *gin.Context) {
	idParam := c.Param("id")
	issueID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var issue models.Issue
	err = issueCollection.FindOne(ctx, bson.M{"_id": issueID}).Decode(&issue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		}
		return
	}

	c.JSON(http.StatusOK, issue)
}

// UpdateIssueStatus moves an issue through its administrative lifecycle.
// Any status can follow any other; only status and updatedAt ever change.
func UpdateIssueStatus(c *gin.Context) {
	idParam := c.Param("id")
	issueID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":    input.Status,
		"updatedAt": time.Now(),
	}}

	result, err := issueCollection.UpdateOne(ctx, bson.M{"_id": issueID}, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update issue status"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Issue status updated successfully"})
}

// DeleteIssue allows the reporter of an issue to delete it
func DeleteIssue(c *gin.Context) {
	idParam := c.Param("id")
	issueID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	email, _ := c.Get("email")
	emailStr, _ := email.(string)
	if emailStr == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var issue models.Issue
	err = issueCollection.FindOne(ctx, bson.M{"_id": issueID}).Decode(&issue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		}
		return
	}

	if issue.ReportedBy != emailStr {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to delete this issue"})
		return
	}

	if _, err := issueCollection.DeleteOne(ctx, bson.M{"_id": issueID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete issue"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Issue deleted successfully"})
}

// RecentIssues returns the most recent located issues for the dashboard map
func RecentIssues(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	limit := 19

	filter := bson.M{
		"location": bson.M{"$exists": true, "$ne": nil},
	}

	projection := bson.M{
		"_id":         1,
		"description": 1,
		"location":    1,
		"category":    1,
		"severity":    1,
		"impactScore": 1,
		"createdAt":   1,
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetProjection(projection)

	cursor, err := issueCollection.Find(ctx, filter, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recent issues"})
		return
	}
	defer cursor.Close(ctx)

	issues := []models.Issue{}
	if err := cursor.All(ctx, &issues); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode recent issues"})
		return
	}

	type issueMarker struct {
		ID          string               `json:"id"`
		Description string               `json:"description"`
		Latitude    float64              `json:"latitude"`
		Longitude   float64              `json:"longitude"`
		Category    models.IssueCategory `json:"category"`
		Severity    models.IssueSeverity `json:"severity"`
		ImpactScore *int                 `json:"impactScore,omitempty"`
		CreatedAt   time.Time            `json:"createdAt"`
	}

	markers := []issueMarker{}
	for _, issue := range issues {
		if issue.Location == nil {
			continue
		}
		markers = append(markers, issueMarker{
			ID:          issue.ID.Hex(),
			Description: issue.Description,
			Latitude:    issue.Location.Latitude,
			Longitude:   issue.Location.Longitude,
			Category:    issue.Category,
			Severity:    issue.Severity,
			ImpactScore: issue.ImpactScore,
			CreatedAt:   issue.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, markers)
}
