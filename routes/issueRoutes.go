package routes

import (
	"civicreporter-be/controllers"
	"civicreporter-be/middlewares"

	"github.com/gin-gonic/gin"
)

// IssueRoutes sets up the issue routes
func IssueRoutes(r *gin.Engine) {
	issue := r.Group("/api/issue")
	{
		issue.POST("/create", middlewares.AuthMiddleware(), middlewares.IssueRateLimiter(10), controllers.CreateIssue)
		issue.GET("/:id", middlewares.AuthMiddleware(), controllers.GetIssue)
		issue.PATCH("/:id/status", middlewares.AuthMiddleware(), controllers.UpdateIssueStatus)
		issue.DELETE("/:id", middlewares.AuthMiddleware(), controllers.DeleteIssue)
	}

	issues := r.Group("/api/issues")
	{
		issues.GET("", middlewares.AuthMiddleware(), controllers.GetAllIssues)
		issues.GET("/recent", controllers.RecentIssues)
	}
}
