package routes

import (
	"civicreporter-be/controllers"
	"civicreporter-be/middlewares"

	"github.com/gin-gonic/gin"
)

// AnalyticsRoutes sets up the dashboard analytics routes
func AnalyticsRoutes(r *gin.Engine) {
	analytics := r.Group("/api/analytics", middlewares.AuthMiddleware())
	{
		analytics.GET("/overview", controllers.GetAnalyticsOverview)
		analytics.GET("/insights", controllers.GetInsights)
		analytics.GET("/optimize", controllers.GetResourcePlan)
	}
}
