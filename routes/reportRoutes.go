package routes

import (
	"cleansweep-be/controllers"
	"cleansweep-be/middlewares"

	"github.com/gin-gonic/gin"
)

// ReportRoutes sets up the report lifecycle routes
func ReportRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.POST("/report", middlewares.AuthMiddleware(), middlewares.SubmissionRateLimiter(10), controllers.CreateReport)
		api.POST("/cleanup", middlewares.AuthMiddleware(), middlewares.SubmissionRateLimiter(10), controllers.SubmitCleanup)
		api.POST("/reports/verify", middlewares.AuthMiddleware(), controllers.VerifyReport)

		api.GET("/reports/pending", controllers.GetPendingReports)
		api.GET("/reports/completed", controllers.GetCompletedReports)
		api.GET("/reports/verified", controllers.GetVerifiedReports)
		api.GET("/reports/recent", controllers.RecentReports)
		api.GET("/analytics", controllers.GetAnalytics)
		api.GET("/dashboard", controllers.GetDashboard)
	}
}
