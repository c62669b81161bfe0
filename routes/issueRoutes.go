package routes

import (
	"cofix-be/controllers"
	"cofix-be/middlewares"

	"github.com/gin-gonic/gin"
)

// IssueRoutes sets up the citizen-facing issue routes
func IssueRoutes(r *gin.Engine) {
	issue := r.Group("/api/issue")
	{
		issue.POST("/report", middlewares.AuthMiddleware(), middlewares.IssueRateLimiter(5), controllers.ReportIssue)
		issue.GET("/mine", middlewares.AuthMiddleware(), controllers.GetMyIssues)
		issue.GET("/recent", controllers.RecentIssues)
	}
}
