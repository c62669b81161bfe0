package routes

import (
	"cofix-be/controllers"
	"cofix-be/middlewares"

	"github.com/gin-gonic/gin"
)

// AdminRoutes sets up the admin triage and dashboard routes
func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/api/admin", middlewares.AuthMiddleware(), middlewares.AdminOnly())
	{
		admin.GET("/issues", controllers.GetAllIssues)
		admin.PUT("/issues/:id/status", controllers.UpdateIssueStatus)
		admin.PUT("/issues/:id/resolve", controllers.ResolveIssue)
		admin.GET("/dashboard-stats", controllers.GetDashboardStats)
		admin.GET("/profile", controllers.GetAdminProfile)
	}
}
