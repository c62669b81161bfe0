package routes

import (
	"cofix-be/controllers"

	"github.com/gin-gonic/gin"
)

// AuthRoutes sets up citizen and admin authentication routes
func AuthRoutes(r *gin.Engine) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", controllers.RegisterUser)
		auth.POST("/login", controllers.LoginUser)
	}

	adminAuth := r.Group("/api/admin")
	{
		adminAuth.POST("/register", controllers.RegisterAdmin)
		adminAuth.POST("/login", controllers.LoginAdmin)
	}
}
