package routes

import (
	"farmniti/controllers"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes registers signup and login endpoints
func SetupAuthRoutes(public, auth *gin.RouterGroup) {
	public.POST("/auth/register", controllers.Register)
	public.POST("/auth/login", controllers.Login)

	auth.GET("/auth/me", controllers.GetMe)
}
