package routes

import (
	"farmniti/controllers"
	"farmniti/middlewares"

	"github.com/gin-gonic/gin"
)

// SetupUserRoutes registers profile and leaderboard endpoints
func SetupUserRoutes(public, auth *gin.RouterGroup) {
	public.GET("/users/leaderboard", controllers.GetLeaderboard)

	auth.GET("/users/profile", controllers.GetProfile)
	auth.PUT("/users/profile", controllers.UpdateProfile)
	auth.GET("/users/farmers", middlewares.RequirePermission("users", "read"), controllers.GetFarmers)
}
