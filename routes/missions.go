package routes

import (
	"farmniti/controllers"
	"farmniti/middlewares"

	"github.com/gin-gonic/gin"
)

// SetupMissionRoutes registers the mission lifecycle endpoints
func SetupMissionRoutes(public, auth *gin.RouterGroup) {
	// Listing is public; specific routes before parameterized ones
	public.GET("/missions", controllers.GetAllMissions)
	public.GET("/missions/:id", controllers.GetMissionByID)

	auth.POST("/missions", middlewares.RequirePermission("missions", "manage"), controllers.CreateMission)
	auth.PUT("/missions/:id", middlewares.RequirePermission("missions", "manage"), controllers.UpdateMission)
	auth.DELETE("/missions/:id", middlewares.RequirePermission("missions", "manage"), controllers.DeleteMission)

	auth.POST("/missions/:id/start", middlewares.RequirePermission("missions", "participate"), controllers.StartMission)
	auth.POST("/missions/:id/complete", middlewares.RequirePermission("missions", "participate"), controllers.CompleteMission)
}
