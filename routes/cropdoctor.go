package routes

import (
	"farmniti/controllers"
	"farmniti/middlewares"

	"github.com/gin-gonic/gin"
)

// SetupCropDoctorRoutes registers the AI advisory endpoint
func SetupCropDoctorRoutes(auth *gin.RouterGroup) {
	auth.POST("/ai/crop-doctor", middlewares.RequirePermission("cropdoctor", "use"), controllers.DiagnoseCrop)
}
