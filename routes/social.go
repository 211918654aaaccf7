package routes

import (
	"farmniti/controllers"
	"farmniti/middlewares"

	"github.com/gin-gonic/gin"
)

// SetupSocialRoutes registers the social wall endpoints
func SetupSocialRoutes(public, auth *gin.RouterGroup) {
	public.GET("/social/posts", controllers.GetFeed)

	auth.POST("/social/posts", middlewares.RequirePermission("posts", "write"), controllers.CreatePost)
	auth.POST("/social/posts/:id/like", controllers.ToggleLike)
	auth.POST("/social/posts/:id/comments", controllers.AddComment)
	auth.DELETE("/social/posts/:id", controllers.DeletePost)
}
