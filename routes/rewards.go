package routes

import (
	"farmniti/controllers"
	"farmniti/middlewares"

	"github.com/gin-gonic/gin"
)

// SetupRewardRoutes registers the reward store and ledger endpoints
func SetupRewardRoutes(public, auth *gin.RouterGroup) {
	public.GET("/rewards", controllers.GetAllRewards)

	// Specific routes must come before /rewards/:id
	auth.GET("/rewards/user/redeemed", middlewares.RequirePermission("rewards", "redeem"), controllers.GetUserRedemptions)
	auth.GET("/rewards/redemptions/all", middlewares.RequirePermission("redemptions", "manage"), controllers.GetAllRedemptions)
	auth.PUT("/rewards/redemptions/:rewardId/:redemptionId", middlewares.RequirePermission("redemptions", "manage"), controllers.UpdateRedemptionStatus)

	public.GET("/rewards/:id", controllers.GetRewardByID)

	auth.POST("/rewards", middlewares.RequirePermission("rewards", "manage"), controllers.CreateReward)
	auth.PUT("/rewards/:id", middlewares.RequirePermission("rewards", "manage"), controllers.UpdateReward)
	auth.DELETE("/rewards/:id", middlewares.RequirePermission("rewards", "manage"), controllers.DeleteReward)

	auth.POST("/rewards/:id/redeem", middlewares.RequirePermission("rewards", "redeem"), controllers.RedeemReward)
}
