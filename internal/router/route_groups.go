package router

import (
	"brushtrack_backend/internal/handlers"
	"brushtrack_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up registration, login and the authenticated profile route.
func SetupAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	authRoutes := apiGroup.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)

		authRequiredRoutes := authRoutes.Group("")
		authRequiredRoutes.Use(middleware.AuthMiddleware())
		{
			authRequiredRoutes.GET("/me", authHandler.GetCurrentParent)
		}
	}
}

// SetupParentRoutes sets up the parent routes, including the nested child
// collection and the parent's usage log.
func SetupParentRoutes(apiGroup *gin.RouterGroup, parentHandler *handlers.ParentHandler, childHandler *handlers.ChildHandler, usageHandler *handlers.UsageHandler) {
	parentRoutes := apiGroup.Group("/parents")
	{
		parentRoutes.POST("", parentHandler.CreateParent)
		parentRoutes.GET("", parentHandler.GetParents)
		parentRoutes.GET("/:id", parentHandler.GetParentByID)
		parentRoutes.DELETE("/:id", parentHandler.DeleteParent)
		parentRoutes.GET("/:id/children", childHandler.GetChildren)
		parentRoutes.POST("/:id/children", childHandler.CreateChild)
		parentRoutes.GET("/:id/usage", usageHandler.GetUsage)
	}
}

// SetupChildRoutes sets up the child routes and the per-child sub-resources.
func SetupChildRoutes(
	apiGroup *gin.RouterGroup,
	childHandler *handlers.ChildHandler,
	brushingHandler *handlers.BrushingHandler,
	statsHandler *handlers.StatsHandler,
	rewardHandler *handlers.RewardHandler,
	reminderHandler *handlers.ReminderHandler,
	avatarHandler *handlers.AvatarHandler,
) {
	childRoutes := apiGroup.Group("/children")
	{
		childRoutes.GET("/:id", childHandler.GetChildByID)
		childRoutes.PUT("/:id", childHandler.UpdateChild)
		childRoutes.DELETE("/:id", childHandler.DeleteChild)

		childRoutes.GET("/:id/brushings", brushingHandler.GetBrushingRecords)
		childRoutes.POST("/:id/brushings", brushingHandler.CreateBrushingRecord)

		childRoutes.GET("/:id/stats", statsHandler.GetChildStats)

		childRoutes.GET("/:id/rewards", rewardHandler.GetRewards)
		childRoutes.POST("/:id/rewards", rewardHandler.CreateReward)

		childRoutes.GET("/:id/reminders", reminderHandler.GetReminder)
		childRoutes.PUT("/:id/reminders", reminderHandler.PutReminder)

		childRoutes.GET("/:id/avatar", avatarHandler.GetAvatar)
		childRoutes.PUT("/:id/avatar", avatarHandler.PutAvatar)
	}
}

// SetupBrushingRoutes sets up the standalone brushing-record routes.
func SetupBrushingRoutes(apiGroup *gin.RouterGroup, brushingHandler *handlers.BrushingHandler) {
	brushingRoutes := apiGroup.Group("/brushings")
	{
		brushingRoutes.PUT("/:id", brushingHandler.UpdateBrushingRecord)
		brushingRoutes.DELETE("/:id", brushingHandler.DeleteBrushingRecord)
	}
}

// SetupRewardRoutes sets up the standalone reward routes.
func SetupRewardRoutes(apiGroup *gin.RouterGroup, rewardHandler *handlers.RewardHandler) {
	rewardRoutes := apiGroup.Group("/rewards")
	{
		rewardRoutes.PUT("/:id", rewardHandler.UpdateReward)
		rewardRoutes.POST("/:id/claim", rewardHandler.ClaimReward)
	}
}

// SetupUsageRoutes sets up the usage logging route.
func SetupUsageRoutes(apiGroup *gin.RouterGroup, usageHandler *handlers.UsageHandler) {
	apiGroup.POST("/usage", usageHandler.LogUsage)
}
