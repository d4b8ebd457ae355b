package router

import (
	"database/sql"

	"brushtrack_backend/internal/handlers"
	"brushtrack_backend/internal/repositories"
	"brushtrack_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Initialize Repositories
	parentRepo := repositories.NewParentRepository(db)
	childRepo := repositories.NewChildRepository(db)
	brushingRepo := repositories.NewBrushingRepository(db)
	rewardRepo := repositories.NewRewardRepository(db)
	reminderRepo := repositories.NewReminderRepository(db)
	avatarRepo := repositories.NewAvatarRepository(db)
	usageRepo := repositories.NewUsageRepository(db)

	// Initialize Services
	authService := services.NewAuthService(parentRepo, db)
	parentService := services.NewParentService(parentRepo, childRepo, brushingRepo, rewardRepo, reminderRepo, avatarRepo, usageRepo, db)
	childService := services.NewChildService(childRepo, parentRepo, brushingRepo, rewardRepo, reminderRepo, avatarRepo, db)
	brushingService := services.NewBrushingService(brushingRepo, childRepo, db)
	statsService := services.NewStatsService(brushingRepo, childRepo, db)
	rewardService := services.NewRewardService(rewardRepo, brushingRepo, childRepo, db)
	reminderService := services.NewReminderService(reminderRepo, childRepo, db)
	avatarService := services.NewAvatarService(avatarRepo, childRepo, db)
	usageService := services.NewUsageService(usageRepo, parentRepo, db)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	parentHandler := handlers.NewParentHandler(parentService)
	childHandler := handlers.NewChildHandler(childService)
	brushingHandler := handlers.NewBrushingHandler(brushingService)
	statsHandler := handlers.NewStatsHandler(statsService)
	rewardHandler := handlers.NewRewardHandler(rewardService)
	reminderHandler := handlers.NewReminderHandler(reminderService)
	avatarHandler := handlers.NewAvatarHandler(avatarService)
	usageHandler := handlers.NewUsageHandler(usageService)

	apiV1 := engine.Group("/api/v1")

	SetupAuthRoutes(apiV1, authHandler)
	SetupParentRoutes(apiV1, parentHandler, childHandler, usageHandler)
	SetupChildRoutes(apiV1, childHandler, brushingHandler, statsHandler, rewardHandler, reminderHandler, avatarHandler)
	SetupBrushingRoutes(apiV1, brushingHandler)
	SetupRewardRoutes(apiV1, rewardHandler)
	SetupUsageRoutes(apiV1, usageHandler)
}
