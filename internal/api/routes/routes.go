package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/trendpin/notify/internal/api/handlers"
	"github.com/trendpin/notify/internal/api/middleware"
	"github.com/trendpin/notify/internal/config"
	"github.com/trendpin/notify/internal/metrics"
	"github.com/trendpin/notify/internal/models"
	"github.com/trendpin/notify/internal/services"
)

// Register wires up API routes, migrates the schema, and seeds the default
// catalog into an empty store.
func Register(router *gin.Engine, db *gorm.DB, cfg config.Config) error {
	if err := db.AutoMigrate(
		&models.NotificationEvent{},
		&models.NotificationTemplate{},
		&models.TemplateContent{},
		&models.ChannelCredential{},
		&models.Recipient{},
		&models.Notification{},
		&models.Setting{},
		&models.User{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	catalogService := services.NewCatalogService(db)
	if err := catalogService.EnsureSeeded(); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}

	registry := prometheus.NewRegistry()
	metrics.Register(registry)

	router.GET("/api/v1/health", handlers.HealthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api := router.Group("/api/v1")

	authService := services.NewAuthService(db, cfg)
	authHandler := handlers.NewAuthHandler(authService, cfg)
	authMiddleware := middleware.AuthMiddleware(authService)

	templateService := services.NewTemplateService(db)
	credentialService := services.NewCredentialService(db)
	recipientService := services.NewRecipientService(db)
	activityService := services.NewActivityService(db)
	dispatchService := services.NewDispatchService(credentialService, catalogService,
		templateService, recipientService, activityService)

	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/register", authHandler.Register)

	protected := api.Group("/")
	protected.Use(authMiddleware)
	adminOnly := middleware.RequireRole(models.UserRoleAdmin)
	{
		protected.POST("/auth/logout", authHandler.Logout)
		protected.GET("/auth/me", authHandler.Me)

		// Event matrix and templates
		configHandler := handlers.NewConfigHandler(catalogService)
		protected.GET("/notifications/config", configHandler.GetConfig)
		protected.POST("/notifications/config", adminOnly, configHandler.ReplaceConfig)
		protected.GET("/notifications/events", configHandler.ListEvents)
		protected.POST("/notifications/events/:id/toggle", adminOnly, configHandler.ToggleEvent)
		protected.POST("/notifications/events/:id/channels/:channel/toggle", adminOnly, configHandler.ToggleChannel)
		protected.POST("/notifications/events/:id/recipients/:role/toggle", adminOnly, configHandler.ToggleRecipient)

		templateHandler := handlers.NewTemplateHandler(templateService)
		protected.GET("/notifications/templates", templateHandler.List)
		protected.GET("/notifications/templates/:id", templateHandler.Get)
		protected.PATCH("/notifications/templates/:id", adminOnly, templateHandler.UpdateField)

		// Channel credentials
		credentialHandler := handlers.NewCredentialHandler(credentialService, activityService)
		protected.GET("/notifications/credentials", credentialHandler.List)
		protected.GET("/notifications/credentials/statuses", credentialHandler.Statuses)
		protected.POST("/notifications/credentials/:channel", adminOnly, credentialHandler.Save)
		protected.POST("/notifications/credentials/:channel/test", adminOnly, credentialHandler.Test)

		// Test dispatch
		recipientHandler := handlers.NewRecipientHandler(recipientService)
		protected.GET("/notifications/recipients/:role", recipientHandler.ListByRole)

		dispatchHandler := handlers.NewDispatchHandler(dispatchService)
		protected.POST("/notifications/send-test", adminOnly, dispatchHandler.SendTest)

		// Activity feed
		activityHandler := handlers.NewActivityHandler(activityService)
		protected.GET("/notifications/activity", activityHandler.List)
		protected.POST("/notifications/activity/:id/read", activityHandler.MarkAsRead)
		protected.POST("/notifications/activity/read-all", activityHandler.MarkAllAsRead)

		// Settings
		settingsHandler := handlers.NewSettingsHandler(db)
		protected.GET("/settings", settingsHandler.GetSettings)
		protected.POST("/settings", adminOnly, settingsHandler.UpdateSetting)
	}

	return nil
}
