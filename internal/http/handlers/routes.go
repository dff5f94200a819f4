package handlers

import (
	"spinadmin/internal/app"
	"spinadmin/internal/http/middleware"

	"github.com/labstack/echo/v4"
)

// SetupRoutes sets up all API routes
func SetupRoutes(api *echo.Group, services *app.Services) {
	// Auth routes (no authentication required)
	authHandler := NewAuthHandler(services.AuthService, services.UserRepo)
	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)

	// Protected routes (require authentication)
	protected := api.Group("")
	protected.Use(middleware.JWTAuth(services.AuthService))

	profileAuth := protected.Group("/auth")
	profileAuth.PUT("/profile", authHandler.UpdateProfile)
	profileAuth.PUT("/change-password", authHandler.ChangePassword)

	// Campaign management
	campaignHandler := NewCampaignHandler(services.CampaignRepo)
	campaigns := protected.Group("/campaigns", middleware.AdminOnly())
	campaigns.GET("", campaignHandler.List)
	campaigns.GET("/directory", campaignHandler.Directory)
	campaigns.POST("", campaignHandler.Create)
	campaigns.GET("/:id", campaignHandler.Get)
	campaigns.PUT("/:id", campaignHandler.Update)
	campaigns.DELETE("/:id", campaignHandler.Delete)

	// Location management
	locationHandler := NewLocationHandler(services.LocationRepo, services.CampaignRepo, services.BulkService)
	locations := protected.Group("/locations", middleware.AdminOnly())
	locations.GET("", locationHandler.List)
	locations.POST("", locationHandler.Create)
	locations.POST("/bulk", locationHandler.BulkCreate)
	locations.GET("/:id", locationHandler.Get)
	locations.PUT("/:id", locationHandler.Update)
	locations.DELETE("/:id", locationHandler.Delete)

	// Bulk import flow: upload, review, commit
	importHandler := NewImportHandler(services.ImportService, services.CampaignRepo)
	imports := protected.Group("/locations/import", middleware.AdminOnly())
	imports.POST("", importHandler.Upload)
	imports.GET("/template", importHandler.Template)
	imports.GET("/:id", importHandler.Get)
	imports.POST("/:id/commit", importHandler.Commit)
	imports.DELETE("/:id", importHandler.Discard)

	// Address search proxy
	geocodeHandler := NewGeocodeHandler(services.GeocodeClient)
	protected.GET("/geocode/search", geocodeHandler.Search)
}
