package routes

import (
	"recruit-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterSettingsRoutes registers the reference table routes. Reading is
// public because the job filters use it.
func RegisterSettingsRoutes(rg *gin.RouterGroup, settingsHandler handlers.SettingsHandlerInterface, guards Guards) {
	settings := rg.Group("/settings")
	{
		settings.GET("/:kind", settingsHandler.ListLookups)
	}

	manage := settings.Group("")
	manage.Use(guards.Auth, guards.Staff)
	{
		manage.POST("/:kind", settingsHandler.CreateLookup)
		manage.PUT("/:kind/:id", settingsHandler.UpdateLookup)
		manage.DELETE("/:kind/:id", settingsHandler.DeleteLookup)
	}
}

// RegisterDashboardRoutes registers the HR statistics route.
func RegisterDashboardRoutes(rg *gin.RouterGroup, dashboardHandler handlers.DashboardHandlerInterface, guards Guards) {
	dashboard := rg.Group("/dashboard")
	dashboard.Use(guards.Auth, guards.Staff)
	{
		dashboard.GET("/stats", dashboardHandler.GetStats)
	}
}
