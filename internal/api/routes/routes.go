package routes

import (
	"log/slog"
	"net/http"
	"strings"

	"recruit-api/internal/api/handlers"
	"recruit-api/internal/api/middleware"
	"recruit-api/internal/app"
	"recruit-api/internal/models"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Guards are the middleware chains applied per route group.
type Guards struct {
	Auth      gin.HandlerFunc // valid, unrevoked access token
	Staff     gin.HandlerFunc // HR or ADMIN
	Admin     gin.HandlerFunc
	Applicant gin.HandlerFunc
	AuthLimit gin.HandlerFunc // per-IP limit on login and register
}

// NewGuards builds the guards. A nil limiter disables rate limiting.
func NewGuards(tokens middleware.TokenParser, revoked middleware.RevocationChecker, cookieName string, limiter middleware.Limiter) Guards {
	return Guards{
		Auth:      middleware.JWTAuthMiddleware(tokens, revoked, cookieName),
		Staff:     middleware.RequireRoles(models.RoleHR, models.RoleAdmin),
		Admin:     middleware.RequireRoles(models.RoleAdmin),
		Applicant: middleware.RequireRoles(models.RoleApplicant),
		AuthLimit: middleware.RateLimit(limiter, "auth"),
	}
}

// RegisterRoutes sets up the API routes by calling resource-specific registration functions
func RegisterRoutes(router *gin.Engine, app *app.Application) {

	// --- Base API Group ---
	apiV1 := router.Group("/api/v1")

	//Create handlers
	cookies := handlers.SessionCookies{
		Name:       app.Config.JWT.CookieName,
		Secure:     app.Config.JWT.CookieSecure,
		Domain:     app.Config.JWT.CookieDomain,
		RefreshTTL: app.Config.JWT.RefreshTTL,
	}
	authHandler := handlers.NewAuthHandler(app.Services.Users, app.Validator, cookies)
	userHandler := handlers.NewUserHandler(app.Services.Users, app.Validator)
	jobHandler := handlers.NewJobHandler(app.Services.Jobs, app.Validator)
	jobAppHandler := handlers.NewJobApplicationHandler(app.Services.Applications, app.Validator)
	profileHandler := handlers.NewProfileHandler(app.Services.Profiles, app.Validator)
	settingsHandler := handlers.NewSettingsHandler(app.Services.Settings, app.Validator)
	dashboardHandler := handlers.NewDashboardHandler(app.Services.Dashboard, app.Validator)

	// --- Middleware ---
	guards := NewGuards(app.Tokens, app.Sessions, app.Config.JWT.CookieName, app.AuthLimiter)

	// --- Register Resource Routes ---
	RegisterAuthRoutes(apiV1, authHandler, guards)
	RegisterUserRoutes(apiV1, userHandler, guards)
	RegisterJobRoutes(apiV1, jobHandler, guards)
	RegisterJobApplicationRoutes(apiV1, jobAppHandler, guards)
	RegisterProfileRoutes(apiV1, profileHandler, guards)
	RegisterSettingsRoutes(apiV1, settingsHandler, guards)
	RegisterDashboardRoutes(apiV1, dashboardHandler, guards)

	// --- Health Check ---
	router.GET("/health", handlers.NewHealthHandler(app.Probes).HealthCheck)

	// --- API documentation ---
	router.GET("/openapi.yaml", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/yaml", app.OpenAPI)
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/openapi.yaml")))

	// Local uploads are served directly; MinIO hands out its own URLs.
	storage := app.Config.Storage
	if storage.Driver == "local" && strings.HasPrefix(storage.PublicBaseURL, "/") {
		router.Static(storage.PublicBaseURL, storage.LocalDir)
		slog.Info("serving uploaded documents", "path", storage.PublicBaseURL, "dir", storage.LocalDir)
	}
}
