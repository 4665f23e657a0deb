package routes

import (
	"recruit-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration, login and session routes.
// Login and register are rate limited per client IP.
func RegisterAuthRoutes(rg *gin.RouterGroup, authHandler handlers.AuthHandlerInterface, guards Guards) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", guards.AuthLimit, authHandler.Register)
		auth.POST("/login", guards.AuthLimit, authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
	}

	session := auth.Group("")
	session.Use(guards.Auth)
	{
		session.POST("/logout", authHandler.Logout)
		session.GET("/me", authHandler.Me)
		session.PUT("/password", authHandler.ChangePassword)
	}
}

// RegisterUserRoutes registers account administration routes. HR may list
// accounts; every change requires ADMIN.
func RegisterUserRoutes(rg *gin.RouterGroup, userHandler handlers.UserHandlerInterface, guards Guards) {
	users := rg.Group("/users")
	users.Use(guards.Auth)
	{
		users.GET("", guards.Staff, userHandler.ListUsers)
		users.POST("", guards.Admin, userHandler.CreateUser)
		users.PATCH("/:id/role", guards.Admin, userHandler.UpdateUserRole)
		users.DELETE("/:id", guards.Admin, userHandler.DeleteUser)
	}
}
