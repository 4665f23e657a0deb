package routes

import (
	"recruit-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterJobRoutes registers all routes related to jobs.
// Listing and detail are public; management requires an HR or ADMIN account.
func RegisterJobRoutes(
	rg *gin.RouterGroup, // Base group (e.g., /api/v1)
	jobHandler handlers.JobHandlerInterface, // Use interface
	guards Guards,
) {
	jobs := rg.Group("/jobs")
	{
		jobs.GET("", jobHandler.ListJobs)
		jobs.GET("/:id", jobHandler.GetJob)
	}

	manage := jobs.Group("")
	manage.Use(guards.Auth, guards.Staff)
	{
		manage.GET("/manage", jobHandler.ListManagedJobs)
		manage.GET("/manage/:id", jobHandler.GetManagedJob)
		manage.POST("", jobHandler.CreateJob)
		manage.PUT("/:id", jobHandler.UpdateJob)
		manage.DELETE("/:id", jobHandler.DeleteJob) // soft delete
	}
}
