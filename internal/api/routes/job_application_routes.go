package routes

import (
	"recruit-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterJobApplicationRoutes registers all routes related to job applications.
func RegisterJobApplicationRoutes(
	rg *gin.RouterGroup,
	jobAppHandler handlers.JobApplicationHandlerInterface, // Use interface
	guards Guards,
) {
	apps := rg.Group("/job-application")
	apps.Use(guards.Auth)

	// Applicant actions on their own applications
	mine := apps.Group("")
	mine.Use(guards.Applicant)
	{
		mine.POST("", jobAppHandler.ApplyToJob)
		mine.GET("", jobAppHandler.ListMyApplications)
		mine.GET("/check/:job_id", jobAppHandler.CheckApplied)
		mine.DELETE("/:id", jobAppHandler.WithdrawApplication)
	}

	// HR review of applicants
	applicants := apps.Group("/applicants")
	applicants.Use(guards.Staff)
	{
		applicants.GET("", jobAppHandler.ListApplicants)
		applicants.PATCH("/status", jobAppHandler.BulkUpdateApplicationStatus)
		applicants.GET("/:id", jobAppHandler.GetApplicant)
		applicants.GET("/:id/documents/:kind", jobAppHandler.GetApplicantDocument)
		applicants.PATCH("/:id/status", jobAppHandler.UpdateApplicationStatus)
	}
}
