package routes

import (
	"recruit-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterProfileRoutes registers the applicant's profile routes and the
// public skill suggestions.
func RegisterProfileRoutes(rg *gin.RouterGroup, profileHandler handlers.ProfileHandlerInterface, guards Guards) {
	rg.GET("/skills", profileHandler.SearchSkills)

	profile := rg.Group("/applicant/profile")
	profile.Use(guards.Auth, guards.Applicant)
	{
		profile.GET("", profileHandler.GetProfile)
		profile.PUT("", profileHandler.UpdateProfile)

		profile.POST("/education", profileHandler.CreateEducation)
		profile.PUT("/education/:id", profileHandler.UpdateEducation)
		profile.DELETE("/education/:id", profileHandler.DeleteEducation)

		profile.POST("/experience", profileHandler.CreateExperience)
		profile.PUT("/experience/:id", profileHandler.UpdateExperience)
		profile.DELETE("/experience/:id", profileHandler.DeleteExperience)

		profile.POST("/certification", profileHandler.CreateCertification)
		profile.PUT("/certification/:id", profileHandler.UpdateCertification)
		profile.DELETE("/certification/:id", profileHandler.DeleteCertification)

		profile.PUT("/skills", profileHandler.ReplaceSkills)
	}
}
