package handlers

import "github.com/gin-gonic/gin"

// AuthHandlerInterface defines the methods needed by the auth routes.
type AuthHandlerInterface interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Refresh(c *gin.Context)
	Logout(c *gin.Context)
	Me(c *gin.Context)
	ChangePassword(c *gin.Context)
}

// UserHandlerInterface defines the methods needed by the user routes.
type UserHandlerInterface interface {
	ListUsers(c *gin.Context)
	CreateUser(c *gin.Context)
	UpdateUserRole(c *gin.Context)
	DeleteUser(c *gin.Context)
}

// JobHandlerInterface defines the methods needed by the job routes.
type JobHandlerInterface interface {
	ListJobs(c *gin.Context)
	GetJob(c *gin.Context)
	ListManagedJobs(c *gin.Context)
	GetManagedJob(c *gin.Context)
	CreateJob(c *gin.Context)
	UpdateJob(c *gin.Context)
	DeleteJob(c *gin.Context)
}

// JobApplicationHandlerInterface defines the methods needed by the job application routes.
type JobApplicationHandlerInterface interface {
	ApplyToJob(c *gin.Context)
	ListMyApplications(c *gin.Context)
	CheckApplied(c *gin.Context)
	WithdrawApplication(c *gin.Context)
	ListApplicants(c *gin.Context)
	GetApplicant(c *gin.Context)
	GetApplicantDocument(c *gin.Context)
	UpdateApplicationStatus(c *gin.Context)
	BulkUpdateApplicationStatus(c *gin.Context)
}

// ProfileHandlerInterface defines the methods needed by the profile routes.
type ProfileHandlerInterface interface {
	GetProfile(c *gin.Context)
	UpdateProfile(c *gin.Context)
	CreateEducation(c *gin.Context)
	UpdateEducation(c *gin.Context)
	DeleteEducation(c *gin.Context)
	CreateExperience(c *gin.Context)
	UpdateExperience(c *gin.Context)
	DeleteExperience(c *gin.Context)
	CreateCertification(c *gin.Context)
	UpdateCertification(c *gin.Context)
	DeleteCertification(c *gin.Context)
	ReplaceSkills(c *gin.Context)
	SearchSkills(c *gin.Context)
}

// SettingsHandlerInterface defines the methods needed by the settings routes.
type SettingsHandlerInterface interface {
	ListLookups(c *gin.Context)
	CreateLookup(c *gin.Context)
	UpdateLookup(c *gin.Context)
	DeleteLookup(c *gin.Context)
}

type DashboardHandlerInterface interface {
	GetStats(c *gin.Context)
}

// Ensure handlers implements the interface (compile-time check)
var (
	_ AuthHandlerInterface           = (*AuthHandler)(nil)
	_ UserHandlerInterface           = (*UserHandler)(nil)
	_ JobHandlerInterface            = (*JobHandler)(nil)
	_ JobApplicationHandlerInterface = (*JobApplicationHandler)(nil)
	_ ProfileHandlerInterface        = (*ProfileHandler)(nil)
	_ SettingsHandlerInterface       = (*SettingsHandler)(nil)
	_ DashboardHandlerInterface      = (*DashboardHandler)(nil)
)
