package dto

import (
	"github.com/google/uuid"
)

// --- Job Request DTOs ---

// JobRequest is the full job payload used by both create and PUT update.
type JobRequest struct {
	Title              string   `json:"title" validate:"required,notblank,max=200"`
	DepartmentID       int      `json:"department_id" validate:"required,min=1"`
	EmploymentTypeID   int      `json:"employment_type_id" validate:"required,min=1"`
	EducationLevelID   int      `json:"education_level_id" validate:"required,min=1"`
	ExperienceLevelID  int      `json:"experience_level_id" validate:"required,min=1"`
	ClosingDate        string   `json:"closing_date" validate:"required,datetime=2006-01-02"`
	Description        string   `json:"description" validate:"required,notblank"`
	Responsibilities   []string `json:"responsibilities" validate:"max=50,dive,notblank,max=500"`
	Qualifications     []string `json:"qualifications" validate:"max=50,dive,notblank,max=500"`
	Skills             []string `json:"skills" validate:"max=50,dive,notblank,max=100"`
	TermsAndConditions string   `json:"terms_and_conditions" validate:"max=5000"`
	// IsActive is honoured on update only; new jobs are always active.
	IsActive *bool `json:"is_active"`
}

// CreateJobRequest defines the structure for creating a new job posting.
type CreateJobRequest struct {
	JobRequest
	PostedBy uuid.UUID `json:"-"` // Set internally by handler from auth context
}

// UpdateJobRequest replaces every editable field of a job.
type UpdateJobRequest struct {
	JobRequest
	ID uuid.UUID `json:"-"` // From URL path
}

// ListJobsRequest defines parameters for listing jobs.
type ListJobsRequest struct {
	Pagination
	Search           string `form:"search" validate:"max=200"`
	DepartmentID     *int   `form:"department_id" validate:"omitempty,min=1"`
	EmploymentTypeID *int   `form:"employment_type_id" validate:"omitempty,min=1"`
	IncludeInactive  bool   `form:"include_inactive"`
}
