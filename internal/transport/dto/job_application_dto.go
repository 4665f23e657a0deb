package dto

import (
	"recruit-api/internal/models"
	"recruit-api/internal/storage/files"

	"github.com/google/uuid"
)

// --- Job Application Request DTOs ---

// ApplyRequest is assembled by the handler from the multipart form.
type ApplyRequest struct {
	JobID       string        `form:"job_id" validate:"required,uuid"`
	ApplicantID uuid.UUID     `form:"-"`
	Resume      *files.Upload `form:"-"`
	CoverLetter *files.Upload `form:"-"`
}

type WithdrawRequest struct {
	ID          uuid.UUID
	ApplicantID uuid.UUID
}

// CheckAppliedResponse answers whether the caller applied to a job.
type CheckAppliedResponse struct {
	Applied bool `json:"applied"`
}

// ListApplicantsRequest filters the HR applicant listing.
type ListApplicantsRequest struct {
	Pagination
	JobID  string `form:"job_id" validate:"omitempty,uuid"`
	Status string `form:"status" validate:"omitempty,app_status"`
	Search string `form:"search" validate:"max=200"`
}

// ApplicantDetail is an application with the applicant's full profile.
type ApplicantDetail struct {
	Application *models.JobApplication `json:"application"`
	Profile     *models.FullProfile    `json:"profile"`
}

type UpdateStatusRequest struct {
	ID     uuid.UUID                `json:"-"`
	Status models.ApplicationStatus `json:"status" validate:"required,app_status"`
}

// BulkStatusRequest sets one status on many applications.
type BulkStatusRequest struct {
	ApplicationIDs []string                 `json:"application_ids" validate:"required,min=1,max=200,dive,uuid"`
	Status         models.ApplicationStatus `json:"status" validate:"required,app_status"`
}

// BulkStatusResponse reports how many applications changed.
type BulkStatusResponse struct {
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
	Notified  int `json:"notified"`
}
