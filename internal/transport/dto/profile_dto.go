package dto

import (
	"recruit-api/internal/storage/files"

	"github.com/google/uuid"
)

// UpdateProfileRequest replaces the applicant's personal details.
// Email is not part of it and is rejected by the handler when sent.
type UpdateProfileRequest struct {
	UserID      uuid.UUID `json:"-"`
	FirstName   string    `json:"first_name" validate:"required,notblank,max=100"`
	MiddleName  *string   `json:"middle_name" validate:"omitempty,max=100"`
	LastName    string    `json:"last_name" validate:"omitempty,max=100"`
	Phone       *string   `json:"phone" validate:"omitempty,phone"`
	DateOfBirth *string   `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender      *string   `json:"gender" validate:"omitempty,gender"`
}

// SectionRef identifies a profile entry owned by a user.
type SectionRef struct {
	UserID uuid.UUID
	ID     uuid.UUID
}

// EducationRequest is bound from a multipart form with an optional document.
type EducationRequest struct {
	Institution    string        `form:"institution" validate:"required,notblank,max=200"`
	Degree         string        `form:"degree" validate:"required,notblank,max=200"`
	FieldOfStudy   string        `form:"field_of_study" validate:"max=200"`
	StartDate      string        `form:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate        string        `form:"end_date" validate:"omitempty,datetime=2006-01-02"`
	RemoveDocument bool          `form:"remove_document"`
	Document       *files.Upload `form:"-"`
}

type ExperienceRequest struct {
	Company        string        `form:"company" validate:"required,notblank,max=200"`
	Position       string        `form:"position" validate:"required,notblank,max=200"`
	Description    string        `form:"description" validate:"max=5000"`
	StartDate      string        `form:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate        string        `form:"end_date" validate:"omitempty,datetime=2006-01-02"`
	IsCurrent      bool          `form:"is_current"`
	RemoveDocument bool          `form:"remove_document"`
	Document       *files.Upload `form:"-"`
}

type CertificationRequest struct {
	Name                string        `form:"name" validate:"required,notblank,max=200"`
	IssuingOrganization string        `form:"issuing_organization" validate:"required,notblank,max=200"`
	IssueDate           string        `form:"issue_date" validate:"required,datetime=2006-01-02"`
	ExpiryDate          string        `form:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
	CredentialID        string        `form:"credential_id" validate:"max=200"`
	RemoveDocument      bool          `form:"remove_document"`
	Document            *files.Upload `form:"-"`
}

// SkillsRequest replaces the caller's skill set.
type SkillsRequest struct {
	Skills []string `json:"skills" validate:"max=50,dive,max=100"`
}

type SkillSearchRequest struct {
	Query string `form:"q" validate:"max=100"`
	Limit int    `form:"limit,default=10" validate:"min=1,max=50"`
}
