package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// --- Application Status Enum ---
type ApplicationStatus string

const (
	StatusPending            ApplicationStatus = "pending"
	StatusUnderReview        ApplicationStatus = "under_review"
	StatusShortlisted        ApplicationStatus = "shortlisted"
	StatusInterviewScheduled ApplicationStatus = "interview_scheduled"
	StatusRejected           ApplicationStatus = "rejected"
	StatusOffered            ApplicationStatus = "offered"
	StatusHired              ApplicationStatus = "hired"
)

// AllStatuses lists the pipeline in display order.
var AllStatuses = []ApplicationStatus{
	StatusPending,
	StatusUnderReview,
	StatusShortlisted,
	StatusInterviewScheduled,
	StatusOffered,
	StatusHired,
	StatusRejected,
}

// nextStatuses is the forward pipeline. rejected is reachable from every non-terminal state.
var nextStatuses = map[ApplicationStatus][]ApplicationStatus{
	StatusPending:            {StatusUnderReview, StatusRejected},
	StatusUnderReview:        {StatusShortlisted, StatusRejected},
	StatusShortlisted:        {StatusInterviewScheduled, StatusRejected},
	StatusInterviewScheduled: {StatusOffered, StatusRejected},
	StatusOffered:            {StatusHired, StatusRejected},
	StatusHired:              nil,
	StatusRejected:           nil,
}

// Valid reports whether s is a known status.
func (s ApplicationStatus) Valid() bool {
	_, ok := nextStatuses[s]
	return ok
}

// Terminal reports whether no further transition is possible.
func (s ApplicationStatus) Terminal() bool {
	return s.Valid() && len(nextStatuses[s]) == 0
}

// CanTransitionTo reports whether the pipeline allows moving from s to next.
// Re-applying the current status is always allowed.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	for _, candidate := range nextStatuses[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// NotifiesApplicant reports whether entering s sends the applicant an email.
func (s ApplicationStatus) NotifiesApplicant() bool {
	return s == StatusShortlisted || s == StatusRejected
}

// Scan implements the sql.Scanner interface for ApplicationStatus
func (s *ApplicationStatus) Scan(value interface{}) error {
	strVal, err := scanString(value, "ApplicationStatus")
	if err != nil {
		return err
	}
	v := ApplicationStatus(strVal)
	if !v.Valid() {
		return fmt.Errorf("invalid ApplicationStatus value: %s", strVal)
	}
	*s = v
	return nil
}

// Value implements the driver.Valuer interface for ApplicationStatus
func (s ApplicationStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// --- Document Kind Enum ---
type DocumentKind string

const (
	DocumentResume      DocumentKind = "resume"
	DocumentCoverLetter DocumentKind = "cover_letter"
)

// ApplicationDocument is a file attached to a job application.
type ApplicationDocument struct {
	ID            uuid.UUID    `json:"id"`
	ApplicationID uuid.UUID    `json:"application_id"`
	Kind          DocumentKind `json:"kind"`
	URL           string       `json:"url"`
	FileName      string       `json:"file_name"`
	StorageKey    string       `json:"-"`
	UploadedAt    time.Time    `json:"uploaded_at"`
}

// JobApplication links an applicant to a job. JobTitle and the applicant
// fields are filled by joined reads only.
type JobApplication struct {
	ID          uuid.UUID             `json:"id"`
	JobID       uuid.UUID             `json:"job_id"`
	ApplicantID uuid.UUID             `json:"applicant_id"`
	Status      ApplicationStatus     `json:"status"`
	Score       float64               `json:"score"`
	IsActive    bool                  `json:"is_active"`
	Documents   []ApplicationDocument `json:"documents"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`

	JobTitle       string `json:"job_title,omitempty"`
	ApplicantName  string `json:"applicant_name,omitempty"`
	ApplicantEmail string `json:"applicant_email,omitempty"`
}

// Document returns the attached document of the given kind, if any.
func (a *JobApplication) Document(kind DocumentKind) *ApplicationDocument {
	for i := range a.Documents {
		if a.Documents[i].Kind == kind {
			return &a.Documents[i]
		}
	}
	return nil
}

// ApplicationFilter narrows the HR applicant listing.
type ApplicationFilter struct {
	JobID  *uuid.UUID
	Status *ApplicationStatus
	Search string
	Limit  int
	Offset int
}
