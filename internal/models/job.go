package models

import (
	"time"

	"github.com/google/uuid"
)

// Job is a vacancy posted by HR. Name fields of the reference tables are
// filled by joined reads only.
type Job struct {
	ID                 uuid.UUID `json:"id"`
	Title              string    `json:"title"`
	DepartmentID       int       `json:"department_id"`
	EmploymentTypeID   int       `json:"employment_type_id"`
	EducationLevelID   int       `json:"education_level_id"`
	ExperienceLevelID  int       `json:"experience_level_id"`
	ClosingDate        time.Time `json:"closing_date"`
	Description        string    `json:"description"`
	Responsibilities   []string  `json:"responsibilities"`
	Qualifications     []string  `json:"qualifications"`
	Skills             []string  `json:"skills"`
	TermsAndConditions string    `json:"terms_and_conditions"`
	PostedBy           uuid.UUID `json:"posted_by"`
	IsActive           bool      `json:"is_active"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	Department      string `json:"department,omitempty"`
	EmploymentType  string `json:"employment_type,omitempty"`
	EducationLevel  string `json:"education_level,omitempty"`
	ExperienceLevel string `json:"experience_level,omitempty"`
	ApplicantCount  int    `json:"applicant_count"`
}

// IsOpen reports whether the job accepts applications on the given day.
// The closing date itself is still open.
func (j *Job) IsOpen(now time.Time) bool {
	if !j.IsActive {
		return false
	}
	return !DateOnly(j.ClosingDate).Before(DateOnly(now))
}

// JobFilter narrows job listings. OnlyOpen restricts to active jobs whose
// closing date has not passed, which is what the public listing uses.
type JobFilter struct {
	Search           string
	DepartmentID     *int
	EmploymentTypeID *int
	OnlyOpen         bool
	IncludeInactive  bool
	Today            time.Time
	Limit            int
	Offset           int
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
