package models

import (
	"time"

	"github.com/google/uuid"
)

// Gender values accepted on the applicant profile.
const (
	GenderMale           = "male"
	GenderFemale         = "female"
	GenderOther          = "other"
	GenderPreferNotToSay = "prefer_not_to_say"
)

// ApplicantProfile is the 1:1 extension of an applicant User.
type ApplicantProfile struct {
	UserID      uuid.UUID  `json:"user_id"`
	MiddleName  *string    `json:"middle_name"`
	Phone       *string    `json:"phone"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      *string    `json:"gender"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Document is an optional file attached to a profile entry.
type Document struct {
	URL        string    `json:"url"`
	FileName   string    `json:"file_name"`
	StorageKey string    `json:"-"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type Education struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"user_id"`
	Institution  string     `json:"institution"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"field_of_study"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	Document     *Document  `json:"document"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type Experience struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Company     string     `json:"company"`
	Position    string     `json:"position"`
	Description string     `json:"description"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	IsCurrent   bool       `json:"is_current"`
	Document    *Document  `json:"document"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Certification struct {
	ID                  uuid.UUID  `json:"id"`
	UserID              uuid.UUID  `json:"user_id"`
	Name                string     `json:"name"`
	IssuingOrganization string     `json:"issuing_organization"`
	IssueDate           time.Time  `json:"issue_date"`
	ExpiryDate          *time.Time `json:"expiry_date"`
	CredentialID        *string    `json:"credential_id"`
	Document            *Document  `json:"document"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// Skill is a globally deduplicated skill name.
type Skill struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// FullProfile is everything shown on the applicant profile page and to HR
// on the applicant detail view.
type FullProfile struct {
	User           User             `json:"user"`
	Profile        ApplicantProfile `json:"profile"`
	Educations     []Education      `json:"educations"`
	Experiences    []Experience     `json:"experiences"`
	Certifications []Certification  `json:"certifications"`
	Skills         []Skill          `json:"skills"`
}
