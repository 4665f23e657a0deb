package storage

import (
	"context"
	"time"

	"recruit-api/internal/models"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error) // includes the password hash
	List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error)
	UpdateNames(ctx context.Context, id uuid.UUID, firstName, lastName string) error
	UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProfileRepository stores the applicant profile and its 1:N sections.
// Section lookups are always scoped by owner so one applicant can never
// touch another's rows.
type ProfileRepository interface {
	CreateEmpty(ctx context.Context, userID uuid.UUID) error
	Get(ctx context.Context, userID uuid.UUID) (*models.ApplicantProfile, error)
	Update(ctx context.Context, profile *models.ApplicantProfile) (*models.ApplicantProfile, error)

	ListEducations(ctx context.Context, userID uuid.UUID) ([]models.Education, error)
	GetEducation(ctx context.Context, userID, id uuid.UUID) (*models.Education, error)
	CreateEducation(ctx context.Context, e *models.Education) (*models.Education, error)
	UpdateEducation(ctx context.Context, e *models.Education) (*models.Education, error)
	DeleteEducation(ctx context.Context, userID, id uuid.UUID) error

	ListExperiences(ctx context.Context, userID uuid.UUID) ([]models.Experience, error)
	GetExperience(ctx context.Context, userID, id uuid.UUID) (*models.Experience, error)
	CreateExperience(ctx context.Context, e *models.Experience) (*models.Experience, error)
	UpdateExperience(ctx context.Context, e *models.Experience) (*models.Experience, error)
	DeleteExperience(ctx context.Context, userID, id uuid.UUID) error

	ListCertifications(ctx context.Context, userID uuid.UUID) ([]models.Certification, error)
	GetCertification(ctx context.Context, userID, id uuid.UUID) (*models.Certification, error)
	CreateCertification(ctx context.Context, c *models.Certification) (*models.Certification, error)
	UpdateCertification(ctx context.Context, c *models.Certification) (*models.Certification, error)
	DeleteCertification(ctx context.Context, userID, id uuid.UUID) error
}

// SkillRepository manages the global skill names and the user links.
type SkillRepository interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Skill, error)
	ReplaceForUser(ctx context.Context, userID uuid.UUID, names []string) ([]models.Skill, error)
	Search(ctx context.Context, prefix string, limit int) ([]models.Skill, error)
}

// LookupRepository manages the settings reference tables.
type LookupRepository interface {
	List(ctx context.Context, kind models.LookupKind) ([]models.LookupItem, error)
	GetByID(ctx context.Context, kind models.LookupKind, id int) (*models.LookupItem, error)
	NameTaken(ctx context.Context, kind models.LookupKind, name string, excludeID int) (bool, error)
	Create(ctx context.Context, kind models.LookupKind, item *models.LookupItem) (*models.LookupItem, error)
	Update(ctx context.Context, kind models.LookupKind, item *models.LookupItem) (*models.LookupItem, error)
	Delete(ctx context.Context, kind models.LookupKind, id int) error
}

// JobRepository defines the interface for job data operations.
type JobRepository interface {
	Create(ctx context.Context, job *models.Job) (*models.Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	List(ctx context.Context, filter models.JobFilter) ([]models.Job, int, error)
	Update(ctx context.Context, job *models.Job) (*models.Job, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	DeactivateClosedBefore(ctx context.Context, day time.Time) (int64, error)
	CountOpen(ctx context.Context, today time.Time) (int, error)
}

// ApplicationRepository defines the interface for job application data operations.
type ApplicationRepository interface {
	Create(ctx context.Context, app *models.JobApplication) (*models.JobApplication, error)
	AddDocument(ctx context.Context, doc *models.ApplicationDocument) (*models.ApplicationDocument, error)
	Exists(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.JobApplication, error)
	ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]models.JobApplication, error)
	List(ctx context.Context, filter models.ApplicationFilter) ([]models.JobApplication, int, error)
	// UpdateStatus moves the application from one status to another and
	// returns ErrNotFound when the row is not currently in status from.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.ApplicationStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context, jobID *uuid.UUID) (map[models.ApplicationStatus]int, error)
}

// Repositories groups every repository bound to the same connection or transaction.
type Repositories struct {
	Users        UserRepository
	Profiles     ProfileRepository
	Skills       SkillRepository
	Lookups      LookupRepository
	Jobs         JobRepository
	Applications ApplicationRepository
}

// Transactor runs fn with repositories bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

// SessionStore keeps refresh tokens and revoked access token ids.
type SessionStore interface {
	NewRefreshToken(ctx context.Context, userID uuid.UUID, ttl time.Duration) (string, error)
	// RotateRefreshToken consumes token and issues its replacement. A token
	// can be rotated once; later attempts return ErrInvalidToken.
	RotateRefreshToken(ctx context.Context, token string, ttl time.Duration) (uuid.UUID, string, error)
	DeleteRefreshToken(ctx context.Context, token string) error
	RevokeUserRefreshTokens(ctx context.Context, userID uuid.UUID) error
	RevokeAccessToken(ctx context.Context, jti string, ttl time.Duration) error
	IsAccessTokenRevoked(ctx context.Context, jti string) (bool, error)
}
