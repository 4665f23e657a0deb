package services

import (
	"context"
	"time"

	"recruit-api/internal/models"
	"recruit-api/internal/notify"
	"recruit-api/internal/storage/files"
	"recruit-api/internal/transport/dto"

	"github.com/google/uuid"
)

// UserService defines the interface for account and session logic.
type UserService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context, req *dto.LogoutRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ChangePassword(ctx context.Context, req *dto.ChangePasswordRequest) error
	List(ctx context.Context, req *dto.ListUsersRequest) (*dto.Page[models.User], error)
	CreateStaff(ctx context.Context, req *dto.CreateStaffRequest) (*models.User, error)
	UpdateRole(ctx context.Context, req *dto.UpdateRoleRequest) (*models.User, error)
	Delete(ctx context.Context, req *dto.DeleteUserRequest) error
}

// JobService defines the interface for job posting logic.
type JobService interface {
	ListOpen(ctx context.Context, req *dto.ListJobsRequest) (*dto.Page[models.Job], error)
	GetOpen(ctx context.Context, id uuid.UUID) (*models.Job, error)
	ListManaged(ctx context.Context, req *dto.ListJobsRequest) (*dto.Page[models.Job], error)
	GetManaged(ctx context.Context, id uuid.UUID) (*models.Job, error)
	Create(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error)
	Update(ctx context.Context, req *dto.UpdateJobRequest) (*models.Job, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExpireStaleJobs(ctx context.Context, now time.Time) (int64, error)
}

// JobApplicationService defines the interface for job application business logic.
type JobApplicationService interface {
	Apply(ctx context.Context, req *dto.ApplyRequest) (*models.JobApplication, error)
	HasApplied(ctx context.Context, applicantID, jobID uuid.UUID) (bool, error)
	ListMine(ctx context.Context, applicantID uuid.UUID) ([]models.JobApplication, error)
	Withdraw(ctx context.Context, req *dto.WithdrawRequest) error
	ListApplicants(ctx context.Context, req *dto.ListApplicantsRequest) (*dto.Page[models.JobApplication], error)
	GetApplicant(ctx context.Context, id uuid.UUID) (*dto.ApplicantDetail, error)
	DocumentURL(ctx context.Context, id uuid.UUID, kind models.DocumentKind) (string, error)
	UpdateStatus(ctx context.Context, req *dto.UpdateStatusRequest) (*models.JobApplication, error)
	BulkUpdateStatus(ctx context.Context, req *dto.BulkStatusRequest) (*dto.BulkStatusResponse, error)
}

// ProfileService defines the interface for the applicant profile.
type ProfileService interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.FullProfile, error)
	Update(ctx context.Context, req *dto.UpdateProfileRequest) (*models.FullProfile, error)

	CreateEducation(ctx context.Context, userID uuid.UUID, req *dto.EducationRequest) (*models.Education, error)
	UpdateEducation(ctx context.Context, ref dto.SectionRef, req *dto.EducationRequest) (*models.Education, error)
	DeleteEducation(ctx context.Context, ref dto.SectionRef) error

	CreateExperience(ctx context.Context, userID uuid.UUID, req *dto.ExperienceRequest) (*models.Experience, error)
	UpdateExperience(ctx context.Context, ref dto.SectionRef, req *dto.ExperienceRequest) (*models.Experience, error)
	DeleteExperience(ctx context.Context, ref dto.SectionRef) error

	CreateCertification(ctx context.Context, userID uuid.UUID, req *dto.CertificationRequest) (*models.Certification, error)
	UpdateCertification(ctx context.Context, ref dto.SectionRef, req *dto.CertificationRequest) (*models.Certification, error)
	DeleteCertification(ctx context.Context, ref dto.SectionRef) error

	ReplaceSkills(ctx context.Context, userID uuid.UUID, req *dto.SkillsRequest) ([]models.Skill, error)
	SearchSkills(ctx context.Context, req *dto.SkillSearchRequest) ([]models.Skill, error)
}

// SettingsService defines the interface for the reference tables.
type SettingsService interface {
	List(ctx context.Context, kind models.LookupKind) ([]models.LookupItem, error)
	Create(ctx context.Context, req *dto.LookupRequest) (*models.LookupItem, error)
	Update(ctx context.Context, req *dto.LookupRequest) (*models.LookupItem, error)
	Delete(ctx context.Context, kind models.LookupKind, id int) error
}

// DashboardService defines the interface for HR statistics.
type DashboardService interface {
	Stats(ctx context.Context, req *dto.StatsRequest) (*models.DashboardStats, error)
}

// DocumentStore keeps uploaded files. files.Manager implements it.
type DocumentStore interface {
	Put(ctx context.Context, ownerID uuid.UUID, u files.Upload) (*models.Document, error)
	URL(ctx context.Context, key string) (string, error)
	Remove(ctx context.Context, key string) error
}

// StatusNotifier emails applicants about status changes without blocking
// the caller. notify.Notifier implements it.
type StatusNotifier interface {
	Dispatch(ctx context.Context, changes []notify.StatusChange)
}

var (
	_ DocumentStore  = (*files.Manager)(nil)
	_ StatusNotifier = (*notify.Notifier)(nil)
)
