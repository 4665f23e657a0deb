package handlers

import (
	"context"
	"time"

	"recruit-api/internal/models"
	"recruit-api/internal/services"
	"recruit-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserService is a mock type for services.UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockUserService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockUserService) Logout(ctx context.Context, req *dto.LogoutRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) ChangePassword(ctx context.Context, req *dto.ChangePasswordRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockUserService) List(ctx context.Context, req *dto.ListUsersRequest) (*dto.Page[models.User], error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Page[models.User]), args.Error(1)
}

func (m *MockUserService) CreateStaff(ctx context.Context, req *dto.CreateStaffRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateRole(ctx context.Context, req *dto.UpdateRoleRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, req *dto.DeleteUserRequest) error {
	return m.Called(ctx, req).Error(0)
}

// MockJobService is a mock type for services.JobService
type MockJobService struct {
	mock.Mock
}

func (m *MockJobService) page(args mock.Arguments) (*dto.Page[models.Job], error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Page[models.Job]), args.Error(1)
}

func (m *MockJobService) job(args mock.Arguments) (*models.Job, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *MockJobService) ListOpen(ctx context.Context, req *dto.ListJobsRequest) (*dto.Page[models.Job], error) {
	return m.page(m.Called(ctx, req))
}

func (m *MockJobService) GetOpen(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	return m.job(m.Called(ctx, id))
}

func (m *MockJobService) ListManaged(ctx context.Context, req *dto.ListJobsRequest) (*dto.Page[models.Job], error) {
	return m.page(m.Called(ctx, req))
}

func (m *MockJobService) GetManaged(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	return m.job(m.Called(ctx, id))
}

func (m *MockJobService) Create(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error) {
	return m.job(m.Called(ctx, req))
}

func (m *MockJobService) Update(ctx context.Context, req *dto.UpdateJobRequest) (*models.Job, error) {
	return m.job(m.Called(ctx, req))
}

func (m *MockJobService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockJobService) ExpireStaleJobs(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockJobApplicationService is a mock type for services.JobApplicationService
type MockJobApplicationService struct {
	mock.Mock
}

func (m *MockJobApplicationService) application(args mock.Arguments) (*models.JobApplication, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JobApplication), args.Error(1)
}

func (m *MockJobApplicationService) Apply(ctx context.Context, req *dto.ApplyRequest) (*models.JobApplication, error) {
	return m.application(m.Called(ctx, req))
}

func (m *MockJobApplicationService) HasApplied(ctx context.Context, applicantID, jobID uuid.UUID) (bool, error) {
	args := m.Called(ctx, applicantID, jobID)
	return args.Bool(0), args.Error(1)
}

func (m *MockJobApplicationService) ListMine(ctx context.Context, applicantID uuid.UUID) ([]models.JobApplication, error) {
	args := m.Called(ctx, applicantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.JobApplication), args.Error(1)
}

func (m *MockJobApplicationService) Withdraw(ctx context.Context, req *dto.WithdrawRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockJobApplicationService) ListApplicants(ctx context.Context, req *dto.ListApplicantsRequest) (*dto.Page[models.JobApplication], error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Page[models.JobApplication]), args.Error(1)
}

func (m *MockJobApplicationService) GetApplicant(ctx context.Context, id uuid.UUID) (*dto.ApplicantDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ApplicantDetail), args.Error(1)
}

func (m *MockJobApplicationService) DocumentURL(ctx context.Context, id uuid.UUID, kind models.DocumentKind) (string, error) {
	args := m.Called(ctx, id, kind)
	return args.String(0), args.Error(1)
}

func (m *MockJobApplicationService) UpdateStatus(ctx context.Context, req *dto.UpdateStatusRequest) (*models.JobApplication, error) {
	return m.application(m.Called(ctx, req))
}

func (m *MockJobApplicationService) BulkUpdateStatus(ctx context.Context, req *dto.BulkStatusRequest) (*dto.BulkStatusResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BulkStatusResponse), args.Error(1)
}

// MockProfileService is a mock type for services.ProfileService
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) full(args mock.Arguments) (*models.FullProfile, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FullProfile), args.Error(1)
}

func (m *MockProfileService) Get(ctx context.Context, userID uuid.UUID) (*models.FullProfile, error) {
	return m.full(m.Called(ctx, userID))
}

func (m *MockProfileService) Update(ctx context.Context, req *dto.UpdateProfileRequest) (*models.FullProfile, error) {
	return m.full(m.Called(ctx, req))
}

func (m *MockProfileService) CreateEducation(ctx context.Context, userID uuid.UUID, req *dto.EducationRequest) (*models.Education, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Education), args.Error(1)
}

func (m *MockProfileService) UpdateEducation(ctx context.Context, ref dto.SectionRef, req *dto.EducationRequest) (*models.Education, error) {
	args := m.Called(ctx, ref, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Education), args.Error(1)
}

func (m *MockProfileService) DeleteEducation(ctx context.Context, ref dto.SectionRef) error {
	return m.Called(ctx, ref).Error(0)
}

func (m *MockProfileService) CreateExperience(ctx context.Context, userID uuid.UUID, req *dto.ExperienceRequest) (*models.Experience, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Experience), args.Error(1)
}

func (m *MockProfileService) UpdateExperience(ctx context.Context, ref dto.SectionRef, req *dto.ExperienceRequest) (*models.Experience, error) {
	args := m.Called(ctx, ref, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Experience), args.Error(1)
}

func (m *MockProfileService) DeleteExperience(ctx context.Context, ref dto.SectionRef) error {
	return m.Called(ctx, ref).Error(0)
}

func (m *MockProfileService) CreateCertification(ctx context.Context, userID uuid.UUID, req *dto.CertificationRequest) (*models.Certification, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Certification), args.Error(1)
}

func (m *MockProfileService) UpdateCertification(ctx context.Context, ref dto.SectionRef, req *dto.CertificationRequest) (*models.Certification, error) {
	args := m.Called(ctx, ref, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Certification), args.Error(1)
}

func (m *MockProfileService) DeleteCertification(ctx context.Context, ref dto.SectionRef) error {
	return m.Called(ctx, ref).Error(0)
}

func (m *MockProfileService) ReplaceSkills(ctx context.Context, userID uuid.UUID, req *dto.SkillsRequest) ([]models.Skill, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Skill), args.Error(1)
}

func (m *MockProfileService) SearchSkills(ctx context.Context, req *dto.SkillSearchRequest) ([]models.Skill, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Skill), args.Error(1)
}

// MockSettingsService is a mock type for services.SettingsService
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) List(ctx context.Context, kind models.LookupKind) ([]models.LookupItem, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LookupItem), args.Error(1)
}

func (m *MockSettingsService) Create(ctx context.Context, req *dto.LookupRequest) (*models.LookupItem, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LookupItem), args.Error(1)
}

func (m *MockSettingsService) Update(ctx context.Context, req *dto.LookupRequest) (*models.LookupItem, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LookupItem), args.Error(1)
}

func (m *MockSettingsService) Delete(ctx context.Context, kind models.LookupKind, id int) error {
	return m.Called(ctx, kind, id).Error(0)
}

// Ensure mocks implement the interfaces
var (
	_ services.UserService           = (*MockUserService)(nil)
	_ services.JobService            = (*MockJobService)(nil)
	_ services.JobApplicationService = (*MockJobApplicationService)(nil)
	_ services.ProfileService        = (*MockProfileService)(nil)
	_ services.SettingsService       = (*MockSettingsService)(nil)
)
