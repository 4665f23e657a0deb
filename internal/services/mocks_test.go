package services

import (
	"context"
	"time"

	"recruit-api/internal/models"
	"recruit-api/internal/notify"
	"recruit-api/internal/storage"
	"recruit-api/internal/storage/files"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// --- Repository mocks ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.User), args.Int(1), args.Error(2)
}

func (m *MockUserRepository) UpdateNames(ctx context.Context, id uuid.UUID, firstName, lastName string) error {
	return m.Called(ctx, id, firstName, lastName).Error(0)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) error {
	return m.Called(ctx, id, role).Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) CreateEmpty(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockProfileRepository) Get(ctx context.Context, userID uuid.UUID) (*models.ApplicantProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ApplicantProfile), args.Error(1)
}

func (m *MockProfileRepository) Update(ctx context.Context, p *models.ApplicantProfile) (*models.ApplicantProfile, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ApplicantProfile), args.Error(1)
}

func (m *MockProfileRepository) ListEducations(ctx context.Context, userID uuid.UUID) ([]models.Education, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Education), args.Error(1)
}

func (m *MockProfileRepository) GetEducation(ctx context.Context, userID, id uuid.UUID) (*models.Education, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Education), args.Error(1)
}

func (m *MockProfileRepository) CreateEducation(ctx context.Context, e *models.Education) (*models.Education, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Education), args.Error(1)
}

func (m *MockProfileRepository) UpdateEducation(ctx context.Context, e *models.Education) (*models.Education, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Education), args.Error(1)
}

func (m *MockProfileRepository) DeleteEducation(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockProfileRepository) ListExperiences(ctx context.Context, userID uuid.UUID) ([]models.Experience, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Experience), args.Error(1)
}

func (m *MockProfileRepository) GetExperience(ctx context.Context, userID, id uuid.UUID) (*models.Experience, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Experience), args.Error(1)
}

func (m *MockProfileRepository) CreateExperience(ctx context.Context, e *models.Experience) (*models.Experience, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Experience), args.Error(1)
}

func (m *MockProfileRepository) UpdateExperience(ctx context.Context, e *models.Experience) (*models.Experience, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Experience), args.Error(1)
}

func (m *MockProfileRepository) DeleteExperience(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockProfileRepository) ListCertifications(ctx context.Context, userID uuid.UUID) ([]models.Certification, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Certification), args.Error(1)
}

func (m *MockProfileRepository) GetCertification(ctx context.Context, userID, id uuid.UUID) (*models.Certification, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Certification), args.Error(1)
}

func (m *MockProfileRepository) CreateCertification(ctx context.Context, c *models.Certification) (*models.Certification, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Certification), args.Error(1)
}

func (m *MockProfileRepository) UpdateCertification(ctx context.Context, c *models.Certification) (*models.Certification, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Certification), args.Error(1)
}

func (m *MockProfileRepository) DeleteCertification(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

type MockSkillRepository struct {
	mock.Mock
}

func (m *MockSkillRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Skill, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Skill), args.Error(1)
}

func (m *MockSkillRepository) ReplaceForUser(ctx context.Context, userID uuid.UUID, names []string) ([]models.Skill, error) {
	args := m.Called(ctx, userID, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Skill), args.Error(1)
}

func (m *MockSkillRepository) Search(ctx context.Context, prefix string, limit int) ([]models.Skill, error) {
	args := m.Called(ctx, prefix, limit)
	return args.Get(0).([]models.Skill), args.Error(1)
}

type MockLookupRepository struct {
	mock.Mock
}

func (m *MockLookupRepository) List(ctx context.Context, kind models.LookupKind) ([]models.LookupItem, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LookupItem), args.Error(1)
}

func (m *MockLookupRepository) GetByID(ctx context.Context, kind models.LookupKind, id int) (*models.LookupItem, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LookupItem), args.Error(1)
}

func (m *MockLookupRepository) NameTaken(ctx context.Context, kind models.LookupKind, name string, excludeID int) (bool, error) {
	args := m.Called(ctx, kind, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLookupRepository) Create(ctx context.Context, kind models.LookupKind, item *models.LookupItem) (*models.LookupItem, error) {
	args := m.Called(ctx, kind, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LookupItem), args.Error(1)
}

func (m *MockLookupRepository) Update(ctx context.Context, kind models.LookupKind, item *models.LookupItem) (*models.LookupItem, error) {
	args := m.Called(ctx, kind, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LookupItem), args.Error(1)
}

func (m *MockLookupRepository) Delete(ctx context.Context, kind models.LookupKind, id int) error {
	return m.Called(ctx, kind, id).Error(0)
}

type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) Create(ctx context.Context, job *models.Job) (*models.Job, error) {
	args := m.Called(ctx, job)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *MockJobRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *MockJobRepository) List(ctx context.Context, filter models.JobFilter) ([]models.Job, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Job), args.Int(1), args.Error(2)
}

func (m *MockJobRepository) Update(ctx context.Context, job *models.Job) (*models.Job, error) {
	args := m.Called(ctx, job)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *MockJobRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockJobRepository) DeactivateClosedBefore(ctx context.Context, day time.Time) (int64, error) {
	args := m.Called(ctx, day)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJobRepository) CountOpen(ctx context.Context, today time.Time) (int, error) {
	args := m.Called(ctx, today)
	return args.Int(0), args.Error(1)
}

type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) Create(ctx context.Context, app *models.JobApplication) (*models.JobApplication, error) {
	args := m.Called(ctx, app)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JobApplication), args.Error(1)
}

func (m *MockApplicationRepository) AddDocument(ctx context.Context, doc *models.ApplicationDocument) (*models.ApplicationDocument, error) {
	args := m.Called(ctx, doc)
	if fn, ok := args.Get(0).(func(context.Context, *models.ApplicationDocument) *models.ApplicationDocument); ok {
		return fn(ctx, doc), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ApplicationDocument), args.Error(1)
}

func (m *MockApplicationRepository) Exists(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error) {
	args := m.Called(ctx, jobID, applicantID)
	return args.Bool(0), args.Error(1)
}

func (m *MockApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.JobApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JobApplication), args.Error(1)
}

func (m *MockApplicationRepository) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]models.JobApplication, error) {
	args := m.Called(ctx, applicantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.JobApplication), args.Error(1)
}

func (m *MockApplicationRepository) List(ctx context.Context, filter models.ApplicationFilter) ([]models.JobApplication, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.JobApplication), args.Int(1), args.Error(2)
}

func (m *MockApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.ApplicationStatus) error {
	return m.Called(ctx, id, from, to).Error(0)
}

func (m *MockApplicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockApplicationRepository) CountByStatus(ctx context.Context, jobID *uuid.UUID) (map[models.ApplicationStatus]int, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[models.ApplicationStatus]int), args.Error(1)
}

// --- Collaborator mocks ---

type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) NewRefreshToken(ctx context.Context, userID uuid.UUID, ttl time.Duration) (string, error) {
	args := m.Called(ctx, userID, ttl)
	return args.String(0), args.Error(1)
}

func (m *MockSessionStore) RotateRefreshToken(ctx context.Context, token string, ttl time.Duration) (uuid.UUID, string, error) {
	args := m.Called(ctx, token, ttl)
	return args.Get(0).(uuid.UUID), args.String(1), args.Error(2)
}

func (m *MockSessionStore) DeleteRefreshToken(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockSessionStore) RevokeUserRefreshTokens(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockSessionStore) RevokeAccessToken(ctx context.Context, jti string, ttl time.Duration) error {
	return m.Called(ctx, jti, ttl).Error(0)
}

func (m *MockSessionStore) IsAccessTokenRevoked(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) Put(ctx context.Context, ownerID uuid.UUID, u files.Upload) (*models.Document, error) {
	args := m.Called(ctx, ownerID, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Document), args.Error(1)
}

func (m *MockDocumentStore) URL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentStore) Remove(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Dispatch(ctx context.Context, changes []notify.StatusChange) {
	m.Called(ctx, changes)
}

// fakeTransactor runs fn directly against the mocked repositories and
// records whether the callback returned an error.
type fakeTransactor struct {
	repos      storage.Repositories
	calls      int
	rolledBack bool
}

func (f *fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos storage.Repositories) error) error {
	f.calls++
	if err := fn(ctx, f.repos); err != nil {
		f.rolledBack = true
		return err
	}
	return nil
}

// testRepos bundles one mock per repository.
type testRepos struct {
	users        *MockUserRepository
	profiles     *MockProfileRepository
	skills       *MockSkillRepository
	lookups      *MockLookupRepository
	jobs         *MockJobRepository
	applications *MockApplicationRepository
	tx           *fakeTransactor
}

func newTestRepos() *testRepos {
	r := &testRepos{
		users:        new(MockUserRepository),
		profiles:     new(MockProfileRepository),
		skills:       new(MockSkillRepository),
		lookups:      new(MockLookupRepository),
		jobs:         new(MockJobRepository),
		applications: new(MockApplicationRepository),
	}
	r.tx = &fakeTransactor{repos: r.repositories()}
	return r
}

func (r *testRepos) repositories() storage.Repositories {
	return storage.Repositories{
		Users:        r.users,
		Profiles:     r.profiles,
		Skills:       r.skills,
		Lookups:      r.lookups,
		Jobs:         r.jobs,
		Applications: r.applications,
	}
}

var (
	_ storage.UserRepository        = (*MockUserRepository)(nil)
	_ storage.ProfileRepository     = (*MockProfileRepository)(nil)
	_ storage.SkillRepository       = (*MockSkillRepository)(nil)
	_ storage.LookupRepository      = (*MockLookupRepository)(nil)
	_ storage.JobRepository         = (*MockJobRepository)(nil)
	_ storage.ApplicationRepository = (*MockApplicationRepository)(nil)
	_ storage.SessionStore          = (*MockSessionStore)(nil)
	_ DocumentStore                 = (*MockDocumentStore)(nil)
	_ StatusNotifier                = (*MockNotifier)(nil)
)
