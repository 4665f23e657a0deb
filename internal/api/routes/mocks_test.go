package routes_test

import (
	"recruit-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

type MockAuthHandler struct {
	mock.Mock
}

func (m *MockAuthHandler) Register(c *gin.Context) { m.Called(c) }
func (m *MockAuthHandler) Login(c *gin.Context) { m.Called(c) }
func (m *MockAuthHandler) Refresh(c *gin.Context) { m.Called(c) }
func (m *MockAuthHandler) Logout(c *gin.Context) { m.Called(c) }
func (m *MockAuthHandler) Me(c *gin.Context) { m.Called(c) }
func (m *MockAuthHandler) ChangePassword(c *gin.Context) { m.Called(c) }

type MockUserHandler struct {
	mock.Mock
}

func (m *MockUserHandler) ListUsers(c *gin.Context) { m.Called(c) }
func (m *MockUserHandler) CreateUser(c *gin.Context) { m.Called(c) }
func (m *MockUserHandler) UpdateUserRole(c *gin.Context) { m.Called(c) }
func (m *MockUserHandler) DeleteUser(c *gin.Context) { m.Called(c) }

type MockJobHandler struct {
	mock.Mock
}

func (m *MockJobHandler) ListJobs(c *gin.Context) { m.Called(c) }
func (m *MockJobHandler) GetJob(c *gin.Context) { m.Called(c) }
func (m *MockJobHandler) ListManagedJobs(c *gin.Context) { m.Called(c) }
func (m *MockJobHandler) GetManagedJob(c *gin.Context) { m.Called(c) }
func (m *MockJobHandler) CreateJob(c *gin.Context) { m.Called(c) }
func (m *MockJobHandler) UpdateJob(c *gin.Context) { m.Called(c) }
func (m *MockJobHandler) DeleteJob(c *gin.Context) { m.Called(c) }

type MockJobApplicationHandler struct {
	mock.Mock
}

func (m *MockJobApplicationHandler) ApplyToJob(c *gin.Context) { m.Called(c) }
func (m *MockJobApplicationHandler) ListMyApplications(c *gin.Context) { m.Called(c) }
func (m *MockJobApplicationHandler) CheckApplied(c *gin.Context) { m.Called(c) }
func (m *MockJobApplicationHandler) WithdrawApplication(c *gin.Context) { m.Called(c) }
func (m *MockJobApplicationHandler) ListApplicants(c *gin.Context) { m.Called(c) }
func (m *MockJobApplicationHandler) GetApplicant(c *gin.Context) { m.Called(c) }
func (m *MockJobApplicationHandler) GetApplicantDocument(c *gin.Context) { m.Called(c) }
func (m *MockJobApplicationHandler) UpdateApplicationStatus(c *gin.Context) { m.Called(c) }
func (m *MockJobApplicationHandler) BulkUpdateApplicationStatus(c *gin.Context) { m.Called(c) }

type MockProfileHandler struct {
	mock.Mock
}

func (m *MockProfileHandler) GetProfile(c *gin.Context) { m.Called(c) }
func (m *MockProfileHandler) UpdateProfile(c *gin.Context) { m.Called(c) }
func (m *MockProfileHandler) CreateEducation(c *gin.Context) { m.Called(c) }
func (m *MockProfileHandler) UpdateEducation(c *gin.Context) { m.Called(c) }
func (m *MockProfileHandler) DeleteEducation(c *gin.Context) { m.Called(c) }
func (m *MockProfileHandler) CreateExperience(c *gin.Context) { m.Called(c) }
func (m *MockProfileHandler) UpdateExperience(c *gin.Context) { m.Called(c) }
func (m *MockProfileHandler) DeleteExperience(c *gin.Context) { m.Called(c) }
func (m *MockProfileHandler) CreateCertification(c *gin.Context) { m.Called(c) }
func (m *MockProfileHandler) UpdateCertification(c *gin.Context) { m.Called(c) }
func (m *MockProfileHandler) DeleteCertification(c *gin.Context) { m.Called(c) }
func (m *MockProfileHandler) ReplaceSkills(c *gin.Context) { m.Called(c) }
func (m *MockProfileHandler) SearchSkills(c *gin.Context) { m.Called(c) }

type MockSettingsHandler struct {
	mock.Mock
}

func (m *MockSettingsHandler) ListLookups(c *gin.Context) { m.Called(c) }
func (m *MockSettingsHandler) CreateLookup(c *gin.Context) { m.Called(c) }
func (m *MockSettingsHandler) UpdateLookup(c *gin.Context) { m.Called(c) }
func (m *MockSettingsHandler) DeleteLookup(c *gin.Context) { m.Called(c) }

type MockDashboardHandler struct {
	mock.Mock
}

func (m *MockDashboardHandler) GetStats(c *gin.Context) { m.Called(c) }

// Ensure mocks implement the handler interfaces
var (
	_ handlers.AuthHandlerInterface           = (*MockAuthHandler)(nil)
	_ handlers.UserHandlerInterface           = (*MockUserHandler)(nil)
	_ handlers.JobHandlerInterface            = (*MockJobHandler)(nil)
	_ handlers.JobApplicationHandlerInterface = (*MockJobApplicationHandler)(nil)
	_ handlers.ProfileHandlerInterface        = (*MockProfileHandler)(nil)
	_ handlers.SettingsHandlerInterface       = (*MockSettingsHandler)(nil)
	_ handlers.DashboardHandlerInterface      = (*MockDashboardHandler)(nil)
)
