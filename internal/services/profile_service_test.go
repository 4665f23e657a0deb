package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"recruit-api/internal/models"
	"recruit-api/internal/storage"
	"recruit-api/internal/storage/files"
	"recruit-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProfileServiceForTest(r *testRepos, docs *MockDocumentStore) *profileService {
	return &profileService{repos: r.repositories(), tx: r.tx, docs: docs, now: func() time.Time { return fixedNow }}
}

func strPtr(s string) *string { return &s }

// expectFullProfile stubs every read done by loadFullProfile.
func expectFullProfile(r *testRepos, user *models.User) {
	r.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	r.profiles.On("Get", mock.Anything, user.ID).Return(&models.ApplicantProfile{UserID: user.ID}, nil)
	r.profiles.On("ListEducations", mock.Anything, user.ID).Return([]models.Education{}, nil)
	r.profiles.On("ListExperiences", mock.Anything, user.ID).Return([]models.Experience{}, nil)
	r.profiles.On("ListCertifications", mock.Anything, user.ID).Return([]models.Certification{}, nil)
	r.skills.On("ListForUser", mock.Anything, user.ID).Return([]models.Skill{}, nil)
}

func TestGetProfile_StaffWithoutProfileRow(t *testing.T) {
	r := newTestRepos()
	svc := newProfileServiceForTest(r, new(MockDocumentStore))
	user := &models.User{ID: uuid.New(), Role: models.RoleHR}
	r.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	r.profiles.On("Get", mock.Anything, user.ID).Return(nil, storage.ErrNotFound)
	r.profiles.On("ListEducations", mock.Anything, user.ID).Return([]models.Education{}, nil)
	r.profiles.On("ListExperiences", mock.Anything, user.ID).Return([]models.Experience{}, nil)
	r.profiles.On("ListCertifications", mock.Anything, user.ID).Return([]models.Certification{}, nil)
	r.skills.On("ListForUser", mock.Anything, user.ID).Return([]models.Skill{}, nil)

	full, err := svc.Get(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, full.Profile.UserID)
}

func TestUpdateProfile(t *testing.T) {
	user := &models.User{ID: uuid.New(), Role: models.RoleApplicant}

	t.Run("title cases names and saves", func(t *testing.T) {
		r := newTestRepos()
		svc := newProfileServiceForTest(r, new(MockDocumentStore))
		r.users.On("UpdateNames", mock.Anything, user.ID, "Mary Ann", "Smith").Return(nil)
		r.profiles.On("Update", mock.Anything, mock.MatchedBy(func(p *models.ApplicantProfile) bool {
			return p.UserID == user.ID && *p.MiddleName == "Jo" && *p.Phone == "+254 712 345678" &&
				*p.Gender == models.GenderFemale && p.DateOfBirth.Equal(time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC))
		})).Return(&models.ApplicantProfile{UserID: user.ID}, nil)
		expectFullProfile(r, user)

		_, err := svc.Update(context.Background(), &dto.UpdateProfileRequest{
			UserID:      user.ID,
			FirstName:   "mary  ann",
			MiddleName:  strPtr("jo"),
			LastName:    "SMITH",
			Phone:       strPtr("+254 712 345678"),
			DateOfBirth: strPtr("1990-05-01"),
			Gender:      strPtr(models.GenderFemale),
		})
		require.NoError(t, err)
		r.profiles.AssertExpectations(t)
	})

	tests := []struct {
		name string
		req  dto.UpdateProfileRequest
	}{
		{"underage applicant", dto.UpdateProfileRequest{FirstName: "Kid", DateOfBirth: strPtr("2010-01-01")}},
		{"birth date in the future", dto.UpdateProfileRequest{FirstName: "Time", DateOfBirth: strPtr("2030-01-01")}},
		{"invalid phone", dto.UpdateProfileRequest{FirstName: "Jane", Phone: strPtr("call me")}},
		{"unknown gender", dto.UpdateProfileRequest{FirstName: "Jane", Gender: strPtr("robot")}},
		{"blank first name", dto.UpdateProfileRequest{FirstName: "   "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRepos()
			svc := newProfileServiceForTest(r, new(MockDocumentStore))
			req := tt.req
			req.UserID = user.ID

			_, err := svc.Update(context.Background(), &req)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, 0, r.tx.calls)
		})
	}
}

func TestCheckAdult_Birthday(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	assert.NoError(t, checkAdult(time.Date(2008, 3, 10, 0, 0, 0, 0, time.UTC), now), "18th birthday today")
	assert.ErrorIs(t, checkAdult(time.Date(2008, 3, 11, 0, 0, 0, 0, time.UTC), now), ErrValidation)
}

func TestCreateEducation_DateRange(t *testing.T) {
	svc := newProfileServiceForTest(newTestRepos(), new(MockDocumentStore))
	_, err := svc.CreateEducation(context.Background(), uuid.New(), &dto.EducationRequest{
		Institution: "MIT", Degree: "BSc", StartDate: "2020-09-01", EndDate: "2019-06-01",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateExperience_CurrentHasNoEndDate(t *testing.T) {
	svc := newProfileServiceForTest(newTestRepos(), new(MockDocumentStore))
	_, err := svc.CreateExperience(context.Background(), uuid.New(), &dto.ExperienceRequest{
		Company: "Acme", Position: "Dev", StartDate: "2020-01-01", EndDate: "2021-01-01", IsCurrent: true,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateCertification_StoresDocument(t *testing.T) {
	r := newTestRepos()
	docs := new(MockDocumentStore)
	svc := newProfileServiceForTest(r, docs)
	userID := uuid.New()
	doc := &models.Document{URL: "/uploads/x.pdf", FileName: "x.pdf", StorageKey: "u/x.pdf"}

	docs.On("Put", mock.Anything, userID, mock.AnythingOfType("files.Upload")).Return(doc, nil)
	r.profiles.On("CreateCertification", mock.Anything, mock.MatchedBy(func(c *models.Certification) bool {
		return c.Document == doc && c.CredentialID == nil && c.UserID == userID
	})).Return(&models.Certification{ID: uuid.New(), Document: doc}, nil)

	created, err := svc.CreateCertification(context.Background(), userID, &dto.CertificationRequest{
		Name: "CKA", IssuingOrganization: "CNCF", IssueDate: "2024-01-01", ExpiryDate: "2027-01-01",
		Document: &files.Upload{FileName: "x.pdf", Size: 4, Content: strings.NewReader("%PDF")},
	})
	require.NoError(t, err)
	assert.Equal(t, doc, created.Document)
	docs.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
}

func TestCreateEducation_FailedInsertRemovesUpload(t *testing.T) {
	r := newTestRepos()
	docs := new(MockDocumentStore)
	svc := newProfileServiceForTest(r, docs)
	userID := uuid.New()

	docs.On("Put", mock.Anything, userID, mock.Anything).Return(&models.Document{StorageKey: "u/new.pdf"}, nil)
	docs.On("Remove", mock.Anything, "u/new.pdf").Return(nil).Once()
	r.profiles.On("CreateEducation", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	_, err := svc.CreateEducation(context.Background(), userID, &dto.EducationRequest{
		Institution: "MIT", Degree: "BSc", StartDate: "2020-09-01",
		Document: &files.Upload{FileName: "d.pdf", Size: 4, Content: strings.NewReader("%PDF")},
	})
	assert.Error(t, err)
	docs.AssertExpectations(t)
}

func TestUpdateExperience_ReplacesDocument(t *testing.T) {
	r := newTestRepos()
	docs := new(MockDocumentStore)
	svc := newProfileServiceForTest(r, docs)
	ref := dto.SectionRef{UserID: uuid.New(), ID: uuid.New()}
	old := &models.Document{StorageKey: "u/old.pdf"}
	fresh := &models.Document{StorageKey: "u/new.pdf"}

	r.profiles.On("GetExperience", mock.Anything, ref.UserID, ref.ID).
		Return(&models.Experience{ID: ref.ID, UserID: ref.UserID, Document: old}, nil)
	docs.On("Put", mock.Anything, ref.UserID, mock.Anything).Return(fresh, nil)
	r.profiles.On("UpdateExperience", mock.Anything, mock.MatchedBy(func(e *models.Experience) bool {
		return e.Document == fresh && e.ID == ref.ID
	})).Return(&models.Experience{ID: ref.ID, Document: fresh}, nil)
	docs.On("Remove", mock.Anything, "u/old.pdf").Return(nil).Once()

	_, err := svc.UpdateExperience(context.Background(), ref, &dto.ExperienceRequest{
		Company: "Acme", Position: "Dev", StartDate: "2020-01-01", IsCurrent: true,
		Document: &files.Upload{FileName: "new.pdf", Size: 4, Content: strings.NewReader("%PDF")},
	})
	require.NoError(t, err)
	docs.AssertExpectations(t)
}

func TestUpdateEducation_RemoveDocument(t *testing.T) {
	r := newTestRepos()
	docs := new(MockDocumentStore)
	svc := newProfileServiceForTest(r, docs)
	ref := dto.SectionRef{UserID: uuid.New(), ID: uuid.New()}

	r.profiles.On("GetEducation", mock.Anything, ref.UserID, ref.ID).
		Return(&models.Education{ID: ref.ID, UserID: ref.UserID, Document: &models.Document{StorageKey: "u/old.pdf"}}, nil)
	r.profiles.On("UpdateEducation", mock.Anything, mock.MatchedBy(func(e *models.Education) bool {
		return e.Document == nil
	})).Return(&models.Education{ID: ref.ID}, nil)
	docs.On("Remove", mock.Anything, "u/old.pdf").Return(nil).Once()

	_, err := svc.UpdateEducation(context.Background(), ref, &dto.EducationRequest{
		Institution: "MIT", Degree: "BSc", StartDate: "2020-09-01", RemoveDocument: true,
	})
	require.NoError(t, err)
	docs.AssertExpectations(t)
}

func TestDeleteCertification_NotOwned(t *testing.T) {
	r := newTestRepos()
	svc := newProfileServiceForTest(r, new(MockDocumentStore))
	ref := dto.SectionRef{UserID: uuid.New(), ID: uuid.New()}
	r.profiles.On("GetCertification", mock.Anything, ref.UserID, ref.ID).Return(nil, storage.ErrNotFound)

	assert.ErrorIs(t, svc.DeleteCertification(context.Background(), ref), ErrNotFound)
	r.profiles.AssertNotCalled(t, "DeleteCertification", mock.Anything, mock.Anything, mock.Anything)
}

func TestReplaceSkills_Dedupes(t *testing.T) {
	r := newTestRepos()
	svc := newProfileServiceForTest(r, new(MockDocumentStore))
	userID := uuid.New()
	r.skills.On("ReplaceForUser", mock.Anything, userID, []string{"Go", "Postgres"}).
		Return([]models.Skill{{ID: 1, Name: "Go"}, {ID: 2, Name: "Postgres"}}, nil)

	skills, err := svc.ReplaceSkills(context.Background(), userID, &dto.SkillsRequest{
		Skills: []string{" Go", "go ", "", "Postgres", "GO"},
	})
	require.NoError(t, err)
	assert.Len(t, skills, 2)
	assert.Equal(t, 1, r.tx.calls)
}
