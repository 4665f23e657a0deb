package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"recruit-api/internal/models"
	"recruit-api/internal/storage"
	"recruit-api/internal/storage/files"
	"recruit-api/internal/textutil"
	"recruit-api/internal/transport/dto"
	"recruit-api/internal/validation"

	"github.com/google/uuid"
)

// MinimumApplicantAge is the youngest age accepted on a profile.
const MinimumApplicantAge = 18

type profileService struct {
	repos storage.Repositories
	tx    storage.Transactor
	docs  DocumentStore
	now   func() time.Time
}

// NewProfileService creates a new instance of ProfileService.
func NewProfileService(repos storage.Repositories, tx storage.Transactor, docs DocumentStore) ProfileService {
	return &profileService{repos: repos, tx: tx, docs: docs, now: time.Now}
}

// loadFullProfile assembles every section of a user's profile. Staff users
// have no profile row and get an empty one.
func loadFullProfile(ctx context.Context, repos storage.Repositories, userID uuid.UUID) (*models.FullProfile, error) {
	user, err := repos.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, MapRepoError(err, "fetching user")
	}
	full := &models.FullProfile{User: *user, Profile: models.ApplicantProfile{UserID: userID}}

	profile, err := repos.Profiles.Get(ctx, userID)
	switch {
	case err == nil:
		full.Profile = *profile
	case !errors.Is(err, storage.ErrNotFound):
		return nil, MapRepoError(err, "fetching profile")
	}

	if full.Educations, err = repos.Profiles.ListEducations(ctx, userID); err != nil {
		return nil, MapRepoError(err, "listing educations")
	}
	if full.Experiences, err = repos.Profiles.ListExperiences(ctx, userID); err != nil {
		return nil, MapRepoError(err, "listing experiences")
	}
	if full.Certifications, err = repos.Profiles.ListCertifications(ctx, userID); err != nil {
		return nil, MapRepoError(err, "listing certifications")
	}
	if full.Skills, err = repos.Skills.ListForUser(ctx, userID); err != nil {
		return nil, MapRepoError(err, "listing skills")
	}
	return full, nil
}

func (s *profileService) Get(ctx context.Context, userID uuid.UUID) (*models.FullProfile, error) {
	return loadFullProfile(ctx, s.repos, userID)
}

func (s *profileService) Update(ctx context.Context, req *dto.UpdateProfileRequest) (*models.FullProfile, error) {
	firstName := textutil.TitleCase(req.FirstName)
	if firstName == "" {
		return nil, fmt.Errorf("%w: first_name is required", ErrValidation)
	}
	profile := &models.ApplicantProfile{UserID: req.UserID}

	if req.MiddleName != nil {
		if name := textutil.TitleCase(*req.MiddleName); name != "" {
			profile.MiddleName = &name
		}
	}
	if req.Phone != nil {
		if phone := strings.TrimSpace(*req.Phone); phone != "" {
			if !validation.IsPhone(phone) {
				return nil, fmt.Errorf("%w: phone is not a valid phone number", ErrValidation)
			}
			profile.Phone = &phone
		}
	}
	if req.Gender != nil && *req.Gender != "" {
		if !validation.IsGender(*req.Gender) {
			return nil, fmt.Errorf("%w: gender %q is not supported", ErrValidation, *req.Gender)
		}
		gender := *req.Gender
		profile.Gender = &gender
	}
	if req.DateOfBirth != nil && *req.DateOfBirth != "" {
		dob, err := parseDate(*req.DateOfBirth, "date_of_birth")
		if err != nil {
			return nil, err
		}
		if err := checkAdult(dob, s.now()); err != nil {
			return nil, err
		}
		profile.DateOfBirth = &dob
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, repos storage.Repositories) error {
		if err := repos.Users.UpdateNames(ctx, req.UserID, firstName, textutil.TitleCase(req.LastName)); err != nil {
			return err
		}
		_, err := repos.Profiles.Update(ctx, profile)
		return err
	})
	if err != nil {
		return nil, MapRepoError(err, "updating profile")
	}
	return loadFullProfile(ctx, s.repos, req.UserID)
}

// checkAdult requires dob to be in the past and at least MinimumApplicantAge years ago.
func checkAdult(dob, now time.Time) error {
	today := models.DateOnly(now)
	if !dob.Before(today) {
		return fmt.Errorf("%w: date_of_birth must be in the past", ErrValidation)
	}
	if dob.AddDate(MinimumApplicantAge, 0, 0).After(today) {
		return fmt.Errorf("%w: applicants must be at least %d years old", ErrValidation, MinimumApplicantAge)
	}
	return nil
}

// documentChange is the outcome of applying an optional upload to a
// section row. Stored is the newly written key, Stale the key to delete
// once the row write succeeded.
type documentChange struct {
	Doc    *models.Document
	Stored string
	Stale  string
}

func (s *profileService) applyDocument(ctx context.Context, userID uuid.UUID, existing *models.Document,
	upload *files.Upload, remove bool) (documentChange, error) {
	change := documentChange{Doc: existing}
	if upload != nil {
		doc, err := s.docs.Put(ctx, userID, *upload)
		if err != nil {
			return change, mapUploadError(err, "document")
		}
		change.Doc = doc
		change.Stored = doc.StorageKey
	} else if remove {
		change.Doc = nil
	}
	if existing != nil && change.Doc != existing {
		change.Stale = existing.StorageKey
	}
	return change, nil
}

// finish removes the stale file after success, or the new one after failure.
func (s *profileService) finish(ctx context.Context, change documentChange, err error) {
	if err != nil {
		removeStored(context.WithoutCancel(ctx), s.docs, change.Stored)
		return
	}
	removeStored(ctx, s.docs, change.Stale)
}

func checkRange(start time.Time, end *time.Time, startField, endField string) error {
	if end != nil && end.Before(start) {
		return fmt.Errorf("%w: %s must not be before %s", ErrValidation, endField, startField)
	}
	return nil
}

// --- Education ---

func educationFromRequest(req *dto.EducationRequest) (*models.Education, error) {
	start, err := parseDate(req.StartDate, "start_date")
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalDate(req.EndDate, "end_date")
	if err != nil {
		return nil, err
	}
	if err := checkRange(start, end, "start_date", "end_date"); err != nil {
		return nil, err
	}
	return &models.Education{
		Institution:  strings.TrimSpace(req.Institution),
		Degree:       strings.TrimSpace(req.Degree),
		FieldOfStudy: strings.TrimSpace(req.FieldOfStudy),
		StartDate:    start,
		EndDate:      end,
	}, nil
}

func (s *profileService) CreateEducation(ctx context.Context, userID uuid.UUID, req *dto.EducationRequest) (*models.Education, error) {
	e, err := educationFromRequest(req)
	if err != nil {
		return nil, err
	}
	e.UserID = userID

	change, err := s.applyDocument(ctx, userID, nil, req.Document, false)
	if err != nil {
		return nil, err
	}
	e.Document = change.Doc
	created, err := s.repos.Profiles.CreateEducation(ctx, e)
	s.finish(ctx, change, err)
	if err != nil {
		return nil, MapRepoError(err, "creating education")
	}
	return created, nil
}

func (s *profileService) UpdateEducation(ctx context.Context, ref dto.SectionRef, req *dto.EducationRequest) (*models.Education, error) {
	existing, err := s.repos.Profiles.GetEducation(ctx, ref.UserID, ref.ID)
	if err != nil {
		return nil, MapRepoError(err, "fetching education")
	}
	e, err := educationFromRequest(req)
	if err != nil {
		return nil, err
	}
	e.ID, e.UserID = existing.ID, existing.UserID

	change, err := s.applyDocument(ctx, ref.UserID, existing.Document, req.Document, req.RemoveDocument)
	if err != nil {
		return nil, err
	}
	e.Document = change.Doc
	updated, err := s.repos.Profiles.UpdateEducation(ctx, e)
	s.finish(ctx, change, err)
	if err != nil {
		return nil, MapRepoError(err, "updating education")
	}
	return updated, nil
}

func (s *profileService) DeleteEducation(ctx context.Context, ref dto.SectionRef) error {
	existing, err := s.repos.Profiles.GetEducation(ctx, ref.UserID, ref.ID)
	if err != nil {
		return MapRepoError(err, "fetching education")
	}
	if err := s.repos.Profiles.DeleteEducation(ctx, ref.UserID, ref.ID); err != nil {
		return MapRepoError(err, "deleting education")
	}
	if existing.Document != nil {
		removeStored(ctx, s.docs, existing.Document.StorageKey)
	}
	return nil
}

// --- Experience ---

func experienceFromRequest(req *dto.ExperienceRequest) (*models.Experience, error) {
	start, err := parseDate(req.StartDate, "start_date")
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalDate(req.EndDate, "end_date")
	if err != nil {
		return nil, err
	}
	if req.IsCurrent && end != nil {
		return nil, fmt.Errorf("%w: a current position has no end_date", ErrValidation)
	}
	if err := checkRange(start, end, "start_date", "end_date"); err != nil {
		return nil, err
	}
	return &models.Experience{
		Company:     strings.TrimSpace(req.Company),
		Position:    strings.TrimSpace(req.Position),
		Description: strings.TrimSpace(req.Description),
		StartDate:   start,
		EndDate:     end,
		IsCurrent:   req.IsCurrent,
	}, nil
}

func (s *profileService) CreateExperience(ctx context.Context, userID uuid.UUID, req *dto.ExperienceRequest) (*models.Experience, error) {
	e, err := experienceFromRequest(req)
	if err != nil {
		return nil, err
	}
	e.UserID = userID

	change, err := s.applyDocument(ctx, userID, nil, req.Document, false)
	if err != nil {
		return nil, err
	}
	e.Document = change.Doc
	created, err := s.repos.Profiles.CreateExperience(ctx, e)
	s.finish(ctx, change, err)
	if err != nil {
		return nil, MapRepoError(err, "creating experience")
	}
	return created, nil
}

func (s *profileService) UpdateExperience(ctx context.Context, ref dto.SectionRef, req *dto.ExperienceRequest) (*models.Experience, error) {
	existing, err := s.repos.Profiles.GetExperience(ctx, ref.UserID, ref.ID)
	if err != nil {
		return nil, MapRepoError(err, "fetching experience")
	}
	e, err := experienceFromRequest(req)
	if err != nil {
		return nil, err
	}
	e.ID, e.UserID = existing.ID, existing.UserID

	change, err := s.applyDocument(ctx, ref.UserID, existing.Document, req.Document, req.RemoveDocument)
	if err != nil {
		return nil, err
	}
	e.Document = change.Doc
	updated, err := s.repos.Profiles.UpdateExperience(ctx, e)
	s.finish(ctx, change, err)
	if err != nil {
		return nil, MapRepoError(err, "updating experience")
	}
	return updated, nil
}

func (s *profileService) DeleteExperience(ctx context.Context, ref dto.SectionRef) error {
	existing, err := s.repos.Profiles.GetExperience(ctx, ref.UserID, ref.ID)
	if err != nil {
		return MapRepoError(err, "fetching experience")
	}
	if err := s.repos.Profiles.DeleteExperience(ctx, ref.UserID, ref.ID); err != nil {
		return MapRepoError(err, "deleting experience")
	}
	if existing.Document != nil {
		removeStored(ctx, s.docs, existing.Document.StorageKey)
	}
	return nil
}

// --- Certification ---

func certificationFromRequest(req *dto.CertificationRequest) (*models.Certification, error) {
	issued, err := parseDate(req.IssueDate, "issue_date")
	if err != nil {
		return nil, err
	}
	expiry, err := parseOptionalDate(req.ExpiryDate, "expiry_date")
	if err != nil {
		return nil, err
	}
	if err := checkRange(issued, expiry, "issue_date", "expiry_date"); err != nil {
		return nil, err
	}
	return &models.Certification{
		Name:                strings.TrimSpace(req.Name),
		IssuingOrganization: strings.TrimSpace(req.IssuingOrganization),
		IssueDate:           issued,
		ExpiryDate:          expiry,
		CredentialID:        optionalString(req.CredentialID),
	}, nil
}

func (s *profileService) CreateCertification(ctx context.Context, userID uuid.UUID, req *dto.CertificationRequest) (*models.Certification, error) {
	c, err := certificationFromRequest(req)
	if err != nil {
		return nil, err
	}
	c.UserID = userID

	change, err := s.applyDocument(ctx, userID, nil, req.Document, false)
	if err != nil {
		return nil, err
	}
	c.Document = change.Doc
	created, err := s.repos.Profiles.CreateCertification(ctx, c)
	s.finish(ctx, change, err)
	if err != nil {
		return nil, MapRepoError(err, "creating certification")
	}
	return created, nil
}

func (s *profileService) UpdateCertification(ctx context.Context, ref dto.SectionRef, req *dto.CertificationRequest) (*models.Certification, error) {
	existing, err := s.repos.Profiles.GetCertification(ctx, ref.UserID, ref.ID)
	if err != nil {
		return nil, MapRepoError(err, "fetching certification")
	}
	c, err := certificationFromRequest(req)
	if err != nil {
		return nil, err
	}
	c.ID, c.UserID = existing.ID, existing.UserID

	change, err := s.applyDocument(ctx, ref.UserID, existing.Document, req.Document, req.RemoveDocument)
	if err != nil {
		return nil, err
	}
	c.Document = change.Doc
	updated, err := s.repos.Profiles.UpdateCertification(ctx, c)
	s.finish(ctx, change, err)
	if err != nil {
		return nil, MapRepoError(err, "updating certification")
	}
	return updated, nil
}

func (s *profileService) DeleteCertification(ctx context.Context, ref dto.SectionRef) error {
	existing, err := s.repos.Profiles.GetCertification(ctx, ref.UserID, ref.ID)
	if err != nil {
		return MapRepoError(err, "fetching certification")
	}
	if err := s.repos.Profiles.DeleteCertification(ctx, ref.UserID, ref.ID); err != nil {
		return MapRepoError(err, "deleting certification")
	}
	if existing.Document != nil {
		removeStored(ctx, s.docs, existing.Document.StorageKey)
	}
	return nil
}

// --- Skills ---

func (s *profileService) ReplaceSkills(ctx context.Context, userID uuid.UUID, req *dto.SkillsRequest) ([]models.Skill, error) {
	names := textutil.Dedupe(req.Skills)

	var skills []models.Skill
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, repos storage.Repositories) error {
		var err error
		skills, err = repos.Skills.ReplaceForUser(ctx, userID, names)
		return err
	})
	if err != nil {
		return nil, MapRepoError(err, "replacing skills")
	}
	return skills, nil
}

func (s *profileService) SearchSkills(ctx context.Context, req *dto.SkillSearchRequest) ([]models.Skill, error) {
	skills, err := s.repos.Skills.Search(ctx, strings.TrimSpace(req.Query), req.Limit)
	if err != nil {
		return nil, MapRepoError(err, "searching skills")
	}
	return skills, nil
}
