package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"recruit-api/internal/models"
	"recruit-api/internal/storage"
	"recruit-api/internal/transport/dto"

	"github.com/google/uuid"
)

type jobService struct {
	jobRepo storage.JobRepository
	// expiredGrace is how long after its closing date a job stays active.
	expiredGrace time.Duration
	now          func() time.Time
}

// NewJobService creates a new instance of JobService.
func NewJobService(jobRepo storage.JobRepository, expiredGrace time.Duration) JobService {
	return &jobService{jobRepo: jobRepo, expiredGrace: expiredGrace, now: time.Now}
}

func (s *jobService) ListOpen(ctx context.Context, req *dto.ListJobsRequest) (*dto.Page[models.Job], error) {
	return s.list(ctx, req, models.JobFilter{OnlyOpen: true})
}

func (s *jobService) ListManaged(ctx context.Context, req *dto.ListJobsRequest) (*dto.Page[models.Job], error) {
	return s.list(ctx, req, models.JobFilter{IncludeInactive: req.IncludeInactive})
}

func (s *jobService) list(ctx context.Context, req *dto.ListJobsRequest, filter models.JobFilter) (*dto.Page[models.Job], error) {
	filter.Search = strings.TrimSpace(req.Search)
	filter.DepartmentID = req.DepartmentID
	filter.EmploymentTypeID = req.EmploymentTypeID
	filter.Today = models.DateOnly(s.now())
	filter.Limit = req.Limit
	filter.Offset = req.Offset

	jobs, total, err := s.jobRepo.List(ctx, filter)
	if err != nil {
		return nil, MapRepoError(err, "listing jobs")
	}
	return &dto.Page[models.Job]{Items: jobs, Total: total, Limit: req.Limit, Offset: req.Offset}, nil
}

// GetOpen hides inactive and closed jobs from the public.
func (s *jobService) GetOpen(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, MapRepoError(err, "getting job")
	}
	if !job.IsOpen(s.now()) {
		return nil, fmt.Errorf("%w: job is closed", ErrNotFound)
	}
	return job, nil
}

func (s *jobService) GetManaged(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, MapRepoError(err, "getting job")
	}
	return job, nil
}

func (s *jobService) Create(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error) {
	job, err := jobFromRequest(&req.JobRequest)
	if err != nil {
		return nil, err
	}
	if job.ClosingDate.Before(models.DateOnly(s.now())) {
		return nil, fmt.Errorf("%w: closing_date must not be in the past", ErrValidation)
	}
	job.PostedBy = req.PostedBy
	job.IsActive = true

	created, err := s.jobRepo.Create(ctx, job)
	if err != nil {
		return nil, MapRepoError(err, "creating job")
	}
	slog.InfoContext(ctx, "job created", "job_id", created.ID, "posted_by", created.PostedBy)
	return created, nil
}

func (s *jobService) Update(ctx context.Context, req *dto.UpdateJobRequest) (*models.Job, error) {
	existing, err := s.jobRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, MapRepoError(err, "fetching job for update")
	}

	job, err := jobFromRequest(&req.JobRequest)
	if err != nil {
		return nil, err
	}
	job.ID = existing.ID
	job.PostedBy = existing.PostedBy
	job.IsActive = existing.IsActive
	if req.IsActive != nil {
		job.IsActive = *req.IsActive
	}

	updated, err := s.jobRepo.Update(ctx, job)
	if err != nil {
		return nil, MapRepoError(err, "updating job")
	}
	return updated, nil
}

// Delete is a soft delete; applications keep pointing at the job.
func (s *jobService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.jobRepo.Deactivate(ctx, id); err != nil {
		return MapRepoError(err, "deleting job")
	}
	slog.InfoContext(ctx, "job deactivated", "job_id", id)
	return nil
}

// ExpireStaleJobs deactivates jobs that closed more than the grace period ago.
func (s *jobService) ExpireStaleJobs(ctx context.Context, now time.Time) (int64, error) {
	cutoff := models.DateOnly(now.Add(-s.expiredGrace))
	n, err := s.jobRepo.DeactivateClosedBefore(ctx, cutoff)
	if err != nil {
		return 0, MapRepoError(err, "expiring jobs")
	}
	return n, nil
}

func jobFromRequest(req *dto.JobRequest) (*models.Job, error) {
	closing, err := parseDate(req.ClosingDate, "closing_date")
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	return &models.Job{
		Title:              title,
		DepartmentID:       req.DepartmentID,
		EmploymentTypeID:   req.EmploymentTypeID,
		EducationLevelID:   req.EducationLevelID,
		ExperienceLevelID:  req.ExperienceLevelID,
		ClosingDate:        closing,
		Description:        strings.TrimSpace(req.Description),
		Responsibilities:   trimAll(req.Responsibilities),
		Qualifications:     trimAll(req.Qualifications),
		Skills:             trimAll(req.Skills),
		TermsAndConditions: strings.TrimSpace(req.TermsAndConditions),
	}, nil
}
