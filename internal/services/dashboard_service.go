package services

import (
	"context"
	"fmt"
	"time"

	"recruit-api/internal/models"
	"recruit-api/internal/storage"
	"recruit-api/internal/transport/dto"

	"github.com/google/uuid"
)

type dashboardService struct {
	jobs         storage.JobRepository
	applications storage.ApplicationRepository
	now          func() time.Time
}

// NewDashboardService creates a new instance of DashboardService.
func NewDashboardService(jobs storage.JobRepository, applications storage.ApplicationRepository) DashboardService {
	return &dashboardService{jobs: jobs, applications: applications, now: time.Now}
}

// Stats counts open jobs and applications per status. Every status is
// present in ByStatus, zero when unused.
func (s *dashboardService) Stats(ctx context.Context, req *dto.StatsRequest) (*models.DashboardStats, error) {
	var jobID *uuid.UUID
	if req.JobID != "" {
		id, err := uuid.Parse(req.JobID)
		if err != nil {
			return nil, fmt.Errorf("%w: job_id must be a UUID", ErrValidation)
		}
		jobID = &id
	}

	open, err := s.jobs.CountOpen(ctx, models.DateOnly(s.now()))
	if err != nil {
		return nil, MapRepoError(err, "counting open jobs")
	}
	counts, err := s.applications.CountByStatus(ctx, jobID)
	if err != nil {
		return nil, MapRepoError(err, "counting applications")
	}

	stats := &models.DashboardStats{
		OpenJobs: open,
		ByStatus: make(map[models.ApplicationStatus]int, len(models.AllStatuses)),
	}
	for _, status := range models.AllStatuses {
		stats.ByStatus[status] = counts[status]
		stats.TotalApplications += counts[status]
	}
	return stats, nil
}
