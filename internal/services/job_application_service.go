package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"recruit-api/internal/models"
	"recruit-api/internal/notify"
	"recruit-api/internal/storage"
	"recruit-api/internal/transport/dto"

	"github.com/google/uuid"
)

// JobApplicationOptions tunes the application workflow.
type JobApplicationOptions struct {
	// StrictTransitions rejects status changes outside the pipeline order.
	StrictTransitions bool
}

type jobApplicationService struct {
	repos    storage.Repositories
	tx       storage.Transactor
	docs     DocumentStore
	notifier StatusNotifier
	opts     JobApplicationOptions
	score    func() float64
	now      func() time.Time
}

// NewJobApplicationService creates a new instance of JobApplicationService.
func NewJobApplicationService(repos storage.Repositories, tx storage.Transactor, docs DocumentStore,
	notifier StatusNotifier, opts JobApplicationOptions) JobApplicationService {
	return &jobApplicationService{
		repos:    repos,
		tx:       tx,
		docs:     docs,
		notifier: notifier,
		opts:     opts,
		score:    randomScore,
		now:      time.Now,
	}
}

// randomScore is a placeholder score in [50, 100] with two decimals.
func randomScore() float64 {
	return math.Round((50+rand.Float64()*50)*100) / 100
}

func (s *jobApplicationService) Apply(ctx context.Context, req *dto.ApplyRequest) (*models.JobApplication, error) {
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return nil, fmt.Errorf("%w: job_id must be a UUID", ErrValidation)
	}
	if req.Resume == nil || req.CoverLetter == nil {
		return nil, fmt.Errorf("%w: resume and cover_letter files are required", ErrValidation)
	}

	job, err := s.repos.Jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, MapRepoError(err, "fetching job for application")
	}
	if !job.IsActive {
		return nil, fmt.Errorf("%w: job is no longer available", ErrNotFound)
	}
	if !job.IsOpen(s.now()) {
		return nil, fmt.Errorf("%w: job closed on %s", ErrInvalidState, job.ClosingDate.Format(dto.DateLayout))
	}

	applied, err := s.repos.Applications.Exists(ctx, jobID, req.ApplicantID)
	if err != nil {
		return nil, MapRepoError(err, "checking existing application")
	}
	if applied {
		return nil, fmt.Errorf("%w: already applied to this job", ErrConflict)
	}

	resume, err := s.docs.Put(ctx, req.ApplicantID, *req.Resume)
	if err != nil {
		return nil, mapUploadError(err, "resume")
	}
	coverLetter, err := s.docs.Put(ctx, req.ApplicantID, *req.CoverLetter)
	if err != nil {
		removeStored(ctx, s.docs, resume.StorageKey)
		return nil, mapUploadError(err, "cover_letter")
	}

	var created *models.JobApplication
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context, repos storage.Repositories) error {
		app, err := repos.Applications.Create(ctx, &models.JobApplication{
			JobID:       jobID,
			ApplicantID: req.ApplicantID,
			Status:      models.StatusPending,
			Score:       s.score(),
		})
		if err != nil {
			return err
		}
		attachments := []struct {
			kind models.DocumentKind
			doc  *models.Document
		}{
			{models.DocumentResume, resume},
			{models.DocumentCoverLetter, coverLetter},
		}
		for _, a := range attachments {
			doc := a.doc
			stored, err := repos.Applications.AddDocument(ctx, &models.ApplicationDocument{
				ApplicationID: app.ID,
				Kind:          a.kind,
				URL:           doc.URL,
				FileName:      doc.FileName,
				StorageKey:    doc.StorageKey,
			})
			if err != nil {
				return err
			}
			app.Documents = append(app.Documents, *stored)
		}
		created = app
		return nil
	})
	if err != nil {
		removeStored(context.WithoutCancel(ctx), s.docs, resume.StorageKey, coverLetter.StorageKey)
		if errors.Is(err, storage.ErrConflict) {
			return nil, fmt.Errorf("%w: already applied to this job", ErrConflict)
		}
		return nil, MapRepoError(err, "creating job application")
	}

	slog.InfoContext(ctx, "job application created", "application_id", created.ID, "job_id", created.JobID)
	created.JobTitle = job.Title
	return created, nil
}

func (s *jobApplicationService) HasApplied(ctx context.Context, applicantID, jobID uuid.UUID) (bool, error) {
	applied, err := s.repos.Applications.Exists(ctx, jobID, applicantID)
	if err != nil {
		return false, MapRepoError(err, "checking application")
	}
	return applied, nil
}

func (s *jobApplicationService) ListMine(ctx context.Context, applicantID uuid.UUID) ([]models.JobApplication, error) {
	apps, err := s.repos.Applications.ListByApplicant(ctx, applicantID)
	if err != nil {
		return nil, MapRepoError(err, "listing applications")
	}
	return apps, nil
}

// Withdraw deletes the caller's own application while HR has not acted on it yet.
func (s *jobApplicationService) Withdraw(ctx context.Context, req *dto.WithdrawRequest) error {
	app, err := s.repos.Applications.GetByID(ctx, req.ID)
	if err != nil {
		return MapRepoError(err, "fetching application")
	}
	if app.ApplicantID != req.ApplicantID {
		// Other applicants' rows are reported as missing.
		return fmt.Errorf("%w: application", ErrNotFound)
	}
	if app.Status != models.StatusPending {
		return fmt.Errorf("%w: only pending applications can be withdrawn", ErrInvalidState)
	}

	if err := s.repos.Applications.Delete(ctx, app.ID); err != nil {
		return MapRepoError(err, "withdrawing application")
	}
	for _, doc := range app.Documents {
		removeStored(ctx, s.docs, doc.StorageKey)
	}
	slog.InfoContext(ctx, "job application withdrawn", "application_id", app.ID, "job_id", app.JobID)
	return nil
}

func (s *jobApplicationService) ListApplicants(ctx context.Context, req *dto.ListApplicantsRequest) (*dto.Page[models.JobApplication], error) {
	filter := models.ApplicationFilter{Search: req.Search, Limit: req.Limit, Offset: req.Offset}
	if req.JobID != "" {
		jobID, err := uuid.Parse(req.JobID)
		if err != nil {
			return nil, fmt.Errorf("%w: job_id must be a UUID", ErrValidation)
		}
		filter.JobID = &jobID
	}
	if req.Status != "" {
		status := models.ApplicationStatus(req.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, req.Status)
		}
		filter.Status = &status
	}

	apps, total, err := s.repos.Applications.List(ctx, filter)
	if err != nil {
		return nil, MapRepoError(err, "listing applicants")
	}
	return &dto.Page[models.JobApplication]{Items: apps, Total: total, Limit: req.Limit, Offset: req.Offset}, nil
}

func (s *jobApplicationService) GetApplicant(ctx context.Context, id uuid.UUID) (*dto.ApplicantDetail, error) {
	app, err := s.repos.Applications.GetByID(ctx, id)
	if err != nil {
		return nil, MapRepoError(err, "fetching application")
	}
	profile, err := loadFullProfile(ctx, s.repos, app.ApplicantID)
	if err != nil {
		return nil, err
	}
	return &dto.ApplicantDetail{Application: app, Profile: profile}, nil
}

// DocumentURL returns a download link for one of the application's files.
func (s *jobApplicationService) DocumentURL(ctx context.Context, id uuid.UUID, kind models.DocumentKind) (string, error) {
	app, err := s.repos.Applications.GetByID(ctx, id)
	if err != nil {
		return "", MapRepoError(err, "fetching application")
	}
	doc := app.Document(kind)
	if doc == nil {
		return "", fmt.Errorf("%w: no %s attached", ErrNotFound, kind)
	}
	url, err := s.docs.URL(ctx, doc.StorageKey)
	if err != nil {
		return "", fmt.Errorf("failed to resolve document url: %w", err)
	}
	return url, nil
}

func (s *jobApplicationService) UpdateStatus(ctx context.Context, req *dto.UpdateStatusRequest) (*models.JobApplication, error) {
	app, changed, err := s.changeStatus(ctx, s.repos, req.ID, req.Status)
	if err != nil {
		return nil, err
	}
	if changed {
		s.notify(ctx, []models.JobApplication{*app})
	}
	return app, nil
}

// BulkUpdateStatus applies one status to every listed application in a
// single transaction. Any failure leaves every application unchanged.
func (s *jobApplicationService) BulkUpdateStatus(ctx context.Context, req *dto.BulkStatusRequest) (*dto.BulkStatusResponse, error) {
	ids := make([]uuid.UUID, 0, len(req.ApplicationIDs))
	seen := make(map[uuid.UUID]struct{}, len(req.ApplicationIDs))
	for _, raw := range req.ApplicationIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid application id %q", ErrValidation, raw)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	var changed []models.JobApplication
	resp := &dto.BulkStatusResponse{}
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, repos storage.Repositories) error {
		changed = changed[:0]
		resp.Updated, resp.Unchanged = 0, 0
		for _, id := range ids {
			app, ok, err := s.changeStatus(ctx, repos, id, req.Status)
			if err != nil {
				return fmt.Errorf("application %s: %w", id, err)
			}
			if ok {
				changed = append(changed, *app)
				resp.Updated++
			} else {
				resp.Unchanged++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp.Notified = s.notify(ctx, changed)
	slog.InfoContext(ctx, "bulk status update applied",
		"status", req.Status, "updated", resp.Updated, "unchanged", resp.Unchanged)
	return resp, nil
}

// changeStatus moves one application to status. It reports false when the
// application already had it.
func (s *jobApplicationService) changeStatus(ctx context.Context, repos storage.Repositories, id uuid.UUID,
	status models.ApplicationStatus) (*models.JobApplication, bool, error) {
	if !status.Valid() {
		return nil, false, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	app, err := repos.Applications.GetByID(ctx, id)
	if err != nil {
		return nil, false, MapRepoError(err, "fetching application")
	}
	if app.Status == status {
		return app, false, nil
	}
	if s.opts.StrictTransitions && !app.Status.CanTransitionTo(status) {
		return nil, false, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, app.Status, status)
	}

	if err := repos.Applications.UpdateStatus(ctx, id, app.Status, status); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, false, fmt.Errorf("%w: application status changed concurrently", ErrConflict)
		}
		return nil, false, MapRepoError(err, "updating application status")
	}

	slog.InfoContext(ctx, "application status changed", "application_id", id, "from", app.Status, "to", status)
	app.Status = status
	app.UpdatedAt = s.now().UTC()
	return app, true, nil
}

// notify queues emails for the applications whose new status warrants one
// and returns how many were queued.
func (s *jobApplicationService) notify(ctx context.Context, apps []models.JobApplication) int {
	var changes []notify.StatusChange
	for _, app := range apps {
		if !app.Status.NotifiesApplicant() || app.ApplicantEmail == "" {
			continue
		}
		changes = append(changes, notify.StatusChange{
			ApplicantName:  app.ApplicantName,
			ApplicantEmail: app.ApplicantEmail,
			JobTitle:       app.JobTitle,
			Status:         app.Status,
		})
	}
	if len(changes) > 0 && s.notifier != nil {
		s.notifier.Dispatch(ctx, changes)
	}
	return len(changes)
}
