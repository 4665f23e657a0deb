package postgres

import (
	"context"
	"strings"

	"recruit-api/internal/models"
	"recruit-api/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// JobApplicationRepo implements the storage.ApplicationRepository interface using PostgreSQL.
type JobApplicationRepo struct {
	db Querier
}

// NewJobApplicationRepo creates a new JobApplicationRepo.
func NewJobApplicationRepo(db Querier) *JobApplicationRepo {
	return &JobApplicationRepo{db: db}
}

func (r *JobApplicationRepo) WithTx(tx pgx.Tx) storage.ApplicationRepository {
	return &JobApplicationRepo{db: tx}
}

// Compile-time check to ensure JobApplicationRepo implements ApplicationRepository
var _ storage.ApplicationRepository = (*JobApplicationRepo)(nil)

const applicationSelect = `
	SELECT a.id, a.job_id, a.applicant_id, a.status, a.score, a.is_active, a.created_at, a.updated_at,
		j.title, TRIM(u.first_name || ' ' || u.last_name), u.email`

const applicationFrom = `
	FROM job_applications a
	JOIN jobs j ON j.id = a.job_id
	JOIN users u ON u.id = a.applicant_id`

func applicationDest(a *models.JobApplication) []any {
	return []any{
		&a.ID, &a.JobID, &a.ApplicantID, &a.Status, &a.Score, &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
		&a.JobTitle, &a.ApplicantName, &a.ApplicantEmail,
	}
}

// Create inserts the application row. The UNIQUE (job_id, applicant_id)
// constraint turns a concurrent duplicate into ErrConflict.
func (r *JobApplicationRepo) Create(ctx context.Context, app *models.JobApplication) (*models.JobApplication, error) {
	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}
	if app.Status == "" {
		app.Status = models.StatusPending
	}

	var created models.JobApplication
	err := r.db.QueryRow(ctx, `
		INSERT INTO job_applications (id, job_id, applicant_id, status, score, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, NOW(), NOW())
		RETURNING id, job_id, applicant_id, status, score, is_active, created_at, updated_at`,
		app.ID, app.JobID, app.ApplicantID, app.Status, app.Score,
	).Scan(&created.ID, &created.JobID, &created.ApplicantID, &created.Status, &created.Score,
		&created.IsActive, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, mapPgError(err, "create job application")
	}

	created.Documents = []models.ApplicationDocument{}
	return &created, nil
}

func (r *JobApplicationRepo) AddDocument(ctx context.Context, doc *models.ApplicationDocument) (*models.ApplicationDocument, error) {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	var out models.ApplicationDocument
	err := r.db.QueryRow(ctx, `
		INSERT INTO application_documents (id, application_id, kind, url, file_name, storage_key, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, application_id, kind, url, file_name, storage_key, uploaded_at`,
		doc.ID, doc.ApplicationID, doc.Kind, doc.URL, doc.FileName, doc.StorageKey,
	).Scan(&out.ID, &out.ApplicationID, &out.Kind, &out.URL, &out.FileName, &out.StorageKey, &out.UploadedAt)
	if err != nil {
		return nil, mapPgError(err, "add application document")
	}
	return &out, nil
}

func (r *JobApplicationRepo) Exists(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM job_applications WHERE job_id = $1 AND applicant_id = $2)`,
		jobID, applicantID,
	).Scan(&exists)
	if err != nil {
		return false, mapPgError(err, "check job application")
	}
	return exists, nil
}

func (r *JobApplicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.JobApplication, error) {
	var app models.JobApplication
	err := r.db.QueryRow(ctx, applicationSelect+applicationFrom+` WHERE a.id = $1`, id).Scan(applicationDest(&app)...)
	if err != nil {
		return nil, mapPgError(err, "get job application")
	}

	apps := []models.JobApplication{app}
	if err := r.attachDocuments(ctx, apps); err != nil {
		return nil, err
	}
	return &apps[0], nil
}

func (r *JobApplicationRepo) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]models.JobApplication, error) {
	apps, _, err := r.list(ctx, []string{"a.applicant_id = $1"}, []any{applicantID}, 0, 0)
	return apps, err
}

// List returns a page of applications for the HR view and the total number of matches.
func (r *JobApplicationRepo) List(ctx context.Context, filter models.ApplicationFilter) ([]models.JobApplication, int, error) {
	var conditions []string
	var args []any

	if filter.JobID != nil {
		addCondition(&conditions, &args, "a.job_id = $%d", *filter.JobID)
	}
	if filter.Status != nil {
		addCondition(&conditions, &args, "a.status = $%d", *filter.Status)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		addCondition(&conditions, &args,
			"(u.email ILIKE $%[1]d OR u.first_name ILIKE $%[1]d OR u.last_name ILIKE $%[1]d)", likePattern(s))
	}
	return r.list(ctx, conditions, args, filter.Limit, filter.Offset)
}

func (r *JobApplicationRepo) list(ctx context.Context, conditions []string, args []any, limit, offset int) ([]models.JobApplication, int, error) {
	filterArgs := args
	query := buildListQuery(applicationSelect+`, COUNT(*) OVER()`+applicationFrom, conditions, &args,
		"a.created_at DESC", limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, mapPgError(err, "list job applications")
	}

	var total int
	apps, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.JobApplication, error) {
		var a models.JobApplication
		err := row.Scan(append(applicationDest(&a), &total)...)
		return a, err
	})
	if err != nil {
		return nil, 0, mapPgError(err, "scan job applications")
	}
	if len(apps) == 0 && offset > 0 {
		if total, err = countMatches(ctx, r.db, applicationFrom, conditions, filterArgs); err != nil {
			return nil, 0, mapPgError(err, "count job applications")
		}
	}
	if err := r.attachDocuments(ctx, apps); err != nil {
		return nil, 0, err
	}
	return emptyIfNil(apps), total, nil
}

// attachDocuments loads the documents of every application in one query.
func (r *JobApplicationRepo) attachDocuments(ctx context.Context, apps []models.JobApplication) error {
	if len(apps) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(apps))
	index := make(map[uuid.UUID]int, len(apps))
	for i := range apps {
		ids[i] = apps[i].ID
		index[apps[i].ID] = i
		apps[i].Documents = []models.ApplicationDocument{}
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, application_id, kind, url, file_name, storage_key, uploaded_at
		FROM application_documents
		WHERE application_id = ANY($1)
		ORDER BY kind`, ids)
	if err != nil {
		return mapPgError(err, "list application documents")
	}
	docs, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.ApplicationDocument])
	if err != nil {
		return mapPgError(err, "scan application documents")
	}
	for _, d := range docs {
		i := index[d.ApplicationID]
		apps[i].Documents = append(apps[i].Documents, d)
	}
	return nil
}

func (r *JobApplicationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.ApplicationStatus) error {
	return execOne(ctx, r.db, "update job application status",
		`UPDATE job_applications SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`,
		to, id, from)
}

// Delete hard deletes the application; its documents cascade.
func (r *JobApplicationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return execOne(ctx, r.db, "delete job application", `DELETE FROM job_applications WHERE id = $1`, id)
}

// CountByStatus returns the number of applications per status, optionally
// for a single job. Every status is present in the result.
func (r *JobApplicationRepo) CountByStatus(ctx context.Context, jobID *uuid.UUID) (map[models.ApplicationStatus]int, error) {
	query := `SELECT status, COUNT(*) FROM job_applications`
	var args []any
	if jobID != nil {
		query += ` WHERE job_id = $1`
		args = append(args, *jobID)
	}
	query += ` GROUP BY status`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err, "count job applications")
	}
	defer rows.Close()

	counts := make(map[models.ApplicationStatus]int, len(models.AllStatuses))
	for _, s := range models.AllStatuses {
		counts[s] = 0
	}
	for rows.Next() {
		var status models.ApplicationStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, mapPgError(err, "scan job application counts")
		}
		counts[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "count job applications")
	}
	return counts, nil
}
