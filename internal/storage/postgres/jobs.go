// internal/storage/postgres/jobs.go
package postgres

import (
	"context"
	"strings"
	"time"

	"recruit-api/internal/models"
	"recruit-api/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// JobRepo implements the storage.JobRepository interface using PostgreSQL.
type JobRepo struct {
	db Querier
}

// NewJobRepo creates a new JobRepo.
func NewJobRepo(db Querier) *JobRepo {
	return &JobRepo{db: db}
}

// WithTx creates a new JobRepo with the transaction.
func (r *JobRepo) WithTx(tx pgx.Tx) storage.JobRepository {
	return &JobRepo{db: tx}
}

// Compile-time check to ensure JobRepo implements JobRepository
var _ storage.JobRepository = (*JobRepo)(nil)

const jobSelect = `
	SELECT j.id, j.title, j.department_id, j.employment_type_id, j.education_level_id, j.experience_level_id,
		j.closing_date, j.description, j.responsibilities, j.qualifications, j.skills, j.terms_and_conditions,
		j.posted_by, j.is_active, j.created_at, j.updated_at,
		d.name, et.name, edl.name, exl.name,
		(SELECT COUNT(*) FROM job_applications a WHERE a.job_id = j.id)`

const jobFrom = `
	FROM jobs j
	JOIN departments d ON d.id = j.department_id
	JOIN employment_types et ON et.id = j.employment_type_id
	JOIN education_levels edl ON edl.id = j.education_level_id
	JOIN experience_levels exl ON exl.id = j.experience_level_id`

func jobDest(j *models.Job) []any {
	return []any{
		&j.ID, &j.Title, &j.DepartmentID, &j.EmploymentTypeID, &j.EducationLevelID, &j.ExperienceLevelID,
		&j.ClosingDate, &j.Description, &j.Responsibilities, &j.Qualifications, &j.Skills, &j.TermsAndConditions,
		&j.PostedBy, &j.IsActive, &j.CreatedAt, &j.UpdatedAt,
		&j.Department, &j.EmploymentType, &j.EducationLevel, &j.ExperienceLevel,
		&j.ApplicantCount,
	}
}

// Create saves a new job posting and returns it with the reference names joined.
func (r *JobRepo) Create(ctx context.Context, job *models.Job) (*models.Job, error) {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}

	query := `
		INSERT INTO jobs (id, title, department_id, employment_type_id, education_level_id, experience_level_id,
			closing_date, description, responsibilities, qualifications, skills, terms_and_conditions,
			posted_by, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, TRUE, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query,
		job.ID, job.Title, job.DepartmentID, job.EmploymentTypeID, job.EducationLevelID, job.ExperienceLevelID,
		models.DateOnly(job.ClosingDate), job.Description,
		emptyIfNil(job.Responsibilities), emptyIfNil(job.Qualifications), emptyIfNil(job.Skills),
		job.TermsAndConditions, job.PostedBy,
	)
	if err != nil {
		return nil, mapPgError(err, "create job")
	}

	return r.GetByID(ctx, job.ID)
}

// GetByID retrieves a specific job by its ID regardless of state.
func (r *JobRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	var job models.Job
	err := r.db.QueryRow(ctx, jobSelect+jobFrom+` WHERE j.id = $1`, id).Scan(jobDest(&job)...)
	if err != nil {
		return nil, mapPgError(err, "get job")
	}
	return &job, nil
}

// List returns a page of jobs matching filter and the total number of matches.
func (r *JobRepo) List(ctx context.Context, filter models.JobFilter) ([]models.Job, int, error) {
	var conditions []string
	var args []any

	if !filter.IncludeInactive || filter.OnlyOpen {
		conditions = append(conditions, "j.is_active = TRUE")
	}
	if filter.OnlyOpen {
		addCondition(&conditions, &args, "j.closing_date >= $%d", models.DateOnly(filter.Today))
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		addCondition(&conditions, &args, "j.title ILIKE $%d", likePattern(s))
	}
	if filter.DepartmentID != nil {
		addCondition(&conditions, &args, "j.department_id = $%d", *filter.DepartmentID)
	}
	if filter.EmploymentTypeID != nil {
		addCondition(&conditions, &args, "j.employment_type_id = $%d", *filter.EmploymentTypeID)
	}

	filterArgs := args
	query := buildListQuery(jobSelect+`, COUNT(*) OVER()`+jobFrom, conditions, &args,
		"j.closing_date ASC, j.created_at DESC", filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, mapPgError(err, "list jobs")
	}
	defer rows.Close()

	var total int
	jobs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Job, error) {
		var j models.Job
		err := row.Scan(append(jobDest(&j), &total)...)
		return j, err
	})
	if err != nil {
		return nil, 0, mapPgError(err, "scan jobs")
	}
	if len(jobs) == 0 && filter.Offset > 0 {
		if total, err = countMatches(ctx, r.db, jobFrom, conditions, filterArgs); err != nil {
			return nil, 0, mapPgError(err, "count jobs")
		}
	}
	return emptyIfNil(jobs), total, nil
}

// Update replaces every editable column of the job.
func (r *JobRepo) Update(ctx context.Context, job *models.Job) (*models.Job, error) {
	query := `
		UPDATE jobs SET title = $2, department_id = $3, employment_type_id = $4, education_level_id = $5,
			experience_level_id = $6, closing_date = $7, description = $8, responsibilities = $9,
			qualifications = $10, skills = $11, terms_and_conditions = $12, is_active = $13, updated_at = NOW()
		WHERE id = $1
	`
	err := execOne(ctx, r.db, "update job", query,
		job.ID, job.Title, job.DepartmentID, job.EmploymentTypeID, job.EducationLevelID, job.ExperienceLevelID,
		models.DateOnly(job.ClosingDate), job.Description,
		emptyIfNil(job.Responsibilities), emptyIfNil(job.Qualifications), emptyIfNil(job.Skills),
		job.TermsAndConditions, job.IsActive,
	)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, job.ID)
}

// Deactivate soft deletes the job.
func (r *JobRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return execOne(ctx, r.db, "deactivate job",
		`UPDATE jobs SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND is_active = TRUE`, id)
}

// DeactivateClosedBefore soft deletes every active job whose closing date is before day.
func (r *JobRepo) DeactivateClosedBefore(ctx context.Context, day time.Time) (int64, error) {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE jobs SET is_active = FALSE, updated_at = NOW() WHERE is_active = TRUE AND closing_date < $1`,
		models.DateOnly(day))
	if err != nil {
		return 0, mapPgError(err, "deactivate expired jobs")
	}
	return cmdTag.RowsAffected(), nil
}

func (r *JobRepo) CountOpen(ctx context.Context, today time.Time) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM jobs WHERE is_active = TRUE AND closing_date >= $1`, models.DateOnly(today),
	).Scan(&n)
	if err != nil {
		return 0, mapPgError(err, "count open jobs")
	}
	return n, nil
}
