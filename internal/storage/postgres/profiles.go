package postgres

import (
	"context"
	"time"

	"recruit-api/internal/models"
	"recruit-api/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProfileRepo implements the storage.ProfileRepository interface using PostgreSQL.
type ProfileRepo struct {
	db Querier
}

// NewProfileRepo creates a new ProfileRepo.
func NewProfileRepo(db Querier) *ProfileRepo {
	return &ProfileRepo{db: db}
}

var _ storage.ProfileRepository = (*ProfileRepo)(nil)

// docScan collects the four nullable document columns of a section row.
type docScan struct {
	url, name, key *string
	uploaded       *time.Time
}

func (d *docScan) targets() []any {
	return []any{&d.url, &d.name, &d.key, &d.uploaded}
}

func (d *docScan) document() *models.Document {
	if d.url == nil || d.key == nil {
		return nil
	}
	doc := &models.Document{URL: *d.url, StorageKey: *d.key}
	if d.name != nil {
		doc.FileName = *d.name
	}
	if d.uploaded != nil {
		doc.UploadedAt = *d.uploaded
	}
	return doc
}

// docArgs expands an optional document into its four column values.
func docArgs(doc *models.Document) []any {
	if doc == nil {
		return []any{nil, nil, nil, nil}
	}
	return []any{doc.URL, doc.FileName, doc.StorageKey, doc.UploadedAt}
}

func (r *ProfileRepo) CreateEmpty(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO applicant_profiles (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID)
	return mapPgError(err, "create profile")
}

func (r *ProfileRepo) Get(ctx context.Context, userID uuid.UUID) (*models.ApplicantProfile, error) {
	var p models.ApplicantProfile
	err := r.db.QueryRow(ctx, `
		SELECT user_id, middle_name, phone, date_of_birth, gender, updated_at
		FROM applicant_profiles WHERE user_id = $1`, userID,
	).Scan(&p.UserID, &p.MiddleName, &p.Phone, &p.DateOfBirth, &p.Gender, &p.UpdatedAt)
	if err != nil {
		return nil, mapPgError(err, "get profile")
	}
	return &p, nil
}

// Update writes every profile column, creating the row when it is missing.
func (r *ProfileRepo) Update(ctx context.Context, p *models.ApplicantProfile) (*models.ApplicantProfile, error) {
	var out models.ApplicantProfile
	err := r.db.QueryRow(ctx, `
		INSERT INTO applicant_profiles (user_id, middle_name, phone, date_of_birth, gender, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			middle_name = EXCLUDED.middle_name,
			phone = EXCLUDED.phone,
			date_of_birth = EXCLUDED.date_of_birth,
			gender = EXCLUDED.gender,
			updated_at = NOW()
		RETURNING user_id, middle_name, phone, date_of_birth, gender, updated_at`,
		p.UserID, p.MiddleName, p.Phone, p.DateOfBirth, p.Gender,
	).Scan(&out.UserID, &out.MiddleName, &out.Phone, &out.DateOfBirth, &out.Gender, &out.UpdatedAt)
	if err != nil {
		return nil, mapPgError(err, "update profile")
	}
	return &out, nil
}

// --- Education ---

const educationColumns = `id, user_id, institution, degree, field_of_study, start_date, end_date,
	document_url, document_name, document_key, document_uploaded, created_at, updated_at`

func scanEducation(row pgx.Row) (models.Education, error) {
	var e models.Education
	var d docScan
	dest := append([]any{&e.ID, &e.UserID, &e.Institution, &e.Degree, &e.FieldOfStudy, &e.StartDate, &e.EndDate},
		d.targets()...)
	dest = append(dest, &e.CreatedAt, &e.UpdatedAt)
	if err := row.Scan(dest...); err != nil {
		return e, err
	}
	e.Document = d.document()
	return e, nil
}

func (r *ProfileRepo) ListEducations(ctx context.Context, userID uuid.UUID) ([]models.Education, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+educationColumns+` FROM educations WHERE user_id = $1 ORDER BY start_date DESC`, userID)
	if err != nil {
		return nil, mapPgError(err, "list educations")
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Education, error) {
		return scanEducation(row)
	})
	if err != nil {
		return nil, mapPgError(err, "scan educations")
	}
	return emptyIfNil(items), nil
}

func (r *ProfileRepo) GetEducation(ctx context.Context, userID, id uuid.UUID) (*models.Education, error) {
	e, err := scanEducation(r.db.QueryRow(ctx,
		`SELECT `+educationColumns+` FROM educations WHERE id = $1 AND user_id = $2`, id, userID))
	if err != nil {
		return nil, mapPgError(err, "get education")
	}
	return &e, nil
}

func (r *ProfileRepo) CreateEducation(ctx context.Context, e *models.Education) (*models.Education, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	args := append([]any{e.ID, e.UserID, e.Institution, e.Degree, e.FieldOfStudy, e.StartDate, e.EndDate},
		docArgs(e.Document)...)
	created, err := scanEducation(r.db.QueryRow(ctx, `
		INSERT INTO educations (id, user_id, institution, degree, field_of_study, start_date, end_date,
			document_url, document_name, document_key, document_uploaded)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+educationColumns, args...))
	if err != nil {
		return nil, mapPgError(err, "create education")
	}
	return &created, nil
}

func (r *ProfileRepo) UpdateEducation(ctx context.Context, e *models.Education) (*models.Education, error) {
	args := append([]any{e.ID, e.UserID, e.Institution, e.Degree, e.FieldOfStudy, e.StartDate, e.EndDate},
		docArgs(e.Document)...)
	updated, err := scanEducation(r.db.QueryRow(ctx, `
		UPDATE educations SET institution = $3, degree = $4, field_of_study = $5, start_date = $6, end_date = $7,
			document_url = $8, document_name = $9, document_key = $10, document_uploaded = $11, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING `+educationColumns, args...))
	if err != nil {
		return nil, mapPgError(err, "update education")
	}
	return &updated, nil
}

func (r *ProfileRepo) DeleteEducation(ctx context.Context, userID, id uuid.UUID) error {
	return execOne(ctx, r.db, "delete education",
		`DELETE FROM educations WHERE id = $1 AND user_id = $2`, id, userID)
}

// --- Experience ---

const experienceColumns = `id, user_id, company, position, description, start_date, end_date, is_current,
	document_url, document_name, document_key, document_uploaded, created_at, updated_at`

func scanExperience(row pgx.Row) (models.Experience, error) {
	var e models.Experience
	var d docScan
	dest := append([]any{&e.ID, &e.UserID, &e.Company, &e.Position, &e.Description, &e.StartDate, &e.EndDate, &e.IsCurrent},
		d.targets()...)
	dest = append(dest, &e.CreatedAt, &e.UpdatedAt)
	if err := row.Scan(dest...); err != nil {
		return e, err
	}
	e.Document = d.document()
	return e, nil
}

func (r *ProfileRepo) ListExperiences(ctx context.Context, userID uuid.UUID) ([]models.Experience, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+experienceColumns+` FROM experiences WHERE user_id = $1 ORDER BY is_current DESC, start_date DESC`, userID)
	if err != nil {
		return nil, mapPgError(err, "list experiences")
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Experience, error) {
		return scanExperience(row)
	})
	if err != nil {
		return nil, mapPgError(err, "scan experiences")
	}
	return emptyIfNil(items), nil
}

func (r *ProfileRepo) GetExperience(ctx context.Context, userID, id uuid.UUID) (*models.Experience, error) {
	e, err := scanExperience(r.db.QueryRow(ctx,
		`SELECT `+experienceColumns+` FROM experiences WHERE id = $1 AND user_id = $2`, id, userID))
	if err != nil {
		return nil, mapPgError(err, "get experience")
	}
	return &e, nil
}

func (r *ProfileRepo) CreateExperience(ctx context.Context, e *models.Experience) (*models.Experience, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	args := append([]any{e.ID, e.UserID, e.Company, e.Position, e.Description, e.StartDate, e.EndDate, e.IsCurrent},
		docArgs(e.Document)...)
	created, err := scanExperience(r.db.QueryRow(ctx, `
		INSERT INTO experiences (id, user_id, company, position, description, start_date, end_date, is_current,
			document_url, document_name, document_key, document_uploaded)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+experienceColumns, args...))
	if err != nil {
		return nil, mapPgError(err, "create experience")
	}
	return &created, nil
}

func (r *ProfileRepo) UpdateExperience(ctx context.Context, e *models.Experience) (*models.Experience, error) {
	args := append([]any{e.ID, e.UserID, e.Company, e.Position, e.Description, e.StartDate, e.EndDate, e.IsCurrent},
		docArgs(e.Document)...)
	updated, err := scanExperience(r.db.QueryRow(ctx, `
		UPDATE experiences SET company = $3, position = $4, description = $5, start_date = $6, end_date = $7,
			is_current = $8, document_url = $9, document_name = $10, document_key = $11, document_uploaded = $12,
			updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING `+experienceColumns, args...))
	if err != nil {
		return nil, mapPgError(err, "update experience")
	}
	return &updated, nil
}

func (r *ProfileRepo) DeleteExperience(ctx context.Context, userID, id uuid.UUID) error {
	return execOne(ctx, r.db, "delete experience",
		`DELETE FROM experiences WHERE id = $1 AND user_id = $2`, id, userID)
}

// --- Certification ---

const certificationColumns = `id, user_id, name, issuing_organization, issue_date, expiry_date, credential_id,
	document_url, document_name, document_key, document_uploaded, created_at, updated_at`

func scanCertification(row pgx.Row) (models.Certification, error) {
	var c models.Certification
	var d docScan
	dest := append([]any{&c.ID, &c.UserID, &c.Name, &c.IssuingOrganization, &c.IssueDate, &c.ExpiryDate, &c.CredentialID},
		d.targets()...)
	dest = append(dest, &c.CreatedAt, &c.UpdatedAt)
	if err := row.Scan(dest...); err != nil {
		return c, err
	}
	c.Document = d.document()
	return c, nil
}

func (r *ProfileRepo) ListCertifications(ctx context.Context, userID uuid.UUID) ([]models.Certification, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+certificationColumns+` FROM certifications WHERE user_id = $1 ORDER BY issue_date DESC`, userID)
	if err != nil {
		return nil, mapPgError(err, "list certifications")
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Certification, error) {
		return scanCertification(row)
	})
	if err != nil {
		return nil, mapPgError(err, "scan certifications")
	}
	return emptyIfNil(items), nil
}

func (r *ProfileRepo) GetCertification(ctx context.Context, userID, id uuid.UUID) (*models.Certification, error) {
	c, err := scanCertification(r.db.QueryRow(ctx,
		`SELECT `+certificationColumns+` FROM certifications WHERE id = $1 AND user_id = $2`, id, userID))
	if err != nil {
		return nil, mapPgError(err, "get certification")
	}
	return &c, nil
}

func (r *ProfileRepo) CreateCertification(ctx context.Context, c *models.Certification) (*models.Certification, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	args := append([]any{c.ID, c.UserID, c.Name, c.IssuingOrganization, c.IssueDate, c.ExpiryDate, c.CredentialID},
		docArgs(c.Document)...)
	created, err := scanCertification(r.db.QueryRow(ctx, `
		INSERT INTO certifications (id, user_id, name, issuing_organization, issue_date, expiry_date, credential_id,
			document_url, document_name, document_key, document_uploaded)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+certificationColumns, args...))
	if err != nil {
		return nil, mapPgError(err, "create certification")
	}
	return &created, nil
}

func (r *ProfileRepo) UpdateCertification(ctx context.Context, c *models.Certification) (*models.Certification, error) {
	args := append([]any{c.ID, c.UserID, c.Name, c.IssuingOrganization, c.IssueDate, c.ExpiryDate, c.CredentialID},
		docArgs(c.Document)...)
	updated, err := scanCertification(r.db.QueryRow(ctx, `
		UPDATE certifications SET name = $3, issuing_organization = $4, issue_date = $5, expiry_date = $6,
			credential_id = $7, document_url = $8, document_name = $9, document_key = $10, document_uploaded = $11,
			updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING `+certificationColumns, args...))
	if err != nil {
		return nil, mapPgError(err, "update certification")
	}
	return &updated, nil
}

func (r *ProfileRepo) DeleteCertification(ctx context.Context, userID, id uuid.UUID) error {
	return execOne(ctx, r.db, "delete certification",
		`DELETE FROM certifications WHERE id = $1 AND user_id = $2`, id, userID)
}
