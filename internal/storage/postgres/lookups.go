package postgres

import (
	"context"
	"fmt"

	"recruit-api/internal/models"
	"recruit-api/internal/storage"

	"github.com/jackc/pgx/v5"
)

// LookupRepo implements the storage.LookupRepository interface for the four
// settings tables. They share one shape so the table name is the only variable.
type LookupRepo struct {
	db Querier
}

// NewLookupRepo creates a new LookupRepo.
func NewLookupRepo(db Querier) *LookupRepo {
	return &LookupRepo{db: db}
}

var _ storage.LookupRepository = (*LookupRepo)(nil)

func table(kind models.LookupKind) (string, error) {
	t := kind.Table()
	if t == "" {
		return "", fmt.Errorf("unknown lookup kind %q: %w", kind, storage.ErrNotFound)
	}
	return t, nil
}

func (r *LookupRepo) List(ctx context.Context, kind models.LookupKind) ([]models.LookupItem, error) {
	t, err := table(kind)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, `SELECT id, name, description, created_at FROM `+t+` ORDER BY name`)
	if err != nil {
		return nil, mapPgError(err, "list "+t)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.LookupItem])
	if err != nil {
		return nil, mapPgError(err, "scan "+t)
	}
	return emptyIfNil(items), nil
}

func (r *LookupRepo) GetByID(ctx context.Context, kind models.LookupKind, id int) (*models.LookupItem, error) {
	t, err := table(kind)
	if err != nil {
		return nil, err
	}
	var item models.LookupItem
	err = r.db.QueryRow(ctx, `SELECT id, name, description, created_at FROM `+t+` WHERE id = $1`, id).
		Scan(&item.ID, &item.Name, &item.Description, &item.CreatedAt)
	if err != nil {
		return nil, mapPgError(err, "get "+t)
	}
	return &item, nil
}

// NameTaken reports whether another row already uses name, ignoring case.
func (r *LookupRepo) NameTaken(ctx context.Context, kind models.LookupKind, name string, excludeID int) (bool, error) {
	t, err := table(kind)
	if err != nil {
		return false, err
	}
	var taken bool
	err = r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM `+t+` WHERE lower(name) = lower($1) AND id <> $2)`, name, excludeID,
	).Scan(&taken)
	if err != nil {
		return false, mapPgError(err, "check "+t+" name")
	}
	return taken, nil
}

func (r *LookupRepo) Create(ctx context.Context, kind models.LookupKind, item *models.LookupItem) (*models.LookupItem, error) {
	t, err := table(kind)
	if err != nil {
		return nil, err
	}
	var out models.LookupItem
	err = r.db.QueryRow(ctx,
		`INSERT INTO `+t+` (name, description) VALUES ($1, $2) RETURNING id, name, description, created_at`,
		item.Name, item.Description,
	).Scan(&out.ID, &out.Name, &out.Description, &out.CreatedAt)
	if err != nil {
		return nil, mapPgError(err, "create "+t)
	}
	return &out, nil
}

func (r *LookupRepo) Update(ctx context.Context, kind models.LookupKind, item *models.LookupItem) (*models.LookupItem, error) {
	t, err := table(kind)
	if err != nil {
		return nil, err
	}
	var out models.LookupItem
	err = r.db.QueryRow(ctx,
		`UPDATE `+t+` SET name = $1, description = $2 WHERE id = $3 RETURNING id, name, description, created_at`,
		item.Name, item.Description, item.ID,
	).Scan(&out.ID, &out.Name, &out.Description, &out.CreatedAt)
	if err != nil {
		return nil, mapPgError(err, "update "+t)
	}
	return &out, nil
}

// Delete removes a row. A row still referenced by a job yields ErrForeignKey.
func (r *LookupRepo) Delete(ctx context.Context, kind models.LookupKind, id int) error {
	t, err := table(kind)
	if err != nil {
		return err
	}
	return execOne(ctx, r.db, "delete "+t, `DELETE FROM `+t+` WHERE id = $1`, id)
}
