package postgres

import (
	"context"

	"recruit-api/internal/models"
	"recruit-api/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SkillRepo implements the storage.SkillRepository interface using PostgreSQL.
type SkillRepo struct {
	db Querier
}

// NewSkillRepo creates a new SkillRepo.
func NewSkillRepo(db Querier) *SkillRepo {
	return &SkillRepo{db: db}
}

var _ storage.SkillRepository = (*SkillRepo)(nil)

func (r *SkillRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Skill, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.id, s.name FROM skills s
		JOIN user_skills us ON us.skill_id = s.id
		WHERE us.user_id = $1
		ORDER BY s.name`, userID)
	if err != nil {
		return nil, mapPgError(err, "list user skills")
	}
	skills, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.Skill])
	if err != nil {
		return nil, mapPgError(err, "scan user skills")
	}
	return emptyIfNil(skills), nil
}

// ReplaceForUser upserts every name into the global table and makes them
// the user's complete skill set. Callers run it inside a transaction and
// pass names already deduplicated case-insensitively.
func (r *SkillRepo) ReplaceForUser(ctx context.Context, userID uuid.UUID, names []string) ([]models.Skill, error) {
	if _, err := r.db.Exec(ctx, `DELETE FROM user_skills WHERE user_id = $1`, userID); err != nil {
		return nil, mapPgError(err, "clear user skills")
	}

	for _, name := range names {
		var id int
		// The no-op update makes RETURNING yield the existing row on conflict.
		err := r.db.QueryRow(ctx, `
			INSERT INTO skills (name) VALUES ($1)
			ON CONFLICT ((lower(name))) DO UPDATE SET name = skills.name
			RETURNING id`, name,
		).Scan(&id)
		if err != nil {
			return nil, mapPgError(err, "upsert skill")
		}
		if _, err := r.db.Exec(ctx,
			`INSERT INTO user_skills (user_id, skill_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, userID, id,
		); err != nil {
			return nil, mapPgError(err, "link user skill")
		}
	}

	return r.ListForUser(ctx, userID)
}

// Search returns existing skill names starting with prefix.
func (r *SkillRepo) Search(ctx context.Context, prefix string, limit int) ([]models.Skill, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, name FROM skills
		WHERE name ILIKE $1
		ORDER BY name
		LIMIT $2`, escapeLike(prefix)+"%", limit)
	if err != nil {
		return nil, mapPgError(err, "search skills")
	}
	skills, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.Skill])
	if err != nil {
		return nil, mapPgError(err, "scan skills")
	}
	return emptyIfNil(skills), nil
}
