package postgres

import (
	"context"
	"strings"

	"recruit-api/internal/models"
	"recruit-api/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserRepo implements the storage.UserRepository interface using PostgreSQL.
type UserRepo struct {
	db Querier
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db Querier) *UserRepo {
	return &UserRepo{db: db}
}

// WithTx creates a new UserRepo bound to the transaction.
func (r *UserRepo) WithTx(tx pgx.Tx) storage.UserRepository {
	return &UserRepo{db: tx}
}

var _ storage.UserRepository = (*UserRepo)(nil)

const userColumns = `id, email, first_name, last_name, role, password_hash, created_at, updated_at`

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Role, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// Create inserts a user. Email uniqueness is case-insensitive.
func (r *UserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	query := `
		INSERT INTO users (id, email, first_name, last_name, role, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING ` + userColumns

	created, err := scanUser(r.db.QueryRow(ctx, query,
		user.ID, strings.ToLower(user.Email), user.FirstName, user.LastName, user.Role, user.PasswordHash))
	if err != nil {
		return nil, mapPgError(err, "create user")
	}

	return &created, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, mapPgError(err, "get user by id")
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email))
	if err != nil {
		return nil, mapPgError(err, "get user by email")
	}
	return &u, nil
}

// List returns a page of users and the total number of matches.
func (r *UserRepo) List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error) {
	baseQuery := `SELECT ` + userColumns + `, COUNT(*) OVER() FROM users`
	var conditions []string
	var args []any

	if filter.Role != nil {
		addCondition(&conditions, &args, "role = $%d", *filter.Role)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		addCondition(&conditions, &args,
			"(email ILIKE $%[1]d OR first_name ILIKE $%[1]d OR last_name ILIKE $%[1]d)", likePattern(s))
	}

	query := buildListQuery(baseQuery, conditions, &args, "created_at DESC", filter.Limit, filter.Offset)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, mapPgError(err, "list users")
	}
	defer rows.Close()

	var total int
	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.User, error) {
		var u models.User
		err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Role, &u.PasswordHash,
			&u.CreatedAt, &u.UpdatedAt, &total)
		return u, err
	})
	if err != nil {
		return nil, 0, mapPgError(err, "scan users")
	}
	return emptyIfNil(users), total, nil
}

func (r *UserRepo) UpdateNames(ctx context.Context, id uuid.UUID, firstName, lastName string) error {
	return execOne(ctx, r.db, "update user names",
		`UPDATE users SET first_name = $1, last_name = $2, updated_at = NOW() WHERE id = $3`,
		firstName, lastName, id)
}

func (r *UserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) error {
	return execOne(ctx, r.db, "update user role",
		`UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2`, role, id)
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return execOne(ctx, r.db, "update user password",
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`, passwordHash, id)
}

func (r *UserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return execOne(ctx, r.db, "delete user", `DELETE FROM users WHERE id = $1`, id)
}
