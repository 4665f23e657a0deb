package postgres

import (
	"context"

	"recruit-api/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx, so every
// repository works the same inside and outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store hands out pool-bound repositories and runs transactions.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new Store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

var _ storage.Transactor = (*Store)(nil)

// Repositories returns repositories bound to the connection pool.
func (s *Store) Repositories() storage.Repositories {
	return repositoriesFor(s.pool)
}

// WithinTransaction runs fn inside a single database transaction.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos storage.Repositories) error) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(ctx, repositoriesFor(tx))
	})
}

func repositoriesFor(db Querier) storage.Repositories {
	return storage.Repositories{
		Users:        &UserRepo{db: db},
		Profiles:     &ProfileRepo{db: db},
		Skills:       &SkillRepo{db: db},
		Lookups:      &LookupRepo{db: db},
		Jobs:         &JobRepo{db: db},
		Applications: &JobApplicationRepo{db: db},
	}
}
