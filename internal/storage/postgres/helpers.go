package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"recruit-api/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// mapPgError translates driver errors into storage sentinels. Unknown errors
// are wrapped with the operation name and returned as-is.
func mapPgError(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %s: %w", op, pgErr.ConstraintName, storage.ErrConflict)
		case pgForeignKeyViolation:
			return fmt.Errorf("%s: %s: %w", op, pgErr.ConstraintName, storage.ErrForeignKey)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// buildListQuery appends the WHERE clause, ordering and pagination to baseQuery.
func buildListQuery(baseQuery string, conditions []string, args *[]any, orderBy string, limit, offset int) string {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(baseQuery)

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}

	queryBuilder.WriteString(" ORDER BY ")
	queryBuilder.WriteString(orderBy)

	if limit > 0 {
		*args = append(*args, limit)
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", len(*args)))
	}
	if offset > 0 {
		*args = append(*args, offset)
		queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", len(*args)))
	}

	return queryBuilder.String()
}

// countMatches counts the rows of from matching conditions. List queries
// call it when a page came back empty, since COUNT(*) OVER() then has no row.
func countMatches(ctx context.Context, db Querier, from string, conditions []string, args []any) (int, error) {
	query := "SELECT COUNT(*)" + from
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	var n int
	if err := db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// addCondition appends a positional argument and the condition that uses it.
// format must contain a single %d for the placeholder index.
func addCondition(conditions *[]string, args *[]any, format string, value any) {
	*args = append(*args, value)
	*conditions = append(*conditions, fmt.Sprintf(format, len(*args)))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// likePattern escapes LIKE metacharacters and wraps s in wildcards.
func likePattern(s string) string {
	return "%" + escapeLike(s) + "%"
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// execOne runs a statement expected to touch at least one row.
func execOne(ctx context.Context, db Querier, op, query string, args ...any) error {
	cmdTag, err := db.Exec(ctx, query, args...)
	if err != nil {
		return mapPgError(err, op)
	}
	if cmdTag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
