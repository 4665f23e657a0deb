package postgres_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"recruit-api/internal/database"
	"recruit-api/internal/models"
	"recruit-api/internal/storage"
	"recruit-api/internal/storage/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// getTestStore connects to TEST_DATABASE_URL, applies migrations and
// returns a store. The test is skipped when the variable is unset.
func getTestStore(t *testing.T) (context.Context, *postgres.Store, *pgxpool.Pool) {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping postgres integration test")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.Migrate(ctx, pool))
	cleanupTables(ctx, t, pool, "application_documents", "job_applications", "jobs",
		"user_skills", "skills", "educations", "experiences", "certifications", "applicant_profiles", "users")

	return ctx, postgres.NewStore(pool), pool
}

// cleanupTables truncates the given tables for test isolation.
func cleanupTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool, tables ...string) {
	t.Helper()
	if len(tables) == 0 {
		return
	}
	_, err := pool.Exec(ctx, "TRUNCATE "+strings.Join(tables, ", ")+" CASCADE")
	require.NoError(t, err, "Failed to truncate %v", tables)
}

func createTestUser(t *testing.T, ctx context.Context, repos storage.Repositories, email string, role models.Role) *models.User {
	t.Helper()
	user, err := repos.Users.Create(ctx, &models.User{
		Email:        email,
		FirstName:    "Test",
		LastName:     "User",
		Role:         role,
		PasswordHash: "not-a-real-hash",
	})
	require.NoError(t, err, "Failed to create test user %s", email)
	return user
}

// firstLookupID returns the id of the first seeded row of kind.
func firstLookupID(t *testing.T, ctx context.Context, repos storage.Repositories, kind models.LookupKind) int {
	t.Helper()
	items, err := repos.Lookups.List(ctx, kind)
	require.NoError(t, err)
	require.NotEmpty(t, items, "expected seeded %s", kind)
	return items[0].ID
}

func createTestJob(t *testing.T, ctx context.Context, repos storage.Repositories, postedBy *models.User, title string, closing time.Time) *models.Job {
	t.Helper()
	job, err := repos.Jobs.Create(ctx, &models.Job{
		Title:             title,
		DepartmentID:      firstLookupID(t, ctx, repos, models.LookupDepartments),
		EmploymentTypeID:  firstLookupID(t, ctx, repos, models.LookupEmploymentTypes),
		EducationLevelID:  firstLookupID(t, ctx, repos, models.LookupEducationLevels),
		ExperienceLevelID: firstLookupID(t, ctx, repos, models.LookupExperienceLevels),
		ClosingDate:       closing,
		Description:       "Test job",
		Responsibilities:  []string{"Do things"},
		PostedBy:          postedBy.ID,
	})
	require.NoError(t, err, "Failed to create test job %s", title)
	return job
}
