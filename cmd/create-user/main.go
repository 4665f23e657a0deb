// Command create-user creates an HR or ADMIN account directly in the database.
//
//	go run ./cmd/create-user -email admin@example.com -first Ada -role ADMIN
//
// The password is read from -password or, when omitted, CREATE_USER_PASSWORD.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"recruit-api/config"
	"recruit-api/internal/auth"
	"recruit-api/internal/database"
	"recruit-api/internal/logging"
	"recruit-api/internal/models"
	"recruit-api/internal/services"
	"recruit-api/internal/storage/postgres"
	"recruit-api/internal/transport/dto"
	"recruit-api/internal/validation"
)

func main() {
	var req dto.CreateStaffRequest
	role := flag.String("role", string(models.RoleHR), "account role: HR, ADMIN or APPLICANT")
	flag.StringVar(&req.Email, "email", "", "login email (required)")
	flag.StringVar(&req.Password, "password", "", "password, at least 8 characters")
	flag.StringVar(&req.FirstName, "first", "", "first name (required)")
	flag.StringVar(&req.LastName, "last", "", "last name")
	flag.Parse()

	req.Role = models.Role(*role)
	if req.Password == "" {
		req.Password = os.Getenv("CREATE_USER_PASSWORD")
	}

	if err := run(&req); err != nil {
		fmt.Fprintln(os.Stderr, "create-user:", err)
		os.Exit(1)
	}
}

func run(req *dto.CreateStaffRequest) error {
	if err := validation.New().Struct(req); err != nil {
		flag.Usage()
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Init(cfg.Log.Level)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.NewConnectionPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()
	if cfg.DB.AutoMigrate {
		if err := database.Migrate(ctx, pool); err != nil {
			return err
		}
	}

	store := postgres.NewStore(pool)
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	// No sessions are issued here, so the Redis store is not needed.
	users := services.NewUserService(store.Repositories(), store, tokens, nil, cfg.JWT.RefreshTTL)

	user, err := users.CreateStaff(ctx, req)
	if errors.Is(err, services.ErrConflict) {
		slog.Warn("account already exists", "email", req.Email)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("created %s account %s id=%s\n", user.Role, user.Email, user.ID)
	return nil
}
