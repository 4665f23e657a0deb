package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"recruit-api/internal/auth"
	"recruit-api/internal/models"
	"recruit-api/internal/storage"
	"recruit-api/internal/textutil"
	"recruit-api/internal/transport/dto"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type userService struct {
	repos      storage.Repositories
	tx         storage.Transactor
	tokens     *auth.TokenManager
	sessions   storage.SessionStore
	refreshTTL time.Duration
	now        func() time.Time
}

// NewUserService creates a new instance of UserService.
func NewUserService(repos storage.Repositories, tx storage.Transactor, tokens *auth.TokenManager,
	sessions storage.SessionStore, refreshTTL time.Duration) UserService {
	return &userService{
		repos:      repos,
		tx:         tx,
		tokens:     tokens,
		sessions:   sessions,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// HashPassword returns the bcrypt hash stored for an account.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (s *userService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	return s.createAccount(ctx, req.Email, req.Password, req.FirstName, req.LastName, models.RoleApplicant)
}

// createAccount writes the user and, for applicants, the empty profile in one transaction.
func (s *userService) createAccount(ctx context.Context, email, password, firstName, lastName string, role models.Role) (*models.User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:        textutil.NormalizeEmail(email),
		FirstName:    textutil.TitleCase(firstName),
		LastName:     textutil.TitleCase(lastName),
		Role:         role,
		PasswordHash: hash,
	}

	var created *models.User
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context, repos storage.Repositories) error {
		var err error
		created, err = repos.Users.Create(ctx, user)
		if err != nil {
			return err
		}
		if role == models.RoleApplicant {
			return repos.Profiles.CreateEmpty(ctx, created.ID)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, MapRepoError(err, "creating user")
	}
	slog.InfoContext(ctx, "user created", "user_id", created.ID, "role", created.Role)
	return created, nil
}

func (s *userService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := textutil.NormalizeEmail(req.Email)
	user, err := s.repos.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			slog.InfoContext(ctx, "login failed: unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, MapRepoError(err, "fetching user for login")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		slog.InfoContext(ctx, "login failed: invalid password", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	refresh, err := s.sessions.NewRefreshToken(ctx, user.ID, s.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return s.authResponse(user, refresh)
}

func (s *userService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	if strings.TrimSpace(req.RefreshToken) == "" {
		return nil, fmt.Errorf("%w: refresh token is required", ErrValidation)
	}

	userID, refresh, err := s.sessions.RotateRefreshToken(ctx, req.RefreshToken, s.refreshTTL)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidToken) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to rotate session: %w", err)
	}

	user, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// The account was removed while the session was alive.
			_ = s.sessions.DeleteRefreshToken(ctx, refresh)
			return nil, ErrInvalidCredentials
		}
		return nil, MapRepoError(err, "fetching user for refresh")
	}
	return s.authResponse(user, refresh)
}

func (s *userService) authResponse(user *models.User, refresh string) (*dto.AuthResponse, error) {
	access, _, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.tokens.TTL().Seconds()),
		User:         user,
	}, nil
}

func (s *userService) Logout(ctx context.Context, req *dto.LogoutRequest) error {
	if req.RefreshToken != "" {
		if err := s.sessions.DeleteRefreshToken(ctx, req.RefreshToken); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
	}
	if req.TokenID != "" {
		if ttl := req.TokenExpiresAt.Sub(s.now()); ttl > 0 {
			if err := s.sessions.RevokeAccessToken(ctx, req.TokenID, ttl); err != nil {
				return fmt.Errorf("failed to revoke access token: %w", err)
			}
		}
	}
	return nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repos.Users.GetByID(ctx, id)
	if err != nil {
		return nil, MapRepoError(err, "getting user")
	}
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, req *dto.ChangePasswordRequest) error {
	user, err := s.repos.Users.GetByID(ctx, req.UserID)
	if err != nil {
		return MapRepoError(err, "getting user")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.repos.Users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return MapRepoError(err, "updating password")
	}
	// Other devices must log in again with the new password.
	if err := s.sessions.RevokeUserRefreshTokens(ctx, user.ID); err != nil {
		slog.WarnContext(ctx, "failed to revoke sessions after password change", "user_id", user.ID, "error", err)
	}
	return nil
}

func (s *userService) List(ctx context.Context, req *dto.ListUsersRequest) (*dto.Page[models.User], error) {
	filter := models.UserFilter{
		Search: strings.TrimSpace(req.Search),
		Limit:  req.Limit,
		Offset: req.Offset,
	}
	if req.Role != "" {
		role := models.Role(req.Role)
		filter.Role = &role
	}

	users, total, err := s.repos.Users.List(ctx, filter)
	if err != nil {
		return nil, MapRepoError(err, "listing users")
	}
	return &dto.Page[models.User]{Items: users, Total: total, Limit: req.Limit, Offset: req.Offset}, nil
}

func (s *userService) CreateStaff(ctx context.Context, req *dto.CreateStaffRequest) (*models.User, error) {
	if !req.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, req.Role)
	}
	return s.createAccount(ctx, req.Email, req.Password, req.FirstName, req.LastName, req.Role)
}

func (s *userService) UpdateRole(ctx context.Context, req *dto.UpdateRoleRequest) (*models.User, error) {
	if req.ID == req.ActorID {
		return nil, fmt.Errorf("%w: cannot change your own role", ErrForbidden)
	}
	if !req.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, req.Role)
	}

	var updated *models.User
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, repos storage.Repositories) error {
		if err := repos.Users.UpdateRole(ctx, req.ID, req.Role); err != nil {
			return err
		}
		if req.Role == models.RoleApplicant {
			if err := repos.Profiles.CreateEmpty(ctx, req.ID); err != nil {
				return err
			}
		}
		var err error
		updated, err = repos.Users.GetByID(ctx, req.ID)
		return err
	})
	if err != nil {
		return nil, MapRepoError(err, "updating user role")
	}

	// Existing tokens carry the old role.
	if err := s.sessions.RevokeUserRefreshTokens(ctx, req.ID); err != nil {
		slog.WarnContext(ctx, "failed to revoke sessions after role change", "user_id", req.ID, "error", err)
	}
	slog.InfoContext(ctx, "user role changed", "user_id", req.ID, "role", req.Role, "actor_id", req.ActorID)
	return updated, nil
}

func (s *userService) Delete(ctx context.Context, req *dto.DeleteUserRequest) error {
	if req.ID == req.ActorID {
		return fmt.Errorf("%w: cannot delete your own account", ErrForbidden)
	}
	if err := s.repos.Users.Delete(ctx, req.ID); err != nil {
		if errors.Is(err, storage.ErrForeignKey) {
			return fmt.Errorf("%w: user still owns job postings", ErrConflict)
		}
		return MapRepoError(err, "deleting user")
	}
	if err := s.sessions.RevokeUserRefreshTokens(ctx, req.ID); err != nil {
		slog.WarnContext(ctx, "failed to revoke sessions of deleted user", "user_id", req.ID, "error", err)
	}
	return nil
}
