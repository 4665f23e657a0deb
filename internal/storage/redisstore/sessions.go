package redisstore

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"recruit-api/internal/storage"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const opTimeout = 3 * time.Second

// SessionStore implements storage.SessionStore on Redis. Refresh tokens are
// stored by hash only; every user keeps a set of live token hashes so all
// sessions can be dropped at once.
type SessionStore struct {
	client *redis.Client
	prefix string
}

// NewSessionStore builds a Redis-backed session store.
func NewSessionStore(client *redis.Client, prefix string) *SessionStore {
	if prefix == "" {
		prefix = "recruit"
	}
	return &SessionStore{client: client, prefix: prefix}
}

var _ storage.SessionStore = (*SessionStore)(nil)

// NewRefreshToken issues and stores a new refresh token for userID.
func (s *SessionStore) NewRefreshToken(ctx context.Context, userID uuid.UUID, ttl time.Duration) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	hash := tokenHash(token)
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.refreshKey(hash), userID.String(), ttl)
	pipe.SAdd(ctx, s.userTokensKey(userID), hash)
	pipe.Expire(ctx, s.userTokensKey(userID), ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("store refresh token: %w", err)
	}
	return token, nil
}

// RotateRefreshToken consumes token with GETDEL so concurrent rotations of
// the same token cannot both succeed.
func (s *SessionStore) RotateRefreshToken(ctx context.Context, token string, ttl time.Duration) (uuid.UUID, string, error) {
	rotateCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	hash := tokenHash(token)
	raw, err := s.client.GetDel(rotateCtx, s.refreshKey(hash)).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, "", storage.ErrInvalidToken
	}
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("consume refresh token: %w", err)
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, "", storage.ErrInvalidToken
	}
	s.client.SRem(rotateCtx, s.userTokensKey(userID), hash)

	next, err := s.NewRefreshToken(ctx, userID, ttl)
	if err != nil {
		return uuid.Nil, "", err
	}
	return userID, next, nil
}

// DeleteRefreshToken removes token. Unknown tokens are ignored.
func (s *SessionStore) DeleteRefreshToken(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	hash := tokenHash(token)
	raw, err := s.client.GetDel(ctx, s.refreshKey(hash)).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	if userID, err := uuid.Parse(raw); err == nil {
		s.client.SRem(ctx, s.userTokensKey(userID), hash)
	}
	return nil
}

// RevokeUserRefreshTokens drops every refresh token of the user.
func (s *SessionStore) RevokeUserRefreshTokens(ctx context.Context, userID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	hashes, err := s.client.SMembers(ctx, s.userTokensKey(userID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("list user refresh tokens: %w", err)
	}
	pipe := s.client.TxPipeline()
	for _, h := range hashes {
		pipe.Del(ctx, s.refreshKey(h))
	}
	pipe.Del(ctx, s.userTokensKey(userID))
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("revoke user refresh tokens: %w", err)
	}
	return nil
}

// RevokeAccessToken marks an access token id as revoked until it would expire anyway.
func (s *SessionStore) RevokeAccessToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 || jti == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	return s.client.Set(ctx, s.revokedKey(jti), "1", ttl).Err()
}

func (s *SessionStore) IsAccessTokenRevoked(ctx context.Context, jti string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	n, err := s.client.Exists(ctx, s.revokedKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func tokenHash(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (s *SessionStore) refreshKey(hash string) string {
	return fmt.Sprintf("%s:refresh:%s", s.prefix, hash)
}

func (s *SessionStore) userTokensKey(userID uuid.UUID) string {
	return fmt.Sprintf("%s:refresh_user:%s", s.prefix, userID)
}

func (s *SessionStore) revokedKey(jti string) string {
	return fmt.Sprintf("%s:revoked:%s", s.prefix, jti)
}
