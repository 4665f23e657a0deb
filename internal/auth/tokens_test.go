package auth

import (
	"testing"
	"time"

	"recruit-api/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *models.User {
	return &models.User{ID: uuid.New(), Email: "hr@example.com", Role: models.RoleHR}
}

func TestTokenManager_IssueAndParse(t *testing.T) {
	m := NewTokenManager("secret", "recruit-api", 15*time.Minute)
	user := testUser()

	signed, issued, err := m.Issue(user)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.ID)

	claims, err := m.Parse(signed)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
	assert.Equal(t, models.RoleHR, claims.Role)
	assert.Equal(t, "hr@example.com", claims.Email)
	assert.Equal(t, issued.ID, claims.ID)
	assert.InDelta(t, (15 * time.Minute).Seconds(), m.Remaining(claims).Seconds(), 2)
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager("secret", "recruit-api", time.Minute)
	signed, _, err := m.Issue(testUser())
	require.NoError(t, err)

	m.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = m.Parse(signed)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenManager_RejectsForeignTokens(t *testing.T) {
	m := NewTokenManager("secret", "recruit-api", time.Minute)
	other := NewTokenManager("other-secret", "recruit-api", time.Minute)

	signed, _, err := other.Issue(testUser())
	require.NoError(t, err)
	_, err = m.Parse(signed)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Role: models.RoleAdmin})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.Parse(unsigned)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = m.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
