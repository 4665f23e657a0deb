package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"recruit-api/internal/auth"
	"recruit-api/internal/logging"
	"recruit-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	authorizationHeader = "Authorization"
	userCtx             = "userID" // Key to store user ID in context
	roleCtx             = "userRole"
	claimsCtx           = "claims"
)

// TokenParser verifies access tokens. *auth.TokenManager implements it.
type TokenParser interface {
	Parse(tokenString string) (*auth.Claims, error)
}

// RevocationChecker reports whether an access token was revoked on logout.
type RevocationChecker interface {
	IsAccessTokenRevoked(ctx context.Context, jti string) (bool, error)
}

// JWTAuthMiddleware authenticates the request from the bearer token, falling
// back to the session cookie when no Authorization header is sent.
func JWTAuthMiddleware(tokens TokenParser, revoked RevocationChecker, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := logging.FromContext(c.Request.Context())

		tokenString, err := tokenFromRequest(c, cookieName)
		if err != nil {
			logger.Debug("auth middleware: no usable token", "error", err)
			abort(c, http.StatusUnauthorized, err.Error())
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			logger.Debug("auth middleware: token rejected", "error", err)
			if errors.Is(err, auth.ErrTokenExpired) {
				abort(c, http.StatusUnauthorized, "Token has expired")
			} else {
				abort(c, http.StatusUnauthorized, "Invalid token")
			}
			return
		}

		if revoked != nil {
			isRevoked, err := revoked.IsAccessTokenRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				logger.Error("auth middleware: revocation lookup failed", "error", err)
				abort(c, http.StatusServiceUnavailable, "Unable to verify session")
				return
			}
			if isRevoked {
				abort(c, http.StatusUnauthorized, "Token has been revoked")
				return
			}
		}

		userID, _ := claims.UserID() // validated by Parse
		c.Set(userCtx, userID)
		c.Set(roleCtx, claims.Role)
		c.Set(claimsCtx, claims)

		ctx := logging.WithLogger(c.Request.Context(), logger.With("user_id", userID.String()))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireRoles lets the request through only when the authenticated user
// has one of roles. It must run after JWTAuthMiddleware.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetRoleFromContext(c)
		if !ok {
			abort(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		abort(c, http.StatusForbidden, "Insufficient permissions")
	}
}

func tokenFromRequest(c *gin.Context, cookieName string) (string, error) {
	authHeader := c.GetHeader(authorizationHeader)
	if authHeader != "" {
		headerParts := strings.Split(authHeader, " ")
		if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" || headerParts[1] == "" {
			return "", errors.New("Invalid Authorization header format")
		}
		return headerParts[1], nil
	}
	if cookieName != "" {
		if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
			return cookie, nil
		}
	}
	return "", errors.New("Authorization header required")
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "error": message})
}

// GetUserIDFromContext returns the authenticated user's id.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, error) {
	userIDAny, exists := c.Get(userCtx)
	if !exists {
		return uuid.Nil, errors.New("user ID not found in context")
	}

	userID, ok := userIDAny.(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.New("user ID in context is of invalid type")
	}

	return userID, nil
}

// GetRoleFromContext returns the authenticated user's role.
func GetRoleFromContext(c *gin.Context) (models.Role, bool) {
	v, exists := c.Get(roleCtx)
	if !exists {
		return "", false
	}
	role, ok := v.(models.Role)
	return role, ok
}

// GetClaimsFromContext returns the verified access token claims.
func GetClaimsFromContext(c *gin.Context) (*auth.Claims, bool) {
	v, exists := c.Get(claimsCtx)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
