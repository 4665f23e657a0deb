package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recruit-api/internal/models"
	"recruit-api/internal/services"
	"recruit-api/internal/transport/dto"
	"recruit-api/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testCookies = SessionCookies{Name: "recruit_session", RefreshTTL: 7 * 24 * time.Hour}

func setupAuthRouter(svc *MockUserService) *gin.Engine {
	router := setupRouter()
	h := NewAuthHandler(svc, validation.New(), testCookies)
	router.POST("/auth/register", h.Register)
	router.POST("/auth/login", h.Login)
	router.POST("/auth/refresh", h.Refresh)
	router.POST("/auth/logout", requireAuth(), h.Logout)
	router.GET("/auth/me", requireAuth(), h.Me)
	return router
}

func cookieNamed(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name       string
		body       map[string]any
		setupMock  func(svc *MockUserService)
		wantStatus int
	}{
		{
			name: "created",
			body: map[string]any{"email": "jane@example.com", "password": "supersecret", "first_name": "Jane"},
			setupMock: func(svc *MockUserService) {
				svc.On("Register", mock.Anything, mock.AnythingOfType("*dto.RegisterRequest")).
					Return(&models.User{Email: "jane@example.com", Role: models.RoleApplicant}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "short password",
			body:       map[string]any{"email": "jane@example.com", "password": "short", "first_name": "Jane"},
			setupMock:  func(*MockUserService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate email",
			body: map[string]any{"email": "jane@example.com", "password": "supersecret", "first_name": "Jane"},
			setupMock: func(svc *MockUserService) {
				svc.On("Register", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("%w: email already registered", services.ErrConflict))
			},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockUserService)
			router := setupAuthRouter(svc)
			tt.setupMock(svc)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodPost, "/auth/register", jsonBody(t, tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestLogin_SetsSessionCookies(t *testing.T) {
	svc := new(MockUserService)
	router := setupAuthRouter(svc)
	svc.On("Login", mock.Anything, &dto.LoginRequest{Email: "jane@example.com", Password: "supersecret"}).
		Return(&dto.AuthResponse{AccessToken: "access-1", RefreshToken: "refresh-1", TokenType: "Bearer", ExpiresIn: 900}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/auth/login",
		bytes.NewBufferString(`{"email":"jane@example.com","password":"supersecret"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	access := cookieNamed(w, "recruit_session")
	require.NotNil(t, access)
	assert.Equal(t, "access-1", access.Value)
	assert.True(t, access.HttpOnly)
	refresh := cookieNamed(w, "recruit_session_refresh")
	require.NotNil(t, refresh)
	assert.Equal(t, "/api/v1/auth", refresh.Path)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := new(MockUserService)
	router := setupAuthRouter(svc)
	svc.On("Login", mock.Anything, mock.Anything).Return(nil, services.ErrInvalidCredentials)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/auth/login",
		bytes.NewBufferString(`{"email":"jane@example.com","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, cookieNamed(w, "recruit_session"))
}

func TestRefresh_FromCookie(t *testing.T) {
	svc := new(MockUserService)
	router := setupAuthRouter(svc)
	svc.On("Refresh", mock.Anything, &dto.RefreshRequest{RefreshToken: "refresh-1"}).
		Return(&dto.AuthResponse{AccessToken: "access-2", RefreshToken: "refresh-2", ExpiresIn: 900}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "recruit_session_refresh", Value: "refresh-1"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "refresh-2", cookieNamed(w, "recruit_session_refresh").Value)
}

func TestLogout_RevokesCurrentToken(t *testing.T) {
	svc := new(MockUserService)
	router := setupAuthRouter(svc)
	user := newTestUser(models.RoleApplicant)
	token, claims, err := testTokens.Issue(user)
	require.NoError(t, err)

	svc.On("Logout", mock.Anything, mock.MatchedBy(func(req *dto.LogoutRequest) bool {
		return req.RefreshToken == "refresh-1" && req.TokenID == claims.ID &&
			req.TokenExpiresAt.Equal(claims.ExpiresAt.Time)
	})).Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/auth/logout", bytes.NewBufferString(`{"refresh_token":"refresh-1"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, -1, cookieNamed(w, "recruit_session").MaxAge)
	svc.AssertExpectations(t)
}

func TestMe(t *testing.T) {
	svc := new(MockUserService)
	router := setupAuthRouter(svc)
	user := newTestUser(models.RoleHR)
	svc.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", bearer(t, user))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decodeEnvelope(t, w).Data), `"role":"HR"`)
}
