package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"recruit-api/internal/api/middleware"
	"recruit-api/internal/services"
	"recruit-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// SessionCookies describes the cookies set on login for browser clients.
type SessionCookies struct {
	Name       string // access token cookie; the refresh cookie gets a "_refresh" suffix
	Secure     bool
	Domain     string
	RefreshTTL time.Duration
}

func (s SessionCookies) refreshName() string {
	return s.Name + "_refresh"
}

// AuthHandler serves registration, login and the session endpoints.
type AuthHandler struct {
	service   services.UserService
	validator *validator.Validate
	cookies   SessionCookies
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.UserService, validate *validator.Validate, cookies SessionCookies) *AuthHandler {
	return &AuthHandler{
		service:   service,
		validator: validate,
		cookies:   cookies,
	}
}

// Register godoc
//
//	@Summary		Register an applicant account
//	@Description	Creates an applicant user together with an empty profile.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			user	body		dto.RegisterRequest	true	"Registration details"
//	@Success		201		{object}	models.User			"Account created"
//	@Failure		400		{object}	map[string]string	"Validation failed"
//	@Failure		409		{object}	map[string]string	"Email already registered"
//	@Failure		500		{object}	map[string]string	"Internal Server Error"
//	@Router			/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	user, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "register account")
		return
	}
	respond(c, http.StatusCreated, user)
}

// Login godoc
//
//	@Summary		Log in
//	@Description	Verifies the credentials, returns an access and a refresh token and sets the session cookies.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		dto.LoginRequest	true	"Email and password"
//	@Success		200			{object}	dto.AuthResponse	"Logged in"
//	@Failure		400			{object}	map[string]string	"Validation failed"
//	@Failure		401			{object}	map[string]string	"Invalid credentials"
//	@Failure		429			{object}	map[string]string	"Too many attempts"
//	@Router			/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "log in")
		return
	}
	h.setSessionCookies(c, resp)
	respond(c, http.StatusOK, resp)
}

// Refresh godoc
//
//	@Summary		Rotate the refresh token
//	@Description	Exchanges a refresh token, from the body or the refresh cookie, for a new token pair. Each refresh token works once.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			token	body		dto.RefreshRequest	false	"Refresh token"
//	@Success		200		{object}	dto.AuthResponse	"New token pair"
//	@Failure		400		{object}	map[string]string	"Missing refresh token"
//	@Failure		401		{object}	map[string]string	"Invalid or reused refresh token"
//	@Router			/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	if req.RefreshToken == "" {
		req.RefreshToken, _ = c.Cookie(h.cookies.refreshName())
	}

	resp, err := h.service.Refresh(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.clearSessionCookies(c)
		}
		handleServiceError(c, err, "refresh session")
		return
	}
	h.setSessionCookies(c, resp)
	respond(c, http.StatusOK, resp)
}

// Logout godoc
//
//	@Summary		Log out
//	@Description	Deletes the refresh token and revokes the current access token until it expires.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			token	body	dto.LogoutRequest	false	"Refresh token to delete"
//	@Success		204		"Logged out"
//	@Failure		401		{object}	map[string]string	"Unauthorized"
//	@Router			/auth/logout [post]
//	@Security		BearerAuth
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.GetClaimsFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	var req dto.LogoutRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	if req.RefreshToken == "" {
		req.RefreshToken, _ = c.Cookie(h.cookies.refreshName())
	}
	req.TokenID = claims.ID
	if claims.ExpiresAt != nil {
		req.TokenExpiresAt = claims.ExpiresAt.Time
	}

	if err := h.service.Logout(c.Request.Context(), &req); err != nil {
		handleServiceError(c, err, "log out")
		return
	}
	h.clearSessionCookies(c)
	c.Status(http.StatusNoContent)
}

// Me godoc
//
//	@Summary		Current user
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	models.User			"Authenticated user"
//	@Failure		401	{object}	map[string]string	"Unauthorized"
//	@Router			/auth/me [get]
//	@Security		BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err, "retrieve user")
		return
	}
	respond(c, http.StatusOK, user)
}

// ChangePassword godoc
//
//	@Summary		Change password
//	@Description	Replaces the password after checking the current one. Other sessions are signed out.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			passwords	body	dto.ChangePasswordRequest	true	"Current and new password"
//	@Success		204			"Password changed"
//	@Failure		400			{object}	map[string]string	"Validation failed"
//	@Failure		401			{object}	map[string]string	"Current password is wrong"
//	@Router			/auth/password [put]
//	@Security		BearerAuth
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	req.UserID = userID

	if err := h.service.ChangePassword(c.Request.Context(), &req); err != nil {
		handleServiceError(c, err, "change password")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) setSessionCookies(c *gin.Context, resp *dto.AuthResponse) {
	if h.cookies.Name == "" {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookies.Name, resp.AccessToken, int(resp.ExpiresIn), "/", h.cookies.Domain, h.cookies.Secure, true)
	c.SetCookie(h.cookies.refreshName(), resp.RefreshToken, int(h.cookies.RefreshTTL.Seconds()), "/api/v1/auth", h.cookies.Domain, h.cookies.Secure, true)
}

func (h *AuthHandler) clearSessionCookies(c *gin.Context) {
	if h.cookies.Name == "" {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookies.Name, "", -1, "/", h.cookies.Domain, h.cookies.Secure, true)
	c.SetCookie(h.cookies.refreshName(), "", -1, "/api/v1/auth", h.cookies.Domain, h.cookies.Secure, true)
}

// bindOptionalJSON decodes the body into req when one was sent.
func bindOptionalJSON(c *gin.Context, req any) bool {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return true
	}
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return false
	}
	return true
}
