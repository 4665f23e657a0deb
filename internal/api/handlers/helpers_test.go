package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"recruit-api/internal/api/middleware"
	"recruit-api/internal/auth"
	"recruit-api/internal/models"
	"recruit-api/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var testTokens = auth.NewTokenManager("handler-test-secret", "recruit-api", time.Hour)

type envelope struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Error   string            `json:"error"`
	Details map[string]string `json:"details"`
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func requireAuth() gin.HandlerFunc {
	return middleware.JWTAuthMiddleware(testTokens, nil, "")
}

func newTestUser(role models.Role) *models.User {
	return &models.User{ID: uuid.New(), Email: "user@example.com", FirstName: "Test", Role: role}
}

func bearer(t *testing.T, user *models.User) string {
	t.Helper()
	token, _, err := testTokens.Issue(user)
	require.NoError(t, err)
	return "Bearer " + token
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// multipartBody builds a form with the given fields and one small PDF per
// entry in uploads (form field -> file name).
func multipartBody(t *testing.T, fields, uploads map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for field, name := range uploads {
		fw, err := mw.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("%PDF-1.4 test"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func errNotFound(what string) error {
	return fmt.Errorf("%w: %s not found", services.ErrNotFound, what)
}
