package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"recruit-api/internal/api/middleware"
	"recruit-api/internal/storage/files"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// respond writes the success envelope.
func respond(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// respondError writes the failure envelope. details is omitted when nil.
func respondError(c *gin.Context, status int, message string, details any) {
	body := gin.H{"success": false, "error": message}
	if details != nil {
		body["details"] = details
	}
	c.JSON(status, body)
}

func FormatValidationErrors(err error) map[string]string {
	errorsMap := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errorsMap["error"] = "Invalid validation error type"
		return errorsMap
	}
	for _, fieldError := range validationErrors {
		fieldName := fieldPath(fieldError.Namespace())
		errorsMap[fieldName] = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", fieldName, fieldError.Tag())
		switch fieldError.Tag() {
		case "required":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' is required", fieldName)
		case "notblank":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must not be blank", fieldName)
		case "email":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be a valid email address", fieldName)
		case "min":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be at least %s", fieldName, fieldError.Param())
		case "max":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be at most %s", fieldName, fieldError.Param())
		case "uuid":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be a valid UUID", fieldName)
		case "datetime":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be a date in the format YYYY-MM-DD", fieldName)
		case "nefield":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must differ from '%s'", fieldName, fieldError.Param())
		case "app_status":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be a valid application status", fieldName)
		case "role":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be one of APPLICANT, HR, ADMIN", fieldName)
		case "gender":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be one of male, female, other, prefer_not_to_say", fieldName)
		case "phone":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be a valid phone number", fieldName)
		}
	}
	return errorsMap
}

// fieldPath drops the struct name and embedded structs from a validator
// namespace, so "CreateJobRequest.JobRequest.skills[0]" becomes "skills[0]".
func fieldPath(ns string) string {
	_, path, found := strings.Cut(ns, ".")
	if !found {
		return ns
	}
	for _, embedded := range []string{"JobRequest.", "Pagination."} {
		path = strings.TrimPrefix(path, embedded)
	}
	return path
}

// validate runs the struct validator and writes a 400 on failure.
func validate(c *gin.Context, v *validator.Validate, req any) bool {
	if err := v.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation failed", FormatValidationErrors(err))
		return false
	}
	return true
}

// bindJSON decodes the body into req and validates it.
func bindJSON(c *gin.Context, v *validator.Validate, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return false
	}
	return validate(c, v, req)
}

// bindQuery decodes the query string into req and validates it.
func bindQuery(c *gin.Context, v *validator.Validate, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid query parameters: "+err.Error(), nil)
		return false
	}
	return validate(c, v, req)
}

// bindForm decodes a urlencoded or multipart form into req and validates it.
func bindForm(c *gin.Context, v *validator.Validate, req any) bool {
	if err := c.ShouldBind(req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid form data: "+err.Error(), nil)
		return false
	}
	return validate(c, v, req)
}

// parseUUIDParam reads the path parameter name as a UUID.
func parseUUIDParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondError(c, http.StatusBadRequest, fmt.Sprintf("Invalid %s ID format", label), nil)
		return uuid.Nil, false
	}
	return id, true
}

// currentUserID returns the authenticated user or writes a 401.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", nil)
		return uuid.Nil, false
	}
	return userID, true
}

// formUpload opens the multipart file field. It returns a nil upload when the
// field is absent. The caller must call the returned close func.
func formUpload(c *gin.Context, field string) (*files.Upload, func(), error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, func() {}, err
	}
	return openUpload(header)
}

func openUpload(header *multipart.FileHeader) (*files.Upload, func(), error) {
	f, err := header.Open()
	if err != nil {
		return nil, func() {}, err
	}
	upload := &files.Upload{FileName: header.Filename, Size: header.Size, Content: f}
	return upload, func() { _ = f.Close() }, nil
}
