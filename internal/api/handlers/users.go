package handlers

import (
	"net/http"

	"recruit-api/internal/services"
	"recruit-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// UserHandler holds dependencies for the account administration endpoints.
type UserHandler struct {
	service   services.UserService
	validator *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserService, validate *validator.Validate) *UserHandler {
	return &UserHandler{service: service, validator: validate}
}

// ListUsers godoc
//
//	@Summary		List users
//	@Description	Lists accounts, optionally filtered by role and a name or email search.
//	@Tags			users
//	@Produce		json
//	@Param			role	query		string	false	"Role filter"	Enums(APPLICANT, HR, ADMIN)
//	@Param			search	query		string	false	"Name or email contains"
//	@Param			limit	query		int		false	"Pagination limit"	default(20)
//	@Param			offset	query		int		false	"Pagination offset"	default(0)
//	@Success		200		{object}	dto.Page[models.User]
//	@Failure		400		{object}	map[string]string	"Invalid query"
//	@Failure		403		{object}	map[string]string	"Forbidden"
//	@Router			/users [get]
//	@Security		BearerAuth
func (h *UserHandler) ListUsers(c *gin.Context) {
	var req dto.ListUsersRequest
	if !bindQuery(c, h.validator, &req) {
		return
	}

	page, err := h.service.List(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "retrieve users")
		return
	}
	respond(c, http.StatusOK, page)
}

// CreateUser godoc
//
//	@Summary		Create an account
//	@Description	Lets an admin create an HR, ADMIN or APPLICANT account.
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			user	body		dto.CreateStaffRequest	true	"Account details"
//	@Success		201		{object}	models.User
//	@Failure		400		{object}	map[string]string	"Validation failed"
//	@Failure		409		{object}	map[string]string	"Email already registered"
//	@Router			/users [post]
//	@Security		BearerAuth
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateStaffRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	user, err := h.service.CreateStaff(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "create user")
		return
	}
	respond(c, http.StatusCreated, user)
}

// UpdateUserRole godoc
//
//	@Summary		Change a user's role
//	@Description	Admins cannot change their own role. The user's sessions are revoked.
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"User ID"	Format(uuid)
//	@Param			role	body		dto.UpdateRoleRequest	true	"New role"
//	@Success		200		{object}	models.User
//	@Failure		400		{object}	map[string]string	"Validation failed"
//	@Failure		403		{object}	map[string]string	"Cannot change own role"
//	@Failure		404		{object}	map[string]string	"User not found"
//	@Router			/users/{id}/role [patch]
//	@Security		BearerAuth
func (h *UserHandler) UpdateUserRole(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id", "user")
	if !ok {
		return
	}

	var req dto.UpdateRoleRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	req.ID = id
	req.ActorID = actorID

	user, err := h.service.UpdateRole(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "update role")
		return
	}
	respond(c, http.StatusOK, user)
}

// DeleteUser godoc
//
//	@Summary		Delete a user
//	@Description	Admins cannot delete themselves. Users who posted jobs cannot be deleted.
//	@Tags			users
//	@Param			id	path	string	true	"User ID"	Format(uuid)
//	@Success		204	"User deleted"
//	@Failure		403	{object}	map[string]string	"Cannot delete yourself"
//	@Failure		404	{object}	map[string]string	"User not found"
//	@Failure		409	{object}	map[string]string	"User still owns job postings"
//	@Router			/users/{id} [delete]
//	@Security		BearerAuth
func (h *UserHandler) DeleteUser(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id", "user")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), &dto.DeleteUserRequest{ID: id, ActorID: actorID}); err != nil {
		handleServiceError(c, err, "delete user")
		return
	}
	c.Status(http.StatusNoContent)
}
