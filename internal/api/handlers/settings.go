package handlers

import (
	"net/http"
	"strconv"

	"recruit-api/internal/models"
	"recruit-api/internal/services"
	"recruit-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// SettingsHandler manages the reference tables used by job postings.
type SettingsHandler struct {
	service   services.SettingsService
	validator *validator.Validate
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(service services.SettingsService, validate *validator.Validate) *SettingsHandler {
	return &SettingsHandler{service: service, validator: validate}
}

// ListLookups godoc
//
//	@Summary		List reference values
//	@Tags			settings
//	@Produce		json
//	@Param			kind	path		string	true	"Table"	Enums(departments, employment-types, education-levels, experience-levels)
//	@Success		200		{array}		models.LookupItem
//	@Failure		404		{object}	map[string]string	"Unknown table"
//	@Router			/settings/{kind} [get]
func (h *SettingsHandler) ListLookups(c *gin.Context) {
	kind, ok := lookupKind(c)
	if !ok {
		return
	}

	items, err := h.service.List(c.Request.Context(), kind)
	if err != nil {
		handleServiceError(c, err, "retrieve "+string(kind))
		return
	}
	respond(c, http.StatusOK, items)
}

// CreateLookup godoc
//
//	@Summary		Add a reference value
//	@Description	Names are unique per table, ignoring case.
//	@Tags			settings
//	@Accept			json
//	@Produce		json
//	@Param			kind	path		string				true	"Table"
//	@Param			item	body		dto.LookupRequest	true	"Name and description"
//	@Success		201		{object}	models.LookupItem
//	@Failure		400		{object}	map[string]string	"Validation failed"
//	@Failure		409		{object}	map[string]string	"Name already exists"
//	@Router			/settings/{kind} [post]
//	@Security		BearerAuth
func (h *SettingsHandler) CreateLookup(c *gin.Context) {
	kind, ok := lookupKind(c)
	if !ok {
		return
	}

	var req dto.LookupRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	req.Kind = kind

	item, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "create "+string(kind))
		return
	}
	respond(c, http.StatusCreated, item)
}

// UpdateLookup godoc
//
//	@Summary		Rename a reference value
//	@Tags			settings
//	@Accept			json
//	@Produce		json
//	@Param			kind	path		string				true	"Table"
//	@Param			id		path		int					true	"Row ID"
//	@Param			item	body		dto.LookupRequest	true	"Name and description"
//	@Success		200		{object}	models.LookupItem
//	@Failure		404		{object}	map[string]string	"Not found"
//	@Failure		409		{object}	map[string]string	"Name already exists"
//	@Router			/settings/{kind}/{id} [put]
//	@Security		BearerAuth
func (h *SettingsHandler) UpdateLookup(c *gin.Context) {
	kind, ok := lookupKind(c)
	if !ok {
		return
	}
	id, ok := lookupID(c)
	if !ok {
		return
	}

	var req dto.LookupRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	req.Kind = kind
	req.ID = id

	item, err := h.service.Update(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "update "+string(kind))
		return
	}
	respond(c, http.StatusOK, item)
}

// DeleteLookup godoc
//
//	@Summary		Delete a reference value
//	@Description	Values used by a job cannot be deleted.
//	@Tags			settings
//	@Param			kind	path	string	true	"Table"
//	@Param			id		path	int		true	"Row ID"
//	@Success		204		"Deleted"
//	@Failure		404		{object}	map[string]string	"Not found"
//	@Failure		409		{object}	map[string]string	"Value is in use"
//	@Router			/settings/{kind}/{id} [delete]
//	@Security		BearerAuth
func (h *SettingsHandler) DeleteLookup(c *gin.Context) {
	kind, ok := lookupKind(c)
	if !ok {
		return
	}
	id, ok := lookupID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), kind, id); err != nil {
		handleServiceError(c, err, "delete "+string(kind))
		return
	}
	c.Status(http.StatusNoContent)
}

func lookupKind(c *gin.Context) (models.LookupKind, bool) {
	kind, ok := models.ParseLookupKind(c.Param("kind"))
	if !ok {
		respondError(c, http.StatusNotFound, "Unknown settings table '"+c.Param("kind")+"'", nil)
		return "", false
	}
	return kind, true
}

func lookupID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		respondError(c, http.StatusBadRequest, "Invalid ID format", nil)
		return 0, false
	}
	return id, true
}
