package handlers

import (
	"net/http"

	"recruit-api/internal/services"
	"recruit-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type DashboardHandler struct {
	service   services.DashboardService
	validator *validator.Validate
}

func NewDashboardHandler(service services.DashboardService, validate *validator.Validate) *DashboardHandler {
	return &DashboardHandler{service: service, validator: validate}
}

// GetStats godoc
//
//	@Summary		HR dashboard statistics
//	@Description	Open job count and applications per status, optionally for one job.
//	@Tags			dashboard
//	@Produce		json
//	@Param			job_id	query		string	false	"Job filter"	Format(uuid)
//	@Success		200		{object}	models.DashboardStats
//	@Failure		400		{object}	map[string]string	"Invalid query"
//	@Router			/dashboard/stats [get]
//	@Security		BearerAuth
func (h *DashboardHandler) GetStats(c *gin.Context) {
	var req dto.StatsRequest
	if !bindQuery(c, h.validator, &req) {
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "retrieve statistics")
		return
	}
	respond(c, http.StatusOK, stats)
}
