package handlers

import (
	"net/http"

	"recruit-api/internal/services"
	"recruit-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// JobHandler holds dependencies for job operations.
type JobHandler struct {
	service   services.JobService
	validator *validator.Validate
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(service services.JobService, validate *validator.Validate) *JobHandler {
	return &JobHandler{
		service:   service,
		validator: validate,
	}
}

// ListJobs godoc
//
//	@Summary		List open jobs
//	@Description	Public listing of active jobs whose closing date has not passed.
//	@Tags			jobs
//	@Produce		json
//	@Param			search				query		string	false	"Title contains"
//	@Param			department_id		query		int		false	"Department filter"
//	@Param			employment_type_id	query		int		false	"Employment type filter"
//	@Param			limit				query		int		false	"Pagination limit"	default(20)
//	@Param			offset				query		int		false	"Pagination offset"	default(0)
//	@Success		200					{object}	dto.Page[models.Job]
//	@Failure		400					{object}	map[string]string	"Invalid query"
//	@Router			/jobs [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	var req dto.ListJobsRequest
	if !bindQuery(c, h.validator, &req) {
		return
	}
	req.IncludeInactive = false

	page, err := h.service.ListOpen(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "retrieve jobs")
		return
	}
	respond(c, http.StatusOK, page)
}

// GetJob godoc
//
//	@Summary		Get an open job
//	@Description	Public job detail. Inactive and closed jobs are reported as not found.
//	@Tags			jobs
//	@Produce		json
//	@Param			id	path		string	true	"Job ID"	Format(uuid)
//	@Success		200	{object}	models.Job
//	@Failure		400	{object}	map[string]string	"Invalid ID format"
//	@Failure		404	{object}	map[string]string	"Job Not Found"
//	@Router			/jobs/{id} [get]
func (h *JobHandler) GetJob(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "job")
	if !ok {
		return
	}

	job, err := h.service.GetOpen(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "retrieve job")
		return
	}
	respond(c, http.StatusOK, job)
}

// ListManagedJobs godoc
//
//	@Summary		List all jobs for HR
//	@Description	Includes closed jobs and, with include_inactive, soft deleted ones. Each job carries its applicant count.
//	@Tags			jobs
//	@Produce		json
//	@Param			search				query		string	false	"Title contains"
//	@Param			department_id		query		int		false	"Department filter"
//	@Param			employment_type_id	query		int		false	"Employment type filter"
//	@Param			include_inactive	query		bool	false	"Include soft deleted jobs"
//	@Param			limit				query		int		false	"Pagination limit"	default(20)
//	@Param			offset				query		int		false	"Pagination offset"	default(0)
//	@Success		200					{object}	dto.Page[models.Job]
//	@Failure		403					{object}	map[string]string	"Forbidden"
//	@Router			/jobs/manage [get]
//	@Security		BearerAuth
func (h *JobHandler) ListManagedJobs(c *gin.Context) {
	var req dto.ListJobsRequest
	if !bindQuery(c, h.validator, &req) {
		return
	}

	page, err := h.service.ListManaged(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "retrieve jobs")
		return
	}
	respond(c, http.StatusOK, page)
}

// GetManagedJob godoc
//
//	@Summary		Get any job for HR
//	@Tags			jobs
//	@Produce		json
//	@Param			id	path		string	true	"Job ID"	Format(uuid)
//	@Success		200	{object}	models.Job
//	@Failure		404	{object}	map[string]string	"Job Not Found"
//	@Router			/jobs/manage/{id} [get]
//	@Security		BearerAuth
func (h *JobHandler) GetManagedJob(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "job")
	if !ok {
		return
	}

	job, err := h.service.GetManaged(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "retrieve job")
		return
	}
	respond(c, http.StatusOK, job)
}

// CreateJob godoc
//
//	@Summary		Create a new job posting
//	@Description	The poster is taken from the auth context. The closing date must not be in the past.
//	@Tags			jobs
//	@Accept			json
//	@Produce		json
//	@Param			job	body		dto.JobRequest		true	"Job details"
//	@Success		201	{object}	models.Job			"Job created successfully"
//	@Failure		400	{object}	map[string]string	"Bad Request - Invalid input"
//	@Failure		401	{object}	map[string]string	"Unauthorized"
//	@Failure		403	{object}	map[string]string	"Forbidden"
//	@Router			/jobs [post]
//	@Security		BearerAuth
func (h *JobHandler) CreateJob(c *gin.Context) {
	posterID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	req.PostedBy = posterID

	job, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "create job")
		return
	}
	respond(c, http.StatusCreated, job)
}

// UpdateJob godoc
//
//	@Summary		Replace a job posting
//	@Description	Full update of every editable field. is_active may be sent to restore a soft deleted job.
//	@Tags			jobs
//	@Accept			json
//	@Produce		json
//	@Param			id	path		string				true	"Job ID"	Format(uuid)
//	@Param			job	body		dto.JobRequest		true	"Job details"
//	@Success		200	{object}	models.Job
//	@Failure		400	{object}	map[string]string	"Bad Request - Invalid input"
//	@Failure		404	{object}	map[string]string	"Job Not Found"
//	@Router			/jobs/{id} [put]
//	@Security		BearerAuth
func (h *JobHandler) UpdateJob(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "job")
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	req.ID = id

	job, err := h.service.Update(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "update job")
		return
	}
	respond(c, http.StatusOK, job)
}

// DeleteJob godoc
//
//	@Summary		Soft delete a job
//	@Description	Marks the job inactive. Its applications are kept.
//	@Tags			jobs
//	@Param			id	path	string	true	"Job ID"	Format(uuid)
//	@Success		204	"Job deleted"
//	@Failure		404	{object}	map[string]string	"Job Not Found"
//	@Router			/jobs/{id} [delete]
//	@Security		BearerAuth
func (h *JobHandler) DeleteJob(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "job")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err, "delete job")
		return
	}
	c.Status(http.StatusNoContent)
}
