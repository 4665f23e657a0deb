package handlers

import (
	"net/http"

	"recruit-api/internal/models"
	"recruit-api/internal/services"
	"recruit-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// JobApplicationHandler holds dependencies for job application operations.
type JobApplicationHandler struct {
	service   services.JobApplicationService
	validator *validator.Validate
}

// NewJobApplicationHandler creates a new JobApplicationHandler.
func NewJobApplicationHandler(service services.JobApplicationService, validate *validator.Validate) *JobApplicationHandler {
	return &JobApplicationHandler{
		service:   service,
		validator: validate,
	}
}

// ApplyToJob godoc
//
//	@Summary		Apply for a job
//	@Description	Submits an application with a resume and a cover letter. One application per job.
//	@Tags			job_applications
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			job_id			formData	string	true	"Job ID"	Format(uuid)
//	@Param			resume			formData	file	true	"Resume"
//	@Param			cover_letter	formData	file	true	"Cover letter"
//	@Success		201				{object}	models.JobApplication	"Application created successfully"
//	@Failure		400				{object}	map[string]string		"Bad Request - missing or rejected files"
//	@Failure		401				{object}	map[string]string		"Unauthorized"
//	@Failure		404				{object}	map[string]string		"Not Found - Job not found"
//	@Failure		409				{object}	map[string]string		"Already applied or job closed"
//	@Router			/job-application [post]
//	@Security		BearerAuth
func (h *JobApplicationHandler) ApplyToJob(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.ApplyRequest
	if !bindForm(c, h.validator, &req) {
		return
	}
	req.ApplicantID = userID

	resume, closeResume, err := formUpload(c, "resume")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid resume upload", nil)
		return
	}
	defer closeResume()
	coverLetter, closeCover, err := formUpload(c, "cover_letter")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid cover_letter upload", nil)
		return
	}
	defer closeCover()

	missing := map[string]string{}
	if resume == nil {
		missing["resume"] = "Field 'resume' is required"
	}
	if coverLetter == nil {
		missing["cover_letter"] = "Field 'cover_letter' is required"
	}
	if len(missing) > 0 {
		respondError(c, http.StatusBadRequest, "Validation failed", missing)
		return
	}
	req.Resume = resume
	req.CoverLetter = coverLetter

	application, err := h.service.Apply(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "submit application")
		return
	}
	respond(c, http.StatusCreated, application)
}

// ListMyApplications godoc
//
//	@Summary		List my applications
//	@Description	Applications of the logged-in applicant with job title and status, newest first.
//	@Tags			job_applications
//	@Produce		json
//	@Success		200	{array}		models.JobApplication
//	@Failure		401	{object}	map[string]string	"Unauthorized"
//	@Router			/job-application [get]
//	@Security		BearerAuth
func (h *JobApplicationHandler) ListMyApplications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	applications, err := h.service.ListMine(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err, "retrieve applications")
		return
	}
	respond(c, http.StatusOK, applications)
}

// CheckApplied godoc
//
//	@Summary		Check whether I applied to a job
//	@Tags			job_applications
//	@Produce		json
//	@Param			job_id	path		string	true	"Job ID"	Format(uuid)
//	@Success		200		{object}	dto.CheckAppliedResponse
//	@Failure		400		{object}	map[string]string	"Invalid ID format"
//	@Router			/job-application/check/{job_id} [get]
//	@Security		BearerAuth
func (h *JobApplicationHandler) CheckApplied(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	jobID, ok := parseUUIDParam(c, "job_id", "job")
	if !ok {
		return
	}

	applied, err := h.service.HasApplied(c.Request.Context(), userID, jobID)
	if err != nil {
		handleServiceError(c, err, "check application")
		return
	}
	respond(c, http.StatusOK, dto.CheckAppliedResponse{Applied: applied})
}

// WithdrawApplication godoc
//
//	@Summary		Withdraw an application
//	@Description	Deletes the caller's application and its documents. Only pending applications can be withdrawn.
//	@Tags			job_applications
//	@Param			id	path	string	true	"Application ID"	Format(uuid)
//	@Success		204	"Application withdrawn"
//	@Failure		404	{object}	map[string]string	"Application not found"
//	@Failure		409	{object}	map[string]string	"Application is already being processed"
//	@Router			/job-application/{id} [delete]
//	@Security		BearerAuth
func (h *JobApplicationHandler) WithdrawApplication(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id", "application")
	if !ok {
		return
	}

	if err := h.service.Withdraw(c.Request.Context(), &dto.WithdrawRequest{ID: id, ApplicantID: userID}); err != nil {
		handleServiceError(c, err, "withdraw application")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListApplicants godoc
//
//	@Summary		List applicants
//	@Description	HR listing of applications, filterable by job, status and applicant name or email.
//	@Tags			job_applications
//	@Produce		json
//	@Param			job_id	query		string	false	"Job filter"	Format(uuid)
//	@Param			status	query		string	false	"Status filter"
//	@Param			search	query		string	false	"Applicant name or email contains"
//	@Param			limit	query		int		false	"Pagination limit"	default(20)
//	@Param			offset	query		int		false	"Pagination offset"	default(0)
//	@Success		200		{object}	dto.Page[models.JobApplication]
//	@Failure		400		{object}	map[string]string	"Invalid query"
//	@Failure		403		{object}	map[string]string	"Forbidden"
//	@Router			/job-application/applicants [get]
//	@Security		BearerAuth
func (h *JobApplicationHandler) ListApplicants(c *gin.Context) {
	var req dto.ListApplicantsRequest
	if !bindQuery(c, h.validator, &req) {
		return
	}

	page, err := h.service.ListApplicants(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "retrieve applicants")
		return
	}
	respond(c, http.StatusOK, page)
}

// GetApplicant godoc
//
//	@Summary		Get an applicant
//	@Description	An application together with the applicant's full profile.
//	@Tags			job_applications
//	@Produce		json
//	@Param			id	path		string	true	"Application ID"	Format(uuid)
//	@Success		200	{object}	dto.ApplicantDetail
//	@Failure		404	{object}	map[string]string	"Application not found"
//	@Router			/job-application/applicants/{id} [get]
//	@Security		BearerAuth
func (h *JobApplicationHandler) GetApplicant(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "application")
	if !ok {
		return
	}

	detail, err := h.service.GetApplicant(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "retrieve applicant")
		return
	}
	respond(c, http.StatusOK, detail)
}

// GetApplicantDocument godoc
//
//	@Summary		Download an application document
//	@Description	Redirects to the stored resume or cover letter.
//	@Tags			job_applications
//	@Param			id		path	string	true	"Application ID"	Format(uuid)
//	@Param			kind	path	string	true	"Document kind"	Enums(resume, cover_letter)
//	@Success		302		"Redirect to the document"
//	@Failure		400		{object}	map[string]string	"Unknown document kind"
//	@Failure		404		{object}	map[string]string	"Document not found"
//	@Router			/job-application/applicants/{id}/documents/{kind} [get]
//	@Security		BearerAuth
func (h *JobApplicationHandler) GetApplicantDocument(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "application")
	if !ok {
		return
	}
	kind := models.DocumentKind(c.Param("kind"))
	if kind != models.DocumentResume && kind != models.DocumentCoverLetter {
		respondError(c, http.StatusBadRequest, "Document kind must be resume or cover_letter", nil)
		return
	}

	url, err := h.service.DocumentURL(c.Request.Context(), id, kind)
	if err != nil {
		handleServiceError(c, err, "retrieve document")
		return
	}
	c.Redirect(http.StatusFound, url)
}

// UpdateApplicationStatus godoc
//
//	@Summary		Change an application's status
//	@Description	Moves the application along the pipeline. Shortlisted and rejected applicants are emailed.
//	@Tags			job_applications
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Application ID"	Format(uuid)
//	@Param			status	body		dto.UpdateStatusRequest	true	"New status"
//	@Success		200		{object}	models.JobApplication
//	@Failure		400		{object}	map[string]string	"Validation failed"
//	@Failure		404		{object}	map[string]string	"Application not found"
//	@Failure		409		{object}	map[string]string	"Transition not allowed"
//	@Router			/job-application/applicants/{id}/status [patch]
//	@Security		BearerAuth
func (h *JobApplicationHandler) UpdateApplicationStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "application")
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	req.ID = id

	application, err := h.service.UpdateStatus(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "update application status")
		return
	}
	respond(c, http.StatusOK, application)
}

// BulkUpdateApplicationStatus godoc
//
//	@Summary		Change the status of many applications
//	@Description	All updates succeed or none do. Emails are sent after the change is saved.
//	@Tags			job_applications
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.BulkStatusRequest	true	"Applications and new status"
//	@Success		200		{object}	dto.BulkStatusResponse
//	@Failure		400		{object}	map[string]string	"Validation failed"
//	@Failure		404		{object}	map[string]string	"An application was not found"
//	@Failure		409		{object}	map[string]string	"A transition is not allowed"
//	@Router			/job-application/applicants/status [patch]
//	@Security		BearerAuth
func (h *JobApplicationHandler) BulkUpdateApplicationStatus(c *gin.Context) {
	var req dto.BulkStatusRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	result, err := h.service.BulkUpdateStatus(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "update application statuses")
		return
	}
	respond(c, http.StatusOK, result)
}
