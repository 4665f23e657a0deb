package handlers

import (
	"encoding/json"
	"net/http"

	"recruit-api/internal/services"
	"recruit-api/internal/storage/files"
	"recruit-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// immutableProfileFields may not appear in a profile update.
var immutableProfileFields = []string{"email"}

// ProfileHandler serves the applicant's own profile and its sections.
type ProfileHandler struct {
	service   services.ProfileService
	validator *validator.Validate
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(service services.ProfileService, validate *validator.Validate) *ProfileHandler {
	return &ProfileHandler{service: service, validator: validate}
}

// GetProfile godoc
//
//	@Summary		Get my profile
//	@Description	Names, personal details, education, experience, certifications and skills.
//	@Tags			profile
//	@Produce		json
//	@Success		200	{object}	models.FullProfile
//	@Failure		401	{object}	map[string]string	"Unauthorized"
//	@Router			/applicant/profile [get]
//	@Security		BearerAuth
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err, "retrieve profile")
		return
	}
	respond(c, http.StatusOK, profile)
}

// UpdateProfile godoc
//
//	@Summary		Update my profile
//	@Description	Replaces names and personal details. The email address cannot be changed and sending it is an error.
//	@Tags			profile
//	@Accept			json
//	@Produce		json
//	@Param			profile	body		dto.UpdateProfileRequest	true	"Profile details"
//	@Success		200		{object}	models.FullProfile
//	@Failure		400		{object}	map[string]string	"Validation failed or email present"
//	@Router			/applicant/profile [put]
//	@Security		BearerAuth
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}
	for _, name := range immutableProfileFields {
		if _, present := fields[name]; present {
			respondError(c, http.StatusBadRequest, "Field '"+name+"' cannot be changed", map[string]string{
				name: "Field '" + name + "' is immutable"})
			return
		}
	}

	var req dto.UpdateProfileRequest
	if err := json.Unmarshal(body, &req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), nil)
		return
	}
	if !validate(c, h.validator, &req) {
		return
	}
	req.UserID = userID

	profile, err := h.service.Update(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "update profile")
		return
	}
	respond(c, http.StatusOK, profile)
}

// CreateEducation godoc
//
//	@Summary		Add an education entry
//	@Tags			profile
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			institution		formData	string	true	"Institution"
//	@Param			degree			formData	string	true	"Degree"
//	@Param			field_of_study	formData	string	false	"Field of study"
//	@Param			start_date		formData	string	true	"Start date (YYYY-MM-DD)"
//	@Param			end_date		formData	string	false	"End date (YYYY-MM-DD)"
//	@Param			document		formData	file	false	"Supporting document"
//	@Success		201				{object}	models.Education
//	@Failure		400				{object}	map[string]string	"Validation failed"
//	@Router			/applicant/profile/education [post]
//	@Security		BearerAuth
func (h *ProfileHandler) CreateEducation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.EducationRequest
	closeDoc, ok := h.bindSection(c, &req, &req.Document)
	if !ok {
		return
	}
	defer closeDoc()

	education, err := h.service.CreateEducation(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err, "create education")
		return
	}
	respond(c, http.StatusCreated, education)
}

// UpdateEducation godoc
//
//	@Summary		Replace an education entry
//	@Description	A new document replaces the old one; remove_document=true deletes it.
//	@Tags			profile
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			id				path		string	true	"Education ID"	Format(uuid)
//	@Param			institution		formData	string	true	"Institution"
//	@Param			degree			formData	string	true	"Degree"
//	@Param			start_date		formData	string	true	"Start date (YYYY-MM-DD)"
//	@Param			remove_document	formData	bool	false	"Delete the attached document"
//	@Param			document		formData	file	false	"Supporting document"
//	@Success		200				{object}	models.Education
//	@Failure		404				{object}	map[string]string	"Entry not found"
//	@Router			/applicant/profile/education/{id} [put]
//	@Security		BearerAuth
func (h *ProfileHandler) UpdateEducation(c *gin.Context) {
	ref, ok := sectionRef(c)
	if !ok {
		return
	}
	var req dto.EducationRequest
	closeDoc, ok := h.bindSection(c, &req, &req.Document)
	if !ok {
		return
	}
	defer closeDoc()

	education, err := h.service.UpdateEducation(c.Request.Context(), ref, &req)
	if err != nil {
		handleServiceError(c, err, "update education")
		return
	}
	respond(c, http.StatusOK, education)
}

// DeleteEducation godoc
//
//	@Summary		Delete an education entry
//	@Tags			profile
//	@Param			id	path	string	true	"Education ID"	Format(uuid)
//	@Success		204	"Deleted"
//	@Failure		404	{object}	map[string]string	"Entry not found"
//	@Router			/applicant/profile/education/{id} [delete]
//	@Security		BearerAuth
func (h *ProfileHandler) DeleteEducation(c *gin.Context) {
	ref, ok := sectionRef(c)
	if !ok {
		return
	}
	if err := h.service.DeleteEducation(c.Request.Context(), ref); err != nil {
		handleServiceError(c, err, "delete education")
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateExperience godoc
//
//	@Summary		Add a work experience entry
//	@Description	A current position (is_current=true) has no end date.
//	@Tags			profile
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			company		formData	string	true	"Company"
//	@Param			position	formData	string	true	"Position"
//	@Param			description	formData	string	false	"Description"
//	@Param			start_date	formData	string	true	"Start date (YYYY-MM-DD)"
//	@Param			end_date	formData	string	false	"End date (YYYY-MM-DD)"
//	@Param			is_current	formData	bool	false	"Current position"
//	@Param			document	formData	file	false	"Supporting document"
//	@Success		201			{object}	models.Experience
//	@Failure		400			{object}	map[string]string	"Validation failed"
//	@Router			/applicant/profile/experience [post]
//	@Security		BearerAuth
func (h *ProfileHandler) CreateExperience(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.ExperienceRequest
	closeDoc, ok := h.bindSection(c, &req, &req.Document)
	if !ok {
		return
	}
	defer closeDoc()

	experience, err := h.service.CreateExperience(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err, "create experience")
		return
	}
	respond(c, http.StatusCreated, experience)
}

// UpdateExperience godoc
//
//	@Summary		Replace a work experience entry
//	@Tags			profile
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			id	path		string	true	"Experience ID"	Format(uuid)
//	@Success		200	{object}	models.Experience
//	@Failure		404	{object}	map[string]string	"Entry not found"
//	@Router			/applicant/profile/experience/{id} [put]
//	@Security		BearerAuth
func (h *ProfileHandler) UpdateExperience(c *gin.Context) {
	ref, ok := sectionRef(c)
	if !ok {
		return
	}
	var req dto.ExperienceRequest
	closeDoc, ok := h.bindSection(c, &req, &req.Document)
	if !ok {
		return
	}
	defer closeDoc()

	experience, err := h.service.UpdateExperience(c.Request.Context(), ref, &req)
	if err != nil {
		handleServiceError(c, err, "update experience")
		return
	}
	respond(c, http.StatusOK, experience)
}

// DeleteExperience godoc
//
//	@Summary		Delete a work experience entry
//	@Tags			profile
//	@Param			id	path	string	true	"Experience ID"	Format(uuid)
//	@Success		204	"Deleted"
//	@Router			/applicant/profile/experience/{id} [delete]
//	@Security		BearerAuth
func (h *ProfileHandler) DeleteExperience(c *gin.Context) {
	ref, ok := sectionRef(c)
	if !ok {
		return
	}
	if err := h.service.DeleteExperience(c.Request.Context(), ref); err != nil {
		handleServiceError(c, err, "delete experience")
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateCertification godoc
//
//	@Summary		Add a certification
//	@Tags			profile
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			name					formData	string	true	"Certification name"
//	@Param			issuing_organization	formData	string	true	"Issuer"
//	@Param			issue_date				formData	string	true	"Issue date (YYYY-MM-DD)"
//	@Param			expiry_date				formData	string	false	"Expiry date (YYYY-MM-DD)"
//	@Param			credential_id			formData	string	false	"Credential ID"
//	@Param			document				formData	file	false	"Certificate"
//	@Success		201						{object}	models.Certification
//	@Failure		400						{object}	map[string]string	"Validation failed"
//	@Router			/applicant/profile/certification [post]
//	@Security		BearerAuth
func (h *ProfileHandler) CreateCertification(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CertificationRequest
	closeDoc, ok := h.bindSection(c, &req, &req.Document)
	if !ok {
		return
	}
	defer closeDoc()

	certification, err := h.service.CreateCertification(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err, "create certification")
		return
	}
	respond(c, http.StatusCreated, certification)
}

// UpdateCertification godoc
//
//	@Summary		Replace a certification
//	@Tags			profile
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			id	path		string	true	"Certification ID"	Format(uuid)
//	@Success		200	{object}	models.Certification
//	@Failure		404	{object}	map[string]string	"Entry not found"
//	@Router			/applicant/profile/certification/{id} [put]
//	@Security		BearerAuth
func (h *ProfileHandler) UpdateCertification(c *gin.Context) {
	ref, ok := sectionRef(c)
	if !ok {
		return
	}
	var req dto.CertificationRequest
	closeDoc, ok := h.bindSection(c, &req, &req.Document)
	if !ok {
		return
	}
	defer closeDoc()

	certification, err := h.service.UpdateCertification(c.Request.Context(), ref, &req)
	if err != nil {
		handleServiceError(c, err, "update certification")
		return
	}
	respond(c, http.StatusOK, certification)
}

// DeleteCertification godoc
//
//	@Summary		Delete a certification
//	@Tags			profile
//	@Param			id	path	string	true	"Certification ID"	Format(uuid)
//	@Success		204	"Deleted"
//	@Router			/applicant/profile/certification/{id} [delete]
//	@Security		BearerAuth
func (h *ProfileHandler) DeleteCertification(c *gin.Context) {
	ref, ok := sectionRef(c)
	if !ok {
		return
	}
	if err := h.service.DeleteCertification(c.Request.Context(), ref); err != nil {
		handleServiceError(c, err, "delete certification")
		return
	}
	c.Status(http.StatusNoContent)
}

// ReplaceSkills godoc
//
//	@Summary		Replace my skills
//	@Description	Names are trimmed and deduplicated case-insensitively.
//	@Tags			profile
//	@Accept			json
//	@Produce		json
//	@Param			skills	body		dto.SkillsRequest	true	"Skill names"
//	@Success		200		{array}		models.Skill
//	@Failure		400		{object}	map[string]string	"Validation failed"
//	@Router			/applicant/profile/skills [put]
//	@Security		BearerAuth
func (h *ProfileHandler) ReplaceSkills(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.SkillsRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	skills, err := h.service.ReplaceSkills(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err, "update skills")
		return
	}
	respond(c, http.StatusOK, skills)
}

// SearchSkills godoc
//
//	@Summary		Suggest skill names
//	@Tags			profile
//	@Produce		json
//	@Param			q		query		string	false	"Name prefix"
//	@Param			limit	query		int		false	"Maximum suggestions"	default(10)
//	@Success		200		{array}		models.Skill
//	@Router			/skills [get]
func (h *ProfileHandler) SearchSkills(c *gin.Context) {
	var req dto.SkillSearchRequest
	if !bindQuery(c, h.validator, &req) {
		return
	}

	skills, err := h.service.SearchSkills(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "search skills")
		return
	}
	respond(c, http.StatusOK, skills)
}

// bindSection binds a multipart section form into req and opens the optional
// "document" file into doc.
func (h *ProfileHandler) bindSection(c *gin.Context, req any, doc **files.Upload) (func(), bool) {
	if !bindForm(c, h.validator, req) {
		return nil, false
	}
	upload, closeFn, err := formUpload(c, "document")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid document upload", nil)
		return nil, false
	}
	*doc = upload
	return closeFn, true
}

func sectionRef(c *gin.Context) (dto.SectionRef, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return dto.SectionRef{}, false
	}
	id, ok := parseUUIDParam(c, "id", "entry")
	if !ok {
		return dto.SectionRef{}, false
	}
	return dto.SectionRef{UserID: userID, ID: id}, true
}
