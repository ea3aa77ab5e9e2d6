package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/teilnahme/teilnahme/internal/app/models"
	"github.com/teilnahme/teilnahme/internal/app/models/dto"
	"github.com/teilnahme/teilnahme/internal/app/services"
	"github.com/teilnahme/teilnahme/internal/middleware"
)

// SubjectController handles subject-related operations
type SubjectController struct {
	subjectService services.SubjectService
}

// NewSubjectController creates a new SubjectController
func NewSubjectController(subjectService services.SubjectService) *SubjectController {
	return &SubjectController{
		subjectService: subjectService,
	}
}

// GetSubjects lists subjects, optionally filtered by degree and semester
// @Summary List subjects
// @Description Lists all subjects, or the subjects taught in a degree and optionally one semester of it.
// @Tags subjects
// @Produce json
// @Param degree query string false "Degree" Enums(Bachelor, Master)
// @Param semester query int false "Semester (requires degree)" minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]models.Subject} "Subjects retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid degree or semester"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /subjects [get]
func (c *SubjectController) GetSubjects(ctx *gin.Context) {
	var query dto.DegreeQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	var (
		subjects []models.Subject
		err      error
	)
	switch {
	case !query.IsSet():
		subjects, err = c.subjectService.GetAllSubjects(ctx)
	case query.Degree == "":
		respondBadRequest(ctx, "semester filter requires a degree")
		return
	default:
		var degree models.Degree
		degree, err = dto.ParseDegreeField("Subject", query.Degree)
		if err == nil {
			subjects, err = c.subjectService.GetSubjectsInDegree(ctx, degree, query.Semester)
		}
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, subjects)
}

// GetSubjectByID retrieves a subject by ID
// @Summary Get subject details
// @Tags subjects
// @Produce json
// @Param id path int true "Subject ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Subject} "Subject retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid subject ID format"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /subjects/{id} [get]
func (c *SubjectController) GetSubjectByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Subject")
	if !ok {
		return
	}

	subject, err := c.subjectService.GetSubjectByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, subject)
}

// CreateSubject handles subject creation
// @Summary Create a new subject
// @Description Creates a subject for one semester of a degree
// @Tags subjects
// @Accept json
// @Produce json
// @Param request body dto.CreateSubjectRequest true "Subject information"
// @Success 200 {object} dto.APIResponse{data=models.Subject} "Subject created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid subject data or semester"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /subjects [post]
func (c *SubjectController) CreateSubject(ctx *gin.Context) {
	var req dto.CreateSubjectRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	subject, err := req.ToModel()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	created, err := c.subjectService.CreateSubject(ctx, subject)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, created)
}

// UpdateSubject updates an existing subject
// @Summary Update a subject
// @Description Merges the given fields over the stored subject; omitted fields are kept
// @Tags subjects
// @Accept json
// @Produce json
// @Param id path int true "Subject ID" Format(int64) minimum(1)
// @Param request body dto.UpdateSubjectRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Subject} "Subject updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid subject data or semester"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /subjects/{id} [put]
func (c *SubjectController) UpdateSubject(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Subject")
	if !ok {
		return
	}

	var req dto.UpdateSubjectRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	patch, err := req.ToPatch()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	updated, err := c.subjectService.UpdateSubject(ctx, id, patch)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, updated)
}

// DeleteSubject deletes a subject
// @Summary Delete a subject
// @Tags subjects
// @Param id path int true "Subject ID" Format(int64) minimum(1)
// @Success 204 "Subject deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid subject ID format"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /subjects/{id} [delete]
func (c *SubjectController) DeleteSubject(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Subject")
	if !ok {
		return
	}

	if err := c.subjectService.DeleteSubject(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
