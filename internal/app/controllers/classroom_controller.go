package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/teilnahme/teilnahme/internal/app/models"
	"github.com/teilnahme/teilnahme/internal/app/models/dto"
	"github.com/teilnahme/teilnahme/internal/app/services"
	"github.com/teilnahme/teilnahme/internal/middleware"
)

// ClassroomController handles classroom and roster operations
type ClassroomController struct {
	classroomService services.ClassroomService
}

// NewClassroomController creates a new ClassroomController
func NewClassroomController(classroomService services.ClassroomService) *ClassroomController {
	return &ClassroomController{
		classroomService: classroomService,
	}
}

// GetClassrooms lists classrooms
// @Summary List classrooms
// @Description Lists all classrooms, the classrooms of one subject, or the classrooms a student is enrolled in. At most one filter may be given.
// @Tags classrooms
// @Produce json
// @Param subject_id query int false "Subject ID" Format(int64) minimum(1)
// @Param student_id query int false "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]models.Classroom} "Classrooms retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classrooms [get]
func (c *ClassroomController) GetClassrooms(ctx *gin.Context) {
	var query dto.ClassroomQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	var (
		classrooms []models.Classroom
		err        error
	)
	switch {
	case query.SubjectID != nil && query.StudentID != nil:
		respondBadRequest(ctx, "subject_id and student_id cannot be combined")
		return
	case query.SubjectID != nil:
		classrooms, err = c.classroomService.GetClassroomsForSubject(ctx, *query.SubjectID)
	case query.StudentID != nil:
		classrooms, err = c.classroomService.GetClassroomsWithStudent(ctx, *query.StudentID)
	default:
		classrooms, err = c.classroomService.GetAllClassrooms(ctx)
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, classrooms)
}

// GetClassroomByID retrieves a classroom by ID
// @Summary Get classroom details
// @Tags classrooms
// @Produce json
// @Param id path int true "Classroom ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Classroom} "Classroom retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid classroom ID format"
// @Failure 404 {object} dto.ErrorResponse "Classroom not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classrooms/{id} [get]
func (c *ClassroomController) GetClassroomByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Classroom")
	if !ok {
		return
	}

	classroom, err := c.classroomService.GetClassroomByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, classroom)
}

// CreateClassroom handles classroom creation
// @Summary Create a new classroom
// @Description Creates a classroom for a subject. Every student in students_ids must exist.
// @Tags classrooms
// @Accept json
// @Produce json
// @Param request body dto.CreateClassroomRequest true "Classroom information"
// @Success 200 {object} dto.APIResponse{data=models.Classroom} "Classroom created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classrooms [post]
func (c *ClassroomController) CreateClassroom(ctx *gin.Context) {
	var req dto.CreateClassroomRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	created, err := c.classroomService.CreateClassroom(ctx, req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, created)
}

// UpdateClassroom updates an existing classroom
// @Summary Update a classroom
// @Description Changes the subject and/or replaces the roster; omitted fields are kept
// @Tags classrooms
// @Accept json
// @Produce json
// @Param id path int true "Classroom ID" Format(int64) minimum(1)
// @Param request body dto.UpdateClassroomRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Classroom} "Classroom updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Classroom or student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classrooms/{id} [put]
func (c *ClassroomController) UpdateClassroom(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Classroom")
	if !ok {
		return
	}

	var req dto.UpdateClassroomRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	updated, err := c.classroomService.UpdateClassroom(ctx, id, req.ToPatch())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, updated)
}

// DeleteClassroom deletes a classroom
// @Summary Delete a classroom
// @Tags classrooms
// @Param id path int true "Classroom ID" Format(int64) minimum(1)
// @Success 204 "Classroom deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid classroom ID format"
// @Failure 404 {object} dto.ErrorResponse "Classroom not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classrooms/{id} [delete]
func (c *ClassroomController) DeleteClassroom(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Classroom")
	if !ok {
		return
	}

	if err := c.classroomService.DeleteClassroom(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// AddStudent enrolls one student
// @Summary Enroll a student
// @Description Adds a student to the roster. Enrolling a student twice changes nothing.
// @Tags classrooms
// @Produce json
// @Param id path int true "Classroom ID" Format(int64) minimum(1)
// @Param studentId path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Classroom} "Student enrolled"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Classroom or student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classrooms/{id}/students/{studentId} [post]
func (c *ClassroomController) AddStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Classroom")
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "studentId", "Student")
	if !ok {
		return
	}

	classroom, err := c.classroomService.AddStudentToClassroom(ctx, id, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, classroom)
}

// AddStudents enrolls several students at once
// @Summary Enroll several students
// @Description Adds every listed student to the roster. Nothing changes if any of them does not exist.
// @Tags classrooms
// @Accept json
// @Produce json
// @Param id path int true "Classroom ID" Format(int64) minimum(1)
// @Param request body dto.EnrollStudentsRequest true "Students to enroll"
// @Success 200 {object} dto.APIResponse{data=models.Classroom} "Students enrolled"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Classroom or student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classrooms/{id}/students [post]
func (c *ClassroomController) AddStudents(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Classroom")
	if !ok {
		return
	}

	var req dto.EnrollStudentsRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	classroom, err := c.classroomService.AddStudentsToClassroom(ctx, id, req.StudentIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, classroom)
}

// RemoveStudent drops a student from the roster
// @Summary Remove a student
// @Description Removes a student from the roster. Removing a student who is not enrolled changes nothing.
// @Tags classrooms
// @Produce json
// @Param id path int true "Classroom ID" Format(int64) minimum(1)
// @Param studentId path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Classroom} "Student removed"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Classroom not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classrooms/{id}/students/{studentId} [delete]
func (c *ClassroomController) RemoveStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Classroom")
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "studentId", "Student")
	if !ok {
		return
	}

	classroom, err := c.classroomService.RemoveStudentFromClassroom(ctx, id, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, classroom)
}
