package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/teilnahme/teilnahme/internal/app/models"
	"github.com/teilnahme/teilnahme/internal/app/models/dto"
	"github.com/teilnahme/teilnahme/internal/app/services"
	"github.com/teilnahme/teilnahme/internal/middleware"
	"github.com/teilnahme/teilnahme/internal/pkg/helpers"
)

// AttendanceController handles attendance record operations
type AttendanceController struct {
	attendanceService services.AttendanceService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService services.AttendanceService) *AttendanceController {
	return &AttendanceController{
		attendanceService: attendanceService,
	}
}

// GetRecords lists attendance records
// @Summary List attendance records
// @Description Lists all records, or the records of one classroom, one student, or one exact date. At most one filter may be given.
// @Tags attendance
// @Produce json
// @Param classroom_id query int false "Classroom ID" Format(int64) minimum(1)
// @Param student_id query int false "Student ID" Format(int64) minimum(1)
// @Param date query string false "Exact date, RFC 3339 or YYYY-MM-DD HH:MM:SS"
// @Success 200 {object} dto.APIResponse{data=[]models.AttendanceRecord} "Records retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance [get]
func (c *AttendanceController) GetRecords(ctx *gin.Context) {
	var query dto.AttendanceQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	filters := 0
	for _, set := range []bool{query.ClassroomID != nil, query.StudentID != nil, query.Date != nil} {
		if set {
			filters++
		}
	}
	if filters > 1 {
		respondBadRequest(ctx, "only one of classroom_id, student_id and date can be given")
		return
	}

	var (
		records []models.AttendanceRecord
		err     error
	)
	switch {
	case query.ClassroomID != nil:
		records, err = c.attendanceService.GetRecordsByClassroom(ctx, *query.ClassroomID)
	case query.StudentID != nil:
		records, err = c.attendanceService.GetRecordsByStudent(ctx, *query.StudentID)
	case query.Date != nil:
		date, parseErr := helpers.ParseTimestamp(*query.Date)
		if parseErr != nil {
			respondBadRequest(ctx, parseErr.Error())
			return
		}
		records, err = c.attendanceService.GetRecordsByDate(ctx, date)
	default:
		records, err = c.attendanceService.GetAllRecords(ctx)
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, records)
}

// GetRecordByID retrieves an attendance record by ID
// @Summary Get attendance record
// @Tags attendance
// @Produce json
// @Param id path int true "Record ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.AttendanceRecord} "Record retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid record ID format"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance/{id} [get]
func (c *AttendanceController) GetRecordByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Attendance record")
	if !ok {
		return
	}

	record, err := c.attendanceService.GetRecordByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, record)
}

// CreateRecord stores an attendance record
// @Summary Record attendance
// @Description Marks a student present in a classroom. Without a date the current time is used.
// @Tags attendance
// @Accept json
// @Produce json
// @Param request body dto.CreateAttendanceRequest true "Attendance information"
// @Success 200 {object} dto.APIResponse{data=models.AttendanceRecord} "Record created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance [post]
func (c *AttendanceController) CreateRecord(ctx *gin.Context) {
	var req dto.CreateAttendanceRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	record, err := req.ToModel()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	created, err := c.attendanceService.CreateRecord(ctx, record)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, created)
}

// DeleteRecord deletes an attendance record
// @Summary Delete attendance record
// @Tags attendance
// @Param id path int true "Record ID" Format(int64) minimum(1)
// @Success 204 "Record deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid record ID format"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance/{id} [delete]
func (c *AttendanceController) DeleteRecord(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Attendance record")
	if !ok {
		return
	}

	if err := c.attendanceService.DeleteRecord(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
