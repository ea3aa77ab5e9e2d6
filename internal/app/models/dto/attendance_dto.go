package dto

import (
	"github.com/teilnahme/teilnahme/internal/app/models"
	"github.com/teilnahme/teilnahme/internal/pkg/apperrors"
	"github.com/teilnahme/teilnahme/internal/pkg/helpers"
)

// CreateAttendanceRequest represents an attendance record to store.
// Date accepts RFC 3339 or "YYYY-MM-DD HH:MM:SS"; when omitted the current time is used.
type CreateAttendanceRequest struct {
	StudentID   int64   `json:"student_id" binding:"required,gt=0" example:"1"`
	ClassroomID int64   `json:"classroom_id" binding:"required,gt=0" example:"1"`
	Date        *string `json:"date,omitempty" example:"2024-10-01 10:15:00"`
}

// ToModel converts the request into an attendance record
func (r CreateAttendanceRequest) ToModel() (models.AttendanceRecord, error) {
	record := models.AttendanceRecord{
		StudentID:   r.StudentID,
		ClassroomID: r.ClassroomID,
	}
	if r.Date != nil {
		date, err := helpers.ParseTimestamp(*r.Date)
		if err != nil {
			return models.AttendanceRecord{}, apperrors.NewBadRequestError(err.Error())
		}
		record.Date = date
	}
	return record, nil
}

// AttendanceQuery filters attendance records; at most one field may be set
type AttendanceQuery struct {
	ClassroomID *int64  `form:"classroom_id" binding:"omitempty,gt=0"`
	StudentID   *int64  `form:"student_id" binding:"omitempty,gt=0"`
	Date        *string `form:"date"`
}
