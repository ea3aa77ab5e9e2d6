package models

import "time"

// AttendanceRecord marks a student as present in a classroom at a point in time
type AttendanceRecord struct {
	ID          int64     `json:"id" db:"id" csv:"id" gorm:"primaryKey" example:"1"`
	StudentID   int64     `json:"student_id" db:"student_id" csv:"student_id" example:"1"`
	ClassroomID int64     `json:"classroom_id" db:"classroom_id" csv:"classroom_id" example:"1"`
	Date        time.Time `json:"date" db:"date" csv:"date" example:"2024-10-01T10:15:00Z"`
}

func (AttendanceRecord) TableName() string { return "attendance_records" }

func (a AttendanceRecord) Identity() int64 { return a.ID }

func (a AttendanceRecord) WithIdentity(id int64) AttendanceRecord {
	a.ID = id
	return a
}

func (a AttendanceRecord) Overlay(base AttendanceRecord) AttendanceRecord {
	if a.StudentID != 0 {
		base.StudentID = a.StudentID
	}
	if a.ClassroomID != 0 {
		base.ClassroomID = a.ClassroomID
	}
	if !a.Date.IsZero() {
		base.Date = a.Date
	}
	return base
}

func (a AttendanceRecord) Columns() map[string]any {
	return map[string]any{
		"student_id":   a.StudentID,
		"classroom_id": a.ClassroomID,
		"date":         a.Date.UTC(),
	}
}
