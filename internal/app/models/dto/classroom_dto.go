package dto

import "github.com/teilnahme/teilnahme/internal/app/models"

// CreateClassroomRequest represents classroom creation data
type CreateClassroomRequest struct {
	SubjectID  int64   `json:"subject_id" binding:"required,gt=0" example:"1"`
	StudentIDs []int64 `json:"students_ids" binding:"omitempty,dive,gt=0"`
}

// ToModel converts the request into a classroom
func (r CreateClassroomRequest) ToModel() models.Classroom {
	return models.Classroom{
		SubjectID:  r.SubjectID,
		StudentIDs: r.StudentIDs,
	}
}

// UpdateClassroomRequest represents a partial classroom update.
// A present students_ids replaces the roster.
type UpdateClassroomRequest struct {
	SubjectID  *int64   `json:"subject_id,omitempty" binding:"omitempty,gt=0" example:"2"`
	StudentIDs *[]int64 `json:"students_ids,omitempty"`
}

// ToPatch converts the request into a classroom patch
func (r UpdateClassroomRequest) ToPatch() models.ClassroomPatch {
	return models.ClassroomPatch{
		SubjectID:  r.SubjectID,
		StudentIDs: r.StudentIDs,
	}
}

// EnrollStudentsRequest adds several students to a classroom at once
type EnrollStudentsRequest struct {
	StudentIDs []int64 `json:"students_ids" binding:"required,min=1,dive,gt=0"`
}

// ClassroomQuery filters classrooms; at most one field may be set
type ClassroomQuery struct {
	SubjectID *int64 `form:"subject_id" binding:"omitempty,gt=0"`
	StudentID *int64 `form:"student_id" binding:"omitempty,gt=0"`
}
