package dto

import "github.com/teilnahme/teilnahme/internal/app/models"

// CreateStudentRequest represents student creation data
type CreateStudentRequest struct {
	Name     string `json:"name" example:"John"`
	Surname  string `json:"surname" example:"Daw"`
	Degree   string `json:"degree" binding:"required" example:"Bachelor"`
	Semester *int   `json:"semester" binding:"required" example:"4"`
}

// ToModel converts the request into a student
func (r CreateStudentRequest) ToModel() (models.Student, error) {
	degree, err := ParseDegreeField("Student", r.Degree)
	if err != nil {
		return models.Student{}, err
	}
	return models.Student{
		Name:     r.Name,
		Surname:  r.Surname,
		Degree:   degree,
		Semester: *r.Semester,
	}, nil
}

// UpdateStudentRequest represents a partial student update; omitted fields are kept
type UpdateStudentRequest struct {
	Name     *string `json:"name,omitempty" example:"Jane"`
	Surname  *string `json:"surname,omitempty"`
	Degree   *string `json:"degree,omitempty" example:"Master"`
	Semester *int    `json:"semester,omitempty" example:"2"`
}

// ToPatch converts the request into a student patch
func (r UpdateStudentRequest) ToPatch() (models.StudentPatch, error) {
	degree, err := parseOptionalDegree("Student", r.Degree)
	if err != nil {
		return models.StudentPatch{}, err
	}
	return models.StudentPatch{
		Name:     r.Name,
		Surname:  r.Surname,
		Degree:   degree,
		Semester: r.Semester,
	}, nil
}
