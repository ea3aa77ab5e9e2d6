package dto

import "github.com/teilnahme/teilnahme/internal/app/models"

// CreateSubjectRequest represents subject creation data
type CreateSubjectRequest struct {
	Name     string `json:"name" example:"Databases"`
	Semester *int   `json:"semester" binding:"required" example:"3"`
	Degree   string `json:"degree" binding:"required" example:"Bachelor"`
}

// ToModel converts the request into a subject
func (r CreateSubjectRequest) ToModel() (models.Subject, error) {
	degree, err := ParseDegreeField("Subject", r.Degree)
	if err != nil {
		return models.Subject{}, err
	}
	return models.Subject{
		Name:     r.Name,
		Semester: *r.Semester,
		Degree:   degree,
	}, nil
}

// UpdateSubjectRequest represents a partial subject update
type UpdateSubjectRequest struct {
	Name     *string `json:"name,omitempty" example:"Distributed Databases"`
	Semester *int    `json:"semester,omitempty" example:"2"`
	Degree   *string `json:"degree,omitempty" example:"Master"`
}

// ToPatch converts the request into a subject patch
func (r UpdateSubjectRequest) ToPatch() (models.SubjectPatch, error) {
	degree, err := parseOptionalDegree("Subject", r.Degree)
	if err != nil {
		return models.SubjectPatch{}, err
	}
	return models.SubjectPatch{
		Name:     r.Name,
		Semester: r.Semester,
		Degree:   degree,
	}, nil
}
