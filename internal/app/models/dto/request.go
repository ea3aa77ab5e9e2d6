package dto

import (
	"github.com/teilnahme/teilnahme/internal/app/models"
	"github.com/teilnahme/teilnahme/internal/pkg/apperrors"
)

// DegreeQuery filters students or subjects by degree and optionally semester
type DegreeQuery struct {
	Degree   string `form:"degree"`
	Semester *int   `form:"semester" binding:"omitempty"`
}

// IsSet reports whether any filter was given
func (q DegreeQuery) IsSet() bool {
	return q.Degree != "" || q.Semester != nil
}

// ParseDegreeField converts a request degree into a models.Degree,
// reporting failures as a ValidationError of entity
func ParseDegreeField(entity, value string) (models.Degree, error) {
	degree, err := models.ParseDegree(value)
	if err != nil {
		return "", apperrors.NewValidationError(entity, "degree", err.Error())
	}
	return degree, nil
}

func parseOptionalDegree(entity string, value *string) (*models.Degree, error) {
	if value == nil {
		return nil, nil
	}
	degree, err := ParseDegreeField(entity, *value)
	if err != nil {
		return nil, err
	}
	return &degree, nil
}
