package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundErrorMessageAndKind(t *testing.T) {
	err := fmt.Errorf("loading classroom: %w", NewNotFoundError("Classroom", 12))

	assert.EqualError(t, err, "loading classroom: Classroom with ID 12 not found")
	assert.ErrorIs(t, err, ErrResourceNotFound)
	assert.False(t, errors.Is(err, ErrValidationFailed))

	var nf *NotFoundError
	if assert.ErrorAs(t, err, &nf) {
		assert.Equal(t, "Classroom", nf.Entity)
		assert.Equal(t, int64(12), nf.ID)
	}
}

func TestErrorKindsAreDistinct(t *testing.T) {
	semErr := NewSemesterError("Master degree has only 4 semesters")
	valErr := NewValidationError("Subject", "name", "Subject name must be at least 2 characters long")

	assert.ErrorIs(t, semErr, ErrInvalidSemester)
	assert.NotErrorIs(t, semErr, ErrValidationFailed)
	assert.ErrorIs(t, valErr, ErrValidationFailed)
	assert.NotErrorIs(t, valErr, ErrResourceNotFound)
	assert.Equal(t, "Subject", valErr.Entity)
}

func TestIsDomainError(t *testing.T) {
	assert.True(t, IsDomainError(NewNotFoundError("Student", 1)))
	assert.True(t, IsDomainError(NewSemesterError("x")))
	assert.True(t, IsDomainError(NewValidationError("Student", "name", "x")))
	assert.True(t, IsDomainError(NewBadRequestError("bad date")))
	assert.False(t, IsDomainError(errors.New("connection refused")))
}
