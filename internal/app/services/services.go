// Package services holds the entity operations used by the HTTP and CLI adapters.
package services

import (
	"errors"
	"fmt"

	"github.com/teilnahme/teilnahme/internal/app/storage"
	"github.com/teilnahme/teilnahme/internal/pkg/apperrors"
)

// Entity names used in NotFoundError messages
const (
	entityStudent    = "Student"
	entitySubject    = "Subject"
	entityClassroom  = "Classroom"
	entityAttendance = "Attendance record"
)

// notFound translates storage.ErrNotFound into a NotFoundError for entity/id
// and wraps any other storage failure with action context.
func notFound(err error, entity string, id int64, action string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperrors.NewNotFoundError(entity, id)
	}
	return fmt.Errorf("error %s %s: %w", action, entity, err)
}
