package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrResourceNotFound is matched by every NotFoundError
	ErrResourceNotFound = errors.New("resource not found")
	// ErrInvalidSemester is matched by every SemesterError
	ErrInvalidSemester = errors.New("invalid semester")
	// ErrValidationFailed is matched by every ValidationError
	ErrValidationFailed = errors.New("validation failed")
	// ErrBadRequest covers malformed input rejected before it reaches a service
	ErrBadRequest = errors.New("bad request")
)

// NotFoundError is returned when an entity with the given id does not exist
type NotFoundError struct {
	Entity string
	ID     int64
}

// NewNotFoundError creates a NotFoundError for entity with the given id
func NewNotFoundError(entity string, id int64) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// Error implements error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %d not found", e.Entity, e.ID)
}

// Unwrap implements errors.Unwrap interface
func (e *NotFoundError) Unwrap() error {
	return ErrResourceNotFound
}

// SemesterError is returned when a semester number is not valid for a degree.
//
// This includes cases where:
//   - Bachelor semester is greater than 6
//   - Master semester is greater than 4
//   - Semester is less than or equal to 0
type SemesterError struct {
	Message string
}

// NewSemesterError creates a SemesterError with a message
func NewSemesterError(message string) *SemesterError {
	return &SemesterError{Message: message}
}

func (e *SemesterError) Error() string {
	return e.Message
}

func (e *SemesterError) Unwrap() error {
	return ErrInvalidSemester
}

// ValidationError is returned when student or subject data is invalid.
// Entity tells the two variants apart.
type ValidationError struct {
	Entity  string
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for a field of entity
func NewValidationError(entity, field, message string) *ValidationError {
	return &ValidationError{Entity: entity, Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// IsDomainError reports whether err is one of the errors a delivery adapter
// is expected to recover from and show to the user
func IsDomainError(err error) bool {
	return Is(err, ErrResourceNotFound, ErrInvalidSemester, ErrValidationFailed, ErrBadRequest)
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
