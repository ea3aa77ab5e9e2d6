package validation

import (
	"fmt"
	"unicode/utf8"

	"github.com/teilnahme/teilnahme/internal/app/models"
	"github.com/teilnahme/teilnahme/internal/pkg/apperrors"
)

// Validation rule limits
var (
	// Name length bounds, apply to student name/surname and subject name.
	// The max matches the VARCHAR(255) columns.
	NameMinLength = 2
	NameMaxLength = 255

	// Semesters per degree
	BachelorSemesters = 6
	MasterSemesters   = 4
)

// String validation
type StringValidation struct {
	Value  string
	MinLen int
	MaxLen int
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{Value: value}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// Validate performs validation. Lengths are counted in characters, not bytes.
func (v *StringValidation) Validate() bool {
	if v.Value == "" {
		return false
	}

	length := utf8.RuneCountInString(v.Value)
	if v.MinLen > 0 && length < v.MinLen {
		return false
	}
	if v.MaxLen > 0 && length > v.MaxLen {
		return false
	}

	return true
}

// Numeric validation
type NumericValidation struct {
	Value int
	Min   int
	Max   int
}

// NewNumericValidation creates a new numeric validation
func NewNumericValidation(value int) *NumericValidation {
	return &NumericValidation{Value: value}
}

// WithMin sets minimum value
func (v *NumericValidation) WithMin(min int) *NumericValidation {
	v.Min = min
	return v
}

// WithMax sets maximum value
func (v *NumericValidation) WithMax(max int) *NumericValidation {
	v.Max = max
	return v
}

// Validate performs validation
func (v *NumericValidation) Validate() bool {
	if v.Min != 0 && v.Value < v.Min {
		return false
	}
	if v.Max != 0 && v.Value > v.Max {
		return false
	}
	return true
}

// IsValidName reports whether value fits the name length bounds
func IsValidName(value string) bool {
	return NewStringValidation(value).
		WithMinLength(NameMinLength).
		WithMaxLength(NameMaxLength).
		Validate()
}

func nameError(entity, field, value string) error {
	if IsValidName(value) {
		return nil
	}
	if utf8.RuneCountInString(value) > NameMaxLength {
		return apperrors.NewValidationError(entity, field,
			fmt.Sprintf("%s %s must be at most %d characters long", entity, field, NameMaxLength))
	}
	return apperrors.NewValidationError(entity, field,
		fmt.Sprintf("%s %s must be at least %d characters long", entity, field, NameMinLength))
}

// ValidateSemester checks that a semester number is valid for a given degree.
// It returns an *apperrors.SemesterError when it is not.
func ValidateSemester(degree models.Degree, semester int) error {
	switch {
	case degree == models.DegreeBachelor && !NewNumericValidation(semester).WithMax(BachelorSemesters).Validate():
		return apperrors.NewSemesterError(fmt.Sprintf("Bachelor degree has only %d semesters", BachelorSemesters))
	case degree == models.DegreeMaster && !NewNumericValidation(semester).WithMax(MasterSemesters).Validate():
		return apperrors.NewSemesterError(fmt.Sprintf("Master degree has only %d semesters", MasterSemesters))
	case !NewNumericValidation(semester).WithMin(1).Validate():
		return apperrors.NewSemesterError("Semester number must be greater than 0")
	}
	return nil
}

// ValidateDegree checks that degree is Bachelor or Master
func ValidateDegree(entity string, degree models.Degree) error {
	if !degree.Valid() {
		return apperrors.NewValidationError(entity, "degree",
			fmt.Sprintf("%s degree must be %s or %s", entity, models.DegreeBachelor, models.DegreeMaster))
	}
	return nil
}

// ValidateStudent checks the semester bound and the name/surname lengths
func ValidateStudent(student models.Student) error {
	if err := ValidateDegree("Student", student.Degree); err != nil {
		return err
	}
	if err := ValidateSemester(student.Degree, student.Semester); err != nil {
		return err
	}
	if err := nameError("Student", "name", student.Name); err != nil {
		return err
	}
	return nameError("Student", "surname", student.Surname)
}

// ValidateSubject checks the semester bound and the name length
func ValidateSubject(subject models.Subject) error {
	if err := ValidateDegree("Subject", subject.Degree); err != nil {
		return err
	}
	if err := ValidateSemester(subject.Degree, subject.Semester); err != nil {
		return err
	}
	return nameError("Subject", "name", subject.Name)
}
