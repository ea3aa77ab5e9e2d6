package services

import (
	"context"
	"fmt"

	"github.com/teilnahme/teilnahme/internal/app/models"
	"github.com/teilnahme/teilnahme/internal/app/storage"
	"github.com/teilnahme/teilnahme/internal/pkg/validation"
)

// StudentService defines the interface for student-related operations
type StudentService interface {
	GetAllStudents(ctx context.Context) ([]models.Student, error)
	// GetStudentsInDegree filters by degree and, when semester is not nil, by semester
	GetStudentsInDegree(ctx context.Context, degree models.Degree, semester *int) ([]models.Student, error)
	GetStudentByID(ctx context.Context, id int64) (models.Student, error)
	CreateStudent(ctx context.Context, student models.Student) (models.Student, error)
	UpdateStudent(ctx context.Context, id int64, patch models.StudentPatch) (models.Student, error)
	DeleteStudent(ctx context.Context, id int64) error
}

// studentServiceImpl implements the StudentService interface
type studentServiceImpl struct {
	store storage.Handler[models.Student]
}

// NewStudentService creates a new student service instance
func NewStudentService(store storage.Handler[models.Student]) StudentService {
	return &studentServiceImpl{
		store: store,
	}
}

// GetAllStudents retrieves all students
func (s *studentServiceImpl) GetAllStudents(ctx context.Context) ([]models.Student, error) {
	students, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}
	return students, nil
}

// GetStudentsInDegree retrieves students of a degree, optionally of one semester
func (s *studentServiceImpl) GetStudentsInDegree(ctx context.Context, degree models.Degree, semester *int) ([]models.Student, error) {
	conds, err := degreeConditions("Student", degree, semester)
	if err != nil {
		return nil, err
	}

	students, err := s.store.GetAllWhere(ctx, conds...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}
	return students, nil
}

// GetStudentByID retrieves a student by ID
func (s *studentServiceImpl) GetStudentByID(ctx context.Context, id int64) (models.Student, error) {
	student, err := s.store.GetByID(ctx, id)
	if err != nil {
		return models.Student{}, notFound(err, entityStudent, id, "retrieving")
	}
	return student, nil
}

// CreateStudent validates and stores a new student; any client-supplied id is ignored
func (s *studentServiceImpl) CreateStudent(ctx context.Context, student models.Student) (models.Student, error) {
	student.ID = 0
	if err := validation.ValidateStudent(student); err != nil {
		return models.Student{}, err
	}

	created, err := s.store.Create(ctx, student)
	if err != nil {
		return models.Student{}, fmt.Errorf("error creating student: %w", err)
	}
	return created, nil
}

// UpdateStudent merges patch over the stored student, validates the result and stores it.
// A name or surname outside the length bounds is ignored and the stored one kept.
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, id int64, patch models.StudentPatch) (models.Student, error) {
	current, err := s.GetStudentByID(ctx, id)
	if err != nil {
		return models.Student{}, err
	}

	merged := current
	if patch.Name != nil && validation.IsValidName(*patch.Name) {
		merged.Name = *patch.Name
	}
	if patch.Surname != nil && validation.IsValidName(*patch.Surname) {
		merged.Surname = *patch.Surname
	}
	if patch.Degree != nil {
		merged.Degree = *patch.Degree
	}
	if patch.Semester != nil {
		merged.Semester = *patch.Semester
	}

	if err := validation.ValidateStudent(merged); err != nil {
		return models.Student{}, err
	}

	updated, err := s.store.Update(ctx, id, merged)
	if err != nil {
		return models.Student{}, notFound(err, entityStudent, id, "updating")
	}
	return updated, nil
}

// DeleteStudent deletes a student by ID
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return notFound(err, entityStudent, id, "deleting")
	}
	return nil
}

// degreeConditions validates a degree filter and builds its storage conditions
func degreeConditions(entity string, degree models.Degree, semester *int) ([]storage.Condition, error) {
	if err := validation.ValidateDegree(entity, degree); err != nil {
		return nil, err
	}

	conds := []storage.Condition{storage.Eq{Column: "degree", Value: degree}}
	if semester != nil {
		if err := validation.ValidateSemester(degree, *semester); err != nil {
			return nil, err
		}
		conds = append(conds, storage.Eq{Column: "semester", Value: *semester})
	}
	return conds, nil
}
