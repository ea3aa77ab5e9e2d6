package services

import (
	"context"
	"fmt"

	"github.com/teilnahme/teilnahme/internal/app/models"
	"github.com/teilnahme/teilnahme/internal/app/storage"
	"github.com/teilnahme/teilnahme/internal/pkg/validation"
)

// SubjectService defines the interface for subject-related operations
type SubjectService interface {
	GetAllSubjects(ctx context.Context) ([]models.Subject, error)
	GetSubjectsInDegree(ctx context.Context, degree models.Degree, semester *int) ([]models.Subject, error)
	GetSubjectByID(ctx context.Context, id int64) (models.Subject, error)
	CreateSubject(ctx context.Context, subject models.Subject) (models.Subject, error)
	UpdateSubject(ctx context.Context, id int64, patch models.SubjectPatch) (models.Subject, error)
	DeleteSubject(ctx context.Context, id int64) error
}

type subjectServiceImpl struct {
	store storage.Handler[models.Subject]
}

// NewSubjectService creates a new subject service instance
func NewSubjectService(store storage.Handler[models.Subject]) SubjectService {
	return &subjectServiceImpl{
		store: store,
	}
}

func (s *subjectServiceImpl) GetAllSubjects(ctx context.Context) ([]models.Subject, error) {
	subjects, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving subjects: %w", err)
	}
	return subjects, nil
}

func (s *subjectServiceImpl) GetSubjectsInDegree(ctx context.Context, degree models.Degree, semester *int) ([]models.Subject, error) {
	conds, err := degreeConditions("Subject", degree, semester)
	if err != nil {
		return nil, err
	}

	subjects, err := s.store.GetAllWhere(ctx, conds...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving subjects: %w", err)
	}
	return subjects, nil
}

func (s *subjectServiceImpl) GetSubjectByID(ctx context.Context, id int64) (models.Subject, error) {
	subject, err := s.store.GetByID(ctx, id)
	if err != nil {
		return models.Subject{}, notFound(err, entitySubject, id, "retrieving")
	}
	return subject, nil
}

func (s *subjectServiceImpl) CreateSubject(ctx context.Context, subject models.Subject) (models.Subject, error) {
	subject.ID = 0
	if err := validation.ValidateSubject(subject); err != nil {
		return models.Subject{}, err
	}

	created, err := s.store.Create(ctx, subject)
	if err != nil {
		return models.Subject{}, fmt.Errorf("error creating subject: %w", err)
	}
	return created, nil
}

// UpdateSubject merges patch over the stored subject. A name outside the
// length bounds is ignored and the stored one kept.
func (s *subjectServiceImpl) UpdateSubject(ctx context.Context, id int64, patch models.SubjectPatch) (models.Subject, error) {
	current, err := s.GetSubjectByID(ctx, id)
	if err != nil {
		return models.Subject{}, err
	}

	merged := current
	if patch.Name != nil && validation.IsValidName(*patch.Name) {
		merged.Name = *patch.Name
	}
	if patch.Semester != nil {
		merged.Semester = *patch.Semester
	}
	if patch.Degree != nil {
		merged.Degree = *patch.Degree
	}

	if err := validation.ValidateSubject(merged); err != nil {
		return models.Subject{}, err
	}

	updated, err := s.store.Update(ctx, id, merged)
	if err != nil {
		return models.Subject{}, notFound(err, entitySubject, id, "updating")
	}
	return updated, nil
}

func (s *subjectServiceImpl) DeleteSubject(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return notFound(err, entitySubject, id, "deleting")
	}
	return nil
}
