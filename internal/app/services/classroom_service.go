package services

import (
	"context"
	"fmt"

	"github.com/teilnahme/teilnahme/internal/app/models"
	"github.com/teilnahme/teilnahme/internal/app/storage"
)

// ClassroomService defines the interface for classroom and roster operations
type ClassroomService interface {
	GetAllClassrooms(ctx context.Context) ([]models.Classroom, error)
	GetClassroomByID(ctx context.Context, id int64) (models.Classroom, error)
	GetClassroomsForSubject(ctx context.Context, subjectID int64) ([]models.Classroom, error)
	GetClassroomsWithStudent(ctx context.Context, studentID int64) ([]models.Classroom, error)
	CreateClassroom(ctx context.Context, classroom models.Classroom) (models.Classroom, error)
	UpdateClassroom(ctx context.Context, id int64, patch models.ClassroomPatch) (models.Classroom, error)
	DeleteClassroom(ctx context.Context, id int64) error
	AddStudentToClassroom(ctx context.Context, classroomID, studentID int64) (models.Classroom, error)
	AddStudentsToClassroom(ctx context.Context, classroomID int64, studentIDs []int64) (models.Classroom, error)
	RemoveStudentFromClassroom(ctx context.Context, classroomID, studentID int64) (models.Classroom, error)
}

type classroomServiceImpl struct {
	store    storage.Handler[models.Classroom]
	students StudentService
}

// NewClassroomService creates a classroom service; students resolves roster ids
func NewClassroomService(store storage.Handler[models.Classroom], students StudentService) ClassroomService {
	return &classroomServiceImpl{
		store:    store,
		students: students,
	}
}

func (s *classroomServiceImpl) GetAllClassrooms(ctx context.Context) ([]models.Classroom, error) {
	return s.list(ctx)
}

func (s *classroomServiceImpl) GetClassroomByID(ctx context.Context, id int64) (models.Classroom, error) {
	classroom, err := s.store.GetByID(ctx, id)
	if err != nil {
		return models.Classroom{}, notFound(err, entityClassroom, id, "retrieving")
	}
	return withNonNilRoster(classroom), nil
}

func (s *classroomServiceImpl) GetClassroomsForSubject(ctx context.Context, subjectID int64) ([]models.Classroom, error) {
	return s.list(ctx, storage.Eq{Column: "subject_id", Value: subjectID})
}

func (s *classroomServiceImpl) GetClassroomsWithStudent(ctx context.Context, studentID int64) ([]models.Classroom, error) {
	return s.list(ctx, storage.Contains{Relation: models.ClassroomStudents, Value: studentID})
}

func (s *classroomServiceImpl) list(ctx context.Context, conds ...storage.Condition) ([]models.Classroom, error) {
	classrooms, err := s.store.GetAllWhere(ctx, conds...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving classrooms: %w", err)
	}
	for i := range classrooms {
		classrooms[i] = withNonNilRoster(classrooms[i])
	}
	return classrooms, nil
}

// CreateClassroom stores a classroom after checking every enrolled student exists
func (s *classroomServiceImpl) CreateClassroom(ctx context.Context, classroom models.Classroom) (models.Classroom, error) {
	roster, err := s.resolveStudents(ctx, nil, classroom.StudentIDs)
	if err != nil {
		return models.Classroom{}, err
	}
	classroom.ID = 0
	classroom.StudentIDs = roster

	created, err := s.store.Create(ctx, classroom)
	if err != nil {
		return models.Classroom{}, fmt.Errorf("error creating classroom: %w", err)
	}
	return withNonNilRoster(created), nil
}

// UpdateClassroom merges patch over the stored classroom. A present roster
// replaces the stored one once every student in it is found.
func (s *classroomServiceImpl) UpdateClassroom(ctx context.Context, id int64, patch models.ClassroomPatch) (models.Classroom, error) {
	current, err := s.GetClassroomByID(ctx, id)
	if err != nil {
		return models.Classroom{}, err
	}

	change := models.Classroom{SubjectID: current.SubjectID}
	if patch.SubjectID != nil {
		change.SubjectID = *patch.SubjectID
	}
	if patch.StudentIDs != nil {
		roster, err := s.resolveStudents(ctx, nil, *patch.StudentIDs)
		if err != nil {
			return models.Classroom{}, err
		}
		change.StudentIDs = roster
	}

	return s.save(ctx, id, change)
}

func (s *classroomServiceImpl) DeleteClassroom(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return notFound(err, entityClassroom, id, "deleting")
	}
	return nil
}

// AddStudentToClassroom enrolls a student; enrolling an enrolled student changes nothing
func (s *classroomServiceImpl) AddStudentToClassroom(ctx context.Context, classroomID, studentID int64) (models.Classroom, error) {
	if _, err := s.students.GetStudentByID(ctx, studentID); err != nil {
		return models.Classroom{}, err
	}
	classroom, err := s.GetClassroomByID(ctx, classroomID)
	if err != nil {
		return models.Classroom{}, err
	}
	if classroom.StudentIDs.Contains(studentID) {
		return classroom, nil
	}

	return s.save(ctx, classroomID, models.Classroom{StudentIDs: append(classroom.StudentIDs, studentID)})
}

// AddStudentsToClassroom enrolls several students at once. Nothing is written
// unless the classroom and every student exist.
func (s *classroomServiceImpl) AddStudentsToClassroom(ctx context.Context, classroomID int64, studentIDs []int64) (models.Classroom, error) {
	classroom, err := s.GetClassroomByID(ctx, classroomID)
	if err != nil {
		return models.Classroom{}, err
	}
	roster, err := s.resolveStudents(ctx, classroom.StudentIDs, studentIDs)
	if err != nil {
		return models.Classroom{}, err
	}
	if len(roster) == len(classroom.StudentIDs) {
		return classroom, nil
	}

	return s.save(ctx, classroomID, models.Classroom{StudentIDs: roster})
}

// RemoveStudentFromClassroom drops a student from the roster; removing a
// student who is not enrolled changes nothing
func (s *classroomServiceImpl) RemoveStudentFromClassroom(ctx context.Context, classroomID, studentID int64) (models.Classroom, error) {
	classroom, err := s.GetClassroomByID(ctx, classroomID)
	if err != nil {
		return models.Classroom{}, err
	}
	if !classroom.StudentIDs.Contains(studentID) {
		return classroom, nil
	}

	roster := models.IDList{}
	for _, id := range classroom.StudentIDs {
		if id != studentID {
			roster = append(roster, id)
		}
	}
	return s.save(ctx, classroomID, models.Classroom{StudentIDs: roster})
}

func (s *classroomServiceImpl) save(ctx context.Context, id int64, change models.Classroom) (models.Classroom, error) {
	updated, err := s.store.Update(ctx, id, change)
	if err != nil {
		return models.Classroom{}, notFound(err, entityClassroom, id, "updating")
	}
	return withNonNilRoster(updated), nil
}

// resolveStudents appends the ids in add to base, skipping duplicates,
// after checking every added student exists
func (s *classroomServiceImpl) resolveStudents(ctx context.Context, base, add []int64) (models.IDList, error) {
	roster := append(models.IDList{}, base...)
	for _, id := range add {
		if roster.Contains(id) {
			continue
		}
		if _, err := s.students.GetStudentByID(ctx, id); err != nil {
			return nil, err
		}
		roster = append(roster, id)
	}
	return roster, nil
}

func withNonNilRoster(c models.Classroom) models.Classroom {
	if c.StudentIDs == nil {
		c.StudentIDs = models.IDList{}
	}
	return c
}
