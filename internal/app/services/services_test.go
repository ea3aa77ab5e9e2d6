package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teilnahme/teilnahme/internal/app/models"
	"github.com/teilnahme/teilnahme/internal/app/storage"
	"github.com/teilnahme/teilnahme/internal/pkg/apperrors"
)

func ptr[T any](v T) *T { return &v }

type fixture struct {
	students   StudentService
	subjects   SubjectService
	classrooms ClassroomService
	attendance AttendanceService

	studentStore   *storage.MemoryHandler[models.Student]
	subjectStore   *storage.MemoryHandler[models.Subject]
	classroomStore *storage.MemoryHandler[models.Classroom]
}

func newFixture() *fixture {
	f := &fixture{
		studentStore:   storage.NewMemoryHandler[models.Student](),
		subjectStore:   storage.NewMemoryHandler[models.Subject](),
		classroomStore: storage.NewMemoryHandler[models.Classroom](),
	}
	f.students = NewStudentService(f.studentStore)
	f.subjects = NewSubjectService(f.subjectStore)
	f.classrooms = NewClassroomService(f.classroomStore, f.students)
	f.attendance = NewAttendanceService(storage.NewMemoryHandler[models.AttendanceRecord]())
	return f
}

func john() models.Student {
	return models.Student{Name: "John", Surname: "Daw", Degree: models.DegreeBachelor, Semester: 4}
}

func TestStudentScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	created, err := f.students.CreateStudent(ctx, john())
	require.NoError(t, err)
	assert.Equal(t, models.Student{ID: 1, Name: "John", Surname: "Daw", Degree: models.DegreeBachelor, Semester: 4}, created)

	got, err := f.students.GetStudentByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	bachelors, err := f.students.GetStudentsInDegree(ctx, models.DegreeBachelor, nil)
	require.NoError(t, err)
	assert.Equal(t, []models.Student{created}, bachelors)

	_, err = f.students.GetStudentsInDegree(ctx, models.DegreeBachelor, ptr(10))
	var semErr *apperrors.SemesterError
	require.ErrorAs(t, err, &semErr)
	assert.Equal(t, "Bachelor degree has only 6 semesters", semErr.Error())

	masters, err := f.students.GetStudentsInDegree(ctx, models.DegreeMaster, ptr(4))
	require.NoError(t, err)
	assert.Empty(t, masters)

	_, err = f.students.GetStudentsInDegree(ctx, "PhD", nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCreateStudentRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		student models.Student
		want    error
	}{
		{"short name", models.Student{Name: "J", Surname: "Daw", Degree: models.DegreeBachelor, Semester: 1}, apperrors.ErrValidationFailed},
		{"short surname", models.Student{Name: "John", Surname: "D", Degree: models.DegreeBachelor, Semester: 1}, apperrors.ErrValidationFailed},
		{"master semester", models.Student{Name: "John", Surname: "Daw", Degree: models.DegreeMaster, Semester: 5}, apperrors.ErrInvalidSemester},
		{"zero semester", models.Student{Name: "John", Surname: "Daw", Degree: models.DegreeBachelor}, apperrors.ErrInvalidSemester},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.students.CreateStudent(ctx, tt.student)
			assert.ErrorIs(t, err, tt.want)

			all, err := f.students.GetAllStudents(ctx)
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestCreateStudentIgnoresClientID(t *testing.T) {
	f := newFixture()
	s := john()
	s.ID = 42

	created, err := f.students.CreateStudent(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
}

func TestUpdateStudent(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	created, err := f.students.CreateStudent(ctx, john())
	require.NoError(t, err)

	updated, err := f.students.UpdateStudent(ctx, created.ID, models.StudentPatch{Semester: ptr(6), Surname: ptr("Doe")})
	require.NoError(t, err)
	assert.Equal(t, models.Student{ID: created.ID, Name: "John", Surname: "Doe", Degree: models.DegreeBachelor, Semester: 6}, updated)

	// Switching degree re-checks the semester against the new bound
	_, err = f.students.UpdateStudent(ctx, created.ID, models.StudentPatch{Degree: ptr(models.DegreeMaster)})
	assert.ErrorIs(t, err, apperrors.ErrInvalidSemester)

	got, err := f.students.GetStudentByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got, "failed updates leave the stored student unchanged")

	// Names outside the length bounds keep the stored value, the rest of the patch applies
	updated, err = f.students.UpdateStudent(ctx, created.ID, models.StudentPatch{
		Name:     ptr("J"),
		Surname:  ptr(""),
		Semester: ptr(5),
	})
	require.NoError(t, err)
	assert.Equal(t, models.Student{ID: created.ID, Name: "John", Surname: "Doe", Degree: models.DegreeBachelor, Semester: 5}, updated)

	updated, err = f.students.UpdateStudent(ctx, created.ID, models.StudentPatch{Name: ptr(strings.Repeat("x", 256))})
	require.NoError(t, err)
	assert.Equal(t, "John", updated.Name)
}

func TestUpdateMissingStudent(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.students.UpdateStudent(ctx, 7, models.StudentPatch{Name: ptr("Jane")})
	var nf *apperrors.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Student with ID 7 not found", nf.Error())

	all, err := f.students.GetAllStudents(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestDeleteStudentTwice(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	created, err := f.students.CreateStudent(ctx, john())
	require.NoError(t, err)

	require.NoError(t, f.students.DeleteStudent(ctx, created.ID))

	_, err = f.students.GetStudentByID(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	assert.ErrorIs(t, f.students.DeleteStudent(ctx, created.ID), apperrors.ErrResourceNotFound)
}

func TestSubjectScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.subjects.CreateSubject(ctx, models.Subject{Name: "M", Semester: 4, Degree: models.DegreeBachelor})
	var valErr *apperrors.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "Subject", valErr.Entity)

	all, err := f.subjects.GetAllSubjects(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	math, err := f.subjects.CreateSubject(ctx, models.Subject{Name: "Math", Semester: 2, Degree: models.DegreeMaster})
	require.NoError(t, err)
	_, err = f.subjects.CreateSubject(ctx, models.Subject{Name: "Art", Semester: 2, Degree: models.DegreeBachelor})
	require.NoError(t, err)

	masters, err := f.subjects.GetSubjectsInDegree(ctx, models.DegreeMaster, ptr(2))
	require.NoError(t, err)
	assert.Equal(t, []models.Subject{math}, masters)

	_, err = f.subjects.GetSubjectsInDegree(ctx, models.DegreeMaster, ptr(0))
	assert.ErrorIs(t, err, apperrors.ErrInvalidSemester)

	updated, err := f.subjects.UpdateSubject(ctx, math.ID, models.SubjectPatch{Name: ptr("Algebra")})
	require.NoError(t, err)
	assert.Equal(t, "Algebra", updated.Name)
	assert.Equal(t, 2, updated.Semester)

	updated, err = f.subjects.UpdateSubject(ctx, math.ID, models.SubjectPatch{Name: ptr(""), Semester: ptr(3)})
	require.NoError(t, err)
	assert.Equal(t, "Algebra", updated.Name)
	assert.Equal(t, 3, updated.Semester)

	_, err = f.subjects.UpdateSubject(ctx, 99, models.SubjectPatch{Name: ptr("Algebra")})
	assert.EqualError(t, err, "Subject with ID 99 not found")

	require.NoError(t, f.subjects.DeleteSubject(ctx, math.ID))
	_, err = f.subjects.GetSubjectByID(ctx, math.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestAddMissingStudentToClassroom(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	classroom, err := f.classrooms.CreateClassroom(ctx, models.Classroom{SubjectID: 1})
	require.NoError(t, err)
	assert.Equal(t, models.IDList{}, classroom.StudentIDs)

	_, err = f.classrooms.AddStudentToClassroom(ctx, classroom.ID, 999)
	assert.EqualError(t, err, "Student with ID 999 not found")

	got, err := f.classrooms.GetClassroomByID(ctx, classroom.ID)
	require.NoError(t, err)
	assert.Empty(t, got.StudentIDs)
}

func TestClassroomRoster(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	a, err := f.students.CreateStudent(ctx, john())
	require.NoError(t, err)
	b, err := f.students.CreateStudent(ctx, models.Student{Name: "Jane", Surname: "Roe", Degree: models.DegreeMaster, Semester: 1})
	require.NoError(t, err)

	classroom, err := f.classrooms.CreateClassroom(ctx, models.Classroom{SubjectID: 3})
	require.NoError(t, err)

	_, err = f.classrooms.AddStudentToClassroom(ctx, 404, a.ID)
	assert.EqualError(t, err, "Classroom with ID 404 not found")

	got, err := f.classrooms.AddStudentToClassroom(ctx, classroom.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.IDList{a.ID}, got.StudentIDs)

	got, err = f.classrooms.AddStudentToClassroom(ctx, classroom.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.IDList{a.ID}, got.StudentIDs, "no duplicate enrollment")

	got, err = f.classrooms.AddStudentsToClassroom(ctx, classroom.ID, []int64{b.ID, a.ID, b.ID})
	require.NoError(t, err)
	assert.Equal(t, models.IDList{a.ID, b.ID}, got.StudentIDs)

	withB, err := f.classrooms.GetClassroomsWithStudent(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, withB, 1)
	assert.Equal(t, classroom.ID, withB[0].ID)

	got, err = f.classrooms.RemoveStudentFromClassroom(ctx, classroom.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.IDList{b.ID}, got.StudentIDs)

	got, err = f.classrooms.RemoveStudentFromClassroom(ctx, classroom.ID, b.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.StudentIDs)
	assert.Empty(t, got.StudentIDs)

	_, err = f.classrooms.RemoveStudentFromClassroom(ctx, 404, b.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestAddStudentsToClassroomIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	a, err := f.students.CreateStudent(ctx, john())
	require.NoError(t, err)
	classroom, err := f.classrooms.CreateClassroom(ctx, models.Classroom{SubjectID: 3})
	require.NoError(t, err)

	_, err = f.classrooms.AddStudentsToClassroom(ctx, classroom.ID, []int64{a.ID, 77})
	assert.EqualError(t, err, "Student with ID 77 not found")

	got, err := f.classrooms.GetClassroomByID(ctx, classroom.ID)
	require.NoError(t, err)
	assert.Empty(t, got.StudentIDs)
}

func TestUpdateClassroom(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	a, err := f.students.CreateStudent(ctx, john())
	require.NoError(t, err)

	classroom, err := f.classrooms.CreateClassroom(ctx, models.Classroom{SubjectID: 1, StudentIDs: models.IDList{a.ID, a.ID}})
	require.NoError(t, err)
	assert.Equal(t, models.IDList{a.ID}, classroom.StudentIDs)

	got, err := f.classrooms.UpdateClassroom(ctx, classroom.ID, models.ClassroomPatch{SubjectID: ptr(int64(2))})
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.SubjectID)
	assert.Equal(t, models.IDList{a.ID}, got.StudentIDs)

	_, err = f.classrooms.UpdateClassroom(ctx, classroom.ID, models.ClassroomPatch{StudentIDs: &[]int64{a.ID, 55}})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	got, err = f.classrooms.UpdateClassroom(ctx, classroom.ID, models.ClassroomPatch{StudentIDs: &[]int64{}})
	require.NoError(t, err)
	assert.Equal(t, models.IDList{}, got.StudentIDs)

	_, err = f.classrooms.UpdateClassroom(ctx, 31, models.ClassroomPatch{SubjectID: ptr(int64(2))})
	assert.EqualError(t, err, "Classroom with ID 31 not found")

	_, err = f.classrooms.CreateClassroom(ctx, models.Classroom{SubjectID: 1, StudentIDs: models.IDList{12}})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestClassroomsForSubjectAndDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	first, err := f.classrooms.CreateClassroom(ctx, models.Classroom{SubjectID: 1})
	require.NoError(t, err)
	_, err = f.classrooms.CreateClassroom(ctx, models.Classroom{SubjectID: 2})
	require.NoError(t, err)

	forOne, err := f.classrooms.GetClassroomsForSubject(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []models.Classroom{first}, forOne)

	require.NoError(t, f.classrooms.DeleteClassroom(ctx, first.ID))
	assert.ErrorIs(t, f.classrooms.DeleteClassroom(ctx, first.ID), apperrors.ErrResourceNotFound)

	all, err := f.classrooms.GetAllClassrooms(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestAttendanceScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	when := time.Date(2024, 10, 1, 10, 15, 0, 0, time.UTC)

	first, err := f.attendance.CreateRecord(ctx, models.AttendanceRecord{StudentID: 1, ClassroomID: 1, Date: when})
	require.NoError(t, err)
	second, err := f.attendance.CreateRecord(ctx, models.AttendanceRecord{StudentID: 1, ClassroomID: 2, Date: when.Add(24 * time.Hour)})
	require.NoError(t, err)

	byClassroom, err := f.attendance.GetRecordsByClassroom(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []models.AttendanceRecord{first}, byClassroom)

	byStudent, err := f.attendance.GetRecordsByStudent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, byStudent, 2)

	byDate, err := f.attendance.GetRecordsByDate(ctx, when.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []models.AttendanceRecord{second}, byDate)

	require.NoError(t, f.attendance.DeleteRecord(ctx, first.ID))
	_, err = f.attendance.GetRecordByID(ctx, first.ID)
	assert.EqualError(t, err, "Attendance record with ID 1 not found")
}

func TestAttendanceDefaultsDateToNow(t *testing.T) {
	now := time.Date(2025, 3, 4, 5, 6, 7, 890, time.FixedZone("CET", 3600))
	svc := &attendanceServiceImpl{
		store: storage.NewMemoryHandler[models.AttendanceRecord](),
		now:   func() time.Time { return now },
	}

	// Unknown student and classroom ids are accepted
	created, err := svc.CreateRecord(context.Background(), models.AttendanceRecord{StudentID: 404, ClassroomID: 404})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 4, 4, 6, 7, 0, time.UTC), created.Date)
}

// failingStore returns err from every call
type failingStore[T models.Entity[T]] struct {
	err error
}

func (s failingStore[T]) GetAll(context.Context) ([]T, error) { return nil, s.err }
func (s failingStore[T]) GetAllWhere(context.Context, ...storage.Condition) ([]T, error) {
	return nil, s.err
}
func (s failingStore[T]) GetByID(context.Context, int64) (T, error) { var z T; return z, s.err }
func (s failingStore[T]) Create(context.Context, T) (T, error)      { var z T; return z, s.err }
func (s failingStore[T]) Update(context.Context, int64, T) (T, error) {
	var z T
	return z, s.err
}
func (s failingStore[T]) Delete(context.Context, int64) error { return s.err }

func TestBackendErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk on fire")
	svc := NewStudentService(failingStore[models.Student]{err: boom})

	_, err := svc.GetStudentByID(ctx, 1)
	assert.ErrorIs(t, err, boom)
	assert.False(t, apperrors.IsDomainError(err))

	_, err = svc.CreateStudent(ctx, john())
	assert.ErrorIs(t, err, boom)

	assert.ErrorIs(t, svc.DeleteStudent(ctx, 1), boom)
}
