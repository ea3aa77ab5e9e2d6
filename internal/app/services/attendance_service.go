package services

import (
	"context"
	"fmt"
	"time"

	"github.com/teilnahme/teilnahme/internal/app/models"
	"github.com/teilnahme/teilnahme/internal/app/storage"
)

// AttendanceService defines the interface for attendance record operations
type AttendanceService interface {
	GetAllRecords(ctx context.Context) ([]models.AttendanceRecord, error)
	GetRecordByID(ctx context.Context, id int64) (models.AttendanceRecord, error)
	GetRecordsByClassroom(ctx context.Context, classroomID int64) ([]models.AttendanceRecord, error)
	GetRecordsByStudent(ctx context.Context, studentID int64) ([]models.AttendanceRecord, error)
	// GetRecordsByDate returns the records taken at exactly date
	GetRecordsByDate(ctx context.Context, date time.Time) ([]models.AttendanceRecord, error)
	CreateRecord(ctx context.Context, record models.AttendanceRecord) (models.AttendanceRecord, error)
	DeleteRecord(ctx context.Context, id int64) error
}

type attendanceServiceImpl struct {
	store storage.Handler[models.AttendanceRecord]
	now   func() time.Time
}

// NewAttendanceService creates a new attendance service instance
func NewAttendanceService(store storage.Handler[models.AttendanceRecord]) AttendanceService {
	return &attendanceServiceImpl{
		store: store,
		now:   time.Now,
	}
}

func (s *attendanceServiceImpl) GetAllRecords(ctx context.Context) ([]models.AttendanceRecord, error) {
	return s.list(ctx)
}

func (s *attendanceServiceImpl) GetRecordByID(ctx context.Context, id int64) (models.AttendanceRecord, error) {
	record, err := s.store.GetByID(ctx, id)
	if err != nil {
		return models.AttendanceRecord{}, notFound(err, entityAttendance, id, "retrieving")
	}
	return record, nil
}

func (s *attendanceServiceImpl) GetRecordsByClassroom(ctx context.Context, classroomID int64) ([]models.AttendanceRecord, error) {
	return s.list(ctx, storage.Eq{Column: "classroom_id", Value: classroomID})
}

func (s *attendanceServiceImpl) GetRecordsByStudent(ctx context.Context, studentID int64) ([]models.AttendanceRecord, error) {
	return s.list(ctx, storage.Eq{Column: "student_id", Value: studentID})
}

func (s *attendanceServiceImpl) GetRecordsByDate(ctx context.Context, date time.Time) ([]models.AttendanceRecord, error) {
	return s.list(ctx, storage.Eq{Column: "date", Value: date})
}

func (s *attendanceServiceImpl) list(ctx context.Context, conds ...storage.Condition) ([]models.AttendanceRecord, error) {
	records, err := s.store.GetAllWhere(ctx, conds...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving attendance records: %w", err)
	}
	return records, nil
}

// CreateRecord stores a record as given. A zero date means now. The student
// and classroom ids are not checked.
func (s *attendanceServiceImpl) CreateRecord(ctx context.Context, record models.AttendanceRecord) (models.AttendanceRecord, error) {
	record.ID = 0
	if record.Date.IsZero() {
		record.Date = s.now().UTC().Truncate(time.Second)
	}

	created, err := s.store.Create(ctx, record)
	if err != nil {
		return models.AttendanceRecord{}, fmt.Errorf("error creating attendance record: %w", err)
	}
	return created, nil
}

func (s *attendanceServiceImpl) DeleteRecord(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return notFound(err, entityAttendance, id, "deleting")
	}
	return nil
}
