package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teilnahme/teilnahme/internal/app/controllers"
	"github.com/teilnahme/teilnahme/internal/app/models"
	"github.com/teilnahme/teilnahme/internal/app/models/dto"
	"github.com/teilnahme/teilnahme/internal/app/routes"
	"github.com/teilnahme/teilnahme/internal/app/services"
	"github.com/teilnahme/teilnahme/internal/app/storage"
	"github.com/teilnahme/teilnahme/internal/middleware"
)

type envelope struct {
	Success bool             `json:"success"`
	Data    json.RawMessage  `json:"data"`
	Error   *dto.ErrorDetail `json:"error"`
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.UseJSONFieldNames()

	students := services.NewStudentService(storage.NewMemoryHandler[models.Student]())
	router := gin.New()
	router.Use(middleware.RequestID())
	routes.SetupRouter(router, routes.Controllers{
		Student:    controllers.NewStudentController(students),
		Subject:    controllers.NewSubjectController(services.NewSubjectService(storage.NewMemoryHandler[models.Subject]())),
		Classroom:  controllers.NewClassroomController(services.NewClassroomService(storage.NewMemoryHandler[models.Classroom](), students)),
		Attendance: controllers.NewAttendanceController(services.NewAttendanceService(storage.NewMemoryHandler[models.AttendanceRecord]())),
	}, "memory")
	return router
}

func do(t *testing.T, router http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func createStudent(t *testing.T, router http.Handler, name string, degree string, semester int) models.Student {
	t.Helper()
	rec, env := do(t, router, http.MethodPost, "/api/v1/students", map[string]any{
		"name": name, "surname": "Daw", "degree": degree, "semester": semester,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[models.Student](t, env)
}

func TestStudentRoutes(t *testing.T) {
	router := newRouter(t)

	john := createStudent(t, router, "John", "bachelor", 4)
	assert.Equal(t, int64(1), john.ID)
	assert.Equal(t, models.DegreeBachelor, john.Degree)

	t.Run("get", func(t *testing.T) {
		rec, env := do(t, router, http.MethodGet, "/api/v1/students/1", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, env.Success)
		assert.Equal(t, john, decode[models.Student](t, env))
	})

	t.Run("unknown id", func(t *testing.T) {
		rec, env := do(t, router, http.MethodGet, "/api/v1/students/99", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.False(t, env.Success)
		assert.Equal(t, dto.ErrorCodeResourceNotFound, env.Error.Code)
		assert.Equal(t, "Student with ID 99 not found", env.Error.Message)
	})

	t.Run("malformed id", func(t *testing.T) {
		rec, env := do(t, router, http.MethodGet, "/api/v1/students/abc", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, dto.ErrorCodeValidationFailed, env.Error.Code)
	})

	t.Run("semester out of range", func(t *testing.T) {
		rec, env := do(t, router, http.MethodPost, "/api/v1/students", map[string]any{
			"name": "Jane", "surname": "Doe", "degree": "Bachelor", "semester": 7,
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, dto.ErrorCodeInvalidSemester, env.Error.Code)
		assert.Equal(t, "Bachelor degree has only 6 semesters", env.Error.Message)
	})

	t.Run("short name", func(t *testing.T) {
		rec, env := do(t, router, http.MethodPost, "/api/v1/students", map[string]any{
			"name": "J", "surname": "Doe", "degree": "Master", "semester": 1,
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, dto.ErrorCodeValidationFailed, env.Error.Code)
		assert.Equal(t, "name", env.Error.Field)
	})

	t.Run("unknown degree", func(t *testing.T) {
		rec, env := do(t, router, http.MethodPost, "/api/v1/students", map[string]any{
			"name": "Jane", "surname": "Doe", "degree": "PhD", "semester": 1,
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "degree", env.Error.Field)
	})

	t.Run("missing semester", func(t *testing.T) {
		rec, env := do(t, router, http.MethodPost, "/api/v1/students", map[string]any{
			"name": "Jane", "surname": "Doe", "degree": "Master",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, dto.ErrorCodeValidationFailed, env.Error.Code)
		assert.Equal(t, "semester", env.Error.Field)
		assert.Equal(t, "semester is required", env.Error.Message)
	})

	t.Run("partial update", func(t *testing.T) {
		rec, env := do(t, router, http.MethodPut, "/api/v1/students/1", map[string]any{"semester": 5})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		updated := decode[models.Student](t, env)
		assert.Equal(t, 5, updated.Semester)
		assert.Equal(t, "Daw", updated.Surname)
	})

	t.Run("update with short name keeps the stored name", func(t *testing.T) {
		rec, env := do(t, router, http.MethodPut, "/api/v1/students/1", map[string]any{"name": "J", "semester": 6})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		updated := decode[models.Student](t, env)
		assert.Equal(t, "John", updated.Name)
		assert.Equal(t, 6, updated.Semester)
	})

	t.Run("update to invalid semester", func(t *testing.T) {
		rec, env := do(t, router, http.MethodPut, "/api/v1/students/1", map[string]any{"degree": "Master"})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, dto.ErrorCodeInvalidSemester, env.Error.Code)
	})
}

func TestStudentListFilters(t *testing.T) {
	router := newRouter(t)
	createStudent(t, router, "Anna", "Bachelor", 1)
	createStudent(t, router, "Jonas", "Bachelor", 3)
	createStudent(t, router, "Mehmet", "Master", 3)

	_, env := do(t, router, http.MethodGet, "/api/v1/students", nil)
	assert.Len(t, decode[[]models.Student](t, env), 3)

	_, env = do(t, router, http.MethodGet, "/api/v1/students?degree=Bachelor", nil)
	assert.Len(t, decode[[]models.Student](t, env), 2)

	_, env = do(t, router, http.MethodGet, "/api/v1/students?degree=bachelor&semester=3", nil)
	list := decode[[]models.Student](t, env)
	require.Len(t, list, 1)
	assert.Equal(t, "Jonas", list[0].Name)

	rec, env := do(t, router, http.MethodGet, "/api/v1/students?degree=Master&semester=5", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, dto.ErrorCodeInvalidSemester, env.Error.Code)

	rec, _ = do(t, router, http.MethodGet, "/api/v1/students?semester=3", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteStudent(t *testing.T) {
	router := newRouter(t)
	createStudent(t, router, "John", "Bachelor", 1)

	rec, _ := do(t, router, http.MethodDelete, "/api/v1/students/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = do(t, router, http.MethodDelete, "/api/v1/students/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubjectRoutes(t *testing.T) {
	router := newRouter(t)

	rec, env := do(t, router, http.MethodPost, "/api/v1/subjects", map[string]any{
		"name": "Databases", "semester": 3, "degree": "Bachelor",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	subject := decode[models.Subject](t, env)

	rec, env = do(t, router, http.MethodPost, "/api/v1/subjects", map[string]any{
		"name": "Thesis", "semester": 5, "degree": "Master",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Master degree has only 4 semesters", env.Error.Message)

	rec, env = do(t, router, http.MethodPut, "/api/v1/subjects/1", map[string]any{"name": "Advanced Databases"})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[models.Subject](t, env)
	assert.Equal(t, "Advanced Databases", updated.Name)
	assert.Equal(t, subject.Semester, updated.Semester)

	_, env = do(t, router, http.MethodGet, "/api/v1/subjects?degree=Master", nil)
	assert.Empty(t, decode[[]models.Subject](t, env))

	rec, _ = do(t, router, http.MethodDelete, "/api/v1/subjects/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestClassroomRoutes(t *testing.T) {
	router := newRouter(t)
	anna := createStudent(t, router, "Anna", "Bachelor", 1)
	jonas := createStudent(t, router, "Jonas", "Bachelor", 1)

	rec, env := do(t, router, http.MethodPost, "/api/v1/classrooms", map[string]any{
		"subject_id": 1, "students_ids": []int64{anna.ID, 42},
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Student with ID 42 not found", env.Error.Message)

	rec, env = do(t, router, http.MethodPost, "/api/v1/classrooms", map[string]any{"subject_id": 1})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	classroom := decode[models.Classroom](t, env)
	assert.Empty(t, classroom.StudentIDs)
	assert.Contains(t, rec.Body.String(), `"students_ids":[]`)

	rec, env = do(t, router, http.MethodPost, "/api/v1/classrooms/1/students/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.IDList{anna.ID}, decode[models.Classroom](t, env).StudentIDs)

	// enrolling twice changes nothing
	_, env = do(t, router, http.MethodPost, "/api/v1/classrooms/1/students/1", nil)
	assert.Equal(t, models.IDList{anna.ID}, decode[models.Classroom](t, env).StudentIDs)

	rec, env = do(t, router, http.MethodPost, "/api/v1/classrooms/1/students", map[string]any{
		"students_ids": []int64{jonas.ID},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.IDList{anna.ID, jonas.ID}, decode[models.Classroom](t, env).StudentIDs)

	rec, _ = do(t, router, http.MethodPost, "/api/v1/classrooms/1/students", map[string]any{"students_ids": []int64{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	_, env = do(t, router, http.MethodGet, "/api/v1/classrooms?student_id=2", nil)
	assert.Len(t, decode[[]models.Classroom](t, env), 1)

	_, env = do(t, router, http.MethodGet, "/api/v1/classrooms?subject_id=7", nil)
	assert.Empty(t, decode[[]models.Classroom](t, env))

	rec, _ = do(t, router, http.MethodGet, "/api/v1/classrooms?subject_id=1&student_id=1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = do(t, router, http.MethodDelete, "/api/v1/classrooms/1/students/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.IDList{jonas.ID}, decode[models.Classroom](t, env).StudentIDs)

	rec, env = do(t, router, http.MethodPut, "/api/v1/classrooms/1", map[string]any{"subject_id": 2})
	require.Equal(t, http.StatusOK, rec.Code)
	moved := decode[models.Classroom](t, env)
	assert.Equal(t, int64(2), moved.SubjectID)
	assert.Equal(t, models.IDList{jonas.ID}, moved.StudentIDs)

	rec, _ = do(t, router, http.MethodPost, "/api/v1/classrooms/9/students/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, router, http.MethodDelete, "/api/v1/classrooms/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAttendanceRoutes(t *testing.T) {
	router := newRouter(t)

	rec, env := do(t, router, http.MethodPost, "/api/v1/attendance", map[string]any{
		"student_id": 1, "classroom_id": 1, "date": "2024-10-01 10:15:00",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	record := decode[models.AttendanceRecord](t, env)
	assert.Equal(t, "2024-10-01T10:15:00Z", record.Date.Format("2006-01-02T15:04:05Z07:00"))

	rec, env = do(t, router, http.MethodPost, "/api/v1/attendance", map[string]any{"student_id": 2, "classroom_id": 1})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[models.AttendanceRecord](t, env).Date.IsZero())

	rec, _ = do(t, router, http.MethodPost, "/api/v1/attendance", map[string]any{
		"student_id": 1, "classroom_id": 1, "date": "tomorrow",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, router, http.MethodPost, "/api/v1/attendance", map[string]any{"classroom_id": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	_, env = do(t, router, http.MethodGet, "/api/v1/attendance?date=2024-10-01T10:15:00Z", nil)
	assert.Len(t, decode[[]models.AttendanceRecord](t, env), 1)

	_, env = do(t, router, http.MethodGet, "/api/v1/attendance?classroom_id=1", nil)
	assert.Len(t, decode[[]models.AttendanceRecord](t, env), 2)

	_, env = do(t, router, http.MethodGet, "/api/v1/attendance?student_id=2", nil)
	assert.Len(t, decode[[]models.AttendanceRecord](t, env), 1)

	rec, _ = do(t, router, http.MethodGet, "/api/v1/attendance?student_id=2&classroom_id=1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, router, http.MethodDelete, "/api/v1/attendance/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, env = do(t, router, http.MethodGet, "/api/v1/attendance/1", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Attendance record with ID 1 not found", env.Error.Message)
}

func TestRequestID(t *testing.T) {
	router := newRouter(t)

	rec, _ := do(t, router, http.MethodGet, "/api/v1/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	_, err := uuid.Parse(rec.Header().Get(middleware.RequestIDHeader))
	assert.NoError(t, err)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(middleware.RequestIDHeader, id)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, rec.Header().Get(middleware.RequestIDHeader))
}
