package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teilnahme/teilnahme/internal/app/models"
	"github.com/teilnahme/teilnahme/internal/app/services"
	"github.com/teilnahme/teilnahme/internal/app/storage"
	"github.com/teilnahme/teilnahme/internal/bootstrap"
	"github.com/teilnahme/teilnahme/internal/pkg/apperrors"
)

func memoryServices() *bootstrap.Services {
	students := services.NewStudentService(storage.NewMemoryHandler[models.Student]())
	return &bootstrap.Services{
		Student:    students,
		Subject:    services.NewSubjectService(storage.NewMemoryHandler[models.Subject]()),
		Classroom:  services.NewClassroomService(storage.NewMemoryHandler[models.Classroom](), students),
		Attendance: services.NewAttendanceService(storage.NewMemoryHandler[models.AttendanceRecord]()),
	}
}

type harness struct {
	svc *bootstrap.Services
}

// run executes one command line and returns the table rows it printed, header first
func (h harness) run(t *testing.T, args ...string) ([][]string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := New(&out, &errOut)
	app.Services = h.svc

	err := app.Run(context.Background(), append([]string{"teilnahme"}, args...))

	var rows [][]string
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if line != "" {
			rows = append(rows, strings.Fields(line))
		}
	}
	return rows, err
}

func (h harness) mustRun(t *testing.T, args ...string) [][]string {
	t.Helper()
	rows, err := h.run(t, args...)
	require.NoError(t, err)
	return rows
}

func TestStudentCommands(t *testing.T) {
	h := harness{svc: memoryServices()}

	rows := h.mustRun(t, "students", "add", "--name", "John", "--surname", "Daw", "--degree", "bachelor", "--semester", "4")
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"ID", "NAME", "SURNAME", "DEGREE", "SEMESTER"}, rows[0])
	assert.Equal(t, []string{"1", "John", "Daw", "Bachelor", "4"}, rows[1])

	h.mustRun(t, "students", "add", "--name", "Mehmet", "--surname", "Yilmaz", "--degree", "Master", "--semester", "2")

	rows = h.mustRun(t, "students", "list")
	assert.Len(t, rows, 3)

	rows = h.mustRun(t, "students", "list", "--degree", "Master")
	require.Len(t, rows, 2)
	assert.Equal(t, "Mehmet", rows[1][1])

	rows = h.mustRun(t, "students", "update", "--id", "1", "--semester", "5")
	assert.Equal(t, []string{"1", "John", "Daw", "Bachelor", "5"}, rows[1])

	rows = h.mustRun(t, "students", "update", "--id", "1", "--name", "J", "--surname", "Dawson")
	assert.Equal(t, []string{"1", "John", "Dawson", "Bachelor", "5"}, rows[1])

	rows = h.mustRun(t, "students", "get", "--id", "1")
	assert.Equal(t, "5", rows[1][4])

	rows = h.mustRun(t, "students", "delete", "--id", "2")
	assert.Equal(t, []string{"Student", "2", "deleted"}, rows[0])
}

func TestStudentCommandErrors(t *testing.T) {
	h := harness{svc: memoryServices()}

	_, err := h.run(t, "students", "add", "--name", "John", "--surname", "Daw", "--degree", "Bachelor", "--semester", "7")
	var semErr *apperrors.SemesterError
	require.True(t, errors.As(err, &semErr), "got %v", err)
	assert.Equal(t, "Bachelor degree has only 6 semesters", semErr.Error())

	_, err = h.run(t, "students", "get", "--id", "9")
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))

	_, err = h.run(t, "students", "list", "--semester", "2")
	assert.Error(t, err)

	_, err = h.run(t, "students", "add", "--name", "John")
	assert.Error(t, err, "missing required flags")
}

func TestSubjectCommands(t *testing.T) {
	h := harness{svc: memoryServices()}

	rows := h.mustRun(t, "subjects", "add", "--name", "Databases", "--degree", "Bachelor", "--semester", "3")
	assert.Equal(t, []string{"1", "Databases", "Bachelor", "3"}, rows[1])

	_, err := h.run(t, "subjects", "add", "--name", "X", "--degree", "Bachelor", "--semester", "3")
	var valErr *apperrors.ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "Subject", valErr.Entity)

	rows = h.mustRun(t, "subjects", "list", "--degree", "Bachelor", "--semester", "3")
	assert.Len(t, rows, 2)

	rows = h.mustRun(t, "subjects", "update", "--id", "1", "--name", "Databases II")
	assert.Equal(t, []string{"1", "Databases", "II", "Bachelor", "3"}, rows[1])

	h.mustRun(t, "subjects", "delete", "--id", "1")
	rows = h.mustRun(t, "subjects", "list")
	assert.Len(t, rows, 1)
}

func TestClassroomCommands(t *testing.T) {
	h := harness{svc: memoryServices()}
	h.mustRun(t, "students", "add", "--name", "Anna", "--surname", "Schmidt", "--degree", "Bachelor", "--semester", "1")
	h.mustRun(t, "students", "add", "--name", "Jonas", "--surname", "Weber", "--degree", "Bachelor", "--semester", "1")
	h.mustRun(t, "students", "add", "--name", "Lea", "--surname", "Fischer", "--degree", "Bachelor", "--semester", "1")

	rows := h.mustRun(t, "classrooms", "add", "--subject-id", "1", "--student-id", "1")
	assert.Equal(t, []string{"ID", "SUBJECT", "STUDENTS"}, rows[0])
	assert.Equal(t, []string{"1", "1", "1"}, rows[1])

	_, err := h.run(t, "classrooms", "add", "--subject-id", "1", "--student-id", "99")
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))

	rows = h.mustRun(t, "classrooms", "add-student", "--id", "1", "--student-id", "2", "--student-id", "3")
	assert.Equal(t, []string{"1", "1", "1,2,3"}, rows[1])

	rows = h.mustRun(t, "classrooms", "remove-student", "--id", "1", "--student-id", "2")
	assert.Equal(t, []string{"1", "1", "1,3"}, rows[1])

	rows = h.mustRun(t, "classrooms", "list", "--student-id", "3")
	assert.Len(t, rows, 2)
	rows = h.mustRun(t, "classrooms", "list", "--student-id", "2")
	assert.Len(t, rows, 1)

	rows = h.mustRun(t, "classrooms", "update", "--id", "1", "--subject-id", "4")
	assert.Equal(t, []string{"1", "4", "1,3"}, rows[1])

	rows = h.mustRun(t, "classrooms", "update", "--id", "1", "--student-id", "2")
	assert.Equal(t, []string{"1", "4", "2"}, rows[1])

	rows = h.mustRun(t, "classrooms", "list", "--subject-id", "4")
	assert.Len(t, rows, 2)

	_, err = h.run(t, "classrooms", "list", "--subject-id", "4", "--student-id", "2")
	assert.Error(t, err)

	h.mustRun(t, "classrooms", "delete", "--id", "1")
	_, err = h.run(t, "classrooms", "get", "--id", "1")
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))
}

func TestAttendanceCommands(t *testing.T) {
	h := harness{svc: memoryServices()}

	rows := h.mustRun(t, "attendance", "add", "--classroom-id", "1", "--student-id", "2", "--date", "2024-10-01 10:15:00")
	assert.Equal(t, []string{"ID", "STUDENT", "CLASSROOM", "DATE"}, rows[0])
	assert.Equal(t, []string{"1", "2", "1", "2024-10-01", "10:15:00"}, rows[1])

	h.mustRun(t, "attendance", "add", "--classroom-id", "1", "--student-id", "3")

	rows = h.mustRun(t, "attendance", "list", "--date", "2024-10-01 10:15:00")
	assert.Len(t, rows, 2)

	rows = h.mustRun(t, "attendance", "list", "--classroom-id", "1")
	assert.Len(t, rows, 3)

	rows = h.mustRun(t, "attendance", "list", "--student-id", "3")
	assert.Len(t, rows, 2)

	_, err := h.run(t, "attendance", "list", "--student-id", "3", "--classroom-id", "1")
	assert.Error(t, err)

	_, err = h.run(t, "attendance", "add", "--classroom-id", "1", "--student-id", "3", "--date", "someday")
	assert.Error(t, err)

	h.mustRun(t, "attendance", "delete", "--id", "1")
	_, err = h.run(t, "attendance", "get", "--id", "1")
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))
}

func TestCSVBackendFromConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("storage:\n  backend: csv\n  csv_dir: "+filepath.Join(dir, "data")+"\nlogging:\n  level: error\n"), 0o600))

	run := func(args ...string) string {
		var out, errOut bytes.Buffer
		err := New(&out, &errOut).Run(context.Background(), append([]string{"teilnahme", "--config", cfgPath}, args...))
		require.NoError(t, err, errOut.String())
		return out.String()
	}

	run("students", "add", "--name", "John", "--surname", "Daw", "--degree", "Bachelor", "--semester", "2")
	out := run("students", "list")
	assert.Contains(t, out, "John")

	_, err := os.Stat(filepath.Join(dir, "data", "students.csv"))
	assert.NoError(t, err)
}
