package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDegree(t *testing.T) {
	d, err := ParseDegree("bachelor")
	require.NoError(t, err)
	assert.Equal(t, DegreeBachelor, d)

	d, err = ParseDegree(" Master ")
	require.NoError(t, err)
	assert.Equal(t, DegreeMaster, d)

	_, err = ParseDegree("phd")
	assert.Error(t, err)
}

func TestStudentOverlayKeepsUnsetFields(t *testing.T) {
	base := Student{ID: 3, Name: "John", Surname: "Daw", Degree: DegreeBachelor, Semester: 2}

	got := Student{Name: "Jane"}.Overlay(base)

	assert.Equal(t, Student{ID: 3, Name: "Jane", Surname: "Daw", Degree: DegreeBachelor, Semester: 2}, got)
}

func TestClassroomOverlayRoster(t *testing.T) {
	base := Classroom{ID: 1, SubjectID: 2, StudentIDs: IDList{1, 2}}

	assert.Equal(t, IDList{1, 2}, Classroom{SubjectID: 5}.Overlay(base).StudentIDs)
	assert.Equal(t, IDList{}, Classroom{StudentIDs: IDList{}}.Overlay(base).StudentIDs)
	assert.Equal(t, int64(2), Classroom{StudentIDs: IDList{7}}.Overlay(base).SubjectID)
}

func TestAttendanceOverlayDate(t *testing.T) {
	when := time.Date(2024, 10, 1, 10, 0, 0, 0, time.UTC)
	base := AttendanceRecord{ID: 1, StudentID: 1, ClassroomID: 1, Date: when}

	assert.Equal(t, when, AttendanceRecord{ClassroomID: 2}.Overlay(base).Date)
	assert.Equal(t, int64(2), AttendanceRecord{ClassroomID: 2}.Overlay(base).ClassroomID)
}

func TestIDListCSV(t *testing.T) {
	s, err := IDList{3, 1, 2}.MarshalCSV()
	require.NoError(t, err)
	assert.Equal(t, "3;1;2", s)

	var l IDList
	require.NoError(t, l.UnmarshalCSV("3;1;2"))
	assert.Equal(t, IDList{3, 1, 2}, l)

	require.NoError(t, l.UnmarshalCSV(""))
	assert.Equal(t, IDList{}, l)

	assert.Error(t, l.UnmarshalCSV("1;x"))
	assert.True(t, IDList{4, 5}.Contains(5))
}
