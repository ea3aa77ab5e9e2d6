package models

import (
	"fmt"
	"strconv"
	"strings"
)

// ClassroomStudents is the roster relation between classrooms and students
var ClassroomStudents = Relation{
	Field:        "students",
	JoinTable:    "classroom_students",
	OwnerColumn:  "classroom_id",
	MemberColumn: "student_id",
}

// IDList is a list of entity ids. It is written to CSV as "1;2;3".
type IDList []int64

// MarshalCSV implements gocsv.TypeMarshaller
func (l IDList) MarshalCSV() (string, error) {
	parts := make([]string, len(l))
	for i, id := range l {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ";"), nil
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller
func (l *IDList) UnmarshalCSV(value string) error {
	ids := IDList{}
	for _, part := range strings.Split(value, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q in list: %w", part, err)
		}
		ids = append(ids, id)
	}
	*l = ids
	return nil
}

// Contains reports whether id is in the list
func (l IDList) Contains(id int64) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Classroom is a group of students attending one subject
type Classroom struct {
	ID         int64  `json:"id" db:"id" csv:"id" gorm:"primaryKey" example:"1"`
	SubjectID  int64  `json:"subject_id" db:"subject_id" csv:"subject_id" example:"1"`
	StudentIDs IDList `json:"students_ids" db:"-" csv:"students_ids" gorm:"-" swaggertype:"array,integer"`
}

func (Classroom) TableName() string { return "classrooms" }

func (c Classroom) Identity() int64 { return c.ID }

func (c Classroom) WithIdentity(id int64) Classroom {
	c.ID = id
	return c
}

func (c Classroom) Overlay(base Classroom) Classroom {
	if c.SubjectID != 0 {
		base.SubjectID = c.SubjectID
	}
	if c.StudentIDs != nil {
		base.StudentIDs = append(IDList{}, c.StudentIDs...)
	}
	return base
}

func (c Classroom) Columns() map[string]any {
	return map[string]any{
		"subject_id": c.SubjectID,
	}
}

func (c Classroom) Roster() (Relation, []int64) {
	return ClassroomStudents, c.StudentIDs
}

func (c Classroom) WithRoster(ids []int64) Classroom {
	c.StudentIDs = append(IDList{}, ids...)
	return c
}

// ClassroomPatch carries the fields of a classroom update; nil fields are kept
type ClassroomPatch struct {
	SubjectID  *int64
	StudentIDs *[]int64
}
