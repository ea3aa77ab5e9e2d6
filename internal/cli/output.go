package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/teilnahme/teilnahme/internal/app/models"
	"github.com/teilnahme/teilnahme/internal/pkg/helpers"
)

func newTable(w io.Writer, header ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	return tw
}

func printStudents(w io.Writer, students ...models.Student) error {
	tw := newTable(w, "ID", "NAME", "SURNAME", "DEGREE", "SEMESTER")
	for _, s := range students {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n", s.ID, s.Name, s.Surname, s.Degree, s.Semester)
	}
	return tw.Flush()
}

func printSubjects(w io.Writer, subjects ...models.Subject) error {
	tw := newTable(w, "ID", "NAME", "DEGREE", "SEMESTER")
	for _, s := range subjects {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", s.ID, s.Name, s.Degree, s.Semester)
	}
	return tw.Flush()
}

func printClassrooms(w io.Writer, classrooms ...models.Classroom) error {
	tw := newTable(w, "ID", "SUBJECT", "STUDENTS")
	for _, c := range classrooms {
		ids := make([]string, len(c.StudentIDs))
		for i, id := range c.StudentIDs {
			ids[i] = strconv.FormatInt(id, 10)
		}
		students := strings.Join(ids, ",")
		if students == "" {
			students = "-"
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\n", c.ID, c.SubjectID, students)
	}
	return tw.Flush()
}

func printRecords(w io.Writer, records ...models.AttendanceRecord) error {
	tw := newTable(w, "ID", "STUDENT", "CLASSROOM", "DATE")
	for _, r := range records {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%s\n", r.ID, r.StudentID, r.ClassroomID, helpers.FormatTimestamp(r.Date))
	}
	return tw.Flush()
}
