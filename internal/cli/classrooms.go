package cli

import (
	"fmt"

	ucli "github.com/urfave/cli/v2"

	"github.com/teilnahme/teilnahme/internal/app/models"
)

func (a *App) classroomCommands() *ucli.Command {
	return &ucli.Command{
		Name:  "classrooms",
		Usage: "manage classrooms and their rosters",
		Subcommands: []*ucli.Command{
			{
				Name:  "list",
				Usage: "list classrooms, optionally of one subject or one student",
				Flags: []ucli.Flag{
					&ucli.Int64Flag{Name: "subject-id"},
					&ucli.Int64Flag{Name: "student-id"},
				},
				Action: func(c *ucli.Context) error {
					var (
						classrooms []models.Classroom
						err        error
					)
					switch {
					case c.IsSet("subject-id") && c.IsSet("student-id"):
						return fmt.Errorf("--subject-id and --student-id cannot be combined")
					case c.IsSet("subject-id"):
						classrooms, err = a.Services.Classroom.GetClassroomsForSubject(c.Context, c.Int64("subject-id"))
					case c.IsSet("student-id"):
						classrooms, err = a.Services.Classroom.GetClassroomsWithStudent(c.Context, c.Int64("student-id"))
					default:
						classrooms, err = a.Services.Classroom.GetAllClassrooms(c.Context)
					}
					if err != nil {
						return err
					}
					return printClassrooms(a.Out, classrooms...)
				},
			},
			{
				Name:  "get",
				Usage: "show one classroom",
				Flags: []ucli.Flag{idFlag()},
				Action: func(c *ucli.Context) error {
					classroom, err := a.Services.Classroom.GetClassroomByID(c.Context, c.Int64("id"))
					if err != nil {
						return err
					}
					return printClassrooms(a.Out, classroom)
				},
			},
			{
				Name:  "add",
				Usage: "create a classroom",
				Flags: []ucli.Flag{
					&ucli.Int64Flag{Name: "subject-id", Required: true},
					&ucli.Int64SliceFlag{Name: "student-id", Usage: "student id, repeatable"},
				},
				Action: func(c *ucli.Context) error {
					created, err := a.Services.Classroom.CreateClassroom(c.Context, models.Classroom{
						SubjectID:  c.Int64("subject-id"),
						StudentIDs: c.Int64Slice("student-id"),
					})
					if err != nil {
						return err
					}
					return printClassrooms(a.Out, created)
				},
			},
			{
				Name:  "update",
				Usage: "change the subject of a classroom or replace its roster",
				Flags: []ucli.Flag{
					idFlag(),
					&ucli.Int64Flag{Name: "subject-id"},
					&ucli.Int64SliceFlag{Name: "student-id", Usage: "student id, repeatable"},
				},
				Action: func(c *ucli.Context) error {
					var patch models.ClassroomPatch
					if c.IsSet("subject-id") {
						subjectID := c.Int64("subject-id")
						patch.SubjectID = &subjectID
					}
					if c.IsSet("student-id") {
						roster := c.Int64Slice("student-id")
						patch.StudentIDs = &roster
					}
					updated, err := a.Services.Classroom.UpdateClassroom(c.Context, c.Int64("id"), patch)
					if err != nil {
						return err
					}
					return printClassrooms(a.Out, updated)
				},
			},
			{
				Name:  "delete",
				Usage: "delete a classroom",
				Flags: []ucli.Flag{idFlag()},
				Action: func(c *ucli.Context) error {
					id := c.Int64("id")
					if err := a.Services.Classroom.DeleteClassroom(c.Context, id); err != nil {
						return err
					}
					fmt.Fprintf(a.Out, "Classroom %d deleted\n", id)
					return nil
				},
			},
			{
				Name:  "add-student",
				Usage: "enroll one or more students",
				Flags: []ucli.Flag{
					idFlag(),
					&ucli.Int64SliceFlag{Name: "student-id", Usage: "student id, repeatable", Required: true},
				},
				Action: func(c *ucli.Context) error {
					ids := c.Int64Slice("student-id")
					var (
						classroom models.Classroom
						err       error
					)
					if len(ids) == 1 {
						classroom, err = a.Services.Classroom.AddStudentToClassroom(c.Context, c.Int64("id"), ids[0])
					} else {
						classroom, err = a.Services.Classroom.AddStudentsToClassroom(c.Context, c.Int64("id"), ids)
					}
					if err != nil {
						return err
					}
					return printClassrooms(a.Out, classroom)
				},
			},
			{
				Name:  "remove-student",
				Usage: "drop a student from the roster",
				Flags: []ucli.Flag{
					idFlag(),
					&ucli.Int64Flag{Name: "student-id", Required: true},
				},
				Action: func(c *ucli.Context) error {
					classroom, err := a.Services.Classroom.RemoveStudentFromClassroom(c.Context, c.Int64("id"), c.Int64("student-id"))
					if err != nil {
						return err
					}
					return printClassrooms(a.Out, classroom)
				},
			},
		},
	}
}
