package cli

import (
	"fmt"

	ucli "github.com/urfave/cli/v2"

	"github.com/teilnahme/teilnahme/internal/app/models"
	"github.com/teilnahme/teilnahme/internal/app/models/dto"
)

func idFlag() ucli.Flag {
	return &ucli.Int64Flag{Name: "id", Usage: "entity id", Required: true}
}

func degreeFilterFlags() []ucli.Flag {
	return []ucli.Flag{
		&ucli.StringFlag{Name: "degree", Usage: "Bachelor or Master"},
		&ucli.IntFlag{Name: "semester", Usage: "semester, requires --degree"},
	}
}

// degreeFilter reads --degree/--semester; ok is false when neither is set
func degreeFilter(c *ucli.Context, entity string) (degree models.Degree, semester *int, ok bool, err error) {
	if !c.IsSet("degree") {
		if c.IsSet("semester") {
			return "", nil, false, fmt.Errorf("--semester requires --degree")
		}
		return "", nil, false, nil
	}
	degree, err = dto.ParseDegreeField(entity, c.String("degree"))
	if err != nil {
		return "", nil, false, err
	}
	if c.IsSet("semester") {
		s := c.Int("semester")
		semester = &s
	}
	return degree, semester, true, nil
}

func optionalString(c *ucli.Context, name string) *string {
	if !c.IsSet(name) {
		return nil
	}
	v := c.String(name)
	return &v
}

func optionalInt(c *ucli.Context, name string) *int {
	if !c.IsSet(name) {
		return nil
	}
	v := c.Int(name)
	return &v
}

func (a *App) studentCommands() *ucli.Command {
	return &ucli.Command{
		Name:  "students",
		Usage: "manage students",
		Subcommands: []*ucli.Command{
			{
				Name:  "list",
				Usage: "list students, optionally of one degree and semester",
				Flags: degreeFilterFlags(),
				Action: func(c *ucli.Context) error {
					degree, semester, filtered, err := degreeFilter(c, "Student")
					if err != nil {
						return err
					}
					var students []models.Student
					if filtered {
						students, err = a.Services.Student.GetStudentsInDegree(c.Context, degree, semester)
					} else {
						students, err = a.Services.Student.GetAllStudents(c.Context)
					}
					if err != nil {
						return err
					}
					return printStudents(a.Out, students...)
				},
			},
			{
				Name:  "get",
				Usage: "show one student",
				Flags: []ucli.Flag{idFlag()},
				Action: func(c *ucli.Context) error {
					student, err := a.Services.Student.GetStudentByID(c.Context, c.Int64("id"))
					if err != nil {
						return err
					}
					return printStudents(a.Out, student)
				},
			},
			{
				Name:  "add",
				Usage: "create a student",
				Flags: []ucli.Flag{
					&ucli.StringFlag{Name: "name", Required: true},
					&ucli.StringFlag{Name: "surname", Required: true},
					&ucli.StringFlag{Name: "degree", Required: true, Usage: "Bachelor or Master"},
					&ucli.IntFlag{Name: "semester", Required: true},
				},
				Action: func(c *ucli.Context) error {
					semester := c.Int("semester")
					student, err := dto.CreateStudentRequest{
						Name:     c.String("name"),
						Surname:  c.String("surname"),
						Degree:   c.String("degree"),
						Semester: &semester,
					}.ToModel()
					if err != nil {
						return err
					}
					created, err := a.Services.Student.CreateStudent(c.Context, student)
					if err != nil {
						return err
					}
					return printStudents(a.Out, created)
				},
			},
			{
				Name:  "update",
				Usage: "change fields of a student",
				Flags: []ucli.Flag{
					idFlag(),
					&ucli.StringFlag{Name: "name"},
					&ucli.StringFlag{Name: "surname"},
					&ucli.StringFlag{Name: "degree"},
					&ucli.IntFlag{Name: "semester"},
				},
				Action: func(c *ucli.Context) error {
					patch, err := dto.UpdateStudentRequest{
						Name:     optionalString(c, "name"),
						Surname:  optionalString(c, "surname"),
						Degree:   optionalString(c, "degree"),
						Semester: optionalInt(c, "semester"),
					}.ToPatch()
					if err != nil {
						return err
					}
					updated, err := a.Services.Student.UpdateStudent(c.Context, c.Int64("id"), patch)
					if err != nil {
						return err
					}
					return printStudents(a.Out, updated)
				},
			},
			{
				Name:  "delete",
				Usage: "delete a student",
				Flags: []ucli.Flag{idFlag()},
				Action: func(c *ucli.Context) error {
					id := c.Int64("id")
					if err := a.Services.Student.DeleteStudent(c.Context, id); err != nil {
						return err
					}
					fmt.Fprintf(a.Out, "Student %d deleted\n", id)
					return nil
				},
			},
		},
	}
}
