package cli

import (
	"fmt"

	ucli "github.com/urfave/cli/v2"

	"github.com/teilnahme/teilnahme/internal/app/models"
	"github.com/teilnahme/teilnahme/internal/app/models/dto"
)

func (a *App) subjectCommands() *ucli.Command {
	return &ucli.Command{
		Name:  "subjects",
		Usage: "manage subjects",
		Subcommands: []*ucli.Command{
			{
				Name:  "list",
				Usage: "list subjects, optionally of one degree and semester",
				Flags: degreeFilterFlags(),
				Action: func(c *ucli.Context) error {
					degree, semester, filtered, err := degreeFilter(c, "Subject")
					if err != nil {
						return err
					}
					var subjects []models.Subject
					if filtered {
						subjects, err = a.Services.Subject.GetSubjectsInDegree(c.Context, degree, semester)
					} else {
						subjects, err = a.Services.Subject.GetAllSubjects(c.Context)
					}
					if err != nil {
						return err
					}
					return printSubjects(a.Out, subjects...)
				},
			},
			{
				Name:  "get",
				Usage: "show one subject",
				Flags: []ucli.Flag{idFlag()},
				Action: func(c *ucli.Context) error {
					subject, err := a.Services.Subject.GetSubjectByID(c.Context, c.Int64("id"))
					if err != nil {
						return err
					}
					return printSubjects(a.Out, subject)
				},
			},
			{
				Name:  "add",
				Usage: "create a subject",
				Flags: []ucli.Flag{
					&ucli.StringFlag{Name: "name", Required: true},
					&ucli.StringFlag{Name: "degree", Required: true, Usage: "Bachelor or Master"},
					&ucli.IntFlag{Name: "semester", Required: true},
				},
				Action: func(c *ucli.Context) error {
					semester := c.Int("semester")
					subject, err := dto.CreateSubjectRequest{
						Name:     c.String("name"),
						Semester: &semester,
						Degree:   c.String("degree"),
					}.ToModel()
					if err != nil {
						return err
					}
					created, err := a.Services.Subject.CreateSubject(c.Context, subject)
					if err != nil {
						return err
					}
					return printSubjects(a.Out, created)
				},
			},
			{
				Name:  "update",
				Usage: "change fields of a subject",
				Flags: []ucli.Flag{
					idFlag(),
					&ucli.StringFlag{Name: "name"},
					&ucli.StringFlag{Name: "degree"},
					&ucli.IntFlag{Name: "semester"},
				},
				Action: func(c *ucli.Context) error {
					patch, err := dto.UpdateSubjectRequest{
						Name:     optionalString(c, "name"),
						Semester: optionalInt(c, "semester"),
						Degree:   optionalString(c, "degree"),
					}.ToPatch()
					if err != nil {
						return err
					}
					updated, err := a.Services.Subject.UpdateSubject(c.Context, c.Int64("id"), patch)
					if err != nil {
						return err
					}
					return printSubjects(a.Out, updated)
				},
			},
			{
				Name:  "delete",
				Usage: "delete a subject",
				Flags: []ucli.Flag{idFlag()},
				Action: func(c *ucli.Context) error {
					id := c.Int64("id")
					if err := a.Services.Subject.DeleteSubject(c.Context, id); err != nil {
						return err
					}
					fmt.Fprintf(a.Out, "Subject %d deleted\n", id)
					return nil
				},
			},
		},
	}
}
