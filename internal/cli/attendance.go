package cli

import (
	"fmt"

	ucli "github.com/urfave/cli/v2"

	"github.com/teilnahme/teilnahme/internal/app/models"
	"github.com/teilnahme/teilnahme/internal/pkg/helpers"
)

func (a *App) attendanceCommands() *ucli.Command {
	return &ucli.Command{
		Name:  "attendance",
		Usage: "record and query attendance",
		Subcommands: []*ucli.Command{
			{
				Name:  "list",
				Usage: "list records of a classroom, a student or an exact date",
				Flags: []ucli.Flag{
					&ucli.Int64Flag{Name: "classroom-id"},
					&ucli.Int64Flag{Name: "student-id"},
					&ucli.StringFlag{Name: "date", Usage: "YYYY-MM-DD HH:MM:SS"},
				},
				Action: func(c *ucli.Context) error {
					set := 0
					for _, name := range []string{"classroom-id", "student-id", "date"} {
						if c.IsSet(name) {
							set++
						}
					}
					if set > 1 {
						return fmt.Errorf("only one of --classroom-id, --student-id and --date can be given")
					}

					var (
						records []models.AttendanceRecord
						err     error
					)
					switch {
					case c.IsSet("classroom-id"):
						records, err = a.Services.Attendance.GetRecordsByClassroom(c.Context, c.Int64("classroom-id"))
					case c.IsSet("student-id"):
						records, err = a.Services.Attendance.GetRecordsByStudent(c.Context, c.Int64("student-id"))
					case c.IsSet("date"):
						date, parseErr := helpers.ParseTimestamp(c.String("date"))
						if parseErr != nil {
							return parseErr
						}
						records, err = a.Services.Attendance.GetRecordsByDate(c.Context, date)
					default:
						records, err = a.Services.Attendance.GetAllRecords(c.Context)
					}
					if err != nil {
						return err
					}
					return printRecords(a.Out, records...)
				},
			},
			{
				Name:  "get",
				Usage: "show one record",
				Flags: []ucli.Flag{idFlag()},
				Action: func(c *ucli.Context) error {
					record, err := a.Services.Attendance.GetRecordByID(c.Context, c.Int64("id"))
					if err != nil {
						return err
					}
					return printRecords(a.Out, record)
				},
			},
			{
				Name:  "add",
				Usage: "mark a student present; the date defaults to now",
				Flags: []ucli.Flag{
					&ucli.Int64Flag{Name: "classroom-id", Required: true},
					&ucli.Int64Flag{Name: "student-id", Required: true},
					&ucli.StringFlag{Name: "date", Usage: "YYYY-MM-DD HH:MM:SS"},
				},
				Action: func(c *ucli.Context) error {
					record := models.AttendanceRecord{
						StudentID:   c.Int64("student-id"),
						ClassroomID: c.Int64("classroom-id"),
					}
					if c.IsSet("date") {
						date, err := helpers.ParseTimestamp(c.String("date"))
						if err != nil {
							return err
						}
						record.Date = date
					}
					created, err := a.Services.Attendance.CreateRecord(c.Context, record)
					if err != nil {
						return err
					}
					return printRecords(a.Out, created)
				},
			},
			{
				Name:  "delete",
				Usage: "delete a record",
				Flags: []ucli.Flag{idFlag()},
				Action: func(c *ucli.Context) error {
					id := c.Int64("id")
					if err := a.Services.Attendance.DeleteRecord(c.Context, id); err != nil {
						return err
					}
					fmt.Fprintf(a.Out, "Attendance record %d deleted\n", id)
					return nil
				},
			},
		},
	}
}
