// Package cli is the command line adapter over the entity services.
package cli

import (
	"context"
	"io"
	"os"

	ucli "github.com/urfave/cli/v2"

	"github.com/teilnahme/teilnahme/internal/app/storage"
	"github.com/teilnahme/teilnahme/internal/bootstrap"
	"github.com/teilnahme/teilnahme/internal/config"
)

// App runs the teilnahme command line
type App struct {
	Out io.Writer
	Err io.Writer
	// Services, when set, is used instead of opening the configured storage
	Services *bootstrap.Services

	backend *storage.Backend
}

// New creates an App writing tables to out and diagnostics to errOut
func New(out, errOut io.Writer) *App {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &App{Out: out, Err: errOut}
}

// Run parses args (args[0] is the program name) and executes the command
func (a *App) Run(ctx context.Context, args []string) error {
	return a.command().RunContext(ctx, args)
}

func (a *App) command() *ucli.App {
	return &ucli.App{
		Name:      "teilnahme",
		Usage:     "manage students, subjects, classrooms and attendance",
		Writer:    a.Out,
		ErrWriter: a.Err,
		Flags: []ucli.Flag{
			&ucli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the YAML config file",
				Value:   config.DefaultPath,
				EnvVars: []string{"TEILNAHME_CONFIG"},
			},
		},
		Before: a.open,
		After:  a.close,
		Commands: []*ucli.Command{
			a.studentCommands(),
			a.subjectCommands(),
			a.classroomCommands(),
			a.attendanceCommands(),
		},
	}
}

// open builds the services from config unless they were injected
func (a *App) open(c *ucli.Context) error {
	if a.Services != nil {
		return nil
	}

	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(c.String("config"), a.Err)
	if err != nil {
		return err
	}
	backend, err := bootstrap.SetupStorage(c.Context, cfg, lgr)
	if err != nil {
		return err
	}
	svc, err := bootstrap.BuildServices(backend)
	if err != nil {
		backend.Close()
		return err
	}
	bootstrap.SeedIfEnabled(c.Context, cfg, svc, lgr)

	a.backend = backend
	a.Services = svc
	return nil
}

func (a *App) close(*ucli.Context) error {
	if a.backend != nil {
		a.backend.Close()
		a.backend = nil
	}
	return nil
}
