package bootstrap

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/teilnahme/teilnahme/internal/app/controllers"
	appMigrations "github.com/teilnahme/teilnahme/internal/app/migrations"
	"github.com/teilnahme/teilnahme/internal/app/models"
	appRoutes "github.com/teilnahme/teilnahme/internal/app/routes"
	appServices "github.com/teilnahme/teilnahme/internal/app/services"
	"github.com/teilnahme/teilnahme/internal/app/storage"
	"github.com/teilnahme/teilnahme/internal/config"
	appMiddleware "github.com/teilnahme/teilnahme/internal/middleware"
	"github.com/teilnahme/teilnahme/internal/pkg/logger"
	"github.com/teilnahme/teilnahme/internal/seed"
)

// Services holds the entity services shared by the HTTP and CLI adapters
type Services struct {
	Student    appServices.StudentService
	Subject    appServices.SubjectService
	Classroom  appServices.ClassroomService
	Attendance appServices.AttendanceService
}

// Dependencies holds all the application dependencies
type Dependencies struct {
	Services             *Services
	StudentController    *appControllers.StudentController
	SubjectController    *appControllers.SubjectController
	ClassroomController  *appControllers.ClassroomController
	AttendanceController *appControllers.AttendanceController
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// Logs go to out; nil means stdout.
func LoadConfigAndSetupLogger(configPath string, out io.Writer) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = config.DefaultPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
		Output: out,
	})

	lgr := log.Logger
	lgr.Debug().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStorage opens the configured backend and, for database backends,
// applies the embedded schema migrations.
func SetupStorage(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*storage.Backend, error) {
	lgr.Info().Str("backend", cfg.Storage.Backend).Msg("Opening storage backend...")
	backend, err := storage.Open(cfg)
	if err != nil {
		lgr.Error().Err(err).Str("backend", cfg.Storage.Backend).Msg("Failed to open storage backend")
		return nil, err
	}

	var migrator *appMigrations.Migrator
	switch {
	case backend.Postgres != nil:
		migrator = appMigrations.NewPgxMigrator(backend.Postgres.Pool)
	case backend.Gorm != nil:
		migrator = appMigrations.NewGormMigrator(backend.Gorm)
	default:
		return backend, nil
	}

	lgr.Info().Msg("Running database migrations...")
	if err := migrator.Migrate(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		backend.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return backend, nil
}

// BuildServices creates one storage handler per entity and the services on top of them
func BuildServices(backend *storage.Backend) (*Services, error) {
	students, err := storage.For[models.Student](backend)
	if err != nil {
		return nil, fmt.Errorf("failed to create student storage: %w", err)
	}
	subjects, err := storage.For[models.Subject](backend)
	if err != nil {
		return nil, fmt.Errorf("failed to create subject storage: %w", err)
	}
	classrooms, err := storage.For[models.Classroom](backend)
	if err != nil {
		return nil, fmt.Errorf("failed to create classroom storage: %w", err)
	}
	records, err := storage.For[models.AttendanceRecord](backend)
	if err != nil {
		return nil, fmt.Errorf("failed to create attendance storage: %w", err)
	}

	studentService := appServices.NewStudentService(students)
	return &Services{
		Student:    studentService,
		Subject:    appServices.NewSubjectService(subjects),
		Classroom:  appServices.NewClassroomService(classrooms, studentService),
		Attendance: appServices.NewAttendanceService(records),
	}, nil
}

// SeedIfEnabled inserts the demo data set when seeding is switched on
func SeedIfEnabled(ctx context.Context, cfg *config.Config, svc *Services, lgr zerolog.Logger) {
	if !cfg.Seed.Enabled {
		return
	}
	if err := seed.CreateDefaultData(ctx, svc.Subject, svc.Student, svc.Classroom, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}
}

// BuildDependencies initializes services and controllers.
func BuildDependencies(backend *storage.Backend, lgr zerolog.Logger) (*Dependencies, error) {
	svc, err := BuildServices(backend)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to build services")
		return nil, err
	}
	return NewDependencies(svc, lgr), nil
}

// NewDependencies wires controllers over already built services
func NewDependencies(svc *Services, lgr zerolog.Logger) *Dependencies {
	return &Dependencies{
		Services:             svc,
		StudentController:    appControllers.NewStudentController(svc.Student),
		SubjectController:    appControllers.NewSubjectController(svc.Subject),
		ClassroomController:  appControllers.NewClassroomController(svc.Classroom),
		AttendanceController: appControllers.NewAttendanceController(svc.Attendance),
		Logger:               lgr,
	}
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	switch strings.ToLower(cfg.Server.Mode) {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	lgr.Debug().Str("mode", gin.Mode()).Msg("Gin mode set")

	appMiddleware.UseJSONFieldNames()

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestID(), appMiddleware.RequestLogger())

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, appRoutes.Controllers{
		Student:    deps.StudentController,
		Subject:    deps.SubjectController,
		Classroom:  deps.ClassroomController,
		Attendance: deps.AttendanceController,
	}, cfg.Storage.Backend)

	return router
}
