package storage

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/teilnahme/teilnahme/internal/app/models"
	"github.com/teilnahme/teilnahme/internal/config"
	"github.com/teilnahme/teilnahme/internal/db"
)

// Backend holds the connection for the configured storage kind
type Backend struct {
	Kind     string
	Postgres *db.PostgresDB
	Gorm     *gorm.DB
	CSVDir   string
}

// Open connects to the backend selected by cfg
func Open(cfg *config.Config) (*Backend, error) {
	b := &Backend{Kind: cfg.Storage.Backend, CSVDir: cfg.Storage.CSVDir}

	switch b.Kind {
	case config.BackendPostgres:
		database, err := db.NewPostgresDB(cfg)
		if err != nil {
			return nil, err
		}
		b.Postgres = database
	case config.BackendGorm:
		gdb, err := db.NewGormDB(cfg)
		if err != nil {
			return nil, err
		}
		b.Gorm = gdb
	case config.BackendMemory, config.BackendCSV:
	default:
		return nil, fmt.Errorf("unknown storage backend %q", b.Kind)
	}

	return b, nil
}

// For returns a handler for T on the backend
func For[T models.Entity[T]](b *Backend) (Handler[T], error) {
	switch b.Kind {
	case config.BackendMemory:
		return NewMemoryHandler[T](), nil
	case config.BackendCSV:
		h, err := NewCSVHandler[T](b.CSVDir)
		if err != nil {
			return nil, err
		}
		return h, nil
	case config.BackendPostgres:
		if b.Postgres == nil {
			return nil, fmt.Errorf("postgres backend is not connected")
		}
		return NewPostgresHandler[T](b.Postgres), nil
	case config.BackendGorm:
		if b.Gorm == nil {
			return nil, fmt.Errorf("gorm backend is not connected")
		}
		return NewGormHandler[T](b.Gorm), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", b.Kind)
	}
}

// Close releases the backend connection, if any
func (b *Backend) Close() {
	if b.Postgres != nil {
		b.Postgres.Close()
	}
	if b.Gorm != nil {
		db.CloseGorm(b.Gorm)
	}
}
