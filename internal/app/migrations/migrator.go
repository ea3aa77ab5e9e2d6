package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/gorm"

	"github.com/teilnahme/teilnahme/internal/pkg/logger"
)

//go:embed sql/*.sql
var schemaFS embed.FS

// Runner executes migration statements against a database
type Runner interface {
	Exec(ctx context.Context, sql string, args ...any) error
	Exists(ctx context.Context, query string, args ...any) (bool, error)
	// InTx runs fn with a Runner bound to a single transaction
	InTx(ctx context.Context, fn func(Runner) error) error
}

// Migrator manages database migrations
type Migrator struct {
	db Runner
}

// NewMigrator creates a new migrator
func NewMigrator(db Runner) *Migrator {
	return &Migrator{
		db: db,
	}
}

// NewPgxMigrator creates a migrator over a pgx pool
func NewPgxMigrator(pool *pgxpool.Pool) *Migrator {
	return NewMigrator(&pgxRunner{pool: pool})
}

// NewGormMigrator creates a migrator over a GORM session
func NewGormMigrator(gdb *gorm.DB) *Migrator {
	return NewMigrator(&gormRunner{db: gdb})
}

// ensureMigrationTableExists creates the migration tracking table if it doesn't exist
func (m *Migrator) ensureMigrationTableExists(ctx context.Context) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	if err := m.db.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}
	return nil
}

// isMigrationApplied checks if a specific migration has already been applied
func (m *Migrator) isMigrationApplied(ctx context.Context, version string) (bool, error) {
	exists, err := m.db.Exists(ctx, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version)
	if err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return exists, nil
}

// Migrate applies the embedded schema
func (m *Migrator) Migrate(ctx context.Context) error {
	sub, err := fs.Sub(schemaFS, "sql")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	return m.MigrateFS(ctx, sub)
}

// MigrateFS finds and executes all SQL files at the root of fsys in name order
func (m *Migrator) MigrateFS(ctx context.Context, fsys fs.FS) error {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("failed to read migration directory: %w", err)
	}

	var sqlFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			sqlFiles = append(sqlFiles, entry.Name())
		}
	}
	sort.Strings(sqlFiles)

	if err := m.ensureMigrationTableExists(ctx); err != nil {
		return err
	}

	for _, file := range sqlFiles {
		content, err := fs.ReadFile(fsys, file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}
		if err := m.apply(ctx, file, string(content)); err != nil {
			return err
		}
	}
	return nil
}

// apply executes one migration file unless its version is recorded
func (m *Migrator) apply(ctx context.Context, filename, content string) error {
	// "001_init.sql" => "001"
	version := strings.Split(path.Base(filename), "_")[0]

	applied, err := m.isMigrationApplied(ctx, version)
	if err != nil {
		return err
	}
	if applied {
		logger.Debug().Str("migration", filename).Msg("Migration already applied, skipping")
		return nil
	}

	err = m.db.InTx(ctx, func(tx Runner) error {
		if err := tx.Exec(ctx, content); err != nil {
			return fmt.Errorf("error occurred during SQL migration execution: %w", err)
		}
		if err := tx.Exec(ctx, `INSERT INTO schema_migrations (version, applied_at) VALUES ($1, $2)`,
			version, time.Now()); err != nil {
			return fmt.Errorf("failed to record migration: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("migration %s: %w", filename, err)
	}

	logger.Info().Str("migration", filename).Msg("Migration file successfully applied")
	return nil
}

type pgxRunner struct {
	pool *pgxpool.Pool
	tx   pgx.Tx
}

func (r *pgxRunner) Exec(ctx context.Context, sql string, args ...any) error {
	if r.tx != nil {
		_, err := r.tx.Exec(ctx, sql, args...)
		return err
	}
	_, err := r.pool.Exec(ctx, sql, args...)
	return err
}

func (r *pgxRunner) Exists(ctx context.Context, query string, args ...any) (bool, error) {
	var exists bool
	var row pgx.Row
	if r.tx != nil {
		row = r.tx.QueryRow(ctx, query, args...)
	} else {
		row = r.pool.QueryRow(ctx, query, args...)
	}
	err := row.Scan(&exists)
	return exists, err
}

func (r *pgxRunner) InTx(ctx context.Context, fn func(Runner) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&pgxRunner{pool: r.pool, tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type gormRunner struct {
	db *gorm.DB
}

// gormSQL rewrites $n placeholders into the ? form GORM expects
func gormSQL(sql string, args []any) string {
	for i := len(args); i >= 1; i-- {
		sql = strings.ReplaceAll(sql, fmt.Sprintf("$%d", i), "?")
	}
	return sql
}

func (r *gormRunner) Exec(ctx context.Context, sql string, args ...any) error {
	return r.db.WithContext(ctx).Exec(gormSQL(sql, args), args...).Error
}

func (r *gormRunner) Exists(ctx context.Context, query string, args ...any) (bool, error) {
	var exists bool
	err := r.db.WithContext(ctx).Raw(gormSQL(query, args), args...).Scan(&exists).Error
	return exists, err
}

func (r *gormRunner) InTx(ctx context.Context, fn func(Runner) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRunner{db: tx})
	})
}
