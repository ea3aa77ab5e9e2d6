package storage

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/teilnahme/teilnahme/internal/app/models"
	"github.com/teilnahme/teilnahme/internal/db"
	"github.com/teilnahme/teilnahme/internal/pkg/dberrors"
	"github.com/teilnahme/teilnahme/internal/pkg/logger"
)

// ErrInvalidReference is returned when a roster names a member that does not exist
var ErrInvalidReference = errors.New("referenced record does not exist")

// querier is satisfied by both *pgxpool.Pool and pgx.Tx
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresHandler stores entities in PostgreSQL through pgx
type PostgresHandler[T models.Entity[T]] struct {
	db      *db.PostgresDB
	sb      squirrel.StatementBuilderType
	table   string
	columns []string
}

// NewPostgresHandler creates a handler for T over the given pool
func NewPostgresHandler[T models.Entity[T]](database *db.PostgresDB) *PostgresHandler[T] {
	var zero T
	return &PostgresHandler[T]{
		db:      database,
		sb:      squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		table:   zero.TableName(),
		columns: columnNames[T](),
	}
}

// whereClause translates conditions into a squirrel predicate
func (h *PostgresHandler[T]) whereClause(conds []Condition) (squirrel.And, error) {
	where := squirrel.And{}
	for _, cond := range conds {
		switch c := cond.(type) {
		case Eq:
			if !slices.Contains(h.columns, c.Column) {
				return nil, fmt.Errorf("unknown column %q for %s", c.Column, h.table)
			}
			where = append(where, squirrel.Eq{c.Column: normalize(c.Value)})
		case Contains:
			rel := c.Relation
			where = append(where, squirrel.Expr(
				fmt.Sprintf("id IN (SELECT %s FROM %s WHERE %s = ?)", rel.OwnerColumn, rel.JoinTable, rel.MemberColumn),
				c.Value,
			))
		default:
			return nil, fmt.Errorf("unsupported condition %T", cond)
		}
	}
	return where, nil
}

func (h *PostgresHandler[T]) selectQuery(conds []Condition) (string, []any, error) {
	where, err := h.whereClause(conds)
	if err != nil {
		return "", nil, err
	}
	builder := h.sb.Select(h.columns...).From(h.table)
	if len(where) > 0 {
		builder = builder.Where(where)
	}
	return builder.OrderBy("id").ToSql()
}

func (h *PostgresHandler[T]) insertQuery(item T) (string, []any, error) {
	return h.sb.Insert(h.table).
		SetMap(item.Columns()).
		Suffix("RETURNING id").
		ToSql()
}

func (h *PostgresHandler[T]) updateQuery(id int64, item T) (string, []any, error) {
	return h.sb.Update(h.table).
		SetMap(item.Columns()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
}

func (h *PostgresHandler[T]) GetAll(ctx context.Context) ([]T, error) {
	return h.GetAllWhere(ctx)
}

func (h *PostgresHandler[T]) GetAllWhere(ctx context.Context, conds ...Condition) ([]T, error) {
	sql, args, err := h.selectQuery(conds)
	if err != nil {
		logger.Error().Err(err).Str("table", h.table).Msg("Error building select SQL")
		return nil, fmt.Errorf("failed to build %s query: %w", h.table, err)
	}

	rows, err := h.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("table", h.table).Msg("Error executing select query")
		return nil, fmt.Errorf("error querying %s: %w", h.table, err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("error scanning %s rows: %w", h.table, err)
	}

	return h.loadRosters(ctx, h.db.Pool, items)
}

func (h *PostgresHandler[T]) GetByID(ctx context.Context, id int64) (T, error) {
	return h.getByID(ctx, h.db.Pool, id, false)
}

func (h *PostgresHandler[T]) getByID(ctx context.Context, q querier, id int64, forUpdate bool) (T, error) {
	var zero T
	builder := h.sb.Select(h.columns...).
		From(h.table).
		Where(squirrel.Eq{"id": id}).
		Limit(1)
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return zero, fmt.Errorf("failed to build %s query: %w", h.table, err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("table", h.table).Int64("id", id).Msg("Error fetching record by ID")
		return zero, fmt.Errorf("error querying %s: %w", h.table, err)
	}
	item, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, ErrNotFound
		}
		return zero, fmt.Errorf("error scanning %s row: %w", h.table, err)
	}

	items, err := h.loadRosters(ctx, q, []T{item})
	if err != nil {
		return zero, err
	}
	return items[0], nil
}

func (h *PostgresHandler[T]) Create(ctx context.Context, item T) (T, error) {
	var created T
	err := h.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := h.insertQuery(item)
		if err != nil {
			return fmt.Errorf("failed to build %s insert: %w", h.table, err)
		}

		var id int64
		if err := tx.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
			logger.Error().Err(err).Str("table", h.table).Msg("Error executing insert query")
			return fmt.Errorf("error creating %s record: %w", h.table, err)
		}

		created = clone(item.WithIdentity(id))
		if rel, ids, ok := roster(created); ok {
			return h.replaceRoster(ctx, tx, rel, id, ids)
		}
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return created, nil
}

func (h *PostgresHandler[T]) Update(ctx context.Context, id int64, item T) (T, error) {
	var updated T
	err := h.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		current, err := h.getByID(ctx, tx, id, true)
		if err != nil {
			return err
		}
		merged := item.Overlay(current).WithIdentity(id)

		sql, args, err := h.updateQuery(id, merged)
		if err != nil {
			return fmt.Errorf("failed to build %s update: %w", h.table, err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			logger.Error().Err(err).Str("table", h.table).Int64("id", id).Msg("Error executing update query")
			return fmt.Errorf("error updating %s record: %w", h.table, err)
		}

		if rel, ids, ok := roster(item); ok && ids != nil {
			if err := h.replaceRoster(ctx, tx, rel, id, ids); err != nil {
				return err
			}
		}
		updated = merged
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return updated, nil
}

func (h *PostgresHandler[T]) Delete(ctx context.Context, id int64) error {
	sql, args, err := h.sb.Delete(h.table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build %s delete: %w", h.table, err)
	}

	// Roster rows go with ON DELETE CASCADE
	result, err := h.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("table", h.table).Int64("id", id).Msg("Error executing delete query")
		return fmt.Errorf("error deleting %s record: %w", h.table, err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// loadRosters attaches the member ids of every owner in items
func (h *PostgresHandler[T]) loadRosters(ctx context.Context, q querier, items []T) ([]T, error) {
	if len(items) == 0 {
		return items, nil
	}
	rel, _, ok := roster(items[0])
	if !ok {
		return items, nil
	}

	owners := make([]int64, len(items))
	for i, item := range items {
		owners[i] = item.Identity()
	}

	sql, args, err := h.sb.Select(rel.OwnerColumn, rel.MemberColumn).
		From(rel.JoinTable).
		Where(squirrel.Eq{rel.OwnerColumn: owners}).
		OrderBy(rel.OwnerColumn, rel.MemberColumn).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s query: %w", rel.JoinTable, err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("table", rel.JoinTable).Msg("Error fetching roster")
		return nil, fmt.Errorf("error querying %s: %w", rel.JoinTable, err)
	}
	members := make(map[int64][]int64, len(items))
	var owner, member int64
	_, err = pgx.ForEachRow(rows, []any{&owner, &member}, func() error {
		members[owner] = append(members[owner], member)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning %s rows: %w", rel.JoinTable, err)
	}

	return attachRosters(items, members), nil
}

// replaceRoster swaps the member rows of owner for ids
func (h *PostgresHandler[T]) replaceRoster(ctx context.Context, tx pgx.Tx, rel models.Relation, owner int64, ids []int64) error {
	sql, args, err := h.sb.Delete(rel.JoinTable).
		Where(squirrel.Eq{rel.OwnerColumn: owner}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build %s delete: %w", rel.JoinTable, err)
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error clearing %s: %w", rel.JoinTable, err)
	}

	if len(ids) == 0 {
		return nil
	}

	insert := h.sb.Insert(rel.JoinTable).Columns(rel.OwnerColumn, rel.MemberColumn)
	for _, id := range ids {
		insert = insert.Values(owner, id)
	}
	sql, args, err = insert.Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("failed to build %s insert: %w", rel.JoinTable, err)
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: %s", ErrInvalidReference, rel.Field)
		}
		logger.Error().Err(err).Str("table", rel.JoinTable).Int64("owner", owner).Msg("Error writing roster")
		return fmt.Errorf("error writing %s: %w", rel.JoinTable, err)
	}
	return nil
}

// attachRosters sets each item's roster from members, an empty roster when absent
func attachRosters[T models.Entity[T]](items []T, members map[int64][]int64) []T {
	for i, item := range items {
		ids := members[item.Identity()]
		if ids == nil {
			ids = []int64{}
		}
		items[i] = withRoster(item, ids)
	}
	return items
}
