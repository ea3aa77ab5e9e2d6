package storage

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/teilnahme/teilnahme/internal/app/models"
	"github.com/teilnahme/teilnahme/internal/pkg/dberrors"
	"github.com/teilnahme/teilnahme/internal/pkg/logger"
)

// GormHandler stores entities through GORM
type GormHandler[T models.Entity[T]] struct {
	db      *gorm.DB
	table   string
	columns []string
}

// NewGormHandler creates a handler for T over a GORM session
func NewGormHandler[T models.Entity[T]](gdb *gorm.DB) *GormHandler[T] {
	var zero T
	return &GormHandler[T]{
		db:      gdb,
		table:   zero.TableName(),
		columns: columnNames[T](),
	}
}

type rosterRow struct {
	Owner  int64 `gorm:"column:owner"`
	Member int64 `gorm:"column:member"`
}

func (h *GormHandler[T]) scoped(tx *gorm.DB, conds []Condition) (*gorm.DB, error) {
	query := tx.Table(h.table)
	for _, cond := range conds {
		switch c := cond.(type) {
		case Eq:
			if !slices.Contains(h.columns, c.Column) {
				return nil, fmt.Errorf("unknown column %q for %s", c.Column, h.table)
			}
			query = query.Where(clause.Eq{Column: clause.Column{Name: c.Column}, Value: normalize(c.Value)})
		case Contains:
			rel := c.Relation
			sub := tx.Session(&gorm.Session{NewDB: true}).
				Table(rel.JoinTable).
				Select(rel.OwnerColumn).
				Where(clause.Eq{Column: clause.Column{Name: rel.MemberColumn}, Value: c.Value})
			query = query.Where("id IN (?)", sub)
		default:
			return nil, fmt.Errorf("unsupported condition %T", cond)
		}
	}
	return query, nil
}

func (h *GormHandler[T]) GetAll(ctx context.Context) ([]T, error) {
	return h.GetAllWhere(ctx)
}

func (h *GormHandler[T]) GetAllWhere(ctx context.Context, conds ...Condition) ([]T, error) {
	tx := h.db.WithContext(ctx)
	query, err := h.scoped(tx, conds)
	if err != nil {
		return nil, err
	}

	items := []T{}
	if err := query.Order("id").Find(&items).Error; err != nil {
		logger.Error().Err(err).Str("table", h.table).Msg("Error executing select query")
		return nil, fmt.Errorf("error querying %s: %w", h.table, err)
	}
	return h.loadRosters(tx, items)
}

func (h *GormHandler[T]) GetByID(ctx context.Context, id int64) (T, error) {
	return h.getByID(h.db.WithContext(ctx), id, false)
}

func (h *GormHandler[T]) getByID(tx *gorm.DB, id int64, forUpdate bool) (T, error) {
	var item T
	query := tx.Table(h.table).Where("id = ?", id)
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := query.Take(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return item, ErrNotFound
		}
		logger.Error().Err(err).Str("table", h.table).Int64("id", id).Msg("Error fetching record by ID")
		return item, fmt.Errorf("error querying %s: %w", h.table, err)
	}

	items, err := h.loadRosters(tx, []T{item})
	if err != nil {
		return item, err
	}
	return items[0], nil
}

func (h *GormHandler[T]) Create(ctx context.Context, item T) (T, error) {
	var created T
	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// A zero primary key is left to the sequence and read back into row
		row := clone(item.WithIdentity(0))
		if err := tx.Table(h.table).Create(&row).Error; err != nil {
			logger.Error().Err(err).Str("table", h.table).Msg("Error executing insert query")
			return fmt.Errorf("error creating %s record: %w", h.table, err)
		}

		created = row
		if rel, ids, ok := roster(item); ok {
			created = withRoster(created, ids)
			return h.replaceRoster(tx, rel, row.Identity(), ids)
		}
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return created, nil
}

func (h *GormHandler[T]) Update(ctx context.Context, id int64, item T) (T, error) {
	var updated T
	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := h.getByID(tx, id, true)
		if err != nil {
			return err
		}
		merged := item.Overlay(current).WithIdentity(id)

		if err := tx.Table(h.table).Where("id = ?", id).Updates(merged.Columns()).Error; err != nil {
			logger.Error().Err(err).Str("table", h.table).Int64("id", id).Msg("Error executing update query")
			return fmt.Errorf("error updating %s record: %w", h.table, err)
		}

		if rel, ids, ok := roster(item); ok && ids != nil {
			if err := h.replaceRoster(tx, rel, id, ids); err != nil {
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

func (h *GormHandler[T]) Delete(ctx context.Context, id int64) error {
	result := h.db.WithContext(ctx).Exec(fmt.Sprintf("DELETE FROM %s WHERE id = ?", h.table), id)
	if result.Error != nil {
		logger.Error().Err(result.Error).Str("table", h.table).Int64("id", id).Msg("Error executing delete query")
		return fmt.Errorf("error deleting %s record: %w", h.table, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (h *GormHandler[T]) loadRosters(tx *gorm.DB, items []T) ([]T, error) {
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

	var rows []rosterRow
	err := tx.Session(&gorm.Session{NewDB: true}).
		Table(rel.JoinTable).
		Select(fmt.Sprintf("%s AS owner, %s AS member", rel.OwnerColumn, rel.MemberColumn)).
		Where(fmt.Sprintf("%s IN ?", rel.OwnerColumn), owners).
		Order(rel.OwnerColumn).
		Order(rel.MemberColumn).
		Scan(&rows).Error
	if err != nil {
		logger.Error().Err(err).Str("table", rel.JoinTable).Msg("Error fetching roster")
		return nil, fmt.Errorf("error querying %s: %w", rel.JoinTable, err)
	}

	members := make(map[int64][]int64, len(items))
	for _, r := range rows {
		members[r.Owner] = append(members[r.Owner], r.Member)
	}
	return attachRosters(items, members), nil
}

func (h *GormHandler[T]) replaceRoster(tx *gorm.DB, rel models.Relation, owner int64, ids []int64) error {
	if err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE %s = ?", rel.JoinTable, rel.OwnerColumn), owner).Error; err != nil {
		return fmt.Errorf("error clearing %s: %w", rel.JoinTable, err)
	}
	if len(ids) == 0 {
		return nil
	}

	rows := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, map[string]any{rel.OwnerColumn: owner, rel.MemberColumn: id})
	}
	err := tx.Table(rel.JoinTable).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: %s", ErrInvalidReference, rel.Field)
		}
		logger.Error().Err(err).Str("table", rel.JoinTable).Int64("owner", owner).Msg("Error writing roster")
		return fmt.Errorf("error writing %s: %w", rel.JoinTable, err)
	}
	return nil
}
