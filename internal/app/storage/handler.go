// Package storage persists entities behind a single generic contract.
// Backends are selected at composition time; see Backend and For.
package storage

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/teilnahme/teilnahme/internal/app/models"
)

// ErrNotFound is returned when no entity with the requested id exists
var ErrNotFound = errors.New("record not found")

// Handler is the CRUD and filtered-query contract every backend implements.
type Handler[T models.Entity[T]] interface {
	// GetAll returns every stored entity ordered by id; an empty slice when there are none.
	GetAll(ctx context.Context) ([]T, error)
	// GetAllWhere returns the entities matching every condition.
	GetAllWhere(ctx context.Context, conds ...Condition) ([]T, error)
	GetByID(ctx context.Context, id int64) (T, error)
	// Create stores item under a new id and returns the stored entity.
	Create(ctx context.Context, item T) (T, error)
	// Update overwrites the set fields of item on the entity with the given id.
	// Zero-valued fields and a nil roster leave the stored value untouched.
	Update(ctx context.Context, id int64, item T) (T, error)
	Delete(ctx context.Context, id int64) error
}

// Condition is a filter evaluated by the backend
type Condition interface {
	condition()
}

// Eq matches entities whose column equals Value
type Eq struct {
	Column string
	Value  any
}

// Contains matches entities whose relation includes the member id Value
type Contains struct {
	Relation models.Relation
	Value    int64
}

func (Eq) condition()       {}
func (Contains) condition() {}

// normalize converts filter values to the canonical types returned by Entity.Columns
func normalize(v any) any {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case models.Degree:
		return string(x)
	case time.Time:
		return x.UTC()
	default:
		return v
	}
}

// columnNames returns "id" followed by the sorted column names of T
func columnNames[T models.Entity[T]]() []string {
	var zero T
	cols := zero.Columns()
	names := make([]string, 0, len(cols)+1)
	for name := range cols {
		names = append(names, name)
	}
	slices.Sort(names)
	return append([]string{"id"}, names...)
}

// roster returns the relation and member ids of item when T owns one
func roster[T models.Entity[T]](item T) (models.Relation, []int64, bool) {
	r, ok := any(item).(models.Rostered[T])
	if !ok {
		return models.Relation{}, nil, false
	}
	rel, ids := r.Roster()
	return rel, ids, true
}

// withRoster sets the member ids on item when T owns a roster
func withRoster[T models.Entity[T]](item T, ids []int64) T {
	if r, ok := any(item).(models.Rostered[T]); ok {
		return r.WithRoster(ids)
	}
	return item
}

// clone copies item so callers cannot mutate stored rosters
func clone[T models.Entity[T]](item T) T {
	if _, ids, ok := roster(item); ok && ids != nil {
		return withRoster(item, ids)
	}
	return item
}

// matches evaluates conditions against an in-process entity
func matches[T models.Entity[T]](item T, conds []Condition) (bool, error) {
	cols := item.Columns()
	for _, cond := range conds {
		switch c := cond.(type) {
		case Eq:
			var got any
			if c.Column == "id" {
				got = item.Identity()
			} else {
				v, ok := cols[c.Column]
				if !ok {
					return false, fmt.Errorf("unknown column %q for %s", c.Column, item.TableName())
				}
				got = v
			}
			if !equalValues(got, normalize(c.Value)) {
				return false, nil
			}
		case Contains:
			rel, ids, ok := roster(item)
			if !ok || rel.JoinTable != c.Relation.JoinTable {
				return false, fmt.Errorf("%s has no relation %q", item.TableName(), c.Relation.Field)
			}
			if !slices.Contains(ids, c.Value) {
				return false, nil
			}
		default:
			return false, fmt.Errorf("unsupported condition %T", cond)
		}
	}
	return true, nil
}

func equalValues(a, b any) bool {
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	return a == b
}
