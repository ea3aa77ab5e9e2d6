package storage

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/teilnahme/teilnahme/internal/app/models"
)

// MemoryHandler keeps entities in process memory
type MemoryHandler[T models.Entity[T]] struct {
	mu     sync.RWMutex
	items  map[int64]T
	lastID int64
}

// NewMemoryHandler creates an empty in-memory handler
func NewMemoryHandler[T models.Entity[T]]() *MemoryHandler[T] {
	return &MemoryHandler[T]{items: make(map[int64]T)}
}

func (h *MemoryHandler[T]) GetAll(ctx context.Context) ([]T, error) {
	return h.GetAllWhere(ctx)
}

func (h *MemoryHandler[T]) GetAllWhere(_ context.Context, conds ...Condition) ([]T, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	result := make([]T, 0, len(h.items))
	for _, item := range h.items {
		ok, err := matches(item, conds)
		if err != nil {
			return nil, err
		}
		if ok {
			result = append(result, clone(item))
		}
	}
	slices.SortFunc(result, func(a, b T) int {
		return cmp.Compare(a.Identity(), b.Identity())
	})
	return result, nil
}

func (h *MemoryHandler[T]) GetByID(_ context.Context, id int64) (T, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	item, ok := h.items[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return clone(item), nil
}

func (h *MemoryHandler[T]) Create(_ context.Context, item T) (T, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastID++
	stored := clone(item.WithIdentity(h.lastID))
	h.items[h.lastID] = stored
	return clone(stored), nil
}

func (h *MemoryHandler[T]) Update(_ context.Context, id int64, item T) (T, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	current, ok := h.items[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	merged := item.Overlay(current).WithIdentity(id)
	h.items[id] = clone(merged)
	return merged, nil
}

func (h *MemoryHandler[T]) Delete(_ context.Context, id int64) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.items[id]; !ok {
		return ErrNotFound
	}
	delete(h.items, id)
	return nil
}
