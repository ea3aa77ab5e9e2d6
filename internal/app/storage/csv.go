package storage

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/gocarina/gocsv"

	"github.com/teilnahme/teilnahme/internal/app/models"
	"github.com/teilnahme/teilnahme/internal/pkg/logger"
)

// CSVHandler stores one entity type in <dir>/<table>.csv.
// Every mutation reads the whole file and rewrites it.
type CSVHandler[T models.Entity[T]] struct {
	mu   sync.Mutex
	path string
}

// NewCSVHandler creates a handler for T under dir, creating dir if needed
func NewCSVHandler[T models.Entity[T]](dir string) (*CSVHandler[T], error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create csv directory %s: %w", dir, err)
	}
	var zero T
	return &CSVHandler[T]{path: filepath.Join(dir, zero.TableName()+".csv")}, nil
}

// Path returns the file backing this handler
func (h *CSVHandler[T]) Path() string {
	return h.path
}

// load reads all rows; a missing or empty file holds no entities
func (h *CSVHandler[T]) load() ([]T, error) {
	f, err := os.Open(h.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", h.path, err)
	}
	defer f.Close()

	items := []T{}
	if err := gocsv.UnmarshalFile(f, &items); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("failed to decode %s: %w", h.path, err)
	}
	return items, nil
}

// save replaces the file contents with items
func (h *CSVHandler[T]) save(items []T) error {
	tmp, err := os.CreateTemp(filepath.Dir(h.path), filepath.Base(h.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", h.path, err)
	}
	defer os.Remove(tmp.Name())

	if err := gocsv.MarshalFile(&items, tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode %s: %w", h.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", h.path, err)
	}
	if err := os.Rename(tmp.Name(), h.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", h.path, err)
	}
	return nil
}

func (h *CSVHandler[T]) GetAll(ctx context.Context) ([]T, error) {
	return h.GetAllWhere(ctx)
}

func (h *CSVHandler[T]) GetAllWhere(_ context.Context, conds ...Condition) ([]T, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	items, err := h.load()
	if err != nil {
		return nil, err
	}

	result := make([]T, 0, len(items))
	for _, item := range items {
		ok, err := matches(item, conds)
		if err != nil {
			return nil, err
		}
		if ok {
			result = append(result, item)
		}
	}
	slices.SortFunc(result, func(a, b T) int {
		return cmp.Compare(a.Identity(), b.Identity())
	})
	return result, nil
}

func (h *CSVHandler[T]) GetByID(_ context.Context, id int64) (T, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var zero T
	items, err := h.load()
	if err != nil {
		return zero, err
	}
	idx := indexOf(items, id)
	if idx < 0 {
		return zero, ErrNotFound
	}
	return items[idx], nil
}

func (h *CSVHandler[T]) Create(_ context.Context, item T) (T, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var zero T
	items, err := h.load()
	if err != nil {
		return zero, err
	}

	var maxID int64
	for _, existing := range items {
		maxID = max(maxID, existing.Identity())
	}

	stored := clone(item.WithIdentity(maxID + 1))
	if err := h.save(append(items, stored)); err != nil {
		logger.Error().Err(err).Str("file", h.path).Msg("Error saving csv after create")
		return zero, err
	}
	return stored, nil
}

func (h *CSVHandler[T]) Update(_ context.Context, id int64, item T) (T, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var zero T
	items, err := h.load()
	if err != nil {
		return zero, err
	}
	idx := indexOf(items, id)
	if idx < 0 {
		return zero, ErrNotFound
	}

	merged := item.Overlay(items[idx]).WithIdentity(id)
	items[idx] = merged
	if err := h.save(items); err != nil {
		logger.Error().Err(err).Str("file", h.path).Int64("id", id).Msg("Error saving csv after update")
		return zero, err
	}
	return clone(merged), nil
}

func (h *CSVHandler[T]) Delete(_ context.Context, id int64) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	items, err := h.load()
	if err != nil {
		return err
	}
	idx := indexOf(items, id)
	if idx < 0 {
		return ErrNotFound
	}

	if err := h.save(slices.Delete(items, idx, idx+1)); err != nil {
		logger.Error().Err(err).Str("file", h.path).Int64("id", id).Msg("Error saving csv after delete")
		return err
	}
	return nil
}

func indexOf[T models.Entity[T]](items []T, id int64) int {
	return slices.IndexFunc(items, func(item T) bool {
		return item.Identity() == id
	})
}
