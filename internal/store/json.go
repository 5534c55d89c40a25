package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/agenthands/notekeeper/internal/core/model"
	"github.com/agenthands/notekeeper/internal/observability"
)

const (
	ItemsFile     = "items.json"
	SchedulesFile = "schedules.json"
)

// JSONStore keeps one JSON array file per record kind under a directory.
// Every append reads the full array and atomically replaces the file, so a
// reader never sees a partial array. The mutex serializes callers in this
// process only.
type JSONStore struct {
	dir     string
	mu      sync.Mutex
	logger  *slog.Logger
	metrics *observability.Metrics
}

func NewJSONStore(dir string, logger *slog.Logger, metrics *observability.Metrics) (*JSONStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &JSONStore{dir: dir, logger: logger, metrics: metrics}, nil
}

// Path returns the file backing the given kind.
func (s *JSONStore) Path(kind model.Kind) string {
	if kind == model.KindSchedule {
		return filepath.Join(s.dir, SchedulesFile)
	}
	return filepath.Join(s.dir, ItemsFile)
}

func (s *JSONStore) Append(ctx context.Context, rec model.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	switch r := rec.(type) {
	case model.ItemRecord:
		err = appendRecord(s.Path(model.KindItem), r)
	case *model.ItemRecord:
		err = appendRecord(s.Path(model.KindItem), *r)
	case model.ScheduleRecord:
		err = appendRecord(s.Path(model.KindSchedule), r)
	case *model.ScheduleRecord:
		err = appendRecord(s.Path(model.KindSchedule), *r)
	default:
		return fmt.Errorf("store: unsupported record type %T", rec)
	}
	if err != nil {
		return err
	}

	s.logger.Info("record saved", "kind", rec.Kind(), "path", s.Path(rec.Kind()))
	s.metrics.ObserveAppend(string(rec.Kind()))
	return nil
}

func (s *JSONStore) LoadItems(ctx context.Context) ([]model.ItemRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return readArray[model.ItemRecord](s.Path(model.KindItem))
}

func (s *JSONStore) LoadSchedules(ctx context.Context) ([]model.ScheduleRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return readArray[model.ScheduleRecord](s.Path(model.KindSchedule))
}

func appendRecord[T any](path string, rec T) error {
	records, err := readArray[T](path)
	if err != nil {
		return err
	}
	records = append(records, rec)
	return writeArray(path, records)
}

func readArray[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrCorruptCollection, path, err)
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrCorruptCollection, path, err)
	}
	return records, nil
}

func writeArray[T any](path string, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return writeFileAtomic(path, append(data, '\n'))
}

// writeFileAtomic writes to a temp file in the target's directory and renames
// it over the target.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
