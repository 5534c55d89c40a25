// Package store persists records as append-only JSON array files.
package store

import (
	"context"
	"errors"

	"github.com/agenthands/notekeeper/internal/core/model"
)

// ErrCorruptCollection wraps every failure to read an existing collection file.
// A missing file is not an error; it reads as an empty collection.
var ErrCorruptCollection = errors.New("store: unreadable collection")

// Store defines the record storage interface.
type Store interface {
	// Append adds the record as the last element of its kind's collection.
	Append(ctx context.Context, rec model.Record) error

	// LoadItems returns every item record in insertion order.
	LoadItems(ctx context.Context) ([]model.ItemRecord, error)

	// LoadSchedules returns every schedule record in insertion order.
	LoadSchedules(ctx context.Context) ([]model.ScheduleRecord, error)
}
