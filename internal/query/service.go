// Package query answers keyword and date filtered lookups over stored records.
package query

import (
	"context"
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/agenthands/notekeeper/internal/core/model"
)

// Filter narrows a query. Zero values disable a filter; active filters AND.
type Filter struct {
	Keyword   string `json:"keyword,omitempty"`
	TodayOnly bool   `json:"today_only,omitempty"`
}

// Loader is the read side of the record store.
type Loader interface {
	LoadItems(ctx context.Context) ([]model.ItemRecord, error)
	LoadSchedules(ctx context.Context) ([]model.ScheduleRecord, error)
}

type Service struct {
	loader Loader
	now    func() time.Time
}

func NewService(loader Loader, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{loader: loader, now: now}
}

// Items returns item records whose place category or location contains the
// keyword, in insertion order. The sequence can be ranged over repeatedly.
func (s *Service) Items(ctx context.Context, f Filter) (iter.Seq[model.ItemRecord], error) {
	records, err := s.loader.LoadItems(ctx)
	if err != nil {
		return nil, err
	}
	today := s.now()
	return filtered(records, func(r model.ItemRecord) bool {
		if f.TodayOnly && !sameDay(r.CreatedAt, today) {
			return false
		}
		return f.Keyword == "" ||
			strings.Contains(r.PlaceCategory, f.Keyword) ||
			strings.Contains(r.Location, f.Keyword)
	}), nil
}

// Schedules returns schedule records whose task, location or place category
// contains the keyword, in insertion order.
func (s *Service) Schedules(ctx context.Context, f Filter) (iter.Seq[model.ScheduleRecord], error) {
	records, err := s.loader.LoadSchedules(ctx)
	if err != nil {
		return nil, err
	}
	today := s.now()
	return filtered(records, func(r model.ScheduleRecord) bool {
		if f.TodayOnly && !sameDay(r.CreatedAt, today) {
			return false
		}
		return f.Keyword == "" ||
			strings.Contains(r.Task, f.Keyword) ||
			strings.Contains(r.Location, f.Keyword) ||
			strings.Contains(r.PlaceCategory, f.Keyword)
	}), nil
}

func sameDay(created, now time.Time) bool {
	return created.In(now.Location()).Format(time.DateOnly) == now.Format(time.DateOnly)
}

func filtered[T any](records []T, keep func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, r := range records {
			if !keep(r) {
				continue
			}
			if !yield(r) {
				return
			}
		}
	}
}

// Collect drains a query result into a non-nil slice.
func Collect[T any](seq iter.Seq[T]) []T {
	out := slices.Collect(seq)
	if out == nil {
		out = []T{}
	}
	return out
}
