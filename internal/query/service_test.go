package query

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/notekeeper/internal/core/model"
	"github.com/agenthands/notekeeper/internal/store"
)

type fixedLoader struct {
	items     []model.ItemRecord
	schedules []model.ScheduleRecord
	err       error
}

func (l *fixedLoader) LoadItems(ctx context.Context) ([]model.ItemRecord, error) {
	return l.items, l.err
}

func (l *fixedLoader) LoadSchedules(ctx context.Context) ([]model.ScheduleRecord, error) {
	return l.schedules, l.err
}

var now = time.Date(2024, 6, 3, 9, 0, 0, 0, time.Local)

func clock() time.Time { return now }

func TestItems_TodayOnly(t *testing.T) {
	loader := &fixedLoader{items: []model.ItemRecord{
		{ID: "old", Item: "雨傘", Location: "門口", PlaceCategory: "玄關", CreatedAt: now.AddDate(0, 0, -1)},
		{ID: "new", Item: "鑰匙", Location: "玄關", PlaceCategory: "玄關", CreatedAt: now.Add(-time.Hour)},
	}}
	svc := NewService(loader, clock)

	seq, err := svc.Items(context.Background(), Filter{TodayOnly: true})
	require.NoError(t, err)

	got := Collect(seq)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].ID)
}

func TestItems_KeywordMatchesLocationOrPlace(t *testing.T) {
	loader := &fixedLoader{items: []model.ItemRecord{
		{ID: "1", Item: "鍋子", Location: "流理台下面", PlaceCategory: "廚房"},
		{ID: "2", Item: "遙控器", Location: "沙發上", PlaceCategory: "客廳"},
		{ID: "3", Item: "剪刀", Location: "廚房抽屜", PlaceCategory: "未知"},
	}}
	svc := NewService(loader, clock)

	seq, err := svc.Items(context.Background(), Filter{Keyword: "廚房"})
	require.NoError(t, err)

	var ids []string
	for r := range seq {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"1", "3"}, ids)
}

func TestSchedules_KeywordAndToday(t *testing.T) {
	loader := &fixedLoader{schedules: []model.ScheduleRecord{
		{ID: "a", Task: "看醫生", Location: "醫院", PlaceCategory: "醫院", CreatedAt: now},
		{ID: "b", Task: "買菜", Location: "市場", PlaceCategory: "市場", CreatedAt: now},
		{ID: "c", Task: "回診", Location: "醫院", PlaceCategory: "醫院", CreatedAt: now.AddDate(0, 0, -2)},
	}}
	svc := NewService(loader, clock)

	seq, err := svc.Schedules(context.Background(), Filter{Keyword: "醫院", TodayOnly: true})
	require.NoError(t, err)

	got := Collect(seq)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestQuery_Idempotent(t *testing.T) {
	dir := t.TempDir()
	s, err := store.NewJSONStore(dir, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	require.NoError(t, err)

	ctx := context.Background()
	for _, loc := range []string{"書房桌上", "臥室", "書房抽屜"} {
		require.NoError(t, s.Append(ctx, model.ItemRecord{ID: loc, Item: "筆", Location: loc, PlaceCategory: "書房", CreatedAt: now}))
	}

	svc := NewService(s, clock)
	first, err := svc.Items(ctx, Filter{Keyword: "書房"})
	require.NoError(t, err)
	second, err := svc.Items(ctx, Filter{Keyword: "書房"})
	require.NoError(t, err)

	a, b := Collect(first), Collect(second)
	assert.Equal(t, a, b)
	assert.Len(t, a, 3)

	// The same sequence can be ranged over again.
	assert.Equal(t, a, slices.Collect(first))
}

func TestQuery_MissingFileIsEmpty(t *testing.T) {
	s, err := store.NewJSONStore(t.TempDir(), nil, nil)
	require.NoError(t, err)

	seq, err := NewService(s, clock).Schedules(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Equal(t, []model.ScheduleRecord{}, Collect(seq))
}

func TestQuery_LoadErrorPropagates(t *testing.T) {
	svc := NewService(&fixedLoader{err: store.ErrCorruptCollection}, clock)

	_, err := svc.Items(context.Background(), Filter{})
	assert.True(t, errors.Is(err, store.ErrCorruptCollection))
}

func TestQuery_StopsEarly(t *testing.T) {
	loader := &fixedLoader{items: []model.ItemRecord{{ID: "1"}, {ID: "2"}, {ID: "3"}}}
	seq, err := NewService(loader, clock).Items(context.Background(), Filter{})
	require.NoError(t, err)

	var seen int
	for range seq {
		seen++
		if seen == 2 {
			break
		}
	}
	assert.Equal(t, 2, seen)
}
