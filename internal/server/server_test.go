package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/notekeeper/internal/core/model"
	"github.com/agenthands/notekeeper/internal/observability"
	"github.com/agenthands/notekeeper/internal/query"
)

type stubRouter struct {
	outcome model.Outcome
	err     error
	texts   []string
}

func (r *stubRouter) Route(ctx context.Context, utterance string) (model.Outcome, error) {
	r.texts = append(r.texts, utterance)
	return r.outcome, r.err
}

type stubLoader struct {
	items     []model.ItemRecord
	schedules []model.ScheduleRecord
}

func (l *stubLoader) LoadItems(ctx context.Context) ([]model.ItemRecord, error) {
	return l.items, nil
}

func (l *stubLoader) LoadSchedules(ctx context.Context) ([]model.ScheduleRecord, error) {
	return l.schedules, nil
}

var now = time.Date(2024, 6, 3, 12, 0, 0, 0, time.Local)

func newTestServer(router Router, loader query.Loader, gatherer prometheus.Gatherer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := query.NewService(loader, func() time.Time { return now })
	s := NewServer(router, svc, gatherer, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return s.SetupRouter()
}

func TestAddUtterance(t *testing.T) {
	router := &stubRouter{outcome: model.Outcome{Kind: model.OutcomeChatReply, Intent: model.IntentChat, Reply: "你好呀"}}
	r := newTestServer(router, &stubLoader{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/utterances", strings.NewReader(`{"text": "哈囉"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var got model.Outcome
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "你好呀", got.Reply)
	assert.Equal(t, []string{"哈囉"}, router.texts)
}

func TestAddUtterance_BadRequest(t *testing.T) {
	router := &stubRouter{}
	r := newTestServer(router, &stubLoader{}, nil)

	for _, body := range []string{`not json`, `{"text": "  "}`} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/utterances", strings.NewReader(body))
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
	assert.Empty(t, router.texts)
}

func TestAddUtterance_StoreFailure(t *testing.T) {
	r := newTestServer(&stubRouter{err: errors.New("disk full")}, &stubLoader{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/utterances", strings.NewReader(`{"text": "鑰匙放在玄關"}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestListItems(t *testing.T) {
	loader := &stubLoader{items: []model.ItemRecord{
		{ID: "1", Item: "鑰匙", Location: "玄關", PlaceCategory: "玄關", CreatedAt: now.AddDate(0, 0, -1)},
		{ID: "2", Item: "鍋子", Location: "櫃子", PlaceCategory: "廚房", CreatedAt: now},
	}}
	r := newTestServer(&stubRouter{}, loader, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/items?today=true", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Results []model.ItemRecord `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Results, 1)
	assert.Equal(t, "2", body.Results[0].ID)
}

func TestListSchedules_EmptyIsArray(t *testing.T) {
	r := newTestServer(&stubRouter{}, &stubLoader{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/schedules?keyword="+url.QueryEscape("醫院"), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"results": []}`, w.Body.String())
}

func TestMetricsAndHealth(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg, "notekeeper")
	m.ObserveOutcome(string(model.OutcomeRecorded))
	r := newTestServer(&stubRouter{}, &stubLoader{}, reg)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/metrics", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `notekeeper_route_outcomes_total{outcome="recorded"} 1`)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/healthz", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
