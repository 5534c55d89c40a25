package server

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/agenthands/notekeeper/internal/core/model"
	"github.com/agenthands/notekeeper/internal/observability"
	"github.com/agenthands/notekeeper/internal/query"
)

type Router interface {
	Route(ctx context.Context, utterance string) (model.Outcome, error)
}

type Server struct {
	Router   Router
	Query    *query.Service
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger

	// Route is not safe for concurrent use; requests take turns.
	mu sync.Mutex
}

func NewServer(router Router, q *query.Service, gatherer prometheus.Gatherer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		Router:   router,
		Query:    q,
		Gatherer: gatherer,
		Logger:   logger,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", s.Health)
	r.POST("/utterances", s.AddUtterance)
	r.GET("/items", s.ListItems)
	r.GET("/schedules", s.ListSchedules)
	if s.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(observability.MetricsHandler(s.Gatherer)))
	}

	return r
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type UtteranceRequest struct {
	Text string `json:"text"`
}

func (s *Server) AddUtterance(c *gin.Context) {
	var req UtteranceRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	s.mu.Lock()
	outcome, err := s.Router.Route(c.Request.Context(), req.Text)
	s.mu.Unlock()
	if err != nil {
		s.Logger.Error("failed to route utterance", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save record"})
		return
	}

	c.JSON(http.StatusOK, outcome)
}

func (s *Server) ListItems(c *gin.Context) {
	seq, err := s.Query.Items(c.Request.Context(), filterFrom(c))
	if err != nil {
		s.Logger.Error("failed to query items", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read items"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": query.Collect(seq)})
}

func (s *Server) ListSchedules(c *gin.Context) {
	seq, err := s.Query.Schedules(c.Request.Context(), filterFrom(c))
	if err != nil {
		s.Logger.Error("failed to query schedules", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read schedules"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": query.Collect(seq)})
}

func filterFrom(c *gin.Context) query.Filter {
	today, _ := strconv.ParseBool(c.Query("today"))
	return query.Filter{
		Keyword:   strings.TrimSpace(c.Query("keyword")),
		TodayOnly: today,
	}
}
