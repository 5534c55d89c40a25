package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/agenthands/notekeeper/internal/config"
	"github.com/agenthands/notekeeper/internal/core"
	"github.com/agenthands/notekeeper/internal/core/conversation"
	"github.com/agenthands/notekeeper/internal/llm"
	"github.com/agenthands/notekeeper/internal/observability"
	"github.com/agenthands/notekeeper/internal/query"
	"github.com/agenthands/notekeeper/internal/store"
)

// app is everything a command needs, built once from config and flags.
type app struct {
	cfg          *config.Config
	logger       *slog.Logger
	registry     *prometheus.Registry
	store        *store.JSONStore
	router       *core.Router
	conversation *conversation.Conversation
	memory       memoryClearer
	query        *query.Service
	closers      []io.Closer
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.Storage.DataDir = dataDir
	}
	if memoryFlag {
		cfg.Chat.Memory = true
	}
	return cfg, nil
}

// openStore builds only the read path, for commands that never call a model.
func openStore(logger *slog.Logger) (*store.JSONStore, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return store.NewJSONStore(cfg.Storage.DataDir, logger, nil)
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger := newLogger()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(reg, "notekeeper")

	a := &app{cfg: cfg, logger: logger, registry: reg}

	intentClient, err := a.modelClient(ctx, cfg.LLM.Model, metrics)
	if err != nil {
		return nil, err
	}
	chatClient := intentClient
	if name := cfg.ChatModelName(); name != cfg.LLM.Model {
		chatClient, err = a.modelClient(ctx, name, metrics)
		if err != nil {
			a.Close()
			return nil, err
		}
	}

	a.store, err = store.NewJSONStore(cfg.Storage.DataDir, logger, metrics)
	if err != nil {
		a.Close()
		return nil, err
	}

	// 清除記憶 empties the history file whether or not this run remembers.
	historyFile := store.NewHistoryFile(cfg.HistoryPath())
	var history conversation.HistoryStore
	if cfg.Chat.Memory {
		history = historyFile
	}
	a.conversation = conversation.New(chatClient, history, logger, metrics)
	a.memory = historyFile
	if cfg.Chat.Memory {
		a.memory = a.conversation
	}
	a.router = core.NewRouter(intentClient, cfg.Prompts, a.store, a.conversation, logger, metrics)
	a.query = query.NewService(a.store, nil)

	logger.Info("notekeeper ready",
		"provider", cfg.LLM.Provider,
		"model", cfg.LLM.Model,
		"chat_model", cfg.ChatModelName(),
		"data_dir", cfg.Storage.DataDir,
		"memory", cfg.Chat.Memory,
	)
	return a, nil
}

func (a *app) modelClient(ctx context.Context, model string, metrics *observability.Metrics) (llm.Client, error) {
	c, err := llm.NewClient(ctx, a.cfg.LLM, model, a.logger)
	if err != nil {
		return nil, fmt.Errorf("init %s client: %w", a.cfg.LLM.Provider, err)
	}
	if closer, ok := c.(io.Closer); ok {
		a.closers = append(a.closers, closer)
	}
	return llm.NewRetryingClient(c, a.cfg.RetryDelay(), a.cfg.Retry.MaxRetries, a.logger, metrics), nil
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Warn("close model client", "error", err)
		}
	}
}
