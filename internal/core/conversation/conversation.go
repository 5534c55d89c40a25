// Package conversation keeps the companion-chat history for the chat intent.
package conversation

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/agenthands/notekeeper/internal/core/model"
	"github.com/agenthands/notekeeper/internal/observability"
)

// FallbackReply is returned whenever the chat model cannot answer.
const FallbackReply = "（系統暫時無法回應）"

// Chatter is the model side of a conversation.
type Chatter interface {
	Chat(ctx context.Context, history []model.Turn, text string) (string, error)
}

// HistoryStore persists the turns between runs.
type HistoryStore interface {
	Load() ([]model.Turn, error)
	Save(turns []model.Turn) error
}

// Conversation answers chat utterances. With a HistoryStore it remembers
// every exchange and rewrites the store after each reply; without one each
// reply is single-turn.
type Conversation struct {
	chatter Chatter
	history HistoryStore
	logger  *slog.Logger
	metrics *observability.Metrics

	mu    sync.Mutex
	turns []model.Turn
}

// New loads any saved history. A history that cannot be read is reset to
// empty and logged, it never prevents the conversation from starting.
func New(chatter Chatter, history HistoryStore, logger *slog.Logger, metrics *observability.Metrics) *Conversation {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Conversation{
		chatter: chatter,
		history: history,
		logger:  logger,
		metrics: metrics,
	}
	if history != nil {
		turns, err := history.Load()
		if err != nil {
			logger.Warn("chat history unreadable, starting with empty memory", "error", err)
			turns = nil
		}
		c.turns = turns
	}
	return c
}

// Reply never fails: model errors are logged and answered with FallbackReply.
func (c *Conversation) Reply(ctx context.Context, text string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var past []model.Turn
	if c.history != nil {
		past = c.turns
	}

	reply, err := c.chatter.Chat(ctx, past, text)
	c.metrics.ObserveModelCall("chat", err)
	if err != nil {
		c.logger.Error("chat model failed", "error", err)
		return FallbackReply
	}
	reply = strings.TrimSpace(reply)

	if c.history != nil {
		c.turns = append(c.turns,
			model.Turn{Role: model.RoleUser, Text: text},
			model.Turn{Role: model.RoleModel, Text: reply},
		)
		if err := c.history.Save(c.turns); err != nil {
			c.logger.Error("failed to save chat history", "error", err)
		}
	}
	return reply
}

// Clear forgets every turn and empties the saved history.
func (c *Conversation) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.turns = nil
	if c.history == nil {
		return nil
	}
	return c.history.Save(nil)
}

// Turns returns a copy of the remembered history.
func (c *Conversation) Turns() []model.Turn {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]model.Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Remembers reports whether the conversation keeps history.
func (c *Conversation) Remembers() bool {
	return c.history != nil
}
