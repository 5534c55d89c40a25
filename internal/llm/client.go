package llm

import (
	"context"

	"github.com/agenthands/notekeeper/internal/core/model"
)

type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Chatter answers text given the prior turns of a conversation. A nil or
// empty history means a single-turn exchange.
type Chatter interface {
	Chat(ctx context.Context, history []model.Turn, text string) (string, error)
}

// Client is what every backend provides.
type Client interface {
	LLMClient
	Chatter
}
