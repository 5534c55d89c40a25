package intent

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/agenthands/notekeeper/internal/config"
	"github.com/agenthands/notekeeper/internal/core/common"
	"github.com/agenthands/notekeeper/internal/llm"
)

// Classifier asks the model closed A/B questions about an utterance.
type Classifier struct {
	LLM     llm.LLMClient
	Prompts config.PromptConfig
}

func NewClassifier(llmClient llm.LLMClient, prompts config.PromptConfig) *Classifier {
	return &Classifier{
		LLM:     llmClient,
		Prompts: prompts,
	}
}

// IsItemRecord reports whether the utterance records where an item was put.
func (c *Classifier) IsItemRecord(ctx context.Context, text string) (bool, error) {
	return c.ask(ctx, c.Prompts.ItemIntent, text)
}

// IsSchedule reports whether the utterance arranges a task or appointment.
func (c *Classifier) IsSchedule(ctx context.Context, text string) (bool, error) {
	return c.ask(ctx, c.Prompts.ScheduleIntent, text)
}

func (c *Classifier) ask(ctx context.Context, template, text string) (bool, error) {
	response, err := c.LLM.Generate(ctx, fmt.Sprintf(template, text))
	if err != nil {
		return false, fmt.Errorf("failed to classify intent: %w", err)
	}
	return IsAffirmative(response), nil
}

// IsAffirmative reads an A/B answer. Only a leading "A" that is not the start
// of a longer word counts; anything else is a "no".
func IsAffirmative(answer string) bool {
	s := common.StripFence(answer)
	s = strings.TrimLeft(s, "\"'*「（( ")
	s = strings.ToUpper(s)
	if !strings.HasPrefix(s, "A") {
		return false
	}
	rest := []rune(s[1:])
	return len(rest) == 0 || !unicode.IsLetter(rest[0]) || rest[0] > unicode.MaxASCII
}
