package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/agenthands/notekeeper/internal/core/model"
)

type scriptedReply struct {
	Out string
	Err error
}

// MockLLMClient answers calls in order from Replies.
type MockLLMClient struct {
	Replies []scriptedReply
	Prompts []string
}

func (m *MockLLMClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	i := len(m.Prompts) - 1
	if i >= len(m.Replies) {
		return "", fmt.Errorf("unexpected model call %d", i+1)
	}
	return m.Replies[i].Out, m.Replies[i].Err
}

type MockReplier struct {
	Answer string
	Texts  []string
}

func (m *MockReplier) Reply(ctx context.Context, text string) string {
	m.Texts = append(m.Texts, text)
	return m.Answer
}

type FailingStore struct {
	Err error
}

func (s *FailingStore) Append(ctx context.Context, rec model.Record) error { return s.Err }

func (s *FailingStore) LoadItems(ctx context.Context) ([]model.ItemRecord, error) {
	return nil, s.Err
}

func (s *FailingStore) LoadSchedules(ctx context.Context) ([]model.ScheduleRecord, error) {
	return nil, s.Err
}

var errModelDown = errors.New("model unavailable")
