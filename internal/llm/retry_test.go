package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"

	"github.com/agenthands/notekeeper/internal/core/model"
)

type scriptedClient struct {
	errs  []error
	calls int
}

func (s *scriptedClient) next() (string, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	return "ok", nil
}

func (s *scriptedClient) Generate(ctx context.Context, prompt string) (string, error) {
	return s.next()
}

func (s *scriptedClient) Chat(ctx context.Context, history []model.Turn, text string) (string, error) {
	return s.next()
}

func newTestRetrying(c Client) (*RetryingClient, *[]time.Duration) {
	var slept []time.Duration
	r := NewRetryingClient(c, 60*time.Second, 1, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	r.Sleep = func(d time.Duration) { slept = append(slept, d) }
	return r, &slept
}

func TestRetryingClient_RetriesOnceAfterRateLimit(t *testing.T) {
	c := &scriptedClient{errs: []error{rateLimited(errors.New("429 Too Many Requests"))}}
	r, slept := newTestRetrying(c)

	out, err := r.Generate(context.Background(), "prompt")

	assert.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, 2, c.calls)
	assert.Equal(t, []time.Duration{60 * time.Second}, *slept)
}

func TestRetryingClient_GivesUpAfterOneRetry(t *testing.T) {
	limited := rateLimited(errors.New("quota"))
	c := &scriptedClient{errs: []error{limited, limited, nil}}
	r, slept := newTestRetrying(c)

	_, err := r.Chat(context.Background(), nil, "hi")

	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, 2, c.calls)
	assert.Len(t, *slept, 1)
}

func TestRetryingClient_NoRetryOnOtherErrors(t *testing.T) {
	c := &scriptedClient{errs: []error{errors.New("connection refused")}}
	r, slept := newTestRetrying(c)

	_, err := r.Generate(context.Background(), "prompt")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, 1, c.calls)
	assert.Empty(t, *slept)
}

func TestNewRetryingClient_AtMostOneRetry(t *testing.T) {
	limited := rateLimited(errors.New("quota"))
	c := &scriptedClient{errs: []error{limited, limited, limited, limited}}
	r := NewRetryingClient(c, time.Second, 5, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	r.Sleep = func(time.Duration) {}

	assert.Equal(t, 1, r.MaxRetries)
	_, err := r.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, 2, c.calls)

	assert.Equal(t, 0, NewRetryingClient(c, time.Second, -3, nil, nil).MaxRetries)
	assert.Equal(t, 0, NewRetryingClient(c, time.Second, 0, nil, nil).MaxRetries)
}

func TestWrapOpenAIError(t *testing.T) {
	limited := wrapOpenAIError(&openai.APIError{HTTPStatusCode: 429, Message: "slow down"})
	assert.ErrorIs(t, limited, ErrRateLimited)

	wrapped := wrapOpenAIError(fmt.Errorf("call: %w", &openai.RequestError{HTTPStatusCode: 429, Err: errors.New("x")}))
	assert.ErrorIs(t, wrapped, ErrRateLimited)

	other := wrapOpenAIError(&openai.APIError{HTTPStatusCode: 500, Message: "boom"})
	assert.NotErrorIs(t, other, ErrRateLimited)
}

func TestWrapGeminiError(t *testing.T) {
	assert.ErrorIs(t, wrapGeminiError(errors.New("googleapi: Error 429: Resource has been exhausted")), ErrRateLimited)
	assert.ErrorIs(t, wrapGeminiError(errors.New("rpc error: code = ResourceExhausted desc = quota")), ErrRateLimited)
	assert.NotErrorIs(t, wrapGeminiError(errors.New("rpc error: code = InvalidArgument")), ErrRateLimited)
}
