package llm

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/agenthands/notekeeper/internal/core/model"
	"github.com/agenthands/notekeeper/internal/observability"
)

// RetryingClient retries a rate-limited call after a fixed, blocking wait.
// Any other error is returned immediately, as is the error of the last retry.
// At most one retry is ever made.
type RetryingClient struct {
	Client     Client
	Delay      time.Duration
	MaxRetries int
	Sleep      func(time.Duration)
	Logger     *slog.Logger
	Metrics    *observability.Metrics
}

func NewRetryingClient(client Client, delay time.Duration, maxRetries int, logger *slog.Logger, metrics *observability.Metrics) *RetryingClient {
	if logger == nil {
		logger = slog.Default()
	}
	maxRetries = min(max(maxRetries, 0), 1)
	return &RetryingClient{
		Client:     client,
		Delay:      delay,
		MaxRetries: maxRetries,
		Sleep:      time.Sleep,
		Logger:     logger,
		Metrics:    metrics,
	}
}

func (r *RetryingClient) Generate(ctx context.Context, prompt string) (string, error) {
	return r.do(func() (string, error) {
		return r.Client.Generate(ctx, prompt)
	})
}

func (r *RetryingClient) Chat(ctx context.Context, history []model.Turn, text string) (string, error) {
	return r.do(func() (string, error) {
		return r.Client.Chat(ctx, history, text)
	})
}

func (r *RetryingClient) do(call func() (string, error)) (string, error) {
	out, err := call()
	for attempt := 0; err != nil && errors.Is(err, ErrRateLimited) && attempt < r.MaxRetries; attempt++ {
		r.Logger.Warn("model rate limited, waiting before retry", "delay", r.Delay, "attempt", attempt+1)
		r.Metrics.ObserveRateLimitRetry()
		r.Sleep(r.Delay)
		out, err = call()
	}
	return out, err
}
