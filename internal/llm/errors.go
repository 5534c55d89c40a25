package llm

import (
	"errors"
	"fmt"
)

// ErrRateLimited marks a backend reply that asked the caller to slow down.
// Backends wrap their native error with it so callers can match with errors.Is.
var ErrRateLimited = errors.New("llm: rate limited")

var errNoContent = errors.New("no response content")

func rateLimited(err error) error {
	return fmt.Errorf("%w: %w", ErrRateLimited, err)
}
