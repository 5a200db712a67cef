package natsutil

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

// EnsureStreamWithRetry creates or opens a JetStream stream with retry logic.
//
// Several daemons may start at once and race to create the same stream; a
// "stream name already in use" answer opens the existing stream instead. Other
// failures are retried with jittered backoff until maxRetries attempts are used.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - js: JetStream context
//   - config: Stream configuration
//   - maxRetries: Maximum number of attempts (default: 3)
//
// Returns:
//   - jetstream.Stream: The stream handle
//   - error: Last error after all attempts
//
// Example:
//
//	stream, err := natsutil.EnsureStreamWithRetry(ctx, js, jetstream.StreamConfig{
//	    Name:     "SEATING_AUDIT",
//	    Subjects: []string{"seating.audit.>"},
//	}, 3)
func EnsureStreamWithRetry(
	ctx context.Context,
	js jetstream.JetStream,
	config jetstream.StreamConfig,
	maxRetries int,
) (jetstream.Stream, error) {
	return ensureStream(ctx, js, config, maxRetries, 0)
}

func ensureStream(ctx context.Context, js jetstream.JetStream, config jetstream.StreamConfig, maxRetries int, seed uint64) (jetstream.Stream, error) {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	rng := newRetryRNG(seed)

	var (
		lastErr error
		delay   time.Duration
	)
	for attempt := 0; attempt < maxRetries; attempt++ {
		stream, err := js.CreateStream(ctx, config)
		if err == nil {
			return stream, nil
		}

		if errors.Is(err, jetstream.ErrStreamNameAlreadyInUse) {
			stream, err := js.Stream(ctx, config.Name)
			if err == nil {
				return stream, nil
			}
			lastErr = fmt.Errorf("stream exists but failed to open: %w", err)
		} else {
			lastErr = err
		}

		if ctx.Err() != nil {
			return nil, fmt.Errorf("context cancelled during stream creation: %w", ctx.Err())
		}

		if attempt < maxRetries-1 {
			delay = jitterBackoff(delay, retryBase, retryMultiplier, retryCap, rng)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return nil, fmt.Errorf("failed to create/open stream %s after %d attempts: %w",
		config.Name, maxRetries, lastErr)
}
