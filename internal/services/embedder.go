package services

import (
	"context"
	"fmt"
	"log"
)

// Embedder turns a text into a dense semantic vector. Implementations must be
// safe for concurrent use; the matcher calls EmbedText once per request and
// the store builder calls it once per canonical skill.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

type retryEmbedder struct {
	inner      Embedder
	maxRetries int
}

// NewRetryEmbedder wraps an embedder with a bounded retry loop. Meant for the
// remote providers; the local embedder never fails.
func NewRetryEmbedder(inner Embedder, maxRetries int) Embedder {
	if maxRetries < 1 {
		maxRetries = 1
	}

	return &retryEmbedder{
		inner:      inner,
		maxRetries: maxRetries,
	}
}

// EmbedText implements Embedder.
func (r *retryEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	var lastErr error

	for attempt := 1; attempt <= r.maxRetries; attempt++ {
		result, err := r.inner.EmbedText(ctx, text)
		if err == nil {
			return result, nil
		}

		lastErr = err

		// Check if context is cancelled
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		if attempt < r.maxRetries {
			log.Printf("⚠️ Embedding attempt %d failed: %v. Retrying...\n", attempt, err)
		}
	}

	return nil, fmt.Errorf("failed after %d attempts: %w", r.maxRetries, lastErr)
}
