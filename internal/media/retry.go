package media

import (
	"bytes"
	"context"
	"errors"
	"io"
	"time"
)

// RetryUploader wraps an Uploader with a small retry policy: mobile
// networks drop requests often enough that one failed POST should not
// cost the seller their publish. Missing configuration is never retried.
type RetryUploader struct {
	Next     Uploader
	Attempts int
	Backoff  time.Duration
}

func WithRetry(next Uploader) *RetryUploader {
	return &RetryUploader{Next: next, Attempts: 3, Backoff: 500 * time.Millisecond}
}

func (r *RetryUploader) Upload(ctx context.Context, image io.Reader) (string, error) {
	// Buffer once so every attempt replays the same bytes.
	buf, err := io.ReadAll(image)
	if err != nil {
		return "", err
	}

	attempts := r.Attempts
	if attempts < 1 {
		attempts = 1
	}
	backoff := r.Backoff

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			timer := time.NewTimer(backoff)
			select {
			case <-ctx.Done():
				timer.Stop()
				return "", ctx.Err()
			case <-timer.C:
			}
			backoff *= 2
		}

		url, err := r.Next.Upload(ctx, bytes.NewReader(buf))
		if err == nil {
			return url, nil
		}
		if errors.Is(err, ErrNotConfigured) || ctx.Err() != nil {
			return "", err
		}
		lastErr = err
	}
	return "", lastErr
}
