package studyapi

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryClient is a decorator that retries transient errors with
// exponential backoff and jitter.
type RetryClient struct {
	inner  Client
	config RetryConfig
}

// WithRetry wraps a Client with retry logic.
func WithRetry(c Client, cfg RetryConfig) Client {
	return &RetryClient{inner: c, config: cfg}
}

func (r *RetryClient) ListCourses(ctx context.Context) ([]Course, error) {
	return retryCall(ctx, r.config, func(ctx context.Context) ([]Course, error) {
		return r.inner.ListCourses(ctx)
	})
}

func (r *RetryClient) ListTopics(ctx context.Context, courseID string) ([]string, error) {
	return retryCall(ctx, r.config, func(ctx context.Context) ([]string, error) {
		return r.inner.ListTopics(ctx, courseID)
	})
}

func (r *RetryClient) GeneratePracticeProblems(ctx context.Context, req ProblemRequest) ([]PracticeProblem, error) {
	return retryCall(ctx, r.config, func(ctx context.Context) ([]PracticeProblem, error) {
		return r.inner.GeneratePracticeProblems(ctx, req)
	})
}

func (r *RetryClient) GenerateStudyGuide(ctx context.Context, req GuideRequest) (*StudyGuide, error) {
	return retryCall(ctx, r.config, func(ctx context.Context) (*StudyGuide, error) {
		return r.inner.GenerateStudyGuide(ctx, req)
	})
}

func (r *RetryClient) StruggleData(ctx context.Context, courseID string) (map[string]float64, error) {
	return retryCall(ctx, r.config, func(ctx context.Context) (map[string]float64, error) {
		return r.inner.StruggleData(ctx, courseID)
	})
}

func (r *RetryClient) GenerateInstructorReport(ctx context.Context, courseID string) (*InstructorReport, error) {
	return retryCall(ctx, r.config, func(ctx context.Context) (*InstructorReport, error) {
		return r.inner.GenerateInstructorReport(ctx, courseID)
	})
}

// retryCall runs fn up to cfg.MaxAttempts times, backing off between
// retryable failures.
func retryCall[T any](ctx context.Context, cfg RetryConfig, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error
	invalidRetried := false

	for attempt := range cfg.MaxAttempts {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !shouldRetry(err, &invalidRetried) {
			return zero, err
		}

		// Last attempt — don't sleep, just return the error.
		if attempt == cfg.MaxAttempts-1 {
			break
		}

		wait := backoff(cfg, attempt, err)
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(wait):
		}
	}

	return zero, lastErr
}

// shouldRetry determines if an error is retryable.
func shouldRetry(err error, invalidRetried *bool) bool {
	// Context errors are never retried.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// Missing resources won't appear by retrying.
	var notFound *ErrNotFound
	if errors.As(err, &notFound) {
		return false
	}

	// Invalid response gets one retry.
	var invResp *ErrInvalidResponse
	if errors.As(err, &invResp) {
		if *invalidRetried {
			return false
		}
		*invalidRetried = true
		return true
	}

	// Rate limit and backend unavailable are retryable.
	var rl *ErrRateLimit
	if errors.As(err, &rl) {
		return true
	}
	var unavail *ErrBackendUnavailable
	if errors.As(err, &unavail) {
		return true
	}

	// Other errors (network, etc.) are treated as transient.
	return true
}

// backoff computes the wait duration for the given attempt.
func backoff(cfg RetryConfig, attempt int, err error) time.Duration {
	// Respect RetryAfter for rate limits.
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(cfg.InitialWait) * math.Pow(cfg.Multiplier, float64(attempt))
	if wait > float64(cfg.MaxWait) {
		wait = float64(cfg.MaxWait)
	}

	// Add ±20% jitter.
	jitter := wait * 0.2 * (2*rand.Float64() - 1)
	wait += jitter

	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
