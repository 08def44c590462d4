package studyapi

import (
	"encoding/json"
	"fmt"
	"time"
)

// ErrRateLimit indicates the backend returned a rate limit response (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the backend returned a payload that does not
// conform to the expected schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid backend response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrBackendUnavailable indicates a transport failure or a non-success
// response from the generation backend.
type ErrBackendUnavailable struct {
	Err error
}

func (e *ErrBackendUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation backend unavailable: %v", e.Err)
	}
	return "generation backend unavailable"
}

func (e *ErrBackendUnavailable) Unwrap() error { return e.Err }

// ErrNotFound indicates the requested course or resource does not exist.
type ErrNotFound struct {
	Resource string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}
