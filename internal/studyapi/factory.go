package studyapi

import (
	"fmt"

	"go.uber.org/zap"
)

// NewClient creates a Client from configuration.
// It returns the client wrapped with retry and logging middleware.
func NewClient(cfg Config, log *zap.Logger) (Client, error) {
	var base Client
	var err error

	switch cfg.Backend {
	case "http":
		base, err = NewHTTPClient(cfg)
	case "mock":
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unknown backend: %q", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s backend: %w", cfg.Backend, err)
	}

	// Wrap with middleware: caller → retry → logging → base
	logged := WithLogging(base, log)
	retried := WithRetry(logged, cfg.Retry)

	return retried, nil
}
