package trialpack

import (
	"log/slog"
	"time"
)

// Service renders submission documents from markdown sources.
type Service struct {
	log *slog.Logger
	now func() time.Time
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithLogger, WithClock).
func New(opts ...Option) *Service {
	s := &Service{
		log: slog.Default(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
