package fsmgine

import (
	"context"
	"log/slog"
)

// Logger receives state-change notifications during machine execution.
// Implementations must be fast: under the guarded policy they run with the
// machine's lock held.
type Logger interface {
	StateEntered(ctx context.Context, state string)
	StateExited(ctx context.Context, state string)
	TransitionFired(ctx context.Context, from, to string)
	NoTransition(ctx context.Context, state string)
}

// NopLogger discards all notifications. It is the default.
type NopLogger struct{}

func (NopLogger) StateEntered(context.Context, string)            {}
func (NopLogger) StateExited(context.Context, string)             {}
func (NopLogger) TransitionFired(context.Context, string, string) {}
func (NopLogger) NoTransition(context.Context, string)            {}

// SlogLogger implements Logger on log/slog.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger creates a SlogLogger. A nil logger falls back to
// slog.Default(). Callers that run several machines typically pass
// logger.With("machine", name).
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	if logger == nil {
		logger = slog.Default()
	}

	return &SlogLogger{logger: logger}
}

func (l *SlogLogger) StateEntered(ctx context.Context, state string) {
	l.logger.DebugContext(ctx, "state entered", "state", state)
}

func (l *SlogLogger) StateExited(ctx context.Context, state string) {
	l.logger.DebugContext(ctx, "state exited", "state", state)
}

func (l *SlogLogger) TransitionFired(ctx context.Context, from, to string) {
	l.logger.InfoContext(ctx, "transition fired", "from", from, "to", to, "self", from == to)
}

func (l *SlogLogger) NoTransition(ctx context.Context, state string) {
	l.logger.DebugContext(ctx, "no transition matched", "state", state)
}
