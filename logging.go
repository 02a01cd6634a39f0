package boardkit

import (
	"log/slog"

	"github.com/cruisedesk/boardkit/internal/logging"
	"github.com/cruisedesk/boardkit/types"
)

// NewSlogLogger adapts a *slog.Logger to the Logger interface.
func NewSlogLogger(logger *slog.Logger) types.Logger {
	return logging.NewSlog(logger)
}

// NewSlogDefault returns a Logger backed by slog.Default().
func NewSlogDefault() types.Logger {
	return logging.NewSlogDefault()
}

// NewNopLogger returns a Logger that discards everything. This is the
// default when no WithLogger option is given.
func NewNopLogger() types.Logger {
	return logging.NewNop()
}
