// Package logger configures the process-wide slog logger. The trace
// goes to a file rather than stdout: the terminal is the game display.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jwebster45206/adventure-engine/internal/config"
)

// Setup builds the logger from config and installs it as the slog
// default. The returned closer owns the log file; call it at shutdown.
func Setup(cfg *config.Config) (*slog.Logger, io.Closer, error) {
	var w io.Writer = io.Discard
	var closer io.Closer

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file %s: %w", cfg.LogFile, err)
		}
		w = f
		closer = f
	}

	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}

	var handler slog.Handler
	if cfg.Environment == "production" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, closer, nil
}
