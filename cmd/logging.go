package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// setupLogger installs the default slog logger. Logs always go to stderr so that
// stdout stays clean for results and the MCP protocol.
func setupLogger(level, format string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return fmt.Errorf("invalid log level %q: must be debug, info, warn, error", level)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		handler = slog.NewTextHandler(os.Stderr, opts)
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		return fmt.Errorf("invalid log format %q: must be text, json", format)
	}

	slog.SetDefault(slog.New(handler))
	return nil
}
