package logging

import (
	"log/slog"
	"strings"
)

// Writer is an io.Writer implementation that forwards external tool output to
// slog at debug level, one line per write.
type Writer struct {
	logger *slog.Logger
	tool   string
}

// NewWriter constructs a Writer that attributes logged lines to the named tool.
func NewWriter(logger *slog.Logger, tool string) *Writer {
	return &Writer{logger: logger, tool: tool}
}

// Write logs the given bytes as individual lines at debug level.
func (w *Writer) Write(p []byte) (int, error) {
	if w.logger != nil {
		for _, line := range strings.Split(string(p), "\n") {
			if line = strings.TrimRight(line, "\r"); line != "" {
				w.logger.Debug("tool output", "tool", w.tool, "line", line)
			}
		}
	}
	return len(p), nil
}
