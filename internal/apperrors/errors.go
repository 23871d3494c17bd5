// Package apperrors defines the error kinds prthreads distinguishes when
// mapping failures to user-facing messages and exit codes.
package apperrors

import (
	"errors"
	"fmt"
)

// ErrNoPRForBranch indicates the current branch has no associated pull
// request. The CLI treats this as an informational case, not a failure.
var ErrNoPRForBranch = errors.New("no pull request for current branch")

// ConfigError indicates the local repository configuration could not be
// turned into an owner/repo pair.
type ConfigError struct {
	// URL is the offending remote URL, empty when no URL was configured.
	URL string
	// Reason describes what was wrong with the configuration.
	Reason string
}

func (e *ConfigError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("configuration error: %s (remote url %q)", e.Reason, e.URL)
	}
	return "configuration error: " + e.Reason
}

// ToolError indicates an external command exited non-zero. Stderr carries the
// command's captured error output verbatim.
type ToolError struct {
	// Cmd is the command line that failed.
	Cmd string
	// Stderr is the captured standard-error output, trimmed.
	Stderr string
	// Err is the underlying exec error.
	Err error
}

func (e *ToolError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s failed: %s", e.Cmd, e.Stderr)
	}
	return fmt.Sprintf("%s failed: %v", e.Cmd, e.Err)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}
