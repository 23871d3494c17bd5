// Package gitrepo resolves the GitHub repository and branch from local git configuration.
package gitrepo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/reviewkit/prthreads/internal/apperrors"
)

var (
	// SSH format: git@github.com:owner/repo.git
	sshPattern = regexp.MustCompile(`^git@github\.com:([^/]+)/([^/]+?)(?:\.git)?$`)

	// HTTPS format: https://github.com/owner/repo.git
	httpsPattern = regexp.MustCompile(`^https?://github\.com/([^/]+)/([^/]+?)(?:\.git)?$`)
)

// Repo identifies a GitHub repository by owner and name.
type Repo struct {
	Owner string
	Name  string
}

// CommandRunner executes a git invocation and returns its stdout, trimmed.
// The default implementation shells out to git; tests inject a stub.
type CommandRunner func(ctx context.Context, args ...string) (string, error)

// Git reads repository coordinates and branch state from local git config.
type Git struct {
	run CommandRunner
}

// New constructs a Git backed by the git binary.
func New() *Git {
	return &Git{run: runGit}
}

// NewTestGit creates a Git with a custom CommandRunner for testing.
func NewTestGit(run CommandRunner) *Git {
	return &Git{run: run}
}

// Parse extracts the owner and repository name from a git remote URL in SSH
// or HTTPS form. The trailing .git suffix is stripped.
func Parse(url string) (Repo, error) {
	url = strings.TrimSpace(url)

	if m := sshPattern.FindStringSubmatch(url); m != nil {
		return Repo{Owner: m[1], Name: m[2]}, nil
	}
	if m := httpsPattern.FindStringSubmatch(url); m != nil {
		return Repo{Owner: m[1], Name: m[2]}, nil
	}

	return Repo{}, &apperrors.ConfigError{
		URL:    url,
		Reason: "not a recognized github.com owner/repo remote",
	}
}

// Detect reads the URL of the named remote and parses it into a Repo.
func (g *Git) Detect(ctx context.Context, remote string) (Repo, error) {
	out, err := g.run(ctx, "remote", "get-url", remote)
	if err != nil {
		var toolErr *apperrors.ToolError
		if errors.As(err, &toolErr) {
			return Repo{}, &apperrors.ConfigError{
				Reason: fmt.Sprintf("remote %q is not configured: %s", remote, toolErr.Stderr),
			}
		}
		return Repo{}, err
	}
	return Parse(out)
}

// CurrentBranch returns the name of the currently checked-out branch.
func (g *Git) CurrentBranch(ctx context.Context) (string, error) {
	return g.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
}

func runGit(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", &apperrors.ToolError{
			Cmd:    "git " + strings.Join(args, " "),
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}
	return strings.TrimSpace(stdout.String()), nil
}
