// Package githubapi provides a simple GitHub API client using the GitHub CLI.
package githubapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/reviewkit/prthreads/internal/apperrors"
	"github.com/reviewkit/prthreads/internal/logging"
)

// Thread and comment page sizes are fixed. A PR exceeding either bound is
// silently truncated.
const reviewThreadsQuery = `query($owner: String!, $name: String!, $number: Int!) {
  repository(owner: $owner, name: $name) {
    pullRequest(number: $number) {
      reviewThreads(first: 100) {
        nodes {
          isResolved
          isOutdated
          comments(first: 100) {
            nodes {
              databaseId
              body
              path
              line
              diffHunk
              url
              author { login }
            }
          }
        }
      }
    }
  }
}`

// CommandRunner executes a gh CLI invocation and returns its stdout. The
// default implementation shells out to gh; tests inject a stub.
type CommandRunner func(ctx context.Context, args ...string) (string, error)

// Client wraps the gh CLI for a single repository.
type Client struct {
	logger *slog.Logger
	owner  string
	name   string
	run    CommandRunner
}

// NewClient constructs a Client for owner/name. When token is non-empty it is
// passed to gh via GITHUB_TOKEN and GH_TOKEN.
func NewClient(logger *slog.Logger, token, owner, name string) (*Client, error) {
	if strings.TrimSpace(owner) == "" || strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("repository owner and name must not be empty")
	}
	return &Client{
		logger: logger,
		owner:  owner,
		name:   name,
		run:    ghRunner(logger, token),
	}, nil
}

// NewTestClient creates a Client with a custom CommandRunner for testing.
func NewTestClient(owner, name string, run CommandRunner) *Client {
	return &Client{owner: owner, name: name, run: run}
}

// FetchReviewThreads retrieves all review threads for the given pull request
// in one GraphQL round trip, preserving the order returned by GitHub.
func (c *Client) FetchReviewThreads(ctx context.Context, number int) ([]ReviewThread, error) {
	if number <= 0 {
		return nil, fmt.Errorf("pr number must be positive")
	}

	resp := reviewThreadsResponse{}
	vars := map[string]any{
		"owner":  c.owner,
		"name":   c.name,
		"number": number,
	}
	if err := c.runGraphQL(ctx, reviewThreadsQuery, vars, &resp); err != nil {
		return nil, err
	}
	if resp.Data.Repository == nil || resp.Data.Repository.PullRequest == nil {
		return nil, fmt.Errorf("malformed graphql response: missing repository.pullRequest for %s/%s#%d", c.owner, c.name, number)
	}

	nodes := resp.Data.Repository.PullRequest.ReviewThreads.Nodes
	threads := make([]ReviewThread, 0, len(nodes))
	for _, node := range nodes {
		thread := ReviewThread{
			Resolved: node.IsResolved,
			Outdated: node.IsOutdated,
			Comments: make([]ReviewComment, 0, len(node.Comments.Nodes)),
		}
		for _, comment := range node.Comments.Nodes {
			author := ""
			if comment.Author != nil {
				author = strings.TrimSpace(comment.Author.Login)
			}
			thread.Comments = append(thread.Comments, ReviewComment{
				ID:       comment.DatabaseID,
				Author:   author,
				Body:     comment.Body,
				Path:     comment.Path,
				Line:     comment.Line,
				DiffHunk: comment.DiffHunk,
				URL:      strings.TrimSpace(comment.URL),
			})
		}
		threads = append(threads, thread)
	}
	return threads, nil
}

// CurrentBranchPR resolves the pull request number associated with the
// current branch. gh infers the repository and branch from the local
// checkout; passing --repo here would make gh demand an explicit selector.
// Returns apperrors.ErrNoPRForBranch when none exists.
func (c *Client) CurrentBranchPR(ctx context.Context) (int, error) {
	out, err := c.run(ctx, "pr", "view", "--json", "number")
	if err != nil {
		var toolErr *apperrors.ToolError
		if errors.As(err, &toolErr) && strings.Contains(toolErr.Stderr, "no pull requests found") {
			return 0, apperrors.ErrNoPRForBranch
		}
		return 0, err
	}

	var info struct {
		Number int `json:"number"`
	}
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		return 0, fmt.Errorf("decode gh pr view output: %w", err)
	}
	if info.Number <= 0 {
		return 0, apperrors.ErrNoPRForBranch
	}
	return info.Number, nil
}

func (c *Client) runGraphQL(ctx context.Context, query string, vars map[string]any, out any) error {
	args := []string{"api", "graphql", "-f", "query=" + query}
	for key, val := range vars {
		switch val.(type) {
		case int, int32, int64, uint, uint32, uint64, float32, float64, bool:
			args = append(args, "-F", fmt.Sprintf("%s=%v", key, val))
		default:
			args = append(args, "-f", fmt.Sprintf("%s=%v", key, val))
		}
	}
	if c.logger != nil {
		c.logger.Debug("github graphql query", "owner", c.owner, "repo", c.name, "vars", vars)
	}

	stdout, err := c.run(ctx, args...)
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(stdout), out); err != nil {
		return fmt.Errorf("decode github graphql response: %w", err)
	}
	if resp, ok := out.(*reviewThreadsResponse); ok && len(resp.Errors) > 0 {
		return fmt.Errorf("graphql error: %s", resp.Errors[0].Message)
	}
	return nil
}

// ghRunner builds the default CommandRunner. Stderr is captured so failures
// carry the tool's own diagnostics; on success any stderr chatter is
// forwarded to the logger at debug level.
func ghRunner(logger *slog.Logger, token string) CommandRunner {
	return func(ctx context.Context, args ...string) (string, error) {
		cmd := exec.CommandContext(ctx, "gh", args...)
		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		if token != "" {
			cmd.Env = append(os.Environ(), "GITHUB_TOKEN="+token, "GH_TOKEN="+token)
		}

		if err := cmd.Run(); err != nil {
			return "", &apperrors.ToolError{
				Cmd:    "gh " + strings.Join(args, " "),
				Stderr: strings.TrimSpace(stderr.String()),
				Err:    err,
			}
		}
		if stderr.Len() > 0 {
			_, _ = logging.NewWriter(logger, "gh").Write(stderr.Bytes())
		}
		return stdout.String(), nil
	}
}
