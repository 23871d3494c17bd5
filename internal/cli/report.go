package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/reviewkit/prthreads/internal/apperrors"
	"github.com/reviewkit/prthreads/internal/config"
	"github.com/reviewkit/prthreads/internal/githubapi"
	"github.com/reviewkit/prthreads/internal/gitrepo"
	"github.com/reviewkit/prthreads/internal/report"
)

// repoResolver reads repository coordinates and branch state from local git
// configuration. Satisfied by *gitrepo.Git; tests inject a stub.
type repoResolver interface {
	Detect(ctx context.Context, remote string) (gitrepo.Repo, error)
	CurrentBranch(ctx context.Context) (string, error)
}

// threadFetcher is the slice of the GitHub client the pipeline uses.
type threadFetcher interface {
	CurrentBranchPR(ctx context.Context) (int, error)
	FetchReviewThreads(ctx context.Context, number int) ([]githubapi.ReviewThread, error)
}

// fetcherFactory builds a threadFetcher once the repository is known.
type fetcherFactory func(owner, name string) (threadFetcher, error)

// runReport drives the pipeline: resolve the repository, locate the pull
// request, fetch its review threads, render Markdown to stdout.
func runReport(ctx context.Context, logger *slog.Logger, cfg config.Config, number int, git repoResolver, newFetcher fetcherFactory, stdout, stderr io.Writer) error {
	repo, err := git.Detect(ctx, cfg.Remote)
	if err != nil {
		return err
	}
	logger.Debug("resolved repository", "owner", repo.Owner, "repo", repo.Name, "remote", cfg.Remote)

	client, err := newFetcher(repo.Owner, repo.Name)
	if err != nil {
		return err
	}

	if number == 0 {
		number, err = client.CurrentBranchPR(ctx)
		if errors.Is(err, apperrors.ErrNoPRForBranch) {
			branch, branchErr := git.CurrentBranch(ctx)
			if branchErr != nil {
				branch = "(unknown)"
			}
			printNoPRHint(stderr, branch)
			return nil
		}
		if err != nil {
			return err
		}
		logger.Debug("located pull request for current branch", "pr", number)
	}

	threads, err := client.FetchReviewThreads(ctx, number)
	if err != nil {
		return err
	}
	logger.Debug("fetched review threads", "pr", number, "threads", len(threads))

	_, err = io.WriteString(stdout, report.Render(threads))
	return err
}

// printNoPRHint explains the no-PR-for-branch case. Not an error; the caller
// exits zero.
func printNoPRHint(w io.Writer, branch string) {
	fmt.Fprintf(w, "No open pull request found for branch %q.\n\n", branch)
	fmt.Fprintf(w, "  - pass a PR number explicitly: prthreads <number>\n")
	fmt.Fprintf(w, "  - or open one first: gh pr create\n")
}
