// Package cli defines the command-line interface for prthreads.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/reviewkit/prthreads/internal/config"
	"github.com/reviewkit/prthreads/internal/githubapi"
	"github.com/reviewkit/prthreads/internal/gitrepo"
	"github.com/reviewkit/prthreads/internal/logging"
)

// Execute builds the root command, runs it with the provided args and logger, and returns any error.
func Execute(args []string, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewLogger(os.Stderr, logging.LevelInfo)
	}

	rootCmd := newRootCommand(logger)
	rootCmd.SetArgs(args)

	return rootCmd.Execute()
}

// newRootCommand constructs the root cobra.Command. The tool takes at most
// one positional argument and no flags; settings come from .prthreads.yaml
// and PRTHREADS_* env vars.
func newRootCommand(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "prthreads [pr-number]",
		Short: "Render pull request review threads as Markdown",
		Long: `prthreads fetches the review threads of a GitHub pull request and prints
them as a Markdown report, unresolved threads first, with diff context and
reply chains.

Without an argument it reports on the pull request associated with the
current branch. The repository is taken from the configured git remote.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.DefaultPath)
			if err != nil {
				return err
			}
			logger = logging.NewLogger(cmd.ErrOrStderr(), logging.ParseLevel(cfg.LogLevel))

			number := 0
			if len(args) == 1 {
				number, err = parsePRNumber(args[0])
				if err != nil {
					return err
				}
			}

			newFetcher := func(owner, name string) (threadFetcher, error) {
				return githubapi.NewClient(logger, cfg.Token, owner, name)
			}
			return runReport(cmd.Context(), logger, cfg, number, gitrepo.New(), newFetcher, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

// parsePRNumber validates the positional PR number argument.
func parsePRNumber(arg string) (int, error) {
	number, err := strconv.Atoi(arg)
	if err != nil || number <= 0 {
		return 0, fmt.Errorf("invalid pr number %q, expected a positive integer", arg)
	}
	return number, nil
}
