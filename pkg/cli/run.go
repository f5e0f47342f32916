package cli

import (
	"context"
	"io"

	"github.com/saint0x/ggreview/pkg/ai"
	"github.com/saint0x/ggreview/pkg/github"
	"github.com/saint0x/ggreview/pkg/review"
	"github.com/spf13/cobra"
)

func (a *app) newRunCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Review the pull request named by GITHUB_REPOSITORY and GITHUB_REF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runReview(cmd, dryRun)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the review instead of posting it")
	return cmd
}

func (a *app) runReview(cmd *cobra.Command, dryRun bool) error {
	if err := a.env.ValidateReview(); err != nil {
		return err
	}

	prc := review.ResolveContext(a.env.Repository, a.env.Ref)
	if prc.Number == 0 {
		a.logger.Warning("No pull request number in GITHUB_REF=%q", a.env.Ref)
	}

	var out io.Writer
	if dryRun {
		out = cmd.OutOrStdout()
	}

	runner, err := a.newRunner(cmd.Context(), out)
	if err != nil {
		return err
	}

	result, err := runner.Run(cmd.Context(), prc)
	if err != nil {
		return err
	}
	if result.Skipped {
		a.logger.Success("Nothing to review")
	}
	return nil
}

// newRunner builds the GitHub and Gemini clients from the environment
func (a *app) newRunner(ctx context.Context, dryRun io.Writer) (*review.Runner, error) {
	gh, err := github.New(a.logger, github.Options{
		Token:             a.env.GitHubToken,
		BaseURL:           a.env.GitHubAPIURL,
		RequestsPerSecond: a.env.RequestsPerSecond,
	})
	if err != nil {
		return nil, err
	}

	gen, err := ai.New(ctx, a.logger, ai.Options{
		APIKey:  a.env.GeminiAPIKey,
		Model:   a.env.GeminiModel,
		BaseURL: a.env.GeminiBaseURL,
	})
	if err != nil {
		return nil, err
	}

	return review.NewRunner(a.logger, gh, gen, review.Options{
		ExcludeExtensions: a.env.ExcludeExtensions,
		HistoryScanLimit:  a.env.HistoryScanLimit,
		HistoryMatchLimit: a.env.HistoryMatchLimit,
		DryRun:            dryRun,
	}), nil
}
