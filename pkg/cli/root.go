package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/saint0x/ggreview/pkg/config"
	"github.com/saint0x/ggreview/pkg/log"
	"github.com/saint0x/ggreview/pkg/review"
	"github.com/spf13/cobra"
)

// Exit codes
const (
	ExitSuccess         = 0
	ExitUsageError      = 1
	ExitFetchError      = 2
	ExitGenerationError = 3
	ExitPublishError    = 4
)

// app carries state shared by every command
type app struct {
	envFile string
	debug   bool

	env    *config.Environment
	logger *log.Logger
}

// Execute runs the command line and returns the process exit code
func Execute(ctx context.Context, args []string) int {
	return execute(ctx, args, os.Stdout, os.Stderr)
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{}
	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		if a.logger != nil {
			a.logger.Error("%v", err)
		} else {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return ExitCode(err)
	}
	return ExitSuccess
}

// ExitCode maps a pipeline error to the process exit status
func ExitCode(err error) int {
	var (
		fetchErr   *review.FetchError
		genErr     *review.GenerationError
		publishErr *review.PublishError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &fetchErr):
		return ExitFetchError
	case errors.As(err, &genErr):
		return ExitGenerationError
	case errors.As(err, &publishErr):
		return ExitPublishError
	default:
		return ExitUsageError
	}
}

func (a *app) newRootCmd() *cobra.Command {
	var dryRun bool

	root := &cobra.Command{
		Use:   "ggreview",
		Short: "Review GitHub pull requests with Gemini",
		Long: `ggreview is a CI step that reviews the current pull request with Gemini.

It reads the pull request, its comments and changed files, looks up how the
same files changed in recently merged pull requests, and posts the model's
review as a comment.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runReview(cmd, dryRun)
		},
	}

	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", "", "Read variables from a .env file (process environment wins)")
	root.Flags().BoolVar(&dryRun, "dry-run", false, "Print the review instead of posting it")

	root.AddCommand(a.newRunCmd())
	root.AddCommand(a.newServeCmd())
	root.AddCommand(a.newInitCmd())
	root.AddCommand(a.newCheckCmd())
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	env, err := config.Load(a.envFile)
	if err != nil {
		return err
	}
	a.env = env

	level := log.ParseLevel(env.LogLevel)
	if a.debug || env.Debug {
		level = slog.LevelDebug
	}
	a.logger = log.NewWithOptions(log.Options{
		Writer: cmd.ErrOrStderr(),
		Level:  level,
	})
	return nil
}
