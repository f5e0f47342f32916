package cli

import (
	"github.com/saint0x/ggreview/pkg/workflow"
	"github.com/spf13/cobra"
)

func (a *app) newInitCmd() *cobra.Command {
	var force, remove bool

	cmd := &cobra.Command{
		Use:   "init [repo-path]",
		Short: "Install the GitHub Actions workflow that runs the review",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repoPath := "."
			if len(args) == 1 {
				repoPath = args[0]
			}

			manager := workflow.New(a.logger)
			if remove {
				return manager.Remove(repoPath)
			}

			if _, err := manager.Install(repoPath, force); err != nil {
				return err
			}
			a.logger.Info("Add a GEMINI_API_KEY repository secret to enable reviews")
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing workflow")
	cmd.Flags().BoolVar(&remove, "remove", false, "Remove the workflow instead of installing it")
	return cmd
}
