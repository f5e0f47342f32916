package cli

import (
	"fmt"

	"github.com/saint0x/ggreview/pkg/server"
	"github.com/spf13/cobra"
)

func (a *app) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Review pull requests as GitHub webhook events arrive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.env.ValidateServe(); err != nil {
				return err
			}

			a.logger.Step("Starting ggreview server...")
			runner, err := a.newRunner(cmd.Context(), nil)
			if err != nil {
				return err
			}

			srv, err := server.New(a.logger, runner, server.Options{
				Port:          a.env.Port,
				WebhookSecret: a.env.WebhookSecret,
			})
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}

			// Start returns once the signal context is cancelled
			if err := srv.Start(cmd.Context()); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		},
	}
}
