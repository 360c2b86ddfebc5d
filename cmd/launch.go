package cmd

import (
	"fmt"

	"github.com/bnema/yamcl/internal/application"
	"github.com/bnema/yamcl/internal/domain"
	"github.com/spf13/cobra"
)

func newLaunchCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "launch INSTANCE",
		Short: "Launch an instance by id or name with the matching runtime",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			instances, err := app.gather.Gather(cmd.Context())
			if err != nil {
				return err
			}

			instance, err := application.FindInstance(instances, args[0])
			if err != nil {
				return err
			}

			status, err := app.launcher.Launch(cmd.Context(), instance)
			if err != nil {
				return err
			}
			if status.Status == domain.NotificationError {
				return fmt.Errorf("%s: %s", instance.Name, status.Text)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), status.Text)
			return err
		},
	}
}
