package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	instancesrender "github.com/bnema/yamcl/internal/adapters/render/instances"
	"github.com/bnema/yamcl/internal/application"
	"github.com/bnema/yamcl/internal/domain"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newInstancesCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "instances",
		Aliases: []string{"instance"},
		Short:   "Discover Minecraft instances",
	}

	cmd.AddCommand(
		newInstancesListCmd(app),
		newInstancesShowCmd(app),
	)

	return cmd
}

func newInstancesListCmd(app *app) *cobra.Command {
	var asJSON bool
	var asYAML bool
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Gather instances from the instance root, most recently played first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if asJSON || asYAML {
				instances, err := app.gather.Gather(cmd.Context())
				if err != nil {
					return err
				}
				if instances == nil {
					instances = []domain.Instance{}
				}
				return writeInstances(cmd.OutOrStdout(), instances, asYAML)
			}

			instances, err := gatherWithSpinner(cmd, app)
			if err != nil {
				return err
			}

			if limit == 0 {
				if settings, err := app.settings.Get(cmd.Context()); err == nil {
					limit = settings.InstanceSize
				}
			}
			rendered := app.instancesRenderer(instances, instancesrender.RenderOptions{
				Now:   app.now(),
				Limit: limit,
			})

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Render YAML output")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of instances to render (default: instance size setting)")
	cmd.MarkFlagsMutuallyExclusive("json", "yaml")

	return cmd
}

func newInstancesShowCmd(app *app) *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "show INSTANCE",
		Short: "Print one instance by id or name",
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

			return writeInstances(cmd.OutOrStdout(), instance, asYAML)
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Render YAML instead of JSON")

	return cmd
}

// gatherWithSpinner shows a spinner following the gather notification instead
// of notification lines when stderr is a terminal.
func gatherWithSpinner(cmd *cobra.Command, app *app) ([]domain.Instance, error) {
	var instances []domain.Instance
	gather := func(ctx context.Context) error {
		var err error
		instances, err = app.gather.Gather(ctx)
		return err
	}

	var err error
	if isTerminal(cmd.ErrOrStderr()) {
		err = runGatherProgress(cmd.Context(), cmd.ErrOrStderr(), app.redirectNotifications,
			application.GatherNotificationKey, "Gathering instances...", gather)
	} else {
		err = gather(cmd.Context())
	}
	if err != nil {
		var precondition *domain.PreconditionError
		if errors.As(err, &precondition) {
			return nil, fmt.Errorf("%w (set it with: yamcl settings set-root PATH)", err)
		}
		return nil, err
	}

	return instances, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func writeInstances(out io.Writer, value any, asYAML bool) error {
	if asYAML {
		data, err := yaml.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		_, err = out.Write(data)
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
