package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/yamcl/internal/adapters/render/tables"
	"github.com/bnema/yamcl/internal/application"
	"github.com/bnema/yamcl/internal/domain"
	"github.com/spf13/cobra"
)

func newRuntimeCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "runtime",
		Aliases: []string{"runtimes", "java"},
		Short:   "Manage Java runtimes and the release ranges they serve",
	}

	cmd.AddCommand(
		newRuntimeListCmd(app),
		newRuntimeAddCmd(app),
		newRuntimeSetCmd(app),
		newRuntimeRemoveCmd(app),
		newRuntimeProbeCmd(app),
		newRuntimeSelectCmd(app),
	)

	return cmd
}

func newRuntimeListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured runtimes in priority order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runtimes, err := app.runtimes.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(runtimes) == 0 {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "No runtimes configured.")
				return err
			}

			tables.Runtimes(cmd.OutOrStdout(), runtimes)
			return nil
		},
	}
}

func newRuntimeAddCmd(app *app) *cobra.Command {
	var add application.AddRuntimeCommand

	cmd := &cobra.Command{
		Use:   "add PATH",
		Short: "Register a Java executable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			add.Path = args[0]
			index, err := app.runtimes.Add(cmd.Context(), add)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added runtime %d: %s\n", index, add.Path)
			return err
		},
	}

	cmd.Flags().StringVar(&add.Label, "label", "", "Display label (default: \""+domain.DefaultRuntimeLabel+"\")")
	cmd.Flags().StringVar(&add.MinID, "min", "", "Oldest release id served (range is inactive unless both bounds are set)")
	cmd.Flags().StringVar(&add.MaxID, "max", "", "Newest release id served")
	cmd.Flags().IntVar(&add.HeapMaxMB, "xmx", 0, "Maximum heap in MB")
	cmd.Flags().IntVar(&add.HeapMinMB, "xms", 0, "Initial heap in MB")
	cmd.Flags().StringVar(&add.ExtraArgs, "args", "", "Extra JVM arguments")

	return cmd
}

func newRuntimeSetCmd(app *app) *cobra.Command {
	var label, minID, maxID, extraArgs string
	var heapMax, heapMin int
	var inactive bool

	cmd := &cobra.Command{
		Use:   "set INDEX",
		Short: "Change a configured runtime",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseRuntimeIndex(args[0])
			if err != nil {
				return err
			}

			update := application.UpdateRuntimeCommand{Index: index}
			flags := cmd.Flags()
			if flags.Changed("label") {
				update.Label = &label
			}
			if flags.Changed("args") {
				update.ExtraArgs = &extraArgs
			}
			if flags.Changed("xmx") {
				update.HeapMaxMB = &heapMax
			}
			if flags.Changed("xms") {
				update.HeapMinMB = &heapMin
			}
			switch {
			case inactive:
				r := domain.InactiveRange()
				update.Range = &r
			case flags.Changed("min") || flags.Changed("max"):
				if minID == "" || maxID == "" {
					return errors.New("--min and --max must be set together")
				}
				r := domain.ActiveRange(minID, maxID)
				update.Range = &r
			}

			runtime, err := app.runtimes.Update(cmd.Context(), update)
			if err != nil {
				return err
			}
			tables.Runtime(cmd.OutOrStdout(), index, runtime)
			return nil
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "Display label")
	cmd.Flags().StringVar(&minID, "min", "", "Oldest release id served")
	cmd.Flags().StringVar(&maxID, "max", "", "Newest release id served")
	cmd.Flags().BoolVar(&inactive, "inactive", false, "Stop matching any release")
	cmd.Flags().IntVar(&heapMax, "xmx", 0, "Maximum heap in MB")
	cmd.Flags().IntVar(&heapMin, "xms", 0, "Initial heap in MB")
	cmd.Flags().StringVar(&extraArgs, "args", "", "Extra JVM arguments")
	cmd.MarkFlagsMutuallyExclusive("inactive", "min")
	cmd.MarkFlagsMutuallyExclusive("inactive", "max")

	return cmd
}

func newRuntimeRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove INDEX",
		Short: "Remove a configured runtime",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseRuntimeIndex(args[0])
			if err != nil {
				return err
			}

			removed, err := app.runtimes.Remove(cmd.Context(), index)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Removed runtime %d: %s\n", index, removed.Path)
			return err
		},
	}
}

func newRuntimeProbeCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "probe INDEX",
		Short: "Run the runtime with -version and store the detected version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseRuntimeIndex(args[0])
			if err != nil {
				return err
			}

			runtime, err := app.runtimes.Probe(cmd.Context(), index)
			if err != nil {
				return fmt.Errorf("probe runtime %d: %w", index, err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Runtime %d: %s\n", index, runtime.Version)
			return err
		},
	}
}

func newRuntimeSelectCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "select RELEASE",
		Short: "Show which runtime would launch a release",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runtime, err := app.selector.SelectFor(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%s)\n", args[0], runtime.Path, runtime.Label)
			return err
		},
	}
}

func parseRuntimeIndex(value string) (int, error) {
	index, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || index < 0 {
		return 0, fmt.Errorf("invalid runtime index %q", value)
	}
	return index, nil
}
