package cmd

import (
	"fmt"
	"strings"

	"github.com/bnema/yamcl/internal/adapters/render/tables"
	"github.com/bnema/yamcl/internal/domain"
	"github.com/spf13/cobra"
)

func newVersionsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "versions",
		Short: "Query the Minecraft release manifest",
	}

	cmd.AddCommand(newVersionsListCmd(app))

	return cmd
}

func newVersionsListCmd(app *app) *cobra.Command {
	var types []string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List known releases, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := make([]domain.ReleaseType, 0, len(types))
			for _, t := range types {
				releaseType, err := parseReleaseType(t)
				if err != nil {
					return err
				}
				filter = append(filter, releaseType)
			}

			releases, err := app.catalog.Releases(cmd.Context(), filter...)
			if err != nil {
				return err
			}
			if limit > 0 && len(releases) > limit {
				releases = releases[:limit]
			}

			tables.Releases(cmd.OutOrStdout(), releases)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&types, "type", nil, "Release types to include (release, snapshot, old_beta, old_alpha)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of releases to print")

	return cmd
}

func parseReleaseType(value string) (domain.ReleaseType, error) {
	switch t := domain.ReleaseType(strings.ToLower(strings.TrimSpace(value))); t {
	case domain.ReleaseTypeRelease, domain.ReleaseTypeSnapshot, domain.ReleaseTypeOldBeta, domain.ReleaseTypeOldAlpha:
		return t, nil
	default:
		return "", fmt.Errorf("unknown release type %q", value)
	}
}
