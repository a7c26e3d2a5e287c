package catalog

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/bootdrift/cmd/application"
	"github.com/agentstation/bootdrift/internal/cmd/alerts"
)

// NewClearCommand creates the catalog clear subcommand.
func NewClearCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "clear [tag]...",
		Short: "Remove cached catalogs",
		Long:  `Clear removes the given releases from the cache, or the whole cache when no release is named.`,
		Example: `  bootdrift catalog clear
  bootdrift catalog clear 2.7.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClear(cmd, app, args)
		},
	}
}

func runClear(cmd *cobra.Command, app application.Application, tags []string) error {
	cache, err := app.Cache()
	if err != nil {
		return err
	}
	w := alerts.NewWriter(cmd.OutOrStdout(), app.NoColor())

	if len(tags) == 0 {
		if err := cache.Clear(); err != nil {
			return err
		}
		return w.WriteAlert(alerts.NewSuccess(fmt.Sprintf("Cleared %s", cache.Dir())))
	}

	for _, tag := range tags {
		if err := cache.Delete(tag); err != nil {
			return err
		}
		app.Logger().Debug().Str("boot_version", tag).Msg("Removed cached catalog")
	}
	return w.WriteAlert(alerts.NewSuccess(fmt.Sprintf("Removed %d cached catalog(s)", len(tags))))
}
