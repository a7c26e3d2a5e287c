package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/bootdrift/cmd/bootdrift/cmd/catalog"
	"github.com/agentstation/bootdrift/cmd/bootdrift/cmd/check"
	"github.com/agentstation/bootdrift/cmd/bootdrift/cmd/compare"
)

// CreateCheckCommand creates the check command with app dependencies.
func (a *App) CreateCheckCommand() *cobra.Command {
	return check.NewCommand(a)
}

// CreateCompareCommand creates the compare command with app dependencies.
func (a *App) CreateCompareCommand() *cobra.Command {
	return compare.NewCommand(a)
}

// CreateCatalogCommand creates the catalog command with app dependencies.
func (a *App) CreateCatalogCommand() *cobra.Command {
	return catalog.NewCommand(a)
}

// CreateVersionCommand creates the version command.
func (a *App) CreateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("bootdrift %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
