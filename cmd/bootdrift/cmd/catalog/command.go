// Package catalog provides commands for managing cached Spring Boot catalogs.
package catalog

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/bootdrift/cmd/application"
)

// NewCommand creates the catalog command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "catalog",
		Aliases: []string{"catalogs"},
		GroupID: "management",
		Short:   "Manage cached Spring Boot dependency catalogs",
		Long: `A catalog is the table of dependency versions a Spring Boot release manages,
as published in the "Dependency Versions" appendix of its reference
documentation. Catalogs are cached on disk under the configured cache_dir.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(NewFetchCommand(app))
	cmd.AddCommand(NewListCommand(app))
	cmd.AddCommand(NewShowCommand(app))
	cmd.AddCommand(NewClearCommand(app))

	return cmd
}
