package catalog

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/bootdrift/cmd/application"
	"github.com/agentstation/bootdrift/internal/cmd/output"
	"github.com/agentstation/bootdrift/internal/cmd/table"
	"github.com/agentstation/bootdrift/pkg/catalog"
)

// NewShowCommand creates the catalog show subcommand.
func NewShowCommand(app application.Application) *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "show <tag>",
		Short: "Print the versions a Spring Boot release manages",
		Example: `  bootdrift catalog show 3.1.0
  bootdrift catalog show 3.1.0 -o wide`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, app, args[0], offline)
		},
	}
	cmd.Flags().BoolVar(&offline, "offline", false, "use cached catalogs only")

	return cmd
}

func runShow(cmd *cobra.Command, app application.Application, tag string, offline bool) error {
	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return err
	}

	var opts []catalog.Option
	if offline {
		opts = append(opts, catalog.WithOffline(true))
	}
	cats, err := app.Catalogs(opts...)
	if err != nil {
		return err
	}
	cat, err := cats.Catalog(cmd.Context(), tag)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format = output.DetectFormat(string(format), out); format.IsStructured() {
		return output.NewFormatter(format).Format(out, cat)
	}

	fmt.Fprintf(out, "Spring Boot %s manages %d dependencies\n\n", cat.Tag, len(cat.Entries))
	formatter := output.NewFormatter(format)
	if err := formatter.Format(out, table.EntriesToTableData(cat.Entries)); err != nil {
		return err
	}
	if format == output.FormatWide && len(cat.Properties) > 0 {
		fmt.Fprintln(out)
		return formatter.Format(out, table.PropertiesToTableData(cat.Properties))
	}
	return nil
}
