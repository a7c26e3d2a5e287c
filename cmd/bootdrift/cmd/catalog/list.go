package catalog

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/bootdrift/cmd/application"
	"github.com/agentstation/bootdrift/internal/cmd/output"
	"github.com/agentstation/bootdrift/internal/cmd/table"
)

// Listing is the structured form of catalog list.
type Listing struct {
	Dir  string   `json:"dir" yaml:"dir"`
	Tags []string `json:"tags" yaml:"tags"`
}

// NewListCommand creates the catalog list subcommand.
func NewListCommand(app application.Application) *cobra.Command {
	var constraint string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List cached catalogs",
		Example: `  bootdrift catalog list
  bootdrift catalog list --constraint ">= 3.1, < 3.3"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, app, constraint)
		},
	}
	cmd.Flags().StringVar(&constraint, "constraint", "",
		"only list releases matching a semantic version constraint")

	return cmd
}

func runList(cmd *cobra.Command, app application.Application, constraint string) error {
	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return err
	}
	cache, err := app.Cache()
	if err != nil {
		return err
	}

	var tags []string
	if constraint != "" {
		tags, err = cache.Matching(constraint)
	} else {
		tags, err = cache.Tags()
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format = output.DetectFormat(string(format), out); format.IsStructured() {
		return output.NewFormatter(format).Format(out, Listing{Dir: cache.Dir(), Tags: tags})
	}

	if len(tags) == 0 {
		fmt.Fprintf(out, "No cached catalogs in %s\n", cache.Dir())
		return nil
	}
	return output.NewFormatter(format).Format(out, table.TagsToTableData(tags))
}
