package catalog

import (
	"fmt"

	"github.com/agentstation/utc"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/agentstation/bootdrift/cmd/application"
	"github.com/agentstation/bootdrift/internal/cmd/alerts"
	"github.com/agentstation/bootdrift/internal/cmd/output"
)

// maxConcurrentFetches bounds parallel requests to docs.spring.io.
const maxConcurrentFetches = 4

// Fetched summarizes one downloaded catalog.
type Fetched struct {
	Tag        string   `json:"tag" yaml:"tag"`
	Entries    int      `json:"entries" yaml:"entries"`
	Properties int      `json:"properties" yaml:"properties"`
	FetchedAt  utc.Time `json:"fetchedAt" yaml:"fetched_at"`
}

// NewFetchCommand creates the catalog fetch subcommand.
func NewFetchCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <tag>...",
		Short: "Download catalogs and refresh the cache",
		Example: `  bootdrift catalog fetch 3.1.0
  bootdrift catalog fetch 2.7.18 3.2.5 3.3.0`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, app, args)
		},
	}
}

func runFetch(cmd *cobra.Command, app application.Application, tags []string) error {
	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return err
	}
	cats, err := app.Catalogs()
	if err != nil {
		return err
	}

	results := make([]Fetched, len(tags))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(maxConcurrentFetches)
	for i, tag := range tags {
		g.Go(func() error {
			cat, err := cats.Refresh(ctx, tag)
			if err != nil {
				return fmt.Errorf("fetch catalog %s: %w", tag, err)
			}
			results[i] = Fetched{
				Tag:        cat.Tag,
				Entries:    len(cat.Entries),
				Properties: len(cat.Properties),
				FetchedAt:  cat.FetchedAt,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format = output.DetectFormat(string(format), out); format.IsStructured() {
		return output.NewFormatter(format).Format(out, results)
	}

	w := alerts.NewWriter(out, app.NoColor())
	for _, r := range results {
		msg := fmt.Sprintf("Cached Spring Boot %s (%d dependencies, %d properties)", r.Tag, r.Entries, r.Properties)
		if err := w.WriteAlert(alerts.NewSuccess(msg)); err != nil {
			return err
		}
	}
	return nil
}
