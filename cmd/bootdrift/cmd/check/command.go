// Package check provides the command that reports version drift in a manifest.
package check

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/bootdrift/cmd/application"
	"github.com/agentstation/bootdrift/internal/cmd/alerts"
	"github.com/agentstation/bootdrift/internal/cmd/output"
	"github.com/agentstation/bootdrift/internal/cmd/table"
	"github.com/agentstation/bootdrift/pkg/catalog"
	"github.com/agentstation/bootdrift/pkg/errors"
	"github.com/agentstation/bootdrift/pkg/inspect"
)

// Flags holds check-specific flags.
type Flags struct {
	BootVersion string
	HideSame    bool
	Offline     bool
}

// NewCommand creates the check command.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "check <file>",
		Aliases: []string{"inspect"},
		GroupID: "core",
		Short:   "Compare a manifest's dependency versions with Spring Boot's",
		Long: `Check reads a CycloneDX SBOM (.json), a Maven POM (.xml) or a Gradle build
script (.gradle, .gradle.kts), detects the Spring Boot release it builds
against, and reports every dependency whose version is pinned to something
Spring Boot already manages.

Each pinned dependency is classified as older, same or newer than the
managed version. Catalogs are downloaded from docs.spring.io on first use
and cached on disk.`,
		Example: `  bootdrift check pom.xml
  bootdrift check build.gradle.kts --hide-same
  bootdrift check bom.json --boot-version 3.2.5 -o json
  bootdrift check pom.xml --offline`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.BootVersion, "boot-version", "",
		"check against this Spring Boot release instead of the detected one")
	cmd.Flags().BoolVar(&flags.HideSame, "hide-same", false,
		"only list dependencies whose version differs")
	cmd.Flags().BoolVar(&flags.Offline, "offline", false,
		"use cached catalogs only")

	return cmd
}

func run(cmd *cobra.Command, app application.Application, path string, flags *Flags) error {
	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	format = output.DetectFormat(string(format), out)

	var catOpts []catalog.Option
	if flags.Offline {
		catOpts = append(catOpts, catalog.WithOffline(true))
	}
	cats, err := app.Catalogs(catOpts...)
	if err != nil {
		return err
	}

	inspector := inspect.New(cats,
		inspect.WithLogger(app.Logger()),
		inspect.WithBootVersion(flags.BootVersion),
	)
	report, err := inspector.Inspect(cmd.Context(), path)
	if errors.IsUnsupportedFormat(err) {
		return fmt.Errorf("%w; expected .json, .xml, .gradle or .gradle.kts", err)
	}
	if err != nil {
		return err
	}
	if flags.HideSame {
		report = report.Drifted()
	}

	if format.IsStructured() {
		return output.NewFormatter(format).Format(out, report)
	}
	return printReport(out, alerts.NewWriter(cmd.ErrOrStderr(), app.NoColor()), report, format)
}

func printReport(out io.Writer, aw alerts.Writer, report *inspect.Report, format output.Format) error {
	for _, w := range report.Warnings {
		if err := aw.WriteAlert(alerts.NewWarning(w)); err != nil {
			return err
		}
	}

	bootVersion := report.SpringBootVersion
	if bootVersion == "" {
		bootVersion = "not detected"
	}
	fmt.Fprintf(out, "Manifest:    %s (%s)\n", report.Path, report.FileType)
	fmt.Fprintf(out, "Spring Boot: %s\n\n", bootVersion)

	if report.PackageLength == 0 {
		fmt.Fprintln(out, "No dependencies override a Spring Boot managed version.")
		return nil
	}

	formatter := output.NewFormatter(format)
	if err := formatter.Format(out, table.PackagesToTableData(report.Packages, format == output.FormatWide)); err != nil {
		return err
	}

	if format == output.FormatWide && report.PropertyLength > 0 {
		fmt.Fprintln(out)
		if err := formatter.Format(out, table.PropertiesToTableData(report.Properties)); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "\n%s (%dms)\n", table.FormatSummary(report.Summary), report.ElapsedMs)
	return nil
}
