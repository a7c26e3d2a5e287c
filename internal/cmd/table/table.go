// Package table converts bootdrift results into rows for tabular output.
package table

import (
	"fmt"

	"github.com/agentstation/bootdrift/internal/cmd/emoji"
	"github.com/agentstation/bootdrift/pkg/catalog"
	"github.com/agentstation/bootdrift/pkg/reconcile"
	"github.com/agentstation/bootdrift/pkg/versions"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// PackagesToTableData converts reconciled packages to table format.
// The wide form adds the group column.
func PackagesToTableData(packages []reconcile.Package, wide bool) Data {
	headers := []string{"Artifact", "Declared", "Spring Boot", "Status"}
	align := []Align{AlignLeft, AlignRight, AlignRight, AlignLeft}
	if wide {
		headers = append([]string{"Group"}, headers...)
		align = append([]Align{AlignLeft}, align...)
	}

	rows := make([][]string, 0, len(packages))
	for _, p := range packages {
		row := []string{p.Name, p.InputFileVersion, p.BootVersion, FormatComparison(p.VersionComparison)}
		if wide {
			row = append([]string{p.Group}, row...)
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// PropertiesToTableData lists declared version properties.
func PropertiesToTableData(props []string) Data {
	rows := make([][]string, 0, len(props))
	for _, p := range props {
		rows = append(rows, []string{p})
	}
	return Data{Headers: []string{"Property"}, Rows: rows}
}

// EntriesToTableData converts catalog entries to table format.
func EntriesToTableData(entries []catalog.Entry) Data {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Group, e.Name, e.Version})
	}
	return Data{
		Headers:         []string{"Group", "Artifact", "Version"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight},
	}
}

// TagsToTableData lists cached release tags.
func TagsToTableData(tags []string) Data {
	rows := make([][]string, 0, len(tags))
	for _, t := range tags {
		rows = append(rows, []string{t})
	}
	return Data{Headers: []string{"Spring Boot"}, Rows: rows}
}

// ComparisonSymbol returns the arrow for a verdict.
func ComparisonSymbol(c versions.Comparison) string {
	switch c {
	case versions.Older:
		return emoji.Older
	case versions.Newer:
		return emoji.Newer
	case versions.Same:
		return emoji.Same
	}
	return emoji.Info
}

// FormatComparison renders a verdict with its symbol.
func FormatComparison(c versions.Comparison) string {
	return ComparisonSymbol(c) + " " + string(c)
}

// FormatSummary renders package counts on one line.
func FormatSummary(s reconcile.Summary) string {
	return fmt.Sprintf("%d packages: %d older, %d same, %d newer", s.Total(), s.Older, s.Same, s.Newer)
}
