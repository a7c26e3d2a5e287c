// Package compare provides the command that orders two version strings.
package compare

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/bootdrift/cmd/application"
	"github.com/agentstation/bootdrift/internal/cmd/output"
	"github.com/agentstation/bootdrift/internal/cmd/table"
	"github.com/agentstation/bootdrift/pkg/versions"
)

// Result is the structured form of a comparison.
type Result struct {
	Left       string              `json:"left" yaml:"left"`
	Right      string              `json:"right" yaml:"right"`
	Comparison versions.Comparison `json:"comparison" yaml:"comparison"`
}

// NewCommand creates the compare command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "compare <left> <right>",
		GroupID: "core",
		Short:   "Compare two Maven version strings",
		Long: `Compare orders two versions the way check does: numeric segments are
compared numerically, missing segments count as zero, and qualifiers rank
snapshot < alpha < beta < milestone < rc < release < sp.`,
		Example: `  bootdrift compare 2.0.0-RC1 2.0.0
  bootdrift compare 1.0.0.GA 1.0
  bootdrift compare 5.3.x 5.3.31 -o json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return err
			}

			r := Result{Left: args[0], Right: args[1], Comparison: versions.Compare(args[0], args[1])}

			out := cmd.OutOrStdout()
			if format = output.DetectFormat(string(format), out); format.IsStructured() {
				return output.NewFormatter(format).Format(out, r)
			}
			_, err = fmt.Fprintln(out, Sentence(r))
			return err
		},
	}
}

// Sentence renders r for humans, e.g. "↓ 2.0.0-RC1 is older than 2.0.0".
func Sentence(r Result) string {
	symbol := table.ComparisonSymbol(r.Comparison)
	if r.Comparison == versions.Same {
		return fmt.Sprintf("%s %s is the same as %s", symbol, r.Left, r.Right)
	}
	return fmt.Sprintf("%s %s is %s than %s", symbol, r.Left, r.Comparison, r.Right)
}
