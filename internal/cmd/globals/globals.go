// Package globals provides shared flag structures and utilities for CLI commands.
package globals

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds global common flags across all commands.
type Flags struct {
	ConfigFile string
	Format     string
	LogLevel   string
	Quiet      bool
	Verbose    bool
	NoColor    bool

	set *pflag.FlagSet
}

// Changed reports whether the named flag was given on the command line.
func (f *Flags) Changed(name string) bool {
	return f.set != nil && f.set.Changed(name)
}

// AddFlags adds common flags to the root command.
func AddFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{set: cmd.PersistentFlags()}

	cmd.PersistentFlags().StringVar(&flags.ConfigFile, "config", "",
		"config file (default is $HOME/.bootdrift.yaml)")
	cmd.PersistentFlags().StringVarP(&flags.Format, "format", "o", "",
		"output format: table, wide, json, yaml")
	// --output is kept as a hidden alias for -o
	cmd.PersistentFlags().StringVar(&flags.Format, "output", "", "")
	_ = cmd.PersistentFlags().MarkHidden("output")

	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false,
		"minimal output (shortcut for --log-level=warn)")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false,
		"verbose output (shortcut for --log-level=debug)")
	cmd.PersistentFlags().BoolVar(&flags.NoColor, "no-color", false,
		"disable colored output")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "",
		"log level: trace, debug, info, warn, error (overrides -v/-q)")

	return flags
}

// Parse extracts global flags from the command hierarchy.
// This is useful for subcommands that need to access global flags when
// they weren't passed the flags struct directly.
func Parse(cmd *cobra.Command) (*Flags, error) {
	root := cmd.Root()
	pf := root.PersistentFlags()

	configFile, _ := pf.GetString("config")
	format, _ := pf.GetString("format")
	logLevel, _ := pf.GetString("log-level")
	quiet, _ := pf.GetBool("quiet")
	verbose, _ := pf.GetBool("verbose")
	noColor, _ := pf.GetBool("no-color")

	return &Flags{
		ConfigFile: configFile,
		Format:     format,
		LogLevel:   logLevel,
		Quiet:      quiet,
		Verbose:    verbose,
		NoColor:    noColor,
		set:        pf,
	}, nil
}
