package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/bootdrift/internal/cmd/globals"
	"github.com/agentstation/bootdrift/internal/cmd/output"
	"github.com/agentstation/bootdrift/pkg/errors"
	"github.com/agentstation/bootdrift/pkg/logging"
)

// Execute runs the bootdrift CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "bootdrift",
		Short:   "Spring Boot dependency drift checker",
		Version: a.version,
		Long: `bootdrift finds dependencies whose versions a project pins explicitly even
though Spring Boot already manages them, and tells you whether each pinned
version is older, the same as, or newer than the one Spring Boot ships.

It reads CycloneDX SBOMs, Maven POMs (including multi-module builds) and
Gradle build scripts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands:",
	})

	flags := globals.AddFlags(rootCmd)
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return a.setupCommand(cmd, flags)
	}

	rootCmd.SetVersionTemplate("bootdrift {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, flags *globals.Flags) error {
	if flags.ConfigFile != "" && flags.ConfigFile != a.config.ConfigFile {
		config, err := LoadConfig(flags.ConfigFile)
		if err != nil {
			return err
		}
		a.config = config
	}

	if _, err := output.ParseFormat(flags.Format); err != nil {
		return err
	}
	a.config.UpdateFromFlags(flags)

	// Reinitialize logger with updated config
	logger := NewLogger(a.config)
	a.logger = &logger
	cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))
	a.reset()

	a.logger.Debug().
		Str("config_file", a.config.ConfigFile).
		Str("cache_dir", a.config.CacheDir).
		Bool("offline", a.config.Offline).
		Msg("Configuration loaded")
	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(a.CreateCheckCommand())
	rootCmd.AddCommand(a.CreateCompareCommand())

	// Management commands
	rootCmd.AddCommand(a.CreateCatalogCommand())

	// Utility commands
	rootCmd.AddCommand(a.CreateVersionCommand())
}

// ExitOnError is a helper that prints an error and exits with ExitCode(err).
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(ExitCode(err))
	}
}

// ExitCode maps err to a process status: 0 on success, 2 for invalid
// input such as a bad flag value or an unsupported manifest, 1 otherwise.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.IsValidationError(err):
		return 2
	default:
		return 1
	}
}
