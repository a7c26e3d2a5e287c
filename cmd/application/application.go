// Package application provides the application interface for bootdrift commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            cats, err := app.Catalogs()
//	            if err != nil {
//	                return err
//	            }
//	            report, err := inspect.New(cats).Inspect(cmd.Context(), args[0])
//	            // ... print report
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    CatalogsFunc: func(...catalog.Option) (application.Catalogs, error) {
//	        return fakeCatalogs, nil
//	    },
//	}
//	cmd := check.NewCommand(mock)
package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/bootdrift/pkg/catalog"
)

// Catalogs resolves Spring Boot catalogs and can force a remote refresh.
// *catalog.CachingProvider implements it.
type Catalogs interface {
	catalog.Provider
	Refresh(ctx context.Context, tag string) (*catalog.Catalog, error)
}

// CacheIndex is the on-disk catalog cache as seen by commands.
// *catalog.FileCache implements it.
type CacheIndex interface {
	Dir() string
	Tags() ([]string, error)
	Matching(constraint string) ([]string, error)
	Delete(tag string) error
	Clear() error
}

// Application provides the application interface that commands need.
// The App struct from cmd/bootdrift/app implements this interface.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Catalogs returns the catalog provider. Without options the shared,
	// lazily created provider is returned; with options a new one is built.
	Catalogs(opts ...catalog.Option) (Catalogs, error)

	// Cache returns the on-disk catalog cache.
	Cache() (CacheIndex, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// NoColor reports whether colored output is disabled.
	NoColor() bool

	// OutputFormat returns the configured output format (json, yaml, table, wide).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
