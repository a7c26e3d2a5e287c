// Package app provides the application context and dependency management
// for the bootdrift CLI. It centralizes configuration, logging, and the
// catalog provider shared by every command.
package app

import (
	"context"
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/bootdrift/cmd/application"
	"github.com/agentstation/bootdrift/pkg/catalog"
	"github.com/agentstation/bootdrift/pkg/errors"
)

// App represents the bootdrift application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Catalog provider and cache (lazy-initialized, singleton)
	mu       sync.RWMutex
	cache    *catalog.FileCache
	catalogs *catalog.CachingProvider
	source   catalog.Source
}

var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
// The app is initialized with configuration loaded from the environment
// that can be customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// NoColor reports whether colored output is disabled.
func (a *App) NoColor() bool {
	return a.config.NoColor
}

// Cache returns the on-disk catalog cache.
func (a *App) Cache() (application.CacheIndex, error) {
	return a.fileCache(), nil
}

// Catalogs returns the catalog provider. Without options the shared
// instance is returned, creating it on first use. Options produce a new
// provider over the same cache and source.
func (a *App) Catalogs(opts ...catalog.Option) (application.Catalogs, error) {
	if len(opts) > 0 {
		return a.newProvider(opts...), nil
	}

	a.mu.RLock()
	if a.catalogs != nil {
		p := a.catalogs
		a.mu.RUnlock()
		return p, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.catalogs != nil {
		return a.catalogs, nil
	}
	a.catalogs = a.newProviderLocked()
	return a.catalogs, nil
}

// Shutdown releases application resources.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.catalogs = nil
	a.logger.Debug().Msg("Application shut down")
	return nil
}

// reset drops lazily built dependencies after the configuration changed.
func (a *App) reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.catalogs = nil
	a.cache = nil
}

func (a *App) fileCache() *catalog.FileCache {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.fileCacheLocked()
}

func (a *App) fileCacheLocked() *catalog.FileCache {
	if a.cache == nil {
		a.cache = catalog.NewFileCache(a.config.CacheDir, a.config.CacheTTL)
	}
	return a.cache
}

func (a *App) newProvider(opts ...catalog.Option) *catalog.CachingProvider {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.newProviderLocked(opts...)
}

// newProviderLocked builds a provider from the configuration; caller holds a.mu.
func (a *App) newProviderLocked(opts ...catalog.Option) *catalog.CachingProvider {
	source := a.source
	if source == nil {
		source = catalog.NewDocsSource(
			catalog.WithURLTemplate(a.config.DocsURLTemplate),
			catalog.WithHTTPClient(&http.Client{Timeout: a.config.HTTPTimeout}),
		)
	}

	base := []catalog.Option{
		catalog.WithOffline(a.config.Offline),
		catalog.WithLogger(a.logger),
	}
	return catalog.NewCachingProvider(source, a.fileCacheLocked(), append(base, opts...)...)
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return errors.NewValidationError("config", nil, "config is required")
		}
		a.config = config
		logger := NewLogger(config)
		a.logger = &logger
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithSource replaces the docs.spring.io source (useful for testing).
func WithSource(source catalog.Source) Option {
	return func(a *App) error {
		a.source = source
		return nil
	}
}
