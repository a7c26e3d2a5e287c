// Package inspect runs a full check of one manifest: parse it, load the
// catalog for its Spring Boot release, and reconcile the two into a Report.
package inspect

import (
	"context"
	"fmt"
	"time"

	"github.com/agentstation/utc"
	"github.com/rs/zerolog"

	"github.com/agentstation/bootdrift/pkg/catalog"
	"github.com/agentstation/bootdrift/pkg/errors"
	"github.com/agentstation/bootdrift/pkg/logging"
	"github.com/agentstation/bootdrift/pkg/manifest"
	"github.com/agentstation/bootdrift/pkg/properties"
	"github.com/agentstation/bootdrift/pkg/reconcile"
)

// Report is the outcome of inspecting one manifest.
type Report struct {
	FileType          manifest.FileType   `json:"fileType" yaml:"file_type"`
	Path              string              `json:"path" yaml:"path"`
	SpringBootVersion string              `json:"springBootVersion" yaml:"spring_boot_version"`
	Packages          []reconcile.Package `json:"packages" yaml:"packages"`
	Properties        []string            `json:"properties" yaml:"properties"`
	PackageLength     int                 `json:"packageLength" yaml:"package_length"`
	PropertyLength    int                 `json:"propertyLength" yaml:"property_length"`
	Summary           reconcile.Summary   `json:"summary" yaml:"summary"`
	Warnings          []string            `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	ElapsedMs         int64               `json:"elapsedMs" yaml:"elapsed_ms"`
	CheckedAt         utc.Time            `json:"checkedAt" yaml:"checked_at"`
}

// ParseFunc reads a manifest from disk.
type ParseFunc func(ctx context.Context, path string) (*manifest.Manifest, error)

// Inspector checks manifests against Spring Boot catalogs.
type Inspector struct {
	provider    catalog.Provider
	parse       ParseFunc
	bootVersion string
	logger      *zerolog.Logger
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithBootVersion checks against tag instead of the detected release.
func WithBootVersion(tag string) Option {
	return func(i *Inspector) {
		i.bootVersion = tag
	}
}

// WithLogger sets the inspector logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(i *Inspector) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithParser replaces manifest.ParseFile.
func WithParser(parse ParseFunc) Option {
	return func(i *Inspector) {
		if parse != nil {
			i.parse = parse
		}
	}
}

// New creates an Inspector reading catalogs from provider.
func New(provider catalog.Provider, opts ...Option) *Inspector {
	i := &Inspector{
		provider: provider,
		parse:    manifest.ParseFile,
		logger:   logging.Default(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Inspect parses path and reconciles it. Only manifest errors are returned;
// a missing catalog yields a report with no packages and a warning.
func (i *Inspector) Inspect(ctx context.Context, path string) (*Report, error) {
	start := time.Now()
	ctx = logging.WithLogger(ctx, i.logger)
	ctx = logging.WithManifest(ctx, path)

	m, err := i.parse(ctx, path)
	if err != nil {
		return nil, err
	}

	r := i.InspectManifest(ctx, m)
	r.ElapsedMs = time.Since(start).Milliseconds()
	return r, nil
}

// InspectManifest reconciles an already parsed manifest.
func (i *Inspector) InspectManifest(ctx context.Context, m *manifest.Manifest) *Report {
	start := time.Now()
	log := logging.FromContext(ctx)

	r := &Report{
		FileType:          m.Type,
		Path:              m.Path,
		SpringBootVersion: m.BootVersion,
		Packages:          []reconcile.Package{},
		Properties:        []string{},
		CheckedAt:         utc.Now(),
	}
	if i.bootVersion != "" {
		r.SpringBootVersion = i.bootVersion
	}

	if r.SpringBootVersion == "" {
		r.warn(log, "No Spring Boot version found")
		r.ElapsedMs = time.Since(start).Milliseconds()
		return r
	}
	log.Info().Str("boot_version", r.SpringBootVersion).Msg("Detected Spring Boot version")

	cat, err := i.provider.Catalog(logging.WithTag(ctx, r.SpringBootVersion), r.SpringBootVersion)
	switch {
	case errors.IsNotFound(err):
		r.warn(log, fmt.Sprintf("Spring Boot default versions no longer available for %s", r.SpringBootVersion))
		cat = catalog.Empty(r.SpringBootVersion)
	case err != nil:
		log.Debug().Err(err).Msg("Catalog lookup failed")
		r.warn(log, fmt.Sprintf("Spring Boot default versions unavailable for %s: %v", r.SpringBootVersion, err))
		cat = catalog.Empty(r.SpringBootVersion)
	case cat.IsEmpty():
		r.warn(log, fmt.Sprintf("Spring Boot %s publishes no managed versions", r.SpringBootVersion))
	}
	if cat == nil {
		cat = catalog.Empty(r.SpringBootVersion)
	}

	r.Packages = reconcile.Reconcile(m.Dependencies, cat.Entries, m.Properties)
	r.Properties = DeclaredProperties(m.Properties, cat)
	r.PackageLength = len(r.Packages)
	r.PropertyLength = len(r.Properties)
	r.Summary = reconcile.Summarize(r.Packages)
	r.ElapsedMs = time.Since(start).Milliseconds()

	log.Info().
		Int("packages", r.PackageLength).
		Int("properties", r.PropertyLength).
		Int("older", r.Summary.Older).
		Int("newer", r.Summary.Newer).
		Msg("Reconciled manifest")
	return r
}

// DeclaredProperties lists the keys of table that Spring Boot documents as
// version properties, in table order.
func DeclaredProperties(table *properties.Table, cat *catalog.Catalog) []string {
	out := []string{}
	if cat == nil || len(cat.Properties) == 0 {
		return out
	}
	known := make(map[string]struct{}, len(cat.Properties))
	for _, p := range cat.Properties {
		known[p] = struct{}{}
	}
	for _, k := range table.Keys() {
		if _, ok := known[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

func (r *Report) warn(log *zerolog.Logger, msg string) {
	r.Warnings = append(r.Warnings, msg)
	log.Warn().Msg(msg)
}

// Drifted returns a copy of r keeping only packages whose version differs
// from the managed one.
func (r *Report) Drifted() *Report {
	out := *r
	out.Packages = reconcile.Drifted(r.Packages)
	out.PackageLength = len(out.Packages)
	out.Summary = reconcile.Summarize(out.Packages)
	return &out
}
