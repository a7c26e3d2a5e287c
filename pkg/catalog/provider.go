package catalog

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/agentstation/bootdrift/pkg/constants"
	"github.com/agentstation/bootdrift/pkg/errors"
	"github.com/agentstation/bootdrift/pkg/logging"
)

// CachingProvider serves catalogs from memory, then disk, then the remote
// source, writing fetched catalogs back to disk. When the source is down or
// rate limited an expired disk copy is served instead. It is safe for
// concurrent use.
type CachingProvider struct {
	source  Source
	files   *FileCache
	memo    *gocache.Cache
	offline bool
	logger  *zerolog.Logger
}

// Option configures a CachingProvider.
type Option func(*CachingProvider)

// WithOffline disables remote fetches.
func WithOffline(offline bool) Option {
	return func(p *CachingProvider) {
		p.offline = offline
	}
}

// WithMemoTTL sets how long catalogs stay memoized in process.
func WithMemoTTL(ttl time.Duration) Option {
	return func(p *CachingProvider) {
		p.memo = gocache.New(ttl, constants.MemoryCacheCleanupInterval)
	}
}

// WithLogger sets the provider logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(p *CachingProvider) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewCachingProvider creates a provider over source backed by files.
// files may be nil to disable the disk cache.
func NewCachingProvider(source Source, files *FileCache, opts ...Option) *CachingProvider {
	p := &CachingProvider{
		source: source,
		files:  files,
		memo:   gocache.New(constants.MemoryCacheTTL, constants.MemoryCacheCleanupInterval),
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Catalog implements Provider.
func (p *CachingProvider) Catalog(ctx context.Context, tag string) (*Catalog, error) {
	if err := validTag(tag); err != nil {
		return nil, err
	}
	log := p.logger.With().Str("boot_version", tag).Logger()

	if v, ok := p.memo.Get(tag); ok {
		log.Debug().Msg("Catalog served from memory")
		return v.(*Catalog), nil
	}

	if p.files != nil {
		cat, err := p.files.Load(tag)
		switch {
		case err == nil:
			log.Debug().Str("dir", p.files.Dir()).Msg("Catalog served from disk cache")
			p.memo.SetDefault(tag, cat)
			return cat, nil
		case !errors.IsNotFound(err):
			log.Warn().Err(err).Msg("Ignoring unreadable cached catalog")
		}
	}

	if p.offline || p.source == nil {
		return nil, fmt.Errorf("catalog %s is not cached: %w", tag, errors.ErrOffline)
	}

	cat, err := p.Refresh(ctx, tag)
	if err != nil && p.files != nil && (errors.IsSourceUnavailable(err) || errors.IsRateLimited(err)) {
		if stale, serr := p.files.LoadStale(tag); serr == nil {
			log.Warn().Err(err).Msg("Serving expired cached catalog")
			return stale, nil
		}
	}
	return cat, err
}

// Refresh fetches tag from the source, replacing any cached copy.
func (p *CachingProvider) Refresh(ctx context.Context, tag string) (*Catalog, error) {
	if p.offline || p.source == nil {
		return nil, fmt.Errorf("refresh catalog %s: %w", tag, errors.ErrOffline)
	}
	log := p.logger.With().Str("boot_version", tag).Str("source", p.source.Name()).Logger()

	start := time.Now()
	cat, err := p.source.Fetch(ctx, tag)
	if err != nil {
		return nil, err
	}
	log.Info().
		Int("entries", len(cat.Entries)).
		Int("properties", len(cat.Properties)).
		Dur("took", time.Since(start)).
		Msg("Fetched catalog")

	if p.files != nil {
		if err := p.files.Store(cat); err != nil {
			log.Warn().Err(err).Msg("Could not write catalog cache")
		}
	}
	p.memo.SetDefault(tag, cat)
	return cat, nil
}

// Forget drops tag from memory.
func (p *CachingProvider) Forget(tag string) {
	p.memo.Delete(tag)
}
