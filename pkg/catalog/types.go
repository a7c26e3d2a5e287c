// Package catalog provides the authoritative dependency versions managed by
// a Spring Boot release. Catalogs are scraped from the reference
// documentation, cached on disk, and memoized in memory.
package catalog

import (
	"context"

	"github.com/agentstation/utc"
)

// Entry is one managed (group, name) -> version coordinate.
// Entries are not unique by (group, name) across a catalog.
type Entry struct {
	Group   string `json:"group" yaml:"group"`
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
}

// Catalog is the version table published for one release tag.
type Catalog struct {
	Tag        string   `json:"tag" yaml:"tag"`
	Entries    []Entry  `json:"entries" yaml:"entries"`
	Properties []string `json:"properties" yaml:"properties"`
	FetchedAt  utc.Time `json:"fetchedAt" yaml:"fetched_at"`
}

// Empty returns a catalog with no entries for tag.
func Empty(tag string) *Catalog {
	return &Catalog{Tag: tag, Entries: []Entry{}, Properties: []string{}}
}

// IsEmpty reports whether the catalog carries no managed versions.
func (c *Catalog) IsEmpty() bool {
	return c == nil || len(c.Entries) == 0
}

// HasProperty reports whether Spring Boot documents key as a version property.
func (c *Catalog) HasProperty(key string) bool {
	if c == nil {
		return false
	}
	for _, p := range c.Properties {
		if p == key {
			return true
		}
	}
	return false
}

// Provider returns the catalog for a release tag.
type Provider interface {
	Catalog(ctx context.Context, tag string) (*Catalog, error)
}

// Source fetches a catalog from its origin, bypassing any cache.
type Source interface {
	Name() string
	Fetch(ctx context.Context, tag string) (*Catalog, error)
}
