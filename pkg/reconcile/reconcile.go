// Package reconcile matches declared dependencies against a Spring Boot
// catalog and classifies every override as older, same or newer than the
// managed version.
package reconcile

import (
	"github.com/agentstation/bootdrift/pkg/catalog"
	"github.com/agentstation/bootdrift/pkg/properties"
)

// Dependency is a dependency declared by a project manifest.
// An empty Version means the manifest did not declare one.
type Dependency struct {
	Group   string `json:"group" yaml:"group"`
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
}

// Key identifies a dependency or catalog entry by coordinates.
type Key struct {
	Group string
	Name  string
}

// Key returns the (group, name) identity of d.
func (d Dependency) Key() Key {
	return Key{Group: d.Group, Name: d.Name}
}

// Reconcile returns one Package per declared dependency whose coordinates
// appear in entries. Versions are resolved against table first; a
// dependency without a version, or whose property reference is undefined,
// is skipped. The first catalog entry for a coordinate wins, as does the
// first declaration of a coordinate. Packages keep declaration order.
func Reconcile(deps []Dependency, entries []catalog.Entry, table *properties.Table) []Package {
	index := make(map[Key]catalog.Entry, len(entries))
	for _, e := range entries {
		k := Key{Group: e.Group, Name: e.Name}
		if _, seen := index[k]; !seen {
			index[k] = e
		}
	}

	packages := make([]Package, 0)
	emitted := make(map[Key]struct{})

	for _, dep := range deps {
		if dep.Version == "" {
			continue
		}
		version, ok := properties.Resolve(table, dep.Version)
		if !ok || version == "" {
			continue
		}

		k := dep.Key()
		entry, found := index[k]
		if !found {
			continue
		}
		if _, done := emitted[k]; done {
			continue
		}

		emitted[k] = struct{}{}
		packages = append(packages, MakePackage(dep.Group, dep.Name, version, entry.Version))
	}

	return packages
}
