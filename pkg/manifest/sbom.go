package manifest

import (
	"context"
	"encoding/json"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/agentstation/bootdrift/pkg/constants"
	"github.com/agentstation/bootdrift/pkg/errors"
	"github.com/agentstation/bootdrift/pkg/logging"
	"github.com/agentstation/bootdrift/pkg/reconcile"
)

// SBOMParser reads CycloneDX JSON documents.
type SBOMParser struct{}

type cycloneDX struct {
	BOMFormat   string          `json:"bomFormat"`
	SpecVersion string          `json:"specVersion"`
	Components  []sbomComponent `json:"components"`
}

type sbomComponent struct {
	Type       string          `json:"type"`
	Group      string          `json:"group"`
	Name       string          `json:"name"`
	Version    string          `json:"version"`
	PURL       string          `json:"purl"`
	Components []sbomComponent `json:"components"`
}

// Parse implements Parser.
func (p SBOMParser) Parse(ctx context.Context, path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()

	m, err := DecodeSBOM(f)
	if err != nil {
		return nil, errors.WrapParse(string(TypeSBOM), path, err)
	}
	m.Path = path
	m.Files = []string{path}

	logging.FromContext(ctx).Debug().
		Str("manifest", path).
		Int("components", len(m.Dependencies)).
		Str("boot_version", m.BootVersion).
		Msg("Parsed SBOM")
	return m, nil
}

// DecodeSBOM reads a CycloneDX JSON document. Nested components are
// flattened depth first after their parent.
func DecodeSBOM(r io.Reader) (*Manifest, error) {
	var doc cycloneDX
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}

	m := newManifest(TypeSBOM, "")
	var flat []reconcile.Dependency
	var walk func([]sbomComponent)
	walk = func(cs []sbomComponent) {
		for _, c := range cs {
			if d, ok := c.dependency(); ok {
				flat = append(flat, d)
			}
			walk(c.Components)
		}
	}
	walk(doc.Components)

	m.Dependencies = append(m.Dependencies, flat...)
	m.BootVersion = sbomBootVersion(flat)
	return m, nil
}

func (c sbomComponent) dependency() (reconcile.Dependency, bool) {
	d := reconcile.Dependency{Group: c.Group, Name: c.Name, Version: c.Version}
	if d.Name == "" || d.Group == "" || d.Version == "" {
		if g, n, v, ok := parseMavenPURL(c.PURL); ok {
			if d.Group == "" {
				d.Group = g
			}
			if d.Name == "" {
				d.Name = n
			}
			if d.Version == "" {
				d.Version = v
			}
		}
	}
	return d, d.Name != ""
}

func sbomBootVersion(deps []reconcile.Dependency) string {
	for _, d := range deps {
		if d.Group == constants.BootGroup && d.Name == constants.BootArtifact {
			return d.Version
		}
	}
	for _, d := range deps {
		if d.Name == constants.BootArtifact {
			return d.Version
		}
	}
	return ""
}

// parseMavenPURL splits pkg:maven/group/name@version?qualifiers#subpath.
func parseMavenPURL(purl string) (group, name, version string, ok bool) {
	rest, found := strings.CutPrefix(purl, "pkg:maven/")
	if !found {
		return "", "", "", false
	}
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}
	rest, version, _ = strings.Cut(rest, "@")
	group, name, found = strings.Cut(rest, "/")
	if !found || name == "" {
		return "", "", "", false
	}
	unescape := func(s string) string {
		if u, err := url.PathUnescape(s); err == nil {
			return u
		}
		return s
	}
	return unescape(group), unescape(name), unescape(version), true
}
