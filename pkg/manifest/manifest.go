// Package manifest reads project manifests into declared dependencies, a
// flattened property table, and the Spring Boot release they build against.
//
// Supported inputs are CycloneDX SBOM JSON, Maven pom.xml (including
// aggregated modules), and Gradle build scripts in Groovy or Kotlin DSL.
package manifest

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/agentstation/bootdrift/pkg/errors"
	"github.com/agentstation/bootdrift/pkg/properties"
	"github.com/agentstation/bootdrift/pkg/reconcile"
)

// FileType identifies a manifest format.
type FileType string

// Manifest formats.
const (
	TypeSBOM   FileType = "sbom"
	TypePOM    FileType = "pom"
	TypeGradle FileType = "gradle"
)

// String implements fmt.Stringer.
func (t FileType) String() string {
	return string(t)
}

// Manifest is the normalized content of a project manifest.
type Manifest struct {
	Type FileType
	Path string

	// BootVersion is the detected Spring Boot release, empty when the
	// project does not build against Spring Boot.
	BootVersion string

	// Dependencies are in declaration order across all Files.
	Dependencies []reconcile.Dependency

	// Properties are merged across Files in discovery order.
	Properties *properties.Table

	// Files lists every file that contributed, root first.
	Files []string
}

func newManifest(t FileType, path string) *Manifest {
	return &Manifest{
		Type:         t,
		Path:         path,
		Dependencies: []reconcile.Dependency{},
		Properties:   &properties.Table{},
		Files:        []string{path},
	}
}

// Parser reads one manifest format.
type Parser interface {
	Parse(ctx context.Context, path string) (*Manifest, error)
}

// DetectType chooses a format from the file name.
func DetectType(path string) (FileType, error) {
	base := strings.ToLower(filepath.Base(path))
	ext := filepath.Ext(base)

	switch {
	case ext == ".json":
		return TypeSBOM, nil
	case ext == ".xml" || base == "pom":
		return TypePOM, nil
	case ext == ".gradle" || strings.HasSuffix(base, ".gradle.kts"):
		return TypeGradle, nil
	}
	return "", &errors.UnsupportedFormatError{Path: path, Extension: ext}
}

// ParserFor returns the parser for a format.
func ParserFor(t FileType) (Parser, error) {
	switch t {
	case TypeSBOM:
		return SBOMParser{}, nil
	case TypePOM:
		return POMParser{}, nil
	case TypeGradle:
		return GradleParser{}, nil
	}
	return nil, errors.NewValidationError("type", t, "unknown manifest type")
}

// ParseFile detects the format of path and parses it.
func ParseFile(ctx context.Context, path string) (*Manifest, error) {
	t, err := DetectType(path)
	if err != nil {
		return nil, err
	}
	p, err := ParserFor(t)
	if err != nil {
		return nil, err
	}
	return p.Parse(ctx, path)
}
