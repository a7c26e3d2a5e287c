package manifest

import (
	"context"
	"encoding/xml"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/sync/errgroup"

	"github.com/agentstation/bootdrift/pkg/constants"
	"github.com/agentstation/bootdrift/pkg/errors"
	"github.com/agentstation/bootdrift/pkg/logging"
	"github.com/agentstation/bootdrift/pkg/properties"
	"github.com/agentstation/bootdrift/pkg/reconcile"
)

// POMParser reads Maven project files. Modules listed under <modules> are
// read as well; siblings are parsed concurrently and merged in declaration
// order, depth first.
type POMParser struct{}

type pomProject struct {
	XMLName              xml.Name        `xml:"project"`
	GroupID              string          `xml:"groupId"`
	ArtifactID           string          `xml:"artifactId"`
	Version              string          `xml:"version"`
	Parent               *pomParent      `xml:"parent"`
	Properties           pomProperties   `xml:"properties"`
	Dependencies         []pomDependency `xml:"dependencies>dependency"`
	DependencyManagement []pomDependency `xml:"dependencyManagement>dependencies>dependency"`
	Modules              []string        `xml:"modules>module"`
}

type pomParent struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
}

type pomDependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
	Type       string `xml:"type"`
	Scope      string `xml:"scope"`
}

// pomProperties keeps <properties> children in document order.
type pomProperties struct {
	table properties.Table
}

// UnmarshalXML implements xml.Unmarshaler.
func (p *pomProperties) UnmarshalXML(d *xml.Decoder, _ xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var value string
			if err := d.DecodeElement(&value, &t); err != nil {
				return err
			}
			p.table.Set(t.Name.Local, strings.TrimSpace(value))
		case xml.EndElement:
			return nil
		}
	}
}

func (d pomDependency) isBootBOM() bool {
	return d.GroupID == constants.BootGroup && d.ArtifactID == constants.BootDependencies
}

type pomFragment struct {
	path    string
	project *pomProject
}

// Parse implements Parser.
func (p POMParser) Parse(ctx context.Context, path string) (*Manifest, error) {
	root, err := readPOM(path)
	if err != nil {
		return nil, err
	}

	fragments := []pomFragment{root}
	seen := map[string]bool{canonical(path): true}
	more, err := p.expand(ctx, root, seen)
	if err != nil {
		return nil, err
	}
	fragments = append(fragments, more...)

	m := mergePOM(path, fragments)
	logging.FromContext(ctx).Debug().
		Str("manifest", path).
		Int("modules", len(fragments)-1).
		Int("dependencies", len(m.Dependencies)).
		Int("properties", m.Properties.Len()).
		Str("boot_version", m.BootVersion).
		Msg("Parsed POM")
	return m, nil
}

// expand reads the modules of parent, then their modules, in pre-order.
func (p POMParser) expand(ctx context.Context, parent pomFragment, seen map[string]bool) ([]pomFragment, error) {
	dir := filepath.Dir(parent.path)

	var paths []string
	for _, mod := range parent.project.Modules {
		mod = strings.TrimSpace(mod)
		if mod == "" {
			continue
		}
		child := filepath.Join(dir, filepath.FromSlash(mod))
		if !strings.EqualFold(filepath.Ext(child), ".xml") {
			child = filepath.Join(child, "pom.xml")
		}
		key := canonical(child)
		if seen[key] {
			continue
		}
		seen[key] = true
		paths = append(paths, child)
	}
	if len(paths) == 0 {
		return nil, nil
	}

	children := make([]*pomFragment, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	for i, child := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			frag, err := readPOM(child)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					logging.FromContext(ctx).Warn().Str("module", child).Msg("Skipping missing module")
					return nil
				}
				return err
			}
			children[i] = &frag
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []pomFragment
	for _, child := range children {
		if child == nil {
			continue
		}
		out = append(out, *child)
		grand, err := p.expand(ctx, *child, seen)
		if err != nil {
			return nil, err
		}
		out = append(out, grand...)
	}
	return out, nil
}

func readPOM(path string) (pomFragment, error) {
	f, err := os.Open(path)
	if err != nil {
		return pomFragment{}, errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()

	project, err := decodePOM(f)
	if err != nil {
		return pomFragment{}, errors.WrapParse(string(TypePOM), path, err)
	}
	return pomFragment{path: path, project: project}, nil
}

// decodePOM decodes a single Maven project document.
func decodePOM(r io.Reader) (*pomProject, error) {
	var project pomProject
	dec := xml.NewDecoder(r)
	dec.Strict = false
	dec.CharsetReader = charset.NewReaderLabel
	if err := dec.Decode(&project); err != nil {
		return nil, err
	}
	return &project, nil
}

func mergePOM(path string, fragments []pomFragment) *Manifest {
	m := newManifest(TypePOM, path)
	m.Files = m.Files[:0]

	root := fragments[0].project
	m.Properties.Merge(implicitProperties(root))
	for _, frag := range fragments {
		m.Files = append(m.Files, frag.path)
		m.Properties.Merge(&frag.project.Properties.table)
	}

	for _, frag := range fragments {
		for _, d := range frag.project.Dependencies {
			m.Dependencies = append(m.Dependencies, d.dependency())
		}
		for _, d := range frag.project.DependencyManagement {
			if d.isBootBOM() {
				continue
			}
			m.Dependencies = append(m.Dependencies, d.dependency())
		}
	}

	for _, frag := range fragments {
		if v := pomBootVersion(frag.project, m.Properties); v != "" {
			m.BootVersion = v
			break
		}
	}
	return m
}

func (d pomDependency) dependency() reconcile.Dependency {
	return reconcile.Dependency{
		Group:   strings.TrimSpace(d.GroupID),
		Name:    strings.TrimSpace(d.ArtifactID),
		Version: strings.TrimSpace(d.Version),
	}
}

// implicitProperties exposes the root coordinates the way Maven does.
func implicitProperties(p *pomProject) *properties.Table {
	t := &properties.Table{}
	version := strings.TrimSpace(p.Version)
	if p.Parent != nil {
		pv := strings.TrimSpace(p.Parent.Version)
		if pv != "" {
			t.Set("project.parent.version", pv)
		}
		if version == "" {
			version = pv
		}
	}
	if version != "" {
		t.Set("project.version", version)
	}
	return t
}

// pomBootVersion reads the starter parent, falling back to an imported
// spring-boot-dependencies BOM.
func pomBootVersion(p *pomProject, table *properties.Table) string {
	if p.Parent != nil &&
		strings.TrimSpace(p.Parent.GroupID) == constants.BootGroup &&
		strings.TrimSpace(p.Parent.ArtifactID) == constants.BootStarterParent {
		if v, ok := properties.Resolve(table, strings.TrimSpace(p.Parent.Version)); ok {
			return v
		}
	}
	for _, d := range p.DependencyManagement {
		if d.isBootBOM() {
			if v, ok := properties.Resolve(table, strings.TrimSpace(d.Version)); ok {
				return v
			}
		}
	}
	return ""
}

func canonical(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return filepath.Clean(abs)
	}
	return filepath.Clean(path)
}
