package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/agentstation/utc"

	"github.com/agentstation/bootdrift/pkg/constants"
	"github.com/agentstation/bootdrift/pkg/errors"
	"github.com/agentstation/bootdrift/pkg/versions"
)

const (
	dependenciesPrefix = "dependencies_"
	propertiesPrefix   = "properties_"
	cacheExt           = ".json"
)

// FileCache stores catalogs as JSON files in a directory:
// dependencies_<tag>.json holds entries, properties_<tag>.json holds
// version property names.
type FileCache struct {
	dir string
	ttl time.Duration
}

// NewFileCache creates a cache rooted at dir. A zero ttl never expires entries.
func NewFileCache(dir string, ttl time.Duration) *FileCache {
	if dir == "" {
		dir = constants.DefaultCacheDir
	}
	return &FileCache{dir: dir, ttl: ttl}
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string {
	return c.dir
}

type propertyRecord struct {
	Property string `json:"property"`
}

func (c *FileCache) dependenciesPath(tag string) string {
	return filepath.Join(c.dir, dependenciesPrefix+tag+cacheExt)
}

func (c *FileCache) propertiesPath(tag string) string {
	return filepath.Join(c.dir, propertiesPrefix+tag+cacheExt)
}

func validTag(tag string) error {
	if tag == "" || tag != filepath.Base(tag) || strings.Contains(tag, "..") {
		return errors.NewValidationError("tag", tag, "not a release tag")
	}
	return nil
}

// Load reads the cached catalog for tag. Missing or expired files yield an
// error matching errors.ErrNotFound.
func (c *FileCache) Load(tag string) (*Catalog, error) {
	return c.load(tag, true)
}

// LoadStale reads the cached catalog for tag even when it has expired.
func (c *FileCache) LoadStale(tag string) (*Catalog, error) {
	return c.load(tag, false)
}

func (c *FileCache) load(tag string, honorTTL bool) (*Catalog, error) {
	if err := validTag(tag); err != nil {
		return nil, err
	}

	path := c.dependenciesPath(tag)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("cached catalog", tag)
		}
		return nil, errors.WrapIO("stat", path, err)
	}
	if honorTTL && c.ttl > 0 && time.Since(info.ModTime()) > c.ttl {
		return nil, errors.NewNotFoundError("cached catalog", tag)
	}

	cat := Empty(tag)
	cat.FetchedAt = utc.Time{Time: info.ModTime().UTC()}
	if err := readJSON(path, &cat.Entries); err != nil {
		return nil, err
	}

	var props []propertyRecord
	if err := readJSON(c.propertiesPath(tag), &props); err != nil && !errors.IsNotFound(err) {
		return nil, err
	}
	for _, p := range props {
		cat.Properties = append(cat.Properties, p.Property)
	}
	return cat, nil
}

// Store writes cat under its tag, replacing any previous files.
func (c *FileCache) Store(cat *Catalog) error {
	if cat == nil {
		return errors.NewValidationError("catalog", nil, "catalog is required")
	}
	if err := validTag(cat.Tag); err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", c.dir, err)
	}

	entries := cat.Entries
	if entries == nil {
		entries = []Entry{}
	}
	props := make([]propertyRecord, 0, len(cat.Properties))
	for _, p := range cat.Properties {
		props = append(props, propertyRecord{Property: p})
	}

	if err := c.writeJSON(c.dependenciesPath(cat.Tag), entries); err != nil {
		return err
	}
	return c.writeJSON(c.propertiesPath(cat.Tag), props)
}

// Tags lists cached release tags, oldest first.
func (c *FileCache) Tags() ([]string, error) {
	files, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, errors.WrapIO("read", c.dir, err)
	}

	tags := make([]string, 0, len(files))
	for _, f := range files {
		name := f.Name()
		if f.IsDir() || !strings.HasPrefix(name, dependenciesPrefix) || !strings.HasSuffix(name, cacheExt) {
			continue
		}
		tags = append(tags, strings.TrimSuffix(strings.TrimPrefix(name, dependenciesPrefix), cacheExt))
	}
	SortTags(tags)
	return tags, nil
}

// Matching lists cached tags satisfying a semver constraint such as ">= 3.1, < 3.3".
// Tags that are not semantic versions never match.
func (c *FileCache) Matching(constraint string) ([]string, error) {
	cons, err := semver.NewConstraint(constraint)
	if err != nil {
		return nil, errors.WrapValidation("constraint", err)
	}

	tags, err := c.Tags()
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		v, err := semver.NewVersion(tag)
		if err != nil {
			continue
		}
		if cons.Check(v) {
			out = append(out, tag)
		}
	}
	return out, nil
}

// Delete removes the cached files for tag.
func (c *FileCache) Delete(tag string) error {
	if err := validTag(tag); err != nil {
		return err
	}
	for _, path := range []string{c.dependenciesPath(tag), c.propertiesPath(tag)} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return errors.WrapIO("delete", path, err)
		}
	}
	return nil
}

// Clear removes the whole cache directory.
func (c *FileCache) Clear() error {
	if _, err := os.Stat(c.dir); os.IsNotExist(err) {
		return nil
	}
	if err := os.RemoveAll(c.dir); err != nil {
		return errors.WrapIO("delete", c.dir, err)
	}
	return nil
}

// SortTags orders release tags by semantic version. Tags that do not parse
// as semantic versions, such as "3.2.x", follow in version order.
func SortTags(tags []string) {
	parsed := make(map[string]*semver.Version, len(tags))
	for _, t := range tags {
		if v, err := semver.NewVersion(t); err == nil {
			parsed[t] = v
		}
	}

	slices.SortStableFunc(tags, func(a, b string) int {
		va, aok := parsed[a]
		vb, bok := parsed[b]
		switch {
		case aok && bok:
			if c := va.Compare(vb); c != 0 {
				return c
			}
			return strings.Compare(a, b)
		case aok:
			return -1
		case bok:
			return 1
		default:
			return versions.Sign(a, b)
		}
	})
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewNotFoundError("file", path)
		}
		return errors.WrapIO("read", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.WrapParse("json", path, err)
	}
	return nil
}

func (c *FileCache) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.WrapParse("json", path, err)
	}

	tmp, err := os.CreateTemp(c.dir, "catalog_*.json")
	if err != nil {
		return errors.WrapIO("create", "temp file", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return errors.WrapIO("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("close", path, err)
	}
	if err := os.Chmod(tmpPath, constants.FilePermissions); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("chmod", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("move", path, err)
	}
	return nil
}
