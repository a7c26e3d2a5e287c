package manifest

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	javaprops "github.com/magiconair/properties"

	"github.com/agentstation/bootdrift/pkg/constants"
	"github.com/agentstation/bootdrift/pkg/errors"
	"github.com/agentstation/bootdrift/pkg/logging"
	"github.com/agentstation/bootdrift/pkg/properties"
	"github.com/agentstation/bootdrift/pkg/reconcile"
)

// GradleParser reads build.gradle and build.gradle.kts scripts line by
// line. Scripts are not evaluated, so only literal declarations and simple
// property references are understood. A gradle.properties file next to the
// script is merged first, so script properties win.
type GradleParser struct{}

const configurations = `implementation|api|compileOnly|runtimeOnly|testImplementation|testRuntimeOnly|testCompileOnly|` +
	`annotationProcessor|testAnnotationProcessor|developmentOnly|kapt|compile|runtime|testCompile|testRuntime`

var (
	// implementation 'g:n:v', implementation("g:n:v"), implementation platform("g:n:v")
	gradleStringDep = regexp.MustCompile(`^\s*(?:` + configurations + `)\s*\(?\s*(?:(?:enforcedPlatform|platform)\s*\(\s*)?['"]([^:'"\s]+):([^:'"\s]+)(?::([^:'"@\s]+))?[^'"]*['"]`)

	// implementation group: 'g', name: 'n', version: 'v'
	gradleMapDep = regexp.MustCompile(`^\s*(?:` + configurations + `)\s*\(?\s*group\s*[:=]\s*['"]([^'"]+)['"]\s*,\s*name\s*[:=]\s*['"]([^'"]+)['"](?:\s*,\s*version\s*[:=]\s*['"]([^'"]+)['"])?`)

	// id 'org.springframework.boot' version '3.1.0', id("org.springframework.boot") version "3.1.0"
	gradleBootPlugin = regexp.MustCompile(`\bid\s*\(?\s*['"]` + regexp.QuoteMeta(constants.BootPluginID) +
		`['"]\s*\)?\s*version\s*\(?\s*['"]([^'"]+)['"]`)

	// classpath "org.springframework.boot:spring-boot-gradle-plugin:3.1.0"
	gradleBootClasspath = regexp.MustCompile(regexp.QuoteMeta(constants.BootGroup+":"+constants.BootGradlePlugin+":") +
		`([^'"\s)]+)`)

	gradleExtBlock   = regexp.MustCompile(`^\s*ext\s*\{`)
	gradleExtAssign  = regexp.MustCompile(`^\s*([A-Za-z_][\w.\-]*)\s*=\s*['"]([^'"]*)['"]`)
	gradleExtDotted  = regexp.MustCompile(`^\s*(?:project\.)?ext\.([A-Za-z_][\w.\-]*)\s*=\s*['"]([^'"]*)['"]`)
	gradleExtIndexed = regexp.MustCompile(`^\s*(?:project\.)?(?:ext|extra)\s*\[\s*['"]([^'"]+)['"]\s*\]\s*=\s*['"]([^'"]*)['"]`)
	gradleExtSet     = regexp.MustCompile(`^\s*(?:(?:project\.)?(?:ext|extra)\.)?set\s*\(\s*['"]([^'"]+)['"]\s*,\s*['"]([^'"]*)['"]\s*\)`)
	gradleByExtra    = regexp.MustCompile(`^\s*val\s+([A-Za-z_]\w*)\s+by\s+extra\s*\(\s*"([^"]*)"\s*\)`)

	gradleShortRef = regexp.MustCompile(`^\$([A-Za-z_][\w]*)$`)
	gradleBraceRef = regexp.MustCompile(`^\$\{([A-Za-z_][\w.\-]*)\}$`)
)

// Parse implements Parser.
func (p GradleParser) Parse(ctx context.Context, path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()

	m, err := DecodeGradle(f)
	if err != nil {
		return nil, errors.WrapParse(string(TypeGradle), path, err)
	}
	m.Path = path
	m.Files = []string{path}

	log := logging.FromContext(ctx)
	propsPath := filepath.Join(filepath.Dir(path), "gradle.properties")
	if pf, err := os.Open(propsPath); err == nil {
		props, err := ReadGradleProperties(pf)
		_ = pf.Close()
		if err != nil {
			log.Warn().Err(err).Str("file", propsPath).Msg("Ignoring unparseable gradle.properties")
		} else {
			m.Properties = properties.Merged(props, m.Properties)
			m.Files = append(m.Files, propsPath)
		}
	} else if !os.IsNotExist(err) {
		log.Warn().Err(err).Str("file", propsPath).Msg("Could not read gradle.properties")
	}
	m.BootVersion = resolveOrEmpty(m.Properties, m.BootVersion)

	log.Debug().
		Str("manifest", path).
		Int("dependencies", len(m.Dependencies)).
		Int("properties", m.Properties.Len()).
		Str("boot_version", m.BootVersion).
		Msg("Parsed Gradle build")
	return m, nil
}

// DecodeGradle scans a build script. The returned BootVersion may still be
// a ${name} reference when it refers to a property defined elsewhere.
func DecodeGradle(r io.Reader) (*Manifest, error) {
	m := newManifest(TypeGradle, "")
	m.Files = nil

	var (
		rawBoot   string
		inExt     bool
		extDepth  int
		inComment bool
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var line string
		line, inComment = stripComments(scanner.Text(), inComment)
		if strings.TrimSpace(line) == "" {
			continue
		}

		if inExt {
			if k, v, ok := matchPair(gradleExtSet, line); ok {
				m.Properties.Set(k, v)
			} else if k, v, ok := matchPair(gradleExtAssign, line); ok {
				m.Properties.Set(k, v)
			}
			extDepth += strings.Count(line, "{") - strings.Count(line, "}")
			if extDepth <= 0 {
				inExt = false
			}
			continue
		}

		if gradleExtBlock.MatchString(line) {
			inExt = true
			extDepth = strings.Count(line, "{") - strings.Count(line, "}")
			if extDepth <= 0 {
				inExt = false
			}
			continue
		}

		for _, re := range []*regexp.Regexp{gradleExtDotted, gradleExtIndexed, gradleExtSet, gradleByExtra} {
			if k, v, ok := matchPair(re, line); ok {
				m.Properties.Set(k, v)
				break
			}
		}

		if rawBoot == "" {
			if sm := gradleBootPlugin.FindStringSubmatch(line); sm != nil {
				rawBoot = sm[1]
			} else if sm := gradleBootClasspath.FindStringSubmatch(line); sm != nil {
				rawBoot = sm[1]
			}
		}

		if sm := gradleMapDep.FindStringSubmatch(line); sm != nil {
			m.Dependencies = append(m.Dependencies, gradleDependency(sm[1], sm[2], sm[3]))
			continue
		}
		if sm := gradleStringDep.FindStringSubmatch(line); sm != nil {
			m.Dependencies = append(m.Dependencies, gradleDependency(sm[1], sm[2], sm[3]))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if rawBoot != "" {
		rawBoot = normalizeGradleVersion(rawBoot)
		if _, isRef := properties.Reference(rawBoot); isRef {
			if v, ok := properties.Resolve(m.Properties, rawBoot); ok {
				rawBoot = v
			}
		}
	}
	m.BootVersion = rawBoot
	return m, nil
}

// ReadGradleProperties parses a gradle.properties file with Java properties
// syntax. Keys are returned in file order and values are kept verbatim;
// ${name} references are not expanded.
func ReadGradleProperties(r io.Reader) (*properties.Table, error) {
	loader := &javaprops.Loader{Encoding: javaprops.UTF8, DisableExpansion: true}
	props, err := loader.LoadReader(r)
	if err != nil {
		return nil, err
	}

	table := &properties.Table{}
	for _, k := range props.Keys() {
		v, _ := props.Get(k)
		table.Set(k, v)
	}
	return table, nil
}

func gradleDependency(group, name, version string) reconcile.Dependency {
	return reconcile.Dependency{Group: group, Name: name, Version: normalizeGradleVersion(version)}
}

// normalizeGradleVersion rewrites $name to ${name}. Interpolations that are
// not a single property reference cannot be evaluated and become unversioned.
func normalizeGradleVersion(v string) string {
	v = strings.TrimSpace(v)
	if sm := gradleShortRef.FindStringSubmatch(v); sm != nil {
		return "${" + sm[1] + "}"
	}
	if gradleBraceRef.MatchString(v) {
		return v
	}
	if strings.Contains(v, "$") {
		return ""
	}
	return v
}

func resolveOrEmpty(table *properties.Table, raw string) string {
	if v, ok := properties.Resolve(table, raw); ok {
		return v
	}
	return ""
}

func matchPair(re *regexp.Regexp, line string) (string, string, bool) {
	sm := re.FindStringSubmatch(line)
	if sm == nil {
		return "", "", false
	}
	return sm[1], sm[2], true
}

// stripComments removes // and /* */ comments outside string literals.
func stripComments(line string, inBlock bool) (string, bool) {
	var b strings.Builder
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		if inBlock {
			if c == '*' && i+1 < len(line) && line[i+1] == '/' {
				inBlock = false
				i++
			}
			continue
		}
		if quote != 0 {
			b.WriteByte(c)
			if c == '\\' && i+1 < len(line) {
				i++
				b.WriteByte(line[i])
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch {
		case c == '\'' || c == '"':
			quote = c
			b.WriteByte(c)
		case c == '/' && i+1 < len(line) && line[i+1] == '/':
			return b.String(), false
		case c == '/' && i+1 < len(line) && line[i+1] == '*':
			inBlock = true
			i++
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), inBlock
}
