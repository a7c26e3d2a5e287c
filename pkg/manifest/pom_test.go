package manifest_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/bootdrift/pkg/errors"
	"github.com/agentstation/bootdrift/pkg/manifest"
	"github.com/agentstation/bootdrift/pkg/reconcile"
)

const starterPOM = `<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0">
  <modelVersion>4.0.0</modelVersion>
  <parent>
    <groupId>org.springframework.boot</groupId>
    <artifactId>spring-boot-starter-parent</artifactId>
    <version>3.1.0</version>
  </parent>
  <groupId>com.example</groupId>
  <artifactId>demo</artifactId>
  <version>0.0.1-SNAPSHOT</version>
  <properties>
    <java.version>17</java.version>
    <!-- override the managed version -->
    <jackson-bom.version>2.10.2</jackson-bom.version>
    <jackson.version>2.10.2</jackson.version>
  </properties>
  <dependencies>
    <dependency>
      <groupId>org.apache.httpcomponents</groupId>
      <artifactId>httpclient</artifactId>
    </dependency>
    <dependency>
      <groupId>org.java-websocket</groupId>
      <artifactId>Java-WebSocket</artifactId>
      <version>2.3.1</version>
    </dependency>
    <dependency>
      <groupId>com.fasterxml.jackson.core</groupId>
      <artifactId>jackson-databind</artifactId>
      <version>${jackson.version}</version>
    </dependency>
  </dependencies>
</project>`

func TestPOMParserStarterParent(t *testing.T) {
	path := writeFile(t, t.TempDir(), "pom.xml", starterPOM)

	m, err := manifest.POMParser{}.Parse(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, manifest.TypePOM, m.Type)
	assert.Equal(t, "3.1.0", m.BootVersion)
	assert.Equal(t, []string{path}, m.Files)
	assert.Equal(t, []reconcile.Dependency{
		{Group: "org.apache.httpcomponents", Name: "httpclient"},
		{Group: "org.java-websocket", Name: "Java-WebSocket", Version: "2.3.1"},
		{Group: "com.fasterxml.jackson.core", Name: "jackson-databind", Version: "${jackson.version}"},
	}, m.Dependencies)
	assert.Equal(t, []string{
		"project.parent.version",
		"project.version",
		"java.version",
		"jackson-bom.version",
		"jackson.version",
	}, m.Properties.Keys())

	v, ok := m.Properties.Get("project.version")
	require.True(t, ok)
	assert.Equal(t, "0.0.1-SNAPSHOT", v)
}

func TestPOMParserImportedBOM(t *testing.T) {
	const pom = `<project>
  <properties><spring-boot.version>3.2.2</spring-boot.version></properties>
  <dependencyManagement>
    <dependencies>
      <dependency>
        <groupId>org.springframework.boot</groupId>
        <artifactId>spring-boot-dependencies</artifactId>
        <version>${spring-boot.version}</version>
        <type>pom</type>
        <scope>import</scope>
      </dependency>
      <dependency>
        <groupId>org.flywaydb</groupId>
        <artifactId>flyway-core</artifactId>
        <version>10.0.0</version>
      </dependency>
    </dependencies>
  </dependencyManagement>
</project>`
	path := writeFile(t, t.TempDir(), "pom.xml", pom)

	m, err := manifest.POMParser{}.Parse(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "3.2.2", m.BootVersion)
	assert.Equal(t, []reconcile.Dependency{
		{Group: "org.flywaydb", Name: "flyway-core", Version: "10.0.0"},
	}, m.Dependencies)
}

func TestPOMParserWithoutBoot(t *testing.T) {
	const pom = `<project>
  <parent><groupId>com.example</groupId><artifactId>corp-parent</artifactId><version>7</version></parent>
  <dependencies><dependency><groupId>g</groupId><artifactId>n</artifactId><version>1</version></dependency></dependencies>
</project>`
	path := writeFile(t, t.TempDir(), "pom.xml", pom)

	m, err := manifest.POMParser{}.Parse(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, m.BootVersion)
	assert.Len(t, m.Dependencies, 1)
}

func TestPOMParserModules(t *testing.T) {
	dir := t.TempDir()
	root := writeFile(t, dir, "pom.xml", `<project>
  <parent>
    <groupId>org.springframework.boot</groupId>
    <artifactId>spring-boot-starter-parent</artifactId>
    <version>3.1.5</version>
  </parent>
  <properties>
    <guava.version>31.0-jre</guava.version>
    <shared.version>1.0</shared.version>
  </properties>
  <modules>
    <module>api</module>
    <module>missing</module>
    <module>service/pom.xml</module>
    <module>api</module>
  </modules>
  <dependencies>
    <dependency><groupId>root</groupId><artifactId>lib</artifactId><version>1</version></dependency>
  </dependencies>
</project>`)
	writeFile(t, dir, "api/pom.xml", `<project>
  <properties><guava.version>32.0-jre</guava.version></properties>
  <modules><module>../api</module><module>client</module></modules>
  <dependencies>
    <dependency><groupId>api</groupId><artifactId>lib</artifactId><version>${guava.version}</version></dependency>
  </dependencies>
</project>`)
	writeFile(t, dir, "api/client/pom.xml", `<project>
  <dependencies>
    <dependency><groupId>client</groupId><artifactId>lib</artifactId><version>2</version></dependency>
  </dependencies>
</project>`)
	writeFile(t, dir, "service/pom.xml", `<project>
  <properties><shared.version>2.0</shared.version></properties>
  <dependencies>
    <dependency><groupId>service</groupId><artifactId>lib</artifactId><version>3</version></dependency>
  </dependencies>
</project>`)

	m, err := manifest.POMParser{}.Parse(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, "3.1.5", m.BootVersion)
	assert.Equal(t, []string{
		root,
		filepath.Join(dir, "api", "pom.xml"),
		filepath.Join(dir, "api", "client", "pom.xml"),
		filepath.Join(dir, "service", "pom.xml"),
	}, m.Files)

	var groups []string
	for _, d := range m.Dependencies {
		groups = append(groups, d.Group)
	}
	assert.Equal(t, []string{"root", "api", "client", "service"}, groups)

	guava, _ := m.Properties.Get("guava.version")
	assert.Equal(t, "32.0-jre", guava)
	shared, _ := m.Properties.Get("shared.version")
	assert.Equal(t, "2.0", shared)
}

func TestPOMParserMalformedModule(t *testing.T) {
	dir := t.TempDir()
	root := writeFile(t, dir, "pom.xml", `<project><modules><module>bad</module></modules></project>`)
	writeFile(t, dir, "bad/pom.xml", `<project><dependencies>`)

	_, err := manifest.POMParser{}.Parse(context.Background(), root)
	var pe *errors.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, filepath.Join(dir, "bad", "pom.xml"), pe.File)
}

func TestPOMParserLatin1(t *testing.T) {
	pom := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n<project><name>caf\xe9</name>" +
		"<parent><groupId>org.springframework.boot</groupId><artifactId>spring-boot-starter-parent</artifactId>" +
		"<version>2.7.18</version></parent></project>"
	path := writeFile(t, t.TempDir(), "pom.xml", pom)

	m, err := manifest.POMParser{}.Parse(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "2.7.18", m.BootVersion)
}
