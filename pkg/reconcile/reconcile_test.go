package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/bootdrift/pkg/catalog"
	"github.com/agentstation/bootdrift/pkg/properties"
	"github.com/agentstation/bootdrift/pkg/reconcile"
	"github.com/agentstation/bootdrift/pkg/versions"
)

func dep(group, name, version string) reconcile.Dependency {
	return reconcile.Dependency{Group: group, Name: name, Version: version}
}

func entry(group, name, version string) catalog.Entry {
	return catalog.Entry{Group: group, Name: name, Version: version}
}

func TestReconcileEndToEnd(t *testing.T) {
	got := reconcile.Reconcile(
		[]reconcile.Dependency{dep("g", "n", "1.2.0")},
		[]catalog.Entry{entry("g", "n", "1.3.0")},
		nil,
	)

	require.Len(t, got, 1)
	assert.Equal(t, reconcile.Package{
		Group:             "g",
		Name:              "n",
		InputFileVersion:  "1.2.0",
		BootVersion:       "1.3.0",
		VersionComparison: versions.Older,
	}, got[0])
}

func TestReconcile(t *testing.T) {
	entries := []catalog.Entry{
		entry("com.fasterxml.jackson.core", "jackson-databind", "2.15.3"),
		entry("org.postgresql", "postgresql", "42.6.0"),
		entry("org.postgresql", "postgresql", "99.0.0"),
		entry("com.google.guava", "guava", "32.1.0-jre"),
	}
	table := properties.NewTable(
		"jackson.version", "2.16.1",
		"pg.version", "42.6.0",
	)

	tests := []struct {
		name string
		deps []reconcile.Dependency
		want []reconcile.Package
	}{
		{
			name: "property reference resolves",
			deps: []reconcile.Dependency{dep("com.fasterxml.jackson.core", "jackson-databind", "${jackson.version}")},
			want: []reconcile.Package{reconcile.MakePackage("com.fasterxml.jackson.core", "jackson-databind", "2.16.1", "2.15.3")},
		},
		{
			name: "first catalog entry wins",
			deps: []reconcile.Dependency{dep("org.postgresql", "postgresql", "${pg.version}")},
			want: []reconcile.Package{reconcile.MakePackage("org.postgresql", "postgresql", "42.6.0", "42.6.0")},
		},
		{
			name: "first declaration wins",
			deps: []reconcile.Dependency{
				dep("com.google.guava", "guava", "31.0-jre"),
				dep("com.google.guava", "guava", "33.0-jre"),
			},
			want: []reconcile.Package{reconcile.MakePackage("com.google.guava", "guava", "31.0-jre", "32.1.0-jre")},
		},
		{
			name: "unresolved reference is skipped",
			deps: []reconcile.Dependency{
				dep("com.google.guava", "guava", "${guava.version}"),
				dep("com.google.guava", "guava", "33.0-jre"),
			},
			want: []reconcile.Package{reconcile.MakePackage("com.google.guava", "guava", "33.0-jre", "32.1.0-jre")},
		},
		{
			name: "unversioned dependency is skipped",
			deps: []reconcile.Dependency{dep("org.postgresql", "postgresql", "")},
			want: []reconcile.Package{},
		},
		{
			name: "unmanaged dependency is skipped",
			deps: []reconcile.Dependency{dep("io.example", "widget", "1.0")},
			want: []reconcile.Package{},
		},
		{
			name: "declaration order is kept",
			deps: []reconcile.Dependency{
				dep("org.postgresql", "postgresql", "42.7.1"),
				dep("io.example", "widget", "1.0"),
				dep("com.fasterxml.jackson.core", "jackson-databind", "2.14.0"),
			},
			want: []reconcile.Package{
				reconcile.MakePackage("org.postgresql", "postgresql", "42.7.1", "42.6.0"),
				reconcile.MakePackage("com.fasterxml.jackson.core", "jackson-databind", "2.14.0", "2.15.3"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reconcile.Reconcile(tt.deps, entries, table))
		})
	}
}

func TestReconcileUniqueCoordinates(t *testing.T) {
	deps := []reconcile.Dependency{
		dep("a", "x", "1.0"),
		dep("a", "x", "2.0"),
		dep("b", "y", "1.0"),
		dep("a", "x", "3.0"),
		dep("b", "y", "0.1"),
	}
	entries := []catalog.Entry{entry("a", "x", "2.0"), entry("b", "y", "1.0"), entry("a", "x", "9.9")}

	got := reconcile.Reconcile(deps, entries, nil)

	seen := map[string]bool{}
	for _, p := range got {
		assert.False(t, seen[p.Coordinates()], "duplicate %s", p.Coordinates())
		seen[p.Coordinates()] = true
	}
	require.Len(t, got, 2)
	assert.Equal(t, versions.Older, got[0].VersionComparison)
	assert.Equal(t, versions.Same, got[1].VersionComparison)
}

func TestReconcileAbsentInputs(t *testing.T) {
	assert.Empty(t, reconcile.Reconcile(nil, nil, nil))
	assert.NotNil(t, reconcile.Reconcile(nil, nil, nil))
	assert.Empty(t, reconcile.Reconcile([]reconcile.Dependency{dep("g", "n", "1.0")}, nil, nil))
	assert.Empty(t, reconcile.Reconcile(nil, []catalog.Entry{entry("g", "n", "1.0")}, properties.NewTable()))
}

func TestMakePackage(t *testing.T) {
	p := reconcile.MakePackage("org.flywaydb", "flyway-core", "10.0.0", "9.22.3")
	assert.Equal(t, versions.Newer, p.VersionComparison)
	assert.Equal(t, "org.flywaydb:flyway-core", p.Coordinates())
}

func TestSummarizeAndDrifted(t *testing.T) {
	pkgs := []reconcile.Package{
		reconcile.MakePackage("g", "a", "1.0", "2.0"),
		reconcile.MakePackage("g", "b", "2.0", "2.0.0"),
		reconcile.MakePackage("g", "c", "3.0", "2.0"),
		reconcile.MakePackage("g", "d", "1.0-RC1", "1.0"),
	}

	s := reconcile.Summarize(pkgs)
	assert.Equal(t, reconcile.Summary{Older: 2, Same: 1, Newer: 1}, s)
	assert.Equal(t, 4, s.Total())

	drifted := reconcile.Drifted(pkgs)
	require.Len(t, drifted, 3)
	for _, p := range drifted {
		assert.NotEqual(t, versions.Same, p.VersionComparison)
	}
}
