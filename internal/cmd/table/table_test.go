package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/bootdrift/pkg/catalog"
	"github.com/agentstation/bootdrift/pkg/reconcile"
	"github.com/agentstation/bootdrift/pkg/versions"
)

func TestPackagesToTableData(t *testing.T) {
	pkgs := []reconcile.Package{
		reconcile.MakePackage("org.flywaydb", "flyway-core", "9.0.0", "9.16.3"),
		reconcile.MakePackage("io.micrometer", "micrometer-core", "1.11.0", "1.11.0"),
	}

	narrow := PackagesToTableData(pkgs, false)
	assert.Equal(t, []string{"Artifact", "Declared", "Spring Boot", "Status"}, narrow.Headers)
	require.Len(t, narrow.Rows, 2)
	assert.Equal(t, []string{"flyway-core", "9.0.0", "9.16.3", "↓ older"}, narrow.Rows[0])
	assert.Len(t, narrow.ColumnAlignment, 4)

	wide := PackagesToTableData(pkgs, true)
	assert.Equal(t, "Group", wide.Headers[0])
	assert.Equal(t, []string{"io.micrometer", "micrometer-core", "1.11.0", "1.11.0", "= same"}, wide.Rows[1])
	assert.Len(t, wide.ColumnAlignment, 5)
}

func TestFormatComparison(t *testing.T) {
	assert.Equal(t, "↑ newer", FormatComparison(versions.Newer))
	assert.Equal(t, "↓ older", FormatComparison(versions.Older))
	assert.Equal(t, "= same", FormatComparison(versions.Same))
}

func TestFormatSummary(t *testing.T) {
	s := reconcile.Summary{Older: 2, Same: 1, Newer: 3}
	assert.Equal(t, "6 packages: 2 older, 1 same, 3 newer", FormatSummary(s))
}

func TestEntriesAndTags(t *testing.T) {
	d := EntriesToTableData([]catalog.Entry{{Group: "g", Name: "n", Version: "1.0"}})
	assert.Equal(t, [][]string{{"g", "n", "1.0"}}, d.Rows)

	tags := TagsToTableData([]string{"2.7.0", "3.1.0"})
	assert.Equal(t, [][]string{{"2.7.0"}, {"3.1.0"}}, tags.Rows)

	props := PropertiesToTableData([]string{"flyway.version"})
	assert.Equal(t, []string{"Property"}, props.Headers)
	assert.Len(t, props.Rows, 1)
}
