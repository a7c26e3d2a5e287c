package versions_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/bootdrift/pkg/versions"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name  string
		left  string
		right string
		want  versions.Comparison
	}{
		{"identical", "1.2.3", "1.2.3", versions.Same},
		{"trailing zero right", "1.2.0", "1.2", versions.Same},
		{"trailing zeros left", "1.2", "1.2.0.0", versions.Same},
		{"minor bump", "1.2.0", "1.3.0", versions.Older},
		{"patch bump", "1.2.1", "1.2.0", versions.Newer},
		{"numeric not lexical", "1.10.0", "1.9.0", versions.Newer},
		{"leading zeros", "1.02", "1.2", versions.Same},
		{"huge numbers", "1.99999999999999999999999", "1.100000000000000000000000", versions.Older},
		{"release candidate before release", "2.0.0-RC1", "2.0.0", versions.Older},
		{"release after release candidate", "2.0.0", "2.0.0-RC1", versions.Newer},
		{"alpha before beta", "1.0.0-alpha", "1.0.0-beta", versions.Older},
		{"short aliases", "1.0-a1", "1.0-b1", versions.Older},
		{"milestone before rc", "6.0.0-M3", "6.0.0-RC1", versions.Older},
		{"snapshot before alpha", "1.0-SNAPSHOT", "1.0-alpha", versions.Older},
		{"rc before sp", "1.0-rc", "1.0-sp", versions.Older},
		{"service pack before bare release", "1.0.0.SP1", "1.0.0", versions.Older},
		{"service pack after candidate", "1.0.0.SP1", "1.0.0.RC1", versions.Newer},
		{"ga equals release", "1.0.0.GA", "1.0.0", versions.Same},
		{"final equals release", "5.6.15.Final", "5.6.15", versions.Same},
		{"RELEASE suffix", "5.3.1.RELEASE", "5.3.1", versions.Same},
		{"ga equals final", "2.0.GA", "2.0.Final", versions.Same},
		{"unknown qualifier ranks last", "31.1-jre", "31.1-sp", versions.Newer},
		{"unknown qualifier below bare release", "31.1-jre", "31.1", versions.Older},
		{"ga against longer release", "1.0.GA", "1.0.0", versions.Same},
		{"same rank lexical", "1.0-cr1", "1.0-rc1", versions.Older},
		{"candidate build numbers", "1.0-RC2", "1.0-RC10", versions.Older},
		{"build number after stem", "1-x10", "1-x1a", versions.Older},
		{"numeric outranks qualifier", "1.0.1", "1.0.beta", versions.Newer},
		{"underscore separator", "1_2_3", "1.2.3", versions.Same},
		{"separator runs", "1..2--3", "1.2.3", versions.Same},
		{"open ended marker", "3.1+", "3.1.0", versions.Same},
		{"wildcard suffix", "3.2.x", "3.2", versions.Same},
		{"wildcard older", "3.1.x", "3.2.0", versions.Older},
		{"case insensitive qualifiers", "1.0-Beta", "1.0-BETA", versions.Same},
		{"empty strings", "", "", versions.Same},
		{"empty against release", "", "1.0", versions.Older},
		{"garbage is still ordered", "???", "!!!", versions.Newer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, versions.Compare(tt.left, tt.right))
		})
	}
}

func TestCompareReflexive(t *testing.T) {
	inputs := []string{"1.0", "2.0.0-RC1", "1.0.0.GA", "3.2.x", "weird_version-", "", "0", "1.0-SNAPSHOT"}
	for _, v := range inputs {
		assert.Equal(t, versions.Same, versions.Compare(v, v), "version %q", v)
	}
}

func TestCompareAntisymmetric(t *testing.T) {
	inputs := []string{"1.0", "1.0.1", "2.0.0-RC1", "2.0.0", "1.0-alpha", "1.0-sp", "31.1-jre", "1.0-SNAPSHOT"}
	for _, a := range inputs {
		for _, b := range inputs {
			assert.Equal(t, -versions.Sign(a, b), versions.Sign(b, a), "%q vs %q", a, b)
		}
	}
}

func TestQualifiedVersionIsOlder(t *testing.T) {
	for _, q := range []string{"RC1", "alpha", "SNAPSHOT", "M2", "sp", "SP1", "jre", "foo"} {
		assert.Equal(t, versions.Older, versions.Compare("1.0.0-"+q, "1.0.0"), "qualifier %q", q)
	}
}

func TestSignTransitive(t *testing.T) {
	inputs := []string{
		"1-x9", "1-x10", "1-x1a", "1-x", "1-rc", "1-rc0", "1-rc2", "1-rc10", "1-cr1",
		"1", "1.0.GA", "1.0.0", "1-sp1", "1-jre", "1.0.1", "1.0-SNAPSHOT", "1.RELEASE.1", "",
	}
	for _, a := range inputs {
		for _, b := range inputs {
			for _, c := range inputs {
				if versions.Sign(a, b) <= 0 && versions.Sign(b, c) <= 0 {
					assert.LessOrEqual(t, versions.Sign(a, c), 0, "%q <= %q <= %q", a, b, c)
				}
			}
		}
	}
}

func TestSignSorts(t *testing.T) {
	got := []string{"2.0.0", "2.0.0-RC1", "1.9", "2.0.0-M1", "2.0.0.SP1", "2.0.0-SNAPSHOT", "1.10"}
	slices.SortFunc(got, versions.Sign)

	assert.Equal(t, []string{"1.9", "1.10", "2.0.0-SNAPSHOT", "2.0.0-M1", "2.0.0-RC1", "2.0.0.SP1", "2.0.0"}, got)
}

func TestComparisonSign(t *testing.T) {
	assert.Equal(t, -1, versions.Older.Sign())
	assert.Equal(t, 0, versions.Same.Sign())
	assert.Equal(t, 1, versions.Newer.Sign())
	assert.Equal(t, "newer", versions.Newer.String())
}
