// Package versions compares build-tool version strings.
//
// Versions are split into segments on runs of '.', '_' and '-'. Numeric
// segments compare as integers, qualifier segments compare by maturity:
//
//	snapshot < alpha, a < beta, b < milestone, m < rc, cr < (release) < sp < anything else
//
// "ga", "final" and "release" are the release qualifier, so 1.0.0.GA and
// 1.0.0 are the same version. A missing segment counts as "0", so 1.2 and
// 1.2.0 are the same version.
package versions

import (
	"strings"
)

// Comparison is the verdict of comparing a declared version against a reference version.
type Comparison string

// Comparison values.
const (
	Older Comparison = "older"
	Same  Comparison = "same"
	Newer Comparison = "newer"
)

// String implements fmt.Stringer.
func (c Comparison) String() string {
	return string(c)
}

// Sign returns -1, 0 or 1 for Older, Same or Newer.
func (c Comparison) Sign() int {
	switch c {
	case Older:
		return -1
	case Newer:
		return 1
	default:
		return 0
	}
}

// Compare reports whether left is older than, the same as, or newer than right.
// Any two strings are comparable.
func Compare(left, right string) Comparison {
	switch Sign(left, right) {
	case -1:
		return Older
	case 1:
		return Newer
	default:
		return Same
	}
}

// Sign compares left and right, returning -1, 0 or 1.
// Suitable for slices.SortFunc. Missing positions compare as 0, so any
// qualifier other than a release alias ranks below the bare version.
func Sign(left, right string) int {
	ls := segments(normalize(left))
	rs := segments(normalize(right))

	for i := range max(len(ls), len(rs)) {
		l := at(ls, i)
		r := at(rs, i)
		if c := compareSegments(l, r); c != 0 {
			return c
		}
	}
	return 0
}

func normalize(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimSuffix(v, "+")
	if strings.HasSuffix(v, ".x") || strings.HasSuffix(v, ".X") {
		v = v[:len(v)-2]
	}
	return v
}

type segment struct {
	text    string
	numeric bool
}

var zero = segment{text: "0", numeric: true}

func at(segs []segment, i int) segment {
	if i < len(segs) {
		return segs[i]
	}
	return zero
}

func isSeparator(r rune) bool {
	return r == '.' || r == '_' || r == '-'
}

func segments(v string) []segment {
	fields := strings.FieldsFunc(v, isSeparator)
	segs := make([]segment, 0, len(fields))
	for _, f := range fields {
		segs = append(segs, segment{text: f, numeric: isDigits(f)})
	}
	// 1.0.0.GA is 1.0.0
	for len(segs) > 0 {
		last := segs[len(segs)-1]
		if last.numeric || normalizeQualifier(last.text) != "" {
			break
		}
		segs = segs[:len(segs)-1]
	}
	return segs
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func compareSegments(l, r segment) int {
	switch {
	case l.numeric && r.numeric:
		return compareNumeric(l.text, r.text)
	case l.numeric:
		return 1
	case r.numeric:
		return -1
	default:
		return compareQualifiers(l.text, r.text)
	}
}

// compareNumeric compares digit strings of any length.
func compareNumeric(l, r string) int {
	l = strings.TrimLeft(l, "0")
	r = strings.TrimLeft(r, "0")
	if len(l) != len(r) {
		if len(l) < len(r) {
			return -1
		}
		return 1
	}
	return strings.Compare(l, r)
}
