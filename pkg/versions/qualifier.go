package versions

import "strings"

// Qualifier ranks in ascending maturity. Unrecognized qualifiers rank above all of these.
const (
	rankSnapshot = iota
	rankAlpha
	rankBeta
	rankMilestone
	rankCandidate
	rankRelease
	rankServicePack
	rankUnknown
)

var qualifierRanks = map[string]int{
	"snapshot":  rankSnapshot,
	"alpha":     rankAlpha,
	"a":         rankAlpha,
	"beta":      rankBeta,
	"b":         rankBeta,
	"milestone": rankMilestone,
	"m":         rankMilestone,
	"rc":        rankCandidate,
	"cr":        rankCandidate,
	"":          rankRelease,
	"sp":        rankServicePack,
}

// normalizeQualifier lower-cases q and maps release aliases to "".
func normalizeQualifier(q string) string {
	q = strings.ToLower(q)
	switch q {
	case "ga", "final", "release":
		return ""
	}
	return q
}

// splitQualifier separates a trailing build number, so "rc2" yields ("rc", "2").
func splitQualifier(q string) (string, string) {
	i := len(q)
	for i > 0 && q[i-1] >= '0' && q[i-1] <= '9' {
		i--
	}
	return q[:i], q[i:]
}

func rank(q string) int {
	if r, ok := qualifierRanks[q]; ok {
		return r
	}
	return rankUnknown
}

func compareQualifiers(l, r string) int {
	l, r = normalizeQualifier(l), normalizeQualifier(r)

	lname, lnum := splitQualifier(l)
	rname, rnum := splitQualifier(r)
	lrank, rrank := rank(lname), rank(rname)

	if lrank != rrank {
		if lrank < rrank {
			return -1
		}
		return 1
	}
	if c := strings.Compare(lname, rname); c != 0 {
		return c
	}
	// rc2 < rc10
	if c := compareNumeric(lnum, rnum); c != 0 {
		return c
	}
	return strings.Compare(l, r)
}
