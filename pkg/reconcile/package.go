package reconcile

import "github.com/agentstation/bootdrift/pkg/versions"

// Package is the verdict for one overridden dependency.
type Package struct {
	Group             string              `json:"group" yaml:"group"`
	Name              string              `json:"name" yaml:"name"`
	InputFileVersion  string              `json:"inputFileVersion" yaml:"input_file_version"`
	BootVersion       string              `json:"bootVersion" yaml:"boot_version"`
	VersionComparison versions.Comparison `json:"versionComparison" yaml:"version_comparison"`
}

// MakePackage builds a Package, comparing the declared version against
// the managed one.
func MakePackage(group, name, inputFileVersion, bootVersion string) Package {
	return Package{
		Group:             group,
		Name:              name,
		InputFileVersion:  inputFileVersion,
		BootVersion:       bootVersion,
		VersionComparison: versions.Compare(inputFileVersion, bootVersion),
	}
}

// Coordinates returns group:name.
func (p Package) Coordinates() string {
	return p.Group + ":" + p.Name
}

// Summary counts packages per comparison.
type Summary struct {
	Older int `json:"older" yaml:"older"`
	Same  int `json:"same" yaml:"same"`
	Newer int `json:"newer" yaml:"newer"`
}

// Total returns the number of packages counted.
func (s Summary) Total() int {
	return s.Older + s.Same + s.Newer
}

// Summarize tallies packages by comparison.
func Summarize(packages []Package) Summary {
	var s Summary
	for _, p := range packages {
		switch p.VersionComparison {
		case versions.Older:
			s.Older++
		case versions.Newer:
			s.Newer++
		default:
			s.Same++
		}
	}
	return s
}

// Drifted returns the packages whose declared version differs from the managed one.
func Drifted(packages []Package) []Package {
	out := make([]Package, 0, len(packages))
	for _, p := range packages {
		if p.VersionComparison != versions.Same {
			out = append(out, p)
		}
	}
	return out
}
