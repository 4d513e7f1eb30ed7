package versioning

import "strings"

// Detail is one concrete version of a documentation group.
type Detail struct {
	Version    string `yaml:"version" json:"version"`       // Display label, e.g. "v26.0"
	Path       string `yaml:"path" json:"path"`             // URL segment, may differ from Version
	StartPage  string `yaml:"startPage" json:"startPage"`   // Landing page relative to the version root
	Preview    bool   `yaml:"preview" json:"preview"`       // Never considered "latest"
	Deprecated bool   `yaml:"deprecated" json:"deprecated"` // Listed under deprecated navigation
	Hide       bool   `yaml:"hide" json:"hide"`             // Excluded from navigation listings
	LTS        bool   `yaml:"lts" json:"lts"`
}

// IsLegacy reports whether the version lives under the legacy/ URL prefix.
func (d Detail) IsLegacy() bool {
	return strings.HasPrefix(d.Path, legacyPrefix)
}

// Group is a documentation product line with its own ordered version history.
// Versions are ordered newest first.
type Group struct {
	ID       string   `yaml:"id" json:"id"`
	Group    string   `yaml:"group" json:"group"`
	BasePath string   `yaml:"basePath" json:"basePath"`
	Versions []Detail `yaml:"versions" json:"versions"`
}

func (g Group) clone() Group {
	out := g
	out.Versions = append([]Detail(nil), g.Versions...)
	return out
}

// Link is a navigation entry pointing at a version's start page.
type Link struct {
	Text string `json:"text"`
	Link string `json:"link"`
}

const legacyPrefix = "legacy/"
