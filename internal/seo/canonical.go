package seo

import (
	"slices"
	"strings"

	"git.home.luguber.info/inful/docsroute/internal/pathinfo"
)

// DefaultHostname is the documentation site origin.
const DefaultHostname = "https://docs.kurrent.io"

// LatestToken replaces the version segment of canonical URLs.
const LatestToken = "latest"

// Exclusions maps a section to the versions retired from indexing.
type Exclusions map[string][]string

// DefaultExclusions lists the retired server versions.
func DefaultExclusions() Exclusions {
	return Exclusions{"server": {"v5", "v24.6"}}
}

// Contains reports whether version of section is excluded. An empty version
// is never excluded.
func (e Exclusions) Contains(section, version string) bool {
	if version == "" {
		return false
	}
	return slices.Contains(e[section], version)
}

var (
	legacyMarkers     = []string{"legacy", "tcp"}
	versionedFamilies = []string{"server", "clients"}
)

// IsLegacySection reports whether a section holds legacy content, which is
// indexed under its own URL.
func IsLegacySection(section string) bool {
	for _, m := range legacyMarkers {
		if strings.Contains(section, m) {
			return true
		}
	}
	return false
}

func isVersionedFamily(section string) bool {
	for _, f := range versionedFamilies {
		if strings.HasPrefix(section, f) {
			return true
		}
	}
	return false
}

// Canonicalizer builds canonical URLs.
type Canonicalizer struct {
	hostname string
	excluded Exclusions
}

// NewCanonicalizer returns a Canonicalizer for the given origin. A nil
// exclusion table excludes nothing.
func NewCanonicalizer(hostname string, excluded Exclusions) *Canonicalizer {
	if hostname == "" {
		hostname = DefaultHostname
	}
	return &Canonicalizer{hostname: strings.TrimSuffix(hostname, "/"), excluded: excluded}
}

// Hostname returns the origin canonical URLs are built on.
func (c *Canonicalizer) Hostname() string { return c.hostname }

// Excluded reports whether path is retired from indexing.
func (c *Canonicalizer) Excluded(path string) bool {
	p := pathinfo.Parse(path)
	return c.excluded.Contains(p.Section, p.Version)
}

// Canonicalize returns the canonical URL for path. It returns false when the
// page must not be indexed at all.
//
// Precedence is exclusion, then legacy sections (kept as-is), then the
// server and client families (version replaced by "latest"). Anything else,
// including unversioned paths, is canonical under its own URL.
func (c *Canonicalizer) Canonicalize(path string) (string, bool) {
	p := pathinfo.Parse(path)
	self := c.hostname + path

	if !p.HasVersion {
		return self, true
	}
	if c.excluded.Contains(p.Section, p.Version) {
		return "", false
	}
	if IsLegacySection(p.Section) || !isVersionedFamily(p.Section) {
		return self, true
	}

	versioned := "/" + p.Section + "/" + p.Version
	return c.hostname + strings.Replace(path, versioned, "/"+p.Section+"/"+LatestToken, 1), true
}
