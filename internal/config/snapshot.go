package config

import (
	"crypto/sha256"
	"encoding/hex"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Snapshot computes a stable hash of the fields that affect routing and
// metadata derivation. Server and reload settings are not included because
// a running server cannot apply them without a restart. Map fields are
// hashed in key order.
func (c *Config) Snapshot() string {
	if c == nil {
		return ""
	}
	h := sha256.New()
	w := func(parts ...string) {
		h.Write([]byte(strings.Join(parts, "=")))
		h.Write([]byte{0})
	}

	w("site.hostname", c.Site.Hostname)
	w("versioning.sources", strings.Join(c.Versioning.Sources, ","))
	w("versioning.primary", c.Versioning.Primary)
	w("versioning.operator", c.Versioning.Operator)
	w("versioning.server_start_page", c.Versioning.ServerStartPage)

	w("seo.excluded_versions.set", strconv.FormatBool(c.SEO.ExcludedVersions != nil))
	for _, k := range slices.Sorted(maps.Keys(c.SEO.ExcludedVersions)) {
		w("seo.excluded_versions."+k, strings.Join(c.SEO.ExcludedVersions[k], ","))
	}
	for _, k := range slices.Sorted(maps.Keys(c.SEO.Categories)) {
		w("seo.categories."+k, c.SEO.Categories[k])
	}

	w("routing.client_languages", strings.Join(c.Routing.ClientLanguages, ","))
	w("routing.client_group_suffix", c.Routing.ClientGroupSuffix)
	w("routing.redirects.set", strconv.FormatBool(c.Routing.Redirects != nil))
	for _, r := range c.Routing.Redirects {
		w("routing.redirect", r.From, r.To)
	}

	w("markdown.replacements.set", strconv.FormatBool(c.Markdown.Replacements != nil))
	for _, r := range c.Markdown.Replacements {
		w("markdown.replacement", r.Prefix, r.Target)
	}
	return hex.EncodeToString(h.Sum(nil))
}
