package config

import (
	"fmt"
	"slices"
	"strings"
)

// NormalizationResult captures adjustments made by NormalizeConfig.
type NormalizationResult struct{ Warnings []string }

// NormalizeConfig canonicalizes free-form fields in place before defaults are applied.
func NormalizeConfig(c *Config) *NormalizationResult {
	res := &NormalizationResult{}
	c.Site.Hostname = strings.TrimSuffix(strings.TrimSpace(c.Site.Hostname), "/")
	c.Versioning.Primary = strings.TrimSpace(c.Versioning.Primary)
	c.Versioning.Operator = strings.TrimSpace(c.Versioning.Operator)
	c.Versioning.Sources = trimAll(c.Versioning.Sources)
	normalizeLanguages(&c.Routing, res)
	return res
}

func normalizeLanguages(r *RoutingConfig, res *NormalizationResult) {
	if r.ClientLanguages == nil {
		return
	}
	seen := make(map[string]bool, len(r.ClientLanguages))
	out := make([]string, 0, len(r.ClientLanguages))
	for _, l := range r.ClientLanguages {
		n := strings.ToLower(strings.TrimSpace(l))
		if n != l {
			res.Warnings = append(res.Warnings, fmt.Sprintf("routing.client_languages: %q normalized to %q", l, n))
		}
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	if len(out) != len(r.ClientLanguages) {
		res.Warnings = append(res.Warnings, "routing.client_languages: removed empty or duplicate entries")
	}
	r.ClientLanguages = slices.Clip(out)
}

func trimAll(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
