package markdown

import (
	"strings"

	"git.home.luguber.info/inful/docsroute/internal/pathinfo"
)

// VersionPlaceholder in a replacement target is filled with the page version.
const VersionPlaceholder = "{version}"

// Replacement maps a link prefix alias to a site path.
type Replacement struct {
	Prefix string `json:"prefix"`
	Target string `json:"target"`
}

// DefaultReplacements are the documentation link aliases.
func DefaultReplacements() []Replacement {
	return []Replacement{
		{Prefix: "@server/", Target: "/server/" + VersionPlaceholder + "/"},
		{Prefix: "@clients/grpc/", Target: "/clients/grpc/"},
		{Prefix: "@client/dotnet/5.0/", Target: "/clients/tcp/dotnet/21.2/"},
		{Prefix: "@httpapi/", Target: "/server/v5/http-api/"},
	}
}

// Mover relocates moved content; redirect.Resolver satisfies it.
type Mover interface {
	Resolve(path string) (string, bool)
}

// Change records one rewritten destination.
type Change struct {
	Kind LinkKind `json:"kind"`
	From string   `json:"from"`
	To   string   `json:"to"`
}

// Rewriter rewrites link destinations in Markdown sources.
type Rewriter struct {
	replacements   []Replacement
	moves          Mover
	defaultVersion string
}

// NewRewriter returns a Rewriter. moves may be nil. defaultVersion fills
// {version} for pages outside any versioned section.
func NewRewriter(replacements []Replacement, moves Mover, defaultVersion string) *Rewriter {
	return &Rewriter{replacements: replacements, moves: moves, defaultVersion: defaultVersion}
}

// Destination rewrites a single destination. The first matching alias prefix
// is expanded and the result is then checked against the configured moves.
func (r *Rewriter) Destination(dest, version string) string {
	if version == "" {
		version = r.defaultVersion
	}
	out := dest
	for _, rep := range r.replacements {
		if rest, ok := strings.CutPrefix(out, rep.Prefix); ok {
			out = strings.ReplaceAll(rep.Target, VersionPlaceholder, version) + rest
			break
		}
	}
	if r.moves != nil && strings.HasPrefix(out, "/") {
		if moved, ok := r.moves.Resolve(out); ok {
			out = moved
		}
	}
	return out
}

// Rewrite rewrites every link destination in body. pagePath is the site path
// of the page and supplies the {version}. Only destinations goldmark
// recognizes as links are touched; the rest of the source is preserved byte
// for byte.
func (r *Rewriter) Rewrite(body []byte, pagePath string) ([]byte, []Change, error) {
	version := pathinfo.Parse(pagePath).Version

	known := make(map[string]bool)
	for _, l := range ExtractLinks(body) {
		known[l.Destination] = true
	}

	var (
		edits   []Edit
		changes []Change
	)
	for _, s := range locateDestinations(body) {
		dest := string(body[s.start:s.end])
		if !known[dest] {
			continue
		}
		next := r.Destination(dest, version)
		if next == dest {
			continue
		}
		edits = append(edits, Edit{Start: s.start, End: s.end, Replacement: []byte(next)})
		changes = append(changes, Change{Kind: s.kind, From: dest, To: next})
	}

	out, err := ApplyEdits(body, edits)
	if err != nil {
		return nil, nil, err
	}
	return out, changes, nil
}
