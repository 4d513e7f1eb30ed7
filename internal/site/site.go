// Package site owns the process-wide routing state: the version catalog and
// everything derived from it.
//
// A Site is built once by Init and never mutated. A running server keeps the
// current Site in a Holder and replaces it wholesale on reload, so readers
// always see a consistent catalog, rule set and metadata configuration.
package site

import (
	"log/slog"
	"time"

	"git.home.luguber.info/inful/docsroute/internal/config"
	derrors "git.home.luguber.info/inful/docsroute/internal/foundation/errors"
	"git.home.luguber.info/inful/docsroute/internal/logfields"
	"git.home.luguber.info/inful/docsroute/internal/markdown"
	"git.home.luguber.info/inful/docsroute/internal/pathinfo"
	"git.home.luguber.info/inful/docsroute/internal/redirect"
	"git.home.luguber.info/inful/docsroute/internal/search"
	"git.home.luguber.info/inful/docsroute/internal/seo"
	"git.home.luguber.info/inful/docsroute/internal/versioning"
)

// Site is an immutable snapshot of the routing state.
type Site struct {
	cfg           *config.Config
	catalog       *versioning.Catalog
	resolver      *redirect.Resolver
	canonicalizer *seo.Canonicalizer
	tagger        *seo.Tagger
	rewriter      *markdown.Rewriter
	loadedAt      time.Time
}

// Init loads the version descriptors named by cfg and builds a Site.
//
// It fails when the primary documentation group has no released version,
// since every /latest redirect depends on it.
func Init(cfg *config.Config) (*Site, error) {
	catalog, err := versioning.Load(cfg.Versioning.Sources)
	if err != nil {
		return nil, err
	}
	return New(cfg, catalog)
}

// New builds a Site from an already loaded catalog.
func New(cfg *config.Config, catalog *versioning.Catalog) (*Site, error) {
	primary, err := catalog.Latest(cfg.Versioning.Primary)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryConfig, "primary documentation group has no released version").
			WithContext("group", cfg.Versioning.Primary).
			Fatal().
			Build()
	}

	// Content moves take precedence over the navigation rules.
	moves := movesFrom(cfg.Routing.Redirects)
	resolver := redirect.NewResolver()
	if err := redirect.RegisterMoves(resolver, moves); err != nil {
		return nil, err
	}
	if err := redirect.RegisterSiteRules(resolver, catalog, redirect.SiteOptions{
		Primary:           cfg.Versioning.Primary,
		Operator:          cfg.Versioning.Operator,
		ClientLanguages:   cfg.Routing.ClientLanguages,
		ClientGroupSuffix: cfg.Routing.ClientGroupSuffix,
		ServerStartPage:   cfg.Versioning.ServerStartPage,
	}); err != nil {
		return nil, err
	}

	// Markdown links only follow content moves, never the navigation rules.
	moveResolver := redirect.NewResolver()
	if err := redirect.RegisterMoves(moveResolver, moves); err != nil {
		return nil, err
	}

	exclusions := seo.DefaultExclusions()
	if cfg.SEO.ExcludedVersions != nil {
		exclusions = seo.Exclusions(cfg.SEO.ExcludedVersions)
	}

	s := &Site{
		cfg:           cfg,
		catalog:       catalog,
		resolver:      resolver,
		canonicalizer: seo.NewCanonicalizer(cfg.Site.Hostname, exclusions),
		tagger:        seo.NewTagger(catalog, seo.NewCategories(cfg.SEO.Categories), exclusions),
		rewriter:      markdown.NewRewriter(replacementsFrom(cfg.Markdown.Replacements), moveResolver, primary.Path),
		loadedAt:      time.Now(),
	}

	slog.Info("Site initialized",
		logfields.Group(cfg.Versioning.Primary),
		logfields.Version(primary.Version),
		slog.Int("groups", len(catalog.Groups())),
		slog.Int("rules", resolver.Len()))
	return s, nil
}

func movesFrom(redirects []config.Redirect) []redirect.Move {
	if redirects == nil {
		return redirect.DefaultMoves
	}
	moves := make([]redirect.Move, len(redirects))
	for i, r := range redirects {
		moves[i] = redirect.Move{From: r.From, To: r.To}
	}
	return moves
}

func replacementsFrom(in []config.Replacement) []markdown.Replacement {
	if in == nil {
		return markdown.DefaultReplacements()
	}
	out := make([]markdown.Replacement, len(in))
	for i, r := range in {
		out[i] = markdown.Replacement{Prefix: r.Prefix, Target: r.Target}
	}
	return out
}

func (s *Site) Config() *config.Config            { return s.cfg }
func (s *Site) Catalog() *versioning.Catalog      { return s.catalog }
func (s *Site) Resolver() *redirect.Resolver      { return s.resolver }
func (s *Site) Canonicalizer() *seo.Canonicalizer { return s.canonicalizer }
func (s *Site) Tagger() *seo.Tagger               { return s.tagger }
func (s *Site) Rewriter() *markdown.Rewriter      { return s.rewriter }
func (s *Site) LoadedAt() time.Time               { return s.loadedAt }

// Route is every derivation for one path.
type Route struct {
	Path          string             `json:"path"`
	Section       string             `json:"section"`
	Version       string             `json:"version,omitempty"`
	Redirect      string             `json:"redirect,omitempty"`
	Rule          *redirect.RuleInfo `json:"rule,omitempty"`
	Canonical     string             `json:"canonical,omitempty"`
	Indexed       bool               `json:"indexed"`
	Tags          seo.Tags           `json:"tags"`
	HeadTags      []seo.HeadTag      `json:"head_tags"`
	SearchFilters []string           `json:"search_filters,omitempty"`
}

// Inspect derives the redirect, canonical URL and metadata of path.
func (s *Site) Inspect(path string) Route {
	parsed := pathinfo.Parse(path)
	r := Route{
		Path:    path,
		Section: parsed.Section,
		Version: parsed.Version,
		Tags:    s.tagger.Tags(path),
	}
	if res, ok := s.resolver.ResolveRule(path); ok {
		r.Redirect = res.Destination
		r.Rule = &res.Rule
	}
	r.Canonical, r.Indexed = s.canonicalizer.Canonicalize(path)
	r.HeadTags = r.Tags.HeadTags()
	r.SearchFilters = search.FromHeadTags(r.HeadTags).Optional()
	return r
}
