package commands

import (
	"fmt"

	derrors "git.home.luguber.info/inful/docsroute/internal/foundation/errors"
	"git.home.luguber.info/inful/docsroute/internal/redirect"
)

// ResolveCmd implements the 'resolve' command.
type ResolveCmd struct {
	Paths []string `arg:"" help:"Site paths to resolve"`
	JSON  bool     `help:"Print results as JSON"`
}

type resolution struct {
	Path        string             `json:"path"`
	Destination string             `json:"destination,omitempty"`
	Rule        *redirect.RuleInfo `json:"rule,omitempty"`
}

func (c *ResolveCmd) Run(g *Global, root *CLI) error {
	s, err := root.LoadSite()
	if err != nil {
		return err
	}

	out := make([]resolution, 0, len(c.Paths))
	for _, p := range c.Paths {
		r := resolution{Path: p}
		if res, ok := s.Resolver().ResolveRule(p); ok {
			r.Destination = res.Destination
			r.Rule = &res.Rule
		}
		out = append(out, r)
	}
	if c.JSON {
		return writeJSON(g.Out, out)
	}
	for _, r := range out {
		if r.Rule == nil {
			fmt.Fprintf(g.Out, "%s\t(no redirect)\n", r.Path)
			continue
		}
		fmt.Fprintf(g.Out, "%s\t%s\n", r.Path, r.Destination)
	}
	return nil
}

// CanonicalCmd implements the 'canonical' command.
type CanonicalCmd struct {
	Paths []string `arg:"" help:"Site paths"`
}

func (c *CanonicalCmd) Run(g *Global, root *CLI) error {
	s, err := root.LoadSite()
	if err != nil {
		return err
	}
	for _, p := range c.Paths {
		canonical, ok := s.Canonicalizer().Canonicalize(p)
		if !ok {
			fmt.Fprintf(g.Out, "%s\t(noindex)\n", p)
			continue
		}
		fmt.Fprintf(g.Out, "%s\t%s\n", p, canonical)
	}
	return nil
}

// TagsCmd implements the 'tags' command.
type TagsCmd struct {
	Path string `arg:"" help:"Site path"`
	JSON bool   `help:"Print tags as JSON"`
}

func (c *TagsCmd) Run(g *Global, root *CLI) error {
	s, err := root.LoadSite()
	if err != nil {
		return err
	}
	tags := s.Tagger().HeadTags(c.Path)
	if c.JSON {
		return writeJSON(g.Out, tags)
	}
	for _, t := range tags {
		fmt.Fprintf(g.Out, "<meta name=%q content=%q>\n", t.Name, t.Content)
	}
	return nil
}

// InspectCmd implements the 'inspect' command.
type InspectCmd struct {
	Path string `arg:"" help:"Site path"`
}

func (c *InspectCmd) Run(g *Global, root *CLI) error {
	s, err := root.LoadSite()
	if err != nil {
		return err
	}
	return writeJSON(g.Out, s.Inspect(c.Path))
}

// SidebarsCmd implements the 'sidebars' command.
type SidebarsCmd struct{}

func (c *SidebarsCmd) Run(g *Global, root *CLI) error {
	s, err := root.LoadSite()
	if err != nil {
		return err
	}
	return writeJSON(g.Out, s.Catalog().Sidebars())
}

// NavbarCmd implements the 'navbar' command.
type NavbarCmd struct {
	Group      string `arg:"" help:"Documentation group ID"`
	Deprecated bool   `help:"List deprecated versions instead of current ones"`
}

func (c *NavbarCmd) Run(g *Global, root *CLI) error {
	s, err := root.LoadSite()
	if err != nil {
		return err
	}
	if _, ok := s.Catalog().Group(c.Group); !ok {
		return derrors.NotFoundError("unknown documentation group").
			WithContext("group", c.Group).
			Build()
	}
	return writeJSON(g.Out, s.Catalog().LinksFor(c.Group, c.Deprecated))
}
