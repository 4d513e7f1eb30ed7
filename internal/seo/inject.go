package seo

import (
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	derrors "git.home.luguber.info/inful/docsroute/internal/foundation/errors"
)

// InjectHead rewrites an HTML page so its <head> carries the given canonical
// link and meta tags. Existing canonical links and meta elements with the
// same names are replaced. An empty canonical removes the canonical link.
func InjectHead(r io.Reader, w io.Writer, canonical string, tags []HeadTag) error {
	doc, err := html.Parse(r)
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryMarkup, "failed to parse HTML").Build()
	}

	head := findElement(doc, atom.Head)
	if head == nil {
		return derrors.MarkupError("document has no head element").Build()
	}

	names := make(map[string]bool, len(tags))
	for _, t := range tags {
		names[t.Name] = true
	}
	// Managed names are always cleared, even when not re-emitted.
	for _, n := range []string{MetaRobots, MetaVersion, MetaCategory, MetaDocsearchProduct, MetaDocsearchVersion} {
		names[n] = true
	}

	for c := head.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.ElementNode {
			switch {
			case c.DataAtom == atom.Link && getAttr(c, "rel") == "canonical",
				c.DataAtom == atom.Meta && names[getAttr(c, "name")]:
				head.RemoveChild(c)
			}
		}
		c = next
	}

	if canonical != "" {
		head.AppendChild(element(atom.Link, html.Attribute{Key: "rel", Val: "canonical"}, html.Attribute{Key: "href", Val: canonical}))
	}
	for _, t := range tags {
		head.AppendChild(element(atom.Meta, html.Attribute{Key: "name", Val: t.Name}, html.Attribute{Key: "content", Val: t.Content}))
	}

	if err := html.Render(w, doc); err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to write HTML").Build()
	}
	return nil
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
