package seo

import (
	"git.home.luguber.info/inful/docsroute/internal/pathinfo"
	"git.home.luguber.info/inful/docsroute/internal/versioning"
)

// Meta tag names written into page heads.
const (
	MetaRobots           = "robots"
	MetaVersion          = "es:version"
	MetaCategory         = "es:category"
	MetaDocsearchProduct = "docsearch:product"
	MetaDocsearchVersion = "docsearch:version"

	noIndex = "noindex,nofollow"
)

// Tags is the indexing metadata of one page.
type Tags struct {
	Version  string `json:"version,omitempty"`
	Category string `json:"category"`
	Latest   bool   `json:"latest,omitempty"`
	Excluded bool   `json:"excluded,omitempty"`
}

// HeadTag is a <meta name content> element.
type HeadTag struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Tagger derives Tags from paths. The catalog is optional; without it no
// version is reported as latest.
type Tagger struct {
	catalog    *versioning.Catalog
	categories Categories
	excluded   Exclusions
}

// NewTagger returns a Tagger.
func NewTagger(catalog *versioning.Catalog, categories Categories, excluded Exclusions) *Tagger {
	if categories.labels == nil {
		categories = NewCategories(nil)
	}
	return &Tagger{catalog: catalog, categories: categories, excluded: excluded}
}

// Tags returns the metadata for path. The version is reported verbatim.
func (t *Tagger) Tags(path string) Tags {
	p := pathinfo.Parse(path)
	return Tags{
		Version:  p.Version,
		Category: t.categories.Label(p.Section),
		Latest:   t.isLatest(p),
		Excluded: t.excluded.Contains(p.Section, p.Version),
	}
}

func (t *Tagger) isLatest(p pathinfo.Parsed) bool {
	if !p.HasVersion || t.catalog == nil {
		return false
	}
	g, ok := t.catalog.GroupByBasePath(p.Section)
	if !ok {
		return false
	}
	latest, err := t.catalog.Latest(g.ID)
	return err == nil && latest.Path == p.Version
}

// HeadTags returns the meta tags for path. An excluded page only gets a
// robots directive.
func (t *Tagger) HeadTags(path string) []HeadTag {
	return t.Tags(path).HeadTags()
}

// HeadTags renders tags as meta elements.
func (tags Tags) HeadTags() []HeadTag {
	if tags.Excluded {
		return []HeadTag{{Name: MetaRobots, Content: noIndex}}
	}

	var out []HeadTag
	if tags.Version != "" {
		out = append(out, HeadTag{Name: MetaVersion, Content: tags.Version})
	}
	out = append(out, HeadTag{Name: MetaCategory, Content: tags.Category})
	out = append(out, HeadTag{Name: MetaDocsearchProduct, Content: tags.Category})
	if tags.Version != "" {
		v := tags.Version
		if tags.Latest {
			v += "," + LatestToken
		}
		out = append(out, HeadTag{Name: MetaDocsearchVersion, Content: v})
	}
	return out
}
