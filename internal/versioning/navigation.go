package versioning

import "strings"

// SidebarStructure is the sidebar mode assigned to every versioned root.
const SidebarStructure = "structure"

// Sidebars maps the root URL of every version ("/basePath/path/") to the
// sidebar mode used for it.
func (c *Catalog) Sidebars() map[string]string {
	out := make(map[string]string, c.VersionCount())
	for _, g := range c.groups {
		for _, v := range g.Versions {
			out["/"+joinPath(g.BasePath, v.Path)+"/"] = SidebarStructure
		}
	}
	return out
}

// LinksFor returns navbar links for the visible versions of a group whose
// deprecated flag matches. Unknown groups yield no links.
func (c *Catalog) LinksFor(groupID string, deprecated bool) []Link {
	i, ok := c.index[groupID]
	if !ok {
		return nil
	}
	g := c.groups[i]
	var links []Link
	for _, v := range g.Versions {
		if v.Hide || v.Deprecated != deprecated {
			continue
		}
		links = append(links, Link{Text: v.Version, Link: StartURL(g.BasePath, v)})
	}
	return links
}

// StartURL returns the absolute URL path of a version's start page.
func StartURL(basePath string, v Detail) string {
	return "/" + joinPath(basePath, v.Path) + "/" + strings.TrimPrefix(v.StartPage, "/")
}
