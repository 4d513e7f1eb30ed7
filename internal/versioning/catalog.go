package versioning

import (
	"strings"

	derrors "git.home.luguber.info/inful/docsroute/internal/foundation/errors"
)

// Catalog is the registry of documentation version groups.
//
// A Catalog is immutable once constructed: every accessor returns copies, so a
// single instance can be shared by concurrent readers without locking.
type Catalog struct {
	groups []Group
	index  map[string]int
}

// New builds a catalog from groups, merging entries that share an ID.
// The first occurrence of an ID fixes the group's metadata; later occurrences
// only contribute versions, appended in order.
func New(groups ...Group) *Catalog {
	c := &Catalog{index: make(map[string]int, len(groups))}
	for _, g := range groups {
		if i, ok := c.index[g.ID]; ok {
			c.groups[i].Versions = append(c.groups[i].Versions, g.Versions...)
			continue
		}
		c.index[g.ID] = len(c.groups)
		c.groups = append(c.groups, g.clone())
	}
	return c
}

// Groups returns every group in first-seen order.
func (c *Catalog) Groups() []Group {
	out := make([]Group, len(c.groups))
	for i, g := range c.groups {
		out[i] = g.clone()
	}
	return out
}

// Group returns the group with the given ID.
func (c *Catalog) Group(id string) (Group, bool) {
	i, ok := c.index[id]
	if !ok {
		return Group{}, false
	}
	return c.groups[i].clone(), true
}

// Find returns the first group matching pred.
func (c *Catalog) Find(pred func(Group) bool) (Group, bool) {
	for _, g := range c.groups {
		cp := g.clone()
		if pred(cp) {
			return cp, true
		}
	}
	return Group{}, false
}

// Latest returns the newest non-preview version of a group.
func (c *Catalog) Latest(groupID string) (Detail, error) {
	i, ok := c.index[groupID]
	if !ok {
		return Detail{}, derrors.NotFoundError("version group not found").
			WithContext("group", groupID).
			Build()
	}
	for _, v := range c.groups[i].Versions {
		if !v.Preview {
			return v, nil
		}
	}
	return Detail{}, derrors.NotFoundError("version group has no released versions").
		WithContext("group", groupID).
		Build()
}

// LatestRelease returns "basePath/path" for the latest release of a group,
// e.g. "server/v26.0". This is the target of the /latest redirects.
func (c *Catalog) LatestRelease(groupID string) (string, error) {
	latest, err := c.Latest(groupID)
	if err != nil {
		return "", err
	}
	g := c.groups[c.index[groupID]]
	return joinPath(g.BasePath, latest.Path), nil
}

// LatestSemver returns the path of the newest entry of a group, preview or not.
func (c *Catalog) LatestSemver(groupID string) (string, error) {
	i, ok := c.index[groupID]
	if !ok || len(c.groups[i].Versions) == 0 {
		return "", derrors.NotFoundError("version group has no versions").
			WithContext("group", groupID).
			Build()
	}
	return c.groups[i].Versions[0].Path, nil
}

// AllPaths returns the URL segments of every version of a group, newest first.
func (c *Catalog) AllPaths(groupID string) []string {
	i, ok := c.index[groupID]
	if !ok {
		return nil
	}
	paths := make([]string, 0, len(c.groups[i].Versions))
	for _, v := range c.groups[i].Versions {
		paths = append(paths, v.Path)
	}
	return paths
}

// VersionByPath finds the version of a group whose URL segment equals path.
func (c *Catalog) VersionByPath(groupID, path string) (Detail, bool) {
	return c.firstVersion(groupID, func(d Detail) bool { return d.Path == path })
}

// FirstLegacy returns the newest version published under legacy/.
func (c *Catalog) FirstLegacy(groupID string) (Detail, bool) {
	return c.firstVersion(groupID, Detail.IsLegacy)
}

// GroupByBasePath returns the group whose base path equals basePath.
func (c *Catalog) GroupByBasePath(basePath string) (Group, bool) {
	return c.Find(func(g Group) bool { return g.BasePath == basePath })
}

// VersionCount returns the total number of versions across all groups.
func (c *Catalog) VersionCount() int {
	n := 0
	for _, g := range c.groups {
		n += len(g.Versions)
	}
	return n
}

func (c *Catalog) firstVersion(groupID string, pred func(Detail) bool) (Detail, bool) {
	i, ok := c.index[groupID]
	if !ok {
		return Detail{}, false
	}
	for _, v := range c.groups[i].Versions {
		if pred(v) {
			return v, true
		}
	}
	return Detail{}, false
}

// joinPath joins URL fragments with single slashes, dropping empty parts.
func joinPath(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, "/")
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "/")
}
