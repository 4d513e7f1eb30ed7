package commands

import (
	"fmt"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct{}

func (c *ValidateCmd) Run(g *Global, root *CLI) error {
	s, err := root.LoadSite()
	if err != nil {
		return err
	}
	cat := s.Catalog()
	latest, _ := cat.LatestRelease(s.Config().Versioning.Primary)
	fmt.Fprintf(g.Out, "configuration valid: %d groups, %d versions, %d redirect rules, latest %s\n",
		len(cat.Groups()), cat.VersionCount(), s.Resolver().Len(), latest)
	return nil
}
