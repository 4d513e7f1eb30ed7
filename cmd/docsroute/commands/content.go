package commands

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	derrors "git.home.luguber.info/inful/docsroute/internal/foundation/errors"
	"git.home.luguber.info/inful/docsroute/internal/logfields"
	"git.home.luguber.info/inful/docsroute/internal/search"
	"git.home.luguber.info/inful/docsroute/internal/seo"
)

// RewriteLinksCmd implements the 'rewrite-links' command.
type RewriteLinksCmd struct {
	Files []string `arg:"" type:"existingfile" help:"Markdown files to rewrite"`
	Root  string   `help:"Documentation root; file paths below it become site paths" default:"."`
	Page  string   `help:"Site path of the page, overriding the path derived from --root"`
	Write bool     `short:"w" help:"Write changes back instead of only listing them"`
}

func (c *RewriteLinksCmd) Run(g *Global, root *CLI) error {
	s, err := root.LoadSite()
	if err != nil {
		return err
	}

	total := 0
	for _, file := range c.Files {
		body, err := os.ReadFile(filepath.Clean(file))
		if err != nil {
			return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to read markdown file").
				WithContext("file", file).
				Build()
		}

		page := c.Page
		if page == "" {
			page = sitePath(c.Root, file)
		}
		out, changes, err := s.Rewriter().Rewrite(body, page)
		if err != nil {
			return err
		}
		for _, ch := range changes {
			fmt.Fprintf(g.Out, "%s: %s %s -> %s\n", file, ch.Kind, ch.From, ch.To)
		}
		total += len(changes)

		if c.Write && len(changes) > 0 {
			if err := writeFileAtomic(file, out); err != nil {
				return err
			}
			slog.Info("Rewrote links", logfields.File(file), logfields.Count(len(changes)))
		}
	}
	if !c.Write && total > 0 {
		fmt.Fprintf(g.Out, "%d link(s) would change; rerun with --write to apply\n", total)
	}
	return nil
}

// sitePath maps a file below root to the site path it is served under.
func sitePath(root, file string) string {
	rel, err := filepath.Rel(root, file)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = file
	}
	return "/" + strings.TrimPrefix(filepath.ToSlash(rel), "/")
}

func writeFileAtomic(path string, data []byte) error {
	fail := func(msg string, err error) error {
		return derrors.FileSystemError(msg).WithCause(err).WithContext("file", path).Build()
	}

	info, err := os.Stat(path)
	if err != nil {
		return fail("failed to stat file", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fail("failed to create temporary file", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fail("failed to write file", err)
	}
	if err := tmp.Close(); err != nil {
		return fail("failed to write file", err)
	}
	if err := os.Chmod(tmp.Name(), info.Mode()); err != nil {
		return fail("failed to set file mode", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fail("failed to replace file", err)
	}
	return nil
}

// InjectCmd implements the 'inject' command.
type InjectCmd struct {
	File   string `arg:"" type:"existingfile" help:"HTML page"`
	Path   string `required:"" help:"Site path the page is served under"`
	Output string `short:"o" help:"Output file; '-' for stdout, empty to rewrite in place"`
}

func (c *InjectCmd) Run(g *Global, root *CLI) error {
	s, err := root.LoadSite()
	if err != nil {
		return err
	}
	in, err := os.ReadFile(filepath.Clean(c.File))
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to read HTML file").
			WithContext("file", c.File).
			Build()
	}

	canonical, _ := s.Canonicalizer().Canonicalize(c.Path)
	var buf bytes.Buffer
	if err := seo.InjectHead(bytes.NewReader(in), &buf, canonical, s.Tagger().HeadTags(c.Path)); err != nil {
		return err
	}

	switch c.Output {
	case "-":
		_, err = io.Copy(g.Out, &buf)
		return err
	case "":
		return writeFileAtomic(c.File, buf.Bytes())
	default:
		if err := os.WriteFile(c.Output, buf.Bytes(), 0o644); err != nil {
			return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to write HTML file").
				WithContext("file", c.Output).
				Build()
		}
		return nil
	}
}

// SearchFiltersCmd implements the 'search-filters' command.
type SearchFiltersCmd struct {
	File    string `arg:"" type:"existingfile" help:"Rendered HTML page carrying docsearch meta tags"`
	Request string `help:"Search request JSON file to add the filters to"`
}

func (c *SearchFiltersCmd) Run(g *Global, _ *CLI) error {
	f, err := os.Open(filepath.Clean(c.File))
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to open HTML file").
			WithContext("file", c.File).
			Build()
	}
	defer func() { _ = f.Close() }()

	filters, err := search.ReadFilters(f)
	if err != nil {
		return err
	}
	if c.Request == "" {
		return writeJSON(g.Out, filters.Optional())
	}

	body, err := os.ReadFile(filepath.Clean(c.Request))
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to read search request").
			WithContext("file", c.Request).
			Build()
	}
	out, applied := search.ApplyOptionalFilters(body, filters)
	if !applied {
		slog.Warn("Search request left unchanged", logfields.File(c.Request))
	}
	_, err = g.Out.Write(out)
	return err
}
