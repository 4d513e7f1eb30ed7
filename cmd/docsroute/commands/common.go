// Package commands implements the docsroute command line.
package commands

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docsroute/internal/config"
	derrors "git.home.luguber.info/inful/docsroute/internal/foundation/errors"
	"git.home.luguber.info/inful/docsroute/internal/logfields"
	"git.home.luguber.info/inful/docsroute/internal/site"
)

// DefaultConfigFile is used when --config is not given.
const DefaultConfigFile = "docsroute.yaml"

// Global is shared state passed to subcommands.
type Global struct {
	Logger *slog.Logger
	Out    io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"docsroute.yaml" env:"DOCSROUTE_CONFIG"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Resolve       ResolveCmd       `cmd:"" help:"Resolve redirects for paths"`
	Canonical     CanonicalCmd     `cmd:"" help:"Print canonical URLs for paths"`
	Tags          TagsCmd          `cmd:"" help:"Print indexing meta tags for a path"`
	Inspect       InspectCmd       `cmd:"" help:"Print every routing derivation for a path as JSON"`
	Sidebars      SidebarsCmd      `cmd:"" help:"Print the sidebar mapping of every version"`
	Navbar        NavbarCmd        `cmd:"" help:"Print version selector links of a documentation group"`
	RewriteLinks  RewriteLinksCmd  `cmd:"" name:"rewrite-links" help:"Rewrite link aliases and moved destinations in markdown files"`
	Inject        InjectCmd        `cmd:"" help:"Write canonical link and meta tags into an HTML page"`
	SearchFilters SearchFiltersCmd `cmd:"" name:"search-filters" help:"Derive search filters from an HTML page"`
	Serve         ServeCmd         `cmd:"" help:"Serve redirects and the routing API over HTTP"`
	Init          InitCmd          `cmd:"" help:"Initialize a new configuration file"`
	Validate      ValidateCmd      `cmd:"" help:"Validate the configuration and version descriptors"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(g *Global) error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	g.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(g.Logger)
	if g.Out == nil {
		g.Out = os.Stdout
	}
	return nil
}

// LoadConfig reads the configuration named by --config. A missing default
// file falls back to the built-in configuration.
func (c *CLI) LoadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err == nil {
		return cfg, nil
	}
	if c.Config == DefaultConfigFile {
		if _, statErr := os.Stat(c.Config); errors.Is(statErr, fs.ErrNotExist) {
			slog.Debug("No configuration file, using defaults", logfields.File(c.Config))
			return config.Default(), nil
		}
	}
	return nil, err
}

// LoadSite loads the configuration and builds the routing state.
func (c *CLI) LoadSite() (*site.Site, error) {
	cfg, err := c.LoadConfig()
	if err != nil {
		return nil, err
	}
	return site.Init(cfg)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return derrors.WrapError(err, derrors.CategoryInternal, "failed to encode output").Build()
	}
	return nil
}
