package versioning

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/docsroute/internal/foundation/errors"
	"git.home.luguber.info/inful/docsroute/internal/logfields"
)

// Load reads version descriptor files and merges them into a catalog.
//
// Each source holds a list of groups in JSON or YAML. Sources that do not
// exist are logged and skipped so partial configurations keep working; a
// source that exists but cannot be decoded is a configuration error.
func Load(sources []string) (*Catalog, error) {
	var groups []Group
	for _, src := range sources {
		list, err := loadSource(src)
		if errors.Is(err, fs.ErrNotExist) {
			slog.Info("Version descriptor not found, ignoring", logfields.Source(src))
			continue
		}
		if err != nil {
			return nil, err
		}
		slog.Info("Importing versions", logfields.Source(src), logfields.Count(len(list)))
		groups = append(groups, list...)
	}
	return New(groups...), nil
}

func loadSource(src string) ([]Group, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, derrors.WrapError(err, derrors.CategoryConfig, "failed to read version descriptor").
			WithContext("source", src).
			Build()
	}

	// yaml.v3 accepts JSON documents as well, so one decoder covers both formats.
	var list []Group
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryConfig, "failed to decode version descriptor").
			WithContext("source", src).
			Build()
	}
	for i, g := range list {
		if g.ID == "" {
			return nil, derrors.ConfigError("version group without id").
				WithContext("source", src).
				WithContext("index", i).
				Build()
		}
	}
	return list, nil
}
