// Package pathinfo extracts the documentation section and version from a site path.
package pathinfo

import (
	"regexp"
	"strings"
)

var versionToken = regexp.MustCompile(`^(v\d+(\.\d+)*|\d+\.\d+)$`)

// Parsed is the {version, section} view of a path.
type Parsed struct {
	Version    string `json:"version,omitempty"`
	HasVersion bool   `json:"-"`
	Section    string `json:"section"`
}

// IsVersionToken reports whether s looks like "v26", "v25.0.1" or "21.2".
func IsVersionToken(s string) bool {
	return versionToken.MatchString(s)
}

// Segments splits a path on "/". A rooted path yields an empty first segment.
func Segments(path string) []string {
	return strings.Split(path, "/")
}

// Parse derives the section and version of a path.
//
// The first segment after index 1 that is a version token becomes the version
// and every segment before it (excluding the root) forms the section:
//
//	/clients/dotnet/v1.0/auth -> {v1.0, clients/dotnet}
//
// Without a version token the section is only the first segment:
//
//	/cloud/introduction.html -> {"", cloud}
//
// Nested unversioned sections collapse to their root.
func Parse(path string) Parsed {
	segments := Segments(path)
	for i := 2; i < len(segments); i++ {
		if IsVersionToken(segments[i]) {
			return Parsed{
				Version:    segments[i],
				HasVersion: true,
				Section:    strings.Join(segments[1:i], "/"),
			}
		}
	}
	if len(segments) < 2 {
		return Parsed{}
	}
	return Parsed{Section: segments[1]}
}
