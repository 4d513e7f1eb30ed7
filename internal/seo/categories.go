package seo

import (
	"maps"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultCategories maps known sections to their search category label.
func DefaultCategories() map[string]string {
	return map[string]string{
		"clients/dotnet":             ".NET Client",
		"clients/golang":             "Golang Client",
		"clients/java":               "Java Client",
		"clients/node":               "Node.JS Client",
		"clients/python":             "Python Client",
		"clients/rust":               "Rust Client",
		"clients/dotnet/legacy":      "Legacy gRPC .NET Client",
		"clients/golang/legacy":      "Legacy gRPC Golang Client",
		"clients/java/legacy":        "Legacy gRPC Java Client",
		"clients/node/legacy":        "Legacy gRPC Node.JS Client",
		"clients/python/legacy":      "Legacy gRPC Python Client",
		"clients/rust/legacy":        "Legacy gRPC Rust Client",
		"clients/tcp/dotnet":         "Legacy TCP .NET Client",
		"cloud":                      "Cloud",
		"getting-started":            "Getting Started",
		"server/kubernetes-operator": "Kubernetes Operator",
		"server":                     "Server",
	}
}

// Categories resolves a section to its category label.
type Categories struct {
	labels map[string]string
}

// NewCategories builds a table from the defaults overlaid with extra.
func NewCategories(extra map[string]string) Categories {
	labels := DefaultCategories()
	maps.Copy(labels, extra)
	return Categories{labels: labels}
}

// Label returns the configured label for section, or the title-cased section.
func (c Categories) Label(section string) string {
	if label, ok := c.labels[section]; ok {
		return label
	}
	return TitleCase(section)
}

// Known reports whether section has an explicit label.
func (c Categories) Known(section string) bool {
	_, ok := c.labels[section]
	return ok
}

// TitleCase splits s on "-" and "/" and upper-cases the first letter of each
// word: "dev-center" becomes "Dev Center". Words that do not start with a
// letter are kept as they are: "2fa-setup" becomes "2fa Setup".
func TitleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '/' })
	caser := cases.Title(language.Und, cases.NoLower)
	for i, w := range words {
		if first, _ := utf8.DecodeRuneInString(w); !unicode.IsLetter(first) {
			continue
		}
		words[i] = caser.String(w)
	}
	return strings.Join(words, " ")
}
