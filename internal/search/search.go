// Package search derives search-engine filters from page metadata and
// applies them to outgoing search requests.
package search

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	derrors "git.home.luguber.info/inful/docsroute/internal/foundation/errors"
	"git.home.luguber.info/inful/docsroute/internal/seo"
)

// Filters are the grouping values a page advertises to search.
type Filters struct {
	Product  string   `json:"product,omitempty"`
	Versions []string `json:"versions,omitempty"`
}

// ReadFilters reads the docsearch product and version meta tags of a
// rendered page. The version content is a comma-separated list.
func ReadFilters(r io.Reader) (Filters, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Filters{}, derrors.WrapError(err, derrors.CategoryMarkup, "failed to parse HTML").Build()
	}

	var f Filters
	if content, ok := doc.Find(`meta[name="` + seo.MetaDocsearchProduct + `"]`).First().Attr("content"); ok {
		f.Product = content
	}
	if content, ok := doc.Find(`meta[name="` + seo.MetaDocsearchVersion + `"]`).First().Attr("content"); ok {
		f.Versions = splitVersions(content)
	}
	return f, nil
}

// FromHeadTags builds Filters from derived head tags without rendering a page.
func FromHeadTags(tags []seo.HeadTag) Filters {
	var f Filters
	for _, t := range tags {
		switch t.Name {
		case seo.MetaDocsearchProduct:
			f.Product = t.Content
		case seo.MetaDocsearchVersion:
			f.Versions = splitVersions(t.Content)
		}
	}
	return f
}

func splitVersions(content string) []string {
	if content == "" {
		return nil
	}
	parts := strings.Split(content, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// Optional returns the optional filter expressions, product first.
func (f Filters) Optional() []string {
	var out []string
	if f.Product != "" {
		out = append(out, "product:"+f.Product)
	}
	for _, v := range f.Versions {
		out = append(out, "version:"+v)
	}
	return out
}

// ApplyOptionalFilters sets optionalFilters on every entry of the "requests"
// array of a search request body. A missing or null requests array is
// written back as empty. It reports false and returns body unchanged when
// there is nothing to apply or the body is not a JSON object.
func ApplyOptionalFilters(body []byte, f Filters) ([]byte, bool) {
	optional := f.Optional()
	if len(optional) == 0 || len(strings.TrimSpace(string(body))) == 0 {
		return body, false
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil || payload == nil {
		return body, false
	}

	var requests []json.RawMessage
	if raw, ok := payload["requests"]; ok && string(raw) != "null" {
		if err := json.Unmarshal(raw, &requests); err != nil {
			return body, false
		}
	}
	if requests == nil {
		requests = []json.RawMessage{}
	}

	filters, err := json.Marshal(optional)
	if err != nil {
		return body, false
	}
	for i, raw := range requests {
		var req map[string]json.RawMessage
		if err := json.Unmarshal(raw, &req); err != nil || req == nil {
			continue
		}
		req["optionalFilters"] = filters
		if requests[i], err = json.Marshal(req); err != nil {
			return body, false
		}
	}

	if payload["requests"], err = json.Marshal(requests); err != nil {
		return body, false
	}
	out, err := json.Marshal(payload)
	if err != nil {
		return body, false
	}
	return out, true
}
