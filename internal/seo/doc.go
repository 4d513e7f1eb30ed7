// Package seo derives search-engine metadata for documentation pages: the
// canonical URL, the indexing category and version, and the head tags that
// carry them into rendered HTML.
package seo
