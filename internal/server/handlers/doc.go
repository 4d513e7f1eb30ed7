// Package handlers contains HTTP handlers for the docsroute service.
//
// This package provides handlers for:
//   - Path redirects driven by the current redirect rule set
//   - Route inspection, catalog listing and search request filtering (API)
//   - Health endpoints (monitoring)
//   - Shared response helper functions
//
// Handlers read the active routing state through a SiteSource on every
// request, so a reload takes effect without restarting the server. Errors are
// reported through the foundation/errors HTTP adapter.
package handlers
