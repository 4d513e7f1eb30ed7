// Package errors provides the classified error primitives used across docsroute.
//
// Routing code distinguishes between expected "no result" outcomes (a path
// without a redirect, a page excluded from indexing) and real failures. Only
// the latter are represented as errors, and those carry a category that
// decides how the CLI and the HTTP service present them:
//   - ErrorCategory: broad classification (config, not_found, routing, ...)
//   - ErrorSeverity: impact level (fatal, error, warning, info)
//   - ClassifiedError: structured error with category, severity and context
//   - ErrorBuilder: fluent construction API
//   - CLI and HTTP adapters for exit codes and status codes
//
// Example usage:
//
//	err := errors.NotFoundError("version group not found").
//		WithContext("group", id).
//		Build()
package errors
