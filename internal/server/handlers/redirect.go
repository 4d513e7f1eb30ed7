package handlers

import (
	"log/slog"
	"net/http"

	"git.home.luguber.info/inful/docsroute/internal/foundation/errors"
	"git.home.luguber.info/inful/docsroute/internal/logfields"
	"git.home.luguber.info/inful/docsroute/internal/metrics"
	"git.home.luguber.info/inful/docsroute/internal/site"
)

// SiteSource yields the active Site. *site.Holder satisfies it.
type SiteSource interface {
	Current() *site.Site
}

// RedirectHandlers answers navigation requests from the redirect rule set.
type RedirectHandlers struct {
	source       SiteSource
	status       int
	recorder     metrics.Recorder
	errorAdapter *errors.HTTPErrorAdapter
}

// NewRedirectHandlers creates redirect handlers responding with status.
func NewRedirectHandlers(source SiteSource, status int, recorder metrics.Recorder) *RedirectHandlers {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &RedirectHandlers{
		source:       source,
		status:       status,
		recorder:     recorder,
		errorAdapter: errors.NewHTTPErrorAdapter(slog.Default()),
	}
}

// HandleRedirect redirects the request path when a rule matches and answers
// 404 otherwise. The query string is carried over to the destination.
func (h *RedirectHandlers) HandleRedirect(w http.ResponseWriter, r *http.Request) {
	if !allowed(r, http.MethodGet, http.MethodHead) {
		h.errorAdapter.WriteErrorResponse(w, r, methodError(r, http.MethodGet, http.MethodHead))
		return
	}

	res, ok := h.source.Current().Resolver().ResolveRule(r.URL.Path)
	if !ok {
		h.recorder.IncRedirect(metrics.RedirectMissed, "")
		err := errors.NotFoundError("no redirect for path").
			WithContext("path", r.URL.Path).
			Build()
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	h.recorder.IncRedirect(metrics.RedirectMatched, string(res.Rule.Kind))
	dest := res.Destination
	if r.URL.RawQuery != "" {
		dest += "?" + r.URL.RawQuery
	}
	slog.Debug("Redirect",
		logfields.Path(r.URL.Path),
		logfields.Destination(dest),
		logfields.Rule(res.Rule.Source))
	http.Redirect(w, r, dest, h.status)
}
