package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"git.home.luguber.info/inful/docsroute/internal/foundation/errors"
	"git.home.luguber.info/inful/docsroute/internal/metrics"
	"git.home.luguber.info/inful/docsroute/internal/search"
	"git.home.luguber.info/inful/docsroute/internal/server/responses"
	"git.home.luguber.info/inful/docsroute/internal/site"
)

// maxSearchBody bounds search request bodies accepted by HandleSearch.
const maxSearchBody = 1 << 20

// FiltersAppliedHeader reports whether HandleSearch added optional filters.
const FiltersAppliedHeader = "X-Search-Filters-Applied"

// APIHandlers contains API-related HTTP handlers.
type APIHandlers struct {
	source       SiteSource
	recorder     metrics.Recorder
	errorAdapter *errors.HTTPErrorAdapter
}

// NewAPIHandlers creates a new API handlers instance.
func NewAPIHandlers(source SiteSource, recorder metrics.Recorder) *APIHandlers {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &APIHandlers{
		source:       source,
		recorder:     recorder,
		errorAdapter: errors.NewHTTPErrorAdapter(slog.Default()),
	}
}

// HandleRoute returns every derivation for the path query parameter.
func (h *APIHandlers) HandleRoute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.errorAdapter.WriteErrorResponse(w, r, methodError(r, http.MethodGet))
		return
	}
	path := r.URL.Query().Get("path")
	if path == "" {
		err := errors.ValidationError("missing path query parameter").Build()
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	s := h.source.Current()
	route := s.Inspect(path)
	h.recorder.IncCanonical(canonicalOutcome(s, route))

	if err := writeJSONPretty(w, r, http.StatusOK, route); err != nil {
		internalErr := errors.WrapError(err, errors.CategoryInternal, "failed to write route response").
			Build()
		h.errorAdapter.WriteErrorResponse(w, r, internalErr)
	}
}

func canonicalOutcome(s *site.Site, route site.Route) metrics.CanonicalOutcome {
	switch {
	case !route.Indexed:
		return metrics.CanonicalExcluded
	case route.Canonical == s.Canonicalizer().Hostname()+route.Path:
		return metrics.CanonicalSelf
	default:
		return metrics.CanonicalLatest
	}
}

// HandleCatalog lists the loaded documentation groups.
func (h *APIHandlers) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.errorAdapter.WriteErrorResponse(w, r, methodError(r, http.MethodGet))
		return
	}

	s := h.source.Current()
	resp := &responses.CatalogResponse{
		Groups:   s.Catalog().Groups(),
		Sidebars: s.Catalog().Sidebars(),
		LoadedAt: s.LoadedAt().UTC(),
	}
	if err := writeJSONPretty(w, r, http.StatusOK, resp); err != nil {
		internalErr := errors.WrapError(err, errors.CategoryInternal, "failed to write catalog response").
			Build()
		h.errorAdapter.WriteErrorResponse(w, r, internalErr)
	}
}

// HandleSearch adds the product and version of the page query parameter as
// optional filters to a search request body. Bodies that are not search
// requests are echoed unchanged.
func (h *APIHandlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.errorAdapter.WriteErrorResponse(w, r, methodError(r, http.MethodPost))
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxSearchBody+1))
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, errors.WrapError(err, errors.CategoryValidation, "failed to read request body").Build())
		return
	}
	if len(body) > maxSearchBody {
		err := errors.ValidationError("request body too large").
			WithContext("limit", maxSearchBody).
			Build()
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	filters := search.FromHeadTags(h.source.Current().Tagger().HeadTags(r.URL.Query().Get("page")))
	out, applied := search.ApplyOptionalFilters(body, filters)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set(FiltersAppliedHeader, strconv.FormatBool(applied))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}
