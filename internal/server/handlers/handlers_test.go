package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsroute/internal/config"
	derrors "git.home.luguber.info/inful/docsroute/internal/foundation/errors"
	"git.home.luguber.info/inful/docsroute/internal/metrics"
	"git.home.luguber.info/inful/docsroute/internal/server/responses"
	"git.home.luguber.info/inful/docsroute/internal/site"
	"git.home.luguber.info/inful/docsroute/internal/versioning"
)

type staticSource struct{ s *site.Site }

func (s staticSource) Current() *site.Site { return s.s }

func testSource(t *testing.T) staticSource {
	t.Helper()
	catalog := versioning.New(
		versioning.Group{ID: "server", Group: "KurrentDB", BasePath: "server", Versions: []versioning.Detail{
			{Version: "v26.1", Path: "v26.1", StartPage: "quick-start/", Preview: true},
			{Version: "v26.0", Path: "v26.0", StartPage: "quick-start/"},
			{Version: "v25.1", Path: "v25.1", StartPage: "quick-start/"},
			{Version: "v5", Path: "v5", StartPage: "introduction.html", Deprecated: true},
		}},
	)
	s, err := site.New(config.Default(), catalog)
	require.NoError(t, err)
	return staticSource{s: s}
}

type countingRecorder struct {
	metrics.NoopRecorder
	mu        sync.Mutex
	redirects map[metrics.RedirectOutcome]int
	kinds     []string
	canonical []metrics.CanonicalOutcome
}

func (c *countingRecorder) IncRedirect(outcome metrics.RedirectOutcome, kind string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.redirects == nil {
		c.redirects = map[metrics.RedirectOutcome]int{}
	}
	c.redirects[outcome]++
	if kind != "" {
		c.kinds = append(c.kinds, kind)
	}
}

func (c *countingRecorder) IncCanonical(outcome metrics.CanonicalOutcome) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.canonical = append(c.canonical, outcome)
}

func TestHandleRedirect(t *testing.T) {
	rec := &countingRecorder{}
	h := NewRedirectHandlers(testSource(t), http.StatusMovedPermanently, rec)

	tests := []struct {
		path     string
		location string
	}{
		{"/latest", "/server/v26.0/quick-start/"},
		{"/latest/configuration.html?lang=en", "/server/v26.0/configuration.html?lang=en"},
		{"/server/v25.1", "/server/v25.1/quick-start/"},
		{"/tutorials/intro.html", "/dev-center/tutorials/intro.html"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.HandleRedirect(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.Equal(t, http.StatusMovedPermanently, w.Code)
			require.Equal(t, tt.location, w.Header().Get("Location"))
		})
	}
	require.Equal(t, len(tests), rec.redirects[metrics.RedirectMatched])
	require.Contains(t, rec.kinds, "regexp")
}

func TestHandleRedirect_NotFound(t *testing.T) {
	rec := &countingRecorder{}
	h := NewRedirectHandlers(testSource(t), http.StatusFound, rec)

	w := httptest.NewRecorder()
	h.HandleRedirect(w, httptest.NewRequest(http.MethodGet, "/server/v26.0/configuration.html", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	var body derrors.HTTPErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, string(derrors.CategoryNotFound), body.Code)
	require.Equal(t, "/server/v26.0/configuration.html", body.Details["path"])
	require.Equal(t, 1, rec.redirects[metrics.RedirectMissed])
}

func TestHandleRedirect_RejectsPost(t *testing.T) {
	h := NewRedirectHandlers(testSource(t), http.StatusFound, nil)
	w := httptest.NewRecorder()
	h.HandleRedirect(w, httptest.NewRequest(http.MethodPost, "/latest", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleRoute(t *testing.T) {
	rec := &countingRecorder{}
	h := NewAPIHandlers(testSource(t), rec)

	w := httptest.NewRecorder()
	h.HandleRoute(w, httptest.NewRequest(http.MethodGet, "/api/route?path=/server/v25.1/configuration.html", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "application/json"))

	var route site.Route
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &route))
	require.Equal(t, "server", route.Section)
	require.Equal(t, "v25.1", route.Version)
	require.Equal(t, "https://docs.kurrent.io/server/latest/configuration.html", route.Canonical)
	require.True(t, route.Indexed)
	require.False(t, route.Tags.Latest)

	w = httptest.NewRecorder()
	h.HandleRoute(w, httptest.NewRequest(http.MethodGet, "/api/route?path=/server/v5/introduction.html", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.HandleRoute(w, httptest.NewRequest(http.MethodGet, "/api/route?path=/cloud/introduction.html", nil))
	require.Equal(t, http.StatusOK, w.Code)

	require.Equal(t, []metrics.CanonicalOutcome{
		metrics.CanonicalLatest,
		metrics.CanonicalExcluded,
		metrics.CanonicalSelf,
	}, rec.canonical)
}

func TestHandleRoute_MissingPath(t *testing.T) {
	h := NewAPIHandlers(testSource(t), nil)
	w := httptest.NewRecorder()
	h.HandleRoute(w, httptest.NewRequest(http.MethodGet, "/api/route", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleCatalog(t *testing.T) {
	h := NewAPIHandlers(testSource(t), nil)
	w := httptest.NewRecorder()
	h.HandleCatalog(w, httptest.NewRequest(http.MethodGet, "/api/catalog?pretty=1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "\n  \"groups\"")

	var resp responses.CatalogResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Groups, 1)
	require.Equal(t, "server", resp.Groups[0].ID)
}

func TestHandleSearch(t *testing.T) {
	h := NewAPIHandlers(testSource(t), nil)

	body := `{"requests":[{"indexName":"docs","query":"append"}]}`
	w := httptest.NewRecorder()
	h.HandleSearch(w, httptest.NewRequest(http.MethodPost, "/api/search?page=/server/v26.0/streams.html", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "true", w.Header().Get(FiltersAppliedHeader))

	var out struct {
		Requests []struct {
			Query           string   `json:"query"`
			OptionalFilters []string `json:"optionalFilters"`
		} `json:"requests"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out.Requests, 1)
	require.Equal(t, "append", out.Requests[0].Query)
	require.Equal(t, []string{"product:Server", "version:v26.0", "version:latest"}, out.Requests[0].OptionalFilters)
}

func TestHandleSearch_PassesThroughUnknownBodies(t *testing.T) {
	h := NewAPIHandlers(testSource(t), nil)

	w := httptest.NewRecorder()
	h.HandleSearch(w, httptest.NewRequest(http.MethodPost, "/api/search?page=/server/v26.0/", strings.NewReader("not json")))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "false", w.Header().Get(FiltersAppliedHeader))
	require.Equal(t, "not json", w.Body.String())

	w = httptest.NewRecorder()
	h.HandleSearch(w, httptest.NewRequest(http.MethodGet, "/api/search", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleHealthCheck(t *testing.T) {
	h := NewMonitoringHandlers(testSource(t), time.Now().Add(-time.Minute))
	w := httptest.NewRecorder()
	h.HandleHealthCheck(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var health responses.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	require.Equal(t, "healthy", health.Status)
	require.Equal(t, 1, health.Groups)
	require.Equal(t, 4, health.Versions)
	require.GreaterOrEqual(t, health.Uptime, 60.0)
}
