package metrics

import (
	"strconv"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "docsroute"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once            sync.Once
	redirects       *prom.CounterVec
	canonicals      *prom.CounterVec
	reloads         *prom.CounterVec
	reloadDuration  prom.Histogram
	catalogGroups   prom.Gauge
	catalogVersions prom.Gauge
	httpDuration    *prom.HistogramVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.redirects = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "redirect_lookups_total",
			Help:      "Redirect lookups by outcome and rule kind",
		}, []string{"outcome", "kind"})
		pr.canonicals = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "canonical_derivations_total",
			Help:      "Canonical URL derivations by outcome",
		}, []string{"outcome"})
		pr.reloads = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_reloads_total",
			Help:      "Catalog reloads by result",
		}, []string{"result"})
		pr.reloadDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "catalog_reload_duration_seconds",
			Help:      "Duration of catalog reloads",
			Buckets:   prom.DefBuckets,
		})
		pr.catalogGroups = prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_groups",
			Help:      "Version groups in the active catalog",
		})
		pr.catalogVersions = prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_versions",
			Help:      "Versions across all groups in the active catalog",
		})
		pr.httpDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by handler and status",
			Buckets:   prom.DefBuckets,
		}, []string{"handler", "status"})
		reg.MustRegister(pr.redirects, pr.canonicals, pr.reloads, pr.reloadDuration, pr.catalogGroups, pr.catalogVersions, pr.httpDuration)
	})
	return pr
}

func (p *PrometheusRecorder) IncRedirect(outcome RedirectOutcome, kind string) {
	if p == nil || p.redirects == nil {
		return
	}
	p.redirects.WithLabelValues(string(outcome), kind).Inc()
}

func (p *PrometheusRecorder) IncCanonical(outcome CanonicalOutcome) {
	if p == nil || p.canonicals == nil {
		return
	}
	p.canonicals.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncReload(result ResultLabel) {
	if p == nil || p.reloads == nil {
		return
	}
	p.reloads.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveReloadDuration(d time.Duration) {
	if p == nil || p.reloadDuration == nil {
		return
	}
	p.reloadDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) SetCatalogSize(groups, versions int) {
	if p == nil || p.catalogGroups == nil {
		return
	}
	p.catalogGroups.Set(float64(groups))
	p.catalogVersions.Set(float64(versions))
}

func (p *PrometheusRecorder) ObserveHTTPRequest(handler string, status int, d time.Duration) {
	if p == nil || p.httpDuration == nil {
		return
	}
	p.httpDuration.WithLabelValues(handler, strconv.Itoa(status)).Observe(d.Seconds())
}
