package metrics

import (
	"testing"
	"time"
)

var (
	_ Recorder = NoopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)
)

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.IncRedirect(RedirectMatched, "fixed")
	r.IncCanonical(CanonicalLatest)
	r.IncReload(ResultSuccess)
	r.ObserveReloadDuration(time.Second)
	r.SetCatalogSize(1, 2)
	r.ObserveHTTPRequest("api", 200, time.Second)
}
