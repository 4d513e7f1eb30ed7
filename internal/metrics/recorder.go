package metrics

import "time"

// ResultLabel enumerates outcome categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
)

// RedirectOutcome labels a redirect lookup.
type RedirectOutcome string

const (
	RedirectMatched RedirectOutcome = "matched"
	RedirectMissed  RedirectOutcome = "missed"
)

// CanonicalOutcome labels a canonical URL derivation.
type CanonicalOutcome string

const (
	CanonicalLatest   CanonicalOutcome = "latest"
	CanonicalSelf     CanonicalOutcome = "self"
	CanonicalExcluded CanonicalOutcome = "excluded"
)

// Recorder defines observability hooks for routing. Implementations must be
// safe for concurrent use.
type Recorder interface {
	// IncRedirect counts a redirect lookup; kind is the matching rule kind or "" on a miss.
	IncRedirect(outcome RedirectOutcome, kind string)
	IncCanonical(outcome CanonicalOutcome)
	IncReload(result ResultLabel)
	ObserveReloadDuration(d time.Duration)
	SetCatalogSize(groups, versions int)
	ObserveHTTPRequest(handler string, status int, d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncRedirect(RedirectOutcome, string)           {}
func (NoopRecorder) IncCanonical(CanonicalOutcome)                 {}
func (NoopRecorder) IncReload(ResultLabel)                         {}
func (NoopRecorder) ObserveReloadDuration(time.Duration)           {}
func (NoopRecorder) SetCatalogSize(int, int)                       {}
func (NoopRecorder) ObserveHTTPRequest(string, int, time.Duration) {}
