// Package metrics records routing and reload metrics.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no call site needs a nil check:
//
//	type Handler struct {
//	    recorder metrics.Recorder
//	}
//
// The serve command swaps in a PrometheusRecorder and exposes it through
// HTTPHandler when metrics are enabled.
package metrics
