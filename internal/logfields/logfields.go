package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath        = "path"
	KeyGroup       = "group"
	KeyVersion     = "version"
	KeySection     = "section"
	KeySource      = "source"
	KeyDestination = "destination"
	KeyRule        = "rule"
	KeyCanonical   = "canonical"
	KeyCategory    = "category"
	KeyFile        = "file"
	KeyCount       = "count"
	KeyMethod      = "method"
	KeyStatus      = "status"
	KeyUserAgent   = "user_agent"
	KeyRemoteAddr  = "remote_addr"
	KeyRequestID   = "request_id"
	KeyDurationMS  = "duration_ms"
	KeyError       = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Group(id string) slog.Attr       { return slog.String(KeyGroup, id) }
func Version(v string) slog.Attr      { return slog.String(KeyVersion, v) }
func Section(s string) slog.Attr      { return slog.String(KeySection, s) }
func Source(s string) slog.Attr       { return slog.String(KeySource, s) }
func Destination(d string) slog.Attr  { return slog.String(KeyDestination, d) }
func Rule(r string) slog.Attr         { return slog.String(KeyRule, r) }
func Canonical(c string) slog.Attr    { return slog.String(KeyCanonical, c) }
func Category(c string) slog.Attr     { return slog.String(KeyCategory, c) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Method(m string) slog.Attr       { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr       { return slog.Int(KeyStatus, code) }
func UserAgent(ua string) slog.Attr   { return slog.String(KeyUserAgent, ua) }
func RemoteAddr(a string) slog.Attr   { return slog.String(KeyRemoteAddr, a) }
func RequestID(id string) slog.Attr   { return slog.String(KeyRequestID, id) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
