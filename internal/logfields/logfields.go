package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyStage      = "stage"
	KeyOutputKey  = "output_key"
	KeyInstanceID = "instance_id"
	KeyStepSource = "step_source"
	KeyStepID     = "step_id"
	KeyStepCount  = "step_count"
	KeyKeyCount   = "markdown_key_count"
	KeyReason     = "reason"
	KeyDecisionID = "decision_id"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
	KeyMethod     = "method"
	KeyPath       = "path"
	KeyStatus     = "status"
	KeyUserAgent  = "user_agent"
	KeyRemoteAddr = "remote_addr"
)

// Helpers returning slog.Attr so callers compose fields without repeating key strings.
func Stage(slug string) slog.Attr     { return slog.String(KeyStage, slug) }
func OutputKey(k string) slog.Attr    { return slog.String(KeyOutputKey, k) }
func InstanceID(id string) slog.Attr  { return slog.String(KeyInstanceID, id) }
func StepSource(s string) slog.Attr   { return slog.String(KeyStepSource, s) }
func StepID(id string) slog.Attr      { return slog.String(KeyStepID, id) }
func StepCount(n int) slog.Attr       { return slog.Int(KeyStepCount, n) }
func KeyCount(n int) slog.Attr        { return slog.Int(KeyKeyCount, n) }
func Reason(r string) slog.Attr       { return slog.String(KeyReason, r) }
func DecisionID(id string) slog.Attr  { return slog.String(KeyDecisionID, id) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Method(m string) slog.Attr       { return slog.String(KeyMethod, m) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Status(code int) slog.Attr       { return slog.Int(KeyStatus, code) }
func UserAgent(ua string) slog.Attr   { return slog.String(KeyUserAgent, ua) }
func RemoteAddr(a string) slog.Attr   { return slog.String(KeyRemoteAddr, a) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
