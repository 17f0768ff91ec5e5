package diagnostics

type Severity string

const (
	Info Severity = "info"
	Warn Severity = "warning"
	Err  Severity = "error"
)

type Diagnostic struct {
	Severity       Severity       `json:"severity"`
	Code           string         `json:"code"`
	Summary        string         `json:"summary"`
	Detail         string         `json:"detail,omitempty"`
	LikelyCauses   []string       `json:"likely_causes,omitempty"`
	SuggestedFixes []string       `json:"suggested_fixes,omitempty"`
	Evidence       map[string]any `json:"evidence,omitempty"`
}

// TickFailed describes a frame that was abandoned before drawing.
func TickFailed(frame uint64, err error) Diagnostic {
	return Diagnostic{
		Severity: Err,
		Code:     "TICK.FAILED",
		Summary:  "Frame skipped",
		Detail:   err.Error(),
		LikelyCauses: []string{
			"a placement collapsed an axis (zero scale)",
			"the sink rejected the frame",
		},
		Evidence: map[string]any{"last_frame": frame},
	}
}

// SinkFallback reports that the configured sink could not be used.
func SinkFallback(requested, used string) Diagnostic {
	return Diagnostic{
		Severity: Warn,
		Code:     "SINK.FALLBACK",
		Summary:  "Unknown sink; using " + used,
		Evidence: map[string]any{"requested": requested, "used": used},
	}
}
