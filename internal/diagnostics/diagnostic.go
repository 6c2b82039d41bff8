// Package diagnostics collects syntax errors and missing constructs reported
// by the grammar engine, with the surrounding source lines for context.
//
// Diagnostics are data: a file with syntax errors still yields signatures for
// the declarations the parser could recover.
package diagnostics

const (
	// MessageSyntaxError is reported for ERROR nodes.
	MessageSyntaxError = "Syntax error detected"

	// MessageMissing is reported for nodes the parser inserted to recover.
	MessageMissing = "Missing token or construct"
)

// Diagnostic is a located syntax problem. Line is 1-indexed. The text fields
// are empty when Line falls outside the source.
type Diagnostic struct {
	Line         int    `json:"line"`
	Message      string `json:"message"`
	ErrorLine    string `json:"error_line"`
	ContextAbove string `json:"context_above"`
	ContextBelow string `json:"context_below"`
}

// TextLen is the combined length of the free-text fields.
func (d Diagnostic) TextLen() int {
	return len(d.Message) + len(d.ErrorLine) + len(d.ContextAbove) + len(d.ContextBelow)
}

// Dedupe keeps the first diagnostic for each line, preserving order.
// The input slice is compacted in place.
func Dedupe(diags []Diagnostic) []Diagnostic {
	if len(diags) < 2 {
		return diags
	}
	seen := make(map[int]struct{}, len(diags))
	out := diags[:0]
	for _, d := range diags {
		if _, dup := seen[d.Line]; dup {
			continue
		}
		seen[d.Line] = struct{}{}
		out = append(out, d)
	}
	return out
}

// FilterRange returns copies of the diagnostics whose line lies in the
// inclusive range [start, end].
func FilterRange(diags []Diagnostic, start, end int) []Diagnostic {
	out := make([]Diagnostic, 0, len(diags))
	for _, d := range diags {
		if d.Line >= start && d.Line <= end {
			out = append(out, d)
		}
	}
	return out
}
