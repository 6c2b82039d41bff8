package skeleton

import (
	"errors"
	"fmt"

	"github.com/mvp-joe/code-skeleton/internal/diagnostics"
	"github.com/mvp-joe/code-skeleton/internal/grammar"
	"github.com/mvp-joe/code-skeleton/internal/signature"
)

// ErrInvalidRange is returned for a line range that starts before line 1 or
// ends before it starts.
var ErrInvalidRange = errors.New("invalid line range")

// LineRange is an inclusive, 1-indexed line range.
type LineRange struct {
	Start int
	End   int
}

// Validate checks the range bounds.
func (r LineRange) Validate() error {
	if r.Start < 1 || r.End < r.Start {
		return fmt.Errorf("%w: %d-%d", ErrInvalidRange, r.Start, r.End)
	}
	return nil
}

func (r LineRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// Result is everything extracted from one file.
type Result struct {
	Path        string
	Language    grammar.Language
	Forest      signature.Forest
	Diagnostics []diagnostics.Diagnostic
}

// FilterResult narrows a result to the entities and diagnostics touching rng.
// The returned result shares nothing with r.
func FilterResult(r *Result, rng LineRange) *Result {
	return &Result{
		Path:        r.Path,
		Language:    r.Language,
		Forest:      r.Forest.FilterRange(rng.Start, rng.End),
		Diagnostics: diagnostics.FilterRange(r.Diagnostics, rng.Start, rng.End),
	}
}
