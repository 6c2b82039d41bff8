package skeleton

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mvp-joe/code-skeleton/internal/diagnostics"
	"github.com/mvp-joe/code-skeleton/internal/signature"
)

// DefaultMaxDocumentBytes caps a rendered document at 3 MiB.
const DefaultMaxDocumentBytes = 3 << 20

const (
	baseEstimate        = 1024
	perNodeEstimate     = 100
	perDiagnosticBase   = 256
	diagnosticExpansion = 6
	indentUnit          = "    "
)

// Document is a rendered skeleton.
type Document struct {
	Path  string
	Range *LineRange
	Text  string

	// Truncated is set when the output was cut at the size cap.
	Truncated bool
}

func (d *Document) String() string {
	return d.Text
}

// Render serializes a forest and its diagnostics. rng, when non-nil, is only
// reported in the header; filtering is the caller's job. maxBytes <= 0 selects
// DefaultMaxDocumentBytes.
func Render(forest signature.Forest, diags []diagnostics.Diagnostic, path string, rng *LineRange, maxBytes int) *Document {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxDocumentBytes
	}

	w := &boundedWriter{limit: maxBytes}
	w.buf.Grow(min(estimateSize(forest, diags, path), maxBytes))

	if rng != nil {
		w.line(0, `<code-skeleton path="%s" range="%d-%d">`, Escape(path), rng.Start, rng.End)
	} else {
		w.line(0, `<code-skeleton path="%s">`, Escape(path))
	}

	for _, n := range forest {
		writeNode(w, n, 1)
	}

	if len(diags) > 0 {
		w.line(1, "<code-errors>")
		for _, d := range diags {
			writeDiagnostic(w, d, 2)
		}
		w.line(1, "</code-errors>")
	}

	w.write("</code-skeleton>")

	return &Document{
		Path:      path,
		Range:     rng,
		Text:      w.buf.String(),
		Truncated: w.truncated,
	}
}

func writeNode(w *boundedWriter, n *signature.Node, depth int) {
	w.line(depth, "<code-entity start=%d end=%d>", n.Span.StartLine, n.Span.EndLine)
	w.line(depth+1, "<signature>%s</signature>", Escape(n.Signature))
	if len(n.Children) > 0 {
		w.line(depth+1, "<member>")
		for _, child := range n.Children {
			writeNode(w, child, depth+2)
		}
		w.line(depth+1, "</member>")
	}
	w.line(depth, "</code-entity>")
}

func writeDiagnostic(w *boundedWriter, d diagnostics.Diagnostic, depth int) {
	w.line(depth, "<error line=%d>", d.Line)
	w.line(depth+1, "<message>%s</message>", Escape(d.Message))
	w.line(depth+1, "<error-line>%s</error-line>", Escape(d.ErrorLine))
	w.line(depth+1, "<code-above-error-line>%s</code-above-error-line>", Escape(d.ContextAbove))
	w.line(depth+1, "<code-below-error-line>%s</code-below-error-line>", Escape(d.ContextBelow))
	w.line(depth, "</error>")
}

// estimateSize is an upper bound for the rendered size before capping.
func estimateSize(forest signature.Forest, diags []diagnostics.Diagnostic, path string) int {
	size := baseEstimate + len(path)*diagnosticExpansion
	forest.Walk(func(n *signature.Node, depth int) bool {
		size += len(n.Signature) + perNodeEstimate
		return true
	})
	for _, d := range diags {
		size += d.TextLen()*diagnosticExpansion + perDiagnosticBase
	}
	return size
}

// boundedWriter stops accepting output at limit bytes and remembers that it did.
type boundedWriter struct {
	buf       strings.Builder
	limit     int
	truncated bool
}

func (w *boundedWriter) write(s string) {
	if w.truncated {
		return
	}
	if room := w.limit - w.buf.Len(); len(s) > room {
		// Never cut inside a multibyte rune.
		for room > 0 && !utf8.RuneStart(s[room]) {
			room--
		}
		w.buf.WriteString(s[:room])
		w.truncated = true
		return
	}
	w.buf.WriteString(s)
}

// line writes one indented line.
func (w *boundedWriter) line(depth int, format string, args ...any) {
	w.write(strings.Repeat(indentUnit, depth) + fmt.Sprintf(format, args...) + "\n")
}
