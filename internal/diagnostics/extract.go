package diagnostics

import "github.com/mvp-joe/code-skeleton/internal/grammar"

// DefaultContextLines is the number of lines shown above and below an error.
const DefaultContextLines = 2

// Options controls diagnostic collection.
type Options struct {
	// ContextLines is the window size for ContextAbove and ContextBelow.
	ContextLines int

	// MaxQueue caps the breadth-first work list and the number of collected
	// diagnostics. Zero means unbounded. Past the cap, nodes are skipped
	// silently.
	MaxQueue int
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{ContextLines: DefaultContextLines}
}

// Extract walks the tree breadth-first and reports ERROR and MISSING nodes,
// one diagnostic per line. A nil root yields nil.
func Extract(root grammar.Node, source []byte, opts Options) []Diagnostic {
	if root == nil {
		return nil
	}

	var diags []Diagnostic
	full := func() bool { return opts.MaxQueue > 0 && len(diags) >= opts.MaxQueue }

	queue := []grammar.Node{root}
	for head := 0; head < len(queue); head++ {
		node := queue[head]
		queue[head] = nil

		line := node.StartPoint().Row + 1
		if node.IsError() && !full() {
			diags = append(diags, Diagnostic{Line: line, Message: MessageSyntaxError})
		}
		if node.IsMissing() && !full() {
			diags = append(diags, Diagnostic{Line: line, Message: MessageMissing})
		}

		for i := 0; i < node.ChildCount(); i++ {
			if opts.MaxQueue > 0 && len(queue) >= opts.MaxQueue {
				break
			}
			if child := node.Child(i); child != nil {
				queue = append(queue, child)
			}
		}
	}

	diags = Dedupe(diags)
	if len(diags) == 0 {
		return nil
	}

	idx := NewLineIndex(source)
	for i := range diags {
		d := &diags[i]
		if !idx.Contains(d.Line) {
			continue
		}
		d.ErrorLine = idx.Line(d.Line)
		d.ContextAbove = idx.Above(d.Line, opts.ContextLines)
		d.ContextBelow = idx.Below(d.Line, opts.ContextLines)
	}
	return diags
}
