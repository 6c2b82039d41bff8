package diagnostics

// LineIndex answers line queries over a source buffer. Lines are 1-indexed and
// a trailing newline does not start a new line.
type LineIndex struct {
	source []byte
	starts []int
}

// NewLineIndex records the start offset of every line in one pass.
func NewLineIndex(source []byte) *LineIndex {
	idx := &LineIndex{source: source}
	if len(source) == 0 {
		return idx
	}
	idx.starts = append(idx.starts, 0)
	for i, b := range source {
		if b == '\n' && i+1 < len(source) {
			idx.starts = append(idx.starts, i+1)
		}
	}
	return idx
}

// Count returns the number of lines.
func (idx *LineIndex) Count() int {
	return len(idx.starts)
}

// Contains reports whether line n exists.
func (idx *LineIndex) Contains(n int) bool {
	return n >= 1 && n <= len(idx.starts)
}

// Line returns the text of line n without its newline.
func (idx *LineIndex) Line(n int) string {
	if !idx.Contains(n) {
		return ""
	}
	return string(idx.source[idx.starts[n-1]:idx.lineEnd(n)])
}

// Above returns up to k lines before line n as one block, without the newline
// that ends the last of them.
func (idx *LineIndex) Above(n, k int) string {
	if !idx.Contains(n) || k <= 0 {
		return ""
	}
	first := max(n-k, 1)
	if first == n {
		return ""
	}
	return string(idx.source[idx.starts[first-1] : idx.starts[n-1]-1])
}

// Below returns up to k lines after line n as one block. Every line keeps its
// newline; the final line of the file may not have one.
func (idx *LineIndex) Below(n, k int) string {
	if !idx.Contains(n) || k <= 0 {
		return ""
	}
	last := min(n+k, idx.Count())
	if last == n {
		return ""
	}
	end := len(idx.source)
	if last < idx.Count() {
		end = idx.starts[last]
	}
	return string(idx.source[idx.starts[n]:end])
}

// lineEnd is the offset of line n's newline, or the end of the source.
func (idx *LineIndex) lineEnd(n int) int {
	if n < idx.Count() {
		return idx.starts[n] - 1
	}
	end := len(idx.source)
	if end > 0 && idx.source[end-1] == '\n' {
		end--
	}
	return end
}
