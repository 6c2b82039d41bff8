package diagnostics

import (
	"testing"

	"github.com/mvp-joe/code-skeleton/internal/grammar"
	"github.com/mvp-joe/code-skeleton/internal/grammar/grammartest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for diagnostics:
// - Two ERROR nodes on the same line produce exactly one diagnostic
// - ERROR and MISSING are independent; breadth-first order decides which survives
// - Context windows clip at file start and end
// - A line outside the source yields empty text fields instead of a panic
// - A nil root yields no diagnostics
// - MaxQueue stops collection silently
// - An unterminated Python string yields exactly one diagnostic on its line
// - A Java file whose recovery spans the class still reports each line once
// - FilterRange keeps diagnostics inside the inclusive range

const source = "line1\nline2\nline3\nline4\nline5\nline6\nline7\nline8\nline9\n"

func TestExtract_DedupesSameLine(t *testing.T) {
	t.Parallel()

	// Both errors start on zero-based row 6, i.e. line 7.
	root := grammartest.New("program", 0, 8,
		grammartest.New("block", 5, 7, grammartest.ErrorAt(6)),
		grammartest.ErrorAt(6),
	)

	diags := Extract(root, []byte(source), DefaultOptions())

	require.Len(t, diags, 1)
	assert.Equal(t, 7, diags[0].Line)
	assert.Equal(t, MessageSyntaxError, diags[0].Message)
	assert.Equal(t, "line7", diags[0].ErrorLine)
	assert.Equal(t, "line5\nline6", diags[0].ContextAbove)
	assert.Equal(t, "line8\nline9\n", diags[0].ContextBelow)
}

func TestExtract_BreadthFirstOrder(t *testing.T) {
	t.Parallel()

	// The MISSING node is shallower, so it is seen first and wins line 3.
	root := grammartest.New("program", 0, 8,
		grammartest.New("block", 0, 8, grammartest.ErrorAt(2)),
		grammartest.MissingAt(";", 2),
		grammartest.ErrorAt(0),
	)

	diags := Extract(root, []byte(source), DefaultOptions())

	require.Len(t, diags, 2)
	assert.Equal(t, 3, diags[0].Line)
	assert.Equal(t, MessageMissing, diags[0].Message)
	assert.Equal(t, 1, diags[1].Line)
	assert.Equal(t, MessageSyntaxError, diags[1].Message)
}

func TestExtract_ErrorAndMissingOnOneNode(t *testing.T) {
	t.Parallel()

	node := grammartest.ErrorAt(3)
	node.Missing = true
	root := grammartest.New("program", 0, 8, node)

	diags := Extract(root, []byte(source), DefaultOptions())

	require.Len(t, diags, 1)
	assert.Equal(t, MessageSyntaxError, diags[0].Message)
}

func TestExtract_ContextClipping(t *testing.T) {
	t.Parallel()

	root := grammartest.New("program", 0, 8, grammartest.ErrorAt(0), grammartest.ErrorAt(8))
	diags := Extract(root, []byte(source), DefaultOptions())

	require.Len(t, diags, 2)

	first := diags[0]
	assert.Equal(t, 1, first.Line)
	assert.Equal(t, "line1", first.ErrorLine)
	assert.Empty(t, first.ContextAbove)
	assert.Equal(t, "line2\nline3\n", first.ContextBelow)

	last := diags[1]
	assert.Equal(t, 9, last.Line)
	assert.Equal(t, "line9", last.ErrorLine)
	assert.Equal(t, "line7\nline8", last.ContextAbove)
	assert.Empty(t, last.ContextBelow)
}

func TestExtract_OutOfRangeLine(t *testing.T) {
	t.Parallel()

	root := grammartest.New("program", 0, 40, grammartest.MissingAt("}", 40))

	var diags []Diagnostic
	require.NotPanics(t, func() {
		diags = Extract(root, []byte(source), DefaultOptions())
	})

	require.Len(t, diags, 1)
	assert.Equal(t, 41, diags[0].Line)
	assert.Equal(t, MessageMissing, diags[0].Message)
	assert.Empty(t, diags[0].ErrorLine)
	assert.Empty(t, diags[0].ContextAbove)
	assert.Empty(t, diags[0].ContextBelow)
}

func TestExtract_NilRootAndCleanTree(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Extract(nil, []byte(source), DefaultOptions()))
	assert.Nil(t, Extract(grammartest.New("program", 0, 8), []byte(source), DefaultOptions()))
}

func TestExtract_MaxQueue(t *testing.T) {
	t.Parallel()

	root := grammartest.New("program", 0, 8,
		grammartest.ErrorAt(0),
		grammartest.ErrorAt(1),
		grammartest.ErrorAt(2),
		grammartest.ErrorAt(3),
	)

	// Test: the queue holds the root plus two children
	diags := Extract(root, []byte(source), Options{ContextLines: 2, MaxQueue: 3})
	require.Len(t, diags, 2)
	assert.Equal(t, 1, diags[0].Line)
	assert.Equal(t, 2, diags[1].Line)

	// Test: unbounded by default
	assert.Len(t, Extract(root, []byte(source), DefaultOptions()), 4)
}

func TestExtract_ZeroContext(t *testing.T) {
	t.Parallel()

	root := grammartest.New("program", 0, 8, grammartest.ErrorAt(4))
	diags := Extract(root, []byte(source), Options{})

	require.Len(t, diags, 1)
	assert.Equal(t, "line5", diags[0].ErrorLine)
	assert.Empty(t, diags[0].ContextAbove)
	assert.Empty(t, diags[0].ContextBelow)
}

func TestExtract_UnterminatedString(t *testing.T) {
	t.Parallel()

	src, err := grammar.ReadSource("../../testdata/code/python/unterminated.py")
	require.NoError(t, err)
	tree, err := grammar.Parse(src, grammar.Python)
	require.NoError(t, err)
	defer tree.Close()

	diags := Extract(tree.Root(), src, DefaultOptions())

	// Test: exactly one diagnostic, on the line holding the unterminated string
	require.Len(t, diags, 1)
	assert.Equal(t, 4, diags[0].Line)
	assert.Equal(t, MessageSyntaxError, diags[0].Message)
	assert.Equal(t, `s = "unterminated`, diags[0].ErrorLine)
	assert.Equal(t, "    return 1\n", diags[0].ContextAbove)
}

func TestExtract_BrokenJavaReportsEachLineOnce(t *testing.T) {
	t.Parallel()

	src, err := grammar.ReadSource("../../testdata/code/java/Broken.java")
	require.NoError(t, err)
	tree, err := grammar.Parse(src, grammar.Java)
	require.NoError(t, err)
	defer tree.Close()

	diags := Extract(tree.Root(), src, DefaultOptions())
	require.NotEmpty(t, diags)

	lines := make(map[int]int)
	for _, d := range diags {
		lines[d.Line]++
	}
	for line, count := range lines {
		assert.Equal(t, 1, count, "line %d reported more than once", line)
	}
}

func TestDedupe(t *testing.T) {
	t.Parallel()

	in := []Diagnostic{
		{Line: 3, Message: "a"},
		{Line: 1, Message: "b"},
		{Line: 3, Message: "c"},
		{Line: 1, Message: "d"},
		{Line: 2, Message: "e"},
	}
	out := Dedupe(in)

	require.Len(t, out, 3)
	assert.Equal(t, []string{"a", "b", "e"}, []string{out[0].Message, out[1].Message, out[2].Message})
	assert.Nil(t, Dedupe(nil))
}

func TestFilterRange(t *testing.T) {
	t.Parallel()

	diags := []Diagnostic{{Line: 2}, {Line: 5}, {Line: 9}}

	got := FilterRange(diags, 2, 5)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].Line)
	assert.Equal(t, 5, got[1].Line)

	got[0].Message = "changed"
	assert.Empty(t, diags[0].Message)

	assert.Equal(t, diags, FilterRange(diags, 1, 9))
	assert.Empty(t, FilterRange(diags, 10, 20))
}
