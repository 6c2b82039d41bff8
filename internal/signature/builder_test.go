package signature

import (
	"strings"
	"testing"

	"github.com/mvp-joe/code-skeleton/internal/grammar"
	"github.com/mvp-joe/code-skeleton/internal/grammar/grammartest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for signature builders:
// - modifiersText puts a newline after annotations and spaces between keywords
// - A declaration with empty fields falls back to its raw source text
// - A declaration without a name produces no node, but its children are still found
// - Unmatched nodes pass their parent through to nested declarations

// leaf returns a fake node covering the first occurrence of text in source.
func leaf(kind, source, text string) *grammartest.Node {
	start := strings.Index(source, text)
	if start < 0 {
		panic("leaf text not in source: " + text)
	}
	return grammartest.New(kind, 0, 0).WithBytes(start, start+len(text))
}

func TestModifiersText(t *testing.T) {
	t.Parallel()

	src := "@Inject @Named public static final"
	mods := grammartest.New("modifiers", 0, 0,
		leaf("marker_annotation", src, "@Inject"),
		leaf("marker_annotation", src, "@Named"),
		leaf("public", src, "public"),
		leaf("static", src, "static"),
		leaf("final", src, "final"),
	)
	decl := grammartest.New("method_declaration", 0, 0, mods)

	assert.Equal(t, "@Inject\n@Named\npublic static final", modifiersText(decl, []byte(src)))
	assert.Equal(t, "", modifiersText(grammartest.New("method_declaration", 0, 0), []byte(src)))
}

func TestOrRaw(t *testing.T) {
	t.Parallel()

	src := []byte("class {}")
	decl := grammartest.New("class_declaration", 0, 0).WithBytes(0, len(src))

	assert.Equal(t, "class A", orRaw("class A", decl, src))
	assert.Equal(t, "class {}", orRaw("  ", decl, src))
	assert.Equal(t, "class {}", orRaw("", decl, src))
}

func TestExtract_FakeTreeNesting(t *testing.T) {
	t.Parallel()

	src := "class Outer run helper"
	// program
	//   class_declaration(name=Outer) rows 0-9
	//     class_body
	//       method_declaration(name=run) rows 2-3
	//   block
	//     method_declaration(name=helper) rows 5-6
	//   class_declaration without name rows 7-8
	//     method_declaration(name=run) row 8
	outer := grammartest.New("class_declaration", 0, 9).
		WithField("name", leaf("identifier", src, "Outer"))
	outer.Children = append(outer.Children, grammartest.New("class_body", 1, 9,
		grammartest.New("method_declaration", 2, 3).WithField("name", leaf("identifier", src, "run")),
	))
	block := grammartest.New("block", 4, 6,
		grammartest.New("method_declaration", 5, 6).WithField("name", leaf("identifier", src, "helper")),
	)
	anonymous := grammartest.New("class_declaration", 7, 8,
		grammartest.New("method_declaration", 8, 8).WithField("name", leaf("identifier", src, "run")),
	)
	root := grammartest.New("program", 0, 9, outer, block, anonymous)

	forest, err := Extract(root, []byte(src), grammar.Java)
	require.NoError(t, err)

	require.Len(t, forest, 3)
	assert.Equal(t, []string{"Outer", "helper", "run"}, names(forest))
	require.Len(t, forest[0].Children, 1)
	assert.Equal(t, "run", forest[0].Children[0].Name)
	assert.Equal(t, 3, forest[0].Children[0].Span.StartLine)

	// Fields are missing from the fake, so signatures come from name plus parameters.
	assert.Equal(t, "class Outer", forest[0].Signature)
	assert.Equal(t, "run", forest[0].Children[0].Signature)
}
