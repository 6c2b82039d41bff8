package skeleton

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/mvp-joe/code-skeleton/internal/diagnostics"
	"github.com/mvp-joe/code-skeleton/internal/signature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for rendering:
// - Escape handles all eight special characters and leaves plain text alone
// - Render nests members, indents by four spaces and escapes every text field
// - <member> appears only for nodes with children, <code-errors> only with diagnostics
// - The range attribute is written when a range is given
// - Output past the byte cap is cut and flagged
// - The cut never splits a multibyte character

func TestEscape(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "A&amp;B&lt;C", Escape("A&B<C"))
	assert.Equal(t, "&gt;&quot;&apos;&#10;&#13;&#9;", Escape(">\"'\n\r\t"))
	assert.Equal(t, "&amp;amp;", Escape("&amp;"))

	plain := "public static int add(int a, int b)"
	assert.Equal(t, plain, Escape(plain))
	assert.Equal(t, "", Escape(""))
}

func sampleResult() (signature.Forest, []diagnostics.Diagnostic) {
	run := &signature.Node{
		Kind:      signature.KindFunction,
		Name:      "run",
		Signature: "void run()",
		Span:      signature.Span{StartLine: 2, StartColumn: 5, EndLine: 3, EndColumn: 6},
	}
	outer := &signature.Node{
		Kind:      signature.KindClass,
		Name:      "Outer",
		Signature: "class Outer<T>",
		Span:      signature.Span{StartLine: 1, StartColumn: 1, EndLine: 5, EndColumn: 2},
		Children:  []*signature.Node{run},
	}
	diags := []diagnostics.Diagnostic{{
		Line:         4,
		Message:      diagnostics.MessageSyntaxError,
		ErrorLine:    `x = "a";`,
		ContextAbove: "a\nb",
	}}
	return signature.Forest{outer}, diags
}

func TestRender(t *testing.T) {
	t.Parallel()

	forest, diags := sampleResult()
	doc := Render(forest, diags, "src/Outer.java", nil, 0)

	want := strings.Join([]string{
		`<code-skeleton path="src/Outer.java">`,
		`    <code-entity start=1 end=5>`,
		`        <signature>class Outer&lt;T&gt;</signature>`,
		`        <member>`,
		`            <code-entity start=2 end=3>`,
		`                <signature>void run()</signature>`,
		`            </code-entity>`,
		`        </member>`,
		`    </code-entity>`,
		`    <code-errors>`,
		`        <error line=4>`,
		`            <message>Syntax error detected</message>`,
		`            <error-line>x = &quot;a&quot;;</error-line>`,
		`            <code-above-error-line>a&#10;b</code-above-error-line>`,
		`            <code-below-error-line></code-below-error-line>`,
		`        </error>`,
		`    </code-errors>`,
		`</code-skeleton>`,
	}, "\n")

	assert.Equal(t, want, doc.Text)
	assert.False(t, doc.Truncated)
	assert.Equal(t, "src/Outer.java", doc.Path)
	assert.Nil(t, doc.Range)
	assert.Equal(t, doc.Text, doc.String())
}

func TestRender_EmptyAndRanged(t *testing.T) {
	t.Parallel()

	doc := Render(signature.Forest{}, nil, `a "b".py`, &LineRange{Start: 3, End: 7}, 0)

	assert.Equal(t, "<code-skeleton path=\"a &quot;b&quot;.py\" range=\"3-7\">\n</code-skeleton>", doc.Text)
	assert.NotContains(t, doc.Text, "<code-errors>")
	require.NotNil(t, doc.Range)
	assert.Equal(t, 3, doc.Range.Start)
}

func TestRender_Truncates(t *testing.T) {
	t.Parallel()

	forest, diags := sampleResult()
	full := Render(forest, diags, "src/Outer.java", nil, 0)

	doc := Render(forest, diags, "src/Outer.java", nil, 50)
	assert.True(t, doc.Truncated)
	assert.Len(t, doc.Text, 50)
	assert.True(t, strings.HasPrefix(full.Text, doc.Text))

	// Test: a cap equal to the exact size is not a truncation
	exact := Render(forest, diags, "src/Outer.java", nil, len(full.Text))
	assert.False(t, exact.Truncated)
	assert.Equal(t, full.Text, exact.Text)
}

func TestRender_TruncatesOnRuneBoundary(t *testing.T) {
	t.Parallel()

	forest := signature.Forest{{
		Kind:      signature.KindFunction,
		Name:      "grüße",
		Signature: "def grüße(café, naïve): " + strings.Repeat("é", 40),
		Span:      signature.Span{StartLine: 1, StartColumn: 1, EndLine: 2, EndColumn: 10},
	}}
	full := Render(forest, nil, "src/grüße.py", nil, 0)
	require.True(t, utf8.ValidString(full.Text))

	// Test: every cap inside the document yields valid UTF-8 no longer than the cap
	for limit := 1; limit < len(full.Text); limit++ {
		doc := Render(forest, nil, "src/grüße.py", nil, limit)
		assert.True(t, doc.Truncated, "limit %d", limit)
		assert.True(t, utf8.ValidString(doc.Text), "limit %d", limit)
		assert.LessOrEqual(t, len(doc.Text), limit)
		assert.GreaterOrEqual(t, len(doc.Text), limit-utf8.UTFMax+1)
		assert.True(t, strings.HasPrefix(full.Text, doc.Text))
	}
}

func TestEstimateSize(t *testing.T) {
	t.Parallel()

	forest, diags := sampleResult()
	doc := Render(forest, diags, "src/Outer.java", nil, 0)

	assert.GreaterOrEqual(t, estimateSize(forest, diags, "src/Outer.java"), len(doc.Text))
}

func TestLineRange_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, LineRange{Start: 1, End: 1}.Validate())
	assert.NoError(t, LineRange{Start: 3, End: 9}.Validate())
	assert.ErrorIs(t, LineRange{Start: 0, End: 9}.Validate(), ErrInvalidRange)
	assert.ErrorIs(t, LineRange{Start: 5, End: 4}.Validate(), ErrInvalidRange)
	assert.Equal(t, "3-9", LineRange{Start: 3, End: 9}.String())
}
