package signature

import (
	"testing"

	"github.com/mvp-joe/code-skeleton/internal/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Extract:
// - Java fixture: top-level classes, interfaces and records in declaration order
// - Java class signature keeps modifiers, annotation line break, generics, superclass, interfaces
// - Java methods: modifiers, type parameters, return type, name+params, throws list
// - A method named main is a MainFunction, everything else a Function
// - Nested enums and their methods are attached under the enclosing entity
// - Python fixture: classes, methods, decorated and async functions, nested functions
// - Functions inside unrecognized containers (if blocks) attach to the nearest entity or the root
// - Every node has a name, a non-empty signature and a valid span; siblings are in source order
// - Parent links point at the enclosing entity and are nil on roots
// - Unsupported language is an error; a nil root is an empty forest

const (
	javaFixture   = "../../testdata/code/java/Calculator.java"
	pythonFixture = "../../testdata/code/python/service.py"
)

func extractSource(t *testing.T, source []byte, lang grammar.Language) Forest {
	t.Helper()

	tree, err := grammar.Parse(source, lang)
	require.NoError(t, err)
	t.Cleanup(tree.Close)

	forest, err := Extract(tree.Root(), source, lang)
	require.NoError(t, err)
	return forest
}

func extractFile(t *testing.T, path string, lang grammar.Language) Forest {
	t.Helper()

	source, err := grammar.ReadSource(path)
	require.NoError(t, err)
	return extractSource(t, source, lang)
}

func names(nodes []*Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Name)
	}
	return out
}

func kinds(nodes []*Node) []Kind {
	out := make([]Kind, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Kind)
	}
	return out
}

func TestExtract_JavaTopLevel(t *testing.T) {
	t.Parallel()

	forest := extractFile(t, javaFixture, grammar.Java)

	require.Len(t, forest, 3)
	assert.Equal(t, []string{"Calculator", "Shape", "Point"}, names(forest))
	assert.Equal(t, []Kind{KindClass, KindInterface, KindClass}, kinds(forest))
}

func TestExtract_JavaClassSignature(t *testing.T) {
	t.Parallel()

	forest := extractFile(t, javaFixture, grammar.Java)
	calc := forest[0]

	assert.Equal(t,
		"@Deprecated\npublic class Calculator<T extends Number> extends Base implements Comparable<Calculator<T>>, Cloneable",
		calc.Signature)
	assert.Equal(t, 8, calc.Span.StartLine)
	assert.Equal(t, 1, calc.Span.StartColumn)
	assert.Equal(t, 38, calc.Span.EndLine)
	assert.Equal(t, 2, calc.Span.EndColumn)
}

func TestExtract_JavaMethods(t *testing.T) {
	t.Parallel()

	forest := extractFile(t, javaFixture, grammar.Java)
	calc := forest[0]

	require.Len(t, calc.Children, 5)
	assert.Equal(t, []string{"add", "compareTo", "map", "main", "Mode"}, names(calc.Children))
	assert.Equal(t,
		[]Kind{KindFunction, KindFunction, KindFunction, KindMainFunction, KindEnum},
		kinds(calc.Children))

	add := calc.Children[0]
	assert.Equal(t, "public static int add(int a, int b) throws Exception", add.Signature)
	assert.Equal(t, 13, add.Span.StartLine)
	assert.Equal(t, 15, add.Span.EndLine)

	compareTo := calc.Children[1]
	assert.Equal(t, "@Override\npublic int compareTo(Calculator<T> other)", compareTo.Signature)
	assert.Equal(t, 17, compareTo.Span.StartLine)

	mapper := calc.Children[2]
	assert.Equal(t,
		"public <R> List<R> map(List<T> items) throws IllegalStateException, java.io.IOException",
		mapper.Signature)

	main := calc.Children[3]
	assert.Equal(t, "public static void main(String[] args)", main.Signature)
}

func TestExtract_JavaNestedEnum(t *testing.T) {
	t.Parallel()

	forest := extractFile(t, javaFixture, grammar.Java)
	mode := forest[0].Children[4]

	assert.Equal(t, "enum Mode", mode.Signature)
	assert.Equal(t, 30, mode.Span.StartLine)
	assert.Equal(t, 37, mode.Span.EndLine)
	require.Len(t, mode.Children, 1)
	assert.Equal(t, "boolean isFast()", mode.Children[0].Signature)
	assert.Same(t, mode, mode.Children[0].Parent())
	assert.Same(t, forest[0], mode.Parent())
}

func TestExtract_JavaInterfaceAndRecord(t *testing.T) {
	t.Parallel()

	forest := extractFile(t, javaFixture, grammar.Java)

	shape := forest[1]
	assert.Equal(t, "interface Shape extends Comparable<Shape>", shape.Signature)
	require.Len(t, shape.Children, 1)
	assert.Equal(t, "double area()", shape.Children[0].Signature)
	assert.Equal(t, 41, shape.Children[0].Span.StartLine)
	assert.Equal(t, 41, shape.Children[0].Span.EndLine)

	point := forest[2]
	assert.Equal(t, "record Point(int x, int y) implements Shape", point.Signature)
	assert.Equal(t, []string{"area", "compareTo"}, names(point.Children))
}

func TestExtract_JavaClassWithMainAndMethod(t *testing.T) {
	t.Parallel()

	source := []byte(`public class App {
    public void run() {}

    public static void main(String[] args) {
        new App().run();
    }
}
`)
	forest := extractSource(t, source, grammar.Java)

	require.Len(t, forest, 1)
	app := forest[0]
	assert.Equal(t, KindClass, app.Kind)
	assert.Equal(t, "public class App", app.Signature)
	require.Len(t, app.Children, 2)
	assert.Equal(t, KindFunction, app.Children[0].Kind)
	assert.Equal(t, KindMainFunction, app.Children[1].Kind)
	assert.Equal(t, "run", app.Children[0].Name)
	assert.Equal(t, "main", app.Children[1].Name)
}

func TestExtract_JavaAnnotationWithoutOtherModifiers(t *testing.T) {
	t.Parallel()

	source := []byte("class A {\n    @Override\n    String name() { return null; }\n}\n")
	forest := extractSource(t, source, grammar.Java)

	require.Len(t, forest, 1)
	require.Len(t, forest[0].Children, 1)
	// The annotation keeps its line break and the field separator still follows.
	assert.Equal(t, "@Override\n String name()", forest[0].Children[0].Signature)
}

func TestExtract_PythonFixture(t *testing.T) {
	t.Parallel()

	forest := extractFile(t, pythonFixture, grammar.Python)

	require.Len(t, forest, 4)
	assert.Equal(t, []string{"User", "Admin", "greet", "helper"}, names(forest))
	assert.Equal(t, []Kind{KindClass, KindClass, KindFunction, KindFunction}, kinds(forest))

	user := forest[0]
	assert.Equal(t, "class User:", user.Signature)
	assert.Equal(t, 6, user.Span.StartLine)
	assert.Equal(t, 11, user.Span.EndLine)
	require.Len(t, user.Children, 2)
	assert.Equal(t, "def __init__(self, name: str):", user.Children[0].Signature)
	assert.Equal(t, `def greet(self, other: "User") -> str:`, user.Children[1].Signature)

	admin := forest[1]
	assert.Equal(t, "class Admin(User, metaclass=Meta):", admin.Signature)
	require.Len(t, admin.Children, 2)
	assert.Equal(t, "def create(name):", admin.Children[0].Signature)
	assert.Equal(t, 16, admin.Children[0].Span.StartLine)
	assert.Equal(t, "async def fetch(self) -> dict:", admin.Children[1].Signature)

	greet := forest[2]
	assert.Equal(t, "def greet(name: str) -> str:", greet.Signature)
	require.Len(t, greet.Children, 1)
	assert.Equal(t, "def inner():", greet.Children[0].Signature)

	helper := forest[3]
	assert.Equal(t, "def helper(x, *args, **kwargs):", helper.Signature)
	assert.Equal(t, 31, helper.Span.StartLine)
	assert.Nil(t, helper.Parent())
}

func TestExtract_PythonGreet(t *testing.T) {
	t.Parallel()

	forest := extractSource(t, []byte("def greet(name: str) -> str:\n    return name\n"), grammar.Python)

	require.Len(t, forest, 1)
	assert.Equal(t, "def greet(name: str) -> str:", forest[0].Signature)
	assert.Equal(t, KindFunction, forest[0].Kind)
	assert.Equal(t, Span{StartLine: 1, StartColumn: 1, EndLine: 2, EndColumn: 16}, forest[0].Span)
}

func TestExtract_SourceOrderAndSpans(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		path string
		lang grammar.Language
	}{
		{javaFixture, grammar.Java},
		{pythonFixture, grammar.Python},
	} {
		forest := extractFile(t, tc.path, tc.lang)

		checkSiblings := func(nodes []*Node) {
			for i := 1; i < len(nodes); i++ {
				assert.Less(t, nodes[i-1].Span.StartLine, nodes[i].Span.StartLine,
					"%s: %s must precede %s", tc.path, nodes[i-1].Name, nodes[i].Name)
			}
		}
		checkSiblings(forest)

		forest.Walk(func(n *Node, depth int) bool {
			assert.NotEmpty(t, n.Name)
			assert.NotEmpty(t, n.Signature)
			assert.NotEqual(t, KindUnknown, n.Kind)
			assert.True(t, n.Span.Valid(), "%s has invalid span %+v", n.Name, n.Span)
			assert.GreaterOrEqual(t, n.Span.EndLine, n.Span.StartLine)
			if depth == 0 {
				assert.Nil(t, n.Parent())
			} else {
				require.NotNil(t, n.Parent())
				assert.Contains(t, n.Parent().Children, n)
			}
			checkSiblings(n.Children)
			return true
		})
	}
}

func TestExtract_UnsupportedLanguage(t *testing.T) {
	t.Parallel()

	forest, err := Extract(nil, nil, grammar.Language("kotlin"))
	assert.ErrorIs(t, err, grammar.ErrUnsupportedLanguage)
	assert.Nil(t, forest)
	assert.False(t, Supports("kotlin"))
	assert.True(t, Supports(grammar.Java))
}

func TestExtract_NilRoot(t *testing.T) {
	t.Parallel()

	forest, err := Extract(nil, []byte("class A {}"), grammar.Java)
	require.NoError(t, err)
	assert.NotNil(t, forest)
	assert.Empty(t, forest)
}

func TestExtract_NoDeclarations(t *testing.T) {
	t.Parallel()

	assert.Empty(t, extractSource(t, []byte("import os\n"), grammar.Python))
	assert.Empty(t, extractSource(t, []byte("package a;\n"), grammar.Java))
}
