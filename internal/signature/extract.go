package signature

import (
	"fmt"

	"github.com/mvp-joe/code-skeleton/internal/grammar"
)

// builderFunc turns a syntax node into a signature node, or returns nil when
// the declaration has no resolvable name.
type builderFunc func(node grammar.Node, source []byte) *Node

// dispatch maps grammar node kinds to builders, one table per language.
var dispatch = map[grammar.Language]map[string]builderFunc{
	grammar.Java:   javaBuilders,
	grammar.Python: pythonBuilders,
}

// Supports reports whether extraction has builders for lang.
func Supports(lang grammar.Language) bool {
	_, ok := dispatch[lang]
	return ok
}

// forestBuilder collects top-level nodes while the walker descends.
// It plays the role of a root container without ever being a Node itself.
type forestBuilder struct {
	source   []byte
	builders map[string]builderFunc
	roots    Forest
}

// attach makes n the last child of parent, or a new root when parent is nil.
func (b *forestBuilder) attach(parent, n *Node) {
	if parent == nil {
		n.parent = nil
		b.roots = append(b.roots, n)
		return
	}
	parent.appendChild(n)
}

// walk descends depth-first in pre-order. Nodes with no builder are walked
// through with the same parent so nested declarations are still found.
func (b *forestBuilder) walk(node grammar.Node, parent *Node) {
	if node == nil {
		return
	}

	current := parent
	if build, ok := b.builders[node.Kind()]; ok {
		if n := build(node, b.source); n != nil {
			b.attach(parent, n)
			current = n
		}
	}

	for i := 0; i < node.ChildCount(); i++ {
		b.walk(node.Child(i), current)
	}
}

// Extract builds the signature forest for a parsed syntax tree. A nil root
// yields an empty forest; an unsupported language is an error.
func Extract(root grammar.Node, source []byte, lang grammar.Language) (Forest, error) {
	builders, ok := dispatch[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %q", grammar.ErrUnsupportedLanguage, string(lang))
	}

	b := &forestBuilder{
		source:   source,
		builders: builders,
		roots:    Forest{},
	}
	b.walk(root, nil)
	return b.roots, nil
}

// newNode builds a node for a declaration, using the 1-indexed span of decl.
// It returns nil when name is empty.
func newNode(kind Kind, name, sig string, decl grammar.Node) *Node {
	if name == "" {
		return nil
	}
	start, end := decl.StartPoint(), decl.EndPoint()
	return &Node{
		Kind:      kind,
		Name:      name,
		Signature: sig,
		Span: Span{
			StartLine:   start.Row + 1,
			StartColumn: start.Column + 1,
			EndLine:     end.Row + 1,
			EndColumn:   end.Column + 1,
		},
	}
}
