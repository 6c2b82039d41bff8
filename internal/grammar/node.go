package grammar

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Point is a zero-based row/column position as reported by the grammar engine.
type Point struct {
	Row    int
	Column int
}

// Node is the view of a concrete syntax tree node that extraction relies on.
// Implementations must return a nil interface (not a typed nil) for absent nodes.
type Node interface {
	// Kind is the grammar node type, e.g. "class_declaration".
	Kind() string
	ChildCount() int
	Child(i int) Node
	ChildByFieldName(name string) Node
	StartPoint() Point
	EndPoint() Point
	// ByteRange returns the [start, end) byte offsets of the node in the source.
	ByteRange() (start, end int)
	IsError() bool
	IsMissing() bool
}

// Text returns the source text covered by node. A nil node yields "".
func Text(node Node, source []byte) string {
	if node == nil {
		return ""
	}
	start, end := node.ByteRange()
	if end > len(source) {
		end = len(source)
	}
	if start < 0 || start >= end {
		return ""
	}
	return string(source[start:end])
}

// ChildOfKind returns the first direct child of node with the given kind.
func ChildOfKind(node Node, kind string) Node {
	if node == nil {
		return nil
	}
	for i := 0; i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.Kind() == kind {
			return child
		}
	}
	return nil
}

// tsNode adapts a tree-sitter node to Node.
type tsNode struct {
	n *sitter.Node
}

func wrap(n *sitter.Node) Node {
	if n == nil {
		return nil
	}
	return tsNode{n: n}
}

func (t tsNode) Kind() string { return t.n.Kind() }
func (t tsNode) ChildCount() int { return int(t.n.ChildCount()) }
func (t tsNode) IsError() bool { return t.n.IsError() }
func (t tsNode) IsMissing() bool { return t.n.IsMissing() }

func (t tsNode) Child(i int) Node {
	if i < 0 {
		return nil
	}
	return wrap(t.n.Child(uint(i)))
}

func (t tsNode) ChildByFieldName(name string) Node {
	return wrap(t.n.ChildByFieldName(name))
}

func (t tsNode) StartPoint() Point {
	p := t.n.StartPosition()
	return Point{Row: int(p.Row), Column: int(p.Column)}
}

func (t tsNode) EndPoint() Point {
	p := t.n.EndPosition()
	return Point{Row: int(p.Row), Column: int(p.Column)}
}

func (t tsNode) ByteRange() (int, int) {
	return int(t.n.StartByte()), int(t.n.EndByte())
}
