package signature

import "encoding/json"

// Span locates an entity in its source file. Lines and columns are 1-indexed.
type Span struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// Valid reports whether the span ends at or after its start.
func (s Span) Valid() bool {
	if s.EndLine != s.StartLine {
		return s.EndLine > s.StartLine
	}
	return s.EndColumn >= s.StartColumn
}

// Overlaps reports whether the span intersects the inclusive line range [start, end].
func (s Span) Overlaps(start, end int) bool {
	return s.EndLine >= start && s.StartLine <= end
}

// Node is one declared entity. A node exclusively owns its children, which
// appear in source order. Nodes must not be mutated once attached to a tree.
type Node struct {
	Kind      Kind
	Name      string
	Signature string
	Span      Span
	Children  []*Node

	// parent is a non-owning back reference, nil for forest roots.
	parent *Node
}

// Parent returns the enclosing entity, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// appendChild attaches child as the last child of n.
func (n *Node) appendChild(child *Node) {
	child.parent = n
	n.Children = append(n.Children, child)
}

// clone deep-copies n and, when keep is non-nil, only the descendants keep accepts.
// A rejected node is dropped together with its subtree.
func (n *Node) clone(keep func(*Node) bool) *Node {
	if keep != nil && !keep(n) {
		return nil
	}
	c := &Node{
		Kind:      n.Kind,
		Name:      n.Name,
		Signature: n.Signature,
		Span:      n.Span,
	}
	for _, child := range n.Children {
		if cc := child.clone(keep); cc != nil {
			c.appendChild(cc)
		}
	}
	return c
}

type jsonPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type jsonLocation struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonNode struct {
	Type      Kind         `json:"type"`
	Name      string       `json:"name"`
	Signature string       `json:"signature"`
	Location  jsonLocation `json:"location"`
	Children  []*Node      `json:"children,omitempty"`
}

// MarshalJSON renders the node with a nested location object.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonNode{
		Type:      n.Kind,
		Name:      n.Name,
		Signature: n.Signature,
		Location: jsonLocation{
			Start: jsonPosition{Line: n.Span.StartLine, Column: n.Span.StartColumn},
			End:   jsonPosition{Line: n.Span.EndLine, Column: n.Span.EndColumn},
		},
		Children: n.Children,
	})
}

// Forest is the ordered list of top-level entities of a file.
type Forest []*Node

// Clone returns a deep copy sharing nothing with f.
func (f Forest) Clone() Forest {
	out := make(Forest, 0, len(f))
	for _, n := range f {
		out = append(out, n.clone(nil))
	}
	return out
}

// FilterRange returns a deep copy holding only nodes whose span overlaps the
// inclusive line range [start, end]. The test is applied at every depth and a
// node that fails it is dropped with its whole subtree.
func (f Forest) FilterRange(start, end int) Forest {
	keep := func(n *Node) bool { return n.Span.Overlaps(start, end) }
	out := make(Forest, 0, len(f))
	for _, n := range f {
		if c := n.clone(keep); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Walk visits every node depth-first in pre-order. depth is 0 for roots.
// Returning false from fn skips the node's children.
func (f Forest) Walk(fn func(n *Node, depth int) bool) {
	var visit func(n *Node, depth int)
	visit = func(n *Node, depth int) {
		if !fn(n, depth) {
			return
		}
		for _, child := range n.Children {
			visit(child, depth+1)
		}
	}
	for _, n := range f {
		visit(n, 0)
	}
}

// Len returns the total number of nodes in the forest.
func (f Forest) Len() int {
	count := 0
	f.Walk(func(*Node, int) bool {
		count++
		return true
	})
	return count
}
