// Package grammartest provides hand-built syntax trees for tests that need
// shapes a real grammar will not produce deterministically.
package grammartest

import "github.com/mvp-joe/code-skeleton/internal/grammar"

// Node is an in-memory grammar.Node.
type Node struct {
	Type      string
	Children  []*Node
	Fields    map[string]*Node
	Start     grammar.Point
	End       grammar.Point
	StartByte int
	EndByte   int
	Error     bool
	Missing   bool
}

// New creates a node of kind spanning zero-based rows startRow..endRow.
func New(kind string, startRow, endRow int, children ...*Node) *Node {
	return &Node{
		Type:     kind,
		Children: children,
		Start:    grammar.Point{Row: startRow},
		End:      grammar.Point{Row: endRow},
	}
}

// ErrorAt returns an ERROR node on zero-based row.
func ErrorAt(row int) *Node {
	n := New("ERROR", row, row)
	n.Error = true
	return n
}

// MissingAt returns a zero-width MISSING node on zero-based row.
func MissingAt(kind string, row int) *Node {
	n := New(kind, row, row)
	n.Missing = true
	return n
}

// WithField registers child (appending it to Children) under a field name.
func (n *Node) WithField(name string, child *Node) *Node {
	if n.Fields == nil {
		n.Fields = make(map[string]*Node)
	}
	n.Fields[name] = child
	n.Children = append(n.Children, child)
	return n
}

// WithBytes sets the [start, end) byte range of the node.
func (n *Node) WithBytes(start, end int) *Node {
	n.StartByte, n.EndByte = start, end
	return n
}

// WithColumns sets the zero-based start and end columns.
func (n *Node) WithColumns(start, end int) *Node {
	n.Start.Column, n.End.Column = start, end
	return n
}

func (n *Node) Kind() string { return n.Type }
func (n *Node) ChildCount() int { return len(n.Children) }
func (n *Node) StartPoint() grammar.Point { return n.Start }
func (n *Node) EndPoint() grammar.Point { return n.End }
func (n *Node) ByteRange() (int, int) { return n.StartByte, n.EndByte }
func (n *Node) IsError() bool { return n.Error }
func (n *Node) IsMissing() bool { return n.Missing }

func (n *Node) Child(i int) grammar.Node {
	if i < 0 || i >= len(n.Children) || n.Children[i] == nil {
		return nil
	}
	return n.Children[i]
}

func (n *Node) ChildByFieldName(name string) grammar.Node {
	if child, ok := n.Fields[name]; ok && child != nil {
		return child
	}
	return nil
}
