package luacst

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/repr"
)

// TextRange is an absolute, half-open byte range [Start, End) into the
// original source.
type TextRange struct {
	Start int
	End   int
}

func (r TextRange) Len() int { return r.End - r.Start }

// Element is the read-only walk interface shared by Node and Leaf: every
// node exposes its kind, absolute text range, ordered children, and text.
// It is the red half of a red/green split: Element values carry an
// absolute offset and a parent link that the immutable GreenNode/GreenToken
// deliberately do not, so a caller can walk upward and ask for absolute
// ranges without re-summing sibling widths by hand. This is purely an
// ergonomic facade over the same immutable green tree built during
// parsing — no new semantics, just absolute positions and parent links
// layered on top.
type Element interface {
	Kind() SyntaxKind
	TextRange() TextRange
	Text() string
	Parent() *Node
}

// Node wraps a *GreenNode with its absolute offset and parent link.
type Node struct {
	green  *GreenNode
	offset int
	parent *Node
}

// NewRoot builds the read-only walk facade over a green tree returned by
// Parse. The root itself has offset 0 and a nil Parent.
func NewRoot(root *GreenNode) *Node {
	return &Node{green: root}
}

func (n *Node) Kind() SyntaxKind   { return n.green.Kind() }
func (n *Node) Parent() *Node      { return n.parent }
func (n *Node) Green() *GreenNode  { return n.green }
func (n *Node) Text() string       { return n.green.Text() }
func (n *Node) TextRange() TextRange {
	return TextRange{Start: n.offset, End: n.offset + n.green.width()}
}

// Children returns the node's direct children as walk Elements (each
// either a *Node or a *Leaf), offset-resolved relative to this node.
func (n *Node) Children() []Element {
	children := n.green.Children()
	out := make([]Element, 0, len(children))
	off := n.offset
	for _, c := range children {
		switch v := c.(type) {
		case *GreenNode:
			out = append(out, &Node{green: v, offset: off, parent: n})
		case *GreenToken:
			out = append(out, &Leaf{green: v, offset: off, parent: n})
		}
		off += c.width()
	}
	return out
}

// Leaf wraps a *GreenToken with its absolute offset and parent link.
type Leaf struct {
	green  *GreenToken
	offset int
	parent *Node
}

func (l *Leaf) Kind() SyntaxKind { return l.green.Kind() }
func (l *Leaf) Parent() *Node    { return l.parent }
func (l *Leaf) Text() string     { return l.green.Text() }
func (l *Leaf) TextRange() TextRange {
	return TextRange{Start: l.offset, End: l.offset + l.green.width()}
}

// Dump renders an indented, byte-range-annotated tree for debugging and
// golden-file tests.
func Dump(root *GreenNode) string {
	n := NewRoot(root)
	var b strings.Builder
	dumpElement(&b, n, 0)
	return b.String()
}

func dumpElement(b *strings.Builder, e Element, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	r := e.TextRange()
	switch v := e.(type) {
	case *Node:
		fmt.Fprintf(b, "%s@[%d,%d)\n", v.Kind(), r.Start, r.End)
		for _, c := range v.Children() {
			dumpElement(b, c, depth+1)
		}
	case *Leaf:
		fmt.Fprintf(b, "%s@[%d,%d) %s\n", v.Kind(), r.Start, r.End, strconv.Quote(v.Text()))
	}
}

// DumpRepr renders the underlying immutable green tree with
// alecthomas/repr's reflective pretty-printer, which can reach the
// GreenNode/GreenToken unexported fields directly instead of going through
// Text()/Kind(). Safe to call on a GreenNode (unlike the red Node/Leaf
// facade above, the green tree holds no parent back-pointers, so there is
// no risk of repr looping over a parent<->child cycle).
func DumpRepr(root *GreenNode) string {
	return repr.String(root, repr.Indent("  "))
}
