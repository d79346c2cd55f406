package luacst

import (
	"fmt"
	"strings"
)

// NodeOrToken is satisfied by *GreenNode and *GreenToken: anything that can
// sit in a node's child list.
type NodeOrToken interface {
	Kind() SyntaxKind
	width() int
}

// GreenToken is an immutable leaf: a SyntaxKind plus the exact source text
// it spans. Green tokens never reference their absolute position — that is
// the red layer's job (walk.go) — so the same GreenToken could, in
// principle, be shared across trees.
type GreenToken struct {
	kind SyntaxKind
	text string
}

func (t *GreenToken) Kind() SyntaxKind { return t.kind }
func (t *GreenToken) width() int       { return len(t.text) }

// Text returns the exact source slice this token covers.
func (t *GreenToken) Text() string { return t.text }

// GreenNode is an immutable subtree: a SyntaxKind plus an ordered list of
// children, each a node or a token. Concatenating the text of every leaf in
// tree order reproduces the source exactly.
type GreenNode struct {
	kind     SyntaxKind
	children []NodeOrToken
	textLen  int
}

func newGreenNode(kind SyntaxKind, children []NodeOrToken) *GreenNode {
	n := &GreenNode{kind: kind, children: children}
	for _, c := range children {
		n.textLen += c.width()
	}
	return n
}

func (n *GreenNode) Kind() SyntaxKind       { return n.kind }
func (n *GreenNode) width() int             { return n.textLen }
func (n *GreenNode) Children() []NodeOrToken { return n.children }

// Text reconstructs the exact source text spanned by this subtree by
// concatenating every leaf in order.
func (n *GreenNode) Text() string {
	var b strings.Builder
	b.Grow(n.textLen)
	n.writeText(&b)
	return b.String()
}

func (n *GreenNode) writeText(b *strings.Builder) {
	for _, c := range n.children {
		switch v := c.(type) {
		case *GreenToken:
			b.WriteString(v.text)
		case *GreenNode:
			v.writeText(b)
		}
	}
}

// Checkpoint is an opaque marker into the builder's in-progress output,
// recording which frame was open and how many children it held at the
// moment of capture. A later StartNodeAt retroactively lifts every
// node/token emitted into that frame since the checkpoint into a new
// child node — the trick that lets a left-recursive production (a chain of
// ".name"/"[exp]"/call suffixes, or a run of same-precedence operators) be
// built without ever backtracking the lexer or the tree.
type Checkpoint struct {
	frame *builderFrame
	index int
}

type builderFrame struct {
	kind     SyntaxKind
	children []NodeOrToken
}

// Builder is a minimal wrapper over a lossless green-tree builder: five
// primitives (token, start-node, finish-node, checkpoint, start-node-at)
// plus Finish. It maintains a stack of open frames; the bottom-most frame is
// a placeholder that ultimately holds exactly one child — the parsed Block —
// once the caller is done.
type Builder struct {
	stack []*builderFrame
}

// NewBuilder creates a builder ready to accept Token/StartNode calls.
func NewBuilder() *Builder {
	return &Builder{stack: []*builderFrame{{kind: KindUnknown}}}
}

func (b *Builder) top() *builderFrame {
	return b.stack[len(b.stack)-1]
}

// Token appends a leaf to the currently open node.
func (b *Builder) Token(kind SyntaxKind, text string) {
	f := b.top()
	f.children = append(f.children, &GreenToken{kind: kind, text: text})
}

// StartNode opens a new node of the given kind as a child of the current one.
func (b *Builder) StartNode(kind SyntaxKind) {
	b.stack = append(b.stack, &builderFrame{kind: kind})
}

// FinishNode closes the most recently opened node, appending it as a
// finished child of its parent frame.
func (b *Builder) FinishNode() {
	f := b.top()
	b.stack = b.stack[:len(b.stack)-1]
	node := newGreenNode(f.kind, f.children)
	parent := b.top()
	parent.children = append(parent.children, node)
}

// Checkpoint captures the current insertion point: the currently open
// frame and how many children it holds right now.
func (b *Builder) Checkpoint() Checkpoint {
	f := b.top()
	return Checkpoint{frame: f, index: len(f.children)}
}

// StartNodeAt retroactively opens a node of the given kind whose children
// are everything appended to cp's frame since the checkpoint was taken.
// It must be balanced by a later FinishNode, exactly like StartNode.
//
// cp must belong to the frame that is still current (no intervening,
// still-open StartNode without a matching FinishNode may have been left
// open across the checkpoint, and no sibling finished after the checkpoint
// may have closed the frame itself) — the builder panics on misuse with a
// located error rather than silently producing a malformed tree.
func (b *Builder) StartNodeAt(cp Checkpoint, kind SyntaxKind) {
	if b.top() != cp.frame {
		panic(fmt.Errorf("luacst: StartNodeAt(%s): checkpoint does not belong to the current frame", kind))
	}
	if cp.index > len(cp.frame.children) {
		panic(fmt.Errorf("luacst: StartNodeAt(%s): checkpoint is stale (frame has since shrunk)", kind))
	}
	wrapped := cp.frame.children[cp.index:]
	cp.frame.children = cp.frame.children[:cp.index]
	newFrame := &builderFrame{kind: kind, children: append([]NodeOrToken(nil), wrapped...)}
	b.stack = append(b.stack, newFrame)
}

// Finish closes out the builder, returning the single root GreenNode. The
// caller must have balanced every StartNode/StartNodeAt with a FinishNode
// and produced exactly one top-level node (the parsed Block).
func (b *Builder) Finish() *GreenNode {
	root := b.stack[0]
	if len(root.children) != 1 {
		panic(fmt.Errorf("luacst: Finish: expected exactly one root node, got %d", len(root.children)))
	}
	node, ok := root.children[0].(*GreenNode)
	if !ok {
		panic(fmt.Errorf("luacst: Finish: root child is a token, not a node"))
	}
	return node
}
