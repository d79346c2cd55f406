// Package luacst is a streaming lexer and lossless concrete-syntax-tree
// parser for Lua 5.1 source, built as the front end of a language server.
//
// Parsing never fails: malformed input still produces a tree spanning the
// entire source, plus a list of Diagnostic findings describing what was
// wrong.
//
//	tree, diags := luacst.Parse(source)
//	fmt.Println(luacst.Dump(tree))
//	for _, d := range diags {
//	    fmt.Println(d)
//	}
//
// The tree returned by Parse is a GreenNode: an immutable, offset-free
// subtree whose children are either more GreenNodes or GreenTokens.
// Concatenating every leaf's text in order reproduces the source exactly.
// NewRoot wraps it in a red facade (Node/Leaf) that adds absolute byte
// offsets and parent links for walking.
package luacst
