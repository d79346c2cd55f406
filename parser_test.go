package luacst

import (
	"strings"
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sig renders a node/leaf tree as a compact, offset-free kind signature,
// skipping whitespace/newline trivia so structural assertions aren't
// sensitive to incidental spacing. Comments are kept (the truncated-comment
// scenario below asserts on one), and so is EoF, since every Block's final
// child is always the EoF token.
func sig(e Element) string {
	switch v := e.(type) {
	case *Leaf:
		return v.Kind().String()
	case *Node:
		var parts []string
		for _, c := range v.Children() {
			if c.Kind() == Whitespace || c.Kind() == Newline {
				continue
			}
			parts = append(parts, sig(c))
		}
		return v.Kind().String() + "(" + strings.Join(parts, ",") + ")"
	default:
		return "?"
	}
}

// parseSig parses source and returns its root's signature alongside the
// raw diagnostics, for the table-driven worked-example tests below.
func parseSig(t *testing.T, source string) (string, []Diagnostic) {
	t.Helper()
	tree, diags := Parse(source)
	require.Equal(t, source, tree.Text(), "parse must be lossless")
	return sig(NewRoot(tree)), diags
}

// TestWorkedExamples encodes the six canonical end-to-end scenarios: each
// exercises a distinct statement form and asserts the exact resulting tree
// shape plus an empty diagnostic set, except the last, which deliberately
// truncates input mid-comment to exercise the never-fail recovery path.
func TestWorkedExamples(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "simple assignment",
			in:   "x = 1",
			want: "Block(AssignStatement(VariableList(Identifier(Name)),Assign,ExpressionList(Literal(Number))),EoF)",
		},
		{
			name: "local multi-assignment",
			in:   `local a, b = 1, "s"`,
			want: "Block(LocalAssignStatement(local,NameList(Name,Comma,Name),Assign,ExpressionList(Literal(Number),Comma,Literal(String))),EoF)",
		},
		{
			name: "method definition with varargs",
			in:   "function o:m(x, ...) return x end",
			want: "Block(FunctionDefinition(function,Identifier(Name,Colon,Name),ParameterList(LeftBracket,Parameter(Name),Comma,ParameterVarArgs(TripleDot),RightBracket),Block(ReturnStatement(return,ExpressionList(Identifier(Name)))),end),EoF)",
		},
		{
			name: "if/elseif/else chain",
			in:   "if a then b() elseif c then d() else e() end",
			want: "Block(IfChain(IfBranch(if,Condition(Identifier(Name)),then,Block(FunctionCall(Name,ArgumentList(LeftBracket,RightBracket)))),IfBranch(elseif,Condition(Identifier(Name)),then,Block(FunctionCall(Name,ArgumentList(LeftBracket,RightBracket)))),ElseBranch(else,Block(FunctionCall(Name,ArgumentList(LeftBracket,RightBracket)))),end),EoF)",
		},
		{
			name: "table constructor with mixed fields",
			in:   "t = {[1]=2, x=3, 4, 5;}",
			want: "Block(AssignStatement(VariableList(Identifier(Name)),Assign,ExpressionList(TableConstructor(LeftCurlyBracket,Field(LeftSquareBracket,Literal(Number),RightSquareBracket,Assign,Literal(Number)),Comma,Field(Name,Assign,Literal(Number)),Comma,Field(Literal(Number)),Comma,Field(Literal(Number)),Semicolon,RightCurlyBracket))),EoF)",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, diags := parseSig(t, tc.in)
			assert.Equal(t, tc.want, got)
			assert.Empty(t, diags)
		})
	}
}

// TestTruncatedLongComment is the sixth worked example: input ends mid long
// comment, so the never-fail parser still returns a tree spanning the whole
// source (a single Comment leaf) plus one NotClosedComment diagnostic
// covering the whole truncated span.
func TestTruncatedLongComment(t *testing.T) {
	source := "--[[ oops"
	got, diags := parseSig(t, source)
	require.Equal(t, "Block(Comment,EoF)", got)
	require.Len(t, diags, 1)
	assert.Equal(t, Diagnostic{Start: 0, End: len(source), Kind: NotClosedComment}, diags[0])
}

func TestEmptyInput(t *testing.T) {
	tree, diags := Parse("")
	require.Empty(t, diags)
	root := NewRoot(tree)
	require.Equal(t, Block, root.Kind())
	children := root.Children()
	require.Len(t, children, 1)
	assert.Equal(t, EoF, children[0].Kind())
	assert.Equal(t, TextRange{Start: 0, End: 0}, children[0].TextRange())
}

// TestTriviaOnlyInput checks that a document consisting purely of
// whitespace and comments still parses to a totality-respecting Block: no
// statements, zero diagnostics, every byte accounted for as trivia or EoF.
func TestTriviaOnlyInput(t *testing.T) {
	source := "   \n-- a comment\n\t"
	tree, diags := Parse(source)
	require.Empty(t, diags)
	require.Equal(t, source, tree.Text())

	root := NewRoot(tree)
	for _, c := range root.Children() {
		if c.Kind() == EoF {
			continue
		}
		assert.True(t, c.Kind().IsTrivia(), "expected only trivia children, got %s", c.Kind())
	}
}

// TestLosslessRoundTrip checks the losslessness invariant across a range of
// inputs, well-formed and malformed alike: concatenating every leaf's text
// must always reproduce the source exactly.
func TestLosslessRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"local x = 1 + 2 * (3 - 4) / 5 % 6",
		"for i = 1, 10, 2 do print(i) end",
		"for k, v in pairs(t) do end",
		"repeat x = x - 1 until x == 0",
		"local function f(a, ...) return a end",
		"a.b.c:d(1, 2).e[3] = 4",
		"{1, 2, [3] = 4, x = 5;}",
		"function (",
		"local",
		"1 +",
		"{",
		"--[==[ unterminated level-2 long comment",
		"\"unterminated string",
		"x = 0x1G",
	}
	for _, in := range inputs {
		tree, _ := Parse(in)
		assert.Equal(t, in, tree.Text(), "lossy round-trip for %q", in)
	}
}

// TestMonotonicOffsets walks the red facade and checks that every child's
// TextRange is contained within its parent's and that children are laid
// out in strictly non-decreasing, non-overlapping order — the walk API's
// absolute-offset bookkeeping (walk.go) must stay internally consistent.
func TestMonotonicOffsets(t *testing.T) {
	source := "function o:m(x, ...)\n  if x then\n    return x\n  end\nend"
	tree, _ := Parse(source)
	var walk func(n *Node)
	walk = func(n *Node) {
		pr := n.TextRange()
		cursor := pr.Start
		for _, c := range n.Children() {
			cr := c.TextRange()
			require.Equal(t, cursor, cr.Start, "child %s does not start where previous sibling ended", c.Kind())
			require.LessOrEqual(t, cr.End, pr.End, "child %s overruns parent range", c.Kind())
			if sub, ok := c.(*Node); ok {
				walk(sub)
			}
			cursor = cr.End
		}
		require.Equal(t, pr.End, cursor, "children do not exactly tile parent %s", n.Kind())
	}
	walk(NewRoot(tree))
}

// TestEoFTotality checks that the final leaf of any parse, however
// malformed the input, is always a zero-or-more-width EoF token whose End
// equals len(source): every parse consumes the entire input, synthesizing
// an EoF token if one wasn't actually there to lex.
func TestEoFTotality(t *testing.T) {
	for _, in := range []string{"", "x = 1", "if", "--[[", "local function"} {
		tree, _ := Parse(in)
		root := NewRoot(tree)
		children := root.Children()
		require.NotEmpty(t, children)
		last := children[len(children)-1]
		require.Equal(t, EoF, last.Kind())
		assert.Equal(t, len(in), last.TextRange().End)
	}
}

// TestDiagnosticsMonotonic checks that diagnostics are reported in
// source order, matching the parser's single forward scan.
func TestDiagnosticsMonotonic(t *testing.T) {
	_, diags := Parse("if x then\nelseif then\nend\nfunction (")
	for i := 1; i < len(diags); i++ {
		assert.LessOrEqual(t, diags[i-1].Start, diags[i].Start, "diagnostics out of order")
	}
}

// TestRealLuaPrecedence pins down real Lua's operator-precedence details:
// unary binds tighter than * / % but looser than ^, and ^ is
// right-associative with its RHS re-entering at the unary level.
func TestRealLuaPrecedence(t *testing.T) {
	got, _ := parseSig(t, "x = -2^2")
	// "-2^2" must parse as UnaryExpression(Minus, BinaryExpression(Literal,Hat,Literal))
	// i.e. -(2^2), not (-2)^2.
	want := "Block(AssignStatement(VariableList(Identifier(Name)),Assign,ExpressionList(UnaryExpression(Minus,BinaryExpression(Literal(Number),Hat,Literal(Number))))),EoF)"
	assert.Equal(t, want, got)

	got2, _ := parseSig(t, "x = 2^-2")
	// "2^-2" must parse as BinaryExpression(Literal,Hat,UnaryExpression(Minus,Literal)):
	// the exponent gets its own unary prefix.
	want2 := "Block(AssignStatement(VariableList(Identifier(Name)),Assign,ExpressionList(BinaryExpression(Literal(Number),Hat,UnaryExpression(Minus,Literal(Number))))),EoF)"
	assert.Equal(t, want2, got2)

	got3, _ := parseSig(t, "x = a^b^c")
	// right-associative: a^(b^c).
	want3 := "Block(AssignStatement(VariableList(Identifier(Name)),Assign,ExpressionList(BinaryExpression(Identifier(Name),Hat,BinaryExpression(Identifier(Name),Hat,Identifier(Name))))),EoF)"
	assert.Equal(t, want3, got3)
}

// TestIdentifierChainNesting checks that a.b.c nests left-recursively
// (Identifier{Identifier{a.b}.c}) rather than flattening into one node
// with three suffixes, matching the grammar's own left recursion.
func TestIdentifierChainNesting(t *testing.T) {
	got, diags := parseSig(t, "return a.b.c")
	require.Empty(t, diags)
	want := "Block(ReturnStatement(return,ExpressionList(Identifier(Identifier(Name,Dot,Name),Dot,Name))),EoF)"
	assert.Equal(t, want, got)
}

// TestStrayHashDiagnostic checks the "# in binary position" case: "#" is
// legal only as a unary prefix, so seeing it where a binary operator is
// expected is reported as UnexpectedOperator and recovered as Invalid.
func TestStrayHashDiagnostic(t *testing.T) {
	_, diags := Parse("x = 1 # 2")
	require.NotEmpty(t, diags)
	found := false
	for _, d := range diags {
		if d.Kind == UnexpectedOperator {
			found = true
		}
	}
	assert.True(t, found, "expected an UnexpectedOperator diagnostic, got %v", diags)
}

// TestInvalidFunctionDiagnostic checks that "function" followed by neither
// a name nor "(" is reported as InvalidFunction rather than a generic
// ExpectingName, and that the FunctionDefinition node is still closed off
// without attempting to descend into a parameter list or body.
func TestInvalidFunctionDiagnostic(t *testing.T) {
	_, diags := Parse("function end")
	require.NotEmpty(t, diags)
	assert.Equal(t, InvalidFunction, diags[0].Kind)
}

// TestInvalidNameDiagnostic checks that a keyword used where a function
// name segment is expected is reported as InvalidName, distinct from an
// absent name entirely.
func TestInvalidNameDiagnostic(t *testing.T) {
	_, diags := Parse("function o.end() end")
	require.NotEmpty(t, diags)
	found := false
	for _, d := range diags {
		if d.Kind == InvalidName {
			found = true
		}
	}
	assert.True(t, found, "expected an InvalidName diagnostic, got %v", diags)
}

// TestExpectingCommaOrBracketDiagnostic checks that two parameters in a row
// with no separating comma is reported as ExpectingCommaOrBracket, not the
// generic ExpectingClosingBracket.
func TestExpectingCommaOrBracketDiagnostic(t *testing.T) {
	_, diags := Parse("function f(a b) end")
	require.NotEmpty(t, diags)
	found := false
	for _, d := range diags {
		if d.Kind == ExpectingCommaOrBracket {
			found = true
		}
	}
	assert.True(t, found, "expected an ExpectingCommaOrBracket diagnostic, got %v", diags)
}

// TestExpectingCommaDiagnostic checks that two table fields in a row with
// no separating comma or semicolon is reported as ExpectingComma.
func TestExpectingCommaDiagnostic(t *testing.T) {
	_, diags := Parse("x = {1 2}")
	require.NotEmpty(t, diags)
	found := false
	for _, d := range diags {
		if d.Kind == ExpectingComma {
			found = true
		}
	}
	assert.True(t, found, "expected an ExpectingComma diagnostic, got %v", diags)
}

// TestParseIsIdempotent checks that parsing the same source twice produces
// identical diagnostics and an identically-shaped tree — Parse holds no
// hidden state across calls and a malformed input's recovery path must be
// deterministic, not order- or call-count-dependent. Diagnostics are
// compared with go-test/deep for a readable field-by-field diff on
// failure, rather than reflect.DeepEqual's opaque bool.
func TestParseIsIdempotent(t *testing.T) {
	for _, in := range []string{
		"local x = 1 + 2",
		"function o:m(x, ...) return x end",
		"if a then b() elseif c then",
		"x = {[1]=2, x=3, 4, 5;}",
		"--[[ oops",
	} {
		tree1, diags1 := Parse(in)
		tree2, diags2 := Parse(in)
		if diff := deep.Equal(diags1, diags2); diff != nil {
			t.Errorf("diagnostics differ across repeated parses of %q: %v", in, diff)
		}
		assert.Equal(t, sig(NewRoot(tree1)), sig(NewRoot(tree2)), "tree shape differs across repeated parses of %q", in)
	}
}

// TestNeverFailsOnMalformedInput exercises the error-recovery discipline on
// a battery of malformed fragments: Parse must never panic, and must always
// return a lossless, EoF-terminated tree even when it also reports
// diagnostics.
func TestNeverFailsOnMalformedInput(t *testing.T) {
	fragments := []string{
		"function (",
		"if x then",
		"local",
		"1 +",
		"{",
		"for i = do end",
		"a, , b = 1",
		"x = {",
		"--[[",
		"[[unterminated",
	}
	for _, in := range fragments {
		t.Run(in, func(t *testing.T) {
			require.NotPanics(t, func() {
				tree, _ := Parse(in)
				require.Equal(t, in, tree.Text())
			})
		})
	}
}
