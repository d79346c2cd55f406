package luacst

import "strconv"

// SyntaxKind tags every leaf and node in the green tree. It is a dense,
// 16-bit enumeration: trivia, literal/identifier tokens, punctuation and
// keyword tokens, then node kinds, in that order. Keeping tokens and nodes
// in one enumeration lets the tree builder and the green tree itself stay
// ignorant of whether a given SyntaxKind denotes a leaf or a subtree; only
// the builder's Token/StartNode calls make that distinction.
type SyntaxKind uint16

const (
	// KindUnknown is never produced by the lexer or parser; it exists so
	// the zero value of SyntaxKind is recognizably invalid.
	KindUnknown SyntaxKind = iota

	// --- Trivia ---
	Whitespace
	Newline
	Comment

	// --- Literals & identifier tokens ---
	//
	// A bare identifier always lexes as a Name token; where it names a
	// variable or a function it sits under an Identifier node, with or
	// without "."/":" suffixes (e.g. `return x` -> `Identifier{Name "x"}`,
	// `function o:m(...)` -> `Identifier{Name "o" Colon Name "m"}`). There
	// is no separate "Identifier token" distinct from Name.
	Name
	String
	Number
	Invalid
	EoF

	// --- Punctuation ---
	Dot
	DoubleDot
	TripleDot
	LeftBracket
	RightBracket
	LeftCurlyBracket
	RightCurlyBracket
	LeftSquareBracket
	RightSquareBracket
	Minus
	Plus
	Asterisk
	Slash
	Modulo
	Semicolon
	Colon
	EqualsBoolean
	NotEqualsBoolean
	LessThan
	LessThanOrEquals
	GreaterThan
	GreaterThanOrEquals
	Assign
	Comma
	Hash
	Hat

	// --- Keywords (one per Lua 5.1 reserved word) ---
	AndKeyword
	BreakKeyword
	DoKeyword
	ElseKeyword
	ElseIfKeyword
	EndKeyword
	FalseKeyword
	ForKeyword
	FunctionKeyword
	IfKeyword
	InKeyword
	LocalKeyword
	NilKeyword
	NotKeyword
	OrKeyword
	RepeatKeyword
	ReturnKeyword
	ThenKeyword
	TrueKeyword
	UntilKeyword
	WhileKeyword

	// --- Nodes ---
	Block
	Statement
	FunctionDefinition
	FunctionCall
	DoBlock
	WhileLoop
	RepeatUntilLoop
	ForCountLoop
	ForInLoop
	IfChain
	IfBranch
	ElseBranch
	AssignStatement
	LocalAssignStatement
	ReturnStatement
	Expression
	ExpressionList
	BinaryExpression
	UnaryExpression
	GroupedExpression
	Literal
	Identifier
	VariableList
	NameList
	ArgumentList
	ParameterList
	Parameter
	ParameterVarArgs
	TableConstructor
	Field
	Condition

	kindSentinel // bound used by the range assertion below, never emitted
)

// keywordKinds maps the reserved-word spelling to its SyntaxKind. Built once
// so the lexer's identifier state can do an O(1) map lookup instead of a
// linear scan, mirroring the teacher's tokenKeywordsMap.
var keywordKinds = map[string]SyntaxKind{
	"and":      AndKeyword,
	"break":    BreakKeyword,
	"do":       DoKeyword,
	"else":     ElseKeyword,
	"elseif":   ElseIfKeyword,
	"end":      EndKeyword,
	"false":    FalseKeyword,
	"for":      ForKeyword,
	"function": FunctionKeyword,
	"if":       IfKeyword,
	"in":       InKeyword,
	"local":    LocalKeyword,
	"nil":      NilKeyword,
	"not":      NotKeyword,
	"or":       OrKeyword,
	"repeat":   RepeatKeyword,
	"return":   ReturnKeyword,
	"then":     ThenKeyword,
	"true":     TrueKeyword,
	"until":    UntilKeyword,
	"while":    WhileKeyword,
}

// kindNames gives every SyntaxKind a stable debug name, used by String() and
// by Dump(). Keeping this as a plain slice (rather than a stringer codegen
// pass like gomib's TokenKind) is fine at this enum's size and avoids a
// go:generate dependency for a 16-bit tag set that changes rarely.
var kindNames = [...]string{
	KindUnknown:          "Unknown",
	Whitespace:           "Whitespace",
	Newline:              "Newline",
	Comment:              "Comment",
	Name:                 "Name",
	String:               "String",
	Number:               "Number",
	Invalid:              "Invalid",
	EoF:                  "EoF",
	Dot:                  "Dot",
	DoubleDot:            "DoubleDot",
	TripleDot:            "TripleDot",
	LeftBracket:          "LeftBracket",
	RightBracket:         "RightBracket",
	LeftCurlyBracket:     "LeftCurlyBracket",
	RightCurlyBracket:    "RightCurlyBracket",
	LeftSquareBracket:    "LeftSquareBracket",
	RightSquareBracket:   "RightSquareBracket",
	Minus:                "Minus",
	Plus:                 "Plus",
	Asterisk:             "Asterisk",
	Slash:                "Slash",
	Modulo:               "Modulo",
	Semicolon:            "Semicolon",
	Colon:                "Colon",
	EqualsBoolean:        "EqualsBoolean",
	NotEqualsBoolean:     "NotEqualsBoolean",
	LessThan:             "LessThan",
	LessThanOrEquals:     "LessThanOrEquals",
	GreaterThan:          "GreaterThan",
	GreaterThanOrEquals:  "GreaterThanOrEquals",
	Assign:               "Assign",
	Comma:                "Comma",
	Hash:                 "Hash",
	Hat:                  "Hat",
	AndKeyword:           "and",
	BreakKeyword:         "break",
	DoKeyword:            "do",
	ElseKeyword:          "else",
	ElseIfKeyword:        "elseif",
	EndKeyword:           "end",
	FalseKeyword:         "false",
	ForKeyword:           "for",
	FunctionKeyword:      "function",
	IfKeyword:            "if",
	InKeyword:            "in",
	LocalKeyword:         "local",
	NilKeyword:           "nil",
	NotKeyword:           "not",
	OrKeyword:            "or",
	RepeatKeyword:        "repeat",
	ReturnKeyword:        "return",
	ThenKeyword:          "then",
	TrueKeyword:          "true",
	UntilKeyword:         "until",
	WhileKeyword:         "while",
	Block:                "Block",
	Statement:            "Statement",
	FunctionDefinition:   "FunctionDefinition",
	FunctionCall:         "FunctionCall",
	DoBlock:              "DoBlock",
	WhileLoop:            "WhileLoop",
	RepeatUntilLoop:      "RepeatUntilLoop",
	ForCountLoop:         "ForCountLoop",
	ForInLoop:            "ForInLoop",
	IfChain:              "IfChain",
	IfBranch:             "IfBranch",
	ElseBranch:           "ElseBranch",
	AssignStatement:      "AssignStatement",
	LocalAssignStatement: "LocalAssignStatement",
	ReturnStatement:      "ReturnStatement",
	Expression:           "Expression",
	ExpressionList:       "ExpressionList",
	BinaryExpression:     "BinaryExpression",
	UnaryExpression:      "UnaryExpression",
	GroupedExpression:    "GroupedExpression",
	Literal:              "Literal",
	Identifier:           "Identifier",
	VariableList:         "VariableList",
	NameList:             "NameList",
	ArgumentList:         "ArgumentList",
	ParameterList:        "ParameterList",
	Parameter:            "Parameter",
	ParameterVarArgs:     "ParameterVarArgs",
	TableConstructor:     "TableConstructor",
	Field:                "Field",
	Condition:            "Condition",
}

func init() {
	// Checked conversion per the spec's enum<->integer note: fail loudly at
	// package init if the name table and the enum drift apart instead of
	// silently printing "Unknown" for a real kind.
	if len(kindNames) != int(kindSentinel) {
		panic("luacst: kindNames is out of sync with SyntaxKind")
	}
}

// String renders the debug name of k. Unrecognized values (there should be
// none) print as a numeric fallback rather than panicking, since String is
// reachable from %v formatting on arbitrary, possibly-corrupt trees.
func (k SyntaxKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "SyntaxKind(" + strconv.Itoa(int(k)) + ")"
}

// IsTrivia reports whether k is a token kind that carries no grammar
// meaning: whitespace, newlines, and comments. Grounded in gomib's
// TokenKind.IsKeyword()/IsTypeKeyword() predicate-method idiom.
func (k SyntaxKind) IsTrivia() bool {
	switch k {
	case Whitespace, Newline, Comment:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether k is one of Lua's reserved words.
func (k SyntaxKind) IsKeyword() bool {
	return k >= AndKeyword && k <= WhileKeyword
}

// IsLiteral reports whether k is a leaf kind that carries a literal value
// (string, number, or boolean/nil keyword used as a literal).
func (k SyntaxKind) IsLiteral() bool {
	switch k {
	case String, Number, TrueKeyword, FalseKeyword, NilKeyword:
		return true
	default:
		return false
	}
}

// IsNode reports whether k denotes a tree node rather than a leaf token.
func (k SyntaxKind) IsNode() bool {
	return k >= Block && k < kindSentinel
}
