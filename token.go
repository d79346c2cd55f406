package luacst

// Token is a single lexical element produced by the Lexer: a SyntaxKind plus
// the byte range it spans. Some kinds carry an additional small tag value
// (NumberTag, StringTag, CommentTag) describing validity and a format
// modifier; every other kind leaves the Number, Str and Comm fields at their
// zero values.
//
// Modeled on the teacher's Token struct (lexer.go), trimmed to what a
// byte-offset-only, lossless lexer needs: no Filename/Line/Col (line/column
// mapping is an editor-facing concern a caller can layer on top of byte
// offsets), no pre-escaped Val (the slice IS the value; escaping is left to
// a caller, and the lexer only flags validity in the tag fields below).
type Token struct {
	Kind  SyntaxKind
	Start int
	End   int

	// Number is populated when Kind == Number.
	Number NumberTag
	// Str is populated when Kind == String.
	Str StringTag
	// Comm is populated when Kind == Comment.
	Comm CommentTag
}

// Len reports the byte length of the token.
func (t Token) Len() int { return t.End - t.Start }

// NumberValidity classifies whether a scanned number literal obeys its
// modifier's digit class throughout.
type NumberValidity uint8

const (
	NumberValid NumberValidity = iota
	NumberInvalid
)

// NumberModifier classifies the literal form of a scanned number.
type NumberModifier uint8

const (
	Integer NumberModifier = iota
	Decimal
	Hex
	Exponential
)

// NumberTag is the tag attribute carried by a Number token.
type NumberTag struct {
	Validity NumberValidity
	Modifier NumberModifier
}

// StringValidity classifies whether a scanned string literal reached its
// closing delimiter before running out of input or hitting a bare newline.
type StringValidity uint8

const (
	StringValid StringValidity = iota
	StringNotTerminated
)

// StringModifier classifies the delimiter form of a scanned string.
type StringModifier uint8

const (
	// Quotes is a single-quoted string: 'like this'.
	Quotes StringModifier = iota
	// DoubleQuotes is a double-quoted string: "like this".
	DoubleQuotes
	// LongBrackets is Lua's [[ ... ]] / [=[ ... ]=] long-bracket string form.
	LongBrackets
)

// StringTag is the tag attribute carried by a String token.
type StringTag struct {
	Validity StringValidity
	Modifier StringModifier
}

// CommentValidity classifies whether a scanned comment's body (only
// meaningful for the long-bracket form) was properly closed.
type CommentValidity uint8

const (
	CommentValid CommentValidity = iota
	CommentNotTerminated
)

// CommentModifier classifies the form of a scanned comment.
type CommentModifier uint8

const (
	Oneline CommentModifier = iota
	Multiline
)

// CommentTag is the tag attribute carried by a Comment token.
type CommentTag struct {
	Validity CommentValidity
	Modifier CommentModifier
}
