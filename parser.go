package luacst

import "sort"

// prefixKind is the parser's internal notion of what a prefixexp chain
// resolved to. It never appears in the green tree; it only decides, at the
// call site, whether a just-parsed chain is a legal assignment target (Name
// or Identifier) and whether a bare prefix-expression statement is a
// function call.
type prefixKind int

const (
	prefixNone prefixKind = iota
	prefixName
	prefixIdentifier
	prefixFunctionCall
	prefixNested
)

// Parser turns a token stream into a lossless green tree plus a diagnostics
// list. It never fails: every malformed construct is recorded as a
// Diagnostic and recovered from, rather than aborting the parse.
//
// Modeled on the teacher's array-indexed Parser (parser.go), but
// lexer-backed with a single-token lookahead instead of a materialized
// token slice — pre-tokenizing the whole input would buy nothing here, and
// a streaming lexer holds at most one token of lookahead instead of a
// second copy of the whole token stream alongside the tree being built.
type Parser struct {
	lexer *Lexer
	b     *Builder
	diags []Diagnostic
}

// NewParser creates a parser over source, ready to build a single tree.
func NewParser(source string) *Parser {
	return &Parser{lexer: NewLexer(source), b: NewBuilder()}
}

// Parse lexes and parses source in one pass, returning the lossless green
// tree (rooted at a single Block) and every diagnostic recorded along the
// way. It never panics on malformed input — only internal builder misuse (a
// bug in this package) can raise.
func Parse(source string) (*GreenNode, []Diagnostic) {
	p := NewParser(source)
	tree := p.Run()
	return tree, p.Diagnostics()
}

// Run drives the parser to completion and returns the resulting tree. Call
// Diagnostics afterward to retrieve whatever was recorded along the way.
func (p *Parser) Run() *GreenNode {
	p.b.StartNode(Block)
	for {
		p.eatTrivia()
		if p.lexer.PeekToken().Kind == EoF {
			break
		}
		p.parseStatement()
	}
	eof := p.lexer.NextToken()
	p.b.Token(EoF, p.lexer.Slice(eof))
	p.b.FinishNode()
	// NotClosedBlock is only known at EoF but points back at the block's
	// opening keyword, so restore source order by start offset.
	sort.SliceStable(p.diags, func(i, j int) bool { return p.diags[i].Start < p.diags[j].Start })
	return p.b.Finish()
}

// Diagnostics returns every diagnostic recorded by the most recent Run.
func (p *Parser) Diagnostics() []Diagnostic {
	return p.diags
}

func (p *Parser) addDiag(kind DiagnosticKind, start, end int) {
	p.diags = append(p.diags, Diagnostic{Start: start, End: end, Kind: kind})
}

// eatTrivia drains whitespace, newline and comment tokens into whichever
// node is currently open on the builder. Every grammar join calls this
// (via current/bump) before inspecting the next significant token, so
// trivia always lands exactly where it occurred in the source — folded
// into the lookahead primitives instead of being a separate call the
// grammar code has to remember to make.
func (p *Parser) eatTrivia() {
	for {
		t := p.lexer.PeekToken()
		switch t.Kind {
		case Whitespace, Newline:
			p.lexer.NextToken()
			p.b.Token(t.Kind, p.lexer.Slice(t))
		case Comment:
			p.lexer.NextToken()
			p.b.Token(t.Kind, p.lexer.Slice(t))
			if t.Comm.Modifier == Multiline && t.Comm.Validity == CommentNotTerminated {
				p.addDiag(NotClosedComment, t.Start, t.End)
			}
		default:
			return
		}
	}
}

// current returns the next significant (non-trivia) token without
// consuming it, having first drained any pending trivia into the tree.
func (p *Parser) current() Token {
	p.eatTrivia()
	return p.lexer.PeekToken()
}

func (p *Parser) at(kind SyntaxKind) bool {
	return p.current().Kind == kind
}

// bump consumes the current token and appends it as a leaf under whatever
// node is open. Validity tags on Number/String tokens are translated into
// diagnostics here, so every call site — atoms, arguments, table fields —
// gets that check for free.
func (p *Parser) bump() Token {
	t := p.current()
	p.lexer.NextToken()
	p.b.Token(t.Kind, p.lexer.Slice(t))
	switch t.Kind {
	case Number:
		if t.Number.Validity == NumberInvalid {
			p.addDiag(InvalidNumberFormat, t.Start, t.End)
		}
	case String:
		if t.Str.Validity == StringNotTerminated {
			p.addDiag(NotTerminatedString, t.Start, t.End)
		}
	}
	return t
}

// expect requires kind at the current position. On success it bumps and
// returns (token, true). On failure it emits kind's diagnostic at the
// current position and returns (zero Token, false) without consuming
// anything — the caller decides how to recover.
func (p *Parser) expect(kind SyntaxKind, onMissing DiagnosticKind) (Token, bool) {
	t := p.current()
	if t.Kind == kind {
		return p.bump(), true
	}
	p.addDiag(onMissing, t.Start, t.Start)
	return Token{}, false
}

// ensureProgress guards a recovery loop against stalling forever: if the
// lexer's position hasn't moved since posBefore and we're not at EoF, it
// force-consumes one token as an Invalid leaf. Every atom-level parse
// already guarantees forward progress on its own (parseAtomWithSuffix's
// failure branch consumes a token), so in practice this only fires for
// loop bodies — statements, fields, parameters — whose sub-parse bailed
// out without reaching an atom at all.
func (p *Parser) ensureProgress(posBefore int) {
	// posBefore is usually taken with the loop's next token already peeked,
	// so the lexer's position already sits past that token. Peek again
	// before comparing: if the sub-parse consumed the peeked token, this
	// scans the following one and moves the position.
	t := p.current()
	if p.lexer.pos != posBefore {
		return
	}
	if t.Kind == EoF {
		return
	}
	p.lexer.NextToken()
	p.b.Token(Invalid, p.lexer.Slice(t))
	p.addDiag(UnexpectedToken, t.Start, t.End)
}

func diagForUnexpected(k SyntaxKind) DiagnosticKind {
	if k.IsKeyword() {
		return UnexpectedKeyword
	}
	return UnexpectedToken
}
