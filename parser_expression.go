package luacst

// This file implements the nine-level expression grammar as a
// recursive-descent precedence climb, one function per level, from loosest
// (or) to tightest (call/index suffix). Each level function takes a
// checkpoint before parsing its operand so a matched operator can retroactively
// wrap [operand, operator, rhs] into a BinaryExpression — the same
// checkpoint/wrap discipline parser_statements.go uses for assignment
// targets, just applied once per precedence level instead of once per
// statement.
//
// Precedence, loosest to tightest: or, and, relational, .. (right-assoc),
// + -, * / %, unary not/-/#, ^ (right-assoc), atom+suffix. This matches real
// Lua's operator table (lparser.c), not just the spec's listed order: unary
// binds tighter than */ % but looser than ^, so `-2^2` is `-(2^2)` and
// `2^-2` is legal.
//
// or/and/relational/+-/*/% are left-associative: each loops, parsing its
// RHS at the next tighter level. ..and ^ are right-associative: each only
// ever wraps once per call, recursing into its own level for the RHS, which
// naturally nests right (`a..b..c` becomes `a..(b..c)`).

func (p *Parser) parseExpression() {
	p.parseLevelOr()
}

func (p *Parser) parseLevelOr() {
	cp := p.b.Checkpoint()
	p.parseLevelAnd()
	p.continueOr(cp)
}

func (p *Parser) continueOr(cp Checkpoint) {
	for p.current().Kind == OrKeyword {
		p.b.StartNodeAt(cp, BinaryExpression)
		p.bump()
		p.parseLevelAnd()
		p.b.FinishNode()
	}
}

func (p *Parser) parseLevelAnd() {
	cp := p.b.Checkpoint()
	p.parseLevelRelational()
	p.continueAnd(cp)
}

func (p *Parser) continueAnd(cp Checkpoint) {
	for p.current().Kind == AndKeyword {
		p.b.StartNodeAt(cp, BinaryExpression)
		p.bump()
		p.parseLevelRelational()
		p.b.FinishNode()
	}
}

func (p *Parser) parseLevelRelational() {
	cp := p.b.Checkpoint()
	p.parseLevelConcat()
	p.continueRelational(cp)
}

func (p *Parser) continueRelational(cp Checkpoint) {
	for isRelationalOp(p.current().Kind) {
		p.b.StartNodeAt(cp, BinaryExpression)
		p.bump()
		p.parseLevelConcat()
		p.b.FinishNode()
	}
}

func isRelationalOp(k SyntaxKind) bool {
	switch k {
	case LessThan, LessThanOrEquals, GreaterThan, GreaterThanOrEquals, EqualsBoolean, NotEqualsBoolean:
		return true
	default:
		return false
	}
}

func (p *Parser) parseLevelConcat() {
	cp := p.b.Checkpoint()
	p.parseLevelAdditive()
	p.continueConcat(cp)
}

// continueConcat wraps a single ".." (not a loop): right-associativity
// comes from recursing into parseLevelConcat for the RHS, which itself
// checks for a further "..".
func (p *Parser) continueConcat(cp Checkpoint) {
	if p.current().Kind == DoubleDot {
		p.b.StartNodeAt(cp, BinaryExpression)
		p.bump()
		p.parseLevelConcat()
		p.b.FinishNode()
	}
}

func (p *Parser) parseLevelAdditive() {
	cp := p.b.Checkpoint()
	p.parseLevelMultiplicative()
	p.continueAdditive(cp)
}

func (p *Parser) continueAdditive(cp Checkpoint) {
	for {
		k := p.current().Kind
		if k != Plus && k != Minus {
			return
		}
		p.b.StartNodeAt(cp, BinaryExpression)
		p.bump()
		p.parseLevelMultiplicative()
		p.b.FinishNode()
	}
}

func (p *Parser) parseLevelMultiplicative() {
	cp := p.b.Checkpoint()
	p.parseUnaryThenAtom()
	p.continueMultiplicative(cp)
}

// continueMultiplicative also catches a stray "#" in binary position: "#"
// is only ever legal as a unary prefix, so seeing it here (right after a
// complete operand, where "*"/"/"/"%" would otherwise be expected) is
// rejected with UnexpectedOperator and recovered as an Invalid leaf.
func (p *Parser) continueMultiplicative(cp Checkpoint) {
	for {
		k := p.current().Kind
		switch {
		case k == Asterisk || k == Slash || k == Modulo:
			p.b.StartNodeAt(cp, BinaryExpression)
			p.bump()
			p.parseUnaryThenAtom()
			p.b.FinishNode()
		case k == Hash:
			t := p.current()
			p.addDiag(UnexpectedOperator, t.Start, t.End)
			p.lexer.NextToken()
			p.b.Token(Invalid, p.lexer.Slice(t))
		default:
			return
		}
	}
}

func (p *Parser) parseUnaryThenAtom() {
	k := p.current().Kind
	if k == NotKeyword || k == Minus || k == Hash {
		p.b.StartNode(UnaryExpression)
		p.bump()
		p.parseUnaryThenAtom()
		p.b.FinishNode()
		return
	}
	p.parseLevelPower()
}

func (p *Parser) parseLevelPower() {
	cp := p.b.Checkpoint()
	p.parseAtomWithSuffix()
	p.continuePowerFromAtom(cp)
}

// continuePowerFromAtom wraps a single "^" (right-associative, like "..").
// The RHS re-enters at the unary level rather than straight back to atom,
// so `2^-2` parses: the exponent is allowed its own unary prefix.
func (p *Parser) continuePowerFromAtom(cp Checkpoint) {
	if p.current().Kind == Hat {
		p.b.StartNodeAt(cp, BinaryExpression)
		p.bump()
		p.parseUnaryThenAtom()
		p.b.FinishNode()
	}
}

// parseAtomWithSuffix is level 9: literals, nil/true/false, an anonymous
// function, a table constructor, "...", or a prefix expression (Name or a
// parenthesized expression, each possibly followed by a chain of
// "."/"["/":"/call suffixes).
func (p *Parser) parseAtomWithSuffix() {
	t := p.current()
	switch {
	case t.Kind == Number || t.Kind == String:
		p.b.StartNode(Literal)
		p.bump()
		p.b.FinishNode()
	case t.Kind == NilKeyword || t.Kind == TrueKeyword || t.Kind == FalseKeyword:
		p.b.StartNode(Literal)
		p.bump()
		p.b.FinishNode()
	case t.Kind == FunctionKeyword:
		p.parseFunctionDefinitionAnonymous()
	case t.Kind == LeftCurlyBracket:
		p.parseTableConstructor()
	case t.Kind == TripleDot:
		p.bump()
	case t.Kind == Name || t.Kind == LeftBracket:
		cp := p.b.Checkpoint()
		p.scanPrefixExpressionAt(cp)
	default:
		p.addDiag(ExpectingExpression, t.Start, t.Start)
		if t.Kind != EoF {
			p.lexer.NextToken()
			p.b.Token(Invalid, p.lexer.Slice(t))
		}
	}
}

// scanPrefixExpressionAt parses a Name or parenthesized GroupedExpression
// base at varCp, then hands off to prefixSuffixLoop to consume any
// trailing "."/"["/":"/call chain — factored so parser_statements.go's
// assignment-target parsing and the table-field lookahead in this file
// (resumeExpressionFromName) can drive the suffix loop starting from a base
// that's already sitting in the tree.
func (p *Parser) scanPrefixExpressionAt(varCp Checkpoint) prefixKind {
	t := p.current()
	switch {
	case t.Kind == Name:
		p.bump()
		return p.prefixSuffixLoop(varCp, prefixName)
	case t.Kind == LeftBracket:
		p.b.StartNode(GroupedExpression)
		p.bump()
		p.parseExpression()
		p.expect(RightBracket, ExpectingClosingBracket)
		p.b.FinishNode()
		return p.prefixSuffixLoop(varCp, prefixNested)
	default:
		p.addDiag(ExpectingExpression, t.Start, t.Start)
		return prefixNone
	}
}

// prefixSuffixLoop consumes zero or more "."/"["/":"/call suffixes,
// retroactively wrapping [everything since varCp] into Identifier (for
// "."/"[") or FunctionCall (for ":"/call args) after each one — so a chain
// like a.b.c nests as Identifier{Identifier{a . b} . c}, matching the
// grammar's own left recursion (prefixexp := prefixexp '.' Name | ...)
// instead of flattening it.
//
// A bare Name with no suffix at all still gets wrapped in a (childless-tail)
// Identifier node (`return x` produces Identifier{Name "x"}) — tracked by
// the suffixed flag below.
func (p *Parser) prefixSuffixLoop(varCp Checkpoint, kind prefixKind) prefixKind {
	suffixed := false
suffixLoop:
	for {
		t := p.current()
		switch t.Kind {
		case Dot:
			p.bump()
			p.expect(Name, ExpectingName)
			p.b.StartNodeAt(varCp, Identifier)
			p.b.FinishNode()
			kind = prefixIdentifier
			suffixed = true
		case LeftSquareBracket:
			p.bump()
			p.parseExpression()
			p.expect(RightSquareBracket, ExpectingClosingBracket)
			p.b.StartNodeAt(varCp, Identifier)
			p.b.FinishNode()
			kind = prefixIdentifier
			suffixed = true
		case Colon:
			p.bump()
			p.expect(Name, ExpectingName)
			p.parseCallArguments()
			p.b.StartNodeAt(varCp, FunctionCall)
			p.b.FinishNode()
			kind = prefixFunctionCall
			suffixed = true
		case LeftBracket, String, LeftCurlyBracket:
			p.parseCallArguments()
			p.b.StartNodeAt(varCp, FunctionCall)
			p.b.FinishNode()
			kind = prefixFunctionCall
			suffixed = true
		default:
			break suffixLoop
		}
	}
	if kind == prefixName && !suffixed {
		p.b.StartNodeAt(varCp, Identifier)
		p.b.FinishNode()
	}
	return kind
}

// parseCallArguments parses the ArgumentList that follows a call suffix:
// a parenthesized, comma-separated expression list, a single string
// literal, or a single table constructor. A call suffix with none of these
// (e.g. a bare ":method" with no following args) is a syntax error;
// ExpectingFunctionCall is recorded and no ArgumentList is emitted at all,
// leaving the enclosing FunctionCall wrap to cover just the head and the
// call-introducing tokens already consumed.
func (p *Parser) parseCallArguments() {
	t := p.current()
	switch t.Kind {
	case LeftBracket:
		p.b.StartNode(ArgumentList)
		p.bump()
		if p.current().Kind != RightBracket {
			p.parseExpressionListInto()
		}
		p.expect(RightBracket, ExpectingClosingBracket)
		p.b.FinishNode()
	case String:
		p.b.StartNode(ArgumentList)
		p.b.StartNode(Literal)
		p.bump()
		p.b.FinishNode()
		p.b.FinishNode()
	case LeftCurlyBracket:
		p.b.StartNode(ArgumentList)
		p.parseTableConstructor()
		p.b.FinishNode()
	default:
		p.addDiag(ExpectingFunctionCall, t.Start, t.Start)
	}
}

func (p *Parser) parseTableConstructor() {
	p.b.StartNode(TableConstructor)
	p.bump() // {
	missingComma := false
	for p.current().Kind != RightCurlyBracket && p.current().Kind != EoF {
		posBefore := p.lexer.pos
		p.parseField()
		p.ensureProgress(posBefore)
		if p.current().Kind == Comma || p.current().Kind == Semicolon {
			p.bump()
			continue
		}
		if p.current().Kind != RightCurlyBracket && p.current().Kind != EoF {
			// Another field started right where a separator was expected.
			t := p.current()
			p.addDiag(ExpectingComma, t.Start, t.Start)
			missingComma = true
		}
		break
	}
	if missingComma {
		if p.current().Kind == RightCurlyBracket {
			p.bump()
		}
	} else {
		p.expect(RightCurlyBracket, ExpectingClosingBracket)
	}
	p.b.FinishNode()
}

// parseField parses one TableConstructor entry: `[exp] = exp`,
// `Name = exp`, or a bare `exp`. Distinguishing the last two needs two
// tokens of lookahead: commit to consuming the Name, peek once more, and
// if it isn't "=" resume general expression parsing from that
// already-consumed Name instead of backtracking.
func (p *Parser) parseField() {
	p.b.StartNode(Field)
	t := p.current()
	switch {
	case t.Kind == LeftSquareBracket:
		p.bump()
		p.parseExpression()
		p.expect(RightSquareBracket, ExpectingClosingBracket)
		p.expect(Assign, ExpectingToken)
		p.parseExpression()
	case t.Kind == Name:
		cp := p.b.Checkpoint()
		p.bump()
		if p.current().Kind == Assign {
			p.bump()
			p.parseExpression()
		} else {
			p.resumeExpressionFromName(cp)
		}
	default:
		p.parseExpression()
	}
	p.b.FinishNode()
}

// resumeExpressionFromName finishes parsing a full expression whose first
// token (a bare Name) has already been consumed at cp: it runs the suffix
// loop to pick up any "."/"["/ call chain, then replays every binary-operator
// level from "^" up through "or" around the result. cp is reused across all
// of them — valid because, in the ordinary (non-resumed) flow, every one of
// these levels takes its checkpoint at the exact same position anyway,
// before any operand has been parsed.
func (p *Parser) resumeExpressionFromName(cp Checkpoint) {
	p.prefixSuffixLoop(cp, prefixName)
	p.continuePowerFromAtom(cp)
	p.continueMultiplicative(cp)
	p.continueAdditive(cp)
	p.continueConcat(cp)
	p.continueRelational(cp)
	p.continueAnd(cp)
	p.continueOr(cp)
}
