package luacst

// scanBlock parses statements into a Block node until it sees EoF or a
// token in terminators, leaving the terminator itself unconsumed for the
// caller to bump afterward; on EoF with a non-empty terminators set,
// scanBlock records NotClosedBlock against startTok (the keyword that
// opened this block) before giving up.
func (p *Parser) scanBlock(terminators []SyntaxKind, startTok Token) {
	p.b.StartNode(Block)
	for {
		t := p.current()
		if t.Kind == EoF {
			if len(terminators) > 0 {
				p.addDiag(NotClosedBlock, startTok.Start, startTok.End)
			}
			break
		}
		if containsKind(terminators, t.Kind) {
			break
		}
		posBefore := p.lexer.pos
		p.parseStatement()
		p.ensureProgress(posBefore)
	}
	p.b.FinishNode()
}

func containsKind(kinds []SyntaxKind, k SyntaxKind) bool {
	for _, want := range kinds {
		if want == k {
			return true
		}
	}
	return false
}

// bumpTerminator consumes kind if it's current, reporting whether it did.
// Used after scanBlock to close off a do/while/for/function body; when it
// returns false, scanBlock has already recorded NotClosedBlock, so no
// further diagnostic is needed here.
func (p *Parser) bumpTerminator(kind SyntaxKind) bool {
	if p.current().Kind == kind {
		p.bump()
		return true
	}
	return false
}

var endTerminator = []SyntaxKind{EndKeyword}

func (p *Parser) parseStatement() {
	t := p.current()
	switch t.Kind {
	case DoKeyword:
		p.parseDoBlock()
	case BreakKeyword:
		p.bump()
	case FunctionKeyword:
		p.parseFunctionStatement()
	case IfKeyword:
		p.parseIfChain()
	case WhileKeyword:
		p.parseWhileLoop()
	case RepeatKeyword:
		p.parseRepeatUntilLoop()
	case ForKeyword:
		p.parseForLoop()
	case LocalKeyword:
		p.parseLocal()
	case ReturnKeyword:
		p.parseReturnStatement()
	case Name, LeftBracket:
		p.parsePrefixExpressionStatement()
	default:
		p.b.StartNode(Statement)
		p.addDiag(diagForUnexpected(t.Kind), t.Start, t.End)
		p.lexer.NextToken()
		p.b.Token(Invalid, p.lexer.Slice(t))
		p.b.FinishNode()
	}
}

func (p *Parser) parseDoBlock() {
	p.b.StartNode(DoBlock)
	doTok := p.bump()
	p.scanBlock(endTerminator, doTok)
	p.bumpTerminator(EndKeyword)
	p.b.FinishNode()
}

func (p *Parser) parseWhileLoop() {
	p.b.StartNode(WhileLoop)
	whileTok := p.bump()
	p.b.StartNode(Condition)
	p.parseExpression()
	p.b.FinishNode()
	p.expect(DoKeyword, ExpectingDo)
	p.scanBlock(endTerminator, whileTok)
	p.bumpTerminator(EndKeyword)
	p.b.FinishNode()
}

func (p *Parser) parseRepeatUntilLoop() {
	p.b.StartNode(RepeatUntilLoop)
	repeatTok := p.bump()
	p.scanBlock([]SyntaxKind{UntilKeyword}, repeatTok)
	if p.bumpTerminator(UntilKeyword) {
		p.parseExpression()
	}
	p.b.FinishNode()
}

// parseForLoop disambiguates ForCountLoop (`for Name = ...`) from ForInLoop
// (`for NameList in ...`) by lookahead right after the first name. The
// checkpoint is taken before the ForKeyword itself so either wrapper ends
// up including it — symmetric with DoBlock/WhileLoop/RepeatUntilLoop, which
// all carry their own leading keyword.
func (p *Parser) parseForLoop() {
	cp := p.b.Checkpoint()
	forTok := p.bump()
	nameCp := p.b.Checkpoint()
	p.expect(Name, ExpectingName)

	if p.current().Kind == Assign {
		p.b.StartNodeAt(cp, ForCountLoop)
		p.bump()
		p.b.StartNode(ExpressionList)
		p.parseExpressionListInto()
		p.b.FinishNode()
		p.expect(DoKeyword, ExpectingDo)
		p.scanBlock(endTerminator, forTok)
		p.bumpTerminator(EndKeyword)
		p.b.FinishNode()
		return
	}

	for p.current().Kind == Comma {
		p.bump()
		p.expect(Name, ExpectingName)
	}
	p.b.StartNodeAt(nameCp, NameList)
	p.b.FinishNode()
	p.b.StartNodeAt(cp, ForInLoop)
	p.expect(InKeyword, ExpectingToken)
	p.b.StartNode(ExpressionList)
	p.parseExpressionListInto()
	p.b.FinishNode()
	p.expect(DoKeyword, ExpectingDo)
	p.scanBlock(endTerminator, forTok)
	p.bumpTerminator(EndKeyword)
	p.b.FinishNode()
}

// parseLocal handles both `local function Name(...) ... end` and
// `local NameList ('=' ExpressionList)?`. The checkpoint is taken before
// consuming "local" so the function-definition branch can retroactively
// wrap it into the same FunctionDefinition node the non-local form uses.
func (p *Parser) parseLocal() {
	cp := p.b.Checkpoint()
	p.bump() // local
	if p.current().Kind == FunctionKeyword {
		p.parseFunctionBody(cp, true)
		return
	}
	p.b.StartNodeAt(cp, LocalAssignStatement)
	p.b.StartNode(NameList)
	p.parseNameListInto()
	p.b.FinishNode()
	if p.current().Kind == Assign {
		p.bump()
		p.b.StartNode(ExpressionList)
		p.parseExpressionListInto()
		p.b.FinishNode()
	}
	p.b.FinishNode()
}

func (p *Parser) parseFunctionStatement() {
	cp := p.b.Checkpoint()
	p.parseFunctionBody(cp, false)
}

// parseFunctionBody parses `function`/`local function` through its name,
// parameter list and body, wrapping the whole thing (including any keywords
// already sitting in cp's frame — "local" or nothing) into
// FunctionDefinition. When "(" directly follows "function", the name is
// skipped and no diagnostic is recorded for its absence. If what follows
// "function" is neither a name nor "(", there's nothing recognizable to recover into a
// FunctionDefinition's shape at all, so the node is closed immediately
// without descending into name/parameter/body parsing.
func (p *Parser) parseFunctionBody(cp Checkpoint, isLocal bool) {
	p.b.StartNodeAt(cp, FunctionDefinition)
	funcTok := p.bump() // function
	t := p.current()
	if t.Kind != Name && t.Kind != LeftBracket {
		p.addDiag(InvalidFunction, funcTok.Start, t.End)
		p.b.FinishNode()
		return
	}
	if t.Kind == Name {
		p.b.StartNode(Identifier)
		p.scanFunctionNameSegment()
		for p.current().Kind == Dot {
			p.bump()
			p.scanFunctionNameSegment()
		}
		if !isLocal && p.current().Kind == Colon {
			p.bump()
			p.scanFunctionNameSegment()
		}
		p.b.FinishNode() // Identifier
	}
	p.parseParameterList()
	p.scanBlock(endTerminator, funcTok)
	p.bumpTerminator(EndKeyword)
	p.b.FinishNode() // FunctionDefinition
}

// scanFunctionNameSegment consumes one segment of a dotted/colon function
// identifier chain (o.m or o:m). A keyword sitting where a name is expected
// is still consumed as that segment's token, keeping the tree lossless, but
// is flagged InvalidName rather than the generic ExpectingName — the token
// is present, just the wrong kind of word, which is a more specific failure
// than a name being altogether absent.
func (p *Parser) scanFunctionNameSegment() {
	t := p.current()
	if t.Kind.IsKeyword() {
		p.addDiag(InvalidName, t.Start, t.End)
		p.bump()
		return
	}
	p.expect(Name, ExpectingName)
}

// parseFunctionDefinitionAnonymous parses an unnamed `function(...) ... end`
// used as an expression atom — no Identifier, method colon disallowed.
func (p *Parser) parseFunctionDefinitionAnonymous() {
	p.b.StartNode(FunctionDefinition)
	funcTok := p.bump()
	p.parseParameterList()
	p.scanBlock(endTerminator, funcTok)
	p.bumpTerminator(EndKeyword)
	p.b.FinishNode()
}

func (p *Parser) parseParameterList() {
	p.b.StartNode(ParameterList)
	p.expect(LeftBracket, ExpectingToken)
	missingComma := false
	for p.current().Kind != RightBracket && p.current().Kind != EoF {
		posBefore := p.lexer.pos
		if p.current().Kind == TripleDot {
			p.b.StartNode(ParameterVarArgs)
			p.bump()
			p.b.FinishNode()
		} else {
			p.b.StartNode(Parameter)
			p.expect(Name, ExpectingName)
			p.b.FinishNode()
		}
		p.ensureProgress(posBefore)
		if p.current().Kind == Comma {
			p.bump()
			continue
		}
		if p.current().Kind == Name {
			// Two parameters back to back with no separator: flag the
			// missing comma specifically rather than falling through to
			// the generic "expected )" below.
			t := p.current()
			p.addDiag(ExpectingCommaOrBracket, t.Start, t.Start)
			missingComma = true
		}
		break
	}
	if missingComma {
		if p.current().Kind == RightBracket {
			p.bump()
		}
	} else {
		p.expect(RightBracket, ExpectingClosingBracket)
	}
	p.b.FinishNode()
}

// parseIfChain parses the full if/elseif*/else?/end chain as one IfChain
// node, with each arm (IfBranch/ElseBranch) recording its own Condition and
// Block.
func (p *Parser) parseIfChain() {
	p.b.StartNode(IfChain)
	ifTok := p.current()
	p.parseIfBranch(IfKeyword)
	for p.current().Kind == ElseIfKeyword {
		p.parseIfBranch(ElseIfKeyword)
	}
	if p.current().Kind == ElseKeyword {
		p.b.StartNode(ElseBranch)
		p.bump()
		p.scanBlock(endTerminator, ifTok)
		p.b.FinishNode()
	}
	p.bumpTerminator(EndKeyword)
	p.b.FinishNode()
}

func (p *Parser) parseIfBranch(keyword SyntaxKind) {
	p.b.StartNode(IfBranch)
	tok := p.bump() // if/elseif
	p.b.StartNode(Condition)
	p.parseExpression()
	p.b.FinishNode()
	p.expect(ThenKeyword, ExpectingThen)
	p.scanBlock([]SyntaxKind{ElseIfKeyword, ElseKeyword, EndKeyword}, tok)
	p.b.FinishNode()
}

func (p *Parser) parseReturnStatement() {
	p.b.StartNode(ReturnStatement)
	p.bump()
	p.b.StartNode(ExpressionList)
	if canStartExpression(p.current().Kind) {
		p.parseExpressionListInto()
	}
	p.b.FinishNode()
	p.b.FinishNode()
}

func canStartExpression(k SyntaxKind) bool {
	switch k {
	case Number, String, NilKeyword, TrueKeyword, FalseKeyword, FunctionKeyword,
		LeftCurlyBracket, TripleDot, Name, LeftBracket,
		NotKeyword, Minus, Hash:
		return true
	default:
		return false
	}
}

// parsePrefixExpressionStatement parses a comma-separated list of
// assignable targets, optionally followed by `= ExpressionList`. A lone
// target that resolved to a function call (and isn't followed by `=`) is
// the bare function-call statement form; nothing further is wrapped
// around it.
func (p *Parser) parsePrefixExpressionStatement() {
	originCp := p.b.Checkpoint()
	varCp := p.b.Checkpoint()
	lastKind := p.scanPrefixExpressionAt(varCp)
	sawComma := false

	for p.current().Kind == Comma {
		sawComma = true
		if lastKind != prefixName && lastKind != prefixIdentifier {
			t := p.current()
			p.addDiag(ExpectingName, t.Start, t.Start)
		}
		p.bump()
		varCp = p.b.Checkpoint()
		t := p.current()
		if t.Kind == Name || t.Kind == LeftBracket {
			lastKind = p.scanPrefixExpressionAt(varCp)
		} else {
			p.addDiag(ExpectingName, t.Start, t.Start)
			lastKind = prefixNone
			break
		}
	}

	if p.current().Kind == Assign {
		p.b.StartNodeAt(originCp, VariableList)
		p.b.FinishNode()
		p.b.StartNodeAt(originCp, AssignStatement)
		p.bump()
		p.b.StartNode(ExpressionList)
		p.parseExpressionListInto()
		p.b.FinishNode()
		p.b.FinishNode()
		return
	}

	if sawComma {
		t := p.current()
		p.addDiag(ExpectingToken, t.Start, t.Start)
		p.b.StartNodeAt(originCp, VariableList)
		p.b.FinishNode()
	}
	// A single target with no trailing "=" is left as whatever
	// scanPrefixExpressionAt already produced (ordinarily a FunctionCall);
	// anything else is a no-op expression statement, which Lua itself
	// rejects but which we still leave as well-formed recovered tree.
}

func (p *Parser) parseNameListInto() {
	p.expect(Name, ExpectingName)
	for p.current().Kind == Comma {
		p.bump()
		p.expect(Name, ExpectingName)
	}
}

func (p *Parser) parseExpressionListInto() {
	for {
		posBefore := p.lexer.pos
		p.parseExpression()
		p.ensureProgress(posBefore)
		if p.current().Kind == Comma {
			p.bump()
			continue
		}
		break
	}
}
