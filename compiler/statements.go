package compiler

// ---------------------------------------------------------------------------
// Statement parsing
// ---------------------------------------------------------------------------

// parseStatementsBlock parses `{ ... }`. On a malformed statement the
// parser recovers at the next `;` or `}` and keeps going, so one bad
// statement does not lose the rest of the block.
func (p *Parser) parseStatementsBlock() ([]Stmt, bool) {
	if !p.expect(TokenOpenBrace, "statements block") {
		return nil, false
	}

	saved := p.noStructLiteral
	p.noStructLiteral = false
	defer func() { p.noStructLiteral = saved }()

	statements := []Stmt{}
	for p.curTok.Kind != TokenCloseBrace && p.curTok.Kind != TokenEOF {
		statement, ok := p.parseStatement()
		if !ok {
			p.recoverToStatement()
			continue
		}
		statements = append(statements, statement)
	}
	if !p.expect(TokenCloseBrace, "statements block") {
		return nil, false
	}

	return statements, true
}

// recoverToStatement skips past the next `;`, stopping early at `}`.
func (p *Parser) recoverToStatement() {
	for {
		switch p.curTok.Kind {
		case TokenEOF, TokenCloseBrace:
			return
		case TokenSemicolon:
			p.advance()
			return
		}
		p.advance()
	}
}

func (p *Parser) parseStatement() (Stmt, bool) {
	switch p.curTok.Kind {
	case TokenDefer:
		p.advance()
		call, ok := p.parseExpression(precLowest)
		if !ok {
			return nil, false
		}
		if !p.expect(TokenSemicolon, "defer statement") {
			return nil, false
		}
		return DeferStatement{Call: call}, true

	case TokenBreak:
		span := p.curTok.Span
		p.advance()
		if !p.expect(TokenSemicolon, "break statement") {
			return nil, false
		}
		return BreakStatement{SpanVal: span}, true

	case TokenContinue:
		span := p.curTok.Span
		p.advance()
		if !p.expect(TokenSemicolon, "continue statement") {
			return nil, false
		}
		return ContinueStatement{SpanVal: span}, true

	case TokenReturn:
		p.advance()
		expression, ok := p.parseExpression(precLowest)
		if !ok {
			return nil, false
		}
		if !p.expect(TokenSemicolon, "return statement") {
			return nil, false
		}
		return ReturnStatement{Expression: expression}, true

	case TokenLet:
		return p.parseLetStatement()
	}

	expression, ok := p.parseExpression(precLowest)
	if !ok {
		return nil, false
	}

	hasSemicolon := false
	if p.curTok.Kind == TokenSemicolon {
		hasSemicolon = true
		p.advance()
	} else if !withBlock(expression) && p.curTok.Kind != TokenCloseBrace {
		// A non-block expression may omit the semicolon only as the
		// block's tail expression.
		p.errUnexpected("expression statement", "`;`")
		return nil, false
	}

	return ExpressionStatement{
		Expression:   expression,
		HasSemicolon: hasSemicolon,
	}, true
}

func (p *Parser) parseLetStatement() (Stmt, bool) {
	p.advance() // `let`

	pattern, ok := p.parsePattern()
	if !ok {
		return nil, false
	}

	var ty TypeNode
	if p.curTok.Kind == TokenColon {
		p.advance()
		ty, ok = p.parseType()
		if !ok {
			return nil, false
		}
	}

	if !p.expect(TokenAssign, "let statement") {
		return nil, false
	}

	value, ok := p.parseExpression(precLowest)
	if !ok {
		return nil, false
	}
	if !p.expect(TokenSemicolon, "let statement") {
		return nil, false
	}

	return LetStatement{Pattern: pattern, Value: value, Ty: ty}, true
}
