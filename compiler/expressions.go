package compiler

import "strings"

// ---------------------------------------------------------------------------
// Expression parsing: precedence climbing with postfix forms
// ---------------------------------------------------------------------------

// curPrecedence returns the binding strength of the current token when it
// continues an expression.
func (p *Parser) curPrecedence() int {
	switch p.curTok.Kind {
	case TokenOpenParen, TokenDot, TokenOpenBracket:
		return precCallOrField
	case TokenOpenBrace:
		if p.noStructLiteral {
			return precLowest
		}
		return precCallOrField
	case TokenQuestion:
		return precUnary
	case TokenPlusPlus, TokenMinusMinus:
		return precUnary
	case TokenAs:
		return precCast
	}
	return binaryPrecedence(p.curTok.Kind)
}

func (p *Parser) parseExpression(precedence int) (Expr, bool) {
	left, ok := p.parsePrimaryExpression()
	if !ok {
		return nil, false
	}

	for precedence < p.curPrecedence() {
		start := left.Span().Start

		switch p.curTok.Kind {
		case TokenOpenParen:
			arguments, ok := p.parseCallArguments()
			if !ok {
				return nil, false
			}
			left = CallExpression{
				SpanVal:   p.spanFrom(start),
				Left:      left,
				Arguments: arguments,
			}

		case TokenDot:
			p.advance()
			name, ok := p.consumeIdentifier("field access")
			if !ok {
				return nil, false
			}
			left = FieldAccessExpression{
				SpanVal: p.spanFrom(start),
				Left:    left,
				Right:   name,
			}

		case TokenOpenBracket:
			arguments, ok := p.parseGenericArguments()
			if !ok {
				return nil, false
			}
			left = GenericArgumentsExpression{
				SpanVal:          p.spanFrom(start),
				Left:             left,
				GenericArguments: arguments,
			}

		case TokenOpenBrace:
			fields, ok := p.parseStructExpressionFields()
			if !ok {
				return nil, false
			}
			left = StructExpression{
				SpanVal: p.spanFrom(start),
				Left:    left,
				Fields:  fields,
			}

		case TokenQuestion, TokenPlusPlus, TokenMinusMinus:
			operator := PostfixOperator{Span: p.curTok.Span, Kind: p.curTok.Kind}
			p.advance()
			left = PostfixExpression{
				SpanVal:  p.spanFrom(start),
				Inner:    left,
				Operator: operator,
			}

		case TokenAs:
			p.advance()
			ty, ok := p.parseType()
			if !ok {
				return nil, false
			}
			left = CastExpression{
				SpanVal: p.spanFrom(start),
				Left:    left,
				Right:   ty,
			}

		default:
			operatorPrec := binaryPrecedence(p.curTok.Kind)
			operator := BinaryOperator{Span: p.curTok.Span, Kind: p.curTok.Kind}
			p.advance()

			right, ok := p.parseExpression(operatorPrec)
			if !ok {
				return nil, false
			}
			left = BinaryExpression{
				SpanVal:  p.spanFrom(start),
				Left:     left,
				Operator: operator,
				Right:    right,
			}
		}
	}

	return left, true
}

func (p *Parser) parsePrimaryExpression() (Expr, bool) {
	switch p.curTok.Kind {
	case TokenInteger:
		lit := IntLiteral{SpanVal: p.curTok.Span, Value: p.curTok.Int}
		p.advance()
		return lit, true
	case TokenFloat:
		lit := FloatLiteral{SpanVal: p.curTok.Span, Value: p.curTok.Float}
		p.advance()
		return lit, true
	case TokenImaginary:
		lit := ImaginaryLiteral{SpanVal: p.curTok.Span, Value: p.curTok.Float}
		p.advance()
		return lit, true
	case TokenString:
		lit := StringLiteral{SpanVal: p.curTok.Span, Value: p.curTok.Str}
		p.advance()
		return lit, true
	case TokenChar:
		lit := CharLiteral{SpanVal: p.curTok.Span, Value: p.curTok.Char}
		p.advance()
		return lit, true
	case TokenTrue:
		lit := BoolLiteral{SpanVal: p.curTok.Span, Value: true}
		p.advance()
		return lit, true
	case TokenFalse:
		lit := BoolLiteral{SpanVal: p.curTok.Span, Value: false}
		p.advance()
		return lit, true

	case TokenIdentifier:
		id := IdentifierAst{SpanVal: p.curTok.Span, Symbol: p.curTok.Symbol}
		p.advance()
		return id, true

	case TokenBang, TokenTilde, TokenPlusPlus, TokenMinusMinus, TokenMinus, TokenPlus:
		return p.parsePrefixExpression()

	case TokenOpenParen:
		return p.parseParenthesizedOrTupleExpression()

	case TokenOpenBracket:
		return p.parseListExpression()

	case TokenOpenBrace:
		return p.parseBlockExpression()

	case TokenIf:
		return p.parseIfExpression()

	case TokenWhile:
		return p.parseWhileExpression()

	case TokenMatch:
		return p.parseMatchExpression()

	case TokenBar, TokenOrOr:
		return p.parseLambdaExpression()
	}

	p.errUnexpected("expression", "expression")
	return nil, false
}

func (p *Parser) parsePrefixExpression() (Expr, bool) {
	start := p.curTok.Span.Start
	operator := PrefixOperator{Span: p.curTok.Span, Kind: p.curTok.Kind}
	p.advance()

	inner, ok := p.parseExpression(precUnary)
	if !ok {
		return nil, false
	}

	return PrefixExpression{
		SpanVal:  p.spanFrom(start),
		Inner:    inner,
		Operator: operator,
	}, true
}

// parseParenthesizedOrTupleExpression disambiguates `(e)`, `(e,)` and
// `(e1, e2)` the same way the type grammar does: a single element is a
// tuple only when the source carries a trailing comma.
func (p *Parser) parseParenthesizedOrTupleExpression() (Expr, bool) {
	start := p.curTok.Span.Start
	p.advance() // `(`

	saved := p.noStructLiteral
	p.noStructLiteral = false
	defer func() { p.noStructLiteral = saved }()

	elements := []Expr{}
	for p.curTok.Kind != TokenCloseParen && p.curTok.Kind != TokenEOF {
		element, ok := p.parseExpression(precLowest)
		if !ok {
			return nil, false
		}
		elements = append(elements, element)

		if p.curTok.Kind != TokenCloseParen {
			if !p.expect(TokenComma, "parenthesized or tuple expression") {
				return nil, false
			}
		}
	}
	if !p.expect(TokenCloseParen, "parenthesized or tuple expression") {
		return nil, false
	}

	span := p.spanFrom(start)

	switch len(elements) {
	case 0:
		return TupleExpression{SpanVal: span, Elements: elements}, true
	case 1:
		element := elements[0]
		trailing := p.sliceSpan(MakeSpan(element.Span().End, p.prevEnd, p.fileID))
		if strings.Contains(trailing, ",") {
			return TupleExpression{SpanVal: span, Elements: elements}, true
		}
		return ParenthesizedExpression{SpanVal: span, Inner: element}, true
	}
	return TupleExpression{SpanVal: span, Elements: elements}, true
}

func (p *Parser) parseListExpression() (Expr, bool) {
	start := p.curTok.Span.Start
	p.advance() // `[`

	saved := p.noStructLiteral
	p.noStructLiteral = false
	defer func() { p.noStructLiteral = saved }()

	elements := []Expr{}
	for p.curTok.Kind != TokenCloseBracket && p.curTok.Kind != TokenEOF {
		element, ok := p.parseExpression(precLowest)
		if !ok {
			return nil, false
		}
		elements = append(elements, element)

		if p.curTok.Kind != TokenCloseBracket {
			if !p.expect(TokenComma, "list expression") {
				return nil, false
			}
		}
	}
	if !p.expect(TokenCloseBracket, "list expression") {
		return nil, false
	}

	return ListExpression{SpanVal: p.spanFrom(start), Elements: elements}, true
}

func (p *Parser) parseBlockExpression() (Expr, bool) {
	start := p.curTok.Span.Start

	block, ok := p.parseStatementsBlock()
	if !ok {
		return nil, false
	}

	return BlockExpression{SpanVal: p.spanFrom(start), Block: block}, true
}

func (p *Parser) parseCallArguments() ([]Expr, bool) {
	p.advance() // `(`

	saved := p.noStructLiteral
	p.noStructLiteral = false
	defer func() { p.noStructLiteral = saved }()

	arguments := []Expr{}
	for p.curTok.Kind != TokenCloseParen && p.curTok.Kind != TokenEOF {
		argument, ok := p.parseExpression(precLowest)
		if !ok {
			return nil, false
		}
		arguments = append(arguments, argument)

		if p.curTok.Kind != TokenCloseParen {
			if !p.expect(TokenComma, "call arguments") {
				return nil, false
			}
		}
	}
	if !p.expect(TokenCloseParen, "call arguments") {
		return nil, false
	}

	return arguments, true
}

func (p *Parser) parseStructExpressionFields() ([]StructExpressionItem, bool) {
	p.advance() // `{`

	saved := p.noStructLiteral
	p.noStructLiteral = false
	defer func() { p.noStructLiteral = saved }()

	fields := []StructExpressionItem{}
	for p.curTok.Kind != TokenCloseBrace && p.curTok.Kind != TokenEOF {
		name, ok := p.consumeIdentifier("struct expression field")
		if !ok {
			return nil, false
		}

		item := StructExpressionItem{Name: name}
		if p.curTok.Kind == TokenColon {
			p.advance()
			item.Value, ok = p.parseExpression(precLowest)
			if !ok {
				return nil, false
			}
		}
		fields = append(fields, item)

		if p.curTok.Kind != TokenCloseBrace {
			if !p.expect(TokenComma, "struct expression") {
				return nil, false
			}
		}
	}
	if !p.expect(TokenCloseBrace, "struct expression") {
		return nil, false
	}

	return fields, true
}

// parseScrutinee parses an expression with struct literals disabled, for
// the heads of if, while and match.
func (p *Parser) parseScrutinee() (Expr, bool) {
	saved := p.noStructLiteral
	p.noStructLiteral = true
	expr, ok := p.parseExpression(precLowest)
	p.noStructLiteral = saved
	return expr, ok
}

func (p *Parser) parseIfExpression() (Expr, bool) {
	start := p.curTok.Span.Start
	p.advance() // `if`

	condition, ok := p.parseScrutinee()
	if !ok {
		return nil, false
	}
	block, ok := p.parseStatementsBlock()
	if !ok {
		return nil, false
	}

	ifBlocks := []IfBlock{{Condition: condition, Block: block}}
	var elseBlock []Stmt

	for p.curTok.Kind == TokenElse {
		p.advance()

		if p.curTok.Kind != TokenIf {
			elseBlock, ok = p.parseStatementsBlock()
			if !ok {
				return nil, false
			}
			if elseBlock == nil {
				elseBlock = []Stmt{}
			}
			break
		}
		p.advance() // `if`

		condition, ok := p.parseScrutinee()
		if !ok {
			return nil, false
		}
		block, ok := p.parseStatementsBlock()
		if !ok {
			return nil, false
		}
		ifBlocks = append(ifBlocks, IfBlock{Condition: condition, Block: block})
	}

	return IfExpression{
		SpanVal:  p.spanFrom(start),
		IfBlocks: ifBlocks,
		Else:     elseBlock,
	}, true
}

func (p *Parser) parseWhileExpression() (Expr, bool) {
	start := p.curTok.Span.Start
	p.advance() // `while`

	condition, ok := p.parseScrutinee()
	if !ok {
		return nil, false
	}
	body, ok := p.parseStatementsBlock()
	if !ok {
		return nil, false
	}

	return WhileExpression{
		SpanVal:   p.spanFrom(start),
		Condition: condition,
		Body:      body,
	}, true
}

func (p *Parser) parseMatchExpression() (Expr, bool) {
	start := p.curTok.Span.Start
	p.advance() // `match`

	expression, ok := p.parseScrutinee()
	if !ok {
		return nil, false
	}

	if !p.expect(TokenOpenBrace, "match expression") {
		return nil, false
	}

	block := []MatchExpressionItem{}
	for p.curTok.Kind != TokenCloseBrace && p.curTok.Kind != TokenEOF {
		pattern, ok := p.parsePattern()
		if !ok {
			return nil, false
		}
		if !p.expect(TokenFatArrow, "match expression item") {
			return nil, false
		}
		right, ok := p.parseExpression(precLowest)
		if !ok {
			return nil, false
		}
		block = append(block, MatchExpressionItem{Left: pattern, Right: right})

		if p.curTok.Kind == TokenComma {
			p.advance()
		}
	}
	if !p.expect(TokenCloseBrace, "match expression") {
		return nil, false
	}

	return MatchExpression{
		SpanVal:    p.spanFrom(start),
		Expression: expression,
		Block:      block,
	}, true
}

// parseLambdaExpression parses `|x: T, y|: R { ... }`. The empty parameter
// list `||` arrives as a single token.
func (p *Parser) parseLambdaExpression() (Expr, bool) {
	start := p.curTok.Span.Start

	parameters := []LambdaParameter{}
	if p.curTok.Kind == TokenOrOr {
		p.advance()
	} else {
		p.advance() // `|`

		for p.curTok.Kind != TokenBar && p.curTok.Kind != TokenEOF {
			name, ok := p.consumeIdentifier("lambda parameter name")
			if !ok {
				return nil, false
			}

			param := LambdaParameter{Name: name}
			if p.curTok.Kind == TokenColon {
				p.advance()
				param.Ty, ok = p.parseType()
				if !ok {
					return nil, false
				}
			}
			parameters = append(parameters, param)

			if p.curTok.Kind != TokenBar {
				if !p.expect(TokenComma, "lambda parameters") {
					return nil, false
				}
			}
		}
		if !p.expect(TokenBar, "lambda parameters") {
			return nil, false
		}
	}

	var returnType TypeNode
	if p.curTok.Kind == TokenColon {
		p.advance()
		var ok bool
		returnType, ok = p.parseType()
		if !ok {
			return nil, false
		}
	}

	block, ok := p.parseStatementsBlock()
	if !ok {
		return nil, false
	}
	if block == nil {
		block = []Stmt{}
	}

	return LambdaExpression{
		SpanVal:    p.spanFrom(start),
		Parameters: parameters,
		ReturnType: returnType,
		Block:      block,
	}, true
}
