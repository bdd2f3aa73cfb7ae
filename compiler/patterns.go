package compiler

// ---------------------------------------------------------------------------
// Pattern parsing
// ---------------------------------------------------------------------------

// parsePattern parses a pattern, including `|` alternatives.
func (p *Parser) parsePattern() (Pattern, bool) {
	left, ok := p.parsePrimaryPattern()
	if !ok {
		return nil, false
	}

	for p.curTok.Kind == TokenBar {
		p.advance()

		right, ok := p.parsePrimaryPattern()
		if !ok {
			return nil, false
		}
		left = OrPattern{
			SpanVal: p.spanFrom(left.Span().Start),
			Left:    left,
			Right:   right,
		}
	}

	return left, true
}

func (p *Parser) parsePrimaryPattern() (Pattern, bool) {
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

	case TokenDotDot:
		pattern := RestPattern{SpanVal: p.curTok.Span}
		p.advance()
		return pattern, true

	case TokenIdentifier:
		return p.parsePathlikePattern()

	case TokenOpenParen:
		return p.parseGroupedOrTuplePattern()

	case TokenOpenBracket:
		return p.parseListPattern()
	}

	p.errUnexpected("pattern", "pattern")
	return nil, false
}

// parsePathlikePattern parses the patterns that start with an identifier:
// binding patterns `name @ pattern`, tuple-like patterns `Some(x)`, struct
// patterns `Person { .. }` and plain path patterns.
func (p *Parser) parsePathlikePattern() (Pattern, bool) {
	start := p.curTok.Span.Start

	path, ok := p.parsePath("pattern")
	if !ok {
		return nil, false
	}

	switch p.curTok.Kind {
	case TokenAt:
		if len(path.Identifiers) != 1 {
			p.errUnexpected("pattern", "`(`, `{` or end of pattern")
			return nil, false
		}
		p.advance()

		inner, ok := p.parsePattern()
		if !ok {
			return nil, false
		}
		return IdentifierPattern{
			SpanVal:    p.spanFrom(start),
			Identifier: path.Identifiers[0],
			Pattern:    inner,
		}, true

	case TokenOpenParen:
		p.advance()

		innerPatterns := []Pattern{}
		for p.curTok.Kind != TokenCloseParen && p.curTok.Kind != TokenEOF {
			inner, ok := p.parsePattern()
			if !ok {
				return nil, false
			}
			innerPatterns = append(innerPatterns, inner)

			if p.curTok.Kind != TokenCloseParen {
				if !p.expect(TokenComma, "tuple-like pattern") {
					return nil, false
				}
			}
		}
		if !p.expect(TokenCloseParen, "tuple-like pattern") {
			return nil, false
		}

		return TupleLikePattern{
			SpanVal:       p.spanFrom(start),
			Path:          path,
			InnerPatterns: innerPatterns,
		}, true

	case TokenOpenBrace:
		p.advance()

		fields := []StructFieldPatternNode{}
		for p.curTok.Kind != TokenCloseBrace && p.curTok.Kind != TokenEOF {
			field, ok := p.parseStructFieldPattern()
			if !ok {
				return nil, false
			}
			fields = append(fields, field)

			if p.curTok.Kind != TokenCloseBrace {
				if !p.expect(TokenComma, "struct pattern") {
					return nil, false
				}
			}
		}
		if !p.expect(TokenCloseBrace, "struct pattern") {
			return nil, false
		}

		return StructPattern{
			SpanVal: p.spanFrom(start),
			Path:    path,
			Fields:  fields,
		}, true
	}

	return PathPattern{SpanVal: p.spanFrom(start), Path: path}, true
}

func (p *Parser) parseStructFieldPattern() (StructFieldPatternNode, bool) {
	if p.curTok.Kind == TokenDotDot {
		field := RestFieldPattern{SpanVal: p.curTok.Span}
		p.advance()
		return field, true
	}

	start := p.curTok.Span.Start
	name, ok := p.consumeIdentifier("struct field pattern")
	if !ok {
		return nil, false
	}

	var valuePattern Pattern
	if p.curTok.Kind == TokenColon {
		p.advance()
		valuePattern, ok = p.parsePattern()
		if !ok {
			return nil, false
		}
	}

	return FieldPattern{
		SpanVal:      p.spanFrom(start),
		FieldName:    name,
		ValuePattern: valuePattern,
	}, true
}

// parseGroupedOrTuplePattern parses `(pattern)` and `(p1, p2, ...)`. A
// single pattern with a trailing comma is a one element tuple.
func (p *Parser) parseGroupedOrTuplePattern() (Pattern, bool) {
	start := p.curTok.Span.Start
	p.advance() // `(`

	sawComma := false
	elements := []Pattern{}
	for p.curTok.Kind != TokenCloseParen && p.curTok.Kind != TokenEOF {
		element, ok := p.parsePattern()
		if !ok {
			return nil, false
		}
		elements = append(elements, element)

		if p.curTok.Kind != TokenCloseParen {
			if !p.expect(TokenComma, "tuple pattern") {
				return nil, false
			}
			sawComma = true
		}
	}
	if !p.expect(TokenCloseParen, "tuple pattern") {
		return nil, false
	}

	span := p.spanFrom(start)
	if len(elements) == 1 && !sawComma {
		return GroupedPattern{SpanVal: span, Inner: elements[0]}, true
	}
	return TuplePattern{SpanVal: span, Elements: elements}, true
}

func (p *Parser) parseListPattern() (Pattern, bool) {
	start := p.curTok.Span.Start
	p.advance() // `[`

	innerPatterns := []Pattern{}
	for p.curTok.Kind != TokenCloseBracket && p.curTok.Kind != TokenEOF {
		inner, ok := p.parsePattern()
		if !ok {
			return nil, false
		}
		innerPatterns = append(innerPatterns, inner)

		if p.curTok.Kind != TokenCloseBracket {
			if !p.expect(TokenComma, "list pattern") {
				return nil, false
			}
		}
	}
	if !p.expect(TokenCloseBracket, "list pattern") {
		return nil, false
	}

	return ListPattern{
		SpanVal:       p.spanFrom(start),
		InnerPatterns: innerPatterns,
	}, true
}
