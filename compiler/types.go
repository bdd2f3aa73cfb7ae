package compiler

import "strings"

// ---------------------------------------------------------------------------
// Type annotation parsing
// ---------------------------------------------------------------------------

func (p *Parser) parseType() (TypeNode, bool) {
	switch p.curTok.Kind {
	case TokenOpenParen:
		return p.parseParenthesizedTupleOrFunctionType()
	case TokenIdentifier:
		path, ok := p.parseTypePath()
		if !ok {
			return nil, false
		}
		return path, true
	case TokenDyn:
		return p.parseTraitObjectType()
	case TokenOpenBracket:
		return p.parseTypeWithQualifiedPath()
	}

	p.errUnexpected("type", "identifier, `[`, `dyn` or `(`")
	return nil, false
}

func (p *Parser) parseTypePath() (TypePath, bool) {
	start := p.curTok.Span.Start

	segments := []TypePathSegment{}
	first, ok := p.parseTypePathSegment()
	if !ok {
		return TypePath{}, false
	}
	segments = append(segments, first)

	for p.curTok.Kind == TokenDot {
		p.advance()

		segment, ok := p.parseTypePathSegment()
		if !ok {
			return TypePath{}, false
		}
		segments = append(segments, segment)
	}

	return TypePath{SpanVal: p.spanFrom(start), Segments: segments}, true
}

func (p *Parser) parseTypePathSegment() (TypePathSegment, bool) {
	path, ok := p.parsePath("type path")
	if !ok {
		return TypePathSegment{}, false
	}

	genericArguments, ok := p.parseOptionalGenericArguments()
	if !ok {
		return TypePathSegment{}, false
	}

	return TypePathSegment{
		SpanVal:          p.spanFrom(path.SpanVal.Start),
		Path:             path,
		GenericArguments: genericArguments,
	}, true
}

// parseTraitObjectType parses `dyn Bound1 + Bound2`.
func (p *Parser) parseTraitObjectType() (TypeNode, bool) {
	start := p.curTok.Span.Start
	p.advance() // `dyn`

	bounds, ok := p.parseTypeBounds()
	if !ok {
		return nil, false
	}

	return TraitObjectType{SpanVal: p.spanFrom(start), Bounds: bounds}, true
}

// parseTypeBounds parses `Bound1 + Bound2 + ...`.
func (p *Parser) parseTypeBounds() ([]TypePath, bool) {
	bounds := []TypePath{}

	first, ok := p.parseTypePath()
	if !ok {
		return nil, false
	}
	bounds = append(bounds, first)

	for p.curTok.Kind == TokenPlus {
		p.advance()

		bound, ok := p.parseTypePath()
		if !ok {
			return nil, false
		}
		bounds = append(bounds, bound)
	}

	return bounds, true
}

// parseTypeWithQualifiedPath parses `[T as Trait].Segment.Segment`.
func (p *Parser) parseTypeWithQualifiedPath() (TypeNode, bool) {
	start := p.curTok.Span.Start
	p.advance() // `[`

	left, ok := p.parseType()
	if !ok {
		return nil, false
	}
	if !p.expect(TokenAs, "type with qualified path") {
		return nil, false
	}

	right, ok := p.parseTypePath()
	if !ok {
		return nil, false
	}

	if !p.expect(TokenCloseBracket, "type with qualified path") {
		return nil, false
	}
	if !p.expect(TokenDot, "type with qualified path") {
		return nil, false
	}

	segments := []TypePathSegment{}
	first, ok := p.parseTypePathSegment()
	if !ok {
		return nil, false
	}
	segments = append(segments, first)

	for p.curTok.Kind == TokenDot {
		p.advance()

		segment, ok := p.parseTypePathSegment()
		if !ok {
			return nil, false
		}
		segments = append(segments, segment)
	}

	return TypeWithQualifiedPath{
		SpanVal:  p.spanFrom(start),
		Left:     left,
		Right:    right,
		Segments: segments,
	}, true
}

// parseParenthesizedTupleOrFunctionType disambiguates `(T)`, `(T,)`,
// `(T1, T2)` and `(T1, T2): R`. A single element is a tuple only when a
// comma appears in the source between the element and the `)`.
func (p *Parser) parseParenthesizedTupleOrFunctionType() (TypeNode, bool) {
	start := p.curTok.Span.Start
	p.advance() // `(`

	elementTypes := []TypeNode{}
	for p.curTok.Kind != TokenCloseParen && p.curTok.Kind != TokenEOF {
		element, ok := p.parseType()
		if !ok {
			return nil, false
		}
		elementTypes = append(elementTypes, element)

		if p.curTok.Kind != TokenCloseParen {
			if !p.expect(TokenComma, "parenthesized or tuple type") {
				return nil, false
			}
		}
	}
	if !p.expect(TokenCloseParen, "parenthesized or tuple type") {
		return nil, false
	}

	if p.curTok.Kind == TokenColon {
		p.advance()

		returnType, ok := p.parseType()
		if !ok {
			return nil, false
		}

		return FunctionType{
			SpanVal:        p.spanFrom(start),
			ParameterTypes: elementTypes,
			ReturnType:     returnType,
		}, true
	}

	span := p.spanFrom(start)

	switch len(elementTypes) {
	case 0:
		return TupleType{SpanVal: span, ElementTypes: elementTypes}, true
	case 1:
		element := elementTypes[0]
		trailing := p.sliceSpan(MakeSpan(element.Span().End, p.prevEnd, p.fileID))
		if strings.Contains(trailing, ",") {
			return TupleType{SpanVal: span, ElementTypes: elementTypes}, true
		}
		return ParenthesizedType{SpanVal: span, Inner: element}, true
	}
	return TupleType{SpanVal: span, ElementTypes: elementTypes}, true
}

// ---------------------------------------------------------------------------
// Generic parameters, generic arguments, where clauses
// ---------------------------------------------------------------------------

// parseOptionalGenericParameters parses `[T, U: Bound, V = Default]` if the
// next token is `[`. The result is nil when there is no parameter list.
func (p *Parser) parseOptionalGenericParameters() ([]GenericParameter, bool) {
	if p.curTok.Kind != TokenOpenBracket {
		return nil, true
	}
	p.advance()

	parameters := []GenericParameter{}
	for p.curTok.Kind != TokenCloseBracket && p.curTok.Kind != TokenEOF {
		name, ok := p.consumeIdentifier("generic parameter name")
		if !ok {
			return nil, false
		}

		var bounds []TypePath
		if p.curTok.Kind == TokenColon {
			p.advance()
			bounds, ok = p.parseTypeBounds()
			if !ok {
				return nil, false
			}
		}

		var defaultValue TypeNode
		if p.curTok.Kind == TokenAssign {
			p.advance()
			defaultValue, ok = p.parseType()
			if !ok {
				return nil, false
			}
		}

		parameters = append(parameters, GenericParameter{
			Name:    name,
			Bounds:  bounds,
			Default: defaultValue,
		})

		if p.curTok.Kind != TokenCloseBracket {
			if !p.expect(TokenComma, "generic parameters") {
				return nil, false
			}
		}
	}
	if !p.expect(TokenCloseBracket, "generic parameters") {
		return nil, false
	}

	return parameters, true
}

// parseOptionalGenericArguments parses `[...]` if present; nil result means
// no argument list.
func (p *Parser) parseOptionalGenericArguments() ([]GenericArgument, bool) {
	if p.curTok.Kind != TokenOpenBracket {
		return nil, true
	}
	return p.parseGenericArguments()
}

// parseGenericArguments parses `[Type, Name = Type, ...]`. A type argument
// that is a bare single identifier followed by `=` is reinterpreted as an
// associated type binding.
func (p *Parser) parseGenericArguments() ([]GenericArgument, bool) {
	p.advance() // `[`

	arguments := []GenericArgument{}
	for p.curTok.Kind != TokenCloseBracket && p.curTok.Kind != TokenEOF {
		ty, ok := p.parseType()
		if !ok {
			return nil, false
		}

		arg := GenericArgument{Ty: ty}
		if p.curTok.Kind == TokenAssign {
			name, ok := bareTypeName(ty)
			if !ok {
				p.errUnexpected("generic arguments", "`,` or `]`")
				return nil, false
			}
			p.advance()

			value, ok := p.parseType()
			if !ok {
				return nil, false
			}
			arg = GenericArgument{Name: &name, Ty: value}
		}
		arguments = append(arguments, arg)

		if p.curTok.Kind != TokenCloseBracket {
			if !p.expect(TokenComma, "generic arguments") {
				return nil, false
			}
		}
	}
	if !p.expect(TokenCloseBracket, "generic arguments") {
		return nil, false
	}

	return arguments, true
}

// bareTypeName unwraps a type that is a single plain identifier.
func bareTypeName(ty TypeNode) (IdentifierAst, bool) {
	path, ok := ty.(TypePath)
	if !ok || len(path.Segments) != 1 {
		return IdentifierAst{}, false
	}
	segment := path.Segments[0]
	if segment.GenericArguments != nil || len(segment.Path.Identifiers) != 1 {
		return IdentifierAst{}, false
	}
	return segment.Path.Identifiers[0], true
}

// parseOptionalWhereClause parses `where T: Bound, U = Type` if present.
// The clause is terminated by `{` or `;`, neither of which is consumed.
func (p *Parser) parseOptionalWhereClause() ([]WhereClauseItem, bool) {
	if p.curTok.Kind != TokenWhere {
		return nil, true
	}
	p.advance()

	items := []WhereClauseItem{}
	for p.curTok.Kind != TokenOpenBrace && p.curTok.Kind != TokenSemicolon &&
		p.curTok.Kind != TokenEOF {
		left, ok := p.parseType()
		if !ok {
			return nil, false
		}

		switch p.curTok.Kind {
		case TokenColon:
			p.advance()
			bounds, ok := p.parseTypeBounds()
			if !ok {
				return nil, false
			}
			items = append(items, WhereSatisfies{Ty: left, Bounds: bounds})
		case TokenAssign:
			p.advance()
			right, ok := p.parseType()
			if !ok {
				return nil, false
			}
			items = append(items, WhereEq{Left: left, Right: right})
		default:
			p.errUnexpected("where clause", "`=` or `:`")
			return nil, false
		}

		if p.curTok.Kind != TokenOpenBrace && p.curTok.Kind != TokenSemicolon {
			if !p.expect(TokenComma, "where clause") {
				return nil, false
			}
		}
	}

	return items, true
}
