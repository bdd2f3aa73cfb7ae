package compiler

import "strings"

// ---------------------------------------------------------------------------
// Parser: recursive descent parser for Ry with one token of lookahead
// ---------------------------------------------------------------------------

// Parser parses a single Ry source file into a Module. Errors are recorded
// in the diagnostics sink and the parser recovers at item and statement
// boundaries, so a Module is always produced.
type Parser struct {
	filepath string
	input    string
	fileID   uint32
	lexer    *Lexer
	interner *Interner
	diags    *Diagnostics

	curTok  Token
	peekTok Token
	prevEnd uint32 // end offset of the last consumed token

	// Struct literals are not allowed directly in if/while/match heads,
	// where `{` starts the block instead.
	noStructLiteral bool
}

// NewParser creates a parser for the given source.
func NewParser(filepath, input string, fileID uint32, interner *Interner, diags *Diagnostics) *Parser {
	p := &Parser{
		filepath: filepath,
		input:    input,
		fileID:   fileID,
		lexer:    NewLexer(input, fileID, interner),
		interner: interner,
		diags:    diags,
	}

	// Prime curTok and peekTok.
	p.advance()
	p.advance()
	p.prevEnd = 0
	return p
}

func (p *Parser) advance() {
	p.prevEnd = p.curTok.Span.End
	p.curTok = p.peekTok
	p.peekTok = p.lexer.NextNoComments()

	// Error tokens are reported once and skipped so the grammar above
	// never sees them.
	for p.curTok.Kind == TokenError {
		p.diags.ErrorWithCode(CodeLexError, p.curTok.Span, "%s", p.curTok.LexErr)
		p.curTok = p.peekTok
		p.peekTok = p.lexer.NextNoComments()
	}
}

// spanFrom builds a span from start to the end of the last consumed token.
func (p *Parser) spanFrom(start uint32) Span {
	return MakeSpan(start, p.prevEnd, p.fileID)
}

// sliceSpan returns the source text covered by span.
func (p *Parser) sliceSpan(span Span) string {
	if int(span.Start) >= len(p.input) || span.Start >= span.End {
		return ""
	}
	end := span.End
	if int(end) > len(p.input) {
		end = uint32(len(p.input))
	}
	return p.input[span.Start:end]
}

func (p *Parser) errUnexpected(node string, expected string) {
	p.diags.Error(p.curTok.Span, "expected %s in %s, got %s", expected, node, p.curTok.Kind)
}

// expect consumes the current token if it has the wanted kind. Otherwise it
// records a diagnostic and reports failure without consuming.
func (p *Parser) expect(kind TokenKind, node string) bool {
	if p.curTok.Kind != kind {
		p.errUnexpected(node, "`"+kind.String()+"`")
		return false
	}
	p.advance()
	return true
}

// consumeIdentifier consumes an identifier token, reporting an error when
// the current token is something else.
func (p *Parser) consumeIdentifier(node string) (IdentifierAst, bool) {
	if p.curTok.Kind != TokenIdentifier {
		p.errUnexpected(node, "identifier")
		return IdentifierAst{}, false
	}
	id := IdentifierAst{SpanVal: p.curTok.Span, Symbol: p.curTok.Symbol}
	p.advance()
	return id, true
}

// consumeDocstring collects consecutive item doc comments into one string,
// joined with newlines.
func (p *Parser) consumeDocstring() string {
	var lines []string
	for p.curTok.Kind == TokenItemDocComment {
		lines = append(lines, p.curTok.Str)
		p.advance()
	}
	return strings.Join(lines, "\n")
}

// consumeModuleDocstring collects leading `//!` comments at the top of the
// file.
func (p *Parser) consumeModuleDocstring() string {
	var lines []string
	for p.curTok.Kind == TokenModuleDocComment {
		lines = append(lines, p.curTok.Str)
		p.advance()
	}
	return strings.Join(lines, "\n")
}

// ParseModule parses the whole file.
func (p *Parser) ParseModule() *Module {
	module := &Module{Filepath: p.filepath}
	module.Docstring = p.consumeModuleDocstring()

	docstring := p.consumeDocstring()
	for p.curTok.Kind != TokenEOF {
		item, ok := p.parseItem(docstring)
		if ok {
			module.Items = append(module.Items, item)
		} else {
			p.recoverToItem()
		}
		docstring = p.consumeDocstring()
	}

	return module
}

// recoverToItem skips tokens until something that can start an item. The
// caller has already reported and consumed the offending token, so a run of
// junk tokens yields one diagnostic, not one per token.
func (p *Parser) recoverToItem() {
	for {
		switch p.curTok.Kind {
		case TokenEOF, TokenPub, TokenFun, TokenStruct, TokenEnum,
			TokenTrait, TokenImpl, TokenImport, TokenType, TokenItemDocComment:
			return
		}
		p.advance()
	}
}

func (p *Parser) parseItem(docstring string) (Item, bool) {
	visibility := Private()
	if p.curTok.Kind == TokenPub {
		visibility = Public(p.curTok.Span)
		p.advance()
	}

	switch p.curTok.Kind {
	case TokenEnum:
		return p.parseEnum(visibility, docstring)
	case TokenImport:
		return p.parseImport(visibility)
	case TokenStruct:
		return p.parseStruct(visibility, docstring)
	case TokenTrait:
		return p.parseTrait(visibility, docstring)
	case TokenFun:
		fn, ok := p.parseFunction(visibility, docstring)
		if !ok {
			return nil, false
		}
		return fn, true
	case TokenImpl:
		return p.parseImpl(docstring)
	case TokenType:
		alias, ok := p.parseTypeAlias(visibility, docstring)
		if !ok {
			return nil, false
		}
		return alias, true
	}

	p.errUnexpected("item", "`import`, `fun`, `trait`, `enum`, `struct`, `impl` or `type`")
	p.advance()
	return nil, false
}

// parseImport parses `import path;`, `import path as name;` and
// `import path.*;`.
func (p *Parser) parseImport(visibility Visibility) (Item, bool) {
	p.advance() // `import`

	start := p.curTok.Span.Start
	first, ok := p.consumeIdentifier("import path")
	if !ok {
		return nil, false
	}
	identifiers := []IdentifierAst{first}

	var starSpan *Span
	for p.curTok.Kind == TokenDot {
		p.advance()

		if p.curTok.Kind == TokenStar {
			span := p.curTok.Span
			starSpan = &span
			p.advance()
			break
		}

		id, ok := p.consumeIdentifier("import path")
		if !ok {
			return nil, false
		}
		identifiers = append(identifiers, id)
	}

	path := Path{SpanVal: p.spanFrom(start), Identifiers: identifiers}

	var as *IdentifierAst
	if p.curTok.Kind == TokenAs {
		p.advance()
		id, ok := p.consumeIdentifier("import rename")
		if !ok {
			return nil, false
		}
		as = &id
	}

	if !p.expect(TokenSemicolon, "import") {
		return nil, false
	}

	return Import{
		Visibility: visibility,
		Path:       ImportPath{Left: path, As: as, StarSpan: starSpan},
	}, true
}

// parseFunction parses a function declaration. A body is optional: trait
// method signatures end with `;`.
func (p *Parser) parseFunction(visibility Visibility, docstring string) (Function, bool) {
	p.advance() // `fun`

	name, ok := p.consumeIdentifier("function name")
	if !ok {
		return Function{}, false
	}

	genericParameters, ok := p.parseOptionalGenericParameters()
	if !ok {
		return Function{}, false
	}

	if !p.expect(TokenOpenParen, "function declaration") {
		return Function{}, false
	}

	var parameters []FunctionParameter
	for p.curTok.Kind != TokenCloseParen && p.curTok.Kind != TokenEOF {
		param, ok := p.parseFunctionParameter()
		if !ok {
			return Function{}, false
		}
		parameters = append(parameters, param)

		if p.curTok.Kind != TokenCloseParen {
			if !p.expect(TokenComma, "function parameters") {
				return Function{}, false
			}
		}
	}
	if !p.expect(TokenCloseParen, "function declaration") {
		return Function{}, false
	}

	var returnType TypeNode
	if p.curTok.Kind == TokenColon {
		p.advance()
		returnType, ok = p.parseType()
		if !ok {
			return Function{}, false
		}
	}

	whereClause, ok := p.parseOptionalWhereClause()
	if !ok {
		return Function{}, false
	}

	var body []Stmt
	if p.curTok.Kind == TokenSemicolon {
		p.advance()
	} else {
		body, ok = p.parseStatementsBlock()
		if !ok {
			return Function{}, false
		}
		if body == nil {
			body = []Stmt{}
		}
	}

	return Function{
		Visibility:        visibility,
		Name:              name,
		GenericParameters: genericParameters,
		Parameters:        parameters,
		ReturnType:        returnType,
		WhereClause:       whereClause,
		Body:              body,
		Docstring:         docstring,
	}, true
}

func (p *Parser) parseFunctionParameter() (FunctionParameter, bool) {
	// The `self` receiver lexes as a plain identifier.
	if p.curTok.Kind == TokenIdentifier && p.sliceSpan(p.curTok.Span) == "self" {
		selfSpan := p.curTok.Span
		p.advance()

		var ty TypeNode
		if p.curTok.Kind == TokenColon {
			p.advance()
			parsed, ok := p.parseType()
			if !ok {
				return nil, false
			}
			ty = parsed
		}
		return SelfParameter{SelfSpan: selfSpan, Ty: ty}, true
	}

	name, ok := p.consumeIdentifier("function parameter name")
	if !ok {
		return nil, false
	}
	if !p.expect(TokenColon, "function parameter") {
		return nil, false
	}
	ty, ok := p.parseType()
	if !ok {
		return nil, false
	}

	var defaultValue Expr
	if p.curTok.Kind == TokenAssign {
		p.advance()
		defaultValue, ok = p.parseExpression(precLowest)
		if !ok {
			return nil, false
		}
	}

	return NamedFunctionParameter{Name: name, Ty: ty, DefaultValue: defaultValue}, true
}

// parseStruct parses both `struct Name { fields }` and the tuple-like form
// `struct Name(T1, T2);`.
func (p *Parser) parseStruct(visibility Visibility, docstring string) (Item, bool) {
	p.advance() // `struct`

	name, ok := p.consumeIdentifier("struct name")
	if !ok {
		return nil, false
	}

	genericParameters, ok := p.parseOptionalGenericParameters()
	if !ok {
		return nil, false
	}

	whereClause, ok := p.parseOptionalWhereClause()
	if !ok {
		return nil, false
	}

	if p.curTok.Kind == TokenOpenParen {
		p.advance()

		fields := []TupleField{}
		for p.curTok.Kind != TokenCloseParen && p.curTok.Kind != TokenEOF {
			field, ok := p.parseTupleField()
			if !ok {
				return nil, false
			}
			fields = append(fields, field)

			if p.curTok.Kind != TokenCloseParen {
				if !p.expect(TokenComma, "tuple-like struct fields") {
					return nil, false
				}
			}
		}
		if !p.expect(TokenCloseParen, "tuple-like struct") {
			return nil, false
		}
		if !p.expect(TokenSemicolon, "tuple-like struct") {
			return nil, false
		}

		return TupleLikeStruct{
			Visibility:        visibility,
			Name:              name,
			GenericParameters: genericParameters,
			WhereClause:       whereClause,
			Fields:            fields,
			Docstring:         docstring,
		}, true
	}

	if !p.expect(TokenOpenBrace, "struct declaration") {
		return nil, false
	}

	fields := []StructField{}
	for p.curTok.Kind != TokenCloseBrace && p.curTok.Kind != TokenEOF {
		field, ok := p.parseStructField()
		if !ok {
			return nil, false
		}
		fields = append(fields, field)

		if p.curTok.Kind != TokenCloseBrace {
			if !p.expect(TokenComma, "struct fields") {
				return nil, false
			}
		}
	}
	if !p.expect(TokenCloseBrace, "struct declaration") {
		return nil, false
	}

	return Struct{
		Visibility:        visibility,
		Name:              name,
		GenericParameters: genericParameters,
		WhereClause:       whereClause,
		Fields:            fields,
		Docstring:         docstring,
	}, true
}

func (p *Parser) parseStructField() (StructField, bool) {
	docstring := p.consumeDocstring()

	visibility := Private()
	if p.curTok.Kind == TokenPub {
		visibility = Public(p.curTok.Span)
		p.advance()
	}

	name, ok := p.consumeIdentifier("struct field name")
	if !ok {
		return StructField{}, false
	}
	if !p.expect(TokenColon, "struct field") {
		return StructField{}, false
	}
	ty, ok := p.parseType()
	if !ok {
		return StructField{}, false
	}

	return StructField{
		Visibility: visibility,
		Name:       name,
		Ty:         ty,
		Docstring:  docstring,
	}, true
}

func (p *Parser) parseTupleField() (TupleField, bool) {
	visibility := Private()
	if p.curTok.Kind == TokenPub {
		visibility = Public(p.curTok.Span)
		p.advance()
	}

	ty, ok := p.parseType()
	if !ok {
		return TupleField{}, false
	}
	return TupleField{Visibility: visibility, Ty: ty}, true
}

func (p *Parser) parseEnum(visibility Visibility, docstring string) (Item, bool) {
	p.advance() // `enum`

	name, ok := p.consumeIdentifier("enum name")
	if !ok {
		return nil, false
	}

	genericParameters, ok := p.parseOptionalGenericParameters()
	if !ok {
		return nil, false
	}

	whereClause, ok := p.parseOptionalWhereClause()
	if !ok {
		return nil, false
	}

	if !p.expect(TokenOpenBrace, "enum declaration") {
		return nil, false
	}

	items := []EnumItem{}
	for p.curTok.Kind != TokenCloseBrace && p.curTok.Kind != TokenEOF {
		item, ok := p.parseEnumItem()
		if !ok {
			return nil, false
		}
		items = append(items, item)

		if p.curTok.Kind != TokenCloseBrace {
			if !p.expect(TokenComma, "enum items") {
				return nil, false
			}
		}
	}
	if !p.expect(TokenCloseBrace, "enum declaration") {
		return nil, false
	}

	return Enum{
		Visibility:        visibility,
		Name:              name,
		GenericParameters: genericParameters,
		WhereClause:       whereClause,
		Items:             items,
		Docstring:         docstring,
	}, true
}

func (p *Parser) parseEnumItem() (EnumItem, bool) {
	docstring := p.consumeDocstring()

	name, ok := p.consumeIdentifier("enum item name")
	if !ok {
		return nil, false
	}

	switch p.curTok.Kind {
	case TokenOpenParen:
		p.advance()

		fields := []TupleField{}
		for p.curTok.Kind != TokenCloseParen && p.curTok.Kind != TokenEOF {
			field, ok := p.parseTupleField()
			if !ok {
				return nil, false
			}
			fields = append(fields, field)

			if p.curTok.Kind != TokenCloseParen {
				if !p.expect(TokenComma, "enum item fields") {
					return nil, false
				}
			}
		}
		if !p.expect(TokenCloseParen, "enum item") {
			return nil, false
		}

		return TupleEnumItem{Name: name, Fields: fields, Docstring: docstring}, true

	case TokenOpenBrace:
		p.advance()

		fields := []StructField{}
		for p.curTok.Kind != TokenCloseBrace && p.curTok.Kind != TokenEOF {
			field, ok := p.parseStructField()
			if !ok {
				return nil, false
			}
			fields = append(fields, field)

			if p.curTok.Kind != TokenCloseBrace {
				if !p.expect(TokenComma, "enum item fields") {
					return nil, false
				}
			}
		}
		if !p.expect(TokenCloseBrace, "enum item") {
			return nil, false
		}

		return StructEnumItem{Name: name, Fields: fields, Docstring: docstring}, true
	}

	return JustEnumItem{Name: name, Docstring: docstring}, true
}

func (p *Parser) parseTrait(visibility Visibility, docstring string) (Item, bool) {
	p.advance() // `trait`

	name, ok := p.consumeIdentifier("trait name")
	if !ok {
		return nil, false
	}

	genericParameters, ok := p.parseOptionalGenericParameters()
	if !ok {
		return nil, false
	}

	whereClause, ok := p.parseOptionalWhereClause()
	if !ok {
		return nil, false
	}

	items, ok := p.parseTraitItemsBlock()
	if !ok {
		return nil, false
	}

	return Trait{
		Visibility:        visibility,
		Name:              name,
		GenericParameters: genericParameters,
		WhereClause:       whereClause,
		Items:             items,
		Docstring:         docstring,
	}, true
}

func (p *Parser) parseImpl(docstring string) (Item, bool) {
	p.advance() // `impl`

	genericParameters, ok := p.parseOptionalGenericParameters()
	if !ok {
		return nil, false
	}

	first, ok := p.parseType()
	if !ok {
		return nil, false
	}

	// `impl Trait for Type`: the first type was actually the trait.
	var ty TypeNode = first
	var traitTy TypeNode
	if p.curTok.Kind == TokenFor {
		p.advance()
		traitTy = first
		ty, ok = p.parseType()
		if !ok {
			return nil, false
		}
	}

	whereClause, ok := p.parseOptionalWhereClause()
	if !ok {
		return nil, false
	}

	items, ok := p.parseTraitItemsBlock()
	if !ok {
		return nil, false
	}

	return Impl{
		GenericParameters: genericParameters,
		Ty:                ty,
		Trait:             traitTy,
		WhereClause:       whereClause,
		Items:             items,
		Docstring:         docstring,
	}, true
}

// parseTraitItemsBlock parses `{ fun ... ; type ... ; }` bodies shared by
// traits and impls.
func (p *Parser) parseTraitItemsBlock() ([]TraitItem, bool) {
	if !p.expect(TokenOpenBrace, "trait body") {
		return nil, false
	}

	items := []TraitItem{}
	for p.curTok.Kind != TokenCloseBrace && p.curTok.Kind != TokenEOF {
		docstring := p.consumeDocstring()

		visibility := Private()
		if p.curTok.Kind == TokenPub {
			visibility = Public(p.curTok.Span)
			p.advance()
		}

		switch p.curTok.Kind {
		case TokenFun:
			fn, ok := p.parseFunction(visibility, docstring)
			if !ok {
				return nil, false
			}
			items = append(items, fn)
		case TokenType:
			alias, ok := p.parseTypeAlias(visibility, docstring)
			if !ok {
				return nil, false
			}
			items = append(items, alias)
		default:
			p.errUnexpected("trait body", "`fun` or `type`")
			return nil, false
		}
	}
	if !p.expect(TokenCloseBrace, "trait body") {
		return nil, false
	}

	return items, true
}

// parseTypeAlias parses `type Name[params] = Type;`. Inside traits bounds
// may be given instead of a value: `type Item: Bound;`.
func (p *Parser) parseTypeAlias(visibility Visibility, docstring string) (TypeAlias, bool) {
	p.advance() // `type`

	name, ok := p.consumeIdentifier("type alias name")
	if !ok {
		return TypeAlias{}, false
	}

	genericParameters, ok := p.parseOptionalGenericParameters()
	if !ok {
		return TypeAlias{}, false
	}

	var bounds []TypePath
	if p.curTok.Kind == TokenColon {
		p.advance()
		bounds, ok = p.parseTypeBounds()
		if !ok {
			return TypeAlias{}, false
		}
	}

	var value TypeNode
	if p.curTok.Kind == TokenAssign {
		p.advance()
		value, ok = p.parseType()
		if !ok {
			return TypeAlias{}, false
		}
	}

	if !p.expect(TokenSemicolon, "type alias") {
		return TypeAlias{}, false
	}

	return TypeAlias{
		Visibility:        visibility,
		Name:              name,
		GenericParameters: genericParameters,
		Bounds:            bounds,
		Value:             value,
		Docstring:         docstring,
	}, true
}

// parsePath parses a `.`-separated identifier path.
func (p *Parser) parsePath(node string) (Path, bool) {
	start := p.curTok.Span.Start

	first, ok := p.consumeIdentifier(node)
	if !ok {
		return Path{}, false
	}
	identifiers := []IdentifierAst{first}

	for p.curTok.Kind == TokenDot && p.peekTok.Kind == TokenIdentifier {
		p.advance()
		id, _ := p.consumeIdentifier(node)
		identifiers = append(identifiers, id)
	}

	return Path{SpanVal: p.spanFrom(start), Identifiers: identifiers}, true
}
