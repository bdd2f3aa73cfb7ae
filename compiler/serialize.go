package compiler

import (
	"fmt"
	"strconv"
	"strings"
)

// ---------------------------------------------------------------------------
// Serializer: renders an AST as a stable, human readable tree
// ---------------------------------------------------------------------------

// Serializer turns a Module into a deterministic textual tree, used by the
// `parse` command and by tests. The output depends only on the AST and the
// interner contents.
type Serializer struct {
	interner *Interner
	indent   int
	sb       strings.Builder
}

// NewSerializer creates a serializer resolving symbols through interner.
func NewSerializer(interner *Interner) *Serializer {
	return &Serializer{interner: interner}
}

// SerializeAST serializes a whole module.
func SerializeAST(module *Module, interner *Interner) string {
	s := NewSerializer(interner)
	s.serializeModule(module)
	return s.Output()
}

// Output returns the text produced so far.
func (s *Serializer) Output() string {
	return s.sb.String()
}

func (s *Serializer) write(text string) {
	s.sb.WriteString(text)
}

func (s *Serializer) newline() {
	s.sb.WriteByte('\n')
}

func (s *Serializer) writeIndent() {
	for i := 0; i < s.indent; i++ {
		s.sb.WriteByte('\t')
	}
}

func (s *Serializer) spanText(span Span) string {
	if span.IsDummy() {
		return "DUMMY"
	}
	if span.Start >= span.End {
		return "INVALID"
	}
	return fmt.Sprintf("%d..%d", span.Start, span.End)
}

func (s *Serializer) nodeName(name string) {
	s.write(name)
}

func (s *Serializer) nodeNameWithSpan(name string, span Span) {
	s.write(name)
	s.write("@")
	s.write(s.spanText(span))
}

// keyValue writes `KEY: ` on a fresh indented line and lets value render
// itself.
func (s *Serializer) keyValue(key string, value func()) {
	s.newline()
	s.writeIndent()
	s.write(key)
	s.write(": ")
	value()
}

// list renders n items one per line, one level deeper, or the word EMPTY.
func (s *Serializer) list(n int, item func(int)) {
	if n == 0 {
		s.write("EMPTY")
		return
	}
	s.indent++
	for i := 0; i < n; i++ {
		s.newline()
		s.writeIndent()
		item(i)
	}
	s.indent--
}

func (s *Serializer) keyList(key string, n int, item func(int)) {
	s.newline()
	s.writeIndent()
	s.write(key)
	s.write(": ")
	s.list(n, item)
}

func (s *Serializer) boolText(v bool) string {
	if v {
		return "TRUE"
	}
	return "FALSE"
}

func (s *Serializer) resolve(sym Symbol) string {
	if name, ok := s.interner.Resolve(sym); ok {
		return name
	}
	return fmt.Sprintf("symbol#%d", sym)
}

func floatText(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ---------------------------------------------------------------------------
// Leaves
// ---------------------------------------------------------------------------

func (s *Serializer) serializeIdentifier(id IdentifierAst) {
	s.write("IDENTIFIER(`")
	s.write(s.resolve(id.Symbol))
	s.write("`)@")
	s.write(s.spanText(id.SpanVal))
}

func (s *Serializer) serializePath(path Path) {
	s.nodeNameWithSpan("PATH", path.SpanVal)
	s.indent++
	s.list(len(path.Identifiers), func(i int) {
		s.serializeIdentifier(path.Identifiers[i])
	})
	s.indent--
}

func (s *Serializer) serializeVisibility(v Visibility) {
	if v.PubSpan != nil {
		s.write("PUBLIC@")
		s.write(s.spanText(*v.PubSpan))
	} else {
		s.write("PRIVATE")
	}
}

// ---------------------------------------------------------------------------
// Types
// ---------------------------------------------------------------------------

func (s *Serializer) serializeType(ty TypeNode) {
	switch t := ty.(type) {
	case TypePath:
		s.serializeTypePath(t)
	case TupleType:
		s.nodeNameWithSpan("TUPLE_TYPE", t.SpanVal)
		s.indent++
		s.keyList("ELEMENT_TYPES", len(t.ElementTypes), func(i int) {
			s.serializeType(t.ElementTypes[i])
		})
		s.indent--
	case FunctionType:
		s.nodeNameWithSpan("FUNCTION_TYPE", t.SpanVal)
		s.indent++
		s.keyList("PARAMETER_TYPES", len(t.ParameterTypes), func(i int) {
			s.serializeType(t.ParameterTypes[i])
		})
		s.keyValue("RETURN_TYPE", func() { s.serializeType(t.ReturnType) })
		s.indent--
	case ParenthesizedType:
		s.nodeNameWithSpan("PARENTHESIZED_TYPE", t.SpanVal)
		s.indent++
		s.keyValue("TYPE", func() { s.serializeType(t.Inner) })
		s.indent--
	case TraitObjectType:
		s.nodeNameWithSpan("TRAIT_OBJECT_TYPE", t.SpanVal)
		s.indent++
		s.keyList("BOUNDS", len(t.Bounds), func(i int) {
			s.serializeTypePath(t.Bounds[i])
		})
		s.indent--
	case TypeWithQualifiedPath:
		s.nodeNameWithSpan("TYPE_WITH_QUALIFIED_PATH", t.SpanVal)
		s.indent++
		s.keyValue("LEFT", func() { s.serializeType(t.Left) })
		s.keyValue("RIGHT", func() { s.serializeTypePath(t.Right) })
		s.keyList("SEGMENTS", len(t.Segments), func(i int) {
			s.serializeTypePathSegment(t.Segments[i])
		})
		s.indent--
	}
}

func (s *Serializer) serializeTypePath(path TypePath) {
	s.nodeNameWithSpan("TYPE_PATH", path.SpanVal)
	s.indent++
	s.list(len(path.Segments), func(i int) {
		s.serializeTypePathSegment(path.Segments[i])
	})
	s.indent--
}

func (s *Serializer) serializeTypePathSegment(segment TypePathSegment) {
	s.nodeNameWithSpan("TYPE_PATH_SEGMENT", segment.SpanVal)
	s.indent++
	s.keyValue("PATH", func() { s.serializePath(segment.Path) })
	if segment.GenericArguments != nil {
		s.keyList("GENERIC_ARGUMENTS", len(segment.GenericArguments), func(i int) {
			s.serializeGenericArgument(segment.GenericArguments[i])
		})
	}
	s.indent--
}

func (s *Serializer) serializeGenericArgument(arg GenericArgument) {
	if arg.Name == nil {
		s.nodeNameWithSpan("GENERIC_ARGUMENT", arg.Ty.Span())
		s.indent++
		s.keyValue("TYPE", func() { s.serializeType(arg.Ty) })
		s.indent--
		return
	}

	span := MakeSpan(arg.Name.SpanVal.Start, arg.Ty.Span().End, 0)
	s.nodeNameWithSpan("NAMED_GENERIC_ARGUMENT", span)
	s.indent++
	s.keyValue("NAME", func() { s.serializeIdentifier(*arg.Name) })
	s.keyValue("VALUE", func() { s.serializeType(arg.Ty) })
	s.indent--
}

func (s *Serializer) serializeGenericParameter(param GenericParameter) {
	s.nodeName("GENERIC_PARAMETER")
	s.indent++
	s.keyValue("NAME", func() { s.serializeIdentifier(param.Name) })
	if param.Bounds != nil {
		s.keyList("BOUNDS", len(param.Bounds), func(i int) {
			s.serializeTypePath(param.Bounds[i])
		})
	}
	if param.Default != nil {
		s.keyValue("DEFAULT", func() { s.serializeType(param.Default) })
	}
	s.indent--
}

func (s *Serializer) serializeWhereClauseItem(item WhereClauseItem) {
	switch w := item.(type) {
	case WhereEq:
		s.nodeName("WHERE_CLAUSE_ITEM_EQ")
		s.indent++
		s.keyValue("LEFT", func() { s.serializeType(w.Left) })
		s.keyValue("RIGHT", func() { s.serializeType(w.Right) })
		s.indent--
	case WhereSatisfies:
		s.nodeName("WHERE_CLAUSE_ITEM_SATISFIES")
		s.indent++
		s.keyValue("TYPE", func() { s.serializeType(w.Ty) })
		s.keyList("BOUNDS", len(w.Bounds), func(i int) {
			s.serializeTypePath(w.Bounds[i])
		})
		s.indent--
	}
}

// ---------------------------------------------------------------------------
// Patterns
// ---------------------------------------------------------------------------

func (s *Serializer) serializePattern(pattern Pattern) {
	switch pat := pattern.(type) {
	case BoolLiteral, CharLiteral, StringLiteral, IntLiteral, FloatLiteral, ImaginaryLiteral:
		s.serializeLiteral(pattern.(Expr))
	case GroupedPattern:
		s.nodeNameWithSpan("GROUPED_PATTERN", pat.SpanVal)
		s.indent++
		s.keyValue("INNER_PATTERN", func() { s.serializePattern(pat.Inner) })
		s.indent--
	case IdentifierPattern:
		s.nodeNameWithSpan("IDENTIFIER_PATTERN", pat.SpanVal)
		s.indent++
		s.keyValue("IDENTIFIER", func() { s.serializeIdentifier(pat.Identifier) })
		if pat.Pattern != nil {
			s.keyValue("PATTERN", func() { s.serializePattern(pat.Pattern) })
		}
		s.indent--
	case ListPattern:
		s.nodeNameWithSpan("LIST_PATTERN", pat.SpanVal)
		s.indent++
		s.keyList("INNER_PATTERNS", len(pat.InnerPatterns), func(i int) {
			s.serializePattern(pat.InnerPatterns[i])
		})
		s.indent--
	case OrPattern:
		s.nodeNameWithSpan("OR_PATTERN", pat.SpanVal)
		s.indent++
		s.keyValue("LEFT", func() { s.serializePattern(pat.Left) })
		s.keyValue("RIGHT", func() { s.serializePattern(pat.Right) })
		s.indent--
	case PathPattern:
		s.nodeNameWithSpan("PATH_PATTERN", pat.SpanVal)
		s.indent++
		s.keyValue("PATH", func() { s.serializePath(pat.Path) })
		s.indent--
	case RestPattern:
		s.nodeNameWithSpan("REST_PATTERN", pat.SpanVal)
	case StructPattern:
		s.nodeNameWithSpan("STRUCT_PATTERN", pat.SpanVal)
		s.indent++
		s.keyValue("STRUCT_PATH", func() { s.serializePath(pat.Path) })
		s.keyList("FIELDS", len(pat.Fields), func(i int) {
			s.serializeStructFieldPattern(pat.Fields[i])
		})
		s.indent--
	case TuplePattern:
		s.nodeNameWithSpan("TUPLE_PATTERN", pat.SpanVal)
		s.indent++
		s.keyList("ELEMENTS", len(pat.Elements), func(i int) {
			s.serializePattern(pat.Elements[i])
		})
		s.indent--
	case TupleLikePattern:
		s.nodeNameWithSpan("TUPLE_PATTERN", pat.SpanVal)
		s.indent++
		s.keyValue("PATH", func() { s.serializePath(pat.Path) })
		s.keyList("INNER_PATTERNS", len(pat.InnerPatterns), func(i int) {
			s.serializePattern(pat.InnerPatterns[i])
		})
		s.indent--
	}
}

func (s *Serializer) serializeStructFieldPattern(field StructFieldPatternNode) {
	switch f := field.(type) {
	case RestFieldPattern:
		s.nodeNameWithSpan("REST_STRUCT_FIELD_PATTERN", f.SpanVal)
	case FieldPattern:
		s.nodeNameWithSpan("STRUCT_FIELD_PATTERN", f.SpanVal)
		s.indent++
		s.keyValue("FIELD_NAME", func() { s.serializeIdentifier(f.FieldName) })
		if f.ValuePattern != nil {
			s.keyValue("VALUE_PATTERN", func() { s.serializePattern(f.ValuePattern) })
		}
		s.indent--
	}
}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

func (s *Serializer) serializeLiteral(expr Expr) {
	switch lit := expr.(type) {
	case BoolLiteral:
		s.nodeNameWithSpan(fmt.Sprintf("BOOLEAN_LITERAL(%s)", s.boolText(lit.Value)), lit.SpanVal)
	case CharLiteral:
		s.nodeNameWithSpan(fmt.Sprintf("CHARACTER_LITERAL(`%c`)", lit.Value), lit.SpanVal)
	case FloatLiteral:
		s.nodeNameWithSpan(fmt.Sprintf("FLOAT_LITERAL(%s)", floatText(lit.Value)), lit.SpanVal)
	case ImaginaryLiteral:
		s.nodeNameWithSpan(fmt.Sprintf("IMAGINARY_LITERAL(%s)", floatText(lit.Value)), lit.SpanVal)
	case IntLiteral:
		s.nodeNameWithSpan(fmt.Sprintf("INTEGER_LITERAL(%d)", lit.Value), lit.SpanVal)
	case StringLiteral:
		s.nodeNameWithSpan(fmt.Sprintf("STRING_LITERAL(`%s`)", lit.Value), lit.SpanVal)
	}
}

func (s *Serializer) serializeExpression(expr Expr) {
	switch e := expr.(type) {
	case BoolLiteral, CharLiteral, StringLiteral, IntLiteral, FloatLiteral, ImaginaryLiteral:
		s.serializeLiteral(expr)
	case IdentifierAst:
		s.serializeIdentifier(e)
	case CastExpression:
		s.nodeNameWithSpan("CAST_EXPRESSION", e.SpanVal)
		s.indent++
		s.keyValue("LEFT", func() { s.serializeExpression(e.Left) })
		s.keyValue("RIGHT", func() { s.serializeType(e.Right) })
		s.indent--
	case BinaryExpression:
		s.nodeNameWithSpan("BINARY_EXPRESSION", e.SpanVal)
		s.indent++
		s.keyValue("LEFT", func() { s.serializeExpression(e.Left) })
		s.keyValue("OPERATOR", func() {
			s.nodeNameWithSpan(e.Operator.Kind.String(), e.Operator.Span)
		})
		s.keyValue("RIGHT", func() { s.serializeExpression(e.Right) })
		s.indent--
	case CallExpression:
		s.nodeNameWithSpan("CALL_EXPRESSION", e.SpanVal)
		s.indent++
		s.keyValue("LEFT", func() { s.serializeExpression(e.Left) })
		s.keyList("ARGUMENTS", len(e.Arguments), func(i int) {
			s.serializeExpression(e.Arguments[i])
		})
		s.indent--
	case LambdaExpression:
		s.nodeNameWithSpan("FUNCTION_EXPRESSION", e.SpanVal)
		s.indent++
		s.keyList("PARAMETERS", len(e.Parameters), func(i int) {
			s.serializeLambdaParameter(e.Parameters[i])
		})
		if e.ReturnType != nil {
			s.keyValue("RETURN_TYPE", func() { s.serializeType(e.ReturnType) })
		}
		s.keyList("STATEMENTS_BLOCK", len(e.Block), func(i int) {
			s.serializeStatement(e.Block[i])
		})
		s.indent--
	case GenericArgumentsExpression:
		s.nodeNameWithSpan("GENERIC_ARGUMENTS", e.SpanVal)
		s.indent++
		s.keyValue("LEFT", func() { s.serializeExpression(e.Left) })
		s.keyList("GENERIC_ARGUMENTS", len(e.GenericArguments), func(i int) {
			s.serializeGenericArgument(e.GenericArguments[i])
		})
		s.indent--
	case IfExpression:
		s.nodeNameWithSpan("IF_EXPRESSION", e.SpanVal)
		s.indent++
		s.keyList("IF_BLOCKS", len(e.IfBlocks), func(i int) {
			s.serializeIfBlock(e.IfBlocks[i])
		})
		if e.Else != nil {
			s.keyList("ELSE_BLOCK", len(e.Else), func(i int) {
				s.serializeStatement(e.Else[i])
			})
		}
		s.indent--
	case ListExpression:
		s.nodeNameWithSpan("LIST_EXPRESSION", e.SpanVal)
		s.indent++
		s.keyList("ELEMENTS", len(e.Elements), func(i int) {
			s.serializeExpression(e.Elements[i])
		})
		s.indent--
	case ParenthesizedExpression:
		s.nodeNameWithSpan("PARENTHESIZED_EXPRESSION", e.SpanVal)
		s.indent++
		s.keyValue("INNER", func() { s.serializeExpression(e.Inner) })
		s.indent--
	case PostfixExpression:
		s.nodeNameWithSpan("POSTFIX_EXPRESSION", e.SpanVal)
		s.indent++
		s.keyValue("LEFT", func() { s.serializeExpression(e.Inner) })
		s.keyValue("OPERATOR", func() {
			s.nodeNameWithSpan(e.Operator.Kind.String(), e.Operator.Span)
		})
		s.indent--
	case PrefixExpression:
		s.nodeNameWithSpan("PREFIX_EXPRESSION", e.SpanVal)
		s.indent++
		s.keyValue("OPERATOR", func() {
			s.nodeNameWithSpan(e.Operator.Kind.String(), e.Operator.Span)
		})
		s.keyValue("INNER", func() { s.serializeExpression(e.Inner) })
		s.indent--
	case FieldAccessExpression:
		s.nodeNameWithSpan("FIELD_ACCESS_EXPRESSION", e.SpanVal)
		s.indent++
		s.keyValue("LEFT", func() { s.serializeExpression(e.Left) })
		s.keyValue("RIGHT", func() { s.serializeIdentifier(e.Right) })
		s.indent--
	case BlockExpression:
		s.nodeNameWithSpan("BLOCK_EXPRESSION", e.SpanVal)
		s.indent++
		s.keyList("STATEMENTS_BLOCK", len(e.Block), func(i int) {
			s.serializeStatement(e.Block[i])
		})
		s.indent--
	case StructExpression:
		s.nodeNameWithSpan("STRUCT_EXPRESSION", e.SpanVal)
		s.indent++
		s.keyValue("LEFT", func() { s.serializeExpression(e.Left) })
		s.keyList("FIELDS", len(e.Fields), func(i int) {
			s.serializeStructExpressionItem(e.Fields[i])
		})
		s.indent--
	case TupleExpression:
		s.nodeNameWithSpan("TUPLE_EXPRESSION", e.SpanVal)
		s.indent++
		s.keyList("ELEMENTS", len(e.Elements), func(i int) {
			s.serializeExpression(e.Elements[i])
		})
		s.indent--
	case WhileExpression:
		s.nodeNameWithSpan("WHILE_EXPRESSION", e.SpanVal)
		s.indent++
		s.keyValue("CONDITION", func() { s.serializeExpression(e.Condition) })
		s.keyList("BODY_STATEMENTS_BLOCK", len(e.Body), func(i int) {
			s.serializeStatement(e.Body[i])
		})
		s.indent--
	case MatchExpression:
		s.nodeNameWithSpan("MATCH_EXPRESSION", e.SpanVal)
		s.indent++
		s.keyValue("EXPRESSION", func() { s.serializeExpression(e.Expression) })
		s.keyList("BLOCK", len(e.Block), func(i int) {
			s.serializeMatchExpressionItem(e.Block[i])
		})
		s.indent--
	}
}

func (s *Serializer) serializeIfBlock(block IfBlock) {
	s.nodeName("ELSE_IF_NODE")
	s.indent++
	s.keyValue("CONDITION", func() { s.serializeExpression(block.Condition) })
	s.keyList("STATEMENTS_BLOCK", len(block.Block), func(i int) {
		s.serializeStatement(block.Block[i])
	})
	s.indent--
}

func (s *Serializer) serializeLambdaParameter(param LambdaParameter) {
	s.nodeName("FUNCTION_PARAMETER")
	s.indent++
	s.keyValue("NAME", func() { s.serializeIdentifier(param.Name) })
	if param.Ty != nil {
		s.keyValue("TYPE", func() { s.serializeType(param.Ty) })
	}
	s.indent--
}

func (s *Serializer) serializeStructExpressionItem(item StructExpressionItem) {
	s.nodeName("STRUCT_EXPRESSION_ITEM")
	s.indent++
	s.keyValue("FIELD_NAME", func() { s.serializeIdentifier(item.Name) })
	if item.Value != nil {
		s.keyValue("VALUE", func() { s.serializeExpression(item.Value) })
	}
	s.indent--
}

func (s *Serializer) serializeMatchExpressionItem(item MatchExpressionItem) {
	s.nodeName("MATCH_EXPRESSION_ITEM")
	s.indent++
	s.keyValue("PATTERN", func() { s.serializePattern(item.Left) })
	s.keyValue("EXPRESSION", func() { s.serializeExpression(item.Right) })
	s.indent--
}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

func (s *Serializer) serializeStatement(stmt Stmt) {
	switch st := stmt.(type) {
	case BreakStatement:
		s.nodeNameWithSpan("BREAK_STATEMENT", st.SpanVal)
	case ContinueStatement:
		s.nodeNameWithSpan("CONTINUE_STATEMENT", st.SpanVal)
	case ReturnStatement:
		s.nodeName("RETURN_STATEMENT")
		s.indent++
		s.keyValue("EXPRESSION", func() { s.serializeExpression(st.Expression) })
		s.indent--
	case DeferStatement:
		s.nodeName("DEFER_STATEMENT")
		s.indent++
		s.keyValue("CALL", func() { s.serializeExpression(st.Call) })
		s.indent--
	case ExpressionStatement:
		s.nodeName("EXPRESSION_STATEMENT")
		s.indent++
		s.keyValue("EXPRESSION", func() { s.serializeExpression(st.Expression) })
		s.keyValue("HAS_SEMICOLON", func() { s.write(s.boolText(st.HasSemicolon)) })
		s.indent--
	case LetStatement:
		s.nodeName("LET_STATEMENT")
		s.indent++
		s.keyValue("PATTERN", func() { s.serializePattern(st.Pattern) })
		s.keyValue("VALUE", func() { s.serializeExpression(st.Value) })
		if st.Ty != nil {
			s.keyValue("TYPE", func() { s.serializeType(st.Ty) })
		}
		s.indent--
	}
}

// ---------------------------------------------------------------------------
// Items
// ---------------------------------------------------------------------------

func (s *Serializer) serializeFunction(fn Function) {
	s.nodeName("FUNCTION")
	s.indent++
	s.keyValue("VISIBILITY", func() { s.serializeVisibility(fn.Visibility) })
	s.keyValue("NAME", func() { s.serializeIdentifier(fn.Name) })

	if fn.GenericParameters != nil {
		s.keyList("GENERIC_PARAMETERS", len(fn.GenericParameters), func(i int) {
			s.serializeGenericParameter(fn.GenericParameters[i])
		})
	}

	s.keyList("PARAMETERS", len(fn.Parameters), func(i int) {
		s.serializeFunctionParameter(fn.Parameters[i])
	})

	if fn.ReturnType != nil {
		s.keyValue("RETURN_TYPE", func() { s.serializeType(fn.ReturnType) })
	}
	if fn.WhereClause != nil {
		s.keyList("WHERE_CLAUSE", len(fn.WhereClause), func(i int) {
			s.serializeWhereClauseItem(fn.WhereClause[i])
		})
	}
	if fn.Body != nil {
		s.keyList("BODY", len(fn.Body), func(i int) {
			s.serializeStatement(fn.Body[i])
		})
	}
	s.indent--
}

func (s *Serializer) serializeFunctionParameter(param FunctionParameter) {
	switch pr := param.(type) {
	case NamedFunctionParameter:
		s.nodeName("FUNCTION_PARAMETER")
		s.indent++
		s.keyValue("NAME", func() { s.serializeIdentifier(pr.Name) })
		s.keyValue("TYPE", func() { s.serializeType(pr.Ty) })
		if pr.DefaultValue != nil {
			s.keyValue("DEFAULT_VALUE", func() { s.serializeExpression(pr.DefaultValue) })
		}
		s.indent--
	case SelfParameter:
		s.nodeName("SELF_PARAMETER")
		s.indent++
		s.keyValue("SELF_SPAN", func() { s.write(s.spanText(pr.SelfSpan)) })
		if pr.Ty != nil {
			s.keyValue("TYPE", func() { s.serializeType(pr.Ty) })
		}
		s.indent--
	}
}

func (s *Serializer) serializeStructField(field StructField) {
	s.nodeName("STRUCT_FIELD")
	s.indent++
	s.keyValue("VISIBILITY", func() { s.serializeVisibility(field.Visibility) })
	s.keyValue("NAME", func() { s.serializeIdentifier(field.Name) })
	s.keyValue("TYPE", func() { s.serializeType(field.Ty) })
	s.indent--
}

func (s *Serializer) serializeTupleField(field TupleField) {
	s.nodeName("TUPLE_FIELD")
	s.indent++
	s.keyValue("VISIBILITY", func() { s.serializeVisibility(field.Visibility) })
	s.keyValue("TYPE", func() { s.serializeType(field.Ty) })
	s.indent--
}

func (s *Serializer) serializeEnumItem(item EnumItem) {
	switch it := item.(type) {
	case JustEnumItem:
		s.nodeName("EMPTY_ENUM_ITEM")
		s.indent++
		s.keyValue("ITEM_NAME", func() { s.serializeIdentifier(it.Name) })
		s.indent--
	case StructEnumItem:
		s.nodeName("STRUCT_ENUM_ITEM")
		s.indent++
		s.keyValue("NAME", func() { s.serializeIdentifier(it.Name) })
		s.keyList("FIELDS", len(it.Fields), func(i int) {
			s.serializeStructField(it.Fields[i])
		})
		s.indent--
	case TupleEnumItem:
		s.nodeName("TUPLE_ENUM_ITEM")
		s.indent++
		s.keyValue("NAME", func() { s.serializeIdentifier(it.Name) })
		s.keyList("FIELDS", len(it.Fields), func(i int) {
			s.serializeTupleField(it.Fields[i])
		})
		s.indent--
	}
}

func (s *Serializer) serializeTypeAlias(alias TypeAlias) {
	s.nodeName("TYPE_ALIAS")
	s.indent++
	s.keyValue("NAME", func() { s.serializeIdentifier(alias.Name) })
	if alias.GenericParameters != nil {
		s.keyList("GENERIC_PARAMETERS", len(alias.GenericParameters), func(i int) {
			s.serializeGenericParameter(alias.GenericParameters[i])
		})
	}
	if alias.Bounds != nil {
		s.keyList("BOUNDS", len(alias.Bounds), func(i int) {
			s.serializeTypePath(alias.Bounds[i])
		})
	}
	if alias.Value != nil {
		s.keyValue("VALUE", func() { s.serializeType(alias.Value) })
	}
	s.indent--
}

func (s *Serializer) serializeTraitItem(item TraitItem) {
	switch it := item.(type) {
	case Function:
		s.serializeFunction(it)
	case TypeAlias:
		s.serializeTypeAlias(it)
	}
}

func (s *Serializer) serializeImportPath(path ImportPath) {
	s.nodeName("IMPORT_PATH")
	s.indent++
	s.keyValue("PATH", func() { s.serializePath(path.Left) })
	if path.As != nil {
		s.keyValue("AS", func() { s.serializeIdentifier(*path.As) })
	}
	if path.StarSpan != nil {
		s.keyValue("STAR_SPAN", func() { s.write(s.spanText(*path.StarSpan)) })
	}
	s.indent--
}

func (s *Serializer) serializeItem(item Item) {
	switch it := item.(type) {
	case Enum:
		s.nodeName("ENUM")
		s.indent++
		s.keyValue("VISIBILITY", func() { s.serializeVisibility(it.Visibility) })
		s.keyValue("NAME", func() { s.serializeIdentifier(it.Name) })
		if it.GenericParameters != nil {
			s.keyList("GENERIC_PARAMETERS", len(it.GenericParameters), func(i int) {
				s.serializeGenericParameter(it.GenericParameters[i])
			})
		}
		if it.WhereClause != nil {
			s.keyList("WHERE_CLAUSE", len(it.WhereClause), func(i int) {
				s.serializeWhereClauseItem(it.WhereClause[i])
			})
		}
		s.keyList("ITEMS", len(it.Items), func(i int) {
			s.serializeEnumItem(it.Items[i])
		})
		s.indent--
	case Function:
		s.serializeFunction(it)
	case Impl:
		s.nodeName("IMPL")
		s.indent++
		if it.GenericParameters != nil {
			s.keyList("GENERIC_PARAMETERS", len(it.GenericParameters), func(i int) {
				s.serializeGenericParameter(it.GenericParameters[i])
			})
		}
		s.keyValue("TYPE", func() { s.serializeType(it.Ty) })
		if it.Trait != nil {
			s.keyValue("TRAIT", func() { s.serializeType(it.Trait) })
		}
		if it.WhereClause != nil {
			s.keyList("WHERE_CLAUSE", len(it.WhereClause), func(i int) {
				s.serializeWhereClauseItem(it.WhereClause[i])
			})
		}
		s.keyList("ITEMS", len(it.Items), func(i int) {
			s.serializeTraitItem(it.Items[i])
		})
		s.indent--
	case Struct:
		s.nodeName("STRUCT")
		s.indent++
		s.keyValue("VISIBILITY", func() { s.serializeVisibility(it.Visibility) })
		s.keyValue("NAME", func() { s.serializeIdentifier(it.Name) })
		if it.GenericParameters != nil {
			s.keyList("GENERIC_PARAMETERS", len(it.GenericParameters), func(i int) {
				s.serializeGenericParameter(it.GenericParameters[i])
			})
		}
		if it.WhereClause != nil {
			s.keyList("WHERE_CLAUSE", len(it.WhereClause), func(i int) {
				s.serializeWhereClauseItem(it.WhereClause[i])
			})
		}
		s.keyList("FIELDS", len(it.Fields), func(i int) {
			s.serializeStructField(it.Fields[i])
		})
		s.indent--
	case Trait:
		s.nodeName("TRAIT")
		s.indent++
		s.keyValue("VISIBILITY", func() { s.serializeVisibility(it.Visibility) })
		s.keyValue("NAME", func() { s.serializeIdentifier(it.Name) })
		if it.GenericParameters != nil {
			s.keyList("GENERIC_PARAMETERS", len(it.GenericParameters), func(i int) {
				s.serializeGenericParameter(it.GenericParameters[i])
			})
		}
		if it.WhereClause != nil {
			s.keyList("WHERE_CLAUSE", len(it.WhereClause), func(i int) {
				s.serializeWhereClauseItem(it.WhereClause[i])
			})
		}
		s.keyList("ITEMS", len(it.Items), func(i int) {
			s.serializeTraitItem(it.Items[i])
		})
		s.indent--
	case TupleLikeStruct:
		s.nodeName("TUPLE_LIKE_STRUCT")
		s.indent++
		s.keyValue("VISIBILITY", func() { s.serializeVisibility(it.Visibility) })
		s.keyValue("NAME", func() { s.serializeIdentifier(it.Name) })
		if it.GenericParameters != nil {
			s.keyList("GENERIC_PARAMETERS", len(it.GenericParameters), func(i int) {
				s.serializeGenericParameter(it.GenericParameters[i])
			})
		}
		if it.WhereClause != nil {
			s.keyList("WHERE_CLAUSE", len(it.WhereClause), func(i int) {
				s.serializeWhereClauseItem(it.WhereClause[i])
			})
		}
		s.keyList("FIELDS", len(it.Fields), func(i int) {
			s.serializeTupleField(it.Fields[i])
		})
		s.indent--
	case TypeAlias:
		s.serializeTypeAlias(it)
	case Import:
		s.nodeName("USE")
		s.indent++
		s.keyValue("VISIBILITY", func() { s.serializeVisibility(it.Visibility) })
		s.keyValue("IMPORT_PATH", func() { s.serializeImportPath(it.Path) })
		s.indent--
	}
}

func (s *Serializer) serializeModule(module *Module) {
	s.nodeName("MODULE")
	s.indent++
	s.keyValue("FILEPATH", func() { s.write(module.Filepath) })
	s.keyList("ITEMS", len(module.Items), func(i int) {
		s.serializeItem(module.Items[i])
	})
	s.indent--
}
