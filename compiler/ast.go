package compiler

// ---------------------------------------------------------------------------
// AST node definitions for Ry
// ---------------------------------------------------------------------------

// Expr is implemented by all expression nodes.
type Expr interface {
	Span() Span
	exprNode()
}

// Stmt is implemented by all statement nodes.
type Stmt interface {
	stmtNode()
}

// TypeNode is implemented by all type annotation nodes.
type TypeNode interface {
	Span() Span
	typeNode()
}

// Pattern is implemented by all pattern nodes. Literal nodes double as
// patterns, so they implement both Expr and Pattern.
type Pattern interface {
	Span() Span
	patternNode()
}

// Item is implemented by all top level items.
type Item interface {
	itemNode()
}

// TraitItem is implemented by items that may appear inside trait and impl
// bodies: associated functions and type aliases.
type TraitItem interface {
	traitItemNode()
}

// ---------------------------------------------------------------------------
// Identifiers and paths
// ---------------------------------------------------------------------------

// IdentifierAst is an interned identifier with its source span. It is also
// an expression node (a bare name).
type IdentifierAst struct {
	SpanVal Span
	Symbol  Symbol
}

func (i IdentifierAst) Span() Span { return i.SpanVal }
func (i IdentifierAst) exprNode()  {}

// Path is a sequence of identifiers separated by `.`, as in `std.io`.
type Path struct {
	SpanVal     Span
	Identifiers []IdentifierAst
}

func (p Path) Span() Span { return p.SpanVal }

// ImportPath is the operand of an import item: a path, an optional rename
// and an optional trailing `.*` glob.
type ImportPath struct {
	Left     Path
	As       *IdentifierAst
	StarSpan *Span
}

// TypePath names a type, possibly with generic arguments per segment, as in
// `Iterator[Item = uint32].Item`.
type TypePath struct {
	SpanVal  Span
	Segments []TypePathSegment
}

func (t TypePath) Span() Span { return t.SpanVal }
func (t TypePath) typeNode()  {}

// TypePathSegment is one segment of a type path. GenericArguments is nil
// when the segment has no argument list; a non-nil empty slice means `[]`.
type TypePathSegment struct {
	SpanVal          Span
	Path             Path
	GenericArguments []GenericArgument
}

func (t TypePathSegment) Span() Span { return t.SpanVal }

// GenericArgument is a single argument inside `[...]`. Name is nil for a
// plain type argument and set for an associated type binding `Name = Type`.
type GenericArgument struct {
	Name *IdentifierAst
	Ty   TypeNode
}

// GenericParameter is a declared generic parameter with optional bounds and
// an optional default type.
type GenericParameter struct {
	Name    IdentifierAst
	Bounds  []TypePath
	Default TypeNode
}

// WhereClauseItem is one constraint of a where clause.
type WhereClauseItem interface {
	whereClauseItemNode()
}

// WhereEq constrains two types to be equal: `where T.Item = uint32`.
type WhereEq struct {
	Left  TypeNode
	Right TypeNode
}

func (WhereEq) whereClauseItemNode() {}

// WhereSatisfies constrains a type by trait bounds: `where T: Into[String]`.
type WhereSatisfies struct {
	Ty     TypeNode
	Bounds []TypePath
}

func (WhereSatisfies) whereClauseItemNode() {}

// Visibility is the optional `pub` qualifier on an item.
type Visibility struct {
	PubSpan *Span
}

// Private returns the default, private visibility.
func Private() Visibility { return Visibility{} }

// Public returns a public visibility with the span of the `pub` keyword.
func Public(span Span) Visibility { return Visibility{PubSpan: &span} }

// IsPublic reports whether the visibility is `pub`.
func (v Visibility) IsPublic() bool { return v.PubSpan != nil }

// ---------------------------------------------------------------------------
// Types
// ---------------------------------------------------------------------------

// TupleType is `(T1, T2, ...)`.
type TupleType struct {
	SpanVal      Span
	ElementTypes []TypeNode
}

func (t TupleType) Span() Span { return t.SpanVal }
func (t TupleType) typeNode()  {}

// FunctionType is `(T1, T2): R`. The return type is always present.
type FunctionType struct {
	SpanVal        Span
	ParameterTypes []TypeNode
	ReturnType     TypeNode
}

func (t FunctionType) Span() Span { return t.SpanVal }
func (t FunctionType) typeNode()  {}

// ParenthesizedType is `(T)`.
type ParenthesizedType struct {
	SpanVal Span
	Inner   TypeNode
}

func (t ParenthesizedType) Span() Span { return t.SpanVal }
func (t ParenthesizedType) typeNode()  {}

// TraitObjectType is `dyn Bound1 + Bound2`.
type TraitObjectType struct {
	SpanVal Span
	Bounds  []TypePath
}

func (t TraitObjectType) Span() Span { return t.SpanVal }
func (t TraitObjectType) typeNode()  {}

// TypeWithQualifiedPath is `[T as Trait].Item`.
type TypeWithQualifiedPath struct {
	SpanVal  Span
	Left     TypeNode
	Right    TypePath
	Segments []TypePathSegment
}

func (t TypeWithQualifiedPath) Span() Span { return t.SpanVal }
func (t TypeWithQualifiedPath) typeNode()  {}

// ---------------------------------------------------------------------------
// Literals
// ---------------------------------------------------------------------------

// BoolLiteral is `true` or `false`. Literals double as patterns.
type BoolLiteral struct {
	SpanVal Span
	Value   bool
}

func (l BoolLiteral) Span() Span   { return l.SpanVal }
func (l BoolLiteral) exprNode()    {}
func (l BoolLiteral) patternNode() {}

// CharLiteral is a character literal such as `'a'`.
type CharLiteral struct {
	SpanVal Span
	Value   rune
}

func (l CharLiteral) Span() Span   { return l.SpanVal }
func (l CharLiteral) exprNode()    {}
func (l CharLiteral) patternNode() {}

// StringLiteral is a string literal with escapes already decoded.
type StringLiteral struct {
	SpanVal Span
	Value   string
}

func (l StringLiteral) Span() Span   { return l.SpanVal }
func (l StringLiteral) exprNode()    {}
func (l StringLiteral) patternNode() {}

// IntLiteral is an integer literal.
type IntLiteral struct {
	SpanVal Span
	Value   uint64
}

func (l IntLiteral) Span() Span   { return l.SpanVal }
func (l IntLiteral) exprNode()    {}
func (l IntLiteral) patternNode() {}

// FloatLiteral is a floating point literal.
type FloatLiteral struct {
	SpanVal Span
	Value   float64
}

func (l FloatLiteral) Span() Span   { return l.SpanVal }
func (l FloatLiteral) exprNode()    {}
func (l FloatLiteral) patternNode() {}

// ImaginaryLiteral is an imaginary literal such as `3i`.
type ImaginaryLiteral struct {
	SpanVal Span
	Value   float64
}

func (l ImaginaryLiteral) Span() Span   { return l.SpanVal }
func (l ImaginaryLiteral) exprNode()    {}
func (l ImaginaryLiteral) patternNode() {}

// ---------------------------------------------------------------------------
// Patterns
// ---------------------------------------------------------------------------

// IdentifierPattern binds a name, optionally to an inner pattern:
// `b @ [3, ..]`.
type IdentifierPattern struct {
	SpanVal    Span
	Identifier IdentifierAst
	Pattern    Pattern // nil when there is no `@ pattern` part
}

func (p IdentifierPattern) Span() Span   { return p.SpanVal }
func (p IdentifierPattern) patternNode() {}

// StructFieldPatternNode is one field inside a struct pattern.
type StructFieldPatternNode interface {
	structFieldPatternNode()
}

// FieldPattern is `name` or `name: pattern` inside a struct pattern.
type FieldPattern struct {
	SpanVal      Span
	FieldName    IdentifierAst
	ValuePattern Pattern // nil for the shorthand form
}

func (FieldPattern) structFieldPatternNode() {}

// RestFieldPattern is `..` inside a struct pattern.
type RestFieldPattern struct {
	SpanVal Span
}

func (RestFieldPattern) structFieldPatternNode() {}

// StructPattern matches struct values: `Person { name, .. }`.
type StructPattern struct {
	SpanVal Span
	Path    Path
	Fields  []StructFieldPatternNode
}

func (p StructPattern) Span() Span   { return p.SpanVal }
func (p StructPattern) patternNode() {}

// TupleLikePattern matches tuple-like structs and enum items: `Some(x)`.
type TupleLikePattern struct {
	SpanVal       Span
	Path          Path
	InnerPatterns []Pattern
}

func (p TupleLikePattern) Span() Span   { return p.SpanVal }
func (p TupleLikePattern) patternNode() {}

// TuplePattern matches tuples: `(a, b, c)`.
type TuplePattern struct {
	SpanVal  Span
	Elements []Pattern
}

func (p TuplePattern) Span() Span   { return p.SpanVal }
func (p TuplePattern) patternNode() {}

// PathPattern matches against a named constant: `None` or `module.x`.
type PathPattern struct {
	SpanVal Span
	Path    Path
}

func (p PathPattern) Span() Span   { return p.SpanVal }
func (p PathPattern) patternNode() {}

// ListPattern matches lists: `[1, .., 3]`.
type ListPattern struct {
	SpanVal       Span
	InnerPatterns []Pattern
}

func (p ListPattern) Span() Span   { return p.SpanVal }
func (p ListPattern) patternNode() {}

// GroupedPattern is a pattern wrapped in parentheses.
type GroupedPattern struct {
	SpanVal Span
	Inner   Pattern
}

func (p GroupedPattern) Span() Span   { return p.SpanVal }
func (p GroupedPattern) patternNode() {}

// OrPattern matches either side: `Some(..) | None`.
type OrPattern struct {
	SpanVal Span
	Left    Pattern
	Right   Pattern
}

func (p OrPattern) Span() Span   { return p.SpanVal }
func (p OrPattern) patternNode() {}

// RestPattern is `..`.
type RestPattern struct {
	SpanVal Span
}

func (p RestPattern) Span() Span   { return p.SpanVal }
func (p RestPattern) patternNode() {}

// ---------------------------------------------------------------------------
// Operators
// ---------------------------------------------------------------------------

// BinaryOperator is a binary operator token with its span.
type BinaryOperator struct {
	Span Span
	Kind TokenKind
}

// PrefixOperator is a prefix operator token with its span.
type PrefixOperator struct {
	Span Span
	Kind TokenKind
}

// PostfixOperator is a postfix operator token with its span.
type PostfixOperator struct {
	Span Span
	Kind TokenKind
}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// ListExpression is `[1, 2, 3]`.
type ListExpression struct {
	SpanVal  Span
	Elements []Expr
}

func (e ListExpression) Span() Span { return e.SpanVal }
func (e ListExpression) exprNode()  {}

// CastExpression is `expr as Type`.
type CastExpression struct {
	SpanVal Span
	Left    Expr
	Right   TypeNode
}

func (e CastExpression) Span() Span { return e.SpanVal }
func (e CastExpression) exprNode()  {}

// BinaryExpression is `left op right`.
type BinaryExpression struct {
	SpanVal  Span
	Left     Expr
	Operator BinaryOperator
	Right    Expr
}

func (e BinaryExpression) Span() Span { return e.SpanVal }
func (e BinaryExpression) exprNode()  {}

// BlockExpression is a block of statements in expression position.
type BlockExpression struct {
	SpanVal Span
	Block   []Stmt
}

func (e BlockExpression) Span() Span { return e.SpanVal }
func (e BlockExpression) exprNode()  {}

// ParenthesizedExpression is `(expr)`.
type ParenthesizedExpression struct {
	SpanVal Span
	Inner   Expr
}

func (e ParenthesizedExpression) Span() Span { return e.SpanVal }
func (e ParenthesizedExpression) exprNode()  {}

// IfBlock is one `if`/`else if` arm: a condition and its block.
type IfBlock struct {
	Condition Expr
	Block     []Stmt
}

// IfExpression is a chain of if/else-if arms with an optional else block.
// Else is nil when there is no `else`; a non-nil empty slice is `else {}`.
type IfExpression struct {
	SpanVal  Span
	IfBlocks []IfBlock
	Else     []Stmt
}

func (e IfExpression) Span() Span { return e.SpanVal }
func (e IfExpression) exprNode()  {}

// FieldAccessExpression is `left.name`.
type FieldAccessExpression struct {
	SpanVal Span
	Left    Expr
	Right   IdentifierAst
}

func (e FieldAccessExpression) Span() Span { return e.SpanVal }
func (e FieldAccessExpression) exprNode()  {}

// PrefixExpression is `op expr`.
type PrefixExpression struct {
	SpanVal  Span
	Inner    Expr
	Operator PrefixOperator
}

func (e PrefixExpression) Span() Span { return e.SpanVal }
func (e PrefixExpression) exprNode()  {}

// PostfixExpression is `expr op`.
type PostfixExpression struct {
	SpanVal  Span
	Inner    Expr
	Operator PostfixOperator
}

func (e PostfixExpression) Span() Span { return e.SpanVal }
func (e PostfixExpression) exprNode()  {}

// WhileExpression is `while cond { ... }`.
type WhileExpression struct {
	SpanVal   Span
	Condition Expr
	Body      []Stmt
}

func (e WhileExpression) Span() Span { return e.SpanVal }
func (e WhileExpression) exprNode()  {}

// CallExpression is `left(args)`.
type CallExpression struct {
	SpanVal   Span
	Left      Expr
	Arguments []Expr
}

func (e CallExpression) Span() Span { return e.SpanVal }
func (e CallExpression) exprNode()  {}

// GenericArgumentsExpression is `left[args]`, as in `into[uint32](3)`.
type GenericArgumentsExpression struct {
	SpanVal          Span
	Left             Expr
	GenericArguments []GenericArgument
}

func (e GenericArgumentsExpression) Span() Span { return e.SpanVal }
func (e GenericArgumentsExpression) exprNode()  {}

// TupleExpression is `(a, b)` or the one element tuple `(a,)`.
type TupleExpression struct {
	SpanVal  Span
	Elements []Expr
}

func (e TupleExpression) Span() Span { return e.SpanVal }
func (e TupleExpression) exprNode()  {}

// StructExpressionItem is one field initializer in a struct expression.
// Value is nil for the shorthand `name` form.
type StructExpressionItem struct {
	Name  IdentifierAst
	Value Expr
}

// StructExpression is `left { field: value, ... }`.
type StructExpression struct {
	SpanVal Span
	Left    Expr
	Fields  []StructExpressionItem
}

func (e StructExpression) Span() Span { return e.SpanVal }
func (e StructExpression) exprNode()  {}

// MatchExpressionItem is one `pattern => expression` arm.
type MatchExpressionItem struct {
	Left  Pattern
	Right Expr
}

// MatchExpression is `match expr { arms }`.
type MatchExpression struct {
	SpanVal    Span
	Expression Expr
	Block      []MatchExpressionItem
}

func (e MatchExpression) Span() Span { return e.SpanVal }
func (e MatchExpression) exprNode()  {}

// LambdaParameter is one parameter of a lambda, with an optional type.
type LambdaParameter struct {
	Name IdentifierAst
	Ty   TypeNode
}

// LambdaExpression is `|x: T, y|: R { ... }`.
type LambdaExpression struct {
	SpanVal    Span
	Parameters []LambdaParameter
	ReturnType TypeNode // nil when omitted
	Block      []Stmt
}

func (e LambdaExpression) Span() Span { return e.SpanVal }
func (e LambdaExpression) exprNode()  {}

// withBlock reports whether the expression carries its own block and so
// may stand as a statement without a trailing semicolon.
func withBlock(e Expr) bool {
	switch e.(type) {
	case IfExpression, WhileExpression, MatchExpression:
		return true
	}
	return false
}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

// DeferStatement is `defer call();`.
type DeferStatement struct {
	Call Expr
}

func (DeferStatement) stmtNode() {}

// ExpressionStatement is an expression in statement position.
type ExpressionStatement struct {
	Expression   Expr
	HasSemicolon bool
}

func (ExpressionStatement) stmtNode() {}

// BreakStatement is `break;`.
type BreakStatement struct {
	SpanVal Span
}

func (BreakStatement) stmtNode() {}

// ContinueStatement is `continue;`.
type ContinueStatement struct {
	SpanVal Span
}

func (ContinueStatement) stmtNode() {}

// ReturnStatement is `return expr;`.
type ReturnStatement struct {
	Expression Expr
}

func (ReturnStatement) stmtNode() {}

// LetStatement is `let pattern: Type = value;`.
type LetStatement struct {
	Pattern Pattern
	Value   Expr
	Ty      TypeNode // nil when the annotation is omitted
}

func (LetStatement) stmtNode() {}

// ---------------------------------------------------------------------------
// Items
// ---------------------------------------------------------------------------

// EnumItem is one variant of an enum declaration.
type EnumItem interface {
	enumItemNode()
}

// JustEnumItem is a bare variant: `None`.
type JustEnumItem struct {
	Name      IdentifierAst
	Docstring string
}

func (JustEnumItem) enumItemNode() {}

// TupleEnumItem is a tuple variant: `Some(T)`.
type TupleEnumItem struct {
	Name      IdentifierAst
	Fields    []TupleField
	Docstring string
}

func (TupleEnumItem) enumItemNode() {}

// StructEnumItem is a struct variant: `Point { x: int32, y: int32 }`.
type StructEnumItem struct {
	Name      IdentifierAst
	Fields    []StructField
	Docstring string
}

func (StructEnumItem) enumItemNode() {}

// StructField is a named field of a struct declaration.
type StructField struct {
	Visibility Visibility
	Name       IdentifierAst
	Ty         TypeNode
	Docstring  string
}

// TupleField is a positional field of a tuple-like struct.
type TupleField struct {
	Visibility Visibility
	Ty         TypeNode
}

// FunctionParameter is either a named parameter or `self`.
type FunctionParameter interface {
	functionParameterNode()
}

// SelfParameter is the `self` receiver, with an optional type annotation.
type SelfParameter struct {
	SelfSpan Span
	Ty       TypeNode
}

func (SelfParameter) functionParameterNode() {}

// NamedFunctionParameter is a `name: Type` parameter with an optional
// default value.
type NamedFunctionParameter struct {
	Name         IdentifierAst
	Ty           TypeNode
	DefaultValue Expr
}

func (NamedFunctionParameter) functionParameterNode() {}

// Enum is an enum declaration.
type Enum struct {
	Visibility        Visibility
	Name              IdentifierAst
	GenericParameters []GenericParameter
	WhereClause       []WhereClauseItem
	Items             []EnumItem
	Docstring         string
}

func (Enum) itemNode() {}

// Function is a function declaration. A nil Body means the function has no
// body (a trait method signature); an empty non-nil body is `{}`.
type Function struct {
	Visibility        Visibility
	Name              IdentifierAst
	GenericParameters []GenericParameter
	Parameters        []FunctionParameter
	ReturnType        TypeNode
	WhereClause       []WhereClauseItem
	Body              []Stmt
	Docstring         string
}

func (Function) itemNode()      {}
func (Function) traitItemNode() {}

// Import is `import path;`, `import path as name;` or `import path.*;`.
type Import struct {
	Visibility Visibility
	Path       ImportPath
}

func (Import) itemNode() {}

// Trait is a trait declaration.
type Trait struct {
	Visibility        Visibility
	Name              IdentifierAst
	GenericParameters []GenericParameter
	WhereClause       []WhereClauseItem
	Items             []TraitItem
	Docstring         string
}

func (Trait) itemNode() {}

// Impl is a type implementation, optionally implementing a trait.
type Impl struct {
	GenericParameters []GenericParameter
	Ty                TypeNode
	Trait             TypeNode // nil for an inherent impl
	WhereClause       []WhereClauseItem
	Items             []TraitItem
	Docstring         string
}

func (Impl) itemNode() {}

// Struct is a struct declaration with named fields.
type Struct struct {
	Visibility        Visibility
	Name              IdentifierAst
	GenericParameters []GenericParameter
	WhereClause       []WhereClauseItem
	Fields            []StructField
	Docstring         string
}

func (Struct) itemNode() {}

// TupleLikeStruct is `struct Wrapper(String);`.
type TupleLikeStruct struct {
	Visibility        Visibility
	Name              IdentifierAst
	GenericParameters []GenericParameter
	WhereClause       []WhereClauseItem
	Fields            []TupleField
	Docstring         string
}

func (TupleLikeStruct) itemNode() {}

// TypeAlias is `type Name[params] = Type;`. Inside traits the value may be
// omitted and bounds given instead.
type TypeAlias struct {
	Visibility        Visibility
	Name              IdentifierAst
	GenericParameters []GenericParameter
	Bounds            []TypePath
	Value             TypeNode // nil when omitted
	Docstring         string
}

func (TypeAlias) itemNode()      {}
func (TypeAlias) traitItemNode() {}

// Module is a parsed Ry source file.
type Module struct {
	Filepath  string
	Items     []Item
	Docstring string
}
