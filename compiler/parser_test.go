package compiler

import (
	"testing"
)

func parseSource(t *testing.T, input string) (*Module, *Interner, *Diagnostics) {
	t.Helper()
	interner := NewInterner()
	diags := &Diagnostics{}
	p := NewParser("test.ry", input, 0, interner, diags)
	return p.ParseModule(), interner, diags
}

// parseClean parses input and fails the test on any diagnostic.
func parseClean(t *testing.T, input string) (*Module, *Interner) {
	t.Helper()
	module, interner, diags := parseSource(t, input)
	if diags.Len() > 0 {
		t.Fatalf("parse %q: unexpected diagnostics: %v", input, diags.All())
	}
	return module, interner
}

func identName(t *testing.T, interner *Interner, id IdentifierAst) string {
	t.Helper()
	name, ok := interner.Resolve(id.Symbol)
	if !ok {
		t.Fatalf("identifier symbol %d not interned", id.Symbol)
	}
	return name
}

// firstFunction returns the body of the only function in input.
func firstFunction(t *testing.T, input string) (Function, *Interner) {
	t.Helper()
	module, interner := parseClean(t, input)
	if len(module.Items) != 1 {
		t.Fatalf("item count = %d, want 1", len(module.Items))
	}
	fn, ok := module.Items[0].(Function)
	if !ok {
		t.Fatalf("item is %T, want Function", module.Items[0])
	}
	return fn, interner
}

func TestParseEmptyModule(t *testing.T) {
	module, _ := parseClean(t, "")
	if module.Filepath != "test.ry" {
		t.Errorf("filepath = %q, want %q", module.Filepath, "test.ry")
	}
	if len(module.Items) != 0 {
		t.Errorf("item count = %d, want 0", len(module.Items))
	}
}

func TestParseModuleDocstring(t *testing.T) {
	module, _ := parseClean(t, "//! first\n//! second\nfun main() { }")
	if module.Docstring != " first\n second" {
		t.Errorf("module docstring = %q", module.Docstring)
	}
}

func TestParseImports(t *testing.T) {
	tests := []struct {
		input string
		path  []string
		as    string
		star  bool
	}{
		{"import std.io;", []string{"std", "io"}, "", false},
		{"import std.io.*;", []string{"std", "io"}, "", true},
		{"import std.io as inout;", []string{"std", "io"}, "inout", false},
		{"pub import foo;", []string{"foo"}, "", false},
	}

	for _, tc := range tests {
		module, interner := parseClean(t, tc.input)
		if len(module.Items) != 1 {
			t.Fatalf("parse %q: item count = %d, want 1", tc.input, len(module.Items))
		}
		imp, ok := module.Items[0].(Import)
		if !ok {
			t.Fatalf("parse %q: item is %T, want Import", tc.input, module.Items[0])
		}
		if len(imp.Path.Left.Identifiers) != len(tc.path) {
			t.Errorf("parse %q: path length = %d, want %d",
				tc.input, len(imp.Path.Left.Identifiers), len(tc.path))
			continue
		}
		for i, want := range tc.path {
			if got := identName(t, interner, imp.Path.Left.Identifiers[i]); got != want {
				t.Errorf("parse %q: path[%d] = %q, want %q", tc.input, i, got, want)
			}
		}
		if tc.as == "" && imp.Path.As != nil {
			t.Errorf("parse %q: unexpected rename", tc.input)
		}
		if tc.as != "" {
			if imp.Path.As == nil {
				t.Errorf("parse %q: missing rename", tc.input)
			} else if got := identName(t, interner, *imp.Path.As); got != tc.as {
				t.Errorf("parse %q: rename = %q, want %q", tc.input, got, tc.as)
			}
		}
		if tc.star != (imp.Path.StarSpan != nil) {
			t.Errorf("parse %q: star = %v, want %v", tc.input, imp.Path.StarSpan != nil, tc.star)
		}
	}
}

func TestParseFunction(t *testing.T) {
	fn, interner := firstFunction(t,
		"pub fun add[T: Numeric](a: T, b: T = zero()): T where T: Default { return a + b; }")

	if !fn.Visibility.IsPublic() {
		t.Error("visibility is private, want public")
	}
	if got := identName(t, interner, fn.Name); got != "add" {
		t.Errorf("name = %q, want %q", got, "add")
	}
	if len(fn.GenericParameters) != 1 {
		t.Fatalf("generic parameter count = %d, want 1", len(fn.GenericParameters))
	}
	if len(fn.GenericParameters[0].Bounds) != 1 {
		t.Errorf("bound count = %d, want 1", len(fn.GenericParameters[0].Bounds))
	}
	if len(fn.Parameters) != 2 {
		t.Fatalf("parameter count = %d, want 2", len(fn.Parameters))
	}
	second, ok := fn.Parameters[1].(NamedFunctionParameter)
	if !ok {
		t.Fatalf("parameter[1] is %T, want NamedFunctionParameter", fn.Parameters[1])
	}
	if second.DefaultValue == nil {
		t.Error("parameter[1] has no default value")
	}
	if fn.ReturnType == nil {
		t.Error("missing return type")
	}
	if len(fn.WhereClause) != 1 {
		t.Errorf("where clause item count = %d, want 1", len(fn.WhereClause))
	}
	if len(fn.Body) != 1 {
		t.Fatalf("body statement count = %d, want 1", len(fn.Body))
	}
	if _, ok := fn.Body[0].(ReturnStatement); !ok {
		t.Errorf("body[0] is %T, want ReturnStatement", fn.Body[0])
	}
}

func TestParseFunctionWithoutBody(t *testing.T) {
	module, _ := parseClean(t, "trait Shape { fun area(self): Float; }")
	trait := module.Items[0].(Trait)
	if len(trait.Items) != 1 {
		t.Fatalf("trait item count = %d, want 1", len(trait.Items))
	}
	fn := trait.Items[0].(Function)
	if fn.Body != nil {
		t.Error("signature-only function has a body")
	}
	if len(fn.Parameters) != 1 {
		t.Fatalf("parameter count = %d, want 1", len(fn.Parameters))
	}
	if _, ok := fn.Parameters[0].(SelfParameter); !ok {
		t.Errorf("parameter[0] is %T, want SelfParameter", fn.Parameters[0])
	}
}

func TestParseEmptyBodyIsNotMissingBody(t *testing.T) {
	fn, _ := firstFunction(t, "fun noop() { }")
	if fn.Body == nil {
		t.Fatal("empty body parsed as missing body")
	}
	if len(fn.Body) != 0 {
		t.Errorf("body statement count = %d, want 0", len(fn.Body))
	}
}

func TestParseStruct(t *testing.T) {
	module, interner := parseClean(t, `
pub struct Point[T] {
	/// Horizontal part.
	pub x: T,
	y: T,
}`)
	st := module.Items[0].(Struct)
	if got := identName(t, interner, st.Name); got != "Point" {
		t.Errorf("name = %q, want %q", got, "Point")
	}
	if len(st.Fields) != 2 {
		t.Fatalf("field count = %d, want 2", len(st.Fields))
	}
	if !st.Fields[0].Visibility.IsPublic() {
		t.Error("field x is private, want public")
	}
	if st.Fields[0].Docstring != " Horizontal part." {
		t.Errorf("field x docstring = %q", st.Fields[0].Docstring)
	}
	if st.Fields[1].Visibility.IsPublic() {
		t.Error("field y is public, want private")
	}
}

func TestParseTupleLikeStruct(t *testing.T) {
	module, _ := parseClean(t, "pub struct Meters(pub Float);")
	st, ok := module.Items[0].(TupleLikeStruct)
	if !ok {
		t.Fatalf("item is %T, want TupleLikeStruct", module.Items[0])
	}
	if len(st.Fields) != 1 {
		t.Fatalf("field count = %d, want 1", len(st.Fields))
	}
	if !st.Fields[0].Visibility.IsPublic() {
		t.Error("field is private, want public")
	}
}

func TestParseEnum(t *testing.T) {
	module, interner := parseClean(t, `
enum Shape {
	Empty,
	Circle(Float),
	Rect { w: Float, h: Float },
}`)
	en := module.Items[0].(Enum)
	if len(en.Items) != 3 {
		t.Fatalf("enum item count = %d, want 3", len(en.Items))
	}
	just := en.Items[0].(JustEnumItem)
	if got := identName(t, interner, just.Name); got != "Empty" {
		t.Errorf("item[0] name = %q, want %q", got, "Empty")
	}
	tuple := en.Items[1].(TupleEnumItem)
	if len(tuple.Fields) != 1 {
		t.Errorf("Circle field count = %d, want 1", len(tuple.Fields))
	}
	structItem := en.Items[2].(StructEnumItem)
	if len(structItem.Fields) != 2 {
		t.Errorf("Rect field count = %d, want 2", len(structItem.Fields))
	}
}

func TestParseImpl(t *testing.T) {
	module, _ := parseClean(t, `
impl[T] Shape for Circle[T] where T: Numeric {
	fun area(self): Float { return 0.0; }
	type Output = Float;
}`)
	impl := module.Items[0].(Impl)
	if impl.Trait == nil {
		t.Fatal("trait impl parsed as inherent impl")
	}
	if len(impl.GenericParameters) != 1 {
		t.Errorf("generic parameter count = %d, want 1", len(impl.GenericParameters))
	}
	if len(impl.WhereClause) != 1 {
		t.Errorf("where clause item count = %d, want 1", len(impl.WhereClause))
	}
	if len(impl.Items) != 2 {
		t.Fatalf("impl item count = %d, want 2", len(impl.Items))
	}
	if _, ok := impl.Items[1].(TypeAlias); !ok {
		t.Errorf("impl item[1] is %T, want TypeAlias", impl.Items[1])
	}
}

func TestParseInherentImpl(t *testing.T) {
	module, _ := parseClean(t, "impl Circle { }")
	impl := module.Items[0].(Impl)
	if impl.Trait != nil {
		t.Error("inherent impl has a trait")
	}
}

func TestParseTypeAlias(t *testing.T) {
	module, interner := parseClean(t, "pub type Pair[T] = (T, T);")
	alias := module.Items[0].(TypeAlias)
	if got := identName(t, interner, alias.Name); got != "Pair" {
		t.Errorf("name = %q, want %q", got, "Pair")
	}
	if alias.Value == nil {
		t.Fatal("alias has no value")
	}
	if _, ok := alias.Value.(TupleType); !ok {
		t.Errorf("value is %T, want TupleType", alias.Value)
	}
}

func TestParseItemDocstrings(t *testing.T) {
	module, _ := parseClean(t, "/// Adds numbers.\n/// Really.\nfun add() { }")
	fn := module.Items[0].(Function)
	if fn.Docstring != " Adds numbers.\n Really." {
		t.Errorf("docstring = %q", fn.Docstring)
	}
}

// letValue parses `fun f() { let x = <input>; }` and returns the bound value.
func letValue(t *testing.T, input string) (Expr, *Interner) {
	t.Helper()
	fn, interner := firstFunction(t, "fun f() { let x = "+input+"; }")
	let, ok := fn.Body[0].(LetStatement)
	if !ok {
		t.Fatalf("body[0] is %T, want LetStatement", fn.Body[0])
	}
	return let.Value, interner
}

func TestParseBinaryPrecedence(t *testing.T) {
	value, _ := letValue(t, "1 + 2 * 3")
	sum, ok := value.(BinaryExpression)
	if !ok {
		t.Fatalf("value is %T, want BinaryExpression", value)
	}
	if sum.Operator.Kind != TokenPlus {
		t.Errorf("top operator = %v, want +", sum.Operator.Kind)
	}
	product, ok := sum.Right.(BinaryExpression)
	if !ok {
		t.Fatalf("right side is %T, want BinaryExpression", sum.Right)
	}
	if product.Operator.Kind != TokenStar {
		t.Errorf("nested operator = %v, want *", product.Operator.Kind)
	}
}

func TestParseBinaryLeftAssociativity(t *testing.T) {
	value, _ := letValue(t, "1 - 2 - 3")
	outer := value.(BinaryExpression)
	inner, ok := outer.Left.(BinaryExpression)
	if !ok {
		t.Fatalf("left side is %T, want BinaryExpression", outer.Left)
	}
	if lit, ok := inner.Left.(IntLiteral); !ok || lit.Value != 1 {
		t.Errorf("innermost left = %#v, want 1", inner.Left)
	}
}

func TestParseCast(t *testing.T) {
	value, _ := letValue(t, "n as Float")
	cast, ok := value.(CastExpression)
	if !ok {
		t.Fatalf("value is %T, want CastExpression", value)
	}
	if _, ok := cast.Right.(TypePath); !ok {
		t.Errorf("cast target is %T, want TypePath", cast.Right)
	}
}

func TestParseCallAndFieldAccess(t *testing.T) {
	value, interner := letValue(t, "point.norm(2, scale)")
	call, ok := value.(CallExpression)
	if !ok {
		t.Fatalf("value is %T, want CallExpression", value)
	}
	if len(call.Arguments) != 2 {
		t.Errorf("argument count = %d, want 2", len(call.Arguments))
	}
	access, ok := call.Left.(FieldAccessExpression)
	if !ok {
		t.Fatalf("callee is %T, want FieldAccessExpression", call.Left)
	}
	if got := identName(t, interner, access.Right); got != "norm" {
		t.Errorf("field = %q, want %q", got, "norm")
	}
}

func TestParseGenericArgumentsExpression(t *testing.T) {
	value, _ := letValue(t, "parse[Int](text)")
	call := value.(CallExpression)
	generic, ok := call.Left.(GenericArgumentsExpression)
	if !ok {
		t.Fatalf("callee is %T, want GenericArgumentsExpression", call.Left)
	}
	if len(generic.GenericArguments) != 1 {
		t.Errorf("generic argument count = %d, want 1", len(generic.GenericArguments))
	}
}

func TestParsePrefixAndPostfix(t *testing.T) {
	value, _ := letValue(t, "!ready?")
	postfix, ok := value.(PostfixExpression)
	if !ok {
		t.Fatalf("value is %T, want PostfixExpression", value)
	}
	if postfix.Operator.Kind != TokenQuestion {
		t.Errorf("postfix operator = %v, want ?", postfix.Operator.Kind)
	}
	prefix, ok := postfix.Inner.(PrefixExpression)
	if !ok {
		t.Fatalf("inner is %T, want PrefixExpression", postfix.Inner)
	}
	if prefix.Operator.Kind != TokenBang {
		t.Errorf("prefix operator = %v, want !", prefix.Operator.Kind)
	}
}

func TestParseTupleAndParenthesized(t *testing.T) {
	tests := []struct {
		input string
		tuple bool
		elems int
	}{
		{"()", true, 0},
		{"(1)", false, 0},
		{"(1,)", true, 1},
		{"(1, 2)", true, 2},
	}

	for _, tc := range tests {
		value, _ := letValue(t, tc.input)
		if tc.tuple {
			tuple, ok := value.(TupleExpression)
			if !ok {
				t.Errorf("parse %q: value is %T, want TupleExpression", tc.input, value)
				continue
			}
			if len(tuple.Elements) != tc.elems {
				t.Errorf("parse %q: element count = %d, want %d", tc.input, len(tuple.Elements), tc.elems)
			}
		} else if _, ok := value.(ParenthesizedExpression); !ok {
			t.Errorf("parse %q: value is %T, want ParenthesizedExpression", tc.input, value)
		}
	}
}

func TestParseListExpression(t *testing.T) {
	value, _ := letValue(t, "[1, 2, 3]")
	list, ok := value.(ListExpression)
	if !ok {
		t.Fatalf("value is %T, want ListExpression", value)
	}
	if len(list.Elements) != 3 {
		t.Errorf("element count = %d, want 3", len(list.Elements))
	}
}

func TestParseListTrailingComma(t *testing.T) {
	plain, _ := letValue(t, "[1, 2, 3]")
	trailing, _ := letValue(t, "[1, 2, 3,]")
	if len(plain.(ListExpression).Elements) != len(trailing.(ListExpression).Elements) {
		t.Error("trailing comma changed the element count")
	}
}

func TestParseStructExpression(t *testing.T) {
	value, interner := letValue(t, "Point { x: 1, y }")
	structExpr, ok := value.(StructExpression)
	if !ok {
		t.Fatalf("value is %T, want StructExpression", value)
	}
	if len(structExpr.Fields) != 2 {
		t.Fatalf("field count = %d, want 2", len(structExpr.Fields))
	}
	if structExpr.Fields[0].Value == nil {
		t.Error("field x has no value")
	}
	if structExpr.Fields[1].Value != nil {
		t.Error("shorthand field y has a value")
	}
	if got := identName(t, interner, structExpr.Fields[1].Name); got != "y" {
		t.Errorf("field[1] name = %q, want %q", got, "y")
	}
}

func TestParseIfExpression(t *testing.T) {
	fn, _ := firstFunction(t, "fun f() { if a { } else if b { } else { } }")
	stmt := fn.Body[0].(ExpressionStatement)
	ifExpr, ok := stmt.Expression.(IfExpression)
	if !ok {
		t.Fatalf("expression is %T, want IfExpression", stmt.Expression)
	}
	if len(ifExpr.IfBlocks) != 2 {
		t.Errorf("if block count = %d, want 2", len(ifExpr.IfBlocks))
	}
	if ifExpr.Else == nil {
		t.Error("else branch missing")
	}
	if stmt.HasSemicolon {
		t.Error("block expression statement marked as having a semicolon")
	}
}

func TestParseIfWithoutElse(t *testing.T) {
	fn, _ := firstFunction(t, "fun f() { if a { } }")
	ifExpr := fn.Body[0].(ExpressionStatement).Expression.(IfExpression)
	if ifExpr.Else != nil {
		t.Error("missing else branch parsed as empty else branch")
	}
}

func TestParseStructLiteralDisabledInCondition(t *testing.T) {
	// `{` after the scrutinee opens the body, not a struct literal.
	fn, _ := firstFunction(t, "fun f() { if ready { go(); } }")
	ifExpr := fn.Body[0].(ExpressionStatement).Expression.(IfExpression)
	if _, ok := ifExpr.IfBlocks[0].Condition.(IdentifierAst); !ok {
		t.Errorf("condition is %T, want IdentifierAst", ifExpr.IfBlocks[0].Condition)
	}
	if len(ifExpr.IfBlocks[0].Block) != 1 {
		t.Errorf("body statement count = %d, want 1", len(ifExpr.IfBlocks[0].Block))
	}
}

func TestParseStructLiteralReenabledInsideParens(t *testing.T) {
	fn, _ := firstFunction(t, "fun f() { while (Point { x: 1 }).valid { } }")
	while := fn.Body[0].(ExpressionStatement).Expression.(WhileExpression)
	access, ok := while.Condition.(FieldAccessExpression)
	if !ok {
		t.Fatalf("condition is %T, want FieldAccessExpression", while.Condition)
	}
	paren := access.Left.(ParenthesizedExpression)
	if _, ok := paren.Inner.(StructExpression); !ok {
		t.Errorf("inner is %T, want StructExpression", paren.Inner)
	}
}

func TestParseWhile(t *testing.T) {
	fn, _ := firstFunction(t, "fun f() { while running { step(); } }")
	while, ok := fn.Body[0].(ExpressionStatement).Expression.(WhileExpression)
	if !ok {
		t.Fatalf("expression is %T, want WhileExpression", fn.Body[0].(ExpressionStatement).Expression)
	}
	if len(while.Body) != 1 {
		t.Errorf("body statement count = %d, want 1", len(while.Body))
	}
}

func TestParseMatch(t *testing.T) {
	value, _ := letValue(t, `match n {
		0 => zero,
		x @ 1 => one,
		Some(v) => v,
		.. => other,
	}`)
	matchExpr, ok := value.(MatchExpression)
	if !ok {
		t.Fatalf("value is %T, want MatchExpression", value)
	}
	if len(matchExpr.Block) != 4 {
		t.Fatalf("arm count = %d, want 4", len(matchExpr.Block))
	}
	if _, ok := matchExpr.Block[0].Left.(IntLiteral); !ok {
		t.Errorf("arm[0] pattern is %T, want IntLiteral", matchExpr.Block[0].Left)
	}
	if _, ok := matchExpr.Block[1].Left.(IdentifierPattern); !ok {
		t.Errorf("arm[1] pattern is %T, want IdentifierPattern", matchExpr.Block[1].Left)
	}
	if _, ok := matchExpr.Block[2].Left.(TupleLikePattern); !ok {
		t.Errorf("arm[2] pattern is %T, want TupleLikePattern", matchExpr.Block[2].Left)
	}
	if _, ok := matchExpr.Block[3].Left.(RestPattern); !ok {
		t.Errorf("arm[3] pattern is %T, want RestPattern", matchExpr.Block[3].Left)
	}
}

func TestParseLambda(t *testing.T) {
	value, _ := letValue(t, "|x: Int, y|: Int { return x; }")
	lambda, ok := value.(LambdaExpression)
	if !ok {
		t.Fatalf("value is %T, want LambdaExpression", value)
	}
	if len(lambda.Parameters) != 2 {
		t.Fatalf("parameter count = %d, want 2", len(lambda.Parameters))
	}
	if lambda.Parameters[0].Ty == nil {
		t.Error("parameter x has no type")
	}
	if lambda.Parameters[1].Ty != nil {
		t.Error("parameter y has an unexpected type")
	}
	if lambda.ReturnType == nil {
		t.Error("missing return type")
	}
}

func TestParseEmptyLambda(t *testing.T) {
	// `||` lexes as one token and still opens a lambda.
	value, _ := letValue(t, "|| { }")
	lambda, ok := value.(LambdaExpression)
	if !ok {
		t.Fatalf("value is %T, want LambdaExpression", value)
	}
	if len(lambda.Parameters) != 0 {
		t.Errorf("parameter count = %d, want 0", len(lambda.Parameters))
	}
}

func TestParseStatements(t *testing.T) {
	fn, _ := firstFunction(t, `fun f() {
		defer close();
		break;
		continue;
		return 1;
	}`)
	if len(fn.Body) != 4 {
		t.Fatalf("statement count = %d, want 4", len(fn.Body))
	}
	if _, ok := fn.Body[0].(DeferStatement); !ok {
		t.Errorf("body[0] is %T, want DeferStatement", fn.Body[0])
	}
	if _, ok := fn.Body[1].(BreakStatement); !ok {
		t.Errorf("body[1] is %T, want BreakStatement", fn.Body[1])
	}
	if _, ok := fn.Body[2].(ContinueStatement); !ok {
		t.Errorf("body[2] is %T, want ContinueStatement", fn.Body[2])
	}
	if _, ok := fn.Body[3].(ReturnStatement); !ok {
		t.Errorf("body[3] is %T, want ReturnStatement", fn.Body[3])
	}
}

func TestParseTailExpression(t *testing.T) {
	fn, _ := firstFunction(t, "fun f() { g(); h() }")
	if len(fn.Body) != 2 {
		t.Fatalf("statement count = %d, want 2", len(fn.Body))
	}
	first := fn.Body[0].(ExpressionStatement)
	if !first.HasSemicolon {
		t.Error("body[0] lost its semicolon")
	}
	last := fn.Body[1].(ExpressionStatement)
	if last.HasSemicolon {
		t.Error("tail expression marked as having a semicolon")
	}
}

func TestParseLetWithTypeAndPattern(t *testing.T) {
	fn, _ := firstFunction(t, "fun f() { let (a, b): (Int, Int) = pair; }")
	let := fn.Body[0].(LetStatement)
	pattern, ok := let.Pattern.(TuplePattern)
	if !ok {
		t.Fatalf("pattern is %T, want TuplePattern", let.Pattern)
	}
	if len(pattern.Elements) != 2 {
		t.Errorf("pattern element count = %d, want 2", len(pattern.Elements))
	}
	if _, ok := let.Ty.(TupleType); !ok {
		t.Errorf("type is %T, want TupleType", let.Ty)
	}
}

func TestParsePatterns(t *testing.T) {
	tests := []struct {
		input string
		check func(Pattern) bool
		want  string
	}{
		{"(x)", func(p Pattern) bool { _, ok := p.(GroupedPattern); return ok }, "GroupedPattern"},
		{"(x,)", func(p Pattern) bool { _, ok := p.(TuplePattern); return ok }, "TuplePattern"},
		{"[a, .., b]", func(p Pattern) bool {
			lp, ok := p.(ListPattern)
			return ok && len(lp.InnerPatterns) == 3
		}, "ListPattern with 3 elements"},
		{"1 | 2 | 3", func(p Pattern) bool {
			op, ok := p.(OrPattern)
			if !ok {
				return false
			}
			_, leftOr := op.Left.(OrPattern)
			return leftOr
		}, "left-nested OrPattern"},
		{"Shape.Circle", func(p Pattern) bool {
			pp, ok := p.(PathPattern)
			return ok && len(pp.Path.Identifiers) == 2
		}, "PathPattern with 2 segments"},
		{"Point { x: 1, .. }", func(p Pattern) bool {
			sp, ok := p.(StructPattern)
			if !ok || len(sp.Fields) != 2 {
				return false
			}
			_, rest := sp.Fields[1].(RestFieldPattern)
			return rest
		}, "StructPattern ending in rest"},
	}

	for _, tc := range tests {
		fn, _ := firstFunction(t, "fun f() { let "+tc.input+" = v; }")
		let := fn.Body[0].(LetStatement)
		if !tc.check(let.Pattern) {
			t.Errorf("parse %q: pattern is %T, want %s", tc.input, let.Pattern, tc.want)
		}
	}
}

func TestParseTypes(t *testing.T) {
	tests := []struct {
		input string
		check func(TypeNode) bool
		want  string
	}{
		{"List[Int]", func(ty TypeNode) bool {
			tp, ok := ty.(TypePath)
			return ok && len(tp.Segments) == 1 && len(tp.Segments[0].GenericArguments) == 1
		}, "TypePath with one generic argument"},
		{"(Int): Bool", func(ty TypeNode) bool { _, ok := ty.(FunctionType); return ok }, "FunctionType"},
		{"(Int)", func(ty TypeNode) bool { _, ok := ty.(ParenthesizedType); return ok }, "ParenthesizedType"},
		{"(Int,)", func(ty TypeNode) bool {
			tt, ok := ty.(TupleType)
			return ok && len(tt.ElementTypes) == 1
		}, "one-element TupleType"},
		{"dyn Draw + Debug", func(ty TypeNode) bool {
			to, ok := ty.(TraitObjectType)
			return ok && len(to.Bounds) == 2
		}, "TraitObjectType with 2 bounds"},
		{"[List[Int] as Iterable].Item", func(ty TypeNode) bool {
			qp, ok := ty.(TypeWithQualifiedPath)
			return ok && len(qp.Segments) == 1
		}, "TypeWithQualifiedPath"},
	}

	for _, tc := range tests {
		module, _ := parseClean(t, "type T = "+tc.input+";")
		alias := module.Items[0].(TypeAlias)
		if !tc.check(alias.Value) {
			t.Errorf("parse %q: type is %T, want %s", tc.input, alias.Value, tc.want)
		}
	}
}

func TestParseNamedGenericArgument(t *testing.T) {
	module, _ := parseClean(t, "type T = Iterator[Item = Int];")
	alias := module.Items[0].(TypeAlias)
	segment := alias.Value.(TypePath).Segments[0]
	if len(segment.GenericArguments) != 1 {
		t.Fatalf("generic argument count = %d, want 1", len(segment.GenericArguments))
	}
	if segment.GenericArguments[0].Name == nil {
		t.Error("argument parsed as positional, want named")
	}
}

func TestParseWhereClauseEq(t *testing.T) {
	fn, _ := firstFunction(t, "fun f[T]() where T.Item = Int { }")
	if len(fn.WhereClause) != 1 {
		t.Fatalf("where clause item count = %d, want 1", len(fn.WhereClause))
	}
	if _, ok := fn.WhereClause[0].(WhereEq); !ok {
		t.Errorf("where item is %T, want WhereEq", fn.WhereClause[0])
	}
}

func TestParseRecoveryToNextItem(t *testing.T) {
	module, _, diags := parseSource(t, "fun () fun main() { }")
	if !diags.HasErrors() {
		t.Error("malformed item produced no diagnostics")
	}
	if len(module.Items) != 1 {
		t.Fatalf("item count = %d, want 1 recovered item", len(module.Items))
	}
	if _, ok := module.Items[0].(Function); !ok {
		t.Errorf("recovered item is %T, want Function", module.Items[0])
	}
}

func TestParseRecoveryJunkRunSingleDiagnostic(t *testing.T) {
	module, _, diags := parseSource(t, ";; fun main() { }")
	if diags.Len() != 1 {
		t.Errorf("diagnostic count = %d, want 1 for the whole junk run", diags.Len())
	}
	if len(module.Items) != 1 {
		t.Fatalf("item count = %d, want 1 recovered item", len(module.Items))
	}
	if _, ok := module.Items[0].(Function); !ok {
		t.Errorf("recovered item is %T, want Function", module.Items[0])
	}
}

func TestParseRecoveryInsideBlock(t *testing.T) {
	module, _, diags := parseSource(t, "fun f() { let = ; ok(); }")
	if !diags.HasErrors() {
		t.Error("malformed statement produced no diagnostics")
	}
	fn := module.Items[0].(Function)
	found := false
	for _, stmt := range fn.Body {
		if es, ok := stmt.(ExpressionStatement); ok {
			if _, ok := es.Expression.(CallExpression); ok {
				found = true
			}
		}
	}
	if !found {
		t.Error("statement after the malformed one was lost")
	}
}

func TestParseLexErrorsSurfaceAsDiagnostics(t *testing.T) {
	_, _, diags := parseSource(t, "fun f() { let x = 'ab'; }")
	if !diags.HasErrors() {
		t.Fatal("lex error produced no diagnostics")
	}
	if diags.All()[0].Code != CodeLexError {
		t.Errorf("diagnostic code = %q, want %q", diags.All()[0].Code, CodeLexError)
	}
}

func TestParseLiteralSpansRoundTrip(t *testing.T) {
	literals := []string{"42", "3.14", "2i", "true", `"hi"`, "'x'"}
	for _, lit := range literals {
		source := "fun f() { let x = " + lit + "; }"
		fn, _ := firstFunction(t, source)
		value := fn.Body[0].(LetStatement).Value
		span := value.Span()
		if got := source[span.Start:span.End]; got != lit {
			t.Errorf("span slice = %q, want %q", got, lit)
		}
	}
}

func TestParseSpans(t *testing.T) {
	input := "fun f() { }"
	fn, _ := firstFunction(t, input)
	if fn.Name.SpanVal.Start != 4 || fn.Name.SpanVal.End != 5 {
		t.Errorf("name span = %s, want 4..5", fn.Name.SpanVal)
	}
}
