package compiler

import (
	"testing"
)

// ---------------------------------------------------------------------------
// FuzzLexer: ensure the lexer never panics on arbitrary input.
// ---------------------------------------------------------------------------

func FuzzLexer(f *testing.F) {
	// Seed corpus: valid Ry snippets covering diverse token types
	seeds := []string{
		// Punctuators
		`+ ++ += - -- -= * ** *= / /= % %= = == => ! !=`,
		`> >= >> < <= << | || |= & && &= ^ ^= ~ ? @ #`,
		`( ) [ ] { } , ; : . ..`,
		// Numbers
		`42`, `0`, `1_000_000`, `3.14`, `1e10`, `1.5e-3`, `2.0E+5`, `2i`, `3.5i`,
		// Strings
		`"hello"`, `""`, `"a\nb"`, `"\x{41}"`, `"\u{0416}"`, `"\U{0001F600}"`,
		// Characters
		`'a'`, `'\n'`, `'\0'`, `'Ж'`,
		// Identifiers and keywords
		`foo`, `_bar`, `snake_case`, "`fun`", "`hello world`",
		`as break continue defer dyn else enum false for fun if impl`,
		`import let match pub return struct trait true type where while`,
		// Comments
		"// plain", "/// doc", "//! module", "// first\n// second",
		// Complete snippets
		`fun main() { }`,
		`let x = 1 + 2;`,
		`import std.io.*;`,
		// Edge cases
		`$`, `"unterminated`, `'`, "`", `''`, `1e`, "\\",
		// Unicode
		`привет`, `汉字`, `"こんにちは"`,
		// Empty and whitespace
		``, `   `, "\t\n\r",
		// Operator soup
		`+-*/~<>=@%|&?!,`,
	}

	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, data string) {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("lexer panicked on input %q: %v", data, r)
			}
		}()

		l := NewLexer(data, 0, NewInterner())
		for i := 0; i < len(data)+100; i++ {
			tok := l.NextToken()
			if tok.Kind == TokenEOF {
				break
			}
		}
	})
}

// ---------------------------------------------------------------------------
// FuzzParser: ensure the parser never panics on arbitrary input.
// Parse errors are acceptable; panics are not.
// ---------------------------------------------------------------------------

func FuzzParser(f *testing.F) {
	seeds := []string{
		// Items
		`fun main() { }`,
		`pub fun add[T: Numeric](a: T, b: T): T where T: Default { return a + b; }`,
		`struct Point { x: Int, y: Int }`,
		`pub struct Meters(pub Float);`,
		`enum Shape { Empty, Circle(Float), Rect { w: Float, h: Float } }`,
		`trait Area { fun area(self): Float; }`,
		`impl Area for Circle { fun area(self): Float { return 0.0; } }`,
		`import std.io;`, `import std.io.*;`, `import std.io as inout;`,
		`type Pair[T] = (T, T);`,
		// Statements and expressions
		`fun f() { let x = 1 + 2 * 3; }`,
		`fun f() { defer close(); break; continue; return 1; }`,
		`fun f() { if a { } else if b { } else { } }`,
		`fun f() { while running { step(); } }`,
		`fun f() { let x = match n { 0 => zero, .. => other }; }`,
		`fun f() { let p = Point { x: 1, y }; }`,
		`fun f() { let g = |x: Int|: Int { return x; }; }`,
		`fun f() { let t = (1, 2); let u = (1,); let v = (1); }`,
		`fun f() { let (a, b) = pair; }`,
		`fun f() { let x = n as Float; }`,
		`fun f() { tail() }`,
		// Types
		`type T = (Int): Bool;`,
		`type T = dyn Draw + Debug;`,
		`type T = [List[Int] as Iterable].Item;`,
		`type T = Iterator[Item = Int];`,
		// Docstrings
		"//! Module docs.\n/// Item docs.\nfun documented() { }",
		// Edge cases that might trip up the parser
		``, `(`, `)`, `[`, `]`, `{`, `}`, `;`, `..`, `=>`,
		`fun`, `fun (`, `struct {`, `impl for`, `let`,
		`fun f() { let = ; }`,
		`fun f() { 'ab' }`,
		`pub`, `pub pub`,
	}

	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, data string) {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("parser panicked on input %q: %v", data, r)
			}
		}()

		interner := NewInterner()
		diags := &Diagnostics{}
		p := NewParser("fuzz.ry", data, 0, interner, diags)
		module := p.ParseModule()
		if module == nil {
			t.Fatal("parser returned a nil module")
		}

		// Whatever parsed must serialize without panicking either.
		SerializeAST(module, interner)
	})
}
