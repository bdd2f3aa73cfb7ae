package compiler

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ---------------------------------------------------------------------------
// Lexer: tokenizer for Ry source code
// ---------------------------------------------------------------------------

// Lexer tokenizes Ry source code. It never fails: malformed input yields
// TokenError tokens and scanning continues at the next character.
type Lexer struct {
	input    string
	pos      int  // byte offset of current character
	readPos  int  // byte offset after current character
	ch       rune // current character, 0 at end of input
	fileID   uint32
	interner *Interner
}

// NewLexer creates a new lexer for the given input. Identifier symbols go
// through interner, which may be shared across files.
func NewLexer(input string, fileID uint32, interner *Interner) *Lexer {
	l := &Lexer{
		input:    input,
		fileID:   fileID,
		interner: interner,
	}
	l.readChar()
	return l
}

// readChar reads the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
		l.pos = l.readPos
	} else {
		r, size := utf8.DecodeRuneInString(l.input[l.readPos:])
		l.ch = r
		l.pos = l.readPos
		l.readPos += size
	}
}

// peekChar returns the next character without consuming it.
func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

func (l *Lexer) spanFrom(start int) Span {
	return MakeSpan(uint32(start), uint32(l.pos), l.fileID)
}

// atEnd reports whether the lexer has consumed the entire input.
func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

// isWhitespace matches the whitespace set of the language, which includes a
// handful of Unicode separators on top of the ASCII ones.
func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f',
		'\u0085', '\u200e', '\u200f', '\u2028', '\u2029':
		return true
	}
	return false
}

// Identifier characters follow Unicode XID with `_` allowed at the start.
func isIDStart(r rune) bool {
	return r == '_' ||
		unicode.In(r, unicode.L, unicode.Nl, unicode.Other_ID_Start)
}

func isIDContinue(r rune) bool {
	return r == '_' ||
		unicode.In(r, unicode.L, unicode.Nl, unicode.Other_ID_Start,
			unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc, unicode.Other_ID_Continue)
}

func isDecimalDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func (l *Lexer) skipWhitespace() {
	for isWhitespace(l.ch) {
		l.readChar()
	}
}

// NextToken returns the next token, including comment tokens. At end of
// input it returns EOF forever; the EOF span is one byte past the input.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	start := l.pos

	if l.atEnd() {
		return Token{
			Kind: TokenEOF,
			Span: MakeSpan(uint32(start), uint32(start+1), l.fileID),
		}
	}

	switch {
	case l.ch == '/' && l.peekChar() == '/':
		return l.scanComment()

	case l.ch == '`':
		return l.scanWrappedIdentifier()

	case isIDStart(l.ch):
		return l.scanName()

	case isDecimalDigit(l.ch):
		return l.scanNumber()

	case l.ch == '"':
		return l.scanString()

	case l.ch == '\'':
		return l.scanChar()
	}

	return l.scanPunctuator()
}

// NextNoComments returns the next token, discarding plain comment tokens.
// Doc comments pass through so the parser can attach them to items.
func (l *Lexer) NextNoComments() Token {
	for {
		tok := l.NextToken()
		if tok.Kind != TokenComment {
			return tok
		}
	}
}

// Tokens scans the entire input and returns all tokens including the final
// EOF token.
func (l *Lexer) Tokens() []Token {
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Kind == TokenEOF {
			return toks
		}
	}
}

func (l *Lexer) errorToken(kind LexErrorKind, start int) Token {
	return Token{Kind: TokenError, Span: l.spanFrom(start), LexErr: kind}
}

// errorTokenAt builds an error token spanning the single character at pos,
// used when the failure point is inside a literal rather than at its start.
func (l *Lexer) errorTokenAt(kind LexErrorKind, pos int) Token {
	end := pos + 1
	if pos < len(l.input) {
		_, size := utf8.DecodeRuneInString(l.input[pos:])
		end = pos + size
	}
	return Token{Kind: TokenError, Span: MakeSpan(uint32(pos), uint32(end), l.fileID), LexErr: kind}
}

// scanComment scans `//`, `///` and `//!` comments. The token text is
// everything after the comment marker up to the end of line.
func (l *Lexer) scanComment() Token {
	start := l.pos
	l.readChar() // first /
	l.readChar() // second /

	kind := TokenComment
	switch l.ch {
	case '/':
		kind = TokenItemDocComment
		l.readChar()
	case '!':
		kind = TokenModuleDocComment
		l.readChar()
	}

	textStart := l.pos
	for !l.atEnd() && l.ch != '\n' {
		l.readChar()
	}

	return Token{
		Kind: kind,
		Span: l.spanFrom(start),
		Str:  l.input[textStart:l.pos],
	}
}

// scanName scans an identifier or reserved word.
func (l *Lexer) scanName() Token {
	start := l.pos
	for isIDContinue(l.ch) {
		l.readChar()
	}
	name := l.input[start:l.pos]
	span := l.spanFrom(start)

	if kind, ok := reservedWords[name]; ok {
		return Token{Kind: kind, Span: span}
	}
	return Token{
		Kind:   TokenIdentifier,
		Span:   span,
		Symbol: l.interner.Intern(name),
	}
}

// scanWrappedIdentifier scans a backtick-wrapped identifier: `name`. The
// backticks let reserved words be used as plain identifiers.
func (l *Lexer) scanWrappedIdentifier() Token {
	start := l.pos
	l.readChar() // opening backtick

	textStart := l.pos
	for !l.atEnd() && l.ch != '`' && l.ch != '\n' {
		l.readChar()
	}
	if l.ch != '`' {
		return l.errorToken(LexErrorUnterminatedWrappedIdentifier, start)
	}
	name := l.input[textStart:l.pos]
	l.readChar() // closing backtick

	if name == "" {
		return l.errorToken(LexErrorEmptyWrappedIdentifier, start)
	}
	return Token{
		Kind:   TokenIdentifier,
		Span:   l.spanFrom(start),
		Symbol: l.interner.Intern(name),
	}
}

// scanNumber scans integer, float and imaginary literals. Digits may be
// separated with `_`. A `.` only starts a fraction when followed by a
// digit, so range expressions like `1..n` still lex cleanly.
func (l *Lexer) scanNumber() Token {
	start := l.pos

	for isDecimalDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}

	isFloat := false
	if l.ch == '.' && isDecimalDigit(l.peekChar()) {
		isFloat = true
		l.readChar()
		for isDecimalDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		isFloat = true
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		if !isDecimalDigit(l.ch) {
			return l.errorToken(LexErrorInvalidNumber, start)
		}
		for isDecimalDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
	}

	text := strings.ReplaceAll(l.input[start:l.pos], "_", "")

	if l.ch == 'i' {
		l.readChar()
		value, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return l.errorToken(LexErrorInvalidNumber, start)
		}
		return Token{Kind: TokenImaginary, Span: l.spanFrom(start), Float: value}
	}

	if isFloat {
		value, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return l.errorToken(LexErrorInvalidNumber, start)
		}
		return Token{Kind: TokenFloat, Span: l.spanFrom(start), Float: value}
	}

	value, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return l.errorToken(LexErrorInvalidNumber, start)
	}
	return Token{Kind: TokenInteger, Span: l.spanFrom(start), Int: value}
}

// scanEscape decodes one escape sequence. The leading backslash has already
// been consumed. On failure it returns the error kind plus the byte offset
// of the offending character, so the error token can point at the exact
// failure position inside the literal.
func (l *Lexer) scanEscape() (rune, LexErrorKind, int) {
	if l.atEnd() {
		return 0, LexErrorEmptyEscape, l.pos
	}

	switch l.ch {
	case 'b':
		l.readChar()
		return '\b', LexErrorNone, 0
	case 'f':
		l.readChar()
		return '\f', LexErrorNone, 0
	case 'n':
		l.readChar()
		return '\n', LexErrorNone, 0
	case 'r':
		l.readChar()
		return '\r', LexErrorNone, 0
	case 't':
		l.readChar()
		return '\t', LexErrorNone, 0
	case '\\':
		l.readChar()
		return '\\', LexErrorNone, 0
	case '\'':
		l.readChar()
		return '\'', LexErrorNone, 0
	case '"':
		l.readChar()
		return '"', LexErrorNone, 0
	case 'x':
		l.readChar()
		return l.scanBracedEscape(2,
			LexErrorExpectedOpenBraceInByteEscape,
			LexErrorExpectedCloseBraceInByteEscape,
			LexErrorExpectedDigitInByteEscape,
			LexErrorInvalidByteEscape)
	case 'u':
		l.readChar()
		return l.scanBracedEscape(4,
			LexErrorExpectedOpenBraceInUnicodeEscape,
			LexErrorExpectedCloseBraceInUnicodeEscape,
			LexErrorExpectedDigitInUnicodeEscape,
			LexErrorInvalidUnicodeEscape)
	case 'U':
		l.readChar()
		return l.scanBracedEscape(8,
			LexErrorExpectedOpenBraceInUnicodeEscape,
			LexErrorExpectedCloseBraceInUnicodeEscape,
			LexErrorExpectedDigitInUnicodeEscape,
			LexErrorInvalidUnicodeEscape)
	}
	return 0, LexErrorUnknownEscape, l.pos
}

// scanBracedEscape decodes `{XX..}` with exactly digits hex digits, as in
// \x{2B} or \u{1F60}.
func (l *Lexer) scanBracedEscape(digits int, noOpen, noClose, noDigit, invalid LexErrorKind) (rune, LexErrorKind, int) {
	if l.ch != '{' {
		return 0, noOpen, l.pos
	}
	l.readChar()

	value := rune(0)
	for i := 0; i < digits; i++ {
		if !isHexDigit(l.ch) {
			return 0, noDigit, l.pos
		}
		d, _ := strconv.ParseUint(string(l.ch), 16, 8)
		value = value<<4 | rune(d)
		l.readChar()
	}
	if l.ch != '}' {
		return 0, noClose, l.pos
	}
	closePos := l.pos
	l.readChar()

	if !utf8.ValidRune(value) {
		return 0, invalid, closePos
	}
	return value, LexErrorNone, 0
}

// scanString scans a double-quoted string literal, decoding escapes into
// the token's Str payload.
func (l *Lexer) scanString() Token {
	start := l.pos
	l.readChar() // opening quote

	var sb strings.Builder
	for !l.atEnd() && l.ch != '"' && l.ch != '\n' {
		if l.ch == '\\' {
			l.readChar()
			r, errKind, errPos := l.scanEscape()
			if errKind != LexErrorNone {
				return l.errorTokenAt(errKind, errPos)
			}
			sb.WriteRune(r)
			continue
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	if l.ch != '"' {
		return l.errorToken(LexErrorUnterminatedString, start)
	}
	l.readChar() // closing quote

	return Token{Kind: TokenString, Span: l.spanFrom(start), Str: sb.String()}
}

// scanChar scans a single-quoted character literal.
func (l *Lexer) scanChar() Token {
	start := l.pos
	l.readChar() // opening quote

	var value rune
	count := 0
	for !l.atEnd() && l.ch != '\'' && l.ch != '\n' {
		if l.ch == '\\' {
			l.readChar()
			r, errKind, errPos := l.scanEscape()
			if errKind != LexErrorNone {
				return l.errorTokenAt(errKind, errPos)
			}
			value = r
		} else {
			value = l.ch
			l.readChar()
		}
		count++
	}
	if l.ch != '\'' {
		return l.errorToken(LexErrorUnterminatedChar, start)
	}
	l.readChar() // closing quote

	switch {
	case count == 0:
		return l.errorToken(LexErrorEmptyCharLiteral, start)
	case count > 1:
		return l.errorToken(LexErrorMoreThanOneCharInCharLiteral, start)
	}
	return Token{Kind: TokenChar, Span: l.spanFrom(start), Char: value}
}

// scanPunctuator scans operator and delimiter tokens, longest match first.
func (l *Lexer) scanPunctuator() Token {
	start := l.pos
	next := l.peekChar()

	two := func(kind TokenKind) Token {
		l.readChar()
		l.readChar()
		return Token{Kind: kind, Span: l.spanFrom(start)}
	}
	one := func(kind TokenKind) Token {
		l.readChar()
		return Token{Kind: kind, Span: l.spanFrom(start)}
	}

	switch l.ch {
	case '+':
		switch next {
		case '+':
			return two(TokenPlusPlus)
		case '=':
			return two(TokenPlusEq)
		}
		return one(TokenPlus)
	case '-':
		switch next {
		case '-':
			return two(TokenMinusMinus)
		case '=':
			return two(TokenMinusEq)
		}
		return one(TokenMinus)
	case '*':
		switch next {
		case '*':
			return two(TokenStarStar)
		case '=':
			return two(TokenStarEq)
		}
		return one(TokenStar)
	case '/':
		if next == '=' {
			return two(TokenSlashEq)
		}
		return one(TokenSlash)
	case '%':
		if next == '=' {
			return two(TokenPercentEq)
		}
		return one(TokenPercent)
	case '=':
		switch next {
		case '=':
			return two(TokenEq)
		case '>':
			return two(TokenFatArrow)
		}
		return one(TokenAssign)
	case '!':
		if next == '=' {
			return two(TokenNotEq)
		}
		return one(TokenBang)
	case '>':
		switch next {
		case '>':
			return two(TokenRightShift)
		case '=':
			return two(TokenGreaterEq)
		}
		return one(TokenGreater)
	case '<':
		switch next {
		case '<':
			return two(TokenLeftShift)
		case '=':
			return two(TokenLessEq)
		}
		return one(TokenLess)
	case '|':
		switch next {
		case '|':
			return two(TokenOrOr)
		case '=':
			return two(TokenBarEq)
		}
		return one(TokenBar)
	case '&':
		switch next {
		case '&':
			return two(TokenAndAnd)
		case '=':
			return two(TokenAmpEq)
		}
		return one(TokenAmp)
	case '^':
		if next == '=' {
			return two(TokenCaretEq)
		}
		return one(TokenCaret)
	case '~':
		return one(TokenTilde)
	case '?':
		return one(TokenQuestion)
	case '@':
		return one(TokenAt)
	case '#':
		return one(TokenHash)
	case '(':
		return one(TokenOpenParen)
	case ')':
		return one(TokenCloseParen)
	case '[':
		return one(TokenOpenBracket)
	case ']':
		return one(TokenCloseBracket)
	case '{':
		return one(TokenOpenBrace)
	case '}':
		return one(TokenCloseBrace)
	case ',':
		return one(TokenComma)
	case ';':
		return one(TokenSemicolon)
	case ':':
		return one(TokenColon)
	case '.':
		if next == '.' {
			return two(TokenDotDot)
		}
		return one(TokenDot)
	}

	l.readChar()
	return l.errorToken(LexErrorUnexpectedChar, start)
}
