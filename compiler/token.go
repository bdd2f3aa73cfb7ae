package compiler

import "fmt"

// ---------------------------------------------------------------------------
// Token kinds for the Ry lexer
// ---------------------------------------------------------------------------

// TokenKind represents the kind of a token.
type TokenKind int

const (
	// Special tokens
	TokenEOF TokenKind = iota
	TokenError

	// Literals
	TokenInteger   // 42
	TokenFloat     // 3.14, 1e10
	TokenImaginary // 3i, 2.5i
	TokenString    // "hello"
	TokenChar      // 'a'
	TokenIdentifier

	// Comments
	TokenComment          // // ...
	TokenModuleDocComment // //! ...
	TokenItemDocComment   // /// ...

	// Keywords
	TokenAs
	TokenBreak
	TokenContinue
	TokenDefer
	TokenDyn
	TokenElse
	TokenEnum
	TokenFalse
	TokenFor
	TokenFun
	TokenIf
	TokenImpl
	TokenImport
	TokenLet
	TokenMatch
	TokenPub
	TokenReturn
	TokenStruct
	TokenTrait
	TokenTrue
	TokenType
	TokenWhere
	TokenWhile

	// Punctuators
	TokenPlus         // +
	TokenPlusPlus     // ++
	TokenPlusEq       // +=
	TokenMinus        // -
	TokenMinusMinus   // --
	TokenMinusEq      // -=
	TokenStar         // *
	TokenStarStar     // **
	TokenStarEq       // *=
	TokenSlash        // /
	TokenSlashEq      // /=
	TokenPercent      // %
	TokenPercentEq    // %=
	TokenAssign       // =
	TokenEq           // ==
	TokenFatArrow     // =>
	TokenBang         // !
	TokenNotEq        // !=
	TokenGreater      // >
	TokenGreaterEq    // >=
	TokenRightShift   // >>
	TokenLess         // <
	TokenLessEq       // <=
	TokenLeftShift    // <<
	TokenBar          // |
	TokenOrOr         // ||
	TokenBarEq        // |=
	TokenAmp          // &
	TokenAndAnd       // &&
	TokenAmpEq        // &=
	TokenCaret        // ^
	TokenCaretEq      // ^=
	TokenTilde        // ~
	TokenQuestion     // ?
	TokenAt           // @
	TokenHash         // #
	TokenOpenParen    // (
	TokenCloseParen   // )
	TokenOpenBracket  // [
	TokenCloseBracket // ]
	TokenOpenBrace    // {
	TokenCloseBrace   // }
	TokenComma        // ,
	TokenSemicolon    // ;
	TokenColon        // :
	TokenDot          // .
	TokenDotDot       // ..
)

var tokenNames = map[TokenKind]string{
	TokenEOF:              "EOF",
	TokenError:            "ERROR",
	TokenInteger:          "INTEGER",
	TokenFloat:            "FLOAT",
	TokenImaginary:        "IMAGINARY",
	TokenString:           "STRING",
	TokenChar:             "CHARACTER",
	TokenIdentifier:       "IDENTIFIER",
	TokenComment:          "COMMENT",
	TokenModuleDocComment: "MODULE_DOC_COMMENT",
	TokenItemDocComment:   "ITEM_DOC_COMMENT",
	TokenAs:               "as",
	TokenBreak:            "break",
	TokenContinue:         "continue",
	TokenDefer:            "defer",
	TokenDyn:              "dyn",
	TokenElse:             "else",
	TokenEnum:             "enum",
	TokenFalse:            "false",
	TokenFor:              "for",
	TokenFun:              "fun",
	TokenIf:               "if",
	TokenImpl:             "impl",
	TokenImport:           "import",
	TokenLet:              "let",
	TokenMatch:            "match",
	TokenPub:              "pub",
	TokenReturn:           "return",
	TokenStruct:           "struct",
	TokenTrait:            "trait",
	TokenTrue:             "true",
	TokenType:             "type",
	TokenWhere:            "where",
	TokenWhile:            "while",
	TokenPlus:             "+",
	TokenPlusPlus:         "++",
	TokenPlusEq:           "+=",
	TokenMinus:            "-",
	TokenMinusMinus:       "--",
	TokenMinusEq:          "-=",
	TokenStar:             "*",
	TokenStarStar:         "**",
	TokenStarEq:           "*=",
	TokenSlash:            "/",
	TokenSlashEq:          "/=",
	TokenPercent:          "%",
	TokenPercentEq:        "%=",
	TokenAssign:           "=",
	TokenEq:               "==",
	TokenFatArrow:         "=>",
	TokenBang:             "!",
	TokenNotEq:            "!=",
	TokenGreater:          ">",
	TokenGreaterEq:        ">=",
	TokenRightShift:       ">>",
	TokenLess:             "<",
	TokenLessEq:           "<=",
	TokenLeftShift:        "<<",
	TokenBar:              "|",
	TokenOrOr:             "||",
	TokenBarEq:            "|=",
	TokenAmp:              "&",
	TokenAndAnd:           "&&",
	TokenAmpEq:            "&=",
	TokenCaret:            "^",
	TokenCaretEq:          "^=",
	TokenTilde:            "~",
	TokenQuestion:         "?",
	TokenAt:               "@",
	TokenHash:             "#",
	TokenOpenParen:        "(",
	TokenCloseParen:       ")",
	TokenOpenBracket:      "[",
	TokenCloseBracket:     "]",
	TokenOpenBrace:        "{",
	TokenCloseBrace:       "}",
	TokenComma:            ",",
	TokenSemicolon:        ";",
	TokenColon:            ":",
	TokenDot:              ".",
	TokenDotDot:           "..",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Token(%d)", int(k))
}

// Reserved words mapped to their token kinds.
var reservedWords = map[string]TokenKind{
	"as":       TokenAs,
	"break":    TokenBreak,
	"continue": TokenContinue,
	"defer":    TokenDefer,
	"dyn":      TokenDyn,
	"else":     TokenElse,
	"enum":     TokenEnum,
	"false":    TokenFalse,
	"for":      TokenFor,
	"fun":      TokenFun,
	"if":       TokenIf,
	"impl":     TokenImpl,
	"import":   TokenImport,
	"let":      TokenLet,
	"match":    TokenMatch,
	"pub":      TokenPub,
	"return":   TokenReturn,
	"struct":   TokenStruct,
	"trait":    TokenTrait,
	"true":     TokenTrue,
	"type":     TokenType,
	"where":    TokenWhere,
	"while":    TokenWhile,
}

// ---------------------------------------------------------------------------
// Lexical error kinds
// ---------------------------------------------------------------------------

// LexErrorKind identifies the kind of a lexical error token.
type LexErrorKind int

const (
	LexErrorNone LexErrorKind = iota
	LexErrorUnexpectedChar
	LexErrorUnterminatedString
	LexErrorUnterminatedChar
	LexErrorUnterminatedWrappedIdentifier
	LexErrorEmptyCharLiteral
	LexErrorMoreThanOneCharInCharLiteral
	LexErrorEmptyWrappedIdentifier
	LexErrorEmptyEscape
	LexErrorUnknownEscape
	LexErrorExpectedOpenBraceInUnicodeEscape
	LexErrorExpectedCloseBraceInUnicodeEscape
	LexErrorExpectedDigitInUnicodeEscape
	LexErrorInvalidUnicodeEscape
	LexErrorExpectedOpenBraceInByteEscape
	LexErrorExpectedCloseBraceInByteEscape
	LexErrorExpectedDigitInByteEscape
	LexErrorInvalidByteEscape
	LexErrorInvalidNumber
)

var lexErrorMessages = map[LexErrorKind]string{
	LexErrorUnexpectedChar:                    "unexpected character",
	LexErrorUnterminatedString:                "unterminated string literal",
	LexErrorUnterminatedChar:                  "unterminated character literal",
	LexErrorUnterminatedWrappedIdentifier:     "unterminated wrapped identifier",
	LexErrorEmptyCharLiteral:                  "empty character literal",
	LexErrorMoreThanOneCharInCharLiteral:      "more than one character in character literal",
	LexErrorEmptyWrappedIdentifier:            "empty wrapped identifier",
	LexErrorEmptyEscape:                       "empty escape sequence",
	LexErrorUnknownEscape:                     "unknown escape sequence",
	LexErrorExpectedOpenBraceInUnicodeEscape:  "expected `{` in Unicode escape sequence",
	LexErrorExpectedCloseBraceInUnicodeEscape: "expected `}` in Unicode escape sequence",
	LexErrorExpectedDigitInUnicodeEscape:      "expected hexadecimal digit in Unicode escape sequence",
	LexErrorInvalidUnicodeEscape:              "invalid Unicode escape sequence",
	LexErrorExpectedOpenBraceInByteEscape:     "expected `{` in byte escape sequence",
	LexErrorExpectedCloseBraceInByteEscape:    "expected `}` in byte escape sequence",
	LexErrorExpectedDigitInByteEscape:         "expected hexadecimal digit in byte escape sequence",
	LexErrorInvalidByteEscape:                 "invalid byte escape sequence",
	LexErrorInvalidNumber:                     "invalid number literal",
}

func (k LexErrorKind) String() string {
	if msg, ok := lexErrorMessages[k]; ok {
		return msg
	}
	return fmt.Sprintf("LexError(%d)", int(k))
}

// ---------------------------------------------------------------------------
// Token
// ---------------------------------------------------------------------------

// Token is a lexical token: a kind, a span, and the decoded payload for
// literal kinds. Tokens are plain values with no reference back to the lexer.
type Token struct {
	Kind TokenKind
	Span Span

	// Payloads; which field is meaningful depends on Kind.
	Symbol Symbol       // TokenIdentifier
	Int    uint64       // TokenInteger
	Float  float64      // TokenFloat, TokenImaginary
	Str    string       // TokenString, comment kinds (text after the marker)
	Char   rune         // TokenChar
	LexErr LexErrorKind // TokenError
}

func (t Token) String() string {
	switch t.Kind {
	case TokenEOF:
		return "EOF"
	case TokenError:
		return fmt.Sprintf("ERROR(%s)", t.LexErr)
	case TokenInteger:
		return fmt.Sprintf("INTEGER(%d)", t.Int)
	case TokenFloat:
		return fmt.Sprintf("FLOAT(%v)", t.Float)
	case TokenImaginary:
		return fmt.Sprintf("IMAGINARY(%vi)", t.Float)
	case TokenString:
		return fmt.Sprintf("STRING(%q)", t.Str)
	case TokenChar:
		return fmt.Sprintf("CHARACTER(%q)", t.Char)
	case TokenIdentifier:
		return fmt.Sprintf("IDENTIFIER(#%d)", t.Symbol)
	case TokenComment, TokenModuleDocComment, TokenItemDocComment:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Str)
	}
	return t.Kind.String()
}

// Is reports whether the token has the given kind.
func (t Token) Is(kind TokenKind) bool {
	return t.Kind == kind
}
