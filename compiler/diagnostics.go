package compiler

import "fmt"

// ---------------------------------------------------------------------------
// Diagnostics: error collection shared by lexer clients and the parser
// ---------------------------------------------------------------------------

// Severity of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Stable diagnostic codes. Codes are part of the reporting contract and
// never change meaning.
const (
	CodeLexError   = "E000"
	CodeParseError = "E001"
	CodeScopeError = "E004"
)

// Diagnostic is one reported problem with its source location.
type Diagnostic struct {
	Severity Severity
	Span     Span
	Code     string
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s[%s]: %s", d.Span, d.Severity, d.Code, d.Message)
}

// Diagnostics accumulates diagnostics during a compile. The zero value is
// ready to use.
type Diagnostics struct {
	list []Diagnostic
}

// Error records a parse error diagnostic at span.
func (d *Diagnostics) Error(span Span, format string, args ...interface{}) {
	d.ErrorWithCode(CodeParseError, span, format, args...)
}

// ErrorWithCode records an error diagnostic with an explicit code.
func (d *Diagnostics) ErrorWithCode(code string, span Span, format string, args ...interface{}) {
	d.list = append(d.list, Diagnostic{
		Severity: SeverityError,
		Span:     span,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Warn records a warning diagnostic at span.
func (d *Diagnostics) Warn(span Span, format string, args ...interface{}) {
	d.list = append(d.list, Diagnostic{
		Severity: SeverityWarning,
		Span:     span,
		Code:     CodeParseError,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Append adds a prebuilt diagnostic, used by downstream passes.
func (d *Diagnostics) Append(diag Diagnostic) {
	d.list = append(d.list, diag)
}

// All returns the recorded diagnostics in report order.
func (d *Diagnostics) All() []Diagnostic {
	return d.list
}

// HasErrors reports whether any error-severity diagnostic was recorded.
func (d *Diagnostics) HasErrors() bool {
	for _, diag := range d.list {
		if diag.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Len returns the number of recorded diagnostics.
func (d *Diagnostics) Len() int {
	return len(d.list)
}
