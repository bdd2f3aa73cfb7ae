package compiler

// Binding strengths for the expression parser. Higher binds tighter. All
// binary operators are left associative.
const (
	precLowest = iota
	precAssign
	precLogicalOr
	precLogicalAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precComparison
	precShift
	precSum
	precProduct
	precPower
	precCast
	precUnary
	precCallOrField
)

var binaryPrecedences = map[TokenKind]int{
	TokenAssign:     precAssign,
	TokenPlusEq:     precAssign,
	TokenMinusEq:    precAssign,
	TokenStarEq:     precAssign,
	TokenSlashEq:    precAssign,
	TokenPercentEq:  precAssign,
	TokenBarEq:      precAssign,
	TokenAmpEq:      precAssign,
	TokenCaretEq:    precAssign,
	TokenOrOr:       precLogicalOr,
	TokenAndAnd:     precLogicalAnd,
	TokenBar:        precBitOr,
	TokenCaret:      precBitXor,
	TokenAmp:        precBitAnd,
	TokenEq:         precEquality,
	TokenNotEq:      precEquality,
	TokenLess:       precComparison,
	TokenLessEq:     precComparison,
	TokenGreater:    precComparison,
	TokenGreaterEq:  precComparison,
	TokenLeftShift:  precShift,
	TokenRightShift: precShift,
	TokenPlus:       precSum,
	TokenMinus:      precSum,
	TokenStar:       precProduct,
	TokenSlash:      precProduct,
	TokenPercent:    precProduct,
	TokenStarStar:   precPower,
}

// binaryPrecedence returns the binding strength of kind as a binary
// operator, or precLowest when kind is not one.
func binaryPrecedence(kind TokenKind) int {
	if p, ok := binaryPrecedences[kind]; ok {
		return p
	}
	return precLowest
}

func isPrefixOperator(kind TokenKind) bool {
	switch kind {
	case TokenBang, TokenTilde, TokenPlusPlus, TokenMinusMinus, TokenMinus, TokenPlus:
		return true
	}
	return false
}

func isPostfixOperator(kind TokenKind) bool {
	switch kind {
	case TokenQuestion, TokenPlusPlus, TokenMinusMinus:
		return true
	}
	return false
}
