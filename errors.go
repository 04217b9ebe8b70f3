package descent

import (
	"errors"
	"strconv"
)

var (
	// ErrNoMatch indicates that no prefix of the input parses as an expression.
	ErrNoMatch = errors.New("descent: no expression")
	// ErrTrailing indicates that an expression parsed but left input behind.
	ErrTrailing = errors.New("descent: unparsed input after expression")
)

// OperatorError is an error constructing an Operator node.
type OperatorError struct {
	// Rune is the operator token's character, or 0 if there was no token.
	Rune rune
	// Missing is whether the operator was valid but an operand was nil.
	Missing bool
}

func (err *OperatorError) Error() string {
	switch {
	case err.Rune == 0:
		return "descent: operator node without operator token"
	case err.Missing:
		return "descent: operator " + strconv.QuoteRune(err.Rune) + " missing an operand"
	default:
		return "descent: invalid operator " + strconv.QuoteRune(err.Rune)
	}
}

// DomainError is an error from an arithmetic operation with no defined result
// when evaluating with a Context, e.g. 0/0. Plain Eval never produces one.
type DomainError struct {
	// Op is the operator.
	Op rune
	// X and Y are the operands as text.
	X, Y string
}

func (err *DomainError) Error() string {
	return "descent: " + err.X + " " + string(err.Op) + " " + err.Y + " is undefined"
}
