package descent

import (
	"strconv"
	"strings"
)

// Node is a node of an expression tree. The implementations are *Operator,
// *Number, *Token, and *Negate; no others exist.
type Node interface {
	// String formats the subtree with every node bracketed, alternating round
	// and square brackets by depth.
	String() string

	fmt(b *strings.Builder, square bool)
}

// Operator is a binary operation. Its operator is a Token leaf holding one of
// + - * /.
type Operator struct {
	op          *Token
	left, right Node
}

// NewOperator creates a binary operation. The result is an *OperatorError if
// op is not one of the four arithmetic operators or either operand is nil.
func NewOperator(op *Token, left, right Node) (*Operator, error) {
	if op == nil {
		return nil, &OperatorError{}
	}
	if !IsOperator(op.r) {
		return nil, &OperatorError{Rune: op.r}
	}
	if left == nil || right == nil {
		return nil, &OperatorError{Rune: op.r, Missing: true}
	}
	return &Operator{op: op, left: left, right: right}, nil
}

// IsOperator reports whether r is one of the binary operators + - * /.
func IsOperator(r rune) bool {
	switch r {
	case '+', '-', '*', '/':
		return true
	default:
		return false
	}
}

// Op returns the operator token.
func (n *Operator) Op() *Token { return n.op }

// Left returns the left operand.
func (n *Operator) Left() Node { return n.left }

// Right returns the right operand.
func (n *Operator) Right() Node { return n.right }

func (n *Operator) String() string { return format(n) }

func (n *Operator) fmt(b *strings.Builder, square bool) {
	l, r := brackets(square)
	b.WriteByte(l)
	defer b.WriteByte(r)
	if n.op == nil || n.left == nil || n.right == nil {
		// Invalid nodes use invalid characters.
		b.WriteString("$#$")
		return
	}
	n.left.fmt(b, !square)
	b.WriteByte(' ')
	b.WriteRune(n.op.r)
	b.WriteByte(' ')
	n.right.fmt(b, !square)
}

// Number is a numeric leaf.
type Number struct {
	v float64
}

// NewNumber creates a numeric leaf.
func NewNumber(v float64) *Number {
	return &Number{v: v}
}

// Value returns the number's value.
func (n *Number) Value() float64 { return n.v }

func (n *Number) String() string { return format(n) }

func (n *Number) fmt(b *strings.Builder, square bool) {
	l, r := brackets(square)
	b.WriteByte(l)
	b.WriteString(strconv.FormatFloat(n.v, 'g', -1, 64))
	b.WriteByte(r)
}

// Token is a single matched character. Tokens label operators and
// punctuation; they are never evaluated on their own.
type Token struct {
	r rune
}

// NewToken creates a token leaf.
func NewToken(r rune) *Token {
	return &Token{r: r}
}

// Rune returns the matched character.
func (n *Token) Rune() rune { return n.r }

func (n *Token) String() string { return format(n) }

func (n *Token) fmt(b *strings.Builder, square bool) {
	l, r := brackets(square)
	b.WriteByte(l)
	b.WriteByte('\'')
	b.WriteRune(n.r)
	b.WriteByte('\'')
	b.WriteByte(r)
}

// Negate is unary minus.
type Negate struct {
	x Node
}

// NewNegate creates a negation of x.
func NewNegate(x Node) *Negate {
	return &Negate{x: x}
}

// X returns the negated operand.
func (n *Negate) X() Node { return n.x }

func (n *Negate) String() string { return format(n) }

func (n *Negate) fmt(b *strings.Builder, square bool) {
	l, r := brackets(square)
	b.WriteByte(l)
	defer b.WriteByte(r)
	b.WriteByte('-')
	if n.x == nil {
		b.WriteByte('$')
		return
	}
	n.x.fmt(b, !square)
}

func format(n Node) string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

func brackets(square bool) (byte, byte) {
	if square {
		return '[', ']'
	}
	return '(', ')'
}
