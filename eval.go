package descent

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// Eval evaluates an expression tree with float64 arithmetic. Division by zero
// follows IEEE 754, so 1/0 is +Inf and 0/0 is NaN.
//
// Every tree produced by Parse can be evaluated. Eval panics on trees that
// Parse never produces: a bare Token, an Operator without a valid operator or
// operands, or a nil node.
func Eval(n Node) float64 {
	switch n := n.(type) {
	case *Operator:
		op := checkop(n)
		// Evaluate left before right.
		l := Eval(n.left)
		r := Eval(n.right)
		switch op {
		case '+':
			return l + r
		case '-':
			return l - r
		case '*':
			return l * r
		default:
			return l / r
		}
	case *Number:
		return n.v
	case *Negate:
		return -Eval(checkneg(n))
	default:
		panic(defect(n))
	}
}

// EvalString is a shortcut to parse and evaluate an expression. It returns
// ErrNoMatch if src does not begin with an expression. Like Parse, it ignores
// input following the expression.
func EvalString(src string) (float64, error) {
	n := Parse(src)
	if n == nil {
		return 0, ErrNoMatch
	}
	return Eval(n), nil
}

// Context holds settings for evaluating expressions with arbitrary-precision
// binary floats or decimals. A Context may be shared by concurrent calls.
type Context struct {
	prec   uint
	places int32
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption(*Context)
}

type (
	precopt   uint
	placesopt int32
)

func (o precopt) ctxOption(ctx *Context)   { ctx.prec = uint(o) }
func (o placesopt) ctxOption(ctx *Context) { ctx.places = int32(o) }

// Prec sets the mantissa precision in bits of Context.Big results. A precision
// of 0 is replaced with the default, 64.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// Places sets the number of decimal places to which Context.Decimal rounds
// quotients. Negative values round to the left of the decimal point.
func Places(places int32) ContextOption {
	return placesopt(places)
}

// NewContext creates a new evaluation context. If no precision is given, the
// default is 64 bits. If no decimal places are given, the default is 16.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{prec: 64, places: 16}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.ctxOption(&ctx)
	}
	if ctx.prec == 0 {
		ctx.prec = 64
	}
	return &ctx
}

// Prec returns the precision of Big results.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// Places returns the rounding of Decimal quotients.
func (ctx *Context) Places() int32 {
	return ctx.places
}

// Big evaluates an expression tree with math/big floats. Operations with no
// defined result, such as 0/0 or Inf-Inf, produce a *DomainError. Nonzero
// values divided by zero are infinite, as with Eval. Big panics on the same
// invalid trees as Eval.
func (ctx *Context) Big(n Node) (*big.Float, error) {
	switch n := n.(type) {
	case *Operator:
		op := checkop(n)
		l, err := ctx.Big(n.left)
		if err != nil {
			return nil, err
		}
		r, err := ctx.Big(n.right)
		if err != nil {
			return nil, err
		}
		return ctx.bigop(op, l, r)
	case *Number:
		return new(big.Float).SetPrec(ctx.prec).SetFloat64(n.v), nil
	case *Negate:
		v, err := ctx.Big(checkneg(n))
		if err != nil {
			return nil, err
		}
		return v.Neg(v), nil
	default:
		panic(defect(n))
	}
}

// bigop applies op. math/big panics with ErrNaN where IEEE arithmetic would
// produce NaN; that becomes a DomainError.
func (ctx *Context) bigop(op rune, l, r *big.Float) (z *big.Float, err error) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		if _, ok := p.(big.ErrNaN); !ok {
			panic(p)
		}
		z, err = nil, &DomainError{Op: op, X: l.String(), Y: r.String()}
	}()
	z = new(big.Float).SetPrec(ctx.prec)
	switch op {
	case '+':
		z.Add(l, r)
	case '-':
		z.Sub(l, r)
	case '*':
		z.Mul(l, r)
	default:
		z.Quo(l, r)
	}
	return z, nil
}

// Decimal evaluates an expression tree with decimal arithmetic. Sums,
// differences, and products are exact; quotients are rounded to the context's
// decimal places. Division by zero produces a *DomainError. Decimal panics on
// the same invalid trees as Eval.
func (ctx *Context) Decimal(n Node) (decimal.Decimal, error) {
	switch n := n.(type) {
	case *Operator:
		op := checkop(n)
		l, err := ctx.Decimal(n.left)
		if err != nil {
			return decimal.Zero, err
		}
		r, err := ctx.Decimal(n.right)
		if err != nil {
			return decimal.Zero, err
		}
		switch op {
		case '+':
			return l.Add(r), nil
		case '-':
			return l.Sub(r), nil
		case '*':
			return l.Mul(r), nil
		default:
			if r.IsZero() {
				return decimal.Zero, &DomainError{Op: op, X: l.String(), Y: r.String()}
			}
			return l.DivRound(r, ctx.places), nil
		}
	case *Number:
		return decimal.NewFromFloat(n.v), nil
	case *Negate:
		v, err := ctx.Decimal(checkneg(n))
		if err != nil {
			return decimal.Zero, err
		}
		return v.Neg(), nil
	default:
		panic(defect(n))
	}
}

// checkop returns the operator of an Operator node, panicking if the node
// could not have been built by NewOperator.
func checkop(n *Operator) rune {
	if n == nil || n.op == nil || !IsOperator(n.op.r) || n.left == nil || n.right == nil {
		panic(defect(n))
	}
	return n.op.r
}

// checkneg returns the operand of a Negate node, panicking if it is missing.
func checkneg(n *Negate) Node {
	if n == nil || n.x == nil {
		panic(defect(n))
	}
	return n.x
}

// defect describes a node that cannot be evaluated.
func defect(n Node) string {
	switch n := n.(type) {
	case nil:
		return "descent: eval on nil node"
	case *Token:
		if n == nil {
			break
		}
		return "descent: got token inside an expression " + n.String()
	case *Operator:
		if n == nil {
			break
		}
		return "descent: invalid operator node " + n.String()
	case *Negate:
		if n == nil {
			break
		}
		return "descent: invalid negation node " + n.String()
	}
	return fmt.Sprintf("descent: invalid AST node %#v", n)
}
