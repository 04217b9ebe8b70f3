// Package combinator recognizes the descent grammar with a general-purpose
// parser combinator library. It builds the same trees as descent.Parse and
// serves as a second engine for the CLI and as an oracle in tests.
//
// The sum and mul rules are left-factored, so that
//
//	sum = mul ['+' sum | '-' sum]
//	mul = atom ['*' mul | '/' mul]
//
// which accepts the same inputs and builds the same right-associative trees
// as the ordered alternatives without re-parsing the shared prefix.
package combinator

import (
	"errors"
	"unicode"

	pc "github.com/shibukawa/parsercombinator"

	"github.com/zephyrtronium/descent"
)

type parser = pc.Parser[descent.Node]

type token = pc.Token[descent.Node]

type pctx = pc.ParseContext[descent.Node]

var expr, sum, mul, atom, neg parser

func init() {
	expr = pc.Lazy(func() parser { return sum })

	atom = pc.Trace("atom", pc.Or(
		pc.Trans(pc.Seq(char('('), expr, char(')')), group),
		parser(digit),
		pc.Lazy(func() parser { return neg }),
	))
	neg = pc.Trace("neg", pc.Trans(pc.Seq(char('-'), atom), negate))
	mul = pc.Trace("mul", pc.Trans(
		pc.Seq(atom, pc.Optional(pc.Seq(pc.Or(char('*'), char('/')), pc.Lazy(func() parser { return mul })))),
		binary,
	))
	sum = pc.Trace("sum", pc.Trans(
		pc.Seq(mul, pc.Optional(pc.Seq(pc.Or(char('+'), char('-')), pc.Lazy(func() parser { return sum })))),
		binary,
	))
}

// Parse recognizes the expression at the start of src. It returns the tree
// and the rune offset just past the last rune of the expression. Input after
// the expression is ignored. If no expression matches, the error is
// descent.ErrNoMatch.
func Parse(src string) (descent.Node, int, error) {
	toks := tokenize(src)
	ctx := pc.NewParseContext[descent.Node]()
	ctx.OrMode = pc.OrModeTryFast
	// The default limit rejects long valid input.
	ctx.MaxDepth += depthPerToken * len(toks)
	n, out, err := expr(ctx, toks)
	if err != nil {
		if errors.Is(err, pc.ErrNotMatch) {
			return nil, 0, descent.ErrNoMatch
		}
		return nil, 0, err
	}
	if n == 0 || len(out) != 1 || out[0].Val == nil {
		return nil, 0, descent.ErrNoMatch
	}
	return out[0].Val, toks[n-1].Pos.Index + 1, nil
}

// depthPerToken bounds the combinator layers a single token can add. A
// parenthesis level is about a dozen layers over two tokens and a '-' prefix
// about six over one.
const depthPerToken = 8

// tokenize makes one raw token per non-space rune. Pos.Index is the rune
// offset in src.
func tokenize(src string) []token {
	var toks []token
	i := 0
	for _, r := range src {
		if !unicode.IsSpace(r) {
			toks = append(toks, token{
				Type: "raw",
				Pos:  &pc.Pos{Line: 1, Col: i + 1, Index: i},
				Raw:  string(r),
			})
		}
		i++
	}
	return toks
}

func char(ch rune) parser {
	s := string(ch)
	return func(ctx *pctx, src []token) (int, []token, error) {
		if len(src) > 0 && src[0].Raw == s {
			return 1, []token{{Type: "token", Pos: src[0].Pos, Raw: s, Val: descent.NewToken(ch)}}, nil
		}
		return 0, nil, pc.ErrNotMatch
	}
}

func digit(ctx *pctx, src []token) (int, []token, error) {
	if len(src) > 0 {
		r := []rune(src[0].Raw)
		if len(r) == 1 && '0' <= r[0] && r[0] <= '9' {
			return 1, []token{{Type: "number", Pos: src[0].Pos, Raw: src[0].Raw, Val: descent.NewNumber(float64(r[0] - '0'))}}, nil
		}
	}
	return 0, nil, pc.ErrNotMatch
}

// binary folds an operand and an optional operator and right operand.
func binary(ctx *pctx, toks []token) ([]token, error) {
	switch len(toks) {
	case 1:
		return toks, nil
	case 3:
		op, ok := toks[1].Val.(*descent.Token)
		if !ok {
			return nil, pc.ErrNotMatch
		}
		n, err := descent.NewOperator(op, toks[0].Val, toks[2].Val)
		if err != nil {
			return nil, pc.ErrNotMatch
		}
		return []token{{Type: "operator", Pos: toks[0].Pos, Val: n}}, nil
	default:
		return nil, pc.ErrNotMatch
	}
}

func group(ctx *pctx, toks []token) ([]token, error) {
	return []token{{Type: "group", Pos: toks[0].Pos, Val: toks[1].Val}}, nil
}

func negate(ctx *pctx, toks []token) ([]token, error) {
	return []token{{Type: "negate", Pos: toks[0].Pos, Val: descent.NewNegate(toks[1].Val)}}, nil
}
