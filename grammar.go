package descent

// expr = sum
// sum  = mul '+' sum | mul '-' sum | mul
// mul  = atom '*' mul | atom '/' mul | atom
// atom = '(' expr ')' | number | neg
// neg  = '-' atom
//
// The rules refer to each other, so they are assigned in init, and the
// functions below forward to them. The recursive rules are memoized: sum and
// mul parse their left operand once per alternative, and without the memo
// that cost multiplies with each level of parentheses.
var exprRule, sumRule, mulRule, atomRule, negRule Rule

func init() {
	exprRule = Named("expr", sum)
	sumRule = Named("sum", Memo("sum", Alt(
		Seq(binary, mul, Char('+'), sum),
		Seq(binary, mul, Char('-'), sum),
		mul,
	)))
	mulRule = Named("mul", Memo("mul", Alt(
		Seq(binary, atom, Char('*'), mul),
		Seq(binary, atom, Char('/'), mul),
		atom,
	)))
	atomRule = Named("atom", Memo("atom", Alt(
		Seq(group, Char('('), expr, Char(')')),
		Named("number", digit),
		neg,
	)))
	negRule = Named("neg", Seq(negate, Char('-'), atom))
}

func expr(c *Cursor) Node { return exprRule(c) }
func sum(c *Cursor) Node  { return sumRule(c) }
func mul(c *Cursor) Node  { return mulRule(c) }
func atom(c *Cursor) Node { return atomRule(c) }
func neg(c *Cursor) Node  { return negRule(c) }

// binary builds an Operator from left, operator token, right.
func binary(parts []Node) Node {
	op, ok := parts[1].(*Token)
	if !ok {
		return nil
	}
	n, err := NewOperator(op, parts[0], parts[2])
	if err != nil {
		return nil
	}
	return n
}

// group drops the brackets around a parenthesized expression.
func group(parts []Node) Node {
	return parts[1]
}

// negate wraps the operand of unary minus.
func negate(parts []Node) Node {
	return NewNegate(parts[1])
}
