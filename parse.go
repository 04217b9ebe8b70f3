package descent

// Parse parses an expression from the start of src. The result is nil if no
// prefix of src is an expression. Input after a complete expression is ignored
// unless the RequireEnd option is given. That includes characters outside the
// grammar: "1 + a" parses as 1, with "+ a" left over. Use RequireEnd, or Check
// for an error value, to reject such input.
func Parse(src string, opts ...ParseOption) Node {
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	c := NewCursor(src)
	c.trace = p.trace
	n := ParseCursor(c)
	if n == nil || p.end && !c.Done() {
		return nil
	}
	return n
}

// ParseCursor parses an expression starting at the cursor's position. On
// success, the cursor is left just past the expression, so callers can check
// c.Done to decide whether trailing input is acceptable. On failure, the
// cursor does not move.
func ParseCursor(c *Cursor) Node {
	return expr(c)
}

// Check parses src and reports why it is not a complete expression: ErrNoMatch
// if nothing parses, or ErrTrailing if something follows the expression.
func Check(src string) error {
	c := NewCursor(src)
	if ParseCursor(c) == nil {
		return ErrNoMatch
	}
	if !c.Done() {
		return ErrTrailing
	}
	return nil
}
