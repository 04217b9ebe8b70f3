package descent

// Rule is a parsing rule. A rule that matches returns its tree with the cursor
// just past what it consumed. A rule that does not match returns nil with the
// cursor where it was on entry.
type Rule func(c *Cursor) Node

// Builder assembles the results of a sequence into one tree. Returning nil
// rejects the sequence even though every part matched.
type Builder func(parts []Node) Node

// Char matches the single character ch, producing a Token.
func Char(ch rune) Rule {
	return func(c *Cursor) Node {
		mark := c.Snapshot()
		if r, ok := c.Next(); ok && r == ch {
			return NewToken(r)
		}
		c.Rollback(mark)
		return nil
	}
}

// Digit matches one decimal digit, producing a Number.
func Digit() Rule {
	return digit
}

func digit(c *Cursor) Node {
	mark := c.Snapshot()
	if r, ok := c.Next(); ok && '0' <= r && r <= '9' {
		return NewNumber(float64(r - '0'))
	}
	c.Rollback(mark)
	return nil
}

// Alt is ordered choice. It tries each rule in turn from the same position and
// returns the first match.
func Alt(rules ...Rule) Rule {
	return func(c *Cursor) Node {
		mark := c.Snapshot()
		for _, r := range rules {
			if n := r(c); n != nil {
				return n
			}
			c.Rollback(mark)
		}
		return nil
	}
}

// Seq matches each rule in order and passes their results to build. If any
// rule fails, the rules after it are not tried.
func Seq(build Builder, rules ...Rule) Rule {
	return func(c *Cursor) Node {
		mark := c.Snapshot()
		parts := make([]Node, 0, len(rules))
		for _, r := range rules {
			n := r(c)
			if n == nil {
				c.Rollback(mark)
				return nil
			}
			parts = append(parts, n)
		}
		n := build(parts)
		if n == nil {
			c.Rollback(mark)
			return nil
		}
		return n
	}
}

// Named labels a rule for tracing. It does not change what the rule matches.
func Named(name string, r Rule) Rule {
	return func(c *Cursor) Node {
		if c.trace == nil {
			return r(c)
		}
		start := c.Snapshot()
		n := r(c)
		c.trace(name, start, c.Snapshot(), n != nil)
		return n
	}
}

type memoKey struct {
	rule string
	pos  int
}

type memoEntry struct {
	n   Node
	end int
}

// Memo caches the result of r at each position of a cursor, so that
// backtracking into the same rule at the same place does not parse it again.
// The name must identify r uniquely among memoized rules, and r's result must
// depend only on the cursor position.
func Memo(name string, r Rule) Rule {
	return func(c *Cursor) Node {
		k := memoKey{name, c.Snapshot()}
		if e, ok := c.memo[k]; ok {
			c.Rollback(e.end)
			return e.n
		}
		n := r(c)
		if c.memo == nil {
			c.memo = make(map[memoKey]memoEntry)
		}
		c.memo[k] = memoEntry{n: n, end: c.Snapshot()}
		return n
	}
}
