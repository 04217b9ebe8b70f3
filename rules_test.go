package descent

import (
	"testing"
)

func TestChar(t *testing.T) {
	cases := []struct {
		name string
		src  string
		ch   rune
		ok   bool
		end  int
	}{
		{"match", "+", '+', true, 1},
		{"space", "  +", '+', true, 3},
		{"rest", "+1", '+', true, 1},
		{"other", "-", '+', false, 0},
		{"empty", "", '+', false, 0},
		{"blank", "   ", '+', false, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cur := NewCursor(c.src)
			n := Char(c.ch)(cur)
			if (n != nil) != c.ok {
				t.Fatalf("matching %q on %q: want ok=%t, got %v", c.ch, c.src, c.ok, n)
			}
			if cur.Snapshot() != c.end {
				t.Errorf("matching %q on %q: want end %d, got %d", c.ch, c.src, c.end, cur.Snapshot())
			}
			if !c.ok {
				return
			}
			tok, isTok := n.(*Token)
			if !isTok || tok.Rune() != c.ch {
				t.Errorf("matching %q on %q: want token, got %v", c.ch, c.src, n)
			}
		})
	}
}

func TestDigit(t *testing.T) {
	for r := '0'; r <= '9'; r++ {
		cur := NewCursor(string(r) + "7")
		n := Digit()(cur)
		num, ok := n.(*Number)
		if !ok {
			t.Errorf("digit %q gave %v", r, n)
			continue
		}
		if num.Value() != float64(r-'0') {
			t.Errorf("digit %q gave value %g", r, num.Value())
		}
		if cur.Snapshot() != 1 {
			t.Errorf("digit %q consumed to %d", r, cur.Snapshot())
		}
	}
	for _, src := range []string{"", " ", "a", "+", "(", "٣", "½", "."} {
		cur := NewCursor(src)
		if n := Digit()(cur); n != nil {
			t.Errorf("%q matched digit %v", src, n)
		}
		if cur.Snapshot() != 0 {
			t.Errorf("%q moved cursor to %d", src, cur.Snapshot())
		}
	}
}

func TestAlt(t *testing.T) {
	var tried []rune
	try := func(ch rune) Rule {
		return func(c *Cursor) Node {
			tried = append(tried, ch)
			return Char(ch)(c)
		}
	}
	r := Alt(try('a'), try('b'), try('b'), try('c'))

	cur := NewCursor("b")
	n := r(cur)
	if tok, ok := n.(*Token); !ok || tok.Rune() != 'b' {
		t.Errorf("want token b, got %v", n)
	}
	if string(tried) != "ab" {
		t.Errorf("alternatives after a match were tried: %q", string(tried))
	}

	tried = nil
	cur = NewCursor("d")
	if n := r(cur); n != nil {
		t.Errorf("d matched %v", n)
	}
	if string(tried) != "abbc" {
		t.Errorf("want all alternatives tried, got %q", string(tried))
	}
	if cur.Snapshot() != 0 {
		t.Errorf("failed alternative left cursor at %d", cur.Snapshot())
	}
}

func TestAltRollsBackBetweenAttempts(t *testing.T) {
	// The first alternative consumes "1+" before failing. The second must see
	// the input from the start.
	first := Seq(binary, Digit(), Char('+'), Char('x'))
	second := Seq(func(parts []Node) Node { return parts[0] }, Digit(), Char('+'), Digit())
	cur := NewCursor("1+2")
	n := Alt(first, second)(cur)
	if num, ok := n.(*Number); !ok || num.Value() != 1 {
		t.Errorf("want number 1, got %v", n)
	}
	if !cur.Done() {
		t.Errorf("cursor not at end: %v", cur)
	}
}

func TestSeq(t *testing.T) {
	var got []Node
	keep := func(parts []Node) Node {
		got = append([]Node(nil), parts...)
		return parts[0]
	}
	r := Seq(keep, Char('('), Digit(), Char(')'))

	cur := NewCursor("( 5 ) +")
	if n := r(cur); n == nil {
		t.Fatal("sequence did not match")
	}
	if len(got) != 3 {
		t.Fatalf("builder got %d parts", len(got))
	}
	if num, ok := got[1].(*Number); !ok || num.Value() != 5 {
		t.Errorf("middle part is %v", got[1])
	}
	if cur.Snapshot() != 5 {
		t.Errorf("want cursor at 5, got %d (%v)", cur.Snapshot(), cur)
	}
}

func TestSeqShortCircuits(t *testing.T) {
	called := false
	never := func(c *Cursor) Node {
		called = true
		return Digit()(c)
	}
	built := false
	build := func(parts []Node) Node {
		built = true
		return parts[0]
	}
	cur := NewCursor("1 x 2")
	if n := Seq(build, Digit(), Char('+'), never)(cur); n != nil {
		t.Errorf("matched %v", n)
	}
	if called {
		t.Error("rule after failure was called")
	}
	if built {
		t.Error("builder called after failure")
	}
	if cur.Snapshot() != 0 {
		t.Errorf("cursor at %d after failed sequence", cur.Snapshot())
	}
}

func TestSeqBuilderRejects(t *testing.T) {
	reject := func(parts []Node) Node { return nil }
	cur := NewCursor("1+2")
	if n := Seq(reject, Digit(), Char('+'), Digit())(cur); n != nil {
		t.Errorf("rejected sequence matched %v", n)
	}
	if cur.Snapshot() != 0 {
		t.Errorf("cursor at %d after rejected sequence", cur.Snapshot())
	}
	// A builder rejecting an invalid operator token.
	cur = NewCursor("1%2")
	if n := Seq(binary, Digit(), Char('%'), Digit())(cur); n != nil {
		t.Errorf("binary accepted %%: %v", n)
	}
	if cur.Snapshot() != 0 {
		t.Errorf("cursor at %d after invalid operator", cur.Snapshot())
	}
}

func TestMemo(t *testing.T) {
	calls := 0
	count := func(c *Cursor) Node {
		calls++
		return Digit()(c)
	}
	r := Memo("count", count)
	cur := NewCursor("1 2")
	for i := 0; i < 3; i++ {
		cur.Rollback(0)
		if n := r(cur); n == nil {
			t.Fatalf("iter %d: no match", i)
		}
		if cur.Snapshot() != 1 {
			t.Errorf("iter %d: cursor at %d", i, cur.Snapshot())
		}
	}
	if calls != 1 {
		t.Errorf("want 1 call, got %d", calls)
	}
	if n := r(cur); n == nil {
		t.Fatal("no match at second digit")
	}
	if calls != 2 {
		t.Errorf("new position did not call rule: %d calls", calls)
	}
	// Failures are remembered too.
	cur = NewCursor("x")
	calls = 0
	for i := 0; i < 2; i++ {
		if n := r(cur); n != nil {
			t.Errorf("x matched %v", n)
		}
		if cur.Snapshot() != 0 {
			t.Errorf("failure moved cursor to %d", cur.Snapshot())
		}
	}
	if calls != 1 {
		t.Errorf("want 1 call for failure, got %d", calls)
	}
}

func TestNamed(t *testing.T) {
	type ev struct {
		rule       string
		start, end int
		ok         bool
	}
	var evs []ev
	cur := NewCursor("1x")
	cur.trace = func(rule string, start, end int, ok bool) {
		evs = append(evs, ev{rule, start, end, ok})
	}
	Named("one", Digit())(cur)
	Named("two", Digit())(cur)
	want := []ev{{"one", 0, 1, true}, {"two", 1, 1, false}}
	if len(evs) != len(want) {
		t.Fatalf("want %v, got %v", want, evs)
	}
	for i := range want {
		if evs[i] != want[i] {
			t.Errorf("event %d: want %v, got %v", i, want[i], evs[i])
		}
	}
}

// TestRollbackInvariant checks that every rule, primitive or composed, either
// fails where it started or succeeds, from every position of every input.
func TestRollbackInvariant(t *testing.T) {
	rules := map[string]Rule{
		"char+":  Char('+'),
		"char(":  Char('('),
		"digit":  Digit(),
		"alt":    Alt(Char('('), Digit()),
		"seq":    Seq(binary, Digit(), Char('*'), Digit()),
		"expr":   expr,
		"sum":    sum,
		"mul":    mul,
		"atom":   atom,
		"neg":    neg,
		"nested": Alt(Seq(group, Char('('), sum, Char(')')), Seq(negate, Char('-'), Char('-'))),
	}
	inputs := []string{
		"", " ", "1", "12", "1+", "1 + 2", "(1", "(1+2", "1+2)", "-", "--1",
		"-(", "((1)", "(1 * 2 + (-3 + -4))", "1 - 2 - 3", "9/0", "a", "1 + a",
		"(1 + 2) * 3", "2 * (3", ")(", "* 1", "1 * * 2", "-(-(-1))",
	}
	for name, r := range rules {
		for _, src := range inputs {
			cur := NewCursor(src)
			for p := 0; p <= cur.Len(); p++ {
				cur.Rollback(p)
				n := r(cur)
				if n == nil && cur.Snapshot() != p {
					t.Errorf("%s on %q from %d failed at %d", name, src, p, cur.Snapshot())
				}
				if n != nil && cur.Snapshot() <= p {
					t.Errorf("%s on %q from %d matched %v without consuming", name, src, p, n)
				}
			}
		}
	}
}
