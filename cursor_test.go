package descent

import (
	"testing"
)

func TestCursorNext(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"", ""},
		{" \t \r\n ", ""},
		{"1", "1"},
		{"1+2", "1+2"},
		{" 1 + 2 ", "1+2"},
		{"(1 *\t2)", "(1*2)"},
		{"12", "12"},
		{"a$π", "a$π"},
	}
	for _, c := range cases {
		cur := NewCursor(c.src)
		var got []rune
		for {
			r, ok := cur.Next()
			if !ok {
				break
			}
			got = append(got, r)
		}
		if string(got) != c.want {
			t.Errorf("scanning %q: want %q, got %q", c.src, c.want, string(got))
		}
		if cur.Snapshot() != cur.Len() {
			t.Errorf("scanning %q: ended at %d, not %d", c.src, cur.Snapshot(), cur.Len())
		}
		if _, ok := cur.Next(); ok {
			t.Errorf("scanning %q: Next after end succeeded", c.src)
		}
	}
}

func TestCursorRollback(t *testing.T) {
	cur := NewCursor(" 1 + 2")
	start := cur.Snapshot()
	if start != 0 {
		t.Fatalf("new cursor at %d", start)
	}
	if r, _ := cur.Next(); r != '1' {
		t.Fatalf("first rune %q", r)
	}
	mid := cur.Snapshot()
	if mid != 2 {
		t.Errorf("after 1: want position 2, got %d", mid)
	}
	cur.Next()
	cur.Next()
	if !cur.Done() {
		t.Errorf("cursor at %v is not done", cur)
	}
	cur.Rollback(mid)
	if r, _ := cur.Next(); r != '+' {
		t.Errorf("after rollback to %d: want '+', got %q", mid, r)
	}
	cur.Rollback(start)
	if cur.Done() {
		t.Errorf("cursor at %v is done after rollback", cur)
	}
	if r, _ := cur.Next(); r != '1' {
		t.Errorf("after rollback to start: want '1', got %q", r)
	}
}

func TestCursorDoneDoesNotMove(t *testing.T) {
	cur := NewCursor("1   ")
	cur.Next()
	p := cur.Snapshot()
	if !cur.Done() {
		t.Errorf("trailing spaces are not done")
	}
	if cur.Snapshot() != p {
		t.Errorf("Done moved cursor from %d to %d", p, cur.Snapshot())
	}
}

func TestCursorRollbackInvalid(t *testing.T) {
	for _, mark := range []int{-1, 4} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("rollback to %d did not panic", mark)
				}
			}()
			NewCursor("1+2").Rollback(mark)
		}()
	}
}

func TestCursorString(t *testing.T) {
	cur := NewCursor("1+2")
	cur.Next()
	if s := cur.String(); s != "1^+2" {
		t.Errorf("want %q, got %q", "1^+2", s)
	}
}
