// Package descent implements a backtracking recursive-descent calculator.
//
// The grammar is small and fixed:
//
//	expr = sum
//	sum  = mul '+' sum | mul '-' sum | mul
//	mul  = atom '*' mul | atom '/' mul | atom
//	atom = '(' expr ')' | number | neg
//	neg  = '-' atom
//
// A number is a single digit, so "12" parses as the number 1 followed by
// unparsed input. Because sum and mul recurse on the right, chains of the same
// precedence associate to the right: "8 - 4 - 2" is "8 - (4 - 2)".
//
// Rules are built from two combinators over a Cursor, ordered choice (Alt) and
// sequence (Seq). Every rule either succeeds having consumed exactly what it
// matched or fails leaving the cursor where it found it, which is what makes
// backtracking between alternatives safe.
//
package descent
