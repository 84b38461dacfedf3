// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

package scheme

import "strings"

// Print renders v in the canonical textual form of spec.md §4.2: the
// form that, read back, reproduces a structurally equal Value
// (procedures exempted). Grounded in the teacher's Expr.buildString,
// generalized from the cdr-chain-only walker to the full variant set.
func Print(v Value) string {
	var b strings.Builder
	buildString(&b, v)
	return b.String()
}

func buildString(b *strings.Builder, v Value) {
	switch x := v.(type) {
	case Int:
		fmtInt(b, int64(x))
	case Bool:
		if x {
			b.WriteString("#t")
		} else {
			b.WriteString("#f")
		}
	case Char:
		b.WriteString(printChar(rune(x)))
	case Str:
		b.WriteString(printStr(string(x)))
	case Symbol:
		b.WriteString(string(x))
	case nilValue:
		b.WriteString("()")
	case *Cons:
		printCons(b, x)
	case *Prim:
		b.WriteString("<function>")
	case *Lambda:
		b.WriteString("<function>")
	default:
		b.WriteString("<unknown>")
	}
}

func fmtInt(b *strings.Builder, n int64) {
	if n < 0 {
		b.WriteByte('-')
		n = -n
	}
	// Simple decimal formatting without importing strconv twice over;
	// matches the teacher's preference for small, direct helpers.
	if n == 0 {
		b.WriteByte('0')
		return
	}
	var digits [20]byte
	i := len(digits)
	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	b.Write(digits[i:])
}

func printChar(r rune) string {
	switch r {
	case ' ':
		return `#\Space`
	case '\n':
		return `#\Newline`
	case '\t':
		return `#\Tab`
	}
	return `#\` + string(r)
}

func printStr(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// printCons walks the cdr chain, deciding incrementally at each cell
// whether the chain continues as a proper list or terminates as a
// dotted pair.
func printCons(b *strings.Builder, c *Cons) {
	b.WriteByte('(')
	buildString(b, c.Car)
	rest := c.Cdr
	for {
		switch x := rest.(type) {
		case nilValue:
			b.WriteByte(')')
			return
		case *Cons:
			b.WriteByte(' ')
			buildString(b, x.Car)
			rest = x.Cdr
		default:
			b.WriteString(" . ")
			buildString(b, rest)
			b.WriteByte(')')
			return
		}
	}
}
