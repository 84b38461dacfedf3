// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

package scheme

import (
	"bufio"
	"io"
	"strings"

	"fortio.org/log"
)

// eofSentinel signals clean end-of-stream, mirroring the teacher's
// distinct EOF string type (recovered separately from Error in
// main.go's handler) rather than folding it into *scheme.Error.
type eofSentinel struct{}

func (eofSentinel) Error() string { return "end of input" }

// ErrEOF is returned by Reader.Read when the input stream is
// exhausted with no partial expression pending.
var ErrEOF error = eofSentinel{}

const eofRune rune = -1

// Reader is the recursive-descent reader: a token scanner plus a
// parser that turns each top-level call into one Value. Grounded in
// the teacher's lexer+Parser split (lex.go/parse.go), generalized
// from LISP-1.5's atom-only token set to the full Scheme grammar
// (strings, chars, quasiquote family, line comments).
type Reader struct {
	rd      *bufio.Reader
	peeking bool
	peek    rune
}

// NewReader returns a Reader that consumes r.
func NewReader(r io.Reader) *Reader {
	return &Reader{rd: bufio.NewReader(r)}
}

// Parse reads a single expression from s, a convenience entry point
// over NewReader(strings.NewReader(s)).Read().
func Parse(s string) (Value, error) {
	return NewReader(strings.NewReader(s)).Read()
}

// Read consumes one top-level expression, or returns ErrEOF if the
// stream holds nothing but trailing whitespace and comments. It never
// consumes whitespace past what is needed to complete the expression,
// so repeated calls on one stream read successive expressions.
func (r *Reader) Read() (Value, error) {
	c, err := r.skipSpace()
	if err != nil {
		return nil, err
	}
	if c == eofRune {
		return nil, ErrEOF
	}
	return r.readExpr()
}

func (r *Reader) readRune() (rune, error) {
	if r.peeking {
		r.peeking = false
		return r.peek, nil
	}
	c, _, err := r.rd.ReadRune()
	if err == io.EOF {
		return eofRune, nil
	}
	if err != nil {
		return 0, err
	}
	return c, nil
}

func (r *Reader) unread(c rune) {
	r.peeking = true
	r.peek = c
}

func (r *Reader) peekRune() (rune, error) {
	c, err := r.readRune()
	if err != nil {
		return 0, err
	}
	r.unread(c)
	return c, nil
}

// skipSpace discards whitespace and ';' line comments and returns
// (without consuming) the next significant rune, or eofRune.
func (r *Reader) skipSpace() (rune, error) {
	for {
		c, err := r.readRune()
		if err != nil {
			return 0, err
		}
		if c == eofRune {
			return eofRune, nil
		}
		if c == ';' {
			for c != '\n' && c != eofRune {
				c, err = r.readRune()
				if err != nil {
					return 0, err
				}
			}
			continue
		}
		if isSpace(c) {
			continue
		}
		r.unread(c)
		return c, nil
	}
}

func isSpace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDelimiter(c rune) bool {
	return c == eofRune || isSpace(c) || c == '(' || c == ')' ||
		c == '"' || c == '\'' || c == '`' || c == ',' || c == ';'
}

// readExpr reads one complete expression, the next significant rune
// already peeked and waiting in the buffer.
func (r *Reader) readExpr() (Value, error) {
	c, err := r.readRune()
	if err != nil {
		return nil, err
	}
	switch {
	case c == eofRune:
		return nil, ErrEOF
	case c == '(':
		return r.readList()
	case c == ')':
		return nil, newSyntaxError("unexpected )")
	case c == '"':
		return r.readString()
	case c == '\'':
		return r.readQuoteLike("quote")
	case c == '`':
		return r.readQuoteLike("quasiquote")
	case c == ',':
		return r.readUnquote()
	case c == '#':
		return r.readHash()
	default:
		r.unread(c)
		return r.readAtom()
	}
}

func (r *Reader) readQuoteLike(sym string) (Value, error) {
	inner, err := r.readSignificant()
	if err != nil {
		return nil, err
	}
	log.Debugf("reader: expanding %s on %s", sym, Print(inner))
	return NewCons(Symbol(sym), NewCons(inner, Nil)), nil
}

func (r *Reader) readUnquote() (Value, error) {
	c, err := r.readRune()
	if err != nil {
		return nil, err
	}
	if c == '@' {
		return r.readQuoteLike("unquote-splicing")
	}
	r.unread(c)
	return r.readQuoteLike("unquote")
}

// readSignificant skips space/comments then reads one expression,
// used after a reader-macro prefix.
func (r *Reader) readSignificant() (Value, error) {
	c, err := r.skipSpace()
	if err != nil {
		return nil, err
	}
	if c == eofRune {
		return nil, newSyntaxError("unexpected end of input")
	}
	return r.readExpr()
}

// readHash reads a #\ character literal or #t / #f, the leading '#'
// already consumed.
func (r *Reader) readHash() (Value, error) {
	c, err := r.readRune()
	if err != nil {
		return nil, err
	}
	switch c {
	case '\\':
		return r.readCharLiteral()
	case 't':
		return Bool(true), nil
	case 'f':
		return Bool(false), nil
	}
	return nil, newSyntaxError("invalid # syntax: #%c", c)
}

func (r *Reader) readCharLiteral() (Value, error) {
	c, err := r.readRune()
	if err != nil {
		return nil, err
	}
	if c == eofRune {
		return nil, newSyntaxError("unterminated character literal")
	}
	var b strings.Builder
	b.WriteRune(c)
	for {
		nc, err := r.peekRune()
		if err != nil {
			return nil, err
		}
		if isDelimiter(nc) {
			break
		}
		_, _ = r.readRune()
		b.WriteRune(nc)
	}
	text := b.String()
	if len([]rune(text)) == 1 {
		return Char([]rune(text)[0]), nil
	}
	switch strings.ToLower(text) {
	case "space":
		return Char(' '), nil
	case "newline":
		return Char('\n'), nil
	case "tab":
		return Char('\t'), nil
	}
	return nil, newSyntaxError("invalid character designator: #\\%s", text)
}

// readString reads a string body, the opening '"' already consumed.
func (r *Reader) readString() (Value, error) {
	var b strings.Builder
	for {
		c, err := r.readRune()
		if err != nil {
			return nil, err
		}
		if c == eofRune {
			return nil, newSyntaxError("unterminated string literal")
		}
		if c == '"' {
			return Str(b.String()), nil
		}
		if c == '\\' {
			esc, err := r.readRune()
			if err != nil {
				return nil, err
			}
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case eofRune:
				return nil, newSyntaxError("unterminated string literal")
			default:
				b.WriteRune(esc)
			}
			continue
		}
		b.WriteRune(c)
	}
}

// readList reads list contents, the opening '(' already consumed.
func (r *Reader) readList() (Value, error) {
	var elems []Value
	var tail Value = Nil
	for {
		c, err := r.skipSpace()
		if err != nil {
			return nil, err
		}
		if c == eofRune {
			return nil, newSyntaxError("unexpected end of input in list")
		}
		if c == ')' {
			_, _ = r.readRune()
			break
		}
		v, err := r.readExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	result := tail
	for i := len(elems) - 1; i >= 0; i-- {
		result = NewCons(elems[i], result)
	}
	return result, nil
}

// readAtom reads a maximal non-delimiter run and classifies it as
// #t/#f, an integer, or a symbol, per spec.md §4.1's ordering.
func (r *Reader) readAtom() (Value, error) {
	var b strings.Builder
	for {
		c, err := r.peekRune()
		if err != nil {
			return nil, err
		}
		if isDelimiter(c) {
			break
		}
		_, _ = r.readRune()
		b.WriteRune(c)
	}
	text := b.String()
	if text == "" {
		return nil, newSyntaxError("empty atom")
	}
	return classifyAtom(text), nil
}

func classifyAtom(text string) Value {
	switch text {
	case "#t":
		return Bool(true)
	case "#f":
		return Bool(false)
	}
	if isIntegerLiteral(text) {
		return Int(parseInt(text))
	}
	return Symbol(text)
}

func isIntegerLiteral(s string) bool {
	i := 0
	if len(s) > 0 && s[0] == '-' {
		i = 1
	}
	if i == len(s) {
		return false // lone "-" is not an integer
	}
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func parseInt(s string) int64 {
	neg := false
	i := 0
	if s[0] == '-' {
		neg = true
		i = 1
	}
	var n int64
	for ; i < len(s); i++ {
		n = n*10 + int64(s[i]-'0')
	}
	if neg {
		n = -n
	}
	return n
}
