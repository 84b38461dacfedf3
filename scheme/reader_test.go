package scheme

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRoundTrip exercises spec.md §8's round-trip property: for every
// Value produced by Parse, re-reading Print(v) reproduces a
// structurally equal Value. Grounded in the teacher's parseTests
// table (parse_test.go), generalized from LISP-1.5 dotted-pair-only
// source text to the full Scheme grammar.
func TestRoundTrip(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"()", "()"},
		{"a", "a"},
		{"42", "42"},
		{"-7", "-7"},
		{"#t", "#t"},
		{"#f", "#f"},
		{`"hello"`, `"hello"`},
		{`"a\"b"`, `"a\"b"`},
		{`#\a`, `#\a`},
		{`#\space`, `#\Space`},
		{`#\Newline`, `#\Newline`},
		{"(a b c)", "(a b c)"},
		{"(a . b)", "(a . b)"},
		{"(a b . c)", "(a b . c)"},
		{"'a", "(quote a)"},
		{"`a", "(quasiquote a)"},
		{",a", "(unquote a)"},
		{",@a", "(unquote-splicing a)"},
		{"'(1 2 3)", "(quote (1 2 3))"},
	}
	for _, test := range tests {
		v, err := Parse(test.in)
		require.NoError(t, err, test.in)
		assert.Equal(t, test.want, Print(v), test.in)

		v2, err := Parse(Print(v))
		require.NoError(t, err, test.in)
		assert.True(t, Equal(v, v2), "round trip mismatch for %q", test.in)
	}
}

func TestReaderComments(t *testing.T) {
	v, err := Parse("; a comment\n42")
	require.NoError(t, err)
	assert.Equal(t, "42", Print(v))
}

func TestReaderMultipleExpressions(t *testing.T) {
	r := NewReader(strings.NewReader("1 2 3"))
	for _, want := range []string{"1", "2", "3"} {
		v, err := r.Read()
		require.NoError(t, err)
		assert.Equal(t, want, Print(v))
	}
	_, err := r.Read()
	assert.ErrorIs(t, err, ErrEOF)
}

func TestReaderErrors(t *testing.T) {
	tests := []string{
		"(a b", // unclosed list
		")",    // unmatched close paren
		`"abc`, // unterminated string
		`#\`,   // unterminated char
		`#\zzz`, // bad character designator
	}
	for _, in := range tests {
		_, err := Parse(in)
		assert.Error(t, err, in)
	}
}
