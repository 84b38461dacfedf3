package scheme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintVariants(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Int(0), "0"},
		{Int(-42), "-42"},
		{Bool(true), "#t"},
		{Bool(false), "#f"},
		{Char(' '), `#\Space`},
		{Char('\t'), `#\Tab`},
		{Char('x'), `#\x`},
		{Str(`say "hi"`), `"say \"hi\""`},
		{Symbol("foo"), "foo"},
		{Nil, "()"},
		{NewCons(Int(1), NewCons(Int(2), Nil)), "(1 2)"},
		{NewCons(Int(1), Int(2)), "(1 . 2)"},
		{&Prim{Name: "car"}, "<function>"},
		{&Lambda{}, "<function>"},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, Print(test.v))
	}
}

func TestEqual(t *testing.T) {
	a := NewCons(Int(1), NewCons(Symbol("x"), Nil))
	b := NewCons(Int(1), NewCons(Symbol("x"), Nil))
	assert.True(t, Equal(a, b))

	c := NewCons(Int(1), NewCons(Symbol("y"), Nil))
	assert.False(t, Equal(a, c))

	assert.True(t, Equal(Str("hi"), Str("hi")))
	assert.False(t, Equal(Str("hi"), Str("Hi")))
	assert.False(t, Equal(Int(1), Bool(true)))
}
