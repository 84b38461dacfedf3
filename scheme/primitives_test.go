package scheme

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEnv() *Env {
	env := NewEnv(nil)
	InstallPrimitives(env)
	return env
}

func TestPrimitiveArithmetic(t *testing.T) {
	env := newTestEnv()
	tests := []struct {
		src  string
		want string
	}{
		{"(+ 1 2 3)", "6"},
		{"(+)", "0"},
		{"(- 5)", "-5"},
		{"(- 10 3 2)", "5"},
		{"(* 2 3 4)", "24"},
		{"(*)", "1"},
		{"(abs -7)", "7"},
		{"(abs 7)", "7"},
	}
	for _, test := range tests {
		v, err := Parse(test.src)
		require.NoError(t, err, test.src)
		got, err := Eval(v, env)
		require.NoError(t, err, test.src)
		assert.Equal(t, test.want, Print(got), test.src)
	}
}

func TestPrimitiveListOps(t *testing.T) {
	env := newTestEnv()
	tests := []struct {
		src  string
		want string
	}{
		{"(cons 1 2)", "(1 . 2)"},
		{"(car (cons 1 2))", "1"},
		{"(cdr (cons 1 2))", "2"},
		{"(null? (quote ()))", "#t"},
		{"(null? 1)", "#f"},
		{"(cons? (cons 1 2))", "#t"},
		{"(cons? 1)", "#f"},
		{"(length (quote ()))", "0"},
		{"(length (cons 1 (cons 2 (cons 3 (quote ())))))", "3"},
		{"(append)", "()"},
		{"(append (quote (1 2)) (quote (3 4)))", "(1 2 3 4)"},
		{"(append (quote (1 2)) 3)", "(1 2 . 3)"},
	}
	for _, test := range tests {
		v, err := Parse(test.src)
		require.NoError(t, err, test.src)
		got, err := Eval(v, env)
		require.NoError(t, err, test.src)
		assert.Equal(t, test.want, Print(got), test.src)
	}
}

func TestPrimitiveEquality(t *testing.T) {
	env := newTestEnv()
	tests := []struct {
		src  string
		want string
	}{
		{"(eq? (quote a) (quote a))", "#t"},
		{"(eq? (quote a) (quote b))", "#f"},
		{"(equal? (quote (1 2)) (quote (1 2)))", "#t"},
		{"(equal? (quote (1 2)) (quote (1 3)))", "#f"},
	}
	for _, test := range tests {
		v, err := Parse(test.src)
		require.NoError(t, err, test.src)
		got, err := Eval(v, env)
		require.NoError(t, err, test.src)
		assert.Equal(t, test.want, Print(got), test.src)
	}
}

func TestPrimitiveStringsAndChars(t *testing.T) {
	env := newTestEnv()
	tests := []struct {
		src  string
		want string
	}{
		{`(string-length "hello")`, "5"},
		{`(string-ref "hello" 1)`, `#\e`},
		{`(string? "x")`, "#t"},
		{`(number? 1)`, "#t"},
		{`(symbol? (quote x))`, "#t"},
		{`(character? #\x)`, "#t"},
	}
	for _, test := range tests {
		v, err := Parse(test.src)
		require.NoError(t, err, test.src)
		got, err := Eval(v, env)
		require.NoError(t, err, test.src)
		assert.Equal(t, test.want, Print(got), test.src)
	}
}

func TestStringRefOutOfBounds(t *testing.T) {
	env := newTestEnv()
	v, err := Parse(`(string-ref "hi" 5)`)
	require.NoError(t, err)
	_, err = Eval(v, env)
	require.Error(t, err)
	assert.Equal(t, KindBoundsError, Cause(err).Kind)
}

// TestExpt exercises the expt primitive, diffed structurally with
// go-cmp against the expected printed form, and its overflow check
// (expt computes via math/big internally but this interpreter's Int
// stays a plain int64, per spec.md's no-numeric-tower non-goal).
func TestExpt(t *testing.T) {
	env := newTestEnv()
	v, err := Parse("(expt 2 10)")
	require.NoError(t, err)
	got, err := Eval(v, env)
	require.NoError(t, err)
	if diff := cmp.Diff("1024", Print(got)); diff != "" {
		t.Errorf("expt 2 10 mismatch (-want +got):\n%s", diff)
	}

	overflow, err := Parse("(expt 2 100)")
	require.NoError(t, err)
	_, err = Eval(overflow, env)
	require.Error(t, err)
	assert.Equal(t, KindTypeError, Cause(err).Kind)
}
