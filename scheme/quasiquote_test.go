package scheme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuasiquoteBasic(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"`a", "a"},
		{"`(a b c)", "(a b c)"},
		{"`(1 ,(+ 1 1) 3)", "(1 2 3)"},
		{"`(1 ,@(list) 2)", "(1 2)"},
	}
	env := NewEnv(nil)
	InstallPrimitives(env)
	listDef, err := Parse("(define list (lambda (&rest xs) xs))")
	require.NoError(t, err)
	_, err = Eval(listDef, env)
	require.NoError(t, err)

	for _, test := range tests {
		v, err := Parse(test.src)
		require.NoError(t, err, test.src)
		got, err := Eval(v, env)
		require.NoError(t, err, test.src)
		assert.Equal(t, test.want, Print(got), test.src)
	}
}

func TestUnquoteOutsideQuasiquoteIsError(t *testing.T) {
	env := NewEnv(nil)
	InstallPrimitives(env)
	for _, src := range []string{"(unquote 1)", "(unquote-splicing 1)"} {
		v, err := Parse(src)
		require.NoError(t, err)
		_, err = Eval(v, env)
		require.Error(t, err, src)
		assert.Equal(t, KindUnquoteError, Cause(err).Kind, src)
	}
}

// TestTopLevelSplicingIsError exercises spec.md §4.3.1's rule that
// `,@E directly (not nested inside a list element) is an error.
func TestTopLevelSplicingIsError(t *testing.T) {
	env := NewEnv(nil)
	InstallPrimitives(env)
	v, err := Parse(",@(quote (1 2))")
	require.NoError(t, err)
	quoted := NewCons(Symbol("quasiquote"), NewCons(v, Nil))
	_, err = Eval(quoted, env)
	require.Error(t, err)
	assert.Equal(t, KindUnquoteError, Cause(err).Kind)
}
