// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

// This file contains the definitions of the primitive (builtin)
// functions, grounded in the teacher's math.go/elementary.go split:
// arithmetic/comparison helpers factored out from the
// accessor/predicate primitives, installed into the root environment
// by a map literal generalized from the teacher's evalInit funcMap.

package scheme

import (
	"fmt"
	"math/big"
	"os"
)

// InstallPrimitives binds the representative primitive library of
// spec.md §4.4 into env, which should be the root environment.
func InstallPrimitives(env *Env) {
	for name, fn := range primitives {
		env.Define(name, &Prim{Name: name, Fn: fn})
	}
}

var primitives = map[string]PrimFunc{
	"+":   primAdd,
	"-":   primSub,
	"*":   primMul,
	"abs": primAbs,

	"<": primLt,
	">": primGt,
	"=": primNumEq,

	"not": primNot,

	"cons":   primCons,
	"car":    primCar,
	"cdr":    primCdr,
	"null?":  primNullP,
	"cons?":  primConsP,
	"length": primLength,
	"append": primAppend,

	"eq?":    primEqP,
	"equal?": primEqualP,

	"string?":    primStringP,
	"number?":    primNumberP,
	"symbol?":    primSymbolP,
	"character?": primCharP,

	"string-length": primStringLength,
	"string-ref":    primStringRef,

	"display": primDisplay,
	"newline": primNewline,

	"expt": primExpt,
}

func arityError(name string, want string, got int) error {
	return newArityError(name, "expects %s argument(s), got %d", want, got)
}

func wantInt(name string, args []Value, i int) (int64, error) {
	n, ok := args[i].(Int)
	if !ok {
		return 0, newTypeError("integer", args[i])
	}
	return int64(n), nil
}

// Arithmetic.

func primAdd(args []Value) (Value, error) {
	var sum int64
	for i := range args {
		n, err := wantInt("+", args, i)
		if err != nil {
			return nil, err
		}
		sum += n
	}
	return Int(sum), nil
}

func primSub(args []Value) (Value, error) {
	if len(args) == 0 {
		return nil, arityError("-", "at least 1", 0)
	}
	first, err := wantInt("-", args, 0)
	if err != nil {
		return nil, err
	}
	if len(args) == 1 {
		return Int(-first), nil
	}
	acc := first
	for i := 1; i < len(args); i++ {
		n, err := wantInt("-", args, i)
		if err != nil {
			return nil, err
		}
		acc -= n
	}
	return Int(acc), nil
}

func primMul(args []Value) (Value, error) {
	acc := int64(1)
	for i := range args {
		n, err := wantInt("*", args, i)
		if err != nil {
			return nil, err
		}
		acc *= n
	}
	return Int(acc), nil
}

func primAbs(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, arityError("abs", "exactly 1", len(args))
	}
	n, err := wantInt("abs", args, 0)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		n = -n
	}
	return Int(n), nil
}

// expt raises base to the non-negative integer power exp, computing
// with math/big and returning a type error when the result does not
// fit in an int64. A representative "fancy"
// primitive illustrating the interpreter's implementation technique,
// not a numeric tower: every other primitive stays on plain int64.
func primExpt(args []Value) (Value, error) {
	if len(args) != 2 {
		return nil, arityError("expt", "exactly 2", len(args))
	}
	base, err := wantInt("expt", args, 0)
	if err != nil {
		return nil, err
	}
	exp, err := wantInt("expt", args, 1)
	if err != nil {
		return nil, err
	}
	if exp < 0 {
		return nil, newTypeError("non-negative exponent", args[1])
	}
	result := new(big.Int).Exp(big.NewInt(base), big.NewInt(exp), nil)
	if !result.IsInt64() {
		return nil, newError(KindTypeError, "expt: result %s exceeds representable integer range", result)
	}
	return Int(result.Int64()), nil
}

// Comparisons.

func primCompare(name string, args []Value, ok func(a, b int64) bool) (Value, error) {
	if len(args) < 2 {
		return nil, arityError(name, "at least 2", len(args))
	}
	for i := 0; i < len(args)-1; i++ {
		a, err := wantInt(name, args, i)
		if err != nil {
			return nil, err
		}
		b, err := wantInt(name, args, i+1)
		if err != nil {
			return nil, err
		}
		if !ok(a, b) {
			return Bool(false), nil
		}
	}
	return Bool(true), nil
}

func primLt(args []Value) (Value, error) {
	return primCompare("<", args, func(a, b int64) bool { return a < b })
}

func primGt(args []Value) (Value, error) {
	return primCompare(">", args, func(a, b int64) bool { return a > b })
}

func primNumEq(args []Value) (Value, error) {
	return primCompare("=", args, func(a, b int64) bool { return a == b })
}

// Logical.

func primNot(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, arityError("not", "exactly 1", len(args))
	}
	b, err := AsBool(args[0])
	if err != nil {
		return nil, err
	}
	return Bool(!b), nil
}

// Pair/list.

func primCons(args []Value) (Value, error) {
	if len(args) != 2 {
		return nil, arityError("cons", "exactly 2", len(args))
	}
	return NewCons(args[0], args[1]), nil
}

func wantCons(name string, v Value) (*Cons, error) {
	c, ok := v.(*Cons)
	if !ok {
		return nil, newTypeError("pair", v)
	}
	return c, nil
}

func primCar(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, arityError("car", "exactly 1", len(args))
	}
	c, err := wantCons("car", args[0])
	if err != nil {
		return nil, err
	}
	return c.Car, nil
}

func primCdr(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, arityError("cdr", "exactly 1", len(args))
	}
	c, err := wantCons("cdr", args[0])
	if err != nil {
		return nil, err
	}
	return c.Cdr, nil
}

func primNullP(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, arityError("null?", "exactly 1", len(args))
	}
	return Bool(args[0].Kind() == KindNil), nil
}

func primConsP(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, arityError("cons?", "exactly 1", len(args))
	}
	_, ok := args[0].(*Cons)
	return Bool(ok), nil
}

func primLength(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, arityError("length", "exactly 1", len(args))
	}
	n, err := Length(args[0])
	if err != nil {
		return nil, err
	}
	return Int(n), nil
}

func primAppend(args []Value) (Value, error) {
	if len(args) == 0 {
		return Nil, nil
	}
	if len(args) == 1 {
		return args[0], nil
	}
	var elems []Value
	for i := 0; i < len(args)-1; i++ {
		s, err := ListToSlice(args[i])
		if err != nil {
			return nil, wrap(err, "append argument %d", i+1)
		}
		elems = append(elems, s...)
	}
	tail := args[len(args)-1]
	result := tail
	for i := len(elems) - 1; i >= 0; i-- {
		result = NewCons(elems[i], result)
	}
	return result, nil
}

// Identity.

func primEqP(args []Value) (Value, error) {
	if len(args) != 2 {
		return nil, arityError("eq?", "exactly 2", len(args))
	}
	a, aok := args[0].(Symbol)
	b, bok := args[1].(Symbol)
	if !aok {
		return nil, newTypeError("symbol", args[0])
	}
	if !bok {
		return nil, newTypeError("symbol", args[1])
	}
	return Bool(a == b), nil
}

func primEqualP(args []Value) (Value, error) {
	if len(args) != 2 {
		return nil, arityError("equal?", "exactly 2", len(args))
	}
	return Bool(Equal(args[0], args[1])), nil
}

// Type predicates.

func primStringP(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, arityError("string?", "exactly 1", len(args))
	}
	_, ok := args[0].(Str)
	return Bool(ok), nil
}

func primNumberP(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, arityError("number?", "exactly 1", len(args))
	}
	_, ok := args[0].(Int)
	return Bool(ok), nil
}

func primSymbolP(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, arityError("symbol?", "exactly 1", len(args))
	}
	_, ok := args[0].(Symbol)
	return Bool(ok), nil
}

func primCharP(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, arityError("character?", "exactly 1", len(args))
	}
	_, ok := args[0].(Char)
	return Bool(ok), nil
}

func primStringLength(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, arityError("string-length", "exactly 1", len(args))
	}
	s, ok := args[0].(Str)
	if !ok {
		return nil, newTypeError("string", args[0])
	}
	return Int(len([]rune(string(s)))), nil
}

func primStringRef(args []Value) (Value, error) {
	if len(args) != 2 {
		return nil, arityError("string-ref", "exactly 2", len(args))
	}
	s, ok := args[0].(Str)
	if !ok {
		return nil, newTypeError("string", args[0])
	}
	idx, ok := args[1].(Int)
	if !ok {
		return nil, newTypeError("integer", args[1])
	}
	runes := []rune(string(s))
	if idx < 0 || int(idx) >= len(runes) {
		return nil, newBoundsError("string-ref: index %d out of bounds for string of length %d", idx, len(runes))
	}
	return Char(runes[idx]), nil
}

// I/O.

func primDisplay(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, arityError("display", "exactly 1", len(args))
	}
	if s, ok := args[0].(Str); ok {
		fmt.Fprint(os.Stdout, string(s))
	} else {
		fmt.Fprint(os.Stdout, Print(args[0]))
	}
	return args[0], nil
}

func primNewline(args []Value) (Value, error) {
	if len(args) != 0 {
		return nil, arityError("newline", "exactly 0", len(args))
	}
	fmt.Fprintln(os.Stdout)
	return Nil, nil
}
