// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

// Package scheme implements the reader, printer, and evaluator for a
// small Scheme-family language: tagged values, a cons-cell list
// structure, and a tree-walking evaluator over a lexically scoped,
// mutable environment.
package scheme

import "fmt"

// Kind tags the variant of a Value.
type Kind int

const (
	KindInt Kind = iota
	KindBool
	KindChar
	KindStr
	KindSym
	KindNil
	KindCons
	KindPrim
	KindLambda
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "integer"
	case KindBool:
		return "boolean"
	case KindChar:
		return "character"
	case KindStr:
		return "string"
	case KindSym:
		return "symbol"
	case KindNil:
		return "nil"
	case KindCons:
		return "pair"
	case KindPrim:
		return "primitive"
	case KindLambda:
		return "procedure"
	}
	return "unknown"
}

// Value is the tagged sum every Scheme datum implements: literals,
// symbols, the empty list, cons cells, and procedures.
type Value interface {
	Kind() Kind
	fmt.Stringer
}

// Int is a signed integer literal. Per this interpreter's non-goals
// there is no numeric tower beyond a plain machine integer.
type Int int64

func (Int) Kind() Kind { return KindInt }
func (i Int) String() string { return Print(i) }

// Bool is #t or #f.
type Bool bool

func (Bool) Kind() Kind       { return KindBool }
func (b Bool) String() string { return Print(b) }

// Char is a single code point literal.
type Char rune

func (Char) Kind() Kind       { return KindChar }
func (c Char) String() string { return Print(c) }

// Str is a string literal. Content is immutable; the spec does not
// require mutable string primitives.
type Str string

func (Str) Kind() Kind       { return KindStr }
func (s Str) String() string { return Print(s) }

// Symbol is an identifier. Kept as its own variant, distinct from Str,
// even though both wrap a string: the reader, printer, and eq?/equal?
// treat them differently.
type Symbol string

func (Symbol) Kind() Kind       { return KindSym }
func (s Symbol) String() string { return Print(s) }

// nilValue is the unique empty-list value. Nil is a singleton: all
// empty lists compare equal and print identically.
type nilValue struct{}

func (nilValue) Kind() Kind       { return KindNil }
func (nilValue) String() string   { return "()" }

// Nil is the empty list.
var Nil Value = nilValue{}

// Cons is a dotted pair: the fundamental list cell. Car and Cdr are
// shared references to other Values, never copied; a proper list is
// Nil or a Cons whose Cdr is a proper list.
type Cons struct {
	Car Value
	Cdr Value
}

func (*Cons) Kind() Kind       { return KindCons }
func (c *Cons) String() string { return Print(c) }

// NewCons constructs a pair.
func NewCons(car, cdr Value) *Cons {
	return &Cons{Car: car, Cdr: cdr}
}

// PrimFunc is the signature of a native procedure: it receives the
// already-evaluated argument vector and returns a value or an error.
type PrimFunc func(args []Value) (Value, error)

// Prim is a built-in procedure.
type Prim struct {
	Name string
	Fn   PrimFunc
}

func (*Prim) Kind() Kind       { return KindPrim }
func (p *Prim) String() string { return Print(p) }

// Lambda is a user-defined procedure: a parameter list, a body
// sequence, the environment captured at creation time, and whether
// the last formal is a &rest collector.
type Lambda struct {
	Params []Symbol
	Rest   bool // last entry of Params is a &rest collector
	Body   []Value
	Env    *Env
}

func (*Lambda) Kind() Kind       { return KindLambda }
func (l *Lambda) String() string { return Print(l) }

// AsBool requires v to be a Bool, erroring with its printed form
// otherwise. Used by if, whose predicate must evaluate to a Bool.
func AsBool(v Value) (bool, error) {
	b, ok := v.(Bool)
	if !ok {
		return false, newTypeError("boolean", v)
	}
	return bool(b), nil
}

// ListToSlice decodes a proper list into a Go slice. It errors if the
// chain does not terminate in Nil.
func ListToSlice(v Value) ([]Value, error) {
	var out []Value
	for {
		switch x := v.(type) {
		case nilValue:
			return out, nil
		case *Cons:
			out = append(out, x.Car)
			v = x.Cdr
		default:
			return nil, newSyntaxError("improper list where proper list expected: %s", Print(v))
		}
	}
}

// SliceToList builds a proper list from a Go slice.
func SliceToList(vs []Value) Value {
	var tail Value = Nil
	for i := len(vs) - 1; i >= 0; i-- {
		tail = NewCons(vs[i], tail)
	}
	return tail
}

// Length reports the number of cells in a proper list, or an error if
// v is not Nil or a proper list.
func Length(v Value) (int, error) {
	n := 0
	for {
		switch x := v.(type) {
		case nilValue:
			return n, nil
		case *Cons:
			n++
			v = x.Cdr
		default:
			return 0, newTypeError("list", v)
		}
	}
}

// Equal implements the spec's equal?: structural equality across
// variants, recursing through cons chains.
func Equal(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Int:
		return av == b.(Int)
	case Bool:
		return av == b.(Bool)
	case Char:
		return av == b.(Char)
	case Str:
		return av == b.(Str)
	case Symbol:
		return av == b.(Symbol)
	case nilValue:
		return true
	case *Cons:
		bv := b.(*Cons)
		return Equal(av.Car, bv.Car) && Equal(av.Cdr, bv.Cdr)
	case *Prim, *Lambda:
		return a == b
	}
	return false
}
