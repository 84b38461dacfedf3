// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

package scheme

import "fortio.org/log"

// restMarker is the formal-parameter-list symbol introducing the
// rest-collector parameter, per spec.md §4.3.1's lambda form.
const restMarker = "&rest"

// specialForms is the reserved set of head symbols that are dispatched
// syntactically rather than evaluated as ordinary calls. Grounded in
// the teacher's eval switch on Car(e).getAtom() (which only special-
// cased "quote" and "cond"); generalized to the spec's eleven forms.
var specialForms = map[Symbol]bool{
	"quote": true, "quasiquote": true, "unquote": true, "unquote-splicing": true,
	"if": true, "and": true, "or": true, "begin": true,
	"define": true, "set!": true, "lambda": true,
}

// Eval evaluates v in env, dispatching by v's Kind exactly per
// spec.md §4.3. It mutates env only through define/set! and whatever
// side effects a called Prim performs.
func Eval(v Value, env *Env) (Value, error) {
	switch x := v.(type) {
	case Int, Bool, Char, Str, *Prim, *Lambda:
		return v, nil
	case nilValue:
		return nil, newNotCallableError(v)
	case Symbol:
		val, err := env.Lookup(string(x))
		if err != nil {
			return nil, err
		}
		return val, nil
	case *Cons:
		return evalCombination(x, env)
	}
	return nil, newSyntaxError("cannot evaluate %s", Print(v))
}

func evalCombination(c *Cons, env *Env) (Value, error) {
	if sym, ok := c.Car.(Symbol); ok && specialForms[sym] {
		log.Debugf("eval: special form %s", sym)
		return evalSpecialForm(sym, c.Cdr, env)
	}
	fn, err := Eval(c.Car, env)
	if err != nil {
		return nil, err
	}
	args, err := evalList(c.Cdr, env)
	if err != nil {
		return nil, err
	}
	return Apply(fn, args)
}

func evalSpecialForm(sym Symbol, rest Value, env *Env) (Value, error) {
	switch sym {
	case "quote":
		return evalQuote(rest)
	case "quasiquote":
		return evalQuasiquote(rest, env)
	case "unquote":
		return nil, newUnquoteError("unquote")
	case "unquote-splicing":
		return nil, newUnquoteError("unquote-splicing")
	case "if":
		return evalIf(rest, env)
	case "and":
		return evalAnd(rest, env)
	case "or":
		return evalOr(rest, env)
	case "begin":
		return evalBegin(rest, env)
	case "define":
		return evalDefine(rest, env)
	case "set!":
		return evalSet(rest, env)
	case "lambda":
		return evalLambda(rest, env)
	}
	panic("unreachable: " + sym) // specialForms and this switch are kept in lockstep
}

// evalList evaluates each element of a proper list of expressions,
// strictly left to right, per spec.md §5's ordering rule.
func evalList(rest Value, env *Env) ([]Value, error) {
	exprs, err := ListToSlice(rest)
	if err != nil {
		return nil, err
	}
	vals := make([]Value, len(exprs))
	for i, e := range exprs {
		v, err := Eval(e, env)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

func evalQuote(rest Value) (Value, error) {
	args, err := ListToSlice(rest)
	if err != nil {
		return nil, err
	}
	if len(args) != 1 {
		return nil, newArityError("quote", "expects exactly 1 argument, got %d", len(args))
	}
	return args[0], nil
}

func evalIf(rest Value, env *Env) (Value, error) {
	args, err := ListToSlice(rest)
	if err != nil {
		return nil, err
	}
	if len(args) != 3 {
		return nil, newArityError("if", "expects exactly 3 arguments, got %d", len(args))
	}
	pred, err := Eval(args[0], env)
	if err != nil {
		return nil, err
	}
	b, err := AsBool(pred)
	if err != nil {
		return nil, wrap(err, "if predicate")
	}
	if b {
		return Eval(args[1], env)
	}
	return Eval(args[2], env)
}

// evalAnd: left to right, short-circuits to Bool(false) on the first
// Bool(false) result; a non-Bool result is truthy for the
// short-circuit test and does not stop the chain. Zero args -> #t.
func evalAnd(rest Value, env *Env) (Value, error) {
	exprs, err := ListToSlice(rest)
	if err != nil {
		return nil, err
	}
	var result Value = Bool(true)
	for _, e := range exprs {
		v, err := Eval(e, env)
		if err != nil {
			return nil, err
		}
		if b, ok := v.(Bool); ok && !bool(b) {
			return Bool(false), nil
		}
		result = v
	}
	return result, nil
}

// evalOr: left to right, returns #t on the first #t; returns
// immediately on the first non-Bool result; #f if all are #f. Zero
// args -> #f.
func evalOr(rest Value, env *Env) (Value, error) {
	exprs, err := ListToSlice(rest)
	if err != nil {
		return nil, err
	}
	for _, e := range exprs {
		v, err := Eval(e, env)
		if err != nil {
			return nil, err
		}
		b, ok := v.(Bool)
		if !ok {
			return v, nil
		}
		if bool(b) {
			return Bool(true), nil
		}
	}
	return Bool(false), nil
}

func evalBegin(rest Value, env *Env) (Value, error) {
	exprs, err := ListToSlice(rest)
	if err != nil {
		return nil, err
	}
	if len(exprs) == 0 {
		return nil, newArityError("begin", "expects at least 1 argument")
	}
	return evalSequence(exprs, env)
}

func evalSequence(exprs []Value, env *Env) (Value, error) {
	var result Value
	for _, e := range exprs {
		v, err := Eval(e, env)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

func evalDefine(rest Value, env *Env) (Value, error) {
	args, err := ListToSlice(rest)
	if err != nil {
		return nil, err
	}
	if len(args) != 2 {
		return nil, newArityError("define", "expects exactly 2 arguments, got %d", len(args))
	}
	name, ok := args[0].(Symbol)
	if !ok {
		return nil, newTypeError("symbol", args[0])
	}
	val, err := Eval(args[1], env)
	if err != nil {
		return nil, err
	}
	env.Define(string(name), val)
	return name, nil
}

func evalSet(rest Value, env *Env) (Value, error) {
	args, err := ListToSlice(rest)
	if err != nil {
		return nil, err
	}
	if len(args) != 2 {
		return nil, newArityError("set!", "expects exactly 2 arguments, got %d", len(args))
	}
	name, ok := args[0].(Symbol)
	if !ok {
		return nil, newTypeError("symbol", args[0])
	}
	val, err := Eval(args[1], env)
	if err != nil {
		return nil, err
	}
	if err := env.Set(string(name), val); err != nil {
		return nil, err
	}
	return name, nil
}

func evalLambda(rest Value, env *Env) (Value, error) {
	c, ok := rest.(*Cons)
	if !ok {
		return nil, newArityError("lambda", "requires formals and at least one body expression")
	}
	formalsList, err := ListToSlice(c.Car)
	if err != nil {
		return nil, wrap(err, "lambda formals")
	}
	body, err := ListToSlice(c.Cdr)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, newArityError("lambda", "requires at least one body expression")
	}
	params, hasRest, err := parseFormals(formalsList)
	if err != nil {
		return nil, err
	}
	return &Lambda{Params: params, Rest: hasRest, Body: body, Env: env}, nil
}

// parseFormals validates and decodes a lambda formal list: a proper
// list of symbols optionally containing exactly one &rest in the
// second-to-last position, per spec.md §4.3.1.
func parseFormals(formalsList []Value) ([]Symbol, bool, error) {
	params := make([]Symbol, 0, len(formalsList))
	for _, f := range formalsList {
		sym, ok := f.(Symbol)
		if !ok {
			return nil, false, newTypeError("symbol", f)
		}
		params = append(params, sym)
	}
	for i, p := range params {
		if p == restMarker {
			if i != len(params)-2 {
				return nil, false, newSyntaxError("&rest must appear in the second-to-last formal position")
			}
			return append(params[:i], params[i+1:]...), true, nil
		}
	}
	return params, false, nil
}

// Apply invokes proc with already-evaluated arguments args, per
// spec.md §4.3.2.
func Apply(proc Value, args []Value) (Value, error) {
	switch p := proc.(type) {
	case *Prim:
		v, err := p.Fn(args)
		if err != nil {
			return nil, wrap(err, "%s", p.Name)
		}
		return v, nil
	case *Lambda:
		return applyLambda(p, args)
	default:
		return nil, newNotCallableError(proc)
	}
}

func applyLambda(l *Lambda, args []Value) (Value, error) {
	formalCount := len(l.Params)
	if !l.Rest {
		if len(args) != formalCount {
			return nil, newArityError("lambda", "expects exactly %d arguments, got %d", formalCount, len(args))
		}
	} else {
		if len(args) < formalCount-1 {
			return nil, newArityError("lambda", "expects at least %d arguments, got %d", formalCount-1, len(args))
		}
	}
	frame := NewEnv(l.Env)
	fixed := formalCount
	if l.Rest {
		fixed = formalCount - 1
	}
	for i := 0; i < fixed; i++ {
		frame.Define(string(l.Params[i]), args[i])
	}
	if l.Rest {
		frame.Define(string(l.Params[fixed]), SliceToList(args[fixed:]))
	}
	return evalSequence(l.Body, frame)
}
