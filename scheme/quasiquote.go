package scheme

// Quasiquote is implemented as its own recursive walker, not folded
// into Eval's main dispatch, per spec.md §9's design note and
// grounded in how the teacher keeps evcon/evlis as helpers beside
// eval rather than inlining every form into one function. It detects
// unquote at the head of a sub-form and hands that one subexpression
// to Eval; it detects unquote-splicing in the car of a pair and
// invokes list append.

func evalQuasiquote(rest Value, env *Env) (Value, error) {
	args, err := ListToSlice(rest)
	if err != nil {
		return nil, err
	}
	if len(args) != 1 {
		return nil, newArityError("quasiquote", "expects exactly 1 argument, got %d", len(args))
	}
	return quasiquoteExpand(args[0], env)
}

func quasiquoteExpand(tmpl Value, env *Env) (Value, error) {
	c, ok := tmpl.(*Cons)
	if !ok {
		return tmpl, nil
	}
	if head, ok := c.Car.(Symbol); ok {
		switch head {
		case "unquote-splicing":
			return nil, newError(KindUnquoteError, "unquote-splicing used outside of a list element in quasiquote")
		case "unquote":
			return evalUnquote(c.Cdr, env)
		}
	}
	if splice, ok := asUnquoteSplicing(c.Car); ok {
		return expandSplice(splice, c.Cdr, env)
	}
	carExpanded, err := quasiquoteExpand(c.Car, env)
	if err != nil {
		return nil, err
	}
	cdrExpanded, err := quasiquoteExpand(c.Cdr, env)
	if err != nil {
		return nil, err
	}
	return NewCons(carExpanded, cdrExpanded), nil
}

func evalUnquote(rest Value, env *Env) (Value, error) {
	args, err := ListToSlice(rest)
	if err != nil {
		return nil, err
	}
	if len(args) != 1 {
		return nil, newArityError("unquote", "expects exactly 1 argument, got %d", len(args))
	}
	return Eval(args[0], env)
}

// asUnquoteSplicing reports whether v is of the form
// (unquote-splicing E), returning the cdr (unevaluated, still a
// one-element list holding E).
func asUnquoteSplicing(v Value) (Value, bool) {
	c, ok := v.(*Cons)
	if !ok {
		return nil, false
	}
	if head, ok := c.Car.(Symbol); !ok || head != "unquote-splicing" {
		return nil, false
	}
	return c.Cdr, true
}

// expandSplice evaluates the unquote-splicing argument (which must
// produce a proper list or Nil) and appends it onto the recursively
// expanded remainder of the enclosing template.
func expandSplice(spliceRest Value, templateRest Value, env *Env) (Value, error) {
	args, err := ListToSlice(spliceRest)
	if err != nil {
		return nil, err
	}
	if len(args) != 1 {
		return nil, newArityError("unquote-splicing", "expects exactly 1 argument, got %d", len(args))
	}
	spliced, err := Eval(args[0], env)
	if err != nil {
		return nil, err
	}
	elems, err := ListToSlice(spliced)
	if err != nil {
		return nil, wrap(err, "unquote-splicing value must be a proper list")
	}
	rest, err := quasiquoteExpand(templateRest, env)
	if err != nil {
		return nil, err
	}
	result := rest
	for i := len(elems) - 1; i >= 0; i-- {
		result = NewCons(elems[i], result)
	}
	return result, nil
}
