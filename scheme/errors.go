package scheme

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind distinguishes the error classes spec.md §7 requires an
// implementation to tell apart in its messages.
type ErrorKind int

const (
	KindSyntaxError ErrorKind = iota
	KindTypeError
	KindArityError
	KindUnboundError
	KindUnquoteError
	KindNotCallableError
	KindBoundsError
)

func (k ErrorKind) String() string {
	switch k {
	case KindSyntaxError:
		return "syntax error"
	case KindTypeError:
		return "type error"
	case KindArityError:
		return "arity error"
	case KindUnboundError:
		return "unbound symbol"
	case KindUnquoteError:
		return "illegal unquote"
	case KindNotCallableError:
		return "not callable"
	case KindBoundsError:
		return "index out of bounds"
	}
	return "error"
}

// Error is the one error kind spec.md §7 says suffices, carrying a
// class tag alongside its human-readable message.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Cause unwraps err (which may be wrapped by github.com/pkg/errors
// along the call chain) back to the *scheme.Error it originated from,
// or nil if err is not one of ours.
func Cause(err error) *Error {
	var se *Error
	for err != nil {
		if e, ok := err.(*Error); ok {
			se = e
			break
		}
		causer, ok := err.(interface{ Cause() error })
		if !ok {
			break
		}
		err = causer.Cause()
	}
	return se
}

func newError(kind ErrorKind, format string, args ...interface{}) error {
	return errors.WithStack(&Error{Kind: kind, Message: fmt.Sprintf(format, args...)})
}

func newSyntaxError(format string, args ...interface{}) error {
	return newError(KindSyntaxError, format, args...)
}

func newTypeError(expected string, got Value) error {
	return newError(KindTypeError, "expected %s, got %s: %s", expected, got.Kind(), Print(got))
}

func newArityError(name string, format string, args ...interface{}) error {
	return newError(KindArityError, "%s: "+format, append([]interface{}{name}, args...)...)
}

func newUnboundError(name string) error {
	return newError(KindUnboundError, "unbound symbol: %s", name)
}

func newUnquoteError(form string) error {
	return newError(KindUnquoteError, "%s used outside of quasiquote", form)
}

func newNotCallableError(v Value) error {
	return newError(KindNotCallableError, "not a procedure: %s", Print(v))
}

func newBoundsError(format string, args ...interface{}) error {
	return newError(KindBoundsError, format, args...)
}

// wrap annotates err with additional context while preserving the
// underlying *scheme.Error for Cause, grounded in the teacher pack's
// db47h/ngaro idiom of errors.Wrap(err, "...") at call boundaries.
func wrap(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, format, args...)
}
