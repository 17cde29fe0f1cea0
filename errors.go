package cardcalc

import (
	"strconv"

	"github.com/pkg/errors"
)

// NameError is an error from a lookup for a name that is missing from the
// store, or which is bound to the wrong kind of symbol.
type NameError struct {
	// Name is the name that was looked up.
	Name string
	// Want is the kind of symbol the lookup required.
	Want SymbolKind
}

func (err *NameError) Error() string {
	if err.Want == FunctionSymbol {
		return "undefined function: " + strconv.Quote(err.Name)
	}
	return "undefined variable: " + strconv.Quote(err.Name)
}

// InvalidError is an error for an expression which is wrong regardless of the
// values of its names, like a call with the wrong number of arguments or a
// division by a literal zero.
type InvalidError struct {
	// Expr is the offending subexpression.
	Expr Expr
	// Reason describes the problem.
	Reason string
}

func (err *InvalidError) Error() string {
	if err.Expr == nil {
		return "invalid expression: " + err.Reason
	}
	return "invalid expression " + Format(err.Expr) + ": " + err.Reason
}

// DomainError is an error returned when an operation is applied to values
// outside its domain.
type DomainError struct {
	// X is the out-of-domain argument.
	X float64
	// Arg is the 1-based index of the argument, or 0 if the operation has
	// only one relevant operand.
	Arg int
	// Func is a name identifying the operation.
	Func string
	// Reason optionally describes the problem in more detail.
	Reason string
}

func (err *DomainError) Error() string {
	r := strconv.FormatFloat(err.X, 'g', -1, 64) + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	if err.Reason != "" {
		r += ": " + err.Reason
	}
	return r
}

// IsRejection reports whether err means that an expression can never be
// evaluated in its store, as opposed to failing only for particular values.
// Definitions which fail with such an error should not be accepted.
func IsRejection(err error) bool {
	var ne *NameError
	var ie *InvalidError
	return errors.As(err, &ne) || errors.As(err, &ie)
}

// IsDomainError reports whether err is or wraps a *DomainError.
func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}
