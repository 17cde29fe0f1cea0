package cardcalc

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// Eval evaluates an expression using the symbols visible in s. If s is nil,
// the expression is evaluated in DefaultStore().
//
// Names that are unbound, or bound to the wrong kind of symbol, fail with a
// *NameError. Calls with the wrong number of arguments and definitions fail
// with an *InvalidError. Operations applied outside their domains fail with a
// *DomainError. Errors from the bodies of variables and custom functions are
// wrapped with the name being evaluated; use errors.As to inspect them.
func Eval(e Expr, s *Store, opts ...EvalOption) (float64, error) {
	if s == nil {
		s = DefaultStore()
	}
	ev := newEvalctx(opts)
	return ev.eval(e, s)
}

// EvalFunction evaluates the body of a function definition with its
// parameters bound by args in one new scope on top of s. If def is not an
// assignment, it is evaluated as the body itself. If s is nil, the
// evaluation uses DefaultStore().
func EvalFunction(args []Binding, def Expr, s *Store, opts ...EvalOption) (float64, error) {
	if s == nil {
		s = DefaultStore()
	}
	if a, ok := def.(*Assignment); ok {
		def = a.Right
	}
	ev := newEvalctx(opts)
	return ev.eval(def, s.AddScope(args...))
}

// EvalString is a shortcut to parse and evaluate an expression.
func EvalString(src string, s *Store, opts ...EvalOption) (float64, error) {
	e, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return Eval(e, s, opts...)
}

func (ev evalctx) eval(e Expr, s *Store) (float64, error) {
	switch e := e.(type) {
	case *Identifier:
		sym, idx, ok := s.Lookup(e.Name)
		if !ok || sym.SymbolKind() != ValueSymbol {
			return 0, &NameError{Name: e.Name, Want: ValueSymbol}
		}
		switch sym := sym.(type) {
		case Constant:
			return float64(sym), nil
		case *Variable:
			r, err := ev.eval(sym.Body, s.Branch(idx))
			if err != nil {
				return 0, errors.WithMessagef(err, "in %s", e.Name)
			}
			return r, nil
		default:
			panic("cardcalc: unknown value symbol type")
		}
	case *Number:
		return e.Value, nil
	case *Sum:
		var r float64
		for _, t := range e.Terms {
			x, err := ev.eval(t, s)
			if err != nil {
				return 0, err
			}
			r += x
		}
		return r, nil
	case *Product:
		r := 1.0
		for _, f := range e.Factors {
			x, err := ev.eval(f, s)
			if err != nil {
				return 0, err
			}
			r *= x
		}
		return r, nil
	case *Fraction:
		n, err := ev.eval(e.Num, s)
		if err != nil {
			return 0, err
		}
		d, err := ev.eval(e.Den, s)
		if err != nil {
			return 0, err
		}
		if d == 0 {
			return 0, &DomainError{X: n, Func: "/", Reason: "division by zero"}
		}
		return n / d, nil
	case *Power:
		b, err := ev.eval(e.Base, s)
		if err != nil {
			return 0, err
		}
		x, err := ev.eval(e.Exp, s)
		if err != nil {
			return 0, err
		}
		switch {
		case b < 0 && !isInteger(x):
			return 0, &DomainError{X: b, Arg: 1, Func: "^", Reason: "negative base with non-integer exponent"}
		case b == 0 && x < 0:
			return 0, &DomainError{X: b, Arg: 1, Func: "^", Reason: "division by zero"}
		}
		return math.Pow(b, x), nil
	case *Call:
		return ev.call(e, s)
	case *Assignment:
		return 0, &InvalidError{Expr: e, Reason: "a definition has no value"}
	case *Summation:
		return ev.summation(e, s)
	case *Factorial:
		x, err := ev.eval(e.X, s)
		if err != nil {
			return 0, err
		}
		switch {
		case !isInteger(x):
			return 0, &DomainError{X: x, Func: "!", Reason: "not an integer"}
		case x < 0:
			return 0, &DomainError{X: x, Func: "!", Reason: "negative"}
		case x > maxFactorial:
			return 0, &DomainError{X: x, Func: "!", Reason: "result out of range"}
		}
		r := 1.0
		for i := 2.0; i <= x; i++ {
			r *= i
		}
		return r, nil
	default:
		panic("cardcalc: invalid expression node " + e.Kind().String())
	}
}

// maxFactorial is the largest argument accepted by factorial. 171! itself
// overflows to +Inf.
const maxFactorial = 171

// call evaluates a function call. Arguments are evaluated in the caller's
// store.
func (ev evalctx) call(e *Call, s *Store) (float64, error) {
	sym, idx, ok := s.Lookup(e.Name)
	if !ok || sym.SymbolKind() != FunctionSymbol {
		return 0, &NameError{Name: e.Name, Want: FunctionSymbol}
	}
	var arity int
	switch sym := sym.(type) {
	case *Builtin:
		arity = sym.Arity
	case *Custom:
		arity = sym.Arity()
	default:
		panic("cardcalc: unknown function symbol type")
	}
	if len(e.Args) != arity {
		return 0, &InvalidError{Expr: e, Reason: e.Name + " takes " + plural(arity, "argument")}
	}
	args := make([]float64, len(e.Args))
	for i, a := range e.Args {
		x, err := ev.eval(a, s)
		if err != nil {
			return 0, err
		}
		args[i] = x
	}
	switch sym := sym.(type) {
	case *Builtin:
		return sym.Fn(args)
	case *Custom:
		bs := make([]Binding, len(args))
		for i, x := range args {
			bs[i] = Bind(sym.Params[i], x)
		}
		r, err := ev.eval(sym.Body, s.Branch(idx).AddScope(bs...))
		if err != nil {
			return 0, errors.WithMessagef(err, "in %s", e.Name)
		}
		return r, nil
	}
	panic("unreachable")
}

// summation evaluates the body once per integer from the low bound to the
// high bound, each time in a new scope binding the counter.
func (ev evalctx) summation(e *Summation, s *Store) (float64, error) {
	lo, err := ev.eval(e.Low, s)
	if err != nil {
		return 0, err
	}
	hi, err := ev.eval(e.High, s)
	if err != nil {
		return 0, err
	}
	switch {
	case !isInteger(lo):
		return 0, &DomainError{X: lo, Arg: 2, Func: "sum", Reason: "bound is not an integer"}
	case !isInteger(hi):
		return 0, &DomainError{X: hi, Arg: 3, Func: "sum", Reason: "bound is not an integer"}
	case lo > hi:
		return 0, &DomainError{X: lo, Arg: 2, Func: "sum", Reason: "low bound exceeds high bound " + strconv.FormatFloat(hi, 'g', -1, 64)}
	case hi-lo >= float64(ev.maxTerms):
		return 0, &DomainError{X: hi, Arg: 3, Func: "sum", Reason: "more than " + plural(ev.maxTerms, "term")}
	}
	// Count with an integer. Above 2^53, incrementing the float bound can
	// leave it unchanged.
	var r float64
	n := int(hi - lo)
	for k := 0; k <= n; k++ {
		x, err := ev.eval(e.Body, s.AddScope(Bind(e.Counter, lo+float64(k))))
		if err != nil {
			return 0, err
		}
		r += x
	}
	return r, nil
}

// isInteger reports whether x is a finite integer.
func isInteger(x float64) bool {
	return !math.IsInf(x, 0) && x == math.Trunc(x)
}

func plural(n int, what string) string {
	if n == 1 {
		return "1 " + what
	}
	return strconv.Itoa(n) + " " + what + "s"
}
