package cardcalc

import (
	"math"
	"math/big"

	"github.com/pkg/errors"
	"github.com/zephyrtronium/bigfloat"
)

// bigPrec is the precision of functions computed with big floats. It is a bit
// more than float64 has so that rounding back is correctly rounded in most
// cases.
const bigPrec = 64

// Builtins returns the bindings of the default functions and constants.
func Builtins() []Binding {
	return []Binding{
		{"sin", Monadic("sin", math.Sin)},
		{"cos", Monadic("cos", math.Cos)},
		{"tan", Monadic("tan", math.Tan)},
		{"asin", Monadic("asin", math.Asin)},
		{"acos", Monadic("acos", math.Acos)},
		{"atan", Monadic("atan", math.Atan)},
		{"sinh", Monadic("sinh", math.Sinh)},
		{"cosh", Monadic("cosh", math.Cosh)},
		{"tanh", Monadic("tanh", math.Tanh)},
		{"sqrt", Monadic("sqrt", math.Sqrt)},
		{"abs", Monadic("abs", math.Abs)},
		{"floor", Monadic("floor", math.Floor)},
		{"ceil", Monadic("ceil", math.Ceil)},
		{"exp", expFunc()},
		{"ln", logFunc("ln", bigfloat.Log)},
		{"log", logFunc("log", func(out, in *big.Float) *big.Float {
			bigfloat.Log(out, in)
			in.SetFloat64(10).SetPrec(out.Prec())
			bigfloat.Log(in, in)
			return out.Quo(out, in)
		})},
		{"max", Dyadic("max", math.Max)},
		{"min", Dyadic("min", math.Min)},

		// constants
		Bind("pi", math.Pi),
		Bind("e", math.E),
	}
}

// DefaultStore creates a store with one scope holding the default functions
// and constants.
func DefaultStore() *Store {
	return FromBindings(Builtins()...)
}

// Monadic wraps a function of one variable into a builtin. If f returns NaN
// for an argument which is not NaN, the call fails with a *DomainError.
func Monadic(name string, f func(float64) float64) *Builtin {
	return &Builtin{
		Name:  name,
		Arity: 1,
		Fn: func(args []float64) (float64, error) {
			x := args[0]
			r := f(x)
			if math.IsNaN(r) && !math.IsNaN(x) {
				return r, &DomainError{X: x, Func: name}
			}
			return r, nil
		},
	}
}

// Dyadic wraps a function of two variables into a builtin. If f returns NaN
// for arguments which are not NaN, the call fails with a *DomainError.
func Dyadic(name string, f func(x, y float64) float64) *Builtin {
	return &Builtin{
		Name:  name,
		Arity: 2,
		Fn: func(args []float64) (float64, error) {
			x, y := args[0], args[1]
			r := f(x, y)
			if math.IsNaN(r) && !math.IsNaN(x) && !math.IsNaN(y) {
				return r, &DomainError{X: x, Arg: 1, Func: name}
			}
			return r, nil
		},
	}
}

// BigMonadic wraps a big float function of one variable into a builtin. f must
// set out to its result, to the precision of out; its return value is always
// ignored. If f is called on an argument outside f's domain, it should panic
// with an error of type big.ErrNaN, or that unwraps to it; the call then fails
// with a *DomainError. NaN arguments produce NaN without calling f.
func BigMonadic(name string, f func(out, in *big.Float) *big.Float) *Builtin {
	return &Builtin{
		Name:  name,
		Arity: 1,
		Fn: func(args []float64) (r float64, err error) {
			x := args[0]
			if math.IsNaN(x) {
				return x, nil
			}
			defer func() {
				p := recover()
				if p == nil {
					return
				}
				e, ok := p.(error)
				if !ok {
					panic(p)
				}
				var nan big.ErrNaN
				if !errors.As(e, &nan) {
					panic(p)
				}
				r, err = math.NaN(), &DomainError{X: x, Func: name, Reason: nan.Error()}
			}()
			in := new(big.Float).SetPrec(bigPrec).SetFloat64(x)
			out := new(big.Float).SetPrec(bigPrec)
			f(out, in)
			r, _ = out.Float64()
			return r, nil
		},
	}
}

// expFunc creates exp. Arguments far enough from zero saturate without
// computing anything.
func expFunc() *Builtin {
	b := BigMonadic("exp", bigfloat.Exp)
	f := b.Fn
	b.Fn = func(args []float64) (float64, error) {
		switch x := args[0]; {
		case x > 710:
			return math.Inf(1), nil
		case x < -746:
			return 0, nil
		}
		return f(args)
	}
	return b
}

// logFunc creates a logarithm. Arguments which are negative or too near zero
// are outside the domain.
func logFunc(name string, f func(out, in *big.Float) *big.Float) *Builtin {
	b := BigMonadic(name, f)
	g := b.Fn
	b.Fn = func(args []float64) (float64, error) {
		switch x := args[0]; {
		case x < 0:
			return math.NaN(), &DomainError{X: x, Func: name, Reason: "negative argument"}
		case math.Abs(x) < 1e-12:
			return math.NaN(), &DomainError{X: x, Func: name, Reason: "argument too near zero"}
		case math.IsInf(x, 1):
			return x, nil
		}
		return g(args)
	}
	return b
}
