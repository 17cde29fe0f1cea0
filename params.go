package cardcalc

import (
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// IsFunctionDefinition reports whether e defines a function, e.g. f(x) = x^2.
func IsFunctionDefinition(e Expr) bool {
	a, ok := e.(*Assignment)
	if !ok {
		return false
	}
	c, ok := a.Left.(*Call)
	if !ok {
		return false
	}
	return lo.EveryBy(c.Args, func(arg Expr) bool {
		_, ok := arg.(*Identifier)
		return ok
	})
}

// IsVariableDefinition reports whether e defines a variable, e.g. a = 2.
func IsVariableDefinition(e Expr) bool {
	a, ok := e.(*Assignment)
	if !ok {
		return false
	}
	_, ok = a.Left.(*Identifier)
	return ok
}

// paramNames returns the declared parameter names of a function definition's
// left side.
func paramNames(c *Call) []string {
	return lo.Map(c.Args, func(arg Expr, _ int) string {
		return arg.(*Identifier).Name
	})
}

// Parameters returns the sorted names of the free identifiers in e, i.e. the
// outer values that evaluating e depends on. Function names are not
// identifiers. The counter of a summation is bound within its body. For a
// definition, the result is the parameters of the right side, less the
// declared parameters of a function definition.
func Parameters(e Expr) []string {
	names := make(map[string]bool)
	collect(names, e, nil)
	r := lo.Keys(names)
	slices.Sort(r)
	return r
}

// collect adds the free identifiers of e to names. bound holds the names
// bound by enclosing constructs.
func collect(names map[string]bool, e Expr, bound []string) {
	switch e := e.(type) {
	case *Identifier:
		if !slices.Contains(bound, e.Name) {
			names[e.Name] = true
		}
	case *Number:
		// no names
	case *Sum:
		for _, t := range e.Terms {
			collect(names, t, bound)
		}
	case *Product:
		for _, f := range e.Factors {
			collect(names, f, bound)
		}
	case *Fraction:
		collect(names, e.Num, bound)
		collect(names, e.Den, bound)
	case *Power:
		collect(names, e.Base, bound)
		collect(names, e.Exp, bound)
	case *Call:
		for _, a := range e.Args {
			collect(names, a, bound)
		}
	case *Assignment:
		if IsFunctionDefinition(e) {
			bound = append(slices.Clip(bound), paramNames(e.Left.(*Call))...)
		}
		collect(names, e.Right, bound)
	case *Summation:
		collect(names, e.Low, bound)
		collect(names, e.High, bound)
		collect(names, e.Body, append(slices.Clip(bound), e.Counter))
	case *Factorial:
		collect(names, e.X, bound)
	default:
		panic("cardcalc: invalid expression node " + e.Kind().String())
	}
}
