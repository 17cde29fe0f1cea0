package cardcalc

import (
	"math"
	"strings"

	"golang.org/x/exp/slices"
)

// Identical reports whether a and b are structurally equal. Terms of sums,
// factors of products, and arguments of calls are compared as multisets, so
// a+b is identical to b+a.
func Identical(a, b Expr) bool {
	return Compare(a, b) == 0
}

// Compare defines a total order over expressions. The result is negative if a
// sorts before b, positive if after, and zero exactly when Identical(a, b).
// Expressions order first by Kind, then by name or value, then by children.
func Compare(a, b Expr) int {
	if ka, kb := a.Kind(), b.Kind(); ka != kb {
		return cmpInt(int(ka), int(kb))
	}
	switch a := a.(type) {
	case *Identifier:
		return strings.Compare(a.Name, b.(*Identifier).Name)
	case *Number:
		return cmpFloat(a.Value, b.(*Number).Value)
	case *Sum:
		return compareMultiset(a.Terms, b.(*Sum).Terms)
	case *Product:
		return compareMultiset(a.Factors, b.(*Product).Factors)
	case *Fraction:
		b := b.(*Fraction)
		return compareFields(a.Num, b.Num, a.Den, b.Den)
	case *Power:
		b := b.(*Power)
		return compareFields(a.Base, b.Base, a.Exp, b.Exp)
	case *Call:
		b := b.(*Call)
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return compareMultiset(a.Args, b.Args)
	case *Assignment:
		b := b.(*Assignment)
		return compareFields(a.Left, b.Left, a.Right, b.Right)
	case *Summation:
		b := b.(*Summation)
		if c := strings.Compare(a.Counter, b.Counter); c != 0 {
			return c
		}
		return compareFields(a.Low, b.Low, a.High, b.High, a.Body, b.Body)
	case *Factorial:
		return Compare(a.X, b.(*Factorial).X)
	default:
		panic("cardcalc: invalid expression node " + a.Kind().String())
	}
}

// compareFields compares pairs of subexpressions in order. The arguments
// alternate between a's field and b's field.
func compareFields(pairs ...Expr) int {
	for i := 0; i < len(pairs); i += 2 {
		if c := Compare(pairs[i], pairs[i+1]); c != 0 {
			return c
		}
	}
	return 0
}

// compareMultiset compares two lists without regard to their order. Shorter
// lists sort first; lists of equal length compare element-wise in sorted
// order.
func compareMultiset(a, b []Expr) int {
	if len(a) != len(b) {
		return cmpInt(len(a), len(b))
	}
	a, b = sorted(a), sorted(b)
	for i := range a {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return 0
}

// sorted returns a sorted copy of a list of expressions.
func sorted(v []Expr) []Expr {
	if len(v) < 2 {
		return v
	}
	r := slices.Clone(v)
	slices.SortStableFunc(r, Compare)
	return r
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// cmpFloat orders NaNs before all other values and considers them equal to
// each other so that the order stays total.
func cmpFloat(a, b float64) int {
	an, bn := math.IsNaN(a), math.IsNaN(b)
	switch {
	case an && bn:
		return 0
	case an:
		return -1
	case bn:
		return 1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
