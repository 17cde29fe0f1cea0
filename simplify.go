package cardcalc

import (
	"math"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Simplify rewrites an expression into canonical form. Sums and products are
// flattened with like terms combined and their operands sorted, fractions
// are reduced, and trivial powers are collapsed. Other kinds of expressions,
// including the arguments of calls, are returned unchanged.
//
// Simplify fails with an *InvalidError when the expression contains 0^0 or a
// division by zero that is apparent without knowing the values of any names.
func Simplify(e Expr) (Expr, error) {
	switch e := e.(type) {
	case *Sum:
		return simplifySum(e.Terms)
	case *Product:
		return simplifyProduct(e.Factors)
	case *Fraction:
		return simplifyFraction(e.Num, e.Den)
	case *Power:
		return simplifyPower(e.Base, e.Exp)
	default:
		return e, nil
	}
}

// simplifyAll simplifies each expression in a list into a new list.
func simplifyAll(v []Expr) ([]Expr, error) {
	r := make([]Expr, len(v))
	for i, e := range v {
		s, err := Simplify(e)
		if err != nil {
			return nil, err
		}
		r[i] = s
	}
	return r, nil
}

// flattenSum returns the terms of a sum with nested sums spliced in.
func flattenSum(terms []Expr) []Expr {
	r := make([]Expr, 0, len(terms))
	for _, t := range terms {
		if s, ok := t.(*Sum); ok {
			r = append(r, flattenSum(s.Terms)...)
			continue
		}
		r = append(r, t)
	}
	return r
}

// flattenProduct returns the factors of a product with nested products
// spliced in.
func flattenProduct(factors []Expr) []Expr {
	r := make([]Expr, 0, len(factors))
	for _, f := range factors {
		if p, ok := f.(*Product); ok {
			r = append(r, flattenProduct(p.Factors)...)
			continue
		}
		r = append(r, f)
	}
	return r
}

// unfactor builds the product of a list of factors, without a Product node
// when there is only one.
func unfactor(fs []Expr) Expr {
	switch len(fs) {
	case 0:
		return Num(1)
	case 1:
		return fs[0]
	default:
		return &Product{Factors: fs}
	}
}

// factors returns the numeric coefficient and the remaining factors of a
// simplified expression.
func factors(e Expr) (float64, []Expr) {
	switch e := e.(type) {
	case *Number:
		return e.Value, nil
	case *Product:
		if n, ok := e.Factors[0].(*Number); ok {
			return n.Value, e.Factors[1:]
		}
		return 1, e.Factors
	default:
		return 1, []Expr{e}
	}
}

// like is a group of like terms or factors: a shared expression and the
// list of coefficients or exponents to be added.
type like struct {
	x  Expr
	ks []Expr
}

// group adds k to the group whose expression is identical to x, or adds a new
// group.
func group(groups []like, x, k Expr) []like {
	i := slices.IndexFunc(groups, func(g like) bool { return Identical(g.x, x) })
	if i < 0 {
		return append(groups, like{x: x, ks: []Expr{k}})
	}
	groups[i].ks = append(groups[i].ks, k)
	return groups
}

// splitTerm separates the numeric coefficient of a simplified symbolic term
// from the rest of it. The coefficient of a fraction is that of its
// numerator.
func splitTerm(t Expr) (float64, Expr) {
	switch t := t.(type) {
	case *Product:
		k, fs := factors(t)
		return k, unfactor(fs)
	case *Fraction:
		switch num := t.Num.(type) {
		case *Number:
			return num.Value, Div(Num(1), t.Den)
		case *Product:
			k, fs := factors(num)
			return k, Div(unfactor(fs), t.Den)
		}
	}
	return 1, t
}

func simplifySum(terms []Expr) (Expr, error) {
	ts, err := simplifyAll(flattenSum(terms))
	if err != nil {
		return nil, err
	}
	ts = flattenSum(ts)
	var c float64
	var groups []like
	for _, t := range ts {
		if n, ok := t.(*Number); ok {
			c += n.Value
			continue
		}
		k, rest := splitTerm(t)
		groups = group(groups, rest, Num(k))
	}
	r := make([]Expr, 0, len(groups)+1)
	rerun := false
	for _, g := range groups {
		k := lo.SumBy(g.ks, func(k Expr) float64 { return k.(*Number).Value })
		switch k {
		case 0:
			continue
		case 1:
			if g.x.Kind() == KindSum {
				// The terms of the sum must be spliced in and may combine
				// with the others.
				rerun = true
			}
			r = append(r, g.x)
			continue
		}
		t, err := simplifyProduct([]Expr{Num(k), g.x})
		if err != nil {
			return nil, err
		}
		switch t.(type) {
		case *Number, *Sum:
			// Combining coefficients collapsed the term, so it may combine
			// further with the constant or other terms.
			rerun = true
		}
		r = append(r, t)
	}
	if rerun {
		return simplifySum(append(r, Num(c)))
	}
	slices.SortStableFunc(r, Compare)
	if c != 0 {
		r = append(r, Num(c))
	}
	switch len(r) {
	case 0:
		return Num(0), nil
	case 1:
		return r[0], nil
	default:
		return &Sum{Terms: r}, nil
	}
}

// base returns the base and exponent of a factor. The exponent of anything
// besides a power is 1.
func base(f Expr) (Expr, Expr) {
	if p, ok := f.(*Power); ok {
		return p.Base, p.Exp
	}
	return f, Num(1)
}

func simplifyProduct(fs []Expr) (Expr, error) {
	fs, err := simplifyAll(flattenProduct(fs))
	if err != nil {
		return nil, err
	}
	fs = flattenProduct(fs)

	// Pull fractions together.
	if lo.ContainsBy(fs, isFraction) {
		var nums, dens []Expr
		for _, f := range fs {
			if q, ok := f.(*Fraction); ok {
				nums = append(nums, q.Num)
				dens = append(dens, q.Den)
				continue
			}
			nums = append(nums, f)
		}
		return simplifyFraction(&Product{Factors: nums}, &Product{Factors: dens})
	}

	// Expand sums.
	sums := lo.Filter(fs, func(f Expr, _ int) bool { return f.Kind() == KindSum })
	if len(sums) > 1 {
		others := lo.Filter(fs, func(f Expr, _ int) bool { return f.Kind() != KindSum })
		expanded := [][]Expr{others}
		for _, s := range sums {
			next := make([][]Expr, 0, len(expanded)*len(s.(*Sum).Terms))
			for _, p := range expanded {
				for _, t := range s.(*Sum).Terms {
					next = append(next, append(slices.Clip(p), t))
				}
			}
			expanded = next
		}
		terms := lo.Map(expanded, func(p []Expr, _ int) Expr { return &Product{Factors: p} })
		return simplifySum(terms)
	}

	c := 1.0
	var groups []like
	for _, f := range fs {
		if n, ok := f.(*Number); ok {
			c *= n.Value
			continue
		}
		b, x := base(f)
		groups = group(groups, b, x)
	}
	r := make([]Expr, 0, len(groups)+1)
	rerun := false
	for _, g := range groups {
		if len(g.ks) == 1 && isNum(g.ks[0], 1) {
			// A lone factor which is not a power is already simplified.
			r = append(r, g.x)
			continue
		}
		x, err := simplifySum(g.ks)
		if err != nil {
			return nil, err
		}
		p, err := simplifyPower(g.x, x)
		if err != nil {
			return nil, err
		}
		switch p := p.(type) {
		case *Number:
			c *= p.Value
			continue
		case *Product, *Fraction, *Sum:
			rerun = true
		}
		r = append(r, p)
	}
	if rerun {
		return simplifyProduct(append(r, Num(c)))
	}
	if c == 0 {
		return Num(0), nil
	}
	slices.SortStableFunc(r, Compare)
	if c != 1 {
		r = append([]Expr{Num(c)}, r...)
	}
	if len(r) == 0 {
		return Num(1), nil
	}
	return unfactor(r), nil
}

func isFraction(e Expr) bool {
	return e.Kind() == KindFraction
}

// quotient returns the numerator and denominator of a simplified expression.
func quotient(e Expr) (Expr, Expr) {
	if q, ok := e.(*Fraction); ok {
		return q.Num, q.Den
	}
	return e, Num(1)
}

func simplifyFraction(num, den Expr) (Expr, error) {
	num, err := Simplify(num)
	if err != nil {
		return nil, err
	}
	den, err = Simplify(den)
	if err != nil {
		return nil, err
	}
	if isFraction(num) || isFraction(den) {
		nn, nd := quotient(num)
		dn, dd := quotient(den)
		if num, err = simplifyProduct([]Expr{nn, dd}); err != nil {
			return nil, err
		}
		if den, err = simplifyProduct([]Expr{nd, dn}); err != nil {
			return nil, err
		}
	}
	if isNum(den, 0) {
		return nil, &InvalidError{Expr: Div(num, den), Reason: "division by zero"}
	}

	nc, nfs := factors(num)
	dc, dfs := factors(den)
	nfs, dfs = cancel(nfs, dfs)
	nc, dc = reduce(nc, dc)
	if num, err = simplifyProduct(append(nfs, Num(nc))); err != nil {
		return nil, err
	}
	if den, err = simplifyProduct(append(dfs, Num(dc))); err != nil {
		return nil, err
	}
	switch {
	case isNum(num, 0):
		return Num(0), nil
	case isNum(den, 1):
		return num, nil
	case isNum(den, 0):
		return nil, &InvalidError{Expr: Div(num, den), Reason: "division by zero"}
	}
	return Div(num, den), nil
}

// cancel divides out factors with identical bases from the numerator and
// denominator factor lists by subtracting their exponents. It returns new
// lists.
func cancel(nfs, dfs []Expr) ([]Expr, []Expr) {
	rn := make([]Expr, 0, len(nfs))
	rd := slices.Clone(dfs)
	for _, f := range nfs {
		b, x := base(f)
		i := slices.IndexFunc(rd, func(d Expr) bool {
			db, _ := base(d)
			return Identical(b, db)
		})
		if i < 0 {
			rn = append(rn, f)
			continue
		}
		d := rd[i]
		_, y := base(d)
		diff, err := simplifySum([]Expr{x, Neg(y)})
		if err != nil {
			rn = append(rn, f)
			continue
		}
		rd = slices.Delete(rd, i, i+1)
		switch n, _ := diff.(*Number); {
		case n != nil && n.Value == 0:
			// cancelled entirely
		case n != nil && n.Value < 0:
			rd = append(rd, Pow(b, Num(-n.Value)))
		default:
			rn = append(rn, Pow(b, diff))
		}
	}
	return rn, rd
}

// reduce normalizes the numeric coefficients of a fraction. Integers are
// divided by their greatest common divisor with the sign moved to the
// numerator; otherwise the denominator's coefficient is divided out.
func reduce(n, d float64) (float64, float64) {
	if !isInteger(n) || !isInteger(d) || d == 0 {
		return n / d, 1
	}
	if g := gcd(math.Abs(n), math.Abs(d)); g > 1 {
		n, d = n/g, d/g
	}
	if d < 0 {
		n, d = -n, -d
	}
	return n, d
}

// gcd computes the greatest common divisor of two non-negative integers.
func gcd(a, b float64) float64 {
	for b != 0 {
		a, b = b, math.Mod(a, b)
	}
	return a
}

func simplifyPower(b, x Expr) (Expr, error) {
	b, err := Simplify(b)
	if err != nil {
		return nil, err
	}
	x, err = Simplify(x)
	if err != nil {
		return nil, err
	}
	switch {
	case isNum(b, 0) && isNum(x, 0):
		return nil, &InvalidError{Expr: Pow(b, x), Reason: "0^0 is undefined"}
	case isNum(b, 0):
		if n, ok := x.(*Number); ok && n.Value < 0 {
			return nil, &InvalidError{Expr: Pow(b, x), Reason: "division by zero"}
		}
		return Num(0), nil
	case isNum(x, 0):
		return Num(1), nil
	case isNum(x, 1):
		return b, nil
	case isNum(b, 1):
		return Num(1), nil
	}
	return Pow(b, x), nil
}
