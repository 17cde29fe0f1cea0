package cardcalc

import (
	"math"
	"testing"
)

func TestIdentical(t *testing.T) {
	a, b, c := Ident("a"), Ident("b"), Ident("c")
	cases := []struct {
		name string
		x, y Expr
		want bool
	}{
		{"ident", a, Ident("a"), true},
		{"ident-diff", a, b, false},
		{"num", Num(1), Num(1), true},
		{"num-diff", Num(1), Num(2), false},
		{"num-nan", Num(math.NaN()), Num(math.NaN()), true},
		{"kind", a, Num(1), false},
		{"sum-perm", Add(a, b, c), Add(c, a, b), true},
		{"sum-multiset", Add(a, a, b), Add(a, b, b), false},
		{"sum-len", Add(a, b), Add(a, b, c), false},
		{"product-perm", Mul(a, Num(2)), Mul(Num(2), a), true},
		{"nested-perm", Add(Mul(a, b), c), Add(c, Mul(b, a)), true},
		{"fraction", Div(a, b), Div(a, b), true},
		{"fraction-swap", Div(a, b), Div(b, a), false},
		{"power-swap", Pow(a, b), Pow(b, a), false},
		{"call-perm", CallOf("f", a, b), CallOf("f", b, a), true},
		{"call-name", CallOf("f", a), CallOf("g", a), false},
		{"assign", Assign(a, Num(1)), Assign(a, Num(1)), true},
		{"summation", &Summation{"i", Num(1), Num(2), a}, &Summation{"i", Num(1), Num(2), a}, true},
		{"summation-counter", &Summation{"i", Num(1), Num(2), a}, &Summation{"j", Num(1), Num(2), a}, false},
		{"factorial", &Factorial{X: a}, &Factorial{X: a}, true},
		{"factorial-diff", &Factorial{X: a}, &Factorial{X: b}, false},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			if got := Identical(c.x, c.y); got != c.want {
				t.Errorf("Identical(%v, %v): want %t, got %t", c.x, c.y, c.want, got)
			}
			if got := Identical(c.y, c.x); got != c.want {
				t.Errorf("Identical(%v, %v): want %t, got %t", c.y, c.x, c.want, got)
			}
		})
	}
}

func TestCompareOrder(t *testing.T) {
	// Each expression sorts strictly before all those after it.
	exprs := []Expr{
		Ident("a"),
		Ident("b"),
		Num(math.NaN()),
		Num(math.Inf(-1)),
		Num(-1),
		Num(2),
		Add(Ident("a"), Ident("b")),
		Add(Ident("a"), Ident("b"), Ident("c")),
		Mul(Ident("a"), Ident("b")),
		Div(Ident("a"), Ident("b")),
		Pow(Ident("a"), Num(2)),
		Pow(Ident("b"), Num(1)),
		CallOf("f"),
		CallOf("f", Ident("x")),
		CallOf("g"),
		Assign(Ident("a"), Num(1)),
		&Summation{"i", Num(1), Num(2), Ident("i")},
		&Factorial{X: Num(3)},
	}
	for i, x := range exprs {
		for j, y := range exprs {
			got := Compare(x, y)
			switch {
			case i < j && got >= 0:
				t.Errorf("Compare(%v, %v) = %d, want negative", x, y, got)
			case i > j && got <= 0:
				t.Errorf("Compare(%v, %v) = %d, want positive", x, y, got)
			case i == j && got != 0:
				t.Errorf("Compare(%v, %v) = %d, want zero", x, y, got)
			}
		}
	}
}

func TestKindString(t *testing.T) {
	cases := []struct {
		k    Kind
		want string
	}{
		{KindIdentifier, "Identifier"},
		{KindFactorial, "Factorial"},
		{Kind(100), "Kind(100)"},
	}
	for _, c := range cases {
		if got := c.k.String(); got != c.want {
			t.Errorf("want %q, got %q", c.want, got)
		}
	}
}
