package cardcalc

import (
	"math"
	"reflect"
	"testing"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"1+2", "1 + 2"},
		{"1.50", "1.5"},
		{"a-b", "a - b"},
		{"a+-b", "a - b"},
		{"-a+b", "-a + b"},
		{"a-(b+c)", "a - (b + c)"},
		{"a-b*c", "a - b * c"},
		{"a-b/c", "a - b / c"},
		{"a - -b", "a - -b"},
		{"(a+b)+c", "(a + b) + c"},
		{"a*(b+c)", "a * (b + c)"},
		{"(a*b)*c", "(a * b) * c"},
		{"(a*b)/c", "a * b / c"},
		{"a/(b*c)", "a / (b * c)"},
		{"a/b/c", "a / b / c"},
		{"a/(b/c)", "a / (b / c)"},
		{"(a/b)*c", "(a / b) * c"},
		{"a^b^c", "a^b^c"},
		{"(a^b)^c", "(a^b)^c"},
		{"(a+b)^2", "(a + b)^2"},
		{"(a*b)^2", "(a * b)^2"},
		{"-a", "-a"},
		{"--a", "--a"},
		{"-(a+b)", "-(a + b)"},
		{"-a^2", "-a^2"},
		{"(-a)^2", "-a^2"},
		{"-(a^2)", "-(a^2)"},
		{"2*-a", "2 * -a"},
		{"-a*2", "-a * 2"},
		{"2^-a", "2^-a"},
		{"f()", "f()"},
		{"f(x,y)", "f(x, y)"},
		{"f(x+1)", "f(x + 1)"},
		{"sum(i,1,10,i^2)", "sum(i, 1, 10, i^2)"},
		{"5!", "5!"},
		{"(a+b)!", "(a + b)!"},
		{"-3!", "-3!"},
		{"(-3)!", "(-3)!"},
		{"(a^2)!", "(a^2)!"},
		{"f(x)=x^2", "f(x) = x^2"},
		{"a = b + 1", "a = b + 1"},
	}
	for _, c := range cases {
		c := c
		t.Run(c.src, func(t *testing.T) {
			e, err := Parse(c.src)
			if err != nil {
				t.Fatalf("couldn't parse %q: %v", c.src, err)
			}
			got := Format(e)
			if got != c.want {
				t.Errorf("wrong text: want %q, got %q", c.want, got)
			}
			r, err := Parse(got)
			if err != nil {
				t.Fatalf("couldn't parse formatted %q: %v", got, err)
			}
			if !reflect.DeepEqual(e, r) {
				t.Errorf("round trip of %q changed structure: %v became %v", c.src, e, r)
			}
		})
	}
}

func TestFormatBuilt(t *testing.T) {
	a := Ident("a")
	cases := []struct {
		name string
		e    Expr
		want string
	}{
		{"neg-num", Num(-2), "(-2)"},
		{"sum-neg-num", Add(a, Num(-2)), "a + (-2)"},
		{"empty-sum", Add(), "0"},
		{"empty-product", Mul(), "1"},
		{"single-sum", Add(a), "a"},
		{"nan", Num(math.NaN()), "NaN"},
		{"inf", Num(math.Inf(1)), "Inf"},
		{"neg-inf", Num(math.Inf(-1)), "(-Inf)"},
		{"small", Num(0.000001), "0.000001"},
		{"large", Num(1e21), "1000000000000000000000"},
		{"product-sum", Mul(Num(2), Add(a, Num(1))), "2 * (a + 1)"},
		{"sub", Sub(a, Num(1)), "a - 1"},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			if got := Format(c.e); got != c.want {
				t.Errorf("want %q, got %q", c.want, got)
			}
		})
	}
}

func TestFormatSimplified(t *testing.T) {
	// Simplified forms can contain negative literals, which parse back as
	// negations, so they round trip up to simplification.
	cases := []string{
		"a + a",
		"a - 2*b",
		"x^2 - 1",
		"(a + b) * (a - b)",
		"1 / (a * a)",
		"2 / 4 * x",
		"-x / 3",
		"sin(x) * sin(x) - 1",
	}
	for _, src := range cases {
		src := src
		t.Run(src, func(t *testing.T) {
			e, err := Parse(src)
			if err != nil {
				t.Fatal(err)
			}
			s, err := Simplify(e)
			if err != nil {
				t.Fatal(err)
			}
			r, err := Parse(Format(s))
			if err != nil {
				t.Fatalf("couldn't parse %q: %v", Format(s), err)
			}
			rs, err := Simplify(r)
			if err != nil {
				t.Fatal(err)
			}
			if !Identical(s, rs) {
				t.Errorf("%q simplified to %v, reparsed as %v", src, s, rs)
			}
		})
	}
}

func TestFormatLimits(t *testing.T) {
	// Summations print with the default name whatever name they parsed from.
	e, err := Parse("sigma(k, 1, 2, k)", SummationName("sigma"))
	if err != nil {
		t.Fatal(err)
	}
	if got := Format(e); got != "sum(k, 1, 2, k)" {
		t.Errorf("summation formatted as %q", got)
	}
	// Non-finite numbers print as names.
	cases := []struct {
		v    float64
		name string
	}{
		{math.NaN(), "NaN"},
		{math.Inf(1), "Inf"},
	}
	for _, c := range cases {
		r, err := Parse(Format(Num(c.v)))
		if err != nil {
			t.Errorf("%v: %v", c.v, err)
			continue
		}
		if !Identical(r, Ident(c.name)) {
			t.Errorf("%v reparsed as %v", c.v, r)
		}
	}
}
