package console_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/zephyrtronium/cardcalc"
	"github.com/zephyrtronium/cardcalc/console"
)

func TestSubmit(t *testing.T) {
	cases := []struct {
		src  string
		kind console.Kind
		name string
		// grows is whether the store gains a scope.
		grows bool
	}{
		{"1 + 2", console.ExpressionCard, "", false},
		{"a = 2", console.VariableCard, "a", true},
		{"f(x) = x * a", console.FunctionCard, "f", true},
		{"f(a)", console.ExpressionCard, "", false},
		{"b = c", console.ErrorCard, "", false},
		{"g(x) = x * y", console.ErrorCard, "", false},
		{"h(x) = ln(x - 1)", console.FunctionCard, "h", true},
		{"sqrt(-1)", console.ExpressionCard, "", false},
		{"a +", console.ErrorCard, "", false},
		{"sin(1, 2)", console.ErrorCard, "", false},
		{"0^0", console.ErrorCard, "", false},
		{"k(x) = x / 0", console.ErrorCard, "", false},
		{"r(x) = r(x)", console.ErrorCard, "", false},
		{"q = q + 1", console.ErrorCard, "", false},
		{"a = a + 1", console.VariableCard, "a", true},
	}
	s := console.New()
	for i, c := range cases {
		before := s.Store().Len()
		card := s.Submit(c.src)
		if card == nil {
			t.Fatalf("%q: no card", c.src)
		}
		if card.Kind != c.kind {
			t.Errorf("%q: want %v, got %v (%v)", c.src, c.kind, card.Kind, card.Err)
		}
		if card.Name != c.name {
			t.Errorf("%q: want name %q, got %q", c.src, c.name, card.Name)
		}
		if (card.Kind == console.ErrorCard) != (card.Err != nil) {
			t.Errorf("%q: %v card with error %v", c.src, card.Kind, card.Err)
		}
		if card.Position != before {
			t.Errorf("%q: position %d, store had %d scopes", c.src, card.Position, before)
		}
		after := s.Store().Len()
		if grew := after == before+1; grew != c.grows || (!grew && after != before) {
			t.Errorf("%q: store went from %d to %d scopes", c.src, before, after)
		}
		if got := len(s.Cards()); got != i+1 {
			t.Errorf("%q: %d cards", c.src, got)
		}
		if s.Cards()[i] != card {
			t.Errorf("%q: card not last", c.src)
		}
	}
}

func TestSubmitBlank(t *testing.T) {
	s := console.New()
	for _, src := range []string{"", "   "} {
		if c := s.Submit(src); c != nil {
			t.Errorf("%q gave a card %+v", src, c)
		}
	}
	if len(s.Cards()) != 0 {
		t.Errorf("blank lines were kept")
	}
	// Other whitespace is not skipped by the parser.
	for _, src := range []string{"\t", " \n "} {
		c := s.Submit(src)
		if c == nil {
			t.Errorf("%q gave no card", src)
			continue
		}
		var le *cardcalc.LexError
		if c.Kind != console.ErrorCard || !errors.As(c.Err, &le) {
			t.Errorf("%q: want error card with LexError, got %v card (%v)", src, c.Kind, c.Err)
		}
	}
}

func TestSubmitHugeSummation(t *testing.T) {
	s := console.New()
	c := s.Submit("sum(i, 9007199254740992, 9007199254740994, 1)")
	if c.Kind != console.ExpressionCard {
		t.Fatalf("want expression card, got %v (%v)", c.Kind, c.Err)
	}
	r, err := c.Result()
	if err != nil || r != 3 {
		t.Errorf("want 3, got %g, %v", r, err)
	}
}

func TestSubmitErrors(t *testing.T) {
	cases := []struct {
		src   string
		check func(error) bool
	}{
		{"a +", cardcalc.IsParseError},
		{"", nil},
		{"b = c", func(err error) bool { var ne *cardcalc.NameError; return errors.As(err, &ne) && ne.Name == "c" }},
		{"sin(1, 2)", func(err error) bool { var ie *cardcalc.InvalidError; return errors.As(err, &ie) }},
		{"1/0", func(err error) bool { var ie *cardcalc.InvalidError; return errors.As(err, &ie) }},
	}
	s := console.New()
	for _, c := range cases {
		if c.check == nil {
			continue
		}
		card := s.Submit(c.src)
		if card.Kind != console.ErrorCard {
			t.Errorf("%q: accepted as %v", c.src, card.Kind)
			continue
		}
		if !c.check(card.Err) {
			t.Errorf("%q: wrong error %v", c.src, card.Err)
		}
	}
}

func TestResult(t *testing.T) {
	s := console.New()
	s.Submit("a = 2")
	s.Submit("f(x) = x^2 + a")
	cases := []struct {
		src    string
		r      float64
		domain bool
	}{
		{"1 + 2", 3, false},
		{"a * 10", 20, false},
		{"f(3)", 11, false},
		{"b = f(a) - 1", 5, false},
		{"b", 5, false},
		{"sqrt(-1)", 0, true},
		{"ln(a - 2)", 0, true},
		{"c = 1 / (a - 2)", 0, true},
	}
	for _, c := range cases {
		c := c
		t.Run(c.src, func(t *testing.T) {
			card := s.Submit(c.src)
			if card.Kind == console.ErrorCard {
				t.Fatalf("rejected: %v", card.Err)
			}
			r, err := card.Result()
			if c.domain {
				if !cardcalc.IsDomainError(err) {
					t.Errorf("want domain error, got %g, %v", r, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if r != c.r {
				t.Errorf("want %g, got %g", c.r, r)
			}
		})
	}
}

func TestResultNotValue(t *testing.T) {
	s := console.New()
	for _, src := range []string{"f(x) = x", "1 +"} {
		card := s.Submit(src)
		if _, err := card.Result(); err == nil {
			t.Errorf("%v card %q has a result", card.Kind, src)
		}
	}
}

func TestVariableSimplified(t *testing.T) {
	s := console.New()
	card := s.Submit("a = x + x")
	if card.Kind != console.ErrorCard {
		t.Fatalf("undefined x accepted as %v", card.Kind)
	}
	s.Submit("x = 3")
	card = s.Submit("a = x + x")
	if card.Kind != console.VariableCard {
		t.Fatalf("rejected: %v", card.Err)
	}
	if got := cardcalc.Format(card.Expr); got != "2 * x" {
		t.Errorf("stored body %q", got)
	}
	if card.Input != "a = x + x" {
		t.Errorf("input is %q", card.Input)
	}
}

func TestSample(t *testing.T) {
	s := console.New()
	s.Submit("k = 10")
	f := s.Submit("f(x, y) = x * y + k")
	s.Submit("k = 1000")
	cases := []struct {
		args []float64
		r    float64
		err  bool
	}{
		{[]float64{2, 3}, 16, false},
		{[]float64{0, 0}, 10, false},
		{[]float64{1}, 0, true},
		{nil, 0, true},
	}
	for _, c := range cases {
		r, err := f.Sample(c.args...)
		if c.err {
			var ie *cardcalc.InvalidError
			if !errors.As(err, &ie) {
				t.Errorf("%v: want InvalidError, got %g, %v", c.args, r, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%v: %v", c.args, err)
			continue
		}
		if r != c.r {
			t.Errorf("%v: want %g, got %g", c.args, c.r, r)
		}
	}
	e := s.Submit("1 + 1")
	if _, err := e.Sample(); err == nil {
		t.Error("sampled an expression card")
	}
}

func TestEdit(t *testing.T) {
	s := console.New()
	early := s.Submit("5")
	a := s.Submit("a = 2")
	e := s.Submit("a * 10")
	b := s.Submit("b = a + 1")
	f := s.Submit("f(x) = x * a")
	s.Submit("z = 7")

	check := func(name string, card *console.Card, want float64) {
		t.Helper()
		r, err := card.Result()
		if err != nil {
			t.Errorf("%s: %v", name, err)
			return
		}
		if r != want {
			t.Errorf("%s: want %g, got %g", name, want, r)
		}
	}

	if err := s.Edit(a, "5"); err != nil {
		t.Fatal(err)
	}
	check("a", a, 5)
	check("a * 10", e, 50)
	check("b", b, 6)
	check("early", early, 5)
	if r, err := f.Sample(2); err != nil || r != 10 {
		t.Errorf("f(2) after edit: %g, %v", r, err)
	}
	if a.Input != "5" || cardcalc.Format(a.Expr) != "5" {
		t.Errorf("card not updated: %q, %v", a.Input, a.Expr)
	}
	if s.Store().Len() != 5 {
		t.Errorf("edit changed the store length to %d", s.Store().Len())
	}

	// Unparsable edits are ignored.
	if err := s.Edit(a, "5 +"); err != nil {
		t.Errorf("unparsable edit: %v", err)
	}
	check("a after bad parse", a, 5)

	// Edits that can't be evaluated are returned and ignored.
	cases := []string{"zz", "z", "a", "1/0", "sin(1, 2)"}
	for _, line := range cases {
		err := s.Edit(a, line)
		if err == nil {
			t.Errorf("edit to %q accepted", line)
			continue
		}
		if !strings.Contains(err.Error(), "editing a") {
			t.Errorf("%q doesn't name a", err)
		}
		check("a after "+line, a, 5)
		check("a * 10 after "+line, e, 50)
	}

	// Only variable cards can be edited.
	if err := s.Edit(e, "3"); err == nil {
		t.Error("edited an expression card")
	}
	if err := s.Edit(f, "3"); err == nil {
		t.Error("edited a function card")
	}
	other := console.New()
	if err := other.Edit(a, "3"); err == nil {
		t.Error("edited a card from another session")
	}
}

func TestOptions(t *testing.T) {
	cases := []struct {
		name string
		opts []console.Option
		src  string
		kind console.Kind
	}{
		{"probe-default", nil, "h(n) = sum(i, 1, n, q)", console.ErrorCard},
		{"probe-zero", []console.Option{console.WithProbe(0)}, "h(n) = sum(i, 1, n, q)", console.FunctionCard},
		{"store", []console.Option{console.WithStore(cardcalc.FromBindings(cardcalc.Bind("k", 4)))}, "k * 2", console.ExpressionCard},
		{"store-no-builtins", []console.Option{console.WithStore(cardcalc.FromBindings())}, "sin(0)", console.ErrorCard},
		{"summation-name", []console.Option{console.WithParseOptions(cardcalc.SummationName(""))}, "sum(i, 1, 2, i)", console.ErrorCard},
		{"depth", []console.Option{console.WithParseOptions(cardcalc.MaxDepth(2))}, "((((1))))", console.ErrorCard},
		{"max-terms", []console.Option{console.WithEvalOptions(cardcalc.MaxTerms(5))}, "sum(i, 1, 10, i)", console.ExpressionCard},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			s := console.New(c.opts...)
			card := s.Submit(c.src)
			if card.Kind != c.kind {
				t.Errorf("want %v, got %v (%v)", c.kind, card.Kind, card.Err)
			}
		})
	}
}

func TestMaxTermsResult(t *testing.T) {
	s := console.New(console.WithEvalOptions(cardcalc.MaxTerms(5)))
	card := s.Submit("sum(i, 1, 10, i)")
	if _, err := card.Result(); !cardcalc.IsDomainError(err) {
		t.Errorf("want domain error, got %v", err)
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf).Level(zerolog.DebugLevel)
	s := console.New(console.WithLogger(l))
	a := s.Submit("a = 1")
	s.Submit("a +")
	if err := s.Edit(a, "2"); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{`"message":"card submitted"`, `"kind":"variable"`, `"kind":"error"`, `"message":"variable edited"`, `"value":"2"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log doesn't contain %s:\n%s", want, out)
		}
	}
}

func TestKindString(t *testing.T) {
	cases := []struct {
		k    console.Kind
		want string
	}{
		{console.ExpressionCard, "expression"},
		{console.FunctionCard, "function"},
		{console.VariableCard, "variable"},
		{console.ErrorCard, "error"},
		{console.Kind(9), "Kind(9)"},
	}
	for _, c := range cases {
		if got := c.k.String(); got != c.want {
			t.Errorf("want %q, got %q", c.want, got)
		}
	}
}
