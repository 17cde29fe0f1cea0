package cardcalc

import "strconv"

// Expr is a node in the syntax tree of an expression. The set of node types is
// closed: Identifier, Number, Sum, Product, Fraction, Power, Call, Assignment,
// Summation, and Factorial. Expressions returned by this package are never
// modified afterward, so subtrees may be shared freely.
type Expr interface {
	// Kind returns the node kind tag.
	Kind() Kind
	// expr seals the interface.
	expr()
}

// Kind is the tag of an expression node. The order of kinds is the primary
// key of Compare.
type Kind int8

const (
	KindIdentifier Kind = iota
	KindNumber
	KindSum
	KindProduct
	KindFraction
	KindPower
	KindCall
	KindAssignment
	KindSummation
	KindFactorial
)

var kindNames = [...]string{
	KindIdentifier: "Identifier",
	KindNumber:     "Number",
	KindSum:        "Sum",
	KindProduct:    "Product",
	KindFraction:   "Fraction",
	KindPower:      "Power",
	KindCall:       "Call",
	KindAssignment: "Assignment",
	KindSummation:  "Summation",
	KindFactorial:  "Factorial",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

type (
	// Identifier is a reference to a named value.
	Identifier struct {
		Name string
	}

	// Number is a numeric literal.
	Number struct {
		Value float64
	}

	// Sum is the sum of its terms.
	Sum struct {
		Terms []Expr
	}

	// Product is the product of its factors.
	Product struct {
		Factors []Expr
	}

	// Fraction is Num divided by Den.
	Fraction struct {
		Num, Den Expr
	}

	// Power is Base raised to Exp.
	Power struct {
		Base, Exp Expr
	}

	// Call is a call of the function named Name.
	Call struct {
		Name string
		Args []Expr
	}

	// Assignment is a definition. Left is an *Identifier for a variable
	// definition or a *Call with distinct *Identifier arguments for a
	// function definition.
	Assignment struct {
		Left, Right Expr
	}

	// Summation is the sum of Body for each integer Counter from Low to High
	// inclusive.
	Summation struct {
		Counter   string
		Low, High Expr
		Body      Expr
	}

	// Factorial is X!.
	Factorial struct {
		X Expr
	}
)

func (*Identifier) Kind() Kind { return KindIdentifier }
func (*Number) Kind() Kind     { return KindNumber }
func (*Sum) Kind() Kind        { return KindSum }
func (*Product) Kind() Kind    { return KindProduct }
func (*Fraction) Kind() Kind   { return KindFraction }
func (*Power) Kind() Kind      { return KindPower }
func (*Call) Kind() Kind       { return KindCall }
func (*Assignment) Kind() Kind { return KindAssignment }
func (*Summation) Kind() Kind  { return KindSummation }
func (*Factorial) Kind() Kind  { return KindFactorial }

func (*Identifier) expr() {}
func (*Number) expr()     {}
func (*Sum) expr()        {}
func (*Product) expr()    {}
func (*Fraction) expr()   {}
func (*Power) expr()      {}
func (*Call) expr()       {}
func (*Assignment) expr() {}
func (*Summation) expr()  {}
func (*Factorial) expr()  {}

// Ident creates an identifier node.
func Ident(name string) *Identifier {
	return &Identifier{Name: name}
}

// Num creates a number node.
func Num(v float64) *Number {
	return &Number{Value: v}
}

// Add creates a sum of terms.
func Add(terms ...Expr) *Sum {
	return &Sum{Terms: terms}
}

// Mul creates a product of factors.
func Mul(factors ...Expr) *Product {
	return &Product{Factors: factors}
}

// Sub creates the sum of a and the negation of b, which is how subtraction
// is represented.
func Sub(a, b Expr) *Sum {
	return &Sum{Terms: []Expr{a, Neg(b)}}
}

// Neg creates the product of -1 and x, which is how negation is represented.
func Neg(x Expr) *Product {
	return &Product{Factors: []Expr{Num(-1), x}}
}

// Div creates a fraction.
func Div(num, den Expr) *Fraction {
	return &Fraction{Num: num, Den: den}
}

// Pow creates a power.
func Pow(base, exp Expr) *Power {
	return &Power{Base: base, Exp: exp}
}

// CallOf creates a function call.
func CallOf(name string, args ...Expr) *Call {
	if args == nil {
		args = []Expr{}
	}
	return &Call{Name: name, Args: args}
}

// Assign creates an assignment.
func Assign(left, right Expr) *Assignment {
	return &Assignment{Left: left, Right: right}
}

// isNum reports whether e is the number v.
func isNum(e Expr, v float64) bool {
	n, ok := e.(*Number)
	return ok && n.Value == v
}

// isNeg reports whether e is the negation form Product([-1, x]) and returns x.
func isNeg(e Expr) (Expr, bool) {
	p, ok := e.(*Product)
	if !ok || len(p.Factors) != 2 || !isNum(p.Factors[0], -1) {
		return nil, false
	}
	return p.Factors[1], true
}
