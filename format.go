package cardcalc

import (
	"math"
	"strconv"
	"strings"
)

// Binding strengths used by the printer. They match the grammar levels of
// the parser.
const (
	precAssign = iota
	precSum
	precProduct
	precPower
	precUnary
	precPostfix
	precAtom
)

// Format returns the canonical text of an expression. Parentheses appear only
// where leaving them out would change how the text parses.
//
// Summations are always written with DefaultSummationName, so text formatted
// from a tree parsed with a different SummationName parses back as a call
// unless the same option is used.
func Format(e Expr) string {
	var b strings.Builder
	format(&b, e)
	return b.String()
}

func (e *Identifier) String() string { return Format(e) }
func (e *Number) String() string     { return Format(e) }
func (e *Sum) String() string        { return Format(e) }
func (e *Product) String() string    { return Format(e) }
func (e *Fraction) String() string   { return Format(e) }
func (e *Power) String() string      { return Format(e) }
func (e *Call) String() string       { return Format(e) }
func (e *Assignment) String() string { return Format(e) }
func (e *Summation) String() string  { return Format(e) }
func (e *Factorial) String() string  { return Format(e) }

// prec returns the binding strength of the text format writes for e.
func prec(e Expr) int {
	switch e := e.(type) {
	case *Identifier, *Call, *Summation:
		return precAtom
	case *Number:
		return precAtom
	case *Sum:
		if len(e.Terms) < 2 {
			return precAtom
		}
		return precSum
	case *Product:
		if _, ok := isNeg(e); ok {
			return precUnary
		}
		if len(e.Factors) < 2 {
			return precAtom
		}
		return precProduct
	case *Fraction:
		return precProduct
	case *Power:
		return precPower
	case *Factorial:
		return precPostfix
	case *Assignment:
		return precAssign
	default:
		panic("cardcalc: invalid expression node " + e.Kind().String())
	}
}

// wrap formats e, in parentheses if paren is true.
func wrap(b *strings.Builder, e Expr, paren bool) {
	if paren {
		b.WriteByte('(')
		defer b.WriteByte(')')
	}
	format(b, e)
}

func format(b *strings.Builder, e Expr) {
	switch e := e.(type) {
	case *Identifier:
		b.WriteString(e.Name)
	case *Number:
		formatNum(b, e.Value)
	case *Sum:
		switch len(e.Terms) {
		case 0:
			b.WriteByte('0')
			return
		case 1:
			wrap(b, e.Terms[0], prec(e.Terms[0]) < precAtom)
			return
		}
		for i, t := range e.Terms {
			if i == 0 {
				wrap(b, t, prec(t) <= precSum)
				continue
			}
			if x, ok := isNeg(t); ok {
				b.WriteString(" - ")
				wrap(b, x, prec(x) < precProduct)
				continue
			}
			b.WriteString(" + ")
			wrap(b, t, prec(t) <= precSum)
		}
	case *Product:
		if x, ok := isNeg(e); ok {
			b.WriteByte('-')
			wrap(b, x, prec(x) < precUnary)
			return
		}
		switch len(e.Factors) {
		case 0:
			b.WriteByte('1')
			return
		case 1:
			wrap(b, e.Factors[0], prec(e.Factors[0]) < precAtom)
			return
		}
		for i, f := range e.Factors {
			if i > 0 {
				b.WriteString(" * ")
			}
			wrap(b, f, prec(f) <= precProduct)
		}
	case *Fraction:
		wrap(b, e.Num, prec(e.Num) < precProduct)
		b.WriteString(" / ")
		wrap(b, e.Den, prec(e.Den) <= precProduct)
	case *Power:
		wrap(b, e.Base, prec(e.Base) <= precPower)
		b.WriteByte('^')
		wrap(b, e.Exp, prec(e.Exp) < precPower)
	case *Call:
		b.WriteString(e.Name)
		formatArgs(b, e.Args...)
	case *Assignment:
		wrap(b, e.Left, prec(e.Left) <= precAssign)
		b.WriteString(" = ")
		wrap(b, e.Right, prec(e.Right) <= precAssign)
	case *Summation:
		b.WriteString(DefaultSummationName)
		formatArgs(b, Ident(e.Counter), e.Low, e.High, e.Body)
	case *Factorial:
		wrap(b, e.X, prec(e.X) < precPostfix)
		b.WriteByte('!')
	default:
		panic("cardcalc: invalid expression node " + e.Kind().String() + " after writing " + b.String())
	}
}

func formatArgs(b *strings.Builder, args ...Expr) {
	b.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		wrap(b, a, prec(a) <= precAssign)
	}
	b.WriteByte(')')
}

// formatNum writes a number the way the lexer reads it: no exponent, and
// negative values parenthesized so that the minus sign is not taken as a
// binary operator. A negative literal parses back as a negation, and NaN and
// infinities, which only arise from folding out-of-range constants, parse
// back as identifiers; such trees round trip only up to simplification or not
// at all.
func formatNum(b *strings.Builder, v float64) {
	switch {
	case math.IsNaN(v):
		b.WriteString("NaN")
	case math.IsInf(v, 1):
		b.WriteString("Inf")
	case math.IsInf(v, -1):
		b.WriteString("(-Inf)")
	case v < 0:
		b.WriteString("(-")
		b.WriteString(strconv.FormatFloat(-v, 'f', -1, 64))
		b.WriteByte(')')
	default:
		b.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
	}
}
