// Package cardcalc implements a small symbolic calculator: a parser for
// arithmetic expressions and definitions, a simplifier that rewrites
// expressions into a canonical form, and an evaluator that computes their
// values against a chain of scopes binding names to constants, variables, and
// functions.
//
// The syntax is conventional. "2 * x^2 - 3 * x + 1" is a polynomial, "-2^2" is
// the same as "(-2)^2", and "5!" is a factorial. A call like "sum(i, 1, 10,
// i^2)" sums its last argument over the integers from 1 to 10. An input can
// also be a definition, either of a variable, "a = 2 * pi", or of a function,
// "f(x, y) = x * y".
//
// Definitions are added to a Store one scope at a time. Variables and
// functions see only the scopes that existed when they were defined, so a
// later definition can shadow a name without changing the meaning of
// anything defined before it.
package cardcalc
