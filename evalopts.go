package cardcalc

import "strconv"

// DefaultMaxTerms is the default limit on the number of terms a summation may
// evaluate.
const DefaultMaxTerms = 1 << 20

// EvalOption is an option for evaluation.
type EvalOption interface {
	evalOption(evalctx) evalctx
}

type termsopt int

// evalctx holds the configuration for one evaluation.
type evalctx struct {
	maxTerms int
}

func newEvalctx(opts []EvalOption) evalctx {
	ev := evalctx{maxTerms: DefaultMaxTerms}
	for _, opt := range opts {
		ev = opt.evalOption(ev)
	}
	return ev
}

// MaxTerms sets the limit on the number of terms a summation may evaluate.
// Summations with more terms fail with a *DomainError. Panics if n is not
// positive.
func MaxTerms(n int) EvalOption {
	if n <= 0 {
		panic("cardcalc: invalid max terms " + strconv.Itoa(n))
	}
	return termsopt(n)
}

func (o termsopt) evalOption(ev evalctx) evalctx {
	ev.maxTerms = int(o)
	return ev
}
