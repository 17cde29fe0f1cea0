package cardcalc

import "strconv"

// DefaultMaxDepth is the default limit on how deeply a parsed expression may
// nest.
const DefaultMaxDepth = 512

// DefaultSummationName is the function name that parses as a summation.
const DefaultSummationName = "sum"

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	depthopt int
	sumopt   string
)

// parsectx holds the configuration for one parse.
type parsectx struct {
	// maxDepth is the nesting limit.
	maxDepth int
	// sumName is the name of the call which parses as a summation, or the
	// empty string to parse no summations.
	sumName string
}

func defaultParsectx() parsectx {
	return parsectx{
		maxDepth: DefaultMaxDepth,
		sumName:  DefaultSummationName,
	}
}

// MaxDepth sets the limit on expression nesting. Inputs which nest more deeply
// fail to parse with a *DepthError instead of exhausting the stack. Panics if
// n is not positive.
func MaxDepth(n int) ParseOption {
	if n <= 0 {
		panic("cardcalc: invalid max depth " + strconv.Itoa(n))
	}
	return depthopt(n)
}

func (o depthopt) parseOption(p parsectx) parsectx {
	p.maxDepth = int(o)
	return p
}

// SummationName sets the name of the four-argument call that parses as a
// summation, as in sum(i, 1, 10, i^2). With an empty name, no call parses as a
// summation.
func SummationName(name string) ParseOption {
	return sumopt(name)
}

func (o sumopt) parseOption(p parsectx) parsectx {
	p.sumName = string(o)
	return p
}
