package console

import (
	"github.com/rs/zerolog"

	"github.com/zephyrtronium/cardcalc"
)

// Option is an option for creating a session.
type Option interface {
	apply(*Session)
}

type (
	storeopt  struct{ s *cardcalc.Store }
	loggeropt struct{ l zerolog.Logger }
	probeopt  float64
	parseopts []cardcalc.ParseOption
	evalopts  []cardcalc.EvalOption
)

// WithStore sets the initial store of a session. The default is
// cardcalc.DefaultStore().
func WithStore(s *cardcalc.Store) Option {
	return storeopt{s}
}

func (o storeopt) apply(s *Session) {
	s.store = o.s
}

// WithLogger sets the logger for session events. The default discards all
// logs.
func WithLogger(l zerolog.Logger) Option {
	return loggeropt{l}
}

func (o loggeropt) apply(s *Session) {
	s.log = o.l
}

// WithProbe sets the value bound to each parameter of a function definition
// while checking that its body can be evaluated. The default is 1.
func WithProbe(x float64) Option {
	return probeopt(x)
}

func (o probeopt) apply(s *Session) {
	s.probe = float64(o)
}

// WithParseOptions sets options used to parse every input in the session.
func WithParseOptions(opts ...cardcalc.ParseOption) Option {
	return parseopts(opts)
}

func (o parseopts) apply(s *Session) {
	s.popts = append(s.popts, o...)
}

// WithEvalOptions sets options used for every evaluation in the session.
func WithEvalOptions(opts ...cardcalc.EvalOption) Option {
	return evalopts(opts)
}

func (o evalopts) apply(s *Session) {
	s.eopts = append(s.eopts, o...)
}
