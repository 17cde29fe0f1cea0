// Package console manages a calculator session: a sequence of submitted
// inputs, called cards, each of which may define a new variable or function
// for the cards after it.
package console

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/zephyrtronium/cardcalc"
)

// Kind is the classification of a card.
type Kind int8

const (
	// ExpressionCard is a plain expression to evaluate.
	ExpressionCard Kind = iota
	// FunctionCard is a function definition.
	FunctionCard
	// VariableCard is a variable definition.
	VariableCard
	// ErrorCard is an input which was rejected.
	ErrorCard
)

var kindNames = [...]string{
	ExpressionCard: "expression",
	FunctionCard:   "function",
	VariableCard:   "variable",
	ErrorCard:      "error",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Card is one submitted input.
type Card struct {
	// Kind is the card's classification.
	Kind Kind
	// Input is the text that was submitted, or the latest text given to
	// Edit.
	Input string
	// Expr is the parsed input. For a variable card, it is the simplified
	// right side of the definition.
	Expr cardcalc.Expr
	// Name is the name a function or variable card defines.
	Name string
	// Err is the reason an error card was rejected.
	Err error
	// Position is the store position at which the card was submitted. A
	// definition's symbol lives in the scope with this index.
	Position int

	sess *Session
}

// Session is a sequence of cards sharing a store. A Session is not safe for
// concurrent use.
type Session struct {
	store *cardcalc.Store
	cards []*Card
	probe float64
	popts []cardcalc.ParseOption
	eopts []cardcalc.EvalOption
	log   zerolog.Logger
}

// New creates a session.
func New(opts ...Option) *Session {
	s := Session{probe: 1, log: zerolog.Nop()}
	for _, opt := range opts {
		opt.apply(&s)
	}
	if s.store == nil {
		s.store = cardcalc.DefaultStore()
	}
	return &s
}

// Store returns the session's current store.
func (s *Session) Store() *cardcalc.Store {
	return s.store
}

// Cards returns the cards submitted so far, in order.
func (s *Session) Cards() []*Card {
	return s.cards
}

// Submit parses, classifies, and validates one line of input and appends the
// resulting card to the session. An accepted definition adds one scope to the
// session's store. Inputs which cannot be evaluated in the current store, as
// opposed to ones that only fail for some values, become error cards. Lines
// that are empty or only spaces produce no card and return nil.
func (s *Session) Submit(line string) *Card {
	if strings.Trim(line, " ") == "" {
		return nil
	}
	c := s.classify(line)
	c.Position = s.store.Position()
	c.sess = s
	s.cards = append(s.cards, c)
	ev := s.log.Debug().Str("input", line).Stringer("kind", c.Kind).Int("position", c.Position)
	if c.Err != nil {
		ev = ev.Err(c.Err)
	}
	ev.Msg("card submitted")
	if c.Kind == FunctionCard || c.Kind == VariableCard {
		s.store = s.store.AddScope(s.binding(c))
	}
	return c
}

func (s *Session) classify(line string) *Card {
	e, err := cardcalc.Parse(line, s.popts...)
	if err != nil {
		return &Card{Kind: ErrorCard, Input: line, Err: err}
	}
	switch {
	case cardcalc.IsFunctionDefinition(e):
		def := e.(*cardcalc.Assignment)
		b := cardcalc.Define(def)
		params := b.Symbol.(*cardcalc.Custom).Params
		probe := s.store.AddScope(lo.Map(params, func(p string, _ int) cardcalc.Binding {
			return cardcalc.Bind(p, s.probe)
		})...)
		if _, err := s.validate(def.Right, probe); err != nil {
			return &Card{Kind: ErrorCard, Input: line, Err: err}
		}
		return &Card{Kind: FunctionCard, Input: line, Expr: def, Name: b.Name}
	case cardcalc.IsVariableDefinition(e):
		def := e.(*cardcalc.Assignment)
		body, err := s.validate(def.Right, s.store)
		if err != nil {
			return &Card{Kind: ErrorCard, Input: line, Err: err}
		}
		return &Card{Kind: VariableCard, Input: line, Expr: body, Name: def.Left.(*cardcalc.Identifier).Name}
	default:
		if _, err := s.validate(e, s.store); err != nil {
			return &Card{Kind: ErrorCard, Input: line, Err: err}
		}
		return &Card{Kind: ExpressionCard, Input: line, Expr: e}
	}
}

// binding creates the binding a definition card adds to the store.
func (s *Session) binding(c *Card) cardcalc.Binding {
	switch c.Kind {
	case FunctionCard:
		return cardcalc.Define(c.Expr.(*cardcalc.Assignment))
	case VariableCard:
		return cardcalc.Binding{Name: c.Name, Symbol: &cardcalc.Variable{Body: c.Expr}}
	default:
		panic("console: binding for " + c.Kind.String() + " card")
	}
}

// validate evaluates e once in st and simplifies it. It returns the
// simplified expression, or an error if either step shows that e can never
// be evaluated in st.
func (s *Session) validate(e cardcalc.Expr, st *cardcalc.Store) (cardcalc.Expr, error) {
	if _, err := cardcalc.Eval(e, st, s.eopts...); cardcalc.IsRejection(err) {
		return nil, err
	}
	return cardcalc.Simplify(e)
}

// Result evaluates an expression or variable card using the definitions
// visible where the card was submitted, including any edits made since.
// Errors depend on the values involved and do not invalidate the card.
func (c *Card) Result() (float64, error) {
	st := c.sess.store.WithPosition(c.Position)
	switch c.Kind {
	case ExpressionCard, VariableCard:
		return cardcalc.Eval(c.Expr, st, c.sess.eopts...)
	default:
		return 0, errors.Errorf("no result for %v card", c.Kind)
	}
}

// Sample evaluates a function card with its parameters bound to args in
// order.
func (c *Card) Sample(args ...float64) (float64, error) {
	if c.Kind != FunctionCard {
		return 0, errors.Errorf("cannot sample %v card", c.Kind)
	}
	def := c.Expr.(*cardcalc.Assignment)
	params := cardcalc.Define(def).Symbol.(*cardcalc.Custom).Params
	if len(args) != len(params) {
		return 0, &cardcalc.InvalidError{Expr: def.Left, Reason: "sampled with " + strconv.Itoa(len(args)) + " arguments"}
	}
	bs := lo.Map(params, func(p string, i int) cardcalc.Binding {
		return cardcalc.Bind(p, args[i])
	})
	return cardcalc.EvalFunction(bs, def, c.sess.store.WithPosition(c.Position), c.sess.eopts...)
}

// Edit replaces the value of a variable card in place. Cards after it see the
// new value without being resubmitted. A line which fails to parse is
// ignored and leaves the old value. A value which cannot be evaluated is
// returned as an error and also leaves the old value.
func (s *Session) Edit(c *Card, line string) error {
	if c.sess != s || c.Kind != VariableCard {
		return errors.Errorf("cannot edit %v card", c.Kind)
	}
	e, err := cardcalc.Parse(line, s.popts...)
	if err != nil {
		s.log.Debug().Str("input", line).Err(err).Msg("ignoring unparsable edit")
		return nil
	}
	at := s.store.WithPosition(c.Position)
	if _, err := cardcalc.Eval(e, at, s.eopts...); err != nil {
		return errors.WithMessagef(err, "editing %s", c.Name)
	}
	body, err := cardcalc.Simplify(e)
	if err != nil {
		return errors.WithMessagef(err, "editing %s", c.Name)
	}
	st, err := s.store.SetSymbol(c.Position, c.Name, &cardcalc.Variable{Body: body})
	if err != nil {
		return err
	}
	s.store = st
	c.Input, c.Expr = line, body
	s.log.Info().Str("name", c.Name).Str("value", cardcalc.Format(body)).Msg("variable edited")
	return nil
}
