package cardcalc

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Store is an ordered chain of scopes binding names to symbols. A store also
// has a position, the number of scopes visible to lookups, which may be less
// than the number of scopes in the chain.
//
// Stores are persistent: every operation that changes a store returns a new
// one, sharing unchanged scopes with the old. A *Store may be used
// concurrently by any number of goroutines.
type Store struct {
	// top is the last scope in the chain.
	top *scope
	// pos is the number of visible scopes.
	pos int
}

// scope is one link in the chain. Its map is never modified once the scope is
// reachable from a Store.
type scope struct {
	syms   map[string]Symbol
	parent *scope
	// depth is the number of scopes in the chain ending at this one.
	depth int
}

// newScope creates a scope holding the given bindings. When a name is bound
// more than once, the last binding wins.
func newScope(parent *scope, bs []Binding) *scope {
	sc := scope{syms: make(map[string]Symbol, len(bs)), parent: parent, depth: 1}
	if parent != nil {
		sc.depth = parent.depth + 1
	}
	for _, b := range bs {
		sc.syms[b.Name] = b.Symbol
	}
	return &sc
}

// at returns the scope in the chain ending at sc whose depth is n, or nil if
// n is 0.
func (sc *scope) at(n int) *scope {
	for sc != nil && sc.depth > n {
		sc = sc.parent
	}
	return sc
}

// FromBindings creates a store with a single scope holding the given
// bindings.
func FromBindings(bs ...Binding) *Store {
	return &Store{top: newScope(nil, bs), pos: 1}
}

// Len returns the number of scopes in the chain, including those beyond the
// store's position.
func (s *Store) Len() int {
	if s.top == nil {
		return 0
	}
	return s.top.depth
}

// Position returns the number of scopes visible to lookups.
func (s *Store) Position() int {
	return s.pos
}

// AddScope returns a store with one new scope containing the given bindings,
// placed just after the visible scopes. Scopes beyond s's position are not
// part of the result. The position of the result is its length.
func (s *Store) AddScope(bs ...Binding) *Store {
	sc := newScope(s.top.at(s.pos), bs)
	return &Store{top: sc, pos: sc.depth}
}

// Branch returns a store containing only the first pos scopes of s. Panics if
// pos is negative or greater than s.Len().
func (s *Store) Branch(pos int) *Store {
	s.checkPos(pos)
	return &Store{top: s.top.at(pos), pos: pos}
}

// WithPosition returns a store with the same scopes as s but with only the
// first pos visible. Panics if pos is negative or greater than s.Len().
func (s *Store) WithPosition(pos int) *Store {
	s.checkPos(pos)
	return &Store{top: s.top, pos: pos}
}

func (s *Store) checkPos(pos int) {
	if pos < 0 || pos > s.Len() {
		panic("cardcalc: store position " + strconv.Itoa(pos) + " out of range [0, " + strconv.Itoa(s.Len()) + "]")
	}
}

// HasSymbol reports whether name is bound in any visible scope.
func (s *Store) HasSymbol(name string) bool {
	_, _, ok := s.Lookup(name)
	return ok
}

// Lookup finds the innermost visible binding of name. It returns the symbol
// and the 0-based index of the scope that binds it.
func (s *Store) Lookup(name string) (sym Symbol, index int, ok bool) {
	for sc := s.top.at(s.pos); sc != nil; sc = sc.parent {
		if sym, ok := sc.syms[name]; ok {
			return sym, sc.depth - 1, true
		}
	}
	return nil, -1, false
}

// SetSymbol returns a store in which the binding of name in the scope at the
// given 0-based index is replaced with sym. The name must already be bound in
// that scope. Scopes before the index are shared with s; the result has the
// same length and position as s.
func (s *Store) SetSymbol(index int, name string, sym Symbol) (*Store, error) {
	if index < 0 || index >= s.Len() {
		return nil, errors.Errorf("scope index %d out of range for store of length %d", index, s.Len())
	}
	// Collect the path from the top down to the scope to change.
	var path []*scope
	sc := s.top
	for ; sc.depth > index+1; sc = sc.parent {
		path = append(path, sc)
	}
	if _, ok := sc.syms[name]; !ok {
		return nil, errors.WithMessagef(&NameError{Name: name, Want: sym.SymbolKind()}, "no binding in scope %d", index)
	}
	syms := lo.Assign(sc.syms)
	syms[name] = sym
	top := &scope{syms: syms, parent: sc.parent, depth: sc.depth}
	// Relink copies of the scopes above the changed one.
	for i := len(path) - 1; i >= 0; i-- {
		top = &scope{syms: path[i].syms, parent: top, depth: path[i].depth}
	}
	return &Store{top: top, pos: s.pos}, nil
}

// Names returns the names bound in the scope at the given 0-based index, in
// no particular order. Panics if the index is out of range.
func (s *Store) Names(index int) []string {
	if index < 0 || index >= s.Len() {
		panic("cardcalc: scope index " + strconv.Itoa(index) + " out of range")
	}
	return lo.Keys(s.top.at(index + 1).syms)
}
