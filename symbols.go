package cardcalc

// SymbolKind distinguishes symbols usable as values from those usable as
// functions.
type SymbolKind int8

const (
	// ValueSymbol is the kind of Constant and *Variable.
	ValueSymbol SymbolKind = iota
	// FunctionSymbol is the kind of *Builtin and *Custom.
	FunctionSymbol
)

func (k SymbolKind) String() string {
	if k == FunctionSymbol {
		return "function"
	}
	return "value"
}

// Symbol is a value bound to a name in a store. The set of symbol types is
// closed: Constant, *Variable, *Builtin, and *Custom.
type Symbol interface {
	// SymbolKind returns whether the symbol is a value or a function.
	SymbolKind() SymbolKind
	symbol()
}

type (
	// Constant is a value known immediately.
	Constant float64

	// Variable is a value defined by an expression. The body is evaluated
	// lazily, in the scopes that were visible where the variable was bound.
	Variable struct {
		Body Expr
	}

	// Builtin is a native function with a fixed number of arguments.
	Builtin struct {
		// Name identifies the function in errors.
		Name string
		// Arity is the number of arguments the function takes.
		Arity int
		// Fn computes the function. len(args) is always Arity.
		Fn func(args []float64) (float64, error)
	}

	// Custom is a user-defined function. The body is evaluated in the scopes
	// that were visible where the function was bound, plus one scope binding
	// its parameters to the argument values.
	Custom struct {
		Body   Expr
		Params []string
	}
)

func (Constant) SymbolKind() SymbolKind  { return ValueSymbol }
func (*Variable) SymbolKind() SymbolKind { return ValueSymbol }
func (*Builtin) SymbolKind() SymbolKind  { return FunctionSymbol }
func (*Custom) SymbolKind() SymbolKind   { return FunctionSymbol }

func (Constant) symbol()  {}
func (*Variable) symbol() {}
func (*Builtin) symbol()  {}
func (*Custom) symbol()   {}

// Arity returns the number of parameters of the function.
func (f *Custom) Arity() int {
	return len(f.Params)
}

// Binding pairs a name with a symbol.
type Binding struct {
	Name   string
	Symbol Symbol
}

// Bind is a shortcut to bind a name to a constant.
func Bind(name string, v float64) Binding {
	return Binding{Name: name, Symbol: Constant(v)}
}

// Define creates the binding made by a definition. The right side of a
// variable definition becomes the body of a *Variable, and that of a
// function definition becomes the body of a *Custom with the declared
// parameters. Panics if def is not a definition.
func Define(def *Assignment) Binding {
	switch left := def.Left.(type) {
	case *Identifier:
		return Binding{Name: left.Name, Symbol: &Variable{Body: def.Right}}
	case *Call:
		return Binding{Name: left.Name, Symbol: &Custom{Body: def.Right, Params: paramNames(left)}}
	default:
		panic("cardcalc: Define of non-definition " + Format(def))
	}
}
