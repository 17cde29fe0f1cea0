package cardcalc

import (
	"strconv"
	"strings"
)

// input    = sum [ '=' sum ] EOF
// sum      = product { ('+' | '-') product }
// product  = power { ('*' | '/') power }
// power    = unary [ '^' power ]
// unary    = '-' unary | postfix
// postfix  = call { '!' }
// call     = ident '(' [ sum { ',' sum } ] ')' | atom
// atom     = num | ident | '(' sum ')'

// parser holds the state of one parse.
type parser struct {
	scan  *lexer
	ctx   parsectx
	depth int
}

// Parse parses an expression or a definition. The given options are applied
// in order. Parse reads the entire input; anything left over after a complete
// expression is an error. Every error returned implements InputError.
func Parse(src string, opts ...ParseOption) (Expr, error) {
	p := parser{scan: lex(src), ctx: defaultParsectx()}
	for _, opt := range opts {
		p.ctx = opt.parseOption(p.ctx)
	}
	if strings.Trim(src, " ") == "" {
		return nil, &EmptyExpressionError{Col: utf8Len(src) + 1}
	}
	n, err := p.parseterm(exprprec)
	if err != nil {
		return nil, err
	}
	tok, err := p.scan.next()
	if err != nil {
		return nil, err
	}
	if tok.kind == tokenOp && tok.text == "=" {
		if err := checkDefinition(n, tok.pos); err != nil {
			return nil, err
		}
		rhs, err := p.parseterm(exprprec)
		if err != nil {
			return nil, err
		}
		n = Assign(n, rhs)
		if tok, err = p.scan.next(); err != nil {
			return nil, err
		}
	}
	if tok.kind != tokenEOF {
		return nil, &TokenError{Col: tok.pos, Token: tok.text, Want: "end of input"}
	}
	return n, nil
}

// enter notes one more level of nesting, failing if that exceeds the limit.
// Each successful enter must be paired with a leave.
func (p *parser) enter() error {
	if p.depth >= p.ctx.maxDepth {
		return &DepthError{Col: p.scan.col, Max: p.ctx.maxDepth}
	}
	p.depth++
	return nil
}

func (p *parser) leave() {
	p.depth--
}

// parseterm parses a chain of binary operators which bind more tightly than
// until. parseterm leaves the token that ends the chain unread.
func (p *parser) parseterm(until operator) (Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	n, err := p.parseunary()
	if err != nil {
		return nil, err
	}
	// chain is the operator whose n-ary node this loop is extending, so that
	// a+b+c is one Sum but (a+b)+c is a Sum within a Sum.
	var chain binaryOp
	for {
		tok, err := p.scan.next()
		if err != nil {
			return nil, err
		}
		if tok.kind != tokenOp {
			p.scan.push(tok)
			return n, nil
		}
		prec := binop(tok.text)
		if prec.op == opNone || !prec.moreBinding(until) {
			p.scan.push(tok)
			return n, nil
		}
		rhs, err := p.parseterm(prec)
		if err != nil {
			return nil, err
		}
		switch prec.op {
		case opAdd, opSub:
			if prec.op == opSub {
				rhs = Neg(rhs)
			}
			if s, ok := n.(*Sum); ok && chain == opAdd {
				s.Terms = append(s.Terms, rhs)
			} else {
				n = &Sum{Terms: []Expr{n, rhs}}
			}
			chain = opAdd
		case opMul:
			if m, ok := n.(*Product); ok && chain == opMul {
				m.Factors = append(m.Factors, rhs)
			} else {
				n = &Product{Factors: []Expr{n, rhs}}
			}
			chain = opMul
		case opDiv:
			n = Div(n, rhs)
			chain = opNone
		case opPow:
			n = Pow(n, rhs)
			chain = opNone
		default:
			panic("cardcalc: unknown operator " + strconv.Quote(tok.text))
		}
	}
}

// parseunary parses a prefix negation or a postfix expression.
func (p *parser) parseunary() (Expr, error) {
	tok, err := p.scan.next()
	if err != nil {
		return nil, err
	}
	if tok.kind != tokenOp || tok.text != "-" {
		p.scan.push(tok)
		return p.parsepostfix()
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	x, err := p.parseunary()
	if err != nil {
		return nil, err
	}
	return Neg(x), nil
}

// parsepostfix parses a call or atom followed by any number of factorials.
func (p *parser) parsepostfix() (Expr, error) {
	n, err := p.parsecall()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.scan.next()
		if err != nil {
			return nil, err
		}
		if tok.kind != tokenOp || tok.text != "!" {
			p.scan.push(tok)
			return n, nil
		}
		n = &Factorial{X: n}
	}
}

// parsecall parses a function call, a summation, or an atom.
func (p *parser) parsecall() (Expr, error) {
	tok, err := p.scan.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenNum:
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			// The lexer only produces valid decimal literals, but they can
			// still be out of range.
			return nil, &LexError{Text: tok.text, Kind: "number", Col: tok.pos}
		}
		return Num(v), nil
	case tokenIdent:
		open, err := p.scan.peek()
		if err != nil {
			return nil, err
		}
		if open.kind != tokenOpen {
			return Ident(tok.text), nil
		}
		p.scan.next()
		args, err := p.parseargs()
		if err != nil {
			return nil, err
		}
		if p.ctx.sumName != "" && tok.text == p.ctx.sumName && len(args) == 4 {
			if c, ok := args[0].(*Identifier); ok {
				return &Summation{Counter: c.Name, Low: args[1], High: args[2], Body: args[3]}, nil
			}
		}
		return &Call{Name: tok.text, Args: args}, nil
	case tokenOpen:
		n, err := p.parseterm(exprprec)
		if err != nil {
			return nil, err
		}
		end, err := p.scan.next()
		if err != nil {
			return nil, err
		}
		if end.kind != tokenClose {
			return nil, &TokenError{Col: end.pos, Token: end.text, Want: `")"`}
		}
		return n, nil
	default:
		return nil, &TokenError{Col: tok.pos, Token: tok.text, Want: "expression"}
	}
}

// parseargs parses a comma-separated argument list. The open parenthesis has
// already been read.
func (p *parser) parseargs() ([]Expr, error) {
	tok, err := p.scan.peek()
	if err != nil {
		return nil, err
	}
	args := []Expr{}
	if tok.kind == tokenClose {
		p.scan.next()
		return args, nil
	}
	for {
		a, err := p.parseterm(exprprec)
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		end, err := p.scan.next()
		if err != nil {
			return nil, err
		}
		switch end.kind {
		case tokenSep:
			continue
		case tokenClose:
			return args, nil
		default:
			return nil, &TokenError{Col: end.pos, Token: end.text, Want: `"," or ")"`}
		}
	}
}

// checkDefinition checks that the left side of an assignment names a variable
// or a function with distinct parameter names.
func checkDefinition(left Expr, col int) error {
	switch left := left.(type) {
	case *Identifier:
		return nil
	case *Call:
		seen := make(map[string]bool, len(left.Args))
		for i, a := range left.Args {
			id, ok := a.(*Identifier)
			if !ok {
				return &DefinitionError{Col: col, Reason: "parameter " + strconv.Itoa(i+1) + " of " + left.Name + " is not a name"}
			}
			if seen[id.Name] {
				return &DefinitionError{Col: col, Reason: "duplicate parameter " + id.Name + " of " + left.Name}
			}
			seen[id.Name] = true
		}
		return nil
	default:
		return &DefinitionError{Col: col, Reason: "left side must be a name or a function of names"}
	}
}

func utf8Len(s string) int {
	return len([]rune(s))
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the operation to build when this operator is selected.
	op binaryOp
}

type binaryOp int8

const (
	opNone binaryOp = iota
	opAdd
	opSub
	opMul
	opDiv
	opPow
)

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of opNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, opAdd}
	case "-":
		return operator{1, false, opSub}
	case "*":
		return operator{5, false, opMul}
	case "/":
		return operator{5, false, opDiv}
	case "^":
		return operator{15, true, opPow}
	default:
		return operator{}
	}
}

// exprprec is the precedence required to parse an entire subexpression.
var exprprec = operator{-128, true, opNone}
