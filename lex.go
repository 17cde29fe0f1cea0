package cardcalc

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is an integer or decimal literal.
	tokenNum
	// tokenIdent is a variable or function name.
	tokenIdent
	// tokenOp is an operator.
	tokenOp
	// tokenOpen is an open parenthesis.
	tokenOpen
	// tokenClose is a close parenthesis.
	tokenClose
	// tokenSep is the function argument separator.
	tokenSep
)

var tokenNames = [...]string{
	tokenNone:  "None",
	tokenEOF:   "EOF",
	tokenNum:   "Num",
	tokenIdent: "Ident",
	tokenOp:    "Op",
	tokenOpen:  "Open",
	tokenClose: "Close",
	tokenSep:   "Sep",
}

func (k tokenKind) String() string {
	if k < 0 || int(k) >= len(tokenNames) {
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenNames[k]
}

// Operators contains the runes which are considered to be operators.
const Operators = "+-*/^=!"

type lexer struct {
	src string
	// off is the byte offset of the next unread rune.
	off int
	// col is the 1-based column of the next unread rune.
	col int
	p   lexToken
}

func lex(src string) *lexer {
	return &lexer{
		src: src,
		col: 1,
	}
}

// push unreads a token so that it is the next token returned from next. Panics
// if there is already a pushed token.
func (l *lexer) push(tok lexToken) {
	if l.p.kind != tokenNone {
		panic("cardcalc: double push")
	}
	l.p = tok
}

// peek returns the next token without consuming it.
func (l *lexer) peek() (lexToken, error) {
	tok, err := l.next()
	if err != nil {
		return tok, err
	}
	l.push(tok)
	return tok, nil
}

// readRune reads a rune from the source and updates the lexer's position
// info. At the end of the input, the result is utf8.RuneError with size 0.
func (l *lexer) readRune() (rune, int) {
	r, sz := utf8.DecodeRuneInString(l.src[l.off:])
	l.off += sz
	if sz > 0 {
		l.col++
	}
	return r, sz
}

// next scans the next token from the input. Once the input is exhausted,
// every call returns an EOF token.
func (l *lexer) next() (lexToken, error) {
	if l.p.kind != tokenNone {
		tok := l.p
		l.p = lexToken{}
		return tok, nil
	}
	for l.off < len(l.src) && l.src[l.off] == ' ' {
		l.off++
		l.col++
	}
	tok := lexToken{pos: l.col}
	if l.off >= len(l.src) {
		tok.kind = tokenEOF
		return tok, nil
	}
	start := l.off
	switch c := l.src[l.off]; {
	case isDigit(c):
		if err := l.scanNum(); err != nil {
			return tok, err
		}
		tok.text = l.src[start:l.off]
		tok.kind = tokenNum
	case isLetter(c):
		for l.off < len(l.src) && isLetter(l.src[l.off]) {
			l.off++
			l.col++
		}
		tok.text = l.src[start:l.off]
		tok.kind = tokenIdent
	case c == ',':
		l.readRune()
		tok.text = ","
		tok.kind = tokenSep
	case c == '(':
		l.readRune()
		tok.text = "("
		tok.kind = tokenOpen
	case c == ')':
		l.readRune()
		tok.text = ")"
		tok.kind = tokenClose
	case strings.IndexByte(Operators, c) >= 0:
		l.readRune()
		tok.text = l.src[start:l.off]
		tok.kind = tokenOp
	default:
		r, _ := l.readRune()
		return tok, &LexError{Text: string(r), Col: tok.pos}
	}
	return tok, nil
}

// scanNum scans an integer or decimal literal. The current byte is a digit.
func (l *lexer) scanNum() error {
	for l.off < len(l.src) && isDigit(l.src[l.off]) {
		l.off++
		l.col++
	}
	if l.off < len(l.src) && l.src[l.off] == '.' {
		l.off++
		l.col++
		for l.off < len(l.src) && isDigit(l.src[l.off]) {
			l.off++
			l.col++
		}
	}
	if l.off < len(l.src) && l.src[l.off] == '.' {
		// A second decimal point can't start any token.
		return &LexError{Text: ".", Kind: "number", Col: l.col}
	}
	return nil
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}
