package cardcalc

import (
	"strconv"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// LexError indicates a character that cannot begin or continue a token. It
// implements InputError.
type LexError struct {
	// Text is the offending character.
	Text string
	// Kind is the type of token the lexer was scanning, either "number" or
	// the empty string if no token had been started.
	Kind string
	// Col is the position of the offending character.
	Col int
}

func (err *LexError) Error() string {
	if err.Kind == "" {
		return errpos(err.Col, "unexpected character "+strconv.Quote(err.Text))
	}
	return errpos(err.Col, "unexpected character "+strconv.Quote(err.Text)+" in "+err.Kind)
}

func (err *LexError) Pos() int {
	return err.Col
}

// TokenError is an error indicating a token where the parser expected
// something else, including the end of the input before an expression is
// complete and leftover tokens after it is. It implements InputError.
type TokenError struct {
	// Col is the position of the token.
	Col int
	// Token is the token text, or the empty string for the end of input.
	Token string
	// Want describes what the parser expected instead.
	Want string
}

func (err *TokenError) Error() string {
	got := "unexpected end of input"
	if err.Token != "" {
		got = "unexpected " + strconv.Quote(err.Token)
	}
	if err.Want == "" {
		return errpos(err.Col, got)
	}
	return errpos(err.Col, got+", expected "+err.Want)
}

func (err *TokenError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating an input with no expression at
// all. It implements InputError.
type EmptyExpressionError struct {
	// Col is the position of the end of the input.
	Col int
}

func (err *EmptyExpressionError) Error() string {
	return errpos(err.Col, "no expression")
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// DefinitionError is an error indicating an assignment whose left side is not
// a variable name or a function name with distinct parameter names. It
// implements InputError.
type DefinitionError struct {
	// Col is the position of the offending part of the left side.
	Col int
	// Reason describes the problem.
	Reason string
}

func (err *DefinitionError) Error() string {
	return errpos(err.Col, "invalid definition: "+err.Reason)
}

func (err *DefinitionError) Pos() int {
	return err.Col
}

// DepthError is an error indicating an expression nested more deeply than
// the parser allows. It implements InputError.
type DepthError struct {
	// Col is the position at which the limit was exceeded.
	Col int
	// Max is the nesting limit.
	Max int
}

func (err *DepthError) Error() string {
	return errpos(err.Col, "expression nested deeper than "+strconv.Itoa(err.Max)+" levels")
}

func (err *DepthError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// malformed input text implements InputError.
type InputError interface {
	error
	// Pos returns the 1-based column of the rune where the error was
	// detected.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*TokenError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*DefinitionError)(nil)
	_ InputError = (*DepthError)(nil)
)

// IsParseError reports whether err is or wraps an InputError.
func IsParseError(err error) bool {
	var ie InputError
	return errors.As(err, &ie)
}

// Near returns the slice of src around the position of a parse error, for
// showing the user where the problem is. If err carries no position, the
// result is the empty string.
func Near(src string, err error) string {
	var ie InputError
	if !errors.As(err, &ie) {
		return ""
	}
	const radius = 2
	// Convert the rune column into a byte offset.
	off, col := 0, 1
	for off < len(src) && col < ie.Pos() {
		_, sz := utf8.DecodeRuneInString(src[off:])
		off += sz
		col++
	}
	lo := off
	for i := 0; i < radius && lo > 0; i++ {
		_, sz := utf8.DecodeLastRuneInString(src[:lo])
		lo -= sz
	}
	hi := off
	for i := 0; i < radius && hi < len(src); i++ {
		_, sz := utf8.DecodeRuneInString(src[hi:])
		hi += sz
	}
	return src[lo:hi]
}
