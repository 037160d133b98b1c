package evalexpr

import (
	"math/big"
	"strconv"
)

// UnexpectedTokenError is an error indicating a token where an operand was
// expected, or an operand where an operator was expected. It implements
// InputError.
type UnexpectedTokenError struct {
	// Col is the position of the token.
	Col int
	// Token is the text of the token, or the empty string for the end of the
	// input.
	Token string
	// Want describes what the parser expected instead.
	Want string
}

func (err *UnexpectedTokenError) Error() string {
	got := "end of input"
	if err.Token != "" {
		got = strconv.Quote(err.Token)
	}
	return errpos(err.Col, "unexpected "+got+", expected "+err.Want)
}

func (err *UnexpectedTokenError) Pos() int {
	return err.Col
}

// UnmatchedParenError is an error indicating an open parenthesis with no
// close parenthesis or a close parenthesis with no open parenthesis. It
// implements InputError.
type UnmatchedParenError struct {
	// Col is the position of the unmatched parenthesis.
	Col int
	// Paren is the unmatched parenthesis, either "(" or ")".
	Paren string
}

func (err *UnmatchedParenError) Error() string {
	if err.Paren == ")" {
		return errpos(err.Col, "close parenthesis with no open parenthesis")
	}
	return errpos(err.Col, "open parenthesis with no close parenthesis")
}

func (err *UnmatchedParenError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating an input with no tokens.
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

// DepthError is an error indicating an expression nested more deeply than
// the parser allows. It implements InputError.
type DepthError struct {
	// Col is the position of the token that exceeded the limit.
	Col int
	// Max is the nesting limit.
	Max int
}

func (err *DepthError) Error() string {
	return errpos(err.Col, "expression nested deeper than "+strconv.Itoa(err.Max))
}

func (err *DepthError) Pos() int {
	return err.Col
}

// DivisionByZeroError is an error from dividing by zero, including raising
// zero to a negative power. It implements InputError.
type DivisionByZeroError struct {
	// Col is the position of the operator.
	Col int
	// Op is the operator, "/" or "^".
	Op string
}

func (err *DivisionByZeroError) Error() string {
	if err.Op == "^" {
		return errpos(err.Col, "zero raised to a negative power")
	}
	return errpos(err.Col, "division by zero")
}

func (err *DivisionByZeroError) Pos() int {
	return err.Col
}

// DomainError is an error from an operation on arguments outside its
// domain, such as a negative number raised to a fractional power. It
// implements InputError.
type DomainError struct {
	// Col is the position of the operator.
	Col int
	// X is the out-of-domain argument.
	X *big.Float
	// Op is the operator.
	Op string
}

func (err *DomainError) Error() string {
	return errpos(err.Col, err.X.String()+" outside domain of "+err.Op)
}

func (err *DomainError) Pos() int {
	return err.Col
}

// OverflowError is an error from an operation whose result is too large in
// magnitude to represent. It implements InputError.
type OverflowError struct {
	// Col is the position of the operator or number.
	Col int
	// Op is the operator, or "number" for a literal.
	Op string
}

func (err *OverflowError) Error() string {
	if err.Op == "number" {
		return errpos(err.Col, "number too large")
	}
	return errpos(err.Col, "result of "+strconv.Quote(err.Op)+" overflows")
}

func (err *OverflowError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the 1-based rune column of the token that caused the
	// error.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*UnexpectedTokenError)(nil)
	_ InputError = (*UnmatchedParenError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*DepthError)(nil)
	_ InputError = (*DivisionByZeroError)(nil)
	_ InputError = (*DomainError)(nil)
	_ InputError = (*OverflowError)(nil)
)
