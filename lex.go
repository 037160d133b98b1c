package evalexpr

import (
	"errors"
	"io"
	"iter"
	"strconv"
	"strings"
	"unicode"
)

// Tokenizer scans tokens from an input one at a time. A Tokenizer is a
// single-pass cursor: once a token is scanned, a new Tokenizer is needed to
// scan it again.
type Tokenizer struct {
	src io.RuneScanner
	buf strings.Builder
	// col is the number of runes read from src so far.
	col int
	// p is a token pushed back by the parser.
	p   Token
	eof bool
}

// NewTokenizer creates a tokenizer reading from src.
func NewTokenizer(src io.RuneScanner) *Tokenizer {
	return &Tokenizer{src: src}
}

// Tokenize returns the sequence of tokens in s. The sequence ends after the
// TokenEnd token or after the first error.
func Tokenize(s string) iter.Seq2[Token, error] {
	return NewTokenizer(strings.NewReader(s)).All()
}

// All returns the tokens remaining in the input as a sequence. The sequence
// ends after the TokenEnd token or after the first error, which is yielded
// with a zero Token.
func (l *Tokenizer) All() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		for {
			tok, err := l.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(Token{}, err)
				return
			}
			if !yield(tok, nil) || tok.Kind == TokenEnd {
				return
			}
		}
	}
}

// push unreads a token so that it is the next token returned from Next.
// Panics if there is already a pushed token.
func (l *Tokenizer) push(tok Token) {
	if l.p.Kind != tokenNone {
		panic("evalexpr: double push")
	}
	l.p = tok
}

// must scans the pushed token. Panics if there is no pushed token.
func (l *Tokenizer) must() Token {
	tok := l.p
	if tok.Kind == tokenNone {
		panic("evalexpr: no pushed token")
	}
	l.p = Token{}
	return tok
}

func (l *Tokenizer) readRune() (rune, error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.col++
	}
	return r, err
}

// unreadRune unreads a rune from src. Panics if unreading fails.
func (l *Tokenizer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.col--
}

// Next scans the next token from the input. The first time the end of the
// input is reached, the result is a TokenEnd token with a nil error. After
// that, the result is a zero Token with io.EOF.
//
// An invalid rune produces a *LexError. The tokenizer moves past the rune, so
// scanning may continue, but the parser treats the error as final.
func (l *Tokenizer) Next() (Token, error) {
	if l.p.Kind != tokenNone {
		tok := l.p
		l.p = Token{}
		return tok, nil
	}
	if l.eof {
		return Token{}, io.EOF
	}
	defer l.buf.Reset()
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				l.eof = true
				return Token{Kind: TokenEnd, Pos: l.col + 1}, nil
			}
			return Token{}, err
		}
		tok := Token{Pos: l.col}
		switch {
		case unicode.IsSpace(r):
			continue
		case '0' <= r && r <= '9':
			l.unreadRune()
			if err := l.scanNum(); err != nil {
				return Token{}, err
			}
			tok.Kind = TokenNumber
			tok.Text = l.buf.String()
			return tok, nil
		case r == '(':
			tok.Kind = TokenOpen
			tok.Text = "("
			return tok, nil
		case r == ')':
			tok.Kind = TokenClose
			tok.Text = ")"
			return tok, nil
		case strings.ContainsRune(Operators, r):
			tok.Kind = TokenOp
			tok.Text = string(r)
			return tok, nil
		default:
			return Token{}, &LexError{Char: r, Col: l.col}
		}
	}
}

// scanNum scans a decimal literal into buf. The first rune must be a digit.
func (l *Tokenizer) scanNum() error {
	dot := false
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		switch {
		case '0' <= r && r <= '9':
			l.buf.WriteRune(r)
		case r == '.':
			if dot {
				text := l.buf.String()
				l.buf.WriteRune(r)
				return &LexError{Char: r, Col: l.col, Text: text, Kind: "number"}
			}
			dot = true
			l.buf.WriteRune(r)
		default:
			l.unreadRune()
			return nil
		}
	}
}

// LexError indicates a rune that does not begin or continue any token. It
// implements InputError.
type LexError struct {
	// Char is the offending rune.
	Char rune
	// Col is the 1-based rune column of Char.
	Col int
	// Text is the part of the token scanned before Char, if any.
	Text string
	// Kind is the type of token the tokenizer was scanning, "number" or the
	// empty string if Char did not continue a token.
	Kind string
}

func (err *LexError) Error() string {
	c := strconv.QuoteRune(err.Char)
	if err.Kind == "" {
		return errpos(err.Col, "invalid character "+c)
	}
	return errpos(err.Col, "invalid character "+c+" in "+err.Kind+" "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}
