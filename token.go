package evalexpr

import "strconv"

// Token is a single lexical unit of an expression.
type Token struct {
	// Kind is the token's kind.
	Kind TokenKind
	// Text is the source text of the token. It is empty for TokenEnd.
	Text string
	// Pos is the 1-based rune column where the token starts.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// TokenKind is the kind of a token.
type TokenKind int8

const (
	tokenNone TokenKind = iota
	// TokenNumber is a decimal literal.
	TokenNumber
	// TokenOp is one of the operators + - * / ^.
	TokenOp
	// TokenOpen is an open parenthesis.
	TokenOpen
	// TokenClose is a close parenthesis.
	TokenClose
	// TokenEnd marks the end of the input.
	TokenEnd
)

func (k TokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case TokenNumber:
		return "Number"
	case TokenOp:
		return "Op"
	case TokenOpen:
		return "Open"
	case TokenClose:
		return "Close"
	case TokenEnd:
		return "End"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operators contains the runes which are lexed as operators.
const Operators = "+-*/^"
