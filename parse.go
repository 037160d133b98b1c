package evalexpr

import (
	"io"
	"strings"
)

// Expr = num | Neg | Plus | Add | Sub | Mul | Div | Pow | '(' Expr ')'
// Neg = '-' Expr
// Plus = '+' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr
// Div = Expr '/' Expr
// Pow = Expr '^' Expr

// Expr is a parsed expression that can be evaluated with a context.
type Expr struct {
	// n is the root node of the expression.
	n *node
}

// Parse parses an expression from src so it can be evaluated with a context.
// Parsing reads src to its end. The given options are applied in order.
func Parse(src io.RuneScanner, opts ...ParseOption) (*Expr, error) {
	scan := NewTokenizer(src)
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	tok, err := scan.Next()
	if err != nil {
		return nil, err
	}
	if tok.Kind == TokenEnd {
		return nil, &EmptyExpressionError{Col: tok.Pos}
	}
	scan.push(tok)
	n, err := parseexpr(scan, &p, minprec)
	if err != nil {
		return nil, err
	}
	switch tok := scan.must(); tok.Kind {
	case TokenEnd:
	case TokenClose:
		return nil, &UnmatchedParenError{Col: tok.Pos, Paren: ")"}
	default:
		return nil, &UnexpectedTokenError{Col: tok.Pos, Token: tok.Text, Want: "operator"}
	}
	return &Expr{n: n}, nil
}

// ParseString is a shortcut to parse a string expression.
func ParseString(src string, opts ...ParseOption) (*Expr, error) {
	return Parse(strings.NewReader(src), opts...)
}

// parseexpr parses an operand followed by any binary operators with
// precedence at least min. If there is no error, then parseexpr pushes the
// last token it scans, including TokenEnd.
func parseexpr(scan *Tokenizer, p *parsectx, min int8) (*node, error) {
	lhs, err := parseprimary(scan, p)
	if err != nil {
		return nil, err
	}
	for {
		tok, err := scan.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind != TokenOp {
			// A close parenthesis or the end belongs to a caller. Anything
			// else is an error for the caller to report.
			scan.push(tok)
			return lhs, nil
		}
		op := binop(tok.Text)
		if op.prec < min {
			scan.push(tok)
			return lhs, nil
		}
		next := op.prec + 1
		if op.right {
			next = op.prec
		}
		if err := p.enter(tok); err != nil {
			return nil, err
		}
		rhs, err := parseexpr(scan, p, next)
		p.depth--
		if err != nil {
			return nil, err
		}
		lhs = &node{kind: op.op, pos: tok.Pos, left: lhs, right: rhs}
	}
}

// parseprimary parses a number, a parenthesized expression, or a unary
// operator applied to an operand.
func parseprimary(scan *Tokenizer, p *parsectx) (*node, error) {
	tok, err := scan.Next()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case TokenNumber:
		return &node{kind: nodeNum, name: tok.Text, pos: tok.Pos}, nil
	case TokenOpen:
		if err := p.enter(tok); err != nil {
			return nil, err
		}
		n, err := parseexpr(scan, p, minprec)
		p.depth--
		if err != nil {
			return nil, err
		}
		switch end := scan.must(); end.Kind {
		case TokenClose:
			return n, nil
		case TokenEnd:
			return nil, &UnmatchedParenError{Col: tok.Pos, Paren: "("}
		default:
			return nil, &UnexpectedTokenError{Col: end.Pos, Token: end.Text, Want: "operator or \")\""}
		}
	case TokenOp:
		op := unop(tok.Text)
		if op.op == nodeNone || p.nounary {
			return nil, &UnexpectedTokenError{Col: tok.Pos, Token: tok.Text, Want: "number or \"(\""}
		}
		if err := p.enter(tok); err != nil {
			return nil, err
		}
		// -x^y -> -(x^y), but -x*y -> (-x)*y.
		rhs, err := parseexpr(scan, p, op.prec)
		p.depth--
		if err != nil {
			return nil, err
		}
		return &node{kind: op.op, pos: tok.Pos, left: rhs}, nil
	case TokenClose, TokenEnd:
		return nil, &UnexpectedTokenError{Col: tok.Pos, Token: tok.Text, Want: "number or \"(\""}
	default:
		panic("evalexpr: unknown token: " + tok.String())
	}
}

// enter increases the nesting depth for a subexpression starting at tok.
func (p *parsectx) enter(tok Token) error {
	p.depth++
	if p.depth > p.limit() {
		return &DepthError{Col: tok.Pos, Max: p.limit()}
	}
	return nil
}

// String creates a string representation of the parsed expression with every
// term in parentheses.
func (e *Expr) String() string {
	return e.n.String()
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, nodeAdd}
	case "-":
		return operator{1, false, nodeSub}
	case "*":
		return operator{2, false, nodeMul}
	case "/":
		return operator{2, false, nodeDiv}
	case "^":
		return operator{3, true, nodePow}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result has an op of nodeNone. The precedence of a unary
// operator is the minimum precedence of its operand.
func unop(text string) operator {
	switch text {
	case "+":
		return operator{3, true, nodeNop}
	case "-":
		return operator{3, true, nodeNeg}
	default:
		return operator{}
	}
}

// minprec is the precedence required to parse an entire subexpression.
const minprec int8 = 1
