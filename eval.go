package evalexpr

import (
	"io"
	"math/big"
	"strings"
)

// DefaultPrec is the precision in bits used when no Prec option is given.
const DefaultPrec = 64

// Context evaluates parsed expressions at a fixed precision. It caches
// parsed literals and recycles intermediate values between evaluations, so
// reusing one Context for many expressions allocates little. A Context must
// not be used by multiple goroutines at once; Clone one per goroutine.
type Context struct {
	prec uint
	lits map[string]*big.Float
	free []*big.Float
	res  *big.Float
	err  error
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// Prec sets the precision of calculations in bits. A precision of zero
// means DefaultPrec.
func Prec(prec uint) ContextOption {
	if prec == 0 {
		prec = DefaultPrec
	}
	return func(ctx *Context) { ctx.prec = prec }
}

// NewContext creates an evaluation context.
func NewContext(opts ...ContextOption) *Context {
	base := Context{prec: DefaultPrec}
	return base.Clone(opts...)
}

// Clone returns a new context with the same settings as ctx, modified by
// opts. The clone shares no mutable state with ctx.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := &Context{prec: ctx.prec}
	for _, opt := range opts {
		if opt != nil {
			opt(n)
		}
	}
	n.lits = make(map[string]*big.Float, len(ctx.lits))
	if n.prec == ctx.prec {
		// Literals are immutable once parsed.
		for k, v := range ctx.lits {
			n.lits[k] = v
		}
	}
	return n
}

// Prec returns the precision of calculations in ctx.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// Eval evaluates e. If evaluation fails, e.g. by dividing by zero, the
// result is nil and Err returns the reason. The returned value belongs to
// the caller and is not changed by later evaluations.
func (ctx *Context) Eval(e *Expr) *big.Float {
	ctx.res, ctx.err = ctx.fold(e.n)
	if ctx.err != nil {
		ctx.res = nil
	}
	return ctx.res
}

// Eval evaluates e in ctx. It is shorthand for ctx.Eval(e).
func (e *Expr) Eval(ctx *Context) *big.Float {
	return ctx.Eval(e)
}

// Result returns the value of the last expression ctx evaluated, or nil if
// that evaluation failed or there has been none.
func (ctx *Context) Result() *big.Float {
	return ctx.res
}

// Err returns the error from the last expression ctx evaluated, if any.
func (ctx *Context) Err() error {
	return ctx.err
}

// fold computes the value of the subtree at n. The caller owns the result.
func (ctx *Context) fold(n *node) (*big.Float, error) {
	switch n.kind {
	case nodeNum:
		lit, err := ctx.literal(n)
		if err != nil {
			return nil, err
		}
		return ctx.get().Set(lit), nil
	case nodeNop:
		return ctx.fold(n.left)
	case nodeNeg:
		x, err := ctx.fold(n.left)
		if err != nil {
			return nil, err
		}
		return x.Neg(x), nil
	}
	x, err := ctx.fold(n.left)
	if err != nil {
		return nil, err
	}
	y, err := ctx.fold(n.right)
	if err != nil {
		return nil, err
	}
	err = binary(n, x, x, y)
	ctx.put(y)
	if err != nil {
		return nil, err
	}
	return x, nil
}

// binary sets z to x op y for the binary operator node n.
func binary(n *node, z, x, y *big.Float) error {
	switch n.kind {
	case nodeAdd:
		z.Add(x, y)
	case nodeSub:
		z.Sub(x, y)
	case nodeMul:
		z.Mul(x, y)
	case nodeDiv:
		if y.Sign() == 0 {
			return &DivisionByZeroError{Col: n.pos, Op: "/"}
		}
		z.Quo(x, y)
	case nodePow:
		if err := pow(z, x, y, n.pos); err != nil {
			return err
		}
	default:
		panic("evalexpr: invalid AST node " + n.kind.String())
	}
	if z.IsInf() {
		return &OverflowError{Col: n.pos, Op: n.kind.op()}
	}
	return nil
}

// literal returns the cached value of a number node, parsing it on first
// use.
func (ctx *Context) literal(n *node) (*big.Float, error) {
	x, ok := ctx.lits[n.name]
	if !ok {
		var err error
		x, _, err = big.ParseFloat(n.name, 10, ctx.prec, big.ToNearestEven)
		if err != nil {
			// Tokens are plain decimals, so parsing fails only past the
			// exponent range.
			x = nil
		}
		ctx.lits[n.name] = x
	}
	if x == nil || x.IsInf() {
		return nil, &OverflowError{Col: n.pos, Op: "number"}
	}
	return x, nil
}

// get returns a scratch value at the context's precision.
func (ctx *Context) get() *big.Float {
	if k := len(ctx.free); k > 0 {
		x := ctx.free[k-1]
		ctx.free = ctx.free[:k-1]
		return x.SetPrec(ctx.prec)
	}
	return new(big.Float).SetPrec(ctx.prec)
}

// put recycles a scratch value.
func (ctx *Context) put(x *big.Float) {
	ctx.free = append(ctx.free, x)
}

// Eval parses and evaluates an expression read from src.
func Eval(src io.RuneScanner, opts ...ContextOption) (*big.Float, error) {
	e, err := Parse(src)
	if err != nil {
		return nil, err
	}
	ctx := NewContext(opts...)
	return ctx.Eval(e), ctx.Err()
}

// EvalString parses and evaluates an expression in a string.
func EvalString(src string, opts ...ContextOption) (*big.Float, error) {
	return Eval(strings.NewReader(src), opts...)
}

// Evaluate parses and evaluates a single expression at the default
// precision. It is safe to call concurrently.
func Evaluate(input string) (*big.Float, error) {
	return EvalString(input)
}
