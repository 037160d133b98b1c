package evalexpr

// DefaultMaxDepth is the nesting limit used when no MaxDepth option is given.
const DefaultMaxDepth = 1000

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	unaryopt bool
	depthopt int
)

// parsectx holds general data for parsing. It is also a ParseOption.
type parsectx struct {
	// depth is the current nesting depth.
	depth int
	// maxdepth is the nesting limit. Zero means DefaultMaxDepth.
	maxdepth int
	// nounary disables the unary + and - operators.
	nounary bool
	// preset indicates that the context came from ParsingPreset.
	preset bool
}

// DisableUnary disables the unary + and - operators. With unary operators
// disabled, "-5" is an UnexpectedTokenError, and negative values can only
// be written as differences like "0-5".
func DisableUnary() ParseOption {
	return unaryopt(true)
}

func (o unaryopt) parseOption(p parsectx) parsectx {
	p.nounary = bool(o)
	return p
}

// MaxDepth sets the limit on the nesting of parentheses, unary operators,
// and right-associative chains. Expressions nested more deeply produce a
// DepthError. A non-positive n restores DefaultMaxDepth.
func MaxDepth(n int) ParseOption {
	return depthopt(n)
}

func (o depthopt) parseOption(p parsectx) parsectx {
	p.maxdepth = int(o)
	if p.maxdepth < 0 {
		p.maxdepth = 0
	}
	return p
}

// ParsingPreset combines a list of parse options into one. A preset panics
// when it would change any option from the default, but it is safe to apply
// other options after a preset.
func ParsingPreset(opts ...ParseOption) ParseOption {
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	p.preset = true
	return &p
}

func (o *parsectx) parseOption(p parsectx) parsectx {
	if p.maxdepth != 0 || p.nounary || p.preset {
		panic("evalexpr: preset applied to non-default parse config")
	}
	p.maxdepth = o.maxdepth
	p.nounary = o.nounary
	p.preset = true
	return p
}

// limit returns the effective nesting limit.
func (p *parsectx) limit() int {
	if p.maxdepth <= 0 {
		return DefaultMaxDepth
	}
	return p.maxdepth
}
