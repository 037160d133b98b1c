package evalexpr

import (
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// pow sets z to x^y. z may alias x or y. col is the operator's column for
// errors.
//
// Integer exponents are computed by repeated squaring, so any base is
// allowed and small integer powers are exact. Other exponents require a
// non-negative base. x^0 is 1 for every x, and 0 to a negative power is a
// division by zero.
func pow(z, x, y *big.Float, col int) error {
	if y.Sign() == 0 {
		z.SetInt64(1)
		return nil
	}
	if x.Sign() == 0 {
		if y.Sign() < 0 {
			return &DivisionByZeroError{Col: col, Op: "^"}
		}
		z.SetInt64(0)
		return nil
	}
	if !y.IsInt() {
		if x.Sign() < 0 {
			return &DomainError{Col: col, X: new(big.Float).Copy(x), Op: "^"}
		}
		return powfrac(z, x, y, col)
	}
	if n, acc := y.Int64(); acc == big.Exact {
		powint(z, x, n)
		return nil
	}
	return powhuge(z, x, y, col)
}

// powfrac sets z to x^y for x > 0 and non-integer y.
func powfrac(z, x, y *big.Float, col int) error {
	prec := z.Prec()
	if prec == 0 {
		prec = x.Prec()
	}
	if x.Cmp(big.NewFloat(1)) == 0 {
		z.SetPrec(prec).SetInt64(1)
		return nil
	}
	// Estimate log2 of the result. Results outside the exponent range
	// overflow or underflow without computing anything.
	var m big.Float
	e := x.MantExp(&m)
	mf, _ := m.Float64()
	yf, _ := y.Float64()
	switch lg := yf * (float64(e) + math.Log2(mf)); {
	case lg > big.MaxExp:
		return &OverflowError{Col: col, Op: "^"}
	case lg < big.MinExp:
		z.SetPrec(prec).SetInt64(0)
		return nil
	}
	// Work with guard bits so that the final rounding is the only one.
	// bigfloat.Pow does not always store its result in its first
	// argument, so only its return value is used.
	wp := prec + 64
	var r *big.Float
	if y.Sign() < 0 {
		// x^-y = 1/x^y
		ny := new(big.Float).Neg(y)
		r = bigfloat.Pow(new(big.Float).SetPrec(wp), x, ny)
		r = new(big.Float).SetPrec(wp).Quo(new(big.Float).SetPrec(wp).SetInt64(1), r)
	} else {
		r = bigfloat.Pow(new(big.Float).SetPrec(wp), x, y)
	}
	z.SetPrec(prec).Set(r)
	return nil
}

// powint sets z to x^n by repeated squaring.
func powint(z, x *big.Float, n int64) {
	prec := z.Prec()
	if prec == 0 {
		prec = x.Prec()
	}
	neg := n < 0
	u := uint64(n)
	if neg {
		u = -u
	}
	b := new(big.Float).SetPrec(prec).Set(x)
	r := new(big.Float).SetPrec(prec).SetInt64(1)
	for u != 0 {
		if u&1 != 0 {
			r.Mul(r, b)
		}
		u >>= 1
		if u != 0 {
			b.Mul(b, b)
		}
	}
	if neg {
		// r is nonzero because x is, but it may have underflowed to zero,
		// in which case the quotient is an infinity the caller reports.
		if r.Sign() == 0 {
			r.SetInf(false)
		} else {
			r.Quo(new(big.Float).SetPrec(prec).SetInt64(1), r)
		}
	}
	z.Set(r)
}

// powhuge sets z to x^y for an integer y too large for int64. The result is
// necessarily 0, ±1, or an overflow.
func powhuge(z, x, y *big.Float, col int) error {
	var ax big.Float
	ax.Abs(x)
	one := big.NewFloat(1)
	switch c := ax.Cmp(one); {
	case c == 0:
		// ±1. A negative base keeps its sign for odd exponents.
		yi, _ := y.Int(nil)
		if x.Sign() < 0 && yi.Bit(0) == 1 {
			z.SetInt64(-1)
		} else {
			z.SetInt64(1)
		}
		return nil
	case (c > 0) == (y.Sign() > 0):
		return &OverflowError{Col: col, Op: "^"}
	default:
		z.SetInt64(0)
		return nil
	}
}
