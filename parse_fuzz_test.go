package evalexpr_test

import (
	"testing"

	"github.com/zephyrtronium/evalexpr"
)

func FuzzParse(f *testing.F) {
	f.Add("1")
	f.Add("-2^-3^4")
	f.Add("(1+2")
	f.Add("1.2.3")
	f.Fuzz(func(t *testing.T, s string) {
		a, err := evalexpr.ParseString(s)
		if err != nil {
			if _, ok := err.(evalexpr.InputError); !ok {
				t.Errorf("%q gave non-input error %#v", s, err)
			}
			return
		}
		// The printed form must describe the same expression.
		p := a.String()
		b, err := evalexpr.ParseString(p)
		if _, ok := err.(*evalexpr.DepthError); ok {
			// Printing adds parentheses, so it can exceed the nesting limit.
			return
		}
		if err != nil {
			t.Fatalf("%q printed as %q, which fails to parse: %v", s, p, err)
		}
		if q := b.String(); q != p {
			t.Errorf("%q printed as %q, which prints as %q", s, p, q)
		}
	})
}
