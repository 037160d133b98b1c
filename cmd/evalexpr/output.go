package main

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/zephyrtronium/evalexpr"
)

// printer writes results and diagnostics.
type printer struct {
	out   io.Writer
	diag  io.Writer
	fmt   string
	group bool
	echo  bool

	errc   *color.Color
	caretc *color.Color
}

func newPrinter(out, diag io.Writer, cfg Config, echo bool) *printer {
	p := &printer{
		out:    out,
		diag:   diag,
		fmt:    cfg.Format,
		group:  cfg.Group,
		echo:   echo,
		errc:   color.New(color.FgRed, color.Bold),
		caretc: color.New(color.FgGreen, color.Bold),
	}
	p.setColor(colorful(cfg.Color, diag))
	return p
}

func (p *printer) setColor(on bool) {
	for _, c := range []*color.Color{p.errc, p.caretc} {
		if on {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

// colorful decides whether diagnostics written to w get color.
func colorful(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// print writes the outcome of one evaluation.
func (p *printer) print(r result) {
	if r.err != nil {
		p.failure(r)
		return
	}
	if p.echo {
		fmt.Fprintf(p.out, "%v : ", r.expr)
	}
	fmt.Fprintln(p.out, formatResult(r.val, p.fmt, p.group))
}

// failure writes a diagnostic for a failed evaluation. Errors caused by the
// input show the expression with a caret under the offending column.
func (p *printer) failure(r result) {
	var b strings.Builder
	if r.n > 0 {
		fmt.Fprintf(&b, "line %d: ", r.n)
	}
	b.WriteString(p.errc.Sprint("error: "))
	b.WriteString(r.err.Error())
	b.WriteByte('\n')
	var ie evalexpr.InputError
	if errors.As(r.err, &ie) {
		b.WriteString("  ")
		b.WriteString(r.src)
		b.WriteString("\n  ")
		b.WriteString(p.caretc.Sprint(caret(r.src, ie.Pos())))
		b.WriteByte('\n')
	}
	io.WriteString(p.diag, b.String())
}

// caret returns a line that places ^ under the 1-based rune column col of
// src. Tabs before the column are kept so the caret lines up.
func caret(src string, col int) string {
	var b strings.Builder
	n := 1
	for _, r := range src {
		if n >= col {
			break
		}
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
		n++
	}
	for ; n < col; n++ {
		b.WriteByte(' ')
	}
	b.WriteByte('^')
	return b.String()
}

// formatResult renders a result with a fmt verb, or with thousands
// separators if group is set.
func formatResult(x *big.Float, verb string, group bool) string {
	if group {
		// BigCommaf takes the absolute value of its argument in place.
		return humanize.BigCommaf(new(big.Float).Copy(x))
	}
	return fmt.Sprintf(verb, x)
}
