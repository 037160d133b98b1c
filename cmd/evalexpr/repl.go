package main

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

// lineReader reads one line of input at a time. *term.Terminal is a
// lineReader.
type lineReader interface {
	ReadLine() (string, error)
}

// interactive runs a prompt on the terminal in until end of input.
func (a *app) interactive(ctx context.Context, in *os.File, out io.Writer) error {
	fd := int(in.Fd())
	old, err := term.MakeRaw(fd)
	if err != nil {
		return errors.Wrap(err, "setting up terminal")
	}
	defer term.Restore(fd, old)
	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{in, out}, "> ")
	// The terminal translates newlines for raw mode, so everything goes
	// through it while the prompt runs.
	p := *a.p
	p.out, p.diag = t, t
	return repl(ctx, t, &p, a.ev)
}

// repl evaluates each line from r and prints its result. Failures are
// reported but do not stop the loop.
func repl(ctx context.Context, r lineReader, p *printer, ev *evaluator) error {
	for ctx.Err() == nil {
		s, err := r.ReadLine()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return errors.Wrap(err, "reading input")
		}
		if strings.TrimSpace(s) == "" {
			continue
		}
		p.print(ev.eval(line{src: s}))
	}
	return nil
}
