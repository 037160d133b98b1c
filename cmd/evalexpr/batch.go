package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"os"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/zephyrtronium/evalexpr"
)

// app carries everything needed to evaluate and report expressions.
type app struct {
	cfg    Config
	p      *printer
	ev     *evaluator
	logger *slog.Logger
}

// line is one input expression. n is its 1-based line number, or 0 for
// expressions that did not come from a file.
type line struct {
	n   int
	src string
}

// result is the outcome of evaluating one line.
type result struct {
	line
	expr *evalexpr.Expr
	val  *big.Float
	err  error
}

// evaluator parses and evaluates independent expressions with shared
// settings. It is safe for concurrent use. Each goroutine borrows a Context
// from a pool, so literal caches and scratch values carry over between
// lines.
type evaluator struct {
	popt evalexpr.ParseOption
	ctxs sync.Pool
}

func newEvaluator(cfg Config) *evaluator {
	prec := cfg.Precision
	ev := &evaluator{popt: cfg.parseOptions()}
	ev.ctxs.New = func() any { return evalexpr.NewContext(evalexpr.Prec(prec)) }
	return ev
}

func (ev *evaluator) eval(ln line) result {
	r := result{line: ln}
	r.expr, r.err = evalexpr.ParseString(ln.src, ev.popt)
	if r.err != nil {
		return r
	}
	ctx := ev.ctxs.Get().(*evalexpr.Context)
	r.val = ctx.Eval(r.expr)
	r.err = ctx.Err()
	ev.ctxs.Put(ctx)
	return r
}

// evalAll evaluates lines using up to jobs goroutines. Results are in the
// same order as lines.
func (ev *evaluator) evalAll(ctx context.Context, lines []line, jobs int) ([]result, error) {
	res := make([]result, len(lines))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, ln := range lines {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res[i] = ev.eval(ln)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// batchError reports the expressions of a batch that failed.
type batchError struct {
	total int
	errs  *multierror.Error
}

func (err *batchError) Error() string {
	return fmt.Sprintf("%d of %d expressions failed: %v", err.errs.Len(), err.total, err.errs)
}

func (err *batchError) Unwrap() error {
	return err.errs
}

// runLines evaluates and prints a batch of expressions. The error is a
// *batchError if any expression failed.
func (a *app) runLines(ctx context.Context, lines []line) error {
	a.logger.Debug("evaluating", "expressions", len(lines), "jobs", a.cfg.Jobs)
	res, err := a.ev.evalAll(ctx, lines, a.cfg.Jobs)
	if err != nil {
		return err
	}
	var errs *multierror.Error
	for i, r := range res {
		a.p.print(r)
		if r.err != nil {
			n := r.n
			if n == 0 {
				n = i + 1
			}
			errs = multierror.Append(errs, errors.Wrapf(r.err, "expression %d", n))
		}
	}
	if errs.ErrorOrNil() == nil {
		return nil
	}
	err = &batchError{total: len(res), errs: errs}
	a.logger.Info("batch failed", "failed", errs.Len(), "total", len(res))
	return err
}

func (a *app) runReader(ctx context.Context, r io.Reader) error {
	lines, err := readLines(r)
	if err != nil {
		return err
	}
	return a.runLines(ctx, lines)
}

func (a *app) runFile(ctx context.Context, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return errors.Wrap(err, "opening input")
	}
	defer f.Close()
	return a.runReader(ctx, f)
}

// argLines makes each argument a line with no line number.
func argLines(args []string) []line {
	lines := make([]line, len(args))
	for i, s := range args {
		lines[i] = line{src: s}
	}
	return lines
}

// readLines returns the non-blank lines of r.
func readLines(r io.Reader) ([]line, error) {
	var lines []line
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, 1<<20)
	for n := 1; sc.Scan(); n++ {
		s := strings.TrimSuffix(sc.Text(), "\r")
		if strings.TrimSpace(s) == "" {
			continue
		}
		lines = append(lines, line{n: n, src: s})
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "reading input")
	}
	return lines, nil
}
