package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/evalexpr"
)

func TestReadLines(t *testing.T) {
	lines, err := readLines(strings.NewReader("1\n\n 2+2 \r\n\t\n3"))
	require.NoError(t, err)
	want := []line{{1, "1"}, {3, " 2+2 "}, {5, "3"}}
	assert.Equal(t, want, lines)
}

func TestEvalAllOrder(t *testing.T) {
	ev := newEvaluator(DefaultConfig())
	var lines []line
	for i := range 200 {
		src := fmt.Sprintf("%d*2", i)
		if i%7 == 0 {
			src = fmt.Sprintf("%d/0", i)
		}
		lines = append(lines, line{n: i + 1, src: src})
	}
	res, err := ev.evalAll(context.Background(), lines, 8)
	require.NoError(t, err)
	require.Len(t, res, len(lines))
	for i, r := range res {
		assert.Equal(t, lines[i], r.line)
		if i%7 == 0 {
			var dz *evalexpr.DivisionByZeroError
			assert.ErrorAs(t, r.err, &dz, "line %d", r.n)
			assert.Nil(t, r.val)
			continue
		}
		require.NoError(t, r.err, "line %d", r.n)
		assert.Equal(t, strconv.Itoa(i*2), r.val.Text('g', -1))
	}
}

func TestEvalAllCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ev := newEvaluator(DefaultConfig())
	_, err := ev.evalAll(ctx, argLines([]string{"1", "2"}), 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEvaluatorSettings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Strict = true
	cfg.MaxDepth = 3
	ev := newEvaluator(cfg)

	var ut *evalexpr.UnexpectedTokenError
	assert.ErrorAs(t, ev.eval(line{src: "-1"}).err, &ut)
	var de *evalexpr.DepthError
	assert.ErrorAs(t, ev.eval(line{src: "((((1))))"}).err, &de)
	r := ev.eval(line{src: "((1))"})
	require.NoError(t, r.err)
	assert.Equal(t, "1", r.val.Text('g', -1))
}

func TestBatchError(t *testing.T) {
	var log strings.Builder
	logger, err := newLogger(&log, "info")
	require.NoError(t, err)
	var out, diag strings.Builder
	cfg := DefaultConfig()
	cfg.Color = "never"
	a := &app{
		cfg:    cfg,
		p:      newPrinter(&out, &diag, cfg, false),
		ev:     newEvaluator(cfg),
		logger: logger,
	}
	err = a.runLines(context.Background(), argLines([]string{"1/0", "2", "(-8)^0.5"}))
	var failed *batchError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, 3, failed.total)
	assert.Equal(t, 2, failed.errs.Len())
	assert.Contains(t, err.Error(), "2 of 3 expressions failed")
	assert.Contains(t, err.Error(), "expression 1")
	assert.Contains(t, err.Error(), "expression 3")
	var dom *evalexpr.DomainError
	assert.ErrorAs(t, err, &dom)
	assert.Equal(t, "2\n", out.String())
	assert.Contains(t, log.String(), "batch failed")
}

func TestEvaluatorReusesContexts(t *testing.T) {
	ev := newEvaluator(DefaultConfig())
	a := ev.eval(line{src: "2+3"})
	require.NoError(t, a.err)
	for range 50 {
		r := ev.eval(line{src: "2*(3+4)"})
		require.NoError(t, r.err)
		assert.Equal(t, "14", r.val.Text('g', -1))
	}
	assert.Equal(t, "5", a.val.Text('g', -1), "earlier result changed")
	assert.Equal(t, uint(evalexpr.DefaultPrec), a.val.Prec())
}
