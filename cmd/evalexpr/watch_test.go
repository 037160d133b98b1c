package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for one writer and one reader.
type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

func TestWatch(t *testing.T) {
	name := filepath.Join(t.TempDir(), "input")
	require.NoError(t, os.WriteFile(name, []byte("1+1\n"), 0o644))

	var out syncBuffer
	cfg := DefaultConfig()
	cfg.Color = "never"
	logger, err := newLogger(io.Discard, "debug")
	require.NoError(t, err)
	a := &app{
		cfg:    cfg,
		p:      newPrinter(&out, io.Discard, cfg, false),
		ev:     newEvaluator(cfg),
		logger: logger,
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.watch(ctx, name) }()

	require.Eventually(t, func() bool { return out.String() == "2\n" }, 5*time.Second, 10*time.Millisecond)
	require.NoError(t, os.WriteFile(name, []byte("6*7\n"), 0o644))
	require.Eventually(t, func() bool { return strings.HasSuffix(out.String(), "42\n") }, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
