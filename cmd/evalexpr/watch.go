package main

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// watch evaluates the file name, then evaluates it again each time it is
// written or replaced, until ctx is canceled.
func (a *app) watch(ctx context.Context, name string) error {
	abs, err := filepath.Abs(name)
	if err != nil {
		return errors.Wrap(err, "resolving input")
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating watcher")
	}
	defer w.Close()
	// Watch the directory so that editors which replace the file on save
	// are still seen.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return errors.Wrapf(err, "watching %s", name)
	}
	a.reload(ctx, abs)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			a.logger.Info("input changed", "file", name, "op", ev.Op.String())
			a.reload(ctx, abs)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("watcher error", "err", err)
		}
	}
}

// reload evaluates a watched file. Failures are logged rather than returned
// so that watching continues.
func (a *app) reload(ctx context.Context, name string) {
	err := a.runFile(ctx, name)
	var failed *batchError
	switch {
	case err == nil:
	case errors.As(err, &failed):
		a.logger.Debug("evaluation failed", "file", name, "failed", failed.errs.Len())
	default:
		a.logger.Error("evaluation failed", "file", name, "err", err)
	}
}
