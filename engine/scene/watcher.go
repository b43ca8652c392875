package scene

import (
	"context"
	"errors"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/viewgeom/engine/core"
)

// Watcher re-evaluates a scene file every time it is created or written.
// The parent directory is watched rather than the file itself so that
// editors which save through a rename are still picked up.
type Watcher struct {
	path string
	eval *Evaluator

	fsnotify *fsnotify.Watcher
	reports  chan *Report
	errors   chan error
	done     chan struct{}

	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewWatcher starts watching path. The current contents are evaluated
// immediately. The watch stops when ctx is cancelled or Close is called.
func NewWatcher(ctx context.Context, path string, eval *Evaluator) (*Watcher, error) {
	if _, err := FormatFromPath(path); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if eval == nil {
		eval = NewEvaluator()
	}

	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatch.Add(filepath.Dir(abs)); err != nil {
		fsWatch.Close()
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		eval:     eval,
		fsnotify: fsWatch,
		reports:  make(chan *Report),
		errors:   make(chan error),
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.start(ctx)
	return w, nil
}

// Reports is closed when the watcher stops.
func (w *Watcher) Reports() <-chan *Report {
	return w.reports
}

// Errors carries load, build and filesystem errors. It is closed when the
// watcher stops.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		close(w.done)
	})
	w.wg.Wait()
	return nil
}

func (w *Watcher) start(ctx context.Context) {
	defer w.wg.Done()
	defer func() {
		w.fsnotify.Close()
		close(w.reports)
		close(w.errors)
	}()

	if !w.evaluate(ctx) {
		return
	}

	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != w.path {
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			core.LogDebug("scene file changed: %s (%s)", e.Name, e.Op)
			if !w.evaluate(ctx) {
				return
			}

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("%s", err)
			if !w.sendError(ctx, err) {
				return
			}

		case <-ctx.Done():
			return

		case <-w.done:
			return
		}
	}
}

// evaluate loads and runs the scene, returning false once the watcher should stop.
func (w *Watcher) evaluate(ctx context.Context) bool {
	sc, err := Load(w.path)
	if err != nil {
		core.LogWarn("could not load scene: %s", err)
		return w.sendError(ctx, err)
	}
	report, err := w.eval.Evaluate(ctx, sc)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return false
		}
		core.LogWarn("could not evaluate scene: %s", err)
		return w.sendError(ctx, err)
	}
	select {
	case w.reports <- report:
		return true
	case <-ctx.Done():
		return false
	case <-w.done:
		return false
	}
}

func (w *Watcher) sendError(ctx context.Context, err error) bool {
	select {
	case w.errors <- err:
		return true
	case <-ctx.Done():
		return false
	case <-w.done:
		return false
	}
}
