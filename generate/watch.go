package generate

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teranos/arbgen/errors"
	"github.com/teranos/arbgen/logger"
)

// RegenerateFunc regenerates one package directory.
type RegenerateFunc func(ctx context.Context, dir string) error

// Watcher regenerates package directories after their Go sources change.
// Bursts of events are debounced per directory set.
type Watcher struct {
	opts       Options
	watcher    *fsnotify.Watcher
	debounce   time.Duration
	regenerate RegenerateFunc
	logger     *zap.SugaredLogger

	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]bool

	runMu sync.Mutex // serializes regeneration
}

// NewWatcher watches dirs. Events on opts.OutputFile, opts.TestFile and
// _test.go files are ignored.
func NewWatcher(dirs []string, opts Options, debounce time.Duration, regenerate RegenerateFunc) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "failed to watch %s", dir)
		}
	}
	return &Watcher{
		opts:       opts,
		watcher:    fw,
		debounce:   debounce,
		regenerate: regenerate,
		logger:     logger.ComponentLogger("generate.watch"),
		pending:    make(map[string]bool),
	}, nil
}

// Run processes events until ctx is done, then stops the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.stop()
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			if logger.ShouldOutput(logger.Verbosity, logger.OutputWatch) {
				w.logger.Debugw("Source changed", logger.FieldFile, event.Name, "op", event.Op.String())
			}
			w.schedule(ctx, filepath.Dir(event.Name))

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warnw("Watcher error", logger.FieldError, err)
		}
	}
}

// relevant keeps writes, creates, renames and removes of package sources.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	base := filepath.Base(event.Name)
	if !strings.HasSuffix(base, ".go") || strings.HasSuffix(base, "_test.go") {
		return false
	}
	return !w.opts.owned(base)
}

// schedule debounces rapid changes and regenerates every pending directory.
func (w *Watcher) schedule(ctx context.Context, dir string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[dir] = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.flush(ctx)
	})
}

func (w *Watcher) flush(ctx context.Context) {
	w.mu.Lock()
	dirs := make([]string, 0, len(w.pending))
	for dir := range w.pending {
		dirs = append(dirs, dir)
	}
	w.pending = make(map[string]bool)
	w.mu.Unlock()
	sort.Strings(dirs)

	w.runMu.Lock()
	defer w.runMu.Unlock()
	for _, dir := range dirs {
		if ctx.Err() != nil {
			return
		}
		if err := w.regenerate(ctx, dir); err != nil {
			w.logger.Errorw("Regeneration failed", logger.FieldDir, dir, logger.FieldError, err)
		}
	}
}

func (w *Watcher) stop() {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	if err := w.watcher.Close(); err != nil {
		w.logger.Warnw("Failed to close watcher", logger.FieldError, err)
	}
}
