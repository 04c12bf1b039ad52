// Package watch re-runs a compile whenever its runbook sources change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/jorge-barreto/runbook/internal/assemble"
)

// DefaultDebounce collapses the burst of events an editor save produces.
const DefaultDebounce = 300 * time.Millisecond

// Watcher observes a runbook file, or the fragments of a phase directory.
type Watcher struct {
	target   string
	isDir    bool
	debounce time.Duration
	watcher  *fsnotify.Watcher
	log      *zap.Logger
}

// New starts watching target. The directory holding a runbook file is
// watched rather than the file, so editors that save by rename still trigger.
func New(target string, isDir bool, debounce time.Duration, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("starting watcher: %w", err)
	}
	dir := filepath.Dir(abs)
	if isDir {
		dir = abs
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}
	log.Debug("watching", zap.String("dir", dir), zap.Bool("phase_dir", isDir))
	return &Watcher{target: abs, isDir: isDir, debounce: debounce, watcher: fw, log: log}, nil
}

// Run calls onChange once per burst of relevant events until ctx is done.
// Errors from onChange are logged and do not stop the loop.
func (w *Watcher) Run(ctx context.Context, onChange func() error) error {
	defer w.watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.log.Debug("change detected", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", zap.Error(err))
		case <-fire:
			fire = nil
			if err := onChange(); err != nil {
				w.log.Debug("recompile failed", zap.Error(err))
			}
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return false
	}
	if w.isDir {
		return assemble.IsFragment(filepath.Base(ev.Name))
	}
	return filepath.Clean(ev.Name) == w.target
}
