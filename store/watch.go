package store

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"sadt/diagram"
)

// Reload carries a freshly read diagram, or the error reading it.
type Reload struct {
	Diagram *diagram.Diagram
	Err     error
}

// settle is how long the watcher waits for a burst of writes to finish.
const settle = 100 * time.Millisecond

// WatchFile reports every change to the file at path until ctx is done.
// The parent directory is watched rather than the file, so editors that
// save by renaming a new file into place are seen too. The returned channel
// is closed when watching stops. Reloaded diagrams are configured with opts.
func WatchFile(ctx context.Context, path string, log *slog.Logger, opts ...diagram.Option) (<-chan Reload, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	out := make(chan Reload)
	go func() {
		defer close(out)
		defer w.Close()

		timer := time.NewTimer(settle)
		timer.Stop()
		send := func(r Reload) bool {
			select {
			case out <- r:
				return true
			case <-ctx.Done():
				return false
			}
		}
		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warn("file watcher error", "path", abs, "err", err)
				if !send(Reload{Err: err}) {
					return
				}
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				log.Debug("diagram file changed", "path", abs, "op", ev.Op.String())
				timer.Reset(settle)
			case <-timer.C:
				d, err := LoadFile(abs, opts...)
				if !send(Reload{Diagram: d, Err: err}) {
					return
				}
			}
		}
	}()
	return out, nil
}
