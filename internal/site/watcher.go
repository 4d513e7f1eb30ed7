package site

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	derrors "git.home.luguber.info/inful/docsroute/internal/foundation/errors"
	"git.home.luguber.info/inful/docsroute/internal/logfields"
	"git.home.luguber.info/inful/docsroute/internal/retry"
)

const defaultDebounce = 500 * time.Millisecond

// Watcher reloads a Holder when its configuration or descriptor files change.
type Watcher struct {
	holder   *Holder
	watcher  *fsnotify.Watcher
	debounce time.Duration
	retry    retry.Policy

	mu       sync.Mutex
	files    map[string]bool
	dirs     map[string]bool
	stopChan chan struct{}
	done     sync.WaitGroup
	stopped  bool
}

// NewWatcher creates a watcher for the files of the holder's current Site.
func NewWatcher(holder *Holder, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to create file watcher").Build()
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &Watcher{
		holder:   holder,
		watcher:  fw,
		debounce: debounce,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		stopChan: make(chan struct{}),
	}, nil
}

// WithRetry retries a failed reload with the backoff of p. Without it a
// failed reload waits for the next change.
func (w *Watcher) WithRetry(p retry.Policy) *Watcher {
	w.retry = p
	return w
}

// Start begins watching. Directories are watched rather than files so
// editors that replace files on save are still seen.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.refresh(); err != nil {
		return err
	}
	slog.Info("Starting descriptor watcher", logfields.Count(len(w.files)))

	w.done.Add(1)
	go w.loop(ctx)
	return nil
}

// Stop stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	close(w.stopChan)
	w.mu.Unlock()

	w.done.Wait()
	slog.Info("Stopped descriptor watcher")
	return w.watcher.Close()
}

// refresh adds watches for files introduced by the current Site.
func (w *Watcher) refresh() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, f := range w.holder.WatchedFiles() {
		abs, err := filepath.Abs(f)
		if err != nil {
			return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to resolve watched path").
				WithContext("path", f).
				Build()
		}
		w.files[abs] = true
		dir := filepath.Dir(abs)
		if w.dirs[dir] {
			continue
		}
		if err := w.watcher.Add(dir); err != nil {
			// A descriptor directory may legitimately not exist yet.
			slog.Warn("Cannot watch directory", logfields.Path(dir), logfields.Error(err))
			continue
		}
		w.dirs[dir] = true
	}
	return nil
}

func (w *Watcher) watched(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[abs]
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.done.Done()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	// attempt counts consecutive failed reloads since the last change.
	attempt := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.watched(event.Name) || event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			slog.Debug("Watched file changed", logfields.File(event.Name), slog.String("op", event.Op.String()))
			attempt = 0
			timer.Reset(w.debounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Descriptor watcher error", logfields.Error(err))
		case <-timer.C:
			if err := w.holder.Reload(ctx); err != nil {
				attempt++
				if w.retry.Allows(attempt) {
					delay := w.retry.Delay(attempt)
					slog.Info("Retrying reload", slog.Int("attempt", attempt), logfields.DurationMS(float64(delay.Milliseconds())))
					timer.Reset(delay)
				}
				continue
			}
			attempt = 0
			if err := w.refresh(); err != nil {
				slog.Warn("Failed to refresh watched files", logfields.Error(err))
			}
		}
	}
}
