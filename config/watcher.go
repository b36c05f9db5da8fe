package config

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a tour file whenever it changes on disk. Reloads happen on the watcher's own
// goroutine; consumers receive them on Updates and apply them on their main loop.
type Watcher struct {
	path    string
	fs      *fsnotify.Watcher
	logger  *log.Logger
	updates chan *TourConfig
	errs    chan error
	done    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
}

// WatcherOption is a functional option for configuring a Watcher.
type WatcherOption func(*Watcher)

// WithWatcherLogger sets the logger. Defaults to log.Default().
func WithWatcherLogger(logger *log.Logger) WatcherOption {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWatcher starts watching a tour file. The parent directory is watched so that editors
// which replace the file on save are followed.
//
// Parameters:
//   - path: tour file path
//   - options: functional options to configure the watcher
//
// Returns:
//   - *Watcher: the running watcher
//   - error: if the file system watch cannot be set up
func NewWatcher(path string, options ...WatcherOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch tour %s: %w", path, err)
	}
	if _, err := FormatForPath(abs); err != nil {
		return nil, err
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch tour %s: %w", path, err)
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watch tour %s: %w", path, err)
	}

	w := &Watcher{
		path:    abs,
		fs:      fs,
		logger:  log.Default(),
		updates: make(chan *TourConfig, 1),
		errs:    make(chan error, 1),
		done:    make(chan struct{}),
	}
	for _, opt := range options {
		opt(w)
	}

	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Updates delivers each successfully reloaded tour. Only the latest unread tour is kept.
func (w *Watcher) Updates() <-chan *TourConfig {
	return w.updates
}

// Errors delivers reload failures. Only the latest unread error is kept.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Close stops watching. It is safe to call more than once.
//
// Returns:
//   - error: error closing the file system watcher
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.reload()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Printf("[Config] watcher error: %v", err)
			offerLatest(w.errs, err)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := LoadTourConfig(w.path)
	if err != nil {
		// A save in progress can leave a partial file; the next write event retries.
		w.logger.Printf("[Config] reload failed: %v", err)
		offerLatest(w.errs, err)
		return
	}
	w.logger.Printf("[Config] reloaded %s with %d pois", filepath.Base(w.path), len(cfg.POIs))
	offerLatest(w.updates, cfg)
}

// offerLatest sends v without blocking, replacing an unread value.
func offerLatest[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
