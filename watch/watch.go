// Package watch bridges filesystem change notifications into a
// pollset.Waker, the way a single-threaded reactor loop built on
// pollset can be told to re-read configuration without adding a second
// polling mechanism of its own. It is adapted from Orizon's
// fsnotify-backed internal/runtime/vfs.FSNotifyWatcher.
package watch

import (
	"log"

	"github.com/fsnotify/fsnotify"

	"github.com/orizon-lang/pollset/pollset"
)

// ConfigWatcher watches a set of paths and wakes a pollset.Waker on any
// filesystem event, so a program blocked in Registry.WaitTimeout wakes
// up and can decide for itself whether to reload.
type ConfigWatcher struct {
	w      *fsnotify.Watcher
	waker  *pollset.Waker
	logger *log.Logger
	done   chan struct{}
}

// NewConfigWatcher creates a watcher that calls waker.Wake on every
// fsnotify event or error for the given paths. logger may be nil.
func NewConfigWatcher(waker *pollset.Waker, logger *log.Logger, paths ...string) (*ConfigWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, p := range paths {
		if err := fw.Add(p); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	cw := &ConfigWatcher{w: fw, waker: waker, logger: logger, done: make(chan struct{})}
	go cw.loop()
	return cw, nil
}

func (cw *ConfigWatcher) loop() {
	defer close(cw.done)
	for {
		select {
		case _, ok := <-cw.w.Events:
			if !ok {
				return
			}
			if err := cw.waker.Wake(); err != nil && cw.logger != nil {
				cw.logger.Printf("watch: wake on fs event failed: %v", err)
			}
		case err, ok := <-cw.w.Errors:
			if !ok {
				return
			}
			if cw.logger != nil {
				cw.logger.Printf("watch: fsnotify error: %v", err)
			}
			if wakeErr := cw.waker.Wake(); wakeErr != nil && cw.logger != nil {
				cw.logger.Printf("watch: wake on fs error failed: %v", wakeErr)
			}
		}
	}
}

// Add starts watching an additional path.
func (cw *ConfigWatcher) Add(path string) error {
	return cw.w.Add(path)
}

// Close stops the watcher and waits for its goroutine to exit. It does
// not close the underlying Waker, which the caller still owns.
func (cw *ConfigWatcher) Close() error {
	err := cw.w.Close()
	<-cw.done
	return err
}
