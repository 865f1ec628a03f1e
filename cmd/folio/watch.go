package main

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/phanxgames/folio/portfolio"
)

const reloadDebounce = 300 * time.Millisecond

// contentWatcher reloads a content file whenever it changes on disk and
// hands the parsed result to the game loop. Only the newest content is
// kept if the loop falls behind.
type contentWatcher struct {
	path    string
	log     *zap.Logger
	watcher *fsnotify.Watcher
	reloads chan *portfolio.Content
	done    chan struct{}

	mu    sync.Mutex
	timer *time.Timer
}

// watchContent starts watching path. The directory is watched rather than
// the file so that editors which replace the file on save are seen.
func watchContent(path string, log *zap.Logger) (*contentWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}
	cw := &contentWatcher{
		path:    abs,
		log:     log.With(zap.String("file", path)),
		watcher: w,
		reloads: make(chan *portfolio.Content, 1),
		done:    make(chan struct{}),
	}
	go cw.loop()
	cw.log.Info("watching content")
	return cw, nil
}

// Reloads delivers freshly parsed content after each change.
func (cw *contentWatcher) Reloads() <-chan *portfolio.Content { return cw.reloads }

func (cw *contentWatcher) loop() {
	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != cw.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				cw.log.Debug("change detected", zap.Stringer("op", event.Op))
				cw.schedule()
			}
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.log.Warn("watcher error", zap.Error(err))
		case <-cw.done:
			return
		}
	}
}

func (cw *contentWatcher) schedule() {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	if cw.timer != nil {
		cw.timer.Stop()
	}
	cw.timer = time.AfterFunc(reloadDebounce, cw.reload)
}

func (cw *contentWatcher) reload() {
	c, err := portfolio.LoadFile(cw.path)
	if err != nil {
		cw.log.Error("content reload failed", zap.Error(err))
		return
	}
	// Replace anything the loop has not picked up yet.
	select {
	case <-cw.reloads:
	default:
	}
	select {
	case cw.reloads <- c:
		cw.log.Info("content reloaded", zap.Int("projects", len(c.Projects)))
	case <-cw.done:
	}
}

// Close stops watching. Pending reloads are dropped.
func (cw *contentWatcher) Close() error {
	cw.mu.Lock()
	if cw.timer != nil {
		cw.timer.Stop()
	}
	cw.mu.Unlock()
	select {
	case <-cw.done:
		return nil
	default:
		close(cw.done)
	}
	return cw.watcher.Close()
}
