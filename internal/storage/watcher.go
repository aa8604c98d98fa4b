package storage

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"pomodoro/internal/ui/preferences"

	"github.com/fsnotify/fsnotify"
)

const debounceInterval = 300 * time.Millisecond

// ReloadCallback receives settings whose durations changed on disk.
type ReloadCallback func(preferences.Settings)

// Watcher reports external edits of the settings file.
type Watcher struct {
	mu        sync.Mutex
	store     *Store
	fsWatcher *fsnotify.Watcher
	callback  ReloadCallback
	last      preferences.Settings
	cancel    chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// Watch starts watching the directory holding the store's file. Durations
// equal to current are not reported.
func Watch(store *Store, current preferences.Settings, callback ReloadCallback) (*Watcher, error) {
	dir := filepath.Dir(store.Path())
	if err := ensureDir(dir); err != nil {
		return nil, err
	}

	fsW, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create settings watcher: %w", err)
	}
	if err := fsW.Add(dir); err != nil {
		fsW.Close()
		return nil, fmt.Errorf("watch settings dir: %w", err)
	}

	watcher := &Watcher{
		store:     store,
		fsWatcher: fsW,
		callback:  callback,
		last:      current,
		cancel:    make(chan struct{}),
		done:      make(chan struct{}),
	}
	go watcher.watchLoop()
	return watcher, nil
}

// Remember records settings written by this process so they are not
// reported back.
func (watcher *Watcher) Remember(settings preferences.Settings) {
	watcher.mu.Lock()
	watcher.last = settings
	watcher.mu.Unlock()
}

// Close stops the watcher.
func (watcher *Watcher) Close() error {
	var err error
	watcher.closeOnce.Do(func() {
		close(watcher.cancel)
		err = watcher.fsWatcher.Close()
		<-watcher.done
	})
	return err
}

func (watcher *Watcher) watchLoop() {
	defer close(watcher.done)
	var timer *time.Timer
	name := filepath.Base(watcher.store.Path())

	for {
		select {
		case <-watcher.cancel:
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-watcher.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			// Debounce: editors emit several events per save.
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceInterval, watcher.reload)

		case err, ok := <-watcher.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("settings watcher error: %v", err)
		}
	}
}

func (watcher *Watcher) reload() {
	settings, err := watcher.store.Load()
	if err != nil {
		log.Printf("reload settings: %v", err)
		return
	}

	watcher.mu.Lock()
	changed := settings.WorkDuration != watcher.last.WorkDuration ||
		settings.BreakDuration != watcher.last.BreakDuration
	if changed {
		watcher.last = settings
	}
	callback := watcher.callback
	watcher.mu.Unlock()

	if changed && callback != nil {
		callback(settings)
	}
}
