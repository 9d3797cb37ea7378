package codebook

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a file must stay quiet before it is reloaded.
const DefaultDebounce = 100 * time.Millisecond

// Update is one reload of the watched file: either a fresh snapshot or the
// error that kept the file from loading.
type Update struct {
	Codebook *Codebook
	Err      error
}

// Watcher reloads a codebook file whenever it changes on disk.
type Watcher struct {
	Path     string
	Debounce time.Duration
	Updates  <-chan Update // Read-only external channel

	updates chan Update // Internal write channel
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// NewWatcher creates a watcher for the codebook file at path. The parent
// directory is watched so that editors replacing the file are noticed.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	ch := make(chan Update, 16)
	w := &Watcher{
		Path:     filepath.Clean(path),
		Debounce: debounce,
		Updates:  ch,
		updates:  ch,
		done:     make(chan struct{}),
		watcher:  fw,
	}
	return w, nil
}

// Start begins watching.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.Path)); err != nil {
		return err
	}

	go w.loop()
	return nil
}

// Stop closes the watcher and the Updates channel.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done // Wait for loop to exit
	close(w.updates)
}

func (w *Watcher) loop() {
	defer close(w.done)

	var pending time.Time
	ticker := time.NewTicker(w.Debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				if !pending.IsZero() {
					w.reload()
				}
				return
			}

			if filepath.Clean(event.Name) != w.Path {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) >= w.Debounce {
				pending = time.Time{}
				w.reload()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.updates <- Update{Err: err}
		}
	}
}

// reload loads the file and publishes the result.
func (w *Watcher) reload() {
	cb, err := LoadFile(w.Path)
	if err != nil {
		w.updates <- Update{Err: err}
		return
	}
	w.updates <- Update{Codebook: cb}
}
