package level

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// reloadDebounce is how long a file must stay quiet before it is reloaded.
const reloadDebounce = 100 * time.Millisecond

// Watcher reloads a level file into a Source whenever it changes on disk.
// Invalid files are logged and the previous table stays active.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	source  *Source
	logger  *log.Logger
	Reloads chan *Table // Receives each successfully loaded table; never blocks the watcher
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// Watch starts watching path. The parent directory is watched so saves
// that replace the file through a rename are still seen.
func Watch(path string, source *Source, logger *log.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("level: watch %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("level: watch %s: %w", path, err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("level: watch %s: %w", path, err)
	}
	if logger == nil {
		logger = log.Default()
	}

	w := &Watcher{
		watcher: fw,
		path:    abs,
		source:  source,
		logger:  logger,
		Reloads: make(chan *Table, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	// Reload once the file has been quiet for reloadDebounce.
	var pending <-chan time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			pending = time.After(reloadDebounce)
		case <-pending:
			pending = nil
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("level watcher error", "err", err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) reload() {
	t, err := LoadFile(w.path)
	if err != nil {
		w.logger.Warn("keeping previous level table", "path", w.path, "err", err)
		return
	}
	w.source.Store(t)
	w.logger.Info("level table reloaded", "path", w.path, "levels", t.Len())

	select {
	case w.Reloads <- t:
	default:
	}
}
