package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"fboard/pkg/filesystem"
)

// maxWatchDepth covers the root (0), stage folders (1) and card folders (2)
const maxWatchDepth = 2

// Watcher reports changes below a board root. Bursts of events are folded
// into one notification once the tree has been quiet for the debounce
// interval. Entries carrying the internal prefix are ignored.
type Watcher struct {
	watcher  *fsnotify.Watcher
	root     string
	debounce time.Duration
	logger   logrus.FieldLogger
	changes  chan struct{}
	done     chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
	running  bool
}

// NewWatcher creates a watcher for the board at root
func NewWatcher(root string, debounce time.Duration, logger logrus.FieldLogger) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Watcher{
		watcher:  watcher,
		root:     filepath.Clean(root),
		debounce: debounce,
		logger:   logger,
		changes:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}, nil
}

// Start adds the root, its stages and their cards, then begins emitting
// notifications
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return fmt.Errorf("watcher already running")
	}
	if err := w.watcher.Add(w.root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.root, err)
	}
	w.addChildren(w.root, 1)

	w.running = true
	w.wg.Add(1)
	go w.processEvents()
	return nil
}

// Stop stops watching and waits for the event loop to exit
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return w.watcher.Close()
	}
	w.running = false
	w.mu.Unlock()

	close(w.done)
	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	w.wg.Wait()
	close(w.changes)
	return nil
}

// Changes emits one value per settled burst of changes. It is closed by Stop.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

func (w *Watcher) processEvents() {
	defer w.wg.Done()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.trackDir(event)
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.WithError(err).Warn("File watcher error")

		case <-timer.C:
			select {
			case w.changes <- struct{}{}:
			default:
			}
		}
	}
}

// relevant drops chmod-only events and anything under an internal entry
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		return false
	}
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		if filesystem.IsInternal(part) {
			return false
		}
	}
	return true
}

// trackDir starts watching stage and card folders created after Start
func (w *Watcher) trackDir(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) {
		return
	}
	depth := w.depth(event.Name)
	if depth < 1 || depth > maxWatchDepth {
		return
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.IsDir() {
		return
	}
	if err := w.watcher.Add(event.Name); err != nil {
		w.logger.WithError(err).WithField("dir", event.Name).Warn("Failed to watch folder")
		return
	}
	w.addChildren(event.Name, depth+1)
}

func (w *Watcher) addChildren(dir string, depth int) {
	if depth > maxWatchDepth {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		w.logger.WithError(err).WithField("dir", dir).Warn("Failed to list folder for watching")
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() || filesystem.IsInternal(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := w.watcher.Add(path); err != nil {
			w.logger.WithError(err).WithField("dir", path).Warn("Failed to watch folder")
			continue
		}
		w.addChildren(path, depth+1)
	}
}

func (w *Watcher) depth(path string) int {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return 0
	}
	return len(strings.Split(rel, string(filepath.Separator)))
}
