package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"casper/internal/log"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for a burst of events to
// settle before reporting a change.
const DefaultDebounce = 250 * time.Millisecond

// Change reports that the watched directory's contents changed.
type Change struct {
	Dir       string
	Ops       fsnotify.Op // union of the coalesced operations
	Timestamp time.Time
}

// DirWatcher watches a single directory, the one currently displayed, and
// coalesces bursts of fsnotify events into one Change.
type DirWatcher struct {
	// Directory being watched; empty when idle
	dir string

	// Channel delivering coalesced changes
	changes chan Change

	// Channel to signal stop
	stopChan chan struct{}

	// fsnotify watcher instance
	fsWatcher *fsnotify.Watcher

	debounce time.Duration

	// Lock for running state and the watched directory
	mutex sync.RWMutex

	// Whether the watcher is running
	running bool

	// Set once Stop has closed the fsnotify watcher
	stopped bool
}

// New creates a directory watcher using fsnotify.
func New(debounce time.Duration) (*DirWatcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &DirWatcher{
		changes:   make(chan Change, 1),
		stopChan:  make(chan struct{}),
		fsWatcher: fsWatcher,
		debounce:  debounce,
	}, nil
}

// Retarget switches the watch to dir. An empty dir stops watching without
// stopping the watcher.
func (w *DirWatcher) Retarget(dir string) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if dir == w.dir {
		return nil
	}
	if w.dir != "" {
		if err := w.fsWatcher.Remove(w.dir); err != nil {
			log.LogWithFields(log.F("directory", w.dir)).Debugf("remove watch: %v", err)
		}
		w.dir = ""
	}
	if dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to add directory %s to watcher: %w", dir, err)
	}
	w.dir = dir
	log.LogWithFields(log.F("directory", dir)).Debug("Watching directory")
	return nil
}

// Dir returns the watched directory.
func (w *DirWatcher) Dir() string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.dir
}

// Changes returns the channel that delivers coalesced changes.
func (w *DirWatcher) Changes() <-chan Change {
	return w.changes
}

// Start begins processing fsnotify events.
func (w *DirWatcher) Start() error {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return fmt.Errorf("watcher already running")
	}
	if w.stopped {
		w.mutex.Unlock()
		return fmt.Errorf("watcher has been stopped")
	}
	w.running = true
	stop := w.stopChan
	w.mutex.Unlock()

	go w.loop(stop)
	log.Debug("Watcher started.")
	return nil
}

func (w *DirWatcher) loop(stop <-chan struct{}) {
	defer close(w.changes)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	var pending fsnotify.Op
	var pendingDir string

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			dir := w.Dir()
			if dir == "" || filepath.Dir(event.Name) != dir {
				continue
			}
			if pending == 0 {
				timer.Reset(w.debounce)
			}
			pending |= event.Op
			pendingDir = dir

		case <-timer.C:
			if pending == 0 {
				continue
			}
			change := Change{Dir: pendingDir, Ops: pending, Timestamp: time.Now()}
			pending = 0
			// A change is already queued; the consumer reloads once for both
			select {
			case w.changes <- change:
			default:
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

		case <-stop:
			return
		}
	}
}

// Stop halts the watcher. The change channel is closed once the event loop
// exits.
func (w *DirWatcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if !w.running {
		return
	}

	close(w.stopChan)

	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("Error closing fsnotify watcher")
	}

	w.running = false
	w.stopped = true
	w.dir = ""

	log.Debug("Watcher stopped.")
}

// IsRunning returns whether the watcher is currently active.
func (w *DirWatcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}
