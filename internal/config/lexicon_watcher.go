package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"resumelift/internal/errors"

	"github.com/fsnotify/fsnotify"
)

// LexiconWatcher watches the lexicon file for changes and triggers reloads
type LexiconWatcher struct {
	mu sync.RWMutex

	path        string
	lastModTime time.Time

	fsWatcher     *fsnotify.Watcher
	debounceDelay time.Duration
	debounceTimer *time.Timer

	stopChan   chan struct{}
	reloadChan chan struct{}

	reloadCallback func()
	logger         *errors.Logger

	running bool
}

// NewLexiconWatcher creates a new lexicon file watcher
func NewLexiconWatcher(path string, debounceDelay time.Duration, reloadCallback func(), logger *errors.Logger) (*LexiconWatcher, error) {
	if path == "" {
		return nil, fmt.Errorf("lexicon watcher requires a file path")
	}
	if debounceDelay == 0 {
		debounceDelay = time.Second
	}

	return &LexiconWatcher{
		path:           path,
		debounceDelay:  debounceDelay,
		stopChan:       make(chan struct{}),
		reloadChan:     make(chan struct{}, 1), // Buffered to prevent blocking
		reloadCallback: reloadCallback,
		logger:         logger,
	}, nil
}

// Start begins watching the lexicon file for changes
func (lw *LexiconWatcher) Start() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	if lw.running {
		return fmt.Errorf("lexicon watcher is already running")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	lw.fsWatcher = watcher

	if stat, err := os.Stat(lw.path); err == nil {
		lw.lastModTime = stat.ModTime()
	}

	if err := lw.addFileToWatcher(); err != nil {
		if closeErr := watcher.Close(); closeErr != nil && lw.logger != nil {
			lw.logger.LogError(closeErr, "Failed to close file watcher during cleanup")
		}
		return err
	}

	lw.running = true
	go lw.watchLoop()

	if lw.logger != nil {
		lw.logger.Info("Lexicon file watcher started",
			"file", lw.path,
			"debounce_delay", lw.debounceDelay)
	}
	return nil
}

// Stop stops the lexicon file watcher
func (lw *LexiconWatcher) Stop() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	if !lw.running {
		return nil
	}

	close(lw.stopChan)

	if lw.debounceTimer != nil {
		lw.debounceTimer.Stop()
	}

	if lw.fsWatcher != nil {
		if err := lw.fsWatcher.Close(); err != nil {
			if lw.logger != nil {
				lw.logger.LogError(err, "Failed to close file system watcher")
			}
			return err
		}
	}

	lw.running = false

	if lw.logger != nil {
		lw.logger.Info("Lexicon file watcher stopped")
	}

	return nil
}

// addFileToWatcher adds the file and its directory to the file system watcher
func (lw *LexiconWatcher) addFileToWatcher() error {
	if err := lw.fsWatcher.Add(lw.path); err != nil {
		// If the file doesn't exist yet, watch its directory instead
		if os.IsNotExist(err) {
			dir := filepath.Dir(lw.path)
			if err := lw.fsWatcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch directory %s: %w", dir, err)
			}
			if lw.logger != nil {
				lw.logger.Info("Watching directory for lexicon file",
					"file", lw.path, "directory", dir)
			}
			return nil
		}
		return fmt.Errorf("failed to watch file %s: %w", lw.path, err)
	}

	// Also watch the directory to catch atomic writes (rename operations)
	dir := filepath.Dir(lw.path)
	if err := lw.fsWatcher.Add(dir); err != nil {
		if lw.logger != nil {
			lw.logger.Warn("Failed to watch directory for atomic writes",
				"directory", dir, "error", err)
		}
	}

	return nil
}

// hasFileChanged checks if the file has been modified since last check
func (lw *LexiconWatcher) hasFileChanged() bool {
	stat, err := os.Stat(lw.path)
	if err != nil {
		if os.IsNotExist(err) && !lw.lastModTime.IsZero() {
			// File was deleted
			lw.lastModTime = time.Time{}
			return true
		}
		return false
	}

	if lw.lastModTime.IsZero() || stat.ModTime().After(lw.lastModTime) {
		lw.lastModTime = stat.ModTime()
		return true
	}

	return false
}

// watchLoop is the main event loop for file watching
func (lw *LexiconWatcher) watchLoop() {
	for {
		select {
		case event, ok := <-lw.fsWatcher.Events:
			if !ok {
				return
			}

			if lw.shouldProcessEvent(event) {
				lw.scheduleReload()
			}

		case err, ok := <-lw.fsWatcher.Errors:
			if !ok {
				return
			}
			if lw.logger != nil {
				lw.logger.LogError(err, "File watcher error")
			}

		case <-lw.reloadChan:
			// Debounced reload trigger
			if lw.hasFileChanged() {
				if lw.logger != nil {
					lw.logger.Info("Lexicon file changed, triggering reload", "file", lw.path)
				}
				lw.reloadCallback()
			}

		case <-lw.stopChan:
			return
		}
	}
}

// shouldProcessEvent determines if a file system event should trigger a reload check
func (lw *LexiconWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Name != lw.path && filepath.Base(event.Name) != filepath.Base(lw.path) {
		return false
	}

	// Process write, create, and rename events
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// scheduleReload schedules a debounced reload
func (lw *LexiconWatcher) scheduleReload() {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	if lw.debounceTimer != nil {
		lw.debounceTimer.Stop()
	}

	lw.debounceTimer = time.AfterFunc(lw.debounceDelay, func() {
		select {
		case lw.reloadChan <- struct{}{}:
		default:
			// Reload already scheduled
		}
	})
}

// IsRunning returns whether the watcher is currently running
func (lw *LexiconWatcher) IsRunning() bool {
	lw.mu.RLock()
	defer lw.mu.RUnlock()
	return lw.running
}
