package scan

import (
	"context"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before a batch of changes is reported.
const DefaultDebounce = 500 * time.Millisecond

// Watcher reports changes to eligible files under an input directory.
type Watcher struct {
	watcher      *fsnotify.Watcher
	rootDir      string
	discovery    *FileDiscovery
	debounceTime time.Duration
}

// NewWatcher watches rootDir recursively. Only files accepted by discovery
// trigger callbacks.
func NewWatcher(rootDir string, discovery *FileDiscovery, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		watcher:      fw,
		rootDir:      rootDir,
		discovery:    discovery,
		debounceTime: debounce,
	}

	if err := w.addDirectoriesRecursively(rootDir); err != nil {
		fw.Close()
		return nil, err
	}

	return w, nil
}

// Run blocks until ctx is cancelled, calling onChange with the sorted set of
// changed files after each debounce period. onChange runs on the watch
// goroutine; events arriving meanwhile are picked up afterwards.
func (w *Watcher) Run(ctx context.Context, onChange func(files []string)) error {
	defer w.watcher.Close()

	accumulated := make(map[string]bool)
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}

			// Handle new directories - add them to watcher
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addDirectoriesRecursively(event.Name); err != nil {
						log.Printf("Warning: failed to watch new directory %s: %v", event.Name, err)
					}
				}
			}

			if !w.shouldProcessEvent(event) {
				continue
			}

			accumulated[event.Name] = true
			if timer == nil {
				timer = time.NewTimer(w.debounceTime)
			} else {
				timer.Reset(w.debounceTime)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			files := make([]string, 0, len(accumulated))
			for file := range accumulated {
				files = append(files, file)
			}
			clear(accumulated)
			slices.Sort(files)
			onChange(files)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}

// shouldProcessEvent keeps write, create, remove and rename events on eligible files.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	relPath, err := filepath.Rel(w.rootDir, event.Name)
	if err != nil {
		return false
	}
	return w.discovery.Matches(filepath.ToSlash(relPath))
}

// addDirectoriesRecursively adds all directories in the tree to the watcher.
func (w *Watcher) addDirectoriesRecursively(rootPath string) error {
	return filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// If it's the root path, fail immediately
			if path == rootPath {
				return err
			}
			log.Printf("Warning: error accessing %s: %v", path, err)
			return nil
		}

		if !d.IsDir() {
			return nil
		}

		if err := w.watcher.Add(path); err != nil {
			log.Printf("Warning: failed to watch directory %s: %v", path, err)
		}
		return nil
	})
}
