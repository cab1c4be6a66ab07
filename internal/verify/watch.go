package verify

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Watcher polls the content directory's yml files for modification
// time changes and triggers a callback. Polling keeps it portable;
// content edit loops don't need sub-second latency.
type Watcher struct {
	Dir      string
	Interval time.Duration

	onChange  func(path string)
	stopCh    chan struct{}
	stopOnce  sync.Once
	lastMTime map[string]time.Time
}

// NewWatcher watches every .yml under dir (one level of
// subdirectories deep, matching the content layout).
func NewWatcher(dir string, interval time.Duration, onChange func(string)) *Watcher {
	return &Watcher{
		Dir:       dir,
		Interval:  interval,
		onChange:  onChange,
		stopCh:    make(chan struct{}),
		lastMTime: make(map[string]time.Time),
	}
}

// Start begins polling in a goroutine.
func (w *Watcher) Start() {
	ticker := time.NewTicker(w.Interval)
	go func() {
		defer ticker.Stop()
		w.scan(true)
		for {
			select {
			case <-ticker.C:
				w.scan(false)
			case <-w.stopCh:
				return
			}
		}
	}()
}

// Stop terminates the watcher. Safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}

func (w *Watcher) scan(prime bool) {
	for _, p := range w.paths() {
		fi, err := os.Stat(p)
		if err != nil {
			// deleted between listing and stat; next scan catches it
			continue
		}
		mt := fi.ModTime()
		last, seen := w.lastMTime[p]
		w.lastMTime[p] = mt
		if !seen {
			// new file: counts as a change unless we're priming
			if !prime && w.onChange != nil {
				w.onChange(p)
			}
			continue
		}
		if mt.After(last) && !prime && w.onChange != nil {
			w.onChange(p)
		}
	}
}

func (w *Watcher) paths() []string {
	var out []string
	add := func(dir string) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return
		}
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ".yml") {
				out = append(out, filepath.Join(dir, e.Name()))
			}
		}
	}
	add(w.Dir)
	add(filepath.Join(w.Dir, "items"))
	add(filepath.Join(w.Dir, "plants"))
	return out
}
