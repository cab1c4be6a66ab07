package content

import (
	"errors"
	"sync"
)

// Process-wide config access. Most of the codebase takes a *Config
// explicitly; the global exists for the handful of places where
// threading one through would be pure noise.

var (
	globalMu  sync.RWMutex
	globalCfg *Config
)

// ErrAlreadyInitialized is returned by Init on a second call.
var ErrAlreadyInitialized = errors.New("content: config already initialized")

// Init installs the verified config. Call once at startup.
func Init(cfg *Config) error {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalCfg != nil {
		return ErrAlreadyInitialized
	}
	globalCfg = cfg
	return nil
}

// Swap replaces the installed config, for watch-mode reloads. Handles
// held across a swap are not guaranteed to point at the same content.
func Swap(cfg *Config) {
	globalMu.Lock()
	globalCfg = cfg
	globalMu.Unlock()
}

// Current returns the installed config. Panics before Init: running
// game logic without content is a programming error, not a condition
// to handle.
func Current() *Config {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalCfg == nil {
		panic("content: Current called before Init")
	}
	return globalCfg
}

// Initialized reports whether Init has run.
func Initialized() bool {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalCfg != nil
}
