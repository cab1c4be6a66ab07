package verify

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcherFiresOnMTimeChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hackstead.yml")
	require.NoError(t, os.WriteFile(path, []byte("advancements: {}\n"), 0o644))

	changed := make(chan string, 1)
	w := NewWatcher(dir, 5*time.Millisecond, func(p string) {
		select {
		case changed <- p:
		default:
		}
	})
	w.Start()
	defer w.Stop()

	// bump the mtime well past the primed value
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, future, future))

	select {
	case p := <-changed:
		require.Equal(t, path, p)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher never reported the change")
	}
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	w := NewWatcher(t.TempDir(), time.Millisecond, nil)
	w.Start()
	w.Stop()
	w.Stop()
}
