package daemon

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDebounce = 20 * time.Millisecond

func startWatcher(t *testing.T, root string) *Watcher {
	t.Helper()
	logger, _ := logtest.NewNullLogger()
	watcher, err := NewWatcher(root, testDebounce, logger)
	require.NoError(t, err)
	require.NoError(t, watcher.Start())
	t.Cleanup(func() { _ = watcher.Stop() })
	return watcher
}

func expectChange(t *testing.T, w *Watcher) {
	t.Helper()
	select {
	case <-w.Changes():
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change")
	}
}

func expectQuiet(t *testing.T, w *Watcher) {
	t.Helper()
	select {
	case <-w.Changes():
		t.Fatal("unexpected change")
	case <-time.After(10 * testDebounce):
	}
}

func TestWatcher_CardFileChange(t *testing.T) {
	root := t.TempDir()
	card := filepath.Join(root, "todo", "Task")
	require.NoError(t, os.MkdirAll(card, 0755))
	w := startWatcher(t, root)

	require.NoError(t, os.WriteFile(filepath.Join(card, "comments.txt"), []byte("hi\n"), 0644))
	expectChange(t, w)
}

func TestWatcher_NewFoldersAreTracked(t *testing.T) {
	root := t.TempDir()
	w := startWatcher(t, root)

	card := filepath.Join(root, "doing", "Task")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "doing"), 0755))
	expectChange(t, w)
	require.NoError(t, os.Mkdir(card, 0755))
	expectChange(t, w)

	require.NoError(t, os.WriteFile(filepath.Join(card, "info.txt"), []byte("x"), 0644))
	expectChange(t, w)
}

func TestWatcher_BurstIsDebounced(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "todo"), 0755))
	w := startWatcher(t, root)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(root, "todo", "f.txt"), []byte{byte(i)}, 0644))
	}
	expectChange(t, w)
	expectQuiet(t, w)
}

func TestWatcher_IgnoresInternalEntries(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "todo"), 0755))
	w := startWatcher(t, root)

	require.NoError(t, os.Mkdir(filepath.Join(root, "todo", ".fboard-move-Task"), 0755))
	expectQuiet(t, w)
}

func TestWatcher_StartTwice(t *testing.T) {
	w := startWatcher(t, t.TempDir())
	assert.Error(t, w.Start())
}
