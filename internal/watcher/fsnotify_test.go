package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSNotifyWatcher_Defaults(t *testing.T) {
	w, err := NewFSNotifyWatcher(nil, 0)
	require.NoError(t, err)
	defer w.Stop()

	assert.Len(t, w.extensions, 5)
	assert.Equal(t, DefaultDebounce, w.debounce)
}

func TestFSNotifyWatcher_WatchDirectory(t *testing.T) {
	dir := t.TempDir()
	w, err := NewFSNotifyWatcher([]string{".md"}, 50*time.Millisecond)
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	events, err := w.Watch(ctx, dir)
	require.NoError(t, err)

	go func() {
		time.Sleep(100 * time.Millisecond)
		_ = os.WriteFile(filepath.Join(dir, "samarkand.md"), []byte("# Samarkand"), 0o644)
	}()

	select {
	case event := <-events:
		assert.Equal(t, filepath.Join(dir, "samarkand.md"), event.Path)
	case <-ctx.Done():
		t.Fatal("timeout waiting for event")
	}
}

func TestFSNotifyWatcher_CoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	w, err := NewFSNotifyWatcher([]string{".md"}, 200*time.Millisecond)
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	events, err := w.Watch(ctx, dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "notes.md")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte{byte('a' + i)}, 0o644))
	}

	select {
	case <-events:
	case <-ctx.Done():
		t.Fatal("timeout waiting for event")
	}
	select {
	case e := <-events:
		t.Errorf("expected a single coalesced event, got extra %+v", e)
	case <-time.After(400 * time.Millisecond):
	}
}

func TestFSNotifyWatcher_FiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	w, err := NewFSNotifyWatcher([]string{".md"}, 50*time.Millisecond)
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	events, err := w.Watch(ctx, dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "draft.txt"), []byte("x"), 0o644))

	select {
	case <-events:
		t.Error("should not receive event for .txt")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestFSNotifyWatcher_SingleFile(t *testing.T) {
	dir := t.TempDir()
	kb := filepath.Join(dir, "kb.json")
	require.NoError(t, os.WriteFile(kb, []byte("[]"), 0o644))

	w, err := NewFSNotifyWatcher([]string{".json"}, 50*time.Millisecond)
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	events, err := w.Watch(ctx, kb)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("[]"), 0o644))
	require.NoError(t, os.WriteFile(kb, []byte(`[{"id":"a"}]`), 0o644))

	select {
	case event := <-events:
		assert.Equal(t, kb, event.Path)
	case <-ctx.Done():
		t.Fatal("timeout waiting for event")
	}
}

func TestFSNotifyWatcher_MissingPath(t *testing.T) {
	w, err := NewFSNotifyWatcher(nil, 0)
	require.NoError(t, err)
	defer w.Stop()

	_, err = w.Watch(context.Background(), filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestFSNotifyWatcher_ExtensionsIgnoreCase(t *testing.T) {
	w, err := NewFSNotifyWatcher([]string{".MD", ".Txt"}, 0)
	require.NoError(t, err)
	defer w.Stop()

	assert.True(t, w.isWatchedExtension("notes/a.md"))
	assert.True(t, w.isWatchedExtension("notes/B.TXT"))
	assert.False(t, w.isWatchedExtension("notes/c.json"))
}

func TestFSNotifyWatcher_WatchCustomExtension(t *testing.T) {
	dir := t.TempDir()
	w, err := NewFSNotifyWatcher([]string{".TXT"}, 50*time.Millisecond)
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	events, err := w.Watch(ctx, dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "khiva.txt")
	require.NoError(t, os.WriteFile(path, []byte("Khiva"), 0o644))

	select {
	case event := <-events:
		assert.Equal(t, path, event.Path)
	case <-ctx.Done():
		t.Fatal("timeout waiting for event")
	}
}
