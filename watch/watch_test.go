package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, events <-chan Event, want int) []Event {
	t.Helper()
	var got []Event
	deadline := time.After(5 * time.Second)
	for len(got) < want {
		select {
		case ev, ok := <-events:
			if !ok {
				return got
			}
			got = append(got, ev)
		case <-deadline:
			t.Fatalf("timed out with %d of %d events", len(got), want)
		}
	}
	return got
}

func TestWatcherSeesExternalWrite(t *testing.T) {
	dir := t.TempDir()
	w := New(dir)
	events := make(chan Event, 16)
	require.NoError(t, w.Start(events))
	defer w.Stop()

	path := filepath.Join(dir, "rep_persistentgamedata1.dat")
	require.NoError(t, os.WriteFile(path, []byte("save"), 0o644))

	got := collect(t, events, 1)
	require.Equal(t, path, got[0].Path)
}

func TestWatcherFiltersByPattern(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, "*.dat")
	events := make(chan Event, 16)
	require.NoError(t, w.Start(events))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "slot2.dat"), []byte("x"), 0o644))

	got := collect(t, events, 1)
	require.Equal(t, filepath.Join(dir, "slot2.dat"), got[0].Path)

	require.NoError(t, w.Stop())
	// channel closes once the goroutine drains
	for range events {
	}
}

func TestWatcherStartTwice(t *testing.T) {
	dir := t.TempDir()
	w := New(dir)
	events := make(chan Event, 1)
	require.NoError(t, w.Start(events))
	defer w.Stop()
	require.Error(t, w.Start(make(chan Event, 1)))
}

func TestWatcherStopIdempotent(t *testing.T) {
	w := New(t.TempDir())
	require.NoError(t, w.Stop(), "stopping a never-started watcher is a no-op")

	events := make(chan Event, 1)
	require.NoError(t, w.Start(events))
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}

func TestWatcherBadDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing"))
	err := w.Start(make(chan Event, 1))
	require.Error(t, err)
}
