package scene_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/viewgeom/engine/core"
	"github.com/spaghettifunk/viewgeom/engine/scene"
)

const watchTimeout = 5 * time.Second

func writeScene(t *testing.T, path string, width int) {
	t.Helper()
	data := fmt.Sprintf(`
name: watched
viewport: {width: %d, height: 100}
projection: {kind: orthographic, left: -1, right: 1, bottom: -1, top: 1, near: -1, far: 1}
queries:
  - {kind: project, point: [0, 0, 0]}
`, width)
	tmp := path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, []byte(data), 0o644))
	require.NoError(t, os.Rename(tmp, path))
}

// nextReport skips errors (a half-written file may fail to parse) until a
// report matching want arrives.
func nextReport(t *testing.T, w *scene.Watcher, want func(*scene.Report) bool) *scene.Report {
	t.Helper()
	deadline := time.After(watchTimeout)
	for {
		select {
		case r, ok := <-w.Reports():
			require.True(t, ok, "reports closed")
			if want(r) {
				return r
			}
		case err, ok := <-w.Errors():
			require.True(t, ok, "errors closed")
			t.Logf("watcher error: %s", err)
		case <-deadline:
			t.Fatal("timed out waiting for a scene report")
			return nil
		}
	}
}

func centerX(want float64) func(*scene.Report) bool {
	return func(r *scene.Report) bool {
		return len(r.Results) == 1 && r.Results[0].Output.X == want
	}
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	writeScene(t, path, 200)

	ev := scene.NewEvaluator()
	w, err := scene.NewWatcher(context.Background(), path, ev)
	require.NoError(t, err)
	defer w.Close()

	first := nextReport(t, w, centerX(100))
	assert.Equal(t, "watched", first.Scene)

	writeScene(t, path, 400)
	second := nextReport(t, w, centerX(200))
	assert.NotEqual(t, first.RunID, second.RunID)
	assert.GreaterOrEqual(t, ev.Metrics().Evaluations(), uint64(2))

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("name: other\n"), 0o644))
	select {
	case r := <-w.Reports():
		t.Fatalf("unexpected report for %q", r.Scene)
	case <-time.After(200 * time.Millisecond):
	}

	require.NoError(t, w.Close())
	_, ok := <-w.Reports()
	assert.False(t, ok)
	require.NoError(t, w.Close())
}

func TestWatcherContext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	writeScene(t, path, 200)

	ctx, cancel := context.WithCancel(context.Background())
	w, err := scene.NewWatcher(ctx, path, nil)
	require.NoError(t, err)

	nextReport(t, w, centerX(100))
	cancel()

	select {
	case _, ok := <-w.Reports():
		assert.False(t, ok)
	case <-time.After(watchTimeout):
		t.Fatal("watcher did not stop on cancel")
	}
	require.NoError(t, w.Close())
}

func TestWatcherErrors(t *testing.T) {
	_, err := scene.NewWatcher(context.Background(), "scene.ini", nil)
	assert.ErrorIs(t, err, core.ErrUnknownFormat)

	dir := t.TempDir()
	path := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("mode = \"fuzzy\"\n"), 0o644))

	w, err := scene.NewWatcher(context.Background(), path, nil)
	require.NoError(t, err)
	defer w.Close()

	select {
	case err := <-w.Errors():
		assert.ErrorContains(t, err, "fuzzy")
	case <-time.After(watchTimeout):
		t.Fatal("expected a load error")
	}
}
