package core

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchPollingPicksUpChanges(t *testing.T) {
	fs := newTestFs(t, map[string]string{
		"/work/assets/a.png":                  "a",
		"/work/assets/b.png":                  "b",
		"/work/repo/games/ssbu/stages/a.json": `{"name": "A", "images": {"thumbnail": "https://cdn.example/a.png"}}`,
	})
	up := &stubUploader{}
	s, _ := newSync(fs, up)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Watch(ctx, []string{"ssbu"}, WatchOptions{
			SettlingDelay:   10 * time.Millisecond,
			PollingInterval: 20 * time.Millisecond,
			DisableFsnotify: true,
		})
	}()

	// Let the watcher take its initial snapshot before adding a record.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, afero.WriteFile(fs, "/work/repo/games/ssbu/stages/b.json",
		[]byte(`{"name": "B", "images": {"thumbnail": "../assets/b.png"}}`), 0644))

	assert.Eventually(t, func() bool {
		data, err := afero.ReadFile(fs, "/work/repo/games/ssbu/stages/b.json")
		return err == nil && strings.Contains(string(data), "https://cdn.example/b.png")
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestSettlerIgnoresStaleTimer(t *testing.T) {
	st := newSettler(time.Hour)
	defer st.stop()
	ctx := context.Background()

	require.True(t, st.arm(ctx, "/r/a.json", fileStamp{size: 1, mod: 1}))
	stale := settledFile{path: "/r/a.json", gen: st.pending["/r/a.json"].gen}

	// same stamp again: still waiting on the first timer
	assert.False(t, st.arm(ctx, "/r/a.json", fileStamp{size: 1, mod: 1}))

	require.True(t, st.arm(ctx, "/r/a.json", fileStamp{size: 2, mod: 2}))
	live := settledFile{path: "/r/a.json", gen: st.pending["/r/a.json"].gen}
	require.NotEqual(t, stale.gen, live.gen)

	assert.False(t, st.take(stale))
	assert.True(t, st.take(live))
	assert.False(t, st.take(live))
	assert.Empty(t, st.pending)
}

func TestSettlerDeliversAfterDelay(t *testing.T) {
	st := newSettler(5 * time.Millisecond)
	defer st.stop()

	require.True(t, st.arm(context.Background(), "/r/a.json", fileStamp{size: 1, mod: 1}))
	select {
	case f := <-st.ready:
		assert.Equal(t, "/r/a.json", f.path)
		assert.True(t, st.take(f))
	case <-time.After(2 * time.Second):
		t.Fatal("settling timer never fired")
	}
}
