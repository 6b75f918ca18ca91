package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestJournalRecordAndList(t *testing.T) {
	j := openTemp(t)
	require.NotEmpty(t, j.RunID())

	require.NoError(t, j.RecordUpload("/assets/a.png", "https://cdn.example/a.png", "h1", 10))
	require.NoError(t, j.RecordUpload("/assets/b.png", "https://cdn.example/b.png", "h2", 20))
	require.NoError(t, j.RecordUpload("/assets/a.png", "https://cdn.example/a2.png", "h3", 30))

	entries, err := j.List(0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byPath := map[string]Entry{}
	for _, e := range entries {
		byPath[e.LocalPath] = e
		assert.Equal(t, j.RunID(), e.RunID)
		assert.False(t, e.UploadedAt.IsZero())
	}
	assert.Equal(t, "https://cdn.example/a2.png", byPath["/assets/a.png"].RemoteURL)
	assert.Equal(t, int64(30), byPath["/assets/a.png"].Size)
	assert.Equal(t, "h2", byPath["/assets/b.png"].Hash)

	limited, err := j.List(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestJournalReset(t *testing.T) {
	j := openTemp(t)
	require.NoError(t, j.RecordUpload("/a", "u1", "", 1))
	require.NoError(t, j.RecordUpload("/b", "u2", "", 2))

	n, err := j.Reset("/a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = j.Reset("")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	entries, err := j.List(0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
