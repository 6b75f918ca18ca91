package core

import (
	"context"
	"fmt"
	"testing"

	"github.com/cleverdata/asset-sync/internal/api"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const battlefield = `{"name": "Battlefield", "variants": [{"images": {"thumbnail": "../assets/bf.png"}}]}`

func readFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}

// recordingLogger keeps warnings and errors so tests can check what a run
// reported.
type recordingLogger struct {
	nopLogger
	warnings []string
	errors   []string
}

func (l *recordingLogger) Warningf(format string, v ...interface{}) error {
	l.warnings = append(l.warnings, fmt.Sprintf(format, v...))
	return nil
}

func (l *recordingLogger) Errorf(format string, v ...interface{}) error {
	l.errors = append(l.errors, fmt.Sprintf(format, v...))
	return nil
}

func newSync(fs afero.Fs, up Uploader, opts ...ResolverOption) (*Synchronizer, *Resolver) {
	return newLoggedSync(fs, up, nil, opts...)
}

func newLoggedSync(fs afero.Fs, up Uploader, logger Logger, opts ...ResolverOption) (*Synchronizer, *Resolver) {
	res := NewResolver(fs, "/work/repo", up, NewCache(), opts...)
	return NewSynchronizer(NewStore(fs, "/work/repo/games"), res, logger), res
}

func TestProcessFileRewritesAndPersists(t *testing.T) {
	fs := newTestFs(t, map[string]string{
		"/work/assets/bf.png":                           "png",
		"/work/repo/games/ssbu/stages/battlefield.json": battlefield,
	})
	s, _ := newSync(fs, &stubUploader{})

	file := RecordFile{Game: "ssbu", Kind: "stages", Path: "/work/repo/games/ssbu/stages/battlefield.json"}
	changed, err := s.ProcessFile(context.Background(), file)
	require.NoError(t, err)
	assert.True(t, changed)

	assert.Equal(t, `{
  "name": "Battlefield",
  "variants": [
    {
      "images": {
        "thumbnail": "https://cdn.example/bf.png"
      }
    }
  ]
}
`, readFile(t, fs, file.Path))

	exists, err := afero.Exists(fs, file.Path+".tmp")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestProcessFileMissingImage(t *testing.T) {
	fs := newTestFs(t, map[string]string{
		"/work/repo/games/ssbu/stages/battlefield.json": battlefield,
	})
	up := &stubUploader{}
	logger := &recordingLogger{}
	s, _ := newLoggedSync(fs, up, logger)

	file := RecordFile{Game: "ssbu", Kind: "stages", Path: "/work/repo/games/ssbu/stages/battlefield.json"}
	changed, err := s.ProcessFile(context.Background(), file)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, battlefield, readFile(t, fs, file.Path))
	assert.Equal(t, 1, s.Summary().Missing)
	assert.Empty(t, up.calls)

	require.Len(t, logger.warnings, 1)
	assert.Contains(t, logger.warnings[0], "missing: /work/assets/bf.png")
	assert.Contains(t, logger.warnings[0], "ssbu/stages/battlefield.json")
	assert.Empty(t, logger.errors)
}

func TestProcessRecordSkipsMissingKeepsOthers(t *testing.T) {
	fs := newTestFs(t, map[string]string{"/work/a.png": "a"})
	s, _ := newSync(fs, &stubUploader{})

	rec, err := ParseRecord([]byte(`{"images": {"thumbnail": "/work/gone.png", "icon": "/work/a.png", "portrait": "https://cdn.example/p.png"}}`))
	require.NoError(t, err)

	changed, err := s.ProcessRecord(context.Background(), rec, "test")
	require.NoError(t, err)
	assert.True(t, changed)

	thumb, _ := rec.Images.Get(RoleThumbnail)
	icon, _ := rec.Images.Get(RoleIcon)
	portrait, _ := rec.Images.Get(RolePortrait)
	assert.Equal(t, "/work/gone.png", thumb)
	assert.Equal(t, "https://cdn.example/a.png", icon)
	assert.Equal(t, "https://cdn.example/p.png", portrait)
}

func TestProcessRecordStopsOnUploadFailure(t *testing.T) {
	fs := newTestFs(t, map[string]string{"/work/a.png": "a", "/work/b.png": "b", "/work/c.png": "c"})
	up := &stubUploader{fail: map[string]error{"b.png": &api.StatusError{Status: 500, Reason: "boom"}}}
	s, _ := newSync(fs, up)

	rec, err := ParseRecord([]byte(`{"images": {"thumbnail": "/work/a.png", "icon": "/work/b.png", "portrait": "/work/c.png"}}`))
	require.NoError(t, err)

	changed, err := s.ProcessRecord(context.Background(), rec, "test")
	assert.ErrorIs(t, err, ErrUploadFailed)
	assert.True(t, changed)
	assert.Equal(t, []string{"a.png", "b.png"}, up.calls)

	thumb, _ := rec.Images.Get(RoleThumbnail)
	assert.Equal(t, "https://cdn.example/a.png", thumb)
}

func TestRunIsolatesRecordFailures(t *testing.T) {
	a := `{"name": "A", "images": {"thumbnail": "../assets/a.png"}}`
	b := `{"name": "B", "images": {"thumbnail": "../assets/b.png"}}`
	fs := newTestFs(t, map[string]string{
		"/work/assets/a.png":                      "a",
		"/work/assets/b.png":                      "b",
		"/work/repo/games/ssbu/characters/a.json": a,
		"/work/repo/games/ssbu/characters/b.json": b,
	})
	up := &stubUploader{fail: map[string]error{"b.png": &api.StatusError{Status: 502, Reason: "bad gateway"}}}
	logger := &recordingLogger{}
	s, _ := newLoggedSync(fs, up, logger)

	summary, err := s.Run(context.Background(), "")
	require.NoError(t, err)

	assert.Contains(t, readFile(t, fs, "/work/repo/games/ssbu/characters/a.json"), "https://cdn.example/a.png")
	assert.Equal(t, b, readFile(t, fs, "/work/repo/games/ssbu/characters/b.json"))
	assert.Equal(t, Summary{Games: 1, Records: 2, Updated: 1, Failed: 1, Uploaded: 1}, summary)

	require.Len(t, logger.warnings, 1)
	assert.Contains(t, logger.warnings[0], "[ssbu/characters/b.json] not updated")
	assert.Contains(t, logger.warnings[0], "/work/assets/b.png")
	assert.Contains(t, logger.warnings[0], "status 502: bad gateway")
}

func TestRunSharesUploadsAcrossRecords(t *testing.T) {
	shared := `{"name": "%s", "images": {"thumbnail": "../assets/shared.png", "icon": "../assets/shared.png"}}`
	fs := newTestFs(t, map[string]string{
		"/work/assets/shared.png":                 "s",
		"/work/repo/games/melee/stages/one.json":  shared,
		"/work/repo/games/melee/stages/two.json":  shared,
		"/work/repo/games/ssbu/stages/three.json": shared,
	})
	up := &stubUploader{}
	s, _ := newSync(fs, up)

	summary, err := s.Run(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"shared.png"}, up.calls)
	assert.Equal(t, 2, summary.Games)
	assert.Equal(t, 3, summary.Updated)
	assert.Equal(t, 1, summary.Uploaded)
	assert.Equal(t, 5, summary.Cached)
}

func TestRunSimulationIsPure(t *testing.T) {
	files := map[string]string{
		"/work/assets/a.png":                        "a",
		"/work/assets/b.png":                        "b",
		"/work/repo/games/ssbu/characters/a.json":   `{"name": "A", "images": {"thumbnail": "../assets/a.png"}}`,
		"/work/repo/games/ssbu/stages/b.json":       `{"name": "B", "variants": [{"images": {"thumbnail": "../assets/b.png"}}]}`,
		"/work/repo/games/ssbu/stages/missing.json": `{"name": "M", "images": {"thumbnail": "../assets/none.png"}}`,
		"/work/repo/games/ssbu/stages/done.json":    `{"name": "D", "images": {"thumbnail": "https://cdn.example/d.png"}}`,
	}

	base := newTestFs(t, files)
	simFs := afero.NewReadOnlyFs(base)
	simUp := &stubUploader{}
	sim, _ := newSync(simFs, simUp, WithSimulation("https://api.example"))
	simSummary, err := sim.Run(context.Background(), "")
	require.NoError(t, err)

	assert.Empty(t, simUp.calls)
	for path, content := range files {
		assert.Equal(t, content, readFile(t, base, path), path)
	}

	realSync, _ := newSync(newTestFs(t, files), &stubUploader{})
	realSummary, err := realSync.Run(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, realSummary, simSummary)
	assert.Equal(t, 2, simSummary.Updated)
	assert.Equal(t, 1, simSummary.Missing)
}

func TestRunSkipsInvalidRecords(t *testing.T) {
	fs := newTestFs(t, map[string]string{
		"/work/assets/a.png":                         "a",
		"/work/repo/games/ssbu/characters/a.json":    `{"name": "A", "images": {"thumbnail": "../assets/a.png"}}`,
		"/work/repo/games/ssbu/characters/bad.json":  `{"name": `,
		"/work/repo/games/ssbu/characters/notes.txt": "not a record",
	})
	s, _ := newSync(fs, &stubUploader{})

	summary, err := s.Run(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Invalid)
	assert.Equal(t, 1, summary.Updated)
	assert.Equal(t, 2, summary.Records)
}

func TestRunGameFilterAndAbsentFolders(t *testing.T) {
	fs := newTestFs(t, map[string]string{
		"/work/assets/a.png":                   "a",
		"/work/repo/games/ssbu/stages/a.json":  `{"images": {"thumbnail": "../assets/a.png"}}`,
		"/work/repo/games/melee/stages/a.json": `{"images": {"thumbnail": "../assets/a.png"}}`,
	})
	require.NoError(t, fs.MkdirAll("/work/repo/games/empty", 0755))

	s, _ := newSync(fs, &stubUploader{})
	summary, err := s.Run(context.Background(), "ssbu")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Games)
	assert.Equal(t, 1, summary.Updated)
	assert.Contains(t, readFile(t, fs, "/work/repo/games/melee/stages/a.json"), "../assets/a.png")

	s, _ = newSync(fs, &stubUploader{})
	summary, err = s.Run(context.Background(), "nope")
	require.NoError(t, err)
	assert.Equal(t, Summary{}, summary)

	s, _ = newSync(fs, &stubUploader{})
	summary, err = s.Run(context.Background(), "empty")
	require.NoError(t, err)
	assert.Equal(t, Summary{Games: 1}, summary)
}

func TestRunMissingGamesDirIsFatal(t *testing.T) {
	s, _ := newSync(afero.NewMemMapFs(), &stubUploader{})
	_, err := s.Run(context.Background(), "")
	assert.Error(t, err)
}
