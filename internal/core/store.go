package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// EntityKinds are the record folders scanned inside every game directory.
var EntityKinds = []string{"characters", "stages"}

// ErrInvalidRecord marks a record file that could not be read or parsed.
var ErrInvalidRecord = errors.New("invalid record")

// RecordFile is one metadata document on disk.
type RecordFile struct {
	Game string
	Kind string
	Path string
}

func (f RecordFile) Label() string {
	return fmt.Sprintf("%s/%s/%s", f.Game, f.Kind, filepath.Base(f.Path))
}

// Store reads and writes records under a games directory laid out as
// <root>/<game>/<kind>/<name>.json.
type Store struct {
	fs   afero.Fs
	root string
}

func NewStore(fs afero.Fs, root string) *Store {
	return &Store{fs: fs, root: root}
}

func (s *Store) Root() string {
	return s.root
}

// Games lists game directories in name order. A non-empty filter selects at
// most that one game.
func (s *Store) Games(filter string) ([]string, error) {
	entries, err := afero.ReadDir(s.fs, s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to list games in %s: %w", s.root, err)
	}
	var games []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if filter != "" && e.Name() != filter {
			continue
		}
		games = append(games, e.Name())
	}
	sort.Strings(games)
	return games, nil
}

// Dir returns the folder holding records of kind for game.
func (s *Store) Dir(game, kind string) string {
	return filepath.Join(s.root, game, kind)
}

// RecordFiles lists the *.json files of one entity folder. A missing folder
// has no records.
func (s *Store) RecordFiles(game, kind string) ([]RecordFile, error) {
	dir := s.Dir(game, kind)
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	var files []RecordFile
	for _, e := range entries {
		if e.IsDir() || !isRecordName(e.Name()) {
			continue
		}
		files = append(files, RecordFile{Game: game, Kind: kind, Path: filepath.Join(dir, e.Name())})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

func isRecordName(name string) bool {
	return !strings.HasPrefix(name, ".") && strings.HasSuffix(name, ".json")
}

func (s *Store) Load(path string) (*Record, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRecord, path, err)
	}
	rec, err := ParseRecord(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRecord, path, err)
	}
	return rec, nil
}

// Save replaces the file at path with the serialized record. The content is
// written to a sibling temp file first so a failed write leaves the old
// record intact.
func (s *Store) Save(path string, rec *Record) error {
	data, err := rec.Marshal()
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", path, err)
	}
	tmp := path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		s.fs.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
