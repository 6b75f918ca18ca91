package core

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
)

type WatchOptions struct {
	SettlingDelay   time.Duration
	PollingInterval time.Duration
	DisableFsnotify bool
}

type fileStamp struct {
	size int64
	mod  int64
}

type fileState struct {
	stamp fileStamp
	timer *time.Timer
	gen   uint64
}

// settledFile is sent when a settling timer fires. gen identifies the timer
// so a stopped timer that already fired can be told apart from the live one.
type settledFile struct {
	path string
	gen  uint64
}

// settler tracks the files waiting out their settling delay. It is owned by
// the orchestrator goroutine; only the timers it starts run elsewhere.
type settler struct {
	delay   time.Duration
	ready   chan settledFile
	pending map[string]*fileState
	gen     uint64
}

func newSettler(delay time.Duration) *settler {
	return &settler{
		delay:   delay,
		ready:   make(chan settledFile, 100),
		pending: make(map[string]*fileState),
	}
}

// arm (re)starts the settling timer for path. It reports false when path is
// already waiting with the same stamp.
func (st *settler) arm(ctx context.Context, path string, stamp fileStamp) bool {
	if cur, ok := st.pending[path]; ok {
		if cur.stamp == stamp {
			return false
		}
		cur.timer.Stop()
	}
	st.gen++
	settled := settledFile{path: path, gen: st.gen}
	st.pending[path] = &fileState{
		stamp: stamp,
		gen:   st.gen,
		timer: time.AfterFunc(st.delay, func() {
			select {
			case st.ready <- settled:
			case <-ctx.Done():
			}
		}),
	}
	return true
}

// take reports whether f comes from the live timer of its path and, if so,
// stops tracking the path.
func (st *settler) take(f settledFile) bool {
	cur, ok := st.pending[f.path]
	if !ok || cur.gen != f.gen {
		return false
	}
	delete(st.pending, f.path)
	return true
}

func (st *settler) stop() {
	for _, cur := range st.pending {
		cur.timer.Stop()
	}
}

// Watch re-processes record files of the given games whenever they change,
// until ctx is cancelled. Changed files wait out the settling delay first.
// All processing happens on one goroutine.
func (s *Synchronizer) Watch(ctx context.Context, games []string, opts WatchOptions) error {
	if opts.SettlingDelay <= 0 {
		opts.SettlingDelay = 2 * time.Second
	}
	if opts.PollingInterval <= 0 {
		opts.PollingInterval = time.Minute
	}

	type event struct {
		file  RecordFile
		stamp fileStamp
	}
	eventChan := make(chan event, 100)

	files := make(map[string]RecordFile)
	processed := make(map[string]fileStamp)

	stat := func(path string) (fileStamp, bool) {
		info, err := s.store.fs.Stat(path)
		if err != nil || info.IsDir() {
			return fileStamp{}, false
		}
		return fileStamp{size: info.Size(), mod: info.ModTime().UnixNano()}, true
	}

	scan := func() []event {
		var events []event
		for _, game := range games {
			for _, kind := range EntityKinds {
				found, err := s.store.RecordFiles(game, kind)
				if err != nil {
					s.logger.Warningf("[%s/%s] scan failed: %v", game, kind, err)
					continue
				}
				for _, f := range found {
					if st, ok := stat(f.Path); ok {
						events = append(events, event{file: f, stamp: st})
					}
				}
			}
		}
		return events
	}

	send := func(e event) {
		select {
		case eventChan <- e:
		case <-ctx.Done():
		}
	}

	// Everything already on disk was handled by the initial run.
	for _, e := range scan() {
		files[e.file.Path] = e.file
		processed[e.file.Path] = e.stamp
	}

	if !opts.DisableFsnotify {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		defer watcher.Close()

		for _, game := range games {
			for _, kind := range EntityKinds {
				dir := s.store.Dir(game, kind)
				if exists, _ := afero.DirExists(s.store.fs, dir); !exists {
					continue
				}
				if err := watcher.Add(dir); err != nil {
					s.logger.Warningf("failed to watch %s: %v", dir, err)
					continue
				}
				s.logger.Infof("[%s/%s] watching %s", game, kind, dir)
			}
		}

		go func() {
			for {
				select {
				case e, ok := <-watcher.Events:
					if !ok {
						return
					}
					if e.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 || !isRecordName(filepath.Base(e.Name)) {
						continue
					}
					debugLog(s.logger, "FSNOTIFY event (%v) for %s", e.Op, filepath.Base(e.Name))
					dir := filepath.Dir(e.Name)
					f := RecordFile{
						Game: filepath.Base(filepath.Dir(dir)),
						Kind: filepath.Base(dir),
						Path: e.Name,
					}
					if st, ok := stat(e.Name); ok {
						send(event{file: f, stamp: st})
					}
				case err, ok := <-watcher.Errors:
					if !ok {
						return
					}
					s.logger.Warningf("watcher error: %v", err)
				case <-ctx.Done():
					return
				}
			}
		}()
	} else {
		s.logger.Infof("FSNOTIFY disabled. Running in polling-only mode.")
	}

	// Poller
	go func() {
		ticker := time.NewTicker(opts.PollingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				debugLog(s.logger, "Starting backup directory scan...")
				for _, e := range scan() {
					send(e)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	settling := newSettler(opts.SettlingDelay)
	defer settling.stop()

	for {
		select {
		case e := <-eventChan:
			if last, ok := processed[e.file.Path]; ok && last == e.stamp {
				continue
			}
			files[e.file.Path] = e.file

			_, waiting := settling.pending[e.file.Path]
			if !settling.arm(ctx, e.file.Path, e.stamp) {
				continue
			}
			if waiting {
				debugLog(s.logger, "Metadata changed for %s. Resetting timer.", e.file.Label())
			} else {
				debugLog(s.logger, "Change detected: %s. Starting settling timer.", e.file.Label())
			}

		case ready := <-settling.ready:
			if !settling.take(ready) {
				continue
			}
			path := ready.path
			f := files[path]
			if err := s.ProcessCollection(ctx, []RecordFile{f}); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				s.logger.Errorf("[%s] %v", f.Label(), err)
			}
			// Our own write must not trigger another pass.
			if st, ok := stat(path); ok {
				processed[path] = st
			} else {
				delete(processed, path)
			}

		case <-ctx.Done():
			return nil
		}
	}
}
