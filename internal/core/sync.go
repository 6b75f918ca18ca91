package core

import (
	"context"
	"errors"
	"fmt"
)

// Summary counts what a run did. In simulation mode Updated counts records
// that would have been written.
type Summary struct {
	Games    int
	Records  int
	Updated  int
	Failed   int
	Invalid  int
	Uploaded int
	Cached   int
	Missing  int
}

// Synchronizer rewrites local image references in records to CDN URLs.
// Records and fields are processed strictly one at a time.
type Synchronizer struct {
	store    *Store
	resolver *Resolver
	logger   Logger
	stats    Summary
}

func NewSynchronizer(store *Store, resolver *Resolver, logger Logger) *Synchronizer {
	return &Synchronizer{
		store:    store,
		resolver: resolver,
		logger:   orNop(logger),
	}
}

func (s *Synchronizer) Summary() Summary {
	return s.stats
}

// ProcessRecord resolves every local reference of rec and rewrites it in
// place. A missing file leaves its field alone. An upload failure stops the
// record and is returned; fields already rewritten stay rewritten in memory.
func (s *Synchronizer) ProcessRecord(ctx context.Context, rec *Record, label string) (bool, error) {
	changed := false
	for _, ref := range ExtractReferences(rec) {
		if !IsLocalReference(ref.Value) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return changed, err
		}

		res, err := s.resolver.Resolve(ctx, ref.Value)
		if err != nil {
			var nf *NotFoundError
			if errors.As(err, &nf) {
				s.stats.Missing++
				s.logger.Warningf("[%s] missing: %s (%s)", label, nf.Path, ref.Locator)
				continue
			}
			s.logger.Errorf("[%s] failed: %s: %v", label, ref.Value, err)
			return changed, err
		}

		if res.Cached {
			s.stats.Cached++
		} else {
			s.stats.Uploaded++
		}
		if err := rec.SetReference(ref.Locator, res.URL); err != nil {
			return changed, fmt.Errorf("[%s] %w", label, err)
		}
		debugLog(s.logger, "[%s] %s -> %s", label, ref.Locator, res.URL)
		changed = true
	}
	return changed, nil
}

// ProcessFile loads one record, processes it and writes it back when it
// changed, unless simulating.
func (s *Synchronizer) ProcessFile(ctx context.Context, file RecordFile) (bool, error) {
	s.stats.Records++
	rec, err := s.store.Load(file.Path)
	if err != nil {
		return false, err
	}

	changed, err := s.ProcessRecord(ctx, rec, file.Label())
	if err != nil {
		return changed, err
	}
	if !changed {
		return false, nil
	}

	if s.resolver.Simulated() {
		s.logger.Infof("[%s] would update %q", file.Label(), rec.Name)
	} else {
		if err := s.store.Save(file.Path, rec); err != nil {
			return changed, err
		}
		s.logger.Infof("[%s] updated %q", file.Label(), rec.Name)
	}
	s.stats.Updated++
	return true, nil
}

// ProcessCollection processes files in order. Upload failures and invalid
// records are reported and skipped; any other error ends the run.
func (s *Synchronizer) ProcessCollection(ctx context.Context, files []RecordFile) error {
	for _, f := range files {
		_, err := s.ProcessFile(ctx, f)
		switch {
		case err == nil:
		case errors.Is(err, ErrUploadFailed):
			s.stats.Failed++
			s.logger.Warningf("[%s] not updated: %v", f.Label(), err)
		case errors.Is(err, ErrInvalidRecord):
			s.stats.Invalid++
			s.logger.Warningf("[%s] skipped: %v", f.Label(), err)
		default:
			return err
		}
	}
	return nil
}

// Run processes every record of every entity folder of the selected games.
func (s *Synchronizer) Run(ctx context.Context, gameFilter string) (Summary, error) {
	games, err := s.store.Games(gameFilter)
	if err != nil {
		return s.stats, err
	}
	for _, game := range games {
		s.stats.Games++
		for _, kind := range EntityKinds {
			files, err := s.store.RecordFiles(game, kind)
			if err != nil {
				return s.stats, err
			}
			if len(files) == 0 {
				debugLog(s.logger, "[%s/%s] no records", game, kind)
				continue
			}
			if err := s.ProcessCollection(ctx, files); err != nil {
				return s.stats, err
			}
		}
	}
	return s.stats, nil
}
