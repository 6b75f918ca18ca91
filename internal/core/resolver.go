package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/cleverdata/asset-sync/internal/api"
	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
)

// Uploader sends the bytes of one file to the CDN and returns its URL.
type Uploader interface {
	UploadImage(ctx context.Context, name string, data []byte) (string, error)
}

// UploadRecorder is told about every real upload. Failures to record are
// logged and otherwise ignored.
type UploadRecorder interface {
	RecordUpload(localPath, remoteURL, hash string, size int64) error
}

// Resolution is the outcome of resolving one local reference.
type Resolution struct {
	URL       string
	Path      string
	Cached    bool
	Simulated bool
}

type Resolver struct {
	fs       afero.Fs
	root     string
	cache    *Cache
	uploader Uploader
	recorder UploadRecorder
	logger   Logger

	simulate bool
	simBase  string

	uploads int
}

type ResolverOption func(*Resolver)

// WithSimulation makes the resolver fabricate URLs under baseURL instead of
// uploading.
func WithSimulation(baseURL string) ResolverOption {
	return func(r *Resolver) {
		r.simulate = true
		r.simBase = strings.TrimRight(baseURL, "/")
	}
}

func WithRecorder(rec UploadRecorder) ResolverOption {
	return func(r *Resolver) {
		r.recorder = rec
	}
}

func WithLogger(logger Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver resolves references relative to root. The cache is owned by
// the caller so one run can share it across every record it processes.
func NewResolver(fs afero.Fs, root string, uploader Uploader, cache *Cache, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		fs:       fs,
		root:     root,
		cache:    cache,
		uploader: uploader,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.cache == nil {
		r.cache = NewCache()
	}
	r.logger = orNop(r.logger)
	return r
}

// Simulated reports whether the resolver runs without network I/O.
func (r *Resolver) Simulated() bool {
	return r.simulate
}

// Uploads is the number of uploads (real or simulated) performed so far.
func (r *Resolver) Uploads() int {
	return r.uploads
}

// Normalize turns a reference into an absolute, cleaned path under root.
func (r *Resolver) Normalize(ref string) (string, error) {
	p := filepath.FromSlash(ref)
	if !filepath.IsAbs(p) {
		p = filepath.Join(r.root, p)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %q: %w", ref, err)
	}
	return abs, nil
}

// Resolve returns the remote URL for a local reference, uploading the file
// the first time its path is seen. Errors are *NotFoundError or
// *UploadFailedError.
func (r *Resolver) Resolve(ctx context.Context, ref string) (Resolution, error) {
	path, err := r.Normalize(ref)
	if err != nil {
		return Resolution{}, &UploadFailedError{Ref: ref, Path: ref, Reason: err.Error(), Err: err}
	}

	if url, ok := r.cache.Get(path); ok {
		r.logger.Infof("already cached: %s", ref)
		return Resolution{URL: url, Path: path, Cached: true, Simulated: r.simulate}, nil
	}

	// The read doubles as the existence check.
	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		if isNotExist(err) {
			return Resolution{}, &NotFoundError{Ref: ref, Path: path, Err: err}
		}
		return Resolution{}, &UploadFailedError{Ref: ref, Path: path, Reason: "read failed: " + err.Error(), Err: err}
	}

	var url string
	if r.simulate {
		url = r.simulatedURL(path)
		r.logger.Infof("would upload: %s (%s)", ref, humanize.Bytes(uint64(len(data))))
	} else {
		r.logger.Infof("uploading: %s (%s)", ref, humanize.Bytes(uint64(len(data))))
		url, err = r.uploader.UploadImage(ctx, filepath.Base(path), data)
		if err != nil {
			return Resolution{}, uploadFailed(ref, path, err)
		}
		r.logger.Infof("uploaded: %s -> %s", ref, url)
		r.record(path, url, data)
	}
	r.uploads++

	r.cache.Put(path, url)
	return Resolution{URL: url, Path: path, Simulated: r.simulate}, nil
}

func (r *Resolver) simulatedURL(path string) string {
	sum := sha256.Sum256([]byte(path))
	return fmt.Sprintf("%s/images/simulated/%s%s", r.simBase, hex.EncodeToString(sum[:])[:16], strings.ToLower(filepath.Ext(path)))
}

func (r *Resolver) record(path, url string, data []byte) {
	if r.recorder == nil {
		return
	}
	sum := sha256.Sum256(data)
	if err := r.recorder.RecordUpload(path, url, hex.EncodeToString(sum[:]), int64(len(data))); err != nil {
		r.logger.Warningf("failed to journal upload of %s: %v", path, err)
	}
}

// isNotExist also treats a path running through a regular file as absent.
func isNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}

func uploadFailed(ref, path string, err error) *UploadFailedError {
	e := &UploadFailedError{Ref: ref, Path: path, Reason: err.Error(), Err: err}
	var se *api.StatusError
	switch {
	case errors.As(err, &se):
		e.Status = se.Status
		e.Reason = se.Reason
	case errors.Is(err, api.ErrMissingURL):
		e.Reason = "malformed response: " + api.ErrMissingURL.Error()
	}
	return e
}
