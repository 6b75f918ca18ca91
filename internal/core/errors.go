package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks a local reference whose file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrUploadFailed marks a reference that could not be turned into a URL.
	ErrUploadFailed = errors.New("upload failed")
)

type NotFoundError struct {
	Ref  string
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s (referenced as %s)", ErrNotFound, e.Path, e.Ref)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func (e *NotFoundError) Unwrap() error { return e.Err }

// UploadFailedError carries the service status (0 when no response was
// received) and a readable reason.
type UploadFailedError struct {
	Ref    string
	Path   string
	Status int
	Reason string
	Err    error
}

func (e *UploadFailedError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s for %s: status %d: %s", ErrUploadFailed, e.Path, e.Status, e.Reason)
	}
	return fmt.Sprintf("%s for %s: %s", ErrUploadFailed, e.Path, e.Reason)
}

func (e *UploadFailedError) Is(target error) bool { return target == ErrUploadFailed }

func (e *UploadFailedError) Unwrap() error { return e.Err }
