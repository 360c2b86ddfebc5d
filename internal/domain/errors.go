package domain

import (
	"errors"
	"fmt"
)

var (
	ErrTargetPathUnset    = errors.New("instance directory path is unset")
	ErrTargetPathMissing  = errors.New("instance directory does not exist")
	ErrUnknownRelease     = errors.New("unknown release")
	ErrNoMatchingRuntime  = errors.New("no matching runtime")
	ErrRuntimeNotFound    = errors.New("runtime not found")
	ErrInstanceNotFound   = errors.New("instance not found")
	ErrGatherNotConverged = errors.New("gather did not converge")
	ErrGatherSuperseded   = errors.New("gather superseded by a newer session")
	ErrStreamClosed       = errors.New("producer stream closed before completion")
)

// PreconditionError reports a gather that could not start.
type PreconditionError struct {
	Path string
	Err  error
}

func (e *PreconditionError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}

	return fmt.Sprintf("%s: %s", e.Err, e.Path)
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// SelectionError reports why no runtime could be chosen for a release.
type SelectionError struct {
	ReleaseID string
	Err       error
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("select runtime for %q: %s", e.ReleaseID, e.Err)
}

func (e *SelectionError) Unwrap() error {
	return e.Err
}

// ProducerError wraps a failed request to the producer backend.
type ProducerError struct {
	Op  string
	Err error
}

func (e *ProducerError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *ProducerError) Unwrap() error {
	return e.Err
}
