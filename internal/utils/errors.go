package utils

import (
	"errors"
	"fmt"
)

// ErrArtifact matches any AppError raised while producing a fixture file.
var ErrArtifact = errors.New("artifact failed")

// AppError ties a failure to the operation that hit it and, when a fixture
// file was being produced, to that artifact.
type AppError struct {
	Op       string
	Artifact string
	Msg      string
	Err      error
}

func (e *AppError) Error() string {
	op := e.Op
	if e.Artifact != "" {
		op += " " + e.Artifact
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", op, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %v", op, e.Msg, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrArtifact) single out artifact failures.
func (e *AppError) Is(target error) bool {
	return target == ErrArtifact && e.Artifact != ""
}

// NewAppError constructs an AppError. A nil err with an empty msg yields nil
// so callers can wrap results unconditionally.
func NewAppError(op, msg string, err error) error {
	if err == nil && msg == "" {
		return nil
	}
	return &AppError{Op: op, Msg: msg, Err: err}
}

// NewArtifactError records a failure to render or write artifact.
func NewArtifactError(op, artifact, msg string, err error) error {
	return &AppError{Op: op, Artifact: artifact, Msg: msg, Err: err}
}

// ArtifactOf returns the artifact named in err's chain, or "".
func ArtifactOf(err error) string {
	var app *AppError
	for errors.As(err, &app) {
		if app.Artifact != "" {
			return app.Artifact
		}
		err = app.Err
	}
	return ""
}
