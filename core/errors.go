package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrSnapshotNotFound is returned by a SnapshotStore when nothing is stored under a key.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			return err.Fields[0].Field + ": " + err.Fields[0].Error
		}
		return ""
	}
	return err.Err.Error()
}

// LoadError reports that the initial load could not complete.
// Source names the fixture or snapshot that failed.
type LoadError struct {
	Source string
	Err    error
}

func NewLoadError(source string, err error) error {
	return &LoadError{Source: source, Err: err}
}

func (err *LoadError) Error() string {
	return fmt.Sprintf("loading %s: %v", err.Source, err.Err)
}

func (err *LoadError) Cause() error { return err.Err }

func IsLoadError(err error) bool {
	var lErr *LoadError
	return errors.As(err, &lErr)
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
