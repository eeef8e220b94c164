// Package errors provides standardized error handling for filenest.
// It defines the error kinds used across the organization pipeline and
// helpers for consistent creation, wrapping, and inspection.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package functions re-exported for convenience.
var (
	Unwrap = errors.Unwrap
	Is     = errors.Is
	As     = errors.As
)

// ErrorKind classifies an error by the pipeline stage that produced it.
type ErrorKind int

const (
	Unknown ErrorKind = iota
	// Scanner
	ScanFailed
	// Rule matching
	NoRuleMatched
	InvalidRule
	// Fingerprinting
	FingerprintFailed
	// Execution
	MoveFailed
	JournalFailed
	// Undo
	UndoReplayFailed
	// Configuration
	InvalidProfile
	ProfileNotFound
)

// ApplicationError is the base error type for all filenest errors.
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message.
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error.
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error.
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// FileError is an error attributable to exactly one file.
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error.
func NewFileError(msg, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{msg: msg, err: err, kind: kind},
		path:             path,
	}
}

// Error returns the file error message including the path.
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error.
func (e *FileError) Path() string {
	return e.path
}

// ProfileError is an error in a profile or one of its rules.
type ProfileError struct {
	ApplicationError
	profile string
	rule    string
}

// NewProfileError creates a new profile error. rule may be empty when
// the problem is not specific to one rule.
func NewProfileError(msg, profile, rule string, kind ErrorKind, err error) *ProfileError {
	return &ProfileError{
		ApplicationError: ApplicationError{msg: msg, err: err, kind: kind},
		profile:          profile,
		rule:             rule,
	}
}

// Error returns the profile error message.
func (e *ProfileError) Error() string {
	switch {
	case e.rule != "":
		return fmt.Sprintf("%s: profile %q rule %q", e.ApplicationError.Error(), e.profile, e.rule)
	case e.profile != "":
		return fmt.Sprintf("%s: profile %q", e.ApplicationError.Error(), e.profile)
	}
	return e.ApplicationError.Error()
}

// Profile returns the profile name associated with the error.
func (e *ProfileError) Profile() string {
	return e.profile
}

// Rule returns the rule name associated with the error, if any.
func (e *ProfileError) Rule() string {
	return e.rule
}

// New creates a new error with a message.
func New(msg string) error {
	return &ApplicationError{msg: msg, kind: Unknown}
}

// Newf creates a new error with a formatted message.
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{msg: fmt.Sprintf(format, args...), kind: Unknown}
}

// Wrap wraps an existing error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{msg: msg, err: err, kind: Unknown}
}

// Wrapf wraps an existing error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{msg: fmt.Sprintf(format, args...), err: err, kind: Unknown}
}

// KindOf returns the kind of err, or Unknown for foreign errors.
func KindOf(err error) ErrorKind {
	var app interface{ Kind() ErrorKind }
	if errors.As(err, &app) {
		return app.Kind()
	}
	return Unknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
