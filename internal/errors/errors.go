// Package errors defines the sentinel errors used across TaskBoard and the
// helpers that wrap them at package boundaries.
//
// This package must not import any other internal package.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic categorization with errors.Is.
var (
	// ErrSourceNotConfigured indicates that the dataset source lacks a
	// required setting (database URL, credentials, file path).
	ErrSourceNotConfigured = errors.New("dataset source not configured")

	// ErrCredentialsInvalid indicates that the service account credentials
	// could not be decoded or parsed.
	ErrCredentialsInvalid = errors.New("invalid credentials")

	// ErrFetchFailed indicates that the remote store could not be reached or
	// answered with a non-success status.
	ErrFetchFailed = errors.New("dataset fetch failed")

	// ErrDecodeFailed indicates that the dataset payload was not a
	// workspace -> date -> task object tree.
	ErrDecodeFailed = errors.New("dataset decode failed")

	// ErrUnknownSource indicates an unsupported source.kind value.
	ErrUnknownSource = errors.New("unknown dataset source")

	// ErrInvalidEvent indicates an unrecognized navigation event name.
	ErrInvalidEvent = errors.New("invalid navigation event")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrInvalidConfig indicates an out-of-range configuration value.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text)
}

// Wrap adds context to errors at package boundaries. It returns nil if err
// is nil, so it is safe to use inline:
//
//	return errors.Wrap(err, "failed to open snapshot")
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
