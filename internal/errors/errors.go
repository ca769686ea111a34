package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for classifying failures with errors.Is.
var (
	// ErrInvalidConfiguration indicates a missing or invalid configuration value.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrRepository indicates commit metadata could not be read.
	ErrRepository = errors.New("repository error")

	// ErrFilesystem indicates a directory or diary file operation failed.
	ErrFilesystem = errors.New("filesystem error")

	// ErrNoCommits indicates HEAD does not point at a commit yet.
	ErrNoCommits = errors.New("repository has no commits")
)

// New wraps errors.New.
func New(message string) error {
	return errors.New(message)
}

// Is wraps errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// ConfigError reports an invalid configuration parameter.
type ConfigError struct {
	Parameter string
	Value     any
	Err       error
}

func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("configuration error for %s = %v: %v", e.Parameter, e.Value, e.Err)
	}
	return fmt.Sprintf("configuration error for %s: %v", e.Parameter, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Is makes every ConfigError match ErrInvalidConfiguration.
func (e *ConfigError) Is(target error) bool { return target == ErrInvalidConfiguration }

// NewConfigError creates a ConfigError. A nil value is omitted from the message.
func NewConfigError(parameter string, value any, err error) *ConfigError {
	return &ConfigError{Parameter: parameter, Value: value, Err: err}
}

// RepositoryError reports a failure reading commit metadata.
type RepositoryError struct {
	Path string
	Op   string
	Err  error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository %s: %s: %v", e.Path, e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() error { return e.Err }

func (e *RepositoryError) Is(target error) bool { return target == ErrRepository }

// NewRepositoryError creates a RepositoryError.
func NewRepositoryError(path, op string, err error) *RepositoryError {
	return &RepositoryError{Path: path, Op: op, Err: err}
}

// FilesystemError reports a failed directory or file operation.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("storage error %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

func (e *FilesystemError) Is(target error) bool { return target == ErrFilesystem }

// NewFilesystemError creates a FilesystemError.
func NewFilesystemError(op, path string, err error) *FilesystemError {
	return &FilesystemError{Op: op, Path: path, Err: err}
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case Is(err, ErrInvalidConfiguration):
		return 2
	case Is(err, ErrRepository):
		return 3
	case Is(err, ErrFilesystem):
		return 4
	default:
		return 1
	}
}
