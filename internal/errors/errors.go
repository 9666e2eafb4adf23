// Package errors provides standardized error handling for the NEXUS client.
// It defines the error kinds the orchestration layer distinguishes between
// (validation, transport, timeout, cancellation, configuration) and helper
// functions for consistent error creation, wrapping and classification.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Validation is raised locally before any request is made
	Validation
	// Transport covers network failures and non-success HTTP statuses
	Transport
	// TimedOut means the request deadline expired before a response arrived
	TimedOut
	// Canceled means the request was canceled through its token
	Canceled
	// ExecutionFailed is reported by the execute endpoint with success=false
	ExecutionFailed
	// Busy means an exclusive operation is already in flight
	Busy
	// Config error kinds
	InvalidConfig
	ConfigNotFound
	// Local file operations (watch/push, --from sources)
	FileOperationFailed
)

// String returns a short name for the kind
func (k ErrorKind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Transport:
		return "transport"
	case TimedOut:
		return "timed out"
	case Canceled:
		return "canceled"
	case ExecutionFailed:
		return "execution failed"
	case Busy:
		return "busy"
	case InvalidConfig:
		return "invalid config"
	case ConfigNotFound:
		return "config not found"
	case FileOperationFailed:
		return "file operation failed"
	default:
		return "unknown"
	}
}

// Common error constants for frequently occurring errors
var (
	ErrEmptyFilename = NewValidationError("please enter a filename", "filename")
	ErrInvalidConfig = NewConfigError("invalid configuration", "", InvalidConfig, nil)
	ErrBusy          = &ApplicationError{msg: "an execution is already in progress", kind: Busy}
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// Message returns the message without the wrapped cause
func (e *ApplicationError) Message() string {
	return e.msg
}

// ValidationError is a local input error caught before any request.
type ValidationError struct {
	ApplicationError
	field string
}

// NewValidationError creates a new validation error for field
func NewValidationError(msg string, field string) *ValidationError {
	return &ValidationError{
		ApplicationError: ApplicationError{
			msg:  msg,
			kind: Validation,
		},
		field: field,
	}
}

// Field returns the offending input field
func (e *ValidationError) Field() string {
	return e.field
}

// RequestError represents a failed round-trip to the File Service.
type RequestError struct {
	ApplicationError
	endpoint string
	status   int
}

// NewRequestError creates a new request error. status is 0 when no HTTP
// response was received.
func NewRequestError(msg string, endpoint string, status int, kind ErrorKind, err error) *RequestError {
	return &RequestError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		endpoint: endpoint,
		status:   status,
	}
}

// Error returns the request error message
func (e *RequestError) Error() string {
	base := e.msg
	if e.endpoint != "" {
		base = fmt.Sprintf("%s: %s", e.msg, e.endpoint)
	}
	if e.status != 0 {
		base = fmt.Sprintf("%s: status %d", base, e.status)
	}
	if e.err != nil {
		return fmt.Sprintf("%s: %v", base, e.err)
	}
	return base
}

// Endpoint returns the API endpoint the request targeted
func (e *RequestError) Endpoint() string {
	return e.endpoint
}

// Status returns the HTTP status, or 0 if none was received
func (e *RequestError) Status() int {
	return e.status
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// FileError represents errors related to local file operations
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: FileOperationFailed,
		},
		path: path,
	}
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: KindOf(err),
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: KindOf(err),
	}
}

type kinded interface {
	Kind() ErrorKind
}

// KindOf returns the kind of the first classified error in err's chain.
func KindOf(err error) ErrorKind {
	for err != nil {
		if k, ok := err.(kinded); ok && k.Kind() != Unknown {
			return k.Kind()
		}
		err = errors.Unwrap(err)
	}
	return Unknown
}

// IsValidation checks if the error is a validation error
func IsValidation(err error) bool {
	return KindOf(err) == Validation
}

// IsTransport checks if the error is any request failure, including
// timeouts and cancellations.
func IsTransport(err error) bool {
	switch KindOf(err) {
	case Transport, TimedOut, Canceled:
		return true
	}
	return false
}

// IsTimedOut checks if the error is a request timeout
func IsTimedOut(err error) bool {
	return KindOf(err) == TimedOut
}

// IsCanceled checks if the error is a canceled request
func IsCanceled(err error) bool {
	return KindOf(err) == Canceled
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}
