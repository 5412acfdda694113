// Package errors provides centralized error definitions and error handling utilities
// for ghlookup. It defines the directory error type, semantic error types,
// error constructors with context wrapping, and error classification helpers.
//
// # Error Types
//
// Domain-specific errors represent failures talking to the remote user directory:
//   - DirectoryError: a search or profile request failed (transport, HTTP status, decoding)
//
// Semantic errors represent common error conditions:
//   - NotFoundError: a user login does not exist
//   - ValidationError: invalid input or configuration
//   - TimeoutError: a request exceeded its deadline
//
// # Usage
//
//	err := errors.NewDirectoryError(errors.OpSearchUsers, "request failed", cause).
//		WithTerm("octocat").
//		WithStatusCode(502)
//
//	if errors.Is(err, errors.ErrDirectoryUnavailable) { ... }
//
//	var dirErr *errors.DirectoryError
//	if errors.As(err, &dirErr) { ... }
//
//	if errors.IsRetryable(err) { ... }
//
// Nothing in ghlookup retries. Retryable only feeds the log line and the hint
// shown under the result list.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// LogLevel maps the severity onto a log level name. Critical logs as ERROR.
func (s Severity) LogLevel() string {
	switch s {
	case SeverityDebug:
		return "DEBUG"
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARN"
	default:
		return "ERROR"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Directory-related sentinel errors
var (
	// ErrUserNotFound indicates that no user exists for a login.
	ErrUserNotFound = New("user not found")
	// ErrRateLimited indicates that the directory refused the request because
	// of a primary or secondary rate limit.
	ErrRateLimited = New("rate limited")
	// ErrDirectoryUnavailable indicates a transport failure or 5xx response.
	ErrDirectoryUnavailable = New("directory unavailable")
	// ErrMalformedResponse indicates the directory returned a body that could not be decoded.
	ErrMalformedResponse = New("malformed response")
)

// General sentinel errors
var (
	// ErrTimeout indicates that an operation timed out.
	ErrTimeout = New("operation timed out")
	// ErrCanceled indicates that an operation was canceled.
	ErrCanceled = New("operation canceled")
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// LookupError is the base interface for all ghlookup errors.
// It extends the standard error interface with additional methods for
// error handling and classification.
type LookupError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Is reports whether this error matches the target error.
	Is(target error) bool

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsRetryable returns true if the error is transient.
	IsRetryable() bool

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	retryable  bool
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsRetryable returns whether the error is retryable.
func (e *baseError) IsRetryable() bool {
	return e.retryable
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// Operation names a directory request.
type Operation string

// Directory operations.
const (
	OpSearchUsers Operation = "search_users"
	OpGetUser     Operation = "get_user"
)

// DirectoryError represents a failed request to the remote user directory.
//
// Example:
//
//	err := errors.NewDirectoryError(errors.OpGetUser, "request failed", errors.ErrDirectoryUnavailable)
//	err = err.WithLogin("octocat").WithStatusCode(503)
//	fmt.Println(err) // "directory error [op=get_user, login=octocat, status=503]: request failed: directory unavailable"
type DirectoryError struct {
	baseError
	Op         Operation
	Login      string
	Term       string
	StatusCode int
}

// NewDirectoryError creates a new DirectoryError.
func NewDirectoryError(op Operation, message string, cause error) *DirectoryError {
	return &DirectoryError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			retryable:  false,
			userFacing: true,
		},
		Op: op,
	}
}

// WithLogin adds the requested login to the error context.
func (e *DirectoryError) WithLogin(login string) *DirectoryError {
	e.Login = login
	return e
}

// WithTerm adds the search term to the error context.
func (e *DirectoryError) WithTerm(term string) *DirectoryError {
	e.Term = term
	return e
}

// WithStatusCode records the HTTP status. 5xx responses become retryable.
func (e *DirectoryError) WithStatusCode(code int) *DirectoryError {
	e.StatusCode = code
	if code >= 500 {
		e.retryable = true
	}
	return e
}

// WithSeverity sets the error severity.
func (e *DirectoryError) WithSeverity(s Severity) *DirectoryError {
	e.severity = s
	return e
}

// WithRetryable sets whether the error is retryable.
func (e *DirectoryError) WithRetryable(r bool) *DirectoryError {
	e.retryable = r
	return e
}

// WithUserFacing marks whether the message is fit to show as is. Transport
// and decoding failures carry raw library text and are not.
func (e *DirectoryError) WithUserFacing(u bool) *DirectoryError {
	e.userFacing = u
	return e
}

// Error returns the formatted error message.
func (e *DirectoryError) Error() string {
	var parts []string
	if e.Op != "" {
		parts = append(parts, fmt.Sprintf("op=%s", e.Op))
	}
	if e.Login != "" {
		parts = append(parts, fmt.Sprintf("login=%s", e.Login))
	}
	if e.Term != "" {
		parts = append(parts, fmt.Sprintf("term=%q", e.Term))
	}
	if e.StatusCode != 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}

	prefix := "directory error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("directory error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *DirectoryError) Is(target error) bool {
	if _, ok := target.(*DirectoryError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// NotFoundError represents a resource that could not be found.
//
// Example:
//
//	err := errors.NewNotFoundError("user", "octocat")
//	fmt.Println(err) // "user 'octocat' not found"
type NotFoundError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			message:    fmt.Sprintf("%s '%s' not found", resourceType, resourceID),
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// WithCause adds a cause to the error.
func (e *NotFoundError) WithCause(cause error) *NotFoundError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *NotFoundError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s '%s' not found: %v", e.ResourceType, e.ResourceID, e.cause)
	}
	return fmt.Sprintf("%s '%s' not found", e.ResourceType, e.ResourceID)
}

// Is checks if this error matches the target.
func (e *NotFoundError) Is(target error) bool {
	if _, ok := target.(*NotFoundError); ok {
		return true
	}
	if e.ResourceType == "user" && target == ErrUserNotFound {
		return true
	}
	return e.baseError.Is(target)
}

// ValidationError represents invalid input or state.
//
// Example:
//
//	err := errors.NewValidationError("base URL must end with a slash")
//	err = err.WithField("directory.base_url").WithValue(raw)
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if errors.Is(target, ErrInvalidInput) {
		return true
	}
	return e.baseError.Is(target)
}

// TimeoutError represents an operation that timed out.
//
// Example:
//
//	err := errors.NewTimeoutError("search users", 10*time.Second)
//	fmt.Println(err) // "timeout error: search users (timeout: 10s)"
type TimeoutError struct {
	baseError
	Operation string
	Duration  time.Duration
}

// NewTimeoutError creates a new TimeoutError.
func NewTimeoutError(operation string, duration time.Duration) *TimeoutError {
	return &TimeoutError{
		baseError: baseError{
			message:    operation,
			severity:   SeverityWarning,
			retryable:  true,
			userFacing: true,
		},
		Operation: operation,
		Duration:  duration,
	}
}

// WithCause adds a cause to the error.
func (e *TimeoutError) WithCause(cause error) *TimeoutError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *TimeoutError) Error() string {
	base := fmt.Sprintf("timeout error: %s (timeout: %s)", e.Operation, e.Duration)
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", base, e.cause)
	}
	return base
}

// Is checks if this error matches the target.
func (e *TimeoutError) Is(target error) bool {
	if _, ok := target.(*TimeoutError); ok {
		return true
	}
	if errors.Is(target, ErrTimeout) {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsRetryable returns true if the error represents a transient condition.
// This checks for:
//   - Errors implementing LookupError with IsRetryable() returning true
//   - Errors wrapping ErrTimeout or ErrDirectoryUnavailable
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var lookupErr LookupError
	if As(err, &lookupErr) {
		return lookupErr.IsRetryable()
	}

	return Is(err, ErrTimeout) || Is(err, ErrDirectoryUnavailable)
}

// IsUserFacing returns true if the error message is safe to display to end users.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var lookupErr LookupError
	if As(err, &lookupErr) {
		return lookupErr.IsUserFacing()
	}

	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement LookupError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var lookupErr LookupError
	if As(err, &lookupErr) {
		return lookupErr.Severity()
	}

	return SeverityError
}

// Hint returns a short, single-line description suitable for a status line.
func Hint(err error) string {
	switch {
	case err == nil:
		return ""
	case Is(err, ErrUserNotFound):
		return "user not found"
	case Is(err, ErrRateLimited):
		return "rate limited by GitHub"
	case Is(err, ErrTimeout):
		return "request timed out"
	case Is(err, ErrDirectoryUnavailable):
		return "GitHub unavailable"
	case Is(err, ErrCanceled):
		return "request canceled"
	case Is(err, ErrInvalidInput):
		return "invalid query"
	default:
		return "request failed"
	}
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
// Unlike fmt.Errorf with %w, this preserves the LookupError interface.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
