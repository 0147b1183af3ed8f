package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Exit codes for scripting integration.
const (
	// ExitSuccess indicates the run (or dry-run, audit, list) completed.
	// Per-category warnings and errors do not change the exit code; they are
	// surfaced in the final issues list instead.
	ExitSuccess = 0

	// ExitFailure indicates an argument error or a missing core dependency
	// detected before any category executed.
	ExitFailure = 1
)

// ErrSkipped is returned by a category whose skip token was requested
// via --skip. It is informational and never fatal.
var ErrSkipped = errors.New("skipped by user request")

// NotInstalledError indicates the binary a category depends on is absent.
//
// The category reports this and is skipped; the run continues. Only the
// core dependencies checked at startup are allowed to abort the whole run
// (see MissingCoreError).
//
// Fields:
//   - Tool: The name of the missing binary
type NotInstalledError struct {
	Tool string
}

// Error implements the error interface.
//
// Returns:
//   - string: The error message
func (e *NotInstalledError) Error() string {
	return fmt.Sprintf("%s is not installed", e.Tool)
}

// UpdateCheckError indicates a remote version lookup failed.
//
// It is fatal to the category that performed the lookup but not to the run;
// the category reports an error status and the message joins the final
// issues list.
//
// Fields:
//   - Category: The category whose check failed
//   - Err: The underlying lookup failure, may be nil
type UpdateCheckError struct {
	Category string
	Err      error
}

// Error implements the error interface.
//
// Returns:
//   - string: The error message
func (e *UpdateCheckError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: update check failed: %v", e.Category, e.Err)
	}
	return fmt.Sprintf("%s: update check failed", e.Category)
}

// Unwrap returns the underlying error for errors.Is/As support.
//
// Returns:
//   - error: The underlying error, or nil if none exists
func (e *UpdateCheckError) Unwrap() error {
	return e.Err
}

// MismatchError indicates the installed version after an update differs
// from the version the update was expected to produce.
//
// Fields:
//   - Tool: The tool whose version was checked
//   - Expected: The version the update should have installed
//   - Actual: The version actually reported after the update
type MismatchError struct {
	Tool     string
	Expected string
	Actual   string
}

// Error implements the error interface.
//
// Returns:
//   - string: The error message
func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: version mismatch after update: expected %s, got %s", e.Tool, e.Expected, e.Actual)
}

// ManualActionError indicates updates are available that this tool does not
// apply itself (macOS system software). It is reported as a warning, never
// as an error.
//
// Fields:
//   - Detail: Human-readable description of the manual action required
type ManualActionError struct {
	Detail string
}

// Error implements the error interface.
//
// Returns:
//   - string: The error message
func (e *ManualActionError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return "manual action required"
}

// MissingCoreError indicates one or more required tools are absent.
//
// This is the only error that aborts the entire run: it is produced by the
// startup pre-flight check, before any category executes, and maps to
// ExitFailure.
//
// Fields:
//   - Tools: The names of the missing required binaries
type MissingCoreError struct {
	Tools []string
}

// Error implements the error interface.
//
// Returns:
//   - string: The error message listing every missing tool
func (e *MissingCoreError) Error() string {
	return fmt.Sprintf("missing required tools: %s", strings.Join(e.Tools, ", "))
}

// ExitError represents a command termination with a specific exit code.
//
// Fields:
//   - Code: Exit code (ExitSuccess or ExitFailure)
//   - Message: Human-readable error message
//   - Err: Underlying error that caused this exit, may be nil
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// Error implements the error interface.
//
// Returns the Message field if set, otherwise the underlying error's
// message, or a default message with the exit code.
//
// Returns:
//   - string: The error message
func (e *ExitError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

// Unwrap returns the underlying error for errors.Is/As support.
//
// Returns:
//   - error: The underlying error, or nil if none exists
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with the given code and underlying error.
//
// Parameters:
//   - code: Exit code (ExitSuccess or ExitFailure)
//   - err: Underlying error, may be nil
//
// Returns:
//   - *ExitError: New exit error
func NewExitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

// NewExitErrorf creates an ExitError with the given code and formatted message.
//
// Parameters:
//   - code: Exit code
//   - format: Printf-style format string
//   - args: Format arguments
//
// Returns:
//   - *ExitError: New exit error with formatted message
func NewExitErrorf(code int, format string, args ...any) *ExitError {
	return &ExitError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// GetExitCode extracts the exit code from an error.
//
// If err is nil, returns ExitSuccess. If err is an ExitError, returns its
// code. Otherwise returns ExitFailure.
//
// Parameters:
//   - err: The error to extract code from
//
// Returns:
//   - int: Exit code
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return ExitFailure
}

// IsNotInstalled checks if err is a NotInstalledError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *NotInstalledError: The typed error if err is one, nil otherwise
//   - bool: true if err is a NotInstalledError
func IsNotInstalled(err error) (*NotInstalledError, bool) {
	var e *NotInstalledError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsUpdateCheckFailed checks if err is an UpdateCheckError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *UpdateCheckError: The typed error if err is one, nil otherwise
//   - bool: true if err is an UpdateCheckError
func IsUpdateCheckFailed(err error) (*UpdateCheckError, bool) {
	var e *UpdateCheckError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsMismatch checks if err is a MismatchError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *MismatchError: The typed error if err is one, nil otherwise
//   - bool: true if err is a MismatchError
func IsMismatch(err error) (*MismatchError, bool) {
	var e *MismatchError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsManualAction checks if err is a ManualActionError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *ManualActionError: The typed error if err is one, nil otherwise
//   - bool: true if err is a ManualActionError
func IsManualAction(err error) (*ManualActionError, bool) {
	var e *ManualActionError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsMissingCore checks if err is a MissingCoreError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *MissingCoreError: The typed error if err is one, nil otherwise
//   - bool: true if err is a MissingCoreError
func IsMissingCore(err error) (*MissingCoreError, bool) {
	var e *MissingCoreError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
