package domain

import (
	"errors"
	"fmt"
)

// Exit codes returned by the caserun binary
const (
	ExitSuccess = 0 // All cases passed, or no cases were found
	ExitFailure = 1 // At least one case failed, or the run could not be set up
)

// ErrTestsFailed is returned by a completed run in which at least one case failed
var ErrTestsFailed = errors.New("one or more test cases failed")

// ParseError reports a line that is not a valid JSON value
type ParseError struct {
	Path string
	Line int // 1-based line number in the file
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: invalid JSON: %v", e.Path, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DirectoryError reports a test directory that cannot be scanned
type DirectoryError struct {
	Path string
	Err  error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("test directory %s: %v", e.Path, e.Err)
}

func (e *DirectoryError) Unwrap() error {
	return e.Err
}

// SetupKind identifies which part of the run setup failed
type SetupKind int

const (
	SetupCandidateFile SetupKind = iota
	SetupCandidateModule
	SetupFunction
	SetupTestDir
	SetupConfig
	SetupStorage
)

// SetupError aborts the whole run before any case executes
type SetupError struct {
	Kind    SetupKind
	Message string
	Cause   error
}

func (e *SetupError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *SetupError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *SetupError) ExitCode() int {
	return ExitFailure
}

// NewSetupError creates a setup error with formatting
func NewSetupError(kind SetupKind, format string, args ...any) *SetupError {
	return &SetupError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapSetupError wraps cause as a setup error
func WrapSetupError(kind SetupKind, cause error, message string) *SetupError {
	return &SetupError{Kind: kind, Message: message, Cause: cause}
}

// ExitCode returns the process exit code for err
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var se *SetupError
	if errors.As(err, &se) {
		return se.ExitCode()
	}
	return ExitFailure
}
