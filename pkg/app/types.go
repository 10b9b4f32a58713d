package app

import (
	"errors"
	"fmt"

	"github.com/deploymenttheory/go-multiboot2/internal/dump"
)

// DumpTarget identifies the boot information to inspect
type DumpTarget struct {
	// Path of the file holding the raw boot information
	Path string
	// Physical address the boot information was loaded at
	StartAddress uint64
	// Additional physical memory images, used to resolve ELF section names
	MemoryImages []dump.MemoryImage
}

// Validate ensures the dump target is usable
func (dt *DumpTarget) Validate() error {
	if dt.Path == "" {
		return errors.New("dump path is required")
	}
	for i, img := range dt.MemoryImages {
		if img.Path == "" {
			return fmt.Errorf("memory image %d has no path", i)
		}
	}
	return nil
}

// String returns a string representation of the dump target
func (dt *DumpTarget) String() string {
	result := fmt.Sprintf("%s @ %#x", dt.Path, dt.StartAddress)
	if n := len(dt.MemoryImages); n > 0 {
		result += fmt.Sprintf(" (+%d memory image", n)
		if n != 1 {
			result += "s"
		}
		result += ")"
	}
	return result
}

// CommonError represents application-level errors
type CommonError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CommonError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CommonError) Unwrap() error {
	return e.Cause
}

// ExitCode maps the error code to a process exit status
func (e *CommonError) ExitCode() int {
	if code, ok := exitCodes[e.Code]; ok {
		return code
	}
	return ExitGeneric
}

// Common error codes
const (
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeDumpAccess   = "DUMP_ACCESS"
	ErrCodeDecodeFailed = "DECODE_FAILED"
	ErrCodeTagNotFound  = "TAG_NOT_FOUND"
	ErrCodeTimeout      = "TIMEOUT"
)

// Process exit codes
const (
	// Unclassified failure
	ExitGeneric = 1
	// Bad flags, arguments or configuration
	ExitInvalidInput = 2
	// The dump or a memory image could not be read
	ExitDumpAccess = 3
	// The boot information is malformed
	ExitDecodeFailed = 4
	// A requested tag is not present
	ExitTagNotFound = 5
)

var exitCodes = map[string]int{
	ErrCodeInvalidInput: ExitInvalidInput,
	ErrCodeDumpAccess:   ExitDumpAccess,
	ErrCodeDecodeFailed: ExitDecodeFailed,
	ErrCodeTagNotFound:  ExitTagNotFound,
	ErrCodeTimeout:      ExitGeneric,
}

// NewError creates a new CommonError
func NewError(code, message string, cause error) *CommonError {
	return &CommonError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// ExitCodeOf returns the exit status for any error
func ExitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var ce *CommonError
	if errors.As(err, &ce) {
		return ce.ExitCode()
	}
	return ExitGeneric
}
