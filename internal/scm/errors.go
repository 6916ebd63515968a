package scm

import (
	"errors"
	"fmt"
	"syscall"
)

// Platform error codes produced by service control calls.
const (
	ErrorAccessDenied           uint32 = 5
	ErrorInvalidHandle          uint32 = 6
	ErrorGenFailure             uint32 = 31
	ErrorInvalidParameter       uint32 = 87
	ErrorCallNotImplemented     uint32 = 120
	ErrorInvalidName            uint32 = 123
	ErrorServiceDoesNotExist    uint32 = 1060
	ErrorServiceMarkedForDelete uint32 = 1072
	ErrorServiceExists          uint32 = 1073
	ErrorDuplicateServiceName   uint32 = 1078
)

var codeMessages = map[uint32]string{
	ErrorAccessDenied:           "Access is denied.",
	ErrorInvalidHandle:          "The handle is invalid.",
	ErrorGenFailure:             "A device attached to the system is not functioning.",
	ErrorInvalidParameter:       "The parameter is incorrect.",
	ErrorCallNotImplemented:     "This function is not supported on this system.",
	ErrorInvalidName:            "The filename, directory name, or volume label syntax is incorrect.",
	ErrorServiceDoesNotExist:    "The specified service does not exist as an installed service.",
	ErrorServiceMarkedForDelete: "The specified service has been marked for deletion.",
	ErrorServiceExists:          "The specified service already exists.",
	ErrorDuplicateServiceName:   "The name is already in use as either a service name or a service display name.",
}

// PlatformError is the failure of a single native call.
// Code is the platform error code reported by that call.
type PlatformError struct {
	Op      string
	Code    uint32
	Message string
}

// NewPlatformError builds a PlatformError for op with an explicit code.
func NewPlatformError(op string, code uint32, message string) *PlatformError {
	return &PlatformError{Op: op, Code: code, Message: message}
}

// errorFrom converts the error returned by a native call into a PlatformError.
func errorFrom(op, message string, err error) *PlatformError {
	var pe *PlatformError
	if errors.As(err, &pe) {
		return pe
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return NewPlatformError(op, uint32(errno), message)
	}
	return NewPlatformError(op, ErrorGenFailure, message+": "+err.Error())
}

// Error renders the context message and the platform text. The numeric code
// is left to LogPlatformError, which appends it once per log entry.
func (e *PlatformError) Error() string {
	prefix := e.Op
	if e.Message != "" {
		prefix = e.Message
	}
	return fmt.Sprintf("%s: %s", prefix, CodeText(e.Code))
}

// Unwrap exposes the platform errno where the platform has one.
func (e *PlatformError) Unwrap() error {
	return errnoOf(e.Code)
}

// CodeText describes a platform error code.
func CodeText(code uint32) string {
	if s := systemText(code); s != "" {
		return s
	}
	if s, ok := codeMessages[code]; ok {
		return s
	}
	return fmt.Sprintf("platform error %d", code)
}

// CodeOf returns the platform error code carried by err, or 0.
func CodeOf(err error) uint32 {
	var pe *PlatformError
	if errors.As(err, &pe) {
		return pe.Code
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return uint32(errno)
	}
	return 0
}

// IsNotExist reports whether err means the named service is not installed.
func IsNotExist(err error) bool {
	return CodeOf(err) == ErrorServiceDoesNotExist
}

// IsExist reports whether err means the service name is already taken.
func IsExist(err error) bool {
	c := CodeOf(err)
	return c == ErrorServiceExists || c == ErrorDuplicateServiceName
}

// IsAccessDenied reports whether err is a privilege failure.
func IsAccessDenied(err error) bool {
	return CodeOf(err) == ErrorAccessDenied
}
