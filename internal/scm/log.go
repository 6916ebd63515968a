package scm

import (
	"errors"

	"github.com/warpdl/scctl/pkg/logger"
)

// LogPlatformError emits one error entry for a failed native call.
// The platform error code is appended to the message and attached as the
// error_code field, with op naming the failed call. A nil l, as accepted
// by logger.OrNop, is a no-op.
func LogPlatformError(l logger.Logger, err error, format string, args ...interface{}) {
	l = logger.OrNop(l)
	code := CodeOf(err)
	fields := logger.Fields{"error_code": code}
	var pe *PlatformError
	if errors.As(err, &pe) {
		fields["op"] = pe.Op
	}
	all := make([]interface{}, 0, len(args)+1)
	all = append(all, args...)
	all = append(all, code)
	l.ErrorFields(err, fields, format+" (Win32Error: %d)", all...)
}
