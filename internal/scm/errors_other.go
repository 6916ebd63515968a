//go:build !windows

package scm

// errnoOf returns nil: codes are Win32 values and do not map to local errnos.
func errnoOf(code uint32) error {
	return nil
}

func systemText(code uint32) string {
	return ""
}
