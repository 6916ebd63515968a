//go:build windows

package scm

import "syscall"

func errnoOf(code uint32) error {
	return syscall.Errno(code)
}

// systemText asks the system for the message of code.
func systemText(code uint32) string {
	return syscall.Errno(code).Error()
}
