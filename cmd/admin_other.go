//go:build !windows

package cmd

import "os"

func isAdmin() bool {
	return os.Geteuid() == 0
}
