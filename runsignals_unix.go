//go:build unix

package ui

import (
	"os"
	"syscall"
)

// signals stop ServeRemote: Ctrl+C and the usual service manager stop signal.
func signals() []os.Signal {
	return []os.Signal{os.Interrupt, syscall.SIGTERM}
}
