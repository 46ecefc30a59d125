//go:build !unix

package ui

import (
	"os"
)

// signals stop ServeRemote: only Ctrl+C is portable here.
func signals() []os.Signal {
	return []os.Signal{os.Interrupt}
}
