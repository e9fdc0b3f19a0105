package notify

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// DetectPermission resolves the configured mode ("auto", "granted" or
// "denied"). In auto mode alerts are granted when out is a terminal.
func DetectPermission(mode string, out *os.File) Permission {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "granted":
		return PermissionGranted
	case "denied":
		return PermissionDenied
	}
	if out == nil {
		return PermissionUnsupported
	}
	fd := out.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return PermissionGranted
	}
	return PermissionUnsupported
}
