//go:build linux

package clipboard

import "errors"

// X11 clipboard access needs cgo and a display server, neither of which is
// a given on the Linux hosts this service deploys to.
var errUnsupported = errors.New("system clipboard not available on this platform")

func initClipboard() error {
	return errUnsupported
}

func writeClipboard(string) error {
	return errUnsupported
}
