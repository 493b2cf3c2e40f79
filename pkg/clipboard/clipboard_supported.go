//go:build !linux

package clipboard

import xclipboard "golang.design/x/clipboard"

func initClipboard() error {
	return xclipboard.Init()
}

func writeClipboard(text string) error {
	xclipboard.Write(xclipboard.FmtText, []byte(text))
	return nil
}
