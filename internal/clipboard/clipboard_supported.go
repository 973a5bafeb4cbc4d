//go:build darwin || windows

package clipboard

import (
	clipboard "golang.design/x/clipboard"
)

func initClipboard() error {
	return clipboard.Init()
}

func writeToClipboard(text string) error {
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}
