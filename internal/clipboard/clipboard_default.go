//go:build !darwin && !windows

package clipboard

import "errors"

// golang.design/x/clipboard needs X11 headers here, so it is not linked.
func initClipboard() error {
	return errors.New("requires X11 development headers")
}

func writeToClipboard(string) error {
	return ErrUnavailable
}
