//go:build js

package main

import "errors"

var errClipboardUnavailable = errors.New("clipboard is not available in the browser build")

func copyText(string) error {
	return errClipboardUnavailable
}
