// Package clipboard implements imgextract.Clipboard on top of the system
// clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/fwojciec/imgextract"
)

// Ensure Clipboard implements imgextract.Clipboard at compile time.
var _ imgextract.Clipboard = (*Clipboard)(nil)

// Clipboard reads and writes the system clipboard. On Linux it needs one of
// xclip, xsel, wl-clipboard or Termux:API.
type Clipboard struct{}

// NewClipboard returns a system clipboard.
func NewClipboard() *Clipboard {
	return &Clipboard{}
}

// Supported reports whether a clipboard utility is available.
func (c *Clipboard) Supported() bool {
	return !clipboard.Unsupported
}

// ReadText returns the clipboard contents.
func (c *Clipboard) ReadText() (string, error) {
	if err := c.check(); err != nil {
		return "", err
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("reading clipboard: %w", err)
	}
	return text, nil
}

// WriteText replaces the clipboard contents with text.
func (c *Clipboard) WriteText(text string) error {
	if err := c.check(); err != nil {
		return err
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}

func (c *Clipboard) check() error {
	if !c.Supported() {
		return imgextract.Errorf(imgextract.EINVALID, "clipboard is not available on this system")
	}
	return nil
}
