package mock

import "github.com/fwojciec/imgextract"

var _ imgextract.Clipboard = (*Clipboard)(nil)

// Clipboard is a mock implementation of imgextract.Clipboard.
type Clipboard struct {
	ReadTextFn  func() (string, error)
	WriteTextFn func(text string) error
}

func (c *Clipboard) ReadText() (string, error) {
	return c.ReadTextFn()
}

func (c *Clipboard) WriteText(text string) error {
	return c.WriteTextFn(text)
}
