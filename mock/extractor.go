package mock

import "github.com/fwojciec/imgextract"

var _ imgextract.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of imgextract.Extractor.
type Extractor struct {
	ExtractFn func(markup string) ([]*imgextract.Image, error)
	RewriteFn func(markup string, images []*imgextract.Image) (string, error)
}

func (e *Extractor) Extract(markup string) ([]*imgextract.Image, error) {
	return e.ExtractFn(markup)
}

func (e *Extractor) Rewrite(markup string, images []*imgextract.Image) (string, error) {
	return e.RewriteFn(markup, images)
}
