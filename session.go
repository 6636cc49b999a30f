package imgextract

// Session holds the editable state for one input: the markup, the images
// extracted from it and the user's edits to those images.
//
// Every call to SetInput discards the previous records and derives new ones
// from scratch. A Session is not safe for concurrent use.
type Session struct {
	extractor Extractor

	input  string
	images []*Image
	err    error
}

// NewSession returns an empty session that parses input with e.
func NewSession(e Extractor) *Session {
	return &Session{extractor: e}
}

// SetInput replaces the markup and regenerates all image records.
// If extraction fails the error is kept for Err and the previous input and
// records are left in place.
func (s *Session) SetInput(markup string) error {
	images, err := s.extractor.Extract(markup)
	if err != nil {
		s.err = err
		return err
	}
	s.err = nil
	s.input = markup
	s.images = images
	return nil
}

// Input returns the markup of the last successful SetInput.
func (s *Session) Input() string {
	return s.input
}

// Err returns the error from the last SetInput, if any.
func (s *Session) Err() error {
	return s.err
}

// Images returns copies of the current image records in document order.
func (s *Session) Images() []*Image {
	images := make([]*Image, len(s.images))
	for i, img := range s.images {
		images[i] = img.Clone()
	}
	return images
}

// Update applies upd to the image with the given ID.
// Returns ENOTFOUND if no such image exists.
func (s *Session) Update(id int, upd ImageUpdate) error {
	img := FindImage(s.images, id)
	if img == nil {
		return Errorf(ENOTFOUND, "image %d not found", id)
	}
	return upd.Apply(img)
}

// Rename sets the file name of an image.
func (s *Session) Rename(id int, name string) error {
	return s.Update(id, ImageUpdate{Name: &name})
}

// SetLazyLoad toggles lazy loading for an image. Only <img> images accept it.
func (s *Session) SetLazyLoad(id int, lazy bool) error {
	return s.Update(id, ImageUpdate{LazyLoad: &lazy})
}

// Output returns the rewritten markup for the current input and records.
// Empty input yields an empty string.
func (s *Session) Output() (string, error) {
	if s.input == "" {
		return "", nil
	}
	return s.extractor.Rewrite(s.input, s.images)
}
