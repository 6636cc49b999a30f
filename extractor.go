package imgextract

// Extractor finds embedded images in markup and rewrites the markup to
// reference them by file name.
type Extractor interface {
	// Extract parses markup and returns one record per element carrying
	// a valid data URL, in document order.
	Extract(markup string) ([]*Image, error)

	// Rewrite parses markup again and replaces each matched element's data
	// URL with the placeholder for its record's current name. Elements with
	// no matching record are left untouched.
	Rewrite(markup string, images []*Image) (string, error)
}

// DefaultMaxInputSize is the default limit for markup accepted by extractors.
const DefaultMaxInputSize = 50 * 1024 * 1024

// CheckInputSize returns EINVALID if markup is longer than limit bytes.
// A limit of zero or less means DefaultMaxInputSize.
func CheckInputSize(markup string, limit int) error {
	if limit <= 0 {
		limit = DefaultMaxInputSize
	}
	if len(markup) > limit {
		return Errorf(EINVALID, "input is %s, larger than the %s limit",
			FormatBytes(len(markup)), FormatBytes(limit))
	}
	return nil
}
