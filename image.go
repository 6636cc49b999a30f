package imgextract

import "fmt"

// NamespaceXLink is the XLink namespace used by SVG xlink:href attributes.
const NamespaceXLink = "http://www.w3.org/1999/xlink"

// Attribute locations read, in order, when looking for an image's data URL.
var (
	AttrSrc       = AttrLocation{Name: "src"}
	AttrXLinkHref = AttrLocation{Namespace: NamespaceXLink, Name: "href"}
)

// SourceAttrs lists the attribute locations checked for a data URL, in order.
var SourceAttrs = []AttrLocation{AttrSrc, AttrXLinkHref}

// TagImg is the local name of the HTML image element, the only element
// that supports lazy loading.
const TagImg = "img"

// AttrLocation identifies an attribute by namespace URI and local name.
// An empty Namespace is the null namespace.
type AttrLocation struct {
	Namespace string `json:"namespace,omitempty"`
	Name      string `json:"name"`
}

// String returns the attribute's qualified name as written in markup.
func (a AttrLocation) String() string {
	if a.Namespace == NamespaceXLink {
		return "xlink:" + a.Name
	}
	return a.Name
}

// Image represents an image embedded as a data URL in a parsed document.
type Image struct {
	// ID is the 1-based ordinal of the element among all candidate
	// elements in document order. Skipped candidates still consume an
	// ordinal, so IDs may have gaps.
	ID int `json:"id"`

	Attr AttrLocation `json:"attr"`
	Tag  string       `json:"tag"`

	// Name is the file name substituted into the placeholder.
	Name string `json:"name"`

	// Src is the original data URL, verbatim.
	Src string `json:"src"`

	LazyLoad bool `json:"lazyLoad"`

	MediaType string `json:"mediaType"`
	Data      []byte `json:"-"`
}

// NewImage builds the record for a candidate element at the given ordinal.
// Returns EINVALID if src is empty or not a data URL.
func NewImage(id int, tag string, attr AttrLocation, src string) (*Image, error) {
	if src == "" {
		return nil, Errorf(EINVALID, "image %d has no source", id)
	}
	u, err := ParseDataURL(src)
	if err != nil {
		return nil, err
	}
	return &Image{
		ID:        id,
		Attr:      attr,
		Tag:       tag,
		Name:      DefaultName(id, u.Subtype),
		Src:       src,
		LazyLoad:  tag == TagImg,
		MediaType: u.Essence(),
		Data:      u.Data,
	}, nil
}

// DefaultName returns the generated file name for an image ordinal.
func DefaultName(id int, subtype string) string {
	return fmt.Sprintf("file-%d.%s", id, subtype)
}

// Lazyable reports whether the image's element supports lazy loading.
func (img *Image) Lazyable() bool {
	return img.Tag == TagImg
}

// Clone returns a copy of the image. Data is shared.
func (img *Image) Clone() *Image {
	other := *img
	return &other
}

// ImageUpdate represents a set of fields to update on an image.
type ImageUpdate struct {
	Name     *string
	LazyLoad *bool
}

// Apply applies the update to img. Setting LazyLoad on an image that cannot
// be lazy loaded returns EINVALID and leaves img unchanged.
func (u ImageUpdate) Apply(img *Image) error {
	if u.LazyLoad != nil && !img.Lazyable() {
		return Errorf(EINVALID, "image %d (<%s>) does not support lazy loading", img.ID, img.Tag)
	}
	if u.Name != nil {
		img.Name = *u.Name
	}
	if u.LazyLoad != nil {
		img.LazyLoad = *u.LazyLoad
	}
	return nil
}

// FindImage returns the image with the given ID, or nil.
func FindImage(images []*Image, id int) *Image {
	for _, img := range images {
		if img.ID == id {
			return img
		}
	}
	return nil
}
