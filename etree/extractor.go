// Package etree implements imgextract.Extractor for standalone SVG
// documents, which are XML and must round-trip as XML rather than HTML.
package etree

import (
	"github.com/beevik/etree"
	"github.com/fwojciec/imgextract"
)

// Ensure Extractor implements imgextract.Extractor at compile time.
var _ imgextract.Extractor = (*Extractor)(nil)

// Extractor extracts data URL images from SVG documents. Every <image>
// element inside an <svg> element is a candidate. Rewrite returns the whole
// serialized document.
type Extractor struct {
	// MaxInputSize is the largest markup accepted, in bytes.
	// Zero means imgextract.DefaultMaxInputSize.
	MaxInputSize int
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{MaxInputSize: imgextract.DefaultMaxInputSize}
}

// Extract parses the SVG document and returns its embedded images.
func (e *Extractor) Extract(markup string) ([]*imgextract.Image, error) {
	doc, err := e.parse(markup)
	if err != nil {
		return nil, err
	}

	var images []*imgextract.Image
	for i, el := range candidates(doc) {
		attr, src, ok := sourceAttr(el)
		if !ok {
			continue
		}
		img, err := imgextract.NewImage(i+1, el.Tag, attr, src)
		if err != nil {
			continue
		}
		images = append(images, img)
	}
	return images, nil
}

// Rewrite replaces matched data URLs with placeholders and returns the
// document. Records are matched by ordinal first, then by value.
func (e *Extractor) Rewrite(markup string, images []*imgextract.Image) (string, error) {
	doc, err := e.parse(markup)
	if err != nil {
		return "", err
	}

	for i, el := range candidates(doc) {
		img := match(images, i+1, el)
		if img == nil {
			continue
		}
		if a := findAttr(el, img.Attr); a != nil {
			a.Value = imgextract.Placeholder(img.Name)
		}
	}

	out, err := doc.WriteToString()
	if err != nil {
		return "", imgextract.Errorf(imgextract.EINTERNAL, "failed to write SVG: %v", err)
	}
	return out, nil
}

func (e *Extractor) parse(markup string) (*etree.Document, error) {
	if err := imgextract.CheckInputSize(markup, e.MaxInputSize); err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(markup); err != nil {
		return nil, imgextract.Errorf(imgextract.EINVALID, "failed to parse SVG: %v", err)
	}
	if doc.Root() == nil {
		return nil, imgextract.Errorf(imgextract.EINVALID, "SVG document has no root element")
	}

	// Keep quotes in attribute values and text literal so Liquid
	// placeholders are written as-is.
	doc.WriteSettings.CanonicalAttrVal = true
	doc.WriteSettings.CanonicalText = true
	return doc, nil
}

// candidates returns <image> elements below an <svg> element in document order.
func candidates(doc *etree.Document) []*etree.Element {
	var out []*etree.Element
	var walk func(el *etree.Element, inSVG bool)
	walk = func(el *etree.Element, inSVG bool) {
		for _, child := range el.ChildElements() {
			if inSVG && child.Tag == "image" {
				out = append(out, child)
			}
			walk(child, inSVG || child.Tag == "svg")
		}
	}
	root := doc.Root()
	walk(root, root.Tag == "svg")
	return out
}

func sourceAttr(el *etree.Element) (imgextract.AttrLocation, string, bool) {
	for _, loc := range imgextract.SourceAttrs {
		if a := findAttr(el, loc); a != nil && a.Value != "" {
			return loc, a.Value, true
		}
	}
	return imgextract.AttrLocation{}, "", false
}

// findAttr looks an attribute up by namespace URI. An undeclared xlink
// prefix is treated as the XLink namespace.
func findAttr(el *etree.Element, loc imgextract.AttrLocation) *etree.Attr {
	for i := range el.Attr {
		a := &el.Attr[i]
		if a.Key != loc.Name {
			continue
		}
		if loc.Namespace == "" {
			if a.Space == "" {
				return a
			}
			continue
		}
		uri := a.NamespaceURI()
		if uri == loc.Namespace || (uri == "" && loc.Namespace == imgextract.NamespaceXLink && a.Space == "xlink") {
			return a
		}
	}
	return nil
}

func match(images []*imgextract.Image, id int, el *etree.Element) *imgextract.Image {
	if img := imgextract.FindImage(images, id); img != nil {
		if a := findAttr(el, img.Attr); a != nil && a.Value == img.Src {
			return img
		}
	}
	for _, img := range images {
		if a := findAttr(el, img.Attr); a != nil && a.Value == img.Src {
			return img
		}
	}
	return nil
}
