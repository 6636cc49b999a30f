// Package goquery implements imgextract.Extractor for HTML documents using
// CSS selectors over the golang.org/x/net/html parse tree.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/imgextract"
	"golang.org/x/net/html"
)

// CandidateSelector matches elements that may carry an embedded image:
// HTML images with a data:image/ source and any image inside inline SVG.
const CandidateSelector = `img[src^="data:image/"], svg image`

// Ensure Extractor implements imgextract.Extractor at compile time.
var _ imgextract.Extractor = (*Extractor)(nil)

// Extractor extracts data URL images from HTML and rewrites them to
// placeholders. The output of Rewrite is the inner HTML of the document
// body, serialized the way browsers serialize innerHTML.
type Extractor struct {
	// MaxInputSize is the largest markup accepted, in bytes.
	// Zero means imgextract.DefaultMaxInputSize.
	MaxInputSize int
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{MaxInputSize: imgextract.DefaultMaxInputSize}
}

// Extract parses markup and returns its embedded images in document order.
// Candidates without a source attribute, with an empty one, or with a value
// that is not a data URL are skipped but still consume an ordinal.
func (e *Extractor) Extract(markup string) ([]*imgextract.Image, error) {
	doc, err := e.parse(markup)
	if err != nil {
		return nil, err
	}

	var images []*imgextract.Image
	doc.Find(CandidateSelector).Each(func(i int, sel *goquery.Selection) {
		n := sel.Get(0)
		attr, src, ok := sourceAttr(n)
		if !ok {
			return
		}
		img, err := imgextract.NewImage(i+1, n.Data, attr, src)
		if err != nil {
			return
		}
		images = append(images, img)
	})

	return images, nil
}

// Rewrite replaces the data URL of every element that matches one of images
// with the placeholder for the image's name and returns the body's inner HTML.
func (e *Extractor) Rewrite(markup string, images []*imgextract.Image) (string, error) {
	doc, err := e.parse(markup)
	if err != nil {
		return "", err
	}

	index := newImageIndex(images)
	doc.Find(CandidateSelector).Each(func(i int, sel *goquery.Selection) {
		n := sel.Get(0)
		img := index.match(i+1, n)
		if img == nil {
			return
		}
		if img.LazyLoad && img.Lazyable() && n.Namespace == "" {
			setAttr(n, imgextract.AttrLocation{Name: "loading"}, "lazy")
		}
		setAttr(n, img.Attr, imgextract.Placeholder(img.Name))
	})

	var b strings.Builder
	if body := doc.Find("body"); body.Length() > 0 {
		renderChildren(&b, body.Get(0))
	}
	return b.String(), nil
}

// parse builds the document with scripting disabled, so <noscript> content
// is parsed as markup rather than text.
func (e *Extractor) parse(markup string) (*goquery.Document, error) {
	if err := imgextract.CheckInputSize(markup, e.MaxInputSize); err != nil {
		return nil, err
	}

	root, err := html.ParseWithOptions(strings.NewReader(markup), html.ParseOptionEnableScripting(false))
	if err != nil {
		return nil, imgextract.Errorf(imgextract.EINVALID, "failed to parse HTML: %v", err)
	}
	return goquery.NewDocumentFromNode(root), nil
}

// sourceAttr returns the first non-empty source attribute of n.
func sourceAttr(n *html.Node) (imgextract.AttrLocation, string, bool) {
	for _, loc := range imgextract.SourceAttrs {
		if v, ok := getAttr(n, loc); ok && v != "" {
			return loc, v, true
		}
	}
	return imgextract.AttrLocation{}, "", false
}

// imageIndex resolves parsed elements back to image records.
type imageIndex struct {
	byID  map[int]*imgextract.Image
	bySrc map[uint64][]int
	list  []*imgextract.Image
}

func newImageIndex(images []*imgextract.Image) *imageIndex {
	x := &imageIndex{
		byID:  make(map[int]*imgextract.Image, len(images)),
		bySrc: make(map[uint64][]int, len(images)),
		list:  images,
	}
	for i, img := range images {
		if _, ok := x.byID[img.ID]; !ok {
			x.byID[img.ID] = img
		}
		h := xxhash.Sum64String(img.Src)
		x.bySrc[h] = append(x.bySrc[h], i)
	}
	return x
}

// match returns the record for the candidate element n at ordinal id.
// The record with the same ordinal wins if its source still matches the
// element; otherwise the first record, in list order, whose source equals
// the element's value at that record's attribute location.
func (x *imageIndex) match(id int, n *html.Node) *imgextract.Image {
	if img := x.byID[id]; img != nil {
		if v, ok := getAttr(n, img.Attr); ok && v == img.Src {
			return img
		}
	}

	best := -1
	for _, loc := range imgextract.SourceAttrs {
		v, ok := getAttr(n, loc)
		if !ok || v == "" {
			continue
		}
		for _, i := range x.bySrc[xxhash.Sum64String(v)] {
			img := x.list[i]
			if img.Attr == loc && img.Src == v && (best < 0 || i < best) {
				best = i
				break
			}
		}
	}
	if best < 0 {
		return nil
	}
	return x.list[best]
}

// htmlNamespace maps an attribute namespace URI to the prefix x/net/html
// stores in html.Attribute.Namespace for foreign content.
func htmlNamespace(uri string) string {
	if uri == imgextract.NamespaceXLink {
		return "xlink"
	}
	return uri
}

func getAttr(n *html.Node, loc imgextract.AttrLocation) (string, bool) {
	ns := htmlNamespace(loc.Namespace)
	for _, a := range n.Attr {
		if a.Namespace == ns && a.Key == loc.Name {
			return a.Val, true
		}
	}
	return "", false
}

// setAttr replaces the attribute's value in place, or appends it.
func setAttr(n *html.Node, loc imgextract.AttrLocation, val string) {
	ns := htmlNamespace(loc.Namespace)
	for i, a := range n.Attr {
		if a.Namespace == ns && a.Key == loc.Name {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Namespace: ns, Key: loc.Name, Val: val})
}
