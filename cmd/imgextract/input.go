package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/imgextract"
	imghttp "github.com/fwojciec/imgextract/http"
)

// readInput returns the markup selected by in and whether it is a
// standalone SVG document.
func readInput(deps *Dependencies, in *InputFlags) (markup string, svg bool, err error) {
	sources := 0
	for _, set := range []bool{in.File != "" && in.File != "-", in.URL != "", in.Paste} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return "", false, imgextract.Errorf(imgextract.EINVALID, "choose one input: FILE, --url or --paste")
	}

	switch {
	case in.URL != "":
		if deps.Fetcher == nil {
			return "", false, fmt.Errorf("no fetcher configured for %s", in.URL)
		}
		markup, err = deps.Fetcher.Fetch(deps.Ctx, in.URL)
	case in.Paste:
		markup, err = deps.Clipboard.ReadText()
	case in.File != "" && in.File != "-":
		markup, err = readFile(in.File, deps.Config.maxInputSize())
		svg = strings.EqualFold(filepath.Ext(in.File), ".svg")
	default:
		markup, err = readAll(deps.Stdin, "stdin", deps.Config.maxInputSize())
	}
	if err != nil {
		return "", false, err
	}

	if in.HTML {
		return markup, false, nil
	}
	return markup, svg || in.SVG || looksLikeSVG(markup), nil
}

func readFile(path string, limit int) (string, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return "", imgextract.Errorf(imgextract.ENOTFOUND, "file %q not found", path)
	} else if err != nil {
		return "", err
	}
	defer f.Close()
	return readAll(f, path, limit)
}

// readAll reads at most limit bytes from r and decodes them to UTF-8.
func readAll(r io.Reader, name string, limit int) (string, error) {
	body, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	if len(body) > limit {
		return "", imgextract.Errorf(imgextract.EINVALID, "%s is larger than %s", name, imgextract.FormatBytes(limit))
	}
	if isXML(body) {
		return string(bytes.TrimPrefix(body, []byte("\xef\xbb\xbf"))), nil
	}
	return imghttp.Decode(body, "")
}

// isXML reports whether body starts with an XML declaration. XML documents
// declare their own encoding and are left for the XML parser to decode.
func isXML(body []byte) bool {
	body = bytes.TrimPrefix(body, []byte("\xef\xbb\xbf"))
	return bytes.HasPrefix(bytes.TrimSpace(body), []byte("<?xml"))
}

// looksLikeSVG reports whether markup is a standalone SVG document: it
// starts with an XML declaration or an SVG doctype. Markup that merely begins
// with an <svg> element may be an HTML fragment and is left to the HTML
// parser.
func looksLikeSVG(markup string) bool {
	s := strings.TrimSpace(markup)
	if strings.HasPrefix(s, "<?xml") {
		return true
	}
	for strings.HasPrefix(s, "<!--") {
		end := strings.Index(s, "-->")
		if end < 0 {
			return false
		}
		s = strings.TrimSpace(s[end+3:])
	}
	return strings.HasPrefix(s, "<!DOCTYPE svg")
}

// newSession parses markup with the extractor for its kind and applies the
// configured lazy loading default to every <img> record.
func newSession(deps *Dependencies, markup string, svg bool) (*imgextract.Session, error) {
	extractor := deps.HTML
	if svg {
		extractor = deps.SVG
	}

	session := imgextract.NewSession(extractor)
	if err := session.SetInput(markup); err != nil {
		return nil, err
	}

	if lazy := deps.Config.LazyLoad; lazy != nil {
		for _, img := range session.Images() {
			if !img.Lazyable() {
				continue
			}
			if err := session.SetLazyLoad(img.ID, *lazy); err != nil {
				return nil, err
			}
		}
	}

	return session, nil
}
