package main_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/fwojciec/imgextract"
	main "github.com/fwojciec/imgextract/cmd/imgextract"
	"github.com/fwojciec/imgextract/etree"
	"github.com/fwojciec/imgextract/fs"
	"github.com/fwojciec/imgextract/goquery"
)

const (
	pngURL = "data:image/png;base64,iVBORw0KGgo="
	gifURL = "data:image/gif;base64,R0lGODlhAQABAAAAACw="
)

// pngBytes is the decoded body of pngURL.
var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// testDeps returns dependencies reading stdin from input, with real
// extractors and file storage and buffered output.
func testDeps(input string) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	deps := &main.Dependencies{
		Ctx:    context.Background(),
		Stdin:  strings.NewReader(input),
		Stdout: stdout,
		Stderr: stderr,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config: &main.Config{},
		HTML:   goquery.NewExtractor(),
		SVG:    etree.NewExtractor(),
		NewStore: func(dir string) imgextract.ImageStore {
			return fs.NewImageStore(dir)
		},
	}
	return deps, stdout, stderr
}
