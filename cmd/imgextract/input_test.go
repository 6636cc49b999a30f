package main_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/imgextract"
	main "github.com/fwojciec/imgextract/cmd/imgextract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCmd_Run_Input(t *testing.T) {
	t.Parallel()

	const (
		svgDoc = `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">` +
			`<image xlink:href="` + pngURL + `"/></svg>`
		svgFragment = `<svg><image xlink:href="` + pngURL + `"></image></svg><p>a&nbsp;b<br></p>`

		// Rendered forms of the image element in each mode.
		asXML  = `<image xlink:href="{{ 'file-1.png' | file_img_url }}"/>`
		asHTML = `<svg><image xlink:href="{{ 'file-1.png' | file_img_url }}"></image></svg><p>a&nbsp;b<br></p>`
	)

	longText := strings.Repeat("A", 1100)

	tests := []struct {
		name     string
		stdin    string
		file     string // created under a temp dir when content is set
		content  string
		maxSize  int
		flags    func(in *main.InputFlags)
		want     string
		wantCode string
	}{
		{
			name:  "keeps UTF-8 text after a long ASCII prefix",
			stdin: `<img src="` + pngURL + `"><p>` + longText + ` café</p>`,
			want:  `<p>` + longText + ` café</p>`,
		},
		{
			name:  "parses markup starting with svg element as HTML",
			stdin: svgFragment,
			want:  asHTML,
		},
		{
			name:  "parses markup with XML declaration as SVG",
			stdin: `<?xml version="1.0"?>` + svgDoc,
			want:  asXML,
		},
		{
			name:  "parses markup with SVG doctype as SVG",
			stdin: `<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd">` + svgDoc,
			want:  asXML,
		},
		{
			name:  "skips comments before SVG doctype",
			stdin: "<!-- exported -->\n<!DOCTYPE svg>" + svgDoc,
			want:  asXML,
		},
		{
			name:  "strips byte order mark before XML declaration",
			stdin: "\ufeff<?xml version=\"1.0\"?>" + svgDoc,
			want:  asXML,
		},
		{
			name:  "forces SVG mode",
			stdin: svgDoc,
			flags: func(in *main.InputFlags) { in.SVG = true },
			want:  asXML,
		},
		{
			name:    "parses svg file as SVG",
			file:    "badge.svg",
			content: svgDoc,
			want:    asXML,
		},
		{
			name:    "forces HTML mode for svg file",
			file:    "badge.svg",
			content: svgFragment,
			flags:   func(in *main.InputFlags) { in.HTML = true },
			want:    asHTML,
		},
		{
			name:  "reads stdin for dash",
			stdin: svgFragment,
			flags: func(in *main.InputFlags) { in.File = "-" },
			want:  asHTML,
		},
		{
			name:     "rejects file with URL",
			file:     "page.html",
			flags:    func(in *main.InputFlags) { in.URL = "https://shop.example.com/" },
			wantCode: imgextract.EINVALID,
		},
		{
			name: "rejects URL with paste",
			flags: func(in *main.InputFlags) {
				in.URL = "https://shop.example.com/"
				in.Paste = true
			},
			wantCode: imgextract.EINVALID,
		},
		{
			name:     "rejects stdin over the size limit",
			stdin:    svgFragment,
			maxSize:  16,
			wantCode: imgextract.EINVALID,
		},
		{
			name:     "rejects file over the size limit",
			file:     "page.html",
			content:  svgFragment,
			maxSize:  16,
			wantCode: imgextract.EINVALID,
		},
		{
			name:     "returns not found for missing file",
			file:     "missing.html",
			wantCode: imgextract.ENOTFOUND,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			deps, stdout, _ := testDeps(tt.stdin)
			deps.Config.MaxInputSize = tt.maxSize
			cmd := &main.ExtractCmd{}
			if tt.file != "" {
				cmd.File = filepath.Join(t.TempDir(), tt.file)
				if tt.content != "" {
					require.NoError(t, os.WriteFile(cmd.File, []byte(tt.content), 0o600))
				}
			}
			if tt.flags != nil {
				tt.flags(&cmd.InputFlags)
			}

			err := cmd.Run(deps)

			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, imgextract.ErrorCode(err))
				return
			}
			require.NoError(t, err)
			assert.Contains(t, stdout.String(), tt.want)
		})
	}
}
