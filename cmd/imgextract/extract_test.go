package main_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/imgextract"
	main "github.com/fwojciec/imgextract/cmd/imgextract"
	"github.com/fwojciec/imgextract/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("rewrites stdin markup to placeholders", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := testDeps(`<p><img src="` + pngURL + `"></p>`)

		err := (&main.ExtractCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, `<p><img src="{{ 'file-1.png' | file_img_url }}" loading="lazy"></p>`+"\n", stdout.String())
		assert.Empty(t, stderr.String())
	})

	t.Run("applies names and lazy loading by image ID", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(`<img src="` + pngURL + `"><img src="` + gifURL + `">`)
		cmd := &main.ExtractCmd{
			Names: map[int]string{2: "hero.gif"},
			Lazy:  map[int]bool{1: false},
		}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t,
			`<img src="{{ 'file-1.png' | file_img_url }}">`+
				`<img src="{{ 'hero.gif' | file_img_url }}" loading="lazy">`+"\n",
			stdout.String())
	})

	t.Run("returns not found for unknown image ID", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(`<img src="` + pngURL + `">`)
		cmd := &main.ExtractCmd{Names: map[int]string{7: "x.png"}}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, imgextract.ENOTFOUND, imgextract.ErrorCode(err))
		assert.Empty(t, stdout.String())
	})

	t.Run("rejects lazy loading for svg image", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := testDeps(`<div><svg><image xlink:href="` + pngURL + `"></image></svg></div>`)
		cmd := &main.ExtractCmd{Lazy: map[int]bool{1: true}}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, imgextract.EINVALID, imgextract.ErrorCode(err))
	})

	t.Run("echoes markup without images", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := testDeps(`<p>{{ 'logo.png' | asset_url }}</p>`)

		err := (&main.ExtractCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, `<p>{{ 'logo.png' | asset_url }}</p>`+"\n", stdout.String())
		assert.Contains(t, stderr.String(), "No embedded images found.")
	})

	t.Run("detects standalone svg documents", func(t *testing.T) {
		t.Parallel()

		input := `<?xml version="1.0"?>` +
			`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">` +
			`<image xlink:href="` + pngURL + `"/></svg>`
		deps, stdout, _ := testDeps(input)

		err := (&main.ExtractCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), `xlink:href="{{ 'file-1.png' | file_img_url }}"`)
		assert.Contains(t, stdout.String(), `xmlns:xlink="http://www.w3.org/1999/xlink"`)
		assert.NotContains(t, stdout.String(), "loading")
	})

	t.Run("applies configured lazy loading default", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(`<img src="` + pngURL + `">`)
		lazy := false
		deps.Config.LazyLoad = &lazy

		err := (&main.ExtractCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, `<img src="{{ 'file-1.png' | file_img_url }}">`+"\n", stdout.String())
	})

	t.Run("saves images to directory", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "images")
		deps, _, stderr := testDeps(`<img src="` + pngURL + `">`)
		cmd := &main.ExtractCmd{
			Names: map[int]string{1: "logo.png"},
			Dir:   dir,
		}

		err := cmd.Run(deps)

		require.NoError(t, err)
		data, err := os.ReadFile(filepath.Join(dir, "logo.png"))
		require.NoError(t, err)
		assert.Equal(t, pngBytes, data)
		assert.Contains(t, stderr.String(), "Saved 1 images to "+dir)
	})

	t.Run("saves to configured output directory", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "images")
		deps, _, _ := testDeps(`<img src="` + pngURL + `">`)
		deps.Config.OutputDir = dir

		err := (&main.ExtractCmd{}).Run(deps)

		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, "file-1.png"))
	})

	t.Run("aborts save when a name is invalid", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "images")
		deps, stdout, _ := testDeps(`<img src="` + pngURL + `"><img src="` + gifURL + `">`)
		cmd := &main.ExtractCmd{
			Names: map[int]string{2: "../escape.gif"},
			Dir:   dir,
		}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, imgextract.EINVALID, imgextract.ErrorCode(err))
		assert.NoDirExists(t, dir)
		assert.NoDirExists(t, dir+".tmp")
		assert.Empty(t, stdout.String())
	})

	t.Run("writes output file", func(t *testing.T) {
		t.Parallel()

		out := filepath.Join(t.TempDir(), "section.liquid")
		deps, stdout, _ := testDeps(`<img src="` + pngURL + `">`)
		cmd := &main.ExtractCmd{Output: out}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Empty(t, stdout.String())
		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, `<img src="{{ 'file-1.png' | file_img_url }}" loading="lazy">`, string(data))
	})

	t.Run("copies output to clipboard", func(t *testing.T) {
		t.Parallel()

		var copied string
		deps, _, stderr := testDeps(`<img src="` + pngURL + `">`)
		deps.Clipboard = &mock.Clipboard{
			WriteTextFn: func(text string) error {
				copied = text
				return nil
			},
		}
		cmd := &main.ExtractCmd{Copy: true}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, `<img src="{{ 'file-1.png' | file_img_url }}" loading="lazy">`, copied)
		assert.Contains(t, stderr.String(), "Copied generated code.")
	})

	t.Run("reads pasted markup from clipboard", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps("")
		deps.Clipboard = &mock.Clipboard{
			ReadTextFn: func() (string, error) {
				return `<img src="` + gifURL + `">`, nil
			},
		}
		cmd := &main.ExtractCmd{}
		cmd.Paste = true

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), `{{ 'file-1.gif' | file_img_url }}`)
	})

	t.Run("fetches markup from URL", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps("")
		deps.Fetcher = &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				assert.Equal(t, "https://shop.example.com/", url)
				return `<html><body><img src="` + pngURL + `"></body></html>`, nil
			},
		}
		cmd := &main.ExtractCmd{}
		cmd.URL = "https://shop.example.com/"

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, `<img src="{{ 'file-1.png' | file_img_url }}" loading="lazy">`+"\n", stdout.String())
	})
}
