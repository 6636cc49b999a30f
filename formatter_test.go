package imgextract_test

import (
	"testing"

	"github.com/fwojciec/imgextract"
	"github.com/stretchr/testify/assert"
)

func TestFormatImages(t *testing.T) {
	t.Parallel()

	t.Run("formats img with lazy flag", func(t *testing.T) {
		t.Parallel()

		images := []*imgextract.Image{{
			ID:        1,
			Attr:      imgextract.AttrSrc,
			Tag:       "img",
			Name:      "file-1.png",
			MediaType: "image/png",
			LazyLoad:  true,
			Data:      make([]byte, 2048),
		}}

		result := imgextract.FormatImages(images)

		assert.Equal(t, "1  <img src>  file-1.png  image/png  2.0 KB  lazy=true", result)
	})

	t.Run("omits lazy flag for svg images", func(t *testing.T) {
		t.Parallel()

		images := []*imgextract.Image{{
			ID:        2,
			Attr:      imgextract.AttrXLinkHref,
			Tag:       "image",
			Name:      "file-2.gif",
			MediaType: "image/gif",
			Data:      make([]byte, 14),
		}}

		result := imgextract.FormatImages(images)

		assert.Equal(t, "2  <image xlink:href>  file-2.gif  image/gif  14 B", result)
	})

	t.Run("separates images with newlines", func(t *testing.T) {
		t.Parallel()

		images := []*imgextract.Image{
			{ID: 1, Attr: imgextract.AttrSrc, Tag: "image", Name: "a.png", MediaType: "image/png"},
			{ID: 3, Attr: imgextract.AttrSrc, Tag: "image", Name: "b.png", MediaType: "image/png"},
		}

		result := imgextract.FormatImages(images)

		assert.Equal(t, "1  <image src>  a.png  image/png  0 B\n3  <image src>  b.png  image/png  0 B", result)
	})

	t.Run("returns empty string for no images", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, imgextract.FormatImages(nil))
	})
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bytes int
		want  string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1536, "1.5 KB"},
		{3 * 1024 * 1024, "3.0 MB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, imgextract.FormatBytes(tt.bytes))
	}
}
