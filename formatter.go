package imgextract

import (
	"fmt"
	"strings"
)

// FormatImages formats image records as one line per image for display.
// Lazy loading is only shown for images that support it.
func FormatImages(images []*Image) string {
	if len(images) == 0 {
		return ""
	}

	lines := make([]string, 0, len(images))
	for _, img := range images {
		line := fmt.Sprintf("%d  <%s %s>  %s  %s  %s",
			img.ID, img.Tag, img.Attr, img.Name, img.MediaType, FormatBytes(len(img.Data)))
		if img.Lazyable() {
			line += fmt.Sprintf("  lazy=%t", img.LazyLoad)
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
