package imgextract

// Placeholder returns the Liquid expression that resolves name to the
// hosted URL of an uploaded store file.
//
// The format is consumed by Shopify's template renderer and must not change.
func Placeholder(name string) string {
	return "{{ '" + name + "' | file_img_url }}"
}
