// Package imgextract extracts base64-encoded images embedded in HTML markup
// and rewrites the markup so each image is referenced through a Liquid
// file_img_url placeholder instead of an inline data URL.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, etree/, rod/).
package imgextract
