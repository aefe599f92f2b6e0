// Package format holds the canonical format table: the supported
// designators, their aliases and their MIME types. Normalize is the
// single source of truth for format validity; nothing else in the
// service matches format strings by hand.
package format

import "strings"

// Format is a canonical lowercase format identifier.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	WebP Format = "webp"
	BMP  Format = "bmp"
	GIF  Format = "gif"
	TIFF Format = "tiff"
	PDF  Format = "pdf"
)

// aliases maps accepted shorthand designators to canonical names.
var aliases = map[string]Format{
	"jpg": JPEG,
	"tif": TIFF,
}

// images is the set of supported raster formats. PDF is the only
// document format and is tracked separately.
var images = map[Format]bool{
	PNG:  true,
	JPEG: true,
	WebP: true,
	BMP:  true,
	GIF:  true,
	TIFF: true,
}

var mimeTypes = map[Format]string{
	PNG:  "image/png",
	JPEG: "image/jpeg",
	WebP: "image/webp",
	BMP:  "image/bmp",
	GIF:  "image/gif",
	TIFF: "image/tiff",
	PDF:  "application/pdf",
}

// Normalize trims, lowercases and alias-resolves a raw designator and
// reports whether it names a supported format. Empty or unrecognized
// input returns ("", false); it never panics.
func Normalize(raw string) (Format, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", false
	}
	f := Format(s)
	if alias, ok := aliases[s]; ok {
		f = alias
	}
	if images[f] || f == PDF {
		return f, true
	}
	return "", false
}

// IsImage reports whether f is one of the supported raster formats.
func (f Format) IsImage() bool {
	return images[f]
}

// MIME returns the MIME type for f.
func (f Format) MIME() string {
	if m, ok := mimeTypes[f]; ok {
		return m
	}
	return "application/octet-stream"
}

// Ext returns the file extension for f, without the dot.
func (f Format) Ext() string {
	return string(f)
}

// Designators returns every accepted designator, aliases included, for
// the capability listing.
func Designators() []string {
	return []string{"png", "jpeg", "jpg", "webp", "bmp", "gif", "tiff", "tif", "pdf"}
}
