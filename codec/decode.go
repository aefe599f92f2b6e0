package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"fileconv/format"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// decoders is keyed by the caller-declared canonical format. The
// format is always asserted by the caller, so a mismatched payload is
// a decode error, not a reason to sniff.
var decoders = map[format.Format]func(io.Reader) (image.Image, error){
	format.PNG:  png.Decode,
	format.JPEG: jpeg.Decode,
	format.GIF:  gif.Decode,
	format.WebP: webp.Decode,
	format.BMP:  bmp.Decode,
	format.TIFF: tiff.Decode,
}

// Decode decodes a payload declared to be in raster format f. Any
// color mode the underlying decoder produces is accepted as-is.
func Decode(data []byte, f format.Format) (image.Image, error) {
	dec, ok := decoders[f]
	if !ok {
		return nil, fmt.Errorf("%w: no decoder for %s", ErrUnavailable, f)
	}
	img, err := dec(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, f, err)
	}
	return img, nil
}
