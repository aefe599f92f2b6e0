// Package convert routes a conversion request to the right adapter
// based on the (input, output) format pair.
package convert

import (
	"errors"
	"fmt"

	"fileconv/codec"
	"fileconv/format"
	"fileconv/pdf"
)

var (
	// ErrEmptyPayload means the request carried no binary data.
	ErrEmptyPayload = errors.New("empty payload")
	// ErrInvalidFormat means a designator failed normalization.
	ErrInvalidFormat = errors.New("unsupported or missing format")
	// ErrUnsupportedConversion means both formats are valid but the
	// pairing has no conversion path.
	ErrUnsupportedConversion = errors.New("conversion not supported")
)

// Result is the converted payload plus its MIME type.
type Result struct {
	Data   []byte
	Format format.Format
	MIME   string
}

// Convert re-encodes data from rawIn to rawOut. The page index applies
// only to document sources and is 0-based.
//
// Routing:
//
//	image → image   codec re-encode
//	pdf   → image   rasterize page, then encode
//	image → pdf     decode, wrap as one-page document
//	pdf   → pdf     byte passthrough
func Convert(data []byte, rawIn, rawOut string, page int) (*Result, error) {
	if len(data) == 0 {
		return nil, ErrEmptyPayload
	}
	in, ok := format.Normalize(rawIn)
	if !ok {
		return nil, fmt.Errorf("%w: input format %q", ErrInvalidFormat, rawIn)
	}
	out, ok := format.Normalize(rawOut)
	if !ok {
		return nil, fmt.Errorf("%w: output format %q", ErrInvalidFormat, rawOut)
	}

	switch {
	case in.IsImage() && out.IsImage():
		return reencodeImage(data, in, out)
	case in == format.PDF && out.IsImage():
		return rasterizePage(data, out, page)
	case in.IsImage() && out == format.PDF:
		return wrapImage(data, in)
	case in == format.PDF && out == format.PDF:
		// Identity passthrough, no re-encode.
		return &Result{Data: data, Format: format.PDF, MIME: format.PDF.MIME()}, nil
	default:
		return nil, fmt.Errorf("%w: %s to %s", ErrUnsupportedConversion, in, out)
	}
}

func reencodeImage(data []byte, in, out format.Format) (*Result, error) {
	img, err := codec.Decode(data, in)
	if err != nil {
		return nil, err
	}
	encoded, err := codec.Encode(img, out)
	if err != nil {
		return nil, err
	}
	return &Result{Data: encoded, Format: out, MIME: out.MIME()}, nil
}

func rasterizePage(data []byte, out format.Format, page int) (*Result, error) {
	doc, err := pdf.Open(data)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	img, err := doc.RenderPage(page)
	if err != nil {
		return nil, err
	}
	encoded, err := codec.Encode(img, out)
	if err != nil {
		return nil, err
	}
	return &Result{Data: encoded, Format: out, MIME: out.MIME()}, nil
}

func wrapImage(data []byte, in format.Format) (*Result, error) {
	img, err := codec.Decode(data, in)
	if err != nil {
		return nil, err
	}
	wrapped, err := pdf.FromImage(img)
	if err != nil {
		return nil, err
	}
	return &Result{Data: wrapped, Format: format.PDF, MIME: format.PDF.MIME()}, nil
}
