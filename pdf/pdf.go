// Package pdf opens paged documents and rasterizes individual pages,
// and wraps a single raster as a one-page document for the reverse
// direction.
package pdf

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"github.com/gen2brain/go-fitz"
)

// ErrInvalidDocument means the payload is not a readable PDF.
var ErrInvalidDocument = errors.New("invalid document")

// renderDPI is twice the 72 DPI native page scale, enough raster
// detail for downstream re-encoding.
const renderDPI = 144

// PageRangeError reports a page index outside [0, PageCount).
type PageRangeError struct {
	Page      int
	PageCount int
}

func (e *PageRangeError) Error() string {
	return fmt.Sprintf("page %d out of range (document has %d pages)", e.Page, e.PageCount)
}

// Document is an open paged document. Close it on every path.
type Document struct {
	doc *fitz.Document
}

// Open parses an in-memory PDF stream.
func Open(data []byte) (*Document, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return &Document{doc: doc}, nil
}

// Close releases the underlying MuPDF handle.
func (d *Document) Close() error {
	return d.doc.Close()
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return d.doc.NumPage()
}

// RenderPage rasterizes the page at the given 0-based index. The
// result is always opaque: transparency is flattened onto white since
// most downstream formats cannot represent it.
func (d *Document) RenderPage(page int) (image.Image, error) {
	count := d.PageCount()
	if page < 0 || page >= count {
		return nil, &PageRangeError{Page: page, PageCount: count}
	}
	img, err := d.doc.ImageDPI(page, renderDPI)
	if err != nil {
		return nil, fmt.Errorf("render page %d: %w", page, err)
	}

	flat := image.NewNRGBA(img.Bounds())
	draw.Draw(flat, flat.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(flat, flat.Bounds(), img, img.Bounds().Min, draw.Over)
	return flat, nil
}
