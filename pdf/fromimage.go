package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"fileconv/codec"

	"github.com/phpdave11/gofpdf"
)

// Page geometry assumes 96 DPI rasters; gofpdf pages are sized in mm.
const mmPerPixel = 25.4 / 96.0

// FromImage wraps a single decoded raster as a one-page PDF sized to
// the image. Alpha is dropped first, as in the jpeg policy.
func FromImage(img image.Image) ([]byte, error) {
	flat := codec.Flatten(img)

	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, flat); err != nil {
		return nil, fmt.Errorf("buffer page image: %w", err)
	}

	bounds := flat.Bounds()
	pageW := float64(bounds.Dx()) * mmPerPixel
	pageH := float64(bounds.Dy()) * mmPerPixel

	doc := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: pageW, Ht: pageH},
	})
	doc.SetMargins(0, 0, 0)
	doc.AddPageFormat("P", gofpdf.SizeType{Wd: pageW, Ht: pageH})

	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	doc.RegisterImageOptionsReader("page_0", opts, &pngBuf)
	doc.ImageOptions("page_0", 0, 0, pageW, pageH, false, opts, 0, "")

	var out bytes.Buffer
	if err := doc.Output(&out); err != nil {
		return nil, fmt.Errorf("assemble pdf: %w", err)
	}
	return out.Bytes(), nil
}
