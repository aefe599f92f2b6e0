package pdf

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/phpdave11/gofpdf"
)

// makePDF builds an in-memory document with the given number of
// 100x100mm pages, each carrying a little text so pages are non-empty.
func makePDF(t *testing.T, pages int) []byte {
	t.Helper()
	doc := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: 100, Ht: 100},
	})
	doc.SetFont("Helvetica", "", 12)
	for i := 0; i < pages; i++ {
		doc.AddPage()
		doc.Cell(40, 10, "page")
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("failed to build test pdf: %v", err)
	}
	return buf.Bytes()
}

func TestOpenInvalid(t *testing.T) {
	for _, payload := range [][]byte{
		[]byte("not a pdf at all"),
		{0x89, 0x50, 0x4e, 0x47}, // png magic
	} {
		doc, err := Open(payload)
		if err == nil {
			doc.Close()
			t.Errorf("Open(%q...) should fail", payload[:4])
			continue
		}
		if !errors.Is(err, ErrInvalidDocument) {
			t.Errorf("Open should return ErrInvalidDocument, got %v", err)
		}
	}
}

func TestPageCount(t *testing.T) {
	doc, err := Open(makePDF(t, 3))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer doc.Close()

	if got := doc.PageCount(); got != 3 {
		t.Errorf("PageCount = %d, want 3", got)
	}
}

func TestRenderPageBounds(t *testing.T) {
	doc, err := Open(makePDF(t, 2))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer doc.Close()

	for _, page := range []int{-1, 2, 10} {
		_, err := doc.RenderPage(page)
		var pageErr *PageRangeError
		if !errors.As(err, &pageErr) {
			t.Errorf("RenderPage(%d) should return PageRangeError, got %v", page, err)
			continue
		}
		if pageErr.Page != page || pageErr.PageCount != 2 {
			t.Errorf("PageRangeError = %+v, want page %d of 2", pageErr, page)
		}
	}

	// The last valid index must succeed
	if _, err := doc.RenderPage(1); err != nil {
		t.Errorf("RenderPage(1) on a 2-page document failed: %v", err)
	}
}

func TestRenderPageScaleAndOpacity(t *testing.T) {
	doc, err := Open(makePDF(t, 1))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer doc.Close()

	img, err := doc.RenderPage(0)
	if err != nil {
		t.Fatalf("RenderPage failed: %v", err)
	}

	// 100mm at 144dpi is about 567px
	want := int(100.0 / 25.4 * 144.0)
	if dx := img.Bounds().Dx(); dx < want-2 || dx > want+2 {
		t.Errorf("rendered width = %dpx, want about %dpx", dx, want)
	}

	for _, p := range []image.Point{{0, 0}, {10, 10}, {img.Bounds().Dx() - 1, img.Bounds().Dy() - 1}} {
		_, _, _, a := img.At(p.X, p.Y).RGBA()
		if a != 0xffff {
			t.Errorf("rendered page is not opaque at %v", p)
		}
	}
}

func TestFromImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 96, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 96; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}

	wrapped, err := FromImage(src)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}

	doc, err := Open(wrapped)
	if err != nil {
		t.Fatalf("FromImage output does not open as a pdf: %v", err)
	}
	defer doc.Close()

	if got := doc.PageCount(); got != 1 {
		t.Errorf("wrapped document has %d pages, want 1", got)
	}
	if _, err := doc.RenderPage(0); err != nil {
		t.Errorf("rendering the wrapped page failed: %v", err)
	}
}
