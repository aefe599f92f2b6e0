package codec

import (
	"bytes"
	"image"
	"image/gif"
	"image/png"

	"github.com/davidbyttow/govips/v2/vips"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Per-format quality policy, fixed to favor fidelity over size:
// jpeg q95 with chroma subsampling off, webp q95, png default zlib
// level, tiff LZW, bmp and gif plain encodes.

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeBMP(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeGIF(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := gif.Encode(&buf, img, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeTIFF(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.LZW, Predictor: true}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encodeJPEG goes through libvips: the stdlib jpeg encoder cannot
// disable chroma subsampling. Alpha is dropped before export so vips
// never composites against a background.
func encodeJPEG(img image.Image) ([]byte, error) {
	ref, err := vipsImage(Flatten(img))
	if err != nil {
		return nil, err
	}
	defer ref.Close()

	params := vips.NewJpegExportParams()
	params.Quality = 95
	params.SubsampleMode = vips.VipsForeignSubsampleOff
	out, _, err := ref.ExportJpeg(params)
	return out, err
}

func encodeWebP(img image.Image) ([]byte, error) {
	ref, err := vipsImage(img)
	if err != nil {
		return nil, err
	}
	defer ref.Close()

	params := vips.NewWebpExportParams()
	params.Quality = 95
	out, _, err := ref.ExportWebp(params)
	return out, err
}

// vipsImage hands a decoded raster to libvips through a lossless PNG
// round-trip. libvips only loads from encoded buffers.
func vipsImage(img image.Image) (*vips.ImageRef, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.NoCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, err
	}
	return vips.NewImageFromBuffer(buf.Bytes())
}
