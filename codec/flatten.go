package codec

import (
	"image"
	"image/color"
)

// Flatten converts any raster to opaque NRGBA by dropping the alpha
// channel outright. No background compositing: the color channels are
// kept as-is, matching the fixed jpeg policy.
func Flatten(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	flat := image.NewNRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			c.A = 0xff
			flat.SetNRGBA(x, y, c)
		}
	}
	return flat
}
