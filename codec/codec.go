// Package codec decodes and encodes the supported raster formats.
// Decoders are a fixed table; encoders are a registry keyed by target
// format so a missing codec surfaces as ErrUnavailable rather than a
// panic.
package codec

import (
	"errors"
	"fmt"
	"image"

	"fileconv/format"
	"fileconv/logger"

	"github.com/davidbyttow/govips/v2/vips"
)

var (
	// ErrDecode means the payload did not decode as the declared format.
	ErrDecode = errors.New("decode failed")
	// ErrEncode means the codec failed on a valid raster.
	ErrEncode = errors.New("encode failed")
	// ErrUnavailable means no encoder is registered for the target format.
	ErrUnavailable = errors.New("encoder unavailable")
)

// EncodeFunc is the function signature for any encoder
type EncodeFunc func(img image.Image) ([]byte, error)

// Registry maps target format → encoder function
var Registry = map[format.Format]EncodeFunc{}

// Register adds an encoder for the given format, logging the addition
func Register(f format.Format, fn EncodeFunc) {
	Registry[f] = fn
	logger.Debugf("encoder [%s] registered", f)
}

// Get looks up an encoder by target format
func Get(f format.Format) (EncodeFunc, bool) {
	fn, ok := Registry[f]
	return fn, ok
}

// RegisterDefaults registers the encoders for all six raster formats
func RegisterDefaults() {
	Register(format.PNG, encodePNG)
	Register(format.JPEG, encodeJPEG)
	Register(format.WebP, encodeWebP)
	Register(format.BMP, encodeBMP)
	Register(format.GIF, encodeGIF)
	Register(format.TIFF, encodeTIFF)
}

// Init starts libvips (used for the jpeg and webp exports) and
// registers the default encoders. Call once at startup, pair with
// Shutdown.
func Init() {
	vips.LoggingSettings(func(messageDomain string, messageLevel vips.LogLevel, message string) {
		logger.Debugf("vips [%s]: %s", messageDomain, message)
	}, vips.LogLevelError)
	vips.Startup(nil)
	RegisterDefaults()
}

// Shutdown releases libvips resources.
func Shutdown() {
	vips.Shutdown()
}

// Encode re-encodes a decoded raster into the target format using the
// fixed per-format quality policy.
func Encode(img image.Image, f format.Format) ([]byte, error) {
	fn, ok := Get(f)
	if !ok {
		return nil, fmt.Errorf("%w: no encoder for %s", ErrUnavailable, f)
	}
	out, err := fn(img)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrEncode, f, err)
	}
	return out, nil
}
