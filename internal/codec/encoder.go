// Package codec holds the byte-level encode and decode services used by
// document backends. Backends treat every function here as a black box:
// pixels in, bytes out (or the reverse).
package codec

import (
	"image"
)

// Encoder encodes an image to a specific format.
type Encoder interface {
	// Format returns the format name (e.g. "jpeg", "webp", "png", "bmp").
	Format() string

	// Encode converts the image to bytes at the given quality (0-100).
	// Lossless encoders ignore quality.
	Encode(img image.Image, quality int) ([]byte, error)

	// Available returns true if the encoder is ready to use.
	// External encoders (cwebp) may not be installed.
	Available() bool

	// Extension returns the file extension without dot.
	Extension() string
}
