package codec

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
)

// BMPEncoder encodes uncompressed BMP.
type BMPEncoder struct{}

func (e *BMPEncoder) Format() string    { return "bmp" }
func (e *BMPEncoder) Extension() string { return "bmp" }
func (e *BMPEncoder) Available() bool   { return true }

func (e *BMPEncoder) Encode(img image.Image, _ int) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.BMP); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
