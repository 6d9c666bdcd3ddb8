package codec

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

// Decode decodes raw as the named format ("bmp", "jpeg", "png", "webp").
// The caller has already sniffed the format; no second guess is made.
func Decode(format string, raw []byte) (image.Image, error) {
	r := bytes.NewReader(raw)
	switch format {
	case "bmp":
		return bmp.Decode(r)
	case "webp":
		return webp.Decode(r)
	case "jpeg", "png":
		img, err := imaging.Decode(r)
		if err != nil {
			return nil, err
		}
		return img, nil
	default:
		return nil, fmt.Errorf("no decoder for %q", format)
	}
}
