// Package pixel wraps the pixel transforms used by document backends.
//
// Every function returns a freshly allocated buffer whose bounds start at
// (0,0); inputs are never modified.
package pixel

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Scale returns the dimensions of a w×h image scaled by ratio percent,
// truncated to whole pixels.
func Scale(w, h, ratio int) (int, int) {
	return w * ratio / 100, h * ratio / 100
}

// Resize scales img by ratio percent using a Lanczos filter.
func Resize(img image.Image, ratio int) *image.NRGBA {
	b := img.Bounds()
	w, h := Scale(b.Dx(), b.Dy(), ratio)
	if w <= 0 || h <= 0 {
		// imaging.Resize treats a zero side as "keep aspect ratio".
		return image.NewNRGBA(image.Rect(0, 0, imax(w, 0), imax(h, 0)))
	}
	return imaging.Resize(img, w, h, imaging.Lanczos)
}

// Crop cuts the w×h region at (x,y), relative to the image origin.
// The region must lie inside the image.
func Crop(img image.Image, x, y, w, h int) *image.NRGBA {
	if w <= 0 || h <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, imax(w, 0), imax(h, 0)))
	}
	o := img.Bounds().Min
	return imaging.Crop(img, image.Rect(o.X+x, o.Y+y, o.X+x+w, o.Y+y+h))
}

// Grayscale returns a grayscale copy of img. Alpha is preserved.
func Grayscale(img image.Image) *image.NRGBA {
	return imaging.Grayscale(img)
}

// HasAlpha reports whether img has any pixel that is not fully opaque.
func HasAlpha(img image.Image) bool {
	switch src := img.(type) {
	case *image.NRGBA:
		for i := 3; i < len(src.Pix); i += 4 {
			if src.Pix[i] < 255 {
				return true
			}
		}
		return false
	case *image.RGBA:
		for i := 3; i < len(src.Pix); i += 4 {
			if src.Pix[i] < 255 {
				return true
			}
		}
		return false
	case *image.YCbCr, *image.Gray, *image.Gray16, *image.CMYK:
		return false
	default:
		bounds := img.Bounds()
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				_, _, _, a := img.At(x, y).RGBA()
				if a < 0xffff {
					return true
				}
			}
		}
		return false
	}
}

// RemoveAlpha drops the alpha channel of img, keeping the color channels
// at the same bit depth. Images without transparency are returned as is.
func RemoveAlpha(img image.Image) image.Image {
	if !HasAlpha(img) {
		return img
	}

	switch img.(type) {
	case *image.NRGBA64, *image.RGBA64:
		b := img.Bounds()
		dst := image.NewNRGBA64(image.Rect(0, 0, b.Dx(), b.Dy()))
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				c := color.NRGBA64Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA64)
				c.A = 0xffff
				dst.SetNRGBA64(x, y, c)
			}
		}
		return dst
	default:
		dst := imaging.Clone(img)
		for i := 3; i < len(dst.Pix); i += 4 {
			dst.Pix[i] = 255
		}
		return dst
	}
}

func imax(a, b int) int {
	if a > b {
		return a
	}
	return b
}
