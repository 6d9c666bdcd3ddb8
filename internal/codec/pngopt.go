package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/disintegration/imaging"
)

// PNG optimizer preset bounds. Higher levels try harder and run longer.
const (
	MinPNGLevel = 1
	MaxPNGLevel = 6
)

type pngPreset struct {
	zlib    []png.CompressionLevel
	gray    bool // try an 8-bit gray representation
	palette bool // try a paletted representation when <= 256 colors
}

var pngPresets = [MaxPNGLevel + 1]pngPreset{
	1: {zlib: []png.CompressionLevel{png.BestSpeed}},
	2: {zlib: []png.CompressionLevel{png.DefaultCompression}},
	3: {zlib: []png.CompressionLevel{png.DefaultCompression}, gray: true},
	4: {zlib: []png.CompressionLevel{png.BestCompression}, gray: true},
	5: {zlib: []png.CompressionLevel{png.BestCompression}, gray: true, palette: true},
	6: {
		zlib:    []png.CompressionLevel{png.BestSpeed, png.DefaultCompression, png.BestCompression},
		gray:    true,
		palette: true,
	},
}

// OptimizePNG losslessly re-encodes a PNG stream with the given preset
// level and returns the smallest result. The output is never larger than
// raw: if no candidate wins, a copy of raw is returned.
func OptimizePNG(raw []byte, level int) ([]byte, error) {
	if level < MinPNGLevel || level > MaxPNGLevel {
		return nil, fmt.Errorf("invalid optimizer level %d (want %d-%d)", level, MinPNGLevel, MaxPNGLevel)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("not png: %w", err)
	}

	preset := pngPresets[level]
	candidates := []image.Image{img}
	if !isDeep(img) {
		if preset.gray {
			if g := toGray(img); g != nil {
				candidates = append(candidates, g)
			}
		}
		if preset.palette {
			if p := toPaletted(img); p != nil {
				candidates = append(candidates, p)
			}
		}
	}

	var best []byte
	var buf bytes.Buffer
	for _, c := range candidates {
		for _, z := range preset.zlib {
			buf.Reset()
			if err := imaging.Encode(&buf, c, imaging.PNG, imaging.PNGCompressionLevel(z)); err != nil {
				return nil, fmt.Errorf("encode: %w", err)
			}
			if buf.Len() < len(raw) && (best == nil || buf.Len() < len(best)) {
				best = append([]byte(nil), buf.Bytes()...)
			}
		}
	}
	if best == nil {
		return append([]byte(nil), raw...), nil
	}
	return best, nil
}

func isDeep(img image.Image) bool {
	switch img.(type) {
	case *image.NRGBA64, *image.RGBA64, *image.Gray16:
		return true
	}
	return false
}

// toGray returns an 8-bit gray copy if every pixel is opaque and neutral.
func toGray(img image.Image) *image.Gray {
	if _, ok := img.(*image.Gray); ok {
		return nil
	}
	b := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			if c.A != 255 || c.R != c.G || c.G != c.B {
				return nil
			}
			dst.Pix[y*dst.Stride+x] = c.R
		}
	}
	return dst
}

// toPaletted returns a paletted copy if img uses at most 256 distinct colors.
func toPaletted(img image.Image) *image.Paletted {
	if _, ok := img.(*image.Paletted); ok {
		return nil
	}
	b := img.Bounds()
	index := make(map[color.NRGBA]uint8)
	var pal color.Palette
	dst := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), nil)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			i, ok := index[c]
			if !ok {
				if len(pal) == 256 {
					return nil
				}
				i = uint8(len(pal))
				index[c] = i
				pal = append(pal, c)
			}
			dst.Pix[y*dst.Stride+x] = i
		}
	}
	dst.Palette = pal
	return dst
}
