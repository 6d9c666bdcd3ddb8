//go:build ignore

// gen_fixtures creates small test images for the batch smoke test.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/AnyUserName/imgdoc/internal/document"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	if err := os.MkdirAll(filepath.Join(dir, "cards"), 0o755); err != nil {
		fail(err)
	}

	// Banner (JPEG, 400x225)
	write(filepath.Join(dir, "banner.jpg"), document.JPEG, gradient(400, 225), 85)

	// Cards (one per format, 200x150 each)
	for i, f := range []document.Format{document.PNG, document.BMP, document.JPEG} {
		name := fmt.Sprintf("card-%d.%s", i+1, f)
		write(filepath.Join(dir, "cards", name), f, solidWithBorder(200, 150, uint8((i+1)*60)), 0)
	}

	// Small alpha image
	write(filepath.Join(dir, "logo.png"), document.PNG, alphaGradient(100, 100), 0)

	// PNG content behind a misleading name; the scanner sniffs it anyway.
	write(filepath.Join(dir, "misnamed.dat"), document.PNG, gradient(64, 64), 0)

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 6 fixtures in %s\n", dir)
}

func write(path string, f document.Format, img image.Image, quality int) {
	doc, err := document.New(f, img)
	if err != nil {
		fail(err)
	}
	if quality > 0 {
		if err := doc.Compress(quality); err != nil {
			fail(err)
		}
	}
	if _, err := doc.Save(path); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "[gen_fixtures] %v\n", err)
	os.Exit(1)
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func solidWithBorder(w, h int, base uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: base, G: base + 40, B: base + 80, A: 255}
			if x < 4 || x >= w-4 || y < 4 || y >= h-4 {
				c = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func alphaGradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: 220, G: 60, B: 30,
				A: uint8(x * 255 / w),
			})
		}
	}
	return img
}
