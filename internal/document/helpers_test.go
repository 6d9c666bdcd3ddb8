package document

import (
	"encoding/base64"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/AnyUserName/imgdoc/internal/codec"
)

// 1x1 lossless WebP.
const tinyWebP = "UklGRhoAAABXRUJQVlA4TA0AAAAvAAAAEAcQERGIiP4HAA=="

func createPatternImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 3), G: uint8(y * 5), B: uint8(x * y), A: 255,
			})
		}
	}
	return img
}

func createAlphaImage(w, h int) *image.NRGBA {
	img := createPatternImage(w, h)
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = uint8(i % 200)
	}
	return img
}

// writeTestImage saves a w×h pattern as format f into dir/name.
func writeTestImage(t *testing.T, dir, name string, f Format, w, h int) string {
	t.Helper()
	doc, err := New(f, createPatternImage(w, h))
	if err != nil {
		t.Fatalf("New(%s): %v", f, err)
	}
	path := filepath.Join(dir, name)
	if _, err := doc.Save(path); err != nil {
		t.Fatalf("save %s: %v", path, err)
	}
	return path
}

func writeTinyWebP(t *testing.T, dir string) string {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(tinyWebP)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "tiny.webp")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func webpAvailable() bool {
	return codec.Default().Get("webp") != nil
}

func mustSize(t *testing.T, doc *Document) Size {
	t.Helper()
	s, err := doc.Size()
	if err != nil {
		t.Fatalf("Size: %v", err)
	}
	return s
}
