package pixel

import (
	"image"
	"image/color"
	"testing"
)

func gradient(w, h int, alpha uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 3), G: uint8(y * 5), B: uint8(x * y), A: alpha,
			})
		}
	}
	return img
}

func TestScale(t *testing.T) {
	tests := []struct {
		w, h, ratio  int
		wantW, wantH int
	}{
		{100, 100, 50, 50, 50},
		{100, 100, 100, 100, 100},
		{33, 17, 50, 16, 8},
		{10, 10, 250, 25, 25},
		{3, 3, 10, 0, 0},
	}
	for _, tt := range tests {
		w, h := Scale(tt.w, tt.h, tt.ratio)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("Scale(%d,%d,%d) = %dx%d, want %dx%d",
				tt.w, tt.h, tt.ratio, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestResize(t *testing.T) {
	img := gradient(80, 40, 255)

	out := Resize(img, 50)
	if out.Bounds().Dx() != 40 || out.Bounds().Dy() != 20 {
		t.Errorf("resize 50%%: got %dx%d, want 40x20", out.Bounds().Dx(), out.Bounds().Dy())
	}

	tiny := Resize(img, 1)
	if tiny.Bounds().Dx() != 0 || tiny.Bounds().Dy() != 0 {
		t.Errorf("resize 1%%: got %dx%d, want 0x0", tiny.Bounds().Dx(), tiny.Bounds().Dy())
	}
}

func TestCrop_OffsetOrigin(t *testing.T) {
	img := gradient(20, 20, 255)
	sub := img.SubImage(image.Rect(5, 5, 20, 20))

	out := Crop(sub, 1, 2, 4, 3)
	if out.Bounds().Dx() != 4 || out.Bounds().Dy() != 3 {
		t.Fatalf("crop: got %dx%d, want 4x3", out.Bounds().Dx(), out.Bounds().Dy())
	}
	want := img.NRGBAAt(6, 7)
	if got := out.NRGBAAt(0, 0); got != want {
		t.Errorf("crop origin pixel: got %v, want %v", got, want)
	}
}

func TestGrayscale(t *testing.T) {
	out := Grayscale(gradient(16, 16, 255))
	for i := 0; i < len(out.Pix); i += 4 {
		if out.Pix[i] != out.Pix[i+1] || out.Pix[i+1] != out.Pix[i+2] {
			t.Fatalf("pixel %d not gray: %v", i/4, out.Pix[i:i+3])
		}
	}
}

func TestRemoveAlpha(t *testing.T) {
	translucent := gradient(8, 8, 128)
	if !HasAlpha(translucent) {
		t.Fatal("HasAlpha should be true for A=128")
	}

	out := RemoveAlpha(translucent)
	if HasAlpha(out) {
		t.Error("RemoveAlpha left transparent pixels")
	}
	if _, ok := out.(*image.NRGBA); !ok {
		t.Errorf("8-bit input: got %T, want *image.NRGBA", out)
	}
	r, _, _, _ := out.At(3, 0).RGBA()
	if uint8(r>>8) != translucent.NRGBAAt(3, 0).R {
		t.Errorf("color channel changed: got %d, want %d", r>>8, translucent.NRGBAAt(3, 0).R)
	}

	deep := image.NewNRGBA64(image.Rect(0, 0, 2, 2))
	deep.SetNRGBA64(0, 0, color.NRGBA64{R: 1000, G: 2000, B: 3000, A: 10})
	if _, ok := RemoveAlpha(deep).(*image.NRGBA64); !ok {
		t.Error("16-bit input should stay 16-bit")
	}

	opaque := gradient(4, 4, 255)
	if RemoveAlpha(opaque) != image.Image(opaque) {
		t.Error("opaque image should be returned unchanged")
	}
}
