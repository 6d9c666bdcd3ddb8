package document

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func TestFitTrim(t *testing.T) {
	bounds := Size{Width: 100, Height: 100}
	tests := []struct {
		name         string
		r            Rect
		wantW, wantH int
		wantErr      bool
	}{
		{"inside", Rect{10, 10, 50, 50}, 50, 50, false},
		{"exact", Rect{0, 0, 100, 100}, 100, 100, false},
		{"overflow clamped", Rect{10, 10, 200, 200}, 90, 90, false},
		{"overflow one side", Rect{0, 95, 20, 20}, 20, 5, false},
		{"origin outside", Rect{150, 150, 50, 50}, 0, 0, true},
		{"origin on edge", Rect{100, 0, 1, 1}, 0, 0, true},
		{"negative", Rect{-1, 0, 10, 10}, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, err := fitTrim(bounds, tt.r)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTrim) {
					t.Fatalf("err = %v, want ErrInvalidTrim", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("got %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestResolveSavePath(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	if err := os.Mkdir(outDir, 0o755); err != nil {
		t.Fatal(err)
	}
	src := &fileRef{path: filepath.Join(dir, "photo.png")}

	tests := []struct {
		name    string
		src     *fileRef
		dest    string
		want    string
		wantErr error
	}{
		{"directory", src, outDir, filepath.Join(outDir, "photo.webp"), nil},
		{"file verbatim", src, filepath.Join(dir, "x.out"), filepath.Join(dir, "x.out"), nil},
		{"missing file verbatim", nil, filepath.Join(dir, "nope", "y.png"), filepath.Join(dir, "nope", "y.png"), nil},
		{"no dest", src, "", filepath.Join(dir, "photo.webp"), nil},
		{"directory without source", nil, outDir, "", ErrSourcePathRequired},
		{"no dest without source", nil, "", "", ErrSourcePathRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveSavePath(tt.src, tt.dest, "webp")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWithExt(t *testing.T) {
	tests := map[string]string{
		"a.png":        "a.bmp",
		"dir/a.tar.gz": "dir/a.tar.bmp",
		"noext":        "noext.bmp",
	}
	for in, want := range tests {
		if got := withExt(in, "bmp"); got != want {
			t.Errorf("withExt(%q) = %q, want %q", in, got, want)
		}
	}
	if got := withExt("a.png", ""); got != "a" {
		t.Errorf("empty ext: got %q", got)
	}
}

func TestPNGLevel(t *testing.T) {
	q := func(v int) *int { return &v }
	tests := []struct {
		quality *int
		want    int
	}{
		{nil, 5},
		{q(0), 1},
		{q(10), 1},
		{q(17), 1},
		{q(18), 2},
		{q(34), 2},
		{q(51), 3},
		{q(52), 4},
		{q(68), 4},
		{q(85), 5},
		{q(86), 6},
		{q(90), 6},
		{q(100), 6},
	}
	for _, tt := range tests {
		if got := pngLevel(tt.quality); got != tt.want {
			v := "nil"
			if tt.quality != nil {
				v = strconv.Itoa(*tt.quality)
			}
			t.Errorf("pngLevel(%s) = %d, want %d", v, got, tt.want)
		}
	}
}

func TestJPEGExt(t *testing.T) {
	tests := map[string]string{
		"a.jpeg": "jpeg",
		"a.JPG":  "JPG",
		"a.jpg":  "jpg",
		"a.png":  "jpg",
		"a":      "jpg",
	}
	for in, want := range tests {
		if got := jpegExt(in); got != want {
			t.Errorf("jpegExt(%q) = %q, want %q", in, got, want)
		}
	}
}
