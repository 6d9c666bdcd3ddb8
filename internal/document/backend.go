package document

import (
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/AnyUserName/imgdoc/internal/codec"
	"github.com/AnyUserName/imgdoc/internal/pixel"
)

// Backend is the capability set every format implementation provides.
// Construction (open from bytes, import from pixels) goes through the
// Dispatcher's format table.
type Backend interface {
	// Save resolves the output path (see resolveSavePath), encodes by the
	// format's policy and writes the file. dest may be empty.
	Save(dest string) error
	// Compress records or applies a quality request. nil means default.
	Compress(quality *int) error
	Resize(ratio int) (Size, error)
	Trim(r Rect) (Size, error)
	Grayscale()
	SetPixels(img image.Image) error
	Pixels() (image.Image, error)
	RemoveAlpha() error
	// Extension is the file extension Save gives a resolved path.
	Extension() string

	SourcePath() (string, bool)
	SourceInfo() fs.FileInfo
	DestinationPath() (string, error)
	DestinationInfo() fs.FileInfo
	Size() (Size, error)
}

// defaultQuality applies when Compress was never called or called with nil.
const defaultQuality = 75

// fileRef is a path plus the metadata captured for it. info is nil when
// the file did not exist at capture time.
type fileRef struct {
	path string
	info fs.FileInfo
}

type (
	openFunc   func(c *codec.Registry, src *fileRef, raw []byte) (Backend, error)
	importFunc func(c *codec.Registry, img image.Image, src *fileRef) (Backend, error)
)

// base carries the state shared by all backends. The pixel buffer and
// size are only ever replaced together through setImage.
type base struct {
	codecs *codec.Registry
	img    image.Image
	size   Size
	ops    int
	src    *fileRef
	dst    *fileRef
}

func newBase(c *codec.Registry, img image.Image, src *fileRef) base {
	b := base{codecs: c, src: src}
	if img != nil {
		b.setImage(img)
	}
	return b
}

func (b *base) setImage(img image.Image) {
	b.img = img
	r := img.Bounds()
	b.size = Size{Width: r.Dx(), Height: r.Dy()}
}

func (b *base) Resize(ratio int) (Size, error) {
	if b.img == nil {
		return Size{}, ErrImageNotSpecified
	}
	b.setImage(pixel.Resize(b.img, ratio))
	b.ops++
	return b.size, nil
}

func (b *base) Trim(r Rect) (Size, error) {
	if b.img == nil {
		return Size{}, ErrImageNotSpecified
	}
	w, h, err := fitTrim(b.size, r)
	if err != nil {
		return Size{}, err
	}
	b.setImage(pixel.Crop(b.img, r.X, r.Y, w, h))
	b.ops++
	return b.size, nil
}

// fitTrim clamps the extent of r to the image. The origin must lie
// strictly inside the image.
func fitTrim(s Size, r Rect) (int, int, error) {
	if r.X < 0 || r.Y < 0 || r.W < 0 || r.H < 0 {
		return 0, 0, ErrInvalidTrim
	}
	if r.X >= s.Width || r.Y >= s.Height {
		return 0, 0, ErrInvalidTrim
	}
	return min(r.W, s.Width-r.X), min(r.H, s.Height-r.Y), nil
}

func (b *base) Grayscale() {
	if b.img == nil {
		return
	}
	b.setImage(pixel.Grayscale(b.img))
	b.ops++
}

func (b *base) SetPixels(img image.Image) error {
	if img == nil {
		return ErrImageNotSpecified
	}
	b.setImage(img)
	b.ops++
	return nil
}

// Pixels returns the live buffer. Callers must not modify it.
func (b *base) Pixels() (image.Image, error) {
	if b.img == nil {
		return nil, ErrImageNotSpecified
	}
	return b.img, nil
}

func (b *base) RemoveAlpha() error {
	if b.img == nil || b.size.Width == 0 || b.size.Height == 0 {
		return ErrImageNotSpecified
	}
	if !pixel.HasAlpha(b.img) {
		return nil
	}
	b.setImage(pixel.RemoveAlpha(b.img))
	b.ops++
	return nil
}

func (b *base) SourcePath() (string, bool) {
	if b.src == nil {
		return "", false
	}
	return b.src.path, true
}

func (b *base) SourceInfo() fs.FileInfo {
	if b.src == nil {
		return nil
	}
	return b.src.info
}

func (b *base) DestinationPath() (string, error) {
	if b.dst == nil {
		return "", ErrDestinationUnresolvable
	}
	return b.dst.path, nil
}

func (b *base) DestinationInfo() fs.FileInfo {
	if b.dst == nil {
		return nil
	}
	return b.dst.info
}

func (b *base) Size() (Size, error) {
	return b.size, nil
}

// write stores data at path and records the destination. b.dst is left
// untouched unless every step succeeds.
func (b *base) write(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return wrap(ErrCreateFile, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return wrap(ErrWriteFile, err)
	}
	if err := f.Close(); err != nil {
		return wrap(ErrWriteFile, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return wrap(ErrMetadata, err)
	}
	b.dst = &fileRef{path: path, info: info}
	return nil
}

// resolveSavePath picks the output path:
//   - dest is a directory: dest joined with the source base name, extension swapped
//   - dest is anything else: dest verbatim
//   - dest is empty: the source path, extension swapped
func resolveSavePath(src *fileRef, dest, ext string) (string, error) {
	if dest != "" {
		info, err := os.Stat(dest)
		if err != nil || !info.IsDir() {
			return dest, nil
		}
		if src == nil {
			return "", ErrSourcePathRequired
		}
		name := filepath.Base(src.path)
		if name == "." || name == string(filepath.Separator) {
			return "", ErrDestinationUnresolvable
		}
		return withExt(filepath.Join(dest, name), ext), nil
	}
	if src == nil {
		return "", ErrSourcePathRequired
	}
	return withExt(src.path, ext), nil
}

func withExt(path, ext string) string {
	path = strings.TrimSuffix(path, filepath.Ext(path))
	if ext == "" {
		return path
	}
	return path + "." + ext
}

// requireOpenInputs enforces that open received a path, its metadata and
// the raw bytes.
func requireOpenInputs(src *fileRef, raw []byte) error {
	if src == nil || src.info == nil || raw == nil {
		return ErrImageNotSpecified
	}
	return nil
}
