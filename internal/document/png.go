package document

import (
	"image"

	"github.com/AnyUserName/imgdoc/internal/codec"
)

// pngImage compresses eagerly: Compress runs the optimizer and caches the
// result. Without a compress request, Save writes the bytes captured at
// open or import time, as long as the pixels have not changed since.
type pngImage struct {
	base

	raw    []byte
	rawOps int

	level    int // optimizer preset of the last Compress; 0 if none
	cache    []byte
	cacheOps int
}

// defaultPNGLevel is used when Compress gets no quality.
const defaultPNGLevel = 5

// pngLevel buckets a 0-100 quality onto optimizer presets 1-6.
func pngLevel(quality *int) int {
	if quality == nil {
		return defaultPNGLevel
	}
	switch q := *quality; {
	case q <= 17:
		return 1
	case q <= 34:
		return 2
	case q <= 51:
		return 3
	case q <= 68:
		return 4
	case q <= 85:
		return 5
	default:
		return 6
	}
}

func openPNG(c *codec.Registry, src *fileRef, raw []byte) (Backend, error) {
	if err := requireOpenInputs(src, raw); err != nil {
		return nil, err
	}
	img, err := codec.Decode("png", raw)
	if err != nil {
		return nil, wrap(ErrOpenImage, err)
	}
	return &pngImage{base: newBase(c, img, src), raw: raw}, nil
}

func importPNG(c *codec.Registry, img image.Image, src *fileRef) (Backend, error) {
	if img == nil {
		return nil, ErrImageNotSpecified
	}
	p := &pngImage{base: newBase(c, img, src)}
	if _, err := p.encoded(); err != nil {
		return nil, wrap(ErrSaveImage, err)
	}
	return p, nil
}

// encoded returns PNG bytes for the current pixels, reusing the snapshot
// when no edit happened since it was taken.
func (p *pngImage) encoded() ([]byte, error) {
	if p.raw != nil && p.rawOps == p.ops {
		return p.raw, nil
	}
	data, err := p.codecs.Encode("png", p.img, 0)
	if err != nil {
		return nil, err
	}
	p.raw = data
	p.rawOps = p.ops
	return data, nil
}

func (p *pngImage) Compress(quality *int) error {
	level := pngLevel(quality)
	src, err := p.encoded()
	if err != nil {
		return wrap(ErrCompress, err)
	}
	out, err := codec.OptimizePNG(src, level)
	if err != nil {
		return wrap(ErrCompress, err)
	}
	// Compress leaves ops alone: only pixel edits may retire the snapshot
	// the optimizer starts from.
	p.level = level
	p.cache = out
	p.cacheOps = p.ops
	return nil
}

func (p *pngImage) Extension() string { return "png" }

func (p *pngImage) Save(dest string) error {
	path, err := resolveSavePath(p.src, dest, p.Extension())
	if err != nil {
		return err
	}

	var data []byte
	switch {
	case p.cache != nil && p.cacheOps == p.ops:
		data = p.cache
	case p.level != 0:
		// Edited after Compress: re-run the requested preset.
		src, err := p.encoded()
		if err != nil {
			return wrap(ErrSaveImage, err)
		}
		if data, err = codec.OptimizePNG(src, p.level); err != nil {
			return wrap(ErrSaveImage, err)
		}
	default:
		if data, err = p.encoded(); err != nil {
			return wrap(ErrSaveImage, err)
		}
	}
	return p.write(path, data)
}
