package document

import (
	"image"

	"github.com/AnyUserName/imgdoc/internal/codec"
)

// webpImage compresses lazily. A document opened from WebP bytes and
// saved with no edit in between is written back byte for byte.
type webpImage struct {
	base
	raw     []byte // source bytes; only set when opened from a WebP file
	quality *int
}

func openWebP(c *codec.Registry, src *fileRef, raw []byte) (Backend, error) {
	if err := requireOpenInputs(src, raw); err != nil {
		return nil, err
	}
	img, err := codec.Decode("webp", raw)
	if err != nil {
		return nil, wrap(ErrDecodeWebP, err)
	}
	return &webpImage{base: newBase(c, img, src), raw: raw}, nil
}

func importWebP(c *codec.Registry, img image.Image, src *fileRef) (Backend, error) {
	if img == nil {
		return nil, ErrImageNotSpecified
	}
	return &webpImage{base: newBase(c, img, src)}, nil
}

func (w *webpImage) Compress(quality *int) error {
	w.quality = quality
	w.ops++
	return nil
}

// passthrough reports whether the source bytes can be written unchanged.
func (w *webpImage) passthrough() bool {
	return w.raw != nil && w.ops == 0
}

func (w *webpImage) Extension() string { return "webp" }

func (w *webpImage) Save(dest string) error {
	path, err := resolveSavePath(w.src, dest, w.Extension())
	if err != nil {
		return err
	}
	if w.passthrough() {
		return w.write(path, w.raw)
	}

	q := defaultQuality
	if w.quality != nil {
		q = *w.quality
	}
	data, err := w.codecs.Encode("webp", w.img, q)
	if err != nil {
		return wrap(ErrSaveImage, err)
	}
	return w.write(path, data)
}
