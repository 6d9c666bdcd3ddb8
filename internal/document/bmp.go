package document

import (
	"image"

	"github.com/AnyUserName/imgdoc/internal/codec"
)

// bmpImage always encodes the live pixel buffer and rejects compression.
type bmpImage struct {
	base
}

func openBMP(c *codec.Registry, src *fileRef, raw []byte) (Backend, error) {
	if err := requireOpenInputs(src, raw); err != nil {
		return nil, err
	}
	img, err := codec.Decode("bmp", raw)
	if err != nil {
		return nil, wrap(ErrOpenImage, err)
	}
	return &bmpImage{base: newBase(c, img, src)}, nil
}

func importBMP(c *codec.Registry, img image.Image, src *fileRef) (Backend, error) {
	if img == nil {
		return nil, ErrImageNotSpecified
	}
	return &bmpImage{base: newBase(c, img, src)}, nil
}

func (b *bmpImage) Compress(*int) error {
	return ErrCannotCompress
}

func (b *bmpImage) Extension() string { return "bmp" }

func (b *bmpImage) Save(dest string) error {
	path, err := resolveSavePath(b.src, dest, b.Extension())
	if err != nil {
		return err
	}
	data, err := b.codecs.Encode("bmp", b.img, 0)
	if err != nil {
		return wrap(ErrSaveImage, err)
	}
	return b.write(path, data)
}
