package document

import (
	"image"

	"github.com/AnyUserName/imgdoc/internal/codec"
)

// emptyImage is a placeholder document. It may hold pixels and a source
// path, but it cannot be compressed or saved; convert it first.
type emptyImage struct {
	base
}

func importEmpty(c *codec.Registry, img image.Image, src *fileRef) (Backend, error) {
	return &emptyImage{base: newBase(c, img, src)}, nil
}

func (e *emptyImage) Compress(*int) error {
	return ErrCannotCompress
}

func (e *emptyImage) Extension() string { return "" }

func (e *emptyImage) Save(string) error {
	return ErrUnsupportedFeature
}

func (e *emptyImage) Size() (Size, error) {
	if e.img == nil {
		return Size{}, ErrImageNotSpecified
	}
	return e.size, nil
}

func (e *emptyImage) DestinationPath() (string, error) {
	return "", ErrUnsupportedFeature
}
