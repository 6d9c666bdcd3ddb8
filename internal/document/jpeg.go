package document

import (
	"image"
	"path/filepath"
	"strings"

	"github.com/AnyUserName/imgdoc/internal/codec"
	"github.com/AnyUserName/imgdoc/internal/pixel"
)

// jpegImage has two compression policies. The lazy one only records the
// quality and encodes at save time. The eager one encodes at Compress
// time and saves the cached bytes verbatim while no edit followed.
type jpegImage struct {
	base
	ext     string
	eager   bool
	quality *int

	cache    []byte
	cacheOps int
}

func openJPEG(eager bool) openFunc {
	return func(c *codec.Registry, src *fileRef, raw []byte) (Backend, error) {
		if err := requireOpenInputs(src, raw); err != nil {
			return nil, err
		}
		img, err := codec.Decode("jpeg", raw)
		if err != nil {
			return nil, wrap(ErrOpenImage, err)
		}
		return &jpegImage{
			base:  newBase(c, img, src),
			ext:   jpegExt(src.path),
			eager: eager,
		}, nil
	}
}

func importJPEG(eager bool) importFunc {
	return func(c *codec.Registry, img image.Image, src *fileRef) (Backend, error) {
		if img == nil {
			return nil, ErrImageNotSpecified
		}
		return &jpegImage{
			base:  newBase(c, pixel.RemoveAlpha(img), src),
			ext:   "jpg",
			eager: eager,
		}, nil
	}
}

// jpegExt keeps the spelling of the source extension when it is a JPEG one.
func jpegExt(path string) string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	switch strings.ToLower(ext) {
	case "jpg", "jpeg":
		return ext
	}
	return "jpg"
}

// SetPixels drops alpha, which JPEG cannot carry.
func (j *jpegImage) SetPixels(img image.Image) error {
	if img == nil {
		return ErrImageNotSpecified
	}
	return j.base.SetPixels(pixel.RemoveAlpha(img))
}

func (j *jpegImage) Compress(quality *int) error {
	q := defaultQuality
	if quality != nil {
		q = *quality
	}
	j.quality = &q
	j.ops++

	if !j.eager {
		return nil
	}
	data, err := j.codecs.Encode("jpeg", j.img, q)
	if err != nil {
		j.cache = nil
		return wrap(ErrCompress, err)
	}
	j.cache = data
	j.cacheOps = j.ops
	return nil
}

func (j *jpegImage) Extension() string { return j.ext }

func (j *jpegImage) Save(dest string) error {
	path, err := resolveSavePath(j.src, dest, j.Extension())
	if err != nil {
		return err
	}

	data := j.cache
	if data == nil || j.cacheOps != j.ops {
		q := defaultQuality
		if j.quality != nil {
			q = *j.quality
		}
		data, err = j.codecs.Encode("jpeg", j.img, q)
		if err != nil {
			return wrap(ErrSaveImage, err)
		}
	}
	return j.write(path, data)
}
