package document

import (
	"bytes"
	"errors"
	"strings"
)

// Format tags the encoding family of a document.
type Format string

const (
	BMP   Format = "bmp"
	JPEG  Format = "jpeg"
	PNG   Format = "png"
	WebP  Format = "webp"
	Empty Format = "empty"
)

// External names a format without a built-in backend. It is accepted as a
// value, but opening, creating or converting to it always fails with
// ErrUnsupportedFileExtension. Unlike ParseFormat it resolves no aliases,
// so External("jpg") stays external.
func External(name string) Format {
	return Format(strings.ToLower(strings.TrimPrefix(name, ".")))
}

// ParseFormat maps a user-supplied name to a Format. "jpg" is an alias
// for JPEG; matching is case-insensitive.
func ParseFormat(name string) Format {
	name = strings.ToLower(strings.TrimPrefix(name, "."))
	if name == "jpg" {
		return JPEG
	}
	return Format(name)
}

// IsExternal reports whether f has no built-in backend.
func (f Format) IsExternal() bool {
	switch f {
	case BMP, JPEG, PNG, WebP, Empty:
		return false
	}
	return true
}

func (f Format) String() string { return string(f) }

var (
	pngSignature  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	jpegSignature = []byte{0xFF, 0xD8, 0xFF}
	bmpSignature  = []byte("BM")
	riffSignature = []byte("RIFF")
	webpSignature = []byte("WEBP")
)

// Signatures of formats that are recognised but have no backend.
var unbacked = [][]byte{
	[]byte("GIF87a"),
	[]byte("GIF89a"),
	{0x49, 0x49, 0x2A, 0x00}, // TIFF, little endian
	{0x4D, 0x4D, 0x00, 0x2A}, // TIFF, big endian
}

// Sniff identifies the format of raw by its magic bytes. It never looks at
// file names. Unrecognised data fails with ErrOpenImage; recognised
// formats without a backend fail with ErrUnsupportedFileExtension.
func Sniff(raw []byte) (Format, error) {
	switch {
	case bytes.HasPrefix(raw, pngSignature):
		return PNG, nil
	case bytes.HasPrefix(raw, jpegSignature):
		return JPEG, nil
	case len(raw) >= 12 && bytes.HasPrefix(raw, riffSignature) && bytes.Equal(raw[8:12], webpSignature):
		return WebP, nil
	case bytes.HasPrefix(raw, bmpSignature):
		return BMP, nil
	}

	for _, sig := range unbacked {
		if bytes.HasPrefix(raw, sig) {
			return "", ErrUnsupportedFileExtension
		}
	}
	if len(raw) == 0 {
		return "", wrap(ErrOpenImage, errors.New("empty buffer"))
	}
	return "", wrap(ErrOpenImage, errors.New("unrecognised image format"))
}
