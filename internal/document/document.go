package document

import (
	"image"
)

// Document is an editable image of some format. Edits go to the active
// backend; Convert swaps the backend for one of another format.
//
// A Document is not safe for concurrent use. Run one Document per
// goroutine instead.
type Document struct {
	format     Format
	backend    Backend
	dispatcher *Dispatcher
}

// Format returns the format of the active backend.
func (doc *Document) Format() Format {
	return doc.format
}

// Size returns the current geometry.
func (doc *Document) Size() (Size, error) {
	return doc.backend.Size()
}

// Resize scales both sides by ratio percent (Lanczos). ratio must be > 0.
func (doc *Document) Resize(ratio int) (Size, error) {
	if ratio <= 0 {
		return Size{}, ErrInvalidResizeRatio
	}
	return doc.backend.Resize(ratio)
}

// Trim crops to the w×h region at (x,y). An extent running past the image
// is clamped; an origin outside it fails with ErrInvalidTrim.
func (doc *Document) Trim(x, y, w, h int) (Size, error) {
	return doc.TrimRect(Rect{X: x, Y: y, W: w, H: h})
}

// TrimRect is Trim with a Rect.
func (doc *Document) TrimRect(r Rect) (Size, error) {
	return doc.backend.Trim(r)
}

// Grayscale converts the pixels to grayscale.
func (doc *Document) Grayscale() {
	doc.backend.Grayscale()
}

// Compress requests compression at quality 0-100. The last call before
// Save wins.
func (doc *Document) Compress(quality int) error {
	if quality < 0 || quality > 100 {
		return ErrInvalidCompressionLevel
	}
	return doc.backend.Compress(&quality)
}

// CompressDefault requests compression at the format's default setting.
func (doc *Document) CompressDefault() error {
	return doc.backend.Compress(nil)
}

// Convert replaces the backend with a new one of format to, built from the
// current pixels. Converting to the current format is allowed and yields a
// fresh backend. Pending compression requests are dropped.
func (doc *Document) Convert(to Format) error {
	b, err := doc.dispatcher.convert(doc.backend, to)
	if err != nil {
		return err
	}
	doc.format = to
	doc.backend = b
	return nil
}

// SetPixels replaces the pixel buffer.
func (doc *Document) SetPixels(img image.Image) error {
	return doc.backend.SetPixels(img)
}

// Pixels returns the pixel buffer. Callers must not modify it.
func (doc *Document) Pixels() (image.Image, error) {
	return doc.backend.Pixels()
}

// RemoveAlpha strips the alpha channel if the pixels carry one.
func (doc *Document) RemoveAlpha() error {
	return doc.backend.RemoveAlpha()
}

// SourcePath returns the path the document was opened from.
func (doc *Document) SourcePath() (string, error) {
	path, ok := doc.backend.SourcePath()
	if !ok {
		return "", ErrSourcePathRequired
	}
	return path, nil
}

// DestinationPath returns the path of the last successful save.
func (doc *Document) DestinationPath() (string, error) {
	return doc.backend.DestinationPath()
}

// OutputPath resolves the path Save(dest) would write to, without
// writing anything.
func (doc *Document) OutputPath(dest string) (string, error) {
	if doc.format == Empty {
		return "", ErrUnsupportedFeature
	}
	var src *fileRef
	if path, ok := doc.backend.SourcePath(); ok {
		src = &fileRef{path: path, info: doc.backend.SourceInfo()}
	}
	return resolveSavePath(src, dest, doc.backend.Extension())
}

// Save writes the document. dest may be a file path, a directory (the
// source file name is kept, with the format's extension) or empty (the
// source path, with the format's extension).
func (doc *Document) Save(dest string) (SaveStatus, error) {
	if err := doc.backend.Save(dest); err != nil {
		return SaveStatus{}, err
	}

	var status SaveStatus
	status.OutputPath, _ = doc.backend.DestinationPath()
	if info := doc.backend.SourceInfo(); info != nil {
		n := info.Size()
		status.BeforeSize = &n
	}
	if info := doc.backend.DestinationInfo(); info != nil {
		n := info.Size()
		status.AfterSize = &n
	}
	return status, nil
}
