package document

import (
	"errors"
	"image"
	"io"
	"io/fs"
	"os"

	"github.com/AnyUserName/imgdoc/internal/codec"
)

// Config selects which backends a Dispatcher serves and how.
type Config struct {
	// Formats enables or disables built-in formats. Formats missing from a
	// non-nil map are disabled; a nil map enables every format.
	Formats map[Format]bool
	// EagerJPEG makes JPEG encode at Compress time and cache the bytes.
	EagerJPEG bool
	// Codecs supplies encoders. Nil means codec.Default().
	Codecs *codec.Registry
}

type formatEntry struct {
	enabled bool
	open    openFunc
	imp     importFunc
}

// Dispatcher builds documents from files or pixels and converts between
// formats through its format table. Disabled formats stay in the table
// and report ErrUnsupportedFileExtension.
type Dispatcher struct {
	codecs *codec.Registry
	table  map[Format]formatEntry
}

// NewDispatcher builds a dispatcher from cfg.
func NewDispatcher(cfg Config) *Dispatcher {
	codecs := cfg.Codecs
	if codecs == nil {
		codecs = codec.Default()
	}
	enabled := func(f Format) bool {
		if cfg.Formats == nil {
			return true
		}
		return cfg.Formats[f]
	}

	return &Dispatcher{
		codecs: codecs,
		table: map[Format]formatEntry{
			BMP:  {enabled: enabled(BMP), open: openBMP, imp: importBMP},
			JPEG: {enabled: enabled(JPEG), open: openJPEG(cfg.EagerJPEG), imp: importJPEG(cfg.EagerJPEG)},
			PNG:  {enabled: enabled(PNG), open: openPNG, imp: importPNG},
			WebP: {enabled: enabled(WebP), open: openWebP, imp: importWebP},
		},
	}
}

var defaultDispatcher = NewDispatcher(Config{})

// Open opens path with the default dispatcher.
func Open(path string) (*Document, error) { return defaultDispatcher.Open(path) }

// New creates an in-memory document with the default dispatcher.
func New(f Format, img image.Image) (*Document, error) { return defaultDispatcher.New(f, img) }

// NewEmpty creates a placeholder document with the default dispatcher.
func NewEmpty(img image.Image) *Document { return defaultDispatcher.NewEmpty(img) }

func (d *Dispatcher) entry(f Format) (formatEntry, error) {
	e, ok := d.table[f]
	if !ok || !e.enabled {
		return formatEntry{}, ErrUnsupportedFileExtension
	}
	return e, nil
}

// Open reads path, sniffs its format and decodes it. A path that does not
// exist yields an Empty document remembering the path, to be filled with
// SetPixels and converted before saving.
func (d *Dispatcher) Open(path string) (*Document, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return d.document(Empty, &emptyImage{base: newBase(d.codecs, nil, &fileRef{path: path})}), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, wrap(ErrFileOpen, err)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, wrap(ErrFileRead, err)
	}
	info, err := f.Stat()
	if err != nil {
		return nil, wrap(ErrMetadata, err)
	}

	format, err := Sniff(raw)
	if err != nil {
		return nil, err
	}
	e, err := d.entry(format)
	if err != nil {
		return nil, err
	}
	b, err := e.open(d.codecs, &fileRef{path: path, info: info}, raw)
	if err != nil {
		return nil, err
	}
	return d.document(format, b), nil
}

// New creates a document of format f from pixels, with no source file.
func (d *Dispatcher) New(f Format, img image.Image) (*Document, error) {
	if f == Empty {
		return d.NewEmpty(img), nil
	}
	e, err := d.entry(f)
	if err != nil {
		return nil, err
	}
	b, err := e.imp(d.codecs, img, nil)
	if err != nil {
		return nil, err
	}
	return d.document(f, b), nil
}

// NewEmpty creates a placeholder document. img may be nil.
func (d *Dispatcher) NewEmpty(img image.Image) *Document {
	b, _ := importEmpty(d.codecs, img, nil)
	return d.document(Empty, b)
}

// convert builds a fresh backend of format to from the pixels, source
// path and source metadata of b. Pending compression state is not carried.
func (d *Dispatcher) convert(b Backend, to Format) (Backend, error) {
	if to == Empty {
		return nil, ErrUnsupportedFileExtension
	}
	e, err := d.entry(to)
	if err != nil {
		return nil, err
	}
	img, err := b.Pixels()
	if err != nil {
		return nil, err
	}
	var src *fileRef
	if path, ok := b.SourcePath(); ok {
		src = &fileRef{path: path, info: b.SourceInfo()}
	}
	return e.imp(d.codecs, img, src)
}

func (d *Dispatcher) document(f Format, b Backend) *Document {
	return &Document{format: f, backend: b, dispatcher: d}
}
