package document

import (
	"errors"
	"fmt"
)

// Input and filesystem failures.
var (
	ErrFileOpen   = errors.New("imgdoc: failed to open file")
	ErrFileRead   = errors.New("imgdoc: failed to read file")
	ErrMetadata   = errors.New("imgdoc: failed to get metadata")
	ErrWriteFile  = errors.New("imgdoc: failed to write file")
	ErrCreateFile = errors.New("imgdoc: failed to create file")
)

// Decode and encode failures.
var (
	ErrOpenImage  = errors.New("imgdoc: failed to open image")
	ErrSaveImage  = errors.New("imgdoc: failed to save image")
	ErrDecodeWebP = errors.New("imgdoc: failed to decode webp")
	// ErrCompress wraps the encoder diagnostic, when there is one.
	ErrCompress = errors.New("imgdoc: failed to compress image")
)

// Contract violations.
var (
	ErrImageNotSpecified        = errors.New("imgdoc: image not specified")
	ErrSourcePathRequired       = errors.New("imgdoc: source path must be specified")
	ErrDestinationUnresolvable  = errors.New("imgdoc: destination filename cannot be resolved")
	ErrUnsupportedFileExtension = errors.New("imgdoc: unsupported file extension")
	ErrUnsupportedFeature       = errors.New("imgdoc: unsupported feature")
	ErrCannotCompress           = errors.New("imgdoc: this image format cannot be compressed")
	ErrInvalidTrim              = errors.New("imgdoc: invalid trim coordinates")
	ErrInvalidResizeRatio       = errors.New("imgdoc: invalid resize ratio")
	ErrInvalidCompressionLevel  = errors.New("imgdoc: invalid compression level")
)

// wrap tags cause with kind so that errors.Is matches both.
func wrap(kind, cause error) error {
	if cause == nil {
		return kind
	}
	return fmt.Errorf("%w: %w", kind, cause)
}
