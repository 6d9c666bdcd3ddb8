package codec

import (
	"fmt"
	"image"
	"strings"
	"sync"
)

// Registry holds the encoders known to this process, keyed by format.
type Registry struct {
	mu       sync.RWMutex
	encoders map[string]Encoder
}

// NewRegistry creates a registry with the built-in encoders.
// Availability is probed lazily by Get.
func NewRegistry() *Registry {
	r := &Registry{
		encoders: make(map[string]Encoder),
	}
	for _, enc := range []Encoder{
		&BMPEncoder{},
		&JPEGEncoder{},
		&PNGEncoder{},
		&WebPEncoder{},
	} {
		r.Register(enc)
	}
	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Register adds or replaces the encoder for enc.Format().
func (r *Registry) Register(enc Encoder) {
	r.mu.Lock()
	r.encoders[strings.ToLower(enc.Format())] = enc
	r.mu.Unlock()
}

// Get returns an available encoder for the given format, or nil.
func (r *Registry) Get(format string) Encoder {
	r.mu.RLock()
	enc := r.encoders[strings.ToLower(format)]
	r.mu.RUnlock()
	if enc == nil || !enc.Available() {
		return nil
	}
	return enc
}

// Encode runs the encoder registered for format.
func (r *Registry) Encode(format string, img image.Image, quality int) ([]byte, error) {
	enc := r.Get(format)
	if enc == nil {
		return nil, fmt.Errorf("no %s encoder available", format)
	}
	return enc.Encode(img, quality)
}

// Available returns all available format names in a stable order.
func (r *Registry) Available() []string {
	var result []string
	for _, f := range []string{"bmp", "jpeg", "png", "webp"} {
		if r.Get(f) != nil {
			result = append(result, f)
		}
	}
	return result
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	avail := r.Available()
	if len(avail) == 0 {
		return "no encoders available"
	}
	return fmt.Sprintf("encoders: %s", strings.Join(avail, ", "))
}
