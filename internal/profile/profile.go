package profile

import (
	"errors"
	"fmt"
	"sort"

	"github.com/AnyUserName/imgdoc/internal/document"
)

// Profile is a named edit recipe applied to every document of a batch.
type Profile struct {
	Name        string
	Format      document.Format // target format; empty keeps the source format
	Quality     int             // compression quality 1-100; 0 leaves compression alone
	Resize      int             // resize ratio in percent; 0 keeps the size
	Grayscale   bool
	RemoveAlpha bool
}

// Built-in profiles.
var profiles = map[string]Profile{
	"keep": {
		Name: "keep",
	},
	"web": {
		Name:    "web",
		Format:  document.WebP,
		Quality: 80,
	},
	"thumbnail": {
		Name:        "thumbnail",
		Format:      document.JPEG,
		Quality:     70,
		Resize:      25,
		RemoveAlpha: true,
	},
	"archive": {
		Name:    "archive",
		Format:  document.PNG,
		Quality: 90,
	},
	"print": {
		Name:      "print",
		Format:    document.BMP,
		Grayscale: true,
	},
}

// DefaultName is the profile used when none is requested.
const DefaultName = "keep"

// Get returns a profile by name. Falls back to keep if unknown.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	p := profiles[DefaultName]
	p.Name = name // preserve requested name
	return p
}

// Lookup returns a built-in profile and whether it exists.
func Lookup(name string) (Profile, bool) {
	p, ok := profiles[name]
	return p, ok
}

// Names lists the built-in profiles, sorted.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Validate checks that the recipe can be applied.
func (p Profile) Validate() error {
	if p.Format != "" && (p.Format.IsExternal() || p.Format == document.Empty) {
		return fmt.Errorf("profile %s: %w: %s", p.Name, document.ErrUnsupportedFileExtension, p.Format)
	}
	if p.Quality < 0 || p.Quality > 100 {
		return fmt.Errorf("profile %s: %w: %d", p.Name, document.ErrInvalidCompressionLevel, p.Quality)
	}
	if p.Resize < 0 {
		return fmt.Errorf("profile %s: %w: %d", p.Name, document.ErrInvalidResizeRatio, p.Resize)
	}
	return nil
}

// EditsPixels reports whether the recipe changes pixels, as opposed to
// only re-encoding them.
func (p Profile) EditsPixels() bool {
	return p.Grayscale || p.RemoveAlpha || (p.Resize > 0 && p.Resize != 100)
}

// Apply runs the recipe on doc: alpha removal, resize, grayscale,
// conversion, then compression. Compressing a format that has no
// compression (BMP) is skipped.
func (p Profile) Apply(doc *document.Document) error {
	if p.RemoveAlpha {
		if err := doc.RemoveAlpha(); err != nil {
			return fmt.Errorf("remove alpha: %w", err)
		}
	}
	if p.Resize > 0 && p.Resize != 100 {
		if _, err := doc.Resize(p.Resize); err != nil {
			return fmt.Errorf("resize %d%%: %w", p.Resize, err)
		}
	}
	if p.Grayscale {
		doc.Grayscale()
	}
	if p.Format != "" && p.Format != doc.Format() {
		if err := doc.Convert(p.Format); err != nil {
			return fmt.Errorf("convert to %s: %w", p.Format, err)
		}
	}
	if p.Quality > 0 {
		err := doc.Compress(p.Quality)
		if err != nil && !errors.Is(err, document.ErrCannotCompress) {
			return fmt.Errorf("compress q%d: %w", p.Quality, err)
		}
	}
	return nil
}
