package pipeline

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/AnyUserName/imgdoc/internal/document"
)

// Source represents a discovered image file.
type Source struct {
	// AbsPath is the absolute path to the file on disk.
	AbsPath string
	// RelPath is the slash-separated path relative to the input directory.
	// It doubles as the report key.
	RelPath string
	// Format is what the header looked like at scan time. It only filters
	// candidates; Dispatcher.Open sniffs the full bytes once more and its
	// answer is the one that counts.
	Format document.Format
	// Size is the file size in bytes.
	Size int64
}

// sniffLen covers the longest signature document.Sniff checks.
const sniffLen = 16

// ScanImages walks inputDir and returns every file whose header sniffs as
// a format with a backend. Hidden directories and the directories in skip
// are not entered.
func ScanImages(inputDir string, skip ...string) ([]Source, error) {
	skipped := make(map[string]bool, len(skip))
	for _, s := range skip {
		if abs, err := filepath.Abs(s); err == nil {
			skipped[abs] = true
		}
	}

	var sources []Source
	err := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == inputDir {
				return nil
			}
			if strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if abs, err := filepath.Abs(path); err == nil && skipped[abs] {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		format, err := sniffFile(path)
		if err != nil {
			// Not an image we can edit.
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(inputDir, path)
		if err != nil {
			return err
		}

		sources = append(sources, Source{
			AbsPath: path,
			RelPath: filepath.ToSlash(relPath),
			Format:  format,
			Size:    info.Size(),
		})
		return nil
	})

	return sources, err
}

// sniffFile pre-filters on the first bytes of path, so non-images are
// never opened.
func sniffFile(path string) (document.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", err
	}
	return document.Sniff(buf[:n])
}
