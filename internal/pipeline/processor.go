package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/AnyUserName/imgdoc/internal/document"
	"github.com/AnyUserName/imgdoc/internal/hasher"
	"github.com/AnyUserName/imgdoc/internal/manifest"
	"github.com/AnyUserName/imgdoc/internal/pixel"
)

// processResult holds the result of processing a single source image.
type processResult struct {
	key   string
	entry manifest.Entry
	err   error
}

// claims hands out output paths so two sources never write the same file.
type claims struct {
	mu    sync.Mutex
	owner map[string]string
}

func (c *claims) claim(path, by string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.owner[path]; ok {
		return prev, false
	}
	c.owner[path] = by
	return "", true
}

// processImage handles a single source: open, apply the profile, save into
// the mirrored output directory, hash both sides.
func processImage(src Source, cfg Config, docs *document.Dispatcher, outputs *claims) processResult {
	result := processResult{key: src.RelPath}

	doc, err := docs.Open(src.AbsPath)
	if err != nil {
		result.err = fmt.Errorf("open %s: %w", src.RelPath, err)
		return result
	}
	if doc.Format() != src.Format {
		result.err = fmt.Errorf("%s: changed since scan (was %s, now %s)", src.RelPath, src.Format, doc.Format())
		return result
	}

	srcHash, err := hasher.HashFile(src.AbsPath, hasher.ReportLen)
	if err != nil {
		result.err = fmt.Errorf("hash %s: %w", src.RelPath, err)
		return result
	}
	srcSize, err := doc.Size()
	if err != nil {
		result.err = fmt.Errorf("size %s: %w", src.RelPath, err)
		return result
	}
	img, err := doc.Pixels()
	if err != nil {
		result.err = fmt.Errorf("pixels %s: %w", src.RelPath, err)
		return result
	}
	result.entry.Source = manifest.FileInfo{
		Path:     src.RelPath,
		Format:   doc.Format().String(),
		Width:    srcSize.Width,
		Height:   srcSize.Height,
		Size:     src.Size,
		Hash:     srcHash,
		HasAlpha: pixel.HasAlpha(img),
	}

	if err := cfg.Profile.Apply(doc); err != nil {
		result.err = fmt.Errorf("%s: %w", src.RelPath, err)
		return result
	}

	// Mirror the source layout under the output directory.
	outDir := filepath.Join(cfg.OutputDir, filepath.Dir(filepath.FromSlash(src.RelPath)))
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		result.err = fmt.Errorf("create %s: %w", outDir, err)
		return result
	}

	outPath, err := doc.OutputPath(outDir)
	if err != nil {
		result.err = fmt.Errorf("resolve output for %s: %w", src.RelPath, err)
		return result
	}
	if prev, ok := outputs.claim(outPath, src.RelPath); !ok {
		result.err = fmt.Errorf("%s: output %s already written for %s", src.RelPath, outPath, prev)
		return result
	}

	status, err := doc.Save(outPath)
	if err != nil {
		result.err = fmt.Errorf("save %s: %w", src.RelPath, err)
		return result
	}
	outSize, err := doc.Size()
	if err != nil {
		result.err = fmt.Errorf("size %s: %w", status.OutputPath, err)
		return result
	}
	var written int64
	if status.AfterSize != nil {
		written = *status.AfterSize
	}

	// Same format, same pixels, more bytes: keep the source bytes instead.
	if cfg.NoRegressSize && !cfg.Profile.EditsPixels() && doc.Format() == src.Format && written > src.Size {
		if cfg.Verbose {
			fmt.Fprintf(os.Stderr, "[imgdoc] regress: %s encoded %d > original %d bytes, keeping original\n",
				src.RelPath, written, src.Size)
		}
		if err := copyFile(src.AbsPath, status.OutputPath); err != nil {
			result.err = fmt.Errorf("restore %s: %w", src.RelPath, err)
			return result
		}
		written = src.Size
		result.entry.Regressed = true
	}

	outHash, err := hasher.HashFile(status.OutputPath, hasher.ReportLen)
	if err != nil {
		result.err = fmt.Errorf("hash %s: %w", status.OutputPath, err)
		return result
	}
	relOut, err := filepath.Rel(cfg.OutputDir, status.OutputPath)
	if err != nil {
		result.err = err
		return result
	}

	result.entry.Output = manifest.FileInfo{
		Path:   filepath.ToSlash(relOut),
		Format: doc.Format().String(),
		Width:  outSize.Width,
		Height: outSize.Height,
		Size:   written,
		Hash:   outHash,
	}
	result.entry.Identical = outHash == srcHash && written == src.Size
	return result
}

func copyFile(from, to string) error {
	data, err := os.ReadFile(from)
	if err != nil {
		return err
	}
	return os.WriteFile(to, data, 0o644)
}
