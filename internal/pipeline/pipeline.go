package pipeline

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/AnyUserName/imgdoc/internal/codec"
	"github.com/AnyUserName/imgdoc/internal/document"
	"github.com/AnyUserName/imgdoc/internal/manifest"
	"github.com/AnyUserName/imgdoc/internal/profile"
)

// Config holds all parameters for a batch run.
type Config struct {
	InputDir      string
	OutputDir     string
	Profile       profile.Profile
	Workers       int
	Verbose       bool
	NoRegressSize bool // keep the source bytes when a plain re-encode grows the file
	// Document configures the dispatcher every worker opens files with.
	Document document.Config
}

// Pipeline runs a profile over a directory of images. Each source gets its
// own Document; documents are never shared between workers.
type Pipeline struct {
	cfg    Config
	codecs *codec.Registry
	docs   *document.Dispatcher
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Document.Codecs == nil {
		cfg.Document.Codecs = codec.Default()
	}
	return &Pipeline{
		cfg:    cfg,
		codecs: cfg.Document.Codecs,
		docs:   document.NewDispatcher(cfg.Document),
	}
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[imgdoc] "+format+"\n", args...)
	}
}

// Run processes every image under the input directory and returns the
// report. Individual failures are recorded in the report; Run only fails
// when nothing could be processed.
func (p *Pipeline) Run() (*manifest.Manifest, error) {
	if err := p.cfg.Profile.Validate(); err != nil {
		return nil, err
	}
	p.logf("%s", p.codecs.String())

	sources, err := ScanImages(p.cfg.InputDir, p.cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", p.cfg.InputDir)
	}
	p.logf("found %d images", len(sources))

	results := make([]processResult, len(sources))
	outputs := &claims{owner: make(map[string]string)}
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			p.logf("processing: %s (%s)", s.RelPath, s.Format)
			results[idx] = processImage(s, p.cfg, p.docs, outputs)
			if r := results[idx]; r.err == nil {
				p.logf("done: %s -> %s (%d -> %d bytes)",
					s.RelPath, r.entry.Output.Path, r.entry.Source.Size, r.entry.Output.Size)
			}
		}(i, src)
	}
	wg.Wait()

	m := manifest.New(p.cfg.Profile.Name, p.cfg.OutputDir)
	for i, r := range results {
		if r.err != nil {
			fmt.Fprintf(os.Stderr, "[imgdoc] error: %v\n", r.err)
			m.Failures = append(m.Failures, manifest.Failure{
				Path:  sources[i].RelPath,
				Error: r.err.Error(),
			})
			continue
		}
		m.Entries[r.key] = r.entry
	}

	if n := len(m.Failures); n > 0 {
		if n == len(sources) {
			return nil, fmt.Errorf("all %d images failed to process", n)
		}
		fmt.Fprintf(os.Stderr, "[imgdoc] warning: %d of %d images had errors\n", n, len(sources))
	}

	m.RunInfo = &manifest.RunInfo{
		Workers:  p.cfg.Workers,
		Encoders: p.codecs.Available(),
	}
	m.ComputeStats()
	return m, nil
}
