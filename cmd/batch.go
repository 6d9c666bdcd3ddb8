package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/AnyUserName/imgdoc/internal/document"
	"github.com/AnyUserName/imgdoc/internal/manifest"
	"github.com/AnyUserName/imgdoc/internal/pipeline"
	"github.com/AnyUserName/imgdoc/internal/profile"
	"github.com/spf13/cobra"
)

var (
	batchOutDir    string
	batchProfile   string
	batchWorkers   int
	batchQuality   int
	batchResize    int
	batchConvert   string
	batchGrayscale bool
	batchNoRegress bool
	batchEagerJPEG bool
	batchFormats   []string
)

var batchCmd = &cobra.Command{
	Use:   "batch <input_dir>",
	Short: "Apply a profile to every image in a directory",
	Long: `Scans the input directory for images (detected by content), opens each
as a document, applies the profile and saves it into the output
directory, mirroring the input layout. A report is written to
<out>/` + manifest.FileName + `.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchOutDir, "out", "o", "./imgdoc_out", "output directory")
	batchCmd.Flags().StringVarP(&batchProfile, "profile", "p", profile.DefaultName, "edit profile ("+strings.Join(profile.Names(), ", ")+")")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	batchCmd.Flags().IntVarP(&batchQuality, "quality", "q", 0, "quality 1-100 (0 = profile default)")
	batchCmd.Flags().IntVarP(&batchResize, "resize", "r", 0, "resize ratio in percent (0 = profile default)")
	batchCmd.Flags().StringVarP(&batchConvert, "convert", "c", "", "target format (overrides profile)")
	batchCmd.Flags().BoolVar(&batchGrayscale, "grayscale", false, "convert to grayscale")
	batchCmd.Flags().BoolVar(&batchNoRegress, "no-regress-size", true, "keep the original when a plain re-encode is larger")
	batchCmd.Flags().BoolVar(&batchEagerJPEG, "eager-jpeg", false, "encode JPEG at compress time instead of at save")
	batchCmd.Flags().StringSliceVar(&batchFormats, "formats", nil, "restrict input formats (default: all)")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	start := time.Now()

	absInput, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(batchOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	prof := profile.Get(batchProfile)
	if batchQuality > 0 {
		prof.Quality = batchQuality
	}
	if batchResize > 0 {
		prof.Resize = batchResize
	}
	if batchConvert != "" {
		prof.Format = document.ParseFormat(batchConvert)
	}
	if batchGrayscale {
		prof.Grayscale = true
	}

	docCfg := document.Config{EagerJPEG: batchEagerJPEG}
	if len(batchFormats) > 0 {
		docCfg.Formats = make(map[document.Format]bool, len(batchFormats))
		for _, f := range batchFormats {
			docCfg.Formats[document.ParseFormat(f)] = true
		}
	}

	logVerbose("input:   %s", absInput)
	logVerbose("output:  %s", absOutput)
	logVerbose("profile: %s (format=%q, quality=%d, resize=%d%%)", prof.Name, prof.Format, prof.Quality, prof.Resize)

	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	p := pipeline.New(pipeline.Config{
		InputDir:      absInput,
		OutputDir:     absOutput,
		Profile:       prof,
		Workers:       batchWorkers,
		Verbose:       verbose,
		NoRegressSize: batchNoRegress,
		Document:      docCfg,
	})

	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	reportPath := filepath.Join(absOutput, manifest.FileName)
	if err := manifest.WriteJSON(m, reportPath); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	printBatchReport(m, time.Since(start))
	return nil
}

func printBatchReport(m *manifest.Manifest, elapsed time.Duration) {
	fmt.Println()
	fmt.Println("  imgdoc batch complete")
	fmt.Println()

	s := m.Stats
	fmt.Printf("  Images:      %d\n", s.TotalEntries)
	if s.TotalFailures > 0 {
		fmt.Printf("  Failed:      %d\n", s.TotalFailures)
	}
	fmt.Printf("  Input size:  %s\n", formatBytes(s.TotalInputBytes))
	fmt.Printf("  Output size: %s\n", formatBytes(s.TotalOutputBytes))
	fmt.Printf("  Ratio:       %.1f%% of original\n", s.Ratio()*100)
	if s.Identical > 0 {
		fmt.Printf("  Unchanged:   %d (written byte for byte)\n", s.Identical)
	}
	if s.Regressed > 0 {
		fmt.Printf("  Kept:        %d originals (re-encode was larger)\n", s.Regressed)
	}
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	if m.RunInfo != nil {
		fmt.Printf("  Workers:     %d\n", m.RunInfo.Workers)
	}
	fmt.Println()

	// Top 10 heaviest sources.
	if len(m.Entries) > 0 {
		keys := make([]string, 0, len(m.Entries))
		for k := range m.Entries {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			return m.Entries[keys[i]].Source.Size > m.Entries[keys[j]].Source.Size
		})
		n := min(len(keys), 10)
		fmt.Printf("  Top %d heaviest (original -> saved):\n", n)
		for _, k := range keys[:n] {
			e := m.Entries[k]
			fmt.Printf("    %-40s %8s -> %8s  %s -> %s\n",
				truncKey(k, 40),
				formatBytes(e.Source.Size),
				formatBytes(e.Output.Size),
				e.Source.Format, e.Output.Format,
			)
		}
		fmt.Println()
	}

	fmt.Printf("  Report:      %s\n", manifest.FileName)
	fmt.Println()
}
