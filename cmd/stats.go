package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/AnyUserName/imgdoc/internal/manifest"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_report>",
	Short: "Display statistics for a batch report",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

// reportPath accepts either a report file or the directory holding one.
func reportPath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return filepath.Join(path, manifest.FileName), nil
	}
	return path, nil
}

func runStats(_ *cobra.Command, args []string) error {
	path, err := reportPath(args[0])
	if err != nil {
		return err
	}
	m, err := manifest.ReadJSON(path)
	if err != nil {
		return err
	}
	printStats(m)
	return nil
}

type formatCount struct {
	count int
	bytes int64
}

// formatBreakdown totals entries by output format, or by source format
// when bySource is set.
func formatBreakdown(m *manifest.Manifest, bySource bool) map[string]formatCount {
	out := map[string]formatCount{}
	for _, e := range m.Entries {
		fi := e.Output
		if bySource {
			fi = e.Source
		}
		fc := out[fi.Format]
		fc.count++
		fc.bytes += fi.Size
		out[fi.Format] = fc
	}
	return out
}

func printStats(m *manifest.Manifest) {
	fmt.Println()
	fmt.Printf("  Report version: %d\n", m.Version)
	fmt.Printf("  Generated:      %s\n", m.GeneratedAt)
	fmt.Printf("  Profile:        %s\n", m.Profile)
	if m.RunInfo != nil {
		fmt.Printf("  Workers:        %d\n", m.RunInfo.Workers)
		fmt.Printf("  Encoders:       %v\n", m.RunInfo.Encoders)
	}
	fmt.Println()

	s := m.Stats
	fmt.Printf("  Images:         %d\n", s.TotalEntries)
	fmt.Printf("  Failures:       %d\n", s.TotalFailures)
	fmt.Printf("  Input size:     %s\n", formatBytes(s.TotalInputBytes))
	fmt.Printf("  Output size:    %s\n", formatBytes(s.TotalOutputBytes))
	if s.TotalInputBytes > 0 {
		fmt.Printf("  Compression:    %.1f%% of original\n", s.Ratio()*100)
	}
	fmt.Println()

	for _, side := range []struct {
		title    string
		bySource bool
	}{{"Source formats", true}, {"Output formats", false}} {
		counts := formatBreakdown(m, side.bySource)
		names := make([]string, 0, len(counts))
		for f := range counts {
			names = append(names, f)
		}
		sort.Strings(names)
		fmt.Printf("  %s:\n", side.title)
		for _, f := range names {
			fc := counts[f]
			fmt.Printf("    %-6s  %4d files  %s\n", f, fc.count, formatBytes(fc.bytes))
		}
		fmt.Println()
	}

	// Warnings.
	var warnings []string
	for key, e := range m.Entries {
		if e.Output.Size > e.Source.Size && e.Output.Format == e.Source.Format {
			warnings = append(warnings, fmt.Sprintf("%q grew from %s to %s",
				key, formatBytes(e.Source.Size), formatBytes(e.Output.Size)))
		}
	}
	for _, f := range m.Failures {
		warnings = append(warnings, fmt.Sprintf("%q failed: %s", f.Path, f.Error))
	}
	if len(warnings) > 0 {
		sort.Strings(warnings)
		fmt.Printf("  Warnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("    ! %s\n", w)
		}
		fmt.Println()
	}
}
