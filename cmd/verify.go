package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/AnyUserName/imgdoc/internal/document"
	"github.com/AnyUserName/imgdoc/internal/hasher"
	"github.com/AnyUserName/imgdoc/internal/manifest"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <out_dir_or_report>",
	Short: "Check that every output in a batch report exists and is unchanged",
	Args:  cobra.ExactArgs(1),
	RunE:  runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(_ *cobra.Command, args []string) error {
	path, err := reportPath(args[0])
	if err != nil {
		return err
	}
	m, err := manifest.ReadJSON(path)
	if err != nil {
		return err
	}

	// Outputs are relative to the report, so a moved directory still verifies.
	errs := verifyManifest(m, filepath.Dir(path))
	if len(errs) == 0 {
		fmt.Println("  ok: report is valid")
		fmt.Printf("  ok: %d outputs present, sizes and hashes match\n", len(m.Entries))
		return nil
	}

	fmt.Printf("  report has %d error(s):\n", len(errs))
	for _, e := range errs {
		fmt.Printf("    - %s\n", e)
	}
	return fmt.Errorf("verification failed with %d errors", len(errs))
}

func verifyManifest(m *manifest.Manifest, baseDir string) []string {
	var errs []string

	keys := make([]string, 0, len(m.Entries))
	for k := range m.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	seen := map[string]string{}
	for _, key := range keys {
		e := m.Entries[key]
		out := e.Output

		if out.Width <= 0 || out.Height <= 0 {
			errs = append(errs, fmt.Sprintf("%q: invalid output dimensions %dx%d", key, out.Width, out.Height))
		}
		if out.Hash == "" {
			errs = append(errs, fmt.Sprintf("%q: missing output hash", key))
		}
		if out.Path == "" {
			errs = append(errs, fmt.Sprintf("%q: missing output path", key))
			continue
		}
		if prev, ok := seen[out.Path]; ok {
			errs = append(errs, fmt.Sprintf("%q: output %q also claimed by %q", key, out.Path, prev))
		}
		seen[out.Path] = key

		data, err := os.ReadFile(filepath.Join(baseDir, filepath.FromSlash(out.Path)))
		if err != nil {
			errs = append(errs, fmt.Sprintf("%q: output not readable: %s", key, out.Path))
			continue
		}
		if int64(len(data)) != out.Size {
			errs = append(errs, fmt.Sprintf("%q: size mismatch: report=%d, disk=%d", key, out.Size, len(data)))
		}
		if h := hasher.ContentHash(data, hasher.ReportLen); out.Hash != "" && h != out.Hash {
			errs = append(errs, fmt.Sprintf("%q: hash mismatch: report=%s, disk=%s", key, out.Hash, h))
		}
		if f, err := document.Sniff(data); err != nil {
			errs = append(errs, fmt.Sprintf("%q: output is not a readable image: %v", key, err))
		} else if f.String() != out.Format {
			errs = append(errs, fmt.Sprintf("%q: format mismatch: report=%s, content=%s", key, out.Format, f))
		}
		if e.Identical && e.Source.Hash != out.Hash {
			errs = append(errs, fmt.Sprintf("%q: marked identical but hashes differ", key))
		}
	}

	// Verify stats consistency.
	if m.Stats.TotalEntries != len(m.Entries) {
		errs = append(errs, fmt.Sprintf("stats.total_entries mismatch: %d != %d", m.Stats.TotalEntries, len(m.Entries)))
	}
	if m.Stats.TotalFailures != len(m.Failures) {
		errs = append(errs, fmt.Sprintf("stats.total_failures mismatch: %d != %d", m.Stats.TotalFailures, len(m.Failures)))
	}

	return errs
}
