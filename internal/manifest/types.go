package manifest

// Manifest is the report a batch run writes next to its outputs.
type Manifest struct {
	Version     int              `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	Profile     string           `json:"profile"`
	OutputDir   string           `json:"output_dir"`
	RunInfo     *RunInfo         `json:"run_info,omitempty"`
	Entries     map[string]Entry `json:"entries"`
	Failures    []Failure        `json:"failures,omitempty"`
	Stats       Stats            `json:"stats"`
}

// RunInfo captures run-time parameters for diagnostics.
type RunInfo struct {
	Workers  int      `json:"workers"`
	Encoders []string `json:"encoders"` // encoders available during the run
}

// Entry describes one processed document: what was read and what was saved.
type Entry struct {
	Source    FileInfo `json:"source"`
	Output    FileInfo `json:"output"`
	Identical bool     `json:"identical"` // output bytes equal the source bytes
	Regressed bool     `json:"regressed,omitempty"`
}

// FileInfo holds metadata about one side of an entry.
type FileInfo struct {
	Path     string `json:"path"` // relative to the input or output directory
	Format   string `json:"format"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Size     int64  `json:"size"`
	Hash     string `json:"hash"` // first 16 hex chars of xxhash64
	HasAlpha bool   `json:"has_alpha,omitempty"`
}

// Failure records a source that could not be processed.
type Failure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// Stats aggregates run metrics.
type Stats struct {
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
	TotalEntries     int   `json:"total_entries"`
	TotalFailures    int   `json:"total_failures,omitempty"`
	Identical        int   `json:"identical,omitempty"`
	Regressed        int   `json:"regressed,omitempty"` // outputs replaced by the source bytes
}

// SupportedVersion is the current schema version.
const SupportedVersion = 1

// FileName is the report file written into the output directory.
const FileName = "imgdoc.report.json"
