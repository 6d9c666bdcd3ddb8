package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// New creates an empty manifest with defaults.
func New(profileName, outputDir string) *Manifest {
	return &Manifest{
		Version:     SupportedVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Profile:     profileName,
		OutputDir:   outputDir,
		Entries:     make(map[string]Entry),
	}
}

// ComputeStats recalculates aggregate statistics from entries.
func (m *Manifest) ComputeStats() {
	var s Stats
	s.TotalEntries = len(m.Entries)
	s.TotalFailures = len(m.Failures)
	for _, e := range m.Entries {
		s.TotalInputBytes += e.Source.Size
		s.TotalOutputBytes += e.Output.Size
		if e.Identical {
			s.Identical++
		}
		if e.Regressed {
			s.Regressed++
		}
	}
	m.Stats = s
}

// Ratio returns output bytes over input bytes, or 0 with no input.
func (s Stats) Ratio() float64 {
	if s.TotalInputBytes == 0 {
		return 0
	}
	return float64(s.TotalOutputBytes) / float64(s.TotalInputBytes)
}

// WriteJSON serializes the manifest to a JSON file with stable ordering.
func WriteJSON(m *Manifest, path string) error {
	m.ComputeStats()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// ReadJSON loads a manifest written by WriteJSON.
func ReadJSON(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if m.Version != SupportedVersion {
		return nil, fmt.Errorf("unsupported manifest version: %d", m.Version)
	}
	return &m, nil
}
