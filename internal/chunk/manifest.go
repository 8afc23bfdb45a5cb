// Package chunk reads and writes the chunked CSV dataset: a directory of
// chunk files sharing one header plus an optional metadata.json manifest.
package chunk

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestName is the sidecar file written next to the chunk files.
const ManifestName = "metadata.json"

// DefaultPattern matches chunk files when no manifest overrides it.
const DefaultPattern = "movies_chunk_*.csv"

// Manifest describes a chunked dataset. It drives discovery order and lets
// the loader validate completeness; its absence is never a failure.
type Manifest struct {
	OriginalFile string `json:"original_file"`
	TotalChunks  int    `json:"total_chunks"`
	TotalRows    int    `json:"total_rows"`
	ChunkSize    int    `json:"chunk_size"`
	ChunkPattern string `json:"chunk_pattern"`
}

// ReadManifest loads the manifest from dir. A missing manifest returns
// (nil, nil); a present but unreadable one is an error.
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if m.ChunkPattern == "" {
		m.ChunkPattern = DefaultPattern
	}
	return &m, nil
}

func writeManifest(dir string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, ManifestName), data, 0o644)
}
