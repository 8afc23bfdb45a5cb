package chunk

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// Result is the outcome of loading a chunk directory: the raw field-maps in
// row order plus the skip accounting surfaced in the load summary.
type Result struct {
	Rows        []map[string]string
	ChunkCount  int
	SkippedRows int
}

// Loader reads a directory of CSV chunk files into raw field-maps.
//
// The loader does no type coercion and no filtering. It is a pure
// text-on-disk to field-map step; normalization is a separate concern so the
// storage format and the record shape can evolve independently.
type Loader struct {
	log *slog.Logger
}

// NewLoader creates a Loader. A nil logger falls back to slog.Default().
func NewLoader(log *slog.Logger) *Loader {
	if log == nil {
		log = slog.Default()
	}
	return &Loader{log: log}
}

// Load discovers chunk files in dir and reads them in ascending chunk order,
// preserving row order within and across chunks.
//
// Discovery prefers the manifest's chunk pattern; without a manifest the
// directory is scanned for DefaultPattern, sorted lexicographically. An empty
// directory yields an empty Result, not an error. Individual malformed rows
// are logged, counted, and skipped; only an unreadable directory fails.
func (l *Loader) Load(dir string) (*Result, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("chunk directory %s: %w", dir, err)
	}

	manifest, err := ReadManifest(dir)
	if err != nil {
		return nil, err
	}

	pattern := DefaultPattern
	if manifest != nil && manifest.ChunkPattern != "" {
		pattern = manifest.ChunkPattern
	}

	files, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("scan chunk files: %w", err)
	}
	sort.Strings(files)

	res := &Result{ChunkCount: len(files)}
	if len(files) == 0 {
		l.log.Warn("no chunk files found", "dir", dir, "pattern", pattern)
		return res, nil
	}

	if manifest != nil && manifest.TotalChunks != len(files) {
		l.log.Warn("manifest chunk count mismatch",
			"manifest", manifest.TotalChunks, "found", len(files))
	}

	for _, file := range files {
		if err := l.loadChunk(file, res); err != nil {
			return nil, err
		}
	}

	if manifest != nil && manifest.TotalRows != len(res.Rows)+res.SkippedRows {
		l.log.Warn("manifest row count mismatch",
			"manifest", manifest.TotalRows,
			"loaded", len(res.Rows), "skipped", res.SkippedRows)
	}

	l.log.Info("chunk load complete",
		"chunks", res.ChunkCount, "rows", len(res.Rows), "skipped", res.SkippedRows)
	return res, nil
}

// loadChunk appends one chunk file's rows to res. Each chunk carries its own
// header row, so any chunk is independently parseable.
func (l *Loader) loadChunk(path string, res *Result) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open chunk %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.LazyQuotes = true
	r.FieldsPerRecord = -1 // column-count mismatches are handled per row

	header, err := r.Read()
	if err != nil {
		// Headerless or empty chunk: nothing usable, but the rest of the
		// dataset still loads.
		l.log.Warn("unreadable chunk header, skipping chunk",
			"chunk", filepath.Base(path), "err", err)
		return nil
	}

	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			res.SkippedRows++
			l.log.Warn("skipping malformed row",
				"chunk", filepath.Base(path), "err", err)
			continue
		}
		if len(record) != len(header) {
			res.SkippedRows++
			l.log.Warn("skipping row with column-count mismatch",
				"chunk", filepath.Base(path),
				"columns", len(record), "want", len(header))
			continue
		}

		row := make(map[string]string, len(header))
		for i, col := range header {
			row[col] = record[i]
		}
		res.Rows = append(res.Rows, row)
	}
}
