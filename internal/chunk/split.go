package chunk

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// SplitSummary reports what Split produced.
type SplitSummary struct {
	Chunks int `json:"chunks"`
	Rows   int `json:"rows"`
}

// Split cuts one large CSV file into chunk files of at most chunkSize data
// rows each, repeating the header in every chunk, and writes the manifest.
// Existing chunk files in outDir are overwritten.
func Split(inputPath string, chunkSize int, outDir string, log *slog.Logger) (*SplitSummary, error) {
	if log == nil {
		log = slog.Default()
	}
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}

	in, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	r := csv.NewReader(in)
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	sum := &SplitSummary{}
	var (
		out     *os.File
		w       *csv.Writer
		inChunk int
	)

	closeChunk := func() error {
		if w == nil {
			return nil
		}
		w.Flush()
		if err := w.Error(); err != nil {
			out.Close()
			return err
		}
		err := out.Close()
		w, out = nil, nil
		return err
	}

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn("skipping malformed input row", "err", err)
			continue
		}
		if len(record) != len(header) {
			log.Warn("skipping input row with column-count mismatch",
				"columns", len(record), "want", len(header))
			continue
		}

		if w == nil || inChunk == chunkSize {
			if err := closeChunk(); err != nil {
				return nil, fmt.Errorf("finish chunk: %w", err)
			}
			sum.Chunks++
			name := fmt.Sprintf("movies_chunk_%03d.csv", sum.Chunks)
			out, err = os.Create(filepath.Join(outDir, name))
			if err != nil {
				return nil, fmt.Errorf("create chunk: %w", err)
			}
			w = csv.NewWriter(out)
			if err := w.Write(header); err != nil {
				return nil, fmt.Errorf("write header: %w", err)
			}
			inChunk = 0
			log.Debug("writing chunk", "file", name)
		}

		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write row: %w", err)
		}
		inChunk++
		sum.Rows++
	}

	if err := closeChunk(); err != nil {
		return nil, fmt.Errorf("finish chunk: %w", err)
	}

	manifest := &Manifest{
		OriginalFile: filepath.Base(inputPath),
		TotalChunks:  sum.Chunks,
		TotalRows:    sum.Rows,
		ChunkSize:    chunkSize,
		ChunkPattern: DefaultPattern,
	}
	if err := writeManifest(outDir, manifest); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}

	log.Info("split complete", "chunks", sum.Chunks, "rows", sum.Rows)
	return sum, nil
}
