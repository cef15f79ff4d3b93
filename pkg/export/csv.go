// Package export emits result tables as delimited text.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CSVExporter writes table records row by row through encoding/csv.
type CSVExporter struct {
	comma rune
}

// NewCSVExporter creates a comma-delimited exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{comma: ','}
}

// WithDelimiter returns an exporter using the given field delimiter.
func (e *CSVExporter) WithDelimiter(comma rune) *CSVExporter {
	return &CSVExporter{comma: comma}
}

// Write emits records to w in order, one delimited row per record.
func (e *CSVExporter) Write(w io.Writer, records [][]string) error {
	cw := csv.NewWriter(w)
	if e.comma != 0 {
		cw.Comma = e.comma
	}

	for _, record := range records {
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile emits records to path, creating parent directories as needed.
func (e *CSVExporter) WriteFile(path string, records [][]string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	if err := e.Write(file, records); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
