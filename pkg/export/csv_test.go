package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestCSVExporter_Write(t *testing.T) {
	records := [][]string{
		{"date", "flu", "cough"},
		{"2015-01-01", "5", "0"},
		{"2015-01-08", "3", "12"},
	}

	var buf bytes.Buffer
	if err := NewCSVExporter().Write(&buf, records); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "date,flu,cough\n2015-01-01,5,0\n2015-01-08,3,12\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestCSVExporter_WithDelimiter(t *testing.T) {
	var buf bytes.Buffer
	exporter := NewCSVExporter().WithDelimiter('\t')
	if err := exporter.Write(&buf, [][]string{{"date", "flu"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := buf.String(); got != "date\tflu\n" {
		t.Errorf("output = %q, want tab-delimited row", got)
	}
}

func TestCSVExporter_WriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "volumes.csv")
	records := [][]string{
		{"date", "flu"},
		{"2015-01-01", "5"},
	}

	if err := NewCSVExporter().WriteFile(path, records); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output file: %v", err)
	}
	if got := string(data); got != "date,flu\n2015-01-01,5\n" {
		t.Errorf("file contents = %q", got)
	}
}
