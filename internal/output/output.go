// Package output writes extraction records as JSON, CSV and spreadsheet
// files. Every file is written to a temporary sibling and renamed into
// place, so readers never observe a partial file.
package output

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cmsdko/lingua/internal/metric"
	"github.com/xuri/excelize/v2"
)

const (
	// RecordSuffix names the per-transcript JSON file.
	RecordSuffix = "_lingua_extraction_metrics.json"
	// TableName is the batch-wide CSV table.
	TableName = "lingua_metrics.csv"

	sheetName = "Sheet1"
)

// ErrUnsafeName is returned for an output name that would leave its directory.
var ErrUnsafeName = errors.New("output name must not contain path elements")

// CheckName rejects names that are not a single path element.
func CheckName(name string) error {
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrUnsafeName, name)
	}
	return nil
}

// RecordPath returns <dir>/<basename>_lingua_extraction_metrics.json.
func RecordPath(dir, basename string) string {
	return filepath.Join(dir, basename+RecordSuffix)
}

// SpreadsheetPath swaps the extension of a record path for .xlsx.
func SpreadsheetPath(jsonPath string) string {
	ext := filepath.Ext(jsonPath)
	return jsonPath[:len(jsonPath)-len(ext)] + ".xlsx"
}

// WriteJSON writes v as indented JSON, creating parent directories.
func WriteJSON(path string, v any) error {
	return writeAtomic(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "    ")
		return enc.Encode(v)
	})
}

// Columns returns the union of the record keys in first-seen order.
func Columns(records []*metric.Record) []string {
	seen := make(map[string]struct{})
	var cols []string
	for _, r := range records {
		for _, k := range r.Keys() {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			cols = append(cols, k)
		}
	}
	return cols
}

// cell returns the value of col in r, NotApplicable when r lacks it.
func cell(r *metric.Record, col string) metric.Value {
	if v, ok := r.Get(col); ok {
		return v
	}
	return metric.NotApplicable()
}

// WriteCSV writes one row per record under the union of their columns.
// Missing cells hold the NotApplicable rendering.
func WriteCSV(path string, records []*metric.Record) error {
	cols := Columns(records)
	return writeAtomic(path, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write(cols); err != nil {
			return err
		}
		row := make([]string, len(cols))
		for _, r := range records {
			for i, col := range cols {
				row[i] = cell(r, col).String()
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
}

// WriteSpreadsheet writes the records as rows of a single-sheet workbook.
// Numbers and flags keep their cell types; sentinels are written as text.
func WriteSpreadsheet(path string, records []*metric.Record) error {
	cols := Columns(records)
	f := excelize.NewFile()
	defer f.Close()

	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("spreadsheet header: %w", err)
	}
	for n, r := range records {
		row := make([]any, len(cols))
		for i, col := range cols {
			row[i] = cell(r, col).Interface()
		}
		start, err := excelize.CoordinatesToCellName(1, n+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, start, &row); err != nil {
			return fmt.Errorf("spreadsheet row %d: %w", n+1, err)
		}
	}
	return writeAtomic(path, func(w io.Writer) error {
		return f.Write(w)
	})
}

func writeAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("make output dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", filepath.Base(path), err)
	}
	tmpName := tmp.Name()
	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", filepath.Base(path), err)
	}
	return nil
}
