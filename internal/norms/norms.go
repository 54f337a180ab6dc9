// Package norms loads psycholinguistic word norms (familiarity, imageability,
// concreteness, frequency, valence) and averages them over word lists.
package norms

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Measure names one norm table. The value is the prefix of its output keys.
type Measure string

const (
	Familiarity  Measure = "Familiarite"
	Imageability Measure = "Imageabilite"
	Concreteness Measure = "Concretude"
	Frequency    Measure = "Frequence"
	Valence      Measure = "Valence"
)

// Measures lists every measure in output order.
var Measures = []Measure{Familiarity, Imageability, Concreteness, Frequency, Valence}

// Source locates a table inside a spreadsheet or CSV file. Sheet is ignored
// for CSV, and empty selects the first sheet.
type Source struct {
	Path        string `yaml:"path"`
	Sheet       string `yaml:"sheet"`
	WordColumn  string `yaml:"word_column"`
	ValueColumn string `yaml:"value_column"`
}

// DefaultSources returns the file names and column headers of the
// distributed English norm databases, relative to dir.
func DefaultSources(dir string) map[Measure]Source {
	join := func(name string) string { return filepath.Join(dir, name) }
	return map[Measure]Source{
		Familiarity:  {Path: join("Familiarity_Imageability_Database.xlsx"), WordColumn: "Words", ValueColumn: "FAM"},
		Imageability: {Path: join("Familiarity_Imageability_Database.xlsx"), WordColumn: "Words", ValueColumn: "IMAG"},
		Concreteness: {Path: join("Concreteness_Database.xlsx"), WordColumn: "Word", ValueColumn: "Conc.M"},
		Frequency:    {Path: join("Frequency_Database.xlsx"), WordColumn: "Word", ValueColumn: "SUBTLWF"},
		Valence:      {Path: join("Valence_Database.xlsx"), WordColumn: "Word", ValueColumn: "V.Mean.Sum"},
	}
}

var ErrColumnNotFound = errors.New("norm column not found")

// Table maps lowercased words to a numeric norm. It is read-only after load.
type Table struct {
	Measure Measure
	values  map[string]float64
}

// NewTable builds a table from an in-memory map.
func NewTable(m Measure, values map[string]float64) *Table {
	t := &Table{Measure: m, values: make(map[string]float64, len(values))}
	for w, v := range values {
		t.values[strings.ToLower(w)] = v
	}
	return t
}

func (t *Table) Len() int { return len(t.values) }

// Lookup returns the norm of word, ignoring case.
func (t *Table) Lookup(word string) (float64, bool) {
	v, ok := t.values[strings.ToLower(word)]
	return v, ok
}

// Mean averages the norm over the words found in the table. Words absent
// from the table do not count toward the denominator. An empty intersection
// yields 0.
func (t *Table) Mean(words []string) float64 {
	sum, n := 0.0, 0
	for _, w := range words {
		if v, ok := t.Lookup(w); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Load reads one table. Files ending in .csv are parsed as CSV; anything
// else is opened as a spreadsheet. Rows with an empty word or a
// non-numeric value are skipped.
func Load(m Measure, src Source) (*Table, error) {
	var rows [][]string
	var err error
	if strings.EqualFold(filepath.Ext(src.Path), ".csv") {
		rows, err = readCSV(src.Path)
	} else {
		rows, err = readSheet(src.Path, src.Sheet)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s norms: %w", m, err)
	}
	return fromRows(m, rows, src)
}

// Set holds the loaded tables by measure.
type Set struct {
	tables map[Measure]*Table
}

// NewSet groups tables. Later tables replace earlier ones of the same measure.
func NewSet(tables ...*Table) *Set {
	s := &Set{tables: make(map[Measure]*Table, len(tables))}
	for _, t := range tables {
		s.tables[t.Measure] = t
	}
	return s
}

// LoadSet loads every source. Any failure aborts the whole load.
func LoadSet(sources map[Measure]Source) (*Set, error) {
	s := NewSet()
	for _, m := range Measures {
		src, ok := sources[m]
		if !ok || src.Path == "" {
			continue
		}
		t, err := Load(m, src)
		if err != nil {
			return nil, err
		}
		s.tables[m] = t
	}
	return s, nil
}

// Table returns the table of m. A nil Set has no tables.
func (s *Set) Table(m Measure) (*Table, bool) {
	if s == nil {
		return nil, false
	}
	t, ok := s.tables[m]
	return t, ok
}

func readSheet(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	return f.GetRows(sheet)
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
}

func fromRows(m Measure, rows [][]string, src Source) (*Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("load %s norms: %s is empty", m, src.Path)
	}
	wordCol, valueCol := -1, -1
	for i, h := range rows[0] {
		switch strings.TrimSpace(h) {
		case src.WordColumn:
			wordCol = i
		case src.ValueColumn:
			valueCol = i
		}
	}
	if wordCol < 0 || valueCol < 0 {
		return nil, fmt.Errorf("%w: %s needs %q and %q", ErrColumnNotFound, src.Path, src.WordColumn, src.ValueColumn)
	}

	t := &Table{Measure: m, values: make(map[string]float64, len(rows)-1)}
	for _, row := range rows[1:] {
		if wordCol >= len(row) || valueCol >= len(row) {
			continue
		}
		word := strings.ToLower(strings.TrimSpace(row[wordCol]))
		v, err := strconv.ParseFloat(strings.TrimSpace(row[valueCol]), 64)
		if word == "" || err != nil {
			continue
		}
		// The first occurrence wins, as with an indexed lookup.
		if _, dup := t.values[word]; !dup {
			t.values[word] = v
		}
	}
	return t, nil
}
