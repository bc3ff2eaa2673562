package datasets

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type columnKind int

const (
	kindInt columnKind = iota
	kindFloat
	kindString
)

// ParseCSV reads a table with a header row. Each column gets one type: int64 when
// every non-empty cell is an integer, float64 when every non-empty cell is a
// number, otherwise string. Empty cells are null.
func ParseCSV(name string, r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("table %s: empty csv", name)
	}
	if err != nil {
		return nil, fmt.Errorf("table %s: reading header: %w", name, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	raw, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", name, err)
	}

	kinds := make([]columnKind, len(header))
	for c := range header {
		kinds[c] = inferKind(raw, c)
	}

	records := make([][]Value, len(raw))
	for r, rec := range raw {
		values := make([]Value, len(rec))
		for c, cell := range rec {
			values[c] = parseCell(cell, kinds[c])
		}
		records[r] = values
	}
	return NewTable(name, header, records)
}

func inferKind(raw [][]string, column int) columnKind {
	kind := kindInt
	for _, rec := range raw {
		cell := strings.TrimSpace(rec[column])
		if cell == "" {
			continue
		}
		if kind == kindInt {
			if _, err := strconv.ParseInt(cell, 10, 64); err == nil {
				continue
			}
			kind = kindFloat
		}
		if !isFinite(cell) {
			return kindString
		}
	}
	return kind
}

func isFinite(cell string) bool {
	f, err := strconv.ParseFloat(cell, 64)
	return err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
}

func parseCell(cell string, kind columnKind) Value {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return Null
	}
	switch kind {
	case kindInt:
		i, _ := strconv.ParseInt(trimmed, 10, 64)
		return IntValue(i)
	case kindFloat:
		f, _ := strconv.ParseFloat(trimmed, 64)
		return FloatValue(f)
	default:
		return StringValue(cell)
	}
}

// LoadCSVDir reads <table>.csv for every table in TableNames from dir.
func LoadCSVDir(dir string) (*Store, error) {
	tables := make([]*Table, 0, len(TableNames))
	for _, name := range TableNames {
		t, err := loadCSVFile(filepath.Join(dir, name+".csv"), name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return NewStore(tables...)
}

func loadCSVFile(path, name string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset %s: %w", name, err)
	}
	defer f.Close()
	return ParseCSV(name, f)
}
