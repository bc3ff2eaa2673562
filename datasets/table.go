package datasets

import (
	"bytes"
	"encoding/json"
	"fmt"

	apperrors "github.com/jrsteele09/go-school-insights/internal/errors"
)

// Table names served by the store
const (
	TableStudents = "students"
	TableTeachers = "teachers"
	TablePayments = "payments"
)

// TableNames lists every table the service loads, in load order.
var TableNames = []string{TableStudents, TableTeachers, TablePayments}

type schema struct {
	columns []string
	index   map[string]int
}

func newSchema(columns []string) (*schema, error) {
	s := &schema{columns: columns, index: make(map[string]int, len(columns))}
	for i, c := range columns {
		if _, dup := s.index[c]; dup {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		s.index[c] = i
	}
	return s, nil
}

// Row maps column names to values. Rows are read-only.
type Row struct {
	schema *schema
	values []Value
}

// Get returns the value in column, or false when the table has no such column.
func (r Row) Get(column string) (Value, bool) {
	i, ok := r.schema.index[column]
	if !ok {
		return Null, false
	}
	return r.values[i], true
}

func (r Row) Columns() []string {
	return append([]string(nil), r.schema.columns...)
}

// MarshalJSON writes the row as an object keeping the table's column order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, column := range r.schema.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(column)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[i].Interface())
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", column, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Table is a named, ordered set of rows sharing one schema.
type Table struct {
	Name   string
	schema *schema
	rows   []Row
}

// NewTable builds a table. Every record must have one value per column.
func NewTable(name string, columns []string, records [][]Value) (*Table, error) {
	s, err := newSchema(append([]string(nil), columns...))
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", name, err)
	}

	rows := make([]Row, 0, len(records))
	for i, rec := range records {
		if len(rec) != len(columns) {
			return nil, fmt.Errorf("table %s: row %d has %d values, want %d", name, i, len(rec), len(columns))
		}
		rows = append(rows, Row{schema: s, values: append([]Value(nil), rec...)})
	}
	return &Table{Name: name, schema: s, rows: rows}, nil
}

func (t *Table) Columns() []string {
	return append([]string(nil), t.schema.columns...)
}

func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns the rows in load order. The slice is shared and must not be modified.
func (t *Table) Rows() []Row {
	return t.rows
}

// Column returns every value of column in load order.
func (t *Table) Column(column string) ([]Value, error) {
	i, ok := t.schema.index[column]
	if !ok {
		return nil, apperrors.Wrapf(apperrors.ErrColumnNotFound, "%s.%s", t.Name, column)
	}
	out := make([]Value, len(t.rows))
	for r, row := range t.rows {
		out[r] = row.values[i]
	}
	return out, nil
}
