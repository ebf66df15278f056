// Package grid holds the host side of the spreadsheet: the sheet model with
// its per-cell metadata store, the selection model, the decoration set, the
// terminal renderer and the SQLite content store.
package grid

import (
	"fmt"
	"strings"
)

// Default dimensions for freshly created sheets, matching the schema
// defaults in the migrations.
const (
	DefaultRows = 24
	DefaultCols = 12
)

type cellKey struct {
	row, col int
}

type metaKey struct {
	row, col int
	key      string
}

// Sheet is one spreadsheet: sparse cell values plus a per-cell metadata
// store keyed by string. The metadata store satisfies borders.CellStore.
type Sheet struct {
	ID   int64
	Name string
	Rows int
	Cols int

	cells map[cellKey]string
	meta  map[metaKey]any
}

// NewSheet returns an empty sheet of the given dimensions. Dimensions below
// one are raised to one.
func NewSheet(name string, rows, cols int) *Sheet {
	return &Sheet{
		Name:  name,
		Rows:  max(rows, 1),
		Cols:  max(cols, 1),
		cells: make(map[cellKey]string),
		meta:  make(map[metaKey]any),
	}
}

// Value returns the cell's content, or "" for an empty cell.
func (s *Sheet) Value(row, col int) string {
	return s.cells[cellKey{row, col}]
}

// SetValue stores a cell value, growing the sheet's dimensions when the
// target lies outside them. An empty value deletes the cell. Negative
// coordinates are ignored.
func (s *Sheet) SetValue(row, col int, value string) {
	if row < 0 || col < 0 {
		return
	}
	if value == "" {
		delete(s.cells, cellKey{row, col})
		return
	}
	s.cells[cellKey{row, col}] = value
	s.Rows = max(s.Rows, row+1)
	s.Cols = max(s.Cols, col+1)
}

// CellCount returns the number of non-empty cells.
func (s *Sheet) CellCount() int {
	return len(s.cells)
}

// Meta returns the value stored for the cell under key, or nil.
func (s *Sheet) Meta(row, col int, key string) any {
	return s.meta[metaKey{row, col, key}]
}

// SetMeta stores value for the cell under key.
func (s *Sheet) SetMeta(row, col int, key string, value any) {
	s.meta[metaKey{row, col, key}] = value
}

// RemoveMeta deletes the cell's entry under key.
func (s *Sheet) RemoveMeta(row, col int, key string) {
	delete(s.meta, metaKey{row, col, key})
}

// ColumnLabel converts a zero-based column index to its spreadsheet letter
// form: 0 is A, 25 is Z, 26 is AA. Negative indexes return "".
func ColumnLabel(col int) string {
	if col < 0 {
		return ""
	}
	var b strings.Builder
	for col >= 0 {
		b.WriteByte(byte('A' + col%26))
		col = col/26 - 1
	}
	out := []byte(b.String())
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}

// CellName converts zero-based coordinates to the A1-style reference used
// by workbook formats.
func CellName(row, col int) string {
	return fmt.Sprintf("%s%d", ColumnLabel(col), row+1)
}
