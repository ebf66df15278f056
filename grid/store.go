package grid

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrSheetNotFound reports a sheet id with no row behind it.
var ErrSheetNotFound = errors.New("sheet not found")

// SheetInfo is one row of the sheet library listing.
type SheetInfo struct {
	ID        int64
	Name      string
	Rows      int
	Cols      int
	CellCount int
}

// Store persists sheet content in SQLite. Only names, dimensions and cell
// values go through here; border state lives in memory for the session.
type Store struct {
	db *sql.DB
}

// NewStore wraps an open database handle. Schema setup belongs to the
// caller's migrations.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Sheets lists every sheet with its non-empty cell count.
func (s *Store) Sheets() ([]SheetInfo, error) {
	rows, err := s.db.Query(`
		SELECT s.id, s.name, s.row_count, s.col_count, COUNT(c.sheet_id)
		FROM sheets s
		LEFT JOIN cells c ON c.sheet_id = s.id
		GROUP BY s.id
		ORDER BY s.name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list sheets: %w", err)
	}
	defer rows.Close()

	var out []SheetInfo
	for rows.Next() {
		var info SheetInfo
		if err := rows.Scan(&info.ID, &info.Name, &info.Rows, &info.Cols, &info.CellCount); err != nil {
			return nil, fmt.Errorf("scan sheet: %w", err)
		}
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sheets: %w", err)
	}
	return out, nil
}

// LoadSheet reads one sheet and all of its cells.
func (s *Store) LoadSheet(id int64) (*Sheet, error) {
	var name string
	var rowCount, colCount int
	err := s.db.QueryRow(`
		SELECT name, row_count, col_count FROM sheets WHERE id = ?
	`, id).Scan(&name, &rowCount, &colCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSheetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load sheet %d: %w", id, err)
	}

	sheet := NewSheet(name, rowCount, colCount)
	sheet.ID = id

	cells, err := s.db.Query(`
		SELECT row_idx, col_idx, value FROM cells WHERE sheet_id = ?
	`, id)
	if err != nil {
		return nil, fmt.Errorf("load cells of sheet %d: %w", id, err)
	}
	defer cells.Close()

	for cells.Next() {
		var row, col int
		var value string
		if err := cells.Scan(&row, &col, &value); err != nil {
			return nil, fmt.Errorf("scan cell: %w", err)
		}
		sheet.SetValue(row, col, value)
	}
	if err := cells.Err(); err != nil {
		return nil, fmt.Errorf("load cells of sheet %d: %w", id, err)
	}
	return sheet, nil
}

// SaveCell upserts one cell value. An empty value deletes the cell row
// instead, matching the sheet model's sparse storage.
func (s *Store) SaveCell(sheetID int64, row, col int, value string) error {
	if value == "" {
		if _, err := s.db.Exec(`
			DELETE FROM cells WHERE sheet_id = ? AND row_idx = ? AND col_idx = ?
		`, sheetID, row, col); err != nil {
			return fmt.Errorf("clear cell: %w", err)
		}
		return nil
	}
	if _, err := s.db.Exec(`
		INSERT INTO cells (sheet_id, row_idx, col_idx, value)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(sheet_id, row_idx, col_idx)
		DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, sheetID, row, col, value); err != nil {
		return fmt.Errorf("save cell: %w", err)
	}
	return nil
}

// SaveDimensions persists sheet dimensions after in-memory growth.
func (s *Store) SaveDimensions(sheetID int64, rows, cols int) error {
	if _, err := s.db.Exec(`
		UPDATE sheets SET row_count = ?, col_count = ? WHERE id = ?
	`, rows, cols, sheetID); err != nil {
		return fmt.Errorf("save dimensions: %w", err)
	}
	return nil
}

// CreateSheet inserts an empty sheet and returns its id.
func (s *Store) CreateSheet(name string, rows, cols int) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO sheets (name, row_count, col_count) VALUES (?, ?, ?)
	`, name, rows, cols)
	if err != nil {
		return 0, fmt.Errorf("create sheet: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create sheet: %w", err)
	}
	return id, nil
}
