package grid

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// testSchema mirrors migrations/0001_init.sql without the seed data.
const testSchema = `
CREATE TABLE sheets (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    row_count INTEGER NOT NULL DEFAULT 24,
    col_count INTEGER NOT NULL DEFAULT 12,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE cells (
    sheet_id INTEGER NOT NULL REFERENCES sheets (id) ON DELETE CASCADE,
    row_idx INTEGER NOT NULL,
    col_idx INTEGER NOT NULL,
    value TEXT NOT NULL DEFAULT '',
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (sheet_id, row_idx, col_idx)
);
`

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return NewStore(db)
}

func TestStoreCreateAndListSheets(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.CreateSheet("beta", 10, 5); err != nil {
		t.Fatalf("CreateSheet: %v", err)
	}
	alphaID, err := store.CreateSheet("alpha", 24, 12)
	if err != nil {
		t.Fatalf("CreateSheet: %v", err)
	}
	if err := store.SaveCell(alphaID, 0, 0, "x"); err != nil {
		t.Fatalf("SaveCell: %v", err)
	}

	infos, err := store.Sheets()
	if err != nil {
		t.Fatalf("Sheets: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("got %d sheets, want 2", len(infos))
	}
	if infos[0].Name != "alpha" || infos[1].Name != "beta" {
		t.Errorf("sheets out of order: %q, %q", infos[0].Name, infos[1].Name)
	}
	if infos[0].CellCount != 1 || infos[1].CellCount != 0 {
		t.Errorf("cell counts = %d, %d, want 1, 0", infos[0].CellCount, infos[1].CellCount)
	}
	if infos[1].Rows != 10 || infos[1].Cols != 5 {
		t.Errorf("beta dimensions = %dx%d, want 10x5", infos[1].Rows, infos[1].Cols)
	}
}

func TestStoreLoadSheetRoundTrip(t *testing.T) {
	store := newTestStore(t)

	id, err := store.CreateSheet("demo", 8, 4)
	if err != nil {
		t.Fatalf("CreateSheet: %v", err)
	}
	if err := store.SaveCell(id, 0, 0, "Item"); err != nil {
		t.Fatalf("SaveCell: %v", err)
	}
	if err := store.SaveCell(id, 2, 3, "42"); err != nil {
		t.Fatalf("SaveCell: %v", err)
	}

	sheet, err := store.LoadSheet(id)
	if err != nil {
		t.Fatalf("LoadSheet: %v", err)
	}
	if sheet.ID != id || sheet.Name != "demo" {
		t.Errorf("identity = (%d, %q), want (%d, demo)", sheet.ID, sheet.Name, id)
	}
	if sheet.Rows != 8 || sheet.Cols != 4 {
		t.Errorf("dimensions = %dx%d, want 8x4", sheet.Rows, sheet.Cols)
	}
	if got := sheet.Value(0, 0); got != "Item" {
		t.Errorf("Value(0,0) = %q, want Item", got)
	}
	if got := sheet.Value(2, 3); got != "42" {
		t.Errorf("Value(2,3) = %q, want 42", got)
	}
}

func TestStoreLoadSheetNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.LoadSheet(999)
	if !errors.Is(err, ErrSheetNotFound) {
		t.Errorf("err = %v, want ErrSheetNotFound", err)
	}
}

func TestStoreSaveCellUpsertsAndDeletes(t *testing.T) {
	store := newTestStore(t)
	id, err := store.CreateSheet("demo", 4, 4)
	if err != nil {
		t.Fatalf("CreateSheet: %v", err)
	}

	if err := store.SaveCell(id, 1, 1, "first"); err != nil {
		t.Fatalf("SaveCell: %v", err)
	}
	if err := store.SaveCell(id, 1, 1, "second"); err != nil {
		t.Fatalf("SaveCell upsert: %v", err)
	}
	sheet, err := store.LoadSheet(id)
	if err != nil {
		t.Fatalf("LoadSheet: %v", err)
	}
	if got := sheet.Value(1, 1); got != "second" {
		t.Errorf("Value(1,1) = %q, want second", got)
	}

	if err := store.SaveCell(id, 1, 1, ""); err != nil {
		t.Fatalf("SaveCell delete: %v", err)
	}
	sheet, err = store.LoadSheet(id)
	if err != nil {
		t.Fatalf("LoadSheet: %v", err)
	}
	if got := sheet.CellCount(); got != 0 {
		t.Errorf("CellCount() = %d, want 0", got)
	}
}

func TestStoreSaveDimensions(t *testing.T) {
	store := newTestStore(t)
	id, err := store.CreateSheet("demo", 4, 4)
	if err != nil {
		t.Fatalf("CreateSheet: %v", err)
	}

	if err := store.SaveDimensions(id, 20, 9); err != nil {
		t.Fatalf("SaveDimensions: %v", err)
	}
	sheet, err := store.LoadSheet(id)
	if err != nil {
		t.Fatalf("LoadSheet: %v", err)
	}
	if sheet.Rows != 20 || sheet.Cols != 9 {
		t.Errorf("dimensions = %dx%d, want 20x9", sheet.Rows, sheet.Cols)
	}
}
