package grid

import "testing"

func TestSheetValues(t *testing.T) {
	s := NewSheet("test", 4, 4)

	s.SetValue(1, 2, "hello")
	if got := s.Value(1, 2); got != "hello" {
		t.Errorf("Value(1,2) = %q, want %q", got, "hello")
	}
	if got := s.Value(0, 0); got != "" {
		t.Errorf("Value(0,0) = %q, want empty", got)
	}
	if got := s.CellCount(); got != 1 {
		t.Errorf("CellCount() = %d, want 1", got)
	}

	s.SetValue(1, 2, "")
	if got := s.CellCount(); got != 0 {
		t.Errorf("CellCount() after delete = %d, want 0", got)
	}
}

func TestSheetGrowsToFitValues(t *testing.T) {
	s := NewSheet("test", 2, 2)

	s.SetValue(5, 9, "far")
	if s.Rows != 6 || s.Cols != 10 {
		t.Errorf("dimensions = %dx%d, want 6x10", s.Rows, s.Cols)
	}

	s.SetValue(-1, 0, "nope")
	if got := s.CellCount(); got != 1 {
		t.Errorf("negative coordinates stored a value, count = %d", got)
	}
}

func TestSheetMetadata(t *testing.T) {
	s := NewSheet("test", 2, 2)

	if got := s.Meta(0, 0, "k"); got != nil {
		t.Errorf("Meta on empty sheet = %v, want nil", got)
	}

	payload := &struct{ n int }{n: 7}
	s.SetMeta(0, 0, "k", payload)
	if got := s.Meta(0, 0, "k"); got != payload {
		t.Error("Meta did not return the stored value")
	}
	if got := s.Meta(0, 0, "other"); got != nil {
		t.Errorf("Meta under a different key = %v, want nil", got)
	}
	if got := s.Meta(0, 1, "k"); got != nil {
		t.Errorf("Meta for a different cell = %v, want nil", got)
	}

	s.RemoveMeta(0, 0, "k")
	if got := s.Meta(0, 0, "k"); got != nil {
		t.Errorf("Meta after remove = %v, want nil", got)
	}
	s.RemoveMeta(0, 0, "k")
}

func TestColumnLabel(t *testing.T) {
	tests := []struct {
		col  int
		want string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
		{-1, ""},
	}
	for _, tt := range tests {
		if got := ColumnLabel(tt.col); got != tt.want {
			t.Errorf("ColumnLabel(%d) = %q, want %q", tt.col, got, tt.want)
		}
	}
}

func TestCellName(t *testing.T) {
	tests := []struct {
		row, col int
		want     string
	}{
		{0, 0, "A1"},
		{9, 2, "C10"},
		{0, 26, "AA1"},
	}
	for _, tt := range tests {
		if got := CellName(tt.row, tt.col); got != tt.want {
			t.Errorf("CellName(%d,%d) = %q, want %q", tt.row, tt.col, got, tt.want)
		}
	}
}
