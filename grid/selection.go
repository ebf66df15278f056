package grid

import "gridlines.dev/tui/borders"

// Selection tracks the cursor and the selected rectangles over a sheet.
// Anchoring starts an in-flight rectangle that follows the cursor;
// committing it accumulates multi-range selections. A corner selection is
// the select-all state triggered from the corner header.
type Selection struct {
	rows, cols int

	CursorRow int
	CursorCol int

	anchored  bool
	anchorRow int
	anchorCol int

	committed []borders.Range
	corner    bool
}

// NewSelection returns a selection over a rows x cols sheet with the cursor
// at the origin.
func NewSelection(rows, cols int) *Selection {
	return &Selection{rows: max(rows, 1), cols: max(cols, 1)}
}

// Resize updates the sheet bounds and clamps the cursor into them.
func (s *Selection) Resize(rows, cols int) {
	s.rows = max(rows, 1)
	s.cols = max(cols, 1)
	s.CursorRow = clamp(s.CursorRow, 0, s.rows-1)
	s.CursorCol = clamp(s.CursorCol, 0, s.cols-1)
}

// Move shifts the cursor by (dr, dc), clamped to the sheet. With an anchor
// set the in-flight rectangle follows the cursor; committed ranges stay
// until Clear.
func (s *Selection) Move(dr, dc int) {
	s.CursorRow = clamp(s.CursorRow+dr, 0, s.rows-1)
	s.CursorCol = clamp(s.CursorCol+dc, 0, s.cols-1)
}

// ToggleAnchor starts extending a rectangle at the cursor, or releases the
// in-flight rectangle without keeping it.
func (s *Selection) ToggleAnchor() {
	if s.anchored {
		s.anchored = false
		return
	}
	s.anchored = true
	s.anchorRow = s.CursorRow
	s.anchorCol = s.CursorCol
	s.corner = false
}

// AddRange commits the in-flight rectangle, or the cursor cell when no
// anchor is set, and releases the anchor so another range can be started.
func (s *Selection) AddRange() {
	s.committed = append(s.committed, s.active())
	s.anchored = false
	s.corner = false
}

// SelectAll replaces the selection with a corner selection covering the
// whole sheet.
func (s *Selection) SelectAll() {
	s.committed = []borders.Range{{
		From: borders.CellRef{Row: 0, Col: 0},
		To:   borders.CellRef{Row: s.rows - 1, Col: s.cols - 1},
	}}
	s.anchored = false
	s.corner = true
}

// Clear drops every range, the anchor and the corner flag.
func (s *Selection) Clear() {
	s.committed = nil
	s.anchored = false
	s.corner = false
}

// Anchored reports whether an in-flight rectangle is being extended.
func (s *Selection) Anchored() bool {
	return s.anchored
}

// Corner reports whether the selection is the select-all corner state.
func (s *Selection) Corner() bool {
	return s.corner
}

// active is the in-flight rectangle, or the cursor cell without an anchor.
func (s *Selection) active() borders.Range {
	if !s.anchored {
		ref := borders.CellRef{Row: s.CursorRow, Col: s.CursorCol}
		return borders.Range{From: ref, To: ref}
	}
	return borders.Range{
		From: borders.CellRef{Row: s.anchorRow, Col: s.anchorCol},
		To:   borders.CellRef{Row: s.CursorRow, Col: s.CursorCol},
	}
}

// Ranges returns the rectangles a border operation applies to, normalized:
// the committed ranges plus the in-flight one, or the cursor cell when
// nothing is selected.
func (s *Selection) Ranges() []borders.Range {
	var out []borders.Range
	for _, rng := range s.committed {
		out = append(out, rng.Normalized())
	}
	if s.anchored || len(out) == 0 {
		out = append(out, s.active().Normalized())
	}
	return out
}

// ToBorders converts the selection into the engine's selection form.
func (s *Selection) ToBorders() borders.Selection {
	return borders.Selection{Ranges: s.Ranges(), Corner: s.corner}
}

// Contains reports whether the cell lies in a committed range or in the
// in-flight rectangle. The bare cursor cell does not count as selected.
func (s *Selection) Contains(row, col int) bool {
	for _, rng := range s.committed {
		if rangeContains(rng.Normalized(), row, col) {
			return true
		}
	}
	return s.anchored && rangeContains(s.active().Normalized(), row, col)
}

func rangeContains(rng borders.Range, row, col int) bool {
	return row >= rng.From.Row && row <= rng.To.Row && col >= rng.From.Col && col <= rng.To.Col
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
