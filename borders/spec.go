package borders

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CellRef addresses a single cell.
type CellRef struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Range is an inclusive rectangle of cells. From is assumed to precede To
// on both axes; an inverted range iterates as empty everywhere it is
// walked.
type Range struct {
	From CellRef `json:"from"`
	To   CellRef `json:"to"`
}

// Normalized returns r with From and To swapped per axis as needed so that
// From precedes To on both.
func (r Range) Normalized() Range {
	if r.From.Row > r.To.Row {
		r.From.Row, r.To.Row = r.To.Row, r.From.Row
	}
	if r.From.Col > r.To.Col {
		r.From.Col, r.To.Col = r.To.Col, r.From.Col
	}
	return r
}

// Single reports whether the range is a single cell.
func (r Range) Single() bool {
	return r.From == r.To
}

// Line returns the cells of the boundary line matching the directional
// placement p: the top row for Top, the bottom row for Bottom, the leftmost
// column for Left, the rightmost column for Right. Non-directional
// placements yield nil.
func (r Range) Line(p Placement) []CellRef {
	var cells []CellRef
	switch p {
	case Top:
		for c := r.From.Col; c <= r.To.Col; c++ {
			cells = append(cells, CellRef{Row: r.From.Row, Col: c})
		}
	case Bottom:
		for c := r.From.Col; c <= r.To.Col; c++ {
			cells = append(cells, CellRef{Row: r.To.Row, Col: c})
		}
	case Left:
		for row := r.From.Row; row <= r.To.Row; row++ {
			cells = append(cells, CellRef{Row: row, Col: r.From.Col})
		}
	case Right:
		for row := r.From.Row; row <= r.To.Row; row++ {
			cells = append(cells, CellRef{Row: row, Col: r.To.Col})
		}
	}
	return cells
}

// Cells returns every cell of the rectangle in row-major order.
func (r Range) Cells() []CellRef {
	var cells []CellRef
	for row := r.From.Row; row <= r.To.Row; row++ {
		for col := r.From.Col; col <= r.To.Col; col++ {
			cells = append(cells, CellRef{Row: row, Col: col})
		}
	}
	return cells
}

// EdgeSpec is one requested edge value in configuration. A nil *EdgeSpec
// means the edge was not specified and an existing assignment is left
// untouched. A non-nil spec with no fields set (JSON {} or the empty-string
// sentinel) explicitly hides the edge. Set fields merge onto the default
// style.
type EdgeSpec struct {
	Width         *int    `json:"width,omitempty"`
	Color         *string `json:"color,omitempty"`
	CornerVisible *bool   `json:"cornerVisible,omitempty"`
}

// UnmarshalJSON accepts the object form plus the string sentinel ("") for
// an explicitly hidden edge.
func (s *EdgeSpec) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = EdgeSpec{}
		return nil
	}
	type plain EdgeSpec
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = EdgeSpec(p)
	return nil
}

// Spec is one border configuration entry: a single cell when Range is nil,
// otherwise a rectangular range. Edge fields left nil request no change for
// that edge.
type Spec struct {
	Row    int       `json:"row"`
	Col    int       `json:"col"`
	Range  *Range    `json:"range,omitempty"`
	Top    *EdgeSpec `json:"top,omitempty"`
	Right  *EdgeSpec `json:"right,omitempty"`
	Bottom *EdgeSpec `json:"bottom,omitempty"`
	Left   *EdgeSpec `json:"left,omitempty"`
}

// edge returns the requested value for the directional placement p.
func (sp Spec) edge(p Placement) *EdgeSpec {
	switch p {
	case Top:
		return sp.Top
	case Right:
		return sp.Right
	case Bottom:
		return sp.Bottom
	case Left:
		return sp.Left
	}
	return nil
}

// ParseConfig decodes a JSON array of configuration entries.
func ParseConfig(data []byte) ([]Spec, error) {
	var entries []Spec
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse border config: %w", err)
	}
	return entries, nil
}
