package borders

import "fmt"

// CellClassName derives the decoration class name identifying the border
// record for (row, col). Records are deduplicated and located by this key;
// it is assigned by NewRecord and never reassigned.
func CellClassName(row, col int) string {
	return fmt.Sprintf("border-r%dc%d", row, col)
}

// Record holds the resolved border state of one cell: the four edge styles
// plus the class name under which the cell is decorated. A record is
// created on a cell's first edge assignment and mutated in place as further
// edges change; only a full cell clear removes it.
type Record struct {
	Row       int       `json:"row"`
	Col       int       `json:"col"`
	ClassName string    `json:"className"`
	Top       EdgeStyle `json:"top"`
	Right     EdgeStyle `json:"right"`
	Bottom    EdgeStyle `json:"bottom"`
	Left      EdgeStyle `json:"left"`
}

// NewRecord returns the all-hidden base record for a cell.
func NewRecord(row, col int) *Record {
	return &Record{
		Row:       row,
		Col:       col,
		ClassName: CellClassName(row, col),
		Top:       HiddenEdge(),
		Right:     HiddenEdge(),
		Bottom:    HiddenEdge(),
		Left:      HiddenEdge(),
	}
}

// Edge returns the style of the named edge. Non-directional placements
// return the zero style.
func (r *Record) Edge(p Placement) EdgeStyle {
	switch p {
	case Top:
		return r.Top
	case Right:
		return r.Right
	case Bottom:
		return r.Bottom
	case Left:
		return r.Left
	}
	return EdgeStyle{}
}

// SetEdge assigns the named edge. Non-directional placements are ignored.
func (r *Record) SetEdge(p Placement, st EdgeStyle) {
	switch p {
	case Top:
		r.Top = st
	case Right:
		r.Right = st
	case Bottom:
		r.Bottom = st
	case Left:
		r.Left = st
	}
}

// Shows reports whether the named edge is drawn.
func (r *Record) Shows(p Placement) bool {
	return p.Directional() && !r.Edge(p).Hidden
}
