package borders

// Placement names one of the four cell edges, or the pseudo-placement
// NoBorders used by selection operations to clear cells entirely.
type Placement string

const (
	Top       Placement = "top"
	Right     Placement = "right"
	Bottom    Placement = "bottom"
	Left      Placement = "left"
	NoBorders Placement = "noBorders"
)

// Directional reports whether p is one of the four real edges.
func (p Placement) Directional() bool {
	switch p {
	case Top, Right, Bottom, Left:
		return true
	}
	return false
}

// directions lists the four edges in the order configuration entries apply
// them.
var directions = []Placement{Top, Right, Bottom, Left}

const (
	defaultWidth = 1
	defaultColor = "#000"
)

// EdgeStyle is the concrete state of a single cell edge. Hidden marks an
// edge that is explicitly assigned but not drawn, which is distinct from an
// edge that was never specified at all.
type EdgeStyle struct {
	Width         int    `json:"width"`
	Color         string `json:"color"`
	CornerVisible bool   `json:"cornerVisible"`
	Hidden        bool   `json:"hidden,omitempty"`
}

// DefaultEdge returns the default visible style.
func DefaultEdge() EdgeStyle {
	return EdgeStyle{Width: defaultWidth, Color: defaultColor}
}

// HiddenEdge returns the explicitly-hidden edge state.
func HiddenEdge() EdgeStyle {
	st := DefaultEdge()
	st.Hidden = true
	return st
}

// resolveEdge turns a requested edge value into a concrete style. A nil
// spec means no change was requested. A non-nil spec with no fields set is
// the explicit hidden sentinel. Otherwise the set fields are merged onto
// the default style; merging never consults a previously assigned style.
func resolveEdge(spec *EdgeSpec) (EdgeStyle, bool) {
	if spec == nil {
		return EdgeStyle{}, false
	}
	if spec.Width == nil && spec.Color == nil && spec.CornerVisible == nil {
		return HiddenEdge(), true
	}
	st := DefaultEdge()
	if spec.Width != nil && *spec.Width > 0 {
		st.Width = *spec.Width
	}
	if spec.Color != nil && *spec.Color != "" {
		st.Color = *spec.Color
	}
	if spec.CornerVisible != nil {
		st.CornerVisible = *spec.CornerVisible
	}
	return st, true
}
