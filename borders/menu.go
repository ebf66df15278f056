package borders

// MenuItem is one border operation offered to an external menu builder.
type MenuItem struct {
	Title     string
	Placement Placement
}

// MenuItems returns the five border operations in display order.
func MenuItems() []MenuItem {
	return []MenuItem{
		{Title: "Top border", Placement: Top},
		{Title: "Right border", Placement: Right},
		{Title: "Bottom border", Placement: Bottom},
		{Title: "Left border", Placement: Left},
		{Title: "No borders", Placement: NoBorders},
	}
}

// Selection is the host's active multi-range selection. Corner marks a
// selection made from the select-all corner header.
type Selection struct {
	Ranges []Range
	Corner bool
}

// Available reports whether border operations apply to sel. An empty
// selection is not eligible, nor is one made only from the select-all
// corner.
func Available(sel Selection) bool {
	return len(sel.Ranges) > 0 && !sel.Corner
}

// Invoke runs one menu operation against the selection. Directional
// operations toggle: when the matching boundary line of every selected
// rectangle already shows the edge, invoking the item hides it instead of
// drawing it. Ineligible selections do nothing.
func (e *Engine) Invoke(p Placement, sel Selection) {
	if !Available(sel) {
		return
	}
	hide := p.Directional() && e.SelectionShowsEdge(sel, p)
	e.ApplySelection(sel.Ranges, p, hide)
}

// SelectionShowsEdge reports whether every cell on the boundary line
// matching p of every selected rectangle already shows that edge.
func (e *Engine) SelectionShowsEdge(sel Selection, p Placement) bool {
	if !p.Directional() {
		return false
	}
	checked := false
	for _, rng := range sel.Ranges {
		for _, ref := range rng.Normalized().Line(p) {
			checked = true
			rec := e.reg.Find(ref.Row, ref.Col)
			if rec == nil || !rec.Shows(p) {
				return false
			}
		}
	}
	return checked
}
