package borders

// applyConfig processes configuration entries in order. A later entry may
// retouch cells an earlier one already decorated; the shared record is
// mutated in place, so overlapping assignments resolve last-applied-wins at
// the field level.
func (e *Engine) applyConfig(entries []Spec) {
	for _, sp := range entries {
		e.applySpec(sp)
	}
}

// applySpec dispatches one configuration entry to the range expander or the
// single-cell path. The single-cell path always commits a record, even when
// the entry supplies no edges at all.
func (e *Engine) applySpec(sp Spec) {
	if sp.Range != nil {
		e.expandRange(*sp.Range, sp)
		return
	}
	rec := e.fetchOrCreate(sp.Row, sp.Col)
	for _, p := range directions {
		if st, ok := resolveEdge(sp.edge(p)); ok {
			rec.SetEdge(p, st)
		}
	}
	e.commit(rec)
}

// expandRange walks the inclusive rectangle and assigns edges along its
// boundary. Strict-interior cells are never touched. A boundary cell is
// committed only when at least one of its satisfied sides was supplied in
// the entry; corner cells (and a 1x1 range, which is all four corners at
// once) collect several edges into the one record.
func (e *Engine) expandRange(rng Range, sp Spec) {
	for r := rng.From.Row; r <= rng.To.Row; r++ {
		for c := rng.From.Col; c <= rng.To.Col; c++ {
			var sides []Placement
			if r == rng.From.Row {
				sides = append(sides, Top)
			}
			if r == rng.To.Row {
				sides = append(sides, Bottom)
			}
			if c == rng.From.Col {
				sides = append(sides, Left)
			}
			if c == rng.To.Col {
				sides = append(sides, Right)
			}
			if len(sides) == 0 {
				continue
			}
			var rec *Record
			for _, p := range sides {
				st, ok := resolveEdge(sp.edge(p))
				if !ok {
					continue
				}
				if rec == nil {
					rec = e.fetchOrCreate(r, c)
				}
				rec.SetEdge(p, st)
			}
			if rec != nil {
				e.commit(rec)
			}
		}
	}
}
