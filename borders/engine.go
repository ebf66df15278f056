// Package borders resolves border specifications for a spreadsheet-like
// grid into per-cell edge decorations and keeps the registry of decorated
// cells in step with a host grid supplied through small interfaces.
package borders

// MetaKey is the per-cell metadata key under which the engine mirrors a
// cell's border record into the host store.
const MetaKey = "borders"

// CellStore is the host grid's per-cell metadata store.
type CellStore interface {
	Meta(row, col int, key string) any
	SetMeta(row, col int, key string, value any)
	RemoveMeta(row, col int, key string)
}

// Decorations is the host's highlight subsystem. The engine registers each
// record's class name there so the host renderer knows to draw it.
type Decorations interface {
	Add(className string)
	Remove(className string)
}

// Engine applies border configuration and selection operations against a
// host grid. All methods are synchronous and must be called from a single
// goroutine; none of them return errors, malformed input degrades to a
// no-op. The registry and the host metadata store mirror each other by the
// time any public method returns.
type Engine struct {
	store  CellStore
	decor  Decorations
	render func()

	reg     *Registry
	saved   []*Record
	enabled bool
}

// New wires an engine to the host's metadata store, decoration registry and
// render trigger. Any collaborator may be nil and is then ignored. The
// engine starts enabled and empty; Update loads a configuration.
func New(store CellStore, decor Decorations, render func()) *Engine {
	if store == nil {
		store = nopStore{}
	}
	if decor == nil {
		decor = nopDecorations{}
	}
	return &Engine{
		store:   store,
		decor:   decor,
		render:  render,
		reg:     NewRegistry(),
		enabled: true,
	}
}

type nopStore struct{}

func (nopStore) Meta(int, int, string) any     { return nil }
func (nopStore) SetMeta(int, int, string, any) {}
func (nopStore) RemoveMeta(int, int, string)   {}

type nopDecorations struct{}

func (nopDecorations) Add(string)    {}
func (nopDecorations) Remove(string) {}

// Update replaces the engine's state with the given configuration. An empty
// or nil configuration clears every decoration and forgets the saved
// snapshot. Updating always leaves the engine enabled; equal input yields
// equal state, so repeated calls are idempotent.
func (e *Engine) Update(entries []Spec) {
	e.reset()
	e.saved = nil
	e.enabled = true
	e.applyConfig(entries)
	Logger().Debug("border config updated", "entries", len(entries), "decorated", e.reg.Len())
	e.requestRender()
}

// Enable replays the snapshot taken by Disable, re-registering every saved
// record. Enabling an already enabled engine does nothing.
func (e *Engine) Enable() {
	if e.enabled {
		return
	}
	e.enabled = true
	for _, rec := range e.saved {
		e.commit(rec)
	}
	e.saved = nil
	Logger().Debug("borders enabled", "decorated", e.reg.Len())
	e.requestRender()
}

// Disable withdraws every decoration and mirrored metadata entry but keeps
// a snapshot so Enable can replay it. Disabling twice does nothing.
func (e *Engine) Disable() {
	if !e.enabled {
		return
	}
	e.saved = e.reg.All()
	e.reset()
	e.enabled = false
	Logger().Debug("borders disabled", "saved", len(e.saved))
	e.requestRender()
}

// Enabled reports whether decorations are currently applied.
func (e *Engine) Enabled() bool {
	return e.enabled
}

// SetEdge assigns one edge of one cell: the default visible style, or the
// hidden state when hide is true. The cell's record is created on first
// touch. Unknown placements do nothing.
func (e *Engine) SetEdge(row, col int, edge Placement, hide bool) {
	if !e.enabled {
		return
	}
	e.setEdge(row, col, edge, hide)
	e.requestRender()
}

// ClearCell removes the cell's record from the registry, the metadata store
// and the decoration registry. Stronger than hiding all four edges: the
// cell returns to the undecorated state.
func (e *Engine) ClearCell(row, col int) {
	if !e.enabled {
		return
	}
	e.clearCell(row, col)
	e.requestRender()
}

// ApplySelection applies one border operation across the user's selection.
// Rectangles are normalized first, so a selection dragged up or left
// behaves like its mirror image. Per rectangle: a single cell receives the
// edge directly, with NoBorders clearing it; NoBorders clears every cell of
// the rectangle, interior included; a directional edge is set only along
// the one boundary line matching it. Unknown placements do nothing.
func (e *Engine) ApplySelection(ranges []Range, edge Placement, hide bool) {
	if !e.enabled {
		return
	}
	for _, rng := range ranges {
		e.applyRange(rng.Normalized(), edge, hide)
	}
	Logger().Debug("selection applied", "ranges", len(ranges), "edge", string(edge), "hide", hide)
	e.requestRender()
}

func (e *Engine) applyRange(rng Range, edge Placement, hide bool) {
	if rng.Single() {
		if edge == NoBorders {
			e.clearCell(rng.From.Row, rng.From.Col)
			return
		}
		e.setEdge(rng.From.Row, rng.From.Col, edge, hide)
		return
	}
	if edge == NoBorders {
		for _, ref := range rng.Cells() {
			e.clearCell(ref.Row, ref.Col)
		}
		return
	}
	for _, ref := range rng.Line(edge) {
		e.setEdge(ref.Row, ref.Col, edge, hide)
	}
}

// Records returns the decorated cells in registry order.
func (e *Engine) Records() []*Record {
	return e.reg.All()
}

// RecordAt returns the record decorating (row, col), or nil.
func (e *Engine) RecordAt(row, col int) *Record {
	return e.reg.Find(row, col)
}

// setEdge is SetEdge without the render trigger.
func (e *Engine) setEdge(row, col int, edge Placement, hide bool) {
	if !edge.Directional() {
		return
	}
	rec := e.fetchOrCreate(row, col)
	st := DefaultEdge()
	if hide {
		st = HiddenEdge()
	}
	rec.SetEdge(edge, st)
	e.commit(rec)
}

// clearCell is ClearCell without the render trigger.
func (e *Engine) clearCell(row, col int) {
	cls := CellClassName(row, col)
	e.reg.Remove(cls)
	e.store.RemoveMeta(row, col, MetaKey)
	e.decor.Remove(cls)
}

// fetchOrCreate returns the cell's current record, preferring the mirrored
// metadata entry, and falls back to an all-hidden base record. Anything
// unexpected stored under the metadata key is treated as absent.
func (e *Engine) fetchOrCreate(row, col int) *Record {
	if rec, ok := e.store.Meta(row, col, MetaKey).(*Record); ok && rec != nil {
		return rec
	}
	if rec := e.reg.Find(row, col); rec != nil {
		return rec
	}
	return NewRecord(row, col)
}

// commit writes a record through to the registry, the metadata store and
// the decoration registry.
func (e *Engine) commit(rec *Record) {
	e.reg.Insert(rec)
	e.store.SetMeta(rec.Row, rec.Col, MetaKey, rec)
	e.decor.Add(rec.ClassName)
}

// reset clears the registry and withdraws every mirrored metadata entry and
// decoration, in registry order.
func (e *Engine) reset() {
	for _, rec := range e.reg.All() {
		e.store.RemoveMeta(rec.Row, rec.Col, MetaKey)
		e.decor.Remove(rec.ClassName)
	}
	e.reg.Clear()
}

// requestRender fires the host repaint trigger. Fire-and-forget: the engine
// neither waits on nor observes the repaint.
func (e *Engine) requestRender() {
	if e.render != nil {
		e.render()
	}
}
