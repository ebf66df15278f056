package borders

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func intp(v int) *int       { return &v }
func strp(v string) *string { return &v }
func boolp(v bool) *bool    { return &v }

type metaCell struct {
	row, col int
	key      string
}

// fakeStore records metadata writes the way the host grid would.
type fakeStore struct {
	data    map[metaCell]any
	removes int
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[metaCell]any)}
}

func (s *fakeStore) Meta(row, col int, key string) any {
	return s.data[metaCell{row, col, key}]
}

func (s *fakeStore) SetMeta(row, col int, key string, value any) {
	s.data[metaCell{row, col, key}] = value
}

func (s *fakeStore) RemoveMeta(row, col int, key string) {
	delete(s.data, metaCell{row, col, key})
	s.removes++
}

// fakeDecorations keeps registered class names in registration order.
type fakeDecorations struct {
	names []string
}

func (d *fakeDecorations) Add(className string) {
	if d.Has(className) {
		return
	}
	d.names = append(d.names, className)
}

func (d *fakeDecorations) Remove(className string) {
	for i, n := range d.names {
		if n == className {
			d.names = append(d.names[:i], d.names[i+1:]...)
			return
		}
	}
}

func (d *fakeDecorations) Has(className string) bool {
	for _, n := range d.names {
		if n == className {
			return true
		}
	}
	return false
}

// requireMirror fails the test unless the metadata store holds exactly the
// registry's records, entry for entry.
func requireMirror(t *testing.T, eng *Engine, store *fakeStore) {
	t.Helper()
	recs := eng.Records()
	if len(store.data) != len(recs) {
		t.Fatalf("store holds %d entries, registry holds %d records", len(store.data), len(recs))
	}
	for _, rec := range recs {
		if got := store.Meta(rec.Row, rec.Col, MetaKey); got != rec {
			t.Fatalf("store entry for (%d,%d) is not the registry record", rec.Row, rec.Col)
		}
	}
}

func TestSetEdgeCreatesRecord(t *testing.T) {
	store := newFakeStore()
	decor := &fakeDecorations{}
	eng := New(store, decor, nil)

	eng.SetEdge(1, 2, Top, false)

	rec := eng.RecordAt(1, 2)
	if rec == nil {
		t.Fatal("no record created")
	}
	if diff := cmp.Diff(DefaultEdge(), rec.Top); diff != "" {
		t.Errorf("top edge mismatch (-want +got):\n%s", diff)
	}
	for _, p := range []Placement{Right, Bottom, Left} {
		if rec.Shows(p) {
			t.Errorf("edge %q should start hidden", p)
		}
	}
	if !decor.Has("border-r1c2") {
		t.Error("decoration not registered")
	}
	requireMirror(t, eng, store)
}

func TestSetEdgeHideOverwritesVisibleEdge(t *testing.T) {
	eng := New(newFakeStore(), &fakeDecorations{}, nil)

	eng.SetEdge(0, 0, Left, false)
	eng.SetEdge(0, 0, Left, true)

	rec := eng.RecordAt(0, 0)
	if rec == nil {
		t.Fatal("record disappeared")
	}
	if rec.Shows(Left) {
		t.Errorf("left edge = %+v, want hidden", rec.Left)
	}
}

func TestSetEdgeTwiceMutatesOneRecord(t *testing.T) {
	store := newFakeStore()
	eng := New(store, &fakeDecorations{}, nil)

	eng.SetEdge(3, 3, Top, false)
	first := eng.RecordAt(3, 3)
	eng.SetEdge(3, 3, Bottom, false)

	if n := len(eng.Records()); n != 1 {
		t.Fatalf("got %d records, want 1", n)
	}
	second := eng.RecordAt(3, 3)
	if first != second {
		t.Error("second edge landed on a different record")
	}
	if !second.Shows(Top) || !second.Shows(Bottom) {
		t.Errorf("record edges after two sets: %+v", second)
	}
	requireMirror(t, eng, store)
}

func TestSetEdgeUnknownPlacementLeavesStateUntouched(t *testing.T) {
	store := newFakeStore()
	eng := New(store, &fakeDecorations{}, nil)

	eng.SetEdge(0, 0, Placement("diagonal"), false)
	eng.SetEdge(0, 0, NoBorders, false)

	if n := len(eng.Records()); n != 0 {
		t.Errorf("records = %d, want 0", n)
	}
	if len(store.data) != 0 {
		t.Errorf("store entries = %d, want 0", len(store.data))
	}
}

func TestClearCellRemovesEverywhere(t *testing.T) {
	store := newFakeStore()
	decor := &fakeDecorations{}
	eng := New(store, decor, nil)

	eng.SetEdge(2, 2, Top, false)
	eng.ClearCell(2, 2)

	if eng.RecordAt(2, 2) != nil {
		t.Error("record still in registry")
	}
	if got := store.Meta(2, 2, MetaKey); got != nil {
		t.Errorf("store still holds %v", got)
	}
	if decor.Has("border-r2c2") {
		t.Error("decoration still registered")
	}
}

func TestClearCellOnUndecoratedCellIsHarmless(t *testing.T) {
	store := newFakeStore()
	eng := New(store, &fakeDecorations{}, nil)

	eng.ClearCell(9, 9)

	if n := len(eng.Records()); n != 0 {
		t.Errorf("records = %d, want 0", n)
	}
}

func TestApplySelectionNoBordersClearsWholeRectangle(t *testing.T) {
	store := newFakeStore()
	decor := &fakeDecorations{}
	eng := New(store, decor, nil)

	// Decorate the perimeter and one interior cell, then wipe the rect.
	eng.ApplySelection([]Range{{From: CellRef{0, 0}, To: CellRef{2, 2}}}, Top, false)
	eng.SetEdge(1, 1, Left, false)

	eng.ApplySelection([]Range{{From: CellRef{0, 0}, To: CellRef{2, 2}}}, NoBorders, false)

	if n := len(eng.Records()); n != 0 {
		t.Fatalf("records = %d, want 0 after no-borders", n)
	}
	if len(store.data) != 0 {
		t.Errorf("store entries = %d, want 0", len(store.data))
	}
	if len(decor.names) != 0 {
		t.Errorf("decorations = %v, want none", decor.names)
	}
}

func TestApplySelectionDirectionalTouchesOnlyBoundaryLine(t *testing.T) {
	store := newFakeStore()
	eng := New(store, &fakeDecorations{}, nil)

	eng.ApplySelection([]Range{{From: CellRef{0, 0}, To: CellRef{2, 2}}}, Bottom, false)

	if n := len(eng.Records()); n != 3 {
		t.Fatalf("got %d records, want 3", n)
	}
	for c := 0; c <= 2; c++ {
		rec := eng.RecordAt(2, c)
		if rec == nil || !rec.Shows(Bottom) {
			t.Errorf("bottom row cell (2,%d) missing its edge", c)
		}
	}
	requireMirror(t, eng, store)
}

func TestApplySelectionSingleCellRect(t *testing.T) {
	eng := New(newFakeStore(), &fakeDecorations{}, nil)

	single := []Range{{From: CellRef{4, 4}, To: CellRef{4, 4}}}
	eng.ApplySelection(single, Right, false)
	if rec := eng.RecordAt(4, 4); rec == nil || !rec.Shows(Right) {
		t.Fatalf("single-cell rect did not set the edge, rec=%+v", rec)
	}

	eng.ApplySelection(single, NoBorders, false)
	if eng.RecordAt(4, 4) != nil {
		t.Error("single-cell no-borders did not clear the cell")
	}
}

func TestApplySelectionNormalizesInvertedRects(t *testing.T) {
	eng := New(newFakeStore(), &fakeDecorations{}, nil)

	eng.ApplySelection([]Range{{From: CellRef{2, 2}, To: CellRef{0, 0}}}, Top, false)

	if n := len(eng.Records()); n != 3 {
		t.Fatalf("got %d records, want 3", n)
	}
	for c := 0; c <= 2; c++ {
		if rec := eng.RecordAt(0, c); rec == nil || !rec.Shows(Top) {
			t.Errorf("(0,%d) missing top edge", c)
		}
	}
}

func TestApplySelectionMultipleRanges(t *testing.T) {
	eng := New(newFakeStore(), &fakeDecorations{}, nil)

	eng.ApplySelection([]Range{
		{From: CellRef{0, 0}, To: CellRef{0, 1}},
		{From: CellRef{5, 5}, To: CellRef{6, 5}},
	}, Left, false)

	for _, ref := range []CellRef{{0, 0}, {5, 5}, {6, 5}} {
		if rec := eng.RecordAt(ref.Row, ref.Col); rec == nil || !rec.Shows(Left) {
			t.Errorf("(%d,%d) missing left edge", ref.Row, ref.Col)
		}
	}
	// (0,1) is not on the left boundary of its rectangle.
	if eng.RecordAt(0, 1) != nil {
		t.Error("(0,1) should stay undecorated")
	}
}

func TestApplySelectionUnknownEdgeDoesNothing(t *testing.T) {
	eng := New(newFakeStore(), &fakeDecorations{}, nil)

	eng.ApplySelection([]Range{{From: CellRef{0, 0}, To: CellRef{2, 2}}}, Placement("stripe"), false)

	if n := len(eng.Records()); n != 0 {
		t.Errorf("records = %d, want 0", n)
	}
}

func TestRenderFiresOncePerPublicOperation(t *testing.T) {
	renders := 0
	eng := New(newFakeStore(), &fakeDecorations{}, func() { renders++ })

	steps := []struct {
		name string
		op   func()
		want int
	}{
		{"update", func() { eng.Update([]Spec{{Row: 0, Col: 0, Top: &EdgeSpec{}}}) }, 1},
		{"set edge", func() { eng.SetEdge(1, 1, Top, false) }, 2},
		{"set edge no-op placement", func() { eng.SetEdge(1, 1, NoBorders, false) }, 3},
		{"clear cell", func() { eng.ClearCell(1, 1) }, 4},
		{"apply selection", func() { eng.ApplySelection([]Range{{From: CellRef{0, 0}, To: CellRef{1, 1}}}, Top, false) }, 5},
		{"disable", func() { eng.Disable() }, 6},
		{"disable again", func() { eng.Disable() }, 6},
		{"set edge while disabled", func() { eng.SetEdge(0, 0, Top, false) }, 6},
		{"clear while disabled", func() { eng.ClearCell(0, 0) }, 6},
		{"apply while disabled", func() { eng.ApplySelection([]Range{{From: CellRef{0, 0}, To: CellRef{0, 0}}}, Top, false) }, 6},
		{"enable", func() { eng.Enable() }, 7},
		{"enable again", func() { eng.Enable() }, 7},
	}
	for _, tt := range steps {
		tt.op()
		if renders != tt.want {
			t.Fatalf("after %s: renders = %d, want %d", tt.name, renders, tt.want)
		}
	}
}

func TestUpdateReplacesPreviousState(t *testing.T) {
	store := newFakeStore()
	eng := New(store, &fakeDecorations{}, nil)

	eng.Update([]Spec{{Row: 0, Col: 0, Top: &EdgeSpec{}}})
	eng.Update([]Spec{{Row: 5, Col: 5, Left: &EdgeSpec{Width: intp(2)}}})

	if eng.RecordAt(0, 0) != nil {
		t.Error("old record survived the update")
	}
	if eng.RecordAt(5, 5) == nil {
		t.Error("new record missing")
	}
	requireMirror(t, eng, store)
}

func TestUpdateIsIdempotent(t *testing.T) {
	eng := New(newFakeStore(), &fakeDecorations{}, nil)
	cfg := []Spec{
		{Row: 1, Col: 1, Top: &EdgeSpec{Width: intp(3), Color: strp("red")}},
		{Range: &Range{From: CellRef{4, 0}, To: CellRef{4, 3}}, Bottom: &EdgeSpec{}},
	}

	eng.Update(cfg)
	first := eng.Records()
	eng.Update(cfg)
	second := eng.Records()

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("state changed across identical updates (-first +second):\n%s", diff)
	}
}

func TestUpdateEmptyClearsAndForgetsSnapshot(t *testing.T) {
	store := newFakeStore()
	eng := New(store, &fakeDecorations{}, nil)

	eng.Update([]Spec{{Row: 0, Col: 0, Top: &EdgeSpec{}}})
	eng.Disable()
	eng.Update(nil)

	if !eng.Enabled() {
		t.Error("update should leave the engine enabled")
	}
	if n := len(eng.Records()); n != 0 {
		t.Errorf("records = %d, want 0", n)
	}

	// The snapshot taken by Disable must be gone: a later disable/enable
	// round trip restores nothing.
	eng.Disable()
	eng.Enable()
	if n := len(eng.Records()); n != 0 {
		t.Errorf("records after round trip = %d, want 0", n)
	}
	if len(store.data) != 0 {
		t.Errorf("store entries = %d, want 0", len(store.data))
	}
}

func TestDisableEnableRoundTrip(t *testing.T) {
	store := newFakeStore()
	decor := &fakeDecorations{}
	eng := New(store, decor, nil)

	eng.Update([]Spec{
		{Row: 0, Col: 0, Top: &EdgeSpec{}},
		{Row: 1, Col: 1, Left: &EdgeSpec{Width: intp(2)}},
		{Row: 2, Col: 2, Bottom: &EdgeSpec{Color: strp("green")}},
	})
	before := eng.Records()

	eng.Disable()
	if eng.Enabled() {
		t.Fatal("Enabled() = true after Disable")
	}
	if n := len(eng.Records()); n != 0 {
		t.Fatalf("records while disabled = %d, want 0", n)
	}
	if len(store.data) != 0 || len(decor.names) != 0 {
		t.Fatalf("host state while disabled: %d meta entries, %d decorations", len(store.data), len(decor.names))
	}

	eng.Enable()
	if !eng.Enabled() {
		t.Fatal("Enabled() = false after Enable")
	}
	if diff := cmp.Diff(before, eng.Records()); diff != "" {
		t.Errorf("records after replay (-before +after):\n%s", diff)
	}
	requireMirror(t, eng, store)
}

func TestMutationsWhileDisabledAreDropped(t *testing.T) {
	eng := New(newFakeStore(), &fakeDecorations{}, nil)

	eng.Update([]Spec{{Row: 0, Col: 0, Top: &EdgeSpec{}}})
	eng.Disable()

	eng.SetEdge(7, 7, Top, false)
	eng.ApplySelection([]Range{{From: CellRef{8, 8}, To: CellRef{9, 9}}}, Left, false)
	eng.ClearCell(0, 0)

	eng.Enable()
	if eng.RecordAt(7, 7) != nil || eng.RecordAt(8, 8) != nil {
		t.Error("disabled mutations leaked into the replayed state")
	}
	if eng.RecordAt(0, 0) == nil {
		t.Error("disabled clear removed a snapshotted record")
	}
}

func TestEngineToleratesNilCollaborators(t *testing.T) {
	eng := New(nil, nil, nil)

	eng.Update([]Spec{{Row: 0, Col: 0, Top: &EdgeSpec{}}})
	eng.SetEdge(1, 1, Left, false)
	eng.ClearCell(1, 1)
	eng.Disable()
	eng.Enable()

	if eng.RecordAt(0, 0) == nil {
		t.Error("record lost with nop collaborators")
	}
}
