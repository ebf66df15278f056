package borders

import "slices"

// Registry is the ordered set of currently decorated cells, at most one
// record per cell. It is the authoritative snapshot the host metadata store
// mirrors. Not safe for concurrent use; callers hold the same single-writer
// contract as the engine.
type Registry struct {
	records []*Record
}

func NewRegistry() *Registry { return &Registry{} }

// Insert appends rec, then deduplicates by class name keeping the first
// occurrence of any repeated key.
func (g *Registry) Insert(rec *Record) {
	if rec == nil {
		return
	}
	g.records = append(g.records, rec)
	seen := make(map[string]struct{}, len(g.records))
	kept := g.records[:0]
	for _, r := range g.records {
		if _, dup := seen[r.ClassName]; dup {
			continue
		}
		seen[r.ClassName] = struct{}{}
		kept = append(kept, r)
	}
	g.records = kept
}

// Remove deletes every record stored under className.
func (g *Registry) Remove(className string) {
	kept := g.records[:0]
	for _, r := range g.records {
		if r.ClassName == className {
			continue
		}
		kept = append(kept, r)
	}
	g.records = kept
}

// Clear removes every record. Order is insertion order and is preserved up
// to the clear; it affects only cleanup and enumeration ordering.
func (g *Registry) Clear() {
	g.records = nil
}

// Get returns the record stored under className, or nil.
func (g *Registry) Get(className string) *Record {
	for _, r := range g.records {
		if r.ClassName == className {
			return r
		}
	}
	return nil
}

// Find returns the record for (row, col), or nil.
func (g *Registry) Find(row, col int) *Record {
	return g.Get(CellClassName(row, col))
}

// All returns the records in insertion order.
func (g *Registry) All() []*Record {
	return slices.Clone(g.records)
}

// Len returns the number of decorated cells.
func (g *Registry) Len() int {
	return len(g.records)
}
