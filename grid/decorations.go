package grid

// DecorationSet is the host's highlight registry: an ordered set of class
// names whose cells the renderer draws with their custom borders. It
// satisfies borders.Decorations.
type DecorationSet struct {
	names   []string
	present map[string]struct{}
}

// NewDecorationSet returns an empty set.
func NewDecorationSet() *DecorationSet {
	return &DecorationSet{present: make(map[string]struct{})}
}

// Add registers a class name. Adding a name twice keeps its original
// position.
func (d *DecorationSet) Add(className string) {
	if _, ok := d.present[className]; ok {
		return
	}
	d.present[className] = struct{}{}
	d.names = append(d.names, className)
}

// Remove withdraws a class name. Unknown names are ignored.
func (d *DecorationSet) Remove(className string) {
	if _, ok := d.present[className]; !ok {
		return
	}
	delete(d.present, className)
	for i, n := range d.names {
		if n == className {
			d.names = append(d.names[:i], d.names[i+1:]...)
			break
		}
	}
}

// Has reports whether the class name is registered.
func (d *DecorationSet) Has(className string) bool {
	_, ok := d.present[className]
	return ok
}

// All returns the registered names in registration order.
func (d *DecorationSet) All() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// Len returns the number of registered names.
func (d *DecorationSet) Len() int {
	return len(d.names)
}
