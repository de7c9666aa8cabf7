package save

import "github.com/savetools/savekit/layout"

// Registry is an insertion-ordered, read-only collection of descriptors.
// Built once per process and shared by any number of documents; concurrent
// reads are safe because nothing mutates after load.
type Registry struct {
	byID   map[string]Descriptor
	order  []string
	groups map[string][]string
	gorder []string
}

// LoadRegistry validates descs against lay and builds a registry from the
// valid subset. Malformed descriptors are rejected individually and
// reported in the returned slice, so one bad table row does not take down
// the rest of the table. lay may be nil to skip edition checks.
func LoadRegistry(descs []Descriptor, lay *layout.Layout) (*Registry, []error) {
	r := &Registry{
		byID:   make(map[string]Descriptor, len(descs)),
		groups: make(map[string][]string),
	}
	var rejected []error
	for _, d := range descs {
		if err := d.validate(lay); err != nil {
			rejected = append(rejected, err)
			continue
		}
		if _, dup := r.byID[d.ID]; dup {
			rejected = append(rejected, errf(ErrKindConfig, "save: duplicate id %q", d.ID))
			continue
		}
		r.byID[d.ID] = d
		r.order = append(r.order, d.ID)
		if _, seen := r.groups[d.Group]; !seen {
			r.gorder = append(r.gorder, d.Group)
		}
		r.groups[d.Group] = append(r.groups[d.Group], d.ID)
	}
	return r, rejected
}

// Lookup returns the descriptor for id.
func (r *Registry) Lookup(id string) (Descriptor, error) {
	d, ok := r.byID[id]
	if !ok {
		return Descriptor{}, wrapf(ErrKindNotFound, ErrNotFound, "save: lookup %q", id)
	}
	return d, nil
}

// Group returns the descriptors of one group in insertion order.
func (r *Registry) Group(name string) []Descriptor {
	ids := r.groups[name]
	out := make([]Descriptor, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.byID[id])
	}
	return out
}

// Groups lists group names in first-seen order.
func (r *Registry) Groups() []string {
	out := make([]string, len(r.gorder))
	copy(out, r.gorder)
	return out
}

// All returns every descriptor in insertion order.
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Len reports the number of loaded descriptors.
func (r *Registry) Len() int { return len(r.order) }
