package pavement

import (
	"fmt"
	"slices"
	"strings"
)

// Course is the externally visible shape of a layer: what it is and how thick.
type Course struct {
	Name      string  `json:"name"`
	Thickness float64 `json:"thickness"`
}

// Section is a top-to-bottom stack of courses. A section owns its layers;
// thickness changes on one section never show up on another.
type Section []Layer

// StructuralNumber is Σ coefficient × thickness over all courses.
func (s Section) StructuralNumber() float64 {
	var sn float64
	for _, l := range s {
		sn += l.StructuralNumber()
	}
	return sn
}

// Thickness is the total built depth of the section.
func (s Section) Thickness() float64 {
	var t float64
	for _, l := range s {
		t += l.Thickness
	}
	return t
}

// MaterialCost is Σ cost-per-inch × thickness, without earthwork.
func (s Section) MaterialCost() float64 {
	var c float64
	for _, l := range s {
		c += l.Cost()
	}
	return c
}

// Clone returns a section with its own copy of every layer.
func (s Section) Clone() Section {
	return slices.Clone(s)
}

// Courses lists name and thickness of each course in placement order.
func (s Section) Courses() []Course {
	out := make([]Course, 0, len(s))
	for _, l := range s {
		out = append(out, Course{Name: l.Name(), Thickness: l.Thickness})
	}
	return out
}

// Key identifies the set of materials a section uses regardless of order or
// thickness. Two sections with the same key are duplicates for the search.
func (s Section) Key() string {
	names := make([]string, 0, len(s))
	for _, l := range s {
		names = append(names, l.Name())
	}
	slices.Sort(names)
	return strings.Join(names, "\x00")
}

// Unpriced lists the courses whose unit the cost model does not recognise.
func (s Section) Unpriced() []string {
	var out []string
	for _, l := range s {
		if !l.Priced() {
			out = append(out, l.Name())
		}
	}
	return out
}

func (s Section) String() string {
	parts := make([]string, 0, len(s))
	for _, l := range s {
		parts = append(parts, fmt.Sprintf("%s %.1fin", l.Name(), l.Thickness))
	}
	return strings.Join(parts, " / ")
}

// Catalog is the set of layer prototypes a search draws from. It is built once
// per search and never mutated.
type Catalog struct {
	layers []Layer
}

// NewCatalog validates the materials and derives their layer prototypes.
func NewCatalog(materials []Material) (Catalog, error) {
	if len(materials) == 0 {
		return Catalog{}, ErrEmptyCatalog
	}
	seen := make(map[string]struct{}, len(materials))
	layers := make([]Layer, 0, len(materials))
	for i, m := range materials {
		if _, dup := seen[m.Name]; dup {
			return Catalog{}, fmt.Errorf("%w: %q", ErrDuplicateMaterial, m.Name)
		}
		seen[m.Name] = struct{}{}
		l, err := NewLayer(m)
		if err != nil {
			return Catalog{}, fmt.Errorf("material %d: %w", i, err)
		}
		layers = append(layers, l)
	}
	return Catalog{layers: layers}, nil
}

// Len is the number of materials in the catalog.
func (c Catalog) Len() int { return len(c.layers) }

// Layer returns a fresh layer of the i-th material at its minimum lift.
func (c Catalog) Layer(i int) Layer { return c.layers[i].fresh() }

// Layers returns fresh copies of every prototype in catalog order.
func (c Catalog) Layers() []Layer {
	out := make([]Layer, len(c.layers))
	for i, l := range c.layers {
		out[i] = l.fresh()
	}
	return out
}
