package pavement_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"Pavex/internal/calc/pavement"
)

// Materials with dyadic coefficients and lifts keep the optimizer arithmetic
// exact, so tests can compare thicknesses with ==.
var (
	surfaceA = pavement.Material{Name: "Surface A", Coefficient: 0.5, MinLift: 1, MaxLift: 3, UnitCost: 40, Unit: pavement.UnitSQYD, Surface: true}
	baseB    = pavement.Material{Name: "Base B", Coefficient: 0.25, MinLift: 2, MaxLift: 8, UnitCost: 36, Unit: pavement.UnitCYD}
	baseC    = pavement.Material{Name: "Base C", Coefficient: 0.5, MinLift: 2, MaxLift: 6, UnitCost: 18, Unit: pavement.UnitCYD}
	slabD    = pavement.Material{Name: "Slab D", Coefficient: 0.5, MinLift: 8, MaxLift: 8, UnitCost: 150, Unit: pavement.UnitSQYD, Alkaline: true}
	limeE    = pavement.Material{Name: "Lime E", Coefficient: 0.25, MinLift: 4, MaxLift: 8, UnitCost: 300, Unit: pavement.UnitCYD, SubgradeTreatment: true, Alkaline: true}
	limeF    = pavement.Material{Name: "Lime F", Coefficient: 0.25, MinLift: 4, MaxLift: 8, UnitCost: 280, Unit: pavement.UnitCYD, SubgradeTreatment: true}
)

// layer builds a layer of m at the given thickness.
func layer(t *testing.T, m pavement.Material, thickness float64) pavement.Layer {
	t.Helper()
	l, err := pavement.NewLayer(m)
	require.NoError(t, err)
	l.Thickness = thickness
	return l
}

// section builds a section from alternating material/thickness pairs.
func section(t *testing.T, courses ...any) pavement.Section {
	t.Helper()
	require.Zero(t, len(courses)%2, "courses come in material/thickness pairs")
	var s pavement.Section
	for i := 0; i < len(courses); i += 2 {
		s = append(s, layer(t, courses[i].(pavement.Material), courses[i+1].(float64)))
	}
	return s
}

// fixedSampler returns clones of the same candidates on every call.
type fixedSampler struct {
	sections []pavement.Section
}

func (f fixedSampler) Candidates(_ pavement.Catalog, _ int) []pavement.Section {
	out := make([]pavement.Section, 0, len(f.sections))
	for _, s := range f.sections {
		out = append(out, s.Clone())
	}
	return out
}
