package pavement

import (
	"fmt"
	"math"
)

// Unit is the unit of measure a material is priced in.
type Unit string

const (
	UnitTon  Unit = "ton"  // mass-priced, $/ton
	UnitCYD  Unit = "cyd"  // volume-priced, $/cubic yard
	UnitSQYD Unit = "sqyd" // area-priced, $/square yard at min lift
)

// Volumetric conversions used to bring every unit to $/SY/in.
const (
	cubicFeetPerCubicYard = 27.0
	poundsPerTon          = 2000.0
	inchesPerYard         = 36.0
)

// Material is one row of a material catalog.
type Material struct {
	Name              string  `json:"name" yaml:"name"`
	Coefficient       float64 `json:"sn" yaml:"sn"`
	MinLift           float64 `json:"min_lift" yaml:"min_lift"`
	MaxLift           float64 `json:"max_lift" yaml:"max_lift"`
	Density           float64 `json:"density" yaml:"density"`
	UnitCost          float64 `json:"cost" yaml:"cost"`
	Unit              Unit    `json:"unit" yaml:"unit"`
	Surface           bool    `json:"surface" yaml:"surface"`
	SubgradeTreatment bool    `json:"subgrade" yaml:"subgrade"`
	Alkaline          bool    `json:"alkaline" yaml:"alkaline"`
}

// Validate checks the numeric invariants the search depends on. An unknown
// unit is not an error: such a material is simply free.
func (m Material) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidMaterial)
	}
	if !(m.Coefficient > 0) || math.IsInf(m.Coefficient, 0) {
		return fmt.Errorf("%w: %q structural coefficient must be positive", ErrInvalidMaterial, m.Name)
	}
	if !(m.MinLift > 0) || math.IsInf(m.MinLift, 0) {
		return fmt.Errorf("%w: %q minimum lift must be positive", ErrInvalidMaterial, m.Name)
	}
	if !(m.MaxLift >= m.MinLift) || math.IsInf(m.MaxLift, 0) {
		return fmt.Errorf("%w: %q maximum lift must not be below minimum lift", ErrInvalidMaterial, m.Name)
	}
	if !finite(m.Density) {
		return fmt.Errorf("%w: %q density must be a finite number", ErrInvalidMaterial, m.Name)
	}
	if !finite(m.UnitCost) {
		return fmt.Errorf("%w: %q unit cost must be a finite number", ErrInvalidMaterial, m.Name)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Priced reports whether the material's unit is one the cost model knows.
func (m Material) Priced() bool {
	switch m.Unit {
	case UnitTon, UnitCYD, UnitSQYD:
		return true
	}
	return false
}

// CostPerInch converts the unit cost to dollars per square yard per inch.
func (m Material) CostPerInch() float64 {
	switch m.Unit {
	case UnitTon:
		tons := m.Density * cubicFeetPerCubicYard / poundsPerTon
		return m.UnitCost * tons / inchesPerYard
	case UnitCYD:
		return m.UnitCost / inchesPerYard
	case UnitSQYD:
		// area-priced materials are always laid at min lift
		return m.UnitCost / m.MinLift
	default:
		return 0
	}
}

// layerSpec is the part of a layer that never changes after construction.
type layerSpec struct {
	material    Material
	costPerInch float64
	costPerSN   float64
}

// Layer is one course of a section. Everything but Thickness is fixed when the
// layer is built from its material; copies of a Layer share the fixed part and
// own their thickness.
type Layer struct {
	spec      *layerSpec
	Thickness float64
}

// NewLayer builds a layer at the material's minimum lift.
func NewLayer(m Material) (Layer, error) {
	if err := m.Validate(); err != nil {
		return Layer{}, err
	}
	cpi := m.CostPerInch()
	return Layer{
		spec: &layerSpec{
			material:    m,
			costPerInch: cpi,
			costPerSN:   cpi / m.Coefficient,
		},
		Thickness: m.MinLift,
	}, nil
}

func (l Layer) Material() Material      { return l.spec.material }
func (l Layer) Name() string            { return l.spec.material.Name }
func (l Layer) Coefficient() float64    { return l.spec.material.Coefficient }
func (l Layer) MinLift() float64        { return l.spec.material.MinLift }
func (l Layer) MaxLift() float64        { return l.spec.material.MaxLift }
func (l Layer) Surface() bool           { return l.spec.material.Surface }
func (l Layer) SubgradeTreatment() bool { return l.spec.material.SubgradeTreatment }
func (l Layer) Alkaline() bool          { return l.spec.material.Alkaline }
func (l Layer) Priced() bool            { return l.spec.material.Priced() }

// CostPerInch is the installed cost of one inch of this course per square yard.
func (l Layer) CostPerInch() float64 { return l.spec.costPerInch }

// CostPerSN is the cost of one unit of structural number from this course.
func (l Layer) CostPerSN() float64 { return l.spec.costPerSN }

// Fixed reports whether the course can only be built at a single thickness.
func (l Layer) Fixed() bool { return l.MinLift() == l.MaxLift() }

// StructuralNumber is the layer's contribution to the section capacity.
func (l Layer) StructuralNumber() float64 { return l.Coefficient() * l.Thickness }

// Cost is the material cost of the layer at its current thickness.
func (l Layer) Cost() float64 { return l.CostPerInch() * l.Thickness }

// fresh returns a copy of the layer reset to its minimum lift.
func (l Layer) fresh() Layer {
	return Layer{spec: l.spec, Thickness: l.MinLift()}
}
