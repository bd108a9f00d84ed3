package pavement

// Earthwork prices the dirt moved to bring the subgrade to the bottom of the
// section. Costs are $/cubic yard; DesignGrade is in inches above the
// construction surface.
type Earthwork struct {
	DesignGrade    float64 `json:"design_grade"`
	EmbankmentCost float64 `json:"embankment_cost"`
	ExcavationCost float64 `json:"excavation_cost"`
}

// Cost is the installed cost of a section per square yard.
func Cost(s Section, ew Earthwork) float64 {
	return s.MaterialCost() + ew.Cost(s.Thickness())
}

// Cost prices the earthwork for a section of the given total thickness.
//
// A section thinner than the design grade needs embankment below it. A section
// thicker than the grade needs excavation, and that term is rate × elevation
// with a negative elevation, so a positive excavation rate lowers the total.
func (ew Earthwork) Cost(thickness float64) float64 {
	elevation := ew.DesignGrade - thickness
	switch {
	case elevation > 0:
		return ew.EmbankmentCost / inchesPerYard * elevation
	case elevation < 0:
		// TODO: confirm the excavation sign with the pavement design owner; it
		// currently credits rather than charges for removed material.
		return ew.ExcavationCost / inchesPerYard * elevation
	}
	return 0
}
