package catalog

import "Pavex/internal/calc/pavement"

// DefaultName is the name the built-in catalog is stored under.
const DefaultName = "default"

// Default returns the built-in catalog of common flexible-pavement materials.
// Costs are $/unit; lifts in inches; densities in lb/ft³.
func Default() Catalog {
	return Catalog{
		Name:        DefaultName,
		Description: "Typical asphalt, aggregate, cementitious and lime courses",
		Materials: []pavement.Material{
			{Name: "Asphalt Surface (1/2in)", Coefficient: 0.44, MinLift: 1.5, MaxLift: 4.0, Density: 145, UnitCost: 130, Unit: pavement.UnitTon, Surface: true},
			{Name: "Asphalt Binder (1in)", Coefficient: 0.44, MinLift: 3.0, MaxLift: 6.0, Density: 140, UnitCost: 120, Unit: pavement.UnitTon},
			{Name: "Crushed Rock Base (3/4in minus)", Coefficient: 0.13, MinLift: 2.0, MaxLift: 8.0, Density: 135, UnitCost: 35, Unit: pavement.UnitTon},
			{Name: "Stone Backfill (6in coarse aggregate)", Coefficient: 0.10, MinLift: 18.0, MaxLift: 48.0, Density: 120, UnitCost: 45, Unit: pavement.UnitTon},
			{Name: "Flowable Fill (Concrete)", Coefficient: 0.20, MinLift: 4.0, MaxLift: 60.0, Density: 130, UnitCost: 650, Unit: pavement.UnitCYD, Alkaline: true},
			{Name: "Lime Treated Subgrade", Coefficient: 0.20, MinLift: 4.0, MaxLift: 8.0, Density: 120, UnitCost: 300, Unit: pavement.UnitCYD, SubgradeTreatment: true, Alkaline: true},
			{Name: "Concrete Base (8in PCC)", Coefficient: 0.50, MinLift: 8.0, MaxLift: 8.0, Density: 150, UnitCost: 150, Unit: pavement.UnitSQYD, Alkaline: true},
		},
	}
}

// DefaultEarthwork is $20/cyd excavation and $10/cyd embankment at grade 0.
func DefaultEarthwork() pavement.Earthwork {
	return pavement.Earthwork{EmbankmentCost: 10, ExcavationCost: 20}
}

// DefaultTargetSN is the structural number used when none is given.
const DefaultTargetSN = 5.0
