package recommend

import (
	"cmp"
	"slices"

	"Pavex/internal/calc/pavement"
)

// Role is where a material can sit in a section.
type Role string

const (
	RoleSurface  Role = "surface"
	RoleBase     Role = "base"
	RoleSubgrade Role = "subgrade"
)

type MaterialRecommendInput struct {
	Materials []pavement.Material `json:"materials"`
}

// MaterialRank is one row of the cost-effectiveness table.
type MaterialRank struct {
	Rank        int     `json:"rank"`
	Name        string  `json:"name"`
	Role        Role    `json:"role"`
	Coefficient float64 `json:"sn"`
	CostPerInch float64 `json:"cost_per_inch"`
	CostPerSN   float64 `json:"cost_per_sn"`
	// MinLiftCost is the cheapest non-zero course of this material.
	MinLiftCost float64 `json:"min_lift_cost"`
	Fixed       bool    `json:"fixed"`
	Alkaline    bool    `json:"alkaline"`
	Priced      bool    `json:"priced"`
}

type MaterialRecommendResult struct {
	Materials []MaterialRank `json:"materials"`
	// Best is the cheapest priced source of structural number per role.
	Best  map[Role]string `json:"best"`
	Notes string          `json:"notes"`
}

// Materials ranks a catalog by the cost of one unit of structural number,
// which is the order the thickness optimizer spends materials in. Unpriced
// materials sort last.
func Materials(in MaterialRecommendInput) (MaterialRecommendResult, error) {
	cat, err := pavement.NewCatalog(in.Materials)
	if err != nil {
		return MaterialRecommendResult{}, err
	}
	rows := make([]MaterialRank, 0, cat.Len())
	for _, l := range cat.Layers() {
		rows = append(rows, MaterialRank{
			Name:        l.Name(),
			Role:        roleOf(l),
			Coefficient: l.Coefficient(),
			CostPerInch: l.CostPerInch(),
			CostPerSN:   l.CostPerSN(),
			MinLiftCost: l.Cost(),
			Fixed:       l.Fixed(),
			Alkaline:    l.Alkaline(),
			Priced:      l.Priced(),
		})
	}
	slices.SortStableFunc(rows, func(a, b MaterialRank) int {
		if a.Priced != b.Priced {
			if a.Priced {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.CostPerSN, b.CostPerSN)
	})

	best := make(map[Role]string)
	for i := range rows {
		rows[i].Rank = i + 1
		if _, ok := best[rows[i].Role]; !ok && rows[i].Priced {
			best[rows[i].Role] = rows[i].Name
		}
	}
	notes := "Materials ranked by cost per unit of structural number."
	if _, ok := best[RoleSurface]; !ok {
		notes += " No priced surface course: no section can be built."
	}
	return MaterialRecommendResult{Materials: rows, Best: best, Notes: notes}, nil
}

func roleOf(l pavement.Layer) Role {
	switch {
	case l.Surface():
		return RoleSurface
	case l.SubgradeTreatment():
		return RoleSubgrade
	}
	return RoleBase
}
