package pavement

import (
	"fmt"
	"math"
	"math/rand"
	"slices"
)

// DefaultPopulation is the number of random candidates a search draws.
const DefaultPopulation = 5000

// Options configures Solve. The zero value is usable.
type Options struct {
	Earthwork

	// Population is the number of candidates to sample; 0 means DefaultPopulation.
	Population int
	// Limit truncates the ranked list; 0 keeps every surviving design.
	Limit int
	// Seed makes the search reproducible. 0 seeds from the clock.
	Seed int64
	// Rand overrides Seed when set.
	Rand *rand.Rand
	// Sampler replaces the random sampler. Rand and Seed are ignored when set.
	Sampler Sampler
	// Tuning controls the thickness optimizer; zero fields take defaults.
	Tuning Tuning
	// KeepCandidates records capacity and cost of every sampled candidate.
	KeepCandidates bool
}

// Design is one ranked, buildable section.
type Design struct {
	Section          Section
	StructuralNumber float64
	Cost             float64
	Converged        bool
	Passes           int
	// Unpriced names courses whose unit is unknown and so cost nothing.
	Unpriced []string
}

// Point is the capacity and installed cost of one candidate.
type Point struct {
	StructuralNumber float64 `json:"structural_number"`
	Cost             float64 `json:"cost"`
}

// Stats counts candidates through each stage of the search.
type Stats struct {
	Sampled   int `json:"sampled"`
	Unique    int `json:"unique"`
	Feasible  int `json:"feasible"`
	Adjusted  int `json:"adjusted"`
	Survivors int `json:"survivors"`
	Converged int `json:"converged"`
}

// Result is the outcome of a search. Designs is ordered by ascending cost and
// may be empty.
type Result struct {
	Designs    []Design
	Stats      Stats
	Candidates []Point
}

// Solve searches for the cheapest buildable sections reaching target.
//
// Pipeline: sample candidates, drop duplicate material sets (first seen wins),
// keep feasible ones, adjust thicknesses toward target, re-check feasibility,
// then rank by installed cost. An empty or short result is not an error.
func Solve(materials []Material, target float64, opts Options) (Result, error) {
	if !(target > 0) || math.IsInf(target, 0) {
		return Result{}, ErrInvalidTarget
	}
	if opts.Population < 0 || opts.Limit < 0 {
		return Result{}, fmt.Errorf("%w: population and limit must not be negative", ErrInvalidOptions)
	}
	cat, err := NewCatalog(materials)
	if err != nil {
		return Result{}, err
	}

	pop := opts.Population
	if pop == 0 {
		pop = DefaultPopulation
	}
	candidates := sampler(opts).Candidates(cat, pop)

	var res Result
	res.Stats.Sampled = len(candidates)
	if opts.KeepCandidates {
		res.Candidates = make([]Point, 0, len(candidates))
		for _, s := range candidates {
			res.Candidates = append(res.Candidates, Point{
				StructuralNumber: s.StructuralNumber(),
				Cost:             Cost(s, opts.Earthwork),
			})
		}
	}

	unique := Dedupe(candidates)
	res.Stats.Unique = len(unique)

	designs := make([]Design, 0, len(unique))
	for _, s := range unique {
		if !IsValid(s) {
			continue
		}
		res.Stats.Feasible++
		adj := Adjust(s, target, opts.Tuning)
		res.Stats.Adjusted++
		if !IsValid(s) {
			continue
		}
		if adj.Converged {
			res.Stats.Converged++
		}
		designs = append(designs, Design{
			Section:          s,
			StructuralNumber: adj.StructuralNumber,
			Cost:             Cost(s, opts.Earthwork),
			Converged:        adj.Converged,
			Passes:           adj.Passes,
			Unpriced:         s.Unpriced(),
		})
	}
	res.Stats.Survivors = len(designs)

	slices.SortStableFunc(designs, func(a, b Design) int {
		switch {
		case a.Cost < b.Cost:
			return -1
		case a.Cost > b.Cost:
			return 1
		}
		return 0
	})
	if opts.Limit > 0 && len(designs) > opts.Limit {
		designs = designs[:opts.Limit]
	}
	res.Designs = designs
	return res, nil
}

// Dedupe keeps the first section for each distinct set of materials.
func Dedupe(sections []Section) []Section {
	seen := make(map[string]struct{}, len(sections))
	out := make([]Section, 0, len(sections))
	for _, s := range sections {
		k := s.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}

func sampler(opts Options) Sampler {
	if opts.Sampler != nil {
		return opts.Sampler
	}
	if opts.Rand != nil {
		return &RandomSampler{Rand: opts.Rand}
	}
	return NewRandomSampler(opts.Seed)
}
