package pavement

import (
	"math"
	"slices"
)

// Tuning controls the thickness optimizer.
type Tuning struct {
	// MaxPasses bounds the number of sweeps over the adjustable courses.
	MaxPasses int
	// Epsilon is the structural number gap treated as on target.
	Epsilon float64
}

// DefaultTuning is ten passes to within 0.01 SN.
func DefaultTuning() Tuning {
	return Tuning{MaxPasses: 10, Epsilon: 0.01}
}

// Adjustment reports what Adjust did to a section.
type Adjustment struct {
	Passes           int
	StructuralNumber float64
	Residual         float64 // target minus achieved
	Converged        bool
}

// Adjust moves course thicknesses toward target in place, cheapest structural
// number first. Fixed-thickness courses are never touched.
//
// Each course moves by whole increments (0.5 in for min lifts under 2 in,
// 1 in otherwise). The increment count is floored when adding depth and
// ceiled when removing it, so a single course never overshoots the gap; later
// courses in the same pass see the gap left by earlier ones. A course pushed
// down to or past its min lift is held at the min lift.
//
// Convergence is not guaranteed; callers get the residual and decide.
func Adjust(s Section, target float64, tun Tuning) Adjustment {
	if tun.MaxPasses <= 0 {
		tun.MaxPasses = DefaultTuning().MaxPasses
	}
	if tun.Epsilon <= 0 {
		tun.Epsilon = DefaultTuning().Epsilon
	}

	order := make([]int, len(s))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		ca, cb := s[a].CostPerSN(), s[b].CostPerSN()
		switch {
		case ca < cb:
			return -1
		case ca > cb:
			return 1
		}
		return 0
	})

	current := s.StructuralNumber()
	passes := 0
	for passes < tun.MaxPasses {
		delta := target - current
		if math.Abs(delta) < tun.Epsilon {
			break
		}
		passes++
		for _, i := range order {
			l := &s[i]
			if l.Fixed() {
				continue
			}
			step := increment(*l)
			perStep := l.Coefficient() * step
			var n float64
			if delta > 0 {
				n = math.Floor(delta / perStep)
			} else {
				n = math.Ceil(delta / perStep)
			}
			l.Thickness += step * n
			if l.Thickness <= l.MinLift() {
				l.Thickness = l.MinLift()
			}
			current = s.StructuralNumber()
			delta = target - current
		}
	}

	residual := target - current
	return Adjustment{
		Passes:           passes,
		StructuralNumber: current,
		Residual:         residual,
		Converged:        math.Abs(residual) < tun.Epsilon,
	}
}

func increment(l Layer) float64 {
	if l.MinLift() < 2.0 {
		return 0.5
	}
	return 1.0
}
