package pavement

import (
	"fmt"
	"math"
)

// liftTol absorbs floating point noise in the lift remainders.
const liftTol = 1e-9

// IsValid reports whether a section can be built.
func IsValid(s Section) bool {
	return Check(s) == nil
}

// Check returns nil for a buildable section, or the first construction rule
// it breaks:
//
//  1. each material appears in at most one course,
//  2. the top course is a surface course,
//  3. at most one course is a subgrade treatment,
//  4. no two neighbouring courses are both alkaline,
//  5. every course is thicker than zero,
//  6. every course thickness can be laid in whole lifts (see LiftAchievable).
func Check(s Section) error {
	if len(s) == 0 {
		return ErrEmptySection
	}

	seen := make(map[string]struct{}, len(s))
	for _, l := range s {
		if _, dup := seen[l.Name()]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateCourse, l.Name())
		}
		seen[l.Name()] = struct{}{}
	}

	if !s[0].Surface() {
		return fmt.Errorf("%w: %q", ErrNoSurface, s[0].Name())
	}

	subgrade := 0
	for _, l := range s {
		if l.SubgradeTreatment() {
			subgrade++
		}
	}
	if subgrade > 1 {
		return ErrMultipleSubgrade
	}

	for i := 1; i < len(s); i++ {
		if s[i-1].Alkaline() && s[i].Alkaline() {
			return fmt.Errorf("%w: %q over %q", ErrAdjacentAlkaline, s[i-1].Name(), s[i].Name())
		}
	}

	for _, l := range s {
		if !(l.Thickness > 0) {
			return fmt.Errorf("%w: %q", ErrNonPositiveThickness, l.Name())
		}
	}

	for _, l := range s {
		if !LiftAchievable(l.Thickness, l.MinLift(), l.MaxLift()) {
			return fmt.Errorf("%w: %q at %g in (lifts %g-%g)", ErrLiftUnachievable, l.Name(), l.Thickness, l.MinLift(), l.MaxLift())
		}
	}
	return nil
}

// LiftAchievable reports whether a course of the given thickness can be laid
// as passes of at most maxLift each. A whole number of max lifts always works.
// Otherwise the remainder against the min lift must fit in the lift range,
// and the final partial pass must be at least one min lift thick.
func LiftAchievable(thickness, minLift, maxLift float64) bool {
	if isWhole(thickness, maxLift) {
		return true
	}
	if !(math.Mod(thickness, minLift) < maxLift-minLift) {
		return false
	}
	return math.Mod(thickness, maxLift) >= minLift-liftTol
}

// isWhole reports whether x is an integral multiple of step.
func isWhole(x, step float64) bool {
	r := math.Mod(x, step)
	return r < liftTol || step-r < liftTol
}
