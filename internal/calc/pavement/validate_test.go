package pavement_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"Pavex/internal/calc/pavement"
)

func TestCheck_Rules(t *testing.T) {
	cases := []struct {
		name string
		s    pavement.Section
		want error
	}{
		{"single surface course", section(t, surfaceA, 1.0), nil},
		{"full stack", section(t, surfaceA, 1.0, baseB, 4.0, slabD, 8.0, limeF, 4.0), nil},
		{"empty", pavement.Section{}, pavement.ErrEmptySection},
		{"duplicate material", section(t, surfaceA, 1.0, baseB, 2.0, baseB, 3.0), pavement.ErrDuplicateCourse},
		{"no surface on top", section(t, baseB, 2.0, surfaceA, 1.0), pavement.ErrNoSurface},
		{"two subgrade treatments", section(t, surfaceA, 1.0, limeF, 4.0, limeE, 4.0), pavement.ErrMultipleSubgrade},
		{"adjacent alkaline", section(t, surfaceA, 1.0, slabD, 8.0, limeE, 4.0), pavement.ErrAdjacentAlkaline},
		{"zero thickness", section(t, surfaceA, 1.0, baseB, 0.0), pavement.ErrNonPositiveThickness},
		{"negative thickness", section(t, surfaceA, -1.0), pavement.ErrNonPositiveThickness},
		{"unbuildable lift", section(t, surfaceA, 1.0, baseC, 7.0), pavement.ErrLiftUnachievable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := pavement.Check(tc.s)
			if tc.want == nil {
				require.NoError(t, err)
				require.True(t, pavement.IsValid(tc.s))
				return
			}
			require.ErrorIs(t, err, tc.want)
			require.False(t, pavement.IsValid(tc.s))
		})
	}
}

func TestCheck_AlkalineAdjacencyIsNotCircular(t *testing.T) {
	alkalineSurface := surfaceA
	alkalineSurface.Name = "Alkaline Surface"
	alkalineSurface.Alkaline = true

	// top and bottom are both alkaline but never touch
	s := section(t, alkalineSurface, 1.0, baseB, 2.0, limeE, 4.0)
	require.NoError(t, pavement.Check(s))
}

func TestLiftAchievable(t *testing.T) {
	cases := []struct {
		thickness, min, max float64
		want                bool
	}{
		{7, 2, 6, false},  // one full lift leaves a 1in pass under the 2in minimum
		{6, 2, 6, true},   // one max lift
		{12, 2, 6, true},  // two max lifts
		{8, 2, 6, true},   // 6 + 2
		{3.5, 2, 6, true}, // a single partial lift
		{2, 2, 6, true},   // exactly the minimum
		{8, 8, 8, true},   // fixed course at its only thickness
		{16, 8, 8, true},  // fixed course laid twice
		{9, 8, 8, false},  // fixed course cannot be trimmed
		{5.5, 1.5, 4, true},
		{4.5, 1.5, 4, false},
		{11, 1.5, 4, true},
		{9, 2, 8, false},
	}
	for _, tc := range cases {
		got := pavement.LiftAchievable(tc.thickness, tc.min, tc.max)
		require.Equal(t, tc.want, got, "thickness %g lifts %g-%g", tc.thickness, tc.min, tc.max)
	}
}
