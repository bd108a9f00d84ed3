package pavement_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"Pavex/internal/calc/pavement"
	"Pavex/internal/catalog"
)

func TestAdjust_ReachesTargetWithCheapestCourse(t *testing.T) {
	s := section(t, surfaceA, 1.0, baseB, 2.0)

	adj := pavement.Adjust(s, 2.5, pavement.DefaultTuning())

	require.True(t, adj.Converged)
	require.Equal(t, 1, adj.Passes)
	require.Equal(t, 2.5, adj.StructuralNumber)
	require.Equal(t, 1.0, s[0].Thickness, "expensive surface stays at its minimum")
	require.Equal(t, 8.0, s[1].Thickness)
	require.True(t, pavement.IsValid(s))
}

func TestAdjust_FloorsIncrementsWhenAdding(t *testing.T) {
	mats := catalog.Default().Materials
	s := section(t, mats[0], 1.5, mats[2], 2.0) // asphalt surface over crushed rock

	adj := pavement.Adjust(s, 2.0, pavement.Tuning{})

	// 1.08 SN short: eight 1in rock increments (0.13 each) fit, a ninth would overshoot,
	// and no 0.5in asphalt increment (0.22) fits in what is left.
	require.Equal(t, 10.0, s[1].Thickness)
	require.Equal(t, 1.5, s[0].Thickness)
	require.False(t, adj.Converged)
	require.Equal(t, 10, adj.Passes)
	require.InDelta(t, 1.96, adj.StructuralNumber, 1e-9)
	require.InDelta(t, 0.04, adj.Residual, 1e-9)
}

func TestAdjust_CeilsIncrementsWhenRemoving(t *testing.T) {
	s := section(t, surfaceA, 1.0, baseB, 8.0)

	adj := pavement.Adjust(s, 1.6, pavement.DefaultTuning())

	require.Equal(t, 5.0, s[1].Thickness)
	require.Equal(t, 1.0, s[0].Thickness)
	require.InDelta(t, 1.75, adj.StructuralNumber, 1e-12)
	require.False(t, adj.Converged)
	require.Less(t, adj.Residual, 0.0, "removal stops above the target")
}

func TestAdjust_ClampsToMinimumLift(t *testing.T) {
	s := section(t, surfaceA, 3.0)

	adj := pavement.Adjust(s, 0.1, pavement.DefaultTuning())

	require.Equal(t, surfaceA.MinLift, s[0].Thickness)
	require.Equal(t, 0.5, adj.StructuralNumber)
	require.False(t, adj.Converged)
}

func TestAdjust_SkipsFixedCourses(t *testing.T) {
	s := section(t, surfaceA, 1.0, slabD, 8.0)

	adj := pavement.Adjust(s, 6.0, pavement.DefaultTuning())

	require.True(t, adj.Converged)
	require.Equal(t, 8.0, s[1].Thickness)
	require.Equal(t, 4.0, s[0].Thickness)
}

func TestAdjust_PrefersLowerCostPerSN(t *testing.T) {
	s := section(t, surfaceA, 1.0, baseC, 2.0)

	adj := pavement.Adjust(s, 3.0, pavement.DefaultTuning())

	require.True(t, adj.Converged)
	require.Equal(t, 1.0, s[0].Thickness)
	require.Equal(t, 5.0, s[1].Thickness)
}

func TestAdjust_AlreadyOnTarget(t *testing.T) {
	s := section(t, surfaceA, 2.0)

	adj := pavement.Adjust(s, 1.0, pavement.DefaultTuning())

	require.True(t, adj.Converged)
	require.Zero(t, adj.Passes)
	require.Equal(t, 2.0, s[0].Thickness)
}
