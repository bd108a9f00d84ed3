package pavement_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"Pavex/internal/calc/pavement"
)

func TestCost_NoEarthwork(t *testing.T) {
	s := section(t, surfaceA, 2.0, baseB, 6.0, slabD, 8.0)
	want := 2.0*40 + 6.0*1 + 8.0*150/8

	require.Equal(t, want, pavement.Cost(s, pavement.Earthwork{}))
	require.Equal(t, s.MaterialCost(), pavement.Cost(s, pavement.Earthwork{}))
}

func TestCost_Earthwork(t *testing.T) {
	s := section(t, surfaceA, 2.0, baseB, 6.0) // 8in deep, $86/SY of material
	material := s.MaterialCost()

	t.Run("embankment below a shallow section", func(t *testing.T) {
		ew := pavement.Earthwork{DesignGrade: 20, EmbankmentCost: 36, ExcavationCost: 72}
		require.Equal(t, material+12.0, pavement.Cost(s, ew))
	})

	t.Run("excavation for a deep section is a credit", func(t *testing.T) {
		// The excavation term is rate × (grade − depth), negative here. Pinned
		// until the sign convention is confirmed.
		ew := pavement.Earthwork{DesignGrade: 2, EmbankmentCost: 36, ExcavationCost: 72}
		require.Equal(t, material-12.0, pavement.Cost(s, ew))
	})

	t.Run("section at grade", func(t *testing.T) {
		ew := pavement.Earthwork{DesignGrade: 8, EmbankmentCost: 36, ExcavationCost: 72}
		require.Equal(t, material, pavement.Cost(s, ew))
	})
}
