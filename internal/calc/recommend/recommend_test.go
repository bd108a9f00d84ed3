package recommend_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Pavex/internal/calc/pavement"
	"Pavex/internal/calc/recommend"
	"Pavex/internal/catalog"
)

func TestMaterials_DefaultCatalog(t *testing.T) {
	res, err := recommend.Materials(recommend.MaterialRecommendInput{Materials: catalog.Default().Materials})
	require.NoError(t, err)

	names := make([]string, 0, len(res.Materials))
	for i, m := range res.Materials {
		assert.Equal(t, i+1, m.Rank)
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{
		"Crushed Rock Base (3/4in minus)",
		"Asphalt Binder (1in)",
		"Asphalt Surface (1/2in)",
		"Stone Backfill (6in coarse aggregate)",
		"Concrete Base (8in PCC)",
		"Lime Treated Subgrade",
		"Flowable Fill (Concrete)",
	}, names)

	top := res.Materials[0]
	assert.Equal(t, recommend.RoleBase, top.Role)
	assert.InDelta(t, 1.771875, top.CostPerInch, 1e-9)
	assert.InDelta(t, 1.771875/0.13, top.CostPerSN, 1e-9)
	assert.InDelta(t, 1.771875*2, top.MinLiftCost, 1e-9)

	assert.True(t, res.Materials[4].Fixed)
	assert.Equal(t, map[recommend.Role]string{
		recommend.RoleBase:     "Crushed Rock Base (3/4in minus)",
		recommend.RoleSurface:  "Asphalt Surface (1/2in)",
		recommend.RoleSubgrade: "Lime Treated Subgrade",
	}, res.Best)
	assert.NotContains(t, res.Notes, "No priced surface")
}

func TestMaterials_UnpricedLast(t *testing.T) {
	res, err := recommend.Materials(recommend.MaterialRecommendInput{Materials: []pavement.Material{
		{Name: "Gift", Coefficient: 0.3, MinLift: 2, MaxLift: 4, Unit: "load", Surface: true},
		{Name: "Gravel", Coefficient: 0.1, MinLift: 2, MaxLift: 6, UnitCost: 36, Unit: pavement.UnitCYD},
	}})
	require.NoError(t, err)
	require.Len(t, res.Materials, 2)
	assert.Equal(t, "Gravel", res.Materials[0].Name)
	assert.False(t, res.Materials[1].Priced)
	assert.NotContains(t, res.Best, recommend.RoleSurface)
	assert.Contains(t, res.Notes, "No priced surface")
}

func TestMaterials_Rejects(t *testing.T) {
	_, err := recommend.Materials(recommend.MaterialRecommendInput{})
	require.ErrorIs(t, err, pavement.ErrEmptyCatalog)
}

func TestHandler_Pavement(t *testing.T) {
	h := &recommend.Handler{Materials: catalog.Default().Materials}

	rec := httptest.NewRecorder()
	h.Pavement(rec, httptest.NewRequest(http.MethodPost, "/api/tools/pavement/materials", bytes.NewBufferString(`{}`)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res recommend.MaterialRecommendResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	require.Len(t, res.Materials, 7)
	assert.Equal(t, "Crushed Rock Base (3/4in minus)", res.Best[recommend.RoleBase])

	rec = httptest.NewRecorder()
	h.Pavement(rec, httptest.NewRequest(http.MethodPost, "/api/tools/pavement/materials", bytes.NewBufferString(`[`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
