package library_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Pavex/internal/calc/pavement"
	"Pavex/internal/catalog"
	"Pavex/internal/library"
	"Pavex/internal/repo"
)

func router(t *testing.T) *mux.Router {
	t.Helper()
	store, err := repo.Open(context.Background(), repo.DriverSQLite, filepath.Join(t.TempDir(), "lib.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	h := &library.Handler{
		Repo:   store,
		Solver: &pavement.Handler{Defaults: pavement.Options{Population: 1000, Earthwork: catalog.DefaultEarthwork()}},
	}
	r := mux.NewRouter()
	r.HandleFunc("/catalogs", h.ListCatalogs).Methods("GET")
	r.HandleFunc("/catalogs/{name}", h.GetCatalog).Methods("GET")
	r.HandleFunc("/catalogs/{name}", h.PutCatalog).Methods("PUT")
	r.HandleFunc("/catalogs/{name}", h.DeleteCatalog).Methods("DELETE")
	r.HandleFunc("/catalogs/{name}/solve", h.Solve).Methods("POST")
	r.HandleFunc("/runs/{id}", h.GetRun).Methods("GET")
	return r
}

func call(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, &buf))
	return rec
}

func TestCatalogLifecycle(t *testing.T) {
	r := router(t)

	rec := call(t, r, "GET", "/catalogs/default", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var c catalog.Catalog
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&c))
	assert.Len(t, c.Materials, 7, "built-in catalog answers before anything is stored")

	rec = call(t, r, "GET", "/catalogs/site-a", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	site := catalog.Catalog{Name: "ignored", Description: "Site A", Materials: catalog.Default().Materials[:3]}
	rec = call(t, r, "PUT", "/catalogs/site-a", site)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = call(t, r, "GET", "/catalogs", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []repo.CatalogInfo
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "site-a", list[0].Name)
	assert.Equal(t, 3, list[0].Materials)

	rec = call(t, r, "PUT", "/catalogs/bad", catalog.Catalog{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(t, r, "DELETE", "/catalogs/site-a", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = call(t, r, "DELETE", "/catalogs/site-a", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSolveRecordsRun(t *testing.T) {
	r := router(t)

	rec := call(t, r, "POST", "/catalogs/default/solve", pavement.Request{TargetSN: 5, Seed: 21, Top: 4})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var run repo.Run
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&run))
	assert.Equal(t, catalog.DefaultName, run.Catalog)
	assert.Equal(t, int64(21), run.Seed)
	assert.Equal(t, catalog.DefaultEarthwork(), run.Earthwork)
	require.NotEmpty(t, run.Response.Designs)
	assert.LessOrEqual(t, len(run.Response.Designs), 4)

	rec = call(t, r, "GET", "/runs/"+run.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got repo.Run
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, run.Response, got.Response)

	rec = call(t, r, "GET", "/runs/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = call(t, r, "POST", "/catalogs/nowhere/solve", pavement.Request{TargetSN: 5})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = call(t, r, "POST", "/catalogs/default/solve", pavement.Request{TargetSN: -2})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSolveStoresDrawnSeed(t *testing.T) {
	r := router(t)

	rec := call(t, r, "POST", "/catalogs/default/solve", pavement.Request{TargetSN: 4, Top: 3})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var run repo.Run
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&run))
	require.NotZero(t, run.Seed, "an unseeded solve records the seed it used")

	rec = call(t, r, "POST", "/catalogs/default/solve", pavement.Request{TargetSN: 4, Top: 3, Seed: run.Seed})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var again repo.Run
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&again))
	assert.Equal(t, run.Seed, again.Seed)
	assert.Equal(t, run.Response, again.Response)
	assert.NotEqual(t, run.ID, again.ID)
}
