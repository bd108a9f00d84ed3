// Package library serves stored material catalogs and the solve runs made
// against them.
package library

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"Pavex/internal/auth"
	"Pavex/internal/calc/pavement"
	"Pavex/internal/catalog"
	"Pavex/internal/repo"
)

type Handler struct {
	Repo   repo.Repository
	Solver *pavement.Handler
	Log    *slog.Logger
}

// lookup reads a stored catalog. The built-in catalog answers for its name
// until a stored one replaces it.
func (h *Handler) lookup(ctx context.Context, name string) (catalog.Catalog, error) {
	c, err := h.Repo.GetCatalog(ctx, name)
	if errors.Is(err, repo.ErrNotFound) && name == catalog.DefaultName {
		return catalog.Default(), nil
	}
	return c, err
}

func (h *Handler) ListCatalogs(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.ListCatalogs(r.Context())
	if err != nil {
		h.fail(w, "list catalogs", err)
		return
	}
	h.writeJSON(w, http.StatusOK, list)
}

func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	c, err := h.lookup(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		h.fail(w, "get catalog", err)
		return
	}
	h.writeJSON(w, http.StatusOK, c)
}

func (h *Handler) PutCatalog(w http.ResponseWriter, r *http.Request) {
	var c catalog.Catalog
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	c.Name = mux.Vars(r)["name"]
	if err := h.Repo.PutCatalog(r.Context(), c); err != nil {
		h.fail(w, "put catalog", err)
		return
	}
	if h.Log != nil {
		who, _ := auth.Subject(r.Context())
		h.Log.Info("catalog stored", "name", c.Name, "materials", len(c.Materials), "by", who)
	}
	h.writeJSON(w, http.StatusOK, c)
}

func (h *Handler) DeleteCatalog(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.DeleteCatalog(r.Context(), mux.Vars(r)["name"]); err != nil {
		h.fail(w, "delete catalog", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Solve runs a search against a stored catalog and records the run.
// Materials in the body are ignored.
func (h *Handler) Solve(w http.ResponseWriter, r *http.Request) {
	var req pavement.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	c, err := h.lookup(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		h.fail(w, "solve catalog", err)
		return
	}
	req.Materials = c.Materials
	if req.Seed == 0 {
		// stored runs must be reproducible
		req.Seed = drawSeed()
	}

	res, err := h.Solver.Run("catalog", req)
	if err != nil {
		http.Error(w, pavement.ErrorMessage(err), http.StatusBadRequest)
		return
	}
	opts, _ := h.Solver.Options(req)
	run, err := h.Repo.SaveRun(r.Context(), repo.Run{
		Catalog:   c.Name,
		TargetSN:  req.TargetSN,
		Seed:      req.Seed,
		Earthwork: opts.Earthwork,
		Response:  pavement.NewResponse(req.TargetSN, res),
	})
	if err != nil {
		h.fail(w, "save run", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, run)
}

func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.Repo.GetRun(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, "get run", err)
		return
	}
	h.writeJSON(w, http.StatusOK, run)
}

// fail maps storage and validation errors to HTTP statuses.
func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, repo.ErrNoName),
		errors.Is(err, catalog.ErrNoMaterials),
		errors.Is(err, pavement.ErrInvalidMaterial),
		errors.Is(err, pavement.ErrDuplicateMaterial):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		if h.Log != nil {
			h.Log.Error(op, "err", err)
		}
		http.Error(w, "DB error", http.StatusInternalServerError)
	}
}

// drawSeed picks a nonzero clock seed for an unseeded solve.
func drawSeed() int64 {
	if s := time.Now().UnixNano(); s != 0 {
		return s
	}
	return 1
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && h.Log != nil {
		h.Log.Warn("encode response", "err", err)
	}
}
