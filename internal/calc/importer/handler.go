package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"Pavex/internal/calc/pavement"
)

// MaxUploadBytes bounds the size of an uploaded workbook.
const MaxUploadBytes = 8 << 20

type Handler struct {
	Solver   *pavement.Handler
	TargetSN float64 // used when the form has no target_sn
	Log      *slog.Logger
}

type PavementImportResult struct {
	Sheet   string            `json:"sheet"`
	Count   int               `json:"count"`
	Skipped []RowError        `json:"skipped,omitempty"`
	Result  pavement.Response `json:"result"`
}

// Pavement reads an uploaded material sheet and solves against it.
func (h *Handler) Pavement(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	req, err := h.formRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sheet, err := Parse(file)
	switch {
	case errors.Is(err, ErrInvalidFile):
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	case errors.Is(err, ErrEmptySheet):
		http.Error(w, "Empty sheet", http.StatusBadRequest)
		return
	case err != nil:
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	req.Materials = sheet.Materials

	res, err := h.Solver.Run("import", req)
	if err != nil {
		if h.Log != nil {
			h.Log.Warn("import solve failed", "sheet", sheet.Name, "err", err)
		}
		http.Error(w, pavement.ErrorMessage(err), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(PavementImportResult{
		Sheet:   sheet.Name,
		Count:   len(sheet.Materials),
		Skipped: sheet.Skipped,
		Result:  pavement.NewResponse(req.TargetSN, res),
	})
	if err != nil && h.Log != nil {
		h.Log.Warn("encode import response", "sheet", sheet.Name, "err", err)
	}
}

// formRequest reads the search parameters sent alongside the upload.
func (h *Handler) formRequest(r *http.Request) (pavement.Request, error) {
	req := pavement.Request{TargetSN: h.TargetSN}
	floats := []struct {
		key string
		dst *float64
	}{
		{"target_sn", &req.TargetSN},
		{"design_grade", &req.DesignGrade},
		{"embankment_cost", &req.EmbankmentCost},
		{"excavation_cost", &req.ExcavationCost},
	}
	for _, f := range floats {
		v := r.FormValue(f.key)
		if v == "" {
			continue
		}
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return req, fmt.Errorf("invalid %s", f.key)
		}
		*f.dst = x
	}
	if v := r.FormValue("seed"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return req, errors.New("invalid seed")
		}
		req.Seed = seed
	}
	if v := r.FormValue("top"); v != "" {
		top, err := strconv.Atoi(v)
		if err != nil {
			return req, errors.New("invalid top")
		}
		req.Top = top
	}
	return req, nil
}
