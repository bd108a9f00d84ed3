package batch

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"Pavex/internal/calc/pavement"
)

type Handler struct {
	Solver *pavement.Handler
	Log    *slog.Logger
}

func (h *Handler) Pavement(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(h.Solver, input)
	if err != nil {
		if h.Log != nil {
			h.Log.Warn("batch failed", "targets", len(input.Targets), "err", err)
		}
		msg := pavement.ErrorMessage(err)
		if errors.Is(err, ErrNoTargets) || errors.Is(err, ErrTooManyTargets) {
			msg = err.Error()
		}
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil && h.Log != nil {
		h.Log.Warn("encode batch response", "err", err)
	}
}
