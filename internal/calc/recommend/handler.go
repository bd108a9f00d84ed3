package recommend

import (
	"encoding/json"
	"net/http"

	"Pavex/internal/calc/pavement"
)

type Handler struct {
	Materials []pavement.Material // used when the request carries none
}

func (h *Handler) Pavement(w http.ResponseWriter, r *http.Request) {
	var input MaterialRecommendInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if len(input.Materials) == 0 {
		input.Materials = h.Materials
	}
	res, err := Materials(input)
	if err != nil {
		http.Error(w, pavement.ErrorMessage(err), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
