package pavement

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// MaxRequestPopulation caps the sample size a single HTTP request may ask for.
const MaxRequestPopulation = 50000

// Observer receives the outcome of every search run by a handler.
type Observer interface {
	ObserveSolve(route string, st Stats, elapsed time.Duration, err error)
}

// Request is the JSON body of a solve call. Materials may be omitted to use
// the handler's default catalog.
type Request struct {
	Materials []Material `json:"materials"`
	TargetSN  float64    `json:"target_sn"`
	Earthwork
	Seed       int64 `json:"seed"`
	Top        int   `json:"top"`
	Population int   `json:"population"`
	// Candidates asks for the sampled population to be returned alongside
	// the ranked designs.
	Candidates bool `json:"candidates"`
}

// DesignView is a ranked design as returned over the wire.
type DesignView struct {
	Rank             int      `json:"rank"`
	StructuralNumber float64  `json:"structural_number"`
	Cost             float64  `json:"cost"`
	Converged        bool     `json:"converged"`
	Unpriced         []string `json:"unpriced,omitempty"`
	Courses          []Course `json:"courses"`
}

// Response is the JSON body returned by a solve call.
type Response struct {
	TargetSN float64      `json:"target_sn"`
	Designs  []DesignView `json:"designs"`
	Stats    Stats        `json:"stats"`
	// Candidates holds every sampled section before adjustment, when asked for.
	Candidates []Point `json:"candidates,omitempty"`
}

// NewResponse flattens a search result for transport.
func NewResponse(target float64, res Result) Response {
	out := Response{TargetSN: target, Designs: make([]DesignView, 0, len(res.Designs)), Stats: res.Stats, Candidates: res.Candidates}
	for i, d := range res.Designs {
		out.Designs = append(out.Designs, DesignView{
			Rank:             i + 1,
			StructuralNumber: d.StructuralNumber,
			Cost:             d.Cost,
			Converged:        d.Converged,
			Unpriced:         d.Unpriced,
			Courses:          d.Section.Courses(),
		})
	}
	return out
}

// Handler serves the section search over HTTP.
type Handler struct {
	Materials []Material // used when a request carries no catalog
	Defaults  Options
	Log       *slog.Logger
	Observer  Observer
}

// Options merges a request with the handler defaults. Earthwork rates left at
// zero in the request fall back to the defaults.
func (h *Handler) Options(req Request) (Options, error) {
	if req.Population < 0 || req.Population > MaxRequestPopulation {
		return Options{}, ErrInvalidOptions
	}
	opts := h.Defaults
	opts.Rand = nil
	opts.Sampler = nil
	opts.DesignGrade = req.DesignGrade
	if req.EmbankmentCost != 0 {
		opts.EmbankmentCost = req.EmbankmentCost
	}
	if req.ExcavationCost != 0 {
		opts.ExcavationCost = req.ExcavationCost
	}
	opts.Seed = req.Seed
	if req.Top > 0 {
		opts.Limit = req.Top
	}
	if req.Population > 0 {
		opts.Population = req.Population
	}
	opts.KeepCandidates = req.Candidates
	return opts, nil
}

// Run solves a request and reports it to the observer.
func (h *Handler) Run(route string, req Request) (Result, error) {
	opts, err := h.Options(req)
	if err != nil {
		return Result{}, err
	}
	materials := req.Materials
	if len(materials) == 0 {
		materials = h.Materials
	}
	start := time.Now()
	res, err := Solve(materials, req.TargetSN, opts)
	if h.Observer != nil {
		h.Observer.ObserveSolve(route, res.Stats, time.Since(start), err)
	}
	return res, err
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := h.Run("solve", req)
	if err != nil {
		h.warn("solve failed", err)
		http.Error(w, ErrorMessage(err), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(NewResponse(req.TargetSN, res)); err != nil {
		h.warn("encode response", err)
	}
}

func (h *Handler) warn(msg string, err error) {
	if h.Log != nil {
		h.Log.Warn(msg, "err", err)
	}
}

// ErrorMessage turns a search error into a message safe to show a client.
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrEmptyCatalog),
		errors.Is(err, ErrInvalidMaterial),
		errors.Is(err, ErrDuplicateMaterial),
		errors.Is(err, ErrInvalidTarget),
		errors.Is(err, ErrInvalidOptions):
		return err.Error()
	}
	return "Calculation error"
}
