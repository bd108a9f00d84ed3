package batch

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"Pavex/internal/calc/pavement"
)

// MaxTargets bounds the number of targets one batch may carry.
const MaxTargets = 50

var (
	ErrNoTargets      = errors.New("batch: no targets")
	ErrTooManyTargets = fmt.Errorf("batch: more than %d targets", MaxTargets)
)

// Input runs the same catalog and earthwork against several target structural
// numbers.
type Input struct {
	Materials []pavement.Material `json:"materials"`
	Targets   []float64           `json:"targets"`
	pavement.Earthwork
	Seed       int64 `json:"seed"`
	Top        int   `json:"top"`
	Population int   `json:"population"`
}

// Result holds one ranked list per target, in input order.
type Result struct {
	Results []pavement.Response `json:"results"`
}

// Calculate solves every target concurrently through s. Target i is searched
// with Seeds(Seed, n)[i], so a seeded batch is reproducible; an unseeded batch
// draws its base seed from the clock once.
func Calculate(s *pavement.Handler, in Input) (Result, error) {
	if len(in.Targets) == 0 {
		return Result{}, ErrNoTargets
	}
	if len(in.Targets) > MaxTargets {
		return Result{}, ErrTooManyTargets
	}
	base := in.Seed
	if base == 0 {
		base = time.Now().UnixNano()
	}

	seeds := Seeds(base, len(in.Targets))

	out := Result{Results: make([]pavement.Response, len(in.Targets))}
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, target := range in.Targets {
		g.Go(func() error {
			res, err := s.Run("batch", pavement.Request{
				Materials:  in.Materials,
				TargetSN:   target,
				Earthwork:  in.Earthwork,
				Seed:       seeds[i],
				Top:        in.Top,
				Population: in.Population,
			})
			if err != nil {
				return fmt.Errorf("target %g: %w", target, err)
			}
			out.Results[i] = pavement.NewResponse(target, res)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	return out, nil
}

// Seeds derives n search seeds from base. None is zero, since a zero seed
// would make the search fall back to the clock.
func Seeds(base int64, n int) []int64 {
	rng := rand.New(rand.NewSource(base))
	out := make([]int64, n)
	for i := range out {
		out[i] = rng.Int63n(math.MaxInt64) + 1
	}
	return out
}
