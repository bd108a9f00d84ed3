package pavement

import (
	"math/rand"
	"slices"
	"time"
)

// MaxCourses is the largest number of courses a sampled section can have.
const MaxCourses = 4

// Sampler produces candidate sections for the search. Implementations must
// return sections that own their layers.
type Sampler interface {
	Candidates(cat Catalog, n int) []Section
}

// RandomSampler draws sections by Monte-Carlo sampling of the catalog.
// Rand is not safe for concurrent use; give each goroutine its own sampler.
type RandomSampler struct {
	Rand *rand.Rand
}

// NewRandomSampler returns a sampler seeded with seed. A zero seed draws one
// from the clock, so repeated runs differ.
func NewRandomSampler(seed int64) *RandomSampler {
	return &RandomSampler{Rand: newRand(seed)}
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Candidates draws n sections.
func (s *RandomSampler) Candidates(cat Catalog, n int) []Section {
	out := make([]Section, 0, max(n, 0))
	for i := 0; i < n; i++ {
		out = append(out, s.Section(cat))
	}
	return out
}

// Section draws one section: 1 to MaxCourses materials picked uniformly with
// replacement, each at its minimum lift, then put in placement order.
func (s *RandomSampler) Section(cat Catalog) Section {
	if cat.Len() == 0 {
		return nil
	}
	n := s.Rand.Intn(MaxCourses) + 1
	sec := make(Section, 0, n)
	for i := 0; i < n; i++ {
		sec = append(sec, cat.Layer(s.Rand.Intn(cat.Len())))
	}
	placementOrder(sec)
	return sec
}

// placementOrder moves surface courses to the top and subgrade treatments to
// the bottom. The surface pass is followed by a reverse, so within a group
// courses end up in reverse draw order.
func placementOrder(sec Section) {
	slices.SortStableFunc(sec, func(a, b Layer) int {
		return flag(a.Surface()) - flag(b.Surface())
	})
	slices.Reverse(sec)
	slices.SortStableFunc(sec, func(a, b Layer) int {
		return flag(a.SubgradeTreatment()) - flag(b.SubgradeTreatment())
	})
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}
