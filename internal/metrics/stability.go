package metrics

import (
	"math"

	"github.com/san-kum/numlab/internal/numeric"
)

// Stability is the fraction of states whose |y| stayed within threshold
// and finite. A solution that blows up drives it toward zero.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(p numeric.Point) {
	s.samples++
	if !numeric.IsFinite(p.Y) || math.Abs(p.Y) > s.threshold {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
