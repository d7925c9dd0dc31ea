package kdtree

// Statistic is an opaque per-node accumulator. The builder calls Accumulate
// once per point for leaves, AccumulateChild once per child for internal
// nodes, and Postprocess exactly once per node after all accumulation.
// AccumulateChild receives the child's statistic before the child has been
// postprocessed.
type Statistic interface {
	Accumulate(p []float64)
	AccumulateChild(child Statistic, childBound *Bound, childCount int)
	Postprocess(bound *Bound, count int)
}

// StatFactory creates one Statistic per node.
type StatFactory func() Statistic

// noopStat is used when the builder has no statistic factory.
type noopStat struct{}

func (noopStat) Accumulate(p []float64)                 {}
func (noopStat) AccumulateChild(Statistic, *Bound, int) {}
func (noopStat) Postprocess(bound *Bound, count int)    {}

// MomentStat accumulates point count and coordinate sums, and derives the
// centroid at postprocess time.
type MomentStat struct {
	Count int
	Sum   []float64
	Mean  []float64
}

// NewMomentStat returns a StatFactory for the given dimension.
func NewMomentStat(dim int) StatFactory {
	return func() Statistic {
		return &MomentStat{Sum: make([]float64, dim)}
	}
}

// Accumulate implements Statistic.
func (s *MomentStat) Accumulate(p []float64) {
	s.Count++
	for d := range s.Sum {
		s.Sum[d] += p[d]
	}
}

// AccumulateChild implements Statistic.
func (s *MomentStat) AccumulateChild(child Statistic, childBound *Bound, childCount int) {
	cs := child.(*MomentStat)
	s.Count += cs.Count
	for d := range s.Sum {
		s.Sum[d] += cs.Sum[d]
	}
}

// Postprocess implements Statistic.
func (s *MomentStat) Postprocess(bound *Bound, count int) {
	s.Mean = make([]float64, len(s.Sum))
	if s.Count == 0 {
		return
	}
	for d := range s.Sum {
		s.Mean[d] = s.Sum[d] / float64(s.Count)
	}
}
