package matchmaking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type intSearch struct {
	pool      []float64
	committed []float64
	capacity  int
}

func (s *intSearch) expansion() expansion[float64] {
	return expansion[float64]{
		candidates: func() []float64 { return s.pool },
		score:      func(v float64) float64 { return v },
		center:     func() float64 { return 1000 },
		full:       func() bool { return len(s.committed) >= s.capacity },
		commit: func(v float64) bool {
			s.committed = append(s.committed, v)
			return len(s.committed) >= s.capacity
		},
	}
}

func TestExpansion_WidensUntilStrictlyWithinTolerance(t *testing.T) {
	s := &intSearch{pool: []float64{1040}, capacity: 1}

	ok, tolerance := s.expansion().run(0.1, 1000)
	assert.True(t, ok)
	assert.InDelta(t, 51.2, tolerance, 1e-9)
	assert.Equal(t, []float64{1040}, s.committed)
}

func TestExpansion_BoundaryIsExclusive(t *testing.T) {
	s := &intSearch{pool: []float64{1020}, capacity: 1}

	ok, tolerance := s.expansion().run(10, 1000)
	assert.True(t, ok)
	assert.Equal(t, 40.0, tolerance, "a delta equal to the tolerance is not admitted")
}

func TestExpansion_StopsAtBound(t *testing.T) {
	s := &intSearch{pool: []float64{5000}, capacity: 1}

	ok, tolerance := s.expansion().run(1, 1000)
	assert.False(t, ok)
	assert.Equal(t, 1024.0, tolerance)
	assert.Empty(t, s.committed)
}

func TestExpansion_NonPositiveTolerance(t *testing.T) {
	for _, start := range []float64{0, -1} {
		s := &intSearch{pool: []float64{1000}, capacity: 1}
		ok, _ := s.expansion().run(start, 1000)
		assert.False(t, ok)
		assert.Empty(t, s.committed)
	}
}

func TestExpansion_AlreadyFull(t *testing.T) {
	s := &intSearch{capacity: 0}
	ok, _ := s.expansion().run(0, 0)
	assert.True(t, ok)
}

func TestExpansion_ScansInOrderWithinAPass(t *testing.T) {
	s := &intSearch{pool: []float64{1003, 1001, 1002}, capacity: 2}

	ok, _ := s.expansion().run(5, 1000)
	assert.True(t, ok)
	assert.Equal(t, []float64{1003, 1001}, s.committed)
}

func TestExpansion_EligibleFilter(t *testing.T) {
	s := &intSearch{pool: []float64{1000, 1001}, capacity: 1}
	e := s.expansion()
	e.eligible = func(v float64) bool { return v != 1000 }

	ok, _ := e.run(5, 1000)
	assert.True(t, ok)
	assert.Equal(t, []float64{1001}, s.committed)
}

func TestInitialTolerance(t *testing.T) {
	assert.Equal(t, 0.1, initialTolerance(100, 1000))
	assert.Equal(t, 100.0, initialTolerance(100, 0))
}
