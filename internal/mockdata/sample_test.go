package mockdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// constSource returns the same draw forever.
type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

// seqSource replays draws in order and then repeats the last one.
type seqSource struct {
	draws []float64
	n     int
}

func (s *seqSource) Float64() float64 {
	i := min(s.n, len(s.draws)-1)
	s.n++
	return s.draws[i]
}

func TestPick(t *testing.T) {
	items := []string{"a", "b", "c", "d"}

	tests := []struct {
		draw float64
		want string
	}{
		{0, "a"},
		{0.2499, "a"},
		{0.25, "b"},
		{0.5, "c"},
		{0.9999, "d"},
		{1.0, "d"}, // must not index past the end
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Pick(items, constSource(tt.draw)), "draw %v", tt.draw)
	}
}

func TestPickWeighted(t *testing.T) {
	items := []string{"critical", "high", "medium", "low", "info"}
	weights := []float64{0.05, 0.15, 0.35, 0.30, 0.15}

	tests := []struct {
		draw float64
		want string
	}{
		{0, "critical"},
		{0.05, "critical"},
		{0.06, "high"},
		{0.2, "high"},
		{0.5, "medium"},
		{0.8, "low"},
		{0.9999, "info"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PickWeighted(items, weights, constSource(tt.draw)), "draw %v", tt.draw)
	}
}

func TestPickWeighted_DriftFallsBackToLast(t *testing.T) {
	items := []int{1, 2, 3}
	weights := []float64{0.1, 0.1, 0.1}

	assert.Equal(t, 3, PickWeighted(items, weights, constSource(0.99)))
}

func TestPickWeighted_ShortWeights(t *testing.T) {
	items := []int{1, 2, 3}

	assert.Equal(t, 1, PickWeighted(items, []float64{0.5}, constSource(0.4)))
	assert.Equal(t, 3, PickWeighted(items, []float64{0.5}, constSource(0.6)))
}

func TestPickWeighted_Empty(t *testing.T) {
	assert.Equal(t, "", PickWeighted([]string{}, nil, constSource(0.5)))
}

func TestScaled(t *testing.T) {
	assert.Equal(t, 200, scaled(0, 800, 200))
	assert.Equal(t, 999, scaled(0.99999, 800, 200))
	assert.Equal(t, 600, scaled(0.5, 800, 200))
}
