package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnchor(t *testing.T) {
	got := Anchor(10, 20, 100, 40)
	assert.Equal(t, Point{X: 60, Y: 40}, got)
}

func TestDistanceToSegment(t *testing.T) {
	a, b := Point{0, 0}, Point{100, 0}

	tests := []struct {
		name string
		p    Point
		want float64
	}{
		{"on segment", Point{50, 0}, 0},
		{"above middle", Point{50, 5}, 5},
		{"past end clamps to endpoint", Point{103, 4}, 5},
		{"before start clamps to endpoint", Point{-3, -4}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DistanceToSegment(tt.p, a, b), 1e-9)
		})
	}
}

func TestDistanceToSegment_DegenerateIsInfinite(t *testing.T) {
	d := DistanceToSegment(Point{1, 1}, Point{5, 5}, Point{5, 5})
	require.True(t, math.IsInf(d, 1))
}

func TestNearSegment(t *testing.T) {
	a, b := Point{0, 0}, Point{100, 0}

	tests := []struct {
		name      string
		p         Point
		threshold float64
		want      bool
	}{
		{"midpoint on the line", Point{50, 0}, 1, true},
		{"threshold plus one above midpoint", Point{50, 2}, 1, false},
		{"exactly at threshold", Point{50, 8}, 8, true},
		{"beyond end along the line", Point{101, 0}, 8, false},
		{"beyond start along the line", Point{-0.5, 0}, 8, false},
		{"at endpoint", Point{100, 0}, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NearSegment(tt.p, a, b, tt.threshold))
		})
	}
}

func TestNearSegment_Diagonal(t *testing.T) {
	a, b := Point{0, 0}, Point{100, 100}
	// (50,50) shifted perpendicular by 5 units.
	off := 5 / math.Sqrt2
	assert.True(t, NearSegment(Point{50 - off, 50 + off}, a, b, 5.0001))
	assert.False(t, NearSegment(Point{50 - off, 50 + off}, a, b, 4.9))
}

func TestNearSegment_Degenerate(t *testing.T) {
	assert.False(t, NearSegment(Point{0, 0}, Point{0, 0}, Point{0, 0}, 100))
}

func TestArrowhead(t *testing.T) {
	left, right := Arrowhead(Point{0, 0}, Point{100, 0}, ArrowLength)

	cos30 := math.Cos(math.Pi / 6)
	assert.InDelta(t, 100-ArrowLength*cos30, left.X, 1e-9)
	assert.InDelta(t, ArrowLength/2, left.Y, 1e-9)
	assert.InDelta(t, 100-ArrowLength*cos30, right.X, 1e-9)
	assert.InDelta(t, -ArrowLength/2, right.Y, 1e-9)

	// Both back vertices sit at the arrow length from the tip.
	tip := Point{100, 0}
	assert.InDelta(t, ArrowLength, math.Hypot(left.X-tip.X, left.Y-tip.Y), 1e-9)
	assert.InDelta(t, ArrowLength, math.Hypot(right.X-tip.X, right.Y-tip.Y), 1e-9)
}

func TestLabelBox(t *testing.T) {
	r := LabelBox(Midpoint(Point{0, 0}, Point{100, 40}), 30)
	assert.Equal(t, Rect{X: 31, Y: 12, W: 38, H: 16}, r)
	assert.True(t, r.Contains(Point{50, 20}))
	assert.False(t, r.Contains(Point{10, 20}))
}
