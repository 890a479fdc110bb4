package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"behaviormap/internal/geometry"
)

const eps = 1e-9

func transformAt(scale, tx, ty float64) *Transform {
	t := NewTransform()
	t.SetScale(scale)
	t.PanTo(tx, ty)
	return t
}

func TestRoundTrip(t *testing.T) {
	states := []*Transform{
		NewTransform(),
		transformAt(0.3, 0, 0),
		transformAt(3, -250.5, 71),
		transformAt(1.7, 1e4, -3e3),
	}
	points := []geometry.Point{{X: 0, Y: 0}, {X: 12.5, Y: -8}, {X: -400, Y: 900}, {X: 1e5, Y: 1e-3}}

	for _, tr := range states {
		for _, p := range points {
			s := tr.ToScreen(p.X, p.Y)
			w := tr.ToWorld(s.X, s.Y)
			assert.InDelta(t, p.X, w.X, 1e-6)
			assert.InDelta(t, p.Y, w.Y, 1e-6)

			w = tr.ToWorld(p.X, p.Y)
			s = tr.ToScreen(w.X, w.Y)
			assert.InDelta(t, p.X, s.X, 1e-6)
			assert.InDelta(t, p.Y, s.Y, 1e-6)
		}
	}
}

func TestZoomAt_KeepsPointUnderCursor(t *testing.T) {
	tests := []struct {
		name   string
		start  *Transform
		sx, sy float64
		delta  float64
	}{
		{"zoom in from identity", NewTransform(), 320, 240, 0.1},
		{"zoom out panned", transformAt(2, 40, -60), 10, 500, -0.5},
		{"large step", transformAt(0.5, -100, 100), 0, 0, 2.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.start.ToWorld(tt.sx, tt.sy)
			tt.start.ZoomAt(tt.sx, tt.sy, tt.delta)
			after := tt.start.ToWorld(tt.sx, tt.sy)
			assert.InDelta(t, before.X, after.X, eps)
			assert.InDelta(t, before.Y, after.Y, eps)
		})
	}
}

func TestZoomAt_ClampsScale(t *testing.T) {
	tr := transformAt(3, 15, 25)
	before := tr.ToWorld(100, 80)

	tr.ZoomAt(100, 80, 0.5)

	require.Equal(t, MaxScale, tr.Scale())
	after := tr.ToWorld(100, 80)
	assert.InDelta(t, before.X, after.X, eps)
	assert.InDelta(t, before.Y, after.Y, eps)

	s := tr.ToScreen(after.X, after.Y)
	assert.InDelta(t, 100, s.X, eps)
	assert.InDelta(t, 80, s.Y, eps)

	tr.ZoomAt(0, 0, -10)
	assert.Equal(t, MinScale, tr.Scale())
}

func TestSetScale_Clamps(t *testing.T) {
	tr := NewTransform()
	tr.SetScale(12)
	assert.Equal(t, MaxScale, tr.Scale())
	tr.SetScale(0)
	assert.Equal(t, MinScale, tr.Scale())
}
