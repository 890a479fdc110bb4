package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"behaviormap/internal/geometry"
)

func TestPanGesture_AbsoluteFromStart(t *testing.T) {
	tr := transformAt(1, 10, 20)
	g := NewGestures(tr)

	require.True(t, g.StartPan(100, 100))
	assert.False(t, g.StartPan(0, 0), "second pan must not start")

	for i := 1; i <= 50; i++ {
		g.UpdatePan(100+float64(i)*0.1, 100)
	}
	x, y := tr.Translate()
	assert.InDelta(t, 15, x, 1e-9)
	assert.InDelta(t, 20, y, 1e-9)

	g.EndPan()
	assert.False(t, g.UpdatePan(500, 500))
	x, _ = tr.Translate()
	assert.InDelta(t, 15, x, 1e-9)
}

func TestDragGesture_KeepsGrabOffset(t *testing.T) {
	tr := transformAt(2, 50, 0)
	g := NewGestures(tr)

	// Node top-left at world (10,10) -> screen (70,20). Grab 8px right, 4px down.
	require.True(t, g.StartDrag(7, 78, 24, geometry.Point{X: 10, Y: 10}))
	assert.Equal(t, 7, g.DragNode())

	id, pos, ok := g.UpdateDrag(78, 24)
	require.True(t, ok)
	assert.Equal(t, 7, id)
	assert.InDelta(t, 10, pos.X, 1e-9)
	assert.InDelta(t, 10, pos.Y, 1e-9)

	_, pos, _ = g.UpdateDrag(98, 44)
	assert.InDelta(t, 20, pos.X, 1e-9)
	assert.InDelta(t, 20, pos.Y, 1e-9)

	g.EndDrag()
	_, _, ok = g.UpdateDrag(0, 0)
	assert.False(t, ok)
	assert.Equal(t, -1, g.DragNode())
}

func TestDragGesture_SuppressedWhilePanning(t *testing.T) {
	g := NewGestures(NewTransform())
	require.True(t, g.StartPan(0, 0))
	assert.False(t, g.StartDrag(1, 0, 0, geometry.Point{}))
	assert.False(t, g.Dragging())

	g.EndPan()
	assert.True(t, g.StartDrag(1, 0, 0, geometry.Point{}))
	assert.False(t, g.StartDrag(2, 0, 0, geometry.Point{}), "only one drag at a time")
}
