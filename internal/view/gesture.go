package view

import "behaviormap/internal/geometry"

// Gestures tracks the at most one active pan and the at most one active
// node drag. Each is a start/update/end triple driven by pointer events.
type Gestures struct {
	t *Transform

	panning  bool
	panStart geometry.Point

	dragging   bool
	dragNode   int
	dragOffset geometry.Point
}

func NewGestures(t *Transform) *Gestures {
	return &Gestures{t: t, dragNode: -1}
}

func (g *Gestures) Panning() bool  { return g.panning }
func (g *Gestures) Dragging() bool { return g.dragging }

// DragNode returns the id of the node being dragged, or -1.
func (g *Gestures) DragNode() int {
	if !g.dragging {
		return -1
	}
	return g.dragNode
}

// StartPan begins a pan at the screen pointer position. It reports false if
// a pan is already active.
func (g *Gestures) StartPan(sx, sy float64) bool {
	if g.panning {
		return false
	}
	tx, ty := g.t.Translate()
	g.panStart = geometry.Point{X: sx - tx, Y: sy - ty}
	g.panning = true
	return true
}

// UpdatePan moves the view so that the point grabbed at StartPan follows the pointer.
func (g *Gestures) UpdatePan(sx, sy float64) bool {
	if !g.panning {
		return false
	}
	g.t.PanTo(sx-g.panStart.X, sy-g.panStart.Y)
	return true
}

func (g *Gestures) EndPan() {
	g.panning = false
}

// StartDrag begins dragging the node with the given id whose top-left
// corner is at nodePos in world space. The grab offset is kept in world
// units. A drag never starts while a pan is in progress or another drag is
// active.
func (g *Gestures) StartDrag(id int, sx, sy float64, nodePos geometry.Point) bool {
	if g.panning || g.dragging {
		return false
	}
	topLeft := g.t.ToScreen(nodePos.X, nodePos.Y)
	scale := g.t.Scale()
	g.dragOffset = geometry.Point{
		X: (sx - topLeft.X) / scale,
		Y: (sy - topLeft.Y) / scale,
	}
	g.dragNode = id
	g.dragging = true
	return true
}

// UpdateDrag returns the new world top-left position for the dragged node.
func (g *Gestures) UpdateDrag(sx, sy float64) (id int, pos geometry.Point, ok bool) {
	if !g.dragging {
		return -1, geometry.Point{}, false
	}
	w := g.t.ToWorld(sx, sy)
	return g.dragNode, geometry.Point{X: w.X - g.dragOffset.X, Y: w.Y - g.dragOffset.Y}, true
}

func (g *Gestures) EndDrag() {
	g.dragging = false
	g.dragNode = -1
}
