package main

import (
	"io"
	"log/slog"
	"math/rand/v2"

	"behaviormap/internal/config"
	"behaviormap/internal/geometry"
	"behaviormap/internal/render"
	"behaviormap/internal/scene"
	"behaviormap/internal/view"
)

// editor wires the scene, the view transform and the renderer together
// behind the operations the interaction layer calls.
type editor struct {
	scene    *scene.Model
	view     *view.Transform
	gestures *view.Gestures
	measure  scene.Measurer
	renderer *render.Renderer

	threshold float64
	zoomStep  float64
	log       *slog.Logger
}

func newEditor(cfg *config.Config, log *slog.Logger, seed uint64) *editor {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	opts := []scene.Option{
		scene.WithLogger(log),
		scene.WithMargin(cfg.Editor.Margin),
	}
	if seed != 0 {
		opts = append(opts, scene.WithRand(rand.New(rand.NewPCG(seed, seed))))
	}
	s := scene.New(opts...)
	v := view.NewTransform()
	m := widgetMeasurer{}
	style := render.Style{
		LineWidth:       cfg.Render.LineWidth,
		ArrowLength:     cfg.Render.ArrowLength,
		LabelBackground: cfg.Render.LabelBackground,
		LabelForeground: cfg.Render.LabelForeground,
	}
	return &editor{
		scene:     s,
		view:      v,
		gestures:  view.NewGestures(v),
		measure:   m,
		renderer:  render.NewRenderer(s, v, m, style),
		threshold: cfg.Editor.HitThreshold,
		zoomStep:  cfg.Editor.ZoomStep,
		log:       log,
	}
}

// seed adds the demo nodes. Invalid names are logged and skipped.
func (e *editor) seed(names []string) {
	for _, name := range names {
		if _, err := e.scene.AddNode(name); err != nil {
			e.log.Warn("skipping demo node", "name", name, "error", err)
		}
	}
}

// resize records the surface size in screen units, which bounds the
// random placement of new nodes.
func (e *editor) resize(screenW, screenH float64) {
	e.scene.SetBounds(screenW, screenH)
}

// connectionAt hit-tests a screen point against the connections.
func (e *editor) connectionAt(sx, sy float64) int {
	w := e.view.ToWorld(sx, sy)
	return e.scene.FindConnectionAt(w.X, w.Y, e.threshold, e.measure)
}

// nodeAt returns the id of the node under a screen point, or -1.
func (e *editor) nodeAt(sx, sy float64) int {
	w := e.view.ToWorld(sx, sy)
	return e.scene.NodeAt(w.X, w.Y, e.measure)
}

// zoom applies one wheel step at a screen point; in is true for zoom in.
func (e *editor) zoom(sx, sy float64, in bool) {
	delta := -e.zoomStep
	if in {
		delta = e.zoomStep
	}
	e.view.ZoomAt(sx, sy, delta)
}

// panBy shifts the view by a screen delta.
func (e *editor) panBy(dx, dy float64) {
	tx, ty := e.view.Translate()
	e.view.PanTo(tx+dx, ty+dy)
}

func (e *editor) startDrag(id int, sx, sy float64) bool {
	n, ok := e.scene.Node(id)
	if !ok {
		return false
	}
	return e.gestures.StartDrag(id, sx, sy, geometry.Point{X: n.X, Y: n.Y})
}

func (e *editor) updateDrag(sx, sy float64) bool {
	id, pos, ok := e.gestures.UpdateDrag(sx, sy)
	if !ok {
		return false
	}
	return e.scene.MoveNode(id, pos.X, pos.Y)
}

// describe returns a human description of the connection at index.
func (e *editor) describe(index int) (label, from, to string, ok bool) {
	c, ok := e.scene.Connection(index)
	if !ok {
		return "", "", "", false
	}
	a, _ := e.scene.Node(c.From)
	b, _ := e.scene.Node(c.To)
	return c.Label, a.Name, b.Name, true
}
