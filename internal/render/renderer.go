// Package render paints the connections of a scene onto a Surface under the
// current view transform. It keeps no state between frames.
package render

import (
	"behaviormap/internal/geometry"
	"behaviormap/internal/scene"
	"behaviormap/internal/view"
)

// Style holds the fixed drawing parameters. Sizes are in world units.
type Style struct {
	LineWidth       float64
	ArrowLength     float64
	LabelBackground string
	LabelForeground string
}

func DefaultStyle() Style {
	return Style{
		LineWidth:       3,
		ArrowLength:     geometry.ArrowLength,
		LabelBackground: "#1e3a8ae6",
		LabelForeground: "#ffffff",
	}
}

// Renderer draws connections, arrowheads and labels. Node widgets belong to
// the caller and are drawn by it.
type Renderer struct {
	scene    *scene.Model
	view     *view.Transform
	measurer scene.Measurer
	style    Style
}

func NewRenderer(s *scene.Model, v *view.Transform, m scene.Measurer, style Style) *Renderer {
	return &Renderer{scene: s, view: v, measurer: m, style: style}
}

func (r *Renderer) Style() Style { return r.style }

// Render clears the surface and repaints every connection in stored order.
func (r *Renderer) Render(s Surface) {
	s.Clear()

	scale := r.view.Scale()
	tx, ty := r.view.Translate()

	s.Push()
	defer s.Pop()
	// Translate is in screen units, so it is divided by the scale and
	// composed after it: screen = (world + t/scale) * scale.
	s.Scale(scale, scale)
	s.Translate(tx/scale, ty/scale)

	for _, c := range r.scene.Connections() {
		from, to, ok := r.scene.Endpoints(c, r.measurer)
		if !ok {
			continue
		}
		r.drawConnection(s, c, from, to)
	}
}

func (r *Renderer) drawConnection(s Surface, c scene.Connection, from, to geometry.Point) {
	s.SetColor(c.Color)
	s.SetLineWidth(r.style.LineWidth)
	s.MoveTo(from.X, from.Y)
	s.LineTo(to.X, to.Y)
	s.Stroke()

	left, right := geometry.Arrowhead(from, to, r.style.ArrowLength)
	s.MoveTo(to.X, to.Y)
	s.LineTo(left.X, left.Y)
	s.LineTo(right.X, right.Y)
	s.ClosePath()
	s.Fill()

	mid := geometry.Midpoint(from, to)
	box := geometry.LabelBox(mid, s.MeasureString(c.Label))
	s.SetColor(r.style.LabelBackground)
	s.FillRect(box.X, box.Y, box.W, box.H)
	s.SetColor(r.style.LabelForeground)
	s.DrawStringAnchored(c.Label, mid.X, mid.Y, 0.5, 0)
}
