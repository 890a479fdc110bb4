package main

import (
	"fmt"

	"behaviormap/internal/config"
	"behaviormap/internal/render"
)

const (
	widgetFill   = "#ffffff"
	widgetBorder = "#1e293b"
	widgetText   = "#0f172a"
)

// renderSnapshot paints the scene as seen through the editor's view onto a
// width x height PNG surface: connections first, node widgets on top.
func renderSnapshot(ed *editor, cfg *config.Config, width, height int) (*render.ImageSurface, error) {
	if ed.scene.NodeCount() == 0 {
		return nil, fmt.Errorf("nothing to export")
	}
	img, err := render.NewImageSurface(width, height, cfg.Render.FontSize, cfg.Export.Background)
	if err != nil {
		return nil, err
	}
	ed.renderer.Render(img)
	drawWidgets(img, ed)
	return img, nil
}

// drawWidgets draws every node box in world space on any surface.
func drawWidgets(s render.Surface, ed *editor) {
	scale := ed.view.Scale()
	tx, ty := ed.view.Translate()

	s.Push()
	defer s.Pop()
	s.Scale(scale, scale)
	s.Translate(tx/scale, ty/scale)

	for _, n := range ed.scene.Nodes() {
		w, h := ed.measure.Measure(n)
		s.SetColor(widgetFill)
		s.FillRect(n.X, n.Y, w, h)

		s.SetColor(widgetBorder)
		s.SetLineWidth(1.5)
		s.MoveTo(n.X, n.Y)
		s.LineTo(n.X+w, n.Y)
		s.LineTo(n.X+w, n.Y+h)
		s.LineTo(n.X, n.Y+h)
		s.ClosePath()
		s.Stroke()

		s.SetColor(widgetText)
		s.DrawStringAnchored(n.Name, n.X+w/2, n.Y+h/2, 0.5, 0.35)
	}
}

// exportSnapshot writes the current terminal view to a PNG in the export
// directory and returns the path written.
func (m *model) exportSnapshot(filename string) (string, error) {
	path, err := m.cfg.ExportPath(filename)
	if err != nil {
		return "", err
	}
	w, h := m.surface.Size()
	img, err := renderSnapshot(m.ed, m.cfg, int(w), int(h))
	if err != nil {
		return "", err
	}
	if err := img.SavePNG(path); err != nil {
		return "", err
	}
	m.ed.log.Info("snapshot saved", "path", path, "width", int(w), "height", int(h))
	return path, nil
}
