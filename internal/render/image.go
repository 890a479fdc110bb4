package render

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
)

// DefaultFontSize matches the label font of the interactive editor.
const DefaultFontSize = 12.0

// ImageSurface is a raster Surface backed by a gg context. Text zooms with
// lines: a user unit of text is one user unit of path.
type ImageSurface struct {
	dc         *gg.Context
	xf         xform
	ttf        *truetype.Font
	fontSize   float64
	faces      map[float64]font.Face
	background string
	color      string
}

// NewImageSurface creates a width x height surface. background is used by
// Clear; pass "" for a transparent surface.
func NewImageSurface(width, height int, fontSize float64, background string) (*ImageSurface, error) {
	ttf, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %v", err)
	}
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	if background == "" {
		background = "#00000000"
	}
	s := &ImageSurface{
		dc:         gg.NewContext(width, height),
		xf:         newXform(),
		ttf:        ttf,
		fontSize:   fontSize,
		faces:      make(map[float64]font.Face),
		background: background,
		color:      "#000000",
	}
	s.dc.SetFontFace(s.face(fontSize))
	return s, nil
}

func (s *ImageSurface) face(size float64) font.Face {
	size = math.Round(size*4) / 4
	if f, ok := s.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(s.ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	s.faces[size] = f
	return f
}

func (s *ImageSurface) Size() (float64, float64) {
	return float64(s.dc.Width()), float64(s.dc.Height())
}

func (s *ImageSurface) Clear() {
	s.dc.SetHexColor(s.background)
	s.dc.Clear()
	s.dc.SetHexColor(s.color)
}

func (s *ImageSurface) Push() {
	s.dc.Push()
	s.xf.push()
}

func (s *ImageSurface) Pop() {
	s.dc.Pop()
	s.xf.pop()
}

func (s *ImageSurface) Scale(sx, sy float64) {
	s.dc.Scale(sx, sy)
	s.xf.scale(sx, sy)
}

func (s *ImageSurface) Translate(x, y float64) {
	s.dc.Translate(x, y)
	s.xf.translate(x, y)
}

func (s *ImageSurface) SetColor(c string) {
	s.color = c
	s.dc.SetHexColor(c)
}

// SetLineWidth takes the width in user units. gg strokes in device pixels,
// so the width is scaled here.
func (s *ImageSurface) SetLineWidth(w float64) {
	s.dc.SetLineWidth(w * s.xf.factor())
}

func (s *ImageSurface) MoveTo(x, y float64) { s.dc.MoveTo(x, y) }
func (s *ImageSurface) LineTo(x, y float64) { s.dc.LineTo(x, y) }
func (s *ImageSurface) ClosePath()          { s.dc.ClosePath() }
func (s *ImageSurface) Stroke()             { s.dc.Stroke() }
func (s *ImageSurface) Fill()               { s.dc.Fill() }

func (s *ImageSurface) FillRect(x, y, w, h float64) {
	s.dc.DrawRectangle(x, y, w, h)
	s.dc.Fill()
}

// MeasureString returns the width of s at the base font size, which is the
// width in user units once the surface scale is applied.
func (s *ImageSurface) MeasureString(str string) float64 {
	adv := font.MeasureString(s.face(s.fontSize), str)
	return float64(adv) / 64
}

// DrawStringAnchored draws in device space with a face sized for the
// current scale. The horizontal anchor is MeasureString in device pixels,
// matching label boxes sized from it.
func (s *ImageSurface) DrawStringAnchored(str string, x, y, ax, ay float64) {
	f := s.xf.factor()
	px, py := s.xf.apply(x, y)
	px -= ax * s.MeasureString(str) * f

	s.dc.Push()
	defer s.dc.Pop()
	s.dc.Identity()
	s.dc.SetFontFace(s.face(s.fontSize * f))
	s.dc.DrawStringAnchored(str, px, py, 0, ay)
}

// Image returns the rendered image.
func (s *ImageSurface) Image() image.Image { return s.dc.Image() }

// Context exposes the gg context for callers drawing their own widgets in
// screen space.
func (s *ImageSurface) Context() *gg.Context { return s.dc }

func (s *ImageSurface) SavePNG(path string) error { return s.dc.SavePNG(path) }

func (s *ImageSurface) EncodePNG(w io.Writer) error { return s.dc.EncodePNG(w) }
