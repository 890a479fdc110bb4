package render

// Surface is a 2D drawing target with a transform stack, modeled on the
// usual path/fill/stroke/text primitives. Coordinates passed to drawing
// calls go through the current transform. Colors are "#rrggbb" or
// "#rrggbbaa" strings.
type Surface interface {
	// Size returns the surface size in screen units.
	Size() (width, height float64)
	// Clear wipes the whole surface, ignoring the current transform.
	Clear()

	Push()
	Pop()
	// Scale and Translate compose with the current transform: the last
	// call is applied to points first.
	Scale(sx, sy float64)
	Translate(x, y float64)

	SetColor(color string)
	SetLineWidth(width float64)

	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	// Stroke and Fill draw and then discard the current path.
	Stroke()
	Fill()
	FillRect(x, y, w, h float64)

	// MeasureString returns the width of s in current user units.
	MeasureString(s string) float64
	// DrawStringAnchored draws s with its anchor point (ax, ay) at (x, y);
	// ax=0.5 centers horizontally and ay=0 puts the baseline at y.
	DrawStringAnchored(s string, x, y, ax, ay float64)
}
