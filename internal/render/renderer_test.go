package render

import (
	"fmt"
	"image"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"behaviormap/internal/geometry"
	"behaviormap/internal/scene"
	"behaviormap/internal/view"
)

// recorder is a Surface that logs every call.
type recorder struct {
	ops        []string
	charWidth  float64
	clearCount int
}

func (r *recorder) log(format string, args ...any) {
	r.ops = append(r.ops, fmt.Sprintf(format, args...))
}

func (r *recorder) Size() (float64, float64)    { return 800, 600 }
func (r *recorder) Clear()                      { r.clearCount++; r.log("clear") }
func (r *recorder) Push()                       { r.log("push") }
func (r *recorder) Pop()                        { r.log("pop") }
func (r *recorder) Scale(x, y float64)          { r.log("scale %g %g", x, y) }
func (r *recorder) Translate(x, y float64)      { r.log("translate %g %g", x, y) }
func (r *recorder) SetColor(c string)           { r.log("color %s", c) }
func (r *recorder) SetLineWidth(w float64)      { r.log("width %g", w) }
func (r *recorder) MoveTo(x, y float64)         { r.log("move %.2f %.2f", x, y) }
func (r *recorder) LineTo(x, y float64)         { r.log("line %.2f %.2f", x, y) }
func (r *recorder) ClosePath()                  { r.log("close") }
func (r *recorder) Stroke()                     { r.log("stroke") }
func (r *recorder) Fill()                       { r.log("fill") }
func (r *recorder) FillRect(x, y, w, h float64) { r.log("rect %g %g %g %g", x, y, w, h) }
func (r *recorder) MeasureString(s string) float64 {
	return float64(len([]rune(s))) * r.charWidth
}
func (r *recorder) DrawStringAnchored(s string, x, y, ax, ay float64) {
	r.log("text %q %g %g %g %g", s, x, y, ax, ay)
}

var box = scene.MeasurerFunc(func(scene.Node) (float64, float64) { return 20, 10 })

func TestRender_DrawsConnectionInWorldSpace(t *testing.T) {
	s := scene.New()
	a, err := s.AddNodeAt("A", 0, 0)
	require.NoError(t, err)
	b, err := s.AddNodeAt("B", 100, 0)
	require.NoError(t, err)
	_, err = s.AddConnection(a.ID, b.ID, scene.PositiveReinforcement, "abcd")
	require.NoError(t, err)

	v := view.NewTransform()
	v.SetScale(2)
	v.PanTo(40, -10)

	rec := &recorder{charWidth: 5}
	NewRenderer(s, v, box, DefaultStyle()).Render(rec)

	left, right := geometry.Arrowhead(geometry.Point{X: 10, Y: 5}, geometry.Point{X: 110, Y: 5}, geometry.ArrowLength)
	want := []string{
		"clear",
		"push",
		"scale 2 2",
		"translate 20 -5",
		"color #10b981",
		"width 3",
		"move 10.00 5.00",
		"line 110.00 5.00",
		"stroke",
		"move 110.00 5.00",
		fmt.Sprintf("line %.2f %.2f", left.X, left.Y),
		fmt.Sprintf("line %.2f %.2f", right.X, right.Y),
		"close",
		"fill",
		"color #1e3a8ae6",
		"rect 46 -3 28 16",
		"color #ffffff",
		`text "abcd" 60 5 0.5 0`,
		"pop",
	}
	assert.Equal(t, want, rec.ops)
}

func TestRender_FullRepaintEachCall(t *testing.T) {
	s := scene.New()
	v := view.NewTransform()
	rec := &recorder{}
	r := NewRenderer(s, v, box, DefaultStyle())

	r.Render(rec)
	r.Render(rec)
	assert.Equal(t, 2, rec.clearCount)
	assert.Equal(t, []string{"clear", "push", "scale 1 1", "translate 0 0", "pop"}, rec.ops[5:])
}

func TestRender_StoredOrder(t *testing.T) {
	s := scene.New()
	var ids []int
	for _, name := range []string{"A", "B", "C"} {
		n, err := s.AddNodeAt(name, float64(len(ids))*50, 0)
		require.NoError(t, err)
		ids = append(ids, n.ID)
	}
	_, err := s.AddConnection(ids[1], ids[2], scene.NegativePunishment, "")
	require.NoError(t, err)
	_, err = s.AddConnection(ids[0], ids[1], scene.PositivePunishment, "")
	require.NoError(t, err)

	rec := &recorder{}
	NewRenderer(s, view.NewTransform(), box, DefaultStyle()).Render(rec)

	var lineColors []string
	for i, op := range rec.ops {
		if op == "width 3" {
			lineColors = append(lineColors, rec.ops[i-1])
		}
	}
	assert.Equal(t, []string{"color #f97316", "color #ef4444"}, lineColors)
}

func TestTransformComposition(t *testing.T) {
	xf := newXform()
	scale, tx, ty := 1.5, 30.0, -12.0
	xf.scale(scale, scale)
	xf.translate(tx/scale, ty/scale)

	v := view.NewTransform()
	v.SetScale(scale)
	v.PanTo(tx, ty)

	for _, p := range []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 20}, {X: -7.5, Y: 300}} {
		x, y := xf.apply(p.X, p.Y)
		want := v.ToScreen(p.X, p.Y)
		assert.InDelta(t, want.X, x, 1e-9)
		assert.InDelta(t, want.Y, y, 1e-9)
	}
	assert.InDelta(t, scale, xf.factor(), 1e-12)
}

func TestImageSurface_RendersLineColor(t *testing.T) {
	s := scene.New()
	a, err := s.AddNodeAt("A", 10, 40)
	require.NoError(t, err)
	b, err := s.AddNodeAt("B", 190, 40)
	require.NoError(t, err)
	_, err = s.AddConnection(a.ID, b.ID, scene.PositiveReinforcement, "x")
	require.NoError(t, err)

	img, err := NewImageSurface(220, 100, DefaultFontSize, "#ffffff")
	require.NoError(t, err)
	zero := scene.MeasurerFunc(func(scene.Node) (float64, float64) { return 0, 0 })
	NewRenderer(s, view.NewTransform(), zero, DefaultStyle()).Render(img)

	// A quarter of the way along the line, clear of the label.
	r, g, bl, _ := img.Image().At(55, 40).RGBA()
	assert.Equal(t, [3]uint32{0x10, 0xb9, 0x81}, [3]uint32{r >> 8, g >> 8, bl >> 8})

	// Far from the line stays background.
	r, g, bl, _ = img.Image().At(5, 90).RGBA()
	assert.Equal(t, [3]uint32{0xff, 0xff, 0xff}, [3]uint32{r >> 8, g >> 8, bl >> 8})

	// The arrowhead fills just behind the tip.
	r, g, bl, _ = img.Image().At(185, 40).RGBA()
	assert.Equal(t, [3]uint32{0x10, 0xb9, 0x81}, [3]uint32{r >> 8, g >> 8, bl >> 8})
}

func TestImageSurface_MeasureString(t *testing.T) {
	img, err := NewImageSurface(10, 10, DefaultFontSize, "")
	require.NoError(t, err)
	short := img.MeasureString("ab")
	long := img.MeasureString("abab")
	assert.Greater(t, short, 0.0)
	assert.InDelta(t, 2*short, long, 1)

	img.Scale(2, 2)
	assert.Equal(t, long, img.MeasureString("abab"), "width is in user units")
}

// inkColumns returns the leftmost and rightmost columns holding dark pixels.
func inkColumns(im image.Image) (minX, maxX int, ok bool) {
	b := im.Bounds()
	minX, maxX = b.Max.X, b.Min.X-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if r, _, _, _ := im.At(x, y).RGBA(); r < 0x8000 {
				minX = min(minX, x)
				maxX = max(maxX, x)
			}
		}
	}
	return minX, maxX, maxX >= minX
}

func TestImageSurface_TextZoomsWithMeasure(t *testing.T) {
	for _, scale := range []float64{1, 2, 3} {
		t.Run(fmt.Sprintf("scale %g", scale), func(t *testing.T) {
			img, err := NewImageSurface(400, 120, DefaultFontSize, "#ffffff")
			require.NoError(t, err)
			img.Clear()
			img.Push()
			img.Scale(scale, scale)
			img.SetColor("#000000")
			img.DrawStringAnchored("MMMM", 200/scale, 60/scale, 0.5, 0.5)
			want := img.MeasureString("MMMM") * scale
			img.Pop()

			minX, maxX, ok := inkColumns(img.Image())
			require.True(t, ok)
			width := float64(maxX - minX + 1)
			assert.InDelta(t, want, width, 0.15*want, "ink width")
			assert.InDelta(t, 200, float64(minX+maxX+1)/2, 4, "ink center")
		})
	}
}

func TestCellSurface_WideRunes(t *testing.T) {
	cs := NewCellSurface(6, 1)
	assert.Equal(t, 3, cs.WriteString(0, 0, "日x", "#ff0000"))
	assert.Equal(t, []string{"日x   "}, cs.Plain())
	c, _ := cs.At(2, 0)
	assert.Equal(t, 'x', c.Rune)
	assert.Equal(t, "#ff0000", c.FG)

	cs = NewCellSurface(10, 1)
	cs.DrawStringAnchored("日本", 40, 0, 0.5, 0)
	assert.Equal(t, []string{"   日本   "}, cs.Plain())

	// Overwriting the wide rune exposes its second cell as a blank.
	cs.Set(3, 0, Cell{Rune: 'a'})
	assert.Equal(t, []string{"   a 本   "}, cs.Plain())
}

func TestCellSurface_DrawsConnection(t *testing.T) {
	s := scene.New()
	a, err := s.AddNodeAt("A", 0, 40)
	require.NoError(t, err)
	b, err := s.AddNodeAt("B", 320, 40)
	require.NoError(t, err)
	_, err = s.AddConnection(a.ID, b.ID, scene.Other, "hi")
	require.NoError(t, err)

	cs := NewCellSurface(50, 6)
	zero := scene.MeasurerFunc(func(scene.Node) (float64, float64) { return 0, 0 })
	NewRenderer(s, view.NewTransform(), zero, DefaultStyle()).Render(cs)

	rows := cs.Plain()
	row := rows[2]
	assert.Equal(t, '─', []rune(row)[5])
	assert.Equal(t, '▶', []rune(row)[40])
	assert.Contains(t, row, "hi")

	c, ok := cs.At(5, 2)
	require.True(t, ok)
	assert.Equal(t, "#8b5cf6", c.FG)

	label := strings.Index(row, "hi")
	lc, _ := cs.At(len([]rune(row[:label])), 2)
	assert.Equal(t, "#1e3a8ae6", lc.BG)
	assert.Equal(t, "#ffffff", lc.FG)

	assert.Len(t, cs.Lines(), 6)
}

func TestCellSurface_LineRunes(t *testing.T) {
	assert.Equal(t, '─', lineRune(80, 0))
	assert.Equal(t, '│', lineRune(0, 80))
	assert.Equal(t, '╲', lineRune(40, 80))
	assert.Equal(t, '╱', lineRune(-40, 80))
	assert.Equal(t, '◀', arrowRune(-1, 0))
	assert.Equal(t, '▲', arrowRune(0, -math.MaxFloat32))
}

func TestCellSurface_ClearAndBounds(t *testing.T) {
	cs := NewCellSurface(3, 2)
	cs.Set(1, 1, Cell{Rune: 'x'})
	cs.Set(10, 10, Cell{Rune: 'y'})
	assert.Equal(t, []string{"   ", " x "}, cs.Plain())
	cs.Clear()
	assert.Equal(t, []string{"   ", "   "}, cs.Plain())
	w, h := cs.Size()
	assert.Equal(t, 3*CellWidth, w)
	assert.Equal(t, 2*CellHeight, h)
}
