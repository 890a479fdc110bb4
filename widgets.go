package main

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"behaviormap/internal/render"
	"behaviormap/internal/scene"
	"behaviormap/internal/view"
)

// widgetMeasurer reports the size of a node widget at zoom 1, in world units.
type widgetMeasurer struct{}

func (widgetMeasurer) Measure(n scene.Node) (float64, float64) {
	cols := lipgloss.Width(n.Name) + widgetPadCols
	return float64(cols) * render.CellWidth, widgetRows * render.CellHeight
}

// widgetRect returns the cell rectangle a node occupies under the view.
func widgetRect(n scene.Node, m scene.Measurer, v *view.Transform) (x0, y0, x1, y1 int) {
	w, h := m.Measure(n)
	tl := v.ToScreen(n.X, n.Y)
	br := v.ToScreen(n.X+w, n.Y+h)
	x0 = int(math.Round(tl.X / render.CellWidth))
	y0 = int(math.Round(tl.Y / render.CellHeight))
	x1 = int(math.Round(br.X/render.CellWidth)) - 1
	y1 = int(math.Round(br.Y/render.CellHeight)) - 1
	// Keep room for the border and one row of text.
	if x1 < x0+1 {
		x1 = x0 + 1
	}
	if y1 < y0+2 {
		y1 = y0 + 2
	}
	return x0, y0, x1, y1
}

type boxRunes struct {
	tl, tr, bl, br, h, v rune
}

var (
	plainBox    = boxRunes{'┌', '┐', '└', '┘', '─', '│'}
	selectedBox = boxRunes{'╔', '╗', '╚', '╝', '═', '║'}
)

// drawWidget draws a node box with its name centered on the middle row.
// Cells inside the box are blanked so connections pass behind it.
func drawWidget(s *render.CellSurface, n scene.Node, m scene.Measurer, v *view.Transform, selected bool, color string) {
	x0, y0, x1, y1 := widgetRect(n, m, v)
	runes := plainBox
	if selected {
		runes = selectedBox
	}
	put := func(x, y int, r rune) {
		s.Set(x, y, render.Cell{Rune: r, FG: color})
	}

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			switch {
			case y == y0 && x == x0:
				put(x, y, runes.tl)
			case y == y0 && x == x1:
				put(x, y, runes.tr)
			case y == y1 && x == x0:
				put(x, y, runes.bl)
			case y == y1 && x == x1:
				put(x, y, runes.br)
			case y == y0 || y == y1:
				put(x, y, runes.h)
			case x == x0 || x == x1:
				put(x, y, runes.v)
			default:
				s.Set(x, y, render.Cell{Rune: ' '})
			}
		}
	}

	// Truncate the name if the box is too narrow at this zoom.
	inner := max(x1-x0-1, 0)
	name := runewidth.Truncate(n.Name, inner, "")
	textX := x0 + 1 + (inner-runewidth.StringWidth(name))/2
	s.WriteString(textX, (y0+y1)/2, name, "")
}
