package render

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Terminal cell size in screen units. One screen unit is one pixel of the
// virtual canvas behind the terminal grid.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// Cell is one character of a CellSurface.
type Cell struct {
	Rune rune
	FG   string
	BG   string
}

// CellSurface rasterizes drawing calls onto a terminal character grid.
// Lines become box-drawing runes, triangles become a pointing glyph at
// their first vertex, and text keeps its terminal size at any zoom. Text
// with anchor ay=0 lands on the row containing its baseline.
type CellSurface struct {
	cols, rows int
	cells      [][]Cell
	xf         xform
	color      string
	path       [][2]float64
	closed     bool
}

func NewCellSurface(cols, rows int) *CellSurface {
	s := &CellSurface{xf: newXform(), color: "#ffffff"}
	s.Resize(cols, rows)
	return s
}

// Resize reallocates the grid, clearing it.
func (s *CellSurface) Resize(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	s.cols, s.rows = cols, rows
	s.cells = make([][]Cell, rows)
	for y := range s.cells {
		s.cells[y] = make([]Cell, cols)
	}
	s.Clear()
}

func (s *CellSurface) Cols() int { return s.cols }
func (s *CellSurface) Rows() int { return s.rows }

func (s *CellSurface) Size() (float64, float64) {
	return float64(s.cols) * CellWidth, float64(s.rows) * CellHeight
}

func (s *CellSurface) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = Cell{Rune: ' '}
		}
	}
	s.path = s.path[:0]
}

func (s *CellSurface) Push()                  { s.xf.push() }
func (s *CellSurface) Pop()                   { s.xf.pop() }
func (s *CellSurface) Scale(sx, sy float64)   { s.xf.scale(sx, sy) }
func (s *CellSurface) Translate(x, y float64) { s.xf.translate(x, y) }
func (s *CellSurface) SetColor(c string)      { s.color = c }
func (s *CellSurface) SetLineWidth(float64)   {}

func (s *CellSurface) MoveTo(x, y float64) {
	s.path = s.path[:0]
	s.closed = false
	s.LineTo(x, y)
}

func (s *CellSurface) LineTo(x, y float64) {
	px, py := s.xf.apply(x, y)
	s.path = append(s.path, [2]float64{px, py})
}

func (s *CellSurface) ClosePath() { s.closed = true }

// At returns the cell at column x, row y.
func (s *CellSurface) At(x, y int) (Cell, bool) {
	if x < 0 || y < 0 || x >= s.cols || y >= s.rows {
		return Cell{}, false
	}
	return s.cells[y][x], true
}

// Set writes a cell, ignoring positions outside the grid.
func (s *CellSurface) Set(x, y int, c Cell) {
	if x < 0 || y < 0 || x >= s.cols || y >= s.rows {
		return
	}
	s.cells[y][x] = c
}

// CellAt converts a screen point to the cell containing it.
func CellAt(px, py float64) (int, int) {
	return int(math.Floor(px / CellWidth)), int(math.Floor(py / CellHeight))
}

func (s *CellSurface) paint(x, y int, r rune) {
	c, ok := s.At(x, y)
	if !ok {
		return
	}
	c.Rune = r
	c.FG = s.color
	s.cells[y][x] = c
}

// lineRune picks a box-drawing rune for a step of (dx, dy) screen units.
func lineRune(dx, dy float64) rune {
	// Compare in cell units; cells are twice as tall as wide.
	cx, cy := math.Abs(dx)/CellWidth, math.Abs(dy)/CellHeight
	switch {
	case cx >= 2*cy:
		return '─'
	case cy >= 2*cx:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

func (s *CellSurface) Stroke() {
	pts := s.path
	if s.closed && len(pts) > 2 {
		pts = append(pts, pts[0])
	}
	for i := 0; i+1 < len(pts); i++ {
		s.strokeSegment(pts[i], pts[i+1])
	}
	s.path = s.path[:0]
}

func (s *CellSurface) strokeSegment(a, b [2]float64) {
	dx, dy := b[0]-a[0], b[1]-a[1]
	r := lineRune(dx, dy)
	steps := int(math.Ceil(math.Max(math.Abs(dx)/CellWidth, math.Abs(dy)/CellHeight) * 2))
	if steps == 0 {
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x, y := CellAt(a[0]+t*dx, a[1]+t*dy)
		s.paint(x, y, r)
	}
}

// arrowRune picks a glyph pointing along (dx, dy).
func arrowRune(dx, dy float64) rune {
	if math.Abs(dx)/CellWidth >= math.Abs(dy)/CellHeight {
		if dx >= 0 {
			return '▶'
		}
		return '◀'
	}
	if dy >= 0 {
		return '▼'
	}
	return '▲'
}

func (s *CellSurface) Fill() {
	pts := s.path
	s.path = s.path[:0]
	if len(pts) < 3 {
		return
	}
	if len(pts) == 3 {
		tip := pts[0]
		baseX := (pts[1][0] + pts[2][0]) / 2
		baseY := (pts[1][1] + pts[2][1]) / 2
		x, y := CellAt(tip[0], tip[1])
		s.paint(x, y, arrowRune(tip[0]-baseX, tip[1]-baseY))
		return
	}
	minX, minY, maxX, maxY := bounds(pts)
	x0, y0 := CellAt(minX, minY)
	x1, y1 := CellAt(maxX, maxY)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			cx := (float64(x) + 0.5) * CellWidth
			cy := (float64(y) + 0.5) * CellHeight
			if insidePolygon(pts, cx, cy) {
				s.paint(x, y, '█')
			}
		}
	}
}

func bounds(pts [][2]float64) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p[0]), math.Max(maxX, p[0])
		minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
	}
	return
}

func insidePolygon(pts [][2]float64, x, y float64) bool {
	in := false
	j := len(pts) - 1
	for i := range pts {
		xi, yi := pts[i][0], pts[i][1]
		xj, yj := pts[j][0], pts[j][1]
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			in = !in
		}
		j = i
	}
	return in
}

// FillRect sets the background of every cell the rectangle covers.
func (s *CellSurface) FillRect(x, y, w, h float64) {
	ax, ay := s.xf.apply(x, y)
	bx, by := s.xf.apply(x+w, y+h)
	c0, r0 := CellAt(math.Min(ax, bx), math.Min(ay, by))
	c1, r1 := CellAt(math.Max(ax, bx)-1e-9, math.Max(ay, by)-1e-9)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if c, ok := s.At(col, row); ok {
				c.Rune = ' '
				c.BG = s.color
				s.cells[row][col] = c
			}
		}
	}
}

// MeasureString returns the terminal width of str in user units. Terminal
// text does not zoom, so the width shrinks as the scale grows.
func (s *CellSurface) MeasureString(str string) float64 {
	return float64(lipgloss.Width(str)) * CellWidth / s.xf.factor()
}

func (s *CellSurface) DrawStringAnchored(str string, x, y, ax, ay float64) {
	px, py := s.xf.apply(x, y)
	width := float64(lipgloss.Width(str)) * CellWidth
	px -= ax * width
	py += ay * CellHeight
	col, row := CellAt(px+CellWidth/2, py)
	s.WriteString(col, row, str, s.color)
}

// WriteString puts str on row starting at col and returns the number of
// columns used. A double-width rune takes two cells; the second is left
// empty and skipped by Lines and Plain. Background colors are kept.
func (s *CellSurface) WriteString(col, row int, str, fg string) int {
	start := col
	for _, r := range str {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if c, ok := s.At(col, row); ok {
			c.Rune = r
			c.FG = fg
			s.cells[row][col] = c
		}
		if w == 2 {
			if c, ok := s.At(col+1, row); ok {
				c.Rune = 0
				c.FG = fg
				s.cells[row][col+1] = c
			}
		}
		col += w
	}
	return col - start
}

// visible yields the runes of a row as a terminal shows them. The cell after
// a double-width rune is dropped and empty cells become spaces.
func visible(row []Cell, yield func(x int, r rune)) {
	wide := false
	for x, c := range row {
		if wide {
			wide = false
			continue
		}
		r := c.Rune
		if r == 0 {
			r = ' '
		}
		wide = runewidth.RuneWidth(r) == 2
		yield(x, r)
	}
}

// termColor drops an alpha suffix, which terminals cannot show.
func termColor(c string) lipgloss.Color {
	if len(c) == 9 && strings.HasPrefix(c, "#") {
		c = c[:7]
	}
	return lipgloss.Color(c)
}

// Lines renders the grid as styled terminal lines.
func (s *CellSurface) Lines() []string {
	out := make([]string, s.rows)
	for y, row := range s.cells {
		var b strings.Builder
		var run strings.Builder
		var cur Cell
		flush := func() {
			if run.Len() == 0 {
				return
			}
			st := lipgloss.NewStyle()
			if cur.FG != "" {
				st = st.Foreground(termColor(cur.FG))
			}
			if cur.BG != "" {
				st = st.Background(termColor(cur.BG))
			}
			b.WriteString(st.Render(run.String()))
			run.Reset()
		}
		first := true
		visible(row, func(x int, r rune) {
			c := row[x]
			if first || c.FG != cur.FG || c.BG != cur.BG {
				flush()
				cur = c
				first = false
			}
			run.WriteRune(r)
		})
		flush()
		out[y] = b.String()
	}
	return out
}

// Plain returns the grid without styling, one string per row.
func (s *CellSurface) Plain() []string {
	out := make([]string, s.rows)
	for y, row := range s.cells {
		rs := make([]rune, 0, len(row))
		visible(row, func(_ int, r rune) { rs = append(rs, r) })
		out[y] = string(rs)
	}
	return out
}
