package render

import (
	"math"

	"github.com/fogleman/gg"
)

// xform mirrors a surface transform stack so surfaces can read back the
// current matrix, which gg keeps private.
type xform struct {
	cur   gg.Matrix
	saved []gg.Matrix
}

func newXform() xform {
	return xform{cur: gg.Identity()}
}

func (x *xform) push() { x.saved = append(x.saved, x.cur) }

func (x *xform) pop() {
	if n := len(x.saved); n > 0 {
		x.cur = x.saved[n-1]
		x.saved = x.saved[:n-1]
	}
}

func (x *xform) scale(sx, sy float64)    { x.cur = x.cur.Scale(sx, sy) }
func (x *xform) translate(tx, ty float64) { x.cur = x.cur.Translate(tx, ty) }

func (x *xform) apply(px, py float64) (float64, float64) {
	return x.cur.TransformPoint(px, py)
}

// factor returns the horizontal scale of the current transform.
func (x *xform) factor() float64 {
	f := math.Hypot(x.cur.XX, x.cur.YX)
	if f == 0 {
		return 1
	}
	return f
}
