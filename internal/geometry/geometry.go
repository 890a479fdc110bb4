// Package geometry holds the world-space math behind connection rendering
// and hit-testing: anchors, point/segment distance, arrowheads and label boxes.
package geometry

import "math"

const (
	// ArrowLength is the arrowhead side length in world units.
	ArrowLength = 12.0
	// ArrowAngle is the half-angle of the arrowhead (30 degrees).
	ArrowAngle = math.Pi / 6
	// DefaultThreshold is the hit-test tolerance used for clicks.
	DefaultThreshold = 8.0

	labelPadX = 4.0
	labelPadY = 8.0
)

// Point is a position in world or screen space.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	X, Y, W, H float64
}

// Anchor returns the center of a widget whose top-left corner is at (x, y).
func Anchor(x, y, width, height float64) Point {
	return Point{X: x + width/2, Y: y + height/2}
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// project returns the projection parameter t of p onto the line through a
// and b, and the length of ab. ok is false when a and b coincide.
func project(p, a, b Point) (t, length float64, ok bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length = math.Hypot(dx, dy)
	if length == 0 {
		return 0, 0, false
	}
	t = ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / (length * length)
	return t, length, true
}

// DistanceToSegment returns the distance from p to the segment ab, with the
// projection clamped to the segment ends. A zero-length segment yields
// +Inf: coincident anchors are never hit-testable.
func DistanceToSegment(p, a, b Point) float64 {
	t, _, ok := project(p, a, b)
	if !ok {
		return math.Inf(1)
	}
	t = math.Max(0, math.Min(1, t))
	cx := a.X + t*(b.X-a.X)
	cy := a.Y + t*(b.Y-a.Y)
	return math.Hypot(p.X-cx, p.Y-cy)
}

// NearSegment reports whether p projects inside ab (0 <= t <= 1) and lies
// within threshold of it. There are no rounded end caps: a point past either
// end never matches.
func NearSegment(p, a, b Point, threshold float64) bool {
	t, _, ok := project(p, a, b)
	if !ok || t < 0 || t > 1 {
		return false
	}
	cx := a.X + t*(b.X-a.X)
	cy := a.Y + t*(b.Y-a.Y)
	return math.Hypot(p.X-cx, p.Y-cy) <= threshold
}

// Arrowhead returns the two back vertices of the arrowhead whose tip sits
// at "to" on the line from "from". With from == to the angle is 0.
func Arrowhead(from, to Point, length float64) (left, right Point) {
	angle := math.Atan2(to.Y-from.Y, to.X-from.X)
	left = Point{
		X: to.X - length*math.Cos(angle-ArrowAngle),
		Y: to.Y - length*math.Sin(angle-ArrowAngle),
	}
	right = Point{
		X: to.X - length*math.Cos(angle+ArrowAngle),
		Y: to.Y - length*math.Sin(angle+ArrowAngle),
	}
	return left, right
}

// LabelBox returns the background rectangle of a label of the given text
// width centered at mid.
func LabelBox(mid Point, textWidth float64) Rect {
	return Rect{
		X: mid.X - textWidth/2 - labelPadX,
		Y: mid.Y - labelPadY,
		W: textWidth + 2*labelPadX,
		H: 2 * labelPadY,
	}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}
