// Package view maps between screen space and world space and tracks the
// pointer gestures that change that mapping.
package view

import "behaviormap/internal/geometry"

const (
	MinScale = 0.3
	MaxScale = 3.0
)

// Transform is the pan/zoom state. screen = world*Scale + Translate.
type Transform struct {
	scale      float64
	translateX float64
	translateY float64
}

// NewTransform returns the identity transform.
func NewTransform() *Transform {
	return &Transform{scale: 1}
}

func clampScale(s float64) float64 {
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}

func (t *Transform) Scale() float64 { return t.scale }

// Translate returns the pan offset in screen units.
func (t *Transform) Translate() (x, y float64) { return t.translateX, t.translateY }

// SetScale overwrites the scale, clamped to [MinScale, MaxScale].
func (t *Transform) SetScale(s float64) {
	t.scale = clampScale(s)
}

// ToWorld converts a screen point to world space.
func (t *Transform) ToWorld(sx, sy float64) geometry.Point {
	return geometry.Point{
		X: (sx - t.translateX) / t.scale,
		Y: (sy - t.translateY) / t.scale,
	}
}

// ToScreen converts a world point to screen space.
func (t *Transform) ToScreen(wx, wy float64) geometry.Point {
	return geometry.Point{
		X: wx*t.scale + t.translateX,
		Y: wy*t.scale + t.translateY,
	}
}

// ZoomAt changes the scale by delta while keeping the world point under
// (sx, sy) fixed on screen. The world point is captured before the scale
// changes; the translate is then solved against the new scale.
func (t *Transform) ZoomAt(sx, sy, delta float64) {
	anchor := t.ToWorld(sx, sy)
	t.scale = clampScale(t.scale + delta)
	t.translateX = sx - anchor.X*t.scale
	t.translateY = sy - anchor.Y*t.scale
}

// PanTo sets the translate absolutely. Gestures pass pointer minus the
// offset captured at gesture start so repeated moves never accumulate drift.
func (t *Transform) PanTo(x, y float64) {
	t.translateX = x
	t.translateY = y
}
