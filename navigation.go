package main

import "behaviormap/internal/render"

func (m *model) handleNavigation(key string, speed int) {
	if m.zPanMode {
		m.handlePan(key, speed)
		return
	}
	m.handleCursorMove(key, speed)
	sx, sy := m.cursorPoint()
	m.hoverConn = m.ed.connectionAt(sx, sy)
}

// handlePan scrolls the view one cell per step; the content moves opposite
// to the key so the viewport travels in the key's direction.
func (m *model) handlePan(key string, speed int) {
	dx := float64(speed) * render.CellWidth
	dy := float64(speed) * render.CellHeight
	switch key {
	case "h", "left", "H", "shift+left":
		m.ed.panBy(dx, 0)
	case "l", "right", "L", "shift+right":
		m.ed.panBy(-dx, 0)
	case "k", "up", "K", "shift+up":
		m.ed.panBy(0, dy)
	case "j", "down", "J", "shift+down":
		m.ed.panBy(0, -dy)
	}
}

func (m *model) handleCursorMove(key string, speed int) {
	switch key {
	case "h", "left", "H", "shift+left":
		m.cursorX -= speed
	case "l", "right", "L", "shift+right":
		m.cursorX += speed
	case "k", "up", "K", "shift+up":
		m.cursorY -= speed
	case "j", "down", "J", "shift+down":
		m.cursorY += speed
	}
	m.ensureCursorInBounds()
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}
