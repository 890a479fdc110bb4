package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"behaviormap/internal/render"
	"behaviormap/internal/scene"
	"behaviormap/internal/view"
)

func TestDrawWidget_WideNames(t *testing.T) {
	n := scene.Node{Name: "日本語"}
	s := render.NewCellSurface(12, 3)
	v := view.NewTransform()

	drawWidget(s, n, widgetMeasurer{}, v, false, "")
	assert.Equal(t, []string{
		"┌────────┐  ",
		"│ 日本語 │  ",
		"└────────┘  ",
	}, s.Plain())

	s.Clear()
	v.SetScale(0.5)
	drawWidget(s, n, widgetMeasurer{}, v, false, "")
	assert.Equal(t, "│日 │       ", s.Plain()[1])
}
