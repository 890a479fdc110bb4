package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"behaviormap/internal/config"
	"behaviormap/internal/render"
)

type model struct {
	width    int
	height   int
	cursorX  int
	cursorY  int
	zPanMode bool
	help     bool
	mode     Mode

	ed      *editor
	cfg     *config.Config
	surface *render.CellSurface
	seeded  bool

	inputPurpose InputPurpose
	inputText    string
	renameNodeID int

	connectingFrom int
	connectingTo   int

	confirmAction  ConfirmAction
	confirmNodeID  int
	confirmConnIdx int
	confirmPrompt  string

	hoverConn      int
	errorMessage   string
	successMessage string
}

func newModel(cfg *config.Config, ed *editor) model {
	return model{
		ed:             ed,
		cfg:            cfg,
		surface:        render.NewCellSurface(1, 1),
		mode:           ModeNormal,
		connectingFrom: -1,
		connectingTo:   -1,
		confirmNodeID:  -1,
		renameNodeID:   -1,
		confirmConnIdx: -1,
		hoverConn:      -1,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

// canvasRows is the number of terminal rows given to the diagram; the last
// row holds the status line.
func (m *model) canvasRows() int {
	if m.height < 2 {
		return 1
	}
	return m.height - 1
}

func (m *model) resize(width, height int) {
	m.width, m.height = width, height
	m.surface.Resize(width, m.canvasRows())
	m.ed.resize(m.surface.Size())
	if !m.seeded {
		m.ed.seed(m.cfg.Editor.DemoNodes)
		m.seeded = true
	}
	m.ensureCursorInBounds()
}

func (m *model) ensureCursorInBounds() {
	maxX := m.surface.Cols() - 1
	maxY := m.surface.Rows() - 1
	m.cursorX = min(max(m.cursorX, 0), maxX)
	m.cursorY = min(max(m.cursorY, 0), maxY)
}

// cellPoint returns the screen point at the center of a terminal cell.
func cellPoint(x, y int) (float64, float64) {
	return (float64(x) + 0.5) * render.CellWidth, (float64(y) + 0.5) * render.CellHeight
}

func (m *model) cursorPoint() (float64, float64) {
	return cellPoint(m.cursorX, m.cursorY)
}

func (m *model) clearMessages() {
	m.errorMessage = ""
	m.successMessage = ""
}

func (m *model) startInput(purpose InputPurpose, initial string) {
	m.mode = ModeTextInput
	m.inputPurpose = purpose
	m.inputText = initial
}

func (m *model) cancelConnect() {
	m.connectingFrom = -1
	m.connectingTo = -1
}
