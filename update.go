package main

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"behaviormap/internal/scene"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		if m.help {
			m.help = false
			return m, nil
		}
		switch m.mode {
		case ModeTextInput:
			m.handleTextInput(msg)
			return m, nil
		case ModeChooseType:
			m.handleChooseType(msg)
			return m, nil
		case ModeConfirm:
			m.handleConfirm(msg)
			return m, nil
		}
		return m.handleNormalKey(msg)
	}
	return m, nil
}

// handleMouse routes pointer events. While a button is held, terminals
// report motion with that button set, so motion feeds the active gesture
// before any press handling.
func (m *model) handleMouse(msg tea.MouseMsg) {
	m.cursorX, m.cursorY = msg.X, msg.Y
	m.ensureCursorInBounds()
	sx, sy := cellPoint(msg.X, msg.Y)
	g := m.ed.gestures

	switch msg.Action {
	case tea.MouseActionMotion:
		switch {
		case g.Panning():
			g.UpdatePan(sx, sy)
		case g.Dragging():
			m.ed.updateDrag(sx, sy)
		case msg.Button == tea.MouseButtonNone:
			m.hoverConn = m.ed.connectionAt(sx, sy)
		}
	case tea.MouseActionRelease:
		g.EndPan()
		g.EndDrag()
	case tea.MouseActionPress:
		m.handleMousePress(msg, sx, sy)
	}
}

func (m *model) handleMousePress(msg tea.MouseMsg, sx, sy float64) {
	g := m.ed.gestures
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.ed.zoom(sx, sy, true)
	case tea.MouseButtonWheelDown:
		m.ed.zoom(sx, sy, false)
	case tea.MouseButtonMiddle:
		g.StartPan(sx, sy)
	case tea.MouseButtonLeft:
		if msg.Shift {
			g.StartPan(sx, sy)
			return
		}
		if m.mode != ModeNormal || g.Panning() || g.Dragging() {
			return
		}
		if id := m.ed.nodeAt(sx, sy); id >= 0 {
			m.ed.startDrag(id, sx, sy)
			return
		}
		if idx := m.ed.connectionAt(sx, sy); idx >= 0 {
			m.requestDeleteConnection(idx)
		}
	}
}

func (m model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "?":
		m.help = true
	case "esc":
		m.cancelConnect()
		m.clearMessages()
	case "z":
		m.zPanMode = !m.zPanMode
	case "h", "j", "k", "l", "left", "right", "up", "down",
		"H", "J", "K", "L", "shift+left", "shift+right", "shift+up", "shift+down":
		m.handleNavigation(key, m.getMoveSpeed(key))
	case "+", "=":
		sx, sy := m.cursorPoint()
		m.ed.zoom(sx, sy, true)
	case "-", "_":
		sx, sy := m.cursorPoint()
		m.ed.zoom(sx, sy, false)
	case "0":
		m.ed.view.SetScale(1)
		m.ed.view.PanTo(0, 0)
	case "a", "n":
		m.clearMessages()
		m.startInput(InputNodeName, "")
	case "r":
		m.startRename()
	case "c":
		m.toggleConnect()
	case "d":
		m.requestDeleteAtCursor()
	case "X":
		m.requestClearConnections()
	case "S":
		m.clearMessages()
		m.startInput(InputSnapshotFile, defaultSnapshotName)
	}
	return m, nil
}

// startRename opens the name prompt for the node under the cursor, filled
// with its current name.
func (m *model) startRename() {
	id := m.ed.nodeAt(m.cursorPoint())
	if id < 0 {
		m.errorMessage = "No node under cursor"
		return
	}
	n, _ := m.ed.scene.Node(id)
	m.clearMessages()
	m.renameNodeID = id
	m.startInput(InputRenameNode, n.Name)
}

// toggleConnect selects the node under the cursor as the connection source,
// cancels when it is already the source, or opens the type chooser when it
// is another node.
func (m *model) toggleConnect() {
	id := m.ed.nodeAt(m.cursorPoint())
	if id < 0 {
		m.errorMessage = "No node under cursor"
		return
	}
	m.clearMessages()
	switch m.connectingFrom {
	case -1:
		m.connectingFrom = id
	case id:
		m.cancelConnect()
	default:
		m.connectingTo = id
		m.mode = ModeChooseType
	}
}

func (m *model) handleChooseType(msg tea.KeyMsg) {
	key := msg.String()
	if key == "esc" {
		m.cancelConnect()
		m.mode = ModeNormal
		return
	}
	if len(key) != 1 || key[0] < '1' || int(key[0]-'1') >= len(scene.ConnectionTypes) {
		return
	}
	t := scene.ConnectionTypes[key[0]-'1']
	if t == scene.Other {
		m.startInput(InputCustomLabel, "")
		return
	}
	m.finishConnect(m.ed.scene.AddConnection(m.connectingFrom, m.connectingTo, t, ""))
}

func (m *model) finishConnect(c *scene.Connection, err error) {
	if err != nil {
		m.errorMessage = err.Error()
	} else if c == nil {
		m.errorMessage = "These nodes are already connected"
	} else {
		m.successMessage = fmt.Sprintf("Connected: %s", c.Label)
	}
	m.cancelConnect()
	m.mode = ModeNormal
}

func (m *model) handleTextInput(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEscape:
		if m.inputPurpose == InputCustomLabel {
			m.cancelConnect()
		}
		m.mode = ModeNormal
		m.inputText = ""
	case tea.KeyEnter:
		m.submitInput()
	case tea.KeyBackspace:
		if r := []rune(m.inputText); len(r) > 0 {
			m.inputText = string(r[:len(r)-1])
		}
	case tea.KeyCtrlV:
		text, err := readClipboard()
		if err != nil {
			m.errorMessage = fmt.Sprintf("Clipboard: %v", err)
			return
		}
		m.inputText += cleanClipboardLine(text)
	case tea.KeySpace:
		m.inputText += " "
	case tea.KeyRunes:
		m.inputText += string(msg.Runes)
	}
}

func (m *model) submitInput() {
	text := m.inputText
	switch m.inputPurpose {
	case InputNodeName:
		if _, err := m.ed.scene.AddNode(text); err != nil {
			// Keep the prompt open so the name can be fixed.
			if errors.Is(err, scene.ErrValidation) {
				m.errorMessage = "Please enter a name for the node"
			} else {
				m.errorMessage = err.Error()
			}
			return
		}
		m.successMessage = fmt.Sprintf("Added %q", strings.TrimSpace(text))
	case InputCustomLabel:
		c, err := m.ed.scene.AddConnection(m.connectingFrom, m.connectingTo, scene.Other, text)
		if errors.Is(err, scene.ErrValidation) {
			m.errorMessage = "Please enter a name for the connection"
			return
		}
		m.finishConnect(c, err)
	case InputRenameNode:
		if err := m.ed.scene.RenameNode(m.renameNodeID, text); err != nil {
			if errors.Is(err, scene.ErrValidation) {
				m.errorMessage = "Please enter a name for the node"
			} else {
				m.errorMessage = err.Error()
			}
			return
		}
		m.renameNodeID = -1
		m.successMessage = fmt.Sprintf("Renamed to %q", strings.TrimSpace(text))
	case InputSnapshotFile:
		name := strings.TrimSpace(text)
		if name == "" {
			name = defaultSnapshotName
		}
		if !strings.HasSuffix(strings.ToLower(name), ".png") {
			name += ".png"
		}
		path, err := m.exportSnapshot(name)
		if err != nil {
			m.errorMessage = fmt.Sprintf("Error exporting PNG: %v", err)
		} else {
			m.successMessage = fmt.Sprintf("Saved %s", path)
		}
	}
	m.mode = ModeNormal
	m.inputText = ""
}

func (m *model) requestDeleteAtCursor() {
	sx, sy := m.cursorPoint()
	if id := m.ed.nodeAt(sx, sy); id >= 0 {
		n, _ := m.ed.scene.Node(id)
		m.confirmNodeID = id
		m.requestConfirm(ConfirmDeleteNode, fmt.Sprintf("Delete node %q?", n.Name))
		return
	}
	if idx := m.ed.connectionAt(sx, sy); idx >= 0 {
		m.requestDeleteConnection(idx)
		return
	}
	m.errorMessage = "Nothing to delete under cursor"
}

func (m *model) requestDeleteConnection(idx int) {
	label, from, to, ok := m.ed.describe(idx)
	if !ok {
		return
	}
	m.confirmConnIdx = idx
	m.requestConfirm(ConfirmDeleteConnection,
		fmt.Sprintf("Delete connection %q between %q and %q?", label, from, to))
}

func (m *model) requestClearConnections() {
	if m.ed.scene.ConnectionCount() == 0 {
		m.errorMessage = "No connections to clear"
		return
	}
	m.requestConfirm(ConfirmClearConnections, "Clear all connections?")
}

// requestConfirm asks before a destructive action, or runs it at once when
// confirmations are turned off.
func (m *model) requestConfirm(action ConfirmAction, prompt string) {
	m.confirmAction = action
	m.confirmPrompt = prompt
	if !m.cfg.Editor.Confirmations {
		m.runConfirmed()
		return
	}
	m.clearMessages()
	m.mode = ModeConfirm
}

func (m *model) handleConfirm(msg tea.KeyMsg) {
	switch msg.String() {
	case "y", "Y":
		m.runConfirmed()
	case "n", "N", "esc":
		m.mode = ModeNormal
	}
}

func (m *model) runConfirmed() {
	m.mode = ModeNormal
	switch m.confirmAction {
	case ConfirmDeleteNode:
		if m.ed.scene.RemoveNode(m.confirmNodeID) {
			if m.connectingFrom == m.confirmNodeID {
				m.cancelConnect()
			}
			m.successMessage = "Node deleted"
		}
		m.confirmNodeID = -1
		m.hoverConn = -1
	case ConfirmDeleteConnection:
		if err := m.ed.scene.RemoveConnection(m.confirmConnIdx); err != nil {
			m.errorMessage = err.Error()
		} else {
			m.successMessage = "Connection deleted"
		}
		m.confirmConnIdx = -1
		m.hoverConn = -1
	case ConfirmClearConnections:
		if m.ed.scene.ClearConnections() {
			m.successMessage = "Connections cleared"
		}
		m.hoverConn = -1
	}
}
