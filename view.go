package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"behaviormap/internal/render"
	"behaviormap/internal/scene"
)

var (
	statusStyle  = lipgloss.NewStyle().Reverse(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10b981"))
	promptStyle  = lipgloss.NewStyle().Bold(true)
	sourceColor  = "#f59e0b"
	targetColor  = "#22d3ee"
)

func (m model) View() string {
	if m.help {
		return m.helpView()
	}
	if m.width == 0 {
		return ""
	}

	m.ed.renderer.Render(m.surface)
	for _, n := range m.ed.scene.Nodes() {
		color := ""
		switch n.ID {
		case m.connectingFrom:
			color = sourceColor
		case m.connectingTo:
			color = targetColor
		}
		drawWidget(m.surface, n, m.ed.measure, m.ed.view, color != "", color)
	}
	if m.mode == ModeNormal {
		c, _ := m.surface.At(m.cursorX, m.cursorY)
		c.Rune = '█'
		m.surface.Set(m.cursorX, m.cursorY, c)
	}

	var result strings.Builder
	for _, line := range m.surface.Lines() {
		result.WriteString(line)
		result.WriteString("\n")
	}
	result.WriteString(m.statusLine())
	return result.String()
}

func (m model) statusLine() string {
	switch m.mode {
	case ModeTextInput:
		prompt := map[InputPurpose]string{
			InputNodeName:     "Node name: ",
			InputCustomLabel:  "Connection name: ",
			InputSnapshotFile: "Export PNG as: ",
			InputRenameNode:   "Rename node: ",
		}[m.inputPurpose]
		line := promptStyle.Render(prompt) + m.inputText + "█"
		if m.errorMessage != "" {
			line += "  " + errorStyle.Render(m.errorMessage)
		}
		return line
	case ModeChooseType:
		parts := make([]string, 0, len(scene.ConnectionTypes))
		for i, t := range scene.ConnectionTypes {
			info, _ := scene.Lookup(t)
			swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(info.Color)).Render("■")
			parts = append(parts, fmt.Sprintf("%d %s %s", i+1, swatch, info.Name))
		}
		return promptStyle.Render("Type: ") + strings.Join(parts, "  ") + "  (esc cancels)"
	case ModeConfirm:
		return promptStyle.Render(m.confirmPrompt + " (y/n)")
	}

	left := fmt.Sprintf(" %s | zoom %d%% | nodes %d | connections %d ",
		m.modeString(), int(m.ed.view.Scale()*100+0.5),
		m.ed.scene.NodeCount(), m.ed.scene.ConnectionCount())
	line := statusStyle.Render(left)
	switch {
	case m.errorMessage != "":
		line += " " + errorStyle.Render(m.errorMessage)
	case m.successMessage != "":
		line += " " + successStyle.Render(m.successMessage)
	case m.connectingFrom >= 0:
		n, _ := m.ed.scene.Node(m.connectingFrom)
		line += fmt.Sprintf(" connecting from %q: press c on the target", n.Name)
	case m.hoverConn >= 0:
		if label, from, to, ok := m.ed.describe(m.hoverConn); ok {
			line += fmt.Sprintf(" %s: %s → %s (click or d to delete)", label, from, to)
		}
	default:
		line += " ? for help"
	}
	return line
}

func (m model) modeString() string {
	if m.zPanMode {
		return "PAN"
	}
	switch m.mode {
	case ModeNormal:
		return "NORMAL"
	case ModeTextInput:
		return "TEXT"
	case ModeChooseType:
		return "TYPE"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

func (m model) helpView() string {
	helpLines := []string{
		"behaviormap help",
		"================",
		"",
		"Mouse:",
		"  drag node           Move the node",
		"  wheel               Zoom at the pointer",
		"  middle/shift drag   Pan the view",
		"  click connection    Delete the connection",
		"",
		"Keys:",
		"  h/j/k/l, arrows     Move cursor (shift: 2x)",
		"  z                   Toggle pan mode for the movement keys",
		"  +/-                 Zoom at the cursor",
		"  0                   Reset zoom and pan",
		"  a                   Add a node (ctrl+v pastes)",
		"  r                   Rename node under cursor",
		"  c                   Connect: press on source, then on target",
		"  d                   Delete node or connection under cursor",
		"  X                   Clear all connections",
		"  S                   Export the view as PNG",
		"  esc                 Cancel connecting",
		"  q/ctrl+c            Quit",
		"",
		fmt.Sprintf("Cells are %gx%g world units at zoom 100%%.", render.CellWidth, render.CellHeight),
		"Press any key to return.",
	}
	return strings.Join(helpLines, "\n")
}
