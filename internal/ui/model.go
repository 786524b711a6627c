// ABOUTME: Bubbletea model for the keypad TUI
// ABOUTME: Highlights the key currently sounding and tracks playback progress
package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/twe4ked/phreaking/pkg/dtmf"
)

// Model represents the TUI state
type Model struct {
	// Sequence
	mode    dtmf.Mode
	symbols []dtmf.Symbol
	output  string

	// Playback
	current int
	played  int
	volume  int
	done    bool
	err     error

	control *Control

	// Dimensions
	width  int
	height int
}

// SymbolMsg reports that a key started sounding
type SymbolMsg struct {
	Index  int
	Symbol dtmf.Symbol
}

// DoneMsg reports that playback finished
type DoneMsg struct {
	Err error
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case SymbolMsg:
		m.current = msg.Index
		m.played = msg.Index + 1
	case DoneMsg:
		m.done = true
		m.err = msg.Err
		m.current = -1
		return m, tea.Quit
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	s := ""
	s += m.renderHeader()
	s += m.renderKeypad()
	s += m.renderProgress()
	s += m.renderHelp()
	return s
}

// renderHeader renders the mode and output file
func (m Model) renderHeader() string {
	return fmt.Sprintf(`┌─ DTMF ──────────────────────────────┐
│ Mode:   %-27s │
│ Output: %-27s │
├─────────────────────────────────────┤
`, m.mode, truncate(m.output, 27))
}

// renderKeypad renders the 4x4 keypad with the sounding key bracketed
func (m Model) renderKeypad() string {
	active, sounding := m.activeSymbol()

	var b strings.Builder
	for _, row := range dtmf.Keypad {
		b.WriteString("│      ")
		for _, sym := range row {
			if sounding && sym == active {
				fmt.Fprintf(&b, "[%s] ", sym)
			} else {
				fmt.Fprintf(&b, " %s  ", sym)
			}
		}
		b.WriteString("               │\n")
	}
	return b.String()
}

// renderProgress renders the sequence with a progress bar
func (m Model) renderProgress() string {
	status := fmt.Sprintf("%d/%d", m.played, len(m.symbols))
	if m.done {
		status = "done"
		if m.err != nil {
			status = "failed"
		}
	}

	return fmt.Sprintf(`├─────────────────────────────────────┤
│ Keys:   %-27s │
│ Played: [%s] %-12s │
│ Volume: %3d%%                        │
`, truncate(dtmf.FormatSequence(m.symbols), 27), renderBar(m.played, len(m.symbols), 12), status, m.volume)
}

// renderHelp renders keyboard shortcuts
func (m Model) renderHelp() string {
	return `│ q:Quit                              │
└─────────────────────────────────────┘
`
}

// activeSymbol returns the key currently sounding, if any
func (m Model) activeSymbol() (dtmf.Symbol, bool) {
	if m.done || m.current < 0 || m.current >= len(m.symbols) {
		return 0, false
	}
	return m.symbols[m.current], true
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		if m.control != nil {
			m.control.requestQuit()
		}
		return m, tea.Quit
	}

	return m, nil
}

// Utility functions
func renderBar(value, max, width int) string {
	filled := 0
	if max > 0 {
		filled = (value * width) / max
	}
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return bar
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}
