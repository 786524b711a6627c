// ABOUTME: TUI initialization and control
// ABOUTME: Wraps the bubbletea program shown during playback
package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/twe4ked/phreaking/pkg/dtmf"
)

// Control lets playback notice that the user quit the TUI
type Control struct {
	Quit chan struct{}
	once sync.Once
}

// NewControl creates a new control handle
func NewControl() *Control {
	return &Control{
		Quit: make(chan struct{}),
	}
}

func (c *Control) requestQuit() {
	c.once.Do(func() { close(c.Quit) })
}

// Options describes what the TUI shows
type Options struct {
	Mode    dtmf.Mode
	Symbols []dtmf.Symbol
	Output  string
	Volume  int
}

// NewModel creates a new TUI model
func NewModel(opts Options, control *Control) Model {
	return Model{
		mode:    opts.Mode,
		symbols: opts.Symbols,
		output:  opts.Output,
		volume:  opts.Volume,
		current: -1,
		control: control,
	}
}

// Run creates the TUI program; the caller starts it with Run on its own goroutine
func Run(opts Options, control *Control) *tea.Program {
	return tea.NewProgram(NewModel(opts, control))
}
