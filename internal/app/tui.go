// ABOUTME: Glue between playback and the keypad TUI
// ABOUTME: Runs the bubbletea program alongside the render loop
package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/twe4ked/phreaking/internal/ui"
	"github.com/twe4ked/phreaking/pkg/dtmf"
)

type tuiSession struct {
	prog *tea.Program
	done chan struct{}
}

// startTUI runs the keypad view; quitting it cancels playback
func startTUI(opts ui.Options, cancel context.CancelFunc) *tuiSession {
	control := ui.NewControl()
	s := &tuiSession{
		prog: ui.Run(opts, control),
		done: make(chan struct{}),
	}

	go func() {
		defer close(s.done)
		_, _ = s.prog.Run()
	}()

	go func() {
		select {
		case <-control.Quit:
			cancel()
		case <-s.done:
		}
	}()

	return s
}

func (s *tuiSession) symbol(index int, sym dtmf.Symbol) {
	s.prog.Send(ui.SymbolMsg{Index: index, Symbol: sym})
}

// finish tells the view playback ended and waits for it to exit
func (s *tuiSession) finish(err error) {
	s.prog.Send(ui.DoneMsg{Err: err})
	<-s.done
}
