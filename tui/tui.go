// Package tui renders the live fetch progress view on top of Bubble Tea.
package tui

import (
	"github.com/DowranRowshenow/youtube-downloader/downloader"
	"github.com/DowranRowshenow/youtube-downloader/source"
	tea "github.com/charmbracelet/bubbletea"
)

// Tracker owns one progress program for the lifetime of a fetch. The
// downloader feeds it events through Observer from its worker goroutines;
// Finish stops the program once the fetch settles.
type Tracker struct {
	program *tea.Program
}

// NewTracker creates a progress view over the planned streams.
func NewTracker(title string, streams []*source.Stream) *Tracker {
	return &Tracker{
		program: tea.NewProgram(newBubble(title, streams)),
	}
}

// Observer adapts the program's message queue into a downloader observer.
// Safe to call from any goroutine.
func (t *Tracker) Observer() downloader.Observer {
	return func(e downloader.Event) {
		t.program.Send(e)
	}
}

// Finish signals the view that the fetch has settled and it should exit.
func (t *Tracker) Finish(err error) {
	t.program.Send(finishMsg{err: err})
}

// Run executes the progress view until Finish is called or the user aborts.
// Blocks the caller; aborted reports a user-initiated quit, which the caller
// must translate into cancelling the fetch context.
func (t *Tracker) Run() (aborted bool, err error) {
	model, err := t.program.Run()
	if err != nil {
		return false, err
	}

	b, ok := model.(*trackBubble)
	return ok && b.aborted, nil
}
