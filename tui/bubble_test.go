package tui

import (
	"errors"
	"testing"

	"github.com/DowranRowshenow/youtube-downloader/downloader"
	"github.com/DowranRowshenow/youtube-downloader/source"
	tea "github.com/charmbracelet/bubbletea"
	. "github.com/smartystreets/goconvey/convey"
)

func testBubble() *trackBubble {
	return newBubble("Some Video", []*source.Stream{
		{ID: "v", Kind: source.KindVideo, Container: "webm", Height: 1080, FPS: 30},
		{ID: "a", Kind: source.KindAudio, Container: "webm", Language: "en"},
	})
}

func TestBubbleAbort(t *testing.T) {
	Convey("Given a running progress view", t, func() {
		b := testBubble()

		Convey("ctrl+c should mark the run aborted and quit", func() {
			model, cmd := b.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
			So(model.(*trackBubble).aborted, ShouldBeTrue)
			So(cmd, ShouldNotBeNil)
			So(cmd(), ShouldResemble, tea.QuitMsg{})
		})

		Convey("Other keys should be ignored", func() {
			model, cmd := b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
			So(model.(*trackBubble).aborted, ShouldBeFalse)
			So(cmd, ShouldBeNil)
		})
	})
}

func TestBubbleFinish(t *testing.T) {
	Convey("Given a running progress view", t, func() {
		b := testBubble()

		Convey("A settle message should quit without marking an abort", func() {
			model, cmd := b.Update(finishMsg{err: errors.New("boom")})
			bubble := model.(*trackBubble)
			So(bubble.finished, ShouldBeTrue)
			So(bubble.aborted, ShouldBeFalse)
			So(bubble.err, ShouldNotBeNil)
			So(cmd(), ShouldResemble, tea.QuitMsg{})
		})
	})
}

func TestBubbleEvents(t *testing.T) {
	Convey("Given a running progress view", t, func() {
		b := testBubble()

		Convey("Lifecycle events should update the matching line", func() {
			b.Update(downloader.Event{Stream: &source.Stream{ID: "v"}, Phase: downloader.PhaseStarted})
			So(b.lines["v"].phase, ShouldEqual, downloader.PhaseStarted)

			b.Update(downloader.Event{Stream: &source.Stream{ID: "v"}, Phase: downloader.PhaseRetrying})
			b.Update(downloader.Event{Stream: &source.Stream{ID: "v"}, Phase: downloader.PhaseRetrying})
			So(b.lines["v"].attempt, ShouldEqual, 2)

			b.Update(downloader.Event{Stream: &source.Stream{ID: "v"}, Phase: downloader.PhaseCompleted})
			So(b.lines["v"].phase, ShouldEqual, downloader.PhaseCompleted)
		})

		Convey("Events for unknown streams should be ignored", func() {
			b.Update(downloader.Event{Stream: &source.Stream{ID: "nope"}, Phase: downloader.PhaseCompleted})
			So(b.lines, ShouldHaveLength, 2)
		})
	})
}
