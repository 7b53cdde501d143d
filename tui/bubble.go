// Package tui renders the live fetch progress view on top of Bubble Tea.
package tui

import (
	"fmt"
	"strings"

	"github.com/DowranRowshenow/youtube-downloader/downloader"
	"github.com/DowranRowshenow/youtube-downloader/icon"
	"github.com/DowranRowshenow/youtube-downloader/source"
	"github.com/DowranRowshenow/youtube-downloader/style"
	"github.com/DowranRowshenow/youtube-downloader/util"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
)

var paddingStyle = lipgloss.NewStyle().Padding(1, 2)

// finishMsg stops the program once the fetch has settled.
type finishMsg struct {
	err error
}

// trackLine is the live state of one planned stream.
type trackLine struct {
	stream  *source.Stream
	phase   downloader.Phase
	attempt int
}

type trackBubble struct {
	title string

	order []string
	lines map[string]*trackLine

	spinnerC  spinner.Model
	progressC progress.Model

	width    int
	finished bool
	aborted  bool
	err      error
}

func newBubble(title string, streams []*source.Stream) *trackBubble {
	b := &trackBubble{
		title: title,
		lines: make(map[string]*trackLine, len(streams)),
	}

	for _, s := range streams {
		b.order = append(b.order, s.ID)
		b.lines[s.ID] = &trackLine{stream: s}
	}

	b.spinnerC = spinner.New()
	b.spinnerC.Spinner = spinner.Dot
	b.progressC = progress.New(progress.WithDefaultGradient())

	return b
}

func (b *trackBubble) Init() tea.Cmd {
	return b.spinnerC.Tick
}

func (b *trackBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.progressC.Width = util.Max(util.Min(msg.Width-4, 60), 10)
		return b, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			b.aborted = true
			return b, tea.Quit
		}
		return b, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd

	case downloader.Event:
		if line, ok := b.lines[msg.Stream.ID]; ok {
			line.phase = msg.Phase
			if msg.Phase == downloader.PhaseRetrying {
				line.attempt++
			}
		}
		return b, nil

	case finishMsg:
		b.finished = true
		b.err = msg.err
		return b, tea.Quit
	}

	return b, nil
}

func (b *trackBubble) View() string {
	lines := []string{
		style.Title("Downloading"),
		"",
		style.Truncate(b.width)(style.Bold(b.title)),
		"",
	}

	var completed int
	for _, id := range b.order {
		line := b.lines[id]
		if line.phase == downloader.PhaseCompleted {
			completed++
		}
		lines = append(lines, style.Truncate(b.width)(b.renderLine(line)))
	}

	lines = append(lines, "", b.progressC.ViewAs(float64(completed)/float64(len(b.order))))

	if b.finished && b.err != nil {
		lines = append(lines, "", wrap.String(icon.Get(icon.Fail)+" "+b.err.Error(), b.width))
	}

	return paddingStyle.Render(strings.Join(lines, "\n"))
}

func (b *trackBubble) renderLine(line *trackLine) string {
	switch line.phase {
	case downloader.PhaseCompleted:
		return fmt.Sprintf("%s %s", icon.Get(icon.Success), line.stream)
	case downloader.PhaseFailed:
		return fmt.Sprintf("%s %s", icon.Get(icon.Fail), line.stream)
	case downloader.PhaseRetrying:
		return fmt.Sprintf("%s %s %s", b.spinnerC.View(), line.stream, style.Faint(fmt.Sprintf("(retry %d)", line.attempt)))
	case downloader.PhaseStarted:
		return fmt.Sprintf("%s %s", b.spinnerC.View(), line.stream)
	default:
		return fmt.Sprintf("%s %s", icon.Get(icon.Download), style.Faint(line.stream.String()))
	}
}
