// Package mini implements a lightweight, minimalist interface for interactive video downloading.
package mini

import (
	"context"
	"fmt"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/DowranRowshenow/youtube-downloader/downloader"
	"github.com/DowranRowshenow/youtube-downloader/icon"
	"github.com/DowranRowshenow/youtube-downloader/muxer"
	"github.com/DowranRowshenow/youtube-downloader/source"
	"github.com/DowranRowshenow/youtube-downloader/tui"
)

type state int

const (
	urlInputState state = iota + 1
	qualitySelectState
	fetchState
	doneState
	quitState
)

func (m *mini) handleURLInputState() error {
	address := m.options.URL
	m.options.URL = ""

	if address == "" {
		title("Video URL")
		in, err := getInput(func(s string) bool {
			return s != ""
		})
		if err != nil {
			return err
		}
		address = in.value
	}

	ref, err := source.Normalize(address)
	if err != nil {
		fail(err.Error())
		return nil
	}
	m.reference = ref

	erase := progress("Fetching stream listing..")
	m.catalog, err = m.src.Streams(m.ctx, ref)
	erase()
	if err != nil {
		return err
	}

	m.newState(qualitySelectState)
	return nil
}

func (m *mini) handleQualitySelectState() error {
	title(m.catalog.Title)

	ranked := m.catalog.RankedVideos()
	if len(ranked) == 0 {
		fail("No video streams advertised")
		m.newState(quitState)
		return nil
	}

	b, picked, err := menu(ranked, audioOnly, back, quit)
	if err != nil {
		return err
	}

	switch {
	case quit.eq(b):
		m.newState(quitState)
		return nil
	case back.eq(b):
		m.catalog = nil
		m.previousState()
		return nil
	case audioOnly.eq(b):
		m.selection = source.Selection{Mode: source.ModeAudio}
	case picked.Combined:
		// A progressive pick already carries audio, nothing to merge.
		m.selection = source.Selection{Mode: source.ModeQuick, Quality: picked.ID}
	default:
		m.selection = source.Selection{Mode: source.ModeBest, Quality: picked.ID}
	}

	m.newState(fetchState)
	return nil
}

func (m *mini) handleFetchState() error {
	plan, err := source.BuildPlan(m.catalog, m.selection)
	if err != nil {
		return err
	}

	var tc muxer.Toolchain
	if plan.NeedsMux() {
		// Resolved before any bytes move so a missing multiplexer fails fast.
		tc, err = muxer.ResolveToolchain()
		if err != nil {
			return err
		}
	}

	out := muxer.OutputPath(m.catalog, plan)
	tracker := tui.NewTracker(m.catalog.Title, plan.Streams())
	dl := downloader.New(m.src, tracker.Observer())

	fctx, cancel := context.WithCancel(m.ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		assets, err := dl.Fetch(fctx, plan)
		if err != nil {
			done <- err
			tracker.Finish(err)
			return
		}

		if plan.NeedsMux() {
			err = muxer.Mux(fctx, tc, muxer.NewJob(assets, out))
		} else {
			err = downloader.Deliver(assets[0], out)
		}
		// An aborted run leaves no temp files behind; only a genuine mux
		// failure keeps the fetched assets for diagnosis.
		if err == nil || fctx.Err() != nil {
			downloader.Cleanup(assets)
		}

		done <- err
		tracker.Finish(err)
	}()

	aborted, err := tracker.Run()
	if err != nil {
		cancel()
		<-done
		return err
	}
	if aborted {
		cancel()
		<-done
		return terminal.InterruptErr
	}
	if err := <-done; err != nil {
		return err
	}

	m.outputPath = out
	m.newState(doneState)
	return nil
}

func (m *mini) handleDoneState() error {
	fmt.Printf("%s Saved to %s\n", icon.Get(icon.Success), m.outputPath)

	b, _, err := menu([]*source.Stream{}, again, quit)
	if err != nil {
		return err
	}

	if again.eq(b) {
		m.catalog = nil
		m.selection = source.Selection{}
		m.newState(urlInputState)
		return nil
	}

	m.newState(quitState)
	return nil
}
