// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/DowranRowshenow/youtube-downloader/downloader"
	"github.com/DowranRowshenow/youtube-downloader/icon"
	"github.com/DowranRowshenow/youtube-downloader/log"
	"github.com/DowranRowshenow/youtube-downloader/muxer"
	"github.com/DowranRowshenow/youtube-downloader/source"
)

func Run(options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ref, err := source.Normalize(options.URL)
	if err != nil {
		return err
	}

	catalog, err := options.Source.Streams(ctx, ref)
	if err != nil {
		return err
	}

	if options.Json {
		data, err := asJson(ref, catalog)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(options.Out, string(data))
		return err
	}

	plan, err := source.BuildPlan(catalog, options.selection())
	if err != nil {
		return err
	}

	var tc muxer.Toolchain
	if plan.NeedsMux() {
		tc, err = muxer.ResolveToolchain()
		if err != nil {
			return err
		}
	}

	dl := downloader.New(options.Source, reportEvent)
	assets, err := dl.Fetch(ctx, plan)
	if err != nil {
		return err
	}

	out := muxer.OutputPath(catalog, plan)
	if plan.NeedsMux() {
		err = muxer.Mux(ctx, tc, muxer.NewJob(assets, out))
	} else {
		err = downloader.Deliver(assets[0], out)
	}
	if err != nil {
		// An interrupted run leaves no temp files behind; only a genuine
		// mux failure keeps the fetched assets for diagnosis.
		if ctx.Err() != nil {
			downloader.Cleanup(assets)
		}
		return err
	}
	downloader.Cleanup(assets)

	_, err = fmt.Fprintln(options.Out, out)
	return err
}

// reportEvent prints fetch lifecycle transitions as plain scriptable lines on
// stderr, keeping stdout clean for the final path.
func reportEvent(e downloader.Event) {
	switch e.Phase {
	case downloader.PhaseStarted:
		fmt.Fprintf(os.Stderr, "%s fetching %s\n", icon.Get(icon.Download), e.Stream)
	case downloader.PhaseRetrying:
		fmt.Fprintf(os.Stderr, "%s retrying %s\n", icon.Get(icon.Progress), e.Stream)
		log.Warnf("retrying %s: %v", e.Stream, e.Err)
	case downloader.PhaseCompleted:
		fmt.Fprintf(os.Stderr, "%s fetched %s\n", icon.Get(icon.Success), e.Stream)
	case downloader.PhaseFailed:
		fmt.Fprintf(os.Stderr, "%s failed %s\n", icon.Get(icon.Fail), e.Stream)
	}
}
