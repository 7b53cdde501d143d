// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"io"

	"github.com/DowranRowshenow/youtube-downloader/source"
)

type Options struct {
	// Out receives the machine-facing output (the JSON dump or the final path).
	Out io.Writer
	// Source is the extraction backend to drive.
	Source source.Source
	// URL is the raw video address as given on the command line.
	URL string
	// Quality is the explicit pick: a ranked-menu index, a quality label, or a
	// stream identifier. Empty means best available.
	Quality string
	// Quick fetches a single progressive stream and skips merging.
	Quick bool
	// Audio fetches audio tracks only.
	Audio bool
	// Json dumps the stream catalog as JSON instead of downloading.
	Json bool
}

// selection maps the boolean mode flags onto a selection policy.
func (o *Options) selection() source.Selection {
	sel := source.Selection{Mode: source.ModeBest, Quality: o.Quality}
	switch {
	case o.Audio:
		sel.Mode = source.ModeAudio
	case o.Quick:
		sel.Mode = source.ModeQuick
	}
	return sel
}
