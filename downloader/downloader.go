// Package downloader materializes a download plan as local temporary files,
// fetching independent streams concurrently.
package downloader

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/DowranRowshenow/youtube-downloader/filesystem"
	"github.com/DowranRowshenow/youtube-downloader/key"
	"github.com/DowranRowshenow/youtube-downloader/log"
	"github.com/DowranRowshenow/youtube-downloader/source"
	"github.com/DowranRowshenow/youtube-downloader/where"
	"github.com/spf13/viper"
)

// Asset is a fetched local temporary file plus the descriptor it came from.
// Owned exclusively by the run; deleted after muxing (or on fetch failure).
type Asset struct {
	Stream *source.Stream
	Path   string
}

// FetchError identifies the stream whose download failed and aborted the run.
type FetchError struct {
	Stream *source.Stream
	Err    error
}

func (e *FetchError) Error() string {
	if e.Stream == nil {
		return fmt.Sprintf("fetch failed: %v", e.Err)
	}
	return fmt.Sprintf("fetch failed for %s: %v", e.Stream, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Phase describes a fetch lifecycle event for progress observers.
type Phase uint8

const (
	PhaseStarted Phase = iota + 1
	PhaseRetrying
	PhaseCompleted
	PhaseFailed
)

// Event is delivered to the observer as each stream moves through its fetch lifecycle.
type Event struct {
	Stream *source.Stream
	Phase  Phase
	Err    error
}

// Observer receives fetch lifecycle events. May be nil. Called from fetch
// goroutines; implementations must be safe for concurrent use.
type Observer func(Event)

// Downloader drives a Source to fetch every stream of a plan into a private
// per-run temporary directory.
type Downloader struct {
	src      source.Source
	retries  int
	observer Observer
}

// New creates a Downloader around the extraction backend.
func New(src source.Source, observer Observer) *Downloader {
	retries := viper.GetInt(key.DownloadRetries)
	if retries < 1 {
		retries = 1
	}
	return &Downloader{src: src, retries: retries, observer: observer}
}

// Fetch downloads every stream of the plan concurrently. All streams must
// complete before it returns; the first hard failure cancels the remaining
// downloads, removes all partial temporary files, and surfaces a FetchError
// naming the stream that failed.
func (d *Downloader) Fetch(ctx context.Context, plan *source.Plan) ([]Asset, error) {
	streams := plan.Streams()
	if len(streams) == 0 {
		return nil, &FetchError{Err: fmt.Errorf("empty download plan")}
	}

	dir, err := filesystem.API().TempDir(where.Temp(), "run-")
	if err != nil {
		return nil, &FetchError{Err: fmt.Errorf("create temp dir: %w", err)}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr *FetchError
		assets   = make([]Asset, len(streams))
	)

	for i, stream := range streams {
		wg.Add(1)
		go func(i int, stream *source.Stream) {
			defer wg.Done()

			path := filepath.Join(dir, assetName(stream))
			if err := d.fetchOne(ctx, stream, path); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = &FetchError{Stream: stream, Err: err}
					cancel()
				}
				mu.Unlock()
				d.notify(Event{Stream: stream, Phase: PhaseFailed, Err: err})
				return
			}

			assets[i] = Asset{Stream: stream, Path: path}
			d.notify(Event{Stream: stream, Phase: PhaseCompleted})
		}(i, stream)
	}
	wg.Wait()

	if firstErr != nil {
		// Partial temporary files must not outlive a failed run.
		_ = filesystem.API().RemoveAll(dir)
		return nil, firstErr
	}

	return assets, nil
}

// fetchOne downloads a single stream with bounded retries and backoff for
// transient failures.
func (d *Downloader) fetchOne(ctx context.Context, stream *source.Stream, path string) error {
	d.notify(Event{Stream: stream, Phase: PhaseStarted})

	var lastErr error
	for attempt := 1; attempt <= d.retries; attempt++ {
		if attempt > 1 {
			d.notify(Event{Stream: stream, Phase: PhaseRetrying, Err: lastErr})
			log.Warnf("retrying %s (attempt %d/%d): %v", stream, attempt, d.retries, lastErr)

			select {
			case <-time.After(time.Duration(attempt) * time.Second):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		lastErr = d.src.Fetch(ctx, stream, path)
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	return lastErr
}

func (d *Downloader) notify(e Event) {
	if d.observer != nil {
		d.observer(e)
	}
}

// assetName derives a collision-free temp filename for one planned stream.
// Plans hold at most one audio and one subtitle track per language, so
// kind+language+container is unique within a run.
func assetName(stream *source.Stream) string {
	switch stream.Kind {
	case source.KindVideo:
		return "video." + stream.Container
	case source.KindAudio:
		lang := stream.Language
		if lang == "" {
			lang = "und"
		}
		return "audio." + lang + "." + stream.Container
	default:
		lang := stream.Language
		if lang == "" {
			lang = "und"
		}
		return "sub." + lang + "." + stream.Container
	}
}

// Cleanup removes the fetched assets' directory after a successful mux.
func Cleanup(assets []Asset) {
	if len(assets) == 0 {
		return
	}
	_ = filesystem.API().RemoveAll(filepath.Dir(assets[0].Path))
}
