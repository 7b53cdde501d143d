// Package ytdlp implements the stream extraction backend on top of the
// external yt-dlp capability, driven through the go-ytdlp command builder.
package ytdlp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/DowranRowshenow/youtube-downloader/constant"
	"github.com/DowranRowshenow/youtube-downloader/filesystem"
	"github.com/DowranRowshenow/youtube-downloader/log"
	"github.com/DowranRowshenow/youtube-downloader/network"
	"github.com/DowranRowshenow/youtube-downloader/source"
	ytdlp "github.com/lrstanley/go-ytdlp"
	"github.com/samber/mo"
)

// Source drives yt-dlp for catalog retrieval and stream fetching.
// The proxy configuration is fixed at construction and threaded into every
// invocation; it is never mutated afterward.
type Source struct {
	proxy mo.Option[network.ProxyConfig]
}

// New creates a yt-dlp backed Source honoring the supplied proxy configuration.
func New(proxy mo.Option[network.ProxyConfig]) *Source {
	return &Source{proxy: proxy}
}

// Name returns the unique identifier for the extraction backend.
func (s *Source) Name() string {
	return "yt-dlp"
}

// Streams retrieves the advertised format set for one video and validates it
// into a typed catalog at this boundary.
func (s *Source) Streams(ctx context.Context, ref source.Reference) (*source.Catalog, error) {
	cmd := ytdlp.New().
		DumpSingleJSON().
		SkipDownload().
		NoPlaylist().
		NoWarnings()
	s.applyProxy(cmd)

	result, err := cmd.Run(ctx, ref.URL)
	if err != nil {
		return nil, &source.ExtractionError{Reference: ref, Reason: "yt-dlp failed", Err: err}
	}

	catalog, err := parseCatalog(ref, []byte(result.Stdout))
	if err != nil {
		return nil, err
	}

	log.Infof("catalog for %s: %d streams", ref, len(catalog.Streams))
	return catalog, nil
}

// Fetch materializes one stream as a local file. Audio and video formats go
// through yt-dlp; subtitle tracks are plain files fetched directly over HTTP.
func (s *Source) Fetch(ctx context.Context, stream *source.Stream, destination string) error {
	if stream.Kind == source.KindSubtitle {
		return s.fetchSubtitle(ctx, stream, destination)
	}

	cmd := ytdlp.New().
		Format(stream.ID).
		Output(destination).
		NoPlaylist().
		NoWarnings().
		NoProgress()
	s.applyProxy(cmd)

	_, err := cmd.Run(ctx, stream.SourceURL)
	return err
}

// fetchSubtitle downloads a subtitle file through the proxied HTTP client.
func (s *Source) fetchSubtitle(ctx context.Context, stream *source.Stream, destination string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, stream.URL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", constant.UserAgent)

	resp, err := network.ForProxy(s.proxy).Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("subtitle fetch: unexpected status %d", resp.StatusCode)
	}

	f, err := filesystem.API().OpenFile(destination, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(f, resp.Body)
	return err
}

// applyProxy threads the run's proxy configuration into a yt-dlp invocation.
func (s *Source) applyProxy(cmd *ytdlp.Command) {
	if cfg, ok := s.proxy.Get(); ok {
		cmd.Proxy(cfg.Address)
		if cfg.SkipVerify {
			cmd.NoCheckCertificates()
		}
	}
}
