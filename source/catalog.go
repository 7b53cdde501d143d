// Package source defines the domain models for stream discovery, selection, and retrieval.
package source

import (
	"fmt"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Catalog is the full set of stream descriptors advertised for one video.
// Produced once per run by a Source, read-only, discarded after the run.
type Catalog struct {
	Reference Reference `json:"reference"`
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Uploader  string    `json:"uploader,omitempty"`
	Duration  int       `json:"duration,omitempty"`
	Streams   []*Stream `json:"streams"`
}

// NewCatalog validates boundary input into a Catalog. Descriptor identifiers
// must be unique; a catalog with zero streams is a distinct outcome
// (ErrNoStreams) from an unreachable video.
func NewCatalog(ref Reference, id, title, uploader string, duration int, streams []*Stream) (*Catalog, error) {
	if len(streams) == 0 {
		return nil, &ExtractionError{Reference: ref, Reason: "catalog is empty", Err: ErrNoStreams}
	}

	seen := make(map[string]bool, len(streams))
	for _, s := range streams {
		if seen[s.ID] {
			return nil, &ExtractionError{Reference: ref, Reason: fmt.Sprintf("duplicate stream identifier %q", s.ID)}
		}
		seen[s.ID] = true
	}

	return &Catalog{
		Reference: ref,
		ID:        id,
		Title:     title,
		Uploader:  uploader,
		Duration:  duration,
		Streams:   streams,
	}, nil
}

// ByID finds a descriptor by its stable identifier.
func (c *Catalog) ByID(id string) (*Stream, bool) {
	return lo.Find(c.Streams, func(s *Stream) bool { return s.ID == id })
}

// Videos returns all video streams ordered best-first by the quality ordering.
func (c *Catalog) Videos() []*Stream {
	return c.sortedByKind(KindVideo)
}

// Audios returns all audio streams ordered best-first by bitrate.
func (c *Catalog) Audios() []*Stream {
	return c.sortedByKind(KindAudio)
}

// Subtitles returns all subtitle tracks in advertised order.
func (c *Catalog) Subtitles() []*Stream {
	return lo.Filter(c.Streams, func(s *Stream, _ int) bool { return s.Kind == KindSubtitle })
}

// RankedVideos returns the deduplicated best-first video listing used for the
// human-facing menu: one entry per (height, fps, container) keeping the
// highest bitrate.
func (c *Catalog) RankedVideos() []*Stream {
	type qualityKey struct {
		height, fps int
		container   string
	}

	best := make(map[qualityKey]*Stream)
	for _, s := range c.Videos() {
		k := qualityKey{s.Height, s.FPS, s.Container}
		if current, ok := best[k]; !ok || s.Bitrate > current.Bitrate {
			best[k] = s
		}
	}

	ranked := lo.Values(best)
	slices.SortFunc(ranked, func(a, b *Stream) int {
		if a.better(b) {
			return -1
		}
		return 1
	})
	return ranked
}

// AudioLanguages returns the best audio stream per distinct language, with the
// default (original) language first. Streams without a language tag collapse
// into a single unlabeled entry.
func (c *Catalog) AudioLanguages() []*Stream {
	best := make(map[string]*Stream)
	var order []string

	for _, s := range c.Audios() {
		lang := s.Language
		current, ok := best[lang]
		if !ok {
			best[lang] = s
			order = append(order, lang)
			continue
		}
		// The default flag wins over raw bitrate within a language.
		if s.DefaultLanguage && !current.DefaultLanguage || s.Bitrate > current.Bitrate && s.DefaultLanguage == current.DefaultLanguage {
			best[lang] = s
		}
	}

	streams := lo.Map(order, func(lang string, _ int) *Stream { return best[lang] })
	slices.SortStableFunc(streams, func(a, b *Stream) int {
		switch {
		case a.DefaultLanguage && !b.DefaultLanguage:
			return -1
		case b.DefaultLanguage && !a.DefaultLanguage:
			return 1
		default:
			return 0
		}
	})
	return streams
}

// sortedByKind filters streams of one kind and orders them best-first.
func (c *Catalog) sortedByKind(kind Kind) []*Stream {
	streams := lo.Filter(c.Streams, func(s *Stream, _ int) bool { return s.Kind == kind })
	slices.SortFunc(streams, func(a, b *Stream) int {
		if a.better(b) {
			return -1
		}
		return 1
	})
	return streams
}
