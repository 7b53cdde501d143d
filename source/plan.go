// Package source defines the domain models for stream discovery, selection, and retrieval.
package source

import (
	"sort"
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

// Mode selects the selection policy applied when building a plan.
type Mode uint8

const (
	// ModeBest fetches the best separate video plus every audio language and
	// every subtitle track, merging them afterwards. Per-track quality exceeds
	// any single progressive option, so this is the default.
	ModeBest Mode = iota
	// ModeQuick fetches a single progressive video+audio stream and skips
	// merging entirely.
	ModeQuick
	// ModeAudio fetches audio tracks only.
	ModeAudio
)

// Selection carries the user's choice into the resolver.
type Selection struct {
	Mode Mode
	// Quality is an explicit pick: a ranked-menu index ("1"), a quality label
	// ("1080p", "720p60"), or a stream identifier. Empty means best available.
	Quality string
}

// Plan is the resolved download set: at most one video stream, at most one
// audio stream per distinct language (the first one is the default playback
// track), and any number of subtitle tracks. Every descriptor belongs to the
// catalog the plan was built from.
type Plan struct {
	Video     *Stream
	Audio     []*Stream
	Subtitles []*Stream
}

// Streams returns every descriptor the fetcher must materialize.
func (p *Plan) Streams() []*Stream {
	var all []*Stream
	if p.Video != nil {
		all = append(all, p.Video)
	}
	all = append(all, p.Audio...)
	all = append(all, p.Subtitles...)
	return all
}

// NeedsMux reports whether producing the output requires the external multiplexer.
func (p *Plan) NeedsMux() bool {
	if p.Video != nil && p.Video.Combined && len(p.Audio) == 0 && len(p.Subtitles) == 0 {
		return false
	}
	return len(p.Streams()) > 0
}

// BuildPlan resolves a user selection against the catalog.
// Unknown explicit choices fail with InvalidSelectionError carrying a fuzzy
// suggestion from the available quality labels.
func BuildPlan(catalog *Catalog, sel Selection) (*Plan, error) {
	switch sel.Mode {
	case ModeAudio:
		audio := catalog.AudioLanguages()
		if len(audio) == 0 {
			return nil, &InvalidSelectionError{Choice: "audio"}
		}
		return &Plan{Audio: audio}, nil

	case ModeQuick:
		combined := lo.Filter(catalog.Videos(), func(s *Stream, _ int) bool { return s.Combined })
		if len(combined) == 0 {
			return nil, &InvalidSelectionError{Choice: "quick"}
		}
		video, err := resolveVideo(catalog, combined, sel.Quality, func(s *Stream) bool { return s.Combined })
		if err != nil {
			return nil, err
		}
		return &Plan{Video: video}, nil

	default:
		separate := lo.Filter(catalog.Videos(), func(s *Stream, _ int) bool { return !s.Combined })
		if len(separate) == 0 {
			// Some videos only advertise progressive streams.
			separate = catalog.Videos()
		}
		video, err := resolveVideo(catalog, separate, sel.Quality, nil)
		if err != nil {
			return nil, err
		}

		return &Plan{
			Video:     video,
			Audio:     catalog.AudioLanguages(),
			Subtitles: catalog.Subtitles(),
		}, nil
	}
}

// resolveVideo maps an explicit quality choice (or the best-available default)
// onto a video stream. Index and label picks resolve against the ranked
// listing, the exact list the menus print; allowed constrains which picks the
// mode accepts (nil accepts every video).
func resolveVideo(catalog *Catalog, candidates []*Stream, quality string, allowed func(*Stream) bool) (*Stream, error) {
	if len(candidates) == 0 {
		return nil, &ExtractionError{Reference: catalog.Reference, Reason: "no video streams", Err: ErrNoStreams}
	}
	if allowed == nil {
		allowed = func(*Stream) bool { return true }
	}

	quality = strings.TrimSpace(quality)
	folded := strings.ToLower(quality)
	if quality == "" || folded == "best" {
		return candidates[0], nil
	}

	// Stable identifier pick, matched with the extractor's exact casing.
	if s, ok := catalog.ByID(quality); ok && s.Kind == KindVideo {
		if !allowed(s) {
			return nil, &InvalidSelectionError{Choice: quality}
		}
		return s, nil
	}

	ranked := catalog.RankedVideos()

	// Ranked-menu index pick (1-based, matching the displayed listing).
	if idx, err := strconv.Atoi(quality); err == nil {
		if idx < 1 || idx > len(ranked) {
			return nil, &InvalidSelectionError{Choice: quality}
		}
		s := ranked[idx-1]
		if !allowed(s) {
			return nil, &InvalidSelectionError{Choice: quality}
		}
		return s, nil
	}

	// Quality label pick, e.g. "720p" or "1080p60"; the first ranked entry
	// the mode accepts wins.
	var labelSeen bool
	for _, s := range ranked {
		if strings.ToLower(s.QualityLabel()) != folded {
			continue
		}
		if allowed(s) {
			return s, nil
		}
		labelSeen = true
	}
	if labelSeen {
		return nil, &InvalidSelectionError{Choice: quality}
	}

	labels := lo.Map(ranked, func(s *Stream, _ int) string { return strings.ToLower(s.QualityLabel()) })

	var suggestion string
	if matches := fuzzy.RankFindFold(folded, lo.Uniq(labels)); len(matches) > 0 {
		sort.Sort(matches)
		suggestion = matches[0].Target
	}
	return nil, &InvalidSelectionError{Choice: quality, Suggestion: suggestion}
}
