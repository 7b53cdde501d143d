// Package source defines the domain models for stream discovery, selection, and retrieval.
package source

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Kind discriminates the track type a stream carries.
type Kind uint8

const (
	KindVideo Kind = iota + 1
	KindAudio
	KindSubtitle
)

func (k Kind) String() string {
	switch k {
	case KindVideo:
		return "video"
	case KindAudio:
		return "audio"
	case KindSubtitle:
		return "subtitle"
	default:
		return "unknown"
	}
}

// containerRank orders equally-sized videos by container preference.
var containerRank = map[string]int{"webm": 3, "mp4": 2, "mkv": 1}

// Stream is one available remote stream variant. Constructed once at the
// catalog boundary from the extractor's loose metadata, read-only afterward.
type Stream struct {
	// Stable identifier usable to request this exact stream from the extractor.
	ID string `json:"id"`
	// Kind of track the stream carries.
	Kind Kind `json:"kind"`
	// Container extension (e.g. "webm", "mp4", "vtt").
	Container string `json:"container"`
	// Codec identifier (e.g. "vp9", "opus").
	Codec string `json:"codec,omitempty"`
	// Video geometry; zero for audio and subtitle streams.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
	FPS    int `json:"fps,omitempty"`
	// Total bitrate in kbit/s as advertised by the extractor.
	Bitrate float64 `json:"bitrate,omitempty"`
	// Approximate size in bytes; zero when the extractor does not report one.
	Size int64 `json:"size,omitempty"`
	// BCP-47-ish language tag for audio and subtitle streams.
	Language string `json:"language,omitempty"`
	// Human-readable language name when advertised.
	LanguageName string `json:"language_name,omitempty"`
	// Original/primary audio track as flagged by the extractor.
	DefaultLanguage bool `json:"default_language,omitempty"`
	// Progressive stream carrying both video and audio.
	Combined bool `json:"combined,omitempty"`
	// Direct fetch URL; set only for subtitle tracks, which the extractor
	// exposes as plain files rather than formats.
	URL string `json:"-"`
	// Watch-page URL the stream was extracted from; the extractor needs it to
	// re-request the exact format at fetch time.
	SourceURL string `json:"-"`
}

// QualityLabel renders the conventional quality name for a video stream,
// e.g. "1080p" or "720p60".
func (s *Stream) QualityLabel() string {
	if s.Kind != KindVideo {
		return ""
	}
	label := fmt.Sprintf("%dp", s.Height)
	if s.FPS > 30 {
		label += fmt.Sprint(s.FPS)
	}
	return label
}

// String returns a single-line human description used in ranked menus.
func (s *Stream) String() string {
	switch s.Kind {
	case KindVideo:
		var b strings.Builder
		b.WriteString(s.QualityLabel())
		if s.Combined {
			b.WriteString(" video+audio")
		} else {
			b.WriteString(" video")
		}
		fmt.Fprintf(&b, " [%s]", s.Container)
		if s.Size > 0 {
			fmt.Fprintf(&b, " %s", humanize.IBytes(uint64(s.Size)))
		}
		return b.String()
	case KindAudio:
		name := s.LanguageName
		if name == "" {
			name = s.Language
		}
		if name == "" {
			name = "unknown"
		}
		return fmt.Sprintf("audio %s %.0fk [%s]", name, s.Bitrate, s.Container)
	case KindSubtitle:
		name := s.LanguageName
		if name == "" {
			name = s.Language
		}
		return fmt.Sprintf("subtitle %s [%s]", name, s.Container)
	default:
		return s.ID
	}
}

// better reports whether s outranks other in the quality ordering:
// resolution, then frame rate, then container preference, then bitrate for
// video; bitrate for audio.
func (s *Stream) better(other *Stream) bool {
	if s.Kind == KindVideo && other.Kind == KindVideo {
		if s.Height != other.Height {
			return s.Height > other.Height
		}
		if s.FPS != other.FPS {
			return s.FPS > other.FPS
		}
		if containerRank[s.Container] != containerRank[other.Container] {
			return containerRank[s.Container] > containerRank[other.Container]
		}
	}
	return s.Bitrate > other.Bitrate
}
