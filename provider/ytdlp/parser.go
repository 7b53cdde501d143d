package ytdlp

import (
	"encoding/json"
	"strings"

	"github.com/DowranRowshenow/youtube-downloader/source"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// dumpInfo mirrors the subset of the yt-dlp --dump-single-json payload the
// catalog boundary consumes. The hosting site's metadata is loose and shifts;
// everything is validated and normalized here so the rest of the core works
// with stable typed shapes.
type dumpInfo struct {
	ID        string                    `json:"id"`
	Title     string                    `json:"title"`
	Uploader  string                    `json:"uploader"`
	Duration  float64                   `json:"duration"`
	Formats   []dumpFormat              `json:"formats"`
	Subtitles map[string][]dumpSubtitle `json:"subtitles"`
}

type dumpFormat struct {
	FormatID       string  `json:"format_id"`
	Ext            string  `json:"ext"`
	VCodec         string  `json:"vcodec"`
	ACodec         string  `json:"acodec"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	FPS            float64 `json:"fps"`
	TBR            float64 `json:"tbr"`
	ABR            float64 `json:"abr"`
	Filesize       int64   `json:"filesize"`
	FilesizeApprox int64   `json:"filesize_approx"`
	Language       string  `json:"language"`
	FormatNote     string  `json:"format_note"`
}

type dumpSubtitle struct {
	Ext  string `json:"ext"`
	URL  string `json:"url"`
	Name string `json:"name"`
}

// parseCatalog validates the raw extractor dump into a typed catalog.
func parseCatalog(ref source.Reference, raw []byte) (*source.Catalog, error) {
	var info dumpInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, &source.ExtractionError{Reference: ref, Reason: "unparsable extractor output", Err: err}
	}

	var streams []*source.Stream
	for _, f := range info.Formats {
		if s := normalizeFormat(ref, f); s != nil {
			streams = append(streams, s)
		}
	}
	streams = append(streams, normalizeSubtitles(ref, info.Subtitles)...)

	return source.NewCatalog(ref, info.ID, info.Title, info.Uploader, int(info.Duration), streams)
}

// normalizeFormat maps one loose format entry onto a typed descriptor,
// discarding storyboard and otherwise unusable entries.
func normalizeFormat(ref source.Reference, f dumpFormat) *source.Stream {
	if f.FormatID == "" || f.Ext == "mhtml" {
		return nil
	}

	hasVideo := f.VCodec != "" && f.VCodec != "none"
	hasAudio := f.ACodec != "" && f.ACodec != "none"
	if !hasVideo && !hasAudio {
		return nil
	}

	size := f.Filesize
	if size == 0 {
		size = f.FilesizeApprox
	}

	s := &source.Stream{
		ID:        f.FormatID,
		Container: f.Ext,
		Bitrate:   f.TBR,
		Size:      size,
		Language:  f.Language,
		SourceURL: ref.URL,
	}

	note := strings.ToLower(f.FormatNote)
	switch {
	case hasVideo:
		s.Kind = source.KindVideo
		s.Codec = f.VCodec
		s.Width = f.Width
		s.Height = f.Height
		s.FPS = int(f.FPS)
		s.Combined = hasAudio
		if s.Height == 0 {
			return nil
		}
	default:
		s.Kind = source.KindAudio
		s.Codec = f.ACodec
		if f.ABR > 0 {
			s.Bitrate = f.ABR
		}
		s.DefaultLanguage = strings.Contains(note, "original") || strings.Contains(note, "default")
	}

	return s
}

// normalizeSubtitles flattens the per-language subtitle listing, keeping one
// track per language (the first advertised variant).
func normalizeSubtitles(ref source.Reference, subs map[string][]dumpSubtitle) []*source.Stream {
	langs := lo.Keys(subs)
	slices.Sort(langs)

	var streams []*source.Stream
	for _, lang := range langs {
		variants := subs[lang]
		if len(variants) == 0 {
			continue
		}
		v := variants[0]
		if v.URL == "" {
			continue
		}
		streams = append(streams, &source.Stream{
			ID:           "sub." + lang + "." + v.Ext,
			Kind:         source.KindSubtitle,
			Container:    v.Ext,
			Language:     lang,
			LanguageName: v.Name,
			URL:          v.URL,
			SourceURL:    ref.URL,
		})
	}
	return streams
}
