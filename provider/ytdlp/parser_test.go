package ytdlp

import (
	"testing"

	"github.com/DowranRowshenow/youtube-downloader/source"
	. "github.com/smartystreets/goconvey/convey"
)

const sampleDump = `{
	"id": "ABC123",
	"title": "Some Video",
	"uploader": "someone",
	"duration": 213.4,
	"formats": [
		{"format_id": "sb0", "ext": "mhtml", "vcodec": "none", "acodec": "none"},
		{"format_id": "248", "ext": "webm", "vcodec": "vp9", "acodec": "none", "width": 1920, "height": 1080, "fps": 29.97, "tbr": 3500.5, "filesize": 52428800},
		{"format_id": "251", "ext": "webm", "vcodec": "none", "acodec": "opus", "tbr": 160, "abr": 152.3, "language": "en", "format_note": "original (default)"},
		{"format_id": "251-es", "ext": "webm", "vcodec": "none", "acodec": "opus", "tbr": 160, "abr": 152.3, "language": "es", "format_note": "Spanish"},
		{"format_id": "22", "ext": "mp4", "vcodec": "avc1", "acodec": "mp4a", "width": 1280, "height": 720, "fps": 30, "tbr": 2000, "filesize_approx": 31457280}
	],
	"subtitles": {
		"en": [{"ext": "vtt", "url": "https://example.com/sub.en.vtt", "name": "English"}],
		"de": [{"ext": "vtt", "url": "https://example.com/sub.de.vtt", "name": "German"}]
	}
}`

func TestParseCatalog(t *testing.T) {
	ref := source.Reference{URL: "https://www.youtube.com/watch?v=ABC123"}

	Convey("parseCatalog", t, func() {
		Convey("Should normalize a full extractor dump", func() {
			catalog, err := parseCatalog(ref, []byte(sampleDump))
			So(err, ShouldBeNil)
			So(catalog.ID, ShouldEqual, "ABC123")
			So(catalog.Title, ShouldEqual, "Some Video")
			So(catalog.Duration, ShouldEqual, 213)

			// Storyboard entries are dropped: 4 formats + 2 subtitles survive.
			So(catalog.Streams, ShouldHaveLength, 6)

			video, ok := catalog.ByID("248")
			So(ok, ShouldBeTrue)
			So(video.Kind, ShouldEqual, source.KindVideo)
			So(video.Height, ShouldEqual, 1080)
			So(video.FPS, ShouldEqual, 29)
			So(video.Combined, ShouldBeFalse)
			So(video.Size, ShouldEqual, int64(52428800))
			So(video.SourceURL, ShouldEqual, ref.URL)

			progressive, _ := catalog.ByID("22")
			So(progressive.Combined, ShouldBeTrue)
			So(progressive.Size, ShouldEqual, int64(31457280))

			audio, _ := catalog.ByID("251")
			So(audio.Kind, ShouldEqual, source.KindAudio)
			So(audio.Bitrate, ShouldAlmostEqual, 152.3, 0.01)
			So(audio.DefaultLanguage, ShouldBeTrue)

			spanish, _ := catalog.ByID("251-es")
			So(spanish.DefaultLanguage, ShouldBeFalse)
		})

		Convey("Should order subtitle tracks by language", func() {
			catalog, err := parseCatalog(ref, []byte(sampleDump))
			So(err, ShouldBeNil)

			var langs []string
			for _, s := range catalog.Streams {
				if s.Kind == source.KindSubtitle {
					langs = append(langs, s.Language)
					So(s.URL, ShouldNotBeEmpty)
				}
			}
			So(langs, ShouldResemble, []string{"de", "en"})
		})

		Convey("Should wrap unparsable output in an extraction error", func() {
			_, err := parseCatalog(ref, []byte("not json"))
			So(err, ShouldHaveSameTypeAs, &source.ExtractionError{})
		})

		Convey("Should surface an empty format list as ErrNoStreams", func() {
			_, err := parseCatalog(ref, []byte(`{"id": "ABC123", "title": "t", "formats": []}`))
			So(err, ShouldNotBeNil)

			extractionErr, ok := err.(*source.ExtractionError)
			So(ok, ShouldBeTrue)
			So(extractionErr.Err, ShouldEqual, source.ErrNoStreams)
		})
	})
}
