package source

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func testRef() Reference {
	return Reference{URL: "https://www.youtube.com/watch?v=ABC123"}
}

func testStreams() []*Stream {
	return []*Stream{
		{ID: "137", Kind: KindVideo, Container: "mp4", Height: 1080, FPS: 30, Bitrate: 4000},
		{ID: "248", Kind: KindVideo, Container: "webm", Height: 1080, FPS: 30, Bitrate: 3500},
		{ID: "303", Kind: KindVideo, Container: "webm", Height: 1080, FPS: 60, Bitrate: 4500},
		{ID: "247", Kind: KindVideo, Container: "webm", Height: 720, FPS: 30, Bitrate: 1800},
		{ID: "247-low", Kind: KindVideo, Container: "webm", Height: 720, FPS: 30, Bitrate: 1200},
		{ID: "22", Kind: KindVideo, Container: "mp4", Height: 720, FPS: 30, Bitrate: 2000, Combined: true},
		{ID: "251", Kind: KindAudio, Container: "webm", Bitrate: 160, Language: "en", DefaultLanguage: true},
		{ID: "251-es", Kind: KindAudio, Container: "webm", Bitrate: 160, Language: "es"},
		{ID: "140-es", Kind: KindAudio, Container: "m4a", Bitrate: 128, Language: "es"},
		{ID: "sub.en.vtt", Kind: KindSubtitle, Container: "vtt", Language: "en"},
		{ID: "sub.de.vtt", Kind: KindSubtitle, Container: "vtt", Language: "de"},
	}
}

func testCatalog() *Catalog {
	catalog, err := NewCatalog(testRef(), "ABC123", "Some Video", "someone", 120, testStreams())
	So(err, ShouldBeNil)
	return catalog
}

func TestNewCatalog(t *testing.T) {
	Convey("NewCatalog", t, func() {
		Convey("Should reject an empty stream set with ErrNoStreams", func() {
			_, err := NewCatalog(testRef(), "ABC123", "Some Video", "", 0, nil)
			So(err, ShouldNotBeNil)
			So(errors.Is(err, ErrNoStreams), ShouldBeTrue)
		})

		Convey("Should reject duplicate stream identifiers", func() {
			streams := []*Stream{
				{ID: "137", Kind: KindVideo, Container: "mp4", Height: 1080},
				{ID: "137", Kind: KindVideo, Container: "webm", Height: 720},
			}
			_, err := NewCatalog(testRef(), "ABC123", "Some Video", "", 0, streams)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "duplicate")
		})
	})
}

func TestCatalogQueries(t *testing.T) {
	Convey("Given a populated catalog", t, func() {
		catalog := testCatalog()

		Convey("ByID should find streams by identifier", func() {
			s, ok := catalog.ByID("251")
			So(ok, ShouldBeTrue)
			So(s.Language, ShouldEqual, "en")

			_, ok = catalog.ByID("nope")
			So(ok, ShouldBeFalse)
		})

		Convey("Videos should be ordered best-first", func() {
			videos := catalog.Videos()
			So(videos[0].ID, ShouldEqual, "303")
			// Same resolution and rate: webm outranks mp4.
			So(videos[1].ID, ShouldEqual, "248")
			So(videos[2].ID, ShouldEqual, "137")
		})

		Convey("RankedVideos should deduplicate by height, fps, and container", func() {
			ranked := catalog.RankedVideos()

			ids := make(map[string]bool)
			for _, s := range ranked {
				ids[s.ID] = true
			}

			// The lower-bitrate 720p webm duplicate collapses away.
			So(ids["247"], ShouldBeTrue)
			So(ids["247-low"], ShouldBeFalse)
			So(ranked[0].ID, ShouldEqual, "303")
		})

		Convey("AudioLanguages should keep one stream per language, default first", func() {
			audios := catalog.AudioLanguages()
			So(audios, ShouldHaveLength, 2)
			So(audios[0].Language, ShouldEqual, "en")
			So(audios[0].DefaultLanguage, ShouldBeTrue)
			So(audios[1].ID, ShouldEqual, "251-es")
		})

		Convey("Subtitles should include every subtitle track", func() {
			So(catalog.Subtitles(), ShouldHaveLength, 2)
		})
	})
}
