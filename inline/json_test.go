package inline

import (
	"encoding/json"
	"testing"

	"github.com/DowranRowshenow/youtube-downloader/source"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAsJson(t *testing.T) {
	Convey("asJson", t, func() {
		Convey("Should produce a stable round-trippable shape", func() {
			ref := source.Reference{URL: "https://www.youtube.com/watch?v=ABC123"}
			catalog := &source.Catalog{
				Reference: ref,
				ID:        "ABC123",
				Title:     "Some Video",
				Streams: []*source.Stream{
					{ID: "248", Kind: source.KindVideo, Container: "webm", Height: 1080},
				},
			}

			data, err := asJson(ref, catalog)
			So(err, ShouldBeNil)

			var output Output
			So(json.Unmarshal(data, &output), ShouldBeNil)
			So(output.URL, ShouldEqual, ref.URL)
			So(output.Catalog.ID, ShouldEqual, "ABC123")
			So(output.Catalog.Streams, ShouldHaveLength, 1)
		})
	})
}

func TestOptionsSelection(t *testing.T) {
	Convey("Options.selection", t, func() {
		Convey("Should default to the merging mode", func() {
			sel := (&Options{Quality: "720p"}).selection()
			So(sel.Mode, ShouldEqual, source.ModeBest)
			So(sel.Quality, ShouldEqual, "720p")
		})

		Convey("Audio should win over quick", func() {
			sel := (&Options{Audio: true, Quick: true}).selection()
			So(sel.Mode, ShouldEqual, source.ModeAudio)
		})

		Convey("Quick should select the progressive mode", func() {
			sel := (&Options{Quick: true}).selection()
			So(sel.Mode, ShouldEqual, source.ModeQuick)
		})
	})
}
