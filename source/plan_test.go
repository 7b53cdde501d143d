package source

import (
	"strconv"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBuildPlan(t *testing.T) {
	Convey("Given a populated catalog", t, func() {
		catalog := testCatalog()

		Convey("Best mode should pick separate video plus all audio languages and subtitles", func() {
			plan, err := BuildPlan(catalog, Selection{Mode: ModeBest})
			So(err, ShouldBeNil)
			So(plan.Video.ID, ShouldEqual, "303")
			So(plan.Video.Combined, ShouldBeFalse)
			So(plan.Audio, ShouldHaveLength, 2)
			So(plan.Audio[0].DefaultLanguage, ShouldBeTrue)
			So(plan.Subtitles, ShouldHaveLength, 2)
			So(plan.NeedsMux(), ShouldBeTrue)
		})

		Convey("Quick mode should pick a progressive stream and skip merging", func() {
			plan, err := BuildPlan(catalog, Selection{Mode: ModeQuick})
			So(err, ShouldBeNil)
			So(plan.Video.Combined, ShouldBeTrue)
			So(plan.Audio, ShouldBeEmpty)
			So(plan.NeedsMux(), ShouldBeFalse)
		})

		Convey("Audio mode should plan audio tracks only", func() {
			plan, err := BuildPlan(catalog, Selection{Mode: ModeAudio})
			So(err, ShouldBeNil)
			So(plan.Video, ShouldBeNil)
			So(plan.Audio, ShouldHaveLength, 2)
			So(plan.NeedsMux(), ShouldBeTrue)
		})

		Convey("An explicit stream identifier should resolve directly", func() {
			plan, err := BuildPlan(catalog, Selection{Mode: ModeBest, Quality: "247"})
			So(err, ShouldBeNil)
			So(plan.Video.ID, ShouldEqual, "247")
		})

		Convey("A quality label should resolve case-insensitively", func() {
			plan, err := BuildPlan(catalog, Selection{Mode: ModeBest, Quality: "1080P60"})
			So(err, ShouldBeNil)
			So(plan.Video.ID, ShouldEqual, "303")
		})

		Convey("A listing index should resolve against the candidate ordering", func() {
			plan, err := BuildPlan(catalog, Selection{Mode: ModeBest, Quality: "1"})
			So(err, ShouldBeNil)
			So(plan.Video.ID, ShouldEqual, "303")
		})

		Convey("Every listing index should resolve to the stream shown at that position", func() {
			ranked := catalog.RankedVideos()
			So(len(ranked), ShouldBeGreaterThan, 1)

			for i, shown := range ranked {
				plan, err := BuildPlan(catalog, Selection{Mode: ModeBest, Quality: strconv.Itoa(i + 1)})
				So(err, ShouldBeNil)
				So(plan.Video.ID, ShouldEqual, shown.ID)
			}
		})

		Convey("Quick mode should reject picks that are not progressive", func() {
			_, err := BuildPlan(catalog, Selection{Mode: ModeQuick, Quality: "303"})
			So(err, ShouldHaveSameTypeAs, &InvalidSelectionError{})
		})

		Convey("Quick mode should accept a progressive identifier and label", func() {
			plan, err := BuildPlan(catalog, Selection{Mode: ModeQuick, Quality: "22"})
			So(err, ShouldBeNil)
			So(plan.Video.Combined, ShouldBeTrue)

			plan, err = BuildPlan(catalog, Selection{Mode: ModeQuick, Quality: "720p"})
			So(err, ShouldBeNil)
			So(plan.Video.ID, ShouldEqual, "22")
		})

		Convey("A mixed-case stream identifier should resolve exactly", func() {
			streams := []*Stream{
				{ID: "VidHD", Kind: KindVideo, Container: "webm", Height: 1080, FPS: 30, Bitrate: 3000},
				{ID: "vid-sd", Kind: KindVideo, Container: "webm", Height: 360, FPS: 30, Bitrate: 500},
			}
			mixed, err := NewCatalog(testRef(), "ABC123", "Some Video", "", 0, streams)
			So(err, ShouldBeNil)

			plan, err := BuildPlan(mixed, Selection{Mode: ModeBest, Quality: "VidHD"})
			So(err, ShouldBeNil)
			So(plan.Video.ID, ShouldEqual, "VidHD")
		})

		Convey("An out-of-range index should fail", func() {
			_, err := BuildPlan(catalog, Selection{Mode: ModeBest, Quality: "99"})
			So(err, ShouldHaveSameTypeAs, &InvalidSelectionError{})
		})

		Convey("A near-miss label should fail with a suggestion", func() {
			_, err := BuildPlan(catalog, Selection{Mode: ModeBest, Quality: "1080p6"})
			So(err, ShouldNotBeNil)

			selErr, ok := err.(*InvalidSelectionError)
			So(ok, ShouldBeTrue)
			So(selErr.Suggestion, ShouldNotBeEmpty)
		})
	})
}

func TestPlanStreams(t *testing.T) {
	Convey("Plan.Streams", t, func() {
		Convey("Should list video, audio, then subtitles", func() {
			plan := &Plan{
				Video:     &Stream{ID: "v", Kind: KindVideo},
				Audio:     []*Stream{{ID: "a", Kind: KindAudio}},
				Subtitles: []*Stream{{ID: "s", Kind: KindSubtitle}},
			}

			var ids []string
			for _, s := range plan.Streams() {
				ids = append(ids, s.ID)
			}
			So(ids, ShouldResemble, []string{"v", "a", "s"})
		})

		Convey("An empty plan should need no multiplexer", func() {
			So((&Plan{}).NeedsMux(), ShouldBeFalse)
		})
	})
}
