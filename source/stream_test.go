package source

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestQualityLabel(t *testing.T) {
	Convey("QualityLabel", t, func() {
		Convey("Should render resolution with frame rate above 30", func() {
			So((&Stream{Kind: KindVideo, Height: 1080, FPS: 60}).QualityLabel(), ShouldEqual, "1080p60")
			So((&Stream{Kind: KindVideo, Height: 720, FPS: 30}).QualityLabel(), ShouldEqual, "720p")
		})

		Convey("Should be empty for non-video streams", func() {
			So((&Stream{Kind: KindAudio}).QualityLabel(), ShouldBeEmpty)
		})
	})
}

func TestStreamString(t *testing.T) {
	Convey("String", t, func() {
		Convey("Video descriptions should carry quality, container, and size", func() {
			s := &Stream{Kind: KindVideo, Height: 1080, FPS: 30, Container: "webm", Size: 52428800}
			So(s.String(), ShouldContainSubstring, "1080p")
			So(s.String(), ShouldContainSubstring, "[webm]")
			So(s.String(), ShouldContainSubstring, "50 MiB")
		})

		Convey("Progressive streams should be marked as video+audio", func() {
			s := &Stream{Kind: KindVideo, Height: 720, FPS: 30, Container: "mp4", Combined: true}
			So(s.String(), ShouldContainSubstring, "video+audio")
		})

		Convey("Audio descriptions should prefer the readable language name", func() {
			s := &Stream{Kind: KindAudio, Language: "es", LanguageName: "Spanish", Bitrate: 160, Container: "webm"}
			So(s.String(), ShouldContainSubstring, "Spanish")
		})
	})
}

func TestBetter(t *testing.T) {
	Convey("better", t, func() {
		Convey("Resolution should dominate", func() {
			a := &Stream{Kind: KindVideo, Height: 1080, Bitrate: 1000}
			b := &Stream{Kind: KindVideo, Height: 720, Bitrate: 9000}
			So(a.better(b), ShouldBeTrue)
		})

		Convey("Frame rate should break resolution ties", func() {
			a := &Stream{Kind: KindVideo, Height: 1080, FPS: 60}
			b := &Stream{Kind: KindVideo, Height: 1080, FPS: 30}
			So(a.better(b), ShouldBeTrue)
		})

		Convey("Container preference should break frame rate ties", func() {
			a := &Stream{Kind: KindVideo, Height: 1080, FPS: 30, Container: "webm"}
			b := &Stream{Kind: KindVideo, Height: 1080, FPS: 30, Container: "mp4"}
			So(a.better(b), ShouldBeTrue)
		})

		Convey("Bitrate should order audio streams", func() {
			a := &Stream{Kind: KindAudio, Bitrate: 160}
			b := &Stream{Kind: KindAudio, Bitrate: 128}
			So(a.better(b), ShouldBeTrue)
		})
	})
}
