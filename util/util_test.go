package util

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitizeFilename(t *testing.T) {
	Convey("SanitizeFilename", t, func() {
		Convey("Should replace characters invalid in filenames", func() {
			So(SanitizeFilename(`some/video: title?`), ShouldEqual, "some_video_title")
		})

		Convey("Should collapse repeated separators", func() {
			So(SanitizeFilename("a   b"), ShouldEqual, "a_b")
		})

		Convey("Should trim leading and trailing separators", func() {
			So(SanitizeFilename("..title.."), ShouldEqual, "title")
		})
	})
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "stream", "streams"), ShouldEqual, "1 stream")
		So(Quantify(3, "stream", "streams"), ShouldEqual, "3 streams")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("video"), ShouldEqual, "Video")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestMinMax(t *testing.T) {
	Convey("Min and Max", t, func() {
		So(Max(1, 3, 2), ShouldEqual, 3)
		So(Min(1, 3, 2), ShouldEqual, 1)
		So(Max[int](), ShouldEqual, 0)
	})
}
