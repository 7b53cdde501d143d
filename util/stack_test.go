package util

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestStack(t *testing.T) {
	Convey("Stack", t, func() {
		var s Stack[int]

		Convey("Should pop in reverse push order", func() {
			s.Push(1)
			s.Push(2)
			s.Push(3)

			So(s.Len(), ShouldEqual, 3)
			So(s.Pop(), ShouldEqual, 3)
			So(s.Peek(), ShouldEqual, 2)
			So(s.Pop(), ShouldEqual, 2)
			So(s.Pop(), ShouldEqual, 1)
			So(s.Len(), ShouldEqual, 0)
		})
	})
}
