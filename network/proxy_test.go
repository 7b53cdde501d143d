package network

import (
	"context"
	"testing"

	"github.com/DowranRowshenow/youtube-downloader/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestDetectProxy(t *testing.T) {
	Convey("DetectProxy", t, func() {
		viper.Set(key.ProxyTimeout, 1)

		Convey("Should return None when no proxy address is configured", func() {
			viper.Set(key.ProxyAddress, "")
			So(DetectProxy(context.Background()).IsAbsent(), ShouldBeTrue)
		})

		Convey("Should return None for an unparsable proxy address", func() {
			viper.Set(key.ProxyAddress, "http://[::1")
			So(DetectProxy(context.Background()).IsAbsent(), ShouldBeTrue)
		})

		Convey("Should return None when the proxy is unreachable", func() {
			viper.Set(key.ProxyAddress, "http://127.0.0.1:1")
			So(DetectProxy(context.Background()).IsAbsent(), ShouldBeTrue)
		})
	})
}
