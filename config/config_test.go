package config

import (
	"testing"

	"github.com/DowranRowshenow/youtube-downloader/filesystem"
	"github.com/DowranRowshenow/youtube-downloader/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			So(Setup(), ShouldBeNil)

			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}

			So(viper.GetString(key.ProxyAddress), ShouldEqual, "http://127.0.0.1:8888")
			So(viper.GetString(key.MuxContainer), ShouldEqual, "mkv")
			So(viper.GetInt(key.DownloadRetries), ShouldEqual, 3)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("download.retries"), ShouldEqual, "download_retries")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Field", t, func() {
		Convey("Env should prefix the uppercased key", func() {
			f := Default[key.DownloadDir]
			So(f.Env(), ShouldEqual, "YTGRAB_DOWNLOAD_DIR")
		})

		Convey("Pretty should render the description and key", func() {
			f := Default[key.MuxContainer]
			pretty := f.Pretty()
			So(pretty, ShouldContainSubstring, key.MuxContainer)
			So(pretty, ShouldContainSubstring, "container")
		})
	})
}
