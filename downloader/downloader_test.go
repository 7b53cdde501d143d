package downloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/DowranRowshenow/youtube-downloader/filesystem"
	"github.com/DowranRowshenow/youtube-downloader/key"
	"github.com/DowranRowshenow/youtube-downloader/source"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

// fakeSource writes a marker file per fetch and can fail selected streams a
// configured number of times.
type fakeSource struct {
	mu       sync.Mutex
	failures map[string]int
	fetched  []string
}

func (s *fakeSource) Name() string {
	return "fake"
}

func (s *fakeSource) Streams(_ context.Context, _ source.Reference) (*source.Catalog, error) {
	panic("not used")
}

func (s *fakeSource) Fetch(ctx context.Context, stream *source.Stream, destination string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	if s.failures[stream.ID] > 0 {
		s.failures[stream.ID]--
		return errors.New("transient failure")
	}

	f, err := filesystem.API().OpenFile(destination, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err = f.WriteString(stream.ID); err != nil {
		return err
	}

	s.fetched = append(s.fetched, stream.ID)
	return nil
}

func testPlan() *source.Plan {
	return &source.Plan{
		Video: &source.Stream{ID: "v1", Kind: source.KindVideo, Container: "webm"},
		Audio: []*source.Stream{
			{ID: "a1", Kind: source.KindAudio, Container: "webm", Language: "en"},
			{ID: "a2", Kind: source.KindAudio, Container: "m4a", Language: "es"},
		},
		Subtitles: []*source.Stream{
			{ID: "s1", Kind: source.KindSubtitle, Container: "vtt", Language: "en"},
		},
	}
}

func TestFetch(t *testing.T) {
	Convey("Given a downloader over a fake source", t, func() {
		viper.Set(key.DownloadRetries, 3)

		Convey("Should materialize every planned stream", func() {
			src := &fakeSource{}
			dl := New(src, nil)

			assets, err := dl.Fetch(context.Background(), testPlan())
			So(err, ShouldBeNil)
			So(assets, ShouldHaveLength, 4)

			for _, asset := range assets {
				exists, err := filesystem.API().Exists(asset.Path)
				So(err, ShouldBeNil)
				So(exists, ShouldBeTrue)
			}

			So(filepath.Base(assets[0].Path), ShouldEqual, "video.webm")
			So(filepath.Base(assets[1].Path), ShouldEqual, "audio.en.webm")
			So(filepath.Base(assets[3].Path), ShouldEqual, "sub.en.vtt")
		})

		Convey("Should retry transient failures", func() {
			src := &fakeSource{failures: map[string]int{"a1": 2}}

			var mu sync.Mutex
			var retries int
			dl := New(src, func(e Event) {
				mu.Lock()
				defer mu.Unlock()
				if e.Phase == PhaseRetrying {
					retries++
				}
			})

			_, err := dl.Fetch(context.Background(), testPlan())
			So(err, ShouldBeNil)
			So(retries, ShouldEqual, 2)
		})

		Convey("Should fail the run and clean up when retries are exhausted", func() {
			src := &fakeSource{failures: map[string]int{"a1": 10}}
			dl := New(src, nil)

			assets, err := dl.Fetch(context.Background(), testPlan())
			So(assets, ShouldBeNil)
			So(err, ShouldNotBeNil)

			fetchErr, ok := err.(*FetchError)
			So(ok, ShouldBeTrue)
			So(fetchErr.Stream.ID, ShouldEqual, "a1")
		})

		Convey("Should reject an empty plan", func() {
			dl := New(&fakeSource{}, nil)
			_, err := dl.Fetch(context.Background(), &source.Plan{})
			So(err, ShouldHaveSameTypeAs, &FetchError{})
		})

		Convey("Should abort without retrying when the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			src := &fakeSource{}
			dl := New(src, nil)

			assets, err := dl.Fetch(ctx, testPlan())
			So(assets, ShouldBeNil)
			So(err, ShouldHaveSameTypeAs, &FetchError{})
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
			So(src.fetched, ShouldBeEmpty)
		})
	})
}

func TestDeliver(t *testing.T) {
	Convey("Deliver", t, func() {
		viper.Set(key.DownloadRetries, 1)

		Convey("Should move the asset to its destination and drop the temp dir", func() {
			src := &fakeSource{}
			dl := New(src, nil)

			plan := &source.Plan{Video: &source.Stream{ID: "v1", Kind: source.KindVideo, Container: "mp4", Combined: true}}
			assets, err := dl.Fetch(context.Background(), plan)
			So(err, ShouldBeNil)

			dest := filepath.Join(os.TempDir(), "delivered.mp4")
			So(Deliver(assets[0], dest), ShouldBeNil)

			exists, _ := filesystem.API().Exists(dest)
			So(exists, ShouldBeTrue)

			gone, _ := filesystem.API().Exists(assets[0].Path)
			So(gone, ShouldBeFalse)
		})
	})
}
