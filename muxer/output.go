package muxer

import (
	"path/filepath"

	"github.com/DowranRowshenow/youtube-downloader/key"
	"github.com/DowranRowshenow/youtube-downloader/source"
	"github.com/DowranRowshenow/youtube-downloader/util"
	"github.com/DowranRowshenow/youtube-downloader/where"
	"github.com/spf13/viper"
)

// OutputPath derives the final container path from the catalog title, the
// configured output directory, and the plan shape. Plans that skip merging
// keep the fetched stream's own container extension.
func OutputPath(catalog *source.Catalog, plan *source.Plan) string {
	dir := viper.GetString(key.DownloadDir)
	if dir == "" {
		dir = where.Downloads()
	}

	ext := viper.GetString(key.MuxContainer)
	if !plan.NeedsMux() {
		switch {
		case plan.Video != nil:
			ext = plan.Video.Container
		case len(plan.Audio) > 0:
			ext = plan.Audio[0].Container
		}
	}

	name := util.SanitizeFilename(catalog.Title)
	if name == "" {
		name = catalog.ID
	}

	return filepath.Join(dir, name+"."+ext)
}
