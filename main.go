// Package main is the entry point for the ytgrab application.
package main

import (
	"github.com/DowranRowshenow/youtube-downloader/cmd"
	"github.com/DowranRowshenow/youtube-downloader/config"
	"github.com/DowranRowshenow/youtube-downloader/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
