// Package muxer locates the external multiplexer and drives it to combine
// fetched tracks into one output container.
package muxer

import (
	"fmt"
	"os/exec"

	"github.com/DowranRowshenow/youtube-downloader/filesystem"
	"github.com/DowranRowshenow/youtube-downloader/key"
	"github.com/DowranRowshenow/youtube-downloader/log"
	"github.com/spf13/viper"
)

// Origins a resolved toolchain can come from.
const (
	OriginSystem   = "system"
	OriginFallback = "fallback"
)

// Toolchain is a usable multiplexer executable. Resolved once per run,
// read-only afterward.
type Toolchain struct {
	Path   string
	Origin string
}

// ToolchainError reports that no usable multiplexer exists. This is a fatal
// configuration error and is never retried.
type ToolchainError struct {
	Fallback string
}

func (e *ToolchainError) Error() string {
	if e.Fallback == "" {
		return "no ffmpeg on PATH and no fallback configured (set " + key.MuxFFmpegFallback + ")"
	}
	return fmt.Sprintf("no ffmpeg on PATH and fallback %q is not usable", e.Fallback)
}

// ResolveToolchain searches the process search path for ffmpeg, falling back
// to the configured auxiliary binary.
func ResolveToolchain() (Toolchain, error) {
	if path, err := exec.LookPath("ffmpeg"); err == nil {
		log.Infof("using system ffmpeg at %s", path)
		return Toolchain{Path: path, Origin: OriginSystem}, nil
	}

	fallback := viper.GetString(key.MuxFFmpegFallback)
	if fallback != "" {
		if exists, _ := filesystem.API().Exists(fallback); exists {
			log.Infof("using fallback ffmpeg at %s", fallback)
			return Toolchain{Path: fallback, Origin: OriginFallback}, nil
		}
	}

	return Toolchain{}, &ToolchainError{Fallback: fallback}
}
