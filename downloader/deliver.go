package downloader

import (
	"io"
	"os"
	"path/filepath"

	"github.com/DowranRowshenow/youtube-downloader/filesystem"
)

// Deliver moves a fetched asset out of its temporary directory to the final
// output path. Used for plans that need no merging. A rename is attempted
// first; temp and output commonly sit on different filesystems, so a copy
// fallback is required.
func Deliver(asset Asset, destination string) error {
	fs := filesystem.API()

	if err := fs.Rename(asset.Path, destination); err == nil {
		_ = fs.RemoveAll(filepath.Dir(asset.Path))
		return nil
	}

	src, err := fs.Open(asset.Path)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := fs.OpenFile(destination, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		return err
	}

	_ = fs.RemoveAll(filepath.Dir(asset.Path))
	return nil
}
