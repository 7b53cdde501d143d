// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"encoding/json"

	"github.com/DowranRowshenow/youtube-downloader/source"
)

// Output is the stable JSON shape emitted by the catalog dump.
type Output struct {
	URL     string          `json:"url"`
	Catalog *source.Catalog `json:"catalog"`
}

func asJson(ref source.Reference, catalog *source.Catalog) ([]byte, error) {
	return json.Marshal(&Output{
		URL:     ref.URL,
		Catalog: catalog,
	})
}
