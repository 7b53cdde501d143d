// Package provider manages the registry of stream extraction backends.
package provider

import (
	"github.com/DowranRowshenow/youtube-downloader/network"
	"github.com/DowranRowshenow/youtube-downloader/provider/ytdlp"
	"github.com/DowranRowshenow/youtube-downloader/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Provider represents an extraction backend factory.
type Provider struct {
	ID           string
	Name         string
	CreateSource func(proxy mo.Option[network.ProxyConfig]) (source.Source, error)
}

func (p *Provider) String() string {
	return p.Name
}

// Builtins returns built-in providers.
func Builtins() []*Provider {
	return []*Provider{
		{
			ID:   "ytdlp",
			Name: "yt-dlp",
			CreateSource: func(proxy mo.Option[network.ProxyConfig]) (source.Source, error) {
				return ytdlp.New(proxy), nil
			},
		},
	}
}

// Default returns the provider used when none is named explicitly.
func Default() *Provider {
	return Builtins()[0]
}

// Get finds a provider by name.
func Get(name string) (*Provider, bool) {
	return lo.Find(Builtins(), func(p *Provider) bool { return p.Name == name || p.ID == name })
}
