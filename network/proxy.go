// Package network provides pre-configured HTTP clients for direct and proxied communication.
package network

import (
	"context"
	"crypto/tls"
	"net/http"
	"net/url"
	"time"

	"github.com/DowranRowshenow/youtube-downloader/constant"
	"github.com/DowranRowshenow/youtube-downloader/key"
	"github.com/DowranRowshenow/youtube-downloader/log"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// ProxyConfig describes a reachable local intercepting proxy.
// Established once per run before any network access and never mutated afterward.
type ProxyConfig struct {
	// Proxy endpoint, e.g. "http://127.0.0.1:8888".
	Address string
	// Trust the proxy's self-signed certificate (MITM inspection).
	SkipVerify bool
}

// DetectProxy probes the configured local proxy endpoint within a bounded timeout.
// Reachable: returns a ProxyConfig with certificate-validation bypass enabled.
// Unreachable: returns None and the run proceeds with direct connections.
// Proxy absence is a normal, non-fatal outcome; this never aborts the run.
func DetectProxy(ctx context.Context) mo.Option[ProxyConfig] {
	address := viper.GetString(key.ProxyAddress)
	if address == "" {
		return mo.None[ProxyConfig]()
	}

	proxyURL, err := url.Parse(address)
	if err != nil {
		log.Warnf("invalid proxy address %q: %v", address, err)
		return mo.None[ProxyConfig]()
	}

	timeout := time.Duration(viper.GetInt(key.ProxyTimeout)) * time.Second
	if timeout <= 0 {
		timeout = 2 * time.Second
	}

	probe := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:           http.ProxyURL(proxyURL),
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, constant.ProxyProbeURL, nil)
	if err != nil {
		return mo.None[ProxyConfig]()
	}

	resp, err := probe.Do(req)
	if err != nil {
		log.Debugf("proxy %s unreachable: %v", address, err)
		return mo.None[ProxyConfig]()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		log.Debugf("proxy %s responded with status %d", address, resp.StatusCode)
		return mo.None[ProxyConfig]()
	}

	log.Infof("proxy detected at %s, certificate validation disabled", address)
	return mo.Some(ProxyConfig{Address: address, SkipVerify: true})
}
