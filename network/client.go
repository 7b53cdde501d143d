// Package network provides pre-configured HTTP clients for direct and proxied communication.
package network

import (
	"crypto/tls"
	"net/http"
	"net/url"
	"time"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Client is the singleton HTTP client shared across the application for efficient resource utilization.
// Direct HTTPS connections go through the Chrome-fingerprint transport; see transport.go.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: NewFingerprintTransport(),
}

// ForProxy returns an HTTP client honoring the supplied proxy configuration.
// Absent proxy yields the shared direct client; a present proxy routes all
// traffic through it, disabling certificate validation when the proxy
// re-signs TLS (MITM inspection).
func ForProxy(proxy mo.Option[ProxyConfig]) *http.Client {
	cfg, ok := proxy.Get()
	if !ok {
		return Client
	}

	t := http.DefaultTransport.(*http.Transport).Clone()
	t.Proxy = http.ProxyURL(lo.Must(url.Parse(cfg.Address)))
	t.TLSClientConfig = &tls.Config{InsecureSkipVerify: cfg.SkipVerify}
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.IdleConnTimeout = 30 * time.Second

	return &http.Client{
		Timeout:   time.Minute,
		Transport: t,
	}
}
