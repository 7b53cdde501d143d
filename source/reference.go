// Package source defines the domain models for stream discovery, selection, and retrieval.
package source

import (
	"net/url"
	"strings"
)

// identifyingParam is the only query parameter preserved by normalization;
// everything else (tracking IDs, playlist and index markers) is stripped.
const identifyingParam = "v"

// shortHosts map URL-shortener hosts whose path component carries the video ID.
var shortHosts = map[string]bool{
	"youtu.be":     true,
	"www.youtu.be": true,
}

// pathPrefixes are watch-page aliases whose trailing path segment is the video ID.
var pathPrefixes = []string{"/shorts/", "/embed/", "/live/"}

// Reference is a canonical URL identifying exactly one video.
// Created once by Normalize and immutable thereafter.
type Reference struct {
	URL string
}

func (r Reference) String() string {
	return r.URL
}

// Normalize converts an arbitrary user-supplied string into a Reference,
// stripping every query parameter not required to identify the single video.
// Idempotent: normalizing an already-normalized URL yields the same Reference.
func Normalize(raw string) (Reference, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Reference{}, &InputError{URL: raw, Reason: "empty input"}
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return Reference{}, &InputError{URL: raw, Reason: "not a parsable URL"}
	}

	switch parsed.Scheme {
	case "http", "https":
	case "":
		// Bare "youtube.com/watch?v=..." input; retry with an explicit scheme.
		return Normalize("https://" + raw)
	default:
		return Reference{}, &InputError{URL: raw, Reason: "unsupported scheme " + parsed.Scheme}
	}

	if parsed.Host == "" {
		return Reference{}, &InputError{URL: raw, Reason: "missing host"}
	}

	// Shortener form: the path is the video ID.
	if shortHosts[strings.ToLower(parsed.Host)] {
		id := strings.Trim(parsed.Path, "/")
		if id == "" {
			return Reference{}, &InputError{URL: raw, Reason: "missing video identifier"}
		}
		return Reference{URL: "https://www.youtube.com/watch?v=" + url.QueryEscape(id)}, nil
	}

	// Watch-page aliases: /shorts/ID, /embed/ID, /live/ID.
	for _, prefix := range pathPrefixes {
		if strings.HasPrefix(parsed.Path, prefix) {
			id := strings.Trim(strings.TrimPrefix(parsed.Path, prefix), "/")
			if id == "" {
				return Reference{}, &InputError{URL: raw, Reason: "missing video identifier"}
			}
			rewritten := *parsed
			rewritten.Path = "/watch"
			rewritten.RawQuery = url.Values{identifyingParam: {id}}.Encode()
			rewritten.Fragment = ""
			return Reference{URL: rewritten.String()}, nil
		}
	}

	// Generic host-preserving form: keep only the identifying parameter.
	query := parsed.Query()
	clean := url.Values{}
	if id := query.Get(identifyingParam); id != "" {
		clean.Set(identifyingParam, id)
	}

	if len(clean) == 0 && strings.Trim(parsed.Path, "/") == "" {
		return Reference{}, &InputError{URL: raw, Reason: "missing video identifier"}
	}

	parsed.RawQuery = clean.Encode()
	parsed.Fragment = ""
	return Reference{URL: parsed.String()}, nil
}
