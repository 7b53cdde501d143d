// Package source defines the domain models for stream discovery, selection, and retrieval.
package source

import (
	"errors"
	"fmt"
)

// ErrNoStreams distinguishes a reachable video advertising zero downloadable
// streams from a hard extraction failure. Always wrapped in ExtractionError.
var ErrNoStreams = errors.New("no downloadable streams")

// InputError reports a user-supplied string that is not a recognizable video URL.
type InputError struct {
	URL    string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid video URL %q: %s", e.URL, e.Reason)
}

// ExtractionError reports that the catalog for a video could not be retrieved:
// unavailable, region-locked, or the hosting site's format changed.
type ExtractionError struct {
	Reference Reference
	Reason    string
	Err       error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction failed for %s: %s: %v", e.Reference, e.Reason, e.Err)
	}
	return fmt.Sprintf("extraction failed for %s: %s", e.Reference, e.Reason)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// InvalidSelectionError reports a user choice that does not correspond to any
// descriptor in the current catalog.
type InvalidSelectionError struct {
	Choice     string
	Suggestion string
}

func (e *InvalidSelectionError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("no stream matches selection %q, did you mean %q?", e.Choice, e.Suggestion)
	}
	return fmt.Sprintf("no stream matches selection %q", e.Choice)
}
