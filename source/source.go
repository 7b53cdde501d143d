// Package source defines the domain models for stream discovery, selection, and retrieval.
package source

import "context"

// Source defines the required capabilities for a stream extraction backend.
type Source interface {
	// Name returns the unique identifier for the extraction backend.
	Name() string

	// Streams retrieves the full catalog of stream descriptors advertised for
	// the referenced video.
	Streams(ctx context.Context, ref Reference) (*Catalog, error)

	// Fetch materializes one stream as a local file at the destination path.
	Fetch(ctx context.Context, stream *Stream, destination string) error
}
