package manualdex

import "context"

// Classifier derives a catalog entry from a remote document's content.
type Classifier interface {
	// Classify fetches the document's bytes and extracts structured
	// metadata from them. A response that cannot be parsed degrades to a
	// free-text fallback entry rather than an error; only fetch, upload,
	// or inference failures are returned.
	Classify(ctx context.Context, id, displayName string) (*Manual, error)
}
